package bookmark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/qepting91/job-feed/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	redisIndexKey    = "jobfeed:bookmarks"
	redisPostingsKey = "jobfeed:bookmark:postings"
	redisSeqKey      = "jobfeed:bookmark:seq"
)

// NewRedisClient creates and verifies a Redis client connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}

// RedisStore shares bookmarks between sessions through Redis. A sorted set
// keeps save order, a hash keeps the posting bodies.
type RedisStore struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func NewRedisStore(rdb *redis.Client, logger *slog.Logger) *RedisStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStore{rdb: rdb, logger: logger}
}

func member(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (s *RedisStore) IsBookmarked(ctx context.Context, id int64) bool {
	_, err := s.rdb.ZScore(ctx, redisIndexKey, member(id)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("bookmark lookup failed", "id", id, "error", err)
		}
		return false
	}
	return true
}

func (s *RedisStore) Toggle(ctx context.Context, posting domain.JobPosting) (bool, error) {
	body, err := json.Marshal(posting)
	if err != nil {
		return false, fmt.Errorf("encode posting: %w", err)
	}
	m := member(posting.ID)

	var bookmarked bool
	txf := func(tx *redis.Tx) error {
		_, err := tx.ZScore(ctx, redisIndexKey, m).Result()
		exists := err == nil
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		var seq int64
		if !exists {
			if seq, err = tx.Incr(ctx, redisSeqKey).Result(); err != nil {
				return err
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if exists {
				pipe.ZRem(ctx, redisIndexKey, m)
				pipe.HDel(ctx, redisPostingsKey, m)
				return nil
			}
			pipe.ZAdd(ctx, redisIndexKey, redis.Z{Score: float64(seq), Member: m})
			pipe.HSet(ctx, redisPostingsKey, m, body)
			return nil
		})
		bookmarked = !exists
		return err
	}

	if err := s.rdb.Watch(ctx, txf, redisIndexKey); err != nil {
		return false, fmt.Errorf("toggle bookmark %d: %w", posting.ID, err)
	}
	countToggle(bookmarked)
	return bookmarked, nil
}

// List returns bookmarks oldest first
func (s *RedisStore) List(ctx context.Context) ([]domain.JobPosting, error) {
	ids, err := s.rdb.ZRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	out := []domain.JobPosting{}
	if len(ids) == 0 {
		return out, nil
	}

	bodies, err := s.rdb.HMGet(ctx, redisPostingsKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}
	for i, b := range bodies {
		body, ok := b.(string)
		if !ok {
			s.logger.Warn("bookmark body missing", "id", ids[i])
			continue
		}
		var p domain.JobPosting
		if err := json.Unmarshal([]byte(body), &p); err != nil {
			s.logger.Warn("skipping unreadable bookmark", "id", ids[i], "error", err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
