// Package bookmark keeps the set of postings the user saved.
package bookmark

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/qepting91/job-feed/internal/config"
	"github.com/qepting91/job-feed/internal/domain"
)

// Store is a BookmarkStore that holds a resource
type Store interface {
	domain.BookmarkStore
	Close() error
}

var toggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "jobfeed_bookmark_toggles_total",
	Help: "Bookmark toggles by resulting state",
}, []string{"state"})

func countToggle(bookmarked bool) {
	if bookmarked {
		toggles.WithLabelValues("added").Inc()
	} else {
		toggles.WithLabelValues("removed").Inc()
	}
}

// Open selects the store for the configured backend
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.BookmarkBackend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath, logger)
	case config.BackendRedis:
		rdb, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(rdb, logger), nil
	default:
		return nil, fmt.Errorf("unknown BOOKMARK_BACKEND: %s", cfg.BookmarkBackend)
	}
}
