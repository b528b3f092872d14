package bookmark

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	sqlbuilder "github.com/huandu/go-sqlbuilder"
	"github.com/qepting91/job-feed/internal/domain"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteStore persists bookmarks in a local SQLite file
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Migrate brings the bookmark schema up to date
func Migrate(dbPath string) error {
	d, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, "sqlite://"+dbPath)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create bookmark dir: %w", err)
		}
	}
	if err := Migrate(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open bookmark db: %w", err)
	}
	// one writer keeps toggles serialized
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping bookmark db: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger, now: time.Now}, nil
}

func (s *SQLiteStore) IsBookmarked(ctx context.Context, id int64) bool {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	query, args := sb.Select("1").From("bookmarks").Where(sb.Equal("id", id)).Limit(1).Build()

	var one int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("bookmark lookup failed", "id", id, "error", err)
		}
		return false
	}
	return true
}

func (s *SQLiteStore) Toggle(ctx context.Context, posting domain.JobPosting) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin toggle: %w", err)
	}
	defer tx.Rollback()

	del := sqlbuilder.SQLite.NewDeleteBuilder()
	query, args := del.DeleteFrom("bookmarks").Where(del.Equal("id", posting.ID)).Build()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete bookmark: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	bookmarked := removed == 0
	if bookmarked {
		body, err := json.Marshal(posting)
		if err != nil {
			return false, fmt.Errorf("encode posting: %w", err)
		}
		ins := sqlbuilder.SQLite.NewInsertBuilder()
		query, args := ins.InsertInto("bookmarks").
			Cols("id", "posting", "saved_at").
			Values(posting.ID, string(body), s.now().UnixNano()).
			Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return false, fmt.Errorf("insert bookmark: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit toggle: %w", err)
	}
	countToggle(bookmarked)
	return bookmarked, nil
}

// List returns bookmarks oldest first
func (s *SQLiteStore) List(ctx context.Context) ([]domain.JobPosting, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	query, args := sb.Select("posting").From("bookmarks").OrderBy("seq").Asc().Build()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	out := []domain.JobPosting{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var p domain.JobPosting
		if err := json.Unmarshal([]byte(body), &p); err != nil {
			s.logger.Warn("skipping unreadable bookmark", "error", err)
			continue
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
