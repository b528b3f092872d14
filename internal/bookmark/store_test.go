package bookmark

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/qepting91/job-feed/internal/config"
	"github.com/qepting91/job-feed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func posting(id int64, title string) domain.JobPosting {
	return domain.JobPosting{ID: id, Title: domain.FlexString(title), WhatsAppLink: "https://chat.whatsapp.com/x"}
}

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()

	sqlite, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "bookmarks.db"), quietLogger())
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb, err := NewRedisClient(ctx, "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
		"redis":  NewRedisStore(rdb, quietLogger()),
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStoreToggle(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p := posting(42, "Electrician")

			assert.False(t, store.IsBookmarked(ctx, 42))

			on, err := store.Toggle(ctx, p)
			require.NoError(t, err)
			assert.True(t, on)
			assert.True(t, store.IsBookmarked(ctx, 42))

			off, err := store.Toggle(ctx, p)
			require.NoError(t, err)
			assert.False(t, off)
			assert.False(t, store.IsBookmarked(ctx, 42))
		})
	}
}

func TestStoreListOrder(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for _, p := range []domain.JobPosting{posting(3, "C"), posting(1, "A"), posting(2, "B")} {
				_, err := store.Toggle(ctx, p)
				require.NoError(t, err)
			}
			_, err := store.Toggle(ctx, posting(1, "A"))
			require.NoError(t, err)

			got, err := store.List(ctx)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, int64(3), got[0].ID)
			assert.Equal(t, domain.FlexString("C"), got[0].Title)
			assert.Equal(t, domain.FlexString("https://chat.whatsapp.com/x"), got[0].WhatsAppLink)
			assert.Equal(t, int64(2), got[1].ID)
		})
	}
}

func TestStoreListEmpty(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := store.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "bookmarks.db")

	s, err := OpenSQLite(ctx, path, quietLogger())
	require.NoError(t, err)
	_, err = s.Toggle(ctx, posting(7, "Tailor"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path, quietLogger())
	require.NoError(t, err)
	defer s.Close()
	assert.True(t, s.IsBookmarked(ctx, 7))
}

func TestToggleMetric(t *testing.T) {
	before := testutil.ToFloat64(toggles.WithLabelValues("added"))
	_, err := NewMemoryStore().Toggle(context.Background(), posting(1, "A"))
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(toggles.WithLabelValues("added")))
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, &config.Config{BookmarkBackend: config.BackendMemory}, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, &config.Config{
		BookmarkBackend: config.BackendSQLite,
		SQLitePath:      filepath.Join(t.TempDir(), "b.db"),
	}, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	s.Close()

	mr := miniredis.RunT(t)
	s, err = Open(ctx, &config.Config{BookmarkBackend: config.BackendRedis, RedisURL: "redis://" + mr.Addr()}, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)
	s.Close()

	_, err = Open(ctx, &config.Config{BookmarkBackend: "postgres"}, quietLogger())
	assert.Error(t, err)
}
