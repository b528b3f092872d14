package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/qepting91/job-feed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAll(t *testing.T, w *WriterService, postings ...domain.JobPosting) {
	t.Helper()
	input := make(chan domain.JobPosting)
	var wg sync.WaitGroup
	wg.Add(1)
	go w.Start(&wg, input)
	for _, p := range postings {
		input <- p
	}
	close(input)
	wg.Wait()
}

func TestWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "jobs.ndjson")
	w := &WriterService{FilePath: path}

	writeAll(t, w,
		domain.JobPosting{ID: 1, Title: "Cook", WhatsAppLink: "https://chat.whatsapp.com/a"},
		domain.JobPosting{ID: 2, Locality: "Andheri"},
	)
	require.NoError(t, w.Err())
	assert.Equal(t, 2, w.Written())

	got, err := LoadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.FlexString("Cook"), got[0].Title)
	assert.Equal(t, domain.FlexString("https://chat.whatsapp.com/a"), got[0].WhatsAppLink)
	assert.Equal(t, domain.FlexString("Andheri"), got[1].Locality)
}

func TestWriterTruncatesUnlessAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.ndjson")

	writeAll(t, &WriterService{FilePath: path}, domain.JobPosting{ID: 1})
	writeAll(t, &WriterService{FilePath: path}, domain.JobPosting{ID: 2})
	got, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	writeAll(t, &WriterService{FilePath: path, Append: true}, domain.JobPosting{ID: 3})
	got, err = LoadSnapshot(path)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestWriterDrainsOnOpenFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	w := &WriterService{FilePath: filepath.Join(blocker, "jobs.ndjson")}
	writeAll(t, w, domain.JobPosting{ID: 1}, domain.JobPosting{ID: 2})

	assert.Error(t, w.Err())
	assert.Zero(t, w.Written())
}

func TestLoadSnapshotSkipsBadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.ndjson")
	require.NoError(t, os.WriteFile(path, []byte("{\"id\":1}\nnot json\n{\"id\":2}\n"), 0644))

	got, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
