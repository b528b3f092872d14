package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/qepting91/job-feed/internal/domain"
)

// WriterService is the single owner of the snapshot file; postings reach it
// only through the input channel.
type WriterService struct {
	FilePath string

	// Append keeps existing lines instead of starting a fresh snapshot
	Append bool

	Logger *slog.Logger

	mu      sync.Mutex
	err     error
	written int
}

func (w *WriterService) Start(wg *sync.WaitGroup, input <-chan domain.JobPosting) {
	defer wg.Done()

	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}

	f, err := w.open()
	if err != nil {
		w.fail(err)
		logger.Error("snapshot file unavailable", "path", w.FilePath, "error", err)
		// keep draining so producers never block
		for range input {
		}
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for posting := range input {
		// Write as NDJSON
		if err := enc.Encode(posting); err != nil {
			w.fail(fmt.Errorf("encode posting %d: %w", posting.ID, err))
			logger.Warn("posting not written", "id", posting.ID, "error", err)
			continue
		}
		w.mu.Lock()
		w.written++
		w.mu.Unlock()
	}
}

func (w *WriterService) open() (*os.File, error) {
	if dir := filepath.Dir(w.FilePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	flags := os.O_CREATE | os.O_WRONLY
	if w.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(w.FilePath, flags, 0644)
}

func (w *WriterService) fail(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err == nil {
		w.err = err
	}
}

// Err returns the first write error, once Start has returned
func (w *WriterService) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Written reports how many postings reached the file
func (w *WriterService) Written() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}
