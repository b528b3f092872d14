package bookmark

import (
	"context"
	"slices"
	"sync"

	"github.com/qepting91/job-feed/internal/domain"
)

// MemoryStore keeps bookmarks for the lifetime of the process
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[int64]domain.JobPosting
	order []int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[int64]domain.JobPosting)}
}

func (m *MemoryStore) IsBookmarked(_ context.Context, id int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byID[id]
	return ok
}

func (m *MemoryStore) Toggle(_ context.Context, posting domain.JobPosting) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[posting.ID]; ok {
		delete(m.byID, posting.ID)
		if i := slices.Index(m.order, posting.ID); i >= 0 {
			m.order = slices.Delete(m.order, i, i+1)
		}
		countToggle(false)
		return false, nil
	}

	m.byID[posting.ID] = posting
	m.order = append(m.order, posting.ID)
	countToggle(true)
	return true, nil
}

// List returns bookmarks oldest first
func (m *MemoryStore) List(_ context.Context) ([]domain.JobPosting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.JobPosting, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
