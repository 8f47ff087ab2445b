package storage

import (
	"context"
	"sync"

	"github.com/tufanunal/factory-planner-360-sub000/internal/schedule"
)

// MemoryStore keeps the snapshot in process memory. Useful for tests and for
// running the engine without any durable backend.
type MemoryStore struct {
	mu   sync.RWMutex
	snap *schedule.Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the held snapshot, or nil when nothing was saved.
func (ms *MemoryStore) Load(ctx context.Context) (*schedule.Snapshot, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.snap.Clone(), nil
}

// Save replaces the held snapshot with a copy of the given one.
func (ms *MemoryStore) Save(ctx context.Context, snap *schedule.Snapshot) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.snap = snap.Clone()
	return nil
}
