package registry

import (
	"context"
	"sync"
	"time"
)

// Memory is the in-process registry used for single-binary runs and tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	ttl  time.Duration
}

type memoryEntry struct {
	status    Status
	expiresAt time.Time
}

// NewMemory creates an in-memory registry. Entries expire after the passed
// TTL; a zero TTL keeps them for the process lifetime.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		data: make(map[string]memoryEntry),
		ttl:  ttl,
	}
}

// Put records the status of a run.
func (m *Memory) Put(_ context.Context, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{status: status}
	if m.ttl > 0 {
		entry.expiresAt = time.Now().Add(m.ttl)
	}
	m.data[status.RunID] = entry
	return nil
}

// Get returns the recorded status of a run.
func (m *Memory) Get(_ context.Context, runID string) (Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.data[runID]
	if !ok {
		return Status{}, ErrNotFound
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		return Status{}, ErrNotFound
	}
	return entry.status, nil
}

// Close is a no-op for the in-memory registry.
func (m *Memory) Close() error {
	return nil
}
