package cache

import (
	"context"
	"sync"
)

// Memory is an in-process Store.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

// Get returns the entry for key or ErrMiss.
func (m *Memory) Get(_ context.Context, key string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok {
		return Entry{}, ErrMiss
	}
	e.Presses = append([]int64(nil), e.Presses...)

	return e, nil
}

// Put stores a copy of e under key.
func (m *Memory) Put(_ context.Context, key string, e Entry) error {
	e.Presses = append([]int64(nil), e.Presses...)
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()

	return nil
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
