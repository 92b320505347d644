package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps entries in process memory for the lifetime of the store
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Read implements Reader
func (m *MemoryStore) Read(_ context.Context, key string) (*Entry, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &Entry{FetchedAt: e.FetchedAt, Body: clone(e.Body)}, nil
}

// Write implements Writer
func (m *MemoryStore) Write(_ context.Context, key string, entry *Entry) error {
	e := Entry{FetchedAt: entry.FetchedAt, Body: clone(entry.Body)}
	if e.FetchedAt.IsZero() {
		e.FetchedAt = time.Now()
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

// Clear drops every entry
func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]Entry)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
