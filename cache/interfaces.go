// Package cache provides the session cache stores used by the browse controller.
// Entries are written once per key and never evicted; a store lives as long as
// the session that owns it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned by Read when no entry exists for a key
var ErrNotFound = errors.New("cache entry not found")

// Entry represents a cached entry with metadata
type Entry struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Body      json.RawMessage `json:"body"`
}

// Reader defines the interface for reading cache entries
type Reader interface {
	// Read returns a copy of the entry stored under key, or ErrNotFound
	Read(ctx context.Context, key string) (*Entry, error)
}

// Writer defines the interface for writing cache entries
type Writer interface {
	// Write stores entry under key. A later write to the same key wins.
	Write(ctx context.Context, key string, entry *Entry) error
}

// Store combines both cache operations with a way to drop everything
type Store interface {
	Reader
	Writer
	Clear(ctx context.Context) error
}
