package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Typed adapts a byte Store to values of one type, encoded as JSON.
// Values go through an encode/decode round trip, so a caller can never mutate
// what is stored.
type Typed[T any] struct {
	store Store
}

// NewTyped creates a typed view over store
func NewTyped[T any](store Store) *Typed[T] {
	return &Typed[T]{store: store}
}

// Get returns the value under key and whether it was present
func (t *Typed[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var v T
	entry, err := t.store.Read(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if err := json.Unmarshal(entry.Body, &v); err != nil {
		return v, false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return v, true, nil
}

// Put stores v under key
func (t *Typed[T]) Put(ctx context.Context, key string, v T) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	return t.store.Write(ctx, key, &Entry{FetchedAt: time.Now(), Body: body})
}
