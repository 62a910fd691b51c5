package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value
var ErrNotFound = errors.New("key not found")

// Storage is the durable key-value storage the console session persists into
type Storage interface {
	// Get returns the value stored under key, or ErrNotFound
	Get(ctx context.Context, key string) (string, error)
	// Put writes every value; backends that can do so write them atomically
	Put(ctx context.Context, values map[string]string) error
	// Delete removes the keys; missing keys are not an error
	Delete(ctx context.Context, keys ...string) error
}

// Watcher is implemented by storages that can observe writes made by other
// processes sharing the same storage
type Watcher interface {
	// Watch calls fn with the key of every write made elsewhere until ctx is
	// done. It blocks.
	Watch(ctx context.Context, fn func(key string)) error
}
