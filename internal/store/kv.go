package store

import "context"

// KV abstracts the opaque key-value capability backing all persisted state.
type KV interface {
	// Get returns the raw value for key and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes the raw value for key.
	Set(ctx context.Context, key, value string) error
}
