// Package store adapts the opaque key-value capability into typed collection
// access. Each collection is a single JSON-encoded array under its own key;
// the field names inside those arrays are a compatibility contract with data
// written by earlier releases and must not change.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Collection keys. CollectionItems and CollectionSales are written by two
// independent Set calls with no transaction boundary between them.
const (
	CollectionItems      = "items"
	CollectionSales      = "sales"
	CollectionCategories = "categories"

	keyHasLaunched = "hasLaunched"
)

// Store provides typed load/save for the persisted collections.
type Store struct {
	kv     KV
	logger *slog.Logger
}

// New constructs a Store over the given KV backend.
func New(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// Load reads a collection. A missing key, unreadable backend, malformed JSON
// or non-array payload all degrade to an empty slice with a logged warning;
// Load never surfaces an error to the caller.
func Load[T any](ctx context.Context, s *Store, collection string) []T {
	raw, found, err := s.kv.Get(ctx, collection)
	if err != nil {
		s.logger.Warn("store: read failed, treating collection as empty",
			slog.String("collection", collection), slog.Any("error", err))
		return []T{}
	}
	if !found || raw == "" {
		return []T{}
	}
	var values []T
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		s.logger.Warn("store: corrupt payload, treating collection as empty",
			slog.String("collection", collection), slog.Any("error", err))
		return []T{}
	}
	if values == nil {
		return []T{}
	}
	return values
}

// Save serializes the full collection and writes it. Failures are returned to
// the caller and never retried here.
func Save[T any](ctx context.Context, s *Store, collection string, values []T) error {
	if values == nil {
		values = []T{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", collection, err)
	}
	if err := s.kv.Set(ctx, collection, string(raw)); err != nil {
		return fmt.Errorf("store: write %s: %w", collection, err)
	}
	return nil
}

// FirstLaunch reports whether this is the first session against the store and
// marks the store as launched. The flag is stored as a boolean-as-string for
// compatibility with data written by earlier releases.
func (s *Store) FirstLaunch(ctx context.Context) (bool, error) {
	raw, found, err := s.kv.Get(ctx, keyHasLaunched)
	if err != nil {
		return false, fmt.Errorf("store: read launch flag: %w", err)
	}
	first := !found || raw == "false"
	if first {
		if err := s.kv.Set(ctx, keyHasLaunched, "true"); err != nil {
			return first, fmt.Errorf("store: write launch flag: %w", err)
		}
	}
	return first, nil
}
