// Package cache stores the small records shared between requests.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// KVStore is a minimal key-value store for small JSON records. A missing key
// is reported by found=false with a nil error.
type KVStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}

// GetJSON loads key into v. found is false when the key is absent or holds
// a record that does not decode.
func GetJSON(ctx context.Context, store KVStore, key string, v any) (found bool, err error) {
	data, found, err := store.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil
	}
	return true, nil
}

// PutJSON stores v under key.
func PutJSON(ctx context.Context, store KVStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return store.Put(ctx, key, data)
}

// IsFresh reports whether a record written at storedAt is still inside
// window at now. Records from the future count as fresh.
func IsFresh(storedAt, now time.Time, window time.Duration) bool {
	if storedAt.IsZero() {
		return false
	}
	return now.Sub(storedAt) < window
}
