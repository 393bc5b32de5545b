package shared

import (
	"context"
	"time"
)

// IdempotencyStore records request keys that have already been handled
// so a retried POST does not create a second transaction
type IdempotencyStore interface {
	// MarkProcessed marks a key as handled with a TTL. Returns true if
	// the key was newly marked, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been handled
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close releases store resources
	Close() error
}
