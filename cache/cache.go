package cache

import (
	"context"
	"time"
)

// CodeStore holds short-lived keyed values (email verification codes,
// password-reset codes). Expiry is a property of the store itself, not a
// scheduled callback, so backends can differ without behavior changes.
type CodeStore interface {
	// Put stores value under key for at most ttl.
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns the value and whether it exists and is unexpired.
	Get(ctx context.Context, key string) (string, bool, error)
	// Consume returns the value like Get but deletes it, making every
	// stored code single-use.
	Consume(ctx context.Context, key string) (string, bool, error)
}
