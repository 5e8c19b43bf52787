package responsecache

import (
	"context"
	"time"
)

const (
	// DefaultTTL is how long a stored response stays valid.
	DefaultTTL = 10 * time.Minute
	// DefaultMaxEntries is the hard ceiling on stored responses.
	DefaultMaxEntries = 100
)

// Store is a process-local response cache with per-entry expiry.
//
// Values are opaque serialized payloads. Implementations keep their own copy of
// a value on Set and hand out a copy on Get, so callers never share memory with the store.
type Store interface {
	// Get returns the value stored under key. An entry older than the TTL is
	// removed and reported as absent.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key, overwriting any previous value and resetting its age.
	// When a new key would exceed capacity the earliest inserted entry is evicted first.
	Set(ctx context.Context, key string, value []byte)
}
