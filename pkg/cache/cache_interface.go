package cache

import (
	"context"
	"time"
)

// LeaseTTL bounds how long a fill lease blocks other fills of the same key.
const LeaseTTL = 5 * time.Second

// Cache is the contract for the record cache.
// Implementations: Redis, and a no-op used when caching is disabled.
//
// Fills go through a lease: a reader takes Lease before loading the record and
// hands the token to Fill afterwards. Delete drops any lease on the key, so a
// fill racing a mutation is discarded instead of caching the old record.
type Cache interface {
	// Get loads the value stored at key into dest.
	// found is false on a cache miss or while the key is leased; dest is left untouched in that case.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Lease reserves key for a fill. token is empty when key already holds a value or another lease.
	Lease(ctx context.Context, key string, ttl time.Duration) (token string, err error)

	// Fill stores value under key for ttl, only while key still holds token.
	Fill(ctx context.Context, key, token string, value interface{}, ttl time.Duration) error

	// Delete removes keys and their leases. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}
