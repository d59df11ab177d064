package cache

import (
	"context"
	"time"
)

// Cache defines the interface for snapshot caching. The reconciliation layer
// never touches it; services cache raw fetch results and invalidate the
// affected prefixes after a mutation.
type Cache interface {
	// Get retrieves a value from the cache
	// Returns the value and a boolean indicating whether the key was found
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set adds a value to the cache with the specified expiration
	// If expiration is 0, the item never expires (but may be evicted)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)

	// Delete removes a key from the cache
	Delete(ctx context.Context, key string)

	// DeleteByPrefix removes all keys with the given prefix
	DeleteByPrefix(ctx context.Context, prefix string)

	// Flush removes all items from the cache
	Flush(ctx context.Context)
}

// Predefined cache key prefixes per snapshot family
const (
	PrefixEvent        = "event:v1:"
	PrefixBooking      = "booking:v1:"
	PrefixCredits      = "credits:v1:"
	PrefixLedger       = "ledger:v1:"
	PrefixSubscription = "subscription:v1:"
	PrefixCatalog      = "catalog:v1:"
)
