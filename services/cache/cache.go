package cache

import (
	"time"
)

// CacheService is the short-lived cache used for per-source rate-limit
// blocks. A present key means the source must not be fetched yet.
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}
