package cache

import "time"

// CacheService is the read-cache abstraction used by the catalog layer.
type CacheService interface {
	// Get returns the cached value and whether the key was present.
	Get(key string) (interface{}, bool)

	// Set stores a value under key for the given duration.
	Set(key string, value interface{}, duration time.Duration)

	// Delete drops a single key.
	Delete(key string)

	// Flush drops everything.
	Flush()
}
