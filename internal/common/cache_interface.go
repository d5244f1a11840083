package common

import (
	"encoding/json"
	"time"
)

// CacheInterface defines the contract for cache implementations. Values are
// opaque bytes so the in-memory and Redis backends behave identically.
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value []byte, duration time.Duration)

	// Get retrieves a value from cache by key
	// Returns the value and true if found, nil and false otherwise
	Get(key string) ([]byte, bool)

	// Delete removes a value from cache by key
	Delete(key string)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}

// GetJSON decodes the cached JSON at key into a T. A value that no longer
// decodes is treated as a miss.
func GetJSON[T any](c CacheInterface, key string) (*T, bool) {
	data, found := c.Get(key)
	if !found {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// SetJSON stores v as JSON. Values that fail to marshal are not cached.
func SetJSON(c CacheInterface, key string, v any, duration time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.Set(key, data, duration)
	return nil
}
