package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheService is the in-memory cache backed by go-cache. Besides the byte
// API it can hold live objects, which the Redis cache cannot.
type CacheService struct {
	cache *cache.Cache
}

// Ensure CacheService implements CacheInterface
var _ CacheInterface = (*CacheService)(nil)

func NewCacheService(defaultExpirationSeconds, cleanUpIntervalSeconds int) *CacheService {
	defaultExpiration := time.Duration(defaultExpirationSeconds) * time.Second
	cleanUpInterval := time.Duration(cleanUpIntervalSeconds) * time.Second
	c := cache.New(defaultExpiration, cleanUpInterval)
	return &CacheService{cache: c}
}

func (cs *CacheService) Set(key string, value []byte, duration time.Duration) {
	cs.cache.Set(key, append([]byte(nil), value...), duration)
}

func (cs *CacheService) Get(key string) ([]byte, bool) {
	val, found := cs.cache.Get(key)
	if !found {
		return nil, false
	}
	data, ok := val.([]byte)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

func (cs *CacheService) Delete(key string) {
	cs.cache.Delete(key)
}

// SetObject stores v as-is with the default expiration.
func (cs *CacheService) SetObject(key string, v interface{}) {
	cs.cache.SetDefault(key, v)
}

// GetObject returns a stored object and refreshes its expiration so active
// entries stay alive.
func (cs *CacheService) GetObject(key string) (interface{}, bool) {
	v, found := cs.cache.Get(key)
	if found {
		cs.cache.SetDefault(key, v)
	}
	return v, found
}

// OnEvicted registers a callback for expired or deleted entries.
func (cs *CacheService) OnEvicted(fn func(key string, v interface{})) {
	cs.cache.OnEvicted(fn)
}

// ItemCount returns the number of entries, including expired ones not yet
// cleaned up.
func (cs *CacheService) ItemCount() int {
	return cs.cache.ItemCount()
}

// Close closes the cache (no-op for in-memory cache)
func (cs *CacheService) Close() error {
	return nil
}
