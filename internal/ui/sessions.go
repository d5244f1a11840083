package ui

import (
	"sync"

	"warehouse/loadmap/internal/common"
	"warehouse/loadmap/internal/constants"
	"warehouse/loadmap/internal/editor"
	"warehouse/loadmap/internal/logging"
	"warehouse/loadmap/internal/metrics"
)

// SessionStore keeps one editor controller per browser session. Idle
// controllers expire with the cache entry, discarding unsaved edits.
type SessionStore struct {
	cache      *common.CacheService
	newBackend func() editor.Backend
	metrics    *metrics.MetricsRegistry
	mu         sync.Mutex
}

// NewSessionStore builds controllers on demand from newBackend.
func NewSessionStore(cache *common.CacheService, newBackend func() editor.Backend, metricsReg *metrics.MetricsRegistry) *SessionStore {
	s := &SessionStore{cache: cache, newBackend: newBackend, metrics: metricsReg}
	cache.OnEvicted(func(key string, v interface{}) {
		if c, ok := v.(*editor.Controller); ok {
			c.Close()
			s.metrics.EditorSessionsChanged(-1)
			logging.Debug("Editor session expired", "key", key)
		}
	})
	return s
}

// Controller returns the controller for sessionID, creating it on first use.
func (s *SessionStore) Controller(sessionID string) *editor.Controller {
	key := string(constants.CachePrefixUISession) + sessionID

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.cache.GetObject(key); ok {
		if c, ok := v.(*editor.Controller); ok {
			return c
		}
	}

	// An expired entry may still be stored until the janitor runs. Deleting it
	// fires OnEvicted so the old controller is counted out before overwriting.
	s.cache.Delete(key)

	c := editor.NewController(s.newBackend())
	s.cache.SetObject(key, c)
	s.metrics.EditorSessionsChanged(1)
	return c
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	return s.cache.ItemCount()
}
