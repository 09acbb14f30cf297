package places

import (
	"sync"
	"time"
)

// MemoryStore is a process-local Storage with per-entry expiry. It is the
// default cache backend when no Redis URL is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// NewMemoryStore creates an empty in-memory cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Get returns the cached value, or nil when absent or expired.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, nil
	}
	return e.data, nil
}

// Set stores a value; exp <= 0 means no expiry.
func (s *MemoryStore) Set(key string, val []byte, exp time.Duration) error {
	e := memoryEntry{data: val}
	if exp > 0 {
		e.expires = time.Now().Add(exp)
	}
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}
