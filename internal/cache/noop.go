package cache

import "time"

// NoopStore is the "cache unavailable" behavior: every Get is a miss
// and every Set is dropped. Injected when no cache backend is
// configured so callers never nil-check.
type NoopStore struct{}

// NewNoop creates a no-op store.
func NewNoop() *NoopStore {
	return &NoopStore{}
}

// Get always reports a miss.
func (s *NoopStore) Get(string) (interface{}, bool) {
	return nil, false
}

// Set drops the value.
func (s *NoopStore) Set(string, interface{}, time.Duration) {}
