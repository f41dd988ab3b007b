package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog"
)

// RistrettoStore is the in-process Store implementation backed by a
// ristretto cache with per-entry TTLs.
type RistrettoStore struct {
	cache *ristretto.Cache
	log   zerolog.Logger
}

// NewRistretto creates a ristretto-backed store. Sizing is generous
// relative to the natural key cardinality (request fingerprints and
// normalized questions), so admission rejections are rare.
func NewRistretto(log zerolog.Logger) (*RistrettoStore, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100_000,
		MaxCost:     10_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}

	return &RistrettoStore{
		cache: c,
		log:   log.With().Str("component", "cache").Logger(),
	}, nil
}

// Get returns the cached value for key, or a miss if expired or absent.
func (s *RistrettoStore) Get(key string) (interface{}, bool) {
	value, ok := s.cache.Get(key)
	if ok {
		s.log.Debug().Str("key", key).Msg("Cache hit")
	} else {
		s.log.Debug().Str("key", key).Msg("Cache miss")
	}
	return value, ok
}

// Set stores value under key for ttl. Best-effort: ristretto may
// reject the entry, which callers must tolerate as a later miss.
func (s *RistrettoStore) Set(key string, value interface{}, ttl time.Duration) {
	if !s.cache.SetWithTTL(key, value, 1, ttl) {
		s.log.Debug().Str("key", key).Msg("Cache set dropped")
	}
}

// Wait blocks until buffered writes are applied. Used by tests and
// cache warm-up; normal request paths never need it.
func (s *RistrettoStore) Wait() {
	s.cache.Wait()
}

// Close releases the cache resources.
func (s *RistrettoStore) Close() {
	s.cache.Close()
}
