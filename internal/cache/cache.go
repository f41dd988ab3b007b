// Package cache provides the TTL-bound key/value store shared by the
// ranking and explanation services. Backends are best-effort: a store
// that is unavailable behaves as a permanent miss, never as an error.
package cache

import "time"

// Default TTLs for the cached value classes.
const (
	RankingTTL     = 30 * time.Minute
	ExplanationTTL = 12 * time.Hour
	DailyUsageTTL  = 24 * time.Hour
)

// Store is a TTL-expiring key/value store. Both operations are
// best-effort; Set may silently drop and Get reports a miss for
// anything expired, evicted or never written.
type Store interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
}
