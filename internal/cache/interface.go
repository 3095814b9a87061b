// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

// Package cache provides the metadata cache used by the catalog client.
//
// Two implementations exist: an in-memory TTL cache (default, used in tests)
// and a badger-backed persistent cache that survives restarts. Values are raw
// bytes; callers own serialization.
package cache

import "time"

// Cacher defines the interface for cache implementations.
//
//	var c Cacher = NewMemory(24 * time.Hour)
//	c.Set("movie:603", payload)
//	if val, ok := c.Get("movie:603"); ok {
//	    // Use cached value
//	}
type Cacher interface {
	// Get retrieves a value from the cache.
	// Returns the value and true if found and not expired.
	Get(key string) ([]byte, bool)

	// Set stores a value in the cache with the default TTL.
	Set(key string, value []byte)

	// SetWithTTL stores a value with a custom TTL.
	SetWithTTL(key string, value []byte, ttl time.Duration)

	// Delete removes a value from the cache.
	Delete(key string)

	// Clear removes all entries from the cache.
	Clear()

	// GetStats returns cache statistics.
	GetStats() Stats

	// Close releases cache resources.
	Close() error
}

// Stats is a snapshot of cache performance counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	TotalKeys int64
}

// HitRate returns the hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// Verify interface implementations at compile time
var (
	_ Cacher = (*Memory)(nil)
	_ Cacher = (*Badger)(nil)
)
