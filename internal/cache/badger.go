// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package cache

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// Badger is a persistent cache backed by badger v4. Entries expire via
// badger's native TTL support, so cached metadata survives restarts without
// going stale.
type Badger struct {
	db     *badger.DB
	ttl    time.Duration
	logger zerolog.Logger

	statsMu sync.Mutex
	stats   Stats
}

// NewBadger opens (or creates) a badger-backed cache at path.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBadger(path string, ttl time.Duration, logger zerolog.Logger) (*Badger, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithIndexCacheSize(64 << 20)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger cache at %s: %w", path, err)
	}

	return &Badger{
		db:     db,
		ttl:    ttl,
		logger: logger.With().Str("component", "cache").Logger(),
	}, nil
}

// Get retrieves a value. Badger handles TTL expiry internally; an expired key
// behaves exactly like a missing key.
func (c *Badger) Get(key string) ([]byte, bool) {
	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			c.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		c.recordMiss()
		return nil, false
	}

	c.recordHit()
	return value, true
}

// Set stores a value with the default TTL.
func (c *Badger) Set(key string, value []byte) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL.
func (c *Badger) SetWithTTL(key string, value []byte, ttl time.Duration) {
	err := c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), value).WithTTL(ttl)
		return txn.SetEntry(e)
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Delete removes a cache entry.
func (c *Badger) Delete(key string) {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Cache delete failed")
	}
	c.recordEviction()
}

// Clear drops all cache entries.
func (c *Badger) Clear() {
	if err := c.db.DropAll(); err != nil {
		c.logger.Warn().Err(err).Msg("Cache clear failed")
	}
}

// GetStats returns a snapshot of cache statistics.
func (c *Badger) GetStats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()

	stats := c.stats
	lsm, vlog := c.db.Size()
	stats.TotalKeys = lsm + vlog // bytes on disk, not key count
	return stats
}

// RunGC runs badger value log garbage collection, looping while GC keeps
// reclaiming space. Called periodically by the supervised GC service.
// ErrNoRewrite means nothing was left to reclaim and is not an error.
func (c *Badger) RunGC() error {
	for {
		err := c.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Close closes the underlying badger database.
func (c *Badger) Close() error {
	return c.db.Close()
}

func (c *Badger) recordHit() {
	c.statsMu.Lock()
	c.stats.Hits++
	c.statsMu.Unlock()
}

func (c *Badger) recordMiss() {
	c.statsMu.Lock()
	c.stats.Misses++
	c.statsMu.Unlock()
}

func (c *Badger) recordEviction() {
	c.statsMu.Lock()
	c.stats.Evictions++
	c.statsMu.Unlock()
}
