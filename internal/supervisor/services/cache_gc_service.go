// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector is satisfied by *cache.Badger. Value log GC has to be
// driven by the application; Badger never runs it on its own.
type GarbageCollector interface {
	RunGC() error
}

// CacheGCService periodically runs value log garbage collection on the
// Badger-backed metadata cache.
type CacheGCService struct {
	collector GarbageCollector
	interval  time.Duration
	logger    zerolog.Logger
}

// NewCacheGCService creates the GC loop. A non-positive interval falls back
// to one hour.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCacheGCService(collector GarbageCollector, interval time.Duration, logger zerolog.Logger) *CacheGCService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CacheGCService{
		collector: collector,
		interval:  interval,
		logger:    logger.With().Str("component", "cache-gc").Logger(),
	}
}

// Serve implements suture.Service. GC failures are logged and retried on
// the next tick rather than crashing the service.
func (s *CacheGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.collector.RunGC(); err != nil {
				s.logger.Warn().Err(err).Msg("Cache value log GC failed")
			} else {
				s.logger.Debug().Msg("Cache value log GC completed")
			}
		}
	}
}

// String identifies the service in supervision logs.
func (s *CacheGCService) String() string {
	return "cache-gc"
}
