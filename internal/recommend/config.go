// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package recommend

import "time"

// Config holds the engine's tunables.
type Config struct {
	// CooldownWindow is the trailing period during which an already-shown
	// item is excluded. Default: 7 days.
	CooldownWindow time.Duration

	// EnrichWorkers bounds concurrent metadata lookups per request.
	// Default: 8.
	EnrichWorkers int

	// LookupTimeout bounds a single metadata lookup. Default: 5s.
	LookupTimeout time.Duration

	// RandomSeed seeds the selector RNG. 0 seeds from the current time;
	// tests pass a fixed seed for reproducible draws.
	RandomSeed int64
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		CooldownWindow: DefaultCooldownWindow,
		EnrichWorkers:  8,
		LookupTimeout:  5 * time.Second,
		RandomSeed:     0,
	}
}

func (c *Config) applyDefaults() {
	if c.CooldownWindow <= 0 {
		c.CooldownWindow = DefaultCooldownWindow
	}
	if c.EnrichWorkers <= 0 {
		c.EnrichWorkers = 8
	}
	if c.LookupTimeout <= 0 {
		c.LookupTimeout = 5 * time.Second
	}
	if c.RandomSeed == 0 {
		c.RandomSeed = time.Now().UnixNano()
	}
}
