// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package recommend

import (
	"math/rand"
	"sync"

	"github.com/Toria-web/CineChance-sub000/internal/metrics"
)

// selector draws one candidate uniformly at random, with a single bounded
// redraw when the first draw violates the user's age policy.
type selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newSelector(seed int64) *selector {
	return &selector{rng: rand.New(rand.NewSource(seed))}
}

// Select implements the two-phase selection contract:
//
//  1. Draw uniformly over the full candidate list.
//  2. If the draw is restricted for this user, rebuild the candidate list
//     without restricted items and draw once from that sublist. An empty
//     sublist means the whole pool was restricted-only.
//
// At most one redraw happens per request, and every eligible candidate keeps
// a non-zero selection probability.
func (s *selector) Select(candidates []EnrichedItem, mustRestrict bool) (*EnrichedItem, bool) {
	if len(candidates) == 0 {
		return nil, false
	}

	chosen := &candidates[s.draw(len(candidates))]
	if !chosen.RestrictedFor(mustRestrict) {
		return chosen, true
	}

	metrics.SelectionRetries.Inc()

	permitted := make([]*EnrichedItem, 0, len(candidates))
	for i := range candidates {
		if !candidates[i].RestrictedFor(mustRestrict) {
			permitted = append(permitted, &candidates[i])
		}
	}
	if len(permitted) == 0 {
		return nil, false
	}

	return permitted[s.draw(len(permitted))], true
}

func (s *selector) draw(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
