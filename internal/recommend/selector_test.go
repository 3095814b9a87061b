// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package recommend

import "testing"

func adultMovie(id int64) EnrichedItem {
	item := enrichedMovie(id)
	item.Meta.Adult = true
	return item
}

func TestSelector_EmptyPool(t *testing.T) {
	t.Parallel()

	s := newSelector(1)
	if _, ok := s.Select(nil, false); ok {
		t.Error("Select on an empty pool must report no choice")
	}
}

func TestSelector_SingleCandidate(t *testing.T) {
	t.Parallel()

	s := newSelector(1)
	candidates := []EnrichedItem{enrichedMovie(7)}

	chosen, ok := s.Select(candidates, false)
	if !ok {
		t.Fatal("Select returned no choice for a one-item pool")
	}
	if chosen.ItemID != 7 {
		t.Errorf("chosen item = %d, want 7", chosen.ItemID)
	}
}

func TestSelector_EveryCandidateReachable(t *testing.T) {
	t.Parallel()

	s := newSelector(42)
	candidates := []EnrichedItem{
		enrichedMovie(1), enrichedMovie(2), enrichedMovie(3),
	}

	seen := make(map[int64]bool)
	for i := 0; i < 200; i++ {
		chosen, ok := s.Select(candidates, false)
		if !ok {
			t.Fatal("Select returned no choice")
		}
		seen[chosen.ItemID] = true
	}
	for _, id := range []int64{1, 2, 3} {
		if !seen[id] {
			t.Errorf("item %d was never selected in 200 draws", id)
		}
	}
}

func TestSelector_RedrawAvoidsRestricted(t *testing.T) {
	t.Parallel()

	s := newSelector(42)
	candidates := []EnrichedItem{
		adultMovie(1),
		enrichedMovie(2),
		adultMovie(3),
	}

	for i := 0; i < 100; i++ {
		chosen, ok := s.Select(candidates, true)
		if !ok {
			t.Fatal("Select returned no choice despite a permitted candidate")
		}
		if chosen.RestrictedFor(true) {
			t.Fatalf("draw %d returned restricted item %d", i, chosen.ItemID)
		}
	}
}

func TestSelector_AllRestricted(t *testing.T) {
	t.Parallel()

	s := newSelector(42)
	candidates := []EnrichedItem{adultMovie(1), adultMovie(2)}

	if _, ok := s.Select(candidates, true); ok {
		t.Error("Select must fail when every candidate is restricted")
	}
}

func TestSelector_DegradedRestrictedUnderPolicy(t *testing.T) {
	t.Parallel()

	s := newSelector(42)
	// Unknown adult status counts as restricted when the policy is active.
	candidates := []EnrichedItem{enrichedMovie(1, withDegraded())}

	if _, ok := s.Select(candidates, true); ok {
		t.Error("degraded-only pool must be all-restricted under an active policy")
	}

	// Without the policy the same pool is selectable.
	if _, ok := s.Select(candidates, false); !ok {
		t.Error("degraded item must be selectable when no policy applies")
	}
}

func TestSelector_DeterministicWithSeed(t *testing.T) {
	t.Parallel()

	candidates := []EnrichedItem{
		enrichedMovie(1), enrichedMovie(2), enrichedMovie(3), enrichedMovie(4),
	}

	a := newSelector(7)
	b := newSelector(7)
	for i := 0; i < 20; i++ {
		ca, _ := a.Select(candidates, false)
		cb, _ := b.Select(candidates, false)
		if ca.ItemID != cb.ItemID {
			t.Fatalf("draw %d diverged: %d vs %d", i, ca.ItemID, cb.ItemID)
		}
	}
}
