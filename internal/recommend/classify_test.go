// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package recommend

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		kind     MediaKind
		language string
		genres   []int64
		want     ContentKind
	}{
		{"plain movie", MediaMovie, "en", []int64{28, 12}, KindMovie},
		{"plain tv", MediaTV, "en", []int64{18}, KindTV},
		{"japanese animated tv is anime", MediaTV, "ja", []int64{16, 10759}, KindAnime},
		{"japanese animated movie is anime", MediaMovie, "ja", []int64{16}, KindAnime},
		{"japanese live action stays tv", MediaTV, "ja", []int64{18}, KindTV},
		{"western animation stays movie", MediaMovie, "en", []int64{16, 35}, KindMovie},
		{"no metadata stays stored kind", MediaMovie, "", nil, KindMovie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			item := &EnrichedItem{
				TrackedItem: TrackedItem{Kind: tt.kind},
				Meta: ItemMetadata{
					OriginalLanguage: tt.language,
					GenreIDs:         tt.genres,
				},
			}
			if got := Classify(item); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}
