// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package recommend

import (
	"strconv"
	"time"
)

// runPipeline applies the content-kind, cooldown, and attribute filter stages
// in order, recording the surviving count after each stage into metrics.
// Stage order is fixed: the counters are only meaningful when every request
// walks the stages the same way.
func runPipeline(items []EnrichedItem, spec *FilterSpec, exclusions map[SelectionKey]struct{}, metrics *PoolMetrics) []EnrichedItem {
	metrics.InitialCount = len(items)
	metrics.RatingHistogram = ratingHistogram(items)
	for i := range items {
		if items[i].Degraded {
			metrics.DegradedLookups++
		}
	}

	candidates := filterByKind(items, spec)
	metrics.AfterTypeFilter = len(candidates)

	candidates = filterByCooldown(candidates, exclusions)
	metrics.AfterCooldown = len(candidates)

	candidates = filterByAttributes(candidates, spec)
	metrics.AfterAdditionalFilters = len(candidates)

	return candidates
}

// ratingHistogram buckets the initial pool by floor(rating). Unrated items
// count as rating 0.
func ratingHistogram(items []EnrichedItem) map[int]int {
	hist := make(map[int]int)
	for i := range items {
		rating := 0
		if items[i].Rating != nil {
			rating = *items[i].Rating
		}
		hist[rating]++
	}
	return hist
}

// filterByKind keeps items whose derived content kind is selected.
func filterByKind(items []EnrichedItem, spec *FilterSpec) []EnrichedItem {
	kept := make([]EnrichedItem, 0, len(items))
	for i := range items {
		if spec.HasKind(Classify(&items[i])) {
			kept = append(kept, items[i])
		}
	}
	return kept
}

// filterByCooldown drops items whose (item id, media kind) was shown within
// the cooldown window.
func filterByCooldown(items []EnrichedItem, exclusions map[SelectionKey]struct{}) []EnrichedItem {
	if len(exclusions) == 0 {
		return items
	}
	kept := make([]EnrichedItem, 0, len(items))
	for i := range items {
		key := SelectionKey{ItemID: items[i].ItemID, Kind: items[i].Kind}
		if _, excluded := exclusions[key]; !excluded {
			kept = append(kept, items[i])
		}
	}
	return kept
}

// filterByAttributes applies the optional rating, year, and genre filters.
func filterByAttributes(items []EnrichedItem, spec *FilterSpec) []EnrichedItem {
	ratingActive := (spec.MinRating != nil || spec.MaxRating != nil) && spec.HasList(ListWatched)
	yearActive := spec.YearFrom != nil || spec.YearTo != nil

	kept := make([]EnrichedItem, 0, len(items))
	for i := range items {
		item := &items[i]
		if ratingActive && !passesRating(item, spec) {
			continue
		}
		if yearActive && !passesYear(item, spec) {
			continue
		}
		if len(spec.Genres) > 0 && !passesGenres(item, spec) {
			continue
		}
		kept = append(kept, *item)
	}
	return kept
}

// passesRating checks the user's own rating against the bounds. Unrated
// items are treated as rating 0, so any positive minimum excludes them.
// Only applies when the watched list is selected; want-to-watch items carry
// no meaningful rating.
func passesRating(item *EnrichedItem, spec *FilterSpec) bool {
	rating := 0
	if item.Rating != nil {
		rating = *item.Rating
	}
	if spec.MinRating != nil && rating < *spec.MinRating {
		return false
	}
	if spec.MaxRating != nil && rating > *spec.MaxRating {
		return false
	}
	return true
}

// passesYear parses the release year and checks it against the bounds.
// Unparsable dates fail while a year bound is active.
func passesYear(item *EnrichedItem, spec *FilterSpec) bool {
	year, ok := releaseYear(item.Meta.ReleaseDate)
	if !ok {
		return false
	}
	if spec.YearFrom != nil && year < *spec.YearFrom {
		return false
	}
	if spec.YearTo != nil && year > *spec.YearTo {
		return false
	}
	return true
}

// passesGenres keeps the item iff its genre set intersects the filter's.
func passesGenres(item *EnrichedItem, spec *FilterSpec) bool {
	for _, g := range item.Meta.GenreIDs {
		if _, ok := spec.Genres[g]; ok {
			return true
		}
	}
	return false
}

// releaseYear extracts the year from a catalog date string (YYYY-MM-DD or a
// bare YYYY).
func releaseYear(date string) (int, bool) {
	if len(date) < 4 {
		return 0, false
	}
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Year(), true
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}
