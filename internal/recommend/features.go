// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package recommend

import "time"

// Heuristic feature constants. These carry no predictive meaning; they hold
// the schema slots for a future trained model.
const (
	heuristicSimilarity = 0.5
	heuristicDiversity  = 0.5
	heuristicAcceptance = 0.5

	// noveltyHorizonDays is the age at which an item's novelty reaches zero.
	noveltyHorizonDays = 30.0
)

// buildTemporalContext captures hour, weekday, and weekend flag at selection
// time.
func buildTemporalContext(now time.Time) TemporalContext {
	day := now.Weekday()
	return TemporalContext{
		Hour:      now.Hour(),
		DayOfWeek: int(day),
		Weekend:   day == time.Saturday || day == time.Sunday,
	}
}

// buildMLFeatures computes the placeholder feature vector for the chosen
// item. Novelty decays linearly over 30 days since the item was added; items
// without an added timestamp score full novelty. Predicted rating is the
// user's own prior rating when present.
func buildMLFeatures(item *EnrichedItem, now time.Time) MLFeatures {
	return MLFeatures{
		Similarity:          heuristicSimilarity,
		Novelty:             novelty(item.AddedAt, now),
		Diversity:           heuristicDiversity,
		PredictedAcceptance: heuristicAcceptance,
		PredictedRating:     item.Rating,
	}
}

// novelty = 1 - min(1, age_in_days / 30)
func novelty(addedAt, now time.Time) float64 {
	if addedAt.IsZero() {
		return 1.0
	}
	ageDays := now.Sub(addedAt).Hours() / 24.0
	if ageDays < 0 {
		ageDays = 0
	}
	fraction := ageDays / noveltyHorizonDays
	if fraction > 1 {
		fraction = 1
	}
	return 1 - fraction
}
