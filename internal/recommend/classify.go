// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package recommend

// Classify derives the content kind of an enriched item.
//
// An item carrying the animation genre with Japanese original language is
// anime regardless of its stored media kind; everything else keeps its stored
// kind. This rule applies everywhere content-kind filtering occurs, so an
// animated Japanese film is never surfaced as a plain movie.
func Classify(item *EnrichedItem) ContentKind {
	if item.Meta.OriginalLanguage == JapaneseLanguage && hasGenre(item.Meta.GenreIDs, AnimationGenreID) {
		return KindAnime
	}
	if item.Kind == MediaTV {
		return KindTV
	}
	return KindMovie
}

func hasGenre(genres []int64, id int64) bool {
	for _, g := range genres {
		if g == id {
			return true
		}
	}
	return false
}
