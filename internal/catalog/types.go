// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

// Package catalog provides the HTTP client for the TMDB-shaped metadata
// catalog, with caching, rate limiting, and a circuit breaker around the
// outbound calls.
package catalog

// genre is one catalog genre entry.
type genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// detailsResponse covers both movie and tv detail payloads. Movies carry
// title/release_date; tv uses name/first_air_date.
type detailsResponse struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	PosterPath       string  `json:"poster_path"`
	Genres           []genre `json:"genres"`
	OriginalLanguage string  `json:"original_language"`
	Adult            bool    `json:"adult"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	VoteAverage      float64 `json:"vote_average"`
}
