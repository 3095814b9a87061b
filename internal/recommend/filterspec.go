// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package recommend

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Query parameter names accepted by ParseFilterSpec.
const (
	paramKinds     = "kinds"
	paramLists     = "lists"
	paramMinRating = "min_rating"
	paramMaxRating = "max_rating"
	paramYearFrom  = "year_from"
	paramYearTo    = "year_to"
	paramGenres    = "genres"
)

// ParseFilterSpec turns raw query parameters into a validated FilterSpec.
// Parsing is total: malformed input resolves to safe defaults and never
// produces an error. Unrecognized tokens are dropped; empty selections fall
// back to defaults ({movie,tv,anime} kinds, {watchlist} lists).
func ParseFilterSpec(params url.Values) FilterSpec {
	spec := FilterSpec{
		Kinds:     parseKinds(params.Get(paramKinds)),
		Lists:     parseLists(params.Get(paramLists)),
		MinRating: parseOptionalInt(params.Get(paramMinRating)),
		MaxRating: parseOptionalInt(params.Get(paramMaxRating)),
		YearFrom:  parseOptionalInt(params.Get(paramYearFrom)),
		YearTo:    parseOptionalInt(params.Get(paramYearTo)),
		Genres:    parseGenres(params.Get(paramGenres)),
	}
	return spec
}

// parseKinds keeps recognized content kinds, defaulting to all of them.
func parseKinds(raw string) []ContentKind {
	var kinds []ContentKind
	seen := make(map[ContentKind]bool)
	for _, token := range splitCSV(raw) {
		var k ContentKind
		switch token {
		case string(KindMovie):
			k = KindMovie
		case string(KindTV):
			k = KindTV
		case string(KindAnime):
			k = KindAnime
		default:
			continue
		}
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		return []ContentKind{KindMovie, KindTV, KindAnime}
	}
	return kinds
}

// parseLists keeps recognized list names, defaulting to the watchlist.
// Only watchlist and watched are selectable for recommendations.
func parseLists(raw string) []ListName {
	var lists []ListName
	seen := make(map[ListName]bool)
	for _, token := range splitCSV(raw) {
		var l ListName
		switch token {
		case string(ListWatchlist):
			l = ListWatchlist
		case string(ListWatched):
			l = ListWatched
		default:
			continue
		}
		if !seen[l] {
			seen[l] = true
			lists = append(lists, l)
		}
	}
	if len(lists) == 0 {
		return []ListName{ListWatchlist}
	}
	return lists
}

// parseOptionalInt returns nil for missing or malformed values. An explicit
// "0" is a valid bound distinct from unset.
func parseOptionalInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// parseGenres parses a comma-separated genre id set, silently dropping
// invalid tokens. Returns nil when no valid ids remain.
func parseGenres(raw string) map[int64]struct{} {
	var genres map[int64]struct{}
	for _, token := range splitCSV(raw) {
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			continue
		}
		if genres == nil {
			genres = make(map[int64]struct{})
		}
		genres[id] = struct{}{}
	}
	return genres
}

// splitCSV splits on commas and trims whitespace, dropping empty tokens.
func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Snapshot converts the spec into its replayable persisted form.
func (s *FilterSpec) Snapshot() FiltersSnapshot {
	snap := FiltersSnapshot{
		Movies:    s.HasKind(KindMovie),
		TV:        s.HasKind(KindTV),
		Anime:     s.HasKind(KindAnime),
		Watchlist: s.HasList(ListWatchlist),
		Watched:   s.HasList(ListWatched),
		MinRating: s.MinRating,
		MaxRating: s.MaxRating,
		YearFrom:  s.YearFrom,
		YearTo:    s.YearTo,
	}
	if len(s.Genres) > 0 {
		snap.Genres = make([]int64, 0, len(s.Genres))
		for id := range s.Genres {
			snap.Genres = append(snap.Genres, id)
		}
		sort.Slice(snap.Genres, func(i, j int) bool { return snap.Genres[i] < snap.Genres[j] })
	}
	return snap
}
