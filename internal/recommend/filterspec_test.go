// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package recommend

import (
	"net/url"
	"reflect"
	"testing"
)

func TestParseFilterSpec_Defaults(t *testing.T) {
	t.Parallel()

	spec := ParseFilterSpec(url.Values{})

	wantKinds := []ContentKind{KindMovie, KindTV, KindAnime}
	if !reflect.DeepEqual(spec.Kinds, wantKinds) {
		t.Errorf("Kinds = %v, want %v", spec.Kinds, wantKinds)
	}
	wantLists := []ListName{ListWatchlist}
	if !reflect.DeepEqual(spec.Lists, wantLists) {
		t.Errorf("Lists = %v, want %v", spec.Lists, wantLists)
	}
	if spec.MinRating != nil || spec.MaxRating != nil {
		t.Error("rating bounds should be nil when unset")
	}
	if spec.YearFrom != nil || spec.YearTo != nil {
		t.Error("year bounds should be nil when unset")
	}
	if spec.Genres != nil {
		t.Errorf("Genres = %v, want nil", spec.Genres)
	}
}

func TestParseFilterSpec_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []ContentKind
	}{
		{"single", "movie", []ContentKind{KindMovie}},
		{"multiple", "tv,anime", []ContentKind{KindTV, KindAnime}},
		{"deduplicated", "movie,movie,tv", []ContentKind{KindMovie, KindTV}},
		{"case insensitive", "Movie,TV", []ContentKind{KindMovie, KindTV}},
		{"whitespace trimmed", " movie , tv ", []ContentKind{KindMovie, KindTV}},
		{"unknown tokens dropped", "movie,documentary", []ContentKind{KindMovie}},
		{"all unknown falls back", "documentary,short", []ContentKind{KindMovie, KindTV, KindAnime}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			spec := ParseFilterSpec(url.Values{"kinds": {tt.raw}})
			if !reflect.DeepEqual(spec.Kinds, tt.want) {
				t.Errorf("Kinds = %v, want %v", spec.Kinds, tt.want)
			}
		})
	}
}

func TestParseFilterSpec_Lists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []ListName
	}{
		{"watchlist", "watchlist", []ListName{ListWatchlist}},
		{"watched", "watched", []ListName{ListWatched}},
		{"both", "watchlist,watched", []ListName{ListWatchlist, ListWatched}},
		{"rewatched not selectable", "rewatched", []ListName{ListWatchlist}},
		{"dropped not selectable", "dropped,watched", []ListName{ListWatched}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			spec := ParseFilterSpec(url.Values{"lists": {tt.raw}})
			if !reflect.DeepEqual(spec.Lists, tt.want) {
				t.Errorf("Lists = %v, want %v", spec.Lists, tt.want)
			}
		})
	}
}

func TestParseFilterSpec_OptionalInts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		param string
		raw   string
		want  *int
	}{
		{"valid min rating", "min_rating", "7", intPtr(7)},
		{"explicit zero is a bound", "min_rating", "0", intPtr(0)},
		{"negative accepted", "min_rating", "-1", intPtr(-1)},
		{"malformed is unset", "min_rating", "seven", nil},
		{"empty is unset", "min_rating", "", nil},
		{"year parsed", "year_from", "1999", intPtr(1999)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			spec := ParseFilterSpec(url.Values{tt.param: {tt.raw}})
			var got *int
			switch tt.param {
			case "min_rating":
				got = spec.MinRating
			case "year_from":
				got = spec.YearFrom
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("bound = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("bound = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestParseFilterSpec_Genres(t *testing.T) {
	t.Parallel()

	spec := ParseFilterSpec(url.Values{"genres": {"16,35,bogus,16"}})

	want := map[int64]struct{}{16: {}, 35: {}}
	if !reflect.DeepEqual(spec.Genres, want) {
		t.Errorf("Genres = %v, want %v", spec.Genres, want)
	}

	spec = ParseFilterSpec(url.Values{"genres": {"x,y"}})
	if spec.Genres != nil {
		t.Errorf("Genres = %v, want nil when no valid ids remain", spec.Genres)
	}
}

func TestFilterSpec_Snapshot(t *testing.T) {
	t.Parallel()

	spec := ParseFilterSpec(url.Values{
		"kinds":      {"anime"},
		"lists":      {"watched"},
		"min_rating": {"6"},
		"year_to":    {"2020"},
		"genres":     {"35,16,99"},
	})

	snap := spec.Snapshot()

	if snap.Movies || snap.TV || !snap.Anime {
		t.Errorf("kind flags = %v/%v/%v, want false/false/true", snap.Movies, snap.TV, snap.Anime)
	}
	if snap.Watchlist || !snap.Watched {
		t.Errorf("list flags = %v/%v, want false/true", snap.Watchlist, snap.Watched)
	}
	if snap.MinRating == nil || *snap.MinRating != 6 {
		t.Errorf("MinRating = %v, want 6", snap.MinRating)
	}
	if snap.YearTo == nil || *snap.YearTo != 2020 {
		t.Errorf("YearTo = %v, want 2020", snap.YearTo)
	}
	// Genres must come out sorted for replayability.
	wantGenres := []int64{16, 35, 99}
	if !reflect.DeepEqual(snap.Genres, wantGenres) {
		t.Errorf("Genres = %v, want %v", snap.Genres, wantGenres)
	}
}

func intPtr(n int) *int { return &n }
