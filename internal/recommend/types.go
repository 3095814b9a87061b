// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

// Package recommend implements the candidate selection engine behind the
// "pick something for me" endpoint.
//
// Given a user's tracked lists and a set of content filters, the engine
// selects one item uniformly at random while excluding recently shown items
// (cooldown), honoring the user's age policy, and recording a selection event
// with enough context to evaluate the policy later.
//
// The package depends only on the Store, MetadataProvider, and AgePolicy
// interfaces; database and catalog adapters implement them.
package recommend

import (
	"context"
	"time"
)

// MediaKind is the stored media kind of a tracked item.
type MediaKind string

const (
	MediaMovie MediaKind = "movie"
	MediaTV    MediaKind = "tv"
)

// ContentKind is the derived content label used for filtering. Unlike
// MediaKind it distinguishes Japanese animated works.
type ContentKind string

const (
	KindMovie ContentKind = "movie"
	KindTV    ContentKind = "tv"
	KindAnime ContentKind = "anime"
)

// ListName identifies which personal list a tracked item belongs to.
type ListName string

const (
	ListWatchlist ListName = "watchlist"
	ListWatched   ListName = "watched"
	ListRewatched ListName = "rewatched"
	ListDropped   ListName = "dropped"
)

const (
	// AnimationGenreID is the catalog genre id for animation.
	AnimationGenreID int64 = 16

	// JapaneseLanguage is the catalog language code for Japanese.
	JapaneseLanguage = "ja"

	// AlgorithmTag identifies the selection policy in recorded events.
	AlgorithmTag = "random-v1"
)

// Action states for a selection event.
const (
	ActionShown    = "shown"
	ActionAccepted = "accepted"
	ActionSkipped  = "skipped"
)

// TrackedItem is a user's record of one piece of media.
type TrackedItem struct {
	ItemID      int64
	Kind        MediaKind
	List        ListName
	Rating      *int
	AddedAt     time.Time
	LastShownAt *time.Time
}

// ItemMetadata is transient catalog metadata for an item.
type ItemMetadata struct {
	Title            string
	PosterPath       string
	GenreIDs         []int64
	OriginalLanguage string
	Adult            bool
	ReleaseDate      string
	VoteAverage      float64
}

// EnrichedItem is a TrackedItem joined with catalog metadata for one request.
// Degraded marks items whose lookup failed and received default metadata.
type EnrichedItem struct {
	TrackedItem
	Meta     ItemMetadata
	Degraded bool
}

// RestrictedFor reports whether the item must be withheld from a user whose
// age policy requires filtering. Degraded items have unknown adult status and
// are treated as restricted when the policy is active.
func (e *EnrichedItem) RestrictedFor(mustRestrict bool) bool {
	if !mustRestrict {
		return false
	}
	return e.Meta.Adult || e.Degraded
}

// FilterSpec is a validated, defaulted filter specification.
// Immutable once constructed; nil bounds mean unbounded (an explicit 0 is a
// valid bound distinct from unset).
type FilterSpec struct {
	Kinds     []ContentKind
	Lists     []ListName
	MinRating *int
	MaxRating *int
	YearFrom  *int
	YearTo    *int
	Genres    map[int64]struct{}
}

// HasKind reports whether the spec selects the given content kind.
func (s *FilterSpec) HasKind(k ContentKind) bool {
	for _, kind := range s.Kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// HasList reports whether the spec selects the given list.
func (s *FilterSpec) HasList(l ListName) bool {
	for _, list := range s.Lists {
		if list == l {
			return true
		}
	}
	return false
}

// SelectionKey identifies a previously shown item for cooldown exclusion.
type SelectionKey struct {
	ItemID int64
	Kind   MediaKind
}

// PoolMetrics records the surviving candidate count after each pipeline
// stage, plus a rating histogram over the initial pool. Write-once per
// request and persisted with the selection event.
type PoolMetrics struct {
	InitialCount           int         `json:"initial_count"`
	AfterTypeFilter        int         `json:"after_type_filter"`
	AfterCooldown          int         `json:"after_cooldown"`
	AfterAdditionalFilters int         `json:"after_additional_filters"`
	RatingHistogram        map[int]int `json:"rating_histogram"`
	DegradedLookups        int         `json:"degraded_lookups"`
}

// FiltersSnapshot is a replayable record of the request filters.
type FiltersSnapshot struct {
	Movies    bool    `json:"movies"`
	TV        bool    `json:"tv"`
	Anime     bool    `json:"anime"`
	Watchlist bool    `json:"watchlist"`
	Watched   bool    `json:"watched"`
	MinRating *int    `json:"min_rating"`
	MaxRating *int    `json:"max_rating"`
	YearFrom  *int    `json:"year_from"`
	YearTo    *int    `json:"year_to"`
	Genres    []int64 `json:"genres"`
}

// TemporalContext captures when the selection happened.
type TemporalContext struct {
	Hour      int  `json:"hour"`
	DayOfWeek int  `json:"day_of_week"`
	Weekend   bool `json:"weekend"`
}

// MLFeatures is the placeholder feature surface persisted with each
// selection. The heuristic values carry no predictive meaning today; the
// schema is kept stable so future model training can consume history.
type MLFeatures struct {
	Similarity          float64 `json:"similarity"`
	Novelty             float64 `json:"novelty"`
	Diversity           float64 `json:"diversity"`
	PredictedAcceptance float64 `json:"predicted_acceptance"`
	PredictedRating     *int    `json:"predicted_rating"`
}

// SelectionEvent is the persisted record of one recommendation being shown.
// The action field is later mutated when the user accepts or skips.
type SelectionEvent struct {
	ID        string
	UserID    int64
	ItemID    int64
	Kind      MediaKind
	Algorithm string
	Action    string
	Filters   FiltersSnapshot
	Pool      PoolMetrics
	Temporal  TemporalContext
	Features  MLFeatures
	CreatedAt time.Time
}

// Outcome distinguishes the expected business results of a selection.
type Outcome string

const (
	// OutcomeRecommended means an item was selected.
	OutcomeRecommended Outcome = "recommended"
	// OutcomeListsEmpty means the selected lists held no items at all.
	OutcomeListsEmpty Outcome = "lists_empty"
	// OutcomeNoCandidates means filters or cooldown removed every candidate.
	OutcomeNoCandidates Outcome = "no_candidates"
	// OutcomeAllRestricted means every remaining candidate was age-restricted.
	OutcomeAllRestricted Outcome = "all_restricted"
)

// RecommendedItem is the catalog-shaped payload returned on success.
type RecommendedItem struct {
	ItemID      int64       `json:"item_id"`
	Kind        ContentKind `json:"kind"`
	MediaKind   MediaKind   `json:"media_kind"`
	Title       string      `json:"title"`
	PosterPath  string      `json:"poster_path,omitempty"`
	VoteAverage float64     `json:"vote_average"`
	ReleaseDate string      `json:"release_date,omitempty"`
	GenreIDs    []int64     `json:"genre_ids"`
	UserRating  *int        `json:"user_rating,omitempty"`
}

// Result is the outcome of one GetRecommendation call. Business failures are
// expressed here, not as errors.
type Result struct {
	Outcome Outcome
	Item    *RecommendedItem
	// EventID is empty when the selection event write failed (degraded path).
	EventID string
	Pool    PoolMetrics
}

// Success reports whether an item was selected.
func (r *Result) Success() bool {
	return r.Outcome == OutcomeRecommended
}

// Store provides tracked items and selection event persistence.
type Store interface {
	// TrackedItems returns the user's items belonging to any of the lists.
	TrackedItems(ctx context.Context, userID int64, lists []ListName) ([]TrackedItem, error)

	// RecentSelectionKeys returns (item id, kind) pairs of selection events
	// recorded for the user at or after since.
	RecentSelectionKeys(ctx context.Context, userID int64, since time.Time) ([]SelectionKey, error)

	// RecordSelection persists a selection event and returns its id.
	RecordSelection(ctx context.Context, ev *SelectionEvent) (string, error)

	// MarkRecommended atomically increments the item's times-recommended
	// counter and updates its last-recommended timestamp.
	MarkRecommended(ctx context.Context, userID, itemID int64, kind MediaKind, at time.Time) error
}

// MetadataProvider resolves catalog metadata for a single item.
type MetadataProvider interface {
	Lookup(ctx context.Context, itemID int64, kind MediaKind) (*ItemMetadata, error)
}

// AgePolicy reports whether restricted content must be excluded for a user.
type AgePolicy interface {
	ShouldRestrict(ctx context.Context, userID int64) (bool, error)
}
