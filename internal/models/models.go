// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

// Package models holds API request/response DTOs and persistence-facing
// record shapes shared between the database and api packages.
package models

import "time"

// WatchlistEntry is a user's tracked item as stored, including the
// recommendation counters maintained by the selection engine.
type WatchlistEntry struct {
	UserID            int64      `json:"user_id"`
	ItemID            int64      `json:"item_id"`
	MediaKind         string     `json:"media_kind"`
	List              string     `json:"list"`
	Rating            *int       `json:"rating,omitempty"`
	AddedAt           time.Time  `json:"added_at"`
	LastShownAt       *time.Time `json:"last_shown_at,omitempty"`
	TimesRecommended  int        `json:"times_recommended"`
	LastRecommendedAt *time.Time `json:"last_recommended_at,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// AddWatchlistItemRequest adds an item to one of the user's lists.
type AddWatchlistItemRequest struct {
	ItemID    int64  `json:"item_id" validate:"min=1"`
	MediaKind string `json:"media_kind" validate:"oneof=movie tv"`
	List      string `json:"list" validate:"oneof=watchlist watched rewatched dropped"`
	Rating    *int   `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
}

// UpdateWatchlistItemRequest moves an item between lists or changes its
// rating. Both fields are optional; at least one must be set.
type UpdateWatchlistItemRequest struct {
	MediaKind string  `json:"media_kind" validate:"oneof=movie tv"`
	List      *string `json:"list,omitempty" validate:"omitempty,oneof=watchlist watched rewatched dropped"`
	Rating    *int    `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
}

// SetBirthdateRequest stores the user's birth date for the age policy.
type SetBirthdateRequest struct {
	// BirthDate in YYYY-MM-DD form.
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
}

// EventActionRequest reports the user's reaction to a shown recommendation.
type EventActionRequest struct {
	Action string `json:"action" validate:"oneof=accepted skipped"`
}
