// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Toria-web/CineChance-sub000/internal/metrics"
	"github.com/Toria-web/CineChance-sub000/internal/recommend"
)

// RecommendationStore adapts the database to the selection engine's Store
// interface.
type RecommendationStore struct {
	db *DB
}

// NewRecommendationStore creates the engine-facing store adapter.
func NewRecommendationStore(db *DB) *RecommendationStore {
	return &RecommendationStore{db: db}
}

// TrackedItems returns the user's items belonging to any of the given lists.
func (s *RecommendationStore) TrackedItems(ctx context.Context, userID int64, lists []recommend.ListName) (items []recommend.TrackedItem, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "tracked_items", start, err) }()

	if len(lists) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(lists))
	args := make([]interface{}, 0, len(lists)+1)
	args = append(args, userID)
	for i, list := range lists {
		placeholders[i] = "?"
		args = append(args, string(list))
	}

	query := fmt.Sprintf(
		`SELECT item_id, media_kind, list_name, user_rating, added_at, last_shown_at
		 FROM tracked_items
		 WHERE user_id = ? AND list_name IN (%s)`,
		strings.Join(placeholders, ", "))

	rows, err := s.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracked items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item recommend.TrackedItem
		var kind, list string
		var rating sql.NullInt32
		var lastShown sql.NullTime
		if scanErr := rows.Scan(&item.ItemID, &kind, &list, &rating, &item.AddedAt, &lastShown); scanErr != nil {
			err = fmt.Errorf("failed to scan tracked item: %w", scanErr)
			return nil, err
		}
		item.Kind = recommend.MediaKind(kind)
		item.List = recommend.ListName(list)
		if rating.Valid {
			r := int(rating.Int32)
			item.Rating = &r
		}
		if lastShown.Valid {
			t := lastShown.Time
			item.LastShownAt = &t
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tracked items: %w", err)
	}
	return items, nil
}

// RecentSelectionKeys delegates to the selection event history.
func (s *RecommendationStore) RecentSelectionKeys(ctx context.Context, userID int64, since time.Time) ([]recommend.SelectionKey, error) {
	return s.db.RecentSelectionKeys(ctx, userID, since)
}

// RecordSelection persists the event and returns its id.
func (s *RecommendationStore) RecordSelection(ctx context.Context, ev *recommend.SelectionEvent) (string, error) {
	if err := s.db.InsertSelectionEvent(ctx, ev); err != nil {
		return "", err
	}
	return ev.ID, nil
}

// MarkRecommended bumps the item's recommendation counters.
func (s *RecommendationStore) MarkRecommended(ctx context.Context, userID, itemID int64, kind recommend.MediaKind, at time.Time) error {
	return s.db.MarkRecommended(ctx, userID, itemID, string(kind), at)
}

// AgePolicy derives the restriction decision from the stored birth date.
// Users without a stored birth date are restricted; adult content requires a
// verifiable age.
type AgePolicy struct {
	db       *DB
	adultAge int
	now      func() time.Time
}

// NewAgePolicy creates the age policy with the configured adult age.
func NewAgePolicy(db *DB, adultAge int) *AgePolicy {
	if adultAge <= 0 {
		adultAge = 18
	}
	return &AgePolicy{db: db, adultAge: adultAge, now: time.Now}
}

// ShouldRestrict reports whether restricted content must be excluded for the
// user.
func (p *AgePolicy) ShouldRestrict(ctx context.Context, userID int64) (bool, error) {
	birthDate, err := p.db.Birthdate(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return true, nil
		}
		return true, err
	}
	return ageAt(birthDate, p.now()) < p.adultAge, nil
}

// ageAt computes completed years between birthDate and now.
func ageAt(birthDate, now time.Time) int {
	years := now.Year() - birthDate.Year()
	anniversary := birthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// Verify interface implementations at compile time
var (
	_ recommend.Store     = (*RecommendationStore)(nil)
	_ recommend.AgePolicy = (*AgePolicy)(nil)
)
