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
	"github.com/Toria-web/CineChance-sub000/internal/models"
)

const watchlistColumns = `user_id, item_id, media_kind, list_name, user_rating,
	added_at, last_shown_at, times_recommended, last_recommended_at, updated_at`

// AddItem inserts a tracked item into one of the user's lists.
// Returns ErrAlreadyExists when the (user, item, kind) triple is tracked.
func (db *DB) AddItem(ctx context.Context, userID int64, req *models.AddWatchlistItemRequest) (entry *models.WatchlistEntry, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "tracked_items", start, err) }()

	var exists bool
	err = db.conn.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tracked_items WHERE user_id = ? AND item_id = ? AND media_kind = ?)`,
		userID, req.ItemID, req.MediaKind).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check tracked item: %w", err)
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	now := time.Now().UTC()
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO tracked_items (user_id, item_id, media_kind, list_name, user_rating, added_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, req.ItemID, req.MediaKind, req.List, req.Rating, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert tracked item: %w", err)
	}

	return db.getItem(ctx, userID, req.ItemID, req.MediaKind)
}

// ListItems returns the user's tracked items, optionally restricted to one
// list. Results are ordered by most recently added.
func (db *DB) ListItems(ctx context.Context, userID int64, list string) (entries []models.WatchlistEntry, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "tracked_items", start, err) }()

	query := `SELECT ` + watchlistColumns + ` FROM tracked_items WHERE user_id = ?`
	args := []interface{}{userID}
	if list != "" {
		query += ` AND list_name = ?`
		args = append(args, list)
	}
	query += ` ORDER BY added_at DESC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked items: %w", err)
	}
	defer rows.Close()

	entries = []models.WatchlistEntry{}
	for rows.Next() {
		entry, scanErr := scanWatchlistEntry(rows)
		if scanErr != nil {
			err = scanErr
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tracked items: %w", err)
	}
	return entries, nil
}

// UpdateItem changes an item's list membership and/or rating.
// Returns ErrNotFound when the item is not tracked.
func (db *DB) UpdateItem(ctx context.Context, userID, itemID int64, kind string, list *string, rating *int) (entry *models.WatchlistEntry, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("update", "tracked_items", start, err) }()

	if list == nil && rating == nil {
		return nil, fmt.Errorf("no fields to update")
	}

	setClauses := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}
	if list != nil {
		setClauses = append(setClauses, "list_name = ?")
		args = append(args, *list)
	}
	if rating != nil {
		setClauses = append(setClauses, "user_rating = ?")
		args = append(args, *rating)
	}
	args = append(args, userID, itemID, kind)

	query := fmt.Sprintf(
		`UPDATE tracked_items SET %s WHERE user_id = ? AND item_id = ? AND media_kind = ?`,
		strings.Join(setClauses, ", "))

	res, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update tracked item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return db.getItem(ctx, userID, itemID, kind)
}

// DeleteItem removes a tracked item. Returns ErrNotFound when absent.
func (db *DB) DeleteItem(ctx context.Context, userID, itemID int64, kind string) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("delete", "tracked_items", start, err) }()

	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM tracked_items WHERE user_id = ? AND item_id = ? AND media_kind = ?`,
		userID, itemID, kind)
	if err != nil {
		return fmt.Errorf("failed to delete tracked item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// getItem loads a single tracked item.
func (db *DB) getItem(ctx context.Context, userID, itemID int64, kind string) (*models.WatchlistEntry, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+watchlistColumns+` FROM tracked_items WHERE user_id = ? AND item_id = ? AND media_kind = ?`,
		userID, itemID, kind)
	entry, err := scanWatchlistEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return entry, err
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWatchlistEntry(row rowScanner) (*models.WatchlistEntry, error) {
	var e models.WatchlistEntry
	var rating sql.NullInt32
	var lastShown, lastRecommended sql.NullTime

	err := row.Scan(&e.UserID, &e.ItemID, &e.MediaKind, &e.List, &rating,
		&e.AddedAt, &lastShown, &e.TimesRecommended, &lastRecommended, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan tracked item: %w", err)
	}

	if rating.Valid {
		r := int(rating.Int32)
		e.Rating = &r
	}
	if lastShown.Valid {
		t := lastShown.Time
		e.LastShownAt = &t
	}
	if lastRecommended.Valid {
		t := lastRecommended.Time
		e.LastRecommendedAt = &t
	}
	return &e, nil
}
