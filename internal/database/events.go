// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/Toria-web/CineChance-sub000/internal/metrics"
	"github.com/Toria-web/CineChance-sub000/internal/recommend"
)

// InsertSelectionEvent persists a selection event. The snapshot payloads are
// stored as JSON text so future model training can consume them as-is.
func (db *DB) InsertSelectionEvent(ctx context.Context, ev *recommend.SelectionEvent) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "selection_events", start, err) }()

	filters, err := json.Marshal(ev.Filters)
	if err != nil {
		return fmt.Errorf("failed to marshal filters snapshot: %w", err)
	}
	pool, err := json.Marshal(ev.Pool)
	if err != nil {
		return fmt.Errorf("failed to marshal pool metrics: %w", err)
	}
	temporal, err := json.Marshal(ev.Temporal)
	if err != nil {
		return fmt.Errorf("failed to marshal temporal context: %w", err)
	}
	features, err := json.Marshal(ev.Features)
	if err != nil {
		return fmt.Errorf("failed to marshal ml features: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO selection_events
		 (id, user_id, item_id, media_kind, algorithm, action, filters, pool_metrics, temporal_context, ml_features, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.UserID, ev.ItemID, string(ev.Kind), ev.Algorithm, ev.Action,
		string(filters), string(pool), string(temporal), string(features), ev.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert selection event: %w", err)
	}
	return nil
}

// RecentSelectionKeys returns the (item id, media kind) pairs of selection
// events recorded for the user at or after since. Feeds the cooldown policy.
func (db *DB) RecentSelectionKeys(ctx context.Context, userID int64, since time.Time) (keys []recommend.SelectionKey, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "selection_events", start, err) }()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT DISTINCT item_id, media_kind FROM selection_events
		 WHERE user_id = ? AND created_at >= ?`,
		userID, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query recent selections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key recommend.SelectionKey
		var kind string
		if scanErr := rows.Scan(&key.ItemID, &kind); scanErr != nil {
			err = fmt.Errorf("failed to scan selection key: %w", scanErr)
			return nil, err
		}
		key.Kind = recommend.MediaKind(kind)
		keys = append(keys, key)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate selection keys: %w", err)
	}
	return keys, nil
}

// UpdateSelectionAction mutates the action field of a recorded event
// (accepted/skipped feedback). Returns ErrNotFound for unknown event ids.
func (db *DB) UpdateSelectionAction(ctx context.Context, eventID, action string) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("update", "selection_events", start, err) }()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE selection_events SET action = ? WHERE id = ?`, action, eventID)
	if err != nil {
		return fmt.Errorf("failed to update selection action: %w", err)
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

// MarkRecommended bumps the item's times-recommended counter and refreshes
// its last-recommended/last-shown timestamps. The increment happens inside a
// single UPDATE so concurrent requests never lose counts.
func (db *DB) MarkRecommended(ctx context.Context, userID, itemID int64, kind string, at time.Time) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("update", "tracked_items", start, err) }()

	_, err = db.conn.ExecContext(ctx,
		`UPDATE tracked_items
		 SET times_recommended = times_recommended + 1,
		     last_recommended_at = ?,
		     last_shown_at = ?,
		     updated_at = ?
		 WHERE user_id = ? AND item_id = ? AND media_kind = ?`,
		at.UTC(), at.UTC(), at.UTC(), userID, itemID, kind)
	if err != nil {
		return fmt.Errorf("failed to mark item recommended: %w", err)
	}
	return nil
}
