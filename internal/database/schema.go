// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package database

import "fmt"

// schemaStatements create the three core tables. JSON payload columns are
// plain VARCHAR so the schema never depends on the DuckDB json extension.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY,
		birth_date DATE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS tracked_items (
		user_id BIGINT NOT NULL,
		item_id BIGINT NOT NULL,
		media_kind VARCHAR NOT NULL,
		list_name VARCHAR NOT NULL,
		user_rating INTEGER,
		added_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_shown_at TIMESTAMP,
		times_recommended INTEGER NOT NULL DEFAULT 0,
		last_recommended_at TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, item_id, media_kind)
	)`,

	`CREATE TABLE IF NOT EXISTS selection_events (
		id VARCHAR PRIMARY KEY,
		user_id BIGINT NOT NULL,
		item_id BIGINT NOT NULL,
		media_kind VARCHAR NOT NULL,
		algorithm VARCHAR NOT NULL,
		action VARCHAR NOT NULL,
		filters VARCHAR,
		pool_metrics VARCHAR,
		temporal_context VARCHAR,
		ml_features VARCHAR,
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_selection_events_user_time
		ON selection_events (user_id, created_at)`,

	`CREATE INDEX IF NOT EXISTS idx_tracked_items_user_list
		ON tracked_items (user_id, list_name)`,
}

// initSchema creates all tables and indexes if they do not exist.
func (db *DB) initSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
