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
	"time"

	"github.com/Toria-web/CineChance-sub000/internal/metrics"
)

// SetBirthdate stores or updates a user's birth date, creating the user row
// on first contact.
func (db *DB) SetBirthdate(ctx context.Context, userID int64, birthDate time.Time) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert", "users", start, err) }()

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO users (id, birth_date) VALUES (?, ?)
		 ON CONFLICT (id) DO UPDATE SET birth_date = EXCLUDED.birth_date`,
		userID, birthDate)
	if err != nil {
		return fmt.Errorf("failed to set birth date for user %d: %w", userID, err)
	}
	return nil
}

// Birthdate returns the user's stored birth date.
// Returns ErrNotFound when the user or the date is missing.
func (db *DB) Birthdate(ctx context.Context, userID int64) (birthDate time.Time, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "users", start, err) }()

	var stored sql.NullTime
	err = db.conn.QueryRowContext(ctx,
		`SELECT birth_date FROM users WHERE id = ?`, userID).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
		return time.Time{}, err
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load birth date for user %d: %w", userID, err)
	}
	if !stored.Valid {
		err = ErrNotFound
		return time.Time{}, err
	}
	return stored.Time, nil
}
