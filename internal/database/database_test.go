// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Toria-web/CineChance-sub000/internal/config"
	"github.com/Toria-web/CineChance-sub000/internal/models"
	"github.com/Toria-web/CineChance-sub000/internal/recommend"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(&config.DatabaseConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func addTestItem(t *testing.T, db *DB, userID, itemID int64, kind, list string) *models.WatchlistEntry {
	t.Helper()
	entry, err := db.AddItem(context.Background(), userID, &models.AddWatchlistItemRequest{
		ItemID:    itemID,
		MediaKind: kind,
		List:      list,
	})
	if err != nil {
		t.Fatalf("AddItem(%d) error = %v", itemID, err)
	}
	return entry
}

func TestDB_Ping(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
}

func TestWatchlist_AddAndList(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	addTestItem(t, db, 1, 603, "movie", "watchlist")
	addTestItem(t, db, 1, 1429, "tv", "watched")
	addTestItem(t, db, 2, 603, "movie", "watchlist") // other user

	all, err := db.ListItems(ctx, 1, "")
	if err != nil {
		t.Fatalf("ListItems() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListItems() returned %d entries, want 2", len(all))
	}

	watched, err := db.ListItems(ctx, 1, "watched")
	if err != nil {
		t.Fatalf("ListItems(watched) error = %v", err)
	}
	if len(watched) != 1 || watched[0].ItemID != 1429 {
		t.Errorf("ListItems(watched) = %+v, want the tv entry only", watched)
	}

	empty, err := db.ListItems(ctx, 99, "")
	if err != nil {
		t.Fatalf("ListItems(99) error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("ListItems for unknown user = %v, want empty non-nil slice", empty)
	}
}

func TestWatchlist_DuplicateAdd(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)

	addTestItem(t, db, 1, 603, "movie", "watchlist")

	_, err := db.AddItem(context.Background(), 1, &models.AddWatchlistItemRequest{
		ItemID: 603, MediaKind: "movie", List: "watched",
	})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate AddItem error = %v, want ErrAlreadyExists", err)
	}

	// Same item id under the other media kind is a distinct row.
	if _, err := db.AddItem(context.Background(), 1, &models.AddWatchlistItemRequest{
		ItemID: 603, MediaKind: "tv", List: "watchlist",
	}); err != nil {
		t.Fatalf("AddItem with different kind error = %v", err)
	}
}

func TestWatchlist_Update(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	addTestItem(t, db, 1, 603, "movie", "watchlist")

	list := "watched"
	rating := 9
	entry, err := db.UpdateItem(ctx, 1, 603, "movie", &list, &rating)
	if err != nil {
		t.Fatalf("UpdateItem() error = %v", err)
	}
	if entry.List != "watched" {
		t.Errorf("List = %q, want watched", entry.List)
	}
	if entry.Rating == nil || *entry.Rating != 9 {
		t.Errorf("Rating = %v, want 9", entry.Rating)
	}

	if _, err := db.UpdateItem(ctx, 1, 999, "movie", &list, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateItem(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestWatchlist_Delete(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	addTestItem(t, db, 1, 603, "movie", "watchlist")

	if err := db.DeleteItem(ctx, 1, 603, "movie"); err != nil {
		t.Fatalf("DeleteItem() error = %v", err)
	}
	if err := db.DeleteItem(ctx, 1, 603, "movie"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteItem error = %v, want ErrNotFound", err)
	}
}

func TestUsers_Birthdate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.Birthdate(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Birthdate(unknown) error = %v, want ErrNotFound", err)
	}

	want := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	if err := db.SetBirthdate(ctx, 1, want); err != nil {
		t.Fatalf("SetBirthdate() error = %v", err)
	}

	got, err := db.Birthdate(ctx, 1)
	if err != nil {
		t.Fatalf("Birthdate() error = %v", err)
	}
	if got.Year() != 1990 || got.Month() != 5 || got.Day() != 1 {
		t.Errorf("Birthdate = %v, want 1990-05-01", got)
	}

	// Upsert replaces the stored date.
	updated := time.Date(2015, 1, 2, 0, 0, 0, 0, time.UTC)
	if err := db.SetBirthdate(ctx, 1, updated); err != nil {
		t.Fatalf("SetBirthdate(update) error = %v", err)
	}
	got, err = db.Birthdate(ctx, 1)
	if err != nil {
		t.Fatalf("Birthdate() error = %v", err)
	}
	if got.Year() != 2015 {
		t.Errorf("Birthdate year = %d, want 2015 after upsert", got.Year())
	}
}

func testEvent(userID, itemID int64) *recommend.SelectionEvent {
	return &recommend.SelectionEvent{
		ID:        recommend.AlgorithmTag + "-test-" + time.Now().Format("150405.000000000"),
		UserID:    userID,
		ItemID:    itemID,
		Kind:      recommend.MediaMovie,
		Algorithm: recommend.AlgorithmTag,
		Action:    recommend.ActionShown,
		Pool:      recommend.PoolMetrics{InitialCount: 1, RatingHistogram: map[int]int{0: 1}},
		CreatedAt: time.Now().UTC(),
	}
}

func TestEvents_InsertAndRecentKeys(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	ev := testEvent(1, 603)
	if err := db.InsertSelectionEvent(ctx, ev); err != nil {
		t.Fatalf("InsertSelectionEvent() error = %v", err)
	}

	keys, err := db.RecentSelectionKeys(ctx, 1, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("RecentSelectionKeys() error = %v", err)
	}
	if len(keys) != 1 || keys[0].ItemID != 603 || keys[0].Kind != recommend.MediaMovie {
		t.Fatalf("keys = %v, want [{603 movie}]", keys)
	}

	// Events before the window do not count.
	keys, err = db.RecentSelectionKeys(ctx, 1, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("RecentSelectionKeys() error = %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("keys = %v, want none outside the window", keys)
	}

	// Other users' events are invisible.
	keys, err = db.RecentSelectionKeys(ctx, 2, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("RecentSelectionKeys() error = %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("keys = %v for another user, want none", keys)
	}
}

func TestEvents_UpdateSelectionAction(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	ev := testEvent(1, 603)
	if err := db.InsertSelectionEvent(ctx, ev); err != nil {
		t.Fatalf("InsertSelectionEvent() error = %v", err)
	}

	if err := db.UpdateSelectionAction(ctx, ev.ID, recommend.ActionAccepted); err != nil {
		t.Fatalf("UpdateSelectionAction() error = %v", err)
	}
	if err := db.UpdateSelectionAction(ctx, "missing-id", recommend.ActionSkipped); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateSelectionAction(missing) error = %v, want ErrNotFound", err)
	}
}

func TestEvents_MarkRecommended(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	addTestItem(t, db, 1, 603, "movie", "watchlist")

	now := time.Now().UTC()
	if err := db.MarkRecommended(ctx, 1, 603, "movie", now); err != nil {
		t.Fatalf("MarkRecommended() error = %v", err)
	}
	if err := db.MarkRecommended(ctx, 1, 603, "movie", now); err != nil {
		t.Fatalf("second MarkRecommended() error = %v", err)
	}

	entries, err := db.ListItems(ctx, 1, "")
	if err != nil {
		t.Fatalf("ListItems() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ListItems() returned %d entries, want 1", len(entries))
	}
	if entries[0].TimesRecommended != 2 {
		t.Errorf("TimesRecommended = %d, want 2", entries[0].TimesRecommended)
	}
	if entries[0].LastRecommendedAt == nil {
		t.Error("LastRecommendedAt not set after MarkRecommended")
	}
	if entries[0].LastShownAt == nil {
		t.Error("LastShownAt not set after MarkRecommended")
	}
}

func TestRecommendationStore_TrackedItems(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	store := NewRecommendationStore(db)

	addTestItem(t, db, 1, 603, "movie", "watchlist")
	addTestItem(t, db, 1, 1429, "tv", "watched")
	addTestItem(t, db, 1, 9999, "movie", "dropped")

	items, err := store.TrackedItems(ctx, 1, []recommend.ListName{recommend.ListWatchlist, recommend.ListWatched})
	if err != nil {
		t.Fatalf("TrackedItems() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("TrackedItems() returned %d, want 2 (dropped excluded)", len(items))
	}

	items, err = store.TrackedItems(ctx, 1, nil)
	if err != nil {
		t.Fatalf("TrackedItems(no lists) error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("TrackedItems(no lists) = %v, want empty", items)
	}
}

func TestAgePolicy(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	policy := NewAgePolicy(db, 18)
	policy.now = func() time.Time { return time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC) }

	// No birth date stored: restrict.
	restrict, err := policy.ShouldRestrict(ctx, 1)
	if err != nil {
		t.Fatalf("ShouldRestrict() error = %v", err)
	}
	if !restrict {
		t.Error("ShouldRestrict = false for a user without a birth date, want true")
	}

	// Adult user.
	if err := db.SetBirthdate(ctx, 1, time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("SetBirthdate() error = %v", err)
	}
	restrict, err = policy.ShouldRestrict(ctx, 1)
	if err != nil {
		t.Fatalf("ShouldRestrict() error = %v", err)
	}
	if restrict {
		t.Error("ShouldRestrict = true for an adult, want false")
	}

	// Minor.
	if err := db.SetBirthdate(ctx, 2, time.Date(2015, 5, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("SetBirthdate() error = %v", err)
	}
	restrict, err = policy.ShouldRestrict(ctx, 2)
	if err != nil {
		t.Fatalf("ShouldRestrict() error = %v", err)
	}
	if !restrict {
		t.Error("ShouldRestrict = false for a minor, want true")
	}
}

func TestAgeAt(t *testing.T) {
	t.Parallel()

	birth := time.Date(2008, 8, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"day before 18th birthday", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), 17},
		{"on 18th birthday", time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), 18},
		{"day after 18th birthday", time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ageAt(birth, tt.now); got != tt.want {
				t.Errorf("ageAt() = %d, want %d", got, tt.want)
			}
		})
	}
}
