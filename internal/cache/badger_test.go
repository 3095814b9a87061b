// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package cache

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestBadger(t *testing.T) *Badger {
	t.Helper()
	c, err := NewBadger(t.TempDir(), time.Hour, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewBadger() error = %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return c
}

func TestBadger_SetGet(t *testing.T) {
	t.Parallel()

	c := newTestBadger(t)

	c.Set("key", []byte("value"))

	got, ok := c.Get("key")
	if !ok {
		t.Fatal("Get returned miss for a stored key")
	}
	if !bytes.Equal(got, []byte("value")) {
		t.Errorf("Get = %q, want %q", got, "value")
	}
}

func TestBadger_MissingKey(t *testing.T) {
	t.Parallel()

	c := newTestBadger(t)

	if _, ok := c.Get("absent"); ok {
		t.Error("Get returned hit for a missing key")
	}
	if stats := c.GetStats(); stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
}

func TestBadger_TTLExpiry(t *testing.T) {
	t.Parallel()

	c := newTestBadger(t)

	c.SetWithTTL("short", []byte("v"), 50*time.Millisecond)
	time.Sleep(150 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("Get returned hit for an expired key")
	}
}

func TestBadger_Delete(t *testing.T) {
	t.Parallel()

	c := newTestBadger(t)

	c.Set("key", []byte("v"))
	c.Delete("key")

	if _, ok := c.Get("key"); ok {
		t.Error("Get returned hit after Delete")
	}
}

func TestBadger_Clear(t *testing.T) {
	t.Parallel()

	c := newTestBadger(t)

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Error("key survived Clear")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("key survived Clear")
	}
}

func TestBadger_RunGC(t *testing.T) {
	t.Parallel()

	c := newTestBadger(t)

	for i := 0; i < 100; i++ {
		c.Set("churn", bytes.Repeat([]byte("x"), 1024))
	}

	// A fresh store usually has nothing to rewrite; the call must still
	// succeed.
	if err := c.RunGC(); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
}

func TestBadger_SurvivesReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	c, err := NewBadger(dir, time.Hour, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewBadger() error = %v", err)
	}
	c.Set("persisted", []byte("value"))
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewBadger(dir, time.Hour, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewBadger() reopen error = %v", err)
	}
	defer reopened.Close()

	got, ok := reopened.Get("persisted")
	if !ok {
		t.Fatal("value did not survive reopen")
	}
	if !bytes.Equal(got, []byte("value")) {
		t.Errorf("Get = %q, want %q", got, "value")
	}
}
