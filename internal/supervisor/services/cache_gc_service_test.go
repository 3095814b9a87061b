// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

type mockCollector struct {
	calls atomic.Int32
	err   error
}

func (m *mockCollector) RunGC() error {
	m.calls.Add(1)
	return m.err
}

func TestCacheGCService_ImplementsSutureService(t *testing.T) {
	t.Parallel()

	var _ suture.Service = NewCacheGCService(&mockCollector{}, time.Minute, zerolog.Nop())
}

func TestCacheGCService_RunsOnTicks(t *testing.T) {
	t.Parallel()

	collector := &mockCollector{}
	svc := NewCacheGCService(collector, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want context.DeadlineExceeded", err)
	}
	if collector.calls.Load() == 0 {
		t.Error("RunGC was never called")
	}
}

func TestCacheGCService_SurvivesGCErrors(t *testing.T) {
	t.Parallel()

	collector := &mockCollector{err: errors.New("vlog busy")}
	svc := NewCacheGCService(collector, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	// GC failures must not terminate the loop early.
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want context.DeadlineExceeded", err)
	}
	if collector.calls.Load() < 2 {
		t.Errorf("RunGC called %d times, want the loop to keep ticking past errors", collector.calls.Load())
	}
}

func TestCacheGCService_String(t *testing.T) {
	t.Parallel()

	svc := NewCacheGCService(&mockCollector{}, time.Minute, zerolog.Nop())
	if got := svc.String(); got != "cache-gc" {
		t.Errorf("String() = %q, want cache-gc", got)
	}
}
