// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package recommend

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// enricher resolves catalog metadata for a set of tracked items through a
// bounded worker pool. A failed lookup never fails the request: the item
// receives default metadata and is flagged as degraded.
type enricher struct {
	provider MetadataProvider
	workers  int
	timeout  time.Duration
	logger   zerolog.Logger
}

func newEnricher(provider MetadataProvider, workers int, timeout time.Duration, logger zerolog.Logger) *enricher {
	if workers <= 0 {
		workers = 8
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &enricher{
		provider: provider,
		workers:  workers,
		timeout:  timeout,
		logger:   logger,
	}
}

// Enrich looks up metadata for every item concurrently and returns a fully
// populated slice of the same length and order. Lookups are independent; the
// only join point is the final barrier before return.
func (e *enricher) Enrich(ctx context.Context, items []TrackedItem) []EnrichedItem {
	enriched := make([]EnrichedItem, len(items))

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := e.workers
	if workers > len(items) {
		workers = len(items)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				enriched[i] = e.lookup(ctx, items[i])
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return enriched
}

// lookup resolves one item, degrading to default metadata on any failure.
func (e *enricher) lookup(ctx context.Context, item TrackedItem) EnrichedItem {
	lookupCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	meta, err := e.provider.Lookup(lookupCtx, item.ItemID, item.Kind)
	if err != nil || meta == nil {
		e.logger.Warn().
			Err(err).
			Int64("item_id", item.ItemID).
			Str("kind", string(item.Kind)).
			Msg("Metadata lookup failed, using degraded defaults")
		return EnrichedItem{
			TrackedItem: item,
			Meta:        ItemMetadata{},
			Degraded:    true,
		}
	}

	return EnrichedItem{
		TrackedItem: item,
		Meta:        *meta,
	}
}
