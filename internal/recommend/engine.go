// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Toria-web/CineChance-sub000/internal/metrics"
)

// Engine orchestrates one selection request: enrichment, filtering,
// cooldown, the age-policy aware draw, and event recording.
//
// An Engine is safe for concurrent use; per-request state never escapes
// GetRecommendation.
type Engine struct {
	store     Store
	agePolicy AgePolicy
	enricher  *enricher
	cooldown  *cooldownPolicy
	selector  *selector
	logger    zerolog.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewEngine creates an Engine with the given collaborators.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(store Store, provider MetadataProvider, agePolicy AgePolicy, cfg Config, logger zerolog.Logger) *Engine {
	cfg.applyDefaults()
	logger = logger.With().Str("component", "recommend").Logger()

	return &Engine{
		store:     store,
		agePolicy: agePolicy,
		enricher:  newEnricher(provider, cfg.EnrichWorkers, cfg.LookupTimeout, logger),
		cooldown:  newCooldownPolicy(store, cfg.CooldownWindow),
		selector:  newSelector(cfg.RandomSeed),
		logger:    logger,
		now:       time.Now,
	}
}

// GetRecommendation selects one item for the user under the given filters.
//
// Business failures (empty lists, nothing past the filters, everything
// restricted) come back as a Result with Success()==false; an error is
// returned only when the store itself is unreachable.
func (e *Engine) GetRecommendation(ctx context.Context, userID int64, spec FilterSpec) (*Result, error) {
	start := e.now()
	result, err := e.getRecommendation(ctx, userID, &spec)
	metrics.SelectionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	metrics.SelectionsTotal.WithLabelValues(string(result.Outcome)).Inc()
	observePoolMetrics(&result.Pool)
	return result, nil
}

func (e *Engine) getRecommendation(ctx context.Context, userID int64, spec *FilterSpec) (*Result, error) {
	now := e.now()

	// Stage 1: list-membership join, done in the store. Short-circuit on an
	// empty pool before paying any catalog lookup cost.
	items, err := e.store.TrackedItems(ctx, userID, spec.Lists)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracked items for user %d: %w", userID, err)
	}
	if len(items) == 0 {
		return &Result{Outcome: OutcomeListsEmpty}, nil
	}

	exclusions, err := e.cooldown.ExclusionSet(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	enriched := e.enricher.Enrich(ctx, items)

	var pool PoolMetrics
	candidates := runPipeline(enriched, spec, exclusions, &pool)
	if len(candidates) == 0 {
		return &Result{Outcome: OutcomeNoCandidates, Pool: pool}, nil
	}

	mustRestrict := e.mustRestrict(ctx, userID)
	chosen, ok := e.selector.Select(candidates, mustRestrict)
	if !ok {
		return &Result{Outcome: OutcomeAllRestricted, Pool: pool}, nil
	}

	event := e.buildEvent(userID, chosen, spec, &pool, now)
	eventID := e.record(ctx, event, chosen, now)

	return &Result{
		Outcome: OutcomeRecommended,
		Item:    recommendedItem(chosen),
		EventID: eventID,
		Pool:    pool,
	}, nil
}

// mustRestrict resolves the user's age policy. A lookup failure is treated
// conservatively as "must restrict" so restricted content never leaks on a
// policy read error.
func (e *Engine) mustRestrict(ctx context.Context, userID int64) bool {
	restrict, err := e.agePolicy.ShouldRestrict(ctx, userID)
	if err != nil {
		e.logger.Warn().Err(err).Int64("user_id", userID).
			Msg("Age policy lookup failed, restricting conservatively")
		return true
	}
	return restrict
}

// buildEvent assembles the selection event for the chosen item.
func (e *Engine) buildEvent(userID int64, chosen *EnrichedItem, spec *FilterSpec, pool *PoolMetrics, now time.Time) *SelectionEvent {
	return &SelectionEvent{
		ID:        uuid.New().String(),
		UserID:    userID,
		ItemID:    chosen.ItemID,
		Kind:      chosen.Kind,
		Algorithm: AlgorithmTag,
		Action:    ActionShown,
		Filters:   spec.Snapshot(),
		Pool:      *pool,
		Temporal:  buildTemporalContext(now),
		Features:  buildMLFeatures(chosen, now),
		CreatedAt: now,
	}
}

// record persists the event and bumps the item's counters. Write failures
// never block the selection: the user still gets the item, the event id is
// empty, and downstream feedback reporting becomes a no-op.
func (e *Engine) record(ctx context.Context, event *SelectionEvent, chosen *EnrichedItem, now time.Time) string {
	eventID, err := e.store.RecordSelection(ctx, event)
	if err != nil {
		e.logger.Error().Err(err).
			Int64("user_id", event.UserID).
			Int64("item_id", event.ItemID).
			Msg("Failed to record selection event")
		return ""
	}

	if err := e.store.MarkRecommended(ctx, event.UserID, chosen.ItemID, chosen.Kind, now); err != nil {
		e.logger.Error().Err(err).
			Int64("user_id", event.UserID).
			Int64("item_id", chosen.ItemID).
			Msg("Failed to update recommendation counters")
	}

	return eventID
}

// recommendedItem shapes the chosen candidate for the API response.
func recommendedItem(chosen *EnrichedItem) *RecommendedItem {
	return &RecommendedItem{
		ItemID:      chosen.ItemID,
		Kind:        Classify(chosen),
		MediaKind:   chosen.Kind,
		Title:       chosen.Meta.Title,
		PosterPath:  chosen.Meta.PosterPath,
		VoteAverage: chosen.Meta.VoteAverage,
		ReleaseDate: chosen.Meta.ReleaseDate,
		GenreIDs:    chosen.Meta.GenreIDs,
		UserRating:  chosen.Rating,
	}
}

func observePoolMetrics(pool *PoolMetrics) {
	metrics.SelectionPoolSize.WithLabelValues("initial").Observe(float64(pool.InitialCount))
	metrics.SelectionPoolSize.WithLabelValues("type_filter").Observe(float64(pool.AfterTypeFilter))
	metrics.SelectionPoolSize.WithLabelValues("cooldown").Observe(float64(pool.AfterCooldown))
	metrics.SelectionPoolSize.WithLabelValues("filters").Observe(float64(pool.AfterAdditionalFilters))
}
