// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Toria-web/CineChance-sub000/internal/models"
	"github.com/Toria-web/CineChance-sub000/internal/recommend"
)

// RecommendationEngine is the selection engine surface the handlers need.
type RecommendationEngine interface {
	GetRecommendation(ctx context.Context, userID int64, spec recommend.FilterSpec) (*recommend.Result, error)
}

// Store is the persistence surface the handlers need. *database.DB
// implements it; tests use a hand-written mock.
type Store interface {
	AddItem(ctx context.Context, userID int64, req *models.AddWatchlistItemRequest) (*models.WatchlistEntry, error)
	ListItems(ctx context.Context, userID int64, list string) ([]models.WatchlistEntry, error)
	UpdateItem(ctx context.Context, userID, itemID int64, kind string, list *string, rating *int) (*models.WatchlistEntry, error)
	DeleteItem(ctx context.Context, userID, itemID int64, kind string) error
	SetBirthdate(ctx context.Context, userID int64, birthDate time.Time) error
	UpdateSelectionAction(ctx context.Context, eventID, action string) error
	Ping(ctx context.Context) error
}

// Handler carries the dependencies shared by all endpoint handlers.
type Handler struct {
	engine RecommendationEngine
	store  Store
	logger zerolog.Logger
}

// NewHandler creates the API handler set.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(engine RecommendationEngine, store Store, logger zerolog.Logger) *Handler {
	return &Handler{
		engine: engine,
		store:  store,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// userIDParam extracts and validates the {userID} route parameter.
func userIDParam(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// timeoutContext derives a bounded context from the request.
func timeoutContext(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), d)
}

// itemIDParam extracts and validates the {itemID} route parameter.
func itemIDParam(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "itemID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
