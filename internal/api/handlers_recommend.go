// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/Toria-web/CineChance-sub000/internal/database"
	"github.com/Toria-web/CineChance-sub000/internal/logging"
	"github.com/Toria-web/CineChance-sub000/internal/metrics"
	"github.com/Toria-web/CineChance-sub000/internal/models"
	"github.com/Toria-web/CineChance-sub000/internal/recommend"
	"github.com/Toria-web/CineChance-sub000/internal/validation"
)

// RecommendationResponse is the success payload of the recommendation
// endpoint.
type RecommendationResponse struct {
	Item    *recommend.RecommendedItem `json:"item"`
	EventID string                     `json:"event_id,omitempty"`
	Pool    recommend.PoolMetrics      `json:"pool_metrics"`
}

// RecommendationFailure is the business-failure payload: the outcome code
// lets the client render distinct UX for each empty-pool state.
type RecommendationFailure struct {
	Outcome string                `json:"outcome"`
	Message string                `json:"message"`
	Pool    recommend.PoolMetrics `json:"pool_metrics"`
}

// outcomeMessages are the user-facing texts per business outcome.
var outcomeMessages = map[recommend.Outcome]string{
	recommend.OutcomeListsEmpty:    "Your selected lists are empty",
	recommend.OutcomeNoCandidates:  "Nothing matched the current filters — try relaxing them or wait for the cooldown to pass",
	recommend.OutcomeAllRestricted: "No eligible titles are available for your account",
}

// GetRecommendation handles GET /api/v1/recommendations/user/{userID}.
// Filter parsing is total, so the only 4xx here is a malformed user id.
func (h *Handler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, ok := userIDParam(r)
	if !ok {
		rw.BadRequest("user id must be a positive integer")
		return
	}

	spec := recommend.ParseFilterSpec(r.URL.Query())

	result, err := h.engine.GetRecommendation(r.Context(), userID, spec)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	if !result.Success() {
		rw.BusinessFailure(&RecommendationFailure{
			Outcome: string(result.Outcome),
			Message: outcomeMessages[result.Outcome],
			Pool:    result.Pool,
		})
		return
	}

	logging.Ctx(r.Context()).Info().
		Int64("user_id", userID).
		Int64("item_id", result.Item.ItemID).
		Str("event_id", result.EventID).
		Msg("Recommendation served")

	rw.Success(&RecommendationResponse{
		Item:    result.Item,
		EventID: result.EventID,
		Pool:    result.Pool,
	})
}

// RecordEventAction handles
// POST /api/v1/recommendations/events/{eventID}/action — the feedback-loop
// entry point that annotates a shown selection with accepted/skipped.
func (h *Handler) RecordEventAction(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	eventID := chi.URLParam(r, "eventID")
	if eventID == "" {
		rw.BadRequest("event id is required")
		return
	}

	var req models.EventActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("request body must be valid JSON")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	if err := h.store.UpdateSelectionAction(r.Context(), eventID, req.Action); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			rw.NotFound("selection event not found")
			return
		}
		rw.DatabaseError(err)
		return
	}

	metrics.SelectionActions.WithLabelValues(req.Action).Inc()

	rw.Success(map[string]string{
		"event_id": eventID,
		"action":   req.Action,
	})
}
