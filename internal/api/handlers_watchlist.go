// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/Toria-web/CineChance-sub000/internal/database"
	"github.com/Toria-web/CineChance-sub000/internal/models"
	"github.com/Toria-web/CineChance-sub000/internal/validation"
)

// validLists are the list names accepted by the ?list= query filter.
var validLists = map[string]bool{
	"watchlist": true,
	"watched":   true,
	"rewatched": true,
	"dropped":   true,
}

// ListWatchlist handles GET /api/v1/watchlist/user/{userID}.
func (h *Handler) ListWatchlist(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, ok := userIDParam(r)
	if !ok {
		rw.BadRequest("user id must be a positive integer")
		return
	}

	list := r.URL.Query().Get("list")
	if list != "" && !validLists[list] {
		rw.BadRequest("list must be one of: watchlist, watched, rewatched, dropped")
		return
	}

	entries, err := h.store.ListItems(r.Context(), userID, list)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	rw.Success(entries)
}

// AddWatchlistItem handles POST /api/v1/watchlist/user/{userID}.
func (h *Handler) AddWatchlistItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, ok := userIDParam(r)
	if !ok {
		rw.BadRequest("user id must be a positive integer")
		return
	}

	var req models.AddWatchlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("request body must be valid JSON")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	entry, err := h.store.AddItem(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			rw.Conflict("item is already tracked")
			return
		}
		rw.DatabaseError(err)
		return
	}

	rw.Created(entry)
}

// UpdateWatchlistItem handles
// PATCH /api/v1/watchlist/user/{userID}/items/{itemID}.
func (h *Handler) UpdateWatchlistItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, ok := userIDParam(r)
	if !ok {
		rw.BadRequest("user id must be a positive integer")
		return
	}
	itemID, ok := itemIDParam(r)
	if !ok {
		rw.BadRequest("item id must be a positive integer")
		return
	}

	var req models.UpdateWatchlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("request body must be valid JSON")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	if req.List == nil && req.Rating == nil {
		rw.BadRequest("at least one of list or rating must be set")
		return
	}

	entry, err := h.store.UpdateItem(r.Context(), userID, itemID, req.MediaKind, req.List, req.Rating)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			rw.NotFound("tracked item not found")
			return
		}
		rw.DatabaseError(err)
		return
	}

	rw.Success(entry)
}

// DeleteWatchlistItem handles
// DELETE /api/v1/watchlist/user/{userID}/items/{itemID}?kind=movie|tv.
func (h *Handler) DeleteWatchlistItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, ok := userIDParam(r)
	if !ok {
		rw.BadRequest("user id must be a positive integer")
		return
	}
	itemID, ok := itemIDParam(r)
	if !ok {
		rw.BadRequest("item id must be a positive integer")
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind != "movie" && kind != "tv" {
		rw.BadRequest("kind must be movie or tv")
		return
	}

	if err := h.store.DeleteItem(r.Context(), userID, itemID, kind); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			rw.NotFound("tracked item not found")
			return
		}
		rw.DatabaseError(err)
		return
	}

	rw.NoContent()
}
