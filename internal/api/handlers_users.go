// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/Toria-web/CineChance-sub000/internal/models"
	"github.com/Toria-web/CineChance-sub000/internal/validation"
)

// SetBirthdate handles PUT /api/v1/users/{userID}/birthdate. The stored
// birth date feeds the age policy that gates restricted content.
func (h *Handler) SetBirthdate(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, ok := userIDParam(r)
	if !ok {
		rw.BadRequest("user id must be a positive integer")
		return
	}

	var req models.SetBirthdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("request body must be valid JSON")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		rw.BadRequest("birth_date must be in YYYY-MM-DD form")
		return
	}
	if birthDate.After(time.Now()) {
		rw.BadRequest("birth_date cannot be in the future")
		return
	}

	if err := h.store.SetBirthdate(r.Context(), userID, birthDate); err != nil {
		rw.DatabaseError(err)
		return
	}

	rw.Success(map[string]interface{}{
		"user_id":    userID,
		"birth_date": req.BirthDate,
	})
}
