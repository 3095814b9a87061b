// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package api

import (
	"net/http"
	"time"
)

// HealthResponse is the payload of the health endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health handles GET /api/v1/health: liveness plus a database ping.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := timeoutContext(r, 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Database: "ok"}
	if err := h.store.Ping(ctx); err != nil {
		h.logger.Error().Err(err).Msg("Health check database ping failed")
		resp.Status = "degraded"
		resp.Database = "unreachable"
		rw.writeJSON(http.StatusServiceUnavailable, APIResponse{
			Success: false,
			Data:    resp,
			Meta:    rw.meta(),
		})
		return
	}

	rw.Success(resp)
}
