// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Toria-web/CineChance-sub000/internal/config"
	"github.com/Toria-web/CineChance-sub000/internal/middleware"
)

// NewRouter wires all routes and the global middleware stack.
func NewRouter(handler *Handler, cfg *config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Get("/health", handler.Health)

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/user/{userID}", handler.GetRecommendation)
			r.Post("/events/{eventID}/action", handler.RecordEventAction)
		})

		r.Route("/watchlist/user/{userID}", func(r chi.Router) {
			r.Get("/", handler.ListWatchlist)
			r.Post("/", handler.AddWatchlistItem)
			r.Patch("/items/{itemID}", handler.UpdateWatchlistItem)
			r.Delete("/items/{itemID}", handler.DeleteWatchlistItem)
		})

		r.Put("/users/{userID}/birthdate", handler.SetBirthdate)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
