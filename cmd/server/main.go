// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

// Package main is the entry point for the CineChance server.
//
// CineChance tracks a user's watchlist and watched history and answers the
// "pick something for me" question: one random item from the user's own
// lists, filtered by kind, rating, year, and genre, with a cooldown so the
// same title is not suggested twice in a row.
//
// Startup order:
//
//  1. Configuration: defaults, then config.yaml, then environment (Koanf v2)
//  2. Database: DuckDB for tracked items, users, and selection events
//  3. Metadata cache: in-memory or Badger, per CACHE_BACKEND
//  4. Catalog client: rate-limited, circuit-broken TMDB-style lookups
//  5. Selection engine
//  6. Supervisor tree: HTTP server plus background cache GC
//
// Shutdown is graceful on SIGINT/SIGTERM: the supervisor drains the HTTP
// server within SERVER_SHUTDOWN_TIMEOUT, then the database and cache close.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Toria-web/CineChance-sub000/internal/api"
	"github.com/Toria-web/CineChance-sub000/internal/cache"
	"github.com/Toria-web/CineChance-sub000/internal/catalog"
	"github.com/Toria-web/CineChance-sub000/internal/config"
	"github.com/Toria-web/CineChance-sub000/internal/database"
	"github.com/Toria-web/CineChance-sub000/internal/logging"
	"github.com/Toria-web/CineChance-sub000/internal/recommend"
	"github.com/Toria-web/CineChance-sub000/internal/supervisor"
	"github.com/Toria-web/CineChance-sub000/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is not available yet; the default logger has to do.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("cache_backend", cfg.Cache.Backend).
		Str("catalog_base_url", cfg.Catalog.BaseURL).
		Msg("Starting CineChance")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	metaCache, badgerCache, err := newMetaCache(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize metadata cache")
	}
	defer func() {
		if err := metaCache.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing metadata cache")
		}
	}()

	catalogClient := catalog.NewClient(&cfg.Catalog, metaCache).WithLogger(logging.Logger())

	store := database.NewRecommendationStore(db)
	agePolicy := database.NewAgePolicy(db, cfg.Recommend.AdultAge)
	engine := recommend.NewEngine(store, catalogClient, agePolicy, recommend.Config{
		CooldownWindow: cfg.Recommend.CooldownWindow,
		EnrichWorkers:  cfg.Recommend.EnrichWorkers,
		LookupTimeout:  cfg.Recommend.LookupTimeout,
		RandomSeed:     cfg.Recommend.RandomSeed,
	}, logging.Logger())

	handler := api.NewHandler(engine, db, logging.Logger())
	router := api.NewRouter(handler, &cfg.Server)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if badgerCache != nil {
		tree.AddBackgroundService(services.NewCacheGCService(badgerCache, cfg.Cache.GCInterval, logging.Logger()))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received")
		if err := <-errCh; err != nil && err != context.Canceled {
			logging.Error().Err(err).Msg("Supervisor tree exited with error")
		}
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			logging.Error().Err(err).Msg("Supervisor tree exited with error")
			if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil {
				for _, svc := range report {
					logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
				}
			}
			os.Exit(1)
		}
	}

	logging.Info().Msg("Shutdown complete")
}

// newMetaCache builds the configured metadata cache. The second return is
// non-nil only for the Badger backend, which needs a supervised GC loop.
func newMetaCache(cfg *config.Config) (cache.Cacher, *cache.Badger, error) {
	switch cfg.Cache.Backend {
	case "badger":
		b, err := cache.NewBadger(cfg.Cache.Path, cfg.Catalog.CacheTTL, logging.Logger())
		if err != nil {
			return nil, nil, err
		}
		logging.Info().Str("path", cfg.Cache.Path).Msg("Badger metadata cache initialized")
		return b, b, nil
	default:
		return cache.NewMemory(cfg.Catalog.CacheTTL), nil, nil
	}
}
