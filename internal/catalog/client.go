// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/Toria-web/CineChance-sub000/internal/cache"
	"github.com/Toria-web/CineChance-sub000/internal/config"
	"github.com/Toria-web/CineChance-sub000/internal/metrics"
	"github.com/Toria-web/CineChance-sub000/internal/recommend"
)

// Client is the catalog metadata client. Outbound calls go through a rate
// limiter and a circuit breaker; successful lookups are cached so repeat
// requests for popular items never hit the catalog.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[*recommend.ItemMetadata]
	cache      cache.Cacher
	cacheTTL   time.Duration
	logger     zerolog.Logger
}

// NewClient creates a catalog client. The cache is injected so tests can use
// the in-memory implementation and production the badger one.
func NewClient(cfg *config.CatalogConfig, metaCache cache.Cacher) *Client {
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	if cfg.RateLimit <= 0 {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	logger := zerolog.Nop()

	breaker := gobreaker.NewCircuitBreaker[*recommend.ItemMetadata](gobreaker.Settings{
		Name:        "catalog-api",
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			metrics.CatalogBreakerState.Set(stateToFloat(to))
		},
	})

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
		breaker:    breaker,
		cache:      metaCache,
		cacheTTL:   cfg.CacheTTL,
		logger:     logger,
	}
}

// WithLogger attaches a logger to the client.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (c *Client) WithLogger(logger zerolog.Logger) *Client {
	c.logger = logger.With().Str("component", "catalog").Logger()
	return c
}

// Lookup resolves metadata for one item, serving from cache when possible.
func (c *Client) Lookup(ctx context.Context, itemID int64, kind recommend.MediaKind) (*recommend.ItemMetadata, error) {
	start := time.Now()
	key := cacheKey(itemID, kind)

	if data, ok := c.cache.Get(key); ok {
		var meta recommend.ItemMetadata
		if err := json.Unmarshal(data, &meta); err == nil {
			metrics.CacheHits.Inc()
			metrics.CatalogLookups.WithLabelValues(string(kind), "hit").Inc()
			return &meta, nil
		}
		// Corrupt cache entry; drop it and fall through to the catalog.
		c.cache.Delete(key)
	}
	metrics.CacheMisses.Inc()

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.CatalogLookups.WithLabelValues(string(kind), "error").Inc()
		return nil, fmt.Errorf("rate limiter wait canceled: %w", err)
	}

	meta, err := c.breaker.Execute(func() (*recommend.ItemMetadata, error) {
		return c.fetch(ctx, itemID, kind)
	})
	metrics.CatalogLookupDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CatalogLookups.WithLabelValues(string(kind), "error").Inc()
		return nil, err
	}
	metrics.CatalogLookups.WithLabelValues(string(kind), "miss").Inc()

	if data, marshalErr := json.Marshal(meta); marshalErr == nil {
		c.cache.SetWithTTL(key, data, c.cacheTTL)
	}

	return meta, nil
}

// fetch performs the actual HTTP call.
func (c *Client) fetch(ctx context.Context, itemID int64, kind recommend.MediaKind) (*recommend.ItemMetadata, error) {
	url := fmt.Sprintf("%s/%s/%d", c.baseURL, pathSegment(kind), itemID)
	if c.apiKey != "" {
		url += "?api_key=" + c.apiKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse
		return nil, fmt.Errorf("catalog returned status %d for %s %d", resp.StatusCode, kind, itemID)
	}

	var details detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return toMetadata(&details), nil
}

// toMetadata normalizes movie and tv payloads into one shape.
func toMetadata(d *detailsResponse) *recommend.ItemMetadata {
	title := d.Title
	if title == "" {
		title = d.Name
	}
	releaseDate := d.ReleaseDate
	if releaseDate == "" {
		releaseDate = d.FirstAirDate
	}

	genreIDs := make([]int64, 0, len(d.Genres))
	for _, g := range d.Genres {
		genreIDs = append(genreIDs, g.ID)
	}

	return &recommend.ItemMetadata{
		Title:            title,
		PosterPath:       d.PosterPath,
		GenreIDs:         genreIDs,
		OriginalLanguage: d.OriginalLanguage,
		Adult:            d.Adult,
		ReleaseDate:      releaseDate,
		VoteAverage:      d.VoteAverage,
	}
}

func pathSegment(kind recommend.MediaKind) string {
	if kind == recommend.MediaTV {
		return "tv"
	}
	return "movie"
}

func cacheKey(itemID int64, kind recommend.MediaKind) string {
	return fmt.Sprintf("catalog:%s:%d", kind, itemID)
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

// Verify interface implementation at compile time
var _ recommend.MetadataProvider = (*Client)(nil)
