// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api serves the content endpoint the site's pages read from:
// article listings, single articles, the sidebar payload, search and view
// tracking, all behind GET /api/content?action=...
package api

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/cache"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/content"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/metrics"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/middleware"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/store"
)

// Path is the route of the content endpoint.
const Path = "/api/content"

// Options configures optional Handler dependencies.
type Options struct {
	// Cache stores sidebar and category payloads. Nil disables caching.
	Cache    cache.Cacher
	CacheTTL time.Duration
	// Limiter throttles trackView per client IP. Nil disables limiting.
	Limiter *middleware.IPRateLimiter
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Handler holds shared dependencies for the content endpoint.
type Handler struct {
	catalog *content.Catalog
	queries *store.Queries

	cache    cache.Cacher
	sidebars *cache.TypedCache[model.Sidebar]
	lists    *cache.TypedCache[[]model.Article]

	limiter *middleware.IPRateLimiter
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(catalog *content.Catalog, db *sql.DB, opts Options) *Handler {
	h := &Handler{
		catalog: catalog,
		queries: store.New(db),
		cache:   opts.Cache,
		limiter: opts.Limiter,
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if opts.Cache != nil {
		h.sidebars = cache.NewTypedCache[model.Sidebar](opts.Cache, opts.CacheTTL)
		h.lists = cache.NewTypedCache[[]model.Article](opts.Cache, opts.CacheTTL)
	}
	return h
}

// Routes mounts the content endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get(Path, h.Content)
	r.Post(Path, h.Content)
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes {"error": message} with the given status code.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, model.ErrorResponse{Error: message})
}
