// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/build"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/content"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/metrics"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/service"
)

// Job names.
const (
	JobRefresh    = "content_refresh"
	JobPruneEvent = "event_retention"
)

// Invalidator drops cached payloads derived from the catalog.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Refresher reloads the catalog from the content source and rebuilds the
// static site.
type Refresher struct {
	Loader  *content.Loader
	Catalog *content.Catalog
	// Optional collaborators.
	Cache   Invalidator
	Builder *build.Builder
	Events  *service.EventService
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Refresh swaps in a fresh catalog snapshot. On failure the previous
// snapshot stays in place.
func (r *Refresher) Refresh(ctx context.Context) error {
	logger := r.logger()

	set, err := r.Loader.Articles(ctx)
	r.Metrics.ObserveRefresh(err, len(set.Articles))
	if err != nil {
		return fmt.Errorf("refreshing catalog: %w", err)
	}

	r.Catalog.Replace(set.Articles)
	if r.Cache != nil {
		if err := r.Cache.Invalidate(ctx); err != nil {
			logger.Warn("failed to invalidate content cache", "error", err)
		}
	}

	logger.Info("catalog refreshed", "articles", len(set.Articles))
	if r.Events != nil {
		_ = r.Events.LogSourceEvent(ctx, model.EventLevelInfo, "catalog refreshed", map[string]any{
			"articles": len(set.Articles),
		})
	}
	return nil
}

// RefreshAndBuild refreshes the catalog, then rebuilds the static site.
// The build is skipped when the refresh fails.
func (r *Refresher) RefreshAndBuild(ctx context.Context) error {
	if err := r.Refresh(ctx); err != nil {
		return err
	}
	if r.Builder == nil {
		return nil
	}
	if _, err := r.Builder.Run(ctx); err != nil {
		return fmt.Errorf("rebuilding site: %w", err)
	}
	return nil
}

func (r *Refresher) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// PruneEvents returns a job deleting event log entries older than retention.
func PruneEvents(events *service.EventService, retention time.Duration, logger *slog.Logger) JobFunc {
	return func(ctx context.Context) error {
		n, err := events.DeleteOldEvents(ctx, retention)
		if err != nil {
			return fmt.Errorf("pruning events: %w", err)
		}
		if n > 0 && logger != nil {
			logger.Info("pruned old events", "deleted", n, "retention", retention)
		}
		return nil
	}
}
