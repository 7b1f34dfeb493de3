// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics defines the Prometheus metrics of the build pass and the
// content server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "sf360"

// Build outcome label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	// Build metrics
	BuildsTotal         *prometheus.CounterVec
	BuildDuration       prometheus.Histogram
	ArticlesRendered    prometheus.Gauge
	DuplicateSlugs      prometheus.Gauge
	LastBuildTimestamp  prometheus.Gauge
	CatalogArticles     prometheus.Gauge
	CatalogRefreshTotal *prometheus.CounterVec

	// API metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	CacheLookupsTotal  *prometheus.CounterVec

	// View tracking
	ViewsTrackedTotal prometheus.Counter
	ViewsRateLimited  prometheus.Counter
}

// New creates all metrics on a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	m := &Metrics{registry: reg}
	m.initBuildMetrics(factory)
	m.initAPIMetrics(factory)
	return m
}

func (m *Metrics) initBuildMetrics(factory promauto.Factory) {
	m.BuildsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "build",
			Name:      "runs_total",
			Help:      "Total number of build runs by outcome",
		},
		[]string{"status"},
	)

	m.BuildDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "build",
			Name:      "duration_seconds",
			Help:      "Duration of build runs in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)

	m.ArticlesRendered = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "build",
			Name:      "articles_rendered",
			Help:      "Number of article pages written by the last build",
		},
	)

	m.DuplicateSlugs = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "build",
			Name:      "duplicate_slugs",
			Help:      "Number of slugs shared by more than one row in the last build",
		},
	)

	m.LastBuildTimestamp = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "build",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful build",
		},
	)

	m.CatalogArticles = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "catalog",
			Name:      "articles",
			Help:      "Number of articles in the served catalog",
		},
	)

	m.CatalogRefreshTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "catalog",
			Name:      "refresh_total",
			Help:      "Total number of catalog refreshes by outcome",
		},
		[]string{"status"},
	)
}

func (m *Metrics) initAPIMetrics(factory promauto.Factory) {
	m.APIRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of content API requests",
		},
		[]string{"action", "code"},
	)

	m.APIRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Content API request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"action"},
	)

	m.CacheLookupsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "api",
			Name:      "cache_lookups_total",
			Help:      "Content API cache lookups by result",
		},
		[]string{"result"},
	)

	m.ViewsTrackedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "views",
			Name:      "tracked_total",
			Help:      "Total number of article views recorded",
		},
	)

	m.ViewsRateLimited = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "views",
			Name:      "rate_limited_total",
			Help:      "Total number of trackView calls rejected by the rate limiter",
		},
	)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveBuild records the outcome of one build run.
func (m *Metrics) ObserveBuild(err error, started time.Time, articles, duplicates int) {
	if m == nil {
		return
	}
	m.BuildDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		m.BuildsTotal.WithLabelValues(StatusFailure).Inc()
		return
	}
	m.BuildsTotal.WithLabelValues(StatusSuccess).Inc()
	m.ArticlesRendered.Set(float64(articles))
	m.DuplicateSlugs.Set(float64(duplicates))
	m.LastBuildTimestamp.SetToCurrentTime()
}

// ObserveRefresh records a catalog refresh.
func (m *Metrics) ObserveRefresh(err error, articles int) {
	if m == nil {
		return
	}
	if err != nil {
		m.CatalogRefreshTotal.WithLabelValues(StatusFailure).Inc()
		return
	}
	m.CatalogRefreshTotal.WithLabelValues(StatusSuccess).Inc()
	m.CatalogArticles.Set(float64(articles))
}

// ObserveCache records a cache hit or miss.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheLookupsTotal.WithLabelValues("hit").Inc()
	} else {
		m.CacheLookupsTotal.WithLabelValues("miss").Inc()
	}
}

// ObserveAPI records one content API request.
func (m *Metrics) ObserveAPI(action string, code int, started time.Time) {
	if m == nil {
		return
	}
	m.APIRequestsTotal.WithLabelValues(action, strconv.Itoa(code)).Inc()
	m.APIRequestDuration.WithLabelValues(action).Observe(time.Since(started).Seconds())
}

// ObserveView records a tracked view, or a view rejected by the rate limiter.
func (m *Metrics) ObserveView(limited bool) {
	if m == nil {
		return
	}
	if limited {
		m.ViewsRateLimited.Inc()
		return
	}
	m.ViewsTrackedTotal.Inc()
}
