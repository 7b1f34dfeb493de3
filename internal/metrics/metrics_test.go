// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveBuild(t *testing.T) {
	m := New()

	m.ObserveBuild(nil, time.Now(), 12, 1)
	m.ObserveBuild(errors.New("sheet unavailable"), time.Now(), 0, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildsTotal.WithLabelValues(StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildsTotal.WithLabelValues(StatusFailure)))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.ArticlesRendered))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DuplicateSlugs))
}

func TestObserveRefreshAndCache(t *testing.T) {
	m := New()

	m.ObserveRefresh(nil, 7)
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)

	assert.Equal(t, 7.0, testutil.ToFloat64(m.CatalogArticles))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("miss")))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	m.ObserveBuild(nil, time.Now(), 1, 0)
	m.ObserveRefresh(nil, 1)
	m.ObserveCache(true)
	m.ObserveAPI("posts", http.StatusOK, time.Now())
	m.ObserveView(false)
}

func TestObserveAPIAndViews(t *testing.T) {
	m := New()

	m.ObserveAPI("article", http.StatusOK, time.Now())
	m.ObserveAPI("article", http.StatusNotFound, time.Now())
	m.ObserveAPI("article", http.StatusNotFound, time.Now())
	m.ObserveView(false)
	m.ObserveView(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("article", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("article", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.APIRequestDuration))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ViewsTrackedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ViewsRateLimited))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ViewsTrackedTotal.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "sf360_views_tracked_total 1"), body)
	assert.Contains(t, body, "go_goroutines")
}
