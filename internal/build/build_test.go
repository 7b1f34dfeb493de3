// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package build

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/content"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/metrics"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/render"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/seo"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/sheets"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/testutil"
	"github.com/ramendramauryahfh-web/smart-finance360/web"
)

const testSiteURL = "https://smartfinance360.com"

var articleHeader = []string{"Slug", "Title", "Content", "Excerpt", "DateTime", "Category", "Author", "ReadTime", "ImageURL", "Keywords", "MetaDescription"}

func testSheets() map[string][][]string {
	return map[string][][]string{
		"Sheet1": {
			articleHeader,
			{"sip-basics", "SIP Basics", "Start **small**.", "Why SIPs work", "2025-01-03 10:00", "Finance, Investment", "Asha", "4", "images/sip.jpg", "sip, mutual funds", ""},
			{"", "Budgeting 101", "<p>Track spending</p>", "", "2025-01-02", "Finance", "", "", "", "", "Plan your month"},
			{},
			{"sip-basics", "SIP Basics Revised", "Updated.", "", "2025-01-04", "Investment", "", "", "", "", ""},
		},
		"Sheet3": {
			{"Thought", "Author", "Color"},
			{"Keep going", "A", "#fafafa"},
			{"", "B", ""},
			{"Small steps", "", ""},
			{"Third thought", "C", ""},
		},
	}
}

type testRig struct {
	builder *Builder
	source  *sheets.StaticSource
	out     string
	logs    *bytes.Buffer
}

func newRig(t *testing.T) *testRig {
	t.Helper()

	renderer, err := render.New(render.Config{TemplatesFS: web.Templates})
	require.NoError(t, err)

	source := sheets.NewStaticSource(testSheets())
	loader := &content.Loader{
		Source:        source,
		ArticlesRange: "Sheet1!A1:Z1000",
		ThoughtsRange: "Sheet3!A1:C1000",
		Normalizer:    content.Normalizer{SiteURL: testSiteURL},
	}

	out := filepath.Join(t.TempDir(), "public")
	logger, logs := testutil.BufferLogger()

	opts := Options{
		OutputDir: out,
		Site:      render.Site{Name: "Smart Finance 360", URL: testSiteURL, AdsClient: "ca-pub-1", AdsSlot: "42"},
		SEO:       &seo.SiteConfig{SiteName: "Smart Finance 360", SiteURL: testSiteURL},
		StaticPages: []seo.StaticPage{
			{Path: "index.html", ChangeFreq: seo.ChangeFreqHourly, Priority: 1.0},
			{Path: "contact.html", ChangeFreq: seo.ChangeFreqWeekly, Priority: 0.6},
		},
		Robots: seo.RobotsConfig{SiteURL: testSiteURL},
		Motivational: seo.PageInfo{
			Title:      "Motivational Thoughts | Smart Finance 360",
			Heading:    "Motivational Thoughts of the Day",
			ShareTitle: "Motivational Thought",
			BasePath:   "/motivational.html",
		},
	}

	return &testRig{
		builder: New(loader, renderer, opts, logger),
		source:  source,
		out:     out,
		logs:    logs,
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_WritesSite(t *testing.T) {
	rig := newRig(t)

	res, err := rig.builder.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 3, res.Articles)
	assert.Equal(t, 4, res.Thoughts)
	// Three article writes (one slug written twice), then motivational,
	// sitemap and robots.
	assert.Len(t, res.Files, 6)

	for _, name := range []string{"sip-basics.html", "budgeting-101.html"} {
		assert.FileExists(t, filepath.Join(rig.out, ArticlesDir, name))
	}
	assert.FileExists(t, filepath.Join(rig.out, MotivationalFile))
	assert.FileExists(t, filepath.Join(rig.out, SitemapFile))
	assert.FileExists(t, filepath.Join(rig.out, RobotsFile))
}

func TestRun_ArticlePage(t *testing.T) {
	rig := newRig(t)
	_, err := rig.builder.Run(context.Background())
	require.NoError(t, err)

	page := readFile(t, filepath.Join(rig.out, ArticlesDir, "budgeting-101.html"))

	assert.Contains(t, page, "<title>Budgeting 101 | Smart Finance 360</title>")
	assert.Contains(t, page, "<p>Track spending</p>")
	assert.Contains(t, page, "By Admin", "empty author takes the default")
	assert.Contains(t, page, "2 min read", "empty read time takes the default")
	assert.Contains(t, page, `href="https://smartfinance360.com/articles/budgeting-101.html"`)
	assert.Contains(t, page, "Plan your month")
	assert.Contains(t, page, `application/ld+json`)
	assert.Contains(t, page, `id="recommended-list"`)
}

func TestRun_DuplicateSlugLaterRowWins(t *testing.T) {
	rig := newRig(t)

	res, err := rig.builder.Run(context.Background())
	require.NoError(t, err)

	require.Contains(t, res.Duplicates, "sip-basics")
	assert.Equal(t, []int{2, 5}, res.Duplicates["sip-basics"])

	page := readFile(t, filepath.Join(rig.out, ArticlesDir, "sip-basics.html"))
	assert.Contains(t, page, "SIP Basics Revised")
	assert.NotContains(t, page, "Start <strong>small</strong>")

	logs := rig.logs.String()
	assert.Contains(t, logs, "duplicate slug")
	assert.Contains(t, logs, "slug=sip-basics")
	assert.Contains(t, logs, "run_id="+res.RunID)
}

func TestRun_Sitemap(t *testing.T) {
	rig := newRig(t)
	_, err := rig.builder.Run(context.Background())
	require.NoError(t, err)

	data := readFile(t, filepath.Join(rig.out, SitemapFile))

	var doc seo.Sitemap
	require.NoError(t, xml.Unmarshal([]byte(data), &doc))
	// 2 static pages + one entry per article record.
	require.Len(t, doc.URLs, 5)
	assert.Equal(t, testSiteURL+"/index.html", doc.URLs[0].Loc)
	assert.Equal(t, "1.0", doc.URLs[0].Priority)
	assert.Equal(t, testSiteURL+"/articles/sip-basics.html", doc.URLs[2].Loc)
	assert.Equal(t, seo.ChangeFreqDaily, doc.URLs[2].ChangeFreq)
	assert.Equal(t, "0.9", doc.URLs[2].Priority)
}

func TestRun_Robots(t *testing.T) {
	rig := newRig(t)
	_, err := rig.builder.Run(context.Background())
	require.NoError(t, err)

	robots := readFile(t, filepath.Join(rig.out, RobotsFile))
	assert.Contains(t, robots, "Sitemap: https://smartfinance360.com/sitemap.xml")
}

func TestRun_MotivationalPage(t *testing.T) {
	rig := newRig(t)
	_, err := rig.builder.Run(context.Background())
	require.NoError(t, err)

	page := readFile(t, filepath.Join(rig.out, MotivationalFile))

	assert.Contains(t, page, "Motivational Thoughts of the Day")
	assert.Contains(t, page, "Keep going")
	assert.Contains(t, page, "Stay motivated!", "empty thought takes the default text")
	assert.Equal(t, 4, strings.Count(page, `class="thought-card"`))
	// Only the third thought carries an ad.
	assert.Equal(t, 1, strings.Count(page, `class="adsbygoogle"`))
	assert.Contains(t, page, `data-ad-slot="42"`)
	assert.Contains(t, page, `href="https://smartfinance360.com/motivational.html"`)
}

func TestRun_FetchFailureAborts(t *testing.T) {
	rig := newRig(t)
	rig.source.Set("Sheet1", nil)
	rig.builder.loader.ArticlesRange = "Missing!A1:Z10"

	_, err := rig.builder.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching articles")

	assert.NoFileExists(t, filepath.Join(rig.out, SitemapFile))
	assert.Contains(t, rig.logs.String(), "build failed")
}

func TestRun_EmptySheets(t *testing.T) {
	rig := newRig(t)
	rig.source.Set("Sheet1", nil)
	rig.source.Set("Sheet3", nil)

	res, err := rig.builder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Articles)

	page := readFile(t, filepath.Join(rig.out, MotivationalFile))
	assert.Contains(t, page, "No thoughts yet")

	var doc seo.Sitemap
	require.NoError(t, xml.Unmarshal([]byte(readFile(t, filepath.Join(rig.out, SitemapFile))), &doc))
	assert.Len(t, doc.URLs, 2)
}

func TestRun_CanceledContext(t *testing.T) {
	rig := newRig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rig.builder.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

type fakeViews struct {
	views map[string]int64
	err   error
}

func (f fakeViews) ViewsMap(context.Context) (map[string]int64, error) {
	return f.views, f.err
}

func TestRun_RecommendationsUseViews(t *testing.T) {
	rig := newRig(t)
	rig.builder.WithViews(fakeViews{views: map[string]int64{"budgeting-101": 50}})

	_, err := rig.builder.Run(context.Background())
	require.NoError(t, err)

	page := readFile(t, filepath.Join(rig.out, ArticlesDir, "sip-basics.html"))
	sidebar := page[strings.Index(page, `id="recommended-list"`):]
	first := strings.Index(sidebar, "budgeting-101.html")
	second := strings.Index(sidebar, "sip-basics.html")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second, "most viewed article is recommended first")
}

func TestRun_ViewsUnavailable(t *testing.T) {
	rig := newRig(t)
	rig.builder.WithViews(fakeViews{err: errors.New("db closed")})

	_, err := rig.builder.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, rig.logs.String(), "view counts unavailable")
}

func TestRun_Metrics(t *testing.T) {
	rig := newRig(t)
	m := metrics.New()
	rig.builder.WithMetrics(m)

	_, err := rig.builder.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.BuildsTotal.WithLabelValues(metrics.StatusSuccess)))
	assert.Equal(t, 3.0, promtestutil.ToFloat64(m.ArticlesRendered))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.DuplicateSlugs))
}

func TestNew_Defaults(t *testing.T) {
	b := New(&content.Loader{}, nil, Options{}, nil)
	assert.Equal(t, DefaultRecommendedCount, b.opts.RecommendedCount)
	assert.NotNil(t, b.logger)
}
