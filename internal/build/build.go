// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package build runs the offline build pass: it fetches both content
// sheets, renders one static page per article plus the motivational page,
// and writes the sitemap and robots.txt into the output directory.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/content"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/metrics"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/render"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/seo"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/service"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/uikit"
)

// Output layout inside the output directory.
const (
	ArticlesDir      = "articles"
	MotivationalFile = "motivational.html"
	SitemapFile      = "sitemap.xml"
	RobotsFile       = "robots.txt"

	// articleRoot is the relative path from an article page back to the site root.
	articleRoot = "../"

	filePerm = 0o644
	dirPerm  = 0o755
)

// DefaultRecommendedCount is the number of sidebar recommendations baked
// into generated article pages.
const DefaultRecommendedCount = 5

// Options configures a Builder.
type Options struct {
	OutputDir        string
	Site             render.Site
	SEO              *seo.SiteConfig
	StaticPages      []seo.StaticPage
	Robots           seo.RobotsConfig
	Motivational     seo.PageInfo
	RecommendedCount int
}

// ViewSource provides stored view counts used to rank recommendations.
type ViewSource interface {
	ViewsMap(ctx context.Context) (map[string]int64, error)
}

// Result summarizes one build run.
type Result struct {
	RunID      string
	Articles   int
	Thoughts   int
	Duplicates map[string][]int // slug -> sheet rows
	Files      []string
	Duration   time.Duration
}

// Builder renders the static site from the content sheets.
type Builder struct {
	loader   *content.Loader
	renderer *render.Renderer
	opts     Options
	logger   *slog.Logger

	events  *service.EventService
	metrics *metrics.Metrics
	views   ViewSource

	// runs are serialized: the scheduler and the template watcher may
	// trigger a build at the same time.
	mu sync.Mutex
}

// New creates a Builder.
func New(loader *content.Loader, renderer *render.Renderer, opts Options, logger *slog.Logger) *Builder {
	if opts.RecommendedCount <= 0 {
		opts.RecommendedCount = DefaultRecommendedCount
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		loader:   loader,
		renderer: renderer,
		opts:     opts,
		logger:   logger,
	}
}

// WithEvents records successful runs in the event log.
func (b *Builder) WithEvents(events *service.EventService) *Builder {
	b.events = events
	return b
}

// WithMetrics records run outcomes in m.
func (b *Builder) WithMetrics(m *metrics.Metrics) *Builder {
	b.metrics = m
	return b
}

// WithViews ranks sidebar recommendations by stored view counts.
func (b *Builder) WithViews(views ViewSource) *Builder {
	b.views = views
	return b
}

// Run executes one build pass. On failure the run stops at the failing
// step; files already written are left in place.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	started := time.Now()
	res := &Result{RunID: uuid.NewString()}
	logger := b.logger.With("run_id", res.RunID)

	err := b.run(ctx, logger, res)
	res.Duration = time.Since(started)
	b.metrics.ObserveBuild(err, started, res.Articles, len(res.Duplicates))

	if err != nil {
		// Failures reach the event log through the logging handler.
		logger.Error("build failed", "error", err, "files_written", len(res.Files))
		return res, err
	}

	logger.Info("build completed",
		"articles", res.Articles,
		"thoughts", res.Thoughts,
		"files", len(res.Files),
		"duplicates", len(res.Duplicates),
		"duration", res.Duration)

	if b.events != nil {
		_ = b.events.LogBuildEvent(ctx, model.EventLevelInfo, "build completed", map[string]any{
			"run_id":     res.RunID,
			"articles":   res.Articles,
			"thoughts":   res.Thoughts,
			"duplicates": len(res.Duplicates),
			"duration":   res.Duration.String(),
		})
	}
	return res, nil
}

func (b *Builder) run(ctx context.Context, logger *slog.Logger, res *Result) error {
	articlesDir := filepath.Join(b.opts.OutputDir, ArticlesDir)
	if err := os.MkdirAll(articlesDir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	set, thoughts, err := b.fetch(ctx)
	if err != nil {
		return err
	}
	res.Articles = len(set.Articles)
	res.Thoughts = len(thoughts)
	logger.Info("content fetched", "articles", res.Articles, "thoughts", res.Thoughts)

	res.Duplicates = duplicateRows(set)
	for _, slug := range sortedKeys(res.Duplicates) {
		logger.Warn("duplicate slug in articles sheet, later row overwrites earlier",
			"slug", slug, "rows", res.Duplicates[slug])
	}

	sidebar := b.sidebar(ctx, logger, set.Articles)

	for i := range set.Articles {
		if err := ctx.Err(); err != nil {
			return err
		}
		a := &set.Articles[i]
		path := filepath.Join(articlesDir, a.Slug+".html")
		if err := b.renderTo(path, render.TemplateArticle, b.articlePage(a, sidebar)); err != nil {
			return fmt.Errorf("article %q: %w", a.Slug, err)
		}
		res.Files = append(res.Files, path)
		logger.Debug("article written", "path", path)
	}

	path := filepath.Join(b.opts.OutputDir, MotivationalFile)
	if err := b.renderTo(path, render.TemplateMotivational, b.motivationalPage(thoughts)); err != nil {
		return fmt.Errorf("motivational page: %w", err)
	}
	res.Files = append(res.Files, path)

	sitemap, err := seo.GenerateSitemap(b.opts.SEO.SiteURL, b.opts.StaticPages, set.Articles)
	if err != nil {
		return fmt.Errorf("building sitemap: %w", err)
	}
	path = filepath.Join(b.opts.OutputDir, SitemapFile)
	if err := writeFile(path, sitemap); err != nil {
		return err
	}
	res.Files = append(res.Files, path)

	robots := seo.NewRobotsBuilder(b.opts.Robots).Build()
	path = filepath.Join(b.opts.OutputDir, RobotsFile)
	if err := writeFile(path, []byte(robots)); err != nil {
		return err
	}
	res.Files = append(res.Files, path)

	return nil
}

// fetch reads both sheets concurrently and waits for both.
func (b *Builder) fetch(ctx context.Context) (content.ArticleSet, []model.Thought, error) {
	var (
		set      content.ArticleSet
		thoughts []model.Thought
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		set, err = b.loader.Articles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		thoughts, err = b.loader.Thoughts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return content.ArticleSet{}, nil, err
	}
	return set, thoughts, nil
}

// sidebar builds the recommended and category widgets baked into every
// article page. Missing view counts only affect the ranking.
func (b *Builder) sidebar(ctx context.Context, logger *slog.Logger, articles []model.Article) render.SidebarView {
	catalog := content.NewCatalog()
	catalog.Replace(articles)

	var views map[string]int64
	if b.views != nil {
		var err error
		if views, err = b.views.ViewsMap(ctx); err != nil {
			logger.Warn("view counts unavailable, recommendations use catalog order", "error", err)
		}
	}

	return render.SidebarView{
		Root:        articleRoot,
		Recommended: catalog.Recommended(b.opts.RecommendedCount, views),
		Categories:  model.SortedCategories(catalog.CategoryCounts()),
	}
}

func (b *Builder) articlePage(a *model.Article, sidebar render.SidebarView) render.ArticlePage {
	return render.ArticlePage{
		Site:        b.opts.Site,
		Root:        articleRoot,
		Article:     *a,
		Meta:        seo.BuildMeta(a, b.opts.SEO),
		Schema:      seo.BuildArticleSchema(a, b.opts.SEO),
		Breadcrumbs: uikit.ArticleBreadcrumbs(articleRoot, a.Title, a.Categories),
		Share:       seo.ShareLinks(a.CanonicalURL, a.Title),
		Sidebar:     sidebar,
	}
}

func (b *Builder) motivationalPage(thoughts []model.Thought) render.MotivationalPage {
	info := b.opts.Motivational
	return render.MotivationalPage{
		Site:          b.opts.Site,
		Meta:          seo.BuildPageMeta(&info, b.opts.SEO),
		Heading:       info.Heading,
		ShareTitle:    info.ShareTitle,
		PageBasePath:  info.BasePath,
		Thoughts:      thoughts,
		HasPagination: false,
	}
}

func (b *Builder) renderTo(path, name string, data any) error {
	html, err := b.renderer.Render(name, data)
	if err != nil {
		return err
	}
	return writeFile(path, []byte(html))
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// duplicateRows maps every slug shared by several records to their sheet rows.
func duplicateRows(set content.ArticleSet) map[string][]int {
	dups := content.DuplicateSlugs(set.Articles)
	out := make(map[string][]int, len(dups))
	for slug, idx := range dups {
		rows := make([]int, len(idx))
		for i, j := range idx {
			rows[i] = set.Rows[j]
		}
		out[slug] = rows
	}
	return out
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
