// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package frontend renders the dynamic pages of the site on the server:
// listings with load-more, search results, the article page and the
// sidebar. All data comes from the content endpoint; each section falls
// back to a static message when its call fails.
package frontend

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/render"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/seo"
)

// DefaultPageSize is the number of cards per batch.
const DefaultPageSize = 6

// ContentAPI is the part of the content endpoint the frontend reads.
// *client.Client implements it.
type ContentAPI interface {
	Posts(ctx context.Context, page, limit int, category string) ([]model.Article, error)
	Search(ctx context.Context, keyword string, page, limit int) ([]model.Article, error)
	Article(ctx context.Context, slug string) (model.Article, error)
	TrackView(ctx context.Context, slug string) (int64, error)
	Sidebar(ctx context.Context, limit int) (model.Sidebar, error)
}

// Options configures a Handler.
type Options struct {
	Site     render.Site
	SEO      *seo.SiteConfig
	PageSize int
	// StaticDir is served for every path without a dynamic route.
	StaticDir    string
	TrackTimeout time.Duration
	// ViewWait caps how long an article render waits for its trackView
	// count. The call itself continues in the background.
	ViewWait time.Duration
	OnViews  ViewsFunc
	Logger       *slog.Logger
}

// Handler serves the frontend routes.
type Handler struct {
	api      ContentAPI
	renderer *render.Renderer
	site     render.Site
	seo      *seo.SiteConfig
	pageSize int
	static   http.Handler

	sidebar *SidebarRenderer
	detail  *DetailRenderer
	logger  *slog.Logger
}

// New creates a frontend Handler.
func New(api ContentAPI, renderer *render.Renderer, opts Options) *Handler {
	if opts.PageSize < 1 {
		opts.PageSize = DefaultPageSize
	}
	if opts.TrackTimeout <= 0 {
		opts.TrackTimeout = DefaultTrackTimeout
	}
	if opts.ViewWait <= 0 {
		opts.ViewWait = DefaultViewWait
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.SEO == nil {
		opts.SEO = &seo.SiteConfig{SiteName: opts.Site.Name, SiteURL: opts.Site.URL}
	}

	sidebar := NewSidebarRenderer(api, DefaultSidebarLimit, opts.Logger)
	h := &Handler{
		api:      api,
		renderer: renderer,
		site:     opts.Site,
		seo:      opts.SEO,
		pageSize: opts.PageSize,
		sidebar:  sidebar,
		detail: &DetailRenderer{
			api:          api,
			sidebar:      sidebar,
			site:         opts.Site,
			seo:          opts.SEO,
			trackTimeout: opts.TrackTimeout,
			viewWait:     opts.ViewWait,
			onViews:      opts.OnViews,
			logger:       opts.Logger,
		},
		logger: opts.Logger,
	}
	if opts.StaticDir != "" {
		h.static = http.FileServer(http.Dir(opts.StaticDir))
	}
	return h
}

// Detail returns the article page renderer.
func (h *Handler) Detail() *DetailRenderer {
	return h.detail
}

// Routes mounts the frontend routes on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/index.html", h.Home)
	r.Get("/category.html", h.Category)
	r.Get("/search", h.Search)
	r.Get("/article.html", h.Article)
	r.Get("/fragments/posts", h.PostsFragment)
	r.Get("/fragments/sidebar", h.SidebarFragment)
	if h.static != nil {
		r.Handle("/*", h.static)
	}
}

// Home renders the latest articles.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.listPage(w, r, "Latest Articles", "", "/", ListQuery{})
}

// Category renders the articles of the category in ?cat=.
func (h *Handler) Category(w http.ResponseWriter, r *http.Request) {
	cat := strings.TrimSpace(r.URL.Query().Get("cat"))
	if cat == "" {
		h.listPage(w, r, "All Articles", "", "/category.html", ListQuery{})
		return
	}
	h.listPage(w, r, cat, cat+" | "+h.site.Name,
		"/category.html?cat="+url.QueryEscape(cat), ListQuery{Category: cat})
}

// Search renders the articles matching ?keyword=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		h.render(w, http.StatusOK, render.TemplateList, render.ListPage{
			Site:    h.site,
			Meta:    seo.SiteMeta("Search | "+h.site.Name, "", h.seo),
			Heading: "Search",
			Posts:   render.PostsFragment{Empty: true},
			Sidebar: h.sidebar.View(r.Context(), ""),
		})
		return
	}
	h.listPage(w, r, `Search results for "`+keyword+`"`, "Search: "+keyword+" | "+h.site.Name,
		"/search?keyword="+url.QueryEscape(keyword), ListQuery{Keyword: keyword})
}

// Article renders the article in ?slug=.
func (h *Handler) Article(w http.ResponseWriter, r *http.Request) {
	page, status := h.detail.DetailPage(r.Context(), strings.TrimSpace(r.URL.Query().Get("slug")))
	h.render(w, status, render.TemplateDetail, page)
}

// PostsFragment renders one load-more batch: ?page= plus the listing's
// category or keyword.
func (h *Handler) PostsFragment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	lister := NewLister(h.api, h.pageSize, ListQuery{
		Category: q.Get("category"),
		Keyword:  q.Get("keyword"),
	}).StartAt(page)

	h.render(w, http.StatusOK, render.TemplatePostsFragment, h.posts(r.Context(), lister))
}

// SidebarFragment renders the sidebar on its own.
func (h *Handler) SidebarFragment(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, render.TemplateSidebarFragment, h.sidebar.View(r.Context(), ""))
}

func (h *Handler) listPage(w http.ResponseWriter, r *http.Request, heading, title, path string, query ListQuery) {
	lister := NewLister(h.api, h.pageSize, query)
	h.render(w, http.StatusOK, render.TemplateList, render.ListPage{
		Site:    h.site,
		Meta:    seo.SiteMeta(title, h.seo.SiteURL+path, h.seo),
		Heading: heading,
		Posts:   h.posts(r.Context(), lister),
		Sidebar: h.sidebar.View(r.Context(), ""),
	})
}

// posts renders the lister's next batch.
func (h *Handler) posts(ctx context.Context, lister *Lister) render.PostsFragment {
	page := lister.Page()
	frag := lister.Fragment(ctx, "")
	if frag.Error == "" {
		h.logger.Debug("listed posts",
			"page", page,
			"records", lister.Count(),
			"done", lister.Done(),
			"category", lister.query.Category,
			"keyword", lister.query.Keyword)
	}
	return frag
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	html, err := h.renderer.Render(name, data)
	if err != nil {
		h.logger.Error("failed to render page", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, html)
}
