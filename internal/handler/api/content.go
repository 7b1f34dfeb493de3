// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/cache"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/content"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/util"
)

// Actions understood by the content endpoint.
const (
	ActionPosts     = "posts"
	ActionArticle   = "article"
	ActionTrackView = "trackView"
	ActionCategory  = "category"
	ActionSidebar   = "sidebar"
	ActionSearch    = "search"
)

// DefaultSidebarLimit is the number of recommended articles in a sidebar payload.
const DefaultSidebarLimit = 5

// cacheKeyPrefix namespaces every key this handler writes.
const cacheKeyPrefix = "api:"

// response is the outcome of one action.
type response struct {
	status int
	body   any
}

func ok(body any) response {
	return response{status: http.StatusOK, body: body}
}

func fail(status int, message string) response {
	return response{status: status, body: model.ErrorResponse{Error: message}}
}

// Content handles GET /api/content. A request without an action but with
// a keyword is a search.
func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	q := r.URL.Query()

	action := q.Get("action")
	if action == "" && strings.TrimSpace(q.Get("keyword")) != "" {
		action = ActionSearch
	}

	var res response
	label := action
	switch action {
	case ActionPosts:
		res = h.posts(q)
	case ActionArticle:
		res = h.article(r.Context(), q)
	case ActionTrackView:
		res = h.trackView(r, q)
	case ActionCategory:
		res = h.category(r.Context(), q)
	case ActionSidebar:
		res = h.sidebar(r.Context(), q)
	case ActionSearch:
		res = h.search(q)
	case "":
		label = "none"
		res = fail(http.StatusBadRequest, "Missing action")
	default:
		label = "unknown"
		res = fail(http.StatusBadRequest, "Unknown action: "+action)
	}

	WriteJSON(w, res.status, res.body)
	h.metrics.ObserveAPI(label, res.status, started)
}

func (h *Handler) posts(q url.Values) response {
	if keyword := strings.TrimSpace(q.Get("keyword")); keyword != "" {
		return h.search(q)
	}
	page := intParam(q, "page", 1)
	limit := intParam(q, "limit", content.DefaultPageSize)
	return ok(nonNil(h.catalog.Page(page, limit, q.Get("category"))))
}

func (h *Handler) search(q url.Values) response {
	page := intParam(q, "page", 1)
	limit := intParam(q, "limit", content.DefaultPageSize)
	return ok(nonNil(h.catalog.Search(q.Get("keyword"), page, limit)))
}

func (h *Handler) article(ctx context.Context, q url.Values) response {
	slug, bad, valid := slugParam(q)
	if !valid {
		return bad
	}

	a, err := h.catalog.BySlug(slug)
	if err != nil {
		return fail(http.StatusNotFound, "Article not found")
	}

	views, err := h.queries.GetViews(ctx, slug)
	if err != nil {
		h.logger.Warn("failed to read view count", "slug", slug, "error", err)
	}
	a.Views = views
	return ok(a)
}

func (h *Handler) trackView(r *http.Request, q url.Values) response {
	slug, bad, valid := slugParam(q)
	if !valid {
		return bad
	}
	if _, err := h.catalog.BySlug(slug); err != nil {
		return fail(http.StatusNotFound, "Article not found")
	}

	if !h.limiter.Allow(r) {
		h.metrics.ObserveView(true)
		return fail(http.StatusTooManyRequests, "Too many requests")
	}

	views, err := h.queries.IncrementViews(r.Context(), slug, time.Now().UTC())
	if err != nil {
		h.logger.Error("failed to record view", "slug", slug, "error", err)
		return fail(http.StatusInternalServerError, "Could not record view")
	}
	h.metrics.ObserveView(false)
	return ok(model.ViewCount{Slug: slug, Views: views})
}

// category returns every article of a category, or one page of them when
// page or limit is given.
func (h *Handler) category(ctx context.Context, q url.Values) response {
	name := strings.TrimSpace(q.Get("category"))
	if name == "" {
		return fail(http.StatusBadRequest, "Missing category")
	}

	paged := q.Has("page") || q.Has("limit")
	page := intParam(q, "page", 1)
	limit := intParam(q, "limit", content.DefaultPageSize)

	key := cacheKeyPrefix + "category:" + strings.ToLower(name)
	if paged {
		key += fmt.Sprintf(":%d:%d", page, content.ClampLimit(limit))
	}

	articles, err := cached(ctx, h, h.lists, key, func() (*[]model.Article, error) {
		var list []model.Article
		if paged {
			list = h.catalog.Page(page, limit, name)
		} else {
			list = h.catalog.ByCategory(name)
		}
		list = nonNil(list)
		return &list, nil
	})
	if err != nil {
		return fail(http.StatusInternalServerError, "Could not load category")
	}
	return ok(*articles)
}

func (h *Handler) sidebar(ctx context.Context, q url.Values) response {
	n := intParam(q, "limit", DefaultSidebarLimit)
	n = max(1, min(n, content.MaxPageSize))

	key := cacheKeyPrefix + "sidebar:" + strconv.Itoa(n)
	sb, err := cached(ctx, h, h.sidebars, key, func() (*model.Sidebar, error) {
		views, err := h.queries.ViewsMap(ctx)
		if err != nil {
			h.logger.Warn("view counts unavailable, recommendations use catalog order", "error", err)
		}
		return &model.Sidebar{
			Recommended: nonNil(h.catalog.Recommended(n, views)),
			Categories:  h.catalog.CategoryCounts(),
		}, nil
	})
	if err != nil {
		return fail(http.StatusInternalServerError, "Could not load sidebar")
	}
	return ok(sb)
}

// Invalidate drops every cached payload. It runs after each catalog refresh.
func (h *Handler) Invalidate(ctx context.Context) error {
	if h.cache == nil {
		return nil
	}
	return h.cache.DeleteByPrefix(ctx, cacheKeyPrefix)
}

// cached serves key from tc, computing and storing it with fn on a miss.
// A nil tc always calls fn.
func cached[T any](ctx context.Context, h *Handler, tc *cache.TypedCache[T], key string, fn func() (*T, error)) (*T, error) {
	if tc == nil {
		return fn()
	}
	value, hit, err := tc.GetOrSet(ctx, key, fn)
	if err == nil {
		h.metrics.ObserveCache(hit)
	}
	return value, err
}

// slugParam reads the slug query parameter. Missing and malformed slugs
// yield a 400 response and valid is false.
func slugParam(q url.Values) (slug string, bad response, valid bool) {
	slug = strings.TrimSpace(q.Get("slug"))
	switch {
	case slug == "":
		return "", fail(http.StatusBadRequest, "Missing slug"), false
	case !util.IsValidSlug(slug):
		return "", fail(http.StatusBadRequest, "Invalid slug"), false
	}
	return slug, response{}, true
}

// intParam parses a positive integer query parameter, falling back to def.
func intParam(q url.Values, name string, def int) int {
	n, err := strconv.Atoi(q.Get(name))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// nonNil makes empty results encode as [] instead of null.
func nonNil(articles []model.Article) []model.Article {
	if articles == nil {
		return []model.Article{}
	}
	return articles
}
