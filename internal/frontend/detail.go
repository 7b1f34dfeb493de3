// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package frontend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/client"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/render"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/seo"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/uikit"
)

// DefaultTrackTimeout bounds a background trackView call.
const DefaultTrackTimeout = 5 * time.Second

// DefaultViewWait is how long a page render waits for the trackView
// count before falling back to the count in the article payload.
const DefaultViewWait = 300 * time.Millisecond

// Error messages shown in place of an article body.
const (
	msgNoSlug      = "No article specified."
	msgNotFound    = "Article not found."
	msgLoadFailure = "Failed to load article. Please try again later."
)

// ViewsFunc receives the view total returned by a background trackView call.
type ViewsFunc func(slug string, views int64)

// DetailRenderer renders the dynamic article page and records a view for
// every article it renders.
type DetailRenderer struct {
	api          ContentAPI
	sidebar      *SidebarRenderer
	site         render.Site
	seo          *seo.SiteConfig
	trackTimeout time.Duration
	viewWait     time.Duration
	onViews      ViewsFunc
	logger       *slog.Logger

	wg sync.WaitGroup
}

// DetailPage builds the page context for slug and returns it with the HTTP
// status it should be served with.
func (d *DetailRenderer) DetailPage(ctx context.Context, slug string) (render.DetailPage, int) {
	page := render.DetailPage{
		Site:    d.site,
		Sidebar: d.sidebar.View(ctx, ""),
	}

	if slug == "" {
		return d.errorPage(page, msgNoSlug), http.StatusBadRequest
	}

	a, err := d.api.Article(ctx, slug)
	if err != nil {
		msg, status := articleError(err)
		if status == http.StatusBadGateway {
			d.logger.Warn("failed to load article", "slug", slug, "error", err)
		}
		return d.errorPage(page, msg), status
	}

	page.Article = a
	page.Meta = seo.BuildMeta(&a, d.seo)
	page.Breadcrumbs = uikit.ArticleBreadcrumbs("", a.Title, a.Categories)
	page.Share = seo.ShareLinks(a.CanonicalURL, a.Title)
	page.Views = a.Views

	select {
	case views, ok := <-d.track(slug):
		if ok {
			page.Views = views
		}
	case <-time.After(d.viewWait):
	case <-ctx.Done():
	}
	return page, http.StatusOK
}

// articleError maps an article fetch error onto the text shown in the
// article container and the response status. An error payload from the
// content endpoint is shown as sent; transport failures get a fixed message.
func articleError(err error) (string, int) {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return msgLoadFailure, http.StatusBadGateway
	}

	msg := apiErr.Message
	switch {
	case errors.Is(err, client.ErrNotFound):
		if msg == "" {
			msg = msgNotFound
		}
		return msg, http.StatusNotFound
	case msg == "":
		return msgLoadFailure, http.StatusBadGateway
	case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		return msg, apiErr.StatusCode
	default:
		return msg, http.StatusBadGateway
	}
}

func (d *DetailRenderer) errorPage(page render.DetailPage, msg string) render.DetailPage {
	page.Error = msg
	page.Meta = seo.SiteMeta(msg+" | "+d.site.Name, "", d.seo)
	page.Meta.Robots = "noindex,follow"
	return page
}

// track records a view in the background. The call outlives the request
// under its own timeout; failures are logged and dropped. The returned
// channel yields the new total, or is closed without a value on failure.
func (d *DetailRenderer) track(slug string) <-chan int64 {
	out := make(chan int64, 1)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(out)

		ctx, cancel := context.WithTimeout(context.Background(), d.trackTimeout)
		defer cancel()

		views, err := d.api.TrackView(ctx, slug)
		if err != nil {
			d.logger.Warn("failed to track view", "slug", slug, "error", err)
			return
		}
		out <- views
		d.logger.Debug("view tracked", "slug", slug, "views", views)
		if d.onViews != nil {
			d.onViews(slug, views)
		}
	}()
	return out
}

// Wait blocks until every pending trackView call has finished.
func (d *DetailRenderer) Wait() {
	d.wg.Wait()
}
