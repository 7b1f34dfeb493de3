// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package frontend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/content"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/render"
)

// ListQuery selects what a Lister pages through. Keyword takes precedence
// over Category.
type ListQuery struct {
	Category string
	Keyword  string
}

// values encodes q for a fragment URL.
func (q ListQuery) values() url.Values {
	v := url.Values{}
	switch {
	case q.Keyword != "":
		v.Set("keyword", q.Keyword)
	case q.Category != "":
		v.Set("category", q.Category)
	}
	return v
}

// Lister pages through the content endpoint one batch at a time. It owns
// its paging state; a short batch marks the listing as done.
type Lister struct {
	api   ContentAPI
	query ListQuery
	batch int

	page  int // next page to fetch, 1-based
	count int // records returned so far
	done  bool
}

// NewLister creates a Lister positioned at the first page. The batch is
// capped at the endpoint's largest page so a full page is never mistaken
// for the last one.
func NewLister(api ContentAPI, batch int, query ListQuery) *Lister {
	if batch < 1 {
		batch = DefaultPageSize
	}
	batch = content.ClampLimit(batch)
	return &Lister{api: api, query: query, batch: batch, page: 1}
}

// StartAt positions the lister at page.
func (l *Lister) StartAt(page int) *Lister {
	if page > 1 {
		l.page = page
	}
	return l
}

// Next fetches the next batch. On error the position is unchanged.
func (l *Lister) Next(ctx context.Context) ([]model.Article, error) {
	var (
		articles []model.Article
		err      error
	)
	if l.query.Keyword != "" {
		articles, err = l.api.Search(ctx, l.query.Keyword, l.page, l.batch)
	} else {
		articles, err = l.api.Posts(ctx, l.page, l.batch, l.query.Category)
	}
	if err != nil {
		return nil, err
	}

	l.page++
	l.count += len(articles)
	l.done = len(articles) < l.batch
	return articles, nil
}

// Page returns the next page Next will fetch.
func (l *Lister) Page() int { return l.page }

// Count returns the number of records fetched so far.
func (l *Lister) Count() int { return l.count }

// Done reports whether the last batch was short.
func (l *Lister) Done() bool { return l.done }

// Fragment fetches the next batch and turns it into the posts fragment,
// with a load-more link unless the listing is done.
func (l *Lister) Fragment(ctx context.Context, root string) render.PostsFragment {
	first := l.page == 1
	articles, err := l.Next(ctx)
	if err != nil {
		return render.PostsFragment{Root: root, Error: "Failed to load posts. Please try again later."}
	}

	frag := render.PostsFragment{
		Root:     root,
		Articles: articles,
		Empty:    first && len(articles) == 0,
		LoadMore: !l.done,
	}
	if frag.LoadMore {
		v := l.query.values()
		v.Set("page", strconv.Itoa(l.page))
		frag.NextURL = root + "fragments/posts?" + v.Encode()
	}
	return frag
}
