// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const incrementViews = `
INSERT INTO article_views (slug, views, updated_at) VALUES (?, 1, ?)
ON CONFLICT(slug) DO UPDATE SET views = views + 1, updated_at = excluded.updated_at
RETURNING views
`

// IncrementViews adds one view to slug and returns the new total.
func (q *Queries) IncrementViews(ctx context.Context, slug string, now time.Time) (int64, error) {
	row := q.db.QueryRowContext(ctx, incrementViews, slug, now)
	var views int64
	err := row.Scan(&views)
	return views, err
}

const getViews = `SELECT views FROM article_views WHERE slug = ?`

// GetViews returns the view count of slug, zero when it was never viewed.
func (q *Queries) GetViews(ctx context.Context, slug string) (int64, error) {
	var views int64
	err := q.db.QueryRowContext(ctx, getViews, slug).Scan(&views)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return views, err
}

const listTopViewed = `
SELECT slug, views, updated_at FROM article_views
ORDER BY views DESC, slug ASC
LIMIT ?
`

// ListTopViewed returns the most viewed slugs, highest first.
func (q *Queries) ListTopViewed(ctx context.Context, limit int64) ([]ArticleView, error) {
	rows, err := q.db.QueryContext(ctx, listTopViewed, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []ArticleView
	for rows.Next() {
		var i ArticleView
		if err := rows.Scan(&i.Slug, &i.Views, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listViews = `SELECT slug, views FROM article_views`

// ViewsMap returns every recorded view count keyed by slug.
func (q *Queries) ViewsMap(ctx context.Context) (map[string]int64, error) {
	rows, err := q.db.QueryContext(ctx, listViews)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	views := make(map[string]int64)
	for rows.Next() {
		var slug string
		var n int64
		if err := rows.Scan(&slug, &n); err != nil {
			return nil, err
		}
		views[slug] = n
	}
	return views, rows.Err()
}
