// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"fmt"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/sheets"
)

// Loader reads and normalizes both content sheets from a source.
type Loader struct {
	Source        sheets.Source
	ArticlesRange string
	ThoughtsRange string
	Normalizer    Normalizer
}

// ArticleSet is the normalized articles sheet plus the sheet row of each record.
type ArticleSet struct {
	Articles []model.Article
	Rows     []int
}

// Articles fetches and normalizes the articles sheet.
func (l *Loader) Articles(ctx context.Context) (ArticleSet, error) {
	values, err := l.Source.Values(ctx, l.ArticlesRange)
	if err != nil {
		return ArticleSet{}, fmt.Errorf("fetching articles: %w", err)
	}
	articles, rows := l.Normalizer.Articles(values)
	return ArticleSet{Articles: articles, Rows: rows}, nil
}

// Thoughts fetches and normalizes the thoughts sheet.
func (l *Loader) Thoughts(ctx context.Context) ([]model.Thought, error) {
	values, err := l.Source.Values(ctx, l.ThoughtsRange)
	if err != nil {
		return nil, fmt.Errorf("fetching thoughts: %w", err)
	}
	return Thoughts(values), nil
}
