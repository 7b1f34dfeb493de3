// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content maps spreadsheet rows to typed records and serves them
// through an in-memory catalog.
package content

import (
	"strings"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/util"
)

// Article sheet column headers.
const (
	ColSlug            = "Slug"
	ColTitle           = "Title"
	ColMetaTitle       = "MetaTitle"
	ColContent         = "Content"
	ColExcerpt         = "Excerpt"
	ColDateTime        = "DateTime"
	ColCategory        = "Category"
	ColAuthor          = "Author"
	ColReadTime        = "ReadTime"
	ColImageURL        = "ImageURL"
	ColKeywords        = "Keywords"
	ColMetaDescription = "MetaDescription"
)

// Thought sheet column headers, matched case-insensitively.
const (
	ColThought = "thought"
	ColAuthorT = "author"
	ColColor   = "color"
)

// Row is a data row keyed by header.
type Row map[string]string

// NewRow zips headers with cells. Cells beyond the end of a ragged row are
// empty. When a header repeats, the right-most column wins.
func NewRow(headers, cells []string) Row {
	row := make(Row, len(headers))
	for i, h := range headers {
		if i < len(cells) {
			row[h] = cells[i]
		} else {
			row[h] = ""
		}
	}
	return row
}

// first returns the first non-empty value among keys.
func (r Row) first(keys ...string) string {
	for _, k := range keys {
		if v := r[k]; v != "" {
			return v
		}
	}
	return ""
}

// Normalizer converts article rows into records for one site.
type Normalizer struct {
	SiteURL string
}

// CanonicalURL returns the public URL of the article page for slug.
func (n Normalizer) CanonicalURL(slug string) string {
	return strings.TrimSuffix(n.SiteURL, "/") + "/articles/" + slug + ".html"
}

// Article builds one record from a row. Every field is set: empty columns
// take the documented defaults and the slug is derived from the Slug
// column, or the title when that is empty.
func (n Normalizer) Article(row Row) model.Article {
	title := row.first(ColMetaTitle, ColTitle)
	if title == "" {
		title = model.DefaultTitle
	}

	slug := util.Slugify(row.first(ColSlug))
	if slug == "" {
		slug = util.Slugify(title)
	}
	if slug == "" {
		slug = util.Slugify(model.DefaultTitle)
	}

	a := model.Article{
		Slug:            slug,
		Title:           row.first(ColTitle, ColMetaTitle),
		Content:         row[ColContent],
		Excerpt:         row[ColExcerpt],
		DateTime:        row[ColDateTime],
		Category:        row[ColCategory],
		Author:          row[ColAuthor],
		ReadTime:        row[ColReadTime],
		ImageURL:        row[ColImageURL],
		Keywords:        row[ColKeywords],
		MetaDescription: row[ColMetaDescription],
		CanonicalURL:    n.CanonicalURL(slug),
	}
	if a.Title == "" {
		a.Title = title
	}
	a.ApplyDefaults()
	a.Body = RenderBody(a.Content)
	return a
}

// Articles converts a full sheet (header row first) into records.
// Blank rows are skipped. The second result holds the 1-based sheet row
// number of each record, aligned by index.
func (n Normalizer) Articles(values [][]string) ([]model.Article, []int) {
	headers, rows := splitHeader(values, strings.TrimSpace)
	if headers == nil {
		return nil, nil
	}

	var (
		articles []model.Article
		lines    []int
	)
	for i, cells := range rows {
		if isBlank(cells) {
			continue
		}
		articles = append(articles, n.Article(NewRow(headers, cells)))
		lines = append(lines, i+2)
	}
	return articles, lines
}

// Thoughts converts the thoughts sheet into records numbered from 1.
// Every AdInterval-th thought is flagged to carry an advertisement.
func Thoughts(values [][]string) []model.Thought {
	headers, rows := splitHeader(values, func(h string) string {
		return strings.ToLower(strings.TrimSpace(h))
	})
	if headers == nil {
		return nil
	}

	var thoughts []model.Thought
	for _, cells := range rows {
		if isBlank(cells) {
			continue
		}
		row := NewRow(headers, cells)
		id := len(thoughts) + 1
		t := model.Thought{
			ID:              id,
			Text:            row.first(ColThought),
			Author:          row.first(ColAuthorT),
			BackgroundColor: row.first(ColColor),
			ShowAd:          id%model.AdInterval == 0,
		}
		if t.Text == "" {
			t.Text = model.DefaultThoughtText
		}
		if t.Author == "" {
			t.Author = model.DefaultThoughtAuthor
		}
		if t.BackgroundColor == "" {
			t.BackgroundColor = model.DefaultThoughtColor
		}
		thoughts = append(thoughts, t)
	}
	return thoughts
}

// DuplicateSlugs returns every slug that more than one record maps to,
// with the indexes of those records.
func DuplicateSlugs(articles []model.Article) map[string][]int {
	seen := make(map[string][]int, len(articles))
	for i, a := range articles {
		seen[a.Slug] = append(seen[a.Slug], i)
	}
	dups := make(map[string][]int)
	for slug, idx := range seen {
		if len(idx) > 1 {
			dups[slug] = idx
		}
	}
	return dups
}

func splitHeader(values [][]string, key func(string) string) ([]string, [][]string) {
	if len(values) == 0 {
		return nil, nil
	}
	headers := make([]string, len(values[0]))
	for i, h := range values[0] {
		headers[i] = key(h)
	}
	return headers, values[1:]
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
