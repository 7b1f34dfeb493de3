// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
)

// Paging limits for catalog queries.
const (
	DefaultPageSize = 6
	MaxPageSize     = 50
)

// ErrNotFound is returned when no article has the requested slug.
var ErrNotFound = errors.New("article not found")

// Catalog is a read-only, swappable snapshot of the articles sheet.
// Articles are ordered newest first; undated articles keep sheet order
// after the dated ones.
type Catalog struct {
	mu       sync.RWMutex
	articles []model.Article
	bySlug   map[string]int
	loadedAt time.Time
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{bySlug: make(map[string]int)}
}

// Replace swaps in a new snapshot. When slugs collide the later record wins
// slug lookups, mirroring the file overwrite of the build pass.
func (c *Catalog) Replace(articles []model.Article) {
	dates := make([]time.Time, len(articles))
	dated := make([]bool, len(articles))
	order := make([]int, len(articles))
	for i := range articles {
		dates[i], dated[i] = model.ParseDateTime(articles[i].DateTime)
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if dated[a] && dated[b] {
			return dates[a].After(dates[b])
		}
		return dated[a] && !dated[b]
	})

	sorted := make([]model.Article, len(articles))
	posOf := make([]int, len(articles))
	for pos, idx := range order {
		sorted[pos] = articles[idx]
		posOf[idx] = pos
	}

	bySlug := make(map[string]int, len(articles))
	for idx := range articles {
		bySlug[articles[idx].Slug] = posOf[idx]
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.articles = sorted
	c.bySlug = bySlug
	c.loadedAt = time.Now()
}

// Len returns the number of articles.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.articles)
}

// LoadedAt returns when the current snapshot was installed.
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// All returns a copy of every article.
func (c *Catalog) All() []model.Article {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Article, len(c.articles))
	copy(out, c.articles)
	return out
}

// BySlug returns the article with slug.
func (c *Catalog) BySlug(slug string) (model.Article, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.bySlug[slug]
	if !ok {
		return model.Article{}, ErrNotFound
	}
	return c.articles[i], nil
}

// Page returns one 1-based page of articles, optionally restricted to a
// category. Out-of-range pages are empty.
func (c *Catalog) Page(page, limit int, category string) []model.Article {
	c.mu.RLock()
	defer c.mu.RUnlock()

	category = strings.TrimSpace(category)
	return paginate(c.filter(func(a *model.Article) bool {
		return category == "" || a.HasCategory(category)
	}), page, limit)
}

// ByCategory returns every article tagged with category, newest first.
func (c *Catalog) ByCategory(category string) []model.Article {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter(func(a *model.Article) bool {
		return a.HasCategory(category)
	})
}

// Search returns one page of articles whose title, excerpt, keywords or
// categories contain keyword (case-insensitive).
func (c *Catalog) Search(keyword string, page, limit int) []model.Article {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return paginate(c.filter(func(a *model.Article) bool {
		for _, field := range []string{a.Title, a.Excerpt, a.Keywords, a.Category} {
			if strings.Contains(strings.ToLower(field), keyword) {
				return true
			}
		}
		return false
	}), page, limit)
}

// Recommended returns up to n articles ranked by view count, falling back
// to catalog order for ties and unviewed articles.
func (c *Catalog) Recommended(n int, views map[string]int64) []model.Article {
	all := c.All()
	sort.SliceStable(all, func(i, j int) bool {
		return views[all[i].Slug] > views[all[j].Slug]
	})
	if n < len(all) {
		all = all[:n]
	}
	for i := range all {
		all[i].Views = views[all[i].Slug]
	}
	return all
}

// CategoryCounts returns how many articles carry each category.
func (c *Catalog) CategoryCounts() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	counts := make(map[string]int)
	for i := range c.articles {
		for _, cat := range c.articles[i].Categories {
			counts[cat]++
		}
	}
	return counts
}

func (c *Catalog) filter(keep func(*model.Article) bool) []model.Article {
	var out []model.Article
	for i := range c.articles {
		if keep(&c.articles[i]) {
			out = append(out, c.articles[i])
		}
	}
	return out
}

// ClampLimit bounds a requested page size.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultPageSize
	case limit > MaxPageSize:
		return MaxPageSize
	default:
		return limit
	}
}

func paginate(items []model.Article, page, limit int) []model.Article {
	limit = ClampLimit(limit)
	if page < 1 {
		page = 1
	}
	if page-1 > len(items)/limit {
		return []model.Article{}
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []model.Article{}
	}
	end := min(start+limit, len(items))
	return items[start:end]
}
