// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
)

func testArticles() []model.Article {
	mk := func(slug, date, cats, title string) model.Article {
		a := model.Article{Slug: slug, DateTime: date, Category: cats, Title: title}
		a.ApplyDefaults()
		return a
	}
	return []model.Article{
		mk("old", "2024-01-01", "Finance", "Old budgeting tips"),
		mk("undated", "", "Sports", "Cricket economics"),
		mk("new", "2025-06-01", "Finance, Investment", "New SIP rules"),
		mk("mid", "2024-12-31", "Technology", "Fintech apps"),
	}
}

func slugs(articles []model.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.Slug
	}
	return out
}

func TestCatalogOrdering(t *testing.T) {
	c := NewCatalog()
	c.Replace(testArticles())

	got := fmt.Sprint(slugs(c.All()))
	if want := "[new mid old undated]"; got != want {
		t.Errorf("All() = %s, want %s", got, want)
	}
	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}
	if c.LoadedAt().IsZero() {
		t.Error("LoadedAt() should be set after Replace")
	}
}

func TestCatalogPage(t *testing.T) {
	c := NewCatalog()
	c.Replace(testArticles())

	tests := []struct {
		name     string
		page     int
		limit    int
		category string
		want     string
	}{
		{"first page", 1, 2, "", "[new mid]"},
		{"second page", 2, 2, "", "[old undated]"},
		{"past the end", 3, 2, "", "[]"},
		{"page zero is first", 0, 3, "", "[new mid old]"},
		{"last partial page", 2, 3, "", "[undated]"},
		{"huge page", math.MaxInt, 6, "", "[]"},
		{"huge page with max limit", math.MaxInt, MaxPageSize, "finance", "[]"},
		{"category filter", 1, 10, "finance", "[new old]"},
		{"unknown category", 1, 10, "Crypto", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fmt.Sprint(slugs(c.Page(tt.page, tt.limit, tt.category)))
			if got != tt.want {
				t.Errorf("Page(%d, %d, %q) = %s, want %s", tt.page, tt.limit, tt.category, got, tt.want)
			}
		})
	}
}

func TestCatalogBySlug(t *testing.T) {
	c := NewCatalog()
	articles := testArticles()
	dup := articles[0]
	dup.Title = "Replacement"
	c.Replace(append(articles, dup))

	a, err := c.BySlug("old")
	if err != nil {
		t.Fatalf("BySlug(old) error = %v", err)
	}
	if a.Title != "Replacement" {
		t.Errorf("BySlug(old).Title = %q, want the later record", a.Title)
	}

	if _, err := c.BySlug("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("BySlug(missing) error = %v, want ErrNotFound", err)
	}
}

func TestCatalogByCategory(t *testing.T) {
	c := NewCatalog()
	c.Replace(testArticles())

	if got := fmt.Sprint(slugs(c.ByCategory("finance"))); got != "[new old]" {
		t.Errorf("ByCategory(finance) = %s, want [new old]", got)
	}
	if got := c.ByCategory("  "); got != nil {
		t.Errorf("ByCategory(blank) = %v, want nil", got)
	}
	if got := c.ByCategory("Crypto"); len(got) != 0 {
		t.Errorf("ByCategory(Crypto) = %v, want empty", slugs(got))
	}
}

func TestCatalogSearch(t *testing.T) {
	c := NewCatalog()
	c.Replace(testArticles())

	if got := fmt.Sprint(slugs(c.Search("SIP", 1, 10))); got != "[new]" {
		t.Errorf("Search(SIP) = %s, want [new]", got)
	}
	if got := fmt.Sprint(slugs(c.Search("sports", 1, 10))); got != "[undated]" {
		t.Errorf("Search(sports) = %s, want [undated]", got)
	}
	if got := c.Search("  ", 1, 10); got != nil {
		t.Errorf("Search(blank) = %v, want nil", got)
	}
}

func TestCatalogRecommended(t *testing.T) {
	c := NewCatalog()
	c.Replace(testArticles())

	got := c.Recommended(2, map[string]int64{"old": 10, "undated": 3})
	if s := fmt.Sprint(slugs(got)); s != "[old undated]" {
		t.Errorf("Recommended() = %s, want [old undated]", s)
	}
	if got[0].Views != 10 {
		t.Errorf("Recommended()[0].Views = %d, want 10", got[0].Views)
	}

	if s := fmt.Sprint(slugs(c.Recommended(3, nil))); s != "[new mid old]" {
		t.Errorf("Recommended(no views) = %s, want catalog order", s)
	}
}

func TestCatalogCategoryCounts(t *testing.T) {
	c := NewCatalog()
	c.Replace(testArticles())

	counts := c.CategoryCounts()
	want := map[string]int{"Finance": 2, "Investment": 1, "Sports": 1, "Technology": 1}
	if fmt.Sprint(counts) != fmt.Sprint(want) {
		t.Errorf("CategoryCounts() = %v, want %v", counts, want)
	}
}

func TestClampLimit(t *testing.T) {
	for in, want := range map[int]int{-1: DefaultPageSize, 0: DefaultPageSize, 7: 7, 500: MaxPageSize} {
		if got := ClampLimit(in); got != want {
			t.Errorf("ClampLimit(%d) = %d, want %d", in, got, want)
		}
	}
}
