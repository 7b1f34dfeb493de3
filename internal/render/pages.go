// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"html/template"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/seo"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/uikit"
)

// Page template names.
const (
	TemplateArticle         = "article"
	TemplateMotivational    = "motivational"
	TemplateList            = "list"
	TemplateDetail          = "detail"
	TemplatePostsFragment   = "posts-fragment"
	TemplateSidebarFragment = "sidebar-fragment"
	TemplateCardFragment    = "card-fragment"
)

// Site carries the global values every page template sees.
type Site struct {
	Name      string
	URL       string
	LogoURL   string
	Favicon   string
	AdsClient string
	AdsSlot   string
}

// SidebarView is the data behind the "sidebar" partial. Each section
// degrades on its own: a set error flag replaces that section with a
// static message.
type SidebarView struct {
	Root           string
	Recommended    []model.Article
	Categories     []model.CategoryCount
	RecommendedErr bool
	CategoriesErr  bool
}

// ArticlePage is the context of a generated article page.
type ArticlePage struct {
	Site        Site
	Root        string
	Article     model.Article
	Meta        *seo.Meta
	Schema      template.JS
	Breadcrumbs []uikit.Breadcrumb
	Share       []seo.ShareLink
	Sidebar     SidebarView
}

// MotivationalPage is the context of the motivational thoughts page.
type MotivationalPage struct {
	Site          Site
	Root          string
	Meta          *seo.Meta
	Heading       string
	ShareTitle    string
	PageBasePath  string
	Thoughts      []model.Thought
	HasPagination bool
}

// ListPage is the context of the home, category and search listings.
type ListPage struct {
	Site    Site
	Root    string
	Meta    *seo.Meta
	Heading string
	Posts   PostsFragment
	Sidebar SidebarView
}

// PostsFragment is one batch of article cards plus the load-more state.
type PostsFragment struct {
	Root     string
	Articles []model.Article
	// Empty is true when the first batch had no records.
	Empty bool
	// Error replaces the cards with a message when the fetch failed.
	Error    string
	LoadMore bool
	// NextURL fetches the following batch.
	NextURL string
}

// Card is the context of a single article card.
type Card struct {
	Root    string
	Article model.Article
}

// DetailPage is the context of the dynamic article page. When Error is
// set the article body is not rendered.
type DetailPage struct {
	Site        Site
	Root        string
	Meta        *seo.Meta
	Error       string
	Article     model.Article
	Breadcrumbs []uikit.Breadcrumb
	Share       []seo.ShareLink
	Views       int64
	Sidebar     SidebarView
}
