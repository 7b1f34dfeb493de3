// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package uikit

import "net/url"

// Breadcrumb represents a single breadcrumb item.
type Breadcrumb struct {
	Label  string
	URL    string
	Active bool
}

// ArticleBreadcrumbs builds Home > first category > title for an article page.
// root is the relative prefix from the page back to the site root.
func ArticleBreadcrumbs(root, title string, categories []string) []Breadcrumb {
	crumbs := []Breadcrumb{{Label: "Home", URL: root + "index.html"}}
	if len(categories) > 0 {
		crumbs = append(crumbs, Breadcrumb{
			Label: categories[0],
			URL:   root + "category.html?cat=" + url.QueryEscape(categories[0]),
		})
	}
	return append(crumbs, Breadcrumb{Label: title, Active: true})
}
