// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the content records shared by the build pass,
// the content API and the frontend renderers.
package model

import (
	"html/template"
	"strings"
)

// Article defaults applied when a source row leaves a column empty.
const (
	DefaultTitle    = "Untitled"
	DefaultAuthor   = "Admin"
	DefaultReadTime = "2"
	DefaultImageURL = "images/default.jpg"
)

// Article is one normalized row of the articles sheet.
type Article struct {
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	Excerpt         string `json:"excerpt"`
	DateTime        string `json:"dateTime"`
	Category        string `json:"category"`
	Author          string `json:"author"`
	ReadTime        string `json:"readTime"`
	ImageURL        string `json:"imageUrl"`
	Keywords        string `json:"keywords"`
	MetaDescription string `json:"metaDescription"`
	CanonicalURL    string `json:"canonicalUrl"`
	Views           int64  `json:"views,omitempty"`

	// Derived representations, not part of the wire format.
	Categories  []string      `json:"-"`
	KeywordList []string      `json:"-"`
	Body        template.HTML `json:"-"`
}

// ApplyDefaults fills every empty field with its documented fallback.
// Derived list fields are rebuilt from the raw comma-separated strings.
func (a *Article) ApplyDefaults() {
	if a.Title == "" {
		a.Title = DefaultTitle
	}
	if a.Author == "" {
		a.Author = DefaultAuthor
	}
	if a.ReadTime == "" {
		a.ReadTime = DefaultReadTime
	}
	if a.ImageURL == "" {
		a.ImageURL = DefaultImageURL
	}
	a.Categories = SplitList(a.Category)
	a.KeywordList = SplitList(a.Keywords)
}

// HasCategory reports whether the article is tagged with name (case-insensitive).
func (a *Article) HasCategory(name string) bool {
	for _, c := range a.Categories {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// SplitList splits a comma-separated cell into trimmed, non-empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
