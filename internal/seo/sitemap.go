// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo provides SEO utilities for building meta tags, structured data,
// robots.txt and sitemaps.
package seo

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// Valid reports whether f is one of the protocol's change frequencies.
func (f ChangeFreq) Valid() bool {
	switch f {
	case ChangeFreqAlways, ChangeFreqHourly, ChangeFreqDaily, ChangeFreqWeekly,
		ChangeFreqMonthly, ChangeFreqYearly, ChangeFreqNever:
		return true
	}
	return false
}

// Article pages all share one frequency and priority.
const (
	ArticleChangeFreq = ChangeFreqDaily
	ArticlePriority   = 0.9
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	ChangeFreq ChangeFreq `xml:"changefreq"`
	Priority   string     `xml:"priority"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// StaticPage is a fixed page listed in the sitemap with a hand-assigned priority.
type StaticPage struct {
	Path       string     `yaml:"path"`
	ChangeFreq ChangeFreq `yaml:"changefreq"`
	Priority   float64    `yaml:"priority"`
}

// SitemapBuilder builds sitemap XML from static pages and articles.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		urls:    make([]SitemapURL, 0),
	}
}

// AddURL adds an absolute URL.
func (b *SitemapBuilder) AddURL(loc string, freq ChangeFreq, priority float64) {
	b.urls = append(b.urls, SitemapURL{
		Loc:        loc,
		ChangeFreq: freq,
		Priority:   formatPriority(priority),
	})
}

// AddStatic adds a fixed page relative to the site URL.
func (b *SitemapBuilder) AddStatic(page StaticPage) {
	b.AddURL(b.siteURL+"/"+strings.TrimPrefix(page.Path, "/"), page.ChangeFreq, page.Priority)
}

// AddStaticPages adds multiple fixed pages.
func (b *SitemapBuilder) AddStaticPages(pages []StaticPage) {
	for _, p := range pages {
		b.AddStatic(p)
	}
}

// AddArticles adds one entry per article at its canonical URL. Content
// attributes do not affect frequency or priority.
func (b *SitemapBuilder) AddArticles(articles []model.Article) {
	for _, a := range articles {
		b.AddURL(a.CanonicalURL, ArticleChangeFreq, ArticlePriority)
	}
}

// Len returns the number of URLs added so far.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	for _, u := range b.urls {
		if !u.ChangeFreq.Valid() {
			return nil, fmt.Errorf("sitemap entry %s: invalid changefreq %q", u.Loc, u.ChangeFreq)
		}
	}

	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap lists every static page followed by every article.
func GenerateSitemap(siteURL string, pages []StaticPage, articles []model.Article) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL)
	builder.AddStaticPages(pages)
	builder.AddArticles(articles)
	return builder.Build()
}

// formatPriority clamps p to [0, 1] and renders it with one decimal.
func formatPriority(p float64) string {
	p = max(0, min(1, p))
	return strconv.FormatFloat(p, 'f', 1, 64)
}
