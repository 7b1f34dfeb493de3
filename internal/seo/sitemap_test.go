// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
)

var testStaticPages = []StaticPage{
	{Path: "index.html", ChangeFreq: ChangeFreqHourly, Priority: 1.0},
	{Path: "/motivational.html", ChangeFreq: ChangeFreqDaily, Priority: 0.9},
	{Path: "contact.html", ChangeFreq: ChangeFreqWeekly, Priority: 0.6},
}

func TestNewSitemapBuilder(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com/")
	if builder.siteURL != "https://example.com" {
		t.Errorf("siteURL = %q, want %q", builder.siteURL, "https://example.com")
	}
	if builder.Len() != 0 {
		t.Errorf("Len() = %d, want 0", builder.Len())
	}
}

func TestSitemapBuilderAddStatic(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com")
	builder.AddStaticPages(testStaticPages)

	if builder.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", builder.Len())
	}

	tests := []struct {
		loc      string
		freq     ChangeFreq
		priority string
	}{
		{"https://example.com/index.html", ChangeFreqHourly, "1.0"},
		{"https://example.com/motivational.html", ChangeFreqDaily, "0.9"},
		{"https://example.com/contact.html", ChangeFreqWeekly, "0.6"},
	}
	for i, tt := range tests {
		url := builder.urls[i]
		if url.Loc != tt.loc {
			t.Errorf("urls[%d].Loc = %q, want %q", i, url.Loc, tt.loc)
		}
		if url.ChangeFreq != tt.freq {
			t.Errorf("urls[%d].ChangeFreq = %q, want %q", i, url.ChangeFreq, tt.freq)
		}
		if url.Priority != tt.priority {
			t.Errorf("urls[%d].Priority = %q, want %q", i, url.Priority, tt.priority)
		}
	}
}

func TestSitemapBuilderAddArticles(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com")
	builder.AddArticles([]model.Article{
		{Slug: "a", CanonicalURL: "https://example.com/articles/a.html", Views: 900},
		{Slug: "b", CanonicalURL: "https://example.com/articles/b.html"},
	})

	for i, url := range builder.urls {
		if url.Priority != "0.9" || url.ChangeFreq != ChangeFreqDaily {
			t.Errorf("urls[%d] = %+v, want daily/0.9 regardless of content", i, url)
		}
	}
}

func TestFormatPriority(t *testing.T) {
	tests := map[float64]string{1: "1.0", 0.6: "0.6", 0.9: "0.9", -2: "0.0", 3: "1.0"}
	for in, want := range tests {
		if got := formatPriority(in); got != want {
			t.Errorf("formatPriority(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateSitemap(t *testing.T) {
	articles := []model.Article{
		{CanonicalURL: "https://example.com/articles/save-more.html"},
		{CanonicalURL: "https://example.com/articles/q&a-on-tax.html"},
	}

	out, err := GenerateSitemap("https://example.com", testStaticPages, articles)
	if err != nil {
		t.Fatalf("GenerateSitemap() error = %v", err)
	}

	content := string(out)
	if !strings.HasPrefix(content, "<?xml") {
		t.Error("output should start with XML header")
	}
	if !strings.Contains(content, XMLNamespace) {
		t.Errorf("output should contain namespace %q", XMLNamespace)
	}
	if got, want := strings.Count(content, "<url>"), len(testStaticPages)+len(articles); got != want {
		t.Errorf("<url> count = %d, want %d", got, want)
	}
	if !strings.Contains(content, "q&amp;a-on-tax") {
		t.Error("ampersand in URL should be escaped")
	}

	var parsed Sitemap
	if err := xml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("sitemap is not well-formed: %v", err)
	}
	if len(parsed.URLs) != 5 {
		t.Errorf("parsed URLs = %d, want 5", len(parsed.URLs))
	}
	if parsed.URLs[3].Loc != "https://example.com/articles/save-more.html" {
		t.Errorf("first article loc = %q", parsed.URLs[3].Loc)
	}
}

func TestSitemapEmpty(t *testing.T) {
	out, err := NewSitemapBuilder("https://example.com").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if strings.Contains(string(out), "<url>") {
		t.Error("empty sitemap should have no <url> elements")
	}
}

func TestSitemapInvalidChangeFreq(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com")
	builder.AddStatic(StaticPage{Path: "x.html", ChangeFreq: "sometimes", Priority: 0.5})

	if _, err := builder.Build(); err == nil {
		t.Error("Build() should reject an unknown changefreq")
	}
}
