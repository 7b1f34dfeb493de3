// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
)

func TestRobotsBuilderBuildDefault(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{SiteURL: "https://example.com/"}).Build()

	for _, want := range []string{
		"User-agent: *",
		"Disallow: /api/",
		"Disallow: /fragments/",
		"Allow: /",
		"Sitemap: https://example.com/sitemap.xml",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Build() should contain %q, got:\n%s", want, content)
		}
	}
}

func TestRobotsBuilderBuildDisallowAll(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{
		SiteURL:     "https://staging.example.com",
		DisallowAll: true,
	}).Build()

	if content != "User-agent: *\nDisallow: /\n" {
		t.Errorf("Build() with DisallowAll = %q", content)
	}
}

func TestRobotsBuilderExtraPaths(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{DisallowPaths: []string{"/drafts/"}}).Build()

	if !strings.Contains(content, "Disallow: /drafts/") {
		t.Error("Build() should include custom disallow paths")
	}
	if strings.Contains(content, "Sitemap:") {
		t.Error("Build() without SiteURL should not reference a sitemap")
	}
}
