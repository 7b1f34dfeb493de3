// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
)

func TestShareLinks(t *testing.T) {
	links := ShareLinks("https://smartfinance360.com/articles/a&b.html", "Tax & You")
	if len(links) != 4 {
		t.Fatalf("len(links) = %d, want 4", len(links))
	}

	want := map[string]string{
		"fb": "u=https%3A%2F%2Fsmartfinance360.com%2Farticles%2Fa%26b.html",
		"tw": "text=Tax+%26+You&url=https%3A%2F%2F",
		"li": "url=https%3A%2F%2Fsmartfinance360.com",
		"wa": "text=Tax+%26+You+https%3A%2F%2F",
	}
	for _, l := range links {
		if !strings.Contains(l.URL, want[l.Network]) {
			t.Errorf("%s URL = %q, want it to contain %q", l.Network, l.URL, want[l.Network])
		}
	}
}
