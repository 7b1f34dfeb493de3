// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"strings"
	"testing"
)

func TestRenderBody(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "html passes through",
			input:    `<p>Hello <strong>investor</strong></p>`,
			contains: []string{"<p>Hello <strong>investor</strong></p>"},
		},
		{
			name:     "scripts are stripped",
			input:    `<p>Hi</p><script>alert(1)</script>`,
			contains: []string{"<p>Hi</p>"},
			excludes: []string{"<script", "alert"},
		},
		{
			name:     "plain text becomes markdown",
			input:    "## Budgeting\n\nSpend **less** than you earn.",
			contains: []string{"<h2", "Budgeting</h2>", "<strong>less</strong>"},
		},
		{
			name:     "comparison operators are not markup",
			input:    "Returns of 5 < 7 percent",
			contains: []string{"<p>Returns of 5 &lt; 7 percent</p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(RenderBody(tt.input))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("RenderBody(%q) = %q, should contain %q", tt.input, got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("RenderBody(%q) = %q, should not contain %q", tt.input, got, bad)
				}
			}
		})
	}

	if got := RenderBody("   "); got != "" {
		t.Errorf("RenderBody(blank) = %q, want empty", got)
	}
}
