// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// htmlSanitizer allows the safe HTML subset editors paste into the sheet.
var htmlSanitizer = bluemonday.UGCPolicy()

// markdown converts plain-text cells. Hard wraps keep the line breaks
// editors type inside a single cell.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

var htmlTag = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*[^<>]*>`)

// RenderBody turns a Content cell into safe HTML. Cells that already contain
// markup are sanitized as-is; anything else is treated as Markdown.
func RenderBody(content string) template.HTML {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}

	if !htmlTag.MatchString(content) {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(content), &buf); err == nil {
			content = buf.String()
		}
	}

	return template.HTML(htmlSanitizer.Sanitize(content))
}
