// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the page templates.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var files embed.FS

// Templates holds partials/*.html and pages/*.html.
var Templates = mustSub(files, "templates")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
