// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package frontend

import (
	"context"
	"log/slog"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/render"
)

// DefaultSidebarLimit is the number of recommended articles requested.
const DefaultSidebarLimit = 5

// SidebarRenderer builds the recommended and category widgets from one
// sidebar call.
type SidebarRenderer struct {
	api    ContentAPI
	limit  int
	logger *slog.Logger
}

// NewSidebarRenderer creates a SidebarRenderer.
func NewSidebarRenderer(api ContentAPI, limit int, logger *slog.Logger) *SidebarRenderer {
	if limit < 1 {
		limit = DefaultSidebarLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SidebarRenderer{api: api, limit: limit, logger: logger}
}

// View fetches the sidebar payload. A failed call marks both sections as
// failed; a section missing from the payload fails on its own.
func (s *SidebarRenderer) View(ctx context.Context, root string) render.SidebarView {
	view := render.SidebarView{Root: root}

	sb, err := s.api.Sidebar(ctx, s.limit)
	if err != nil {
		s.logger.Warn("failed to load sidebar", "error", err)
		view.RecommendedErr = true
		view.CategoriesErr = true
		return view
	}

	if sb.Recommended == nil {
		view.RecommendedErr = true
	} else {
		view.Recommended = sb.Recommended
	}
	if sb.Categories == nil {
		view.CategoriesErr = true
	} else {
		view.Categories = model.SortedCategories(sb.Categories)
	}
	return view
}
