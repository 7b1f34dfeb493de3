// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "time"

// ArticleView is a row of article_views.
type ArticleView struct {
	Slug      string
	Views     int64
	UpdatedAt time.Time
}

// Event is a row of events.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}
