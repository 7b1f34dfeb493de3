// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Event log levels.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event log categories.
const (
	EventCategoryBuild  = "build"
	EventCategorySource = "source"
	EventCategoryAPI    = "api"
	EventCategoryViews  = "views"
	EventCategoryCache  = "cache"
	EventCategorySystem = "system"
)
