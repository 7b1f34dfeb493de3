// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Thought defaults.
const (
	DefaultThoughtText   = "Stay motivated!"
	DefaultThoughtAuthor = "Smart Finance 360"
	DefaultThoughtColor  = "#ffffff"
)

// AdInterval is the position interval at which thoughts carry an advertisement.
const AdInterval = 3

// Thought is one row of the motivational thoughts sheet.
type Thought struct {
	ID              int    `json:"id"`
	Text            string `json:"text"`
	Author          string `json:"author"`
	BackgroundColor string `json:"bg"`
	ShowAd          bool   `json:"showAd"`
}
