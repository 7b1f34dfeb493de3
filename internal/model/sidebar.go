// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "sort"

// Sidebar is the payload behind the recommended posts and category widgets.
type Sidebar struct {
	Recommended []Article      `json:"recommended"`
	Categories  map[string]int `json:"categories"`
}

// CategoryCount is a category name with the number of articles tagged with it.
type CategoryCount struct {
	Name  string
	Count int
}

// SortedCategories returns the category map ordered by count, then name.
func SortedCategories(m map[string]int) []CategoryCount {
	out := make([]CategoryCount, 0, len(m))
	for name, n := range m {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ViewCount is the response of a trackView call.
type ViewCount struct {
	Slug  string `json:"slug,omitempty"`
	Views int64  `json:"views"`
}

// ErrorResponse is the shape of an error payload from the content endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
