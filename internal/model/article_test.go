// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "Finance", []string{"Finance"}},
		{"trims and drops empties", " Finance, ,Tax ,, Savings ", []string{"Finance", "Tax", "Savings"}},
		{"only commas", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitList(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitList(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestArticleApplyDefaults(t *testing.T) {
	a := Article{Category: "Tax, Finance"}
	a.ApplyDefaults()

	if a.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", a.Title, DefaultTitle)
	}
	if a.Author != DefaultAuthor {
		t.Errorf("Author = %q, want %q", a.Author, DefaultAuthor)
	}
	if a.ReadTime != DefaultReadTime {
		t.Errorf("ReadTime = %q, want %q", a.ReadTime, DefaultReadTime)
	}
	if a.ImageURL != DefaultImageURL {
		t.Errorf("ImageURL = %q, want %q", a.ImageURL, DefaultImageURL)
	}
	if len(a.Categories) != 2 || a.Categories[1] != "Finance" {
		t.Errorf("Categories = %v, want [Tax Finance]", a.Categories)
	}
	if !a.HasCategory("finance") {
		t.Error("HasCategory(finance) = false, want true")
	}
}

func TestSortedCategories(t *testing.T) {
	got := SortedCategories(map[string]int{"Tax": 2, "Finance": 5, "Business": 2})
	want := []CategoryCount{{"Finance", 5}, {"Business", 2}, {"Tax", 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedCategories() = %v, want %v", got, want)
	}
}
