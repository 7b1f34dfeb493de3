// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides URL slug generation and validation with
// Unicode normalization and ASCII transliteration.
package util

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

// symbolWords spells out symbols that would otherwise be dropped, so that
// "S&P 500" becomes "sandp-500" rather than "sp-500".
var symbolWords = map[rune]string{
	'&': "and",
	'%': "percent",
	'$': "dollar",
	'<': "less",
	'>': "greater",
	'|': "or",
	'¢': "cent",
	'£': "pound",
	'€': "euro",
}

var (
	// nonAlnum matches anything strict mode drops: all but ASCII letters,
	// digits and whitespace.
	nonAlnum = regexp.MustCompile(`[^A-Za-z0-9\s]+`)
	spaceRun = regexp.MustCompile(`\s+`)
)

// Slugify converts a string to a strict URL slug.
// Input is NFKC-normalized, symbols in symbolWords are spelled out and
// hyphens become word breaks; after ASCII transliteration every other
// character outside [A-Za-z0-9] and whitespace is removed without leaving
// a separator ("Don't" -> "dont", "3.5" -> "35"). Whitespace runs then
// become single hyphens and the result is lowercased. Slugify is idempotent.
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKC.String(s) {
		switch word, ok := symbolWords[r]; {
		case ok:
			b.WriteString(word)
		case r == '-':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}

	result := nonAlnum.ReplaceAllString(unidecode.Unidecode(b.String()), "")
	result = spaceRun.ReplaceAllString(strings.TrimSpace(result), "-")
	return strings.ToLower(result)
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}
