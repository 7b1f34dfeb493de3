// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sheets reads row-oriented tabular data from a spreadsheet.
// The first row of every range is treated as the header row by callers.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Source returns the cell values of an A1-notation range such as
// "Sheet1!A1:Z1000". Rows may be ragged; trailing empty cells are omitted.
type Source interface {
	Values(ctx context.Context, readRange string) ([][]string, error)
}

// ErrInvalidRange is returned when a range is not in Sheet!A1:B2 form.
var ErrInvalidRange = errors.New("invalid sheet range")

// Range is a parsed A1-notation range.
type Range struct {
	Sheet    string
	FirstCol int // 0-based
	LastCol  int // 0-based, inclusive
	FirstRow int // 0-based
	LastRow  int // 0-based, inclusive
}

// ParseRange parses "Sheet!A1:Z1000" into its components.
func ParseRange(s string) (Range, error) {
	sheet, cells, ok := strings.Cut(s, "!")
	if !ok || sheet == "" {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	from, to, ok := strings.Cut(cells, ":")
	if !ok {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}

	c1, r1, err := parseCell(from)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
	}
	c2, r2, err := parseCell(to)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
	}
	if c2 < c1 || r2 < r1 {
		return Range{}, fmt.Errorf("%w: %q: end before start", ErrInvalidRange, s)
	}

	return Range{Sheet: sheet, FirstCol: c1, LastCol: c2, FirstRow: r1, LastRow: r2}, nil
}

// parseCell parses "AB12" into a 0-based column and row.
func parseCell(cell string) (col, row int, err error) {
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		col = col*26 + int(cell[i]-'A'+1)
		i++
	}
	if i == 0 || i == len(cell) {
		return 0, 0, fmt.Errorf("bad cell %q", cell)
	}
	row, err = strconv.Atoi(cell[i:])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("bad cell %q", cell)
	}
	return col - 1, row - 1, nil
}

// Clip restricts values to the rows and columns covered by r.
// values is assumed to start at cell A1.
func (r Range) Clip(values [][]string) [][]string {
	var out [][]string
	for i, row := range values {
		if i < r.FirstRow {
			continue
		}
		if i > r.LastRow {
			break
		}
		if r.FirstCol >= len(row) {
			out = append(out, []string{})
			continue
		}
		end := min(len(row), r.LastCol+1)
		out = append(out, row[r.FirstCol:end])
	}
	return out
}
