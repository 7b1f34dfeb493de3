// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package sheets

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CSVSource reads sheets exported as CSV files from a directory.
// The sheet "Sheet1" is read from "<dir>/Sheet1.csv".
type CSVSource struct {
	dir string
}

// NewCSVSource creates a source backed by CSV exports in dir.
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

// Values implements Source.
func (s *CSVSource) Values(ctx context.Context, readRange string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := ParseRange(readRange)
	if err != nil {
		return nil, err
	}

	if r.Sheet != filepath.Base(r.Sheet) {
		return nil, fmt.Errorf("%w: sheet name %q", ErrInvalidRange, r.Sheet)
	}

	f, err := os.Open(filepath.Join(s.dir, r.Sheet+".csv"))
	if err != nil {
		return nil, fmt.Errorf("opening sheet %s: %w", r.Sheet, err)
	}
	defer func() { _ = f.Close() }()

	values, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", r.Sheet, err)
	}
	return r.Clip(values), nil
}

func readCSV(rd io.Reader) ([][]string, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
}

var _ Source = (*CSVSource)(nil)
