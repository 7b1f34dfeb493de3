// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package sheets

import (
	"context"
	"fmt"
	"sync"
)

// StaticSource serves fixed in-memory sheets. It backs tests and demos.
type StaticSource struct {
	mu     sync.RWMutex
	sheets map[string][][]string
}

// NewStaticSource creates a source from sheet name to rows.
func NewStaticSource(sheets map[string][][]string) *StaticSource {
	if sheets == nil {
		sheets = make(map[string][][]string)
	}
	return &StaticSource{sheets: sheets}
}

// Set replaces the rows of a sheet.
func (s *StaticSource) Set(sheet string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[sheet] = rows
}

// Values implements Source.
func (s *StaticSource) Values(ctx context.Context, readRange string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := ParseRange(readRange)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.sheets[r.Sheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q not found", r.Sheet)
	}
	return r.Clip(rows), nil
}

var _ Source = (*StaticSource)(nil)
