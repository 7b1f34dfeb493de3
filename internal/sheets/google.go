// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package sheets

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// GoogleSource reads ranges from a Google spreadsheet using a service account.
type GoogleSource struct {
	svc           *gsheets.Service
	spreadsheetID string
}

// GoogleOptions configures the Google Sheets source.
type GoogleOptions struct {
	SpreadsheetID   string
	CredentialsFile string // service account JSON key
}

// NewGoogleSource creates a read-only Sheets client.
func NewGoogleSource(ctx context.Context, opts GoogleOptions) (*GoogleSource, error) {
	if opts.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}
	if opts.CredentialsFile == "" {
		return nil, errors.New("credentials file is required")
	}

	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(opts.CredentialsFile),
		option.WithScopes(gsheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &GoogleSource{svc: svc, spreadsheetID: opts.SpreadsheetID}, nil
}

// Values implements Source.
func (s *GoogleSource) Values(ctx context.Context, readRange string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading range %s: %w", readRange, err)
	}
	return stringify(resp.Values), nil
}

// stringify converts the API's loosely typed cells into strings.
func stringify(values [][]any) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		out[i] = cells
	}
	return out
}

var _ Source = (*GoogleSource)(nil)
