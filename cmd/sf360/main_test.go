// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/config"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/render"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/sheets"
)

func TestNewSource_CSV(t *testing.T) {
	src, err := newSource(context.Background(), &config.Config{CSVDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &sheets.CSVSource{}, src)
}

func TestNewSource_GoogleMissingCredentials(t *testing.T) {
	_, err := newSource(context.Background(), &config.Config{
		SpreadsheetID:   "sheet-123",
		CredentialsFile: t.TempDir() + "/missing.json",
	})
	assert.Error(t, err)
}

func TestRenderSite(t *testing.T) {
	site, err := config.DefaultSite()
	require.NoError(t, err)

	a := &app{
		cfg:  &config.Config{SiteName: "Smart Finance 360", SiteURL: "https://smartfinance360.com"},
		site: site,
	}
	assert.Equal(t, render.Site{
		Name:      "Smart Finance 360",
		URL:       "https://smartfinance360.com",
		LogoURL:   "images/logo.png",
		Favicon:   "images/favicon.png",
		AdsClient: "ca-pub-9846205135944521",
		AdsSlot:   "2835292413",
	}, a.renderSite())
}
