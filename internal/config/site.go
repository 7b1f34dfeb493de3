// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/seo"
)

//go:embed site.default.yaml
var defaultSiteYAML []byte

// Site holds site metadata that does not fit environment variables:
// the static sitemap pages, the motivational page meta and ad placement.
type Site struct {
	Description    string           `yaml:"description"`
	Logo           string           `yaml:"logo"`
	Favicon        string           `yaml:"favicon"`
	DefaultOGImage string           `yaml:"default_og_image"`
	Ads            Ads              `yaml:"ads"`
	StaticPages    []seo.StaticPage `yaml:"static_pages"`
	Robots         Robots           `yaml:"robots"`
	Motivational   seo.PageInfo     `yaml:"motivational"`
}

// Ads identifies the ad unit embedded in generated pages.
type Ads struct {
	Client string `yaml:"client"`
	Slot   string `yaml:"slot"`
}

// Robots configures robots.txt.
type Robots struct {
	DisallowAll bool     `yaml:"disallow_all"`
	Disallow    []string `yaml:"disallow"`
}

// DefaultSite returns the embedded site metadata.
func DefaultSite() (*Site, error) {
	site := &Site{}
	if err := yaml.Unmarshal(defaultSiteYAML, site); err != nil {
		return nil, fmt.Errorf("parsing embedded site defaults: %w", err)
	}
	return site, nil
}

// LoadSite reads the site file at path over the embedded defaults. Keys
// missing from the file keep their default; lists replace the default list.
// A missing file is not an error.
func LoadSite(path string) (*Site, error) {
	site, err := DefaultSite()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return site, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return site, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading site file: %w", err)
	}
	if err := yaml.Unmarshal(data, site); err != nil {
		return nil, fmt.Errorf("parsing site file %s: %w", path, err)
	}
	if err := site.validate(); err != nil {
		return nil, fmt.Errorf("site file %s: %w", path, err)
	}
	return site, nil
}

func (s *Site) validate() error {
	for _, p := range s.StaticPages {
		if p.Path == "" {
			return errors.New("static page without path")
		}
		if !p.ChangeFreq.Valid() {
			return fmt.Errorf("static page %s: invalid changefreq %q", p.Path, p.ChangeFreq)
		}
		if p.Priority < 0 || p.Priority > 1 {
			return fmt.Errorf("static page %s: priority %v outside [0, 1]", p.Path, p.Priority)
		}
	}
	return nil
}

// SEO returns the site-wide SEO settings for the given configuration.
func (s *Site) SEO(cfg *Config) *seo.SiteConfig {
	return &seo.SiteConfig{
		SiteName:        cfg.SiteName,
		SiteURL:         cfg.SiteURL,
		SiteDescription: s.Description,
		DefaultOGImage:  s.DefaultOGImage,
	}
}

// RobotsConfig returns the robots.txt settings for the given configuration.
func (s *Site) RobotsConfig(cfg *Config) seo.RobotsConfig {
	return seo.RobotsConfig{
		SiteURL:       cfg.SiteURL,
		DisallowAll:   s.Robots.DisallowAll,
		DisallowPaths: s.Robots.Disallow,
	}
}
