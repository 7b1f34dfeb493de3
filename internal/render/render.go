// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the page templates and executes them into HTML.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"maps"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/uikit"
)

// ErrTemplateNotFound is returned when rendering a template that was not parsed.
var ErrTemplateNotFound = errors.New("template not found")

// blankLinesRegex matches runs of whitespace-only lines left behind by
// template actions.
var blankLinesRegex = regexp.MustCompile(`\r?\n(?:[ \t]*\r?\n)+`)

const (
	partialsDir = "partials"
	pagesDir    = "pages"
)

// Config holds renderer configuration.
type Config struct {
	// TemplatesFS holds partials/*.html and pages/*.html.
	TemplatesFS fs.FS
	// OverrideDir, when set, is a directory with the same layout whose
	// files replace the embedded ones of the same path.
	OverrideDir string
}

// Renderer handles template rendering with caching.
type Renderer struct {
	cfg        Config
	extraFuncs template.FuncMap

	mu        sync.RWMutex
	templates map[string]*template.Template
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{cfg: cfg}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// AddTemplateFuncs merges funcs into the renderer's function map.
// Takes effect on the next Reload.
func (r *Renderer) AddTemplateFuncs(funcs template.FuncMap) {
	if r.extraFuncs == nil {
		r.extraFuncs = make(template.FuncMap, len(funcs))
	}
	maps.Copy(r.extraFuncs, funcs)
}

// TemplateFuncs returns the uikit helpers plus the site-specific ones.
func (r *Renderer) TemplateFuncs() template.FuncMap {
	funcs := uikit.TemplateFuncs()
	funcs["articleURL"] = func(root, slug string) string {
		return root + "articles/" + url.PathEscape(slug) + ".html"
	}
	funcs["categoryURL"] = func(root, name string) string {
		return root + "category.html?cat=" + url.QueryEscape(name)
	}
	funcs["assetURL"] = AssetURL
	funcs["searchURL"] = func(root, keyword string) string {
		return root + "search?keyword=" + url.QueryEscape(keyword)
	}
	maps.Copy(funcs, r.extraFuncs)
	return funcs
}

// AssetURL prefixes a relative asset path with root. Absolute URLs and
// root-relative paths are returned unchanged.
func AssetURL(root, asset string) string {
	if asset == "" || strings.HasPrefix(asset, "/") || strings.Contains(asset, "://") {
		return asset
	}
	return root + asset
}

// Reload re-parses every template. On failure the previously parsed set
// stays in use.
func (r *Renderer) Reload() error {
	partials, err := r.templateFiles(partialsDir)
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}
	pages, err := r.templateFiles(pagesDir)
	if err != nil {
		return fmt.Errorf("getting pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no templates in %s/", pagesDir)
	}

	funcs := r.TemplateFuncs()
	parsed := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		name := strings.TrimSuffix(path.Base(page), ".html")

		tmpl := template.New(name).Funcs(funcs)
		files := append(append([]string{}, partials...), page)
		for _, file := range files {
			src, err := r.readTemplate(file)
			if err != nil {
				return err
			}
			// The page body becomes the root template; partials only
			// contribute {{define}} blocks.
			target := tmpl
			if file != page {
				target = tmpl.New(file)
			}
			if _, err := target.Parse(string(src)); err != nil {
				return fmt.Errorf("parsing template %s: %w", file, err)
			}
		}
		parsed[name] = tmpl
	}

	r.mu.Lock()
	r.templates = parsed
	r.mu.Unlock()
	return nil
}

// Render executes the named page template and returns the resulting HTML.
// Output is buffered so a failing template never yields partial content.
func (r *Renderer) Render(name string, data any) (string, error) {
	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return string(blankLinesRegex.ReplaceAll(buf.Bytes(), []byte("\n"))), nil
}

// Names lists the parsed page templates.
func (r *Renderer) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// templateFiles returns all .html files in dir across the embedded FS and
// the override directory.
func (r *Renderer) templateFiles(dir string) ([]string, error) {
	seen := make(map[string]bool)

	if r.cfg.TemplatesFS != nil {
		entries, err := fs.ReadDir(r.cfg.TemplatesFS, dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
				seen[path.Join(dir, entry.Name())] = true
			}
		}
	}

	if r.cfg.OverrideDir != "" {
		entries, err := os.ReadDir(filepath.Join(r.cfg.OverrideDir, dir))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
				seen[path.Join(dir, entry.Name())] = true
			}
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

// readTemplate reads file from the override directory if present there,
// otherwise from the embedded FS.
func (r *Renderer) readTemplate(file string) ([]byte, error) {
	if r.cfg.OverrideDir != "" {
		src, err := os.ReadFile(filepath.Join(r.cfg.OverrideDir, filepath.FromSlash(file)))
		if err == nil {
			return src, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading template %s: %w", file, err)
		}
	}
	if r.cfg.TemplatesFS == nil {
		return nil, fmt.Errorf("reading template %s: %w", file, fs.ErrNotExist)
	}
	src, err := fs.ReadFile(r.cfg.TemplatesFS, file)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", file, err)
	}
	return src, nil
}
