// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package client is a typed HTTP client for the content endpoint. Records
// are validated and completed with defaults as they are decoded, so callers
// only ever see renderable articles.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/content"
	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
)

// Client configuration constants
const (
	DefaultTimeout = 10 * time.Second // HTTP request timeout
	MaxResponseLen = 4 << 20          // Maximum response body to read (4MB)
	UserAgent      = "SF360/1.0"      // User-Agent header value
)

// ErrNotFound is returned when the endpoint reports a missing record.
var ErrNotFound = errors.New("not found")

// ErrInvalidRecord is returned for a record without a slug or title.
var ErrInvalidRecord = errors.New("invalid record")

// APIError is an error payload or non-2xx status from the endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("content api: HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("content api: HTTP %d: %s", e.StatusCode, e.Message)
}

// Is makes errors.Is(err, ErrNotFound) match a 404 or a "not found" payload.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound &&
		(e.StatusCode == http.StatusNotFound || strings.Contains(strings.ToLower(e.Message), "not found"))
}

// Client talks to one content endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a client for endpoint, e.g. "http://localhost:8080/api/content".
// A non-positive timeout uses DefaultTimeout.
func New(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// Endpoint returns the endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Posts fetches one page of articles, optionally restricted to a category.
func (c *Client) Posts(ctx context.Context, page, limit int, category string) ([]model.Article, error) {
	params := url.Values{
		"action": {"posts"},
		"page":   {strconv.Itoa(page)},
		"limit":  {strconv.Itoa(limit)},
	}
	if category != "" {
		params.Set("category", category)
	}
	return c.articles(ctx, params)
}

// Search fetches one page of articles matching keyword.
func (c *Client) Search(ctx context.Context, keyword string, page, limit int) ([]model.Article, error) {
	params := url.Values{
		"action":  {"search"},
		"keyword": {keyword},
		"page":    {strconv.Itoa(page)},
		"limit":   {strconv.Itoa(limit)},
	}
	return c.articles(ctx, params)
}

// Category fetches every article of a category.
func (c *Client) Category(ctx context.Context, name string) ([]model.Article, error) {
	return c.articles(ctx, url.Values{"action": {"category"}, "category": {name}})
}

// Article fetches a single article by slug.
func (c *Client) Article(ctx context.Context, slug string) (model.Article, error) {
	var a model.Article
	if err := c.get(ctx, url.Values{"action": {"article"}, "slug": {slug}}, &a); err != nil {
		return model.Article{}, err
	}
	if err := prepare(&a); err != nil {
		return model.Article{}, fmt.Errorf("article %q: %w", slug, err)
	}
	return a, nil
}

// TrackView records one view of slug and returns the new total.
func (c *Client) TrackView(ctx context.Context, slug string) (int64, error) {
	var vc model.ViewCount
	if err := c.get(ctx, url.Values{"action": {"trackView"}, "slug": {slug}}, &vc); err != nil {
		return 0, err
	}
	return vc.Views, nil
}

// Sidebar fetches the recommended articles and category counts. Invalid
// recommended records are dropped; a section missing from the payload
// stays nil.
func (c *Client) Sidebar(ctx context.Context, limit int) (model.Sidebar, error) {
	params := url.Values{"action": {"sidebar"}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var sb model.Sidebar
	if err := c.get(ctx, params, &sb); err != nil {
		return model.Sidebar{}, err
	}
	sb.Recommended = c.valid(sb.Recommended)
	return sb, nil
}

func (c *Client) articles(ctx context.Context, params url.Values) ([]model.Article, error) {
	var list []model.Article
	if err := c.get(ctx, params, &list); err != nil {
		return nil, err
	}
	return c.valid(list), nil
}

// valid prepares every record and drops the ones that cannot be rendered.
func (c *Client) valid(list []model.Article) []model.Article {
	if list == nil {
		return nil
	}
	out := make([]model.Article, 0, len(list))
	for i := range list {
		if err := prepare(&list[i]); err != nil {
			c.logger.Warn("dropping content record", "slug", list[i].Slug, "error", err)
			continue
		}
		out = append(out, list[i])
	}
	return out
}

// get performs one request and decodes a successful payload into out.
func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	action := params.Get("action")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", action, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", action, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))
	if err != nil {
		return fmt.Errorf("reading %s response: %w", action, err)
	}

	// The endpoint may report errors in the body with any status.
	var payload model.ErrorResponse
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", action, err)
	}
	return nil
}

// prepare validates a decoded record and fills everything rendering needs.
func prepare(a *model.Article) error {
	a.Slug = strings.TrimSpace(a.Slug)
	if a.Slug == "" || strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: missing slug or title", ErrInvalidRecord)
	}
	a.ApplyDefaults()
	a.Body = content.RenderBody(a.Content)
	return nil
}
