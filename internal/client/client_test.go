// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEndpoint serves canned bodies keyed by action and records queries.
type fakeEndpoint struct {
	bodies map[string]string
	status map[string]int

	mu      sync.Mutex
	queries []string
}

func (f *fakeEndpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.queries = append(f.queries, r.URL.RawQuery)
	f.mu.Unlock()

	action := r.URL.Query().Get("action")
	w.Header().Set("Content-Type", "application/json")
	if code, ok := f.status[action]; ok {
		w.WriteHeader(code)
	}
	_, _ = fmt.Fprint(w, f.bodies[action])
}

func (f *fakeEndpoint) query(i int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[i]
}

func newFake(t *testing.T, bodies map[string]string, status map[string]int) (*Client, *fakeEndpoint) {
	t.Helper()
	f := &fakeEndpoint{bodies: bodies, status: status}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/content", time.Second, nil), f
}

func TestPosts(t *testing.T) {
	c, f := newFake(t, map[string]string{
		"posts": `[{"slug":"a","title":"A","content":"**bold**","category":"Finance, Tax"},{"slug":"","title":"No slug"},{"slug":"b","title":""}]`,
	}, nil)

	posts, err := c.Posts(context.Background(), 2, 6, "Finance")
	require.NoError(t, err)

	require.Len(t, posts, 1, "records without slug or title are dropped")
	a := posts[0]
	assert.Equal(t, "Admin", a.Author)
	assert.Equal(t, "2", a.ReadTime)
	assert.Equal(t, "images/default.jpg", a.ImageURL)
	assert.Equal(t, []string{"Finance", "Tax"}, a.Categories)
	assert.Contains(t, string(a.Body), "<strong>bold</strong>")

	assert.Contains(t, f.query(0), "action=posts")
	assert.Contains(t, f.query(0), "page=2")
	assert.Contains(t, f.query(0), "limit=6")
	assert.Contains(t, f.query(0), "category=Finance")
}

func TestPosts_NoCategoryParam(t *testing.T) {
	c, f := newFake(t, map[string]string{"posts": `[]`}, nil)

	posts, err := c.Posts(context.Background(), 1, 6, "")
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NotContains(t, f.query(0), "category=")
}

func TestArticle(t *testing.T) {
	c, _ := newFake(t, map[string]string{
		"article": `{"slug":"sip","title":"SIP","content":"<p>Hi</p><script>x()</script>","views":7}`,
	}, nil)

	a, err := c.Article(context.Background(), "sip")
	require.NoError(t, err)
	assert.Equal(t, int64(7), a.Views)
	assert.Equal(t, "<p>Hi</p>", strings.TrimSpace(string(a.Body)))
}

func TestArticle_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"404 with payload", http.StatusNotFound, `{"error":"Article not found"}`},
		{"200 with payload", http.StatusOK, `{"error":"Article not found"}`},
		{"bare 404", http.StatusNotFound, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newFake(t, map[string]string{"article": tt.body}, map[string]int{"article": tt.status})

			_, err := c.Article(context.Background(), "missing")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotFound), "err = %v", err)
		})
	}
}

func TestArticle_Invalid(t *testing.T) {
	c, _ := newFake(t, map[string]string{"article": `{"slug":"x","title":" "}`}, nil)

	_, err := c.Article(context.Background(), "x")
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestServerError(t *testing.T) {
	c, _ := newFake(t, map[string]string{"sidebar": `oops`}, map[string]int{"sidebar": http.StatusBadGateway})

	_, err := c.Sidebar(context.Background(), 5)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestMalformedPayload(t *testing.T) {
	c, _ := newFake(t, map[string]string{"posts": `{"slug":`}, nil)

	_, err := c.Posts(context.Background(), 1, 6, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding posts response")
}

func TestTrackView(t *testing.T) {
	c, f := newFake(t, map[string]string{"trackView": `{"slug":"sip","views":12}`}, nil)

	views, err := c.TrackView(context.Background(), "sip")
	require.NoError(t, err)
	assert.Equal(t, int64(12), views)
	assert.Contains(t, f.query(0), "slug=sip")
}

func TestSidebar(t *testing.T) {
	c, _ := newFake(t, map[string]string{
		"sidebar": `{"recommended":[{"slug":"a","title":"A"},{"title":"broken"}]}`,
	}, nil)

	sb, err := c.Sidebar(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, sb.Recommended, 1)
	assert.Nil(t, sb.Categories, "missing section stays nil")
}

func TestSearchAndCategory(t *testing.T) {
	c, f := newFake(t, map[string]string{
		"search":   `[{"slug":"a","title":"A"}]`,
		"category": `[{"slug":"b","title":"B"},{"slug":"c","title":"C"}]`,
	}, nil)

	found, err := c.Search(context.Background(), "sip plan", 1, 6)
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Contains(t, f.query(0), "keyword=sip+plan")

	list, err := c.Category(context.Background(), "Personal Finance")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, []string{list[0].Slug, list[1].Slug})
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, 50*time.Millisecond, nil)
	_, err := c.Posts(context.Background(), 1, 6, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requesting posts")
}

func TestAPIError_Message(t *testing.T) {
	assert.Equal(t, "content api: HTTP 400: Missing slug", (&APIError{StatusCode: 400, Message: "Missing slug"}).Error())
	assert.Equal(t, "content api: HTTP 502: Bad Gateway", (&APIError{StatusCode: 502}).Error())
}

func TestNew_DefaultTimeout(t *testing.T) {
	c := New("http://localhost/api/content", 0, nil)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.Equal(t, "http://localhost/api/content", c.Endpoint())
}

