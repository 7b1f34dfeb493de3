// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// testDB creates a migrated database in a temp directory.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "sf360-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}
	return db, func() { _ = db.Close() }
}

func TestMigrateContext_AppliedVersions(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "fresh.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	applied, err := MigrateContext(ctx, db)
	if err != nil {
		t.Fatalf("MigrateContext: %v", err)
	}
	if len(applied) != 2 || applied[0] != 1 || applied[1] != 2 {
		t.Errorf("applied = %v, want [1 2]", applied)
	}

	applied, err = MigrateContext(ctx, db)
	if err != nil {
		t.Fatalf("second MigrateContext: %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("second run applied %v, want none", applied)
	}
}

func TestDSN(t *testing.T) {
	if got := dsn("data/sf360.db"); !strings.HasPrefix(got, "data/sf360.db?_pragma=") {
		t.Errorf("dsn() = %q", got)
	}
	if got := dsn("file:x.db?mode=rwc"); !strings.HasPrefix(got, "file:x.db?mode=rwc&_pragma=") {
		t.Errorf("dsn() = %q", got)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestIncrementViews(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	for want := int64(1); want <= 3; want++ {
		got, err := q.IncrementViews(ctx, "sip-basics", now)
		if err != nil {
			t.Fatalf("IncrementViews: %v", err)
		}
		if got != want {
			t.Errorf("IncrementViews() = %d, want %d", got, want)
		}
	}

	views, err := q.GetViews(ctx, "sip-basics")
	if err != nil {
		t.Fatalf("GetViews: %v", err)
	}
	if views != 3 {
		t.Errorf("GetViews() = %d, want 3", views)
	}
}

func TestIncrementViews_Concurrent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := q.IncrementViews(ctx, "hot", time.Now().UTC()); err != nil {
				t.Errorf("IncrementViews: %v", err)
			}
		}()
	}
	wg.Wait()

	views, err := q.GetViews(ctx, "hot")
	if err != nil {
		t.Fatalf("GetViews: %v", err)
	}
	if views != 20 {
		t.Errorf("GetViews() = %d, want 20", views)
	}
}

func TestGetViews_Unknown(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	views, err := New(db).GetViews(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("GetViews: %v", err)
	}
	if views != 0 {
		t.Errorf("GetViews() = %d, want 0", views)
	}
}

func TestListTopViewedAndViewsMap(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	hits := map[string]int{"a": 1, "b": 3, "c": 2}
	for slug, n := range hits {
		for range n {
			if _, err := q.IncrementViews(ctx, slug, now); err != nil {
				t.Fatalf("IncrementViews: %v", err)
			}
		}
	}

	top, err := q.ListTopViewed(ctx, 2)
	if err != nil {
		t.Fatalf("ListTopViewed: %v", err)
	}
	if len(top) != 2 || top[0].Slug != "b" || top[1].Slug != "c" {
		t.Errorf("ListTopViewed() = %+v, want b then c", top)
	}

	m, err := q.ViewsMap(ctx)
	if err != nil {
		t.Fatalf("ViewsMap: %v", err)
	}
	for slug, n := range hits {
		if m[slug] != int64(n) {
			t.Errorf("ViewsMap()[%q] = %d, want %d", slug, m[slug], n)
		}
	}
}

func TestCreateAndListEvents(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, msg := range []string{"first", "second", "third"} {
		ev, err := q.CreateEvent(ctx, CreateEventParams{
			Level:     "info",
			Category:  "build",
			Message:   msg,
			Metadata:  `{"n":"1"}`,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
		if ev.ID == 0 {
			t.Error("event.ID should not be 0")
		}
	}

	events, err := q.ListEvents(ctx, ListEventsParams{Limit: 2})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Message != "third" {
		t.Errorf("events[0].Message = %q, want %q", events[0].Message, "third")
	}

	count, err := q.CountEvents(ctx)
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if count != 3 {
		t.Errorf("CountEvents() = %d, want 3", count)
	}

	deleted, err := q.DeleteEventsBefore(ctx, base.Add(90*time.Minute))
	if err != nil {
		t.Fatalf("DeleteEventsBefore: %v", err)
	}
	if deleted != 2 {
		t.Errorf("DeleteEventsBefore() = %d, want 2", deleted)
	}
}
