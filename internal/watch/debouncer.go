// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package watch

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DebounceConfig holds debouncer configuration.
type DebounceConfig struct {
	// Interval is the quiet period after the last change before the
	// callback runs.
	Interval time.Duration
	// MaxWait caps how long a steady stream of changes can delay the callback.
	MaxWait time.Duration
}

// DefaultDebounceConfig returns default debounce configuration.
func DefaultDebounceConfig() DebounceConfig {
	return DebounceConfig{
		Interval: 500 * time.Millisecond,
		MaxWait:  5 * time.Second,
	}
}

// Debouncer coalesces bursts of change notifications into a single call.
// Editors usually write a file several times when saving it.
type Debouncer struct {
	fn     func(ctx context.Context, paths []string)
	config DebounceConfig
	logger *slog.Logger

	mu        sync.Mutex
	timer     *time.Timer
	paths     map[string]struct{}
	firstSeen time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDebouncer creates a debouncer that calls fn with the changed paths.
func NewDebouncer(fn func(ctx context.Context, paths []string), config DebounceConfig, logger *slog.Logger) *Debouncer {
	if config.Interval <= 0 {
		config.Interval = DefaultDebounceConfig().Interval
	}
	if config.MaxWait < config.Interval {
		config.MaxWait = config.Interval
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Debouncer{
		fn:     fn,
		config: config,
		logger: logger,
		paths:  make(map[string]struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Notify records a change to path and (re)arms the timer.
func (d *Debouncer) Notify(path string) {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ctx.Err() != nil {
		return
	}

	d.paths[path] = struct{}{}

	if d.timer == nil {
		d.firstSeen = now
		d.timer = time.AfterFunc(d.config.Interval, func() {
			d.mu.Lock()
			d.fireLocked()
			d.mu.Unlock()
		})
		d.logger.Debug("change queued", "path", path)
		return
	}

	if now.Sub(d.firstSeen) >= d.config.MaxWait {
		d.fireLocked()
		return
	}
	d.timer.Reset(d.config.Interval)
}

// fireLocked runs the callback for all pending paths. Must be called with lock held.
func (d *Debouncer) fireLocked() {
	if len(d.paths) == 0 {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	paths := make([]string, 0, len(d.paths))
	for p := range d.paths {
		paths = append(paths, p)
	}
	d.paths = make(map[string]struct{})

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.fn(d.ctx, paths)
	}()
}

// Flush runs the callback immediately for any pending changes.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fireLocked()
}

// Pending returns the number of paths waiting for the timer.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.paths)
}

// Stop drops pending changes and waits for a running callback to return.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.paths = make(map[string]struct{})
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
}
