// Package tracker estimates screen-active time on the client side. It is a
// heuristic counter, not a surveillance log: only a single seconds total
// ever leaves the process, via the Reconciler.
package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/worklane-hq/worklane-backend-go/internal/pkg/clock"
)

// Config holds tracker timing configuration
type Config struct {
	TickInterval       time.Duration // default: 1 second
	LockSleepThreshold time.Duration // default: 30 seconds
	ReconcileInterval  time.Duration // default: 60 seconds
}

// Reconciler pushes the accumulated counter to the authoritative store.
type Reconciler interface {
	Report(ctx context.Context, seconds int64) error
}

// Tracker accumulates estimated screen-active seconds while an attendance
// session is open and the window is visible. All mutating methods take the
// current instant from the injected clock, so the core is fully
// deterministic under test.
type Tracker struct {
	mu     sync.Mutex
	config Config
	clock  clock.Clock
	logger *slog.Logger

	visible     bool
	sessionOpen bool
	counter     int64
	lastTick    time.Time
	hiddenSince time.Time

	// flushCh wakes Run for an immediate report on lifecycle edges.
	flushCh chan struct{}
}

func New(cfg Config, clk clock.Clock, logger *slog.Logger) *Tracker {
	if cfg.TickInterval == 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.LockSleepThreshold == 0 {
		cfg.LockSleepThreshold = 30 * time.Second
	}
	if cfg.ReconcileInterval == 0 {
		cfg.ReconcileInterval = 60 * time.Second
	}

	return &Tracker{
		config:   cfg,
		clock:    clk,
		logger:   logger,
		visible:  true,
		lastTick: clk.Now(),
		flushCh:  make(chan struct{}, 1),
	}
}

// Counter returns the accumulated screen-active seconds.
func (t *Tracker) Counter() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counter
}

// SetSessionStatus gates accumulation on an open, working session. Breaks
// close the gate the same way a missing session does.
func (t *Tracker) SetSessionStatus(open bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sessionOpen = open
	t.lastTick = t.clock.Now()
}

// SetVisible records a visibility transition. Losing visibility requests an
// immediate best-effort report. Returning from a short invisibility (a tab
// switch, up to the lock/sleep threshold) credits the whole gap; returning
// after a longer one credits nothing, since the machine was likely locked or
// asleep.
func (t *Tracker) SetVisible(visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()

	if !t.visible && visible {
		gap := now.Sub(t.hiddenSince)
		if t.sessionOpen && gap <= t.config.LockSleepThreshold {
			t.counter += int64(gap.Seconds())
		} else if gap > t.config.LockSleepThreshold {
			t.logger.Debug("discarding hidden gap", "gap", gap)
		}
	}
	if t.visible && !visible {
		t.hiddenSince = now
		t.requestFlush()
	}

	t.visible = visible
	t.lastTick = now
}

// requestFlush wakes Run without blocking; a pending request is enough.
func (t *Tracker) requestFlush() {
	select {
	case t.flushCh <- struct{}{}:
	default:
	}
}

// Tick advances the counter by one interval. A tick that arrives far later
// than scheduled means the process was suspended; such a tick credits a
// single second rather than the whole silent stretch.
func (t *Tracker) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	elapsed := now.Sub(t.lastTick)
	t.lastTick = now

	if !t.sessionOpen || !t.visible {
		return
	}

	if elapsed > t.config.LockSleepThreshold {
		t.counter++
		t.logger.Debug("suspended tick", "elapsed", elapsed)
		return
	}

	t.counter += int64(t.config.TickInterval.Seconds())
}

// Run drives the tracker with wall-clock tickers until ctx is done,
// reporting to the reconciler at each reconcile interval, on each requested
// flush (visibility loss), and once on exit.
func (t *Tracker) Run(ctx context.Context, reconciler Reconciler) {
	tick := time.NewTicker(t.config.TickInterval)
	defer tick.Stop()

	reconcile := time.NewTicker(t.config.ReconcileInterval)
	defer reconcile.Stop()

	for {
		select {
		case <-tick.C:
			t.Tick()
		case <-reconcile.C:
			t.report(ctx, reconciler)
		case <-t.flushCh:
			t.report(ctx, reconciler)
		case <-ctx.Done():
			// Final report with a fresh context; the parent is already done.
			flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			t.report(flushCtx, reconciler)
			cancel()
			return
		}
	}
}

func (t *Tracker) report(ctx context.Context, reconciler Reconciler) {
	t.mu.Lock()
	open, count := t.sessionOpen, t.counter
	t.mu.Unlock()

	if !open {
		return
	}
	if err := reconciler.Report(ctx, count); err != nil {
		t.logger.Warn("failed to report screen active seconds", "error", err)
	}
}
