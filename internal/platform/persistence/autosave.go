// Package persistence bridges the in-memory tool store to the snapshot
// repository with debounced background saves.
package persistence

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"chart_drawing/internal/feature/drawing/domain/entity"
	"chart_drawing/internal/feature/drawing/usecase"
)

// AutoSaver persists tool snapshots after a quiet period. Change
// notifications arrive on the UI event stream and must return immediately,
// so each one only resets a timer; the save itself runs on the timer
// goroutine. Later snapshots replace earlier pending ones, so a drag that
// commits many updates costs one write.
type AutoSaver struct {
	repo    usecase.SnapshotRepository
	chartID string
	delay   time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending *entity.Snapshot
	stopped bool
}

// NewAutoSaver creates an AutoSaver for one chart. If delay is 0, it
// defaults to 2 seconds.
func NewAutoSaver(repo usecase.SnapshotRepository, chartID string, delay time.Duration) *AutoSaver {
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &AutoSaver{
		repo:    repo,
		chartID: chartID,
		delay:   delay,
	}
}

// ToolsChanged records the latest snapshot and (re)arms the save timer. It
// satisfies usecase.ChangeHook and is safe to call from the store's commit
// path.
func (a *AutoSaver) ToolsChanged(snap entity.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}
	a.pending = &snap

	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.saveNow)
}

// Flush saves any pending snapshot immediately, cancelling the timer.
// Callers use it on page unload, where waiting out the delay loses data.
func (a *AutoSaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	snap := a.pending
	a.pending = nil
	a.mu.Unlock()

	if snap == nil {
		return nil
	}
	return a.repo.Save(ctx, a.chartID, *snap)
}

// Stop flushes any pending snapshot and refuses further notifications.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	a.stopped = true
	a.mu.Unlock()

	if err := a.Flush(context.Background()); err != nil {
		slog.Error("autosave flush on stop failed", "chart", a.chartID, "error", err)
	}
}

// saveNow runs on the timer goroutine when the quiet period elapses.
func (a *AutoSaver) saveNow() {
	a.mu.Lock()
	snap := a.pending
	a.pending = nil
	a.timer = nil
	a.mu.Unlock()

	if snap == nil {
		return
	}
	if err := a.repo.Save(context.Background(), a.chartID, *snap); err != nil {
		// Best effort: the next change re-arms the timer with fresh state.
		slog.Error("autosave failed", "chart", a.chartID, "error", err)
	}
}
