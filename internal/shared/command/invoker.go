package command

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxHistory is the history stack bound used when NewInvoker is
// given a non-positive size.
const DefaultMaxHistory = 100

// Invoker executes commands and keeps a bounded linear undo/redo history.
//
// At most one Execute runs at a time: a second caller receives ErrBusy
// immediately rather than being queued. There is deliberately no internal
// queue; callers serialize their own calls. ExecuteParallel is the
// sanctioned way to run independent commands concurrently — it bypasses
// the single-in-flight gate and only serializes the history appends.
type Invoker struct {
	busy atomic.Bool

	mu         sync.Mutex // guards history and cursor
	history    []HistoryEntry
	cursor     int // index of the last applied entry, -1 when none
	maxHistory int
}

// NewInvoker creates an Invoker with the given history bound.
// A non-positive bound falls back to DefaultMaxHistory.
func NewInvoker(maxHistory int) *Invoker {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Invoker{
		cursor:     -1,
		maxHistory: maxHistory,
	}
}

// Execute runs cmd and records the attempt in history. Failed attempts are
// recorded for audit, and the command's error is returned to the caller.
// If another command is already in flight, Execute fails fast with ErrBusy
// and records nothing.
func (inv *Invoker) Execute(ctx context.Context, cmd Command) (Result, error) {
	if cmd == nil {
		return Result{}, ErrNilCommand
	}
	if !inv.busy.CompareAndSwap(false, true) {
		return Result{}, fmt.Errorf("cannot execute %q: %w", cmd.Name(), ErrBusy)
	}
	defer inv.busy.Store(false)

	res := inv.run(ctx, cmd)
	inv.record(cmd, res)

	if !res.Success {
		return res, fmt.Errorf("command %q failed: %w", cmd.Name(), res.Err)
	}
	return res, nil
}

// run performs one execution without touching the busy flag or history.
func (inv *Invoker) run(ctx context.Context, cmd Command) Result {
	start := time.Now()
	data, err := cmd.Execute(ctx)
	return Result{
		Success:       err == nil,
		Data:          data,
		Err:           err,
		Timestamp:     start,
		ExecutionTime: time.Since(start),
	}
}

// record appends an execution result to history, truncating any redo tail
// first and evicting the oldest entry when the bound is exceeded.
func (inv *Invoker) record(cmd Command, res Result) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	// A new execution invalidates everything that was undone: standard
	// linear-history editor semantics.
	inv.history = inv.history[:inv.cursor+1]

	inv.history = append(inv.history, HistoryEntry{
		Command:   cmd,
		Result:    res,
		Timestamp: res.Timestamp,
	})
	inv.cursor = len(inv.history) - 1

	if len(inv.history) > inv.maxHistory {
		evict := len(inv.history) - inv.maxHistory
		inv.history = inv.history[evict:]
		inv.cursor -= evict
	}
}

// Undo reverses the entry at the cursor. It returns false, without
// side effects, when the cursor entry does not support undo, its execution
// failed, or there is nothing to undo.
func (inv *Invoker) Undo(ctx context.Context) bool {
	if !inv.busy.CompareAndSwap(false, true) {
		return false
	}
	defer inv.busy.Store(false)

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if inv.cursor < 0 {
		return false
	}
	entry := &inv.history[inv.cursor]
	u, ok := entry.Command.(Undoable)
	if !ok || !entry.Result.Success || entry.Undone {
		return false
	}
	if err := u.Undo(ctx); err != nil {
		return false
	}
	entry.Undone = true
	inv.cursor--
	return true
}

// Redo reapplies the entry just past the cursor. It returns false when
// there is no redo tail or the entry cannot be redone.
func (inv *Invoker) Redo(ctx context.Context) bool {
	if !inv.busy.CompareAndSwap(false, true) {
		return false
	}
	defer inv.busy.Store(false)

	inv.mu.Lock()
	defer inv.mu.Unlock()

	next := inv.cursor + 1
	if next >= len(inv.history) {
		return false
	}
	entry := &inv.history[next]
	u, ok := entry.Command.(Undoable)
	if !ok || !entry.Result.Success || !entry.Undone {
		return false
	}
	if err := u.Redo(ctx); err != nil {
		return false
	}
	entry.Undone = false
	inv.cursor = next
	return true
}

// CanUndo reports whether Undo would currently succeed for the cursor entry.
func (inv *Invoker) CanUndo() bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if inv.cursor < 0 {
		return false
	}
	entry := inv.history[inv.cursor]
	_, ok := entry.Command.(Undoable)
	return ok && entry.Result.Success && !entry.Undone
}

// CanRedo reports whether Redo would currently succeed.
func (inv *Invoker) CanRedo() bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	next := inv.cursor + 1
	if next >= len(inv.history) {
		return false
	}
	entry := inv.history[next]
	_, ok := entry.Command.(Undoable)
	return ok && entry.Result.Success && entry.Undone
}

// ExecuteWithTimeout races Execute against a timer. On timeout the caller
// receives a failed result with ErrTimeout; the command's own execution is
// not interrupted and may still complete in the background, holding the
// busy flag until it does.
func (inv *Invoker) ExecuteWithTimeout(ctx context.Context, cmd Command, timeout time.Duration) (Result, error) {
	if cmd == nil {
		return Result{}, ErrNilCommand
	}

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		res, err := inv.Execute(ctx, cmd)
		done <- outcome{res: res, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case out := <-done:
		return out.res, out.err
	case <-timer.C:
		res := Result{
			Success:   false,
			Err:       ErrTimeout,
			Timestamp: time.Now(),
		}
		return res, fmt.Errorf("command %q: %w after %v", cmd.Name(), ErrTimeout, timeout)
	case <-ctx.Done():
		res := Result{
			Success:   false,
			Err:       ctx.Err(),
			Timestamp: time.Now(),
		}
		return res, ctx.Err()
	}
}

// ExecuteWithRetry retries failed executions with exponential backoff:
// the wait after attempt n is initialDelay * 2^n. When the command is
// Cloneable it is re-cloned before every retry so attempts never share
// mutated internal state. The last error is returned once all attempts
// are exhausted.
func (inv *Invoker) ExecuteWithRetry(ctx context.Context, cmd Command, maxRetries int, initialDelay time.Duration) (Result, error) {
	if cmd == nil {
		return Result{}, ErrNilCommand
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	var (
		res     Result
		lastErr error
	)
	current := cmd
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := initialDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return res, ctx.Err()
			}
			if c, ok := cmd.(Cloneable); ok {
				current = c.Clone()
			}
		}

		res, lastErr = inv.Execute(ctx, current)
		if lastErr == nil {
			return res, nil
		}
	}
	return res, fmt.Errorf("command %q failed after %d attempts: %w", cmd.Name(), maxRetries, lastErr)
}

// ExecuteSequence runs commands one at a time, stopping at the first
// failure. The results of all attempted commands are returned, so a caller
// sees partial progress.
func (inv *Invoker) ExecuteSequence(ctx context.Context, cmds []Command) ([]Result, error) {
	results := make([]Result, 0, len(cmds))
	for i, cmd := range cmds {
		res, err := inv.Execute(ctx, cmd)
		results = append(results, res)
		if err != nil {
			return results, fmt.Errorf("sequence aborted at command %d: %w", i, err)
		}
	}
	return results, nil
}

// ExecuteParallel runs all commands concurrently and guarantees one result
// per input command: a failing command becomes a failed Result instead of
// aborting the batch. The single-in-flight gate does not apply here — the
// overlap is the caller's explicit intent — but history appends are still
// serialized, in input order.
func (inv *Invoker) ExecuteParallel(ctx context.Context, cmds []Command) []Result {
	results := make([]Result, len(cmds))

	g, gctx := errgroup.WithContext(ctx)
	for i, cmd := range cmds {
		i, cmd := i, cmd
		g.Go(func() error {
			if cmd == nil {
				results[i] = Result{
					Success:   false,
					Err:       ErrNilCommand,
					Timestamp: time.Now(),
				}
				return nil
			}
			results[i] = inv.run(gctx, cmd)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in results

	for i, cmd := range cmds {
		if cmd == nil {
			continue
		}
		inv.record(cmd, results[i])
	}
	return results
}

// History returns a copy of the current history stack, oldest first.
func (inv *Invoker) History() []HistoryEntry {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	out := make([]HistoryEntry, len(inv.history))
	copy(out, inv.history)
	return out
}

// Statistics returns aggregate execution counters for diagnostics.
func (inv *Invoker) Statistics() Statistics {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	stats := Statistics{
		Total:          len(inv.history),
		CursorPosition: inv.cursor,
		HistorySize:    len(inv.history),
	}

	var totalTime time.Duration
	for _, entry := range inv.history {
		if entry.Result.Success {
			stats.Successful++
		} else {
			stats.Failed++
		}
		if entry.Undone {
			stats.Undone++
		}
		totalTime += entry.Result.ExecutionTime
		if entry.Result.ExecutionTime > stats.MaxExecutionTime {
			stats.MaxExecutionTime = entry.Result.ExecutionTime
		}
	}
	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Successful) / float64(stats.Total)
		stats.AvgExecutionTime = totalTime / time.Duration(stats.Total)
	}
	return stats
}
