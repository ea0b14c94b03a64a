// Package command provides a generic transactional wrapper around mutating
// operations: bounded linear undo/redo history, retry with exponential
// backoff, timeout races, and sequential or parallel batch execution.
//
// The package is domain-agnostic; it knows nothing about what a command
// mutates. Capabilities are declared through the Undoable and Cloneable
// interfaces rather than probed dynamically at execution time.
package command

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNilCommand is returned when a nil command is passed to the invoker.
	ErrNilCommand = errors.New("command is nil")

	// ErrBusy is returned when Execute is called while another command is
	// still in flight. The invoker is not reentrant; this signals a caller
	// bug, not a transient condition, so the attempt is not queued or
	// recorded.
	ErrBusy = errors.New("command invoker is busy")

	// ErrTimeout is returned by ExecuteWithTimeout when the caller's wait
	// expires. The underlying command may still complete in the background.
	ErrTimeout = errors.New("command execution timed out")
)

// Command is an encapsulated, independently executable operation.
type Command interface {
	// ID uniquely identifies this command instance.
	ID() string

	// Name is the command's type tag, used for logging and diagnostics.
	Name() string

	// Execute performs the operation and returns its result value.
	Execute(ctx context.Context) (any, error)
}

// Undoable is implemented by commands whose effects can be reversed and
// reapplied. The invoker only calls Undo and Redo on history entries whose
// last execution succeeded.
type Undoable interface {
	Command
	Undo(ctx context.Context) error
	Redo(ctx context.Context) error
}

// Cloneable is implemented by commands that can produce a fresh copy of
// themselves. Retries re-clone the command before each attempt so repeated
// executions never share mutated internal state.
type Cloneable interface {
	Command
	Clone() Command
}

// Result records the outcome of one command execution.
type Result struct {
	Success       bool
	Data          any
	Err           error
	Timestamp     time.Time
	ExecutionTime time.Duration
}

// HistoryEntry is one record in the invoker's history stack. It is owned
// exclusively by the invoker and never mutated outside it.
type HistoryEntry struct {
	Command   Command
	Result    Result
	Undone    bool
	Timestamp time.Time
}

// Statistics aggregates execution counters for diagnostics. The values are
// informational; nothing in the invoker depends on them for correctness.
type Statistics struct {
	Total            int
	Successful       int
	Failed           int
	Undone           int
	SuccessRate      float64
	AvgExecutionTime time.Duration
	MaxExecutionTime time.Duration
	CursorPosition   int
	HistorySize      int
}
