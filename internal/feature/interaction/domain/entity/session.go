// Package entity defines the domain models for the interaction feature.
package entity

import (
	drawingentity "chart_drawing/internal/feature/drawing/domain/entity"
	"chart_drawing/internal/shared/geometry"
)

// State enumerates the phases of the pointer interaction state machine.
type State int

const (
	// StateIdle: no gesture and no tool type armed.
	StateIdle State = iota
	// StateArmedForDraw: a tool type is selected but no gesture started.
	StateArmedForDraw
	// StateDrawing: a multi-point tool is capturing its trailing point.
	StateDrawing
	// StatePossibleDrag: pointer down on a hit-tested handle or body, but
	// the movement threshold has not been exceeded yet.
	StatePossibleDrag
	// StateDragging: a handle or whole-tool translation is in progress.
	StateDragging
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmedForDraw:
		return "armed_for_draw"
	case StateDrawing:
		return "drawing"
	case StatePossibleDrag:
		return "possible_drag"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// HandleType identifies which part of a tool a drag gesture grabbed.
type HandleType string

const (
	// HandleStart is the first anchor point of a two-point tool.
	HandleStart HandleType = "start"
	// HandleEnd is the second anchor point of a two-point tool.
	HandleEnd HandleType = "end"
	// HandleLine is a body grab: every point of the tool translates by the
	// same delta.
	HandleLine HandleType = "line"
)

// DragState snapshots the grabbed tool at pointer-down so the drag can be
// computed as an offset from the original geometry rather than accumulating
// per-move deltas.
type DragState struct {
	ToolID         string
	Handle         HandleType
	StartPos       geometry.Point
	OriginalPoints []drawingentity.Point

	// LivePoints is the current dragged geometry, recomputed on every
	// coalesced move. It is a preview: the store is only updated once, at
	// pointer-up.
	LivePoints []drawingentity.Point
}

// ContextMenu is the right-click menu state consumed read-only by UI chrome.
type ContextMenu struct {
	Visible      bool
	X            float64
	Y            float64
	TargetToolID string
}

// Session is the single ephemeral interaction state for one chart view.
// At most one exists per engine; it is created at construction and reset
// in place when a gesture completes or is cancelled.
type Session struct {
	State          State
	SelectedToolID string
	ActiveToolType drawingentity.ToolType // empty when no tool type is armed
	MouseDown      bool

	// Draft is the in-progress rubber-band tool while drawing. It never
	// touches the store until the gesture completes.
	Draft *drawingentity.DrawingTool

	Drag        *DragState
	ContextMenu ContextMenu
}

// IsDrawing reports whether a draw gesture is capturing points.
func (s *Session) IsDrawing() bool { return s.State == StateDrawing }

// IsDragging reports whether a drag translation is in progress.
func (s *Session) IsDragging() bool { return s.State == StateDragging }

// GestureActive reports whether any pointer gesture holds the session.
func (s *Session) GestureActive() bool {
	return s.State == StateDrawing || s.State == StatePossibleDrag || s.State == StateDragging
}

// EndGesture clears the gesture fields, returning to Idle or ArmedForDraw
// depending on whether a tool type is still armed. Selection survives.
func (s *Session) EndGesture() {
	s.MouseDown = false
	s.Draft = nil
	s.Drag = nil
	if s.ActiveToolType != "" {
		s.State = StateArmedForDraw
	} else {
		s.State = StateIdle
	}
}

// Reset returns every field to its idle zero state. Used on cancel and
// when the enclosing view closes.
func (s *Session) Reset() {
	*s = Session{}
}
