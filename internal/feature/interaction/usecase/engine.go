// Package usecase implements the pointer-driven interaction state machine
// that creates, selects and drags drawing tools on a price chart.
package usecase

import (
	"log/slog"
	"time"

	drawingentity "chart_drawing/internal/feature/drawing/domain/entity"
	"chart_drawing/internal/feature/interaction/domain/entity"
	"chart_drawing/internal/shared/geometry"
	"chart_drawing/internal/shared/throttle"
)

// CoordinateBridge converts between pixel and (timestamp, price) domain
// coordinates. It is owned by the chart renderer. Implementations return
// nil, never an error, when a coordinate falls outside the renderable range;
// the engine treats nil as a silent miss.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider.
type CoordinateBridge interface {
	PixelToDomain(p geometry.Point) *drawingentity.Point
	DomainToPixel(pt drawingentity.Point) *geometry.Point
}

// FrameScheduler coalesces gesture updates onto the next paint. Request
// replaces any previously scheduled callback so only the latest pointer
// position is applied per frame; Cancel drops a pending callback.
type FrameScheduler interface {
	Request(fn func())
	Cancel()
}

// ToolReader is the subset of the drawing store the engine hit-tests against.
type ToolReader interface {
	GetTool(id string) (drawingentity.DrawingTool, bool)
}

// Committer applies completed gestures to the drawing tool store, either
// directly or wrapped as undoable commands.
type Committer interface {
	CommitAdd(tool drawingentity.DrawingTool) (drawingentity.DrawingTool, error)
	CommitMove(id string, points []drawingentity.Point) (drawingentity.DrawingTool, error)
}

// Config holds the pixel-space constants of the interaction engine. They
// are observed defaults, not UX law, so they stay configurable.
type Config struct {
	// DragThresholdPx is the displacement that turns PossibleDrag into
	// Dragging.
	DragThresholdPx float64
	// LineTolerancePx is the hit distance for line bodies and axis lines.
	LineTolerancePx float64
	// HandleTolerancePx is the hit distance for two-point tool endpoints.
	HandleTolerancePx float64
	// FibBoundsExpand is the fraction each side of a fibonacci bounding box
	// grows for area grabs, because its visible levels are wider than its
	// two defining points.
	FibBoundsExpand float64
	// MoveMinGap rate-limits pointer-move handling while no gesture is
	// active. Active gestures bypass it entirely.
	MoveMinGap time.Duration
}

// DefaultConfig returns the observed interaction defaults.
func DefaultConfig() Config {
	return Config{
		DragThresholdPx:   5,
		LineTolerancePx:   10,
		HandleTolerancePx: 12,
		FibBoundsExpand:   0.10,
		MoveMinGap:        4 * time.Millisecond,
	}
}

// Engine drives the interaction state machine for one chart view. It is
// single-threaded: events arrive as a serialized stream from one input
// source and each transition is atomic with respect to one event.
type Engine struct {
	tools     ToolReader
	committer Committer
	bridge    CoordinateBridge
	frames    FrameScheduler
	limiter   *throttle.Limiter
	cfg       Config

	session entity.Session

	// lastPointer is the most recent processed idle-move position, for
	// crosshair consumers.
	lastPointer geometry.Point

	// pendingMove is the latest gesture move waiting for the next frame.
	pendingMove *geometry.Point
	frameQueued bool
}

// NewEngine creates an interaction engine over the given collaborators.
// Zero-valued Config fields fall back to DefaultConfig.
func NewEngine(tools ToolReader, committer Committer, bridge CoordinateBridge, frames FrameScheduler, cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.DragThresholdPx <= 0 {
		cfg.DragThresholdPx = def.DragThresholdPx
	}
	if cfg.LineTolerancePx <= 0 {
		cfg.LineTolerancePx = def.LineTolerancePx
	}
	if cfg.HandleTolerancePx <= 0 {
		cfg.HandleTolerancePx = def.HandleTolerancePx
	}
	if cfg.FibBoundsExpand <= 0 {
		cfg.FibBoundsExpand = def.FibBoundsExpand
	}
	if cfg.MoveMinGap <= 0 {
		cfg.MoveMinGap = def.MoveMinGap
	}
	return &Engine{
		tools:     tools,
		committer: committer,
		bridge:    bridge,
		frames:    frames,
		limiter:   throttle.NewLimiter(cfg.MoveMinGap),
		cfg:       cfg,
	}
}

// Session returns a copy of the current interaction state for read-only
// consumers (toolbars, context menus). Mutation happens only through the
// engine's event methods.
func (e *Engine) Session() entity.Session {
	s := e.session
	if s.Draft != nil {
		d := s.Draft.Clone()
		s.Draft = &d
	}
	if s.Drag != nil {
		d := *s.Drag
		d.OriginalPoints = append([]drawingentity.Point(nil), s.Drag.OriginalPoints...)
		d.LivePoints = append([]drawingentity.Point(nil), s.Drag.LivePoints...)
		s.Drag = &d
	}
	return s
}

// SetActiveToolType arms the engine for drawing. An empty type disarms.
// Arming mid-gesture cancels the gesture first.
func (e *Engine) SetActiveToolType(toolType drawingentity.ToolType) {
	if toolType != "" && !toolType.Valid() {
		slog.Warn("ignoring unknown tool type", "type", string(toolType))
		return
	}
	if e.session.GestureActive() {
		e.Cancel()
	}
	e.session.ActiveToolType = toolType
	if toolType == "" {
		e.session.State = entity.StateIdle
	} else {
		e.session.State = entity.StateArmedForDraw
	}
}

// SelectTool is the explicit selection path: only this call changes
// SelectedToolID outside of draw completion. An empty id deselects.
func (e *Engine) SelectTool(id string) {
	if id != "" {
		if _, ok := e.tools.GetTool(id); !ok {
			// Stale id from a rapid gesture sequence: fail soft.
			return
		}
	}
	e.session.SelectedToolID = id
}

// OpenContextMenu records a context menu request at a pixel position.
func (e *Engine) OpenContextMenu(p geometry.Point, targetToolID string) {
	e.session.ContextMenu = entity.ContextMenu{
		Visible:      true,
		X:            p.X,
		Y:            p.Y,
		TargetToolID: targetToolID,
	}
}

// CloseContextMenu hides the context menu.
func (e *Engine) CloseContextMenu() {
	e.session.ContextMenu = entity.ContextMenu{}
}

// PointerDown begins a gesture. With a tool type armed, it captures the
// first draft point (single-point tools commit immediately). From Idle with
// a selection, it hit-tests the selected tool and arms a possible drag.
func (e *Engine) PointerDown(p geometry.Point) {
	e.session.MouseDown = true
	e.CloseContextMenu()

	switch e.session.State {
	case entity.StateArmedForDraw:
		e.beginDraw(p)

	case entity.StateIdle:
		e.tryBeginDrag(p)

	default:
		// A second pointer-down mid-gesture means events got out of sync
		// (e.g. the pointer left the window). Discard the stale gesture.
		e.Cancel()
	}
}

// PointerMove advances an active gesture, or records a crosshair position
// when idle. Idle moves are throttled; gesture moves are coalesced onto the
// next frame so rapid motion never lags or skips.
func (e *Engine) PointerMove(p geometry.Point) {
	if !e.session.GestureActive() {
		if !e.limiter.Allow() {
			return
		}
		e.lastPointer = p
		return
	}

	e.pendingMove = &p
	if e.frames == nil {
		e.flushMove()
		return
	}
	if !e.frameQueued {
		e.frameQueued = true
		e.frames.Request(e.onFrame)
	}
}

// PointerUp completes the active gesture: commits a drawn tool or a drag's
// final geometry, or resolves a below-threshold press as a plain click.
func (e *Engine) PointerUp(p geometry.Point) {
	defer func() {
		e.session.MouseDown = false
		e.dropPendingMove()
	}()

	switch e.session.State {
	case entity.StateDrawing:
		e.finishDraw(p)

	case entity.StateDragging:
		e.finishDrag()

	case entity.StatePossibleDrag:
		// Below threshold: a plain click. Selection only, no mutation.
		e.session.Drag = nil
		e.session.EndGesture()

	default:
		// Pointer-up with no gesture: nothing to do.
	}
}

// Cancel discards any in-progress gesture without committing, returning
// the session to idle. Synchronous: no deferred mutation survives it.
func (e *Engine) Cancel() {
	e.dropPendingMove()
	selected := e.session.SelectedToolID
	e.session.Reset()
	e.session.SelectedToolID = selected
}

// LastPointer returns the last throttled idle-move position.
func (e *Engine) LastPointer() geometry.Point {
	return e.lastPointer
}

// beginDraw captures the first point of a draft tool. Single-point tools
// complete in one step; two-point tools stay in Drawing awaiting the
// trailing point.
func (e *Engine) beginDraw(p geometry.Point) {
	dom := e.bridge.PixelToDomain(p)
	if dom == nil {
		// Outside the renderable range: not an error, just no gesture.
		return
	}

	toolType := e.session.ActiveToolType
	if toolType.PointCount() == 1 {
		draft := drawingentity.DrawingTool{
			Type:    toolType,
			Points:  []drawingentity.Point{*dom},
			Visible: true,
		}
		e.commitDraw(draft)
		return
	}

	draft := drawingentity.DrawingTool{
		Type:    toolType,
		Points:  []drawingentity.Point{*dom, *dom},
		Visible: true,
	}
	e.session.Draft = &draft
	e.session.State = entity.StateDrawing
}

// finishDraw captures the trailing point and commits the draft.
func (e *Engine) finishDraw(p geometry.Point) {
	draft := e.session.Draft
	if draft == nil {
		e.session.EndGesture()
		return
	}
	if dom := e.bridge.PixelToDomain(p); dom != nil {
		draft.Points[len(draft.Points)-1] = *dom
	}
	e.commitDraw(*draft)
}

// commitDraw pushes a completed draft into the store, selects the result,
// and disarms the tool type.
func (e *Engine) commitDraw(draft drawingentity.DrawingTool) {
	added, err := e.committer.CommitAdd(draft)
	if err != nil {
		// Gesture-level failure: swallow, the state machine keeps running.
		slog.Warn("draw commit failed", "type", string(draft.Type), "error", err)
	} else {
		e.session.SelectedToolID = added.ID
	}
	e.session.ActiveToolType = ""
	e.session.EndGesture()
}

// tryBeginDrag hit-tests the selected tool and arms a possible drag.
// Only the selected tool is probed; a miss never re-selects by proximity.
func (e *Engine) tryBeginDrag(p geometry.Point) {
	id := e.session.SelectedToolID
	if id == "" {
		return
	}
	tool, ok := e.tools.GetTool(id)
	if !ok {
		// Stale selection: fail soft and drop it.
		e.session.SelectedToolID = ""
		return
	}
	if tool.Locked || !tool.Visible {
		return
	}

	handle, hit := e.hitTest(tool, p)
	if !hit {
		return
	}

	e.session.Drag = &entity.DragState{
		ToolID:         tool.ID,
		Handle:         handle,
		StartPos:       p,
		OriginalPoints: tool.ClonePoints(),
		LivePoints:     tool.ClonePoints(),
	}
	e.session.State = entity.StatePossibleDrag
}

// onFrame applies the latest coalesced move. Runs at most once per
// scheduled frame.
func (e *Engine) onFrame() {
	e.frameQueued = false
	e.flushMove()
}

// flushMove consumes the pending pointer position and advances the gesture.
func (e *Engine) flushMove() {
	if e.pendingMove == nil {
		return
	}
	p := *e.pendingMove
	e.pendingMove = nil

	switch e.session.State {
	case entity.StateDrawing:
		e.updateDraft(p)

	case entity.StatePossibleDrag:
		if p.Distance(e.session.Drag.StartPos) >= e.cfg.DragThresholdPx {
			e.session.State = entity.StateDragging
			e.applyDrag(p)
		}

	case entity.StateDragging:
		e.applyDrag(p)
	}
}

// updateDraft moves the draft's trailing point: the rubber-band preview.
func (e *Engine) updateDraft(p geometry.Point) {
	draft := e.session.Draft
	if draft == nil {
		return
	}
	dom := e.bridge.PixelToDomain(p)
	if dom == nil {
		return
	}
	draft.Points[len(draft.Points)-1] = *dom
}

// applyDrag recomputes the dragged geometry from the current pixel
// position. Endpoint handles move one point; a line grab translates every
// point by the same domain delta. The store is not touched until pointer-up.
func (e *Engine) applyDrag(p geometry.Point) {
	drag := e.session.Drag
	if drag == nil {
		return
	}

	switch drag.Handle {
	case entity.HandleStart, entity.HandleEnd:
		dom := e.bridge.PixelToDomain(p)
		if dom == nil {
			return
		}
		idx := 0
		if drag.Handle == entity.HandleEnd {
			idx = len(drag.OriginalPoints) - 1
		}
		live := append([]drawingentity.Point(nil), drag.OriginalPoints...)
		live[idx] = *dom
		drag.LivePoints = live

	case entity.HandleLine:
		from := e.bridge.PixelToDomain(drag.StartPos)
		to := e.bridge.PixelToDomain(p)
		if from == nil || to == nil {
			return
		}
		dt := to.Timestamp - from.Timestamp
		dp := to.Price - from.Price
		live := make([]drawingentity.Point, len(drag.OriginalPoints))
		for i, pt := range drag.OriginalPoints {
			live[i] = drawingentity.Point{Timestamp: pt.Timestamp + dt, Price: pt.Price + dp}
		}
		drag.LivePoints = live
	}
}

// finishDrag commits the final geometry as a single update.
func (e *Engine) finishDrag() {
	drag := e.session.Drag
	if drag == nil {
		e.session.EndGesture()
		return
	}
	if _, err := e.committer.CommitMove(drag.ToolID, drag.LivePoints); err != nil {
		slog.Warn("drag commit failed", "tool", drag.ToolID, "error", err)
	}
	e.session.Drag = nil
	e.session.EndGesture()
}

// dropPendingMove cancels any coalesced update so no deferred mutation
// fires after the gesture ended.
func (e *Engine) dropPendingMove() {
	e.pendingMove = nil
	if e.frameQueued && e.frames != nil {
		e.frames.Cancel()
	}
	e.frameQueued = false
}
