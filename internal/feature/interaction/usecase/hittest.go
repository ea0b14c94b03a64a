package usecase

import (
	drawingentity "chart_drawing/internal/feature/drawing/domain/entity"
	"chart_drawing/internal/feature/interaction/domain/entity"
	"chart_drawing/internal/shared/geometry"
)

// hitTest resolves which handle of the tool, if any, a pointer position
// grabs. Tie-breaks run in priority order:
//
//  1. endpoint handles of two-point tools (HandleTolerancePx), which win
//     regardless of body proximity
//  2. axis-aligned lines, checked on the perpendicular axis only
//  3. two-point line bodies via clamped point-to-segment distance
//  4. the fibonacci area grab: its expanded bounding box accepts a body
//     grab anywhere inside, because the drawn levels are wider than the
//     two defining points
//
// A tool whose points project outside the renderable range simply misses.
func (e *Engine) hitTest(tool drawingentity.DrawingTool, p geometry.Point) (entity.HandleType, bool) {
	switch tool.Type {
	case drawingentity.ToolHorizontal:
		px := e.bridge.DomainToPixel(tool.Points[0])
		if px == nil {
			return "", false
		}
		if abs(p.Y-px.Y) <= e.cfg.LineTolerancePx {
			return entity.HandleLine, true
		}
		return "", false

	case drawingentity.ToolVertical:
		px := e.bridge.DomainToPixel(tool.Points[0])
		if px == nil {
			return "", false
		}
		if abs(p.X-px.X) <= e.cfg.LineTolerancePx {
			return entity.HandleLine, true
		}
		return "", false

	case drawingentity.ToolTrendline, drawingentity.ToolFibonacci:
		start := e.bridge.DomainToPixel(tool.Points[0])
		end := e.bridge.DomainToPixel(tool.Points[len(tool.Points)-1])

		// Endpoint handles first.
		if start != nil && geometry.WithinTolerance(p, *start, e.cfg.HandleTolerancePx) {
			return entity.HandleStart, true
		}
		if end != nil && geometry.WithinTolerance(p, *end, e.cfg.HandleTolerancePx) {
			return entity.HandleEnd, true
		}
		if start == nil || end == nil {
			return "", false
		}

		// Body grab along the segment.
		if geometry.DistanceToSegment(p, *start, *end) <= e.cfg.LineTolerancePx {
			return entity.HandleLine, true
		}

		// Fibonacci levels are drawn across the whole box, so the area
		// grab falls back to the expanded bounding box.
		if tool.Type == drawingentity.ToolFibonacci {
			box := geometry.RectFromPoints(*start, *end).Expand(e.cfg.FibBoundsExpand)
			if box.Contains(p) {
				return entity.HandleLine, true
			}
		}
		return "", false
	}

	return "", false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
