// Package adapters provides concrete interaction collaborators for replay
// sessions and tests. The production coordinate bridge is owned by the
// chart renderer and lives outside this repository.
package adapters

import (
	drawingentity "chart_drawing/internal/feature/drawing/domain/entity"
	"chart_drawing/internal/feature/interaction/usecase"
	"chart_drawing/internal/shared/geometry"
)

// LinearBridge is an affine pixel-to-domain bridge over a fixed viewport:
// the time axis maps linearly onto [0, Width] and the price axis onto
// [0, Height], with price decreasing downward as on a chart.
type LinearBridge struct {
	MinTimestamp int64
	MaxTimestamp int64
	MinPrice     float64
	MaxPrice     float64
	Width        float64
	Height       float64
}

var _ usecase.CoordinateBridge = (*LinearBridge)(nil)

// PixelToDomain converts a pixel position into domain coordinates,
// returning nil when the position lies outside the viewport.
func (b *LinearBridge) PixelToDomain(p geometry.Point) *drawingentity.Point {
	if p.X < 0 || p.X > b.Width || p.Y < 0 || p.Y > b.Height {
		return nil
	}
	ts := b.MinTimestamp + int64(p.X/b.Width*float64(b.MaxTimestamp-b.MinTimestamp))
	price := b.MaxPrice - p.Y/b.Height*(b.MaxPrice-b.MinPrice)
	return &drawingentity.Point{Timestamp: ts, Price: price}
}

// DomainToPixel converts domain coordinates into a pixel position,
// returning nil when the point falls outside the renderable data range.
func (b *LinearBridge) DomainToPixel(pt drawingentity.Point) *geometry.Point {
	if pt.Timestamp < b.MinTimestamp || pt.Timestamp > b.MaxTimestamp ||
		pt.Price < b.MinPrice || pt.Price > b.MaxPrice {
		return nil
	}
	x := float64(pt.Timestamp-b.MinTimestamp) / float64(b.MaxTimestamp-b.MinTimestamp) * b.Width
	y := (b.MaxPrice - pt.Price) / (b.MaxPrice - b.MinPrice) * b.Height
	return &geometry.Point{X: x, Y: y}
}

// ImmediateScheduler runs scheduled frame callbacks synchronously. It
// stands in for the renderer's animation-frame hook in replays and tests.
type ImmediateScheduler struct{}

var _ usecase.FrameScheduler = (*ImmediateScheduler)(nil)

// Request runs fn immediately.
func (ImmediateScheduler) Request(fn func()) { fn() }

// Cancel is a no-op: immediate callbacks are never pending.
func (ImmediateScheduler) Cancel() {}
