// Package geometry provides pure pixel-space math for hit-testing drawing
// tools against pointer positions. All functions are stateless.
package geometry

import "math"

// Point is a position in pixel space.
type Point struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance between p and other.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Sub returns the vector from other to p.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// WithinTolerance reports whether p lies within tol pixels of target.
func WithinTolerance(p, target Point, tol float64) bool {
	return p.Distance(target) <= tol
}

// DistanceToSegment returns the shortest distance from p to the segment a-b.
// The projection of p onto the infinite line through a and b is clamped to
// [0,1] before measuring, so positions past either endpoint are measured
// against that endpoint rather than the extended line.
func DistanceToSegment(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		// Degenerate segment: both endpoints coincide.
		return p.Distance(a)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))

	closest := Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return p.Distance(closest)
}

// Rect is an axis-aligned rectangle in pixel space.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectFromPoints returns the bounding rectangle of a and b.
func RectFromPoints(a, b Point) Rect {
	x := math.Min(a.X, b.X)
	y := math.Min(a.Y, b.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  math.Abs(a.X - b.X),
		Height: math.Abs(a.Y - b.Y),
	}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Expand returns r grown by the given fraction of its own width and height
// on each side. A fraction of 0.10 on a 100x50 rect adds 10 to the left and
// right and 5 to the top and bottom.
func (r Rect) Expand(fraction float64) Rect {
	dx := r.Width * fraction
	dy := r.Height * fraction
	return Rect{
		X:      r.X - dx,
		Y:      r.Y - dy,
		Width:  r.Width + 2*dx,
		Height: r.Height + 2*dy,
	}
}
