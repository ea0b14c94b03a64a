// Package entity defines the domain models for the drawing feature.
package entity

import "time"

// ToolType enumerates the supported drawing tool kinds.
type ToolType string

const (
	// ToolHorizontal is a horizontal price line anchored by one point.
	ToolHorizontal ToolType = "horizontal"
	// ToolVertical is a vertical time line anchored by one point.
	ToolVertical ToolType = "vertical"
	// ToolTrendline is a straight segment between two points.
	ToolTrendline ToolType = "trendline"
	// ToolFibonacci is a fibonacci retracement spanned by two points.
	ToolFibonacci ToolType = "fibonacci"
)

// Valid reports whether t is a known tool type.
func (t ToolType) Valid() bool {
	switch t {
	case ToolHorizontal, ToolVertical, ToolTrendline, ToolFibonacci:
		return true
	}
	return false
}

// PointCount returns the number of anchor points tools of this type hold:
// 1 for axis-aligned lines, 2 for trendlines and fibonacci retracements.
// Unknown types return 0.
func (t ToolType) PointCount() int {
	switch t {
	case ToolHorizontal, ToolVertical:
		return 1
	case ToolTrendline, ToolFibonacci:
		return 2
	}
	return 0
}

// Point is a position in domain coordinates: milliseconds since the Unix
// epoch on the time axis, price on the value axis. Points are immutable
// once created; tools replace their point list wholesale on update.
type Point struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}

// Style holds the visual attributes of a drawing tool.
type Style struct {
	Color     string  `json:"color"`
	LineWidth float64 `json:"lineWidth"`
}

// DrawingTool is a geometric annotation overlaid on a price chart.
// Its identity is immutable; all other fields may be replaced wholesale.
type DrawingTool struct {
	ID        string    `json:"id"`
	Type      ToolType  `json:"type"`
	Points    []Point   `json:"points"`
	Style     Style     `json:"style"`
	Visible   bool      `json:"visible"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClonePoints returns a deep copy of the tool's point list.
func (t DrawingTool) ClonePoints() []Point {
	out := make([]Point, len(t.Points))
	copy(out, t.Points)
	return out
}

// Clone returns a deep copy of the tool.
func (t DrawingTool) Clone() DrawingTool {
	c := t
	c.Points = t.ClonePoints()
	return c
}

// Snapshot is a serialized copy of a store's contents, used for export,
// import and persistence.
type Snapshot struct {
	Version int           `json:"version"`
	Tools   []DrawingTool `json:"tools"`
}
