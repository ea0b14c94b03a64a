package usecase

import (
	"fmt"
	"math"

	"chart_drawing/internal/feature/drawing/domain"
	"chart_drawing/internal/feature/drawing/domain/entity"
)

// fiveMinutesMS is the fixed time-axis step used when duplicating tools.
const fiveMinutesMS int64 = 5 * 60 * 1000

// Duplicate copies a tool, displacing the copy so it never exactly overlaps
// the original. The offset is type-aware and proportional to the tool's own
// scale, so the displacement stays visible at any zoom or price scale:
//
//   - horizontal: price only, max(1% of mean price, 1.0) absolute units
//   - vertical:   timestamp only, a fixed 5-minute step
//   - two-point:  both axes — price max(15% of range, 2% of mean, 2.0),
//     timestamp max(15% of span, 5-minute step)
//
// The copy receives a fresh id and creation timestamps and is never locked;
// the original is untouched.
func (s *ToolStore) Duplicate(id string) (entity.DrawingTool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return entity.DrawingTool{}, fmt.Errorf("duplicate %q: %w", id, domain.ErrToolNotFound)
	}
	original := s.tools[idx]

	dt, dp := duplicateOffset(original)

	copyTool := original.Clone()
	copyTool.ID = s.newID()
	copyTool.Locked = false
	copyTool.CreatedAt = s.now()
	copyTool.UpdatedAt = copyTool.CreatedAt
	for i := range copyTool.Points {
		copyTool.Points[i].Timestamp += dt
		copyTool.Points[i].Price += dp
	}

	s.tools = append(s.tools, copyTool)
	s.committed()
	return copyTool.Clone(), nil
}

// duplicateOffset computes the type-aware displacement for a duplicate.
func duplicateOffset(tool entity.DrawingTool) (dt int64, dp float64) {
	switch tool.Type {
	case entity.ToolHorizontal:
		return 0, math.Max(0.01*math.Abs(meanPrice(tool.Points)), 1.0)

	case entity.ToolVertical:
		return fiveMinutesMS, 0

	default: // two-point tools
		first, last := tool.Points[0], tool.Points[len(tool.Points)-1]

		priceRange := math.Abs(last.Price - first.Price)
		dp = math.Max(0.15*priceRange, math.Max(0.02*math.Abs(meanPrice(tool.Points)), 2.0))

		span := last.Timestamp - first.Timestamp
		if span < 0 {
			span = -span
		}
		dt = int64(0.15 * float64(span))
		if dt < fiveMinutesMS {
			dt = fiveMinutesMS
		}
		return dt, dp
	}
}

func meanPrice(points []entity.Point) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Price
	}
	return sum / float64(len(points))
}
