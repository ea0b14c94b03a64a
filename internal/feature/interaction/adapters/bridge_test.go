package adapters

import (
	"testing"

	drawingentity "chart_drawing/internal/feature/drawing/domain/entity"
	"chart_drawing/internal/shared/geometry"
)

func testBridge() *LinearBridge {
	return &LinearBridge{
		MinTimestamp: 0,
		MaxTimestamp: 1_000_000,
		MinPrice:     0,
		MaxPrice:     100,
		Width:        1000,
		Height:       500,
	}
}

func TestLinearBridge_RoundTrip(t *testing.T) {
	t.Parallel()

	b := testBridge()
	pt := drawingentity.Point{Timestamp: 250_000, Price: 75}

	px := b.DomainToPixel(pt)
	if px == nil {
		t.Fatal("expected in-range point to convert")
	}
	if px.X != 250 || px.Y != 125 {
		t.Errorf("expected pixel (250,125), got (%v,%v)", px.X, px.Y)
	}

	back := b.PixelToDomain(*px)
	if back == nil {
		t.Fatal("expected in-range pixel to convert")
	}
	if back.Timestamp != pt.Timestamp || back.Price != pt.Price {
		t.Errorf("round trip changed the point: %+v -> %+v", pt, *back)
	}
}

func TestLinearBridge_OutOfRangeReturnsNil(t *testing.T) {
	t.Parallel()

	b := testBridge()

	tests := []struct {
		name string
		p    geometry.Point
	}{
		{"left of viewport", geometry.Point{X: -1, Y: 100}},
		{"right of viewport", geometry.Point{X: 1001, Y: 100}},
		{"above viewport", geometry.Point{X: 100, Y: -1}},
		{"below viewport", geometry.Point{X: 100, Y: 501}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := b.PixelToDomain(tt.p); got != nil {
				t.Errorf("expected nil for %+v, got %+v", tt.p, got)
			}
		})
	}

	if got := b.DomainToPixel(drawingentity.Point{Timestamp: 2_000_000, Price: 50}); got != nil {
		t.Errorf("expected nil for a timestamp past the range, got %+v", got)
	}
	if got := b.DomainToPixel(drawingentity.Point{Timestamp: 1000, Price: -5}); got != nil {
		t.Errorf("expected nil for a price below the range, got %+v", got)
	}
}
