package usecase

import (
	"errors"
	"math"
	"testing"

	"chart_drawing/internal/feature/drawing/domain"
	"chart_drawing/internal/feature/drawing/domain/entity"
)

func TestDuplicate_Horizontal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		price         float64
		expectedDelta float64
	}{
		{"percentage dominates for large prices", 500, 5.0}, // 1% of 500
		{"floor dominates for small prices", 20, 1.0},       // max(0.2, 1.0)
		{"negative price uses magnitude", -500, 5.0},        // 1% of |−500|
		{"exactly at the crossover", 100, 1.0},              // 1% of 100 == floor
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestStore()
			added, _ := s.Add(horizontalAt(tt.price))

			copyTool, err := s.Duplicate(added.ID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			gotDelta := copyTool.Points[0].Price - added.Points[0].Price
			if math.Abs(gotDelta-tt.expectedDelta) > 1e-9 {
				t.Errorf("expected price delta %v, got %v", tt.expectedDelta, gotDelta)
			}
			if copyTool.Points[0].Timestamp != added.Points[0].Timestamp {
				t.Error("horizontal duplicate must not move on the time axis")
			}
		})
	}
}

func TestDuplicate_Vertical(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	added, _ := s.Add(NewTool(entity.ToolVertical,
		[]entity.Point{{Timestamp: 1_700_000_000_000, Price: 42}}, entity.Style{}))

	copyTool, err := s.Duplicate(added.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := copyTool.Points[0].Timestamp - added.Points[0].Timestamp; got != fiveMinutesMS {
		t.Errorf("expected timestamp delta %d, got %d", fiveMinutesMS, got)
	}
	if copyTool.Points[0].Price != added.Points[0].Price {
		t.Error("vertical duplicate must not move on the price axis")
	}
}

// TestDuplicate_Trendline はspecのシナリオ: P1=(1000,50), P2=(2000,60)の
// トレンドラインを複製すると、timestampオフセット>=max(0.15*1000, 300000)=300000ms、
// priceオフセット>=max(0.15*10, 0.02*55, 2)=2.0 になることを検証します。
func TestDuplicate_Trendline(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	added, _ := s.Add(trendline(
		entity.Point{Timestamp: 1000, Price: 50},
		entity.Point{Timestamp: 2000, Price: 60},
	))

	copyTool, err := s.Duplicate(added.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dt := copyTool.Points[0].Timestamp - added.Points[0].Timestamp
	dp := copyTool.Points[0].Price - added.Points[0].Price
	if dt != 300_000 {
		t.Errorf("expected timestamp offset 300000ms (5-minute floor), got %d", dt)
	}
	if dp != 2.0 {
		t.Errorf("expected price offset 2.0, got %v", dp)
	}

	// 両方の点が同じだけ移動します。
	dt2 := copyTool.Points[1].Timestamp - added.Points[1].Timestamp
	dp2 := copyTool.Points[1].Price - added.Points[1].Price
	if dt2 != dt || dp2 != dp {
		t.Errorf("both points must shift equally: got (%d,%v) and (%d,%v)", dt, dp, dt2, dp2)
	}
}

func TestDuplicate_TwoPoint_ProportionalOffsets(t *testing.T) {
	t.Parallel()

	// 大きなスパンでは比例項が5分の下限と絶対下限を上回ります。
	s := newTestStore()
	added, _ := s.Add(NewTool(entity.ToolFibonacci, []entity.Point{
		{Timestamp: 0, Price: 1000},
		{Timestamp: 10_000_000, Price: 1100},
	}, entity.Style{}))

	copyTool, err := s.Duplicate(added.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := copyTool.Points[0].Timestamp - added.Points[0].Timestamp; got != 1_500_000 {
		t.Errorf("expected 15%% of span = 1500000ms, got %d", got)
	}
	// price: max(0.15*100, 0.02*1050, 2.0) = max(15, 21, 2) = 21
	if got := copyTool.Points[0].Price - added.Points[0].Price; math.Abs(got-21) > 1e-9 {
		t.Errorf("expected price offset 21, got %v", got)
	}
}

// TestDuplicate_Invariant は複製が新しいidを持ち、型に応じた軸で必ず
// 元とは異なる座標を持つことを検証します。
func TestDuplicate_Invariant(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	tools := []entity.DrawingTool{
		NewTool(entity.ToolHorizontal, []entity.Point{{Timestamp: 5000, Price: 0}}, entity.Style{}),
		NewTool(entity.ToolVertical, []entity.Point{{Timestamp: 5000, Price: 0}}, entity.Style{}),
		trendline(entity.Point{Timestamp: 1000, Price: 50}, entity.Point{Timestamp: 1000, Price: 50}),
	}

	for _, tool := range tools {
		added, err := s.Add(tool)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		copyTool, err := s.Duplicate(added.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if copyTool.ID == added.ID {
			t.Errorf("%s: duplicate must receive a fresh id", tool.Type)
		}
		moved := false
		for i := range copyTool.Points {
			if copyTool.Points[i] != added.Points[i] {
				moved = true
			}
		}
		if !moved {
			t.Errorf("%s: duplicate must never exactly overlap the original", tool.Type)
		}
	}
}

func TestDuplicate_OriginalUntouched(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	added, _ := s.Add(horizontalAt(100))

	_, err := s.Duplicate(added.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	original, _ := s.GetTool(added.ID)
	if original.Points[0] != added.Points[0] {
		t.Error("duplicate must leave the original's points untouched")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 tools, got %d", s.Len())
	}
}

func TestDuplicate_LockedSourceYieldsUnlockedCopy(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	added, _ := s.Add(horizontalAt(100))
	_, _ = s.Update(added.ID, ToolPatch{Locked: boolPtr(true)})

	copyTool, err := s.Duplicate(added.ID)
	if err != nil {
		t.Fatalf("duplicating a locked tool should succeed, got %v", err)
	}
	if copyTool.Locked {
		t.Error("the copy must start unlocked")
	}
}

func TestDuplicate_UnknownID(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	_, err := s.Duplicate("ghost")
	if !errors.Is(err, domain.ErrToolNotFound) {
		t.Errorf("expected ErrToolNotFound, got %v", err)
	}
}
