package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart_drawing/internal/feature/drawing/domain"
	"chart_drawing/internal/feature/drawing/domain/entity"
)

// fakeSnapshotRepository はSnapshotRepositoryのテスト用実装です。
type fakeSnapshotRepository struct {
	saved map[string]entity.Snapshot
}

func newFakeSnapshotRepository() *fakeSnapshotRepository {
	return &fakeSnapshotRepository{saved: map[string]entity.Snapshot{}}
}

func (f *fakeSnapshotRepository) Save(ctx context.Context, chartID string, snap entity.Snapshot) error {
	f.saved[chartID] = snap
	return nil
}

func (f *fakeSnapshotRepository) Load(ctx context.Context, chartID string) (entity.Snapshot, error) {
	snap, ok := f.saved[chartID]
	if !ok {
		return entity.Snapshot{}, domain.ErrSnapshotNotFound
	}
	return snap, nil
}

func validSnapshot() entity.Snapshot {
	return entity.Snapshot{
		Version: 1,
		Tools: []entity.DrawingTool{
			{
				ID:      "tool-1",
				Type:    entity.ToolHorizontal,
				Points:  []entity.Point{{Timestamp: 500_000, Price: 50}},
				Visible: true,
			},
		},
	}
}

func TestSnapshotUsecase_SaveAndLoad(t *testing.T) {
	t.Parallel()

	repo := newFakeSnapshotRepository()
	uc := NewSnapshotUsecase(repo)
	ctx := context.Background()

	require.NoError(t, uc.SaveSnapshot(ctx, "chart-1", validSnapshot()))

	got, err := uc.LoadSnapshot(ctx, "chart-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)
	assert.Len(t, got.Tools, 1)
}

func TestSnapshotUsecase_SaveSnapshot_RejectsInvalidPayloads(t *testing.T) {
	t.Parallel()

	valid := validSnapshot().Tools[0]

	tests := []struct {
		name    string
		chartID string
		tools   []entity.DrawingTool
	}{
		{
			name:  "empty chart id",
			tools: []entity.DrawingTool{valid},
		},
		{
			name:    "unknown tool type",
			chartID: "chart-1",
			tools: []entity.DrawingTool{
				{ID: "x", Type: "ray", Points: valid.Points},
			},
		},
		{
			name:    "wrong point count",
			chartID: "chart-1",
			tools: []entity.DrawingTool{
				{ID: "x", Type: entity.ToolTrendline, Points: valid.Points},
			},
		},
		{
			name:    "missing tool id",
			chartID: "chart-1",
			tools: []entity.DrawingTool{
				{Type: entity.ToolHorizontal, Points: valid.Points},
			},
		},
		{
			name:    "duplicate tool ids",
			chartID: "chart-1",
			tools:   []entity.DrawingTool{valid, valid},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newFakeSnapshotRepository()
			uc := NewSnapshotUsecase(repo)

			err := uc.SaveSnapshot(context.Background(), tt.chartID, entity.Snapshot{Tools: tt.tools})

			assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
			assert.Empty(t, repo.saved, "rejected payloads must never reach the repository")
		})
	}
}

func TestSnapshotUsecase_LoadSnapshot_NotFound(t *testing.T) {
	t.Parallel()

	uc := NewSnapshotUsecase(newFakeSnapshotRepository())

	_, err := uc.LoadSnapshot(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}
