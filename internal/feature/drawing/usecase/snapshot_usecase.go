package usecase

import (
	"context"
	"fmt"

	"chart_drawing/internal/feature/drawing/domain"
	"chart_drawing/internal/feature/drawing/domain/entity"
)

// SnapshotUsecase serves snapshot load/save for remote clients. It guards
// the repository with the same tool invariants the store enforces, so a
// malformed payload can never become the persisted truth.
type SnapshotUsecase struct {
	repo SnapshotRepository
}

// NewSnapshotUsecase は指定されたリポジトリでSnapshotUsecaseの新しいインスタンスを生成します。
func NewSnapshotUsecase(repo SnapshotRepository) *SnapshotUsecase {
	return &SnapshotUsecase{repo: repo}
}

// LoadSnapshot retrieves the persisted snapshot for a chart.
func (u *SnapshotUsecase) LoadSnapshot(ctx context.Context, chartID string) (entity.Snapshot, error) {
	if chartID == "" {
		return entity.Snapshot{}, fmt.Errorf("%w: chart id is required", domain.ErrInvalidSnapshot)
	}
	return u.repo.Load(ctx, chartID)
}

// SaveSnapshot validates and persists a full snapshot for a chart.
func (u *SnapshotUsecase) SaveSnapshot(ctx context.Context, chartID string, snap entity.Snapshot) error {
	if chartID == "" {
		return fmt.Errorf("%w: chart id is required", domain.ErrInvalidSnapshot)
	}

	seen := make(map[string]struct{}, len(snap.Tools))
	for _, tool := range snap.Tools {
		if err := validate(tool); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
		}
		if tool.ID == "" {
			return fmt.Errorf("%w: tool id is required", domain.ErrInvalidSnapshot)
		}
		if _, ok := seen[tool.ID]; ok {
			return fmt.Errorf("%w: duplicate tool id %q", domain.ErrInvalidSnapshot, tool.ID)
		}
		seen[tool.ID] = struct{}{}
	}

	return u.repo.Save(ctx, chartID, snap)
}
