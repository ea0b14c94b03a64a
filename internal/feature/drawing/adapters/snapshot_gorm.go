package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chart_drawing/internal/feature/drawing/domain"
	"chart_drawing/internal/feature/drawing/domain/entity"
	"chart_drawing/internal/feature/drawing/usecase"
)

type snapshotGorm struct {
	db *gorm.DB
}

var _ usecase.SnapshotRepository = (*snapshotGorm)(nil)

func NewSnapshotRepository(db *gorm.DB) *snapshotGorm {
	return &snapshotGorm{db: db}
}

// SnapshotModel is one persisted row per chart: the full tool list as a
// JSON document. Tools are read and written as a unit, so a document column
// beats per-tool rows here.
type SnapshotModel struct {
	ID      uint   `gorm:"primaryKey"`
	ChartID string `gorm:"size:64;not null;uniqueIndex"`
	Version int    `gorm:"not null"`
	Tools   []byte `gorm:"type:text;not null"`

	UpdatedAt time.Time
}

func (SnapshotModel) TableName() string {
	return "drawing_snapshots"
}

func toModel(chartID string, snap entity.Snapshot) (SnapshotModel, error) {
	tools, err := json.Marshal(snap.Tools)
	if err != nil {
		return SnapshotModel{}, fmt.Errorf("marshal tools: %w", err)
	}
	return SnapshotModel{
		ChartID: chartID,
		Version: snap.Version,
		Tools:   tools,
	}, nil
}

func (r *snapshotGorm) Save(ctx context.Context, chartID string, snap entity.Snapshot) error {
	m, err := toModel(chartID, snap)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chart_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"version", "tools", "updated_at"}),
	}).Create(&m).Error
}

func (r *snapshotGorm) Load(ctx context.Context, chartID string) (entity.Snapshot, error) {
	var m SnapshotModel
	err := r.db.WithContext(ctx).
		Where("chart_id = ?", chartID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Snapshot{}, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return entity.Snapshot{}, err
	}

	var tools []entity.DrawingTool
	if err := json.Unmarshal(m.Tools, &tools); err != nil {
		return entity.Snapshot{}, fmt.Errorf("unmarshal tools: %w", err)
	}
	return entity.Snapshot{Version: m.Version, Tools: tools}, nil
}
