// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"chart_drawing/internal/config"
	drawingadapters "chart_drawing/internal/feature/drawing/adapters"
	drawingusecase "chart_drawing/internal/feature/drawing/usecase"
	interactionusecase "chart_drawing/internal/feature/interaction/usecase"
	"chart_drawing/internal/platform/cache"
	"chart_drawing/internal/platform/persistence"
	"chart_drawing/internal/shared/command"
)

// NewSnapshotRepository creates a SnapshotRepository implementation.
// If Redis is available, the gorm-backed repository is wrapped with a
// caching decorator. Otherwise it is used directly.
func NewSnapshotRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) drawingusecase.SnapshotRepository {
	repo := drawingadapters.NewSnapshotRepository(db)
	if rdb != nil {
		return cache.NewCachingSnapshotRepository(rdb, ttl, repo, "snapshots")
	}
	return repo
}

// NewInvoker creates the command invoker with the configured history depth.
func NewInvoker(cfg *config.Config) *command.Invoker {
	return command.NewInvoker(cfg.History.MaxDepth)
}

// NewAutoSavedStore creates a ToolStore whose committed changes are
// persisted through a debounced AutoSaver. Callers own the saver's
// lifecycle and must Stop it on shutdown.
func NewAutoSavedStore(repo drawingusecase.SnapshotRepository, chartID string, cfg *config.Config) (*drawingusecase.ToolStore, *persistence.AutoSaver) {
	store := drawingusecase.NewToolStore()
	saver := persistence.NewAutoSaver(repo, chartID, cfg.AutoSave.Delay)
	store.OnChange(saver.ToolsChanged)
	return store, saver
}

// NewEngine assembles the interaction engine for one chart view, committing
// gestures through the invoker so they participate in undo history.
func NewEngine(store *drawingusecase.ToolStore, invoker *command.Invoker, bridge interactionusecase.CoordinateBridge, frames interactionusecase.FrameScheduler, cfg *config.Config) *interactionusecase.Engine {
	committer := drawingusecase.NewCommandCommitter(store, invoker)
	return interactionusecase.NewEngine(store, committer, bridge, frames, interactionusecase.Config{
		DragThresholdPx:   cfg.Interaction.DragThresholdPx,
		LineTolerancePx:   cfg.Interaction.LineTolerancePx,
		HandleTolerancePx: cfg.Interaction.HandleTolerancePx,
		FibBoundsExpand:   cfg.Interaction.FibBoundsExpand,
		MoveMinGap:        cfg.Interaction.MoveMinGap,
	})
}
