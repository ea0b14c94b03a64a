// Package handler はdrawingフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chart_drawing/internal/feature/drawing/domain"
	"chart_drawing/internal/feature/drawing/domain/entity"
	"chart_drawing/internal/feature/drawing/transport/http/dto"
)

// SnapshotUsecase はスナップショット操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SnapshotUsecase interface {
	LoadSnapshot(ctx context.Context, chartID string) (entity.Snapshot, error)
	SaveSnapshot(ctx context.Context, chartID string, snap entity.Snapshot) error
}

// SnapshotHandler はスナップショットのHTTPリクエストを処理します。
type SnapshotHandler struct {
	uc SnapshotUsecase
}

// NewSnapshotHandler は指定されたusecaseでSnapshotHandlerの新しいインスタンスを生成します。
func NewSnapshotHandler(uc SnapshotUsecase) *SnapshotHandler {
	return &SnapshotHandler{uc: uc}
}

// GetSnapshotHandler はチャートIDを受け取り、保存済みスナップショットをJSONで返します。
//
// エンドポイント例:
// GET /charts/:id/snapshot
func (h *SnapshotHandler) GetSnapshotHandler(c *gin.Context) {
	chartID := c.Param("id")

	snap, err := h.uc.LoadSnapshot(c.Request.Context(), chartID)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "snapshot not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromEntity(snap))
}

// PutSnapshotHandler はスナップショット全体を受け取り保存します。
//
// エンドポイント例:
// PUT /charts/:id/snapshot
func (h *SnapshotHandler) PutSnapshotHandler(c *gin.Context) {
	chartID := c.Param("id")

	var payload dto.SnapshotPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.uc.SaveSnapshot(c.Request.Context(), chartID, payload.ToEntity()); err != nil {
		// 永続化そのものの失敗と不正なペイロードを区別します。
		if errors.Is(err, domain.ErrInvalidSnapshot) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
