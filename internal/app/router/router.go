package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	drawinghandler "chart_drawing/internal/feature/drawing/transport/handler"
	platformhandler "chart_drawing/internal/platform/http/handler"
	"chart_drawing/internal/shared/ratelimiter"
)

// NewRouter wires the snapshot API. Writes go through the rate limiter so a
// misbehaving client cannot flood the snapshot store.
func NewRouter(snapshot *drawinghandler.SnapshotHandler, writeLimiter ratelimiter.RateLimiterInterface, ready func() error) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	r.GET("/readyz", platformhandler.Ready(ready))

	charts := r.Group("/charts")
	{
		charts.GET("/:id/snapshot", snapshot.GetSnapshotHandler)
		charts.PUT("/:id/snapshot", rateLimit(writeLimiter), snapshot.PutSnapshotHandler)
	}

	return r
}

// rateLimit rejects requests over the write budget with 429 instead of
// queueing them; autosaving clients simply retry on the next debounce.
func rateLimit(rl ratelimiter.RateLimiterInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl != nil && !rl.TryAcquire() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
