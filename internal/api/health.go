package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/plateshare/backend/internal/database"
	"github.com/plateshare/backend/internal/types"
)

// HealthHandler reports whether the storage dependencies are reachable.
type HealthHandler struct {
	db    *database.DB
	redis *redis.Client
}

func NewHealthHandler(db *database.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	status := gin.H{"database": "ok", "redis": "ok"}
	healthy := true

	if err := h.db.HealthCheck(ctx); err != nil {
		status["database"] = "unreachable"
		healthy = false
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			status["redis"] = "unreachable"
			healthy = false
		}
	} else {
		status["redis"] = "disabled"
	}

	status["time"] = time.Now().UTC()

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, types.Fail("dependencies unavailable"))
		return
	}
	c.JSON(http.StatusOK, types.Ok("healthy", status))
}
