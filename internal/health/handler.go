package health

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/blog-api/internal/dto"
	dbpkg "terminal-terrace/blog-api/packages/database"
)

type Handler struct {
	db    *gorm.DB
	redis *dbpkg.RedisClient
}

func NewHandler(db *gorm.DB, redis *dbpkg.RedisClient) *Handler {
	return &Handler{db: db, redis: redis}
}

// Check 健康检查
// @Summary 健康检查，报告各依赖连通性
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/health [get]
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, 2*time.Second)
	defer cancel()

	status := gin.H{"status": "ok"}

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status["database"] = "down"
		status["status"] = "degraded"
	} else {
		status["database"] = "up"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			status["redis"] = "down"
			status["status"] = "degraded"
		} else {
			status["redis"] = "up"
		}
	}

	dto.SuccessResponse(c, status)
}

// SetupHealthRoutes 设置健康检查路由
func SetupHealthRoutes(r *gin.RouterGroup, db *gorm.DB, redis *dbpkg.RedisClient) {
	handler := NewHandler(db, redis)
	r.GET("/health", handler.Check)
}
