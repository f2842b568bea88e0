package controller

import (
	"context"
	"net/http"

	"canvas_calendar_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpstreamPinger 上游可达性探测，由 canvas.Client 实现
type UpstreamPinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	DB       *gorm.DB
	Upstream UpstreamPinger
}

func NewHealthController(db *gorm.DB, upstream UpstreamPinger) *HealthController {
	return &HealthController{DB: db, Upstream: upstream}
}

// @Summary 健康检查
// @Description 检查服务、数据库与 Canvas 上游状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	components := gin.H{"database": "up", "upstream": "up"}
	status := "ok"

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			util.InternalServerError(ctx)
			return
		}
		if err := sqlDB.Ping(); err != nil {
			util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
	} else {
		components["database"] = "disabled"
	}

	// 上游不可达时仍然对外服务（内存里的快照可读），只降级上报
	if c.Upstream != nil {
		if err := c.Upstream.Ping(ctx.Request.Context()); err != nil {
			components["upstream"] = "down"
			status = "degraded"
		}
	}

	util.Success(ctx, gin.H{
		"status":     status,
		"components": components,
	})
}
