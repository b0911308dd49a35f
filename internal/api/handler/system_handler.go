package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck 健康检查依赖项
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// SystemHandler 根路径与健康检查
type SystemHandler struct {
	checks []HealthCheck
}

// NewSystemHandler 创建 SystemHandler
func NewSystemHandler(checks ...HealthCheck) *SystemHandler {
	return &SystemHandler{checks: checks}
}

// Root 存活探针
// GET /
func (h *SystemHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Attendance API is running")
}

// Health 依赖健康检查，任一依赖失败返回 503
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "ok"}
	for _, chk := range h.checks {
		if err := chk.Check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body[chk.Name] = "down"
			continue
		}
		body[chk.Name] = "up"
	}

	c.JSON(status, body)
}
