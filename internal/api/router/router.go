package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"classroom-attendance/config"
	"classroom-attendance/internal/api/handler"
	"classroom-attendance/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时签到接口不限流
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 系统 ──
	r.GET("/", h.System.Root)
	r.GET("/health", h.System.Health)

	// ── API ──
	api := r.Group("/api")
	{
		api.POST("/classes", h.Class.CreateClass)

		class := api.Group("/classes/:class_id")
		{
			class.POST("/import", h.Class.ImportStudents)
			class.POST("/attendance",
				middleware.RateLimit(limiter, cfg.RateLimit.AttendancePerMinute, time.Minute),
				h.Attendance.MarkAttendance,
			)
			class.GET("/present", h.Attendance.ListPresent)
			class.GET("/absent", h.Attendance.ListAbsent)
			class.GET("/report", h.Attendance.ExportReport)
		}
	}

	return r
}
