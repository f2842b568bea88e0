package app

import (
	"canvas_calendar_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 课程与成绩
		api.GET("/courses", c.canvas.GetCourses)
		api.GET("/grades", c.canvas.GetGrades)
		api.GET("/course-grades", c.canvas.GetCourseGrades)
		api.GET("/course-assignments", c.canvas.GetAllAssignments)

		// 日历
		api.GET("/active-events", c.canvas.GetActiveEvents)
		api.POST("/refresh", c.canvas.Refresh)

		// 进度汇总
		progress := api.Group("/progress")
		{
			progress.GET("/daily", c.progress.GetDailyTotals)
			progress.GET("/monthly", c.progress.GetMonthlyTotals)
		}
	}
}
