package controller

import (
	"time"

	"canvas_calendar_backend/internal/model"
	"canvas_calendar_backend/internal/service"
	"canvas_calendar_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Progress *service.ProgressAggregator
}

func NewProgressController(progress *service.ProgressAggregator) *ProgressController {
	return &ProgressController{Progress: progress}
}

// @Summary 某一天的分数汇总
// @Tags 进度
// @Produce json
// @Param date query string true "日期 2006-01-02"
// @Success 200 {object} util.Response
// @Router /progress/daily [get]
func (c *ProgressController) GetDailyTotals(ctx *gin.Context) {
	date := ctx.Query("date")
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		util.BadRequest(ctx, "invalid date, expected YYYY-MM-DD")
		return
	}
	util.Success(ctx, gin.H{
		"date":   date,
		"totals": c.Progress.DailyTotals(date),
	})
}

// @Summary 某个月的分数汇总
// @Tags 进度
// @Produce json
// @Param month query string true "月份 2006-01"
// @Success 200 {object} util.Response
// @Router /progress/monthly [get]
func (c *ProgressController) GetMonthlyTotals(ctx *gin.Context) {
	month := ctx.Query("month")
	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		util.BadRequest(ctx, "invalid month, expected YYYY-MM")
		return
	}
	util.Success(ctx, gin.H{
		"month":  month,
		"totals": c.Progress.MonthlyTotals(parsed.Year(), parsed.Month()),
	})
}
