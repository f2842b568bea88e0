package controller

import (
	"errors"

	"canvas_calendar_backend/internal/service"
	"canvas_calendar_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CanvasController struct {
	Aggregator *service.GradeAggregator
	Calendar   *service.CalendarService
	Events     *service.EventService
}

func NewCanvasController(aggregator *service.GradeAggregator, calendar *service.CalendarService, events *service.EventService) *CanvasController {
	return &CanvasController{
		Aggregator: aggregator,
		Calendar:   calendar,
		Events:     events,
	}
}

// @Summary 列出已注册课程
// @Tags 课程
// @Produce json
// @Success 200 {object} util.Response
// @Router /courses [get]
func (c *CanvasController) GetCourses(ctx *gin.Context) {
	courses, err := c.Aggregator.Courses(ctx.Request.Context())
	if err != nil {
		util.BadGateway(ctx, "course list unavailable")
		return
	}
	util.Success(ctx, courses)
}

// @Summary 当前快照的全部成绩记录
// @Description 包含没有截止日期、不出现在日历上的记录
// @Tags 成绩
// @Produce json
// @Success 200 {object} util.Response
// @Router /grades [get]
func (c *CanvasController) GetGrades(ctx *gin.Context) {
	util.Success(ctx, c.Calendar.Records())
}

// @Summary 按课程分组的成绩记录
// @Tags 成绩
// @Produce json
// @Success 200 {object} util.Response
// @Router /course-grades [get]
func (c *CanvasController) GetCourseGrades(ctx *gin.Context) {
	util.Success(ctx, c.Calendar.CourseGrades())
}

// @Summary 全部作业与测验条目
// @Description 与 /grades 相同的记录集，面向只关心截止日期的调用方
// @Tags 成绩
// @Produce json
// @Success 200 {object} util.Response
// @Router /course-assignments [get]
func (c *CanvasController) GetAllAssignments(ctx *gin.Context) {
	util.Success(ctx, c.Calendar.Records())
}

// @Summary 活动日历事件
// @Description 剔除 blackout 标记的事件
// @Tags 日历
// @Produce json
// @Success 200 {object} util.Response
// @Router /active-events [get]
func (c *CanvasController) GetActiveEvents(ctx *gin.Context) {
	events, err := c.Events.ActiveEvents(ctx.Request.Context())
	if err != nil {
		util.BadGateway(ctx, "calendar events unavailable")
		return
	}
	util.Success(ctx, events)
}

// @Summary 触发一次完整刷新
// @Tags 日历
// @Produce json
// @Success 200 {object} util.Response
// @Router /refresh [post]
func (c *CanvasController) Refresh(ctx *gin.Context) {
	refreshID, err := c.Calendar.Refresh(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, util.ErrRefreshSuperseded) {
			util.Accepted(ctx, gin.H{"superseded": true})
			return
		}
		util.BadGateway(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{
		"refreshId": refreshID,
		"records":   len(c.Calendar.Records()),
	})
}
