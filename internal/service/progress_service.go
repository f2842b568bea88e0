package service

import (
	"fmt"
	"strings"
	"time"

	"canvas_calendar_backend/internal/model"
)

// ProgressAggregator 按日和按月的分数汇总，每次都从当前日历快照
// 重新推导，不做增量缓存。
type ProgressAggregator struct {
	Calendar *CalendarService
}

func NewProgressAggregator(calendar *CalendarService) *ProgressAggregator {
	return &ProgressAggregator{Calendar: calendar}
}

// DailyTotals date 格式 "2006-01-02"
func (p *ProgressAggregator) DailyTotals(date string) model.Totals {
	return sumRecords(p.Calendar.Snapshot().Day(date))
}

// MonthlyTotals 按构造等于该月所有日期 DailyTotals 之和
func (p *ProgressAggregator) MonthlyTotals(year int, month time.Month) model.Totals {
	state := p.Calendar.Snapshot()
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))

	var totals model.Totals
	for _, date := range state.Dates() {
		if !strings.HasPrefix(date, prefix) {
			continue
		}
		day := sumRecords(state.Day(date))
		totals.PointsPossibleSum += day.PointsPossibleSum
		totals.PointsEarnedSum += day.PointsEarnedSum
	}
	return totals
}

// sumRecords 总分缺失或为零的记录整条跳过；分数不可用按 0 计
func sumRecords(records []model.Record) model.Totals {
	var t model.Totals
	for _, rec := range records {
		if !rec.HasPoints() {
			continue
		}
		t.PointsPossibleSum += *rec.PointsPossible
		if rec.PointsEarned != nil {
			t.PointsEarnedSum += *rec.PointsEarned
		}
	}
	return t
}
