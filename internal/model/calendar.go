package model

import (
	"sort"
	"time"
)

const DateLayout = "2006-01-02"

// Totals 某个日期或月份范围内的分数汇总
type Totals struct {
	PointsPossibleSum float64 `json:"pointsPossibleSum"`
	PointsEarnedSum   float64 `json:"pointsEarnedSum"`
}

// CalendarState 日期 → 记录列表的只读视图。
// 每次刷新整体重建并原子替换，消费者拿到的快照不允许跨刷新持有。
type CalendarState struct {
	RefreshID string
	BuiltAt   time.Time

	days map[string][]Record
}

// BuildCalendarState 把记录按查看者本地日期分桶。
// 没有截止日期的记录不参与日历摆放。日期内保持输入顺序。
func BuildCalendarState(refreshID string, records []Record, loc *time.Location) *CalendarState {
	state := &CalendarState{
		RefreshID: refreshID,
		BuiltAt:   time.Now(),
		days:      make(map[string][]Record),
	}
	for _, rec := range records {
		if rec.DueAt == nil {
			continue
		}
		key := rec.DueAt.In(loc).Format(DateLayout)
		state.days[key] = append(state.days[key], rec)
	}
	return state
}

// Day 返回某个本地日期（"2006-01-02"）下的记录
func (s *CalendarState) Day(date string) []Record {
	if s == nil {
		return nil
	}
	return s.days[date]
}

// Dates 返回所有有记录的日期，升序
func (s *CalendarState) Dates() []string {
	if s == nil {
		return nil
	}
	dates := make([]string, 0, len(s.days))
	for d := range s.days {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

func (s *CalendarState) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, recs := range s.days {
		n += len(recs)
	}
	return n
}
