package service

import (
	"context"
	"testing"
	"time"

	"canvas_calendar_backend/internal/canvas"
	"canvas_calendar_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// progressFixture 往日历里灌入固定记录集并返回进度聚合器
func progressFixture(t *testing.T, items []canvas.Item, scores map[string]*float64) *ProgressAggregator {
	t.Helper()

	fake := &fakeCanvas{
		courses: func(ctx context.Context) ([]model.Course, error) {
			return []model.Course{{ID: "1", Title: "Intro to Java"}}, nil
		},
		assignments: func(ctx context.Context, courseID string) ([]canvas.Item, error) {
			return items, nil
		},
		submission: func(ctx context.Context, courseID, itemID string, kind model.ItemKind) (*canvas.Submission, error) {
			return &canvas.Submission{Score: scores[itemID]}, nil
		},
	}

	calendar := newCalendarFixture(fake)
	_, err := calendar.Refresh(context.Background())
	require.NoError(t, err)

	return NewProgressAggregator(calendar)
}

func TestDailyTotalsExample(t *testing.T) {
	// -05:00 的 13:30 即 UTC 的 18:30，本地（UTC）日期仍是 12-05
	due := time.Date(2024, 12, 5, 13, 30, 0, 0, time.FixedZone("EST", -5*3600))
	items := []canvas.Item{
		{ID: "a1", Name: "hw", DueAt: &due, PointsPossible: floatPtr(100)},
		// 同一天，总分缺失且分数不可用：对汇总没有任何贡献
		{ID: "a2", Name: "ungraded", DueAt: &due},
	}
	progress := progressFixture(t, items, map[string]*float64{"a1": floatPtr(87)})

	assert.Equal(t, model.Totals{PointsPossibleSum: 100, PointsEarnedSum: 87}, progress.DailyTotals("2024-12-05"))
	assert.Equal(t, model.Totals{}, progress.DailyTotals("2024-12-06"))
}

func TestMonthlyEqualsSumOfDailies(t *testing.T) {
	dec5 := time.Date(2024, 12, 5, 10, 0, 0, 0, time.UTC)
	dec20 := time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)
	jan3 := time.Date(2025, 1, 3, 10, 0, 0, 0, time.UTC)
	items := []canvas.Item{
		{ID: "a1", Name: "hw1", DueAt: &dec5, PointsPossible: floatPtr(100)},
		{ID: "a2", Name: "hw2", DueAt: &dec20, PointsPossible: floatPtr(50)},
		{ID: "a3", Name: "hw3", DueAt: &jan3, PointsPossible: floatPtr(30)},
	}
	scores := map[string]*float64{"a1": floatPtr(90), "a2": floatPtr(40), "a3": floatPtr(30)}
	progress := progressFixture(t, items, scores)

	monthly := progress.MonthlyTotals(2024, time.December)
	assert.Equal(t, model.Totals{PointsPossibleSum: 150, PointsEarnedSum: 130}, monthly)

	sum := model.Totals{}
	for _, date := range []string{"2024-12-05", "2024-12-20"} {
		day := progress.DailyTotals(date)
		sum.PointsPossibleSum += day.PointsPossibleSum
		sum.PointsEarnedSum += day.PointsEarnedSum
	}
	assert.Equal(t, sum, monthly)

	// 一月的记录不掺进十二月
	assert.Equal(t, model.Totals{PointsPossibleSum: 30, PointsEarnedSum: 30}, progress.MonthlyTotals(2025, time.January))
}

func TestNoDueDateExcludedFromAllTotals(t *testing.T) {
	items := []canvas.Item{
		{ID: "a1", Name: "floating", PointsPossible: floatPtr(100)},
	}
	progress := progressFixture(t, items, map[string]*float64{"a1": floatPtr(95)})

	// GetGrades 能看到，但任何日期和月份的汇总都没有它
	require.Len(t, progress.Calendar.Records(), 1)
	assert.Empty(t, progress.Calendar.Snapshot().Dates())
	assert.Equal(t, model.Totals{}, progress.MonthlyTotals(2024, time.December))
}

func TestUnavailableScoreCountsAsZeroEarned(t *testing.T) {
	due := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	items := []canvas.Item{
		{ID: "a1", Name: "graded", DueAt: &due, PointsPossible: floatPtr(60)},
		{ID: "a2", Name: "pending", DueAt: &due, PointsPossible: floatPtr(40)},
	}
	progress := progressFixture(t, items, map[string]*float64{"a1": floatPtr(55), "a2": nil})

	assert.Equal(t, model.Totals{PointsPossibleSum: 100, PointsEarnedSum: 55}, progress.DailyTotals("2025-02-10"))
}

func TestZeroPossibleContributesNothing(t *testing.T) {
	due := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	items := []canvas.Item{
		{ID: "a1", Name: "zero total", DueAt: &due, PointsPossible: floatPtr(0)},
	}
	progress := progressFixture(t, items, map[string]*float64{"a1": floatPtr(5)})

	assert.Equal(t, model.Totals{}, progress.DailyTotals("2025-02-10"))
}
