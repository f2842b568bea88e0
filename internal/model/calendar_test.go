package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCalendarStateBucketsByLocalDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 23:30 EST 还是 12-05，但换算成 UTC 已经是 12-06
	due := time.Date(2024, 12, 5, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	records := []Record{
		{Course: "A", Kind: KindAssignment, Name: "hw", DueAt: timePtr(due.UTC()), PointsPossible: floatPtr(100)},
		{Course: "A", Kind: KindQuiz, Name: "no due date"},
	}

	state := BuildCalendarState("r1", records, loc)

	assert.Equal(t, "r1", state.RefreshID)
	assert.Len(t, state.Day("2024-12-05"), 1)
	assert.Empty(t, state.Day("2024-12-06"))
	assert.Equal(t, 1, state.Len())
	assert.Equal(t, []string{"2024-12-05"}, state.Dates())
}

func TestBuildCalendarStatePreservesOrderWithinDay(t *testing.T) {
	due := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	records := []Record{
		{Course: "A", Name: "first", DueAt: timePtr(due)},
		{Course: "B", Name: "second", DueAt: timePtr(due.Add(time.Hour))},
		{Course: "C", Name: "third", DueAt: timePtr(due)},
	}

	state := BuildCalendarState("r1", records, time.UTC)

	day := state.Day("2025-03-10")
	require.Len(t, day, 3)
	assert.Equal(t, "first", day[0].Name)
	assert.Equal(t, "second", day[1].Name)
	assert.Equal(t, "third", day[2].Name)
}

func TestBuildCalendarStateIdempotent(t *testing.T) {
	due := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	records := []Record{
		{Course: "A", Name: "hw", DueAt: timePtr(due), PointsPossible: floatPtr(10)},
	}

	first := BuildCalendarState("r1", records, time.UTC)
	second := BuildCalendarState("r2", records, time.UTC)

	assert.Equal(t, first.Dates(), second.Dates())
	assert.Equal(t, first.Day("2025-01-15"), second.Day("2025-01-15"))
}

func TestNilCalendarStateIsEmpty(t *testing.T) {
	var state *CalendarState
	assert.Nil(t, state.Day("2025-01-01"))
	assert.Nil(t, state.Dates())
	assert.Equal(t, 0, state.Len())
}
