package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRowsRoundTrip(t *testing.T) {
	due := time.Date(2024, 12, 5, 23, 30, 0, 0, time.UTC)
	records := []Record{
		{Course: "A", Kind: KindAssignment, Name: "hw", DueAt: timePtr(due), PointsPossible: floatPtr(100), PointsEarned: floatPtr(87)},
		{Course: "B", Kind: KindQuiz, Name: "quiz"},
	}

	rows := RowsFromRecords("refresh-1", records)
	require.Len(t, rows, 2)
	assert.Equal(t, "refresh-1", rows[0].RefreshID)
	assert.Equal(t, SnapshotSchemaVersion, rows[0].SchemaVersion)
	assert.Equal(t, 0, rows[0].Position)
	assert.Equal(t, 1, rows[1].Position)

	restored := RecordsFromRows(rows)
	assert.Equal(t, records, restored)
}
