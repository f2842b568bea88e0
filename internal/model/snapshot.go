package model

import "time"

// SnapshotSchemaVersion 行结构变化时递增
const SnapshotSchemaVersion = 1

// RecordRow 最近一次成功刷新的持久化记录行，启动时用于预热日历。
// 每次刷新整表替换，不保留历史。
type RecordRow struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	RefreshID      string     `gorm:"type:varchar(36);index" json:"refreshId"`
	SchemaVersion  int        `gorm:"not null" json:"schemaVersion"`
	Position       int        `gorm:"not null" json:"position"`
	Course         string     `gorm:"type:varchar(255)" json:"course"`
	Kind           string     `gorm:"type:varchar(16)" json:"kind"`
	Name           string     `gorm:"type:varchar(255)" json:"name"`
	DueAt          *time.Time `json:"dueAt,omitempty"`
	PointsPossible *float64   `json:"pointsPossible,omitempty"`
	PointsEarned   *float64   `json:"pointsEarned,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func (RecordRow) TableName() string {
	return "record_snapshots"
}

func RowsFromRecords(refreshID string, records []Record) []RecordRow {
	rows := make([]RecordRow, len(records))
	for i, rec := range records {
		rows[i] = RecordRow{
			RefreshID:      refreshID,
			SchemaVersion:  SnapshotSchemaVersion,
			Position:       i,
			Course:         rec.Course,
			Kind:           string(rec.Kind),
			Name:           rec.Name,
			DueAt:          rec.DueAt,
			PointsPossible: rec.PointsPossible,
			PointsEarned:   rec.PointsEarned,
		}
	}
	return rows
}

func RecordsFromRows(rows []RecordRow) []Record {
	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = Record{
			Course:         row.Course,
			Kind:           ItemKind(row.Kind),
			Name:           row.Name,
			DueAt:          row.DueAt,
			PointsPossible: row.PointsPossible,
			PointsEarned:   row.PointsEarned,
		}
	}
	return records
}
