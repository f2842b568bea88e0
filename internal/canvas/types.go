package canvas

import (
	"encoding/json"
	"time"
)

// Item 上游返回的作业或测验条目。总分缺失或非数值时保持为 nil，
// 绝不静默转成 0。
type Item struct {
	ID             string
	Name           string
	DueAt          *time.Time
	PointsPossible *float64
}

// Submission 单个条目的个人提交
type Submission struct {
	Score *float64
}

type courseWire struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

type assignmentWire struct {
	ID             json.Number     `json:"id"`
	Name           string          `json:"name"`
	DueAt          json.RawMessage `json:"due_at"`
	PointsPossible json.RawMessage `json:"points_possible"`
}

type quizWire struct {
	ID             json.Number     `json:"id"`
	Title          string          `json:"title"`
	DueAt          json.RawMessage `json:"due_at"`
	PointsPossible json.RawMessage `json:"points_possible"`
}

type submissionWire struct {
	Score json.RawMessage `json:"score"`
}

type eventWire struct {
	ID           json.Number `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	StartAt      *string     `json:"start_at"`
	EndAt        *string     `json:"end_at"`
	LocationName string      `json:"location_name"`
	Blackout     bool        `json:"blackout_date"`
}

// parseFloat 宽松地取一个数值字段，null、缺失或非数值都视为不存在
func parseFloat(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

// parseTime 宽松地取一个 RFC3339 时间字段
func parseTime(raw json.RawMessage) *time.Time {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func parseTimeString(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	return &t
}
