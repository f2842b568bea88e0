package model

import (
	"encoding/json"
	"time"

	"canvas_calendar_backend/internal/util"
)

type ItemKind string

const (
	KindAssignment ItemKind = "assignment"
	KindQuiz       ItemKind = "quiz"
)

// Record 归一化后的单个计分项（作业或测验）及其所属课程。
// 作为聚合器和日历摄取器之间的交换格式，编码/解码必须无损往返。
type Record struct {
	Course         string
	Kind           ItemKind
	Name           string
	DueAt          *time.Time
	PointsPossible *float64
	PointsEarned   *float64 // nil 表示分数不可用，与 0 分不同
}

// HasPoints 总分缺失或为零的记录不参与任何分数汇总
func (r Record) HasPoints() bool {
	return r.PointsPossible != nil && *r.PointsPossible > 0
}

type recordWire struct {
	Course         string   `json:"course"`
	Kind           string   `json:"kind"`
	Name           string   `json:"name"`
	DueAt          *string  `json:"dueAt,omitempty"`
	PointsPossible *float64 `json:"pointsPossible,omitempty"`
	PointsEarned   *float64 `json:"pointsEarned,omitempty"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	w := recordWire{
		Course:         r.Course,
		Kind:           string(r.Kind),
		Name:           r.Name,
		PointsPossible: r.PointsPossible,
		PointsEarned:   r.PointsEarned,
	}
	if r.DueAt != nil {
		due := r.DueAt.Format(time.RFC3339Nano)
		w.DueAt = &due
	}
	return json.Marshal(w)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var w recordWire
	if err := json.Unmarshal(data, &w); err != nil {
		return &util.ParseError{Op: "decode record", Err: err}
	}
	rec := Record{
		Course:         w.Course,
		Kind:           ItemKind(w.Kind),
		Name:           w.Name,
		PointsPossible: w.PointsPossible,
		PointsEarned:   w.PointsEarned,
	}
	if w.DueAt != nil {
		due, err := time.Parse(time.RFC3339Nano, *w.DueAt)
		if err != nil {
			return &util.DateParseError{Field: "dueAt", Value: *w.DueAt, Err: err}
		}
		rec.DueAt = &due
	}
	*r = rec
	return nil
}

// EncodeRecords 将一批记录编码为 JSON 数组
func EncodeRecords(records []Record) ([]byte, error) {
	return json.Marshal(records)
}

// DecodeRecords 逐条解码，坏记录只使自身失效，不影响批次中的其余记录。
// 返回所有可用记录和每条坏记录对应的错误。
func DecodeRecords(data []byte) ([]Record, []error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, []error{&util.ParseError{Op: "decode record batch", Err: err}}
	}

	records := make([]Record, 0, len(raw))
	var errs []error
	for _, msg := range raw {
		var rec Record
		if err := rec.UnmarshalJSON(msg); err != nil {
			errs = append(errs, err)
			continue
		}
		records = append(records, rec)
	}
	return records, errs
}
