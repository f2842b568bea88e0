package model

import "time"

// Event 上游日历事件。Blackout 标记的事件不会出现在活动事件列表里。
type Event struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	StartAt      *time.Time `json:"startAt,omitempty"`
	EndAt        *time.Time `json:"endAt,omitempty"`
	LocationName string     `json:"locationName,omitempty"`
	Blackout     bool       `json:"blackout"`
}
