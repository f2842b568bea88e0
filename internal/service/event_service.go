package service

import (
	"context"

	"canvas_calendar_backend/internal/model"
)

type EventService struct {
	Client CanvasAPI
}

func NewEventService(client CanvasAPI) *EventService {
	return &EventService{Client: client}
}

// ActiveEvents 返回上游日历事件，剔除 blackout 标记的条目
func (s *EventService) ActiveEvents(ctx context.Context) ([]model.Event, error) {
	events, err := s.Client.ListCalendarEvents(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if ev.Blackout {
			continue
		}
		active = append(active, ev)
	}
	return active, nil
}
