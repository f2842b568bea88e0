package service

import (
	"context"
	"testing"

	"canvas_calendar_backend/internal/model"
	"canvas_calendar_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveEventsFiltersBlackout(t *testing.T) {
	fake := &fakeCanvas{
		events: func(ctx context.Context) ([]model.Event, error) {
			return []model.Event{
				{ID: "1", Title: "Lecture"},
				{ID: "2", Title: "Campus closed", Blackout: true},
				{ID: "3", Title: "Office hours"},
			}, nil
		},
	}

	events, err := NewEventService(fake).ActiveEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Lecture", events[0].Title)
	assert.Equal(t, "Office hours", events[1].Title)
}

func TestActiveEventsPropagatesUpstreamError(t *testing.T) {
	fake := &fakeCanvas{
		events: func(ctx context.Context) ([]model.Event, error) {
			return nil, &util.UpstreamError{Op: "list_calendar_events", StatusCode: 503}
		},
	}

	_, err := NewEventService(fake).ActiveEvents(context.Background())
	var upstream *util.UpstreamError
	require.ErrorAs(t, err, &upstream)
}
