package service

import (
	"context"
	"os"
	"testing"

	"canvas_calendar_backend/internal/canvas"
	"canvas_calendar_backend/internal/model"
	"canvas_calendar_backend/pkg/logger"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// fakeCanvas 函数字段为 nil 时返回空结果
type fakeCanvas struct {
	courses     func(ctx context.Context) ([]model.Course, error)
	assignments func(ctx context.Context, courseID string) ([]canvas.Item, error)
	quizzes     func(ctx context.Context, courseID string) ([]canvas.Item, error)
	submission  func(ctx context.Context, courseID, itemID string, kind model.ItemKind) (*canvas.Submission, error)
	events      func(ctx context.Context) ([]model.Event, error)
}

func (f *fakeCanvas) ListCourses(ctx context.Context) ([]model.Course, error) {
	if f.courses == nil {
		return nil, nil
	}
	return f.courses(ctx)
}

func (f *fakeCanvas) ListAssignments(ctx context.Context, courseID string) ([]canvas.Item, error) {
	if f.assignments == nil {
		return nil, nil
	}
	return f.assignments(ctx, courseID)
}

func (f *fakeCanvas) ListQuizzes(ctx context.Context, courseID string) ([]canvas.Item, error) {
	if f.quizzes == nil {
		return nil, nil
	}
	return f.quizzes(ctx, courseID)
}

func (f *fakeCanvas) GetSubmission(ctx context.Context, courseID, itemID string, kind model.ItemKind) (*canvas.Submission, error) {
	if f.submission == nil {
		return &canvas.Submission{}, nil
	}
	return f.submission(ctx, courseID, itemID, kind)
}

func (f *fakeCanvas) ListCalendarEvents(ctx context.Context) ([]model.Event, error) {
	if f.events == nil {
		return nil, nil
	}
	return f.events(ctx)
}

func floatPtr(v float64) *float64 { return &v }
