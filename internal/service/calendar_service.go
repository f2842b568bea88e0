package service

import (
	"context"
	"sync"
	"time"

	"canvas_calendar_backend/internal/model"
	"canvas_calendar_backend/internal/util"
	"canvas_calendar_backend/pkg/logger"
	"canvas_calendar_backend/pkg/monitoring"
	"canvas_calendar_backend/pkg/tracing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SnapshotStore 最近一次成功刷新的持久化后端，由 SnapshotService 实现
type SnapshotStore interface {
	Save(refreshID string, records []model.Record) error
	LoadLatest() (string, []model.Record, error)
}

// CalendarService 持有当前日历状态并负责刷新生命周期。
// 状态整体重建、原子替换；新刷新会取消在途的旧刷新，
// 被取代的刷新结果直接丢弃，绝不覆盖更新的状态。
type CalendarService struct {
	Aggregator *GradeAggregator
	Snapshots  SnapshotStore

	loc *time.Location

	mu         sync.RWMutex
	cancelPrev context.CancelFunc
	seq        uint64
	state      *model.CalendarState
	records    []model.Record

	// saveMu 串行化落库，保证更新的刷新总是后写
	saveMu sync.Mutex
}

func NewCalendarService(aggregator *GradeAggregator, snapshots SnapshotStore, loc *time.Location) *CalendarService {
	if loc == nil {
		loc = time.Local
	}
	return &CalendarService{
		Aggregator: aggregator,
		Snapshots:  snapshots,
		loc:        loc,
	}
}

// Warm 启动时从持久化快照恢复日历，首个刷新完成前也有数据可看
func (s *CalendarService) Warm() {
	if s.Snapshots == nil {
		return
	}
	refreshID, records, err := s.Snapshots.LoadLatest()
	if err != nil {
		logger.Log.Warn("snapshot restore failed", zap.Error(err))
		return
	}
	if refreshID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != nil {
		return
	}
	s.records = records
	s.state = model.BuildCalendarState(refreshID, records, s.loc)
	logger.Log.Info("calendar warmed from snapshot",
		zap.String("refreshId", refreshID),
		zap.Int("records", len(records)))
}

// Refresh 执行一次完整的聚合并替换日历状态，返回刷新 ID
func (s *CalendarService) Refresh(ctx context.Context) (string, error) {
	start := time.Now()

	s.mu.Lock()
	if s.cancelPrev != nil {
		s.cancelPrev()
	}
	rctx, cancel := context.WithCancel(ctx)
	s.cancelPrev = cancel
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	// 刷新结束后释放自己的上下文；若期间没有新刷新接手，顺带清掉取消句柄
	defer func() {
		cancel()
		s.mu.Lock()
		if s.seq == seq {
			s.cancelPrev = nil
		}
		s.mu.Unlock()
	}()

	refreshID := uuid.New().String()
	rctx, span := tracing.Tracer.Start(rctx, "calendar_refresh")
	defer span.End()

	records, err := s.Aggregator.Aggregate(rctx)
	if err != nil {
		s.mu.Lock()
		superseded := seq != s.seq
		s.mu.Unlock()
		if superseded {
			return "", util.ErrRefreshSuperseded
		}
		return "", err
	}

	state := model.BuildCalendarState(refreshID, records, s.loc)

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return "", util.ErrRefreshSuperseded
	}
	s.state = state
	s.records = records
	s.mu.Unlock()

	monitoring.RefreshDuration.Observe(time.Since(start).Seconds())
	monitoring.RecordsEmitted.Set(float64(len(records)))
	logger.Log.Info("calendar refreshed",
		zap.String("refreshId", refreshID),
		zap.Int("records", len(records)),
		zap.Int("placed", state.Len()),
		zap.Duration("took", time.Since(start)))

	if s.Snapshots != nil {
		s.saveMu.Lock()
		s.mu.RLock()
		current := seq == s.seq
		s.mu.RUnlock()
		// 被取代的刷新放弃落库，迟到的旧快照不能盖掉新的
		if current {
			if err := s.Snapshots.Save(refreshID, records); err != nil {
				logger.Log.Error("snapshot save failed", zap.Error(err))
			}
		}
		s.saveMu.Unlock()
	}

	return refreshID, nil
}

// Snapshot 返回当前状态的只读句柄，消费者不得跨刷新持有
func (s *CalendarService) Snapshot() *model.CalendarState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Records 返回当前全部记录，包含没有截止日期、未进日历的那些
func (s *CalendarService) Records() []model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// CourseGrades 按课程标题分组的当前记录
func (s *CalendarService) CourseGrades() map[string][]model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grouped := make(map[string][]model.Record)
	for _, rec := range s.records {
		grouped[rec.Course] = append(grouped[rec.Course], rec)
	}
	return grouped
}
