package service

import (
	"context"
	"fmt"
	"sync"

	"canvas_calendar_backend/internal/canvas"
	"canvas_calendar_backend/internal/model"
	"canvas_calendar_backend/pkg/logger"
	"canvas_calendar_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// CanvasAPI 聚合器需要的上游操作，由 canvas.Client 实现
type CanvasAPI interface {
	ListCourses(ctx context.Context) ([]model.Course, error)
	ListAssignments(ctx context.Context, courseID string) ([]canvas.Item, error)
	ListQuizzes(ctx context.Context, courseID string) ([]canvas.Item, error)
	GetSubmission(ctx context.Context, courseID, itemID string, kind model.ItemKind) (*canvas.Submission, error)
	ListCalendarEvents(ctx context.Context) ([]model.Event, error)
}

// GradeAggregator 按课程抓取作业、测验和提交，产出扁平的记录序列。
// 课程列表拉取失败或上下文被取消才导致整体失败，其余失败都在单项粒度兜住。
type GradeAggregator struct {
	Client  CanvasAPI
	Workers int
}

func NewGradeAggregator(client CanvasAPI, workers int) *GradeAggregator {
	if workers <= 0 {
		workers = 8
	}
	return &GradeAggregator{Client: client, Workers: workers}
}

func (s *GradeAggregator) Courses(ctx context.Context) ([]model.Course, error) {
	return s.Client.ListCourses(ctx)
}

// Aggregate 产出所有课程的全部记录。输出顺序确定：课程按列表顺序，
// 课程内先作业后测验，条目按列表顺序，与并发调度无关。
func (s *GradeAggregator) Aggregate(ctx context.Context) ([]model.Record, error) {
	courses, err := s.Client.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	sem := make(chan struct{}, s.Workers)
	perCourse := make([][]model.Record, len(courses))

	var wg sync.WaitGroup
	for i, course := range courses {
		wg.Add(1)
		go func(i int, course model.Course) {
			defer wg.Done()
			perCourse[i] = s.collectCourse(ctx, course, sem)
		}(i, course)
	}
	wg.Wait()

	// 取消会让在途抓取以"空类别/分数不可用"收尾，
	// 这样的残缺结果不能当成一次成功的聚合
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]model.Record, 0)
	for _, recs := range perCourse {
		records = append(records, recs...)
	}
	return records, nil
}

type courseItem struct {
	kind model.ItemKind
	item canvas.Item
}

func (s *GradeAggregator) collectCourse(ctx context.Context, course model.Course, sem chan struct{}) []model.Record {
	var assignments, quizzes []canvas.Item

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assignments = s.fetchList(ctx, course, model.KindAssignment, sem)
	}()
	go func() {
		defer wg.Done()
		quizzes = s.fetchList(ctx, course, model.KindQuiz, sem)
	}()
	wg.Wait()

	items := make([]courseItem, 0, len(assignments)+len(quizzes))
	for _, item := range assignments {
		items = append(items, courseItem{kind: model.KindAssignment, item: item})
	}
	for _, item := range quizzes {
		items = append(items, courseItem{kind: model.KindQuiz, item: item})
	}

	// 槽位按下标写入，保证输出顺序与抓取完成顺序无关
	records := make([]model.Record, len(items))
	wg.Add(len(items))
	for i, it := range items {
		go func(i int, it courseItem) {
			defer wg.Done()
			records[i] = s.buildRecord(ctx, course, it, sem)
		}(i, it)
	}
	wg.Wait()

	return records
}

// fetchList 拉取一门课的某个类别。失败时记日志并按空类别处理，
// 不影响这门课的另一个类别，也不影响其他课程。
func (s *GradeAggregator) fetchList(ctx context.Context, course model.Course, kind model.ItemKind, sem chan struct{}) []canvas.Item {
	if !acquire(ctx, sem) {
		return nil
	}
	var (
		items []canvas.Item
		err   error
	)
	if kind == model.KindQuiz {
		items, err = s.Client.ListQuizzes(ctx, course.ID)
	} else {
		items, err = s.Client.ListAssignments(ctx, course.ID)
	}
	release(sem)

	if err != nil {
		monitoring.ItemFailureCounter.WithLabelValues("list").Inc()
		logger.Log.Warn("category fetch failed, treating as empty",
			zap.String("course", course.Title),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil
	}
	return items
}

// buildRecord 总是产出记录；提交拉取失败只让分数不可用，不丢条目
func (s *GradeAggregator) buildRecord(ctx context.Context, course model.Course, it courseItem, sem chan struct{}) model.Record {
	rec := model.Record{
		Course:         course.Title,
		Kind:           it.kind,
		Name:           it.item.Name,
		DueAt:          it.item.DueAt,
		PointsPossible: it.item.PointsPossible,
	}

	if !acquire(ctx, sem) {
		return rec
	}
	sub, err := s.Client.GetSubmission(ctx, course.ID, it.item.ID, it.kind)
	release(sem)

	if err != nil {
		monitoring.ItemFailureCounter.WithLabelValues("submission").Inc()
		logger.Log.Debug("submission unavailable",
			zap.String("course", course.Title),
			zap.String("item", it.item.Name),
			zap.Error(err))
		return rec
	}

	rec.PointsEarned = sub.Score
	return rec
}

func acquire(ctx context.Context, sem chan struct{}) bool {
	select {
	case sem <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

func release(sem chan struct{}) {
	<-sem
}
