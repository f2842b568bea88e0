package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"canvas_calendar_backend/internal/config"
	"canvas_calendar_backend/internal/model"
	"canvas_calendar_backend/internal/util"
	"canvas_calendar_backend/pkg/monitoring"

	"golang.org/x/time/rate"
)

// Client Canvas LMS REST 接口的瘦客户端。
// 不做重试和退避，凭证以 access_token 查询参数随每个请求发送。
type Client struct {
	http    *http.Client
	limiter *rate.Limiter

	mu          sync.RWMutex
	baseURL     string
	accessToken string
}

func NewClient(cfg config.CanvasConfig) *Client {
	burst := int(cfg.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		http:        &http.Client{Timeout: cfg.Timeout()},
		limiter:     rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
	}
}

// UpdateCredentials 配置热更新时替换上游地址和凭证
func (c *Client) UpdateCredentials(cfg config.CanvasConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(cfg.BaseURL, "/")
	c.accessToken = cfg.AccessToken
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &util.NetworkError{Op: op, Err: err}
	}

	c.mu.RLock()
	base, token := c.baseURL, c.accessToken
	c.mu.RUnlock()

	if query == nil {
		query = url.Values{}
	}
	query.Set("access_token", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path+"?"+query.Encode(), nil)
	if err != nil {
		return &util.NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		monitoring.CanvasRequestCounter.WithLabelValues(op, "network_error").Inc()
		return &util.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		monitoring.CanvasRequestCounter.WithLabelValues(op, "upstream_error").Inc()
		io.Copy(io.Discard, resp.Body)
		return &util.UpstreamError{Op: op, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		monitoring.CanvasRequestCounter.WithLabelValues(op, "network_error").Inc()
		return &util.NetworkError{Op: op, Err: err}
	}

	if err := json.Unmarshal(body, out); err != nil {
		monitoring.CanvasRequestCounter.WithLabelValues(op, "parse_error").Inc()
		return &util.ParseError{Op: op, Err: err}
	}

	monitoring.CanvasRequestCounter.WithLabelValues(op, "ok").Inc()
	return nil
}

// ListCourses 列出学生身份注册的课程，过滤由服务端完成
func (c *Client) ListCourses(ctx context.Context) ([]model.Course, error) {
	var wires []courseWire
	query := url.Values{}
	query.Set("enrollment_type", "student")
	if err := c.get(ctx, "list_courses", "/api/v1/courses", query, &wires); err != nil {
		return nil, err
	}

	courses := make([]model.Course, 0, len(wires))
	for _, w := range wires {
		courses = append(courses, model.Course{ID: w.ID.String(), Title: w.Name})
	}
	return courses, nil
}

func (c *Client) ListAssignments(ctx context.Context, courseID string) ([]Item, error) {
	var wires []assignmentWire
	path := fmt.Sprintf("/api/v1/courses/%s/assignments", url.PathEscape(courseID))
	if err := c.get(ctx, "list_assignments", path, nil, &wires); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(wires))
	for _, w := range wires {
		items = append(items, Item{
			ID:             w.ID.String(),
			Name:           w.Name,
			DueAt:          parseTime(w.DueAt),
			PointsPossible: parseFloat(w.PointsPossible),
		})
	}
	return items, nil
}

func (c *Client) ListQuizzes(ctx context.Context, courseID string) ([]Item, error) {
	var wires []quizWire
	path := fmt.Sprintf("/api/v1/courses/%s/quizzes", url.PathEscape(courseID))
	if err := c.get(ctx, "list_quizzes", path, nil, &wires); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(wires))
	for _, w := range wires {
		items = append(items, Item{
			ID:             w.ID.String(),
			Name:           w.Title,
			DueAt:          parseTime(w.DueAt),
			PointsPossible: parseFloat(w.PointsPossible),
		})
	}
	return items, nil
}

// GetSubmission 取单个条目的个人提交。分数字段缺失或为 null 时
// 返回 MissingDataError，由调用方按"分数不可用"处理。
func (c *Client) GetSubmission(ctx context.Context, courseID, itemID string, kind model.ItemKind) (*Submission, error) {
	var resource string
	switch kind {
	case model.KindQuiz:
		resource = "quizzes"
	default:
		resource = "assignments"
	}
	path := fmt.Sprintf("/api/v1/courses/%s/%s/%s/submissions/self",
		url.PathEscape(courseID), resource, url.PathEscape(itemID))

	var w submissionWire
	if err := c.get(ctx, "get_submission", path, nil, &w); err != nil {
		return nil, err
	}

	score := parseFloat(w.Score)
	if score == nil {
		return nil, &util.MissingDataError{What: fmt.Sprintf("score for %s %s", resource, itemID)}
	}
	return &Submission{Score: score}, nil
}

// Ping 健康检查用的上游可达性探测，短超时的最小课程列表请求
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var out json.RawMessage
	query := url.Values{}
	query.Set("per_page", "1")
	return c.get(ctx, "ping", "/api/v1/courses", query, &out)
}

func (c *Client) ListCalendarEvents(ctx context.Context) ([]model.Event, error) {
	var wires []eventWire
	if err := c.get(ctx, "list_calendar_events", "/api/v1/calendar_events", nil, &wires); err != nil {
		return nil, err
	}

	events := make([]model.Event, 0, len(wires))
	for _, w := range wires {
		events = append(events, model.Event{
			ID:           w.ID.String(),
			Title:        w.Title,
			Description:  w.Description,
			StartAt:      parseTimeString(w.StartAt),
			EndAt:        parseTimeString(w.EndAt),
			LocationName: w.LocationName,
			Blackout:     w.Blackout,
		})
	}
	return events, nil
}
