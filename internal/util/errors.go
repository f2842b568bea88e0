package util

import (
	"errors"
	"fmt"
)

var (
	ErrCourseListUnavailable = errors.New("course list unavailable")
	ErrRefreshSuperseded     = errors.New("refresh superseded by a newer request")
	ErrNoSnapshot            = errors.New("no calendar snapshot available")
)

// NetworkError 传输层失败（连接、超时）
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UpstreamError 上游返回非 2xx 状态码
type UpstreamError struct {
	Op         string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error during %s: status %d", e.Op, e.StatusCode)
}

// ParseError 响应体不是合法 JSON 或结构不符
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error during %s: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DateParseError 单条记录的 dueAt 字段无法解析
type DateParseError struct {
	Field string
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("cannot parse %s value %q: %v", e.Field, e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// MissingDataError 提交或分数缺失
type MissingDataError struct {
	What string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing data: %s", e.What)
}
