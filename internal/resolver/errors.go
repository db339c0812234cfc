package resolver

import (
	"errors"
	"fmt"
)

// ErrorKind 是解析失败的分类，调用方按分类决定重试或引导登录
type ErrorKind string

const (
	ErrUnsupportedPlatform ErrorKind = "unsupported_platform"
	ErrUnsupportedURLShape ErrorKind = "unsupported_url_shape"
	ErrAuthRequired        ErrorKind = "auth_required"
	ErrNotFound            ErrorKind = "not_found"
	ErrRateLimited         ErrorKind = "rate_limited"
	ErrTimeout             ErrorKind = "timeout"
	ErrUpstreamMalformed   ErrorKind = "upstream_malformed"
)

// Error 携带平台、合集类型和目标 ID，方便调用方拼出可读的提示。
// 上游返回的原始错误体不往外透传。
type Error struct {
	Kind           ErrorKind
	Platform       Platform
	CollectionType CollectionType
	ID             string
	Message        string
}

func (e *Error) Error() string {
	s := fmt.Sprintf("resolver: %s", e.Kind)
	if e.Platform != "" {
		s += fmt.Sprintf(" platform=%s", e.Platform)
	}
	if e.CollectionType != "" {
		s += fmt.Sprintf(" type=%s", e.CollectionType)
	}
	if e.ID != "" {
		s += fmt.Sprintf(" id=%s", e.ID)
	}
	if e.Message != "" {
		s += ": " + e.Message
	}
	return s
}

// Retryable 报告该失败是否值得调用方稍后重试。
// 解析器自身从不重试，避免放大已经在限流的上游压力。
func (e *Error) Retryable() bool {
	return e.Kind == ErrRateLimited || e.Kind == ErrTimeout
}

func newError(kind ErrorKind, platform Platform, ctype CollectionType, id, format string, args ...interface{}) *Error {
	return &Error{
		Kind:           kind,
		Platform:       platform,
		CollectionType: ctype,
		ID:             id,
		Message:        fmt.Sprintf(format, args...),
	}
}

// KindOf 提取错误分类，非 resolver 错误返回空串
func KindOf(err error) ErrorKind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
