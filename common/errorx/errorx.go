// Package errorx 提供带 HTTP 语义的业务错误
package errorx

import (
	"errors"
	"fmt"
	"net/http"
)

// Error 业务错误，Status 对应 HTTP 状态码
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap 返回原始错误
func (e *Error) Unwrap() error {
	return e.cause
}

// Is 按状态码比较，便于 errors.Is(err, errorx.ErrNotFound)
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Message == "" && t.Status == e.Status
}

// 哨兵错误，只比较状态码
var (
	ErrBadRequest   = &Error{Status: http.StatusBadRequest}
	ErrUnauthorized = &Error{Status: http.StatusUnauthorized}
	ErrForbidden    = &Error{Status: http.StatusForbidden}
	ErrNotFound     = &Error{Status: http.StatusNotFound}
	ErrConflict     = &Error{Status: http.StatusConflict}
)

func newf(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

// BadRequest 参数错误
func BadRequest(format string, args ...any) *Error {
	return newf(http.StatusBadRequest, format, args...)
}

// Unauthorized 未认证
func Unauthorized(format string, args ...any) *Error {
	return newf(http.StatusUnauthorized, format, args...)
}

// Forbidden 无权限
func Forbidden(format string, args ...any) *Error {
	return newf(http.StatusForbidden, format, args...)
}

// NotFound 资源不存在
func NotFound(format string, args ...any) *Error {
	return newf(http.StatusNotFound, format, args...)
}

// Conflict 资源冲突
func Conflict(format string, args ...any) *Error {
	return newf(http.StatusConflict, format, args...)
}

// Wrap 包装底层错误
func Wrap(status int, err error, message string) *Error {
	return &Error{Status: status, Message: message, cause: err}
}

// StatusOf 获取错误对应的 HTTP 状态码，未知错误为 500
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}
