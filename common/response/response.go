package response

import (
	"errors"

	"github.com/PetA199003/GBU-Management/common/errorx"
	"github.com/PetA199003/GBU-Management/common/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PageData 分页数据结构
type PageData struct {
	List     any   `json:"list"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// 响应码定义
const (
	CodeSuccess      = 0
	CodeError        = -1
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeServerError  = 500
)

// 响应消息定义
const (
	MsgSuccess      = "success"
	MsgUnauthorized = "Nicht angemeldet"
	MsgForbidden    = "Keine Berechtigung"
	MsgNotFound     = "Nicht gefunden"
	MsgServerError  = "Interner Serverfehler"
)

// Success 成功响应
func Success(c *fiber.Ctx, data any) error {
	return c.JSON(Response{
		Code:    CodeSuccess,
		Message: MsgSuccess,
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Code:    CodeSuccess,
		Message: MsgSuccess,
		Data:    data,
	})
}

// SuccessWithMessage 成功响应带消息
func SuccessWithMessage(c *fiber.Ctx, message string, data any) error {
	return c.JSON(Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// ErrorWithCode 错误响应，HTTP 状态与业务码一致
func ErrorWithCode(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 参数错误响应
func BadRequest(c *fiber.Ctx, message string) error {
	return ErrorWithCode(c, CodeBadRequest, message)
}

// Unauthorized 未授权响应
func Unauthorized(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgUnauthorized
	}
	return ErrorWithCode(c, CodeUnauthorized, message)
}

// Forbidden 禁止访问响应
func Forbidden(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgForbidden
	}
	return ErrorWithCode(c, CodeForbidden, message)
}

// NotFound 未找到响应
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgNotFound
	}
	return ErrorWithCode(c, CodeNotFound, message)
}

// ServerError 服务器错误响应
func ServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgServerError
	}
	return ErrorWithCode(c, CodeServerError, message)
}

// FromError 将业务错误映射为响应，未知错误记录日志并返回 500
func FromError(c *fiber.Ctx, err error) error {
	var e *errorx.Error
	if errors.As(err, &e) {
		return ErrorWithCode(c, e.Status, e.Error())
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ErrorWithCode(c, fe.Code, fe.Message)
	}
	logger.Error("请求处理失败",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return ServerError(c, "")
}

// ErrorHandler Fiber 全局错误处理
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromError(c, err)
}

// Page 分页响应
func Page(c *fiber.Ctx, list any, total int64, page, pageSize int) error {
	return Success(c, PageData{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}
