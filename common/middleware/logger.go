package middleware

import (
	"github.com/PetA199003/GBU-Management/common/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RequestID 请求ID中间件，响应头 X-Request-ID
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	})
}

// Logger 日志中间件
func Logger() fiber.Handler {
	return logger.Middleware()
}
