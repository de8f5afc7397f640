package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Middleware Fiber 请求日志中间件
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// 先由全局 ErrorHandler 写响应，再记录最终状态
			if e := c.App().Config().ErrorHandler(c, err); e != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}

		lg := L().WithOptions(zap.WithCaller(false))
		switch {
		case status >= fiber.StatusInternalServerError:
			lg.Error("HTTP", append(fields, zap.Error(err))...)
		case status >= fiber.StatusBadRequest:
			lg.Warn("HTTP", fields...)
		default:
			lg.Info("HTTP", fields...)
		}
		return nil
	}
}
