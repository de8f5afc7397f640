package middleware

import (
	"github.com/PetA199003/GBU-Management/internal/audit"

	"github.com/gofiber/fiber/v2"
)

// ClientIP 将客户端 IP 写入请求的 UserContext，审计日志从中读取
func ClientIP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(audit.WithClientIP(c.UserContext(), c.IP()))
		return c.Next()
	}
}

// LogOperation 手动记录一次操作，用于没有对应业务逻辑的请求，例如登出
func LogOperation(rec *audit.Recorder, c *fiber.Ctx, action, entityType string, entityID uint, details string) {
	rec.Log(c.UserContext(), GetCurrentUserID(c), action, entityType, entityID, details)
}
