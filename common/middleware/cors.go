package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS 跨域中间件，origins 为空时允许所有来源
func CORS(origins []string) fiber.Handler {
	allow := "*"
	if len(origins) > 0 {
		allow = strings.Join(origins, ",")
	}
	return cors.New(cors.Config{
		AllowOrigins:     allow,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With,satoken",
		ExposeHeaders:    "Content-Length,Content-Type,Content-Disposition,X-Request-ID",
		AllowCredentials: false,
		MaxAge:           86400,
	})
}
