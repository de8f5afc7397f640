package middleware

import (
	"strings"

	"github.com/PetA199003/GBU-Management/common/response"
	"github.com/PetA199003/GBU-Management/internal/auth"
	"github.com/PetA199003/GBU-Management/internal/model"

	"github.com/gofiber/fiber/v2"
)

// 上下文键
const (
	LocalUserID = "userId"
	LocalUser   = "user"
	LocalToken  = "token"
)

// AuthMiddleware 认证中间件，校验会话并加载启用状态的用户
func AuthMiddleware(permissionService *auth.PermissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := GetToken(c)
		if token == "" {
			return response.Unauthorized(c, "Bitte zuerst anmelden")
		}
		if !auth.IsLogin(token) {
			return response.Unauthorized(c, "Sitzung abgelaufen, bitte erneut anmelden")
		}

		loginID, err := auth.GetLoginID(token)
		if err != nil {
			return response.Unauthorized(c, "Benutzerinformationen konnten nicht gelesen werden")
		}
		userID, err := auth.ParseUserID(loginID)
		if err != nil {
			return response.Unauthorized(c, "Ungültige Sitzung")
		}
		user, err := permissionService.ActiveUser(c.UserContext(), userID)
		if err != nil {
			return response.Unauthorized(c, err.Error())
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalUser, user)
		c.Locals(LocalToken, token)
		return c.Next()
	}
}

// RoleMiddleware 角色验证中间件，需在 AuthMiddleware 之后使用
func RoleMiddleware(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Unauthorized(c, "")
		}
		if !auth.HasAnyRole(user, roles...) {
			return response.Forbidden(c, "")
		}
		return c.Next()
	}
}

// GetToken 依次从 Header、Authorization、Query、Cookie 读取 token
func GetToken(c *fiber.Ctx) string {
	name := auth.TokenName()
	if token := c.Get(name); token != "" {
		return token
	}
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if token := c.Query(name); token != "" {
		return token
	}
	return c.Cookies(name)
}

// CurrentUser 当前登录用户
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(LocalUser).(*model.User)
	return user
}

// GetCurrentUserID 当前登录用户 ID，未登录为 0
func GetCurrentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalUserID).(uint)
	return id
}

// CurrentToken 当前请求的 token
func CurrentToken(c *fiber.Ctx) string {
	token, _ := c.Locals(LocalToken).(string)
	return token
}
