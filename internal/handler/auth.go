package handler

import (
	"github.com/PetA199003/GBU-Management/common/logger"
	"github.com/PetA199003/GBU-Management/common/response"
	"github.com/PetA199003/GBU-Management/internal/audit"
	"github.com/PetA199003/GBU-Management/internal/auth"
	"github.com/PetA199003/GBU-Management/internal/logic"
	"github.com/PetA199003/GBU-Management/internal/middleware"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svcCtx *svc.ServiceContext
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svcCtx *svc.ServiceContext) *AuthHandler {
	return &AuthHandler{svcCtx: svcCtx}
}

// Login 登录
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}

	user, err := logic.NewUserLogic(c.UserContext(), h.svcCtx).Authenticate(&req)
	if err != nil {
		return response.FromError(c, err)
	}
	token, err := auth.Login(user.ID)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, types.LoginResponse{
		Token:     token,
		TokenName: auth.TokenName(),
		User:      user,
	})
}

// Logout 登出
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := auth.LogoutByToken(middleware.CurrentToken(c)); err != nil {
		logger.Warn("登出失败", zap.Error(err))
	}
	userID := middleware.GetCurrentUserID(c)
	middleware.LogOperation(h.svcCtx.Audit, c, audit.ActionLogout, audit.EntityUser, userID, "")
	return response.SuccessWithMessage(c, "Erfolgreich abgemeldet", nil)
}

// Me 当前用户
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return response.Success(c, middleware.CurrentUser(c))
}

// ChangePassword 修改密码
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req types.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}

	userID := middleware.GetCurrentUserID(c)
	if err := logic.NewUserLogic(c.UserContext(), h.svcCtx).ChangePassword(userID, &req); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Passwort geändert", nil)
}
