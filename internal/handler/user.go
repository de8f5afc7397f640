package handler

import (
	"github.com/PetA199003/GBU-Management/common/logger"
	"github.com/PetA199003/GBU-Management/common/response"
	"github.com/PetA199003/GBU-Management/internal/auth"
	"github.com/PetA199003/GBU-Management/internal/logic"
	"github.com/PetA199003/GBU-Management/internal/middleware"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler 用户处理器
type UserHandler struct {
	svcCtx *svc.ServiceContext
}

// NewUserHandler 创建用户处理器
func NewUserHandler(svcCtx *svc.ServiceContext) *UserHandler {
	return &UserHandler{svcCtx: svcCtx}
}

func (h *UserHandler) userLogic(c *fiber.Ctx) *logic.UserLogic {
	return logic.NewUserLogic(c.UserContext(), h.svcCtx)
}

// List 用户列表
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userLogic(c).List()
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, users)
}

// Get 用户详情
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	user, err := h.userLogic(c).Get(middleware.CurrentUser(c), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, user)
}

// ByRole 按角色列出启用用户
func (h *UserHandler) ByRole(c *fiber.Ctx) error {
	users, err := h.userLogic(c).ByRole(c.Params("role"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, users)
}

// Create 创建用户
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req types.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	user, err := h.userLogic(c).Create(middleware.CurrentUser(c), &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, user)
}

// Update 更新用户
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	var req types.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	user, err := h.userLogic(c).Update(middleware.CurrentUser(c), id, &req)
	if err != nil {
		return response.FromError(c, err)
	}
	if !user.Active {
		h.kickOut(id)
	}
	return response.Success(c, user)
}

// Delete 停用用户并踢下线
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	if err := h.userLogic(c).Deactivate(middleware.CurrentUser(c), id); err != nil {
		return response.FromError(c, err)
	}
	h.kickOut(id)
	return response.SuccessWithMessage(c, "Benutzer deaktiviert", nil)
}

func (h *UserHandler) kickOut(id uint) {
	if err := auth.KickOut(id); err != nil {
		logger.Debug("踢出会话失败", zap.Uint("userId", id), zap.Error(err))
	}
}
