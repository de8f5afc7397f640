package handler

import (
	"github.com/PetA199003/GBU-Management/common/response"
	"github.com/PetA199003/GBU-Management/internal/logic"
	"github.com/PetA199003/GBU-Management/internal/middleware"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/gofiber/fiber/v2"
)

// UnterweisungHandler 安全交底处理器
type UnterweisungHandler struct {
	svcCtx *svc.ServiceContext
}

// NewUnterweisungHandler 创建处理器
func NewUnterweisungHandler(svcCtx *svc.ServiceContext) *UnterweisungHandler {
	return &UnterweisungHandler{svcCtx: svcCtx}
}

func (h *UnterweisungHandler) unterweisungLogic(c *fiber.Ctx) *logic.UnterweisungLogic {
	return logic.NewUnterweisungLogic(c.UserContext(), h.svcCtx)
}

// ListByProject 项目的交底文档
func (h *UnterweisungHandler) ListByProject(c *fiber.Ctx) error {
	projectID, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	list, err := h.unterweisungLogic(c).ListByProject(middleware.CurrentUser(c), projectID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, list)
}

// Get 交底详情
func (h *UnterweisungHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	u, err := h.unterweisungLogic(c).Get(middleware.CurrentUser(c), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, u)
}

// Create 创建交底
func (h *UnterweisungHandler) Create(c *fiber.Ctx) error {
	var req types.UnterweisungRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	u, err := h.unterweisungLogic(c).Create(middleware.CurrentUser(c), &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, u)
}

// Update 更新交底，提供 items 时整体替换
func (h *UnterweisungHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	var req types.UnterweisungRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	u, err := h.unterweisungLogic(c).Update(middleware.CurrentUser(c), id, &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, u)
}

// Delete 删除交底
func (h *UnterweisungHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	if err := h.unterweisungLogic(c).Delete(middleware.CurrentUser(c), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Unterweisung gelöscht", nil)
}

// Generate 生成默认交底
func (h *UnterweisungHandler) Generate(c *fiber.Ctx) error {
	projectID, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	u, err := h.unterweisungLogic(c).Generate(middleware.CurrentUser(c), projectID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, u)
}
