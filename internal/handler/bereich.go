package handler

import (
	"github.com/PetA199003/GBU-Management/common/response"
	"github.com/PetA199003/GBU-Management/internal/logic"
	"github.com/PetA199003/GBU-Management/internal/middleware"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/gofiber/fiber/v2"
)

// BereichHandler 区域处理器
type BereichHandler struct {
	svcCtx *svc.ServiceContext
}

// NewBereichHandler 创建区域处理器
func NewBereichHandler(svcCtx *svc.ServiceContext) *BereichHandler {
	return &BereichHandler{svcCtx: svcCtx}
}

func (h *BereichHandler) bereichLogic(c *fiber.Ctx) *logic.BereichLogic {
	return logic.NewBereichLogic(c.UserContext(), h.svcCtx)
}

// List 区域列表
func (h *BereichHandler) List(c *fiber.Ctx) error {
	list, err := h.bereichLogic(c).List()
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, list)
}

// Get 区域详情
func (h *BereichHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	bereich, err := h.bereichLogic(c).Get(id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, bereich)
}

// Create 创建区域
func (h *BereichHandler) Create(c *fiber.Ctx) error {
	var req types.BereichRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	bereich, err := h.bereichLogic(c).Create(middleware.CurrentUser(c), &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, bereich)
}

// Update 更新区域
func (h *BereichHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	var req types.BereichRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	bereich, err := h.bereichLogic(c).Update(middleware.CurrentUser(c), id, &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, bereich)
}

// Delete 删除区域
func (h *BereichHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	if err := h.bereichLogic(c).Delete(middleware.CurrentUser(c), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Bereich gelöscht", nil)
}

// Assign 为项目区域指定负责人，已存在时更新
func (h *BereichHandler) Assign(c *fiber.Ctx) error {
	projectID, err := paramID(c, "project_id")
	if err != nil {
		return response.FromError(c, err)
	}
	var req types.AssignBereichRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	assignment, created, err := h.bereichLogic(c).Assign(middleware.CurrentUser(c), projectID, &req)
	if err != nil {
		return response.FromError(c, err)
	}
	if created {
		return response.Created(c, assignment)
	}
	return response.Success(c, assignment)
}

// ProjectAssignments 项目的区域分配
func (h *BereichHandler) ProjectAssignments(c *fiber.Ctx) error {
	projectID, err := paramID(c, "project_id")
	if err != nil {
		return response.FromError(c, err)
	}
	list, err := h.bereichLogic(c).ProjectAssignments(middleware.CurrentUser(c), projectID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, list)
}

// UserAssignments 用户负责的区域
func (h *BereichHandler) UserAssignments(c *fiber.Ctx) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return response.FromError(c, err)
	}
	list, err := h.bereichLogic(c).UserAssignments(middleware.CurrentUser(c), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, list)
}
