package handler

import (
	"github.com/PetA199003/GBU-Management/common/response"
	"github.com/PetA199003/GBU-Management/internal/logic"
	"github.com/PetA199003/GBU-Management/internal/middleware"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/gofiber/fiber/v2"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	svcCtx *svc.ServiceContext
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(svcCtx *svc.ServiceContext) *ProjectHandler {
	return &ProjectHandler{svcCtx: svcCtx}
}

func (h *ProjectHandler) projectLogic(c *fiber.Ctx) *logic.ProjectLogic {
	return logic.NewProjectLogic(c.UserContext(), h.svcCtx)
}

// List 项目列表
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	var req types.ProjectListRequest
	if err := parseQuery(c, &req); err != nil {
		return response.FromError(c, err)
	}
	req.Normalize()

	list, total, err := h.projectLogic(c).List(middleware.CurrentUser(c), &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Page(c, list, total, req.Page, req.PageSize)
}

// Get 项目详情
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	detail, err := h.projectLogic(c).Get(middleware.CurrentUser(c), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, detail)
}

// Create 创建项目
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req types.CreateProjectRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	if c.QueryBool("auto_select") {
		req.AutoSelect = true
	}
	project, err := h.projectLogic(c).Create(middleware.CurrentUser(c), &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, project)
}

// Update 更新项目
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	var req types.UpdateProjectRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	project, err := h.projectLogic(c).Update(middleware.CurrentUser(c), id, &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, project)
}

// Delete 删除项目
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	if err := h.projectLogic(c).Delete(middleware.CurrentUser(c), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Projekt gelöscht", nil)
}

// Assign 分配项目成员
func (h *ProjectHandler) Assign(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	var req types.AssignUserRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	assignment, err := h.projectLogic(c).Assign(middleware.CurrentUser(c), id, &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, assignment)
}

// Assignments 项目成员
func (h *ProjectHandler) Assignments(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	list, err := h.projectLogic(c).Assignments(middleware.CurrentUser(c), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, list)
}

// Unassign 移除项目成员
func (h *ProjectHandler) Unassign(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	userID, err := paramID(c, "user_id")
	if err != nil {
		return response.FromError(c, err)
	}
	if err := h.projectLogic(c).Unassign(middleware.CurrentUser(c), id, userID); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Zuweisung entfernt", nil)
}

// AutoSelect 预览自动匹配的风险评估
func (h *ProjectHandler) AutoSelect(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	list, err := h.projectLogic(c).AutoSelectPreview(middleware.CurrentUser(c), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, list)
}

// SetHazards 替换项目选中的风险评估
func (h *ProjectHandler) SetHazards(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	var req types.IDsRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	list, err := h.projectLogic(c).SetHazards(middleware.CurrentUser(c), id, &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, list)
}

// Hazards 项目风险评估
func (h *ProjectHandler) Hazards(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	list, err := h.projectLogic(c).Hazards(middleware.CurrentUser(c), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, list)
}
