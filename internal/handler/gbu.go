package handler

import (
	"github.com/PetA199003/GBU-Management/common/response"
	"github.com/PetA199003/GBU-Management/internal/logic"
	"github.com/PetA199003/GBU-Management/internal/middleware"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/gofiber/fiber/v2"
)

// GBUHandler 模板与危害条目处理器
type GBUHandler struct {
	svcCtx *svc.ServiceContext
}

// NewGBUHandler 创建处理器
func NewGBUHandler(svcCtx *svc.ServiceContext) *GBUHandler {
	return &GBUHandler{svcCtx: svcCtx}
}

func (h *GBUHandler) gbuLogic(c *fiber.Ctx) *logic.GBULogic {
	return logic.NewGBULogic(c.UserContext(), h.svcCtx)
}

// ListTemplates 模板列表
func (h *GBUHandler) ListTemplates(c *fiber.Ctx) error {
	var req types.TemplateListRequest
	if err := parseQuery(c, &req); err != nil {
		return response.FromError(c, err)
	}
	list, err := h.gbuLogic(c).ListTemplates(middleware.CurrentUser(c), &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, list)
}

// GetTemplate 模板详情
func (h *GBUHandler) GetTemplate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	tpl, err := h.gbuLogic(c).GetTemplate(middleware.CurrentUser(c), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, tpl)
}

// CreateTemplate 创建模板
func (h *GBUHandler) CreateTemplate(c *fiber.Ctx) error {
	var req types.TemplateRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	tpl, err := h.gbuLogic(c).CreateTemplate(middleware.CurrentUser(c), &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, tpl)
}

// UpdateTemplate 更新模板
func (h *GBUHandler) UpdateTemplate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	var req types.TemplateRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	tpl, err := h.gbuLogic(c).UpdateTemplate(middleware.CurrentUser(c), id, &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, tpl)
}

// DeleteTemplate 删除模板
func (h *GBUHandler) DeleteTemplate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	if err := h.gbuLogic(c).DeleteTemplate(middleware.CurrentUser(c), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Vorlage gelöscht", nil)
}

// CreateGefaehrdung 创建危害条目
func (h *GBUHandler) CreateGefaehrdung(c *fiber.Ctx) error {
	var req types.GefaehrdungRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	g, err := h.gbuLogic(c).CreateGefaehrdung(middleware.CurrentUser(c), &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, g)
}

// UpdateGefaehrdung 更新危害条目
func (h *GBUHandler) UpdateGefaehrdung(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	var req types.GefaehrdungRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	g, err := h.gbuLogic(c).UpdateGefaehrdung(middleware.CurrentUser(c), id, &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, g)
}

// DeleteGefaehrdung 删除危害条目
func (h *GBUHandler) DeleteGefaehrdung(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	if err := h.gbuLogic(c).DeleteGefaehrdung(middleware.CurrentUser(c), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Gefährdung gelöscht", nil)
}

// ProjectGBUs 项目的模板与自有危害
func (h *GBUHandler) ProjectGBUs(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	result, err := h.gbuLogic(c).ProjectGBUs(middleware.CurrentUser(c), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, result)
}

// AddTemplate 为项目添加模板
func (h *GBUHandler) AddTemplate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	var req types.AddTemplateRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	link, err := h.gbuLogic(c).AddTemplate(middleware.CurrentUser(c), id, &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, link)
}

// CopyTemplate 把模板危害复制为项目自有条目
func (h *GBUHandler) CopyTemplate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	templateID, err := paramID(c, "template_id")
	if err != nil {
		return response.FromError(c, err)
	}
	result, err := h.gbuLogic(c).CopyTemplate(middleware.CurrentUser(c), id, templateID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, result)
}
