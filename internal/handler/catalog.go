package handler

import (
	"github.com/PetA199003/GBU-Management/common/response"
	"github.com/PetA199003/GBU-Management/internal/logic"
	"github.com/PetA199003/GBU-Management/internal/middleware"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler 风险目录处理器
type CatalogHandler struct {
	svcCtx *svc.ServiceContext
}

// NewCatalogHandler 创建风险目录处理器
func NewCatalogHandler(svcCtx *svc.ServiceContext) *CatalogHandler {
	return &CatalogHandler{svcCtx: svcCtx}
}

func (h *CatalogHandler) catalogLogic(c *fiber.Ctx) *logic.CatalogLogic {
	return logic.NewCatalogLogic(c.UserContext(), h.svcCtx)
}

// optionalID 更新路由带 id，创建路由不带
func optionalID(c *fiber.Ctx) (uint, error) {
	if c.Params("id") == "" {
		return 0, nil
	}
	return paramID(c, "id")
}

// saved 创建返回 201，更新返回 200
func saved(c *fiber.Ctx, id uint, data any) error {
	if id == 0 {
		return response.Created(c, data)
	}
	return response.Success(c, data)
}

// RiskMatrix 5×5 风险矩阵
func (h *CatalogHandler) RiskMatrix(c *fiber.Ctx) error {
	return response.Success(c, h.catalogLogic(c).RiskMatrix())
}

// ListAssessments 风险评估目录
func (h *CatalogHandler) ListAssessments(c *fiber.Ctx) error {
	list, err := h.catalogLogic(c).ListAssessments()
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, list)
}

// GetAssessment 风险评估详情
func (h *CatalogHandler) GetAssessment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	ra, err := h.catalogLogic(c).GetAssessment(id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, ra)
}

// CreateAssessment 创建风险评估
func (h *CatalogHandler) CreateAssessment(c *fiber.Ctx) error {
	var req types.RiskAssessmentRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	ra, err := h.catalogLogic(c).CreateAssessment(middleware.CurrentUser(c), &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, ra)
}

// UpdateAssessment 更新风险评估
func (h *CatalogHandler) UpdateAssessment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	var req types.RiskAssessmentRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	ra, err := h.catalogLogic(c).UpdateAssessment(middleware.CurrentUser(c), id, &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, ra)
}

// DeleteAssessment 删除风险评估
func (h *CatalogHandler) DeleteAssessment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	if err := h.catalogLogic(c).DeleteAssessment(middleware.CurrentUser(c), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Risikobewertung gelöscht", nil)
}

// ListHazards 危害库
func (h *CatalogHandler) ListHazards(c *fiber.Ctx) error {
	list, err := h.catalogLogic(c).ListHazards(c.Query("category"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, list)
}

// GetHazard 危害详情
func (h *CatalogHandler) GetHazard(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	hazard, err := h.catalogLogic(c).GetHazard(id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, hazard)
}

// SaveHazard 创建或更新危害
func (h *CatalogHandler) SaveHazard(c *fiber.Ctx) error {
	id, err := optionalID(c)
	if err != nil {
		return response.FromError(c, err)
	}
	var req types.HazardRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	hazard, err := h.catalogLogic(c).SaveHazard(middleware.CurrentUser(c), id, &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return saved(c, id, hazard)
}

// DeleteHazard 删除危害
func (h *CatalogHandler) DeleteHazard(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	if err := h.catalogLogic(c).DeleteHazard(middleware.CurrentUser(c), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Gefährdung gelöscht", nil)
}

// ListMeasures 防护措施
func (h *CatalogHandler) ListMeasures(c *fiber.Ctx) error {
	list, err := h.catalogLogic(c).ListMeasures(c.Query("hazard_category"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, list)
}

// SaveMeasure 创建或更新防护措施
func (h *CatalogHandler) SaveMeasure(c *fiber.Ctx) error {
	id, err := optionalID(c)
	if err != nil {
		return response.FromError(c, err)
	}
	var req types.ControlMeasureRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	measure, err := h.catalogLogic(c).SaveMeasure(middleware.CurrentUser(c), id, &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return saved(c, id, measure)
}

// DeleteMeasure 删除防护措施
func (h *CatalogHandler) DeleteMeasure(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	if err := h.catalogLogic(c).DeleteMeasure(middleware.CurrentUser(c), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Maßnahme gelöscht", nil)
}

// ListCriteria 条件定义
func (h *CatalogHandler) ListCriteria(c *fiber.Ctx) error {
	list, err := h.catalogLogic(c).ListCriteria()
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, list)
}

// SaveCriteria 创建或更新条件定义
func (h *CatalogHandler) SaveCriteria(c *fiber.Ctx) error {
	id, err := optionalID(c)
	if err != nil {
		return response.FromError(c, err)
	}
	var req types.CriteriaCategoryRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	criteria, err := h.catalogLogic(c).SaveCriteria(middleware.CurrentUser(c), id, &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return saved(c, id, criteria)
}

// DeleteCriteria 删除条件定义
func (h *CatalogHandler) DeleteCriteria(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	if err := h.catalogLogic(c).DeleteCriteria(middleware.CurrentUser(c), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Kriterium gelöscht", nil)
}
