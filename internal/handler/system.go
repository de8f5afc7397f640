package handler

import (
	"github.com/PetA199003/GBU-Management/common/database"
	"github.com/PetA199003/GBU-Management/common/response"
	"github.com/PetA199003/GBU-Management/internal/logic"
	"github.com/PetA199003/GBU-Management/internal/middleware"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/gofiber/fiber/v2"
)

// SystemHandler 仪表盘、审计日志和健康检查
type SystemHandler struct {
	svcCtx *svc.ServiceContext
}

// NewSystemHandler 创建处理器
func NewSystemHandler(svcCtx *svc.ServiceContext) *SystemHandler {
	return &SystemHandler{svcCtx: svcCtx}
}

// Health 健康检查
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	if err := database.Ping(h.svcCtx.DB); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(response.Response{
			Code:    fiber.StatusServiceUnavailable,
			Message: "Datenbank nicht erreichbar",
			Data:    fiber.Map{"status": "error", "database": err.Error()},
		})
	}
	return response.Success(c, fiber.Map{
		"status":   "ok",
		"database": "ok",
		"version":  h.svcCtx.Config.App.Version,
	})
}

// Dashboard 仪表盘统计
func (h *SystemHandler) Dashboard(c *fiber.Ctx) error {
	data, err := logic.NewDashboardLogic(c.UserContext(), h.svcCtx).Get(middleware.CurrentUser(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, data)
}

// AuditList 审计日志
func (h *SystemHandler) AuditList(c *fiber.Ctx) error {
	var req types.AuditListRequest
	if err := parseQuery(c, &req); err != nil {
		return response.FromError(c, err)
	}
	req.Normalize()

	list, total, err := logic.NewAuditLogic(c.UserContext(), h.svcCtx).List(&req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Page(c, list, total, req.Page, req.PageSize)
}
