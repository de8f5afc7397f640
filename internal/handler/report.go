package handler

import (
	"github.com/PetA199003/GBU-Management/common/response"
	"github.com/PetA199003/GBU-Management/internal/logic"
	"github.com/PetA199003/GBU-Management/internal/middleware"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler 导出处理器
type ReportHandler struct {
	svcCtx *svc.ServiceContext
}

// NewReportHandler 创建导出处理器
func NewReportHandler(svcCtx *svc.ServiceContext) *ReportHandler {
	return &ReportHandler{svcCtx: svcCtx}
}

type renderFunc func(l *logic.ReportLogic, user *model.User, id uint) (*types.FileResult, error)

// render 解析 id，生成文件并作为附件返回
func (h *ReportHandler) render(fn renderFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return response.FromError(c, err)
		}
		file, err := fn(logic.NewReportLogic(c.UserContext(), h.svcCtx), middleware.CurrentUser(c), id)
		if err != nil {
			return response.FromError(c, err)
		}
		return sendFile(c, file)
	}
}

// GBUPDF 项目危害评估 PDF
func (h *ReportHandler) GBUPDF() fiber.Handler {
	return h.render((*logic.ReportLogic).GBUPDF)
}

// GBUXLSX 项目危害评估 Excel
func (h *ReportHandler) GBUXLSX() fiber.Handler {
	return h.render((*logic.ReportLogic).GBUXLSX)
}

// ParticipantsPDF 签到表 PDF
func (h *ReportHandler) ParticipantsPDF() fiber.Handler {
	return h.render((*logic.ReportLogic).ParticipantsPDF)
}

// UnterweisungPDF 交底 PDF
func (h *ReportHandler) UnterweisungPDF() fiber.Handler {
	return h.render((*logic.ReportLogic).UnterweisungPDF)
}
