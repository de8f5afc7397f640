package handler

import (
	"github.com/PetA199003/GBU-Management/common/errorx"
	"github.com/PetA199003/GBU-Management/common/response"
	"github.com/PetA199003/GBU-Management/internal/logic"
	"github.com/PetA199003/GBU-Management/internal/middleware"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/gofiber/fiber/v2"
)

// ParticipantHandler 参与者处理器
type ParticipantHandler struct {
	svcCtx *svc.ServiceContext
}

// NewParticipantHandler 创建参与者处理器
func NewParticipantHandler(svcCtx *svc.ServiceContext) *ParticipantHandler {
	return &ParticipantHandler{svcCtx: svcCtx}
}

func (h *ParticipantHandler) participantLogic(c *fiber.Ctx) *logic.ParticipantLogic {
	return logic.NewParticipantLogic(c.UserContext(), h.svcCtx)
}

// List 项目参与者
func (h *ParticipantHandler) List(c *fiber.Ctx) error {
	projectID, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	list, err := h.participantLogic(c).List(middleware.CurrentUser(c), projectID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, list)
}

// Create 创建参与者
func (h *ParticipantHandler) Create(c *fiber.Ctx) error {
	var req types.ParticipantRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	p, err := h.participantLogic(c).Create(middleware.CurrentUser(c), &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, p)
}

// Update 更新参与者
func (h *ParticipantHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	var req types.ParticipantRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	p, err := h.participantLogic(c).Update(middleware.CurrentUser(c), id, &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, p)
}

// Delete 删除参与者
func (h *ParticipantHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	if err := h.participantLogic(c).Delete(middleware.CurrentUser(c), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Teilnehmer gelöscht", nil)
}

// Import 从 CSV 或 XLSX 导入参与者
func (h *ParticipantHandler) Import(c *fiber.Ctx) error {
	projectID, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "Keine Datei hochgeladen")
	}
	if limit := int64(h.svcCtx.Config.GBU.MaxUploadMB) << 20; limit > 0 && fh.Size > limit {
		return response.FromError(c, errorx.BadRequest("Datei ist größer als %d MB", h.svcCtx.Config.GBU.MaxUploadMB))
	}
	f, err := fh.Open()
	if err != nil {
		return response.FromError(c, errorx.Wrap(fiber.StatusBadRequest, err, "Datei kann nicht gelesen werden"))
	}
	defer f.Close()

	result, err := h.participantLogic(c).Import(middleware.CurrentUser(c), projectID, fh.Filename, f)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, result)
}

// Sign 数字签名
func (h *ParticipantHandler) Sign(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	var req types.SignRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, err)
	}
	p, err := h.participantLogic(c).Sign(middleware.CurrentUser(c), id, &req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, p)
}

// MarkAnalogSigned 标记为纸面签名
func (h *ParticipantHandler) MarkAnalogSigned(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	p, err := h.participantLogic(c).MarkAnalogSigned(middleware.CurrentUser(c), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, p)
}

// ResetSignature 重置签名
func (h *ParticipantHandler) ResetSignature(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	p, err := h.participantLogic(c).ResetSignature(middleware.CurrentUser(c), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, p)
}

// Stats 签名统计
func (h *ParticipantHandler) Stats(c *fiber.Ctx) error {
	projectID, err := paramID(c, "id")
	if err != nil {
		return response.FromError(c, err)
	}
	stats, err := h.participantLogic(c).Stats(middleware.CurrentUser(c), projectID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, stats)
}
