package logic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/PetA199003/GBU-Management/common/errorx"
	commonTypes "github.com/PetA199003/GBU-Management/common/types"
	"github.com/PetA199003/GBU-Management/common/utils"
	"github.com/PetA199003/GBU-Management/internal/audit"
	"github.com/PetA199003/GBU-Management/internal/cache"
	"github.com/PetA199003/GBU-Management/internal/importer"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

const msgParticipantNotFound = "Teilnehmer nicht gefunden"

// ParticipantLogic 参与者与签名逻辑
type ParticipantLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// NewParticipantLogic 创建参与者逻辑
func NewParticipantLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ParticipantLogic {
	return &ParticipantLogic{ctx: ctx, svcCtx: svcCtx}
}

func (l *ParticipantLogic) db() *gorm.DB {
	return l.svcCtx.DB.WithContext(l.ctx)
}

// SortParticipants 按德语排序规则以姓、名排序
func SortParticipants(list []model.Participant) {
	c := collate.New(language.German, collate.IgnoreCase)
	sort.SliceStable(list, func(i, j int) bool {
		if r := c.CompareString(list[i].LastName, list[j].LastName); r != 0 {
			return r < 0
		}
		return c.CompareString(list[i].FirstName, list[j].FirstName) < 0
	})
}

// List 项目参与者
func (l *ParticipantLogic) List(user *model.User, projectID uint) ([]model.Participant, error) {
	if _, err := accessibleProject(l.db(), user, projectID); err != nil {
		return nil, err
	}
	return projectParticipants(l.db(), projectID)
}

func projectParticipants(db *gorm.DB, projectID uint) ([]model.Participant, error) {
	list := make([]model.Participant, 0)
	if err := db.Where("project_id = ?", projectID).Find(&list).Error; err != nil {
		return nil, err
	}
	SortParticipants(list)
	return list, nil
}

// Create 添加参与者
func (l *ParticipantLogic) Create(user *model.User, req *types.ParticipantRequest) (*model.Participant, error) {
	if req.ProjectID == 0 {
		return nil, errorx.BadRequest("Projekt-ID erforderlich")
	}
	if _, err := accessibleProject(l.db(), user, req.ProjectID); err != nil {
		return nil, err
	}
	p := &model.Participant{ProjectID: req.ProjectID, SignatureType: model.SignaturePending}
	applyParticipant(p, req)
	if err := l.db().Create(p).Error; err != nil {
		return nil, err
	}
	l.changed(user, audit.ActionCreate, p)
	return p, nil
}

// Update 更新参与者，nil 字段保持不变
func (l *ParticipantLogic) Update(user *model.User, id uint, req *types.ParticipantRequest) (*model.Participant, error) {
	p, err := l.load(user, id)
	if err != nil {
		return nil, err
	}
	applyParticipant(p, req)
	if err := l.db().Save(p).Error; err != nil {
		return nil, err
	}
	l.changed(user, audit.ActionUpdate, p)
	return p, nil
}

// Delete 删除参与者
func (l *ParticipantLogic) Delete(user *model.User, id uint) error {
	p, err := l.load(user, id)
	if err != nil {
		return err
	}
	if err := l.db().Delete(p).Error; err != nil {
		return err
	}
	l.changed(user, audit.ActionDelete, p)
	return nil
}

// Import 从 CSV 或 XLSX 导入参与者，缺少姓名的行记为错误
func (l *ParticipantLogic) Import(user *model.User, projectID uint, filename string, r io.Reader) (*types.ImportResult, error) {
	project, err := accessibleProject(l.db(), user, projectID)
	if err != nil {
		return nil, err
	}
	rows, err := importer.Parse(filename, r)
	if errors.Is(err, importer.ErrUnsupportedFormat) {
		return nil, errorx.BadRequest("%s", err.Error())
	}
	if err != nil {
		return nil, errorx.Wrap(http.StatusBadRequest, err, "Datei konnte nicht importiert werden")
	}

	result := &types.ImportResult{Errors: make([]string, 0)}
	participants := make([]model.Participant, 0, len(rows))
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		participants = append(participants, model.Participant{
			ProjectID:       projectID,
			FirstName:       row.FirstName,
			LastName:        row.LastName,
			Email:           row.Email,
			Position:        row.Position,
			Company:         row.Company,
			SignatureType:   model.SignaturePending,
			ImportedFromCSV: true,
		})
	}
	if len(participants) > 0 {
		if err := l.db().CreateInBatches(&participants, 100).Error; err != nil {
			return nil, err
		}
	}

	result.ImportedCount = len(participants)
	result.Message = fmt.Sprintf("%d Teilnehmer erfolgreich importiert", result.ImportedCount)
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionImport, audit.EntityParticipant, projectID,
		fmt.Sprintf("%d Teilnehmer für Projekt %s importiert", result.ImportedCount, project.Name))
	l.svcCtx.Cache.Invalidate(l.ctx, cache.KeyDashboardPrefix)
	return result, nil
}

// Sign 保存数字签名
func (l *ParticipantLogic) Sign(user *model.User, id uint, req *types.SignRequest) (*model.Participant, error) {
	if utils.IsBlank(req.SignatureData) {
		return nil, errorx.BadRequest("Unterschrift erforderlich")
	}
	return l.setSignature(user, id, model.SignatureDigital, req.SignatureData)
}

// MarkAnalogSigned 标记为纸质签名
func (l *ParticipantLogic) MarkAnalogSigned(user *model.User, id uint) (*model.Participant, error) {
	return l.setSignature(user, id, model.SignatureAnalog, "")
}

// ResetSignature 恢复为未签名
func (l *ParticipantLogic) ResetSignature(user *model.User, id uint) (*model.Participant, error) {
	return l.setSignature(user, id, model.SignaturePending, "")
}

func (l *ParticipantLogic) setSignature(user *model.User, id uint, kind, data string) (*model.Participant, error) {
	p, err := l.load(user, id)
	if err != nil {
		return nil, err
	}
	p.SignatureType = kind
	p.SignatureData = data
	p.SignedAt = nil
	if kind != model.SignaturePending {
		signedAt := commonTypes.Now()
		p.SignedAt = &signedAt
	}
	if err := l.db().Save(p).Error; err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionSign, audit.EntityParticipant, p.ID, kind)
	l.svcCtx.Cache.Invalidate(l.ctx, cache.KeyDashboardPrefix)
	return p, nil
}

// Stats 签名统计
func (l *ParticipantLogic) Stats(user *model.User, projectID uint) (*types.SignatureStats, error) {
	if _, err := accessibleProject(l.db(), user, projectID); err != nil {
		return nil, err
	}
	return signatureStats(l.db().Where("project_id = ?", projectID))
}

// signatureStats 按签名方式分组计数，scope 限定参与者范围
func signatureStats(scope *gorm.DB) (*types.SignatureStats, error) {
	var rows []struct {
		SignatureType string
		N             int64
	}
	err := scope.Model(&model.Participant{}).
		Select("signature_type, COUNT(*) AS n").
		Group("signature_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	stats := &types.SignatureStats{}
	for _, r := range rows {
		stats.Total += r.N
		switch r.SignatureType {
		case model.SignatureDigital:
			stats.Digital += r.N
		case model.SignatureAnalog:
			stats.Analog += r.N
		default:
			stats.Pending += r.N
		}
	}
	return stats, nil
}

func (l *ParticipantLogic) load(user *model.User, id uint) (*model.Participant, error) {
	p, err := findByID[model.Participant](l.db(), id, msgParticipantNotFound)
	if err != nil {
		return nil, err
	}
	if _, err := accessibleProject(l.db(), user, p.ProjectID); err != nil {
		return nil, err
	}
	return p, nil
}

func (l *ParticipantLogic) changed(user *model.User, action string, p *model.Participant) {
	l.svcCtx.Audit.Log(l.ctx, user.ID, action, audit.EntityParticipant, p.ID,
		utils.Trim(p.FirstName+" "+p.LastName))
	l.svcCtx.Cache.Invalidate(l.ctx, cache.KeyDashboardPrefix)
}

func applyParticipant(p *model.Participant, req *types.ParticipantRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = utils.Trim(*src)
		}
	}
	set(&p.FirstName, req.FirstName)
	set(&p.LastName, req.LastName)
	set(&p.Email, req.Email)
	set(&p.Position, req.Position)
	set(&p.Company, req.Company)
}
