package logic

import (
	"context"
	"strconv"
	"time"

	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/report"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"gorm.io/gorm"
)

// ReportLogic 报表导出逻辑
type ReportLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// NewReportLogic 创建报表逻辑
func NewReportLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ReportLogic {
	return &ReportLogic{ctx: ctx, svcCtx: svcCtx}
}

func (l *ReportLogic) db() *gorm.DB {
	return l.svcCtx.DB.WithContext(l.ctx)
}

// gbuReport 项目危害条目按区域分组，区域按排序号排列，未分配区域的放在最后
func (l *ReportLogic) gbuReport(user *model.User, projectID uint) (*report.GBUReport, error) {
	project, err := accessibleProject(l.db(), user, projectID)
	if err != nil {
		return nil, err
	}
	list := make([]model.Gefaehrdung, 0)
	if err := orderedGefaehrdungen(l.db().Preload("Bereich")).
		Where("project_id = ?", projectID).Find(&list).Error; err != nil {
		return nil, err
	}
	bereiche := make([]model.Bereich, 0)
	if err := l.db().Order("sort_order").Order("name").Find(&bereiche).Error; err != nil {
		return nil, err
	}

	grouped := make(map[uint][]model.Gefaehrdung)
	var other []model.Gefaehrdung
	for _, g := range list {
		if g.BereichID == nil || g.Bereich == nil {
			other = append(other, g)
			continue
		}
		grouped[*g.BereichID] = append(grouped[*g.BereichID], g)
	}

	r := &report.GBUReport{Project: project, Sections: make([]report.Section, 0, len(grouped)+1)}
	for _, b := range bereiche {
		if items, ok := grouped[b.ID]; ok {
			r.Sections = append(r.Sections, report.Section{Bereich: b.Name, Gefaehrdungen: items})
		}
	}
	if len(other) > 0 {
		r.Sections = append(r.Sections, report.Section{Bereich: report.SonstigeBereich, Gefaehrdungen: other})
	}
	return r, nil
}

// GBUPDF 项目危害评估 PDF
func (l *ReportLogic) GBUPDF(user *model.User, projectID uint) (*types.FileResult, error) {
	r, err := l.gbuReport(user, projectID)
	if err != nil {
		return nil, err
	}
	data, err := report.GBUPDF(r)
	if err != nil {
		return nil, err
	}
	return &types.FileResult{
		FileName:    report.FileName("GBU", r.Project.Name, "pdf"),
		ContentType: types.ContentTypePDF,
		Data:        data,
	}, nil
}

// GBUXLSX 项目危害评估 Excel
func (l *ReportLogic) GBUXLSX(user *model.User, projectID uint) (*types.FileResult, error) {
	r, err := l.gbuReport(user, projectID)
	if err != nil {
		return nil, err
	}
	data, err := report.GBUXLSX(r)
	if err != nil {
		return nil, err
	}
	return &types.FileResult{
		FileName:    report.FileName("GBU", r.Project.Name, "xlsx"),
		ContentType: types.ContentTypeXLSX,
		Data:        data,
	}, nil
}

// ParticipantsPDF 签到表
func (l *ReportLogic) ParticipantsPDF(user *model.User, projectID uint) (*types.FileResult, error) {
	project, err := accessibleProject(l.db(), user, projectID)
	if err != nil {
		return nil, err
	}
	participants, err := projectParticipants(l.db(), projectID)
	if err != nil {
		return nil, err
	}
	data, err := report.ParticipantsPDF(project, participants)
	if err != nil {
		return nil, err
	}
	return &types.FileResult{
		FileName:    report.FileName("Teilnehmerliste", project.Name, "pdf"),
		ContentType: types.ContentTypePDF,
		Data:        data,
	}, nil
}

// UnterweisungPDF 安全交底 PDF
func (l *ReportLogic) UnterweisungPDF(user *model.User, id uint) (*types.FileResult, error) {
	u, err := loadUnterweisung(l.db(), id)
	if err != nil {
		return nil, err
	}
	project, err := accessibleProject(l.db(), user, u.ProjectID)
	if err != nil {
		return nil, err
	}
	data, err := report.UnterweisungPDF(u, time.Now())
	if err != nil {
		return nil, err
	}
	name := project.Name
	if name == "" {
		name = strconv.FormatUint(uint64(id), 10)
	}
	return &types.FileResult{
		FileName:    report.FileName("Unterweisung", name, "pdf"),
		ContentType: types.ContentTypePDF,
		Data:        data,
	}, nil
}
