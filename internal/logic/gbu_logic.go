package logic

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/PetA199003/GBU-Management/common/errorx"
	"github.com/PetA199003/GBU-Management/common/utils"
	"github.com/PetA199003/GBU-Management/internal/audit"
	"github.com/PetA199003/GBU-Management/internal/cache"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/risk"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	msgTemplateNotFound    = "Vorlage nicht gefunden"
	msgGefaehrdungNotFound = "Gefährdung nicht gefunden"
)

// GBULogic 危害评估模板与危害条目逻辑
type GBULogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// NewGBULogic 创建 GBU 逻辑
func NewGBULogic(ctx context.Context, svcCtx *svc.ServiceContext) *GBULogic {
	return &GBULogic{ctx: ctx, svcCtx: svcCtx}
}

func (l *GBULogic) db() *gorm.DB {
	return l.svcCtx.DB.WithContext(l.ctx)
}

// orderedGefaehrdungen 危害条目按排序号排列
func orderedGefaehrdungen(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order").Order("id")
}

// visibleTemplates 全局模板和自己创建的模板，管理员可见全部
func visibleTemplates(db *gorm.DB, user *model.User) *gorm.DB {
	if user.IsAdmin() {
		return db
	}
	return db.Where("(is_global = ? OR created_by = ?)", true, user.ID)
}

// ListTemplates 可见模板，季节和室内外条件同时匹配 alle
func (l *GBULogic) ListTemplates(user *model.User, req *types.TemplateListRequest) ([]types.TemplateSummary, error) {
	query := visibleTemplates(l.db(), user)
	if req.Season != "" {
		query = query.Where("season IN ?", []string{req.Season, string(risk.SeasonAlle)})
	}
	if req.IndoorOutdoor != "" {
		query = query.Where("indoor_outdoor IN ?", []string{req.IndoorOutdoor, string(risk.SettingAlle)})
	}
	var templates []model.GBUTemplate
	if err := query.Order("name").Find(&templates).Error; err != nil {
		return nil, err
	}

	var counts []struct {
		GBUTemplateID uint
		N             int64
	}
	if err := l.db().Model(&model.Gefaehrdung{}).
		Select("gbu_template_id, COUNT(*) AS n").
		Where("gbu_template_id IS NOT NULL").
		Group("gbu_template_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	byTemplate := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byTemplate[c.GBUTemplateID] = c.N
	}

	return utils.SliceMap(templates, func(_ int, t model.GBUTemplate) types.TemplateSummary {
		return types.TemplateSummary{GBUTemplate: t, GefaehrdungenCount: byTemplate[t.ID]}
	}), nil
}

// GetTemplate 模板及其危害条目，他人的私有模板视为不存在
func (l *GBULogic) GetTemplate(user *model.User, id uint) (*model.GBUTemplate, error) {
	var tpl model.GBUTemplate
	err := visibleTemplates(l.db(), user).Preload("Gefaehrdungen", orderedGefaehrdungen).First(&tpl, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.NotFound(msgTemplateNotFound)
	}
	if err != nil {
		return nil, err
	}
	if tpl.Gefaehrdungen == nil {
		tpl.Gefaehrdungen = make([]model.Gefaehrdung, 0)
	}
	return &tpl, nil
}

// CreateTemplate 创建模板
func (l *GBULogic) CreateTemplate(user *model.User, req *types.TemplateRequest) (*model.GBUTemplate, error) {
	if !user.CanEditProjects() {
		return nil, errorx.Forbidden("Keine Berechtigung zum Anlegen von Vorlagen")
	}
	tpl := &model.GBUTemplate{CreatedBy: user.ID}
	if err := applyTemplate(tpl, req); err != nil {
		return nil, err
	}
	if err := l.db().Omit(clause.Associations).Create(tpl).Error; err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionCreate, audit.EntityTemplate, tpl.ID,
		fmt.Sprintf("Vorlage angelegt: %s", tpl.Name))
	return tpl, nil
}

// UpdateTemplate 更新模板
func (l *GBULogic) UpdateTemplate(user *model.User, id uint, req *types.TemplateRequest) (*model.GBUTemplate, error) {
	tpl, err := findByID[model.GBUTemplate](l.db(), id, msgTemplateNotFound)
	if err != nil {
		return nil, err
	}
	if !user.CanEditProjects() && tpl.CreatedBy != user.ID {
		return nil, errorx.Forbidden("Keine Berechtigung zum Bearbeiten dieser Vorlage")
	}
	if err := applyTemplate(tpl, req); err != nil {
		return nil, err
	}
	if err := l.db().Omit(clause.Associations).Save(tpl).Error; err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionUpdate, audit.EntityTemplate, id, tpl.Name)
	return tpl, nil
}

// DeleteTemplate 删除模板、其危害条目和项目关联，仅管理员
func (l *GBULogic) DeleteTemplate(user *model.User, id uint) error {
	if !user.IsAdmin() {
		return errorx.Forbidden("Nur Administratoren dürfen Vorlagen löschen")
	}
	tpl, err := findByID[model.GBUTemplate](l.db(), id, msgTemplateNotFound)
	if err != nil {
		return err
	}
	err = l.db().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gbu_template_id = ?", id).Delete(&model.Gefaehrdung{}).Error; err != nil {
			return err
		}
		if err := tx.Where("gbu_template_id = ?", id).Delete(&model.ProjectGBU{}).Error; err != nil {
			return err
		}
		return tx.Delete(tpl).Error
	})
	if err != nil {
		return err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionDelete, audit.EntityTemplate, id, tpl.Name)
	return nil
}

func applyTemplate(tpl *model.GBUTemplate, req *types.TemplateRequest) error {
	tpl.Name = utils.Trim(req.Name)
	if tpl.Name == "" {
		return errorx.BadRequest("Name der Vorlage erforderlich")
	}
	tpl.Description = req.Description
	tpl.Season = req.Season
	if tpl.Season == "" {
		tpl.Season = risk.SeasonAlle
	}
	if !tpl.Season.Valid() && tpl.Season != risk.SeasonAlle {
		return errorx.BadRequest("Ungültige Saison: %s", tpl.Season)
	}
	tpl.IndoorOutdoor = req.IndoorOutdoor
	if tpl.IndoorOutdoor == "" {
		tpl.IndoorOutdoor = risk.SettingAlle
	}
	if !tpl.IndoorOutdoor.Valid() && tpl.IndoorOutdoor != risk.SettingAlle {
		return errorx.BadRequest("Ungültiger Wert für indoor_outdoor: %s", tpl.IndoorOutdoor)
	}
	if req.IsGlobal != nil {
		tpl.IsGlobal = *req.IsGlobal
	}
	return nil
}

// CreateGefaehrdung 创建危害条目，必须属于模板或项目之一
func (l *GBULogic) CreateGefaehrdung(user *model.User, req *types.GefaehrdungRequest) (*model.Gefaehrdung, error) {
	g := &model.Gefaehrdung{}
	if err := copier.CopyWithOption(g, req, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, err
	}
	if err := l.checkOwner(user, g); err != nil {
		return nil, err
	}
	if err := l.validateGefaehrdung(g); err != nil {
		return nil, err
	}
	if err := l.db().Omit(clause.Associations).Create(g).Error; err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionCreate, audit.EntityGefaehrdung, g.ID,
		fmt.Sprintf("Gefährdung angelegt: %s", g.Taetigkeit))
	l.invalidate(g)
	return g, nil
}

// UpdateGefaehrdung 更新危害条目，所属模板或项目不可修改
func (l *GBULogic) UpdateGefaehrdung(user *model.User, id uint, req *types.GefaehrdungRequest) (*model.Gefaehrdung, error) {
	g, err := findByID[model.Gefaehrdung](l.db(), id, msgGefaehrdungNotFound)
	if err != nil {
		return nil, err
	}
	if err := l.checkOwner(user, g); err != nil {
		return nil, err
	}
	templateID, projectID := g.GBUTemplateID, g.ProjectID
	if err := copier.CopyWithOption(g, req, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, err
	}
	g.GBUTemplateID, g.ProjectID = templateID, projectID
	if err := l.validateGefaehrdung(g); err != nil {
		return nil, err
	}
	if err := l.db().Omit(clause.Associations).Save(g).Error; err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionUpdate, audit.EntityGefaehrdung, id, g.Taetigkeit)
	l.invalidate(g)
	return g, nil
}

// DeleteGefaehrdung 删除危害条目
func (l *GBULogic) DeleteGefaehrdung(user *model.User, id uint) error {
	g, err := findByID[model.Gefaehrdung](l.db(), id, msgGefaehrdungNotFound)
	if err != nil {
		return err
	}
	if err := l.checkOwner(user, g); err != nil {
		return err
	}
	if err := l.db().Delete(g).Error; err != nil {
		return err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionDelete, audit.EntityGefaehrdung, id, g.Taetigkeit)
	l.invalidate(g)
	return nil
}

// checkOwner 项目条目需要项目访问权限，模板条目需要编辑角色或模板创建者
func (l *GBULogic) checkOwner(user *model.User, g *model.Gefaehrdung) error {
	switch {
	case g.ProjectID != nil && g.GBUTemplateID != nil:
		return errorx.BadRequest("Gefährdung kann nicht gleichzeitig zu Vorlage und Projekt gehören")
	case g.ProjectID != nil:
		_, err := accessibleProject(l.db(), user, *g.ProjectID)
		return err
	case g.GBUTemplateID != nil:
		tpl, err := findByID[model.GBUTemplate](l.db(), *g.GBUTemplateID, msgTemplateNotFound)
		if err != nil {
			return err
		}
		if !user.CanEditProjects() && tpl.CreatedBy != user.ID {
			return errorx.Forbidden("Keine Berechtigung zum Bearbeiten dieser Vorlage")
		}
		return nil
	default:
		return errorx.BadRequest("Vorlage oder Projekt erforderlich")
	}
}

func (l *GBULogic) validateGefaehrdung(g *model.Gefaehrdung) error {
	g.Taetigkeit = utils.Trim(g.Taetigkeit)
	if g.Taetigkeit == "" {
		return errorx.BadRequest("Tätigkeit erforderlich")
	}
	for _, f := range []model.StopFlag{g.SSubstitution, g.TTechnisch, g.OOrganisatorisch, g.PPersoenlich} {
		if !f.Valid() {
			return errorx.BadRequest("Ungültiger STOP-Wert: %s", f)
		}
	}
	if err := g.ApplyRisk(); err != nil {
		return errorx.Wrap(http.StatusBadRequest, err, "Ungültige Risikobewertung")
	}
	if g.BereichID != nil {
		if _, err := findByID[model.Bereich](l.db(), *g.BereichID, msgBereichNotFound); err != nil {
			return err
		}
	}
	return nil
}

func (l *GBULogic) invalidate(g *model.Gefaehrdung) {
	if g.ProjectID != nil {
		l.svcCtx.Cache.Invalidate(l.ctx, cache.KeyDashboardPrefix)
	}
}

// ProjectGBUs 项目关联的模板及项目自有的危害条目
func (l *GBULogic) ProjectGBUs(user *model.User, projectID uint) (*types.ProjectGBUs, error) {
	if _, err := accessibleProject(l.db(), user, projectID); err != nil {
		return nil, err
	}
	var links []model.ProjectGBU
	err := l.db().Preload("GBUTemplate").Preload("GBUTemplate.Gefaehrdungen", orderedGefaehrdungen).
		Where("project_id = ?", projectID).Order("id").Find(&links).Error
	if err != nil {
		return nil, err
	}

	out := &types.ProjectGBUs{
		Templates:     make([]model.GBUTemplate, 0, len(links)),
		Gefaehrdungen: make([]model.Gefaehrdung, 0),
	}
	for _, link := range links {
		if link.GBUTemplate != nil {
			out.Templates = append(out.Templates, *link.GBUTemplate)
		}
	}
	err = orderedGefaehrdungen(l.db().Preload("Bereich")).
		Where("project_id = ?", projectID).Find(&out.Gefaehrdungen).Error
	return out, err
}

// AddTemplate 将模板关联到项目
func (l *GBULogic) AddTemplate(user *model.User, projectID uint, req *types.AddTemplateRequest) (*model.ProjectGBU, error) {
	project, err := accessibleProject(l.db(), user, projectID)
	if err != nil {
		return nil, err
	}
	if req.ID() == 0 {
		return nil, errorx.BadRequest("Vorlagen-ID erforderlich")
	}
	tpl, err := findByID[model.GBUTemplate](visibleTemplates(l.db(), user), req.ID(), msgTemplateNotFound)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := l.db().Model(&model.ProjectGBU{}).
		Where("project_id = ? AND gbu_template_id = ?", projectID, tpl.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errorx.Conflict("Vorlage ist diesem Projekt bereits zugeordnet")
	}

	link := &model.ProjectGBU{
		ProjectID:     projectID,
		GBUTemplateID: tpl.ID,
		AddedBy:       user.ID,
		AddedAt:       now(),
	}
	if err := l.db().Omit(clause.Associations).Create(link).Error; err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionAssign, audit.EntityTemplate, tpl.ID,
		fmt.Sprintf("Vorlage %s zu Projekt %s hinzugefügt", tpl.Name, project.Name))
	return link, nil
}

// CopyTemplate 将模板的全部危害条目复制为项目自有条目
func (l *GBULogic) CopyTemplate(user *model.User, projectID, templateID uint) (*types.CopyTemplateResponse, error) {
	project, err := accessibleProject(l.db(), user, projectID)
	if err != nil {
		return nil, err
	}
	tpl, err := l.GetTemplate(user, templateID)
	if err != nil {
		return nil, err
	}

	copies := make([]model.Gefaehrdung, 0, len(tpl.Gefaehrdungen))
	for i := range tpl.Gefaehrdungen {
		var g model.Gefaehrdung
		if err := copier.Copy(&g, &tpl.Gefaehrdungen[i]); err != nil {
			return nil, err
		}
		g.BaseModel = model.BaseModel{}
		g.GBUTemplateID = nil
		g.ProjectID = &project.ID
		g.MaengelBehoben = false
		g.Bereich = nil
		copies = append(copies, g)
	}
	if len(copies) > 0 {
		if err := l.db().Omit(clause.Associations).Create(&copies).Error; err != nil {
			return nil, err
		}
	}

	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionCopyTemplate, audit.EntityProject, projectID,
		fmt.Sprintf("%d Gefährdungen aus Vorlage %s kopiert", len(copies), tpl.Name))
	l.svcCtx.Cache.Invalidate(l.ctx, cache.KeyDashboardPrefix)
	return &types.CopyTemplateResponse{CopiedCount: len(copies), Gefaehrdungen: copies}, nil
}
