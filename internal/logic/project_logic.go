package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/PetA199003/GBU-Management/common/errorx"
	commonTypes "github.com/PetA199003/GBU-Management/common/types"
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

// ProjectLogic 项目逻辑
type ProjectLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// NewProjectLogic 创建项目逻辑
func NewProjectLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ProjectLogic {
	return &ProjectLogic{ctx: ctx, svcCtx: svcCtx}
}

func (l *ProjectLogic) db() *gorm.DB {
	return l.svcCtx.DB.WithContext(l.ctx)
}

// List 管理员查看全部项目，其他用户只看自己创建或参与的项目
func (l *ProjectLogic) List(user *model.User, req *types.ProjectListRequest) ([]model.Project, int64, error) {
	req.Normalize()
	query := l.db().Model(&model.Project{})
	if !user.IsAdmin() {
		query = query.Where("id IN (?)", projectIDsFor(l.db(), user.ID))
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Season != "" {
		query = query.Where("season = ?", req.Season)
	}
	if kw := utils.Trim(req.Keyword); kw != "" {
		like := "%" + kw + "%"
		query = query.Where("name LIKE ? OR location LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	projects := make([]model.Project, 0)
	err := query.Preload("Creator").
		Order("start_date DESC").Order("id DESC").
		Offset(req.Offset()).Limit(req.PageSize).
		Find(&projects).Error
	return projects, total, err
}

// Get 项目详情，包含成员和区域负责人
func (l *ProjectLogic) Get(user *model.User, id uint) (*types.ProjectDetail, error) {
	project, err := accessibleProject(l.db(), user, id)
	if err != nil {
		return nil, err
	}
	var creator model.User
	if err := l.db().First(&creator, project.CreatedBy).Error; err == nil {
		project.Creator = &creator
	}

	detail := &types.ProjectDetail{
		Project:            project,
		Assignments:        make([]model.ProjectAssignment, 0),
		BereichAssignments: make([]model.BereichAssignment, 0),
	}
	if err := l.db().Preload("User").Where("project_id = ?", id).
		Order("id").Find(&detail.Assignments).Error; err != nil {
		return nil, err
	}
	if err := l.db().Preload("Bereich").Preload("Bereichsleiter").Where("project_id = ?", id).
		Order("id").Find(&detail.BereichAssignments).Error; err != nil {
		return nil, err
	}
	return detail, nil
}

// Create 创建项目，AutoSelect 为真时自动关联匹配的目录风险评估
func (l *ProjectLogic) Create(user *model.User, req *types.CreateProjectRequest) (*model.Project, error) {
	if !user.CanEditProjects() {
		return nil, errorx.Forbidden("Keine Berechtigung zum Anlegen von Projekten")
	}

	project := &model.Project{
		Name:          utils.Trim(req.Name),
		Description:   req.Description,
		Location:      req.Location,
		AufbauDatum:   req.AufbauDatum,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Season:        req.Season,
		IndoorOutdoor: req.IndoorOutdoor,
		Status:        req.Status,
		CreatedBy:     user.ID,
	}
	if err := copier.CopyWithOption(project, &req.ProjectAttributesRequest, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, err
	}
	if err := normalizeProject(project); err != nil {
		return nil, err
	}

	err := l.db().Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		if req.AutoSelect {
			if _, err := attachMatching(tx, project); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionCreate, audit.EntityProject, project.ID,
		fmt.Sprintf("Projekt angelegt: %s", project.Name))
	l.svcCtx.Cache.Invalidate(l.ctx, cache.KeyDashboardPrefix)
	return project, nil
}

// Update 更新项目，nil 字段保持不变
func (l *ProjectLogic) Update(user *model.User, id uint, req *types.UpdateProjectRequest) (*model.Project, error) {
	project, err := editableProject(l.db(), user, id)
	if err != nil {
		return nil, err
	}
	if err := copier.CopyWithOption(project, req, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, err
	}
	project.Name = utils.Trim(project.Name)
	if err := normalizeProject(project); err != nil {
		return nil, err
	}
	if err := l.db().Omit(clause.Associations).Save(project).Error; err != nil {
		return nil, err
	}

	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionUpdate, audit.EntityProject, project.ID,
		fmt.Sprintf("Projekt aktualisiert: %s", project.Name))
	l.svcCtx.Cache.Invalidate(l.ctx, cache.KeyDashboardPrefix)
	return project, nil
}

// Delete 删除项目及其全部从属数据，仅管理员
func (l *ProjectLogic) Delete(user *model.User, id uint) error {
	if !user.IsAdmin() {
		return errorx.Forbidden("Nur Administratoren dürfen Projekte löschen")
	}
	project, err := loadProject(l.db(), id)
	if err != nil {
		return err
	}

	err = l.db().Transaction(func(tx *gorm.DB) error {
		briefings := tx.Model(&model.Unterweisung{}).Select("id").Where("project_id = ?", id)
		steps := []struct {
			table any
			where string
			arg   any
		}{
			{&model.UnterweisungItem{}, "unterweisung_id IN (?)", briefings},
			{&model.Unterweisung{}, "project_id = ?", id},
			{&model.Participant{}, "project_id = ?", id},
			{&model.Gefaehrdung{}, "project_id = ?", id},
			{&model.ProjectGBU{}, "project_id = ?", id},
			{&model.BereichAssignment{}, "project_id = ?", id},
			{&model.ProjectHazard{}, "project_id = ?", id},
			{&model.ProjectAssignment{}, "project_id = ?", id},
		}
		for _, s := range steps {
			if err := tx.Where(s.where, s.arg).Delete(s.table).Error; err != nil {
				return err
			}
		}
		return tx.Delete(project).Error
	})
	if err != nil {
		return err
	}

	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionDelete, audit.EntityProject, id,
		fmt.Sprintf("Projekt gelöscht: %s", project.Name))
	l.svcCtx.Cache.Invalidate(l.ctx, cache.KeyDashboardPrefix)
	return nil
}

// Assign 分配项目成员
func (l *ProjectLogic) Assign(user *model.User, projectID uint, req *types.AssignUserRequest) (*model.ProjectAssignment, error) {
	if !user.CanEditProjects() {
		return nil, errorx.Forbidden("Keine Berechtigung zum Zuweisen von Benutzern")
	}
	project, err := loadProject(l.db(), projectID)
	if err != nil {
		return nil, err
	}
	if req.UserID == 0 {
		return nil, errorx.BadRequest("Benutzer-ID erforderlich")
	}
	target, err := findByID[model.User](l.db(), req.UserID, msgUserNotFound)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := l.db().Model(&model.ProjectAssignment{}).
		Where("project_id = ? AND user_id = ?", projectID, req.UserID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errorx.Conflict("Benutzer ist diesem Projekt bereits zugewiesen")
	}

	assignment := &model.ProjectAssignment{
		ProjectID:  projectID,
		UserID:     target.ID,
		AssignedBy: user.ID,
		AssignedAt: now(),
	}
	if err := l.db().Create(assignment).Error; err != nil {
		return nil, err
	}
	assignment.User = target

	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionAssign, audit.EntityProjectAssignment, assignment.ID,
		fmt.Sprintf("Benutzer %s dem Projekt %s zugewiesen", target.Username, project.Name))
	l.svcCtx.Cache.Invalidate(l.ctx, cache.KeyDashboardPrefix)
	return assignment, nil
}

// Assignments 项目成员列表
func (l *ProjectLogic) Assignments(user *model.User, projectID uint) ([]model.ProjectAssignment, error) {
	if _, err := accessibleProject(l.db(), user, projectID); err != nil {
		return nil, err
	}
	list := make([]model.ProjectAssignment, 0)
	err := l.db().Preload("User").Where("project_id = ?", projectID).Order("id").Find(&list).Error
	return list, err
}

// Unassign 移除项目成员
func (l *ProjectLogic) Unassign(user *model.User, projectID, userID uint) error {
	if !user.CanEditProjects() {
		return errorx.Forbidden("Keine Berechtigung zum Entfernen von Benutzern")
	}
	var assignment model.ProjectAssignment
	err := l.db().Where("project_id = ? AND user_id = ?", projectID, userID).First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.NotFound("Zuweisung nicht gefunden")
	}
	if err != nil {
		return err
	}
	if err := l.db().Delete(&assignment).Error; err != nil {
		return err
	}

	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionUnassign, audit.EntityProjectAssignment, assignment.ID,
		fmt.Sprintf("Benutzer %d aus Projekt %d entfernt", userID, projectID))
	l.svcCtx.Cache.Invalidate(l.ctx, cache.KeyDashboardPrefix)
	return nil
}

// AutoSelectPreview 与项目属性匹配的目录风险评估
func (l *ProjectLogic) AutoSelectPreview(user *model.User, projectID uint) ([]model.RiskAssessment, error) {
	project, err := accessibleProject(l.db(), user, projectID)
	if err != nil {
		return nil, err
	}
	return matchingAssessments(l.db(), project)
}

// SetHazards 用给定列表替换项目选用的目录风险评估，已存在的条目保留原有标记
func (l *ProjectLogic) SetHazards(user *model.User, projectID uint, req *types.IDsRequest) ([]types.ProjectHazardView, error) {
	if _, err := editableProject(l.db(), user, projectID); err != nil {
		return nil, err
	}
	ids := utils.SliceUnique(req.IDs)
	if len(ids) > 0 {
		var found int64
		if err := l.db().Model(&model.RiskAssessment{}).Where("id IN ?", ids).Count(&found).Error; err != nil {
			return nil, err
		}
		if found != int64(len(ids)) {
			return nil, errorx.BadRequest("Unbekannte Gefährdungsbeurteilung in der Auswahl")
		}
	}

	err := l.db().Transaction(func(tx *gorm.DB) error {
		var existing []model.ProjectHazard
		if err := tx.Where("project_id = ?", projectID).Find(&existing).Error; err != nil {
			return err
		}
		kept := make(map[uint]bool, len(existing))
		for _, ph := range existing {
			if utils.SliceContains(ids, ph.RiskAssessmentID) {
				kept[ph.RiskAssessmentID] = true
				continue
			}
			if err := tx.Delete(&model.ProjectHazard{}, ph.ID).Error; err != nil {
				return err
			}
		}
		for _, id := range ids {
			if kept[id] {
				continue
			}
			ph := &model.ProjectHazard{ProjectID: projectID, RiskAssessmentID: id, AddedAt: now()}
			if err := tx.Create(ph).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionUpdate, audit.EntityProjectHazard, projectID,
		fmt.Sprintf("%d Gefährdungen ausgewählt", len(ids)))
	l.svcCtx.Cache.Invalidate(l.ctx, cache.KeyDashboardPrefix)
	return projectHazardViews(l.db(), projectID)
}

// Hazards 项目选用的目录风险评估及其风险等级
func (l *ProjectLogic) Hazards(user *model.User, projectID uint) ([]types.ProjectHazardView, error) {
	if _, err := accessibleProject(l.db(), user, projectID); err != nil {
		return nil, err
	}
	return projectHazardViews(l.db(), projectID)
}

// AdvanceStatuses 按日期推进项目状态：开始日已到的计划项目变为进行中，结束日已过的进行中项目变为已完成
func (l *ProjectLogic) AdvanceStatuses(today commonTypes.Date) (activated, completed int64, err error) {
	res := l.db().Model(&model.Project{}).
		Where("status = ? AND start_date IS NOT NULL AND start_date <= ?", model.ProjectStatusPlanung, today).
		Updates(map[string]any{"status": model.ProjectStatusAktiv, "updated_at": now()})
	if res.Error != nil {
		return 0, 0, res.Error
	}
	activated = res.RowsAffected

	res = l.db().Model(&model.Project{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", model.ProjectStatusAktiv, today).
		Updates(map[string]any{"status": model.ProjectStatusAbgeschlossen, "updated_at": now()})
	if res.Error != nil {
		return activated, 0, res.Error
	}
	completed = res.RowsAffected

	if activated+completed > 0 {
		l.svcCtx.Cache.Invalidate(l.ctx, cache.KeyDashboardPrefix)
	}
	return activated, completed, nil
}

// normalizeProject 推导季节并校验字段
func normalizeProject(p *model.Project) error {
	if p.Name == "" {
		return errorx.BadRequest("Projektname erforderlich")
	}
	if p.Season == "" && !p.StartDate.IsZero() {
		p.Season = risk.SeasonOf(p.StartDate.Time())
	}
	if p.Season != "" && !p.Season.Valid() {
		return errorx.BadRequest("Ungültige Saison: %s", p.Season)
	}
	if p.IndoorOutdoor != "" && !p.IndoorOutdoor.Valid() {
		return errorx.BadRequest("Ungültiger Wert für indoor_outdoor: %s", p.IndoorOutdoor)
	}
	if p.Status == "" {
		p.Status = model.ProjectStatusPlanung
	}
	if !utils.SliceContains(model.ProjectStatuses, p.Status) {
		return errorx.BadRequest("Ungültiger Status: %s", p.Status)
	}
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate) {
		return errorx.BadRequest("Enddatum darf nicht vor dem Startdatum liegen")
	}
	return nil
}

// matchingAssessments 条件匹配项目属性的目录风险评估
func matchingAssessments(db *gorm.DB, project *model.Project) ([]model.RiskAssessment, error) {
	var catalog []model.RiskAssessment
	if err := db.Order("id").Find(&catalog).Error; err != nil {
		return nil, err
	}
	return risk.Select(catalog, func(r model.RiskAssessment) risk.Criteria {
		return r.AutoSelect
	}, project.Attributes()), nil
}

// attachMatching 将匹配的风险评估作为自动选择关联到项目，返回新增数量
func attachMatching(tx *gorm.DB, project *model.Project) (int, error) {
	matches, err := matchingAssessments(tx, project)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, ra := range matches {
		ph := &model.ProjectHazard{
			ProjectID:        project.ID,
			RiskAssessmentID: ra.ID,
			AutoSelected:     true,
			AddedAt:          now(),
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(ph)
		if res.Error != nil {
			return added, res.Error
		}
		added += int(res.RowsAffected)
	}
	return added, nil
}

// projectHazardViews 项目危害列表，按添加顺序
func projectHazardViews(db *gorm.DB, projectID uint) ([]types.ProjectHazardView, error) {
	var list []model.ProjectHazard
	err := db.Preload("RiskAssessment").
		Where("project_id = ?", projectID).Order("id").Find(&list).Error
	if err != nil {
		return nil, err
	}
	views := utils.SliceMap(list, func(_ int, ph model.ProjectHazard) types.ProjectHazardView {
		view := types.ProjectHazardView{ProjectHazard: ph}
		if ra := ph.RiskAssessment; ra != nil {
			view.RiskBand = risk.Classify(ra.RiskValue)
			if ra.ResidualRisk > 0 {
				view.ResidualBand = risk.Classify(ra.ResidualRisk)
			}
		}
		return view
	})
	return views, nil
}
