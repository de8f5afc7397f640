package logic

import (
	"context"
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
)

const (
	msgAssessmentNotFound = "Gefährdungsbeurteilung nicht gefunden"
	msgHazardNotFound     = "Gefährdung nicht gefunden"
	msgMeasureNotFound    = "Maßnahme nicht gefunden"
	msgCriteriaNotFound   = "Kriterium nicht gefunden"
	msgCatalogForbidden   = "Keine Berechtigung zum Bearbeiten des Katalogs"
)

// 条件定义取值
var (
	criteriaTypes      = []string{"boolean"}
	criteriaCategories = []string{"location", "project"}
	measureTypes       = []string{model.MeasureTechnisch, model.MeasureOrganisatorisch, model.MeasurePPE}
)

// CatalogLogic 危害目录逻辑
type CatalogLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// NewCatalogLogic 创建目录逻辑
func NewCatalogLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CatalogLogic {
	return &CatalogLogic{ctx: ctx, svcCtx: svcCtx}
}

func (l *CatalogLogic) db() *gorm.DB {
	return l.svcCtx.DB.WithContext(l.ctx)
}

func (l *CatalogLogic) requireEditor(user *model.User) error {
	if !user.CanEditProjects() {
		return errorx.Forbidden(msgCatalogForbidden)
	}
	return nil
}

// RiskMatrix 5×5 风险矩阵
func (l *CatalogLogic) RiskMatrix() *types.RiskMatrix {
	return &types.RiskMatrix{Bands: risk.Bands, Cells: risk.Matrix()}
}

// ListAssessments 目录风险评估，按分组和活动排列
func (l *CatalogLogic) ListAssessments() ([]model.RiskAssessment, error) {
	return cache.Remember(l.ctx, l.svcCtx.Cache, cache.KeyCatalogAssessments, l.svcCtx.CatalogTTL(),
		func() ([]model.RiskAssessment, error) {
			list := make([]model.RiskAssessment, 0)
			err := l.db().Order("group_name").Order("activity").Find(&list).Error
			return list, err
		})
}

// GetAssessment 目录风险评估详情
func (l *CatalogLogic) GetAssessment(id uint) (*model.RiskAssessment, error) {
	return findByID[model.RiskAssessment](l.db(), id, msgAssessmentNotFound)
}

// CreateAssessment 创建目录风险评估
func (l *CatalogLogic) CreateAssessment(user *model.User, req *types.RiskAssessmentRequest) (*model.RiskAssessment, error) {
	if err := l.requireEditor(user); err != nil {
		return nil, err
	}
	ra := &model.RiskAssessment{}
	if err := copier.CopyWithOption(ra, req, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, err
	}
	if err := validateAssessment(ra); err != nil {
		return nil, err
	}
	if err := l.db().Create(ra).Error; err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionCreate, audit.EntityRiskAssessment, ra.ID, ra.Activity)
	l.invalidateAssessments()
	return ra, nil
}

// UpdateAssessment 更新目录风险评估，nil 字段保持不变
func (l *CatalogLogic) UpdateAssessment(user *model.User, id uint, req *types.RiskAssessmentRequest) (*model.RiskAssessment, error) {
	if err := l.requireEditor(user); err != nil {
		return nil, err
	}
	ra, err := l.GetAssessment(id)
	if err != nil {
		return nil, err
	}
	if err := copier.CopyWithOption(ra, req, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, err
	}
	if err := validateAssessment(ra); err != nil {
		return nil, err
	}
	if err := l.db().Save(ra).Error; err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionUpdate, audit.EntityRiskAssessment, id, ra.Activity)
	l.invalidateAssessments()
	return ra, nil
}

// DeleteAssessment 删除目录风险评估及其项目关联
func (l *CatalogLogic) DeleteAssessment(user *model.User, id uint) error {
	if err := l.requireEditor(user); err != nil {
		return err
	}
	ra, err := l.GetAssessment(id)
	if err != nil {
		return err
	}
	err = l.db().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("risk_assessment_id = ?", id).Delete(&model.ProjectHazard{}).Error; err != nil {
			return err
		}
		return tx.Delete(ra).Error
	})
	if err != nil {
		return err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionDelete, audit.EntityRiskAssessment, id, ra.Activity)
	l.invalidateAssessments()
	return nil
}

func (l *CatalogLogic) invalidateAssessments() {
	l.svcCtx.Cache.Invalidate(l.ctx, cache.KeyCatalogAssessments, cache.KeyDashboardPrefix)
}

func validateAssessment(ra *model.RiskAssessment) error {
	ra.Activity = utils.Trim(ra.Activity)
	if ra.Activity == "" {
		return errorx.BadRequest("Tätigkeit erforderlich")
	}
	if err := ra.ApplyRisk(); err != nil {
		return errorx.Wrap(http.StatusBadRequest, err, "Ungültige Risikobewertung")
	}
	for _, s := range ra.AutoSelect.Seasons {
		if !s.Valid() && s != risk.SeasonAlle {
			return errorx.BadRequest("Ungültige Saison im Auswahlkriterium: %s", s)
		}
	}
	return nil
}

// ListHazards 危害库，category 为空时返回全部
func (l *CatalogLogic) ListHazards(category string) ([]model.Hazard, error) {
	load := func() ([]model.Hazard, error) {
		list := make([]model.Hazard, 0)
		query := l.db().Order("category").Order("name")
		if category != "" {
			query = query.Where("category = ?", category)
		}
		err := query.Find(&list).Error
		return list, err
	}
	if category != "" {
		return load()
	}
	return cache.Remember(l.ctx, l.svcCtx.Cache, cache.KeyCatalogHazards, l.svcCtx.CatalogTTL(), load)
}

// GetHazard 危害详情
func (l *CatalogLogic) GetHazard(id uint) (*model.Hazard, error) {
	return findByID[model.Hazard](l.db(), id, msgHazardNotFound)
}

// SaveHazard id 为 0 时创建，否则更新
func (l *CatalogLogic) SaveHazard(user *model.User, id uint, req *types.HazardRequest) (*model.Hazard, error) {
	if err := l.requireEditor(user); err != nil {
		return nil, err
	}
	hazard := &model.Hazard{}
	action := audit.ActionCreate
	if id != 0 {
		var err error
		if hazard, err = l.GetHazard(id); err != nil {
			return nil, err
		}
		action = audit.ActionUpdate
	}

	hazard.Name = utils.Trim(req.Name)
	hazard.Description = req.Description
	hazard.Category = req.Category
	hazard.DefaultLikelihood = req.DefaultLikelihood
	hazard.DefaultSeverity = req.DefaultSeverity
	hazard.LegalRefs = req.LegalRefs
	if hazard.LegalRefs == nil {
		hazard.LegalRefs = []string{}
	}
	if hazard.Name == "" {
		return nil, errorx.BadRequest("Name erforderlich")
	}
	if !utils.SliceContains(model.HazardCategories, hazard.Category) {
		return nil, errorx.BadRequest("Ungültige Kategorie: %s", hazard.Category)
	}
	for _, v := range []int{hazard.DefaultLikelihood, hazard.DefaultSeverity} {
		if v != 0 && !risk.ValidScale(v) {
			return nil, errorx.BadRequest("Bewertung %d außerhalb 1..5", v)
		}
	}

	if err := l.db().Save(hazard).Error; err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, action, audit.EntityHazard, hazard.ID, hazard.Name)
	l.svcCtx.Cache.Invalidate(l.ctx, cache.KeyCatalogHazards)
	return hazard, nil
}

// DeleteHazard 删除危害
func (l *CatalogLogic) DeleteHazard(user *model.User, id uint) error {
	if err := l.requireEditor(user); err != nil {
		return err
	}
	hazard, err := l.GetHazard(id)
	if err != nil {
		return err
	}
	if err := l.db().Delete(hazard).Error; err != nil {
		return err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionDelete, audit.EntityHazard, id, hazard.Name)
	l.svcCtx.Cache.Invalidate(l.ctx, cache.KeyCatalogHazards)
	return nil
}

// ListMeasures 防护措施，可按危害类别筛选，强制措施在前
func (l *CatalogLogic) ListMeasures(category string) ([]model.ControlMeasure, error) {
	list := make([]model.ControlMeasure, 0)
	query := l.db().Order("mandatory DESC").Order("name")
	if category != "" {
		query = query.Where("hazard_category = ?", category)
	}
	err := query.Find(&list).Error
	return list, err
}

// SaveMeasure id 为 0 时创建，否则更新
func (l *CatalogLogic) SaveMeasure(user *model.User, id uint, req *types.ControlMeasureRequest) (*model.ControlMeasure, error) {
	if err := l.requireEditor(user); err != nil {
		return nil, err
	}
	measure := &model.ControlMeasure{}
	action := audit.ActionCreate
	if id != 0 {
		var err error
		if measure, err = findByID[model.ControlMeasure](l.db(), id, msgMeasureNotFound); err != nil {
			return nil, err
		}
		action = audit.ActionUpdate
	}
	if err := copier.Copy(measure, req); err != nil {
		return nil, err
	}
	measure.Name = utils.Trim(measure.Name)
	if measure.Name == "" {
		return nil, errorx.BadRequest("Name erforderlich")
	}
	if !utils.SliceContains(measureTypes, measure.Type) {
		return nil, errorx.BadRequest("Ungültiger Maßnahmentyp: %s", measure.Type)
	}
	if measure.HazardCategory != "" && !utils.SliceContains(model.HazardCategories, measure.HazardCategory) {
		return nil, errorx.BadRequest("Ungültige Kategorie: %s", measure.HazardCategory)
	}
	if err := l.db().Save(measure).Error; err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, action, audit.EntityMeasure, measure.ID, measure.Name)
	return measure, nil
}

// DeleteMeasure 删除防护措施
func (l *CatalogLogic) DeleteMeasure(user *model.User, id uint) error {
	if err := l.requireEditor(user); err != nil {
		return err
	}
	measure, err := findByID[model.ControlMeasure](l.db(), id, msgMeasureNotFound)
	if err != nil {
		return err
	}
	if err := l.db().Delete(measure).Error; err != nil {
		return err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionDelete, audit.EntityMeasure, id, measure.Name)
	return nil
}

// ListCriteria 条件定义
func (l *CatalogLogic) ListCriteria() ([]model.CriteriaCategory, error) {
	list := make([]model.CriteriaCategory, 0)
	err := l.db().Order("category").Order("name").Find(&list).Error
	return list, err
}

// SaveCriteria id 为 0 时创建，否则更新，key 唯一
func (l *CatalogLogic) SaveCriteria(user *model.User, id uint, req *types.CriteriaCategoryRequest) (*model.CriteriaCategory, error) {
	if err := l.requireEditor(user); err != nil {
		return nil, err
	}
	criteria := &model.CriteriaCategory{}
	action := audit.ActionCreate
	if id != 0 {
		var err error
		if criteria, err = findByID[model.CriteriaCategory](l.db(), id, msgCriteriaNotFound); err != nil {
			return nil, err
		}
		action = audit.ActionUpdate
	}
	if err := copier.Copy(criteria, req); err != nil {
		return nil, err
	}
	criteria.Key = utils.Trim(criteria.Key)
	criteria.Name = utils.Trim(criteria.Name)
	if criteria.Type == "" {
		criteria.Type = criteriaTypes[0]
	}
	switch {
	case criteria.Key == "" || criteria.Name == "":
		return nil, errorx.BadRequest("Schlüssel und Name erforderlich")
	case !utils.SliceContains(criteriaTypes, criteria.Type):
		return nil, errorx.BadRequest("Ungültiger Typ: %s", criteria.Type)
	case !utils.SliceContains(criteriaCategories, criteria.Category):
		return nil, errorx.BadRequest("Ungültige Kategorie: %s", criteria.Category)
	}

	var count int64
	if err := l.db().Model(&model.CriteriaCategory{}).
		Where(map[string]any{"key": criteria.Key}).Where("id <> ?", criteria.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errorx.Conflict("Kriterium %s existiert bereits", criteria.Key)
	}

	if err := l.db().Save(criteria).Error; err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, action, audit.EntityCriteria, criteria.ID,
		fmt.Sprintf("%s (%s)", criteria.Name, criteria.Key))
	return criteria, nil
}

// DeleteCriteria 删除条件定义
func (l *CatalogLogic) DeleteCriteria(user *model.User, id uint) error {
	if err := l.requireEditor(user); err != nil {
		return err
	}
	criteria, err := findByID[model.CriteriaCategory](l.db(), id, msgCriteriaNotFound)
	if err != nil {
		return err
	}
	if err := l.db().Delete(criteria).Error; err != nil {
		return err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionDelete, audit.EntityCriteria, id, criteria.Key)
	return nil
}
