package logic

import (
	"context"
	"fmt"

	commonTypes "github.com/PetA199003/GBU-Management/common/types"
	"github.com/PetA199003/GBU-Management/internal/cache"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/risk"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"gorm.io/gorm"
)

const upcomingLimit = 5

// DashboardLogic 仪表盘统计
type DashboardLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// NewDashboardLogic 创建仪表盘逻辑
func NewDashboardLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DashboardLogic {
	return &DashboardLogic{ctx: ctx, svcCtx: svcCtx}
}

func (l *DashboardLogic) db() *gorm.DB {
	return l.svcCtx.DB.WithContext(l.ctx)
}

// Get 当前用户可见范围内的统计，按用户缓存
func (l *DashboardLogic) Get(user *model.User) (*types.Dashboard, error) {
	key := fmt.Sprintf("%s%d", cache.KeyDashboardPrefix, user.ID)
	return cache.Remember(l.ctx, l.svcCtx.Cache, key, l.svcCtx.DashboardTTL(), func() (*types.Dashboard, error) {
		return l.compute(user)
	})
}

// projects 用户可见的项目
func (l *DashboardLogic) projects(user *model.User) *gorm.DB {
	query := l.db().Model(&model.Project{})
	if !user.IsAdmin() {
		query = query.Where("id IN (?)", projectIDsFor(l.db(), user.ID))
	}
	return query
}

func (l *DashboardLogic) compute(user *model.User) (*types.Dashboard, error) {
	d := &types.Dashboard{
		ProjectsByStatus: make(map[string]int64, len(model.ProjectStatuses)),
		HazardsByBand:    make(map[string]int64, len(risk.Bands)),
		Upcoming:         make([]model.Project, 0),
	}
	for _, s := range model.ProjectStatuses {
		d.ProjectsByStatus[s] = 0
	}
	for _, b := range risk.Bands {
		d.HazardsByBand[string(b.Level)] = 0
	}

	var byStatus []struct {
		Status string
		N      int64
	}
	if err := l.projects(user).Select("status, COUNT(*) AS n").Group("status").Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		d.ProjectsByStatus[row.Status] = row.N
		d.TotalProjects += row.N
	}
	d.ActiveProjects = d.ProjectsByStatus[model.ProjectStatusAktiv]
	d.PlanningProjects = d.ProjectsByStatus[model.ProjectStatusPlanung]

	ids := l.projects(user).Select("id")
	stats, err := signatureStats(l.db().Where("project_id IN (?)", ids))
	if err != nil {
		return nil, err
	}
	d.Participants = *stats

	var scores []int
	if err := l.db().Model(&model.ProjectHazard{}).
		Joins("JOIN risk_assessments ON risk_assessments.id = project_hazards.risk_assessment_id").
		Where("project_hazards.project_id IN (?)", l.projects(user).Select("id")).
		Pluck("risk_assessments.risk_value", &scores).Error; err != nil {
		return nil, err
	}
	var own []int
	if err := l.db().Model(&model.Gefaehrdung{}).
		Where("risikowert > 0 AND project_id IN (?)", l.projects(user).Select("id")).
		Pluck("risikowert", &own).Error; err != nil {
		return nil, err
	}
	for _, score := range append(scores, own...) {
		d.HazardsByBand[string(risk.Classify(score).Level)]++
	}

	err = l.projects(user).
		Where("status IN ? AND start_date >= ?",
			[]string{model.ProjectStatusPlanung, model.ProjectStatusAktiv}, commonTypes.Today()).
		Order("start_date").Limit(upcomingLimit).
		Find(&d.Upcoming).Error
	return d, err
}
