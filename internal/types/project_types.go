package types

import (
	commonTypes "github.com/PetA199003/GBU-Management/common/types"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/risk"
)

// ProjectAttributesRequest 自动选择相关的项目属性
type ProjectAttributesRequest struct {
	HasElectricity        *bool           `json:"has_electricity"`
	HasGenerator          *bool           `json:"has_generator"`
	HasWorkAbove2m        *bool           `json:"has_work_above_2m"`
	HasPublicAccess       *bool           `json:"has_public_access"`
	HasNightWork          *bool           `json:"has_night_work"`
	HasTrafficArea        *bool           `json:"has_traffic_area"`
	HasHazardousMaterials *bool           `json:"has_hazardous_materials"`
	CustomCriteria        map[string]bool `json:"custom_criteria"`
}

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Location      string           `json:"location"`
	AufbauDatum   commonTypes.Date `json:"aufbau_datum"`
	StartDate     commonTypes.Date `json:"start_date"`
	EndDate       commonTypes.Date `json:"end_date"`
	Season        risk.Season      `json:"season"`
	IndoorOutdoor risk.Setting     `json:"indoor_outdoor"`
	Status        string           `json:"status"`
	AutoSelect    bool             `json:"auto_select"`
	ProjectAttributesRequest
}

// UpdateProjectRequest 更新项目请求，nil 字段保持不变
type UpdateProjectRequest struct {
	Name          *string           `json:"name"`
	Description   *string           `json:"description"`
	Location      *string           `json:"location"`
	AufbauDatum   *commonTypes.Date `json:"aufbau_datum"`
	StartDate     *commonTypes.Date `json:"start_date"`
	EndDate       *commonTypes.Date `json:"end_date"`
	Season        *risk.Season      `json:"season"`
	IndoorOutdoor *risk.Setting     `json:"indoor_outdoor"`
	Status        *string           `json:"status"`
	ProjectAttributesRequest
}

// ProjectListRequest 项目列表请求
type ProjectListRequest struct {
	PageRequest
	Status  string `query:"status"`
	Season  string `query:"season"`
	Keyword string `query:"keyword"`
}

// AssignUserRequest 分配项目成员请求
type AssignUserRequest struct {
	UserID uint `json:"user_id"`
}

// ProjectDetail 项目详情
type ProjectDetail struct {
	*model.Project
	Assignments        []model.ProjectAssignment `json:"assignments"`
	BereichAssignments []model.BereichAssignment `json:"bereich_assignments"`
}

// ProjectHazardView 项目危害及其风险等级
type ProjectHazardView struct {
	model.ProjectHazard
	RiskBand     risk.Band `json:"risk_band"`
	ResidualBand risk.Band `json:"residual_band"`
}
