package model

import (
	"github.com/PetA199003/GBU-Management/common/types"
	"github.com/PetA199003/GBU-Management/internal/risk"
)

// 项目状态
const (
	ProjectStatusPlanung       = "planung"
	ProjectStatusAktiv         = "aktiv"
	ProjectStatusAbgeschlossen = "abgeschlossen"
	ProjectStatusArchiviert    = "archiviert"
)

// ProjectStatuses 全部状态
var ProjectStatuses = []string{ProjectStatusPlanung, ProjectStatusAktiv, ProjectStatusAbgeschlossen, ProjectStatusArchiviert}

// Project 项目/活动
type Project struct {
	BaseModel
	Name          string       `gorm:"size:255;not null" json:"name"`
	Description   string       `gorm:"type:text" json:"description"`
	Location      string       `gorm:"size:255" json:"location"`
	AufbauDatum   types.Date   `json:"aufbau_datum"`
	StartDate     types.Date   `gorm:"index" json:"start_date"`
	EndDate       types.Date   `gorm:"index" json:"end_date"`
	Season        risk.Season  `gorm:"size:16" json:"season"`
	IndoorOutdoor risk.Setting `gorm:"size:16" json:"indoor_outdoor"`
	Status        string       `gorm:"size:20;index;not null" json:"status"`
	CreatedBy     uint         `gorm:"index;not null" json:"created_by"`

	HasElectricity        bool            `json:"has_electricity"`
	HasGenerator          bool            `json:"has_generator"`
	HasWorkAbove2m        bool            `gorm:"column:has_work_above2m" json:"has_work_above_2m"`
	HasPublicAccess       bool            `json:"has_public_access"`
	HasNightWork          bool            `json:"has_night_work"`
	HasTrafficArea        bool            `json:"has_traffic_area"`
	HasHazardousMaterials bool            `json:"has_hazardous_materials"`
	CustomCriteria        map[string]bool `gorm:"serializer:json;type:text" json:"custom_criteria"`

	Creator *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

// Attributes 转换为自动选择使用的项目属性
func (p *Project) Attributes() risk.Attributes {
	return risk.Attributes{
		IsOutdoor:             p.IndoorOutdoor.IsOutdoor(),
		HasElectricity:        p.HasElectricity,
		HasGenerator:          p.HasGenerator,
		HasWorkAbove2m:        p.HasWorkAbove2m,
		HasPublicAccess:       p.HasPublicAccess,
		HasNightWork:          p.HasNightWork,
		HasTrafficArea:        p.HasTrafficArea,
		HasHazardousMaterials: p.HasHazardousMaterials,
		Season:                p.Season,
		Custom:                p.CustomCriteria,
	}
}

// ProjectAssignment 项目成员
type ProjectAssignment struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	ProjectID  uint           `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	UserID     uint           `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	AssignedBy uint           `gorm:"not null" json:"assigned_by"`
	AssignedAt types.DateTime `json:"assigned_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// ProjectHazard 项目选用的目录风险评估
type ProjectHazard struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	ProjectID        uint           `gorm:"uniqueIndex:idx_project_assessment;not null" json:"project_id"`
	RiskAssessmentID uint           `gorm:"uniqueIndex:idx_project_assessment;not null" json:"risk_assessment_id"`
	AutoSelected     bool           `json:"auto_selected"`
	AddedAt          types.DateTime `json:"added_at"`

	RiskAssessment *RiskAssessment `gorm:"foreignKey:RiskAssessmentID" json:"risk_assessment,omitempty"`
}
