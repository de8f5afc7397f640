package model

import "github.com/PetA199003/GBU-Management/internal/risk"

// RiskAssessment 全局风险评估目录条目
type RiskAssessment struct {
	BaseModel
	Activity         string        `gorm:"size:255;not null" json:"activity"`
	Process          string        `gorm:"size:255" json:"process"`
	Hazard           string        `gorm:"size:255" json:"hazard"`
	HazardFactors    string        `gorm:"type:text" json:"hazard_factors"`
	Severity         int           `json:"severity"`
	Probability      int           `json:"probability"`
	RiskValue        int           `json:"risk_value"`
	RiskLevel        risk.Level    `gorm:"size:16" json:"risk_level"`
	Substitution     bool          `json:"substitution"`
	Technical        bool          `json:"technical"`
	Organizational   bool          `json:"organizational"`
	Personal         bool          `json:"personal"`
	Measures         string        `gorm:"type:text" json:"measures"`
	SeverityAfter    int           `json:"severity_after"`
	ProbabilityAfter int           `json:"probability_after"`
	ResidualRisk     int           `json:"residual_risk"`
	ResidualLevel    risk.Level    `gorm:"size:16" json:"residual_level"`
	Group            string        `gorm:"column:group_name;size:100;index" json:"group"`
	AutoSelect       risk.Criteria `gorm:"serializer:json;type:text" json:"auto_select"`
}

// ApplyRisk 计算风险值和残余风险
func (r *RiskAssessment) ApplyRisk() error {
	score, band, err := risk.Assess(r.Severity, r.Probability)
	if err != nil {
		return err
	}
	r.RiskValue, r.RiskLevel = score, band.Level

	if r.SeverityAfter == 0 && r.ProbabilityAfter == 0 {
		r.ResidualRisk, r.ResidualLevel = 0, ""
		return nil
	}
	residual, rband, err := risk.Assess(r.SeverityAfter, r.ProbabilityAfter)
	if err != nil {
		return err
	}
	r.ResidualRisk, r.ResidualLevel = residual, rband.Level
	return nil
}

// 危害类别
const (
	HazardElektrik   = "ELEKTRIK"
	HazardHoehe      = "HOEHE"
	HazardWetter     = "WETTER"
	HazardChemisch   = "CHEMISCH"
	HazardVerkehr    = "VERKEHR"
	HazardLaerm      = "LAERM"
	HazardBrand      = "BRAND"
	HazardMechanisch = "MECHANISCH"
)

// HazardCategories 全部危害类别
var HazardCategories = []string{
	HazardElektrik, HazardHoehe, HazardWetter, HazardChemisch,
	HazardVerkehr, HazardLaerm, HazardBrand, HazardMechanisch,
}

// Hazard 危害库条目
type Hazard struct {
	BaseModel
	Name              string   `gorm:"size:255;not null" json:"name"`
	Description       string   `gorm:"type:text" json:"description"`
	Category          string   `gorm:"size:32;index;not null" json:"category"`
	DefaultLikelihood int      `json:"default_likelihood"`
	DefaultSeverity   int      `json:"default_severity"`
	LegalRefs         []string `gorm:"serializer:json;type:text" json:"legal_refs"`
}

// 措施类型
const (
	MeasureTechnisch       = "TECHNISCH"
	MeasureOrganisatorisch = "ORGANISATORISCH"
	MeasurePPE             = "PPE"
)

// ControlMeasure 防护措施
type ControlMeasure struct {
	BaseModel
	Name           string `gorm:"size:255;not null" json:"name"`
	Description    string `gorm:"type:text" json:"description"`
	Type           string `gorm:"size:32;not null" json:"type"`
	HazardCategory string `gorm:"size:32;index" json:"hazard_category"`
	Mandatory      bool   `json:"mandatory"`
}

// CriteriaCategory 自动选择条件定义
type CriteriaCategory struct {
	BaseModel
	Key         string `gorm:"size:64;uniqueIndex;not null" json:"key"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Type        string `gorm:"size:16;not null" json:"type"`     // boolean
	Category    string `gorm:"size:16;not null" json:"category"` // location, project
	Description string `gorm:"type:text" json:"description"`
}

// TableName 表名
func (CriteriaCategory) TableName() string {
	return "criteria_categories"
}
