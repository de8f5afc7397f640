package types

import (
	"github.com/PetA199003/GBU-Management/internal/risk"
)

// RiskAssessmentRequest 目录风险评估请求，nil 字段保持不变
type RiskAssessmentRequest struct {
	Activity         *string        `json:"activity"`
	Process          *string        `json:"process"`
	Hazard           *string        `json:"hazard"`
	HazardFactors    *string        `json:"hazard_factors"`
	Severity         *int           `json:"severity"`
	Probability      *int           `json:"probability"`
	Substitution     *bool          `json:"substitution"`
	Technical        *bool          `json:"technical"`
	Organizational   *bool          `json:"organizational"`
	Personal         *bool          `json:"personal"`
	Measures         *string        `json:"measures"`
	SeverityAfter    *int           `json:"severity_after"`
	ProbabilityAfter *int           `json:"probability_after"`
	Group            *string        `json:"group"`
	AutoSelect       *risk.Criteria `json:"auto_select"`
}

// HazardRequest 危害库请求
type HazardRequest struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	DefaultLikelihood int      `json:"default_likelihood"`
	DefaultSeverity   int      `json:"default_severity"`
	LegalRefs         []string `json:"legal_refs"`
}

// ControlMeasureRequest 防护措施请求
type ControlMeasureRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Type           string `json:"type"`
	HazardCategory string `json:"hazard_category"`
	Mandatory      bool   `json:"mandatory"`
}

// CriteriaCategoryRequest 条件定义请求
type CriteriaCategoryRequest struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// RiskMatrix 风险矩阵
type RiskMatrix struct {
	Bands []risk.Band   `json:"bands"`
	Cells [][]risk.Cell `json:"cells"`
}
