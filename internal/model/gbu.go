package model

import (
	"github.com/PetA199003/GBU-Management/common/types"
	"github.com/PetA199003/GBU-Management/internal/risk"
)

// StopFlag STOP 原则勾选值
type StopFlag string

const (
	StopWahr   StopFlag = "WAHR"
	StopFalsch StopFlag = "FALSCH"
	StopLeer   StopFlag = ""
)

// Valid 是否为允许的取值
func (f StopFlag) Valid() bool {
	return f == StopWahr || f == StopFalsch || f == StopLeer
}

// Mark PDF/表格中的显示符号
func (f StopFlag) Mark() string {
	if f == StopWahr {
		return "X"
	}
	return ""
}

// GBUTemplate 危害评估模板
type GBUTemplate struct {
	BaseModel
	Name          string       `gorm:"size:255;not null" json:"name"`
	Description   string       `gorm:"type:text" json:"description"`
	Season        risk.Season  `gorm:"size:16;not null" json:"season"`
	IndoorOutdoor risk.Setting `gorm:"size:16;not null" json:"indoor_outdoor"`
	IsGlobal      bool         `json:"is_global"`
	CreatedBy     uint         `gorm:"not null" json:"created_by"`

	Gefaehrdungen []Gefaehrdung `gorm:"foreignKey:GBUTemplateID" json:"gefaehrdungen,omitempty"`
}

// TableName 表名
func (GBUTemplate) TableName() string {
	return "gbu_templates"
}

// Gefaehrdung 危害条目，属于模板或项目
type Gefaehrdung struct {
	BaseModel
	GBUTemplateID *uint `gorm:"column:gbu_template_id;index" json:"gbu_template_id"`
	ProjectID     *uint `gorm:"index" json:"project_id"`
	BereichID     *uint `gorm:"index" json:"bereich_id"`

	Taetigkeit           string `gorm:"size:255;not null" json:"tätigkeit"`
	Gefaehrdung          string `gorm:"column:gefaehrdung;type:text" json:"gefährdung"`
	Gefaehrdungsfaktoren string `gorm:"type:text" json:"gefährdungsfaktoren"`
	Belastungsfaktoren   string `gorm:"type:text" json:"belastungsfaktoren"`
	Schadenschwere       int    `json:"schadenschwere"`
	Wahrscheinlichkeit   int    `json:"wahrscheinlichkeit"`
	Risikowert           int    `json:"risikowert"`
	Risikobewertung      string `gorm:"size:50" json:"risikobewertung"`

	SSubstitution    StopFlag `gorm:"size:8" json:"s_substitution"`
	TTechnisch       StopFlag `gorm:"size:8" json:"t_technisch"`
	OOrganisatorisch StopFlag `gorm:"size:8" json:"o_organisatorisch"`
	PPersoenlich     StopFlag `gorm:"size:8" json:"p_persoenlich"`
	Massnahmen       string   `gorm:"type:text" json:"massnahmen"`
	SMassnahmen      string   `gorm:"type:text" json:"s_massnahmen"`
	TMassnahmen      string   `gorm:"type:text" json:"t_massnahmen"`
	OMassnahmen      string   `gorm:"type:text" json:"o_massnahmen"`
	PMassnahmen      string   `gorm:"type:text" json:"p_massnahmen"`

	UeberpruefungWirksamkeit string `gorm:"type:text" json:"überprüfung_wirksamkeit"`
	UeberpruefungMeldung     string `gorm:"type:text" json:"überprüfung_meldung"`
	SonstigeBemerkungen      string `gorm:"type:text" json:"sonstige_bemerkungen"`
	GesetzlicheRegelungen    string `gorm:"type:text" json:"gesetzliche_regelungen"`
	MaengelBehoben           bool   `json:"mängel_behoben"`
	SortOrder                int    `json:"sort_order"`

	Bereich *Bereich `gorm:"foreignKey:BereichID" json:"bereich,omitempty"`
}

// TableName 表名
func (Gefaehrdung) TableName() string {
	return "gefaehrdungen"
}

// ApplyRisk 两个评分都存在时重新计算风险值和等级
func (g *Gefaehrdung) ApplyRisk() error {
	if g.Schadenschwere == 0 || g.Wahrscheinlichkeit == 0 {
		g.Risikowert = 0
		g.Risikobewertung = ""
		return nil
	}
	score, band, err := risk.Assess(g.Schadenschwere, g.Wahrscheinlichkeit)
	if err != nil {
		return err
	}
	g.Risikowert = score
	g.Risikobewertung = band.Label
	return nil
}

// ProjectGBU 项目关联的模板
type ProjectGBU struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ProjectID     uint           `gorm:"uniqueIndex:idx_project_template;not null" json:"project_id"`
	GBUTemplateID uint           `gorm:"column:gbu_template_id;uniqueIndex:idx_project_template;not null" json:"gbu_template_id"`
	AddedBy       uint           `gorm:"not null" json:"added_by"`
	AddedAt       types.DateTime `json:"added_at"`

	GBUTemplate *GBUTemplate `gorm:"foreignKey:GBUTemplateID" json:"gbu_template,omitempty"`
}

// TableName 表名
func (ProjectGBU) TableName() string {
	return "project_gbus"
}
