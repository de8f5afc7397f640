package types

import (
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/risk"
)

// TemplateListRequest 模板筛选
type TemplateListRequest struct {
	Season        string `query:"season"`
	IndoorOutdoor string `query:"indoor_outdoor"`
}

// TemplateRequest 创建/更新模板请求
type TemplateRequest struct {
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Season        risk.Season  `json:"season"`
	IndoorOutdoor risk.Setting `json:"indoor_outdoor"`
	IsGlobal      *bool        `json:"is_global"`
}

// TemplateSummary 模板及危害数量
type TemplateSummary struct {
	model.GBUTemplate
	GefaehrdungenCount int64 `json:"gefaehrdungen_count"`
}

// GefaehrdungRequest 创建/更新危害条目请求，nil 字段保持不变
type GefaehrdungRequest struct {
	GBUTemplateID *uint `json:"gbu_template_id"`
	ProjectID     *uint `json:"project_id"`
	BereichID     *uint `json:"bereich_id"`

	Taetigkeit           *string `json:"tätigkeit"`
	Gefaehrdung          *string `json:"gefährdung"`
	Gefaehrdungsfaktoren *string `json:"gefährdungsfaktoren"`
	Belastungsfaktoren   *string `json:"belastungsfaktoren"`
	Schadenschwere       *int    `json:"schadenschwere"`
	Wahrscheinlichkeit   *int    `json:"wahrscheinlichkeit"`

	SSubstitution    *model.StopFlag `json:"s_substitution"`
	TTechnisch       *model.StopFlag `json:"t_technisch"`
	OOrganisatorisch *model.StopFlag `json:"o_organisatorisch"`
	PPersoenlich     *model.StopFlag `json:"p_persoenlich"`
	Massnahmen       *string         `json:"massnahmen"`
	SMassnahmen      *string         `json:"s_massnahmen"`
	TMassnahmen      *string         `json:"t_massnahmen"`
	OMassnahmen      *string         `json:"o_massnahmen"`
	PMassnahmen      *string         `json:"p_massnahmen"`

	UeberpruefungWirksamkeit *string `json:"überprüfung_wirksamkeit"`
	UeberpruefungMeldung     *string `json:"überprüfung_meldung"`
	SonstigeBemerkungen      *string `json:"sonstige_bemerkungen"`
	GesetzlicheRegelungen    *string `json:"gesetzliche_regelungen"`
	MaengelBehoben           *bool   `json:"mängel_behoben"`
	SortOrder                *int    `json:"sort_order"`
}

// AddTemplateRequest 项目添加模板请求，两个字段任选其一
type AddTemplateRequest struct {
	GBUTemplateID uint `json:"gbu_template_id"`
	TemplateID    uint `json:"template_id"`
}

// ID 模板 ID
func (r *AddTemplateRequest) ID() uint {
	if r.GBUTemplateID != 0 {
		return r.GBUTemplateID
	}
	return r.TemplateID
}

// ProjectGBUs 项目的模板与自有危害
type ProjectGBUs struct {
	Templates     []model.GBUTemplate `json:"templates"`
	Gefaehrdungen []model.Gefaehrdung `json:"project_gefaehrdungen"`
}

// CopyTemplateResponse 复制模板结果
type CopyTemplateResponse struct {
	CopiedCount   int                 `json:"copied_count"`
	Gefaehrdungen []model.Gefaehrdung `json:"gefaehrdungen"`
}
