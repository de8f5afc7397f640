package types

// UnterweisungItemRequest 交底条目
type UnterweisungItemRequest struct {
	Section   string `json:"section"`
	IconType  string `json:"icon_type"`
	Content   string `json:"content"`
	SortOrder int    `json:"sort_order"`
}

// UnterweisungRequest 创建/更新交底请求，Items 为 nil 时不修改条目
type UnterweisungRequest struct {
	ProjectID          uint                       `json:"project_id"`
	Title              *string                    `json:"title"`
	Content            *string                    `json:"content"`
	Veranstaltung      *string                    `json:"veranstaltung"`
	DatumOrt           *string                    `json:"datum_ort"`
	Organisation       *string                    `json:"organisation"`
	AllgemeineHinweise *string                    `json:"allgemeine_hinweise"`
	NotfaelleRaeumung  *string                    `json:"notfaelle_raeumung"`
	ZusaetzlicheRegeln *string                    `json:"zusaetzliche_regeln"`
	Items              *[]UnterweisungItemRequest `json:"items"`
}
