package model

// Unterweisung 安全交底
type Unterweisung struct {
	BaseModel
	ProjectID          uint   `gorm:"index;not null" json:"project_id"`
	Title              string `gorm:"size:255" json:"title"`
	Content            string `gorm:"type:text" json:"content"`
	Veranstaltung      string `gorm:"size:255" json:"veranstaltung"`
	DatumOrt           string `gorm:"size:255" json:"datum_ort"`
	Organisation       string `gorm:"type:text" json:"organisation"`
	AllgemeineHinweise string `gorm:"type:text" json:"allgemeine_hinweise"`
	NotfaelleRaeumung  string `gorm:"type:text" json:"notfaelle_raeumung"`
	ZusaetzlicheRegeln string `gorm:"type:text" json:"zusaetzliche_regeln"`
	CreatedBy          uint   `gorm:"not null" json:"created_by"`

	Items []UnterweisungItem `gorm:"foreignKey:UnterweisungID" json:"items"`
}

// TableName 表名
func (Unterweisung) TableName() string {
	return "unterweisungen"
}

// UnterweisungItem 交底条目
type UnterweisungItem struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	UnterweisungID uint   `gorm:"index;not null" json:"unterweisung_id"`
	Section        string `gorm:"size:100" json:"section"`
	IconType       string `gorm:"size:50" json:"icon_type"`
	Content        string `gorm:"type:text" json:"content"`
	SortOrder      int    `json:"sort_order"`
}

// TableName 表名
func (UnterweisungItem) TableName() string {
	return "unterweisung_items"
}
