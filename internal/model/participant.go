package model

import "github.com/PetA199003/GBU-Management/common/types"

// 签名方式
const (
	SignatureDigital = "digital"
	SignatureAnalog  = "analog"
	SignaturePending = "pending"
)

// Participant 参与者
type Participant struct {
	BaseModel
	ProjectID       uint            `gorm:"index;not null" json:"project_id"`
	FirstName       string          `gorm:"size:100" json:"first_name"`
	LastName        string          `gorm:"size:100" json:"last_name"`
	Email           string          `gorm:"size:255" json:"email"`
	Position        string          `gorm:"size:100" json:"position"`
	Company         string          `gorm:"size:255" json:"company"`
	SignatureData   string          `gorm:"type:text" json:"-"`
	SignatureType   string          `gorm:"size:16;not null" json:"signature_type"`
	SignedAt        *types.DateTime `json:"signed_at"`
	ImportedFromCSV bool            `gorm:"column:imported_from_csv" json:"imported_from_csv"`
}

// Signed 是否已签名
func (p *Participant) Signed() bool {
	return p.SignatureType == SignatureDigital || p.SignatureType == SignatureAnalog
}
