package model

import "github.com/PetA199003/GBU-Management/common/types"

// AuditLog 审计日志
type AuditLog struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `gorm:"index" json:"user_id"`
	Action     string         `gorm:"size:100;index" json:"action"`
	EntityType string         `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint           `json:"entity_id"`
	Details    string         `gorm:"type:text" json:"details"`
	IPAddress  string         `gorm:"size:45" json:"ip_address"`
	CreatedAt  types.DateTime `gorm:"index" json:"created_at"`
}

// TableName 表名
func (AuditLog) TableName() string {
	return "audit_log"
}
