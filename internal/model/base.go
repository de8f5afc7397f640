package model

import (
	"time"

	"github.com/PetA199003/GBU-Management/common/types"

	"gorm.io/gorm"
)

// BaseModel 基础模型
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt types.DateTime `json:"created_at"`
	UpdatedAt types.DateTime `json:"updated_at"`
}

// BeforeCreate GORM创建前钩子
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	now := types.NewDateTime(time.Now())
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}
	return nil
}

// BeforeUpdate GORM更新前钩子
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = types.NewDateTime(time.Now())
	return nil
}

// All 返回需要迁移的全部模型
func All() []any {
	return []any{
		&User{},
		&Project{},
		&ProjectAssignment{},
		&ProjectHazard{},
		&Bereich{},
		&BereichAssignment{},
		&GBUTemplate{},
		&Gefaehrdung{},
		&ProjectGBU{},
		&RiskAssessment{},
		&Hazard{},
		&ControlMeasure{},
		&CriteriaCategory{},
		&Participant{},
		&Unterweisung{},
		&UnterweisungItem{},
		&AuditLog{},
	}
}

// Migrate 自动迁移所有表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
