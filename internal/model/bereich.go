package model

import "github.com/PetA199003/GBU-Management/common/types"

// Bereich 工作区域
type Bereich struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// TableName 表名
func (Bereich) TableName() string {
	return "bereiche"
}

// BereichAssignment 区域负责人分配
type BereichAssignment struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	ProjectID        uint           `gorm:"uniqueIndex:idx_project_bereich;not null" json:"project_id"`
	BereichID        uint           `gorm:"uniqueIndex:idx_project_bereich;not null" json:"bereich_id"`
	BereichsleiterID uint           `gorm:"index;not null" json:"bereichsleiter_id"`
	AssignedBy       uint           `gorm:"not null" json:"assigned_by"`
	AssignedAt       types.DateTime `json:"assigned_at"`

	Bereich        *Bereich `gorm:"foreignKey:BereichID" json:"bereich,omitempty"`
	Bereichsleiter *User    `gorm:"foreignKey:BereichsleiterID" json:"bereichsleiter,omitempty"`
	Project        *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
