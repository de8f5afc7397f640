package logic

import (
	"errors"

	"github.com/PetA199003/GBU-Management/common/errorx"
	"github.com/PetA199003/GBU-Management/common/types"
	"github.com/PetA199003/GBU-Management/internal/model"

	"gorm.io/gorm"
)

// 通用错误消息
const (
	msgProjectNotFound = "Projekt nicht gefunden"
	msgNoProjectAccess = "Kein Zugriff auf dieses Projekt"
	msgNoEditRight     = "Keine Berechtigung zum Bearbeiten dieses Projekts"
)

// findByID 按主键查询，不存在时返回 404 错误
func findByID[T any](db *gorm.DB, id uint, notFound string) (*T, error) {
	var v T
	err := db.First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.NotFound("%s", notFound)
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// loadProject 加载项目
func loadProject(db *gorm.DB, id uint) (*model.Project, error) {
	return findByID[model.Project](db, id, msgProjectNotFound)
}

// projectIDsFor 用户可见的项目 ID 子查询：创建、被分配或负责其中区域
func projectIDsFor(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&model.Project{}).Select("id").Where(
		"created_by = ? OR id IN (?) OR id IN (?)",
		userID,
		db.Model(&model.ProjectAssignment{}).Select("project_id").Where("user_id = ?", userID),
		db.Model(&model.BereichAssignment{}).Select("project_id").Where("bereichsleiter_id = ?", userID),
	)
}

// canAccessProject 管理员、创建者、项目成员或区域负责人可以访问
func canAccessProject(db *gorm.DB, user *model.User, project *model.Project) (bool, error) {
	if user.IsAdmin() || project.CreatedBy == user.ID {
		return true, nil
	}
	var count int64
	err := db.Model(&model.Project{}).
		Where("id = ? AND id IN (?)", project.ID, projectIDsFor(db, user.ID)).
		Count(&count).Error
	return count > 0, err
}

// canEditProject 项目编辑角色或创建者可以编辑
func canEditProject(user *model.User, project *model.Project) bool {
	return user.CanEditProjects() || project.CreatedBy == user.ID
}

// accessibleProject 加载项目并校验访问权限
func accessibleProject(db *gorm.DB, user *model.User, id uint) (*model.Project, error) {
	project, err := loadProject(db, id)
	if err != nil {
		return nil, err
	}
	ok, err := canAccessProject(db, user, project)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorx.Forbidden(msgNoProjectAccess)
	}
	return project, nil
}

// editableProject 加载项目并校验编辑权限
func editableProject(db *gorm.DB, user *model.User, id uint) (*model.Project, error) {
	project, err := loadProject(db, id)
	if err != nil {
		return nil, err
	}
	if !canEditProject(user, project) {
		return nil, errorx.Forbidden(msgNoEditRight)
	}
	return project, nil
}

// now 当前时间，用于 map 更新时写入 updated_at
func now() types.DateTime {
	return types.Now()
}
