package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/PetA199003/GBU-Management/common/errorx"
	"github.com/PetA199003/GBU-Management/common/utils"
	"github.com/PetA199003/GBU-Management/internal/audit"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"gorm.io/gorm"
)

const msgBereichNotFound = "Bereich nicht gefunden"

// BereichLogic 工作区域逻辑
type BereichLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// NewBereichLogic 创建工作区域逻辑
func NewBereichLogic(ctx context.Context, svcCtx *svc.ServiceContext) *BereichLogic {
	return &BereichLogic{ctx: ctx, svcCtx: svcCtx}
}

func (l *BereichLogic) db() *gorm.DB {
	return l.svcCtx.DB.WithContext(l.ctx)
}

// List 按排序号和名称排列
func (l *BereichLogic) List() ([]model.Bereich, error) {
	list := make([]model.Bereich, 0)
	err := l.db().Order("sort_order").Order("name").Find(&list).Error
	return list, err
}

// Get 区域详情
func (l *BereichLogic) Get(id uint) (*model.Bereich, error) {
	return findByID[model.Bereich](l.db(), id, msgBereichNotFound)
}

// Create 创建区域
func (l *BereichLogic) Create(user *model.User, req *types.BereichRequest) (*model.Bereich, error) {
	if !user.IsAdmin() {
		return nil, errorx.Forbidden("Nur Administratoren dürfen Bereiche verwalten")
	}
	name := utils.Trim(req.Name)
	if name == "" {
		return nil, errorx.BadRequest("Name des Bereichs erforderlich")
	}
	bereich := &model.Bereich{Name: name, Description: req.Description, SortOrder: req.SortOrder}
	if err := l.db().Create(bereich).Error; err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionCreate, audit.EntityBereich, bereich.ID, bereich.Name)
	return bereich, nil
}

// Update 更新区域
func (l *BereichLogic) Update(user *model.User, id uint, req *types.BereichRequest) (*model.Bereich, error) {
	if !user.IsAdmin() {
		return nil, errorx.Forbidden("Nur Administratoren dürfen Bereiche verwalten")
	}
	bereich, err := findByID[model.Bereich](l.db(), id, msgBereichNotFound)
	if err != nil {
		return nil, err
	}
	name := utils.Trim(req.Name)
	if name == "" {
		return nil, errorx.BadRequest("Name des Bereichs erforderlich")
	}
	bereich.Name, bereich.Description, bereich.SortOrder = name, req.Description, req.SortOrder
	if err := l.db().Save(bereich).Error; err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionUpdate, audit.EntityBereich, id, bereich.Name)
	return bereich, nil
}

// Delete 删除区域，同时删除负责人分配并解除危害条目的关联
func (l *BereichLogic) Delete(user *model.User, id uint) error {
	if !user.IsAdmin() {
		return errorx.Forbidden("Nur Administratoren dürfen Bereiche verwalten")
	}
	bereich, err := findByID[model.Bereich](l.db(), id, msgBereichNotFound)
	if err != nil {
		return err
	}
	err = l.db().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bereich_id = ?", id).Delete(&model.BereichAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Gefaehrdung{}).Where("bereich_id = ?", id).
			Update("bereich_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(bereich).Error
	})
	if err != nil {
		return err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionDelete, audit.EntityBereich, id, bereich.Name)
	return nil
}

// Assign 为项目的区域指定负责人，已存在的分配会被更新，created 表示是否新建
func (l *BereichLogic) Assign(user *model.User, projectID uint, req *types.AssignBereichRequest) (assignment *model.BereichAssignment, created bool, err error) {
	if !user.CanEditProjects() {
		return nil, false, errorx.Forbidden("Keine Berechtigung zum Zuweisen von Bereichen")
	}
	project, err := loadProject(l.db(), projectID)
	if err != nil {
		return nil, false, err
	}
	if req.BereichID == 0 || req.BereichsleiterID == 0 {
		return nil, false, errorx.BadRequest("Bereich und Bereichsleiter erforderlich")
	}
	bereich, err := findByID[model.Bereich](l.db(), req.BereichID, msgBereichNotFound)
	if err != nil {
		return nil, false, err
	}
	leader, err := findByID[model.User](l.db(), req.BereichsleiterID, "Bereichsleiter nicht gefunden")
	if err != nil {
		return nil, false, err
	}
	if leader.Role != model.RoleBereichsleiter {
		return nil, false, errorx.NotFound("Ungültiger Bereichsleiter")
	}

	var existing model.BereichAssignment
	err = l.db().Where("project_id = ? AND bereich_id = ?", projectID, req.BereichID).First(&existing).Error
	switch {
	case err == nil:
		existing.BereichsleiterID = leader.ID
		existing.AssignedBy = user.ID
		existing.AssignedAt = now()
		if err := l.db().Omit("Bereich", "Bereichsleiter", "Project").Save(&existing).Error; err != nil {
			return nil, false, err
		}
		assignment = &existing
	case errors.Is(err, gorm.ErrRecordNotFound):
		assignment = &model.BereichAssignment{
			ProjectID:        projectID,
			BereichID:        bereich.ID,
			BereichsleiterID: leader.ID,
			AssignedBy:       user.ID,
			AssignedAt:       now(),
		}
		if err := l.db().Create(assignment).Error; err != nil {
			return nil, false, err
		}
		created = true
	default:
		return nil, false, err
	}

	assignment.Bereich, assignment.Bereichsleiter = bereich, leader
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionAssign, audit.EntityBereichAssignment, assignment.ID,
		fmt.Sprintf("%s als Bereichsleiter für %s im Projekt %s", leader.Username, bereich.Name, project.Name))
	return assignment, created, nil
}

// ProjectAssignments 项目的区域负责人
func (l *BereichLogic) ProjectAssignments(user *model.User, projectID uint) ([]model.BereichAssignment, error) {
	if _, err := accessibleProject(l.db(), user, projectID); err != nil {
		return nil, err
	}
	list := make([]model.BereichAssignment, 0)
	err := l.db().Preload("Bereich").Preload("Bereichsleiter").
		Where("project_id = ?", projectID).Order("id").Find(&list).Error
	return list, err
}

// UserAssignments 用户负责的区域，仅本人或管理员可查看
func (l *BereichLogic) UserAssignments(user *model.User, userID uint) ([]model.BereichAssignment, error) {
	if !user.IsAdmin() && user.ID != userID {
		return nil, errorx.Forbidden("Keine Berechtigung")
	}
	if _, err := findByID[model.User](l.db(), userID, msgUserNotFound); err != nil {
		return nil, err
	}
	list := make([]model.BereichAssignment, 0)
	err := l.db().Preload("Bereich").Preload("Project").
		Where("bereichsleiter_id = ?", userID).Order("id").Find(&list).Error
	return list, err
}
