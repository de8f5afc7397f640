package auth

import (
	"context"
	"errors"
	"strconv"

	"github.com/PetA199003/GBU-Management/internal/model"

	"github.com/duke-git/lancet/v2/slice"
	"gorm.io/gorm"
)

// ErrUserInactive 用户不存在或已停用
var ErrUserInactive = errors.New("Benutzer nicht gefunden oder deaktiviert")

// PermissionService 权限服务
type PermissionService struct {
	db *gorm.DB
}

// NewPermissionService 创建权限服务
func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// ActiveUser 加载启用状态的用户
func (s *PermissionService) ActiveUser(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("id = ? AND active = ?", userID, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserInactive
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// HasAnyRole 用户是否拥有任一角色
func HasAnyRole(user *model.User, roles ...string) bool {
	if user == nil {
		return false
	}
	return slice.Contain(roles, user.Role)
}

// ParseUserID 解析 sa-token 中保存的登录 ID
func ParseUserID(loginID string) (uint, error) {
	id, err := strconv.ParseUint(loginID, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
