package logic

import (
	"context"
	"errors"
	"strings"

	"github.com/PetA199003/GBU-Management/common/errorx"
	"github.com/PetA199003/GBU-Management/common/utils"
	"github.com/PetA199003/GBU-Management/internal/audit"
	"github.com/PetA199003/GBU-Management/internal/auth"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"gorm.io/gorm"
)

const (
	msgUserNotFound       = "Benutzer nicht gefunden"
	msgInvalidCredentials = "Ungültige Anmeldedaten"
)

// UserLogic 用户与登录逻辑
type UserLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// NewUserLogic 创建用户逻辑
func NewUserLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UserLogic {
	return &UserLogic{ctx: ctx, svcCtx: svcCtx}
}

func (l *UserLogic) db() *gorm.DB {
	return l.svcCtx.DB.WithContext(l.ctx)
}

// Authenticate 校验用户名或邮箱及密码
func (l *UserLogic) Authenticate(req *types.LoginRequest) (*model.User, error) {
	identifier := utils.FirstNonBlank(req.Username, req.Email)
	if identifier == "" || req.Password == "" {
		return nil, errorx.BadRequest("Benutzername und Passwort erforderlich")
	}

	var user model.User
	err := l.db().Where("username = ? OR email = ?", identifier, strings.ToLower(identifier)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, errorx.Unauthorized(msgInvalidCredentials)
	}
	if !user.Active {
		return nil, errorx.Unauthorized("Benutzer ist deaktiviert")
	}

	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionLogin, audit.EntityUser, user.ID, "")
	return &user, nil
}

// ChangePassword 修改自己的密码
func (l *UserLogic) ChangePassword(userID uint, req *types.ChangePasswordRequest) error {
	user, err := findByID[model.User](l.db(), userID, msgUserNotFound)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, req.OldPassword) {
		return errorx.BadRequest("Aktuelles Passwort ist falsch")
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return errorx.BadRequest("%s", err.Error())
	}
	if err := l.db().Model(user).Updates(map[string]any{
		"password_hash": hash,
		"updated_at":    now(),
	}).Error; err != nil {
		return err
	}
	l.svcCtx.Audit.Log(l.ctx, userID, audit.ActionChangePassword, audit.EntityUser, userID, "")
	return nil
}

// List 全部用户
func (l *UserLogic) List() ([]model.User, error) {
	users := make([]model.User, 0)
	err := l.db().Order("username").Find(&users).Error
	return users, err
}

// Get 管理员或本人可以查看
func (l *UserLogic) Get(actor *model.User, id uint) (*model.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, errorx.Forbidden("Keine Berechtigung")
	}
	return findByID[model.User](l.db(), id, msgUserNotFound)
}

// ByRole 指定角色的活跃用户
func (l *UserLogic) ByRole(role string) ([]model.User, error) {
	if !model.ValidRole(role) {
		return nil, errorx.BadRequest("Ungültige Rolle: %s", role)
	}
	users := make([]model.User, 0)
	err := l.db().Where("role = ? AND active = ?", role, true).
		Order("last_name, first_name").Find(&users).Error
	return users, err
}

// Create 创建用户
func (l *UserLogic) Create(actor *model.User, req *types.CreateUserRequest) (*model.User, error) {
	req.Username = utils.Trim(req.Username)
	req.Email = strings.ToLower(utils.Trim(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, errorx.BadRequest("Benutzername, E-Mail, Passwort und Rolle sind erforderlich")
	}
	if !model.ValidRole(req.Role) {
		return nil, errorx.BadRequest("Ungültige Rolle: %s", req.Role)
	}
	if err := l.ensureUnique(0, req.Username, req.Email); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, errorx.BadRequest("%s", err.Error())
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		FirstName:    utils.Trim(req.FirstName),
		LastName:     utils.Trim(req.LastName),
		Active:       true,
	}
	if err := l.db().Create(user).Error; err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, actor.ID, audit.ActionCreate, audit.EntityUser, user.ID, user.Username)
	return user, nil
}

// Update 更新用户
func (l *UserLogic) Update(actor *model.User, id uint, req *types.UpdateUserRequest) (*model.User, error) {
	user, err := findByID[model.User](l.db(), id, msgUserNotFound)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"updated_at": now()}
	if req.Email != nil {
		email := strings.ToLower(utils.Trim(*req.Email))
		if email == "" {
			return nil, errorx.BadRequest("E-Mail darf nicht leer sein")
		}
		if err := l.ensureUnique(id, "", email); err != nil {
			return nil, err
		}
		updates["email"] = email
	}
	if req.Role != nil {
		if !model.ValidRole(*req.Role) {
			return nil, errorx.BadRequest("Ungültige Rolle: %s", *req.Role)
		}
		updates["role"] = *req.Role
	}
	if req.FirstName != nil {
		updates["first_name"] = utils.Trim(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = utils.Trim(*req.LastName)
	}
	if req.Active != nil {
		if !*req.Active && id == actor.ID {
			return nil, errorx.BadRequest("Sie können sich nicht selbst deaktivieren")
		}
		updates["active"] = *req.Active
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, errorx.BadRequest("%s", err.Error())
		}
		updates["password_hash"] = hash
	}

	if err := l.db().Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, actor.ID, audit.ActionUpdate, audit.EntityUser, id, "")
	return findByID[model.User](l.db(), id, msgUserNotFound)
}

// Deactivate 停用用户，不物理删除
func (l *UserLogic) Deactivate(actor *model.User, id uint) error {
	if actor.ID == id {
		return errorx.BadRequest("Sie können sich nicht selbst löschen")
	}
	user, err := findByID[model.User](l.db(), id, msgUserNotFound)
	if err != nil {
		return err
	}
	if err := l.db().Model(user).Updates(map[string]any{
		"active":     false,
		"updated_at": now(),
	}).Error; err != nil {
		return err
	}
	l.svcCtx.Audit.Log(l.ctx, actor.ID, audit.ActionDelete, audit.EntityUser, id, user.Username)
	return nil
}

// ensureUnique 检查用户名和邮箱未被其他用户占用
func (l *UserLogic) ensureUnique(excludeID uint, username, email string) error {
	if username != "" {
		var count int64
		if err := l.db().Model(&model.User{}).Where("username = ? AND id <> ?", username, excludeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errorx.Conflict("Benutzername bereits vergeben")
		}
	}
	if email != "" {
		var count int64
		if err := l.db().Model(&model.User{}).Where("email = ? AND id <> ?", email, excludeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errorx.Conflict("E-Mail bereits registriert")
		}
	}
	return nil
}
