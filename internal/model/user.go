package model

// 角色
const (
	RoleAdmin             = "admin"
	RoleBereichsleiter    = "bereichsleiter"
	RoleTechnischerLeiter = "technischer_leiter"
	RoleProjektleiter     = "projektleiter"
	RoleUser              = "user"
)

// Roles 全部角色
var Roles = []string{RoleAdmin, RoleBereichsleiter, RoleTechnischerLeiter, RoleProjektleiter, RoleUser}

// ProjectEditorRoles 可以创建和编辑项目的角色
var ProjectEditorRoles = []string{RoleAdmin, RoleProjektleiter, RoleTechnischerLeiter}

// ValidRole 判断角色是否存在
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User 用户
type User struct {
	BaseModel
	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:32;index;not null" json:"role"`
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	Active       bool   `gorm:"not null" json:"active"`
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanEditProjects 是否可以创建项目
func (u *User) CanEditProjects() bool {
	for _, r := range ProjectEditorRoles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// FullName 姓名
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
