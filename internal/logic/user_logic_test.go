package logic

import (
	"errors"
	"testing"

	"github.com/PetA199003/GBU-Management/common/errorx"
	"github.com/PetA199003/GBU-Management/internal/audit"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	svcCtx := newTestContext(t)
	u := seedUser(t, svcCtx, "anna", model.RoleUser)
	l := NewUserLogic(audit.WithClientIP(testCtx(), "10.0.0.7"), svcCtx)

	got, err := l.Authenticate(&types.LoginRequest{Username: "anna", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = l.Authenticate(&types.LoginRequest{Email: "ANNA@example.com", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = l.Authenticate(&types.LoginRequest{Username: "anna", Password: "falsch"})
	assert.True(t, errors.Is(err, errorx.ErrUnauthorized))

	_, err = l.Authenticate(&types.LoginRequest{Username: "niemand", Password: testPassword})
	assert.True(t, errors.Is(err, errorx.ErrUnauthorized))

	_, err = l.Authenticate(&types.LoginRequest{Username: "anna"})
	assert.True(t, errors.Is(err, errorx.ErrBadRequest))

	svcCtx.Audit.Flush()
	var logs []model.AuditLog
	require.NoError(t, svcCtx.DB.Where("action = ?", audit.ActionLogin).Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, "10.0.0.7", logs[0].IPAddress)
	assert.Equal(t, u.ID, logs[0].UserID)
}

func TestAuthenticateInactive(t *testing.T) {
	svcCtx := newTestContext(t)
	u := seedUser(t, svcCtx, "bert", model.RoleUser)
	require.NoError(t, svcCtx.DB.Model(u).Update("active", false).Error)

	_, err := NewUserLogic(testCtx(), svcCtx).Authenticate(&types.LoginRequest{Username: "bert", Password: testPassword})
	assert.Equal(t, 401, errorx.StatusOf(err))
}

func TestChangePassword(t *testing.T) {
	svcCtx := newTestContext(t)
	u := seedUser(t, svcCtx, "carla", model.RoleUser)
	l := NewUserLogic(testCtx(), svcCtx)

	err := l.ChangePassword(u.ID, &types.ChangePasswordRequest{OldPassword: "falsch", NewPassword: "neues-passwort"})
	assert.True(t, errors.Is(err, errorx.ErrBadRequest))

	err = l.ChangePassword(u.ID, &types.ChangePasswordRequest{OldPassword: testPassword, NewPassword: "kurz"})
	assert.True(t, errors.Is(err, errorx.ErrBadRequest))

	require.NoError(t, l.ChangePassword(u.ID, &types.ChangePasswordRequest{OldPassword: testPassword, NewPassword: "neues-passwort"}))
	_, err = l.Authenticate(&types.LoginRequest{Username: "carla", Password: "neues-passwort"})
	assert.NoError(t, err)
}

func TestCreateUser(t *testing.T) {
	svcCtx := newTestContext(t)
	admin := seedUser(t, svcCtx, "admin", model.RoleAdmin)
	l := NewUserLogic(testCtx(), svcCtx)

	req := &types.CreateUserRequest{
		Username: "dora", Email: "Dora@Example.com", Password: "geheim123",
		Role: model.RoleBereichsleiter, FirstName: "Dora",
	}
	u, err := l.Create(admin, req)
	require.NoError(t, err)
	assert.True(t, u.Active)
	assert.Equal(t, "dora@example.com", u.Email)
	assert.NotEqual(t, "geheim123", u.PasswordHash)

	_, err = l.Create(admin, req)
	assert.True(t, errors.Is(err, errorx.ErrConflict))

	req.Username, req.Email, req.Role = "emil", "emil@example.com", "chef"
	_, err = l.Create(admin, req)
	assert.True(t, errors.Is(err, errorx.ErrBadRequest))

	leaders, err := l.ByRole(model.RoleBereichsleiter)
	require.NoError(t, err)
	require.Len(t, leaders, 1)
	assert.Equal(t, "dora", leaders[0].Username)
}

func TestUpdateAndDeactivateUser(t *testing.T) {
	svcCtx := newTestContext(t)
	admin := seedUser(t, svcCtx, "admin", model.RoleAdmin)
	other := seedUser(t, svcCtx, "felix", model.RoleUser)
	l := NewUserLogic(testCtx(), svcCtx)

	_, err := l.Update(admin, admin.ID, &types.UpdateUserRequest{Active: ptr(false)})
	assert.True(t, errors.Is(err, errorx.ErrBadRequest))
	assert.True(t, errors.Is(l.Deactivate(admin, admin.ID), errorx.ErrBadRequest))

	updated, err := l.Update(admin, other.ID, &types.UpdateUserRequest{Role: ptr(model.RoleProjektleiter), LastName: ptr(" Meier ")})
	require.NoError(t, err)
	assert.Equal(t, model.RoleProjektleiter, updated.Role)
	assert.Equal(t, "Meier", updated.LastName)

	require.NoError(t, l.Deactivate(admin, other.ID))
	got, err := l.Get(admin, other.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	_, err = l.Get(other, admin.ID)
	assert.True(t, errors.Is(err, errorx.ErrForbidden))
}
