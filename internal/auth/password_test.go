package auth

import (
	"testing"

	"github.com/PetA199003/GBU-Management/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)

	assert.NotEqual(t, "admin123", hash)
	assert.True(t, CheckPassword(hash, "admin123"))
	assert.False(t, CheckPassword(hash, "admin124"))
}

func TestHashPasswordTooShort(t *testing.T) {
	_, err := HashPassword("12345")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestHasAnyRole(t *testing.T) {
	u := &model.User{Role: model.RoleProjektleiter}

	assert.True(t, HasAnyRole(u, model.ProjectEditorRoles...))
	assert.False(t, HasAnyRole(u, model.RoleAdmin))
	assert.False(t, HasAnyRole(nil, model.RoleAdmin))
}

func TestParseUserID(t *testing.T) {
	id, err := ParseUserID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	_, err = ParseUserID("abc")
	assert.Error(t, err)
}
