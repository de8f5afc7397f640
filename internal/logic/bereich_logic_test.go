package logic

import (
	"errors"
	"testing"

	"github.com/PetA199003/GBU-Management/common/errorx"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBereichCRUD(t *testing.T) {
	svcCtx := newTestContext(t)
	admin := seedUser(t, svcCtx, "admin", model.RoleAdmin)
	lead := seedUser(t, svcCtx, "lead", model.RoleProjektleiter)
	l := NewBereichLogic(testCtx(), svcCtx)

	_, err := l.Create(lead, &types.BereichRequest{Name: "Bühne"})
	assert.True(t, errors.Is(err, errorx.ErrForbidden))
	_, err = l.Create(admin, &types.BereichRequest{Name: ""})
	assert.True(t, errors.Is(err, errorx.ErrBadRequest))

	licht, err := l.Create(admin, &types.BereichRequest{Name: "Licht", SortOrder: 2})
	require.NoError(t, err)
	_, err = l.Create(admin, &types.BereichRequest{Name: "Bühne", SortOrder: 1})
	require.NoError(t, err)

	list, err := l.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bühne", list[0].Name)

	updated, err := l.Update(admin, licht.ID, &types.BereichRequest{Name: "Licht & Video", SortOrder: 0})
	require.NoError(t, err)
	assert.Equal(t, "Licht & Video", updated.Name)

	p := seedProject(t, svcCtx, lead, "Messe")
	g, err := NewGBULogic(testCtx(), svcCtx).CreateGefaehrdung(lead, &types.GefaehrdungRequest{
		ProjectID: &p.ID, BereichID: &licht.ID, Taetigkeit: ptr("Scheinwerfer hängen"),
	})
	require.NoError(t, err)

	require.NoError(t, l.Delete(admin, licht.ID))
	var got model.Gefaehrdung
	require.NoError(t, svcCtx.DB.First(&got, g.ID).Error)
	assert.Nil(t, got.BereichID)
	_, err = l.Get(licht.ID)
	assert.True(t, errors.Is(err, errorx.ErrNotFound))
}

func TestAssignBereichsleiter(t *testing.T) {
	svcCtx := newTestContext(t)
	admin := seedUser(t, svcCtx, "admin", model.RoleAdmin)
	lead := seedUser(t, svcCtx, "lead", model.RoleProjektleiter)
	leiterA := seedUser(t, svcCtx, "leiter_a", model.RoleBereichsleiter)
	leiterB := seedUser(t, svcCtx, "leiter_b", model.RoleBereichsleiter)
	staff := seedUser(t, svcCtx, "staff", model.RoleUser)
	l := NewBereichLogic(testCtx(), svcCtx)

	buehne, err := l.Create(admin, &types.BereichRequest{Name: "Bühne"})
	require.NoError(t, err)
	p := seedProject(t, svcCtx, lead, "Messe")

	_, _, err = l.Assign(staff, p.ID, &types.AssignBereichRequest{BereichID: buehne.ID, BereichsleiterID: leiterA.ID})
	assert.True(t, errors.Is(err, errorx.ErrForbidden))
	_, _, err = l.Assign(lead, p.ID, &types.AssignBereichRequest{BereichID: buehne.ID, BereichsleiterID: staff.ID})
	assert.True(t, errors.Is(err, errorx.ErrNotFound))

	a, created, err := l.Assign(lead, p.ID, &types.AssignBereichRequest{BereichID: buehne.ID, BereichsleiterID: leiterA.ID})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Bühne", a.Bereich.Name)

	// 区域负责人因此获得项目访问权限
	_, err = NewProjectLogic(testCtx(), svcCtx).Get(leiterA, p.ID)
	require.NoError(t, err)

	b, created, err := l.Assign(lead, p.ID, &types.AssignBereichRequest{BereichID: buehne.ID, BereichsleiterID: leiterB.ID})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, a.ID, b.ID)

	list, err := l.ProjectAssignments(lead, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, leiterB.ID, list[0].BereichsleiterID)
	assert.Equal(t, "leiter_b", list[0].Bereichsleiter.Username)

	mine, err := l.UserAssignments(leiterB, leiterB.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Messe", mine[0].Project.Name)

	_, err = l.UserAssignments(leiterA, leiterB.ID)
	assert.True(t, errors.Is(err, errorx.ErrForbidden))
}
