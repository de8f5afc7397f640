package logic

import (
	"context"
	"errors"
	"testing"
	"time"

	commonConfig "github.com/PetA199003/GBU-Management/common/config"
	"github.com/PetA199003/GBU-Management/common/database"
	"github.com/PetA199003/GBU-Management/common/errorx"
	"github.com/PetA199003/GBU-Management/common/types"
	"github.com/PetA199003/GBU-Management/internal/auth"
	"github.com/PetA199003/GBU-Management/internal/config"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/svc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "geheim123"

func newTestContext(t *testing.T) *svc.ServiceContext {
	t.Helper()
	db, err := database.Open(&commonConfig.DatabaseConfig{Driver: "sqlite", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))
	svcCtx := svc.NewServiceContext(config.Default(), db, nil)
	t.Cleanup(func() {
		svcCtx.Audit.Flush()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return svcCtx
}

func seedUser(t *testing.T, svcCtx *svc.ServiceContext, username, role string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	u := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
		FirstName:    username,
		Active:       true,
	}
	require.NoError(t, svcCtx.DB.Create(u).Error)
	return u
}

func seedProject(t *testing.T, svcCtx *svc.ServiceContext, owner *model.User, name string) *model.Project {
	t.Helper()
	start := types.DateOf(time.Now().AddDate(0, 0, 10))
	p := &model.Project{
		Name:      name,
		Location:  "Zürich",
		StartDate: start,
		EndDate:   types.DateOf(start.Time().AddDate(0, 0, 2)),
		Status:    model.ProjectStatusPlanung,
		CreatedBy: owner.ID,
	}
	require.NoError(t, normalizeProject(p))
	require.NoError(t, svcCtx.DB.Create(p).Error)
	return p
}

func testCtx() context.Context {
	return context.Background()
}

func ptr[T any](v T) *T {
	return &v
}

func TestFindByIDNotFoundMessage(t *testing.T) {
	svcCtx := newTestContext(t)
	_, err := findByID[model.Bereich](svcCtx.DB, 99, "Rabatt 100% nicht gefunden")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errorx.ErrNotFound))
	assert.Equal(t, "Rabatt 100% nicht gefunden", err.Error())
}
