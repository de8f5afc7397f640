package scheduler

import (
	"context"
	"testing"
	"time"

	commonConfig "github.com/PetA199003/GBU-Management/common/config"
	"github.com/PetA199003/GBU-Management/common/database"
	"github.com/PetA199003/GBU-Management/common/types"
	"github.com/PetA199003/GBU-Management/internal/config"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/svc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, retentionDays int) *svc.ServiceContext {
	t.Helper()
	db, err := database.Open(&commonConfig.DatabaseConfig{Driver: "sqlite", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))
	cfg := config.Default()
	cfg.Scheduler.AuditRetentionDays = retentionDays
	svcCtx := svc.NewServiceContext(cfg, db, nil)
	t.Cleanup(func() {
		svcCtx.Audit.Flush()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return svcCtx
}

func TestJobsRegistered(t *testing.T) {
	s, err := New(newTestContext(t, 30), nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{JobProjectStatus, JobAuditPurge}, s.JobNames())

	s, err = New(newTestContext(t, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{JobProjectStatus}, s.JobNames())
}

func TestInvalidCron(t *testing.T) {
	svcCtx := newTestContext(t, 0)
	svcCtx.Config.Scheduler.StatusCron = "jeden Tag"
	_, err := New(svcCtx, nil)
	assert.Error(t, err)
}

func TestAdvanceStatuses(t *testing.T) {
	svcCtx := newTestContext(t, 0)
	now := time.Date(2026, 7, 10, 8, 0, 0, 0, time.Local)
	day := func(offset int) types.Date { return types.DateOf(now.AddDate(0, 0, offset)) }

	projects := []*model.Project{
		{Name: "läuft an", Status: model.ProjectStatusPlanung, StartDate: day(0), EndDate: day(2)},
		{Name: "später", Status: model.ProjectStatusPlanung, StartDate: day(5), EndDate: day(6)},
		{Name: "vorbei", Status: model.ProjectStatusAktiv, StartDate: day(-5), EndDate: day(-1)},
		{Name: "archiv", Status: model.ProjectStatusArchiviert, StartDate: day(-9), EndDate: day(-8)},
	}
	for _, p := range projects {
		require.NoError(t, svcCtx.DB.Create(p).Error)
	}

	s, err := New(svcCtx, nil)
	require.NoError(t, err)
	s.advanceStatuses(context.Background(), now)

	want := []string{
		model.ProjectStatusAktiv,
		model.ProjectStatusPlanung,
		model.ProjectStatusAbgeschlossen,
		model.ProjectStatusArchiviert,
	}
	for i, p := range projects {
		var got model.Project
		require.NoError(t, svcCtx.DB.First(&got, p.ID).Error)
		assert.Equal(t, want[i], got.Status, p.Name)
	}
}

func TestPurgeAudit(t *testing.T) {
	svcCtx := newTestContext(t, 30)
	now := time.Now()
	require.NoError(t, svcCtx.DB.Create(&model.AuditLog{Action: "login", EntityType: "user", CreatedAt: types.NewDateTime(now.AddDate(0, 0, -31))}).Error)
	require.NoError(t, svcCtx.DB.Create(&model.AuditLog{Action: "login", EntityType: "user", CreatedAt: types.NewDateTime(now.AddDate(0, 0, -1))}).Error)

	s, err := New(svcCtx, nil)
	require.NoError(t, err)
	s.purgeAudit(context.Background(), now)

	var count int64
	require.NoError(t, svcCtx.DB.Model(&model.AuditLog{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
