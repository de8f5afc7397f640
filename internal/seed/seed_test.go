package seed

import (
	"context"
	"testing"

	commonConfig "github.com/PetA199003/GBU-Management/common/config"
	"github.com/PetA199003/GBU-Management/common/database"
	"github.com/PetA199003/GBU-Management/internal/auth"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&commonConfig.DatabaseConfig{Driver: "sqlite", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestRunIsIdempotent(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	empty, err := IsEmpty(ctx, db)
	require.NoError(t, err)
	assert.True(t, empty)

	res, err := Run(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Users)
	assert.Equal(t, 6, res.Bereiche)
	assert.Equal(t, 8, res.Hazards)
	assert.Equal(t, len(defaultMeasures), res.Measures)
	assert.Equal(t, len(defaultCriteria), res.Criteria)
	assert.Equal(t, 4, res.Assessments)

	res, err = Run(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, res.Total())

	empty, err = IsEmpty(ctx, db)
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestSeededData(t *testing.T) {
	db := openDB(t)
	_, err := Run(context.Background(), db)
	require.NoError(t, err)

	var admin model.User
	require.NoError(t, db.Where("email = ?", "admin@gbu-app.de").First(&admin).Error)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.True(t, auth.CheckPassword(admin.PasswordHash, "admin123"))

	var categories []string
	require.NoError(t, db.Model(&model.Hazard{}).Distinct().Pluck("category", &categories).Error)
	assert.ElementsMatch(t, model.HazardCategories, categories)

	var weather model.RiskAssessment
	require.NoError(t, db.Where("group_name = ?", "Wetter").First(&weather).Error)
	assert.Equal(t, 16, weather.RiskValue)
	assert.Equal(t, 8, weather.ResidualRisk)
	assert.True(t, weather.AutoSelect.Matches(risk.Attributes{IsOutdoor: true, Season: risk.SeasonWinter}))

	var bereiche []model.Bereich
	require.NoError(t, db.Order("sort_order").Find(&bereiche).Error)
	require.Len(t, bereiche, 6)
	assert.Equal(t, "Bühne", bereiche[0].Name)
}

func TestRunKeepsExistingUsers(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.Create(&model.User{Username: "admin", Email: "chef@example.com", Role: model.RoleAdmin, Active: true}).Error)

	res, err := Run(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Users)
}
