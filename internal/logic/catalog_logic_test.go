package logic

import (
	"errors"
	"testing"

	"github.com/PetA199003/GBU-Management/common/errorx"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/risk"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskMatrix(t *testing.T) {
	m := NewCatalogLogic(testCtx(), newTestContext(t)).RiskMatrix()
	assert.Len(t, m.Bands, 4)
	require.Len(t, m.Cells, risk.MaxScale)
	for _, row := range m.Cells {
		assert.Len(t, row, risk.MaxScale)
	}
}

func TestAssessmentLifecycle(t *testing.T) {
	svcCtx := newTestContext(t)
	lead := seedUser(t, svcCtx, "lead", model.RoleTechnischerLeiter)
	staff := seedUser(t, svcCtx, "staff", model.RoleBereichsleiter)
	l := NewCatalogLogic(testCtx(), svcCtx)

	_, err := l.CreateAssessment(staff, &types.RiskAssessmentRequest{Activity: ptr("X"), Severity: ptr(1), Probability: ptr(1)})
	assert.True(t, errors.Is(err, errorx.ErrForbidden))

	_, err = l.CreateAssessment(lead, &types.RiskAssessmentRequest{Activity: ptr("X"), Severity: ptr(6), Probability: ptr(1)})
	assert.True(t, errors.Is(err, errorx.ErrBadRequest))

	_, err = l.CreateAssessment(lead, &types.RiskAssessmentRequest{
		Activity: ptr("X"), Severity: ptr(2), Probability: ptr(2),
		AutoSelect: &risk.Criteria{Seasons: []risk.Season{"regenzeit"}},
	})
	assert.True(t, errors.Is(err, errorx.ErrBadRequest))

	ra, err := l.CreateAssessment(lead, &types.RiskAssessmentRequest{
		Activity: ptr("Traversen heben"), Severity: ptr(5), Probability: ptr(4),
		SeverityAfter: ptr(5), ProbabilityAfter: ptr(1), Group: ptr("Rigging"),
	})
	require.NoError(t, err)
	assert.Equal(t, 20, ra.RiskValue)
	assert.Equal(t, risk.LevelSehrHoch, ra.RiskLevel)
	assert.Equal(t, 5, ra.ResidualRisk)
	assert.Equal(t, risk.LevelMittel, ra.ResidualLevel)

	updated, err := l.UpdateAssessment(lead, ra.ID, &types.RiskAssessmentRequest{Probability: ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, "Traversen heben", updated.Activity)
	assert.Equal(t, 5, updated.RiskValue)
	assert.Equal(t, risk.LevelMittel, updated.RiskLevel)

	list, err := l.ListAssessments()
	require.NoError(t, err)
	require.Len(t, list, 1)

	p := seedProject(t, svcCtx, lead, "Messe")
	_, err = NewProjectLogic(testCtx(), svcCtx).SetHazards(lead, p.ID, &types.IDsRequest{IDs: []uint{ra.ID}})
	require.NoError(t, err)

	require.NoError(t, l.DeleteAssessment(lead, ra.ID))
	var count int64
	require.NoError(t, svcCtx.DB.Model(&model.ProjectHazard{}).Count(&count).Error)
	assert.Zero(t, count)
	_, err = l.GetAssessment(ra.ID)
	assert.True(t, errors.Is(err, errorx.ErrNotFound))
}

func TestHazardCatalog(t *testing.T) {
	svcCtx := newTestContext(t)
	admin := seedUser(t, svcCtx, "admin", model.RoleAdmin)
	l := NewCatalogLogic(testCtx(), svcCtx)

	_, err := l.SaveHazard(admin, 0, &types.HazardRequest{Name: "Strom", Category: "MAGIE"})
	assert.True(t, errors.Is(err, errorx.ErrBadRequest))
	_, err = l.SaveHazard(admin, 0, &types.HazardRequest{Name: "Strom", Category: model.HazardElektrik, DefaultSeverity: 7})
	assert.True(t, errors.Is(err, errorx.ErrBadRequest))

	h, err := l.SaveHazard(admin, 0, &types.HazardRequest{
		Name: "Stromschlag", Category: model.HazardElektrik, DefaultSeverity: 5,
		LegalRefs: []string{"DGUV V3"},
	})
	require.NoError(t, err)
	_, err = l.SaveHazard(admin, 0, &types.HazardRequest{Name: "Sturm", Category: model.HazardWetter})
	require.NoError(t, err)

	all, err := l.ListHazards("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	electric, err := l.ListHazards(model.HazardElektrik)
	require.NoError(t, err)
	require.Len(t, electric, 1)
	assert.Equal(t, []string{"DGUV V3"}, electric[0].LegalRefs)

	h, err = l.SaveHazard(admin, h.ID, &types.HazardRequest{Name: "Elektrischer Schlag", Category: model.HazardElektrik})
	require.NoError(t, err)
	assert.Equal(t, "Elektrischer Schlag", h.Name)
	assert.Equal(t, []string{}, h.LegalRefs)

	require.NoError(t, l.DeleteHazard(admin, h.ID))
	assert.True(t, errors.Is(l.DeleteHazard(admin, h.ID), errorx.ErrNotFound))
}

func TestMeasuresAndCriteria(t *testing.T) {
	svcCtx := newTestContext(t)
	admin := seedUser(t, svcCtx, "admin", model.RoleAdmin)
	l := NewCatalogLogic(testCtx(), svcCtx)

	_, err := l.SaveMeasure(admin, 0, &types.ControlMeasureRequest{Name: "Helm", Type: "ZAUBER"})
	assert.True(t, errors.Is(err, errorx.ErrBadRequest))
	_, err = l.SaveMeasure(admin, 0, &types.ControlMeasureRequest{Name: "Helm", Type: model.MeasurePPE, HazardCategory: model.HazardHoehe})
	require.NoError(t, err)
	_, err = l.SaveMeasure(admin, 0, &types.ControlMeasureRequest{Name: "Absperrung", Type: model.MeasureTechnisch, HazardCategory: model.HazardHoehe, Mandatory: true})
	require.NoError(t, err)

	measures, err := l.ListMeasures(model.HazardHoehe)
	require.NoError(t, err)
	require.Len(t, measures, 2)
	assert.Equal(t, "Absperrung", measures[0].Name)

	c, err := l.SaveCriteria(admin, 0, &types.CriteriaCategoryRequest{Key: "pyrotechnik", Name: "Pyrotechnik", Category: "project"})
	require.NoError(t, err)
	assert.Equal(t, "boolean", c.Type)

	_, err = l.SaveCriteria(admin, 0, &types.CriteriaCategoryRequest{Key: "pyrotechnik", Name: "Doppelt", Category: "project"})
	assert.True(t, errors.Is(err, errorx.ErrConflict))
	_, err = l.SaveCriteria(admin, 0, &types.CriteriaCategoryRequest{Key: "wasser", Name: "Wasser", Category: "himmel"})
	assert.True(t, errors.Is(err, errorx.ErrBadRequest))

	c, err = l.SaveCriteria(admin, c.ID, &types.CriteriaCategoryRequest{Key: "pyrotechnik", Name: "Pyro", Category: "location"})
	require.NoError(t, err)
	assert.Equal(t, "Pyro", c.Name)

	require.NoError(t, l.DeleteCriteria(admin, c.ID))
	list, err := l.ListCriteria()
	require.NoError(t, err)
	assert.Empty(t, list)
}
