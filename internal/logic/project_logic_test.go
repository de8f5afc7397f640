package logic

import (
	"errors"
	"testing"
	"time"

	"github.com/PetA199003/GBU-Management/common/errorx"
	commonTypes "github.com/PetA199003/GBU-Management/common/types"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/risk"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) commonTypes.Date {
	return commonTypes.DateOf(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func seedAssessment(t *testing.T, l *CatalogLogic, user *model.User, activity string, criteria risk.Criteria) *model.RiskAssessment {
	t.Helper()
	ra, err := l.CreateAssessment(user, &types.RiskAssessmentRequest{
		Activity:    ptr(activity),
		Hazard:      ptr(activity),
		Severity:    ptr(3),
		Probability: ptr(2),
		AutoSelect:  &criteria,
	})
	require.NoError(t, err)
	return ra
}

func TestCreateProject(t *testing.T) {
	svcCtx := newTestContext(t)
	lead := seedUser(t, svcCtx, "lead", model.RoleProjektleiter)
	staff := seedUser(t, svcCtx, "staff", model.RoleUser)
	l := NewProjectLogic(testCtx(), svcCtx)

	_, err := l.Create(staff, &types.CreateProjectRequest{Name: "Fest"})
	assert.True(t, errors.Is(err, errorx.ErrForbidden))

	_, err = l.Create(lead, &types.CreateProjectRequest{Name: " "})
	assert.True(t, errors.Is(err, errorx.ErrBadRequest))

	_, err = l.Create(lead, &types.CreateProjectRequest{
		Name: "Fest", StartDate: date(2026, 7, 3), EndDate: date(2026, 7, 1),
	})
	assert.True(t, errors.Is(err, errorx.ErrBadRequest))

	p, err := l.Create(lead, &types.CreateProjectRequest{
		Name:          "Seenachtsfest",
		StartDate:     date(2026, 7, 1),
		EndDate:       date(2026, 7, 3),
		IndoorOutdoor: risk.SettingOutdoor,
		ProjectAttributesRequest: types.ProjectAttributesRequest{
			HasElectricity: ptr(true),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, risk.SeasonSommer, p.Season)
	assert.Equal(t, model.ProjectStatusPlanung, p.Status)
	assert.True(t, p.HasElectricity)
	assert.False(t, p.HasGenerator)
	assert.Equal(t, lead.ID, p.CreatedBy)
}

func TestCreateProjectAutoSelect(t *testing.T) {
	svcCtx := newTestContext(t)
	admin := seedUser(t, svcCtx, "admin", model.RoleAdmin)
	catalog := NewCatalogLogic(testCtx(), svcCtx)
	electric := seedAssessment(t, catalog, admin, "Kabel verlegen", risk.Criteria{HasElectricity: true})
	seedAssessment(t, catalog, admin, "Generator betreiben", risk.Criteria{HasGenerator: true})
	seedAssessment(t, catalog, admin, "Ohne Kriterien", risk.Criteria{})
	weather := seedAssessment(t, catalog, admin, "Unwetter", risk.Criteria{IsOutdoor: true, Seasons: []risk.Season{risk.SeasonSommer}})

	l := NewProjectLogic(testCtx(), svcCtx)
	p, err := l.Create(admin, &types.CreateProjectRequest{
		Name:          "Open Air",
		StartDate:     date(2026, 8, 1),
		IndoorOutdoor: risk.SettingBoth,
		AutoSelect:    true,
		ProjectAttributesRequest: types.ProjectAttributesRequest{
			HasElectricity: ptr(true),
		},
	})
	require.NoError(t, err)

	hazards, err := l.Hazards(admin, p.ID)
	require.NoError(t, err)
	ids := make([]uint, 0, len(hazards))
	for _, h := range hazards {
		ids = append(ids, h.RiskAssessmentID)
		assert.True(t, h.AutoSelected)
		assert.Equal(t, risk.LevelMittel, h.RiskBand.Level)
	}
	assert.ElementsMatch(t, []uint{electric.ID, weather.ID}, ids)

	preview, err := l.AutoSelectPreview(admin, p.ID)
	require.NoError(t, err)
	assert.Len(t, preview, 2)
}

func TestSetHazards(t *testing.T) {
	svcCtx := newTestContext(t)
	admin := seedUser(t, svcCtx, "admin", model.RoleAdmin)
	catalog := NewCatalogLogic(testCtx(), svcCtx)
	a := seedAssessment(t, catalog, admin, "A", risk.Criteria{})
	b := seedAssessment(t, catalog, admin, "B", risk.Criteria{})
	p := seedProject(t, svcCtx, admin, "Messe")
	l := NewProjectLogic(testCtx(), svcCtx)

	views, err := l.SetHazards(admin, p.ID, &types.IDsRequest{IDs: []uint{a.ID, b.ID, a.ID}})
	require.NoError(t, err)
	assert.Len(t, views, 2)

	views, err = l.SetHazards(admin, p.ID, &types.IDsRequest{IDs: []uint{b.ID}})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, b.ID, views[0].RiskAssessmentID)

	_, err = l.SetHazards(admin, p.ID, &types.IDsRequest{IDs: []uint{999}})
	assert.True(t, errors.Is(err, errorx.ErrBadRequest))
}

func TestProjectAccessScope(t *testing.T) {
	svcCtx := newTestContext(t)
	lead := seedUser(t, svcCtx, "lead", model.RoleProjektleiter)
	staff := seedUser(t, svcCtx, "staff", model.RoleUser)
	outsider := seedUser(t, svcCtx, "outsider", model.RoleUser)
	p := seedProject(t, svcCtx, lead, "Konzert")
	seedProject(t, svcCtx, lead, "Gala")
	l := NewProjectLogic(testCtx(), svcCtx)

	_, err := l.Get(staff, p.ID)
	assert.True(t, errors.Is(err, errorx.ErrForbidden))

	_, err = l.Assign(staff, p.ID, &types.AssignUserRequest{UserID: staff.ID})
	assert.True(t, errors.Is(err, errorx.ErrForbidden))

	_, err = l.Assign(lead, p.ID, &types.AssignUserRequest{UserID: staff.ID})
	require.NoError(t, err)
	_, err = l.Assign(lead, p.ID, &types.AssignUserRequest{UserID: staff.ID})
	assert.True(t, errors.Is(err, errorx.ErrConflict))
	_, err = l.Assign(lead, p.ID, &types.AssignUserRequest{UserID: 999})
	assert.True(t, errors.Is(err, errorx.ErrNotFound))

	detail, err := l.Get(staff, p.ID)
	require.NoError(t, err)
	require.Len(t, detail.Assignments, 1)
	assert.Equal(t, "staff", detail.Assignments[0].User.Username)

	list, total, err := l.List(staff, &types.ProjectListRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Konzert", list[0].Name)

	_, total, err = l.List(lead, &types.ProjectListRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, total, err = l.List(outsider, &types.ProjectListRequest{})
	require.NoError(t, err)
	assert.Zero(t, total)

	require.NoError(t, l.Unassign(lead, p.ID, staff.ID))
	assert.True(t, errors.Is(l.Unassign(lead, p.ID, staff.ID), errorx.ErrNotFound))
	_, err = l.Get(staff, p.ID)
	assert.True(t, errors.Is(err, errorx.ErrForbidden))
}

func TestUpdateProject(t *testing.T) {
	svcCtx := newTestContext(t)
	lead := seedUser(t, svcCtx, "lead", model.RoleProjektleiter)
	staff := seedUser(t, svcCtx, "staff", model.RoleUser)
	p := seedProject(t, svcCtx, lead, "Konzert")
	l := NewProjectLogic(testCtx(), svcCtx)

	_, err := l.Update(staff, p.ID, &types.UpdateProjectRequest{Name: ptr("X")})
	assert.True(t, errors.Is(err, errorx.ErrForbidden))

	updated, err := l.Update(lead, p.ID, &types.UpdateProjectRequest{
		Location: ptr("Bern"),
		Status:   ptr(model.ProjectStatusAktiv),
	})
	require.NoError(t, err)
	assert.Equal(t, "Konzert", updated.Name)
	assert.Equal(t, "Bern", updated.Location)
	assert.Equal(t, model.ProjectStatusAktiv, updated.Status)

	_, err = l.Update(lead, p.ID, &types.UpdateProjectRequest{Status: ptr("unbekannt")})
	assert.True(t, errors.Is(err, errorx.ErrBadRequest))
}

func TestUpdateProjectKeepsSeason(t *testing.T) {
	svcCtx := newTestContext(t)
	lead := seedUser(t, svcCtx, "lead", model.RoleProjektleiter)
	p := seedProject(t, svcCtx, lead, "Konzert")
	l := NewProjectLogic(testCtx(), svcCtx)
	season := p.Season

	moved := p.StartDate.Time().AddDate(0, 6, 0)
	require.NotEqual(t, season, risk.SeasonOf(moved))
	updated, err := l.Update(lead, p.ID, &types.UpdateProjectRequest{
		StartDate: ptr(commonTypes.DateOf(moved)),
		EndDate:   ptr(commonTypes.DateOf(moved.AddDate(0, 0, 2))),
	})
	require.NoError(t, err)
	assert.Equal(t, commonTypes.DateOf(moved), updated.StartDate)
	assert.Equal(t, season, updated.Season)

	updated, err = l.Update(lead, p.ID, &types.UpdateProjectRequest{Season: ptr(risk.SeasonOf(moved))})
	require.NoError(t, err)
	assert.Equal(t, risk.SeasonOf(moved), updated.Season)
}

func TestDeleteProjectCascades(t *testing.T) {
	svcCtx := newTestContext(t)
	admin := seedUser(t, svcCtx, "admin", model.RoleAdmin)
	lead := seedUser(t, svcCtx, "lead", model.RoleProjektleiter)
	p := seedProject(t, svcCtx, lead, "Konzert")
	l := NewProjectLogic(testCtx(), svcCtx)

	_, err := NewParticipantLogic(testCtx(), svcCtx).Create(lead, &types.ParticipantRequest{
		ProjectID: p.ID, FirstName: ptr("Anna"), LastName: ptr("Muster"),
	})
	require.NoError(t, err)
	_, err = NewUnterweisungLogic(testCtx(), svcCtx).Generate(lead, p.ID)
	require.NoError(t, err)

	assert.True(t, errors.Is(l.Delete(lead, p.ID), errorx.ErrForbidden))
	require.NoError(t, l.Delete(admin, p.ID))

	for _, table := range []any{&model.Project{}, &model.Participant{}, &model.Unterweisung{}, &model.UnterweisungItem{}} {
		var count int64
		require.NoError(t, svcCtx.DB.Model(table).Count(&count).Error)
		assert.Zero(t, count)
	}
	assert.True(t, errors.Is(l.Delete(admin, p.ID), errorx.ErrNotFound))
}

func TestAdvanceStatuses(t *testing.T) {
	svcCtx := newTestContext(t)
	admin := seedUser(t, svcCtx, "admin", model.RoleAdmin)
	today := date(2026, 6, 15)

	create := func(name, status string, start, end commonTypes.Date) *model.Project {
		p := &model.Project{Name: name, Status: status, StartDate: start, EndDate: end, CreatedBy: admin.ID}
		require.NoError(t, svcCtx.DB.Create(p).Error)
		return p
	}
	started := create("gestartet", model.ProjectStatusPlanung, date(2026, 6, 15), date(2026, 6, 20))
	future := create("zukunft", model.ProjectStatusPlanung, date(2026, 7, 1), date(2026, 7, 2))
	finished := create("vorbei", model.ProjectStatusAktiv, date(2026, 6, 1), date(2026, 6, 14))
	running := create("läuft", model.ProjectStatusAktiv, date(2026, 6, 1), date(2026, 6, 15))

	activated, completed, err := NewProjectLogic(testCtx(), svcCtx).AdvanceStatuses(today)
	require.NoError(t, err)
	assert.EqualValues(t, 1, activated)
	assert.EqualValues(t, 1, completed)

	status := func(p *model.Project) string {
		var got model.Project
		require.NoError(t, svcCtx.DB.First(&got, p.ID).Error)
		return got.Status
	}
	assert.Equal(t, model.ProjectStatusAktiv, status(started))
	assert.Equal(t, model.ProjectStatusPlanung, status(future))
	assert.Equal(t, model.ProjectStatusAbgeschlossen, status(finished))
	assert.Equal(t, model.ProjectStatusAktiv, status(running))
}

func TestNormalizeProject(t *testing.T) {
	p := &model.Project{Name: "Winterzauber", StartDate: date(2026, 12, 5)}
	require.NoError(t, normalizeProject(p))
	assert.Equal(t, risk.SeasonWinter, p.Season)
	assert.Equal(t, model.ProjectStatusPlanung, p.Status)

	p = &model.Project{Name: "X", Season: "monsun"}
	assert.True(t, errors.Is(normalizeProject(p), errorx.ErrBadRequest))
	p = &model.Project{Name: "X", IndoorOutdoor: "dach"}
	assert.True(t, errors.Is(normalizeProject(p), errorx.ErrBadRequest))
}
