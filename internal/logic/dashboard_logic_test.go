package logic

import (
	"testing"

	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/risk"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	svcCtx := newTestContext(t)
	admin := seedUser(t, svcCtx, "admin", model.RoleAdmin)
	lead := seedUser(t, svcCtx, "lead", model.RoleProjektleiter)
	outsider := seedUser(t, svcCtx, "outsider", model.RoleProjektleiter)

	p := seedProject(t, svcCtx, lead, "Messe")
	done := seedProject(t, svcCtx, lead, "Vorbei")
	require.NoError(t, svcCtx.DB.Model(done).Update("status", model.ProjectStatusAbgeschlossen).Error)
	seedProject(t, svcCtx, admin, "Fremd")

	_, err := NewParticipantLogic(testCtx(), svcCtx).Create(lead, &types.ParticipantRequest{ProjectID: p.ID, LastName: ptr("Muster")})
	require.NoError(t, err)

	ra := seedAssessment(t, NewCatalogLogic(testCtx(), svcCtx), admin, "Rigging", risk.Criteria{})
	_, err = NewProjectLogic(testCtx(), svcCtx).SetHazards(lead, p.ID, &types.IDsRequest{IDs: []uint{ra.ID}})
	require.NoError(t, err)
	_, err = NewGBULogic(testCtx(), svcCtx).CreateGefaehrdung(lead, &types.GefaehrdungRequest{
		ProjectID: &p.ID, Taetigkeit: ptr("Kran"), Schadenschwere: ptr(5), Wahrscheinlichkeit: ptr(5),
	})
	require.NoError(t, err)

	d, err := NewDashboardLogic(testCtx(), svcCtx).Get(lead)
	require.NoError(t, err)
	assert.EqualValues(t, 2, d.TotalProjects)
	assert.EqualValues(t, 1, d.PlanningProjects)
	assert.EqualValues(t, 1, d.ProjectsByStatus[model.ProjectStatusAbgeschlossen])
	assert.EqualValues(t, 0, d.ActiveProjects)
	assert.Equal(t, types.SignatureStats{Total: 1, Pending: 1}, d.Participants)
	assert.EqualValues(t, 1, d.HazardsByBand[string(risk.LevelMittel)])
	assert.EqualValues(t, 1, d.HazardsByBand[string(risk.LevelSehrHoch)])
	assert.EqualValues(t, 0, d.HazardsByBand[string(risk.LevelNiedrig)])
	require.Len(t, d.Upcoming, 1)
	assert.Equal(t, "Messe", d.Upcoming[0].Name)

	all, err := NewDashboardLogic(testCtx(), svcCtx).Get(admin)
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.TotalProjects)
	assert.Len(t, all.Upcoming, 2)

	empty, err := NewDashboardLogic(testCtx(), svcCtx).Get(outsider)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalProjects)
	assert.Empty(t, empty.Upcoming)
}
