package logic

import (
	"bytes"
	"errors"
	"testing"

	"github.com/PetA199003/GBU-Management/common/errorx"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/report"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGBUReportGrouping(t *testing.T) {
	svcCtx := newTestContext(t)
	admin := seedUser(t, svcCtx, "admin", model.RoleAdmin)
	lead := seedUser(t, svcCtx, "lead", model.RoleProjektleiter)
	staff := seedUser(t, svcCtx, "staff", model.RoleUser)
	p := seedProject(t, svcCtx, lead, "Stadtfest")

	bl := NewBereichLogic(testCtx(), svcCtx)
	ton, err := bl.Create(admin, &types.BereichRequest{Name: "Ton", SortOrder: 2})
	require.NoError(t, err)
	buehne, err := bl.Create(admin, &types.BereichRequest{Name: "Bühne", SortOrder: 1})
	require.NoError(t, err)
	_, err = bl.Create(admin, &types.BereichRequest{Name: "Leer", SortOrder: 3})
	require.NoError(t, err)

	gl := NewGBULogic(testCtx(), svcCtx)
	for _, req := range []*types.GefaehrdungRequest{
		{ProjectID: &p.ID, Taetigkeit: ptr("Ohne Bereich")},
		{ProjectID: &p.ID, BereichID: &ton.ID, Taetigkeit: ptr("Boxen fliegen")},
		{ProjectID: &p.ID, BereichID: &buehne.ID, Taetigkeit: ptr("Podest bauen")},
		{ProjectID: &p.ID, BereichID: &buehne.ID, Taetigkeit: ptr("Vorhang hängen")},
	} {
		_, err := gl.CreateGefaehrdung(lead, req)
		require.NoError(t, err)
	}

	l := NewReportLogic(testCtx(), svcCtx)
	r, err := l.gbuReport(lead, p.ID)
	require.NoError(t, err)
	names := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		names = append(names, s.Bereich)
	}
	assert.Equal(t, []string{"Bühne", "Ton", report.SonstigeBereich}, names)
	assert.Len(t, r.Sections[0].Gefaehrdungen, 2)

	pdf, err := l.GBUPDF(lead, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "GBU_Stadtfest.pdf", pdf.FileName)
	assert.Equal(t, types.ContentTypePDF, pdf.ContentType)
	assert.True(t, bytes.HasPrefix(pdf.Data, []byte("%PDF-")))

	xlsx, err := l.GBUXLSX(lead, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "GBU_Stadtfest.xlsx", xlsx.FileName)
	assert.NotEmpty(t, xlsx.Data)

	_, err = l.GBUPDF(staff, p.ID)
	assert.True(t, errors.Is(err, errorx.ErrForbidden))
}

func TestParticipantsAndUnterweisungPDF(t *testing.T) {
	svcCtx := newTestContext(t)
	lead := seedUser(t, svcCtx, "lead", model.RoleProjektleiter)
	p := seedProject(t, svcCtx, lead, "Messe")
	_, err := NewParticipantLogic(testCtx(), svcCtx).Create(lead, &types.ParticipantRequest{ProjectID: p.ID, LastName: ptr("Muster")})
	require.NoError(t, err)
	u, err := NewUnterweisungLogic(testCtx(), svcCtx).Generate(lead, p.ID)
	require.NoError(t, err)

	l := NewReportLogic(testCtx(), svcCtx)
	list, err := l.ParticipantsPDF(lead, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Teilnehmerliste_Messe.pdf", list.FileName)
	assert.True(t, bytes.HasPrefix(list.Data, []byte("%PDF-")))

	doc, err := l.UnterweisungPDF(lead, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unterweisung_Messe.pdf", doc.FileName)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))

	_, err = l.UnterweisungPDF(lead, 999)
	assert.True(t, errors.Is(err, errorx.ErrNotFound))
}
