package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/PetA199003/GBU-Management/common/types"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *GBUReport {
	project := &model.Project{
		Name:          "Stadtfest Luzern",
		Location:      "Luzern",
		StartDate:     types.DateOf(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)),
		Season:        risk.SeasonSommer,
		IndoorOutdoor: risk.SettingOutdoor,
	}
	g := model.Gefaehrdung{
		Taetigkeit:         "Bühnenaufbau",
		Gefaehrdung:        "Absturz von Höhen über 2 m",
		Schadenschwere:     4,
		Wahrscheinlichkeit: 3,
		TTechnisch:         model.StopWahr,
		PPersoenlich:       model.StopWahr,
		PMassnahmen:        "Auffanggurt",
	}
	_ = g.ApplyRisk()
	return &GBUReport{
		Project: project,
		Sections: []Section{
			{Bereich: "Bühne", Gefaehrdungen: []model.Gefaehrdung{g}},
			{Bereich: SonstigeBereich},
		},
	}
}

func TestGBUPDF(t *testing.T) {
	data, err := GBUPDF(sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestGBUPDFManyRowsBreaksPages(t *testing.T) {
	r := sampleReport()
	rows := make([]model.Gefaehrdung, 60)
	for i := range rows {
		rows[i] = r.Sections[0].Gefaehrdungen[0]
		rows[i].Massnahmen = strings.Repeat("Absperrung und Einweisung. ", 6)
	}
	r.Sections[0].Gefaehrdungen = rows
	data, err := GBUPDF(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestParticipantsPDF(t *testing.T) {
	signed := types.Now()
	data, err := ParticipantsPDF(sampleReport().Project, []model.Participant{
		{FirstName: "Anna", LastName: "Müller", Company: "Licht AG", SignatureType: model.SignatureDigital, SignedAt: &signed},
		{FirstName: "Jörg", LastName: "Ärni", SignatureType: model.SignaturePending},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestParticipantsPDFUmlautNames(t *testing.T) {
	data, err := ParticipantsPDF(&model.Project{Name: "Märchenfestival Groß-Gerau"}, []model.Participant{
		{FirstName: "Jürgen", LastName: "Müller", Company: "Bühnentechnik Süd", Position: "Bühnenmeister"},
		{FirstName: "Änne", LastName: "Groß", Company: "Straßenbau GmbH", SignatureType: model.SignatureAnalog},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestGBUPDFUmlautHeaders(t *testing.T) {
	r := &GBUReport{
		Project: &model.Project{Name: "Aufbau"},
		Sections: []Section{{Bereich: "Aufbau", Gefaehrdungen: []model.Gefaehrdung{{
			Taetigkeit:  "Traversen heben",
			Gefaehrdung: "Quetschgefährdung durch schwebende Lasten",
			Massnahmen:  "Gefährdungsbereich absperren, Schutzschuhe tragen, Maßnahmen überprüfen",
		}}}},
	}
	data, err := GBUPDF(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestWrapTranslatesToCp1252(t *testing.T) {
	d := newDocument("P", 10)
	d.font("", 9)
	lines := d.wrap("Gefährdung Maßnahmen Tätigkeit Überprüfung der Wirksamkeit", 30)
	require.Greater(t, len(lines), 1)
	joined := strings.Join(lines, " ")
	assert.Contains(t, joined, "Gef\xe4hrdung")
	assert.Contains(t, joined, "Ma\xdfnahmen")
	assert.Empty(t, d.wrap("", 30))
}

func TestUnterweisungPDF(t *testing.T) {
	u := &model.Unterweisung{
		Title:         "Regeln",
		Veranstaltung: "Stadtfest",
		Organisation:  "• Verantwortlich ist der Technische Leiter",
		Items: []model.UnterweisungItem{
			{Section: itemSectionNotfaelle, Content: "Brände sind sofort zu melden"},
		},
	}
	data, err := UnterweisungPDF(u, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestItemText(t *testing.T) {
	items := []model.UnterweisungItem{
		{Section: itemSectionAllgemein, Content: "A"},
		{Section: itemSectionNotfaelle, Content: "B"},
		{Section: itemSectionAllgemein, Content: " "},
		{Section: itemSectionAllgemein, Content: "C"},
	}
	assert.Equal(t, "• A\n• C", itemText(items, itemSectionAllgemein))
	assert.Empty(t, itemText(items, "sonst"))
}

func TestGBUXLSX(t *testing.T) {
	data, err := GBUXLSX(sampleReport())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Bühne", SonstigeBereich}, f.GetSheetList())
	rows, err := f.GetRows("Bühne")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Tätigkeit", rows[0][0])
	assert.Equal(t, "Bühnenaufbau", rows[1][0])
	assert.Equal(t, "12", rows[1][6])
	assert.Equal(t, "Hoch", rows[1][7])
	assert.Equal(t, "X", rows[1][9])
	assert.Equal(t, "P: Auffanggurt", rows[1][12])
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{}
	assert.Equal(t, "Licht_Ton", sheetName("Licht/Ton", used))
	long := strings.Repeat("x", 40)
	first := sheetName(long, used)
	assert.Len(t, first, maxSheetName)
	second := sheetName(long, used)
	assert.Len(t, second, maxSheetName)
	assert.True(t, strings.HasSuffix(second, " (2)"))
	assert.Equal(t, SonstigeBereich, sheetName("  ", used))
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, rgb{0x1a, 0x23, 0x7e}, hexColor(HeaderColor))
	assert.Equal(t, rgb{255, 255, 255}, hexColor("zz"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "GBU_Stadtfest_Luzern_2026.pdf", FileName("GBU", "Stadtfest Luzern 2026", "pdf"))
	assert.Equal(t, "Teilnehmer.pdf", FileName("Teilnehmer", "///", "pdf"))
}
