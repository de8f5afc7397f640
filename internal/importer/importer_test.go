package importer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	data := "first_name,last_name,email,position,company\n" +
		" Anna , Schmidt ,anna@example.de,Rigger,Stagehands GmbH\n" +
		",,,,\n" +
		",,ohne@name.de,,\n"

	rows, err := Parse("teilnehmer.csv", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Anna", rows[0].FirstName)
	assert.Equal(t, "Schmidt", rows[0].LastName)
	assert.Equal(t, "Stagehands GmbH", rows[0].Company)
	assert.Equal(t, 2, rows[0].Line)
	assert.NoError(t, rows[0].Validate())

	assert.Equal(t, 4, rows[1].Line)
	assert.EqualError(t, rows[1].Validate(), "Zeile 4: Vor- oder Nachname erforderlich")
}

func TestParseCSVSemicolonGermanHeader(t *testing.T) {
	data := "\ufeffVorname;Nachname;E-Mail;Funktion;Firma\nJonas;Weber;jonas@example.de;Licht;Lichtwerk\n"

	rows, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{
		Line:      2,
		FirstName: "Jonas",
		LastName:  "Weber",
		Email:     "jonas@example.de",
		Position:  "Licht",
		Company:   "Lichtwerk",
	}, rows[0])
}

func TestParseCSVShortRows(t *testing.T) {
	data := "first_name,last_name,email\nMia\n"

	rows, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Mia", rows[0].FirstName)
	assert.Empty(t, rows[0].LastName)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"first_name", "last_name", "email", "position", "company"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Lena", "Fischer", "lena@example.de", "Ton", "Klangbau"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"Paul", "Becker"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := Parse("Liste.XLSX", &buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Lena", rows[0].FirstName)
	assert.Equal(t, "Klangbau", rows[0].Company)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Becker", rows[1].LastName)
	assert.Equal(t, 4, rows[1].Line)
}

func TestParseUnsupported(t *testing.T) {
	_, err := Parse("liste.pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseEmpty(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
