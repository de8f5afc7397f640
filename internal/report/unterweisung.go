package report

import (
	"strings"
	"time"

	"github.com/PetA199003/GBU-Management/common/types"
	"github.com/PetA199003/GBU-Management/internal/model"
)

// 条目段落代码，与 logic 中的默认条目一致
const (
	itemSectionAllgemein = "allgemeine_hinweise"
	itemSectionNotfaelle = "notfaelle"
)

// itemText 某段落下的条目，逐行以圆点开头
func itemText(items []model.UnterweisungItem, section string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if item.Section == section && strings.TrimSpace(item.Content) != "" {
			lines = append(lines, "• "+item.Content)
		}
	}
	return strings.Join(lines, "\n")
}

// UnterweisungPDF 安全交底文档，段落文字为空时改用该段落的条目，仍为空则跳过
func UnterweisungPDF(u *model.Unterweisung, now time.Time) ([]byte, error) {
	d := newDocument("P", 20)
	title := u.Title
	if title == "" {
		title = "Unterweisung"
	}
	d.title(title)

	if u.Veranstaltung != "" {
		d.labelled("Veranstaltung:", u.Veranstaltung)
	}
	if u.DatumOrt != "" {
		d.labelled("Datum und Ort:", u.DatumOrt)
	}
	d.pdf.Ln(3)

	for _, s := range []struct{ heading, text, items string }{
		{"Organisation", u.Organisation, ""},
		{"Allgemeine Hinweise", u.AllgemeineHinweise, itemSectionAllgemein},
		{"Notfälle, Räumung", u.NotfaelleRaeumung, itemSectionNotfaelle},
		{"Zusätzliche Regeln", u.ZusaetzlicheRegeln, ""},
	} {
		text := s.text
		if strings.TrimSpace(text) == "" && s.items != "" {
			text = itemText(u.Items, s.items)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		d.heading(s.heading)
		d.paragraph(text, 9)
		d.pdf.Ln(3)
	}
	if u.Content != "" {
		d.paragraph(u.Content, 9)
	}

	d.pdf.Ln(8)
	d.paragraph("Erstellt am "+types.DateOf(now).German(), 9)
	return d.bytes()
}
