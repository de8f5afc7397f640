package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/risk"
)

// SonstigeBereich 未分配区域的危害条目所在分组
const SonstigeBereich = "Sonstige"

// Section 一个区域的危害条目
type Section struct {
	Bereich       string
	Gefaehrdungen []model.Gefaehrdung
}

// GBUReport 项目危害评估报表数据
type GBUReport struct {
	Project  *model.Project
	Sections []Section
}

var gbuColumns = []column{
	{title: "Tätigkeit", width: 45},
	{title: "Gefährdung", width: 55},
	{title: "S-Schwere", width: 16, align: "C", center: true},
	{title: "W-keit", width: 16, align: "C", center: true},
	{title: "Risiko", width: 22, align: "C", center: true},
	{title: "S", width: 9, align: "C", center: true},
	{title: "T", width: 9, align: "C", center: true},
	{title: "O", width: 9, align: "C", center: true},
	{title: "P", width: 9, align: "C", center: true},
	{title: "Maßnahmen", width: 87},
}

var stopLegend = []struct{ label, text string }{
	{"S - Substitution:", "Substitution durch Beseitigung von Gefahren oder Einsatz weniger gefährlicher Stoffe"},
	{"T - Technische Maßnahmen:", "Technische Lösungen zur Risikominimierung"},
	{"O - Organisatorische Maßnahmen:", "Organisatorische und kollektive Lösungen"},
	{"P - Persönliche Schutzausrüstung:", "Persönliche Schutzausrüstung als letzte Maßnahme"},
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func score(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

// riskCell 风险等级文字与颜色
func riskCell(g *model.Gefaehrdung) cell {
	if g.Risikowert == 0 {
		return cell{}
	}
	band := risk.Classify(g.Risikowert)
	return cell{text: fmt.Sprintf("%s (%d)", band.Label, g.Risikowert), fill: band.Color}
}

// measures 总体措施，为空时合并 STOP 各项措施
func measures(g *model.Gefaehrdung) string {
	if strings.TrimSpace(g.Massnahmen) != "" {
		return g.Massnahmen
	}
	parts := make([]string, 0, 4)
	for _, p := range []struct{ key, text string }{
		{"S", g.SMassnahmen}, {"T", g.TMassnahmen}, {"O", g.OMassnahmen}, {"P", g.PMassnahmen},
	} {
		if strings.TrimSpace(p.text) != "" {
			parts = append(parts, p.key+": "+p.text)
		}
	}
	return strings.Join(parts, "\n")
}

func projectInfo(d *document, p *model.Project, withSetting bool) {
	d.labelled("Projekt:", p.Name)
	d.labelled("Ort:", orNA(p.Location))
	d.labelled("Datum:", orNA(p.StartDate.German()))
	if withSetting {
		d.labelled("Saison:", orNA(p.Season.Label())+" | Indoor/Outdoor: "+orNA(string(p.IndoorOutdoor)))
	}
	d.pdf.Ln(4)
}

// GBUPDF 横向 A4 的危害评估总览，每个区域一张表，最后一页为 STOP 原则说明
func GBUPDF(r *GBUReport) ([]byte, error) {
	d := newDocument("L", 10)
	d.title("Gefährdungsbeurteilung - " + r.Project.Name)
	projectInfo(d, r.Project, true)

	for _, section := range r.Sections {
		d.heading("Bereich: " + section.Bereich)
		t := &table{doc: d, columns: gbuColumns, fontSize: 8}
		t.header()
		for i := range section.Gefaehrdungen {
			g := &section.Gefaehrdungen[i]
			t.row([]cell{
				{text: g.Taetigkeit},
				{text: g.Gefaehrdung},
				{text: score(g.Schadenschwere)},
				{text: score(g.Wahrscheinlichkeit)},
				riskCell(g),
				{text: g.SSubstitution.Mark()},
				{text: g.TTechnisch.Mark()},
				{text: g.OOrganisatorisch.Mark()},
				{text: g.PPersoenlich.Mark()},
				{text: measures(g)},
			})
		}
		d.pdf.Ln(5)
	}

	d.pdf.AddPage()
	d.heading("STOP-Prinzip")
	for _, l := range stopLegend {
		d.labelled(l.label, l.text)
	}
	d.pdf.Ln(4)
	d.heading("Risikobewertung")
	for _, b := range risk.Bands {
		c := hexColor(b.Color)
		d.pdf.SetFillColor(c.r, c.g, c.b)
		d.font("", 9)
		d.pdf.CellFormat(30, 6, d.tr(b.Label), "1", 0, "C", true, 0, "")
		d.pdf.CellFormat(0, 6, d.tr(fmt.Sprintf("  Risikowert bis %d", b.Max)), "", 1, "L", false, 0, "")
	}
	return d.bytes()
}
