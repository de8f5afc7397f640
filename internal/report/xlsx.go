package report

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

var xlsxHeaders = []string{
	"Tätigkeit", "Gefährdung", "Gefährdungsfaktoren", "Belastungsfaktoren",
	"Schadenschwere", "Wahrscheinlichkeit", "Risikowert", "Risikobewertung",
	"S", "T", "O", "P", "Maßnahmen", "Gesetzliche Regelungen", "Sonstige Bemerkungen",
}

var xlsxWidths = []float64{30, 40, 25, 25, 14, 16, 12, 16, 5, 5, 5, 5, 50, 30, 30}

// sheetName 去掉 Excel 不允许的字符并截断到 31 个字符，重名时追加序号
func sheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if clean == "" {
		clean = SonstigeBereich
	}
	clean = truncate(clean, maxSheetName)

	candidate := clean
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := " (" + strconv.Itoa(n) + ")"
		candidate = truncate(clean, maxSheetName-utf8.RuneCountInString(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// GBUXLSX 每个区域一个工作表
func GBUXLSX(r *GBUReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{HeaderColor}},
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, err
	}

	sections := r.Sections
	if len(sections) == 0 {
		sections = []Section{{Bereich: SonstigeBereich}}
	}

	used := make(map[string]bool)
	first := ""
	for _, section := range sections {
		name := sheetName(section.Bereich, used)
		if first == "" {
			first = name
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}

		header := make([]any, len(xlsxHeaders))
		for i, h := range xlsxHeaders {
			header[i] = h
		}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return nil, err
		}
		last, _ := excelize.ColumnNumberToName(len(xlsxHeaders))
		if err := f.SetCellStyle(name, "A1", last+"1", headerStyle); err != nil {
			return nil, err
		}
		for i, w := range xlsxWidths {
			col, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetColWidth(name, col, col, w); err != nil {
				return nil, err
			}
		}

		for i := range section.Gefaehrdungen {
			g := &section.Gefaehrdungen[i]
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			row := []any{
				g.Taetigkeit, g.Gefaehrdung, g.Gefaehrdungsfaktoren, g.Belastungsfaktoren,
				g.Schadenschwere, g.Wahrscheinlichkeit, g.Risikowert, g.Risikobewertung,
				g.SSubstitution.Mark(), g.TTechnisch.Mark(), g.OOrganisatorisch.Mark(), g.PPersoenlich.Mark(),
				measures(g), g.GesetzlicheRegelungen, g.SonstigeBemerkungen,
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return nil, err
			}
		}
		if n := len(section.Gefaehrdungen); n > 0 {
			end, _ := excelize.CoordinatesToCellName(len(xlsxHeaders), n+1)
			if err := f.SetCellStyle(name, "A2", end, wrapStyle); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
