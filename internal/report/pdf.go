// Package report 生成 PDF 和 XLSX 报表
package report

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
)

// HeaderColor 表头和标题颜色
const HeaderColor = "#1a237e"

const (
	fontFamily = "Helvetica"
	lineHeight = 4.2
	cellPad    = 1.2
)

type rgb struct{ r, g, b int }

// hexColor 解析 #rrggbb，无法解析时返回白色
func hexColor(hex string) rgb {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return rgb{255, 255, 255}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rgb{255, 255, 255}
	}
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}

// document 对 fpdf 的薄封装，负责 UTF-8 到 cp1252 的转换
type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDocument(orientation string, margin float64) *document {
	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AliasNbPages("")
	d := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-margin + 2)
		d.font("", 7)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 4, d.tr("Seite "+strconv.Itoa(pdf.PageNo())+" von {nb}"), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()
	return d
}

func (d *document) font(style string, size float64) {
	d.pdf.SetFont(fontFamily, style, size)
}

// title 居中标题
func (d *document) title(text string) {
	c := hexColor(HeaderColor)
	d.font("B", 16)
	d.pdf.SetTextColor(c.r, c.g, c.b)
	d.pdf.MultiCell(0, 8, d.tr(text), "", "C", false)
	d.pdf.Ln(4)
	d.pdf.SetTextColor(0, 0, 0)
}

// heading 小节标题
func (d *document) heading(text string) {
	c := hexColor(HeaderColor)
	d.font("B", 12)
	d.pdf.SetTextColor(c.r, c.g, c.b)
	d.pdf.Ln(2)
	d.pdf.CellFormat(0, 7, d.tr(text), "", 1, "L", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
}

// paragraph 正文
func (d *document) paragraph(text string, size float64) {
	d.font("", size)
	d.pdf.MultiCell(0, lineHeight+0.6, d.tr(text), "", "L", false)
}

// labelled 粗体标签加正文
func (d *document) labelled(label, value string) {
	d.font("B", 9)
	w := d.pdf.GetStringWidth(d.tr(label)) + 1.5
	d.pdf.CellFormat(w, lineHeight+1, d.tr(label), "", 0, "L", false, 0, "")
	d.font("", 9)
	d.pdf.MultiCell(0, lineHeight+1, d.tr(value), "", "L", false)
}

// wrap 按列宽折行，先转 cp1252 再按字节宽度拆分
func (d *document) wrap(text string, width float64) []string {
	var lines []string
	for _, ln := range d.pdf.SplitLines([]byte(d.tr(text)), width) {
		lines = append(lines, string(ln))
	}
	return lines
}

func (d *document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// column 表格列
type column struct {
	title  string
	width  float64
	align  string
	center bool
}

// cell 表格单元，fill 为空时不填充
type cell struct {
	text string
	fill string
}

// table 自动换行并在分页时重复表头的表格
type table struct {
	doc      *document
	columns  []column
	fontSize float64
}

func (t *table) header() {
	d := t.doc
	c := hexColor(HeaderColor)
	d.font("B", t.fontSize)
	d.pdf.SetFillColor(c.r, c.g, c.b)
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.SetDrawColor(128, 128, 128)

	height := 0.0
	lines := make([][]string, len(t.columns))
	for i, col := range t.columns {
		lines[i] = d.wrap(col.title, col.width-2*cellPad)
		if h := float64(len(lines[i]))*lineHeight + 2*cellPad; h > height {
			height = h
		}
	}
	t.draw(lines, height, func(int) string { return HeaderColor })
	d.pdf.SetTextColor(0, 0, 0)
}

// row 绘制一行，空间不足时换页并重绘表头
func (t *table) row(cells []cell) {
	d := t.doc
	d.font("", t.fontSize)

	height := lineHeight + 2*cellPad
	lines := make([][]string, len(t.columns))
	for i, col := range t.columns {
		text := ""
		if i < len(cells) {
			text = cells[i].text
		}
		lines[i] = d.wrap(text, col.width-2*cellPad)
		if len(lines[i]) == 0 {
			lines[i] = []string{""}
		}
		if h := float64(len(lines[i]))*lineHeight + 2*cellPad; h > height {
			height = h
		}
	}

	_, pageH := d.pdf.GetPageSize()
	_, _, _, bottom := d.pdf.GetMargins()
	if d.pdf.GetY()+height > pageH-bottom {
		d.pdf.AddPage()
		t.header()
		d.font("", t.fontSize)
	}
	t.draw(lines, height, func(i int) string {
		if i < len(cells) {
			return cells[i].fill
		}
		return ""
	})
}

func (t *table) draw(lines [][]string, height float64, fill func(int) string) {
	pdf := t.doc.pdf
	x, y := pdf.GetX(), pdf.GetY()
	for i, col := range t.columns {
		style := "D"
		if f := fill(i); f != "" {
			c := hexColor(f)
			pdf.SetFillColor(c.r, c.g, c.b)
			style = "FD"
		}
		pdf.Rect(x, y, col.width, height, style)

		align := col.align
		if align == "" {
			align = "L"
		}
		textY := y + cellPad
		if col.center {
			textY = y + (height-float64(len(lines[i]))*lineHeight)/2
		}
		for j, line := range lines[i] {
			pdf.SetXY(x+cellPad, textY+float64(j)*lineHeight)
			pdf.CellFormat(col.width-2*cellPad, lineHeight, line, "", 0, align, false, 0, "")
		}
		x += col.width
	}
	left, _, _, _ := pdf.GetMargins()
	pdf.SetXY(left, y+height)
}

var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// FileName 生成下载文件名
func FileName(prefix, name, ext string) string {
	clean := strings.Trim(unsafeFileChars.ReplaceAllString(name, "_"), "_")
	if clean == "" {
		return prefix + "." + ext
	}
	return prefix + "_" + clean + "." + ext
}
