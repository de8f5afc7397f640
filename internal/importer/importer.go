// Package importer 解析参与者名单，支持 CSV 和 XLSX
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat 不支持的文件类型
var ErrUnsupportedFormat = errors.New("Dateiformat nicht unterstützt, erlaubt sind .csv und .xlsx")

// Row 名单中的一行
type Row struct {
	Line      int    `csv:"-"`
	FirstName string `csv:"first_name"`
	LastName  string `csv:"last_name"`
	Email     string `csv:"email"`
	Position  string `csv:"position"`
	Company   string `csv:"company"`
}

// Validate 至少需要姓或名
func (r *Row) Validate() error {
	if r.FirstName == "" && r.LastName == "" {
		return fmt.Errorf("Zeile %d: Vor- oder Nachname erforderlich", r.Line)
	}
	return nil
}

// 表头别名，键为小写
var headerAliases = map[string]string{
	"first_name":  "first_name",
	"firstname":   "first_name",
	"vorname":     "first_name",
	"last_name":   "last_name",
	"lastname":    "last_name",
	"nachname":    "last_name",
	"name":        "last_name",
	"email":       "email",
	"e-mail":      "email",
	"mail":        "email",
	"position":    "position",
	"funktion":    "position",
	"company":     "company",
	"firma":       "company",
	"unternehmen": "company",
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if alias, ok := headerAliases[key]; ok {
			key = alias
		}
		out[i] = key
	}
	return out
}

// Parse 按文件扩展名选择解析器
func Parse(filename string, r io.Reader) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(r)
	case ".xlsx":
		return ParseXLSX(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ParseCSV 解析 CSV，分隔符为逗号或分号
func ParseCSV(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV konnte nicht gelesen werden: %w", err)
	}
	return decode(records)
}

// detectDelimiter 按表头行中出现次数选择分隔符
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

// ParseXLSX 解析第一个工作表，第一行为表头
func ParseXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("XLSX konnte nicht gelesen werden: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []Row{}, nil
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("XLSX konnte nicht gelesen werden: %w", err)
	}
	return decode(records)
}

// decode 规范化表头后交给 gocsv 映射到 Row，空行被跳过
func decode(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return []Row{}, nil
	}
	header := normalizeHeader(records[0])

	kept := [][]string{header}
	lines := make([]int, 0, len(records)-1)
	for i, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		// 行长度与表头对齐
		padded := make([]string, len(header))
		copy(padded, rec)
		kept = append(kept, padded)
		lines = append(lines, i+2)
	}

	rows := make([]Row, 0, len(lines))
	if len(lines) == 0 {
		return rows, nil
	}
	if err := gocsv.UnmarshalCSV(&recordReader{records: kept}, &rows); err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Line = lines[i]
		rows[i].FirstName = strings.TrimSpace(rows[i].FirstName)
		rows[i].LastName = strings.TrimSpace(rows[i].LastName)
		rows[i].Email = strings.TrimSpace(rows[i].Email)
		rows[i].Position = strings.TrimSpace(rows[i].Position)
		rows[i].Company = strings.TrimSpace(rows[i].Company)
	}
	return rows, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// recordReader 以 gocsv.CSVReader 的形式提供已读取的记录
type recordReader struct {
	records [][]string
	pos     int
}

func (r *recordReader) Read() ([]string, error) {
	if r.pos >= len(r.records) {
		return nil, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	rest := r.records[r.pos:]
	r.pos = len(r.records)
	return rest, nil
}
