package loader

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// table is an in-memory tabular extract with normalized-name column lookup.
type table struct {
	header []string
	rows   [][]string
	cols   map[string]int
}

// readTable loads a CSV or XLSX file into a table. The first row is the
// header. Extracts arrive in both formats depending on the ingestion stage.
func readTable(path string) (*table, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readXLSXRows(path)
	} else {
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, eris.Errorf("table: %s is empty", path)
	}
	return &table{
		header: rows[0],
		rows:   rows[1:],
		cols:   mapColumns(rows[0]),
	}, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "table: open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // schemas vary per commodity
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "table: read csv %s", path)
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "table: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("table: %s has no sheets", path)
	}
	sheet := f.Sheets[0]
	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = c.Value
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// normalizeCol lowercases and trims for cross-format column matching.
func normalizeCol(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mapColumns builds a normalized column name → index map.
func mapColumns(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[normalizeCol(col)] = i
	}
	return m
}

// get returns a column value from a row by normalized name, or "" when the
// column is absent or the row is short.
func (t *table) get(row []string, name string) string {
	idx, ok := t.cols[normalizeCol(name)]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// getFirst returns the first non-empty value among the named columns.
// Used where extracts disagree on a column name (e.g. "query_year" vs
// "refYear").
func (t *table) getFirst(row []string, names ...string) string {
	for _, name := range names {
		if v := t.get(row, name); v != "" {
			return v
		}
	}
	return ""
}
