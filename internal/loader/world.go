package loader

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/cmm-group/benchmark-cli/internal/model"
)

var yearDigits = regexp.MustCompile(`\d{4}`)

// yearLabel derives a production-year label from a year-encoded column name:
// "Prod_t_2021" → "2021", "Prod_t_est_2022" → "2022 (est.)".
func yearLabel(col string) string {
	year := yearDigits.FindString(col)
	if year == "" {
		return ""
	}
	if strings.Contains(strings.ToLower(col), "est") {
		return year + " (est.)"
	}
	return year
}

// LoadWorldProduction loads a USGS MCS world mine production extract.
// The two production-year slots are detected from column names by
// year-digit extraction; reserves and both notes columns are carried
// through unmodified.
func LoadWorldProduction(path, commodityKey string) ([]model.WorldProductionRecord, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	var prodCols []string
	for _, col := range t.header {
		if strings.HasPrefix(col, "Prod_") && yearDigits.MatchString(col) {
			prodCols = append(prodCols, col)
		}
	}
	var col1, col2, label1, label2 string
	if len(prodCols) > 0 {
		col1 = prodCols[0]
		label1 = yearLabel(col1)
	}
	if len(prodCols) > 1 {
		col2 = prodCols[1]
		label2 = yearLabel(col2)
	}

	records := make([]model.WorldProductionRecord, 0, len(t.rows))
	for _, row := range t.rows {
		commodity := commodityKey
		if commodity == "" {
			commodity = t.get(row, "Commodity")
		}
		rec := model.WorldProductionRecord{
			Source:          t.get(row, "Source"),
			Commodity:       commodity,
			Country:         t.get(row, "Country"),
			ProductionType:  t.get(row, "Type"),
			ProductionNotes: t.get(row, "Prod_notes"),
			Reserves:        numericPtr(t.get(row, "Reserves_t")),
			ReservesNotes:   t.get(row, "Reserves_notes"),
		}
		if col1 != "" {
			rec.ProductionYear1 = numericPtr(t.get(row, col1))
			rec.Year1Label = label1
		}
		if col2 != "" {
			rec.ProductionYear2 = numericPtr(t.get(row, col2))
			rec.Year2Label = label2
		}
		records = append(records, rec)
	}

	zap.L().Info("loaded world production records",
		zap.String("commodity", commodityKey),
		zap.String("file", path),
		zap.Int("rows", len(records)))
	return records, nil
}
