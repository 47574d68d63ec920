package loader

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/cmm-group/benchmark-cli/internal/model"
)

// salientFixedCols are the identity columns promoted to typed fields; every
// other column is commodity-specific and lands in the record's field map.
var salientFixedCols = map[string]struct{}{
	"datasource": {},
	"commodity":  {},
	"year":       {},
}

// LoadSalient loads a USGS MCS salient statistics extract. Rows with an
// unparsable year are treated as blank/trailing and dropped. Variable cells
// normalize to numeric field values, falling back to the raw marker string
// so templates can still render values like ">50".
func LoadSalient(path, commodityKey string) ([]model.SalientRecord, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	var variableCols []string
	for _, col := range t.header {
		if _, fixed := salientFixedCols[normalizeCol(col)]; !fixed {
			variableCols = append(variableCols, col)
		}
	}

	records := make([]model.SalientRecord, 0, len(t.rows))
	for _, row := range t.rows {
		yearRaw := t.get(row, "Year")
		if yearRaw == "" {
			continue // trailing/empty row
		}
		yearF, err := strconv.ParseFloat(yearRaw, 64)
		if err != nil {
			continue
		}

		fields := make(map[string]model.FieldValue, len(variableCols))
		for _, col := range variableCols {
			raw := t.get(row, col)
			if v, ok := ParseNumeric(raw); ok {
				fields[col] = model.NumericField(v, raw)
			} else if raw != "" {
				fields[col] = model.MarkerField(raw)
			}
			// empty cell stays absent
		}

		commodity := t.get(row, "Commodity")
		if commodity == "" {
			commodity = commodityKey
		}
		records = append(records, model.SalientRecord{
			DataSource: t.get(row, "DataSource"),
			Commodity:  commodity,
			Year:       int(yearF),
			Fields:     fields,
		})
	}

	zap.L().Info("loaded salient records",
		zap.String("commodity", commodityKey),
		zap.String("file", path),
		zap.Int("rows", len(records)))
	return records, nil
}
