// Package model holds the typed records, QA pairs, and evaluation results
// shared across the benchmark pipeline.
package model

// TradeFlowRecord is a single UN Comtrade trade flow observation for one
// (commodity, HS code, reporter, partner, flow, year).
type TradeFlowRecord struct {
	Commodity    string   `json:"commodity"`
	HSCode       string   `json:"hs_code"`
	ReporterCode string   `json:"reporter_code"`
	ReporterDesc string   `json:"reporter_desc,omitempty"`
	PartnerCode  string   `json:"partner_code"`
	PartnerDesc  string   `json:"partner_desc,omitempty"`
	FlowCode     string   `json:"flow_code"` // "M" or "X"
	Year         int      `json:"year"`
	PrimaryValue *float64 `json:"primary_value,omitempty"` // USD
	NetWeight    *float64 `json:"net_weight,omitempty"`    // kg
	Quantity     *float64 `json:"quantity,omitempty"`
	QtyUnit      string   `json:"qty_unit,omitempty"`
}

// FieldValue is one cell of a salient record. Num carries the normalized
// number when the cell parsed; Raw always keeps the original cell text so
// templates can re-inspect markers like ">50", whose direction the
// normalizer drops. Absent cells are simply missing from the record's
// field map.
type FieldValue struct {
	Num *float64 `json:"num,omitempty"`
	Raw string   `json:"raw,omitempty"`
}

// NumericField wraps a parsed numeric value together with its source text.
func NumericField(v float64, raw string) FieldValue {
	return FieldValue{Num: &v, Raw: raw}
}

// MarkerField wraps a raw non-numeric marker string.
func MarkerField(s string) FieldValue {
	return FieldValue{Raw: s}
}

// Numeric returns the parsed value and whether the cell is numeric.
func (f FieldValue) Numeric() (float64, bool) {
	if f.Num == nil {
		return 0, false
	}
	return *f.Num, true
}

// Marker returns the raw marker string and whether the cell is non-numeric.
func (f FieldValue) Marker() (string, bool) {
	if f.Num != nil {
		return "", false
	}
	return f.Raw, true
}

// SalientRecord is one year-row from a USGS MCS salient statistics table.
// Each commodity has a different column schema, so everything beyond the
// three fixed identity columns lives in Fields.
type SalientRecord struct {
	DataSource string                `json:"data_source"` // e.g. "MCS2023"
	Commodity  string                `json:"commodity"`
	Year       int                   `json:"year"`
	Fields     map[string]FieldValue `json:"fields"`
}

// WorldProductionRecord is one country-row from a USGS MCS world mine
// production table. The two production slots correspond to the two
// year-encoded columns of the source release.
type WorldProductionRecord struct {
	Source          string   `json:"source"` // e.g. "MCS2023"
	Commodity       string   `json:"commodity"`
	Country         string   `json:"country"`
	ProductionType  string   `json:"production_type"`
	ProductionYear1 *float64 `json:"production_year1,omitempty"`
	Year1Label      string   `json:"year1_label,omitempty"` // e.g. "2021"
	ProductionYear2 *float64 `json:"production_year2,omitempty"`
	Year2Label      string   `json:"year2_label,omitempty"` // e.g. "2022 (est.)"
	ProductionNotes string   `json:"production_notes,omitempty"`
	Reserves        *float64 `json:"reserves,omitempty"`
	ReservesNotes   string   `json:"reserves_notes,omitempty"`
}

// Dataset groups all loaded records by commodity key.
type Dataset struct {
	Trade   map[string][]TradeFlowRecord
	Salient map[string][]SalientRecord
	World   map[string][]WorldProductionRecord
}

// CommodityKeys returns the union of commodity keys across all three
// record families.
func (d *Dataset) CommodityKeys() []string {
	seen := make(map[string]bool)
	for k := range d.Trade {
		seen[k] = true
	}
	for k := range d.Salient {
		seen[k] = true
	}
	for k := range d.World {
		seen[k] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	return keys
}
