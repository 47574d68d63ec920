package generator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cmm-group/benchmark-cli/internal/model"
)

// priceUnits maps column-name suffixes to price unit phrases.
var priceUnits = []struct {
	suffix, unit string
}{
	{"_dlb", "dollars per pound"},
	{"_dkg", "dollars per kilogram"},
	{"_dt", "dollars per metric ton"},
	{"_ctslb", "cents per pound"},
}

// weightUnit infers the weight unit from a column-name suffix marker.
func weightUnit(field string) string {
	switch {
	case strings.Contains(field, "_kg"):
		return "kilograms"
	case strings.Contains(field, "_kt"):
		return "thousand metric tons"
	default:
		return "metric tons"
	}
}

// priceUnit infers the price unit from a column-name suffix marker.
func priceUnit(field string) string {
	for _, pu := range priceUnits {
		if strings.Contains(field, pu.suffix) {
			return pu.unit
		}
	}
	return "dollars"
}

// productionLabel cleans a production column name into a prose label:
// "USprod_mine_t" → "mine".
func productionLabel(field string) string {
	label := strings.ReplaceAll(field, "USprod_", "")
	for _, sfx := range []string{"_t", "_kg", "_kt", "_num"} {
		label = strings.ReplaceAll(label, sfx, "")
	}
	return strings.TrimSpace(strings.ReplaceAll(label, "_", " "))
}

// priceLabel cleans a price column name into a prose label:
// "Price_spot_dlb" → "spot".
func priceLabel(field string) string {
	label := strings.ReplaceAll(field, "Price_", "")
	if i := strings.Index(label, "_"); i >= 0 {
		label = label[:i]
	}
	return label
}

// generateSalientQA produces QA pairs from USGS salient statistics: net
// import reliance, US production, prices, trade volumes, price trends, and
// the production-consumption gap.
func (g *Generator) generateSalientQA(key string, records []model.SalientRecord) []model.QAPair {
	var pairs []model.QAPair
	name := g.cat.DisplayName(key)

	for _, r := range records {
		pairs = append(pairs, g.salientNIR(key, name, r)...)
		pairs = append(pairs, g.salientUSProduction(key, name, r)...)
		pairs = append(pairs, g.salientPrices(key, name, r)...)
		pairs = append(pairs, g.salientTradeVolumes(key, name, r)...)
	}
	pairs = append(pairs, g.salientPriceTrend(key, name, records)...)
	for _, r := range records {
		pairs = append(pairs, g.salientProdConsumpGap(key, name, r)...)
	}
	return pairs
}

// salientNIR renders the NIR_pct field. An inequality marker like ">50"
// expands to "greater than 50%" prose instead of the raw marker.
func (g *Generator) salientNIR(key, name string, r model.SalientRecord) []model.QAPair {
	nir, ok := r.Fields["NIR_pct"]
	if !ok {
		return nil
	}

	// The normalizer drops an inequality's direction, so look at the raw
	// cell text before trusting the parsed number.
	raw := strings.TrimSpace(nir.Raw)
	var nirStr, nirSrc string
	switch {
	case strings.HasPrefix(raw, ">"):
		nirStr = fmt.Sprintf("greater than %s%%", strings.TrimSpace(raw[1:]))
		nirSrc = raw
	case strings.HasPrefix(raw, "<"):
		nirStr = fmt.Sprintf("less than %s%%", strings.TrimSpace(raw[1:]))
		nirSrc = raw
	default:
		if v, numeric := nir.Numeric(); numeric {
			nirStr = fmt.Sprintf("%d%%", int(v))
			nirSrc = fmt.Sprintf("%g", v)
		} else {
			nirStr = raw
			nirSrc = raw
		}
	}

	q := fmt.Sprintf("What was the US net import reliance for %s in %d?", name, r.Year)
	a := fmt.Sprintf("According to the USGS Mineral Commodity Summaries (%s), "+
		"US net import reliance for %s in %d was %s of apparent consumption.",
		r.DataSource, name, r.Year, nirStr)
	return []model.QAPair{{
		Question: q, Answer: a, Commodity: key,
		ComplexityLevel: model.LevelL1, TemplateID: "salient_nir",
		SourceData: map[string]any{
			"commodity": key,
			"year":      r.Year,
			"nir_pct":   nirSrc,
			"source":    r.DataSource,
		},
	}}
}

// salientUSProduction emits one statement per numeric production field.
// Withheld markers skip the statement rather than rendering as zero.
func (g *Generator) salientUSProduction(key, name string, r model.SalientRecord) []model.QAPair {
	var pairs []model.QAPair
	for _, field := range sortedFieldNames(r.Fields) {
		if !strings.Contains(field, "USprod") {
			continue
		}
		v, ok := r.Fields[field].Numeric()
		if !ok {
			continue
		}
		unit := weightUnit(field)
		label := productionLabel(field)

		q := fmt.Sprintf("What was US %s production of %s in %d?", label, name, r.Year)
		a := fmt.Sprintf("US %s production of %s in %d was %s, according to %s.",
			label, name, r.Year, fmtNum(v, unit), r.DataSource)
		pairs = append(pairs, model.QAPair{
			Question: q, Answer: a, Commodity: key,
			ComplexityLevel: model.LevelL1, TemplateID: "salient_us_production",
			SourceData: map[string]any{
				"commodity": key,
				"year":      r.Year,
				"field":     field,
				"value":     v,
				"unit":      unit,
				"source":    r.DataSource,
			},
		})
	}
	return pairs
}

// salientPrices emits one statement per recognized numeric price field.
func (g *Generator) salientPrices(key, name string, r model.SalientRecord) []model.QAPair {
	var pairs []model.QAPair
	for _, field := range sortedFieldNames(r.Fields) {
		if !strings.Contains(strings.ToLower(field), "price") {
			continue
		}
		v, ok := r.Fields[field].Numeric()
		if !ok {
			continue
		}
		unit := priceUnit(field)
		label := priceLabel(field)

		q := fmt.Sprintf("What was the %s price of %s in %d?", label, name, r.Year)
		a := fmt.Sprintf("The %s price of %s in %d was %s, as reported in %s.",
			label, name, r.Year, fmtNum(v, unit), r.DataSource)
		pairs = append(pairs, model.QAPair{
			Question: q, Answer: a, Commodity: key,
			ComplexityLevel: model.LevelL1, TemplateID: "salient_price",
			SourceData: map[string]any{
				"commodity": key,
				"year":      r.Year,
				"field":     field,
				"value":     v,
				"unit":      unit,
				"source":    r.DataSource,
			},
		})
	}
	return pairs
}

// salientTradeVolumes emits one statement per numeric Imports_*/Exports_*
// field.
func (g *Generator) salientTradeVolumes(key, name string, r model.SalientRecord) []model.QAPair {
	var pairs []model.QAPair
	for _, field := range sortedFieldNames(r.Fields) {
		if !strings.HasPrefix(field, "Imports_") && !strings.HasPrefix(field, "Exports_") {
			continue
		}
		v, ok := r.Fields[field].Numeric()
		if !ok {
			continue
		}
		direction := "exports"
		if strings.HasPrefix(field, "Imports") {
			direction = "imports"
		}
		unit := weightUnit(field)

		detail := ""
		if i := strings.Index(field, "_"); i >= 0 {
			detail = field[i+1:]
		}
		for _, sfx := range []string{"_t", "_kg", "_kt"} {
			detail = strings.ReplaceAll(detail, sfx, "")
		}
		detail = strings.TrimSpace(strings.ReplaceAll(detail, "_", " "))
		detailStr := ""
		if detail != "" {
			detailStr = fmt.Sprintf(" (%s)", detail)
		}

		q := fmt.Sprintf("What were the US %s %s%s in %d?", name, direction, detailStr, r.Year)
		a := fmt.Sprintf("US %s %s%s in %d totaled %s, according to %s.",
			name, direction, detailStr, r.Year, fmtNum(v, unit), r.DataSource)
		pairs = append(pairs, model.QAPair{
			Question: q, Answer: a, Commodity: key,
			ComplexityLevel: model.LevelL1, TemplateID: "salient_trade_volume",
			SourceData: map[string]any{
				"commodity": key,
				"year":      r.Year,
				"field":     field,
				"value":     v,
				"unit":      unit,
				"source":    r.DataSource,
			},
		})
	}
	return pairs
}

// salientPriceTrend emits one pair per price field shared by two
// consecutive-year records.
func (g *Generator) salientPriceTrend(key, name string, records []model.SalientRecord) []model.QAPair {
	sorted := make([]model.SalientRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	var pairs []model.QAPair
	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		if curr.Year != prev.Year+1 {
			continue
		}
		for _, field := range sortedFieldNames(prev.Fields) {
			if !strings.Contains(strings.ToLower(field), "price") {
				continue
			}
			pv, pok := prev.Fields[field].Numeric()
			cv, cok := curr.Fields[field].Numeric()
			if !pok || !cok || pv == 0 {
				continue
			}
			changePct := (cv - pv) / pv * 100
			direction := "fell"
			if changePct > 0 {
				direction = "rose"
			}
			label := priceLabel(field)

			q := fmt.Sprintf("How did the %s price of %s change from %d to %d?",
				label, name, prev.Year, curr.Year)
			a := fmt.Sprintf("The %s price of %s %s from %s in %d to %s in %d, "+
				"a change of %s.",
				label, name, direction, fmtNum(pv, ""), prev.Year,
				fmtNum(cv, ""), curr.Year, fmtPct(changePct))
			pairs = append(pairs, model.QAPair{
				Question: q, Answer: a, Commodity: key,
				ComplexityLevel: model.LevelL2, TemplateID: "salient_price_trend",
				SourceData: map[string]any{
					"commodity":  key,
					"year_prev":  prev.Year,
					"year_curr":  curr.Year,
					"field":      field,
					"value_prev": pv,
					"value_curr": cv,
					"pct_change": changePct,
				},
			})
		}
	}
	return pairs
}

// salientProdConsumpGap needs one numeric consumption field and at least one
// numeric production field in the same year. The gap sign chooses the
// imports-vs-surplus wording.
func (g *Generator) salientProdConsumpGap(key, name string, r model.SalientRecord) []model.QAPair {
	var totalProd float64
	var haveProd bool
	var consumpKey string
	for _, field := range sortedFieldNames(r.Fields) {
		v, ok := r.Fields[field].Numeric()
		if !ok {
			continue
		}
		if strings.Contains(field, "USprod") {
			totalProd += v
			haveProd = true
		} else if strings.Contains(strings.ToLower(field), "consump") && consumpKey == "" {
			consumpKey = field
		}
	}
	if !haveProd || consumpKey == "" {
		return nil
	}
	consumpVal, _ := r.Fields[consumpKey].Numeric()
	if consumpVal == 0 {
		return nil
	}

	gap := consumpVal - totalProd
	pct := gap / consumpVal * 100
	met := "was in surplus"
	if gap > 0 {
		met = "imports"
	}

	q := fmt.Sprintf("What was the gap between US production and consumption of %s in %d?",
		name, r.Year)
	a := fmt.Sprintf("In %d, US domestic production of %s totaled %s while "+
		"consumption was %s, resulting in a gap of %s (%.1f%% of consumption) "+
		"that needed to be met through %s.",
		r.Year, name, fmtNum(totalProd, ""), fmtNum(consumpVal, ""),
		fmtNum(math.Abs(gap), ""), math.Abs(pct), met)
	return []model.QAPair{{
		Question: q, Answer: a, Commodity: key,
		ComplexityLevel: model.LevelL2, TemplateID: "salient_prod_consump_gap",
		SourceData: map[string]any{
			"commodity":   key,
			"year":        r.Year,
			"production":  totalProd,
			"consumption": consumpVal,
			"gap":         gap,
			"gap_pct":     pct,
		},
	}}
}
