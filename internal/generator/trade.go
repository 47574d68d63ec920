package generator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cmm-group/benchmark-cli/internal/catalog"
	"github.com/cmm-group/benchmark-cli/internal/model"
)

// generateTradeQA produces QA pairs from trade flow records: direct totals,
// bilateral flows, quantities, year-over-year changes, trade balances, and
// import concentration.
func (g *Generator) generateTradeQA(key string, records []model.TradeFlowRecord) []model.QAPair {
	var pairs []model.QAPair
	name := g.cat.DisplayName(key)

	for _, r := range records {
		if r.PrimaryValue == nil {
			continue
		}
		reporter := catalog.CountryName(r.ReporterCode)
		partner := catalog.CountryName(r.PartnerCode)
		flow := catalog.FlowName(r.FlowCode)
		val := fmtUSD(*r.PrimaryValue)
		src := map[string]any{
			"commodity": key,
			"reporter":  reporter,
			"partner":   partner,
			"flow":      r.FlowCode,
			"year":      r.Year,
			"value_usd": *r.PrimaryValue,
		}

		if r.PartnerCode == catalog.WorldPartnerCode {
			q := fmt.Sprintf("What was the total value of %s %s by %s in %d?",
				name, strings.ToLower(flow), reporter, r.Year)
			a := fmt.Sprintf("In %d, %s's total %s %s were valued at %s (USD), "+
				"based on UN Comtrade data for HS code %s.",
				r.Year, reporter, name, strings.ToLower(flow), val, r.HSCode)
			pairs = append(pairs, model.QAPair{
				Question: q, Answer: a, Commodity: key,
				ComplexityLevel: model.LevelL1, TemplateID: "trade_total_value",
				SourceData: src,
			})
		}

		if r.PartnerCode != catalog.WorldPartnerCode {
			q := fmt.Sprintf("How much did %s %s in %s from %s in %d?",
				reporter, flowNoun(r.FlowCode), name, partner, r.Year)
			a := fmt.Sprintf("%s %s %s worth of %s (HS %s) %s %s in %d, "+
				"according to UN Comtrade data.",
				reporter, flowVerb(r.FlowCode), val, name, r.HSCode,
				flowPrep(r.FlowCode), partner, r.Year)
			pairs = append(pairs, model.QAPair{
				Question: q, Answer: a, Commodity: key,
				ComplexityLevel: model.LevelL1, TemplateID: "trade_bilateral",
				SourceData: src,
			})
		}

		if r.NetWeight != nil && *r.NetWeight != 0 && r.PartnerCode == catalog.WorldPartnerCode {
			wt := fmtWeight(*r.NetWeight)
			q := fmt.Sprintf("What was the quantity of %s %s by %s in %d?",
				name, strings.ToLower(flow), reporter, r.Year)
			a := fmt.Sprintf("%s %s %s of %s in %d (HS %s), with a trade value of %s.",
				reporter, flowVerb(r.FlowCode), wt, name, r.Year, r.HSCode, val)
			srcW := copySource(src)
			srcW["net_weight_kg"] = *r.NetWeight
			pairs = append(pairs, model.QAPair{
				Question: q, Answer: a, Commodity: key,
				ComplexityLevel: model.LevelL1, TemplateID: "trade_quantity",
				SourceData: srcW,
			})
		}
	}

	pairs = append(pairs, g.tradeYoYChange(key, name, records)...)
	pairs = append(pairs, g.tradeBalance(key, name, records)...)
	pairs = append(pairs, g.tradeImportConcentration(key, name, records)...)
	return pairs
}

// tradeYoYChange emits one pair per strictly consecutive year step within a
// (reporter, partner, flow) series with a non-zero previous value.
func (g *Generator) tradeYoYChange(key, name string, records []model.TradeFlowRecord) []model.QAPair {
	series := make(map[string][]model.TradeFlowRecord)
	for _, r := range records {
		if r.PrimaryValue == nil {
			continue
		}
		sk := r.ReporterCode + "|" + r.PartnerCode + "|" + r.FlowCode
		series[sk] = append(series[sk], r)
	}

	var pairs []model.QAPair
	for _, sk := range sortedKeys(series) {
		s := series[sk]
		sort.SliceStable(s, func(i, j int) bool { return s[i].Year < s[j].Year })
		for i := 1; i < len(s); i++ {
			prev, curr := s[i-1], s[i]
			if curr.Year != prev.Year+1 || *prev.PrimaryValue == 0 {
				continue
			}
			reporter := catalog.CountryName(curr.ReporterCode)
			partner := catalog.CountryName(curr.PartnerCode)
			flow := catalog.FlowName(curr.FlowCode)
			change := *curr.PrimaryValue - *prev.PrimaryValue
			pct := change / *prev.PrimaryValue * 100
			direction := "decreased"
			if change > 0 {
				direction = "increased"
			}

			q := fmt.Sprintf("How did %s's %s %s %s %s change between %d and %d?",
				reporter, name, strings.ToLower(flow), flowPrep(curr.FlowCode),
				partner, prev.Year, curr.Year)
			a := fmt.Sprintf("%s's %s %s %s %s %s from %s in %d to %s in %d, "+
				"a change of %s (%s).",
				reporter, name, strings.ToLower(flow), flowPrep(curr.FlowCode), partner,
				direction, fmtUSD(*prev.PrimaryValue), prev.Year,
				fmtUSD(*curr.PrimaryValue), curr.Year,
				fmtPct(pct), fmtUSD(math.Abs(change)))
			pairs = append(pairs, model.QAPair{
				Question: q, Answer: a, Commodity: key,
				ComplexityLevel: model.LevelL2, TemplateID: "trade_yoy_change",
				SourceData: map[string]any{
					"commodity":  key,
					"reporter":   reporter,
					"partner":    partner,
					"flow":       curr.FlowCode,
					"year_prev":  prev.Year,
					"year_curr":  curr.Year,
					"value_prev": *prev.PrimaryValue,
					"value_curr": *curr.PrimaryValue,
					"pct_change": pct,
				},
			})
		}
	}
	return pairs
}

// tradeBalance emits one pair per (reporter, year) with both import and
// export world totals.
func (g *Generator) tradeBalance(key, name string, records []model.TradeFlowRecord) []model.QAPair {
	type flows struct {
		imports, exports *float64
	}
	byReporterYear := make(map[string]*flows)
	for _, r := range records {
		if r.PrimaryValue == nil || r.PartnerCode != catalog.WorldPartnerCode {
			continue
		}
		k := r.ReporterCode + "|" + fmt.Sprintf("%04d", r.Year)
		f := byReporterYear[k]
		if f == nil {
			f = &flows{}
			byReporterYear[k] = f
		}
		switch r.FlowCode {
		case "M":
			f.imports = r.PrimaryValue
		case "X":
			f.exports = r.PrimaryValue
		}
	}

	var pairs []model.QAPair
	for _, k := range sortedKeys(byReporterYear) {
		f := byReporterYear[k]
		if f.imports == nil || f.exports == nil {
			continue
		}
		parts := strings.SplitN(k, "|", 2)
		reporter := catalog.CountryName(parts[0])
		year := strings.TrimLeft(parts[1], "0")
		balance := *f.exports - *f.imports
		status := "deficit"
		if balance > 0 {
			status = "surplus"
		}

		q := fmt.Sprintf("What was %s's trade balance in %s in %s?", reporter, name, year)
		a := fmt.Sprintf("In %s, %s had a trade %s in %s of %s. "+
			"Imports totaled %s while exports were %s.",
			year, reporter, status, name, fmtUSD(math.Abs(balance)),
			fmtUSD(*f.imports), fmtUSD(*f.exports))
		pairs = append(pairs, model.QAPair{
			Question: q, Answer: a, Commodity: key,
			ComplexityLevel: model.LevelL2, TemplateID: "trade_balance",
			SourceData: map[string]any{
				"commodity":   key,
				"reporter":    reporter,
				"year":        year,
				"imports_usd": *f.imports,
				"exports_usd": *f.exports,
				"balance_usd": balance,
			},
		})
	}
	return pairs
}

// tradeImportConcentration emits one pair per (reporter, year) import group
// that has both a world total and at least two partner rows, reporting the
// top three partners by value with their shares.
func (g *Generator) tradeImportConcentration(key, name string, records []model.TradeFlowRecord) []model.QAPair {
	groups := make(map[string][]model.TradeFlowRecord)
	for _, r := range records {
		if r.FlowCode != "M" {
			continue
		}
		k := r.ReporterCode + "|" + fmt.Sprintf("%04d", r.Year)
		groups[k] = append(groups[k], r)
	}

	var pairs []model.QAPair
	for _, k := range sortedKeys(groups) {
		recs := groups[k]
		var worldTotal *float64
		var partnerRecs []model.TradeFlowRecord
		for _, r := range recs {
			if r.PrimaryValue == nil || *r.PrimaryValue == 0 {
				continue
			}
			if r.PartnerCode == catalog.WorldPartnerCode {
				if worldTotal == nil {
					worldTotal = r.PrimaryValue
				}
			} else {
				partnerRecs = append(partnerRecs, r)
			}
		}
		if worldTotal == nil || *worldTotal <= 0 || len(partnerRecs) < 2 {
			continue
		}

		// Stable descending by value: ties keep input order.
		sort.SliceStable(partnerRecs, func(i, j int) bool {
			return *partnerRecs[i].PrimaryValue > *partnerRecs[j].PrimaryValue
		})
		top := partnerRecs
		if len(top) > 3 {
			top = top[:3]
		}

		parts := strings.SplitN(k, "|", 2)
		reporter := catalog.CountryName(parts[0])
		year := strings.TrimLeft(parts[1], "0")

		descs := make([]string, len(top))
		topSrc := make([]map[string]any, len(top))
		for i, p := range top {
			share := *p.PrimaryValue / *worldTotal * 100
			descs[i] = fmt.Sprintf("%s (%s, %.1f%%)",
				catalog.CountryName(p.PartnerCode), fmtUSD(*p.PrimaryValue), share)
			topSrc[i] = map[string]any{
				"partner":   catalog.CountryName(p.PartnerCode),
				"value_usd": *p.PrimaryValue,
				"share_pct": share,
			}
		}

		q := fmt.Sprintf("Which countries were the largest sources of %s imports for %s in %s?",
			name, reporter, year)
		a := fmt.Sprintf("In %s, %s's top %s import sources were: %s. "+
			"Total imports were valued at %s.",
			year, reporter, name, strings.Join(descs, ", "), fmtUSD(*worldTotal))
		pairs = append(pairs, model.QAPair{
			Question: q, Answer: a, Commodity: key,
			ComplexityLevel: model.LevelL3, TemplateID: "trade_import_concentration",
			SourceData: map[string]any{
				"commodity":         key,
				"reporter":          reporter,
				"year":              year,
				"total_imports_usd": *worldTotal,
				"top_partners":      topSrc,
			},
		})
	}
	return pairs
}
