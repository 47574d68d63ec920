package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cmm-group/benchmark-cli/internal/model"
)

// isAggregateRow reports whether a world-production country row is a world
// or regional total rather than a single country. The substring match means
// a genuine country name containing "total" would be misclassified; see the
// open-questions section of DESIGN.md.
func isAggregateRow(country string) bool {
	c := strings.ToLower(country)
	return strings.Contains(c, "world") || strings.Contains(c, "total")
}

// generateWorldQA produces QA pairs from world mine production records:
// per-country production and reserves, world totals, shares, top producers,
// reserves-to-production ratios, and production concentration.
func (g *Generator) generateWorldQA(key string, records []model.WorldProductionRecord) []model.QAPair {
	var pairs []model.QAPair
	name := g.cat.DisplayName(key)

	for _, r := range records {
		pairs = append(pairs, g.worldCountryProduction(key, name, r)...)
		pairs = append(pairs, g.worldReserves(key, name, r)...)
	}

	bySource := make(map[string][]model.WorldProductionRecord)
	for _, r := range records {
		bySource[r.Source] = append(bySource[r.Source], r)
	}
	for _, source := range sortedKeys(bySource) {
		pairs = append(pairs, g.worldCrossCountry(key, name, source, bySource[source])...)
	}
	return pairs
}

// worldCountryProduction emits one pair per populated production slot of a
// non-aggregate country row.
func (g *Generator) worldCountryProduction(key, name string, r model.WorldProductionRecord) []model.QAPair {
	if isAggregateRow(r.Country) {
		return nil
	}
	var pairs []model.QAPair

	if r.ProductionYear1 != nil {
		year := stripEstimate(r.Year1Label)
		q := fmt.Sprintf("How much %s did %s produce in %s?", name, r.Country, year)
		a := fmt.Sprintf("%s produced %s metric tons of %s in %s, "+
			"according to the USGS (%s).",
			r.Country, fmtNum(*r.ProductionYear1, ""), name, year, r.Source)
		pairs = append(pairs, model.QAPair{
			Question: q, Answer: a, Commodity: key,
			ComplexityLevel: model.LevelL1, TemplateID: "world_country_production_y1",
			SourceData: map[string]any{
				"commodity":  key,
				"country":    r.Country,
				"year":       r.Year1Label,
				"production": *r.ProductionYear1,
				"source":     r.Source,
			},
		})
	}

	if r.ProductionYear2 != nil {
		year := stripEstimate(r.Year2Label)
		est := ""
		if strings.Contains(r.Year2Label, "est") {
			est = " (estimated)"
		}
		q := fmt.Sprintf("What was %s's %s production in %s?", r.Country, name, year)
		a := fmt.Sprintf("%s's %s production in %s was %s metric tons%s, "+
			"according to the USGS (%s).",
			r.Country, name, year, fmtNum(*r.ProductionYear2, ""), est, r.Source)
		pairs = append(pairs, model.QAPair{
			Question: q, Answer: a, Commodity: key,
			ComplexityLevel: model.LevelL1, TemplateID: "world_country_production_y2",
			SourceData: map[string]any{
				"commodity":  key,
				"country":    r.Country,
				"year":       r.Year2Label,
				"production": *r.ProductionYear2,
				"source":     r.Source,
			},
		})
	}
	return pairs
}

// worldReserves emits one pair per non-aggregate country with non-null
// reserves.
func (g *Generator) worldReserves(key, name string, r model.WorldProductionRecord) []model.QAPair {
	if r.Reserves == nil || isAggregateRow(r.Country) {
		return nil
	}
	q := fmt.Sprintf("What are %s's known %s reserves?", r.Country, name)
	a := fmt.Sprintf("%s has estimated %s reserves of %s metric tons, "+
		"as reported by the USGS (%s).",
		r.Country, name, fmtNum(*r.Reserves, ""), r.Source)
	if r.ReservesNotes != "" {
		a += fmt.Sprintf(" Note: %s", r.ReservesNotes)
	}
	return []model.QAPair{{
		Question: q, Answer: a, Commodity: key,
		ComplexityLevel: model.LevelL1, TemplateID: "world_reserves",
		SourceData: map[string]any{
			"commodity": key,
			"country":   r.Country,
			"reserves":  *r.Reserves,
			"source":    r.Source,
		},
	}}
}

// worldCrossCountry emits the per-release templates that compare countries:
// world totals, country shares, top producers, reserves-to-production
// ratios, and the concentration index.
func (g *Generator) worldCrossCountry(key, name, source string, records []model.WorldProductionRecord) []model.QAPair {
	var valid, worldRecs []model.WorldProductionRecord
	for _, r := range records {
		if r.ProductionYear2 == nil {
			continue
		}
		if isAggregateRow(r.Country) {
			worldRecs = append(worldRecs, r)
		} else {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	var pairs []model.QAPair

	for _, wr := range worldRecs {
		year := stripEstimate(wr.Year2Label)
		q := fmt.Sprintf("What was total world %s production in %s?", name, year)
		a := fmt.Sprintf("Total world %s production in %s was %s metric tons, "+
			"according to the USGS (%s).",
			name, year, fmtNum(*wr.ProductionYear2, ""), source)
		pairs = append(pairs, model.QAPair{
			Question: q, Answer: a, Commodity: key,
			ComplexityLevel: model.LevelL1, TemplateID: "world_total_production",
			SourceData: map[string]any{
				"commodity": key,
				"year":      wr.Year2Label,
				"total":     *wr.ProductionYear2,
				"source":    source,
			},
		})
	}

	var worldTotal float64
	if len(worldRecs) > 0 {
		worldTotal = *worldRecs[0].ProductionYear2
	}

	if worldTotal > 0 {
		year := stripEstimate(worldRecs[0].Year2Label)
		for _, cr := range valid {
			share := *cr.ProductionYear2 / worldTotal * 100
			q := fmt.Sprintf("What share of global %s production did %s account for in %s?",
				name, cr.Country, year)
			a := fmt.Sprintf("%s accounted for approximately %.1f%% of global %s "+
				"production in %s, producing %s metric tons out of a world total "+
				"of %s metric tons (%s).",
				cr.Country, share, name, year, fmtNum(*cr.ProductionYear2, ""),
				fmtNum(worldTotal, ""), source)
			pairs = append(pairs, model.QAPair{
				Question: q, Answer: a, Commodity: key,
				ComplexityLevel: model.LevelL2, TemplateID: "world_country_share",
				SourceData: map[string]any{
					"commodity":   key,
					"country":     cr.Country,
					"year":        year,
					"production":  *cr.ProductionYear2,
					"world_total": worldTotal,
					"share_pct":   share,
					"source":      source,
				},
			})
		}
	}

	// Stable descending by slot-2 production: ties keep input order.
	producers := make([]model.WorldProductionRecord, len(valid))
	copy(producers, valid)
	sort.SliceStable(producers, func(i, j int) bool {
		return *producers[i].ProductionYear2 > *producers[j].ProductionYear2
	})

	if len(producers) >= 3 {
		top3 := producers[:3]
		year := stripEstimate(top3[0].Year2Label)
		descs := make([]string, len(top3))
		topSrc := make([]map[string]any, len(top3))
		for i, p := range top3 {
			descs[i] = fmt.Sprintf("%s (%s metric tons)", p.Country, fmtNum(*p.ProductionYear2, ""))
			topSrc[i] = map[string]any{
				"country":    p.Country,
				"production": *p.ProductionYear2,
			}
		}
		q := fmt.Sprintf("Which countries were the top producers of %s in %s?", name, year)
		a := fmt.Sprintf("The top three producers of %s in %s were: %s (%s).",
			name, year, strings.Join(descs, ", "), source)
		pairs = append(pairs, model.QAPair{
			Question: q, Answer: a, Commodity: key,
			ComplexityLevel: model.LevelL2, TemplateID: "world_top_producers",
			SourceData: map[string]any{
				"commodity":     key,
				"year":          year,
				"top_producers": topSrc,
				"source":        source,
			},
		})
	}

	for _, cr := range valid {
		if cr.Reserves == nil || *cr.Reserves == 0 || *cr.ProductionYear2 <= 0 {
			continue
		}
		ratio := *cr.Reserves / *cr.ProductionYear2
		year := stripEstimate(cr.Year2Label)
		q := fmt.Sprintf("What is %s's reserves-to-production ratio for %s?", cr.Country, name)
		a := fmt.Sprintf("Based on %s data, %s's %s reserves-to-production ratio is "+
			"approximately %.0f years (reserves of %s metric tons divided by %s "+
			"production of %s metric tons).",
			source, cr.Country, name, ratio, fmtNum(*cr.Reserves, ""), year,
			fmtNum(*cr.ProductionYear2, ""))
		pairs = append(pairs, model.QAPair{
			Question: q, Answer: a, Commodity: key,
			ComplexityLevel: model.LevelL2, TemplateID: "world_reserves_production_ratio",
			SourceData: map[string]any{
				"commodity":   key,
				"country":     cr.Country,
				"reserves":    *cr.Reserves,
				"production":  *cr.ProductionYear2,
				"ratio_years": ratio,
				"source":      source,
			},
		})
	}

	if worldTotal > 0 && len(valid) >= 3 {
		shares := make([]float64, len(valid))
		hhi := 0.0
		for i, r := range valid {
			shares[i] = *r.ProductionYear2 / worldTotal * 100
			hhi += shares[i] * shares[i]
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(shares)))
		top3Share := shares[0] + shares[1] + shares[2]
		year := stripEstimate(worldRecs[0].Year2Label)

		conc := "diversified"
		switch {
		case hhi > 2500:
			conc = "highly concentrated"
		case hhi > 1500:
			conc = "moderately concentrated"
		}

		q := fmt.Sprintf("How concentrated is global %s production in %s?", name, year)
		a := fmt.Sprintf("Global %s production in %s is %s. The top three producers "+
			"account for %.1f%% of world output (HHI index: %.0f). %s.",
			name, year, conc, top3Share, hhi, source)
		pairs = append(pairs, model.QAPair{
			Question: q, Answer: a, Commodity: key,
			ComplexityLevel: model.LevelL3, TemplateID: "world_production_concentration",
			SourceData: map[string]any{
				"commodity":      key,
				"year":           year,
				"hhi":            hhi,
				"top3_share_pct": top3Share,
				"source":         source,
			},
		})
	}

	return pairs
}
