// Package generator maps loaded records to question-answer pairs through
// fixed templates. Every pair carries full literal provenance: an answer
// never states a number that is not in its SourceData map.
package generator

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders numbers with US-style comma grouping, matching the
// formatting of the published statistics.
var printer = message.NewPrinter(language.AmericanEnglish)

// fmtUSD formats a USD value at the most readable scale.
func fmtUSD(v float64) string {
	a := math.Abs(v)
	switch {
	case a >= 1e9:
		return printer.Sprintf("$%.2f billion", v/1e9)
	case a >= 1e6:
		return printer.Sprintf("$%.2f million", v/1e6)
	case a >= 1e3:
		return printer.Sprintf("$%.1f thousand", v/1e3)
	default:
		return printer.Sprintf("$%.2f", v)
	}
}

// fmtWeight formats a weight in kilograms at the most readable unit.
func fmtWeight(kg float64) string {
	a := math.Abs(kg)
	switch {
	case a >= 1e6:
		return printer.Sprintf("%.1f thousand metric tons", kg/1e6)
	case a >= 1e3:
		return printer.Sprintf("%.1f metric tons", kg/1e3)
	default:
		return printer.Sprintf("%.1f kg", kg)
	}
}

// fmtNum formats a generic number with an optional unit suffix: whole
// numbers at or above 100, two decimals below.
func fmtNum(v float64, unit string) string {
	var s string
	if math.Abs(v) >= 100 {
		s = printer.Sprintf("%.0f", v)
	} else {
		s = printer.Sprintf("%.2f", v)
	}
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// fmtPct formats a signed percent change like "+12.3%".
func fmtPct(v float64) string {
	return printer.Sprintf("%+.1f%%", v)
}

// flowNoun returns the singular trade noun for a flow code: "import" or
// "export".
func flowNoun(flowCode string) string {
	if flowCode == "X" {
		return "export"
	}
	return "import"
}

// flowVerb returns the past-tense trade verb for a flow code.
func flowVerb(flowCode string) string {
	if flowCode == "X" {
		return "exported"
	}
	return "imported"
}

// flowPrep returns the partner preposition for a flow code: exports go
// "to" a partner, imports come "from" one.
func flowPrep(flowCode string) string {
	if flowCode == "X" {
		return "to"
	}
	return "from"
}

// stripEstimate removes the estimate suffix from a production-year label.
func stripEstimate(label string) string {
	return strings.ReplaceAll(label, " (est.)", "")
}
