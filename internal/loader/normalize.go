// Package loader converts the three raw tabular extract shapes (trade flow,
// salient statistics, world production) into typed records.
package loader

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// withheldMarkers are the exact (case-sensitive) cell values treated as
// missing by the normalizer. "W" is the USGS withheld-to-avoid-disclosure
// marker.
var withheldMarkers = map[string]struct{}{
	"W":   {},
	"w":   {},
	"XX":  {},
	"--":  {},
	"—":   {},
	"NA":  {},
	"N/A": {},
	"":    {},
}

var (
	inequalityPattern   = regexp.MustCompile(`^[><]\s*(\d+\.?\d*)$`)
	lessThanHalfPattern = regexp.MustCompile(`(?i)less\s+than\s+1/2\s+unit`)
)

// ParseNumeric parses a potentially messy statistical cell into a float.
// It handles withheld markers ("W"), inequality markers (">25", which
// normalize to their magnitude with the direction dropped), comma-grouped
// numbers, and the special "Less than 1/2 unit" text. The second return is
// false when the cell carries no usable number. Never panics.
func ParseNumeric(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if _, ok := withheldMarkers[s]; ok {
		return 0, false
	}
	if lessThanHalfPattern.MatchString(s) {
		return 0, false
	}
	if m := inequalityPattern.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// IsWithheld reports whether a raw cell value is a withheld/missing marker.
func IsWithheld(raw string) bool {
	_, ok := withheldMarkers[strings.TrimSpace(raw)]
	return ok
}

// numericPtr returns a pointer form of ParseNumeric for optional record
// fields: nil when the cell carries no usable number.
func numericPtr(raw string) *float64 {
	if v, ok := ParseNumeric(raw); ok {
		return &v
	}
	return nil
}
