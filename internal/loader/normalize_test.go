package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   float64
		wantOK bool
	}{
		{"plain integer", "42", 42, true},
		{"decimal", "3.14", 3.14, true},
		{"comma grouped", "1,234.5", 1234.5, true},
		{"large comma grouped", "1,234,567", 1234567, true},
		{"leading whitespace", "  250 ", 250, true},
		{"greater than marker", ">25", 25, true},
		{"less than marker", "<50", 50, true},
		{"inequality with space", "> 10.5", 10.5, true},
		{"less than half unit", "Less than 1/2 unit", 0, false},
		{"withheld W", "W", 0, false},
		{"withheld lowercase w", "w", 0, false},
		{"withheld XX", "XX", 0, false},
		{"withheld dashes", "--", 0, false},
		{"withheld NA", "NA", 0, false},
		{"withheld slash NA", "N/A", 0, false},
		{"empty", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"text", "not available", 0, false},
		{"nan rejected", "NaN", 0, false},
		{"inf rejected", "Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumeric(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestIsWithheld(t *testing.T) {
	assert.True(t, IsWithheld("W"))
	assert.True(t, IsWithheld(" -- "))
	assert.True(t, IsWithheld(""))
	assert.False(t, IsWithheld("42"))
	assert.False(t, IsWithheld(">25"))
}

func TestParseNumeric_InequalityDropsDirection(t *testing.T) {
	gt, okGT := ParseNumeric(">50")
	lt, okLT := ParseNumeric("<50")
	assert.True(t, okGT)
	assert.True(t, okLT)
	assert.Equal(t, gt, lt)
}
