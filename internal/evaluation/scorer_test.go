package evaluation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmm-group/benchmark-cli/internal/model"
)

func goldCobalt() model.GoldQAPair {
	return model.GoldQAPair{
		ID:                  "gold-001",
		Question:            "What was DRC cobalt production in 2022?",
		ReferenceAnswer:     "DRC cobalt production in 2022 was 130,000 metric tons.",
		ComplexityLevel:     model.LevelL1,
		Subdomain:           "production",
		Commodity:           "cobalt",
		RequiredElements:    []string{"130,000", "metric tons", "2022"},
		DisqualifyingErrors: []string{"declined sharply"},
	}
}

func TestScore_AllElementsPresent(t *testing.T) {
	res := Score(goldCobalt(), "DRC cobalt production in 2022 was 130,000 metric tons according to the USGS.")
	assert.Equal(t, "gold-001", res.GoldID)
	assert.Equal(t, 1.0, res.Score)
	assert.Greater(t, res.RougeL, 0.5)
}

func TestScore_DisqualifierForcesZero(t *testing.T) {
	gold := model.GoldQAPair{
		ID:                  "gold-lithium",
		ReferenceAnswer:     "Cobalt production in 2022 was 800 metric tons.",
		RequiredElements:    []string{"800", "metric tons", "2022", "cobalt"},
		DisqualifyingErrors: []string{"lithium"},
	}

	// Every required element is present, but the disqualifier wins.
	res := Score(gold, "Lithium production in 2022 was 800 metric tons of cobalt.")
	assert.Equal(t, 0.0, res.Score)
	assert.Contains(t, res.Reasoning, "Disqualifying error")
}

func TestScore_NumericElementMatchesWithoutCommas(t *testing.T) {
	res := Score(goldCobalt(), "Production reached 130000 metric tons in 2022.")
	assert.Equal(t, 1.0, res.Score)
}

func TestScore_PartialCoverage(t *testing.T) {
	gold := model.GoldQAPair{
		ID:               "gold-partial",
		ReferenceAnswer:  "Production was 130,000 metric tons in 2022 per MCS2023.",
		RequiredElements: []string{"130,000", "metric tons", "2022", "MCS2023"},
	}

	// 2 of 4 elements -> coverage 0.5 -> score 0.5
	res := Score(gold, "Production was 130,000 metric tons.")
	assert.Equal(t, 0.5, res.Score)
	assert.Contains(t, res.Reasoning, "Elements matched: 2/4")
}

func TestScore_NoElementsMatched(t *testing.T) {
	gold := model.GoldQAPair{
		ID:               "gold-none",
		ReferenceAnswer:  "Production was 130,000 metric tons.",
		RequiredElements: []string{"130,000", "metric tons"},
	}

	res := Score(gold, "I do not know.")
	assert.Equal(t, 0.0, res.Score)
}

func TestScore_NoRequiredElements_RougeFallback(t *testing.T) {
	gold := model.GoldQAPair{
		ID:              "gold-rouge",
		ReferenceAnswer: "Cobalt production rose sharply in 2022.",
	}

	res := Score(gold, "Cobalt production rose sharply in 2022.")
	assert.Equal(t, 1.0, res.Score)
	assert.InDelta(t, 1.0, res.RougeL, 1e-9)
	assert.Contains(t, res.Reasoning, "ROUGE-L")

	res = Score(gold, "Entirely unrelated text about something else.")
	assert.Equal(t, 0.0, res.Score)
}

func TestElementPresent(t *testing.T) {
	tests := []struct {
		name    string
		element string
		text    string
		want    bool
	}{
		{"exact substring", "metric tons", "130,000 metric tons", true},
		{"case insensitive", "Metric Tons", "130,000 metric tons", true},
		{"comma number vs plain", "130,000", "production was 130000 tons", true},
		{"plain number vs comma", "130000", "production was 130,000 tons", true},
		{"missing", "reserves", "production was 130,000 tons", false},
		{"decimal", "15.2", "the price was 15.2 dollars", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, elementPresent(tt.element, tt.text))
		})
	}
}

func TestRougeToRubric(t *testing.T) {
	assert.Equal(t, 1.0, rougeToRubric(0.75))
	assert.Equal(t, 0.75, rougeToRubric(0.6))
	assert.Equal(t, 0.5, rougeToRubric(0.4))
	assert.Equal(t, 0.25, rougeToRubric(0.2))
	assert.Equal(t, 0.0, rougeToRubric(0.05))
}

func TestScoreAll(t *testing.T) {
	golds := []model.GoldQAPair{
		goldCobalt(),
		{ID: "gold-002", ReferenceAnswer: "Reserves are 6,000,000 metric tons.",
			RequiredElements: []string{"6,000,000"}},
		{ID: "gold-missing", ReferenceAnswer: "Some answer.",
			RequiredElements: []string{"something"}},
	}
	answers := map[string]string{
		"gold-001": "DRC cobalt production in 2022 was 130,000 metric tons.",
		"gold-002": "Reserves total 6000000 metric tons.",
		// gold-missing has no answer
	}

	results, err := ScoreAll(context.Background(), golds, answers, 4)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "gold-001", results[0].GoldID)
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, 1.0, results[1].Score)
	assert.Equal(t, 0.0, results[2].Score)
	assert.Empty(t, results[2].GeneratedAnswer)
}
