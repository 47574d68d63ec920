package evaluation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmm-group/benchmark-cli/internal/model"
)

func reportFixture() ([]model.GoldQAPair, []model.ScoreResult) {
	golds := []model.GoldQAPair{
		{ID: "g1", ComplexityLevel: model.LevelL1, Subdomain: "trade_flow", Commodity: "cobalt"},
		{ID: "g2", ComplexityLevel: model.LevelL1, Subdomain: "production", Commodity: "cobalt"},
		{ID: "g3", ComplexityLevel: model.LevelL2, Subdomain: "production", Commodity: "lithium"},
	}
	scores := []model.ScoreResult{
		{GoldID: "g1", Score: 1.0, RougeL: 0.9},
		{GoldID: "g2", Score: 0.5, RougeL: 0.4},
		{GoldID: "g3", Score: 0.75, RougeL: 0.6},
	}
	return golds, scores
}

func TestBuildReport(t *testing.T) {
	golds, scores := reportFixture()

	report := BuildReport("phi-4-bf16", "adapters/lora", golds, scores)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "phi-4-bf16", report.ModelID)
	assert.Equal(t, 3, report.TotalQuestions)
	assert.InDelta(t, 0.75, report.MeanScore, 1e-9)
	assert.InDelta(t, (0.9+0.4+0.6)/3, report.MeanRougeL, 1e-9)

	assert.InDelta(t, 0.75, report.ScoresByLevel[model.LevelL1], 1e-9)
	assert.InDelta(t, 0.75, report.ScoresByLevel[model.LevelL2], 1e-9)
	assert.InDelta(t, 0.75, report.ScoresByCommodity["cobalt"], 1e-9)
	assert.InDelta(t, 0.625, report.ScoresBySubdomain["production"], 1e-9)
	assert.Len(t, report.IndividualScores, 3)
}

func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport("m", "", nil, nil)
	assert.Equal(t, 0, report.TotalQuestions)
	assert.Equal(t, 0.0, report.MeanScore)
	assert.Equal(t, 0.0, report.MeanRougeL)
}

func TestWriteReport(t *testing.T) {
	golds, scores := reportFixture()
	report := BuildReport("phi-4-bf16", "", golds, scores)
	dir := filepath.Join(t.TempDir(), "results")

	require.NoError(t, WriteReport(report, dir))

	data, err := os.ReadFile(filepath.Join(dir, "evaluation_report.json"))
	require.NoError(t, err)
	var decoded model.EvaluationReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.TotalQuestions, decoded.TotalQuestions)
	assert.Equal(t, report.RunID, decoded.RunID)

	md, err := os.ReadFile(filepath.Join(dir, "evaluation_report.md"))
	require.NoError(t, err)
	text := string(md)
	assert.Contains(t, text, "# CMM Evaluation Report")
	assert.Contains(t, text, "`phi-4-bf16`")
	assert.Contains(t, text, "| Total questions | 3 |")
	assert.Contains(t, text, "## Scores by Complexity Level")
	assert.Contains(t, text, "## Scores by Commodity")
	assert.NotContains(t, text, "**Adapter**")
}
