package corpus

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmm-group/benchmark-cli/internal/model"
	"github.com/cmm-group/benchmark-cli/internal/splitter"
)

func samplePairs() []model.QAPair {
	return []model.QAPair{
		{
			Question:        "What was the total value of Cobalt imports by United States in 2023?",
			Answer:          "In 2023, United States's total Cobalt imports were valued at $1.50 million (USD).",
			Commodity:       "cobalt",
			ComplexityLevel: model.LevelL1,
			TemplateID:      "trade_total_value",
		},
		{
			Question:        "What are Australia's known Lithium reserves?",
			Answer:          "Australia has estimated Lithium reserves of 6,200,000 metric tons.",
			Commodity:       "lithium",
			ComplexityLevel: model.LevelL1,
			TemplateID:      "world_reserves",
		},
	}
}

func TestToChatExample(t *testing.T) {
	ex := ToChatExample(samplePairs()[0], "system text")

	require.Len(t, ex.Messages, 3)
	assert.Equal(t, "system", ex.Messages[0].Role)
	assert.Equal(t, "system text", ex.Messages[0].Content)
	assert.Equal(t, "user", ex.Messages[1].Role)
	assert.Contains(t, ex.Messages[1].Content, "Cobalt imports")
	assert.Equal(t, "assistant", ex.Messages[2].Role)
	assert.Contains(t, ex.Messages[2].Content, "$1.50 million")
}

func TestWriteJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "train.jsonl")

	n, err := WriteJSONL(samplePairs(), path, DefaultSystemPrompt)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lines := 0
	for scanner.Scan() {
		lines++
		var ex model.ChatExample
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ex))
		require.Len(t, ex.Messages, 3)
		assert.Equal(t, DefaultSystemPrompt, ex.Messages[0].Content)
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, 2, lines)
}

func TestWriteJSONL_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")

	n, err := WriteJSONL(nil, path, DefaultSystemPrompt)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestSummary(t *testing.T) {
	pairs := samplePairs()
	src := SourceCounts{Trade: 10, Salient: 5, WorldProduction: 3}
	r := splitter.Ratios{Train: 0.85, Valid: 0.10, Test: 0.05}

	s := NewSummary(pairs, src, 42, r)
	assert.Equal(t, 2, s.TotalPairs)
	assert.Equal(t, 1, s.ByCommodity["cobalt"])
	assert.Equal(t, 1, s.ByCommodity["lithium"])
	assert.Equal(t, 2, s.ByComplexityLevel[model.LevelL1])
	assert.Equal(t, 1, s.ByTemplate["trade_total_value"])
	assert.Nil(t, s.SplitCounts)

	s.SetSplitCounts(1, 1, 0)
	require.NotNil(t, s.SplitCounts)
	assert.Equal(t, 1, s.SplitCounts.Train)

	path := filepath.Join(t.TempDir(), "preparation_summary.json")
	require.NoError(t, s.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Summary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s.TotalPairs, decoded.TotalPairs)
	assert.Equal(t, int64(42), decoded.Seed)
}
