package corpus

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/cmm-group/benchmark-cli/internal/model"
	"github.com/cmm-group/benchmark-cli/internal/splitter"
)

// SourceCounts records how many raw records of each shape were loaded.
type SourceCounts struct {
	Trade           int `json:"trade"`
	Salient         int `json:"salient"`
	WorldProduction int `json:"world_production"`
}

// SplitRatios mirrors the requested train/valid/test proportions.
type SplitRatios struct {
	Train float64 `json:"train"`
	Valid float64 `json:"valid"`
	Test  float64 `json:"test"`
}

// SplitCounts records the actual partition sizes after splitting.
type SplitCounts struct {
	Train int `json:"train"`
	Valid int `json:"valid"`
	Test  int `json:"test"`
}

// Summary is the preparation run report written next to the corpus files.
type Summary struct {
	TotalPairs        int            `json:"total_pairs"`
	ByCommodity       map[string]int `json:"by_commodity"`
	ByComplexityLevel map[string]int `json:"by_complexity_level"`
	ByTemplate        map[string]int `json:"by_template"`
	SourceRecords     SourceCounts   `json:"source_records"`
	Seed              int64          `json:"seed"`
	SplitRatios       SplitRatios    `json:"split_ratios"`
	SplitCounts       *SplitCounts   `json:"split_counts,omitempty"`
}

// NewSummary tallies generation statistics for a full pair set.
func NewSummary(pairs []model.QAPair, src SourceCounts, seed int64, r splitter.Ratios) Summary {
	s := Summary{
		TotalPairs:        len(pairs),
		ByCommodity:       map[string]int{},
		ByComplexityLevel: map[string]int{},
		ByTemplate:        map[string]int{},
		SourceRecords:     src,
		Seed:              seed,
		SplitRatios:       SplitRatios{Train: r.Train, Valid: r.Valid, Test: r.Test},
	}
	for _, p := range pairs {
		s.ByCommodity[p.Commodity]++
		s.ByComplexityLevel[p.ComplexityLevel]++
		s.ByTemplate[p.TemplateID]++
	}
	return s
}

// SetSplitCounts records the partition sizes after a split has run.
func (s *Summary) SetSplitCounts(train, valid, test int) {
	s.SplitCounts = &SplitCounts{Train: train, Valid: valid, Test: test}
}

// Write serializes the summary as indented JSON.
func (s Summary) Write(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return eris.Wrap(err, "corpus: marshaling summary")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "corpus: writing %s", path)
	}
	return nil
}
