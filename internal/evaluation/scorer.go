package evaluation

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cmm-group/benchmark-cli/internal/model"
)

// Scoring rubric:
//
//	1.0  -- all required elements present, no errors
//	0.75 -- minor omission or imprecision (e.g. rounding)
//	0.50 -- partially correct; some required elements missing
//	0.25 -- minimal relevant content; major gaps
//	0.0  -- disqualifying error or completely irrelevant

var numberPattern = regexp.MustCompile(`[\d,]+\.?\d*`)

// Score grades one generated answer against one gold QA pair. A
// disqualifying error zeroes the score regardless of element coverage;
// with no required elements, ROUGE-L against the reference answer stands
// in for coverage.
func Score(gold model.GoldQAPair, generated string) model.ScoreResult {
	generatedLower := strings.ToLower(generated)
	var reasoning []string

	for _, errText := range gold.DisqualifyingErrors {
		if strings.Contains(generatedLower, strings.ToLower(errText)) {
			reasoning = append(reasoning, fmt.Sprintf("Disqualifying error found: '%s'", errText))
			return model.ScoreResult{
				GoldID:          gold.ID,
				Score:           0.0,
				RougeL:          rougeL(gold.ReferenceAnswer, generated),
				GeneratedAnswer: generated,
				Reasoning:       strings.Join(reasoning, "; "),
			}
		}
	}

	total := len(gold.RequiredElements)
	if total == 0 {
		rl := rougeL(gold.ReferenceAnswer, generated)
		reasoning = append(reasoning, fmt.Sprintf("No required elements specified; using ROUGE-L=%.3f", rl))
		return model.ScoreResult{
			GoldID:          gold.ID,
			Score:           rougeToRubric(rl),
			RougeL:          rl,
			GeneratedAnswer: generated,
			Reasoning:       strings.Join(reasoning, "; "),
		}
	}

	matched := 0
	for _, element := range gold.RequiredElements {
		if elementPresent(element, generated) {
			matched++
		} else {
			reasoning = append(reasoning, fmt.Sprintf("Missing element: '%s'", element))
		}
	}

	coverage := float64(matched) / float64(total)
	reasoning = append([]string{
		fmt.Sprintf("Elements matched: %d/%d (%.0f%%)", matched, total, coverage*100),
	}, reasoning...)

	var score float64
	switch {
	case coverage >= 0.95:
		score = 1.0
	case coverage >= 0.70:
		score = 0.75
	case coverage >= 0.40:
		score = 0.50
	case coverage > 0:
		score = 0.25
	default:
		score = 0.0
	}

	return model.ScoreResult{
		GoldID:          gold.ID,
		Score:           score,
		RougeL:          rougeL(gold.ReferenceAnswer, generated),
		GeneratedAnswer: generated,
		Reasoning:       strings.Join(reasoning, "; "),
	}
}

// elementPresent reports whether a required element appears in the
// generated text. Elements match as case-insensitive substrings, and
// numeric elements like "130,000" also match "130000" or "130 000".
func elementPresent(element, text string) bool {
	elementLower := strings.ToLower(strings.TrimSpace(element))
	textLower := strings.ToLower(text)

	if strings.Contains(textLower, elementLower) {
		return true
	}

	textStripped := strings.ReplaceAll(textLower, ",", "")
	for _, numStr := range numberPattern.FindAllString(element, -1) {
		canonical := strings.ReplaceAll(numStr, ",", "")
		if !strings.ContainsAny(canonical, "0123456789") {
			continue
		}
		if strings.Contains(textStripped, canonical) {
			return true
		}
	}
	return false
}

// rougeToRubric maps a ROUGE-L score to the 5-point rubric.
func rougeToRubric(rl float64) float64 {
	switch {
	case rl >= 0.7:
		return 1.0
	case rl >= 0.5:
		return 0.75
	case rl >= 0.3:
		return 0.50
	case rl >= 0.1:
		return 0.25
	default:
		return 0.0
	}
}

// ScoreAll grades every gold pair against its generated answer in
// parallel. Golds with no matching answer are scored against empty text.
// Results come back in gold order regardless of scheduling.
func ScoreAll(ctx context.Context, golds []model.GoldQAPair, answers map[string]string, concurrency int) ([]model.ScoreResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]model.ScoreResult, len(golds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, gold := range golds {
		i, gold := i, gold
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = Score(gold, answers[gold.ID])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
