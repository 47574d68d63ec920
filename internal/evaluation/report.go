package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cmm-group/benchmark-cli/internal/model"
)

// BuildReport aggregates individual scores into an evaluation report with
// mean scores broken down by complexity level, subdomain, and commodity.
// golds and scores must be parallel slices.
func BuildReport(modelID, adapterPath string, golds []model.GoldQAPair, scores []model.ScoreResult) model.EvaluationReport {
	byLevel := make(map[string][]float64)
	bySubdomain := make(map[string][]float64)
	byCommodity := make(map[string][]float64)

	var scoreSum, rougeSum float64
	for i, score := range scores {
		gold := golds[i]
		byLevel[gold.ComplexityLevel] = append(byLevel[gold.ComplexityLevel], score.Score)
		bySubdomain[gold.Subdomain] = append(bySubdomain[gold.Subdomain], score.Score)
		byCommodity[gold.Commodity] = append(byCommodity[gold.Commodity], score.Score)
		scoreSum += score.Score
		rougeSum += score.RougeL
	}

	report := model.EvaluationReport{
		RunID:             uuid.NewString(),
		ModelID:           modelID,
		AdapterPath:       adapterPath,
		TotalQuestions:    len(scores),
		ScoresByLevel:     meanByGroup(byLevel),
		ScoresBySubdomain: meanByGroup(bySubdomain),
		ScoresByCommodity: meanByGroup(byCommodity),
		IndividualScores:  scores,
	}
	if len(scores) > 0 {
		report.MeanScore = scoreSum / float64(len(scores))
		report.MeanRougeL = rougeSum / float64(len(scores))
	}
	return report
}

func meanByGroup(groups map[string][]float64) map[string]float64 {
	means := make(map[string]float64, len(groups))
	for k, vals := range groups {
		var sum float64
		for _, v := range vals {
			sum += v
		}
		means[k] = sum / float64(len(vals))
	}
	return means
}

// WriteReport writes the report as both indented JSON and markdown into
// outputDir.
func WriteReport(report model.EvaluationReport, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return eris.Wrapf(err, "evaluation: creating output dir %s", outputDir)
	}

	jsonPath := filepath.Join(outputDir, "evaluation_report.json")
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return eris.Wrap(err, "evaluation: marshaling report")
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return eris.Wrapf(err, "evaluation: writing %s", jsonPath)
	}
	zap.L().Info("JSON report written", zap.String("path", jsonPath))

	mdPath := filepath.Join(outputDir, "evaluation_report.md")
	if err := os.WriteFile(mdPath, []byte(renderMarkdown(report)), 0o644); err != nil {
		return eris.Wrapf(err, "evaluation: writing %s", mdPath)
	}
	zap.L().Info("markdown report written", zap.String("path", mdPath))
	return nil
}

func renderMarkdown(report model.EvaluationReport) string {
	var b strings.Builder
	b.WriteString("# CMM Evaluation Report\n\n")
	fmt.Fprintf(&b, "**Model**: `%s`\n", report.ModelID)
	if report.AdapterPath != "" {
		fmt.Fprintf(&b, "**Adapter**: `%s`\n", report.AdapterPath)
	}
	b.WriteString("\n## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Total questions | %d |\n", report.TotalQuestions)
	fmt.Fprintf(&b, "| Mean score | %.3f |\n", report.MeanScore)
	fmt.Fprintf(&b, "| Mean ROUGE-L | %.3f |\n", report.MeanRougeL)
	b.WriteString("\n")

	writeGroupTable(&b, "Scores by Complexity Level", "Level", report.ScoresByLevel)
	writeGroupTable(&b, "Scores by Commodity", "Commodity", report.ScoresByCommodity)
	writeGroupTable(&b, "Scores by Subdomain", "Subdomain", report.ScoresBySubdomain)

	return b.String()
}

func writeGroupTable(b *strings.Builder, title, column string, means map[string]float64) {
	if len(means) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "| %s | Mean Score |\n", column)
	b.WriteString("|-------|-----------|\n")
	keys := make([]string, 0, len(means))
	for k := range means {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "| %s | %.3f |\n", k, means[k])
	}
	b.WriteString("\n")
}
