package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cmm-group/benchmark-cli/internal/evaluation"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Grade generated answers against gold QA pairs",
	Long: `Loads gold-standard QA pairs and a file of generated answers, grades
each answer on the five-point rubric with ROUGE-L, and writes JSON and
markdown reports.

Examples:
  evaluate --gold gold_qa/gold_qa_pairs.jsonl --answers runs/phi4_answers.jsonl

  evaluate --gold gold.jsonl --answers answers.jsonl \
    --output results/phi4/ --model-label phi-4-bf16 --adapter-label adapters/phi4_lora`,
	RunE: runEvaluate,
}

func init() {
	f := evaluateCmd.Flags()
	f.String("gold", "", "gold QA JSONL file (required)")
	f.String("answers", "", "generated answers JSONL file (required)")
	f.String("output", "", "output directory for reports (default: config evaluate.output_dir)")
	f.String("model-label", "", "model identifier recorded in the report")
	f.String("adapter-label", "", "adapter identifier recorded in the report")
	_ = evaluateCmd.MarkFlagRequired("gold")
	_ = evaluateCmd.MarkFlagRequired("answers")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	log := zap.L().With(zap.String("command", "evaluate"))

	goldPath, _ := f.GetString("gold")
	answersPath, _ := f.GetString("answers")
	outputDir := stringFlagOr(f, "output", cfg.Evaluate.OutputDir)
	modelLabel, _ := f.GetString("model-label")
	adapterLabel, _ := f.GetString("adapter-label")

	golds, err := evaluation.LoadGold(goldPath)
	if err != nil {
		return err
	}
	if len(golds) == 0 {
		return eris.Errorf("evaluate: no gold QA pairs found in %s", goldPath)
	}

	answers, err := evaluation.LoadAnswers(answersPath)
	if err != nil {
		return err
	}

	log.Info("scoring answers",
		zap.Int("golds", len(golds)),
		zap.Int("answers", len(answers)))
	scores, err := evaluation.ScoreAll(cmd.Context(), golds, answers, cfg.Evaluate.Concurrency)
	if err != nil {
		return err
	}

	report := evaluation.BuildReport(modelLabel, adapterLabel, golds, scores)
	if err := evaluation.WriteReport(report, outputDir); err != nil {
		return err
	}

	fmt.Println("\nEvaluation complete:")
	fmt.Printf("  Total questions: %d\n", report.TotalQuestions)
	fmt.Printf("  Mean score: %.3f\n", report.MeanScore)
	fmt.Printf("  Mean ROUGE-L: %.3f\n", report.MeanRougeL)
	fmt.Printf("  Reports written to: %s\n", outputDir)
	return nil
}
