package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/cmm-group/benchmark-cli/internal/catalog"
	"github.com/cmm-group/benchmark-cli/internal/corpus"
	"github.com/cmm-group/benchmark-cli/internal/generator"
	"github.com/cmm-group/benchmark-cli/internal/loader"
	"github.com/cmm-group/benchmark-cli/internal/splitter"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Build the training corpus from raw statistics",
	Long: `Loads raw trade, salient, and world production data, generates QA
pairs from templates, splits them into train/valid/test stratified by
commodity and complexity level, and writes chat-format JSONL files.

Examples:
  # Full run with defaults
  prepare --output-dir data/

  # Custom split and seed
  prepare --seed 7 --train-ratio 0.8 --valid-ratio 0.1 --test-ratio 0.1

  # Statistics only, no files written
  prepare --dry-run`,
	RunE: runPrepare,
}

func init() {
	f := prepareCmd.Flags()
	f.String("output-dir", "", "directory for JSONL output (default: config prepare.output_dir)")
	f.String("catalog", "", "commodity catalog YAML (default: built-in catalog)")
	f.String("trade-dir", "", "trade data directory (default: config data.trade_dir)")
	f.String("usgs-dir", "", "USGS data directory (default: config data.usgs_dir)")
	f.Int64("seed", 0, "random seed for the split (default: config prepare.seed)")
	f.Float64("train-ratio", 0, "train split ratio (default: config prepare.train_ratio)")
	f.Float64("valid-ratio", 0, "valid split ratio (default: config prepare.valid_ratio)")
	f.Float64("test-ratio", 0, "test split ratio (default: config prepare.test_ratio)")
	f.Bool("dry-run", false, "print statistics without writing files")

	rootCmd.AddCommand(prepareCmd)
}

func runPrepare(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	log := zap.L().With(zap.String("command", "prepare"))

	outputDir := stringFlagOr(f, "output-dir", cfg.Prepare.OutputDir)
	tradeDir := stringFlagOr(f, "trade-dir", cfg.Data.TradeDir)
	usgsDir := stringFlagOr(f, "usgs-dir", cfg.Data.USGSDir)
	catalogPath := stringFlagOr(f, "catalog", cfg.Data.CatalogPath)

	seed := cfg.Prepare.Seed
	if f.Changed("seed") {
		seed, _ = f.GetInt64("seed")
	}
	ratios := splitter.Ratios{
		Train: cfg.Prepare.TrainRatio,
		Valid: cfg.Prepare.ValidRatio,
		Test:  cfg.Prepare.TestRatio,
	}
	if f.Changed("train-ratio") {
		ratios.Train, _ = f.GetFloat64("train-ratio")
	}
	if f.Changed("valid-ratio") {
		ratios.Valid, _ = f.GetFloat64("valid-ratio")
	}
	if f.Changed("test-ratio") {
		ratios.Test, _ = f.GetFloat64("test-ratio")
	}
	dryRun, _ := f.GetBool("dry-run")

	if err := ratios.Validate(); err != nil {
		return err
	}

	cat, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}

	log.Info("loading raw data",
		zap.String("trade_dir", tradeDir),
		zap.String("usgs_dir", usgsDir))
	ds := loader.LoadAll(cat, tradeDir, usgsDir)

	log.Info("generating QA pairs")
	pairs := generator.New(cat).GenerateAll(ds)

	src := corpus.SourceCounts{}
	for _, recs := range ds.Trade {
		src.Trade += len(recs)
	}
	for _, recs := range ds.Salient {
		src.Salient += len(recs)
	}
	for _, recs := range ds.World {
		src.WorldProduction += len(recs)
	}

	summary := corpus.NewSummary(pairs, src, seed, ratios)

	if dryRun {
		log.Info("dry run, not writing files")
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	log.Info("splitting", zap.Int64("seed", seed))
	train, valid, test, err := splitter.Split(pairs, ratios, seed)
	if err != nil {
		return err
	}
	summary.SetSplitCounts(len(train), len(valid), len(test))

	systemPrompt := cfg.Corpus.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = corpus.DefaultSystemPrompt
	}

	log.Info("writing corpus", zap.String("output_dir", outputDir))
	if _, err := corpus.WriteJSONL(train, filepath.Join(outputDir, "train.jsonl"), systemPrompt); err != nil {
		return err
	}
	if _, err := corpus.WriteJSONL(valid, filepath.Join(outputDir, "valid.jsonl"), systemPrompt); err != nil {
		return err
	}
	if _, err := corpus.WriteJSONL(test, filepath.Join(outputDir, "test.jsonl"), systemPrompt); err != nil {
		return err
	}
	if err := summary.Write(filepath.Join(outputDir, "preparation_summary.json")); err != nil {
		return err
	}

	fmt.Printf("\nTotal QA pairs: %d\n", summary.TotalPairs)
	fmt.Printf("  Train: %d, Valid: %d, Test: %d\n", len(train), len(valid), len(test))
	return nil
}

// loadCatalog resolves the commodity catalog: an explicit path must load,
// an empty path falls back to the built-in catalog.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

func stringFlagOr(f *pflag.FlagSet, name, fallback string) string {
	v, _ := f.GetString(name)
	if v == "" {
		return fallback
	}
	return v
}
