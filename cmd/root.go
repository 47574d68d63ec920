package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cmm-group/benchmark-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "benchmark-cli",
	Short: "Critical minerals QA benchmark construction and grading",
	Long:  "Builds chat-format training corpora from raw trade and production statistics, and grades model answers against gold-standard QA pairs.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
