package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lasf-data/results-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "results-cli",
	Short: "Drift competition results harvester",
	Long:  "Downloads PDF and spreadsheet result documents from the LASF results listing, extracts standings, and writes one CSV per competition and result type.",
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
