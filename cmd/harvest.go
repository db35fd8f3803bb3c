package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lasf-data/results-cli/internal/fetcher"
	"github.com/lasf-data/results-cli/internal/harvest"
	"github.com/lasf-data/results-cli/internal/lister"
	"github.com/lasf-data/results-cli/internal/ocr"
)

var (
	harvestStartYear int
	harvestEndYear   int
	harvestBaseURL   string
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Fetch and process result documents for the configured years",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		hc := cfg.Harvest
		if cmd.Flags().Changed("start-year") {
			hc.StartYear = harvestStartYear
		}
		if cmd.Flags().Changed("end-year") {
			hc.EndYear = harvestEndYear
		}
		if cmd.Flags().Changed("base-url") {
			hc.BaseURL = harvestBaseURL
		}
		if hc.StartYear > hc.EndYear {
			return eris.Errorf("start year %d is after end year %d", hc.StartYear, hc.EndYear)
		}

		extractor, err := ocr.NewExtractor(cfg.OCR)
		if err != nil {
			return eris.Wrap(err, "init extractor")
		}

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:  cfg.Fetch.UserAgent,
			Timeout:    time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			MaxRetries: cfg.Fetch.MaxRetries,
		})

		zap.L().Info("starting harvest",
			zap.String("base_url", hc.BaseURL),
			zap.Int("start_year", hc.StartYear),
			zap.Int("end_year", hc.EndYear),
		)

		h := harvest.New(hc, f, lister.NewHTMLLister(f), extractor)
		return h.Run(ctx)
	},
}

func init() {
	harvestCmd.Flags().IntVar(&harvestStartYear, "start-year", 0, "first season year to process (overrides config)")
	harvestCmd.Flags().IntVar(&harvestEndYear, "end-year", 0, "last season year to process (overrides config)")
	harvestCmd.Flags().StringVar(&harvestBaseURL, "base-url", "", "results listing page URL (overrides config)")
	rootCmd.AddCommand(harvestCmd)
}
