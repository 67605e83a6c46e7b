package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/icd9harvest/internal/clinicaltables"
	"github.com/gyeh/icd9harvest/internal/config"
	"github.com/gyeh/icd9harvest/internal/exitcode"
	"github.com/gyeh/icd9harvest/internal/harvest"
	"github.com/gyeh/icd9harvest/internal/logging"
)

var cfgFile string

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Harvest all tables and write the dataset file",
	RunE:  runHarvest,
}

func init() {
	f := harvestCmd.Flags()
	f.StringVar(&cfg.OutPath, "out", config.DefaultOutPath, "Output dataset path")
	f.IntVar(&cfg.PageSize, "page-size", config.DefaultPageSize, "API page size (service max 500)")
	f.DurationVar(&cfg.Delay, "delay", config.DefaultDelay, "Politeness delay between requests")
	f.StringVar(&cfgFile, "config", "", "Optional YAML config overriding prefix partitions")
	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if cfgFile != "" {
		if err := cfg.LoadFromFile(cfgFile); err != nil {
			log.Error().Err(err).Msg("config load failed")
			os.Exit(exitcode.UsageError)
		}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	client := clinicaltables.New(nil)
	summary, err := harvest.Run(ctx, client, log, &cfg)
	if err != nil {
		if pe, ok := err.(*harvest.PipelineError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("harvest failed")
			if pe.Phase == "finalize" {
				os.Exit(exitcode.WriteError)
			}
			os.Exit(exitcode.FetchError)
		}
		log.Error().Err(err).Msg("harvest failed")
		os.Exit(exitcode.FetchError)
	}

	fmt.Printf("Harvest complete: %d records (%d dx, %d proc), %d enriched → %s (%.1fs)\n",
		summary.MergedCount, summary.DiagnosisCount, summary.ProcedureCount,
		summary.EnrichedCount, summary.OutPath, summary.DurationTotal.Seconds())
	return nil
}
