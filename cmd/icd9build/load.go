package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/icd9harvest/internal/dataset"
	"github.com/gyeh/icd9harvest/internal/db"
	"github.com/gyeh/icd9harvest/internal/exitcode"
	"github.com/gyeh/icd9harvest/internal/logging"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a built dataset file into Postgres",
	RunE:  runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&cfg.DatasetPath, "file", "", "Path to dataset JSON file (required)")
	_ = loadCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	records, err := dataset.Read(cfg.DatasetPath)
	if err != nil {
		log.Error().Err(err).Msg("dataset read failed")
		os.Exit(exitcode.ValidationError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	result, err := db.LoadDataset(ctx, pool, log, records)
	if err != nil {
		log.Error().Err(err).Msg("load failed")
		os.Exit(exitcode.CopyError)
	}

	fmt.Printf("Load complete: %d codes, %d synonyms (%.1fs)\n",
		result.Codes, result.Synonyms, result.Duration.Seconds())
	return nil
}
