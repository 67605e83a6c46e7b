package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/icd9harvest/internal/dataset"
	"github.com/gyeh/icd9harvest/internal/exitcode"
	"github.com/gyeh/icd9harvest/internal/logging"
	"github.com/gyeh/icd9harvest/internal/parquetwrite"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a built dataset file as Parquet",
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&cfg.DatasetPath, "file", "", "Path to dataset JSON file (required)")
	f.StringVar(&cfg.OutPath, "out", "icd9.rich.parquet", "Output Parquet path")
	_ = exportCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.ValidateDataset(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	records, err := dataset.Read(cfg.DatasetPath)
	if err != nil {
		log.Error().Err(err).Msg("dataset read failed")
		os.Exit(exitcode.ValidationError)
	}

	n, err := parquetwrite.Write(cfg.OutPath, records)
	if err != nil {
		log.Error().Err(err).Msg("parquet export failed")
		os.Exit(exitcode.WriteError)
	}

	fmt.Printf("Export complete: %d rows → %s\n", n, cfg.OutPath)
	return nil
}
