package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/icd9harvest/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "icd9build",
	Short: "ICD-9-CM reference dataset builder",
	Long: "Harvests ICD-9-CM diagnosis and procedure codes from the NLM Clinical Table\n" +
		"Search Service, enriches them with consumer-friendly synonyms from the\n" +
		"conditions table, and writes a single compact JSON dataset keyed by code.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("DATABASE_URL"), "Postgres connection string (or set DATABASE_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
}
