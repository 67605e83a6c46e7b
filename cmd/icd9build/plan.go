package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyeh/icd9harvest/internal/clinicaltables"
	"github.com/gyeh/icd9harvest/internal/exitcode"
	"github.com/gyeh/icd9harvest/internal/harvest"
	"github.com/gyeh/icd9harvest/internal/logging"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run: report table totals per prefix (no writes)",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().DurationVar(&cfg.Delay, "delay", 0, "Politeness delay between requests")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	client := clinicaltables.New(nil)

	type table struct {
		name     string
		baseURL  string
		prefixes []string
		request  func(prefix string, count, offset int) clinicaltables.SearchRequest
	}
	tables := []table{
		{"diagnoses", cfg.DxBaseURL, cfg.DxPrefixes, harvest.CodeTableRequest},
		{"procedures", cfg.ProcBaseURL, cfg.ProcPrefixes, harvest.CodeTableRequest},
		{"conditions", cfg.CondBaseURL, cfg.CondPrefixes, harvest.ConditionRequest},
	}

	fmt.Println("=== icd9build plan ===")
	fmt.Printf("Page size: %d\n\n", cfg.PageSize)

	var grandTotal, grandPages int
	for _, t := range tables {
		fmt.Printf("%s (%s):\n", t.name, t.baseURL)
		tableTotal := 0
		tablePages := 0
		for _, pfx := range t.prefixes {
			page, err := client.Search(ctx, t.baseURL, t.request(pfx, 1, 0))
			if err != nil {
				log.Error().Err(err).Str("table", t.name).Str("prefix", pfx).Msg("probe failed")
				os.Exit(exitcode.FetchError)
			}
			pages := (page.Total + cfg.PageSize - 1) / cfg.PageSize
			tableTotal += page.Total
			tablePages += pages
			fmt.Printf("  %-2s %6d rows → %d pages\n", pfx, page.Total, pages)
			time.Sleep(cfg.Delay)
		}
		grandTotal += tableTotal
		grandPages += tablePages
		fmt.Printf("  total: %d rows, %d pages\n\n", tableTotal, tablePages)
	}

	fmt.Printf("Estimated requests for a full harvest: ~%d\n", grandPages)
	fmt.Printf("Estimated rows scanned: ~%d\n", grandTotal)
	return nil
}
