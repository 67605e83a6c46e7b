package harvest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/icd9harvest/internal/clinicaltables"
	"github.com/gyeh/icd9harvest/internal/config"
	"github.com/gyeh/icd9harvest/internal/model"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full build: harvest-dx → harvest-proc → merge → enrich →
// finalize. Each network phase is fail-fast; a single bad page aborts the
// run with no partial output.
func Run(ctx context.Context, client *clinicaltables.Client, log zerolog.Logger, cfg *config.Config) (*model.HarvestSummary, error) {
	totalStart := time.Now()

	log.Info().Str("endpoint", cfg.DxBaseURL).Msg("harvesting diagnosis table")
	dx, err := Table(ctx, client, cfg.DxBaseURL, cfg.DxPrefixes, model.KindDiagnosis, cfg.PageSize, cfg.Delay, log)
	if err != nil {
		return nil, &PipelineError{Phase: "harvest-dx", Err: err}
	}

	log.Info().Str("endpoint", cfg.ProcBaseURL).Msg("harvesting procedure table")
	proc, err := Table(ctx, client, cfg.ProcBaseURL, cfg.ProcPrefixes, model.KindProcedure, cfg.PageSize, cfg.Delay, log)
	if err != nil {
		return nil, &PipelineError{Phase: "harvest-proc", Err: err}
	}

	merged, collisions := model.Merge(dx.Records, proc.Records)
	if collisions > 0 {
		log.Warn().
			Int("codes", collisions).
			Msg("diagnosis/procedure code collisions; procedure rows win")
	}

	log.Info().Str("endpoint", cfg.CondBaseURL).Int("records", len(merged)).Msg("enriching with condition synonyms")
	enr, err := Enrich(ctx, client, cfg.CondBaseURL, cfg.CondPrefixes, merged, cfg.PageSize, cfg.Delay, log)
	if err != nil {
		return nil, &PipelineError{Phase: "enrich", Err: err}
	}

	fin, err := Finalize(merged, cfg.OutPath, log)
	if err != nil {
		return nil, &PipelineError{Phase: "finalize", Err: err}
	}

	summary := &model.HarvestSummary{
		OutPath:          cfg.OutPath,
		DiagnosisCount:   len(dx.Records),
		ProcedureCount:   len(proc.Records),
		MergedCount:      fin.Records,
		Collisions:       collisions,
		EnrichedCount:    enr.Matched,
		SynonymsAdded:    enr.Added,
		PagesFetched:     dx.Pages + proc.Pages + enr.Pages,
		MissingSanity:    fin.Missing,
		DurationHarvest:  dx.Duration + proc.Duration,
		DurationEnrich:   enr.Duration,
		DurationFinalize: fin.Duration,
		DurationTotal:    time.Since(totalStart),
	}

	log.Info().
		Int("records", summary.MergedCount).
		Int("dx", summary.DiagnosisCount).
		Int("proc", summary.ProcedureCount).
		Int("enriched", summary.EnrichedCount).
		Int64("pages", summary.PagesFetched).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("harvest pipeline complete")

	return summary, nil
}
