package model

import "time"

// HarvestSummary captures metrics from a single harvest run.
type HarvestSummary struct {
	OutPath          string
	DiagnosisCount   int
	ProcedureCount   int
	MergedCount      int
	Collisions       int
	EnrichedCount    int
	SynonymsAdded    int
	PagesFetched     int64
	MissingSanity    []string
	DurationHarvest  time.Duration
	DurationEnrich   time.Duration
	DurationFinalize time.Duration
	DurationTotal    time.Duration
}
