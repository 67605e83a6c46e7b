package harvest

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/icd9harvest/internal/dataset"
	"github.com/gyeh/icd9harvest/internal/model"
)

// sanityCodes are common psychiatric diagnosis codes any complete harvest
// must contain. A miss is reported, not fatal.
var sanityCodes = []string{"296.20", "300.00", "295.30"}

// FinalizeResult holds metrics from the sort-and-serialize phase.
type FinalizeResult struct {
	Records  int
	Missing  []string
	Duration time.Duration
}

// Finalize sorts the merged records into the dataset order, writes the
// compact JSON artifact at outPath, and runs the sanity check.
func Finalize(records map[string]*model.Record, outPath string, log zerolog.Logger) (*FinalizeResult, error) {
	start := time.Now()

	recs := make([]*model.Record, 0, len(records))
	for _, r := range records {
		recs = append(recs, r)
	}
	model.SortRecords(recs)

	if err := dataset.Write(outPath, recs); err != nil {
		return nil, err
	}

	var missing []string
	for _, c := range sanityCodes {
		if _, ok := records[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		log.Warn().
			Strs("missing", missing).
			Msg("sanity check: expected diagnosis codes absent from dataset")
	}

	dur := time.Since(start)
	log.Info().
		Str("out", outPath).
		Int("records", len(recs)).
		Str("duration", dur.String()).
		Msg("dataset written")

	return &FinalizeResult{Records: len(recs), Missing: missing, Duration: dur}, nil
}
