package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/icd9harvest/internal/model"
)

// LoadResult holds metrics from a dataset load.
type LoadResult struct {
	BatchID  uuid.UUID
	Codes    int64
	Synonyms int64
	Duration time.Duration
}

// LoadDataset replaces the contents of the ref tables with the given
// records. Codes stream through COPY via a channel-backed source; synonyms
// follow as a second COPY once every parent code row exists.
func LoadDataset(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, records []*model.Record) (*LoadResult, error) {
	start := time.Now()
	batchID := uuid.New()

	if _, err := pool.Exec(ctx, "TRUNCATE ref.icd9_synonyms, ref.icd9_codes"); err != nil {
		return nil, fmt.Errorf("truncate ref tables: %w", err)
	}

	ch := make(chan *model.Record, 256)
	go func() {
		defer close(ch)
		for _, rec := range records {
			select {
			case ch <- rec:
			case <-ctx.Done():
				return
			}
		}
	}()

	codes, err := pool.CopyFrom(ctx,
		pgx.Identifier{"ref", "icd9_codes"},
		codeColumns,
		NewCodeSource(ch, batchID),
	)
	if err != nil {
		return nil, fmt.Errorf("copy codes: %w", err)
	}

	var synRows [][]any
	for _, rec := range records {
		for i, s := range rec.Syn {
			synRows = append(synRows, []any{rec.Code, i, s})
		}
	}
	syns, err := pool.CopyFrom(ctx,
		pgx.Identifier{"ref", "icd9_synonyms"},
		[]string{"code", "position", "synonym"},
		pgx.CopyFromRows(synRows),
	)
	if err != nil {
		return nil, fmt.Errorf("copy synonyms: %w", err)
	}

	for _, table := range []string{"ref.icd9_codes", "ref.icd9_synonyms"} {
		if _, err := pool.Exec(ctx, "ANALYZE "+table); err != nil {
			return nil, fmt.Errorf("analyze %s: %w", table, err)
		}
	}

	dur := time.Since(start)
	log.Info().
		Str("batch_id", batchID.String()).
		Int64("codes", codes).
		Int64("synonyms", syns).
		Str("duration", dur.String()).
		Float64("rows_per_sec", float64(codes+syns)/dur.Seconds()).
		Msg("dataset loaded")

	return &LoadResult{BatchID: batchID, Codes: codes, Synonyms: syns, Duration: dur}, nil
}
