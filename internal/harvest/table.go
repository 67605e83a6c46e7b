package harvest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/icd9harvest/internal/clinicaltables"
	"github.com/gyeh/icd9harvest/internal/model"
	"github.com/gyeh/icd9harvest/internal/normalize"
)

// CodeTableRequest builds the search request used to page a code table:
// keys carry the undotted code, display rows carry the dotted code and the
// long title, and the short title rides along as an auxiliary field.
func CodeTableRequest(prefix string, count, offset int) clinicaltables.SearchRequest {
	return clinicaltables.SearchRequest{
		Terms:     prefix,
		Count:     count,
		Offset:    offset,
		Display:   []string{"code_dotted", "long_name"},
		Extra:     []string{"short_name"},
		CodeField: "code",
	}
}

// TableResult holds the harvested records and metrics for one source table.
type TableResult struct {
	Records  map[string]*model.Record
	Pages    int64
	Duration time.Duration
}

// Table pages through one code table, one prefix partition at a time, and
// returns every reachable entry keyed by dotted code. A prefix is exhausted
// when a page comes back empty or the cumulative offset reaches the reported
// total. Any request or decode failure aborts the whole scan.
func Table(ctx context.Context, client *clinicaltables.Client, baseURL string, prefixes []string, kind model.Kind, pageSize int, delay time.Duration, log zerolog.Logger) (*TableResult, error) {
	start := time.Now()
	out := make(map[string]*model.Record)
	var pages int64

	for _, pfx := range prefixes {
		offset := 0
		for {
			page, err := client.Search(ctx, baseURL, CodeTableRequest(pfx, pageSize, offset))
			if err != nil {
				return nil, fmt.Errorf("harvest %s prefix %q: %w", kind, pfx, err)
			}
			pages++

			for i, key := range page.Keys {
				disp := page.DisplayRow(i)
				code := key
				if len(disp) > 0 && disp[0] != "" {
					code = disp[0]
				}
				// The search API matches loosely; drop rows that left the
				// intended partition.
				if !strings.HasPrefix(strings.ToUpper(code), strings.ToUpper(pfx)) {
					continue
				}
				var name string
				if len(disp) > 1 {
					name = disp[1]
				}
				out[code] = &model.Record{
					Code:  code,
					Kind:  kind,
					Name:  normalize.CollapseSpace(name),
					Short: normalize.CollapseSpace(page.Extra("short_name", i).One()),
				}
			}

			got := len(page.Keys)
			if got == 0 || offset+got >= page.Total {
				break
			}
			offset += got
			time.Sleep(delay)
		}

		log.Debug().
			Str("table", string(kind)).
			Str("prefix", pfx).
			Int("records", len(out)).
			Msg("prefix exhausted")
		time.Sleep(delay)
	}

	dur := time.Since(start)
	log.Info().
		Str("table", string(kind)).
		Int("records", len(out)).
		Int64("pages", pages).
		Str("duration", dur.String()).
		Msg("table harvested")

	return &TableResult{Records: out, Pages: pages, Duration: dur}, nil
}
