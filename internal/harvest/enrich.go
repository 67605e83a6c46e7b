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

// ConditionRequest builds the search request used to page the consumer
// conditions table. The ICD-9 join code, canonical names, and synonyms all
// arrive as auxiliary fields keyed off the condition's key_id.
func ConditionRequest(prefix string, count, offset int) clinicaltables.SearchRequest {
	return clinicaltables.SearchRequest{
		Terms:     prefix,
		Count:     count,
		Offset:    offset,
		Display:   []string{"consumer_name"},
		Extra:     []string{"term_icd9_code", "term_icd9_text", "synonyms", "primary_name", "consumer_name"},
		CodeField: "key_id",
	}
}

// EnrichResult holds metrics from the conditions enrichment phase.
type EnrichResult struct {
	Pages    int64
	Matched  int
	Added    int
	Duration time.Duration
}

// Enrich pages the conditions table over the given prefixes and, for every
// row whose embedded ICD-9 code matches a harvested record, appends the
// row's human-friendly names and synonyms to that record. records is
// mutated in place. Rows pointing at codes we do not hold are skipped; many
// conditions map to other vocabularies entirely.
func Enrich(ctx context.Context, client *clinicaltables.Client, baseURL string, prefixes []string, records map[string]*model.Record, pageSize int, delay time.Duration, log zerolog.Logger) (*EnrichResult, error) {
	start := time.Now()
	matched := make(map[string]struct{})
	var pages int64
	var added int

	for _, pfx := range prefixes {
		offset := 0
		for {
			page, err := client.Search(ctx, baseURL, ConditionRequest(pfx, pageSize, offset))
			if err != nil {
				return nil, fmt.Errorf("enrich prefix %q: %w", pfx, err)
			}
			pages++

			for i := range page.Keys {
				code := strings.TrimSpace(page.Extra("term_icd9_code", i).One())
				if code == "" {
					continue
				}
				rec, ok := records[code]
				if !ok {
					continue
				}

				before := len(rec.Syn)

				// Canonical names double as synonyms unless they just
				// restate the record's own title.
				for _, cand := range []string{
					page.Extra("primary_name", i).One(),
					page.Extra("consumer_name", i).One(),
					page.Extra("term_icd9_text", i).One(),
				} {
					cand = strings.TrimSpace(cand)
					if cand != "" && !strings.EqualFold(cand, rec.Name) {
						rec.Syn = append(rec.Syn, cand)
					}
				}

				// The synonyms cell is a string or a list; either way every
				// non-empty trimmed entry is appended.
				for _, s := range page.Extra("synonyms", i).Many() {
					s = strings.TrimSpace(s)
					if s != "" {
						rec.Syn = append(rec.Syn, s)
					}
				}

				rec.Syn = normalize.DedupeFold(rec.Syn)
				if len(rec.Syn) > before {
					added += len(rec.Syn) - before
				}
				matched[code] = struct{}{}
			}

			got := len(page.Keys)
			if got == 0 || offset+got >= page.Total {
				break
			}
			offset += got
			time.Sleep(delay)
		}
		time.Sleep(delay)
	}

	dur := time.Since(start)
	log.Info().
		Int("records_matched", len(matched)).
		Int("synonyms_added", added).
		Int64("pages", pages).
		Str("duration", dur.String()).
		Msg("enrichment complete")

	return &EnrichResult{Pages: pages, Matched: len(matched), Added: added, Duration: dur}, nil
}
