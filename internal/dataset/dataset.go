// Package dataset reads and writes the built artifact: a single compact
// JSON array of records, UTF-8, no extra whitespace.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gyeh/icd9harvest/internal/model"
)

// Write serializes records as one compact JSON array at path. Non-ASCII
// text is written as UTF-8, not \u escapes.
func Write(path string, records []*model.Record) error {
	if records == nil {
		records = []*model.Record{}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		f.Close()
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush dataset: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Read loads a dataset artifact written by Write.
func Read(path string) ([]*model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var recs []*model.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return recs, nil
}
