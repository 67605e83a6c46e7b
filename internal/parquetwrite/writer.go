package parquetwrite

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/icd9harvest/internal/model"
)

// Row is the flattened Parquet representation of a dataset record.
type Row struct {
	Code     string   `parquet:"code"`
	Kind     string   `parquet:"kind"`
	Name     string   `parquet:"name"`
	Short    string   `parquet:"short_name"`
	Synonyms []string `parquet:"synonyms,list"`
}

// Write serializes records as a Parquet file at path and returns the row
// count written.
func Write(path string, records []*model.Record) (int, error) {
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row{
			Code:     rec.Code,
			Kind:     string(rec.Kind),
			Name:     rec.Name,
			Short:    rec.Short,
			Synonyms: rec.Syn,
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}

	writer := parquet.NewGenericWriter[Row](f)
	if _, err := writer.Write(rows); err != nil {
		f.Close()
		return 0, fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		f.Close()
		return 0, fmt.Errorf("close parquet writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", path, err)
	}
	return len(rows), nil
}
