package db

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/icd9harvest/internal/model"
)

// codeColumns is the COPY column order for ref.icd9_codes.
var codeColumns = []string{"code", "kind", "name", "short_name", "load_batch_id"}

// CodeSource implements pgx.CopyFromSource by reading Records from a
// channel, giving natural backpressure between the dataset reader and the
// COPY writer.
type CodeSource struct {
	ch      <-chan *model.Record
	batchID uuid.UUID
	current *model.Record
}

// NewCodeSource creates a CopyFromSource backed by a channel. Every emitted
// row is tagged with batchID.
func NewCodeSource(ch <-chan *model.Record, batchID uuid.UUID) *CodeSource {
	return &CodeSource{ch: ch, batchID: batchID}
}

// Next advances to the next record. Returns false when the channel is closed.
func (s *CodeSource) Next() bool {
	rec, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = rec
	return true
}

// Values returns the current record's values in COPY column order.
func (s *CodeSource) Values() ([]any, error) {
	return []any{
		s.current.Code,
		string(s.current.Kind),
		s.current.Name,
		s.current.Short,
		s.batchID,
	}, nil
}

// Err returns any error encountered during iteration.
func (s *CodeSource) Err() error {
	return nil
}

// Compile-time check that CodeSource satisfies the interface.
var _ pgx.CopyFromSource = (*CodeSource)(nil)
