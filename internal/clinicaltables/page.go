package clinicaltables

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FieldValue is one auxiliary-field cell. The service returns cells as null,
// a single string, or an array of strings (the conditions synonyms field
// does both), so the cell decodes into a small tagged union.
type FieldValue struct {
	values []string
	list   bool
}

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = FieldValue{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FieldValue{values: []string{s}}
		return nil
	case '[':
		var elems []*string
		if err := json.Unmarshal(data, &elems); err != nil {
			return err
		}
		values := make([]string, len(elems))
		for i, e := range elems {
			if e != nil {
				values[i] = *e
			}
		}
		*v = FieldValue{values: values, list: true}
		return nil
	}
	return fmt.Errorf("auxiliary field cell is neither null, string, nor array: %s", data)
}

// IsList reports whether the cell arrived as an array.
func (v FieldValue) IsList() bool { return v.list }

// One returns the cell's single value, or its first element when the cell
// is an array, or "" when the cell is empty.
func (v FieldValue) One() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// Many returns every value in the cell. For a single-string cell this is a
// one-element slice, so append sites treat both shapes uniformly.
func (v FieldValue) Many() []string { return v.values }

// SearchPage is one decoded response from a ClinicalTables search endpoint.
// The wire shape is positional:
//
//	[total, keys[], aux_fields|null, display_rows[][], ...]
//
// where keys, every aux_fields array, and display_rows are parallel.
type SearchPage struct {
	Total   int
	Keys    []string
	Extras  map[string][]FieldValue
	Display [][]string
}

func (p *SearchPage) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("decode response array: %w", err)
	}
	if len(parts) < 4 {
		return fmt.Errorf("response has %d slots, want at least 4", len(parts))
	}
	if err := json.Unmarshal(parts[0], &p.Total); err != nil {
		return fmt.Errorf("decode total: %w", err)
	}
	if err := json.Unmarshal(parts[1], &p.Keys); err != nil {
		return fmt.Errorf("decode keys: %w", err)
	}
	if !bytes.Equal(bytes.TrimSpace(parts[2]), []byte("null")) {
		if err := json.Unmarshal(parts[2], &p.Extras); err != nil {
			return fmt.Errorf("decode auxiliary fields: %w", err)
		}
	}
	if err := json.Unmarshal(parts[3], &p.Display); err != nil {
		return fmt.Errorf("decode display rows: %w", err)
	}
	return nil
}

// Extra returns the auxiliary cell for field at row i, or a zero cell when
// the field is absent or shorter than the keys array.
func (p *SearchPage) Extra(field string, i int) FieldValue {
	cells, ok := p.Extras[field]
	if !ok || i < 0 || i >= len(cells) {
		return FieldValue{}
	}
	return cells[i]
}

// DisplayRow returns the display row at index i, or nil past the end.
func (p *SearchPage) DisplayRow(i int) []string {
	if i < 0 || i >= len(p.Display) {
		return nil
	}
	return p.Display[i]
}
