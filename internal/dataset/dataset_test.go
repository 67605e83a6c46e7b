package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gyeh/icd9harvest/internal/model"
)

func TestWriteRead(t *testing.T) {
	recs := []*model.Record{
		{Code: "296.20", Kind: model.KindDiagnosis, Name: "Major depressive disorder, single episode, unspecified", Short: "Maj depress dis", Syn: []string{"Depression", "MDD"}},
		{Code: "V10", Kind: model.KindDiagnosis, Name: "Personal history of malignant neoplasm"},
	}

	path := filepath.Join(t.TempDir(), "icd9.rich.json")
	if err := Write(path, recs); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, recs) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, recs)
	}
}

func TestWriteCompact(t *testing.T) {
	recs := []*model.Record{
		{Code: "001.0", Kind: model.KindDiagnosis, Name: "Cholera due to vibrio cholerae <classical>"},
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := Write(path, recs); err != nil {
		t.Fatalf("Write: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := strings.TrimSuffix(string(raw), "\n")
	// Compact separators, and angle brackets stay literal (no HTML escaping).
	want := `[{"code":"001.0","kind":"dx","name":"Cholera due to vibrio cholerae <classical>","short":""}]`
	if got != want {
		t.Errorf("output = %s, want %s", got, want)
	}
}

func TestWriteNilRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := Write(path, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Errorf("output = %q, want []", raw)
	}
}

func TestReadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{not json"), 0644)
	if _, err := Read(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestReadMissing(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
