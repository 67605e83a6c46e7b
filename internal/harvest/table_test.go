package harvest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gyeh/icd9harvest/internal/clinicaltables"
	"github.com/gyeh/icd9harvest/internal/harvest"
	"github.com/gyeh/icd9harvest/internal/model"
)

func TestTableHarvest(t *testing.T) {
	srv := codeTableServer(t, map[string][]codeRow{
		"2": {
			{key: "29620", disp: []string{"296.20", "Major depressive disorder, single episode, unspecified"}, short: "Maj depress dis"},
			{key: "2989", disp: []string{"298.9", "  Unspecified   psychosis "}, short: " Psychosis  NOS "},
		},
		"3": {
			{key: "30000", disp: []string{"300.00", "Anxiety state, unspecified"}, short: "Anxiety state NOS"},
		},
	})
	defer srv.Close()

	client := clinicaltables.New(srv.Client())
	res, err := harvest.Table(context.Background(), client, srv.URL, []string{"2", "3"}, model.KindDiagnosis, 500, 0, testLogger())
	if err != nil {
		t.Fatalf("Table: %v", err)
	}

	if len(res.Records) != 3 {
		t.Fatalf("records = %d, want 3", len(res.Records))
	}

	rec := res.Records["296.20"]
	if rec == nil {
		t.Fatal("missing record 296.20")
	}
	if rec.Kind != model.KindDiagnosis {
		t.Errorf("kind = %q, want dx", rec.Kind)
	}
	if rec.Name != "Major depressive disorder, single episode, unspecified" {
		t.Errorf("name = %q", rec.Name)
	}
	if rec.Short != "Maj depress dis" {
		t.Errorf("short = %q", rec.Short)
	}

	// Whitespace in titles collapses to single spaces.
	psych := res.Records["298.9"]
	if psych == nil {
		t.Fatal("missing record 298.9")
	}
	if psych.Name != "Unspecified psychosis" {
		t.Errorf("name = %q, want collapsed", psych.Name)
	}
	if psych.Short != "Psychosis NOS" {
		t.Errorf("short = %q, want collapsed", psych.Short)
	}
}

func TestTablePagination(t *testing.T) {
	rows := []codeRow{
		{key: "001", disp: []string{"001.0", "Cholera due to vibrio cholerae"}},
		{key: "0011", disp: []string{"001.1", "Cholera due to vibrio cholerae el tor"}},
		{key: "0019", disp: []string{"001.9", "Cholera, unspecified"}},
		{key: "002", disp: []string{"002.0", "Typhoid fever"}},
		{key: "0021", disp: []string{"002.1", "Paratyphoid fever A"}},
	}
	srv := codeTableServer(t, map[string][]codeRow{"0": rows})
	defer srv.Close()

	client := clinicaltables.New(srv.Client())
	res, err := harvest.Table(context.Background(), client, srv.URL, []string{"0"}, model.KindDiagnosis, 2, 0, testLogger())
	if err != nil {
		t.Fatalf("Table: %v", err)
	}

	if len(res.Records) != 5 {
		t.Errorf("records = %d, want 5 across pages", len(res.Records))
	}
	if res.Pages != 3 {
		t.Errorf("pages = %d, want 3", res.Pages)
	}
}

func TestTablePrefixFilter(t *testing.T) {
	// The service matches loosely; a row outside the prefix partition must
	// be dropped, and the filter is case-insensitive.
	srv := codeTableServer(t, map[string][]codeRow{
		"V": {
			{key: "v10", disp: []string{"v10", "Personal history of malignant neoplasm"}},
			{key: "9999", disp: []string{"999.9", "Loose match outside partition"}},
		},
	})
	defer srv.Close()

	client := clinicaltables.New(srv.Client())
	res, err := harvest.Table(context.Background(), client, srv.URL, []string{"V"}, model.KindDiagnosis, 500, 0, testLogger())
	if err != nil {
		t.Fatalf("Table: %v", err)
	}

	if len(res.Records) != 1 {
		t.Fatalf("records = %d, want 1 after filtering", len(res.Records))
	}
	if _, ok := res.Records["v10"]; !ok {
		t.Error("case-insensitive prefix match dropped v10")
	}
}

func TestTableKeyFallback(t *testing.T) {
	// An empty display row falls back to the primary key as the code.
	srv := codeTableServer(t, map[string][]codeRow{
		"8": {
			{key: "850", disp: nil},
		},
	})
	defer srv.Close()

	client := clinicaltables.New(srv.Client())
	res, err := harvest.Table(context.Background(), client, srv.URL, []string{"8"}, model.KindProcedure, 500, 0, testLogger())
	if err != nil {
		t.Fatalf("Table: %v", err)
	}

	rec := res.Records["850"]
	if rec == nil {
		t.Fatal("missing fallback record 850")
	}
	if rec.Name != "" {
		t.Errorf("name = %q, want empty", rec.Name)
	}
}

func TestTableFetchErrorAborts(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := clinicaltables.New(srv.Client())
	_, err := harvest.Table(context.Background(), client, srv.URL, []string{"0", "1"}, model.KindDiagnosis, 500, 0, testLogger())
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry, no skip-and-continue)", calls)
	}
}
