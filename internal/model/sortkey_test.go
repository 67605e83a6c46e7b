package model

import (
	"reflect"
	"testing"
)

func sortCodes(codes []string) []string {
	recs := make([]*Record, len(codes))
	for i, c := range codes {
		recs[i] = &Record{Code: c}
	}
	SortRecords(recs)
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Code
	}
	return out
}

func TestSortRecords(t *testing.T) {
	got := sortCodes([]string{"1.5", "1.2", "V10", "E850.0", "2"})
	want := []string{"1.2", "1.5", "2", "E850.0", "V10"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sorted = %v, want %v", got, want)
	}
}

func TestSortMissingMinorFirst(t *testing.T) {
	got := sortCodes([]string{"296.0", "296", "296.20"})
	want := []string{"296", "296.0", "296.20"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sorted = %v, want %v", got, want)
	}
}

func TestSortLeadingZeros(t *testing.T) {
	// "001" and "1" share the numeric key; the raw code breaks the tie.
	got := sortCodes([]string{"10.1", "001.0", "2.5"})
	want := []string{"001.0", "2.5", "10.1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sorted = %v, want %v", got, want)
	}
}

func TestSortLetterGroups(t *testing.T) {
	got := sortCodes([]string{"V90", "E001", "V09.1", "999.9", "E850.0"})
	want := []string{"999.9", "E001", "E850.0", "V09.1", "V90"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sorted = %v, want %v", got, want)
	}
}

func TestCodeLessNonNumericMinor(t *testing.T) {
	// A non-numeric fraction takes the missing-minor sentinel.
	if !CodeLess("2.X", "2.0") {
		t.Error("expected 2.X to sort before 2.0")
	}
}
