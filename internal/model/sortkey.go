package model

import (
	"sort"
	"strings"
)

// codeKey is the decomposed sort key for an ICD-9 code. Plain numeric codes
// (group 0) order by (major, minor, raw code), with minor = -1 when the code
// has no fraction so "296" sorts before "296.0". V and E codes (group 1)
// order by first byte, then raw code.
type codeKey struct {
	group int
	major int
	minor int
	alpha byte
}

func keyOf(code string) codeKey {
	if code == "" {
		return codeKey{group: 1}
	}
	if code[0] < '0' || code[0] > '9' {
		return codeKey{group: 1, alpha: code[0]}
	}

	majorPart := code
	minorPart := ""
	if dot := strings.IndexByte(code, '.'); dot >= 0 {
		majorPart = code[:dot]
		minorPart = code[dot+1:]
	}

	major, ok := parseDigits(majorPart)
	if !ok {
		// Major segments are expected to be all digits; a malformed one
		// sorts by its leading digit run so the order stays total.
		major, _ = parseDigits(leadingDigits(majorPart))
	}
	minor := -1
	if n, ok := parseDigits(minorPart); ok {
		minor = n
	}
	return codeKey{major: major, minor: minor}
}

// CodeLess reports whether code a orders before code b in the output dataset.
func CodeLess(a, b string) bool {
	ka, kb := keyOf(a), keyOf(b)
	if ka.group != kb.group {
		return ka.group < kb.group
	}
	if ka.group == 0 {
		if ka.major != kb.major {
			return ka.major < kb.major
		}
		if ka.minor != kb.minor {
			return ka.minor < kb.minor
		}
		return a < b
	}
	if ka.alpha != kb.alpha {
		return ka.alpha < kb.alpha
	}
	return a < b
}

// SortRecords orders records in place for serialization.
func SortRecords(recs []*Record) {
	sort.Slice(recs, func(i, j int) bool {
		return CodeLess(recs[i].Code, recs[j].Code)
	})
}

func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func leadingDigits(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return s[:i]
		}
	}
	return s
}
