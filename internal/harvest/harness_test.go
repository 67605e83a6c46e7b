package harvest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
)

// codeRow is one row of a fake code table: key is the undotted code, disp
// the display row (dotted code, long title), short the auxiliary short title.
type codeRow struct {
	key   string
	disp  []string
	short string
}

// condRow is one row of the fake conditions table.
type condRow struct {
	key      string
	icd9Code string
	icd9Text string
	primary  string
	consumer string
	synonyms any // string, []string, or nil
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func writePayload(t *testing.T, w http.ResponseWriter, payload []any) {
	t.Helper()
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Errorf("encode payload: %v", err)
	}
}

func pageWindow(r *http.Request, total int) (offset, end int) {
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	count, _ := strconv.Atoi(r.URL.Query().Get("count"))
	if offset > total {
		offset = total
	}
	end = offset + count
	if end > total {
		end = total
	}
	return offset, end
}

// codeTableServer serves the positional search payload for a fake code
// table, paging rowsByPrefix[terms] according to count and offset.
func codeTableServer(t *testing.T, rowsByPrefix map[string][]codeRow) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rows := rowsByPrefix[r.URL.Query().Get("terms")]
		offset, end := pageWindow(r, len(rows))
		page := rows[offset:end]

		keys := make([]string, 0, len(page))
		shorts := make([]any, 0, len(page))
		disp := make([][]string, 0, len(page))
		for _, row := range page {
			keys = append(keys, row.key)
			shorts = append(shorts, row.short)
			disp = append(disp, row.disp)
		}
		writePayload(t, w, []any{len(rows), keys, map[string]any{"short_name": shorts}, disp})
	}))
}

// condTableServer serves the fake conditions table with its auxiliary-field
// heavy payload shape.
func condTableServer(t *testing.T, rowsByPrefix map[string][]condRow) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rows := rowsByPrefix[r.URL.Query().Get("terms")]
		offset, end := pageWindow(r, len(rows))
		page := rows[offset:end]

		keys := make([]string, 0, len(page))
		disp := make([][]string, 0, len(page))
		extras := map[string][]any{
			"term_icd9_code": {},
			"term_icd9_text": {},
			"synonyms":       {},
			"primary_name":   {},
			"consumer_name":  {},
		}
		for _, row := range page {
			keys = append(keys, row.key)
			disp = append(disp, []string{row.consumer})
			extras["term_icd9_code"] = append(extras["term_icd9_code"], row.icd9Code)
			extras["term_icd9_text"] = append(extras["term_icd9_text"], row.icd9Text)
			extras["synonyms"] = append(extras["synonyms"], row.synonyms)
			extras["primary_name"] = append(extras["primary_name"], row.primary)
			extras["consumer_name"] = append(extras["consumer_name"], row.consumer)
		}
		writePayload(t, w, []any{len(rows), keys, extras, disp})
	}))
}
