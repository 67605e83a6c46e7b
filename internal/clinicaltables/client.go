// Package clinicaltables is a thin client for the NLM Clinical Table Search
// Service (https://clinicaltables.nlm.nih.gov), which serves medical code
// reference tables through a paged search API with a positional JSON payload.
package clinicaltables

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Production endpoints for the three tables this tool reads.
const (
	DiagnosisBaseURL = "https://clinicaltables.nlm.nih.gov/api/icd9cm_dx/v3/search"
	ProcedureBaseURL = "https://clinicaltables.nlm.nih.gov/api/icd9cm_sg/v3/search"
	ConditionBaseURL = "https://clinicaltables.nlm.nih.gov/api/conditions/v3/search"
)

// SearchRequest describes one paged query against a search endpoint.
type SearchRequest struct {
	Terms     string   // anchor term; a code or name prefix
	Count     int      // page size, capped at 500 by the service
	Offset    int      // cumulative row offset within this prefix partition
	Display   []string // df: display fields returned as parallel row arrays
	Extra     []string // ef: auxiliary fields returned as named parallel arrays
	CodeField string   // cf: which source field populates the keys slot
}

// Client issues search queries. It does not retry: any transport, status, or
// decode failure is returned to the caller, and the harvest treats it as
// fatal.
type Client struct {
	httpc *http.Client
}

// New returns a Client backed by the given http.Client, or
// http.DefaultClient when nil.
func New(httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{httpc: httpc}
}

// Search runs one query against baseURL and decodes the positional payload.
func (c *Client) Search(ctx context.Context, baseURL string, req SearchRequest) (*SearchPage, error) {
	q := url.Values{}
	q.Set("terms", req.Terms)
	q.Set("count", strconv.Itoa(req.Count))
	q.Set("offset", strconv.Itoa(req.Offset))
	if len(req.Display) > 0 {
		q.Set("df", strings.Join(req.Display, ","))
	}
	if len(req.Extra) > 0 {
		q.Set("ef", strings.Join(req.Extra, ","))
	}
	if req.CodeField != "" {
		q.Set("cf", req.CodeField)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search terms=%q offset=%d: %w", req.Terms, req.Offset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search terms=%q offset=%d: unexpected status %s", req.Terms, req.Offset, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response terms=%q offset=%d: %w", req.Terms, req.Offset, err)
	}

	var page SearchPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode response terms=%q offset=%d: %w", req.Terms, req.Offset, err)
	}
	return &page, nil
}
