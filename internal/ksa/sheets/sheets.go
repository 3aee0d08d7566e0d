// Package sheets fetches mapping rows and cell values from the Google
// Sheets v4 REST API, batching all value reads into a single request.
package sheets

import (
	"fmt"
	"net/url"
	"time"

	"github.com/imroc/req/v3"

	"github.com/stardevs70/Keynote-Sheets-Automation/internal/ksa/errors"
	"github.com/stardevs70/Keynote-Sheets-Automation/internal/log"
)

const defaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// ValueSource resolves a set of range strings in one batched fetch.
// A returned error is fatal to the whole run; per-range problems are
// reported inside individual RawValues instead.
type ValueSource interface {
	BatchGet(ranges []string) (map[string]RawValue, error)
}

// MappingSource yields the raw rows of the mapping table
type MappingSource interface {
	MappingRows() ([][]string, error)
}

// Client talks to the Google Sheets API for one spreadsheet
type Client struct {
	http          *req.Client
	baseURL       string
	spreadsheetID string
	mappingSheet  string
	accessToken   string
	apiKey        string
}

// Option adjusts a Client during construction
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests)
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// NewClient builds a Sheets client. Exactly one of accessToken or apiKey
// must be non-empty; acquiring either is the caller's concern.
func NewClient(spreadsheetID, mappingSheet, accessToken, apiKey string, opts ...Option) (*Client, error) {
	if spreadsheetID == "" {
		return nil, errors.ErrNoSpreadsheet
	}
	c := &Client{
		http:          newHTTPClient(),
		baseURL:       defaultBaseURL,
		spreadsheetID: spreadsheetID,
		mappingSheet:  mappingSheet,
		accessToken:   accessToken,
		apiKey:        apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// newHTTPClient creates an HTTP client tuned for a handful of API calls
func newHTTPClient() *req.Client {
	return req.C().
		SetUserAgent("ksa/1.0").
		SetTimeout(30 * time.Second).
		EnableKeepAlives()
}

func (c *Client) request() *req.Request {
	r := c.http.R()
	if c.accessToken != "" {
		r.SetBearerAuthToken(c.accessToken)
	} else if c.apiKey != "" {
		r.SetQueryParam("key", c.apiKey)
	}
	return r
}

// valueRange mirrors the API's ValueRange resource
type valueRange struct {
	Range  string          `json:"range"`
	Values [][]interface{} `json:"values"`
}

// MappingRows reads the mapping tab, skipping its header row
func (c *Client) MappingRows() ([][]string, error) {
	rangeRef := fmt.Sprintf("'%s'!A2:K", c.mappingSheet)
	fullURL := fmt.Sprintf("%s/%s/values/%s", c.baseURL, c.spreadsheetID, url.PathEscape(rangeRef))
	log.DebugH2("Reading mapping rows from %s", rangeRef)

	var vr valueRange
	resp, err := c.request().Get(fullURL)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrBatchFetch, "mapping read: %v", err)
	}
	if resp.StatusCode != 200 {
		return nil, errors.Wrapf(errors.ErrBatchFetch, "mapping read returned status %d: %s", resp.StatusCode, resp.String())
	}
	if err := resp.UnmarshalJson(&vr); err != nil {
		return nil, errors.Wrapf(errors.ErrBatchFetch, "mapping read: bad response: %v", err)
	}

	rows := make([][]string, 0, len(vr.Values))
	for _, raw := range vr.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = Classify(cell).String()
		}
		rows = append(rows, row)
	}
	log.Info("Loaded %d mapping rows from %s", len(rows), c.mappingSheet)
	return rows, nil
}

// BatchGet fetches all ranges in one values:batchGet call. Duplicate range
// strings are deduplicated before the request; the response is demultiplexed
// positionally, since the API answers in request order. A failure of the
// call itself is fatal; a range missing from the response yields a
// per-range FetchError without disturbing its siblings.
func (c *Client) BatchGet(ranges []string) (map[string]RawValue, error) {
	values := make(map[string]RawValue, len(ranges))
	if len(ranges) == 0 {
		return values, nil
	}

	distinct := dedupe(ranges)
	fullURL := fmt.Sprintf("%s/%s/values:batchGet", c.baseURL, c.spreadsheetID)
	log.DebugH2("Batch fetching %d distinct range(s)", len(distinct))

	r := c.request()
	for _, rg := range distinct {
		r.AddQueryParam("ranges", rg)
	}

	var body struct {
		ValueRanges []valueRange `json:"valueRanges"`
	}
	resp, err := r.Get(fullURL)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrBatchFetch, "%v", err)
	}
	if resp.StatusCode != 200 {
		return nil, errors.Wrapf(errors.ErrBatchFetch, "status %d: %s", resp.StatusCode, resp.String())
	}
	if err := resp.UnmarshalJson(&body); err != nil {
		return nil, errors.Wrapf(errors.ErrBatchFetch, "bad response: %v", err)
	}

	for i, rg := range distinct {
		if i >= len(body.ValueRanges) {
			values[rg] = FetchError("range missing from batch response")
			continue
		}
		values[rg] = firstCell(body.ValueRanges[i])
	}
	log.Info("Fetched %d value(s) from spreadsheet", len(values))
	return values, nil
}

// firstCell extracts the single interesting cell of a ValueRange. Mappings
// address single cells; a multi-cell range contributes its top-left value.
func firstCell(vr valueRange) RawValue {
	if len(vr.Values) == 0 || len(vr.Values[0]) == 0 {
		return Blank()
	}
	return Classify(vr.Values[0][0])
}

func dedupe(ranges []string) []string {
	seen := make(map[string]bool, len(ranges))
	out := make([]string, 0, len(ranges))
	for _, rg := range ranges {
		if !seen[rg] {
			seen[rg] = true
			out = append(out, rg)
		}
	}
	return out
}
