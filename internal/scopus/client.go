// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scopus queries the Elsevier Scopus Search API, walks a result
// set one offset at a time, and normalizes each entry into a fixed
// seven-column row.
package scopus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/pdiddy/scopus-scraper/internal/httputil"
	"github.com/pdiddy/scopus-scraper/pkg/types"
)

const (
	// DefaultEndpoint is the Scopus Search API URL.
	DefaultEndpoint = "https://api.elsevier.com/content/search/scopus"

	// DefaultUserAgent is sent when the config does not set one.
	DefaultUserAgent = "scopus-scraper/0.1"

	// apiKeyHeader carries the Elsevier API key.
	apiKeyHeader = "X-ELS-APIKey"

	sourceName = "Scopus"

	// maxBody caps the decoded response size.
	maxBody = 32 << 20
)

// Executor issues one bounded search request. Client is the production
// implementation; tests substitute canned responses.
type Executor interface {
	Search(ctx context.Context, query string, start int) (*Response, error)
}

// Client sends search requests to the Scopus API. It performs no retries
// and enforces no timeout of its own; both are left to HTTP.
type Client struct {
	HTTP      *http.Client
	APIKey    string
	Endpoint  string
	UserAgent string
	// PageSize is sent as the count parameter when > 0.
	PageSize int
	Log      zerolog.Logger
}

var _ Executor = (*Client)(nil)

// NewClient builds a Client from config and an API key.
func NewClient(cfg types.ScopusConfig, apiKey string, log zerolog.Logger) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Client{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		APIKey:    apiKey,
		Endpoint:  endpoint,
		UserAgent: ua,
		PageSize:  cfg.PageSize,
		Log:       log,
	}
}

// Search requests the page of results for query starting at offset start
// and returns the decoded body. The query is sent as given; callers wrap
// it with FieldScope first.
func (c *Client) Search(ctx context.Context, query string, start int) (*Response, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if start < 0 {
		return nil, ErrNegativeOffset
	}
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	reqURL, err := c.searchURL(query, start)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.APIKey)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Scopus API request: %w", err)
	}
	defer resp.Body.Close()

	c.Log.Debug().
		Int("start", start).
		Int("status", resp.StatusCode).
		Msg("scopus search")

	if err := httputil.CheckStatus(resp, sourceName); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("reading Scopus response: %w", err)
	}
	return ParseResponse(body)
}

func (c *Client) searchURL(query string, start int) (string, error) {
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint: %w", err)
	}

	params := url.Values{
		"query": {query},
		"view":  {"COMPLETE"},
		"start": {strconv.Itoa(start)},
	}
	if c.PageSize > 0 {
		params.Set("count", strconv.Itoa(c.PageSize))
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// Response is a decoded search response.
type Response struct {
	root gjson.Result
}

// ParseResponse validates body as JSON and wraps it.
func ParseResponse(body []byte) (*Response, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrInvalidResponse)
	}
	return &Response{root: gjson.ParseBytes(body)}, nil
}

// Entries returns the records under search-results.entry. ok is false
// when the envelope has no entry key, which means there are no more pages.
func (r *Response) Entries() (records []Record, ok bool) {
	entry := r.root.Get("search-results.entry")
	if !entry.Exists() || entry.Type == gjson.Null {
		return nil, false
	}
	items := entry.Array()
	records = make([]Record, len(items))
	for i, item := range items {
		records[i] = Record{res: item}
	}
	return records, true
}

// TotalResults returns search-results.opensearch:totalResults. Scopus
// encodes it as a string; a bare number is accepted too.
func (r *Response) TotalResults() (int, error) {
	v := r.root.Get("search-results.opensearch:totalResults")
	if !v.Exists() || v.Type == gjson.Null {
		return 0, fmt.Errorf("%w: missing opensearch:totalResults", ErrInvalidResponse)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.String()))
	if err != nil {
		return 0, fmt.Errorf("%w: opensearch:totalResults %q", ErrInvalidResponse, v.String())
	}
	return n, nil
}

// Raw returns the response body.
func (r *Response) Raw() string { return r.root.Raw }
