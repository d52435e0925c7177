// Package search is a thin Tavily client returning raw documents for enrichment.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ToroData/ai-radar-linkedin/nlp"
)

const defaultEndpoint = "https://api.tavily.com/search"

// DefaultMaxResults is used when a caller asks for fewer than one result.
const DefaultMaxResults = 3

// Doer is satisfied by *http.Client; inject one for tests/timeouts.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client queries the Tavily search API.
type Client struct {
	APIKey   string
	Endpoint string
	Doer     Doer
}

// NewClient targets the public endpoint; doer may be nil.
func NewClient(apiKey string, doer Doer) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{APIKey: apiKey, Endpoint: defaultEndpoint, Doer: doer}
}

type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResponse struct {
	Results []nlp.RawDocument `json:"results"`
}

// Search returns up to maxResults documents in the order the API ranked them.
// Non-200s return an error with a truncated body.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]nlp.RawDocument, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("tavily: empty query")
	}
	if maxResults < 1 {
		maxResults = DefaultMaxResults
	}
	body, err := json.Marshal(searchRequest{Query: query, MaxResults: maxResults})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tavily: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily %d: %s", resp.StatusCode, truncate(string(data), 300))
	}

	var out searchResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("tavily: decode: %w", err)
	}
	if len(out.Results) > maxResults {
		out.Results = out.Results[:maxResults]
	}
	return out.Results, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
