// Package genesymbol resolves entity identifiers (uniprot accessions,
// gene names) to official gene symbols via the mygene.info query service,
// with optional caching between runs.
package genesymbol

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultURL is the base URL of the public mygene.info service.
const DefaultURL = "https://mygene.info"

// Searcher resolves an entity identifier to a gene symbol. An empty symbol
// with a nil error means the service had no match.
type Searcher interface {
	Symbol(ctx context.Context, id string) (string, error)
}

// Client queries the mygene.info v3 API.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewClient creates a mygene.info client. An empty baseURL selects the
// public service.
func NewClient(baseURL, userAgent string) *Client {
	u := strings.TrimSpace(baseURL)
	if u == "" {
		u = DefaultURL
	}
	u = strings.TrimRight(u, "/")

	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   u,
		userAgent: userAgent,
	}
}

// Symbol looks up the best matching gene symbol for an identifier.
func (c *Client) Symbol(ctx context.Context, id string) (string, error) {
	query := c.baseURL + "/v3/query?q=" + url.QueryEscape(id) + "&fields=symbol&size=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, query, nil)
	if err != nil {
		return "", err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("got status code of %d from mygene", resp.StatusCode)
	}

	var result struct {
		Hits []struct {
			Symbol string `json:"symbol"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode mygene response: %w", err)
	}

	if len(result.Hits) == 0 {
		return "", nil
	}
	return result.Hits[0].Symbol, nil
}
