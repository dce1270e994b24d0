package signor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultURL is the base URL of the SIGNOR web service.
const DefaultURL = "https://signor.uniroma2.it"

// Form values accepted by the download_complexes.php endpoint.
const (
	proteinFamilyData = "Download protein family data"
	complexData       = "Download complex data"
)

// Client talks to the SIGNOR download endpoints.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewClient creates a SIGNOR client. An empty baseURL selects the public
// SIGNOR service.
func NewClient(baseURL, userAgent string) *Client {
	u := strings.TrimSpace(baseURL)
	if u == "" {
		u = DefaultURL
	}
	u = strings.TrimRight(u, "/")

	return &Client{
		client: &http.Client{
			Timeout: 180 * time.Second,
		},
		baseURL:   u,
		userAgent: userAgent,
	}
}

// PathwayDataURL builds the download URL for one pathway. With relationsOnly
// set the service returns the tab separated relations instead of the
// pathway description.
func (c *Client) PathwayDataURL(pathwayID string, relationsOnly bool) string {
	suffix := ""
	if relationsOnly {
		suffix = "&relations=only"
	}
	return c.baseURL + "/getPathwayData.php?pathway=" + url.QueryEscape(pathwayID) + suffix
}

// PathwayListURL builds the URL listing every pathway id and name.
func (c *Client) PathwayListURL() string {
	return c.baseURL + "/getPathwayData.php?list"
}

// FullSpeciesURL builds the URL for all interactions of one organism.
func (c *Client) FullSpeciesURL(taxonomyID string) string {
	return c.baseURL + "/getData.php?organism=" + url.QueryEscape(taxonomyID)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("got status code of %d from signor", resp.StatusCode)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// GetPathwayList fetches the tab separated pathway listing.
func (c *Client) GetPathwayList(ctx context.Context) ([]byte, error) {
	return c.get(ctx, c.PathwayListURL())
}

// GetPathwayData fetches one pathway, either its relations or its
// description table.
func (c *Client) GetPathwayData(ctx context.Context, pathwayID string, relationsOnly bool) ([]byte, error) {
	return c.get(ctx, c.PathwayDataURL(pathwayID, relationsOnly))
}

// GetFullSpecies fetches every interaction for one organism.
func (c *Client) GetFullSpecies(ctx context.Context, taxonomyID string) ([]byte, error) {
	return c.get(ctx, c.FullSpeciesURL(taxonomyID))
}

// getEntityData posts the form that triggers a protein family or complex
// export.
func (c *Client) getEntityData(ctx context.Context, submit string) ([]byte, error) {
	form := url.Values{}
	form.Set("submit", submit)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/download_complexes.php", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

// GetProteinFamilies fetches the protein family membership export.
func (c *Client) GetProteinFamilies(ctx context.Context) ([]byte, error) {
	return c.getEntityData(ctx, proteinFamilyData)
}

// GetComplexes fetches the complex membership export.
func (c *Client) GetComplexes(ctx context.Context) ([]byte, error) {
	return c.getEntityData(ctx, complexData)
}
