// Package ndex is a minimal client for the NDEx v2 REST API covering what
// this loader needs: user lookup, network summaries, CX download and
// network create/update via multipart CX streams.
package ndex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// uploadField is the multipart form field NDEx expects the CX stream in.
const uploadField = "CXNetworkStream"

// Client talks to one NDEx server with one user's credentials.
type Client struct {
	client    *http.Client
	baseURL   string
	username  string
	password  string
	userAgent string
}

// NewClient creates a client for the given server. The server may omit the
// scheme (public.ndexbio.org), https is assumed then.
func NewClient(server, username, password, userAgent string) *Client {
	u := strings.TrimSpace(server)
	if !strings.Contains(u, "://") {
		u = "https://" + u
	}
	u = strings.TrimRight(u, "/")

	return &Client{
		client: &http.Client{
			Timeout: 360 * time.Second,
		},
		baseURL:   u,
		username:  username,
		password:  password,
		userAgent: userAgent,
	}
}

// User describes an NDEx user account.
type User struct {
	ExternalID uuid.UUID `json:"externalId"`
	UserName   string    `json:"userName"`
}

// NetworkSummary is the subset of an NDEx network summary the loader uses
// to decide between creating and updating a network.
type NetworkSummary struct {
	ExternalID uuid.UUID `json:"externalId"`
	Name       string    `json:"name"`
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(c.username, c.password)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("got status code of %d from ndex: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode ndex response: %w", err)
	}
	return nil
}

// User fetches the account of the configured username.
func (c *Client) User(ctx context.Context) (*User, error) {
	var user User
	err := c.getJSON(ctx, c.baseURL+"/v2/user?username="+url.QueryEscape(c.username), &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// NetworkSummaries lists the networks owned by the configured user.
func (c *Client) NetworkSummaries(ctx context.Context) ([]NetworkSummary, error) {
	user, err := c.User(ctx)
	if err != nil {
		return nil, err
	}

	var summaries []NetworkSummary
	err = c.getJSON(ctx, c.baseURL+"/v2/user/"+user.ExternalID.String()+"/networksummary", &summaries)
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// NetworkAsCX downloads one network as a raw CX document.
func (c *Client) NetworkAsCX(ctx context.Context, id uuid.UUID) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v2/network/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// cxBody wraps a CX document into the multipart body NDEx expects.
func cxBody(cx []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(uploadField, "network.cx")
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(cx); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// CreateNetwork uploads a new network and returns its UUID, parsed from the
// network URI the server responds with.
func (c *Client) CreateNetwork(ctx context.Context, cx []byte, visibility string) (uuid.UUID, error) {
	body, contentType, err := cxBody(cx)
	if err != nil {
		return uuid.Nil, err
	}

	target := c.baseURL + "/v2/network"
	if visibility != "" {
		target += "?visibility=" + url.QueryEscape(visibility)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body)
	if err != nil {
		return uuid.Nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(req)
	if err != nil {
		return uuid.Nil, err
	}
	defer resp.Body.Close()

	uri, err := io.ReadAll(resp.Body)
	if err != nil {
		return uuid.Nil, err
	}
	return parseNetworkURI(string(uri))
}

// UpdateNetwork replaces the content of an existing network.
func (c *Client) UpdateNetwork(ctx context.Context, id uuid.UUID, cx []byte) error {
	body, contentType, err := cxBody(cx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+"/v2/network/"+id.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// parseNetworkURI extracts the network UUID from a URI like
// https://public.ndexbio.org/v2/network/<uuid>.
func parseNetworkURI(uri string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(strings.Trim(strings.TrimSpace(uri), `"`))
	idx := strings.LastIndex(trimmed, "/")
	id, err := uuid.Parse(trimmed[idx+1:])
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse network URI %q: %w", uri, err)
	}
	return id, nil
}
