package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrUnauthorized is returned when the API rejects the stored token.
var ErrUnauthorized = errors.New("api: authentication failed, token rejected")

// Client talks to the edgehub cloud API on behalf of a logged-in user.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, used by streaming
// callers that need to drop the default timeout.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// New creates a client for the given API endpoint and auth token.
func New(baseURL, token string, opt ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opt {
		o(c)
	}
	return c
}

// compact hex form used by device UUIDs, with or without dashes
var hexID = regexp.MustCompile(`^[0-9a-fA-F]{32,64}$`)

// IsDeviceUUID reports whether s looks like a cloud device identifier.
func IsDeviceUUID(s string) bool {
	if _, err := uuid.Parse(s); err == nil {
		return true
	}
	return hexID.MatchString(s)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.open(ctx, path, query)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	return json.NewDecoder(resp.Body).Decode(out)
}

// open issues a GET request and returns the response with the body still
// open. The caller owns the body.
func (c *Client) open(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		_ = resp.Body.Close()
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("api: GET %s: %s: %s", path, resp.Status, strings.TrimSpace(string(body)))
	}
	return resp, nil
}
