package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client issues requests against the upstream repository API and packs
// the raw outcome into envelopes for the parser.
type Client struct {
	base  string
	httpc *http.Client
}

func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(strings.TrimSpace(base), "/"),
		httpc: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Get fetches href and returns the request descriptor plus the response
// envelope. href may be absolute or relative to the client base.
func (c *Client) Get(ctx context.Context, href string) (Request, Envelope, error) {
	return c.Do(ctx, http.MethodGet, href, nil)
}

// Do performs one request. body, when non-nil, is sent as JSON.
func (c *Client) Do(ctx context.Context, method, href string, body any) (Request, Envelope, error) {
	req := Request{
		UUID:   uuid.NewString(),
		Method: method,
		Href:   c.resolve(href),
	}
	if req.Href == "" {
		return req, Envelope{}, fmt.Errorf("request href is required")
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return req, Envelope{}, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.Href, reader)
	if err != nil {
		return req, Envelope{}, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if reader != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return req, Envelope{}, err
	}
	defer resp.Body.Close()

	env := Envelope{
		StatusCode: resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return req, env, fmt.Errorf("read response body: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return req, env, nil
	}
	if err := json.Unmarshal(raw, &env.Payload); err != nil {
		return req, env, fmt.Errorf("decode response body: %w", err)
	}
	return req, env, nil
}

func (c *Client) resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return c.base + "/" + strings.TrimLeft(href, "/")
}
