// Package supabase is a thin client for the remote backend's PostgREST API.
// All requests carry the service-level key, never an end user's credentials.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings required to reach the PostgREST endpoint.
type Config struct {
	URL        string
	ServiceKey string
	Timeout    time.Duration
}

type Client struct {
	baseURL    string
	serviceKey string
	http       *http.Client
	log        zerolog.Logger
}

// NewClient validates configuration and returns a ready client. Missing URL
// or key is a configuration error, surfaced at startup.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	var missing []string
	if cfg.URL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if cfg.ServiceKey == "" {
		missing = append(missing, "SUPABASE_SERVICE_KEY")
	}
	if len(missing) > 0 {
		return nil, &domain.ConfigurationError{Missing: missing}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		serviceKey: cfg.ServiceKey,
		http:       &http.Client{Timeout: timeout},
		log:        log,
	}, nil
}

// Select performs GET /rest/v1/<table>?<query> and decodes the row array.
func (c *Client) Select(ctx context.Context, table string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, c.restURL(table, query), nil, nil, out)
}

// Insert performs POST /rest/v1/<table> and decodes the returned
// representation when out is non-nil.
func (c *Client) Insert(ctx context.Context, table string, body, out any) error {
	headers := map[string]string{"Prefer": "return=representation"}
	return c.do(ctx, http.MethodPost, c.restURL(table, nil), body, headers, out)
}

// Update performs PATCH /rest/v1/<table>?<query>.
func (c *Client) Update(ctx context.Context, table string, query url.Values, body, out any) error {
	headers := map[string]string{"Prefer": "return=representation"}
	return c.do(ctx, http.MethodPatch, c.restURL(table, query), body, headers, out)
}

// Delete performs DELETE /rest/v1/<table>?<query>.
func (c *Client) Delete(ctx context.Context, table string, query url.Values) error {
	return c.do(ctx, http.MethodDelete, c.restURL(table, query), nil, nil, nil)
}

// RPC invokes POST /rest/v1/rpc/<fn>. A 404 means the procedure is missing
// or mis-provisioned and is reported as ErrAuthServiceUnavailable by the
// caller-facing repositories.
func (c *Client) RPC(ctx context.Context, fn string, args, out any) error {
	return c.do(ctx, http.MethodPost, c.baseURL+"/rest/v1/rpc/"+fn, args, nil, out)
}

func (c *Client) restURL(table string, query url.Values) string {
	u := c.baseURL + "/rest/v1/" + table
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) do(ctx context.Context, method, rawURL string, body any, headers map[string]string, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("supabase: encode body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("supabase: build request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.UpstreamError{StatusCode: 0, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.UpstreamError{StatusCode: resp.StatusCode, Message: "unreadable response body"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().Int("status", resp.StatusCode).Str("method", method).Str("url", rawURL).Msg("upstream request failed")
		return &domain.UpstreamError{StatusCode: resp.StatusCode, Message: upstreamMessage(payload)}
	}

	if out != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return &domain.UpstreamError{StatusCode: resp.StatusCode, Message: "undecodable response body"}
		}
	}
	return nil
}

// upstreamMessage extracts PostgREST's error message without echoing the
// whole body into logs or client responses.
func upstreamMessage(payload []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Message != "" {
		return body.Message
	}
	if len(payload) > 200 {
		payload = payload[:200]
	}
	return string(payload)
}
