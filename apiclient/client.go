// Package apiclient is the thin REST boundary to the remote admin API.
// Every outcome (2xx, non-2xx, non-JSON body, transport failure) is
// normalized into the same Response shape so callers treat all failure
// modes identically and never handle a raw transport error.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// TokenSource returns the current bearer token, or "" when there is
// none. Only the session store owns the token; the client just asks
// for it per request.
type TokenSource func() string

// Response is the uniform result of every API call.
type Response struct {
	Success bool
	Message string
	Data    json.RawMessage
	Errors  map[string]string
}

// wireEnvelope is the API's common response envelope. Error maps may
// arrive as a string or a list per field; flattening happens once here.
type wireEnvelope struct {
	Success *bool                      `json:"success"`
	Message string                     `json:"message"`
	Data    json.RawMessage            `json:"data"`
	Errors  map[string]json.RawMessage `json:"errors"`
}

type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource TokenSource
	log         zerolog.Logger
}

// Option modifies a Client at construction time.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTokenSource sets the bearer-token provider for authenticated
// calls.
func WithTokenSource(source TokenSource) Option {
	return func(c *Client) {
		c.tokenSource = source
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.log = logger
	}
}

// New initializes a Client against the API base URL.
func New(baseURL string, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[apiclient.New] baseURL is required")
	}

	client := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		tokenSource: func() string { return "" },
		log:         zerolog.Nop(),
	}
	for _, opt := range options {
		opt(client)
	}
	return client, nil
}

// URL joins the base URL with an endpoint path.
func (c *Client) URL(endpoint string) string {
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}

// Post sends an unauthenticated JSON POST.
func (c *Client) Post(ctx context.Context, endpoint string, body any) Response {
	return c.do(ctx, http.MethodPost, endpoint, body, false)
}

// PostAuth sends a JSON POST with the bearer token attached.
func (c *Client) PostAuth(ctx context.Context, endpoint string, body any) Response {
	return c.do(ctx, http.MethodPost, endpoint, body, true)
}

// GetAuth sends a GET with the bearer token attached.
func (c *Client) GetAuth(ctx context.Context, endpoint string) Response {
	return c.do(ctx, http.MethodGet, endpoint, nil, true)
}

// PostBearer sends a JSON POST with an explicit bearer token instead of
// consulting the token source. Used for calls that must outlive the
// session that produced the token, like the logout notification.
func (c *Client) PostBearer(ctx context.Context, endpoint string, body any, token string) Response {
	detached := *c
	detached.tokenSource = func() string { return token }
	return detached.do(ctx, http.MethodPost, endpoint, body, true)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, authenticated bool) Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Response{Success: false, Message: err.Error()}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(endpoint), reader)
	if err != nil {
		return Response{Success: false, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if authenticated {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("endpoint", endpoint).Msg("api request failed")
		return Response{Success: false, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{Success: false, Message: err.Error()}
	}

	return normalize(resp, raw)
}

// normalize maps a raw HTTP response onto the uniform Response shape.
func normalize(resp *http.Response, raw []byte) Response {
	var envelope wireEnvelope
	parsed := len(raw) > 0 && json.Unmarshal(raw, &envelope) == nil

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !ok {
		message := "request failed"
		if parsed && envelope.Message != "" {
			message = envelope.Message
		} else if !parsed && len(raw) > 0 {
			message = "server error (non-JSON response)"
		}
		return Response{
			Success: false,
			Message: message,
			Errors:  flattenErrors(envelope.Errors),
		}
	}

	if !parsed {
		// Empty or non-JSON 2xx body (e.g. a 204) still counts as
		// success.
		return Response{Success: true, Message: "request successful"}
	}

	if envelope.Success != nil && !*envelope.Success {
		message := envelope.Message
		if message == "" {
			message = "request failed"
		}
		return Response{
			Success: false,
			Message: message,
			Errors:  flattenErrors(envelope.Errors),
		}
	}

	data := envelope.Data
	if data == nil {
		data = raw
	}
	message := envelope.Message
	if message == "" {
		message = "request successful"
	}
	return Response{Success: true, Message: message, Data: data}
}

// flattenErrors reduces a per-field error value (string or list of
// strings) to a single message per field.
func flattenErrors(wire map[string]json.RawMessage) map[string]string {
	if len(wire) == 0 {
		return nil
	}
	flat := make(map[string]string, len(wire))
	for field, raw := range wire {
		var single string
		if err := json.Unmarshal(raw, &single); err == nil {
			flat[field] = single
			continue
		}
		var many []string
		if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
			flat[field] = many[0]
		}
	}
	return flat
}
