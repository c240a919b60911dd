// Package client is a typed REST client for the booking API. Every call
// unwraps the response envelope and reduces failures to *Error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	intconfig "busbooking/internal/config"
)

// FallbackMessage is shown when the server gives no usable message.
const FallbackMessage = "Đã có lỗi xảy ra, vui lòng thử lại sau"

// Error is the only error type returned by API calls.
type Error struct {
	Status  int // 0 for transport failures
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Message extracts the user-facing message of any error.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return FallbackMessage
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to one API base URL, e.g. http://localhost:8080/api.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
}

// New creates a client. A nil store keeps the token in memory.
func New(baseURL string, tokens TokenStore) *Client {
	if tokens == nil {
		tokens = NewMemoryTokens()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
	}
}

// NewFromEnv points a client at API_BASE_URL.
func NewFromEnv(env intconfig.Env, tokens TokenStore) *Client {
	return New(env.APIBaseURL, tokens)
}

// WithHTTPClient swaps the underlying http.Client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Tokens exposes the token store.
func (c *Client) Tokens() TokenStore { return c.tokens }

func transportError(err error) *Error {
	return &Error{Message: FallbackMessage, Err: err}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return transportError(fmt.Errorf("marshal request: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return transportError(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token, err := c.tokens.Token()
	if err != nil {
		return transportError(fmt.Errorf("read token: %w", err))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: FallbackMessage, Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)
	if resp.StatusCode >= 400 || decodeErr != nil || !env.Success {
		msg := strings.TrimSpace(env.Message)
		if msg == "" {
			msg = FallbackMessage
		}
		return &Error{Status: resp.StatusCode, Message: msg, Err: decodeErr}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{Status: resp.StatusCode, Message: FallbackMessage, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

// Raw fetches a non-JSON body such as the e-ticket PDF.
func (c *Client) Raw(ctx context.Context, path string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, "", transportError(err)
	}
	if token, _ := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &Error{Status: resp.StatusCode, Message: FallbackMessage, Err: err}
	}
	if resp.StatusCode >= 400 {
		var env envelope
		_ = json.Unmarshal(raw, &env)
		msg := env.Message
		if msg == "" {
			msg = FallbackMessage
		}
		return nil, "", &Error{Status: resp.StatusCode, Message: msg}
	}
	return raw, resp.Header.Get("Content-Type"), nil
}
