package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/coinbank/internal/common"
	"github.com/dmitrijs2005/coinbank/internal/logging"
	"github.com/google/uuid"
)

// TokenSource yields the bearer token for the next request; "" means the
// request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// NewClient returns a client for baseURL. A nil httpClient means
// http.DefaultClient; no extra timeout is imposed.
func NewClient(baseURL string, httpClient *http.Client, tokens TokenSource, log logging.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
		log:     log,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// Request sends body (JSON-encoded when non-nil) to endpoint and decodes the
// response into out (when non-nil).
func (c *Client) Request(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeader, requestID)
	if token := c.tokens.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}

	log := c.log.With("method", method, "endpoint", endpoint, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(ctx, "request failed", "error", err)
		return &APIError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		log.Warn(ctx, "rate limited")
		return ErrRateLimited
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		log.Warn(ctx, "service unavailable", "status", resp.StatusCode)
		return ErrServiceUnavailable
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(ctx, "read response failed", "error", err)
		return &APIError{Status: resp.StatusCode, Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		decodeLenient(data, &eb)
		msg := eb.Error
		if msg == "" {
			msg = defaultErrorMessage(endpoint, resp.StatusCode)
		}
		log.Error(ctx, "api error", "status", resp.StatusCode, "message", msg)
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		decodeLenient(data, out)
	}
	return nil
}

func defaultErrorMessage(endpoint string, status int) string {
	if endpoint == loginEndpoint {
		return "Login failed"
	}
	return fmt.Sprintf("API error: %d", status)
}

// decodeLenient fills out from data, or resets it to its zero value when
// data is empty or not valid JSON for out's type.
func decodeLenient(data []byte, out any) {
	if len(bytes.TrimSpace(data)) == 0 {
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		v := reflect.ValueOf(out)
		if v.Kind() == reflect.Pointer && !v.IsNil() {
			v.Elem().SetZero()
		}
	}
}
