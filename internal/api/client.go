package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/nutrilog/internal/application"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout = 30 * time.Second

	// maxBodySize caps how much of a response is read
	maxBodySize = 8 << 20

	// RequestIDHeader carries a per-request UUID
	RequestIDHeader = "X-Request-ID"
)

// Client is a client for the nutrition API.
type Client struct {
	baseURL    string
	token      string
	timeout    time.Duration
	base       http.RoundTripper
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOptions configures a client.
type ClientOptions struct {
	// Token is the bearer token; empty for anonymous calls
	Token string

	// Timeout bounds each request (default 30s)
	Timeout time.Duration

	// Transport replaces http.DefaultTransport, for tests
	Transport http.RoundTripper

	Logger *slog.Logger
}

// NewClient creates a new API client for baseURL.
func NewClient(baseURL string, opts ClientOptions) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		base:    base,
		logger:  logger,
	}
	c.setToken(opts.Token)

	return c
}

// WithToken returns a copy of c that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.setToken(token)

	return &clone
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasToken reports whether requests are authenticated.
func (c *Client) HasToken() bool {
	return c.token != ""
}

func (c *Client) setToken(token string) {
	c.token = token

	transport := c.base
	if token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.base,
		}
	}

	c.httpClient = &http.Client{
		Timeout:   c.timeout,
		Transport: transport,
	}
}

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	_, err := c.do(ctx, http.MethodGet, path, query, nil, result)
	return err
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	_, err := c.do(ctx, http.MethodPost, path, nil, body, result)
	return err
}

func (c *Client) put(ctx context.Context, path string, body, result any) error {
	_, err := c.do(ctx, http.MethodPut, path, nil, body, result)
	return err
}

func (c *Client) delete(ctx context.Context, path string, result any) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, result)
	return err
}

// do sends one request, unwraps the envelope's data into result and returns
// the envelope message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result any) (string, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u = u + "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to encode request: %w", err)
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", application.AppName+"/"+application.Version)
	req.Header.Set(RequestIDHeader, requestID)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("API request", "method", method, "path", path, "request_id", requestID)

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("API response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", &Error{Method: method, Path: path, Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Success == nil {
		return "", &Error{Method: method, Path: path, Status: resp.StatusCode, Message: "response is not an API envelope"}
	}

	if !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = defaultErrorMessage
		}

		return "", &Error{Method: method, Path: path, Status: resp.StatusCode, Message: msg}
	}

	if result == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return env.Message, nil
	}

	if err := json.Unmarshal(env.Data, result); err != nil {
		return "", fmt.Errorf("failed to decode %s %s data: %w", method, path, err)
	}

	return env.Message, nil
}
