package stash

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

	"golang.org/x/time/rate"
)

const defaultTimeout = 30 * time.Second

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues GraphQL requests against the host server.
type Client struct {
	endpoint   string
	apiKey     string
	cookie     *http.Cookie
	httpClient HTTPDoer
	limiter    *rate.Limiter
	pageSize   int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout replaces the default HTTP client with one using timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithAPIKey authenticates requests with the ApiKey header.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// WithSessionCookie authenticates requests with the session the host handed
// to the plugin.
func WithSessionCookie(name, value string) Option {
	return func(c *Client) {
		name = strings.TrimSpace(name)
		if name == "" || value == "" {
			return
		}
		c.cookie = &http.Cookie{Name: name, Value: value}
	}
}

// WithRateLimit paces requests to at most rps per second. Zero disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithPageSize sets the findGalleries page size; -1 requests every match at once.
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size == -1 || size > 0 {
			c.pageSize = size
		}
	}
}

// New creates a client for the GraphQL endpoint (for example
// http://localhost:9999/graphql).
func New(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("stash graphql endpoint required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse stash endpoint: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("stash endpoint %q must be absolute", endpoint)
	}
	client := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		pageSize:   -1,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// EndpointFromBaseURL appends the GraphQL path to a server base URL.
func EndpointFromBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if strings.HasSuffix(baseURL, "/graphql") {
		return baseURL
	}
	return baseURL + "/graphql"
}

// Endpoint returns the GraphQL URL the client talks to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// GraphQLError is one entry of the response errors array.
type GraphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path"`
}

// ResponseError reports GraphQL-level failures returned with HTTP 200.
type ResponseError struct {
	Operation string
	Errors    []GraphQLError
}

func (e *ResponseError) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, item := range e.Errors {
		messages = append(messages, strings.TrimSpace(item.Message))
	}
	return fmt.Sprintf("stash %s: %s", e.Operation, strings.Join(messages, "; "))
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("stash %s returned %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("stash %s returned %d: %s", e.Operation, e.StatusCode, e.Body)
}

func (c *Client) do(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("ApiKey", c.apiKey)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute %s (latency=%v): %w", operation, latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Operation: operation, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(bodyBytes))}
	}

	var payload graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	if len(payload.Errors) > 0 {
		return &ResponseError{Operation: operation, Errors: payload.Errors}
	}
	if out == nil {
		return nil
	}
	if len(payload.Data) == 0 || string(payload.Data) == "null" {
		return fmt.Errorf("stash %s: empty data", operation)
	}
	if err := json.Unmarshal(payload.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", operation, err)
	}
	return nil
}
