// Package apiclient calls the minerals HTTP API and turns failures into *Error.
package apiclient

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
)

const (
	defaultTimeout = 15 * time.Second
	// maxBodySize bounds how much of any response is read.
	maxBodySize = 1 << 20
)

// TokenSource returns the bearer token for the next request.
type TokenSource func(ctx context.Context) (string, error)

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	token      TokenSource
	userAgent  string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sends a fixed bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = func(context.Context) (string, error) { return token, nil }
	}
}

func WithTokenSource(src TokenSource) Option {
	return func(c *Client) { c.token = src }
}

// WithProxy routes requests through an HTTP proxy.
func WithProxy(proxyURL string) Option {
	return func(c *Client) {
		parsed, err := url.Parse(proxyURL)
		if err != nil || proxyURL == "" {
			return
		}
		c.httpClient.Transport = &http.Transport{Proxy: http.ProxyURL(parsed)}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New builds a client for the API rooted at baseURL, e.g. https://host/api.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https, got %q", baseURL)
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  "minerals-apiclient/1",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Signup(ctx context.Context) (*Account, error) {
	return call[Account](ctx, c, http.MethodPost, "/account", nil)
}

func (c *Client) Account(ctx context.Context) (*Account, error) {
	return call[Account](ctx, c, http.MethodGet, "/account", nil)
}

// Data loads settings; the server creates defaults on first use.
func (c *Client) Data(ctx context.Context) (*UserData, error) {
	return call[UserData](ctx, c, http.MethodGet, "/data", nil)
}

func (c *Client) SaveData(ctx context.Context, patch DataPatch) (*UserData, error) {
	return call[UserData](ctx, c, http.MethodPost, "/data", patch)
}

func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	out, err := call[[]Task](ctx, c, http.MethodGet, "/tasks", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (c *Client) CreateTask(ctx context.Context, task NewTask) (*Task, error) {
	return call[Task](ctx, c, http.MethodPost, "/tasks", task)
}

func (c *Client) UpdateTaskValue(ctx context.Context, taskID string, valueEarned float64) (*Task, error) {
	body := map[string]any{"taskId": taskID, "valueEarned": valueEarned}
	return call[Task](ctx, c, http.MethodPatch, "/tasks", body)
}

func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/tasks", url.Values{"id": {taskID}}, nil, nil)
}

func (c *Client) Income(ctx context.Context) ([]IncomeEntry, error) {
	out, err := call[[]IncomeEntry](ctx, c, http.MethodGet, "/income", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (c *Client) AddIncome(ctx context.Context, in NewIncome) (*IncomeEntry, error) {
	return call[IncomeEntry](ctx, c, http.MethodPost, "/income", in)
}

func (c *Client) DeleteIncome(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/income", url.Values{"id": {id}}, nil, nil)
}

func (c *Client) Loops(ctx context.Context) ([]Loop, error) {
	out, err := call[[]Loop](ctx, c, http.MethodGet, "/loops", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (c *Client) SaveLoop(ctx context.Context, in LoopInput) (*Loop, error) {
	return call[Loop](ctx, c, http.MethodPost, "/loops", in)
}

func (c *Client) DeleteLoop(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/loops", url.Values{"id": {id}}, nil, nil)
}

func (c *Client) Subscription(ctx context.Context) (*Subscription, error) {
	return call[Subscription](ctx, c, http.MethodGet, "/subscription", nil)
}

// Checkout returns the hosted checkout URL for the pro plan.
func (c *Client) Checkout(ctx context.Context) (string, error) {
	var out urlResponse
	err := c.do(ctx, http.MethodPost, "/billing/checkout", nil, nil, &out)
	return out.URL, err
}

func (c *Client) Portal(ctx context.Context) (string, error) {
	var out urlResponse
	err := c.do(ctx, http.MethodPost, "/billing/portal", nil, nil, &out)
	return out.URL, err
}

func (c *Client) Outcomes(ctx context.Context) (*Outcomes, error) {
	return call[Outcomes](ctx, c, http.MethodGet, "/outcomes", nil)
}

func call[T any](ctx context.Context, c *Client, method, path string, in any) (*T, error) {
	var out T
	if err := c.do(ctx, method, path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	target := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != nil {
		token, err := c.token(ctx)
		if err != nil {
			return fmt.Errorf("get token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			// A 2xx with a non-JSON body is a misrouted request, e.g. the SPA fallback.
			return &Error{
				Status:  resp.StatusCode,
				Message: "unexpected non-JSON response",
				Detail:  summarize(raw),
			}
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
