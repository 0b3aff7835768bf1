// Package launchlens is a client for the remote LaunchLens market-analysis
// service.
package launchlens

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

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/launchlens/internal/resilience"
)

// DefaultBaseURL is the hosted LaunchLens API.
const DefaultBaseURL = "https://qloo-rt0c.onrender.com"

// Client defines the LaunchLens API operations.
type Client interface {
	Login(ctx context.Context, username, password string) (*Token, error)
	Me(ctx context.Context) (*Profile, error)
	// Analyze returns the raw 2xx body. The body may carry either a report or
	// an {"error": ...} payload; interpreting it is the caller's job.
	Analyze(ctx context.Context, req AnalyzeRequest) ([]byte, error)
	History(ctx context.Context) ([]HistoryEntry, error)
	HistoryRecord(ctx context.Context, id ID) (*HistoryRecord, error)
	// Countries returns nil when the response has no countries key.
	Countries(ctx context.Context) ([]Region, error)
	States(ctx context.Context, countryCode string) ([]Region, error)
}

// TokenSource supplies the bearer credential for each request.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same credential.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token() string { return string(s) }

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout overrides the HTTP client timeout. Analysis requests can take
// several minutes, so the default is generous.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests per second. A non-positive rate
// disables limiting.
func WithRateLimit(perSec float64) Option {
	return func(c *httpClient) {
		if perSec <= 0 {
			c.limiter = nil
			return
		}
		burst := int(perSec)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
}

// WithRetry sets the retry policy applied to read-only calls.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(c *httpClient) {
		c.retry = cfg
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	tokens  TokenSource
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewClient creates a new LaunchLens client.
func NewClient(tokens TokenSource, opts ...Option) Client {
	if tokens == nil {
		tokens = StaticToken("")
	}
	c := &httpClient{
		tokens:  tokens,
		baseURL: DefaultBaseURL,
		http: &http.Client{
			Timeout: 5 * time.Minute,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(5, 5),
		retry:   resilience.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.retry.ShouldRetry = retryable
	return c
}

func (c *httpClient) Login(ctx context.Context, username, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "launchlens: login")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok Token
	if err := c.do(req, &tok); err != nil {
		return nil, eris.Wrap(err, "launchlens: login")
	}
	return &tok, nil
}

func (c *httpClient) Me(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.get(ctx, "/me", &p); err != nil {
		return nil, eris.Wrap(err, "launchlens: me")
	}
	return &p, nil
}

func (c *httpClient) Analyze(ctx context.Context, body AnalyzeRequest) ([]byte, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, eris.Wrap(err, "launchlens: marshal analyze request")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/analyze", bytes.NewReader(buf))
	if err != nil {
		return nil, eris.Wrap(err, "launchlens: analyze")
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	data, err := c.send(req)
	if err != nil {
		return nil, eris.Wrap(err, "launchlens: analyze")
	}
	return data, nil
}

func (c *httpClient) History(ctx context.Context) ([]HistoryEntry, error) {
	resp, err := resilience.Do(ctx, c.retryFor("history"), func(ctx context.Context) (historyResponse, error) {
		var out historyResponse
		err := c.get(ctx, "/history", &out)
		return out, err
	})
	if err != nil {
		return nil, eris.Wrap(err, "launchlens: history")
	}
	return resp.History, nil
}

func (c *httpClient) HistoryRecord(ctx context.Context, id ID) (*HistoryRecord, error) {
	path := "/history/select/" + url.PathEscape(string(id))
	rec, err := resilience.Do(ctx, c.retryFor("history_select"), func(ctx context.Context) (*HistoryRecord, error) {
		req, err := c.newRequest(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}
		c.authorize(req)
		data, err := c.send(req)
		if err != nil {
			return nil, err
		}
		var out HistoryRecord
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, eris.Wrap(err, "decode response")
		}
		out.Raw = data
		return &out, nil
	})
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("launchlens: history record %s", id))
	}
	return rec, nil
}

func (c *httpClient) Countries(ctx context.Context) ([]Region, error) {
	resp, err := resilience.Do(ctx, c.retryFor("countries"), func(ctx context.Context) (countriesResponse, error) {
		var out countriesResponse
		err := c.get(ctx, "/countries", &out)
		return out, err
	})
	if err != nil {
		return nil, eris.Wrap(err, "launchlens: countries")
	}
	return resp.Countries, nil
}

func (c *httpClient) States(ctx context.Context, countryCode string) ([]Region, error) {
	path := "/states/" + url.PathEscape(countryCode)
	resp, err := resilience.Do(ctx, c.retryFor("states"), func(ctx context.Context) (statesResponse, error) {
		var out statesResponse
		err := c.get(ctx, path, &out)
		return out, err
	})
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("launchlens: states %s", countryCode))
	}
	return resp.States, nil
}

func (c *httpClient) retryFor(operation string) resilience.RetryConfig {
	cfg := c.retry
	cfg.Operation = operation
	return cfg
}

func (c *httpClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

func (c *httpClient) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.tokens.Token())
}

func (c *httpClient) get(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	c.authorize(req)
	return c.do(req, out)
}

func (c *httpClient) do(req *http.Request, out any) error {
	data, err := c.send(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "decode response")
	}
	return nil
}

// send executes req and returns the body of a 2xx response. Failures before
// a response are TransportErrors; non-2xx responses are APIErrors.
func (c *httpClient) send(req *http.Request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, &TransportError{Err: err}
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, data)
	}
	return data, nil
}
