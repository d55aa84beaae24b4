package rawg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client talks to the RAWG HTTP API.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	limiter   *rate.Limiter
	logger    *zap.Logger
	userAgent string
}

const (
	// DefaultBaseURL is the public RAWG API root.
	DefaultBaseURL = "https://api.rawg.io/api"

	// PageSize is the fixed number of summaries requested per listing.
	PageSize = 12

	// DefaultOrdering is the ordering hint used for the trending listing.
	DefaultOrdering = "-relevance"

	defaultUserAgent = "gametrackr/0.1"
	requestTimeout   = 10 * time.Second
	defaultRate      = 5
	defaultBurst     = 5
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRateLimit sets the outgoing request rate. A non-positive rps disables
// limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewClient builds a Client for baseURL authenticated with apiKey. An empty
// baseURL uses DefaultBaseURL. An empty apiKey yields a Client whose
// Configured method reports false; it never issues requests.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		apiKey:  strings.TrimSpace(apiKey),
		http: &http.Client{
			Timeout: requestTimeout,
		},
		limiter:   rate.NewLimiter(defaultRate, defaultBurst),
		logger:    zap.NewNop(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Configured reports whether an API key is available.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// ListQuery configures /games requests.
type ListQuery struct {
	Search   string
	Ordering string
	PageSize int
}

// Values encodes the query the way the list endpoint expects it. An empty
// Search selects the default listing, ordered by Ordering (or
// DefaultOrdering).
func (q ListQuery) Values() url.Values {
	values := url.Values{}
	if search := strings.TrimSpace(q.Search); search != "" {
		values.Set("search", search)
	} else {
		ordering := strings.TrimSpace(q.Ordering)
		if ordering == "" {
			ordering = DefaultOrdering
		}
		values.Set("ordering", ordering)
	}
	size := q.PageSize
	if size <= 0 {
		size = PageSize
	}
	values.Set("page_size", strconv.Itoa(size))
	return values
}

// ListGames retrieves one page of game summaries.
func (c *Client) ListGames(ctx context.Context, query ListQuery) ([]GameSummary, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	rel := &url.URL{Path: "games", RawQuery: query.Values().Encode()}
	var payload ListResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	if payload.Results == nil {
		return []GameSummary{}, nil
	}
	return payload.Results, nil
}

// GameDetail retrieves the full record for one game.
func (c *Client) GameDetail(ctx context.Context, id int64) (*GameDetail, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if id <= 0 {
		return nil, fmt.Errorf("game id required")
	}
	rel := &url.URL{Path: "games/" + strconv.FormatInt(id, 10)}
	var payload GameDetail
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	op := method + " /" + rel.Path

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &Error{Kind: KindNetwork, Op: op, Err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	reqURL := c.baseURL.ResolveReference(rel)
	values := reqURL.Query()
	values.Set("key", c.apiKey)
	reqURL.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("rawg request failed", zap.String("op", op), zap.Error(err))
		return &Error{Kind: KindNetwork, Op: op, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("rawg request",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Kind: KindResponse, Op: op, StatusCode: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return &Error{Kind: KindNetwork, Op: op, Err: ctxErr}
		}
		return &Error{Kind: KindParse, Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	// A trailing slash makes relative references resolve under the API root.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
