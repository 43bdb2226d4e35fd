package omdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/mmcdole/screenly/internal/domain"
)

const (
	DefaultBaseURL = "https://www.omdbapi.com/"
	defaultTimeout = 15 * time.Second
	userAgent      = "Screenly/1.0"
)

// Client implements domain.MovieClient for the OMDb API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a new OMDb API client
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchMovies runs a free-text title search
func (c *Client) SearchMovies(ctx context.Context, query string) ([]domain.SearchResultItem, error) {
	params := url.Values{}
	params.Set("s", query)

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("search %q: %w: failed to parse response: %v", query, domain.ErrNetwork, err)
	}
	if !resp.ok() {
		return nil, fmt.Errorf("search %q: %w: %s", query, domain.ErrNotFound, resp.Error)
	}

	items := MapSearchItems(resp.Search)
	c.logger.Debug("search complete", "query", query, "results", len(items))
	return items, nil
}

// FetchMovieDetail loads full metadata for one catalog ID
func (c *Client) FetchMovieDetail(ctx context.Context, id string) (*domain.MovieDetail, error) {
	params := url.Values{}
	params.Set("i", id)

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("detail %s: %w", id, err)
	}

	var resp TitleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("detail %s: %w: failed to parse response: %v", id, domain.ErrNetwork, err)
	}
	if !resp.ok() {
		return nil, fmt.Errorf("detail %s: %w: %s", id, domain.ErrNotFound, resp.Error)
	}

	detail := MapTitle(&resp)
	if detail.ID == "" {
		detail.ID = id
	}
	return detail, nil
}

// doRequest performs a single GET with the API key attached.
// Errors are mapped onto the domain taxonomy.
func (c *Client) doRequest(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("apikey", c.apiKey)
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("omdb request", "params", redact(params))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, domain.ErrCancelled
		}
		c.logger.Error("omdb request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, domain.ErrCancelled
		}
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("omdb request error", "status", resp.StatusCode, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrNetwork, resp.StatusCode)
	}

	return body, nil
}

// redact returns the query string without the API key, for logging
func redact(params url.Values) string {
	safe := url.Values{}
	for k, v := range params {
		if k == "apikey" {
			continue
		}
		safe[k] = v
	}
	return safe.Encode()
}
