// Package leadapi provides the HTTP client for the remote lead API.
package leadapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driven"
	"github.com/custodia-labs/leadscout/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.SourceAPI = (*Client)(nil)
	_ driven.RoleAPI   = (*Client)(nil)
)

// Default configuration values.
const (
	DefaultMaxTries = 3

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10
)

// Config holds configuration for the lead API client.
type Config struct {
	// BaseURL is the API root (default: http://localhost:8000/api).
	BaseURL string

	// Token is sent as a bearer token when set.
	Token string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// MaxTries bounds attempts for idempotent requests (default: 3).
	MaxTries uint

	// InitialBackoff is the first retry delay (default: 500ms).
	InitialBackoff time.Duration
}

// ConfigFromSettings converts application settings into a client config.
func ConfigFromSettings(s domain.APISettings) Config {
	return Config{
		BaseURL: s.BaseURL,
		Token:   s.Token,
		Timeout: s.Timeout,
	}
}

// Client talks to the lead API over HTTP.
// It is safe for concurrent use and can be reconfigured while in use.
type Client struct {
	mu       sync.RWMutex
	client   *http.Client
	baseURL  string
	maxTries uint
	backoff  time.Duration
}

// NewClient creates a new lead API client.
func NewClient(cfg Config) (*Client, error) {
	c := &Client{}
	if err := c.Reconfigure(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

// Reconfigure replaces the client's settings. Requests already in flight
// finish with the previous settings.
func (c *Client) Reconfigure(cfg Config) error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultAPIBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = domain.DefaultAPITimeout
	}
	if cfg.MaxTries == 0 {
		cfg.MaxTries = DefaultMaxTries
	}
	if cfg.InitialBackoff == 0 {
		cfg.InitialBackoff = 500 * time.Millisecond
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return fmt.Errorf("leadapi: base url: %w", err)
	}

	httpClient := &http.Client{}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.Token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = cfg.Timeout

	c.mu.Lock()
	defer c.mu.Unlock()
	c.client = httpClient
	c.baseURL = strings.TrimRight(cfg.BaseURL, "/")
	c.maxTries = cfg.MaxTries
	c.backoff = cfg.InitialBackoff
	return nil
}

// BaseURL returns the API root currently in use.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// ConfigureSource submits configuration for a source.
func (c *Client) ConfigureSource(
	ctx context.Context,
	sourceID string,
	patch domain.SourceConfigPatch,
) (domain.SourceConfigPatch, error) {
	var out domain.SourceConfigPatch
	err := c.post(ctx, sourcePath(sourceID, "configure"), patch, &out)
	return out, err
}

// TestSourceConnection asks the server to verify a source's credentials.
func (c *Client) TestSourceConnection(ctx context.Context, sourceID string) (domain.ConnectionTest, error) {
	var out domain.ConnectionTest
	err := c.post(ctx, sourcePath(sourceID, "test"), nil, &out)
	return out, err
}

// SearchLeads searches the given sources.
func (c *Client) SearchLeads(
	ctx context.Context,
	sourceIDs []string,
	params domain.LeadSearchParams,
) (domain.LeadPage, error) {
	q := url.Values{}
	q.Set("sources", strings.Join(sourceIDs, ","))
	setIfNotEmpty(q, "query", params.Query)
	setIfNotEmpty(q, "location", strings.Join(params.Location, ","))
	setIfNotEmpty(q, "industry", strings.Join(params.Industry, ","))
	setIfNotEmpty(q, "companySize", strings.Join(params.CompanySize, ","))
	setIfNotEmpty(q, "founded", params.Founded)
	setIfNotEmpty(q, "revenue", params.Revenue)
	setIfNotEmpty(q, "roles", strings.Join(params.Roles, ","))
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	var out domain.LeadPage
	err := c.get(ctx, "/leads/search", q, &out)
	return out, err
}

// GetSourceStats returns usage statistics for a source.
func (c *Client) GetSourceStats(ctx context.Context, sourceID string) (domain.SourceStats, error) {
	var out domain.SourceStats
	err := c.get(ctx, sourcePath(sourceID, "stats"), nil, &out)
	return out, err
}

// SyncSource triggers a server-side sync.
func (c *Client) SyncSource(ctx context.Context, sourceID string) (domain.SyncResult, error) {
	var out domain.SyncResult
	err := c.post(ctx, sourcePath(sourceID, "sync"), nil, &out)
	return out, err
}

// GetSourceFilters returns the filter values a source accepts.
func (c *Client) GetSourceFilters(ctx context.Context, sourceID string) (domain.SourceFilterOptions, error) {
	var out domain.SourceFilterOptions
	err := c.get(ctx, sourcePath(sourceID, "filters"), nil, &out)
	return out, err
}

// GetRoleCategories returns the role categories.
func (c *Client) GetRoleCategories(ctx context.Context) ([]domain.RoleCategory, error) {
	var out []domain.RoleCategory
	err := c.get(ctx, "/roles/categories", nil, &out)
	return out, err
}

// GetPopularRoles returns frequently targeted roles.
func (c *Client) GetPopularRoles(ctx context.Context) ([]string, error) {
	var out []string
	err := c.get(ctx, "/roles/popular", nil, &out)
	return out, err
}

// SearchRoles returns roles matching a query fragment.
func (c *Client) SearchRoles(ctx context.Context, query string) ([]string, error) {
	var out []string
	err := c.get(ctx, "/roles/search", url.Values{"q": {query}}, &out)
	return out, err
}

// GetRoleStats returns aggregate statistics for a set of roles.
func (c *Client) GetRoleStats(ctx context.Context, roles []string) (domain.RoleStats, error) {
	var out domain.RoleStats
	err := c.get(ctx, "/roles/stats", url.Values{"roles": {strings.Join(roles, ",")}}, &out)
	return out, err
}

func sourcePath(sourceID, action string) string {
	return "/sources/" + url.PathEscape(sourceID) + "/" + action
}

func setIfNotEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// snapshot returns the settings for one request.
func (c *Client) snapshot() (*http.Client, string, uint, time.Duration) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client, c.baseURL, c.maxTries, c.backoff
}

// get performs an idempotent request, retrying transient failures.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	client, baseURL, maxTries, initial := c.snapshot()
	endpoint := baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := c.do(ctx, client, http.MethodGet, endpoint, nil, out)
		if err == nil {
			return struct{}{}, nil
		}
		if !isTransient(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		logger.Debug("GET %s attempt %d: %v", path, attempt, err)
		return struct{}{}, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(maxTries))
	return err
}

// post performs a non-idempotent request. It is never retried.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	client, baseURL, _, _ := c.snapshot()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	return c.do(ctx, client, http.MethodPost, baseURL+path, reader, out)
}

func (c *Client) do(
	ctx context.Context,
	client *http.Client,
	method, endpoint string,
	body io.Reader,
	out any,
) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", errTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp, data)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
