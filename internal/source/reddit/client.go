// Package reddit implements the source.Source interface against the Reddit
// OAuth API using script-app password-grant credentials.
package reddit

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

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"prospector/internal/source"
)

const (
	defaultAPIBase  = "https://oauth.reddit.com"
	defaultTokenURL = "https://www.reddit.com/api/v1/access_token"

	// defaultRequestInterval paces requests against the shared platform
	// rate limit. Tunable through WithRequestInterval.
	defaultRequestInterval = 2 * time.Second

	defaultSearchLimit = 100
)

// Credentials holds the script-app identity Reddit requires. All fields are
// mandatory; Reddit additionally rejects requests without a descriptive
// User-Agent.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string
}

// Validate reports the first missing credential field.
func (c Credentials) Validate() error {
	switch {
	case strings.TrimSpace(c.ClientID) == "":
		return fmt.Errorf("%w: client id required", source.ErrConfiguration)
	case strings.TrimSpace(c.ClientSecret) == "":
		return fmt.Errorf("%w: client secret required", source.ErrConfiguration)
	case strings.TrimSpace(c.Username) == "":
		return fmt.Errorf("%w: username required", source.ErrConfiguration)
	case strings.TrimSpace(c.Password) == "":
		return fmt.Errorf("%w: password required", source.ErrConfiguration)
	case strings.TrimSpace(c.UserAgent) == "":
		return fmt.Errorf("%w: user agent required", source.ErrConfiguration)
	}
	return nil
}

// Client talks to the Reddit API. It authenticates lazily on first use and
// paces every request through a shared limiter.
type Client struct {
	creds      Credentials
	apiBase    string
	tokenURL   string
	httpClient *http.Client
	limiter    *rate.Limiter
	moreBudget int
	authed     bool
}

var _ source.Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects a transport and skips OAuth authentication.
// Primarily for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
			c.authed = true
		}
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base = strings.TrimSpace(base); base != "" {
			c.apiBase = strings.TrimRight(base, "/")
		}
	}
}

// WithTokenURL overrides the OAuth token endpoint.
func WithTokenURL(tokenURL string) Option {
	return func(c *Client) {
		if tokenURL = strings.TrimSpace(tokenURL); tokenURL != "" {
			c.tokenURL = tokenURL
		}
	}
}

// WithRequestInterval sets the minimum delay between successive requests.
// A non-positive interval disables pacing.
func WithRequestInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// WithContinuationBudget sets how many "load more comments" placeholders may
// be resolved per submission. Zero (the default) discards them outright,
// bounding the work per submission at the cost of deep-thread completeness.
func WithContinuationBudget(budget int) Option {
	return func(c *Client) {
		if budget >= 0 {
			c.moreBudget = budget
		}
	}
}

// New builds a Client after validating credentials.
func New(creds Credentials, opts ...Option) (*Client, error) {
	client := &Client{
		creds:    creds,
		apiBase:  defaultAPIBase,
		tokenURL: defaultTokenURL,
		limiter:  rate.NewLimiter(rate.Every(defaultRequestInterval), 1),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		if err := creds.Validate(); err != nil {
			return nil, err
		}
	}
	return client, nil
}

// userAgentTransport stamps the configured User-Agent onto every request,
// including the token exchange. Reddit rejects default library agents.
type userAgentTransport struct {
	agent string
	base  http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.agent)
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

func (c *Client) authenticate(ctx context.Context) error {
	if c.authed {
		return nil
	}
	conf := &oauth2.Config{
		ClientID:     c.creds.ClientID,
		ClientSecret: c.creds.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
	base := &http.Client{
		Timeout:   30 * time.Second,
		Transport: userAgentTransport{agent: c.creds.UserAgent},
	}
	authCtx := context.WithValue(ctx, oauth2.HTTPClient, base)
	token, err := conf.PasswordCredentialsToken(authCtx, c.creds.Username, c.creds.Password)
	if err != nil {
		return fmt.Errorf("%w: reddit token exchange: %w", source.ErrConfiguration, err)
	}
	c.httpClient = conf.Client(authCtx, token)
	c.authed = true
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, payload any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("pacing wait: %w", err)
	}
	if err := c.authenticate(ctx); err != nil {
		return err
	}

	endpoint, err := url.Parse(c.apiBase + path)
	if err != nil {
		return fmt.Errorf("parse reddit url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("raw_json", "1")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %w", source.ErrTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s returned %d (community missing or forbidden)", source.ErrTransient, path, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s rate limited (429)", source.ErrTransient, path)
	default:
		return fmt.Errorf("%w: %s returned %d", source.ErrTransient, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// Search returns submissions matching query within the community, restricted
// to the given trailing time window.
func (c *Client) Search(ctx context.Context, community, query string, window source.TimeWindow) ([]source.Submission, error) {
	community = strings.TrimSpace(community)
	if community == "" {
		return nil, errors.New("community must not be empty")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	if window == "" {
		window = source.WindowWeek
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("restrict_sr", "1")
	params.Set("t", string(window))
	params.Set("limit", strconv.Itoa(defaultSearchLimit))

	var payload thing
	if err := c.get(ctx, "/r/"+url.PathEscape(community)+"/search", params, &payload); err != nil {
		return nil, err
	}
	return decodeSubmissionListing(payload)
}

// Recent returns up to limit of the community's newest submissions.
func (c *Client) Recent(ctx context.Context, community string, limit int) ([]source.Submission, error) {
	community = strings.TrimSpace(community)
	if community == "" {
		return nil, errors.New("community must not be empty")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var payload thing
	if err := c.get(ctx, "/r/"+url.PathEscape(community)+"/new", params, &payload); err != nil {
		return nil, err
	}
	return decodeSubmissionListing(payload)
}

func decodeSubmissionListing(payload thing) ([]source.Submission, error) {
	children, err := payload.listingChildren()
	if err != nil {
		return nil, err
	}
	subs := make([]source.Submission, 0, len(children))
	for _, child := range children {
		if child.Kind != kindSubmission {
			continue
		}
		var data submissionData
		if err := json.Unmarshal(child.Data, &data); err != nil {
			return nil, fmt.Errorf("decode submission: %w", err)
		}
		subs = append(subs, source.Submission{
			ID:   data.ID,
			Post: data.item(),
		})
	}
	return subs, nil
}
