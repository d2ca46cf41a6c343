package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chious/readmequest/pkg/cache"
	"github.com/chious/readmequest/pkg/integrations"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com"

	// MaxPerPage is the largest page size the API accepts.
	MaxPerPage = 100

	// DefaultMaxPages caps pagination at 1000 repositories.
	DefaultMaxPages = 10

	// DefaultCacheTTL is how long a listing is reused between runs.
	DefaultCacheTTL = time.Hour
)

// Client provides access to the GitHub repository listing API.
type Client struct {
	*integrations.Client
	baseURL string
	keyer   cache.Keyer
}

// Options configures a Client. Zero values select defaults.
type Options struct {
	Token      string
	BaseURL    string
	Timeout    time.Duration
	Attempts   int
	RetryDelay time.Duration
	CacheTTL   time.Duration
	Cache      cache.Cache  // nil disables caching
	HTTPClient *http.Client // overrides Timeout when set
}

// NewClient creates a GitHub API client.
func NewClient(opts Options) *Client {
	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": "2022-11-28",
	}
	scope := "anon:"
	if opts.Token != "" {
		headers["Authorization"] = "Bearer " + opts.Token
		scope = "auth:"
	}

	ttl := opts.CacheTTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}

	clientOpts := []integrations.Option{
		integrations.WithTimeout(opts.Timeout),
		integrations.WithAttempts(opts.Attempts),
	}
	if opts.RetryDelay > 0 {
		clientOpts = append(clientOpts, integrations.WithRetryDelay(opts.RetryDelay))
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, integrations.WithHTTPClient(opts.HTTPClient))
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		Client:  integrations.NewClient(opts.Cache, "github", ttl, headers, clientOpts...),
		baseURL: baseURL,
		keyer:   cache.NewScopedKeyer(cache.NewDefaultKeyer(), scope),
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// ListOptions controls pagination and caching of a listing.
type ListOptions struct {
	PerPage  int  // page size, clamped to [1, MaxPerPage]; 0 means MaxPerPage
	MaxPages int  // 0 means DefaultMaxPages
	Refresh  bool // bypass the cache
}

func (o ListOptions) normalized() ListOptions {
	if o.PerPage <= 0 || o.PerPage > MaxPerPage {
		o.PerPage = MaxPerPage
	}
	if o.MaxPages <= 0 {
		o.MaxPages = DefaultMaxPages
	}
	return o
}

// ListUserRepos returns the public repositories owned by account.
func (c *Client) ListUserRepos(ctx context.Context, account string, opts ListOptions) (*Listing, error) {
	opts = opts.normalized()
	key := c.keyer.ReposKey(account, cache.ReposKeyOpts{PerPage: opts.PerPage, MaxPages: opts.MaxPages})

	var listing Listing
	hit, err := c.Cached(ctx, key, opts.Refresh, &listing, func() error {
		return c.fetchRepos(ctx, account, opts, &listing)
	})
	if err != nil {
		return nil, err
	}
	listing.Cached = hit
	return &listing, nil
}

func (c *Client) fetchRepos(ctx context.Context, account string, opts ListOptions, out *Listing) error {
	*out = Listing{Account: account, Repos: []Repo{}}

	for page := 1; page <= opts.MaxPages; page++ {
		url := fmt.Sprintf("%s/users/%s/repos?type=owner&sort=full_name&per_page=%d&page=%d",
			c.baseURL, integrations.PathEscape(account), opts.PerPage, page)

		var repos []Repo
		if err := c.Get(ctx, url, &repos); err != nil {
			return fmt.Errorf("list repos for %s (page %d): %w", account, page, err)
		}
		out.Pages = page
		out.Repos = append(out.Repos, repos...)

		if len(repos) < opts.PerPage {
			break
		}
	}
	return nil
}
