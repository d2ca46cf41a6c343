package integrations

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/chious/readmequest/pkg/cache"
)

// DefaultTimeout bounds every request made by clients from [NewHTTPClient].
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the requested resource doesn't exist.
	ErrNotFound = cache.ErrNotFound

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, bad statuses).
	ErrNetwork = cache.ErrNetwork
)

// NewHTTPClient creates an HTTP client with the given timeout. A
// non-positive timeout uses [DefaultTimeout].
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// PathEscape escapes a single path segment.
func PathEscape(s string) string { return url.PathEscape(s) }

// retryAfter reads the wait hint from a rate-limited response, preferring
// Retry-After and falling back to GitHub's X-RateLimit-Reset epoch.
func retryAfter(h http.Header, now time.Time) int {
	if v := h.Get("Retry-After"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	if v := h.Get("X-RateLimit-Reset"); v != "" {
		if epoch, err := strconv.ParseInt(v, 10, 64); err == nil {
			if d := time.Unix(epoch, 0).Sub(now); d > 0 {
				return int(d.Round(time.Second).Seconds())
			}
		}
	}
	return 0
}
