// Package integrations provides the shared HTTP plumbing for remote API
// clients.
//
// # Overview
//
// [Client] wraps an [http.Client] with default headers, JSON decoding,
// status-code classification, response caching, and retry. Provider-specific
// clients (currently only [github]) embed it and add typed endpoints.
//
//	c := integrations.NewClient(cache.NewNullCache(), "github", time.Hour,
//	    map[string]string{"Accept": "application/vnd.github+json"},
//	    integrations.WithAttempts(3))
//
//	var repos []github.Repo
//	err := c.Get(ctx, "https://api.github.com/users/chious/repos", &repos)
//
// # Errors
//
//   - [ErrNotFound] for 404 responses
//   - [ErrNetwork] for transport failures and unexpected statuses; 5xx and
//     transport failures are additionally wrapped in [cache.RetryableError]
//   - [apperrors.RateLimitedError] when the provider reports an exhausted quota
//
// Retries are opt-in: the default of one attempt means a failure surfaces
// immediately.
package integrations
