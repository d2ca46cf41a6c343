// Package cache stores raw GitHub API responses between runs.
//
// A scheduled profile refresh typically runs every few minutes to hours;
// caching the repository listing keeps those runs well inside the
// unauthenticated API quota. [FileCache] is the CLI default, [NullCache]
// disables caching (--no-cache).
//
// Keys come from a [Keyer] so that responses fetched with and without a
// token never share an entry:
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "anon:")
//	key := k.ReposKey("chious", cache.ReposKeyOpts{PerPage: 100, MaxPages: 10})
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get returns the stored bytes and true on a hit. Expired or corrupt
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ReposKey keys the complete repository listing of an account.
	ReposKey(account string, opts ReposKeyOpts) string
}

// ReposKeyOpts are the request parameters that change a repository listing.
type ReposKeyOpts struct {
	PerPage  int `json:"per_page"`
	MaxPages int `json:"max_pages"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ReposKey hashes the account and options into a fixed-size key.
func (DefaultKeyer) ReposKey(account string, opts ReposKeyOpts) string {
	return hashKey("repos", account, opts)
}

// ScopedKeyer prefixes every key produced by an inner Keyer.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ReposKey generates a prefixed key for a repository listing.
func (k *ScopedKeyer) ReposKey(account string, opts ReposKeyOpts) string {
	return k.prefix + k.inner.ReposKey(account, opts)
}
