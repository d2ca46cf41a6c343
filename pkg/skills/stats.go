package skills

import (
	"context"
	"math"

	"github.com/charmbracelet/log"

	"github.com/chious/readmequest/pkg/integrations/github"
)

// LanguageStat is the aggregate for one primary language.
type LanguageStat struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`   // repositories with this primary language
	Bytes   int     `json:"bytes"`   // summed repository size
	Percent float64 `json:"percent"` // share of total size, 0..100
	Level   int     `json:"level"`   // floor(log2(count+1))
}

// Stats holds per-language aggregates in first-seen order.
type Stats []LanguageStat

// Total returns the summed size across all languages.
func (s Stats) Total() int {
	total := 0
	for _, l := range s {
		total += l.Bytes
	}
	return total
}

// Lookup returns the stat for name.
func (s Stats) Lookup(name string) (LanguageStat, bool) {
	for _, l := range s {
		if l.Name == name {
			return l, true
		}
	}
	return LanguageStat{}, false
}

// Filter selects which repositories are counted.
type Filter struct {
	ExcludeForks    bool
	ExcludeArchived bool
}

func (f Filter) keep(r github.Repo) bool {
	if r.Language == "" {
		return false
	}
	if f.ExcludeForks && r.Fork {
		return false
	}
	if f.ExcludeArchived && r.Archived {
		return false
	}
	return true
}

// Aggregate groups repos by primary language. Repositories without a
// language are ignored.
func Aggregate(repos []github.Repo, f Filter) Stats {
	idx := map[string]int{}
	stats := Stats{}
	for _, r := range repos {
		if !f.keep(r) {
			continue
		}
		i, ok := idx[r.Language]
		if !ok {
			i = len(stats)
			idx[r.Language] = i
			stats = append(stats, LanguageStat{Name: r.Language})
		}
		stats[i].Count++
		stats[i].Bytes += r.Size
	}

	total := stats.Total()
	for i := range stats {
		if total > 0 {
			stats[i].Percent = float64(stats[i].Bytes) / float64(total) * 100
		}
		stats[i].Level = levelFor(stats[i].Count)
	}
	return stats
}

func levelFor(count int) int {
	return int(math.Floor(math.Log2(float64(count + 1))))
}

// Status classifies the outcome of [Fetch].
type Status int

const (
	StatusOK     Status = iota // at least one language found
	StatusEmpty                // listing succeeded but no repository had a language
	StatusFailed               // listing failed; Err is set
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FetchResult is the outcome of [Fetch].
type FetchResult struct {
	Status Status
	Stats  Stats
	Repos  int  // repositories returned by the listing
	Cached bool // listing was served from cache
	Err    error
}

// RepoLister lists repositories owned by an account.
type RepoLister interface {
	ListUserRepos(ctx context.Context, account string, opts github.ListOptions) (*github.Listing, error)
}

// FetchOptions configures [Fetch].
type FetchOptions struct {
	List   github.ListOptions
	Filter Filter
	Logger *log.Logger
}

// Fetch lists account's repositories and aggregates them. Errors are logged
// and reported as StatusFailed with empty Stats.
func Fetch(ctx context.Context, lister RepoLister, account string, opts FetchOptions) FetchResult {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	listing, err := lister.ListUserRepos(ctx, account, opts.List)
	if err != nil {
		logger.Error("fetch repositories", "account", account, "err", err)
		return FetchResult{Status: StatusFailed, Stats: Stats{}, Err: err}
	}

	stats := Aggregate(listing.Repos, opts.Filter)
	res := FetchResult{
		Status: StatusOK,
		Stats:  stats,
		Repos:  len(listing.Repos),
		Cached: listing.Cached,
	}
	if len(stats) == 0 {
		res.Status = StatusEmpty
	}
	logger.Debug("aggregated languages", "account", account, "repos", res.Repos, "languages", len(stats), "cached", res.Cached)
	return res
}
