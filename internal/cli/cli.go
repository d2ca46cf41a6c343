// Package cli implements the readmequest command-line interface.
//
// # Commands
//
//   - run: increment the experience counter and refresh the skills section
//   - exp: experience stage only
//   - skills: fetch and print the skill table, optionally writing it
//   - level: show the level and bar for an experience value
//   - cache: manage the HTTP response cache
//
// Invoking readmequest without a subcommand behaves like run.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Status lines
// meant for the user go to stdout; structured logs go to stderr.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chious/readmequest/internal/config"
	"github.com/chious/readmequest/pkg/buildinfo"
	"github.com/chious/readmequest/pkg/cache"
	"github.com/chious/readmequest/pkg/integrations/github"
	"github.com/chious/readmequest/pkg/pipeline"
	"github.com/chious/readmequest/pkg/skills"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "readmequest"

	// defaultRunTimeout bounds a whole run, including retries.
	defaultRunTimeout = 2 * time.Minute
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	run := c.runCommand()

	root := &cobra.Command{
		Use:           appName,
		Short:         "readmequest levels up your GitHub profile README",
		Long:          `readmequest increments the experience counter in a profile README, recomputes the level and progress bar, and refreshes a table of top languages from the GitHub API.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          run.RunE,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default "+config.DefaultFile+" if present)")
	root.Flags().AddFlagSet(run.Flags())

	// Register all subcommands
	root.AddCommand(run)
	root.AddCommand(c.expCommand())
	root.AddCommand(c.skillsCommand())
	root.AddCommand(c.levelCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("loaded config", "readme", cfg.Readme, "account", cfg.Account, "authenticated", cfg.GitHub.Token != "")
	return cfg, nil
}

// newRunner creates a pipeline runner backed by the GitHub client.
func (c *CLI) newRunner(cfg config.Config, noCache bool) (*pipeline.Runner, func(), error) {
	client, closeFn, err := c.newGitHubClient(cfg, noCache)
	if err != nil {
		return nil, nil, err
	}
	return pipeline.NewRunner(client, c.Logger), closeFn, nil
}

func (c *CLI) newGitHubClient(cfg config.Config, noCache bool) (*github.Client, func(), error) {
	store, err := newCache(cfg.CacheDir, noCache)
	if err != nil {
		return nil, nil, err
	}
	client := github.NewClient(github.Options{
		Token:    cfg.GitHub.Token,
		BaseURL:  cfg.GitHub.BaseURL,
		Timeout:  cfg.GitHub.Timeout,
		Attempts: cfg.GitHub.Attempts(),
		CacheTTL: cfg.GitHub.CacheTTL,
		Cache:    store,
	})
	return client, func() { _ = store.Close() }, nil
}

func newCache(dirOverride string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir := dirOverride
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/readmequest/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions maps the loaded config onto runner options.
func pipelineOptions(cfg config.Config) (pipeline.Options, error) {
	loc, err := cfg.Location()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		ReadmePath: cfg.Readme,
		Account:    cfg.Account,
		SectionID:  cfg.SectionID,
		ExpCap:     cfg.ExpCap,
		BarWidth:   cfg.BarWidth,
		Table: skills.TableOptions{
			MaxRows:   cfg.MaxTableRows,
			NameWidth: cfg.NameWidth,
			BarWidth:  cfg.BarWidth,
		},
		List: github.ListOptions{
			PerPage:  cfg.GitHub.PerPage,
			MaxPages: cfg.GitHub.MaxPages,
		},
		Filter: skills.Filter{
			ExcludeForks:    cfg.GitHub.ExcludeForks,
			ExcludeArchived: cfg.GitHub.ExcludeArchived,
		},
		Location: loc,
	}, nil
}

// withTimeout applies d to ctx when positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
