package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chious/readmequest/internal/config"
	apperrors "github.com/chious/readmequest/pkg/errors"
	"github.com/chious/readmequest/pkg/pipeline"
	"github.com/chious/readmequest/pkg/skills"
)

// runFlags holds flags shared by commands that execute the pipeline.
type runFlags struct {
	readme     string
	account    string
	dryRun     bool
	skipExp    bool
	skipSkills bool
	noCache    bool
	refresh    bool
	timeout    time.Duration
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.readme, "readme", "", "README to update (default from config)")
	cmd.Flags().StringVar(&f.account, "account", "", "GitHub account whose repositories are counted")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "compute the update and print it without writing")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the HTTP response cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached responses and fetch fresh data")
	cmd.Flags().DurationVar(&f.timeout, "timeout", defaultRunTimeout, "abort the run after this long (0 disables)")
}

// apply overlays explicitly set flags on cfg.
func (f *runFlags) apply(cfg *config.Config) error {
	if f.readme != "" {
		cfg.Readme = f.readme
	}
	if f.account != "" {
		cfg.Account = f.account
	}
	return cfg.Validate()
}

// runCommand creates the run command.
func (c *CLI) runCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Update experience and the skills section",
		Long: `Run increments the experience counter, rewrites the level and experience
lines, lists the account's repositories and replaces the skills section with
a fresh table of top languages.`,
		Example: `  readmequest run
  readmequest run --account octocat --readme profile/README.md
  readmequest run --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPipeline(cmd.Context(), flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.skipExp, "skip-exp", false, "leave the experience counter unchanged")
	cmd.Flags().BoolVar(&flags.skipSkills, "skip-skills", false, "leave the skills section unchanged")
	return cmd
}

func (c *CLI) runPipeline(ctx context.Context, flags runFlags) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := flags.apply(&cfg); err != nil {
		return err
	}
	opts, err := pipelineOptions(cfg)
	if err != nil {
		return err
	}
	opts.SkipExp = flags.skipExp
	opts.SkipSkills = flags.skipSkills
	opts.DryRun = flags.dryRun
	opts.List.Refresh = flags.refresh

	runner, closeFn, err := c.newRunner(cfg, flags.noCache)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := withTimeout(ctx, flags.timeout)
	defer cancel()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Updating "+cfg.Readme+"...")
	spinner.Start()
	report, err := runner.Run(ctx, opts)
	spinner.Stop()

	if report != nil {
		printReport(report, opts)
	}
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCodeSectionNotFound) {
			printNextStep("Add the skills section to the README", fmt.Sprintf(`<section id="%s"></section>`, opts.SectionID))
		}
		return err
	}
	prog.done("run " + report.RunID[:8] + " complete")
	return nil
}

// printReport summarizes what a run did.
func printReport(r *pipeline.Report, opts pipeline.Options) {
	if !opts.SkipExp {
		exp := r.Experience
		switch {
		case !exp.Matched:
			printWarning("No experience counter found, experience unchanged")
			printNextStep("Add a counter to the README", fmt.Sprintf("`0 / %d EXP`", exp.Cap))
		default:
			printSuccess("Experience %s %s %s",
				StyleNumber.Render(fmt.Sprint(exp.Old)), iconArrow, StyleNumber.Render(fmt.Sprint(exp.New)))
			printDetail("Level %d %s %d · %d EXP to next · %s%%",
				exp.Level.Current, iconArrow, exp.Level.Next, exp.Level.ToNext, exp.Percent)
		}
	}

	if !opts.SkipSkills && r.Table != "" {
		switch r.Fetch.Status {
		case skills.StatusFailed:
			printWarning("Could not list repositories: %v", r.Fetch.Err)
		case skills.StatusEmpty:
			printWarning("No repository languages found for %s", opts.Account)
		default:
			printSuccess("Ranked %d languages", len(r.Fetch.Stats))
			printStats(r.Fetch.Repos, len(r.Fetch.Stats), r.Fetch.Cached)
		}
	}

	switch {
	case opts.DryRun:
		printInfo("Dry run, nothing written")
		fmt.Println(r.Content)
	case len(r.Written) > 0:
		printFile(opts.ReadmePath)
	}
}
