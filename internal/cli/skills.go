package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chious/readmequest/pkg/skills"
)

// skillsCommand creates the skills command.
func (c *CLI) skillsCommand() *cobra.Command {
	var (
		flags runFlags
		write bool
	)

	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Print the top-languages table",
		Long: `Skills lists the account's repositories, aggregates them by primary
language and prints the resulting table. With --write the skills section of
the README is replaced as well; the experience counter is left alone.`,
		Example: `  readmequest skills --account octocat
  readmequest skills --write`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if write {
				flags.skipExp = true
				return c.runPipeline(cmd.Context(), flags)
			}
			return c.printSkills(cmd.Context(), flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&write, "write", "w", false, "replace the skills section in the README")
	return cmd
}

func (c *CLI) printSkills(ctx context.Context, flags runFlags) error {
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
	opts.List.Refresh = flags.refresh

	client, closeFn, err := c.newGitHubClient(cfg, flags.noCache)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := withTimeout(ctx, flags.timeout)
	defer cancel()

	spinner := newSpinnerWithContext(ctx, "Listing repositories for "+cfg.Account+"...")
	spinner.Start()
	res := skills.Fetch(ctx, client, cfg.Account, skills.FetchOptions{
		List:   opts.List,
		Filter: opts.Filter,
		Logger: c.Logger,
	})
	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}
	if res.Status == skills.StatusFailed {
		spinner.StopWithError("Could not list repositories for " + cfg.Account)
		return fmt.Errorf("list repositories for %s: %w", cfg.Account, res.Err)
	}
	spinner.StopWithSuccess(fmt.Sprintf("Listed %d repositories", res.Repos))
	printStats(res.Repos, len(res.Stats), res.Cached)
	fmt.Print(skills.Table(res.Stats, opts.Table))
	return nil
}
