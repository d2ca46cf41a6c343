package cli

import (
	"github.com/spf13/cobra"
)

// expCommand creates the exp command: the experience stage on its own.
func (c *CLI) expCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "exp",
		Short: "Increment the experience counter only",
		Long: `Exp increments the ` + "`N / CAP EXP`" + ` counter and rewrites the level and
experience lines without contacting GitHub.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.skipSkills = true
			return c.runPipeline(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.readme, "readme", "", "README to update (default from config)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "compute the update and print it without writing")
	return cmd
}
