package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chious/readmequest/pkg/experience"
	progresspkg "github.com/chious/readmequest/pkg/progress"
)

// levelCommand creates the level command.
func (c *CLI) levelCommand() *cobra.Command {
	var (
		maxExp int
		width  int
	)

	cmd := &cobra.Command{
		Use:   "level <exp>",
		Short: "Show the level and progress bar for an experience value",
		Example: `  readmequest level 2000
  readmequest level 150 --cap 1000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := strconv.Atoi(args[0])
			if err != nil || exp < 0 {
				return fmt.Errorf("experience must be a non-negative integer, got %q", args[0])
			}
			if maxExp <= 0 {
				return fmt.Errorf("--cap must be positive")
			}

			info := progresspkg.CalculateLevel(exp)
			percent, bar := experience.Progress(exp, maxExp, width)

			fmt.Println(StyleTitle.Render(fmt.Sprintf("%d EXP", exp)))
			printKeyValue("Level", fmt.Sprintf("%d %s %d", info.Current, iconArrow, info.Next))
			printKeyValue("To next", fmt.Sprintf("%d EXP", info.ToNext))
			printKeyValue("Progress", fmt.Sprintf("%s (%s%%)", bar, percent))
			printDetail("%s", experience.LevelLine(info))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxExp, "cap", experience.DefaultCap, "counter denominator")
	cmd.Flags().IntVar(&width, "width", progresspkg.DefaultBarWidth, "bar width in glyphs")
	return cmd
}
