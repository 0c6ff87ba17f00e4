package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
)

func (c *CLI) resolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve WIDTH...",
		Short: "Print the breakpoint for viewport widths",
		Example: `  gridkit resolve 1440 900 375
  1440px → lg (12 columns)
  900px → sm (6 columns)
  375px → xs (4 columns)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				px, err := strconv.Atoi(arg)
				if err != nil {
					return errors.New(errors.ErrCodeInvalidInput, "width %q is not an integer", arg)
				}
				bp := grid.Resolve(px)
				fmt.Fprintf(out, "%dpx %s %s (%d columns)\n", px, iconArrow, StyleHighlight.Render(bp.String()), bp.Columns())
			}
			return nil
		},
	}
}
