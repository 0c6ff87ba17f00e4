package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkit/pkg/editor"
	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/page"
)

func (c *CLI) inspectCommand() *cobra.Command {
	var (
		bpName   string
		viewport int
		asJSON   bool
		width    int
	)

	cmd := &cobra.Command{
		Use:   "inspect PAGE",
		Short: "Print a page's layout on one breakpoint",
		Long: `Print the components of PAGE with their grid rects on one breakpoint,
followed by a drawing of the grid. Missing layout data is filled in exactly
as the editor would when loading the page.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.loadPage(cmd.Context(), parsePageRef(args[0]), false)
			if err != nil {
				return err
			}
			tree, layout, err := page.Deserialize(p)
			if err != nil {
				return err
			}

			ed := c.newEditor(nil)
			ed.Load(tree, layout)
			switch {
			case bpName != "":
				bp, err := grid.ParseBreakpoint(bpName)
				if err != nil {
					return err
				}
				ed.SetViewport(bp.MinWidth())
			case viewport > 0:
				ed.SetViewport(viewport)
			}

			v := ed.View()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(v)
			}

			fmt.Fprintln(out, StyleTitle.Render(fmt.Sprintf("%s · %d columns · %d components", v.Breakpoint, v.Columns, len(v.Components))))
			fmt.Fprintln(out, layoutTable(v))
			if len(v.Components) > 0 {
				fmt.Fprintln(out, renderGrid(v, width))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&bpName, "breakpoint", "b", "", "breakpoint to show (lg, md, sm, xs)")
	cmd.Flags().IntVar(&viewport, "viewport", 0, "viewport width in pixels (alternative to --breakpoint)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the view as JSON")
	cmd.Flags().IntVar(&width, "width", 72, "drawing width in characters")
	return cmd
}

// layoutTable renders one row per component in tree order.
func layoutTable(v editor.View) string {
	rows := make([][]string, 0, len(v.Components))
	for i, p := range v.Components {
		r := p.Rect
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Instance.ID,
			p.Instance.Type,
			strconv.Itoa(r.X),
			strconv.Itoa(r.Y),
			strconv.Itoa(r.W),
			strconv.Itoa(r.H),
			fmt.Sprintf("%d×%d", r.MinW, r.MinH),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "ID", "Type", "X", "Y", "W", "H", "Min").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col >= 3 {
				return StyleValue.Align(lipgloss.Right)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
