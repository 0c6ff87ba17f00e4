package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkit/pkg/page"
)

func (c *CLI) addCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add PAGE TYPE...",
		Short: "Append components to a page",
		Long: `Add one component per TYPE to PAGE, below everything already on it, on
every breakpoint. PAGE is created if it does not exist yet.`,
		Example: `  gridkit add home.json hero text image
  gridkit add landing product-grid`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ref := parsePageRef(args[0])

			palette, err := c.palette()
			if err != nil {
				return err
			}
			p, err := c.loadPage(ctx, ref, true)
			if err != nil {
				return err
			}
			tree, layout, err := page.Deserialize(p)
			if err != nil {
				return err
			}

			ed := c.newEditor(palette)
			ed.Load(tree, layout)
			var added []string
			for _, typ := range args[1:] {
				id, err := ed.Add(typ)
				if err != nil {
					return err
				}
				added = append(added, id)
			}

			if err := c.savePage(ctx, ref, page.Serialize(ed.Tree(), ed.Layout())); err != nil {
				return err
			}
			printSuccess("Added %d components to %s", len(added), ref)
			for _, id := range added {
				printDetail("%s", id)
			}
			printNextStep("Arrange them", "gridkit edit "+args[0])
			return nil
		},
	}
}
