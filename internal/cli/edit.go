package cli

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkit/pkg/page"
)

func (c *CLI) editCommand() *cobra.Command {
	var viewport int

	cmd := &cobra.Command{
		Use:   "edit PAGE",
		Short: "Edit a page in the terminal",
		Long: `Open PAGE in an interactive terminal editor.

PAGE is a .json file or the id of a stored page; a page that does not exist
yet starts empty. Components are moved one grid cell per key press on the
active breakpoint, and switching breakpoints (1-4) edits that breakpoint's
layout independently.`,
		Args: cobra.ExactArgs(1),
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
			if viewport > 0 {
				ed.SetViewport(viewport)
			}

			save := func() error {
				return c.savePage(ctx, ref, page.Serialize(ed.Tree(), ed.Layout()))
			}

			// Log lines would tear the alternate screen.
			c.Logger.SetOutput(io.Discard)
			defer c.Logger.SetOutput(c.logOut)

			model := NewEditorModel(ed, palette.Types(), ref.String(), save)
			final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(EditorModel); ok && m.Dirty() {
				printWarning("Quit with unsaved changes to %s", ref)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&viewport, "viewport", 0, "initial viewport width in pixels")
	return cmd
}
