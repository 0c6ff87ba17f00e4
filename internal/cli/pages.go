package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/page"
	"github.com/matzehuels/gridkit/pkg/store"
)

func (c *CLI) pagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Manage pages in the configured store",
		Long: `List, show, import, export and delete the pages held by the store
configured in the [store] section of the config file.`,
	}
	cmd.AddCommand(c.pagesListCommand())
	cmd.AddCommand(c.pagesShowCommand())
	cmd.AddCommand(c.pagesImportCommand())
	cmd.AddCommand(c.pagesExportCommand())
	cmd.AddCommand(c.pagesDeleteCommand())
	return cmd
}

// withStore opens the configured store for the duration of fn.
func (c *CLI) withStore(cmd *cobra.Command, fn func(store.Store) error) error {
	st, err := c.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func (c *CLI) pagesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored pages",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				list, err := st.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					printInfo("No pages in the %s store", c.cfg.Store.Backend)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), pagesTable(list))
				return nil
			})
		},
	}
}

func pagesTable(list []store.Summary) string {
	rows := make([][]string, len(list))
	for i, s := range list {
		rows[i] = []string{s.ID, strconv.Itoa(s.Components), s.UpdatedAt.Local().Format("2006-01-02 15:04")}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		Headers("Page", "Components", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			if col == 0 {
				return StyleHighlight.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		String()
}

func (c *CLI) pagesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print a stored page as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				p, err := st.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return page.Write(cmd.OutOrStdout(), p)
			})
		},
	}
}

func (c *CLI) pagesImportCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Store a page read from a JSON file",
		Long: `Read FILE and store it under --id, or under the file name without its
extension. Pages with lint errors are rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			if err := errors.ValidateID(id); err != nil {
				return err
			}
			p, err := page.ReadFile(args[0])
			if err != nil {
				return err
			}
			if _, _, err := page.Deserialize(p); err != nil {
				return err
			}
			return c.withStore(cmd, func(st store.Store) error {
				if err := st.Save(cmd.Context(), id, p); err != nil {
					return err
				}
				printSuccess("Imported %s as %s (%d components)", args[0], StyleHighlight.Render(id), p.Len())
				printNextStep("Open it", "gridkit edit "+id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "page id (default: file name without extension)")
	return cmd
}

func (c *CLI) pagesExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export ID FILE",
		Short: "Write a stored page to a JSON file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				p, err := st.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := page.WriteFile(args[1], p); err != nil {
					return err
				}
				printSuccess("Exported %s", args[0])
				printFile(args[1])
				return nil
			})
		},
	}
}

func (c *CLI) pagesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID...",
		Aliases: []string{"rm"},
		Short:   "Delete stored pages",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				for _, id := range args {
					if err := st.Delete(cmd.Context(), id); err != nil {
						return err
					}
					printSuccess("Deleted %s", id)
				}
				return nil
			})
		},
	}
}
