package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/page"
	"github.com/matzehuels/gridkit/pkg/registry"
)

func (c *CLI) validateCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate PAGE...",
		Short: "Report what loading a page would reject or repair",
		Long: `Check each PAGE against the persisted page format and the component
palette. Errors make a page unloadable; warnings mark data that loads
differently than written (clamped rects, unknown types); info lines mark
fields that fall back to defaults.

The command fails if any page has errors.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			palette, err := c.palette()
			if err != nil {
				return err
			}

			failed := 0
			for _, arg := range args {
				ref := parsePageRef(arg)
				p, err := c.loadPage(cmd.Context(), ref, false)
				if err != nil {
					printError("%s: %s", ref, errors.UserMessage(err))
					failed++
					continue
				}
				if !c.validatePage(cmd.OutOrStdout(), ref, p, palette, quiet) {
					failed++
				}
			}
			if failed > 0 {
				return errors.New(errors.ErrCodeInvalidPage, "%d of %d pages failed validation", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only report errors")
	return cmd
}

// validatePage prints the lint report of one page and reports whether it
// loads. A page that lints clean is also loaded and checked against the
// layout invariants.
func (c *CLI) validatePage(out io.Writer, ref pageRef, p *page.Page, reg registry.Registry, quiet bool) bool {
	issues := page.Lint(p, reg)
	counts := map[page.Severity]int{}
	for _, is := range issues {
		counts[is.Severity]++
		if quiet && is.Severity != page.SeverityError {
			continue
		}
		detail := strings.TrimPrefix(is.String(), string(is.Severity)+" ")
		fmt.Fprintln(out, "  "+severityStyle(is.Severity).Render(string(is.Severity))+" "+detail)
	}

	if page.HasErrors(issues) {
		printError("%s: %d errors, %d warnings", ref, counts[page.SeverityError], counts[page.SeverityWarning])
		return false
	}

	tree, layout, err := page.Deserialize(p)
	if err == nil {
		ed := c.newEditor(reg)
		ed.Load(tree, layout)
		err = ed.Check()
	}
	if err != nil {
		printError("%s: %v", ref, err)
		return false
	}

	if counts[page.SeverityWarning] > 0 {
		printWarning("%s: %d components, %d warnings", ref, p.Len(), counts[page.SeverityWarning])
	} else {
		printSuccess("%s: %d components", ref, p.Len())
	}
	return true
}

func severityStyle(s page.Severity) lipgloss.Style {
	switch s {
	case page.SeverityError:
		return StyleError
	case page.SeverityWarning:
		return StyleWarning
	default:
		return StyleDim
	}
}
