package page

import (
	"fmt"

	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/registry"
)

// Severity grades a lint issue.
type Severity string

const (
	SeverityError   Severity = "error"   // the page cannot be loaded
	SeverityWarning Severity = "warning" // the page loads, but not as written
	SeverityInfo    Severity = "info"    // a fallback fills in missing data
)

// Issue is one problem found by [Lint].
type Issue struct {
	Index       int      `json:"index"`
	ComponentID string   `json:"componentId,omitempty"`
	Breakpoint  string   `json:"breakpoint,omitempty"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
}

func (i Issue) String() string {
	where := fmt.Sprintf("#%d", i.Index)
	if i.ComponentID != "" {
		where += " " + i.ComponentID
	}
	if i.Breakpoint != "" {
		where += " [" + i.Breakpoint + "]"
	}
	return fmt.Sprintf("%s %s: %s", i.Severity, where, i.Message)
}

// Lint reports what loading p would reject, repair or default. Unknown
// component types are reported when reg is non-nil.
func Lint(p *Page, reg registry.Registry) []Issue {
	var issues []Issue
	seen := make(map[string]bool, len(p.Components))
	for i, c := range p.Components {
		add := func(sev Severity, bp, format string, args ...any) {
			issues = append(issues, Issue{
				Index:       i,
				ComponentID: c.ID,
				Breakpoint:  bp,
				Severity:    sev,
				Message:     fmt.Sprintf(format, args...),
			})
		}

		switch {
		case c.ID == "":
			add(SeverityError, "", "missing id")
		case seen[c.ID]:
			add(SeverityError, "", "duplicate id")
		}
		seen[c.ID] = true

		if reg != nil {
			if _, ok := reg.Lookup(c.Type); !ok {
				add(SeverityWarning, "", "unknown component type %q", c.Type)
			}
		}

		if c.Layout == nil {
			add(SeverityInfo, "", "no layout, using defaults")
			continue
		}
		if c.Layout.X == nil || c.Layout.Y == nil || c.Layout.W == nil || c.Layout.H == nil {
			add(SeverityInfo, "", "incomplete lg-canonical layout")
		}
		for _, bp := range grid.Breakpoints {
			if c.Layout.Breakpoint[string(bp)] == nil {
				add(SeverityInfo, string(bp), "missing breakpoint entry, falling back to lg values")
				if bp != grid.LG {
					continue
				}
			}
			raw := c.Layout.rawRect(bp)
			if fitted := c.Layout.rect(bp); fitted.X != raw.X || fitted.Y != raw.Y || fitted.W != raw.W || fitted.H != raw.H {
				add(SeverityWarning, string(bp), "rect %s clamped to %s", raw, fitted)
			}
		}
	}
	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, is := range issues {
		if is.Severity == SeverityError {
			return true
		}
	}
	return false
}
