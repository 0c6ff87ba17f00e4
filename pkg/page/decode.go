package page

import (
	"github.com/matzehuels/gridkit/pkg/component"
	"github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
)

// Geometry used when a persisted component lacks layout fields, and the
// minimum size every loaded rect gets (minimums are not persisted).
const (
	DefaultX    = 0
	DefaultY    = 0
	DefaultW    = 12
	DefaultH    = 2
	DefaultMinW = 2
	DefaultMinH = 1
)

// Deserialize rebuilds the component tree and layout from p.
//
// For every breakpoint, each of x/y/w/h is taken from layout.breakpoint[bp]
// when present, else from the lg-canonical layout.x/y/w/h, else from the
// defaults (0, 0, 12, 2). Minimums are DefaultMinW and DefaultMinH, except
// that minW is lowered to a persisted width below DefaultMinW. Rects are
// then fitted to the breakpoint's columns, so malformed geometry loads
// clamped rather than failing.
//
// Empty or duplicate component ids make the page invalid.
func Deserialize(p *Page) (*component.Tree, *grid.Layout, error) {
	tree := &component.Tree{}
	layout := grid.NewLayout()
	if p == nil {
		return tree, layout, nil
	}
	for i, c := range p.Components {
		if c.ID == "" {
			return nil, nil, errors.New(errors.ErrCodeInvalidPage, "component %d: missing id", i)
		}
		if !tree.Append(c.Instance()) {
			return nil, nil, errors.New(errors.ErrCodeInvalidPage, "component %d: duplicate id %q", i, c.ID)
		}
		layout.Put(c.ID, c.Layout.rects())
	}
	return tree, layout, nil
}

// rects resolves the four breakpoint rects of a persisted layout. A nil
// layout yields the defaults.
func (l *Layout) rects() grid.RectSet {
	var s grid.RectSet
	for _, bp := range grid.Breakpoints {
		s.Set(bp, l.rect(bp))
	}
	return s
}

func (l *Layout) rect(bp grid.Breakpoint) grid.Rect {
	r := l.rawRect(bp)
	r.MinW, r.MinH = DefaultMinW, DefaultMinH
	if r.W < r.MinW {
		r.MinW = max(r.W, 1)
	}
	return r.Fit(bp)
}

// rawRect applies the field fallbacks without minimums or fitting.
func (l *Layout) rawRect(bp grid.Breakpoint) grid.Rect {
	var box, canon Box
	if l != nil {
		canon = Box{X: l.X, Y: l.Y, W: l.W, H: l.H}
		if b := l.Breakpoint[string(bp)]; b != nil {
			box = *b
		}
	}
	return grid.Rect{
		X: pick(box.X, canon.X, DefaultX),
		Y: pick(box.Y, canon.Y, DefaultY),
		W: pick(box.W, canon.W, DefaultW),
		H: pick(box.H, canon.H, DefaultH),
	}
}

func pick(first, second *int, def int) int {
	switch {
	case first != nil:
		return *first
	case second != nil:
		return *second
	default:
		return def
	}
}
