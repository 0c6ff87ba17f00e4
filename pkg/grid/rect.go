package grid

import "fmt"

// Rect is a component's placement on one breakpoint, in column/row units.
type Rect struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	W    int `json:"w"`
	H    int `json:"h"`
	MinW int `json:"minW"`
	MinH int `json:"minH"`
}

// Bottom returns the first row below the rect (y+h).
func (r Rect) Bottom() int { return r.Y + r.H }

// Right returns the first column right of the rect (x+w).
func (r Rect) Right() int { return r.X + r.W }

// MoveTo returns a copy of r positioned at (x, y).
func (r Rect) MoveTo(x, y int) Rect {
	r.X, r.Y = x, y
	return r
}

// Validate reports the first invariant r violates on breakpoint bp.
func (r Rect) Validate(bp Breakpoint) error {
	cols := bp.Columns()
	switch {
	case cols == 0:
		return fmt.Errorf("unknown breakpoint %q", bp)
	case r.MinW < 1 || r.MinH < 1:
		return fmt.Errorf("%s: minimum size %dx%d below 1x1", bp, r.MinW, r.MinH)
	case r.X < 0 || r.Y < 0:
		return fmt.Errorf("%s: negative position (%d,%d)", bp, r.X, r.Y)
	case r.W < r.MinW:
		return fmt.Errorf("%s: width %d below minimum %d", bp, r.W, r.MinW)
	case r.H < r.MinH:
		return fmt.Errorf("%s: height %d below minimum %d", bp, r.H, r.MinH)
	case r.Right() > cols:
		return fmt.Errorf("%s: x+w = %d exceeds %d columns", bp, r.Right(), cols)
	}
	return nil
}

// Fit returns the closest rect to r that satisfies every invariant on bp.
// Minimum sizes are raised to 1 and capped at the column count, width is
// clamped into [minW, columns], and the rect is shifted left if it would
// overflow the right edge.
func (r Rect) Fit(bp Breakpoint) Rect {
	cols := bp.Columns()
	if cols == 0 {
		return r
	}
	r.MinW = clamp(r.MinW, 1, cols)
	r.MinH = max(r.MinH, 1)
	r.W = clamp(r.W, r.MinW, cols)
	r.H = max(r.H, r.MinH)
	r.X = clamp(r.X, 0, cols-r.W)
	r.Y = max(r.Y, 0)
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("{x:%d y:%d w:%d h:%d}", r.X, r.Y, r.W, r.H)
}

// clamp bounds v to [lo, hi]. lo wins when the bounds cross.
func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// RectSet holds exactly one rect per breakpoint, indexed in [Breakpoints] order.
type RectSet [len(Breakpoints)]Rect

// Get returns the rect for bp. Unknown breakpoints yield the zero Rect.
func (s RectSet) Get(bp Breakpoint) Rect {
	i := bp.index()
	if i < 0 {
		return Rect{}
	}
	return s[i]
}

// Set stores r for bp. Unknown breakpoints are ignored.
func (s *RectSet) Set(bp Breakpoint, r Rect) {
	if i := bp.index(); i >= 0 {
		s[i] = r
	}
}

// Uniform derives a RectSet from one canonical rect: every breakpoint shares
// its position, height and minimums, with the width capped at that
// breakpoint's column count. Each rect is then fitted to its breakpoint.
func Uniform(base Rect) RectSet {
	var s RectSet
	for i, bp := range Breakpoints {
		r := base
		r.W = min(base.W, bp.Columns())
		s[i] = r.Fit(bp)
	}
	return s
}
