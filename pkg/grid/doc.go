// Package grid provides the geometry model of the responsive page grid.
//
// A page is laid out independently for four breakpoints. Each breakpoint
// has a fixed number of columns and an unbounded number of rows; a placed
// component occupies a [Rect] in column/row units (not pixels) on every
// breakpoint.
//
// # Breakpoints
//
//	Breakpoint  Min viewport  Columns
//	lg          1200px        12
//	md           996px         8
//	sm           768px         6
//	xs             0px         4
//
// [Resolve] maps a viewport width to the active breakpoint. It is a pure
// function without hysteresis.
//
// # Layout
//
// [Layout] stores one [RectSet] per component id: a fixed record holding
// exactly one rect per breakpoint. Storing the four rects together keeps
// the "one rect per breakpoint" invariant structural instead of something
// every mutation site has to maintain:
//
//	l := grid.NewLayout()
//	l.Put("hero-1", grid.Uniform(grid.Rect{W: 12, H: 2, MinW: 2, MinH: 1}))
//	r, _ := l.Get(grid.MD, "hero-1")    // W clamped to 8 by Uniform
//	l.Set(grid.MD, "hero-1", r.MoveTo(2, 0))
//	bottom := l.MaxBottom()             // max y+h across all breakpoints
//
// # Invariants
//
// For every rect on breakpoint bp:
//
//	x >= 0, y >= 0, minW >= 1, minH >= 1
//	w >= minW, h >= minH, x+w <= bp.Columns()
//
// [Rect.Validate] reports violations and [Rect.Fit] repairs them.
package grid
