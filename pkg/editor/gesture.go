package editor

import (
	"math"

	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/observability"
)

// Point is a pointer position in canvas pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Capturer attaches the gesture-scoped input listeners (pointer capture,
// document-level move/up handlers) for a drag. Capture is called when a
// drag starts; the returned release func is called exactly once when the
// drag ends, whether by pointer-up, cancel or a forced abort.
type Capturer interface {
	Capture(componentID string) (release func())
}

// CaptureFunc adapts a plain function to the Capturer interface.
type CaptureFunc func(componentID string) func()

// Capture calls f.
func (f CaptureFunc) Capture(componentID string) func() { return f(componentID) }

type noCapture struct{}

func (noCapture) Capture(string) func() { return func() {} }

// gesture is the state of one in-flight drag.
type gesture struct {
	componentID string
	bp          grid.Breakpoint // snapshot at pointer-down
	origin      grid.Rect       // rect before the first step, for Cancel
	last        Point           // pointer position at the last applied step
	steps       int
	release     func()
}

// Dragging returns the id of the component being dragged, if any.
func (e *Editor) Dragging() (string, bool) {
	if e.drag == nil {
		return "", false
	}
	return e.drag.componentID, true
}

// PointerDown starts a drag of id at pointer position p. The active
// breakpoint is captured for the whole gesture. It reports false when a
// gesture is already in progress or id has no rect.
func (e *Editor) PointerDown(id string, p Point) bool {
	if e.drag != nil {
		return false
	}
	r, ok := e.layout.Get(e.active, id)
	if !ok {
		return false
	}
	e.drag = &gesture{
		componentID: id,
		bp:          e.active,
		origin:      r,
		last:        p,
	}
	e.drag.release = e.capture.Capture(id)
	e.logger.Debug("drag started", "id", id, "breakpoint", e.active)
	observability.Editor().OnGestureStart(id, string(e.active))
	return true
}

// PointerMove applies one drag step toward p. Moves inside the drag
// threshold on both axes are ignored; otherwise the delta since the last
// applied step is snapped to whole cells and the rect is moved, clamped to
// the grid. It reports whether the rect changed.
func (e *Editor) PointerMove(p Point) bool {
	g := e.drag
	if g == nil {
		return false
	}
	d := p.Sub(g.last)
	if math.IsNaN(d.X) || math.IsNaN(d.Y) {
		return false
	}
	if math.Abs(d.X) <= e.cfg.DragThreshold && math.Abs(d.Y) <= e.cfg.DragThreshold {
		return false
	}
	g.last = p

	r, ok := e.layout.Get(g.bp, g.componentID)
	if !ok {
		return false
	}
	cols := g.bp.Columns()
	cellWidth := e.cfg.ContainerWidth / float64(cols)
	dx := snapCells(d.X/cellWidth, float64(cols))
	dy := snapCells(d.Y/e.cfg.RowHeight, math.MaxInt32)

	moved := r.MoveTo(
		max(0, min(cols-r.W, r.X+dx)),
		max(0, r.Y+dy),
	)
	if moved == r {
		return false
	}
	e.layout.Set(g.bp, g.componentID, moved)
	g.steps++
	return true
}

// snapCells rounds a delta in cells to whole cells, saturating at ±limit
// before the integer conversion.
func snapCells(v, limit float64) int {
	return int(math.Round(max(-limit, min(limit, v))))
}

// PointerUp ends the drag, keeping the current position.
func (e *Editor) PointerUp() bool {
	if e.drag == nil {
		return false
	}
	e.endGesture(false)
	return true
}

// Cancel ends the drag and restores the rect it started from.
func (e *Editor) Cancel() bool {
	g := e.drag
	if g == nil {
		return false
	}
	e.layout.Set(g.bp, g.componentID, g.origin)
	e.endGesture(true)
	return true
}

// abortGesture ends a drag without touching geometry. Used when the
// dragged component disappears or the state is replaced.
func (e *Editor) abortGesture() {
	if e.drag != nil {
		e.endGesture(true)
	}
}

func (e *Editor) endGesture(cancelled bool) {
	g := e.drag
	e.drag = nil
	if g.release != nil {
		g.release()
	}
	e.logger.Debug("drag ended", "id", g.componentID, "breakpoint", g.bp, "steps", g.steps, "cancelled", cancelled)
	observability.Editor().OnGestureEnd(g.componentID, string(g.bp), g.steps, cancelled)
}
