package editor

import (
	"github.com/matzehuels/gridkit/pkg/component"
	"github.com/matzehuels/gridkit/pkg/grid"
)

// Placed is one component as the renderer sees it on the active breakpoint.
type Placed struct {
	Instance component.Instance `json:"instance"`
	Rect     grid.Rect          `json:"rect"`
	Selected bool               `json:"selected,omitempty"`
	Dragging bool               `json:"dragging,omitempty"`
}

// View is a read-only snapshot of what the canvas should show.
type View struct {
	Breakpoint grid.Breakpoint `json:"breakpoint"`
	Columns    int             `json:"columns"`
	Viewport   int             `json:"viewport"`
	Selected   string          `json:"selected,omitempty"`
	Dragging   string          `json:"dragging,omitempty"`
	Components []Placed        `json:"components"`
}

// View returns the components in tree order with their rects on the
// active breakpoint.
func (e *Editor) View() View {
	v := View{
		Breakpoint: e.active,
		Columns:    e.active.Columns(),
		Viewport:   e.viewport,
		Selected:   e.selected,
		Components: make([]Placed, 0, e.tree.Len()),
	}
	dragID, _ := e.Dragging()
	v.Dragging = dragID
	for _, in := range e.tree.List() {
		r, ok := e.layout.Get(e.active, in.ID)
		if !ok {
			continue
		}
		v.Components = append(v.Components, Placed{
			Instance: in,
			Rect:     r,
			Selected: in.ID == e.selected,
			Dragging: dragID != "" && in.ID == dragID,
		})
	}
	return v
}

// Rows returns the number of grid rows the view occupies.
func (v View) Rows() int {
	rows := 0
	for _, p := range v.Components {
		rows = max(rows, p.Rect.Bottom())
	}
	return rows
}
