// Package page converts editor state to and from the persisted page format.
//
// A persisted page is a JSON document listing top-level components in tree
// order, each carrying its own layout:
//
//	{
//	  "components": [
//	    { "id": "m1x2k3p4-9f86d081", "type": "hero", "props": {...}, "children": [],
//	      "layout": { "x": 0, "y": 0, "w": 12, "h": 4, "order": 0,
//	                  "breakpoint": { "lg": {...}, "md": {...}, "sm": {...}, "xs": {...} } } }
//	  ]
//	}
//
// The top-level x/y/w/h are the lg rect, and order is its y. All four
// breakpoints are always written, even when they could be derived from lg,
// so that loading a saved page reproduces it exactly.
//
// The same types carry BSON tags so pages can be stored as MongoDB
// documents without a separate schema.
package page

import (
	"cmp"
	"slices"

	"github.com/matzehuels/gridkit/pkg/component"
	"github.com/matzehuels/gridkit/pkg/grid"
)

// Page is the persisted form of an edited page.
type Page struct {
	Components []Component `json:"components" bson:"components"`
}

// Component is one persisted top-level component.
type Component struct {
	ID       string               `json:"id" bson:"id"`
	Type     string               `json:"type" bson:"type"`
	Props    component.Props      `json:"props" bson:"props"`
	Children []component.Instance `json:"children" bson:"children"`
	Layout   *Layout              `json:"layout,omitempty" bson:"layout,omitempty"`
}

// Layout is the persisted geometry of a component. Fields are pointers so
// that absent values can be told apart from zero.
type Layout struct {
	X          *int            `json:"x,omitempty" bson:"x,omitempty"`
	Y          *int            `json:"y,omitempty" bson:"y,omitempty"`
	W          *int            `json:"w,omitempty" bson:"w,omitempty"`
	H          *int            `json:"h,omitempty" bson:"h,omitempty"`
	Order      int             `json:"order" bson:"order"`
	Breakpoint map[string]*Box `json:"breakpoint,omitempty" bson:"breakpoint,omitempty"`
}

// Box is the persisted rect of one breakpoint.
type Box struct {
	X *int `json:"x,omitempty" bson:"x,omitempty"`
	Y *int `json:"y,omitempty" bson:"y,omitempty"`
	W *int `json:"w,omitempty" bson:"w,omitempty"`
	H *int `json:"h,omitempty" bson:"h,omitempty"`
}

func intp(v int) *int { return &v }

func boxOf(r grid.Rect) *Box {
	return &Box{X: intp(r.X), Y: intp(r.Y), W: intp(r.W), H: intp(r.H)}
}

// Serialize builds the persisted form of tree and layout. Components are
// emitted in tree order, never re-sorted by position. Components without
// rects are written without a layout and load back with defaults.
func Serialize(tree *component.Tree, layout *grid.Layout) *Page {
	p := &Page{Components: make([]Component, 0, tree.Len())}
	for _, in := range tree.List() {
		c := Component{
			ID:       in.ID,
			Type:     in.Type,
			Props:    in.Props,
			Children: in.Children,
		}
		if c.Props == nil {
			c.Props = component.Props{}
		}
		if c.Children == nil {
			c.Children = []component.Instance{}
		}
		if rects, ok := layout.Rects(in.ID); ok {
			lg := rects.Get(grid.LG)
			c.Layout = &Layout{
				X:          intp(lg.X),
				Y:          intp(lg.Y),
				W:          intp(lg.W),
				H:          intp(lg.H),
				Order:      lg.Y,
				Breakpoint: make(map[string]*Box, len(grid.Breakpoints)),
			}
			for _, bp := range grid.Breakpoints {
				c.Layout.Breakpoint[string(bp)] = boxOf(rects.Get(bp))
			}
		}
		p.Components = append(p.Components, c)
	}
	return p
}

// Len returns the number of components on the page.
func (p *Page) Len() int { return len(p.Components) }

// VisualOrder returns the components sorted top to bottom by their lg row
// (layout order), keeping tree order for ties. This is the order a
// read-only preview lists components in; Serialize always uses tree order.
func (p *Page) VisualOrder() []Component {
	out := slices.Clone(p.Components)
	slices.SortStableFunc(out, func(a, b Component) int {
		return cmp.Compare(a.order(), b.order())
	})
	return out
}

func (c Component) order() int {
	if c.Layout == nil {
		return 0
	}
	return c.Layout.Order
}

// Instance returns the geometry-free part of c.
func (c Component) Instance() component.Instance {
	return component.Instance{ID: c.ID, Type: c.Type, Props: c.Props, Children: c.Children}.Clone()
}
