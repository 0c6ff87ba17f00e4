// Package editor implements the layout engine of the page builder.
//
// An [Editor] owns the state of one page being edited: the ordered
// component tree, the per-breakpoint layout, the current selection, the
// active breakpoint and at most one in-flight pointer gesture. UI controls
// call its methods from their event handlers:
//
//	onAddFromPalette(type)           -> Add
//	onSelect(id)                     -> Select
//	onDragHandlePointerDown(id, ev)  -> PointerDown
//	pointermove / pointerup          -> PointerMove / PointerUp
//	Escape / window blur             -> Cancel
//	onResizeClick(id, dw, dh)        -> Resize
//	onDeleteClick(id)                -> Delete
//	viewport / container resize      -> SetViewport / SetContainerWidth
//
// The renderer reads [Editor.View] (or Tree and Rect) to draw the canvas
// for the active breakpoint.
//
// Operations that reference a component which does not exist are silent
// no-ops and report false. Only palette lookups return errors.
//
// An Editor is not safe for concurrent use. It models a single UI thread;
// callers that serve several goroutines must serialize access (see
// pkg/session).
package editor

import (
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridkit/pkg/component"
	"github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/observability"
	"github.com/matzehuels/gridkit/pkg/registry"
)

// Default engine constants.
const (
	DefaultDragThreshold  = 20.0 // px
	DefaultRowHeight      = 60.0 // px
	DefaultContainerWidth = 1200.0
	DefaultViewportWidth  = 1200
)

// Config holds the pixel geometry the editor needs to translate pointer
// movement into grid cells.
type Config struct {
	// DragThreshold is the dead zone in pixels. A pointer move whose delta
	// is within it on both axes is ignored.
	DragThreshold float64 `toml:"drag_threshold" json:"dragThreshold"`
	// RowHeight is the height of one grid row in pixels.
	RowHeight float64 `toml:"row_height" json:"rowHeight"`
	// ContainerWidth is the canvas width in pixels.
	ContainerWidth float64 `toml:"container_width" json:"containerWidth"`
	// ViewportWidth is the initial viewport width in pixels.
	ViewportWidth int `toml:"viewport_width" json:"viewportWidth"`
}

// DefaultConfig returns the standard editor geometry.
func DefaultConfig() Config {
	return Config{
		DragThreshold:  DefaultDragThreshold,
		RowHeight:      DefaultRowHeight,
		ContainerWidth: DefaultContainerWidth,
		ViewportWidth:  DefaultViewportWidth,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DragThreshold <= 0 {
		c.DragThreshold = d.DragThreshold
	}
	if c.RowHeight <= 0 {
		c.RowHeight = d.RowHeight
	}
	if c.ContainerWidth <= 0 {
		c.ContainerWidth = d.ContainerWidth
	}
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = d.ViewportWidth
	}
	return c
}

// Option configures an Editor.
type Option func(*Editor)

// WithConfig sets the editor geometry. Zero fields keep their defaults.
func WithConfig(c Config) Option {
	return func(e *Editor) { e.cfg = c.withDefaults() }
}

// WithLogger sets the logger used for warnings and gesture tracing.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCapturer sets the pointer-capture provider used while a drag is active.
func WithCapturer(c Capturer) Option {
	return func(e *Editor) {
		if c != nil {
			e.capture = c
		}
	}
}

// WithIDGenerator replaces the component id generator.
func WithIDGenerator(gen func() string) Option {
	return func(e *Editor) {
		if gen != nil {
			e.newID = gen
		}
	}
}

// Editor is the mutable state of one page in the builder.
type Editor struct {
	cfg      Config
	registry registry.Registry
	logger   *log.Logger
	capture  Capturer
	newID    func() string

	tree     *component.Tree
	layout   *grid.Layout
	selected string
	viewport int
	active   grid.Breakpoint
	drag     *gesture
}

// New returns an editor for an empty page. reg supplies palette
// definitions for [Editor.Add]; a nil registry knows no types.
func New(reg registry.Registry, opts ...Option) *Editor {
	if reg == nil {
		reg = registry.Func(func(string) (registry.Definition, bool) {
			return registry.Definition{}, false
		})
	}
	e := &Editor{
		cfg:      DefaultConfig(),
		registry: reg,
		logger:   log.Default(),
		capture:  noCapture{},
		newID:    NewID,
		tree:     &component.Tree{},
		layout:   grid.NewLayout(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.SetViewport(e.cfg.ViewportWidth)
	return e
}

// Load replaces the editor state with tree and layout, as produced by the
// page deserializer. Selection is cleared and any gesture is aborted.
// Orphan rects are dropped and components without rects are given default
// full-width rects below the existing content, so the invariants hold
// even for hand-edited input.
func (e *Editor) Load(tree *component.Tree, layout *grid.Layout) {
	e.abortGesture()
	e.selected = ""
	e.tree = tree.Clone()
	e.layout = layout.Clone()

	for _, id := range e.layout.IDs() {
		if !e.tree.Has(id) {
			e.logger.Warn("dropping orphan rect", "id", id)
			e.layout.Remove(id)
		}
	}
	for _, id := range e.tree.IDs() {
		if e.layout.Has(id) {
			continue
		}
		e.logger.Warn("component has no layout, placing below content", "id", id)
		base := grid.Rect{Y: e.layout.MaxBottom(), W: grid.LG.Columns(), H: 2, MinW: 2, MinH: 1}
		e.layout.Put(id, grid.Uniform(base))
	}
}

// Config returns the editor geometry.
func (e *Editor) Config() Config { return e.cfg }

// Tree returns a copy of the component tree.
func (e *Editor) Tree() *component.Tree { return e.tree.Clone() }

// Layout returns a copy of the per-breakpoint layout.
func (e *Editor) Layout() *grid.Layout { return e.layout.Clone() }

// Len returns the number of placed components.
func (e *Editor) Len() int { return e.tree.Len() }

// Rect returns the rect of id on the active breakpoint.
func (e *Editor) Rect(id string) (grid.Rect, bool) {
	return e.layout.Get(e.active, id)
}

// RectOn returns the rect of id on bp.
func (e *Editor) RectOn(bp grid.Breakpoint, id string) (grid.Rect, bool) {
	return e.layout.Get(bp, id)
}

// ActiveBreakpoint returns the breakpoint resolved from the current viewport.
func (e *Editor) ActiveBreakpoint() grid.Breakpoint { return e.active }

// Viewport returns the current viewport width in pixels.
func (e *Editor) Viewport() int { return e.viewport }

// SetViewport records a new viewport width and re-resolves the active
// breakpoint. An in-flight drag keeps the breakpoint it started on.
func (e *Editor) SetViewport(widthPx int) grid.Breakpoint {
	e.viewport = widthPx
	prev := e.active
	e.active = grid.Resolve(widthPx)
	if prev != "" && prev != e.active {
		e.logger.Debug("breakpoint changed", "from", prev, "to", e.active, "viewport", widthPx)
	}
	return e.active
}

// SetContainerWidth records the canvas width in pixels used to size grid
// cells. Non-positive widths are ignored.
func (e *Editor) SetContainerWidth(px float64) {
	if px > 0 {
		e.cfg.ContainerWidth = px
	}
}

// Selected returns the selected component id, or "" when nothing is selected.
func (e *Editor) Selected() string { return e.selected }

// Select marks id as the current selection. An empty id clears the
// selection. Unknown ids are ignored and reported as false.
func (e *Editor) Select(id string) bool {
	if id == "" {
		e.selected = ""
		return true
	}
	if !e.tree.Has(id) {
		return false
	}
	e.selected = id
	return true
}

// Add places a new component of type typ below all existing content on
// every breakpoint and selects it. It returns the new id.
//
// An unknown type leaves the editor untouched; the failure is logged and
// returned as an UNKNOWN_TYPE error.
func (e *Editor) Add(typ string) (string, error) {
	def, ok := e.registry.Lookup(typ)
	if !ok {
		e.logger.Warn("unknown component type", "type", typ)
		return "", errors.New(errors.ErrCodeUnknownType, "unknown component type %q", typ)
	}

	id, err := e.uniqueID()
	if err != nil {
		return "", err
	}

	y := e.layout.MaxBottom()
	rects := grid.Uniform(def.DefaultLayout.Rect(y))

	e.tree.Append(component.Instance{
		ID:       id,
		Type:     typ,
		Props:    def.DefaultProps.Clone(),
		Children: []component.Instance{},
	})
	e.layout.Put(id, rects)
	e.selected = id

	e.logger.Debug("component added", "id", id, "type", typ, "y", y)
	observability.Editor().OnComponentAdded(id, typ)
	return id, nil
}

const maxIDAttempts = 16

// uniqueID draws ids until one collides with neither the tree nor the layout.
func (e *Editor) uniqueID() (string, error) {
	for range maxIDAttempts {
		id := e.newID()
		if id != "" && !e.tree.Has(id) && !e.layout.Has(id) {
			return id, nil
		}
	}
	return "", errors.New(errors.ErrCodeInternal, "could not generate a unique component id")
}

// Delete removes id from the tree and from all four breakpoints. A drag
// on id is aborted and its pointer capture released; the selection is
// cleared if it pointed at id. Unknown ids are a no-op.
func (e *Editor) Delete(id string) bool {
	if !e.tree.Has(id) && !e.layout.Has(id) {
		return false
	}
	if e.drag != nil && e.drag.componentID == id {
		e.abortGesture()
	}
	e.tree.Remove(id)
	e.layout.Remove(id)
	if e.selected == id {
		e.selected = ""
	}
	observability.Editor().OnComponentDeleted(id)
	return true
}

// UpdateProps merges patch into the props of id. Keys set to nil are
// removed. Geometry is not affected.
func (e *Editor) UpdateProps(id string, patch component.Props) bool {
	return e.tree.UpdateProps(id, patch)
}

// Check verifies the layout invariants: every component has exactly one
// valid rect per breakpoint and no rect belongs to a missing component.
func (e *Editor) Check() error {
	return CheckLayout(e.tree, e.layout)
}

// CheckLayout verifies the layout invariants of a tree/layout pair.
func CheckLayout(tree *component.Tree, layout *grid.Layout) error {
	var errs []error
	for _, id := range tree.IDs() {
		rects, ok := layout.Rects(id)
		if !ok {
			errs = append(errs, fmt.Errorf("component %s: no layout", id))
			continue
		}
		for _, bp := range grid.Breakpoints {
			if err := rects.Get(bp).Validate(bp); err != nil {
				errs = append(errs, fmt.Errorf("component %s: %w", id, err))
			}
		}
	}
	for _, id := range layout.IDs() {
		if !tree.Has(id) {
			errs = append(errs, fmt.Errorf("orphan rect for %s", id))
		}
	}
	return stderrors.Join(errs...)
}
