package editor

// Resize grows or shrinks id on the active breakpoint by dw columns and dh
// rows. Width is kept within [minW, columns-x] and height at or above
// minH. Other breakpoints are untouched. It reports whether a rect was
// found; a resize that hits its bounds still reports true.
func (e *Editor) Resize(id string, dw, dh int) bool {
	bp := e.active
	r, ok := e.layout.Get(bp, id)
	if !ok {
		return false
	}
	r.W = max(r.MinW, min(bp.Columns()-r.X, r.W+dw))
	r.H = max(r.MinH, r.H+dh)
	return e.layout.Set(bp, id, r)
}
