package grid

import "sort"

// Layout is the per-breakpoint placement of every component on a page,
// keyed by component id. The zero value is not usable; call [NewLayout].
//
// Layout is not safe for concurrent use.
type Layout struct {
	rects map[string]*RectSet
}

// NewLayout returns an empty layout.
func NewLayout() *Layout {
	return &Layout{rects: make(map[string]*RectSet)}
}

// Get returns the rect of id on bp.
func (l *Layout) Get(bp Breakpoint, id string) (Rect, bool) {
	s, ok := l.rects[id]
	if !ok || !bp.Valid() {
		return Rect{}, false
	}
	return s.Get(bp), true
}

// Set replaces the rect of an existing id on bp. It reports false and
// changes nothing when id has no rects or bp is unknown; new ids enter
// the layout through [Layout.Put] so they always carry all four rects.
func (l *Layout) Set(bp Breakpoint, id string, r Rect) bool {
	s, ok := l.rects[id]
	if !ok || !bp.Valid() {
		return false
	}
	s.Set(bp, r)
	return true
}

// Put stores all four rects of id, replacing any existing entry.
func (l *Layout) Put(id string, s RectSet) {
	cp := s
	l.rects[id] = &cp
}

// Rects returns a copy of every rect of id.
func (l *Layout) Rects(id string) (RectSet, bool) {
	s, ok := l.rects[id]
	if !ok {
		return RectSet{}, false
	}
	return *s, true
}

// Remove deletes id from all four breakpoints.
func (l *Layout) Remove(id string) {
	delete(l.rects, id)
}

// Has reports whether id has rects.
func (l *Layout) Has(id string) bool {
	_, ok := l.rects[id]
	return ok
}

// Len returns the number of ids in the layout.
func (l *Layout) Len() int { return len(l.rects) }

// IDs returns every id in the layout, sorted.
func (l *Layout) IDs() []string {
	ids := make([]string, 0, len(l.rects))
	for id := range l.rects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MaxBottom returns the largest y+h among the rects of the given
// breakpoints. With no arguments every breakpoint is considered, which is
// what placement uses so that a new component starts below existing
// content on all four grids. An empty layout yields 0.
func (l *Layout) MaxBottom(bps ...Breakpoint) int {
	if len(bps) == 0 {
		bps = Breakpoints[:]
	}
	bottom := 0
	for _, s := range l.rects {
		for _, bp := range bps {
			if !bp.Valid() {
				continue
			}
			bottom = max(bottom, s.Get(bp).Bottom())
		}
	}
	return bottom
}

// Clone returns a deep copy of l.
func (l *Layout) Clone() *Layout {
	c := &Layout{rects: make(map[string]*RectSet, len(l.rects))}
	for id, s := range l.rects {
		cp := *s
		c.rects[id] = &cp
	}
	return c
}
