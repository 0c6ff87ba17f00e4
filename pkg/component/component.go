// Package component provides the geometry-free model of placed page blocks.
//
// An [Instance] is one block on a storefront page (hero, product grid,
// text...). Its Type is a key into the external component registry and its
// Props are an open bag of JSON-like values whose schema belongs to that
// registry. Geometry lives in pkg/grid, keyed by the instance id.
//
// [Tree] keeps the top-level instances in insertion order. That order is
// the structural order used for serialization; it is never re-sorted by
// position.
package component

import "maps"

// Props is an open string-keyed map of JSON-like values
// (nil, bool, float64, string, []any, map[string]any).
type Props map[string]any

// Clone returns a deep copy of p. Nested maps and slices are copied;
// other values are shared, which is safe for JSON-like data.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

// Merge applies patch to p: keys with a nil value are deleted, all others
// are set. p is modified in place and returned; a nil p is allocated.
func (p Props) Merge(patch Props) Props {
	if p == nil {
		p = make(Props, len(patch))
	}
	for k, v := range patch {
		if v == nil {
			delete(p, k)
			continue
		}
		p[k] = cloneValue(v)
	}
	return p
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case Props:
		return t.Clone()
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	default:
		return v
	}
}

// Instance is a placed UI block.
type Instance struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Props    Props      `json:"props"`
	Children []Instance `json:"children"`
}

// Clone returns a deep copy of the instance and its children.
func (in Instance) Clone() Instance {
	out := Instance{ID: in.ID, Type: in.Type, Props: in.Props.Clone()}
	if in.Children != nil {
		out.Children = make([]Instance, len(in.Children))
		for i, c := range in.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Tree is the ordered list of top-level instances on a page.
// The zero value is an empty tree ready to use. Tree is not safe for
// concurrent use.
type Tree struct {
	items []*Instance
	index map[string]int
}

// NewTree builds a tree from instances in order. Later duplicates of an id
// are dropped; the returned count reports how many.
func NewTree(instances ...Instance) (*Tree, int) {
	t := &Tree{}
	dropped := 0
	for _, in := range instances {
		if !t.Append(in) {
			dropped++
		}
	}
	return t, dropped
}

// Append adds in at the end of the tree. It reports false and does nothing
// if an instance with the same id already exists.
func (t *Tree) Append(in Instance) bool {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if _, ok := t.index[in.ID]; ok {
		return false
	}
	cp := in.Clone()
	t.items = append(t.items, &cp)
	t.index[in.ID] = len(t.items) - 1
	return true
}

// Remove deletes the instance with the given id, preserving the order of
// the others. It reports whether anything was removed.
func (t *Tree) Remove(id string) bool {
	i, ok := t.index[id]
	if !ok {
		return false
	}
	t.items = append(t.items[:i], t.items[i+1:]...)
	delete(t.index, id)
	for j := i; j < len(t.items); j++ {
		t.index[t.items[j].ID] = j
	}
	return true
}

// Get returns a copy of the instance with the given id.
func (t *Tree) Get(id string) (Instance, bool) {
	i, ok := t.index[id]
	if !ok {
		return Instance{}, false
	}
	return t.items[i].Clone(), true
}

// Has reports whether id is in the tree.
func (t *Tree) Has(id string) bool {
	_, ok := t.index[id]
	return ok
}

// UpdateProps merges patch into the props of id (see [Props.Merge]).
func (t *Tree) UpdateProps(id string, patch Props) bool {
	i, ok := t.index[id]
	if !ok {
		return false
	}
	t.items[i].Props = t.items[i].Props.Merge(patch)
	return true
}

// Len returns the number of top-level instances.
func (t *Tree) Len() int { return len(t.items) }

// IDs returns the instance ids in tree order.
func (t *Tree) IDs() []string {
	ids := make([]string, len(t.items))
	for i, in := range t.items {
		ids[i] = in.ID
	}
	return ids
}

// List returns copies of every instance in tree order.
func (t *Tree) List() []Instance {
	out := make([]Instance, len(t.items))
	for i, in := range t.items {
		out[i] = in.Clone()
	}
	return out
}

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		items: make([]*Instance, len(t.items)),
		index: maps.Clone(t.index),
	}
	for i, in := range t.items {
		cp := in.Clone()
		c.items[i] = &cp
	}
	return c
}
