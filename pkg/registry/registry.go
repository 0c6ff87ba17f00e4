// Package registry defines the component registry boundary.
//
// The registry is owned by another team: it knows every component type a
// storefront page may contain, with its default props and default size.
// The layout engine only ever asks it one question, [Registry.Lookup].
//
// This package also ships [Static], an in-memory registry that can be
// built from code, from the built-in storefront palette ([Builtin]) or
// from a TOML palette file ([LoadFile]):
//
//	[[component]]
//	type  = "hero"
//	label = "Hero banner"
//	[component.layout]
//	w = 12
//	h = 4
//	min_w = 4
//	min_h = 2
//	[component.props]
//	title = "Summer collection"
package registry

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridkit/pkg/component"
	"github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
)

// Size is the default footprint of a component type, in lg grid units.
type Size struct {
	W    int `toml:"w" json:"w"`
	H    int `toml:"h" json:"h"`
	MinW int `toml:"min_w" json:"minW"`
	MinH int `toml:"min_h" json:"minH"`
}

// Rect returns the canonical lg rect of this size placed at row y.
func (s Size) Rect(y int) grid.Rect {
	return grid.Rect{X: 0, Y: y, W: s.W, H: s.H, MinW: s.MinW, MinH: s.MinH}
}

// normalize raises minimums to 1 and the default size to its minimums,
// capping widths at the lg column count.
func (s Size) normalize() Size {
	r := s.Rect(0).Fit(grid.LG)
	return Size{W: r.W, H: r.H, MinW: r.MinW, MinH: r.MinH}
}

// Definition describes one component type.
type Definition struct {
	Type          string          `toml:"type" json:"type"`
	Label         string          `toml:"label" json:"label,omitempty"`
	DefaultProps  component.Props `toml:"props" json:"defaultProps"`
	DefaultLayout Size            `toml:"layout" json:"defaultLayout"`
}

// Registry resolves component types to their definitions.
type Registry interface {
	// Lookup returns the definition of typ, or false if the type is unknown.
	Lookup(typ string) (Definition, bool)
}

// Func adapts a plain function to the Registry interface.
type Func func(typ string) (Definition, bool)

// Lookup calls f.
func (f Func) Lookup(typ string) (Definition, bool) { return f(typ) }

// Static is an immutable in-memory registry.
type Static struct {
	defs map[string]Definition
}

// NewStatic builds a registry from defs. Type names must be valid registry
// keys and unique; sizes are normalized so every definition can be placed.
func NewStatic(defs ...Definition) (*Static, error) {
	s := &Static{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		if err := errors.ValidateTypeName(d.Type); err != nil {
			return nil, err
		}
		if _, dup := s.defs[d.Type]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate component type %q", d.Type)
		}
		d.DefaultLayout = d.DefaultLayout.normalize()
		d.DefaultProps = d.DefaultProps.Clone()
		s.defs[d.Type] = d
	}
	return s, nil
}

// Lookup returns a copy of the definition of typ.
func (s *Static) Lookup(typ string) (Definition, bool) {
	d, ok := s.defs[typ]
	if !ok {
		return Definition{}, false
	}
	d.DefaultProps = d.DefaultProps.Clone()
	return d, true
}

// Types returns every registered type, sorted.
func (s *Static) Types() []string {
	types := make([]string, 0, len(s.defs))
	for t := range s.defs {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Definitions returns every definition, sorted by type.
func (s *Static) Definitions() []Definition {
	out := make([]Definition, 0, len(s.defs))
	for _, t := range s.Types() {
		d, _ := s.Lookup(t)
		out = append(out, d)
	}
	return out
}

var _ Registry = (*Static)(nil)

// paletteFile is the TOML document shape of a palette file.
type paletteFile struct {
	Components []Definition `toml:"component"`
}

// Decode reads a TOML palette from r.
func Decode(r io.Reader) (*Static, error) {
	var f paletteFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode palette")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown palette key %q", undecoded[0].String())
	}
	for i := range f.Components {
		f.Components[i].DefaultProps = jsonLike(f.Components[i].DefaultProps)
	}
	return NewStatic(f.Components...)
}

// LoadFile reads a TOML palette file.
func LoadFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open palette %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// jsonLike converts TOML integers to float64 so props loaded from a
// palette compare equal to props decoded from a persisted page.
func jsonLike(p component.Props) component.Props {
	for k, v := range p {
		p[k] = jsonValue(v)
	}
	return p
}

func jsonValue(v any) any {
	switch t := v.(type) {
	case int64:
		return float64(t)
	case map[string]any:
		for k, vv := range t {
			t[k] = jsonValue(vv)
		}
		return t
	case []any:
		for i, vv := range t {
			t[i] = jsonValue(vv)
		}
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = jsonValue(m)
		}
		return out
	default:
		return v
	}
}
