package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gridkit/pkg/component"
	"github.com/matzehuels/gridkit/pkg/errors"
)

func TestBuiltin(t *testing.T) {
	reg := Builtin()
	for _, typ := range []string{"hero", "product-grid", "text", "spacer"} {
		d, ok := reg.Lookup(typ)
		if !ok {
			t.Fatalf("builtin palette missing %q", typ)
		}
		if d.DefaultLayout.MinW < 1 || d.DefaultLayout.W < d.DefaultLayout.MinW || d.DefaultLayout.W > 12 {
			t.Errorf("%s: invalid default layout %+v", typ, d.DefaultLayout)
		}
	}
	if _, ok := reg.Lookup("carousel"); ok {
		t.Error("Lookup of unknown type should miss")
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	reg := Builtin()
	d, _ := reg.Lookup("hero")
	d.DefaultProps["title"] = "mutated"

	again, _ := reg.Lookup("hero")
	if again.DefaultProps["title"] == "mutated" {
		t.Error("Lookup leaked a shared props map")
	}
}

func TestNewStaticNormalizesSizes(t *testing.T) {
	reg, err := NewStatic(
		Definition{Type: "wide", DefaultLayout: Size{W: 20, H: 0}},
		Definition{Type: "tiny", DefaultLayout: Size{W: 1, H: 1, MinW: 3, MinH: 2}},
	)
	if err != nil {
		t.Fatalf("NewStatic: %v", err)
	}

	wide, _ := reg.Lookup("wide")
	if wide.DefaultLayout != (Size{W: 12, H: 1, MinW: 1, MinH: 1}) {
		t.Errorf("wide = %+v", wide.DefaultLayout)
	}
	tiny, _ := reg.Lookup("tiny")
	if tiny.DefaultLayout != (Size{W: 3, H: 2, MinW: 3, MinH: 2}) {
		t.Errorf("tiny = %+v", tiny.DefaultLayout)
	}
}

func TestNewStaticRejects(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
	}{
		{"empty type", []Definition{{Type: ""}}},
		{"bad type", []Definition{{Type: "Hero Banner"}}},
		{"duplicate", []Definition{{Type: "hero"}, {Type: "hero"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewStatic(tt.defs...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecode(t *testing.T) {
	const palette = `
[[component]]
type = "promo"
label = "Promo tile"
[component.layout]
w = 4
h = 3
min_w = 2
min_h = 1
[component.props]
headline = "Sale"
discount = 20
tags = ["summer", "sale"]

[[component]]
type = "divider"
[component.layout]
w = 12
h = 1
`
	reg, err := Decode(strings.NewReader(palette))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := reg.Types(); len(got) != 2 || got[0] != "divider" || got[1] != "promo" {
		t.Fatalf("Types() = %v", got)
	}

	promo, _ := reg.Lookup("promo")
	if promo.Label != "Promo tile" || promo.DefaultLayout != (Size{W: 4, H: 3, MinW: 2, MinH: 1}) {
		t.Errorf("promo = %+v", promo)
	}
	if promo.DefaultProps["discount"] != 20.0 {
		t.Errorf("integers should decode as float64, got %T", promo.DefaultProps["discount"])
	}
	if tags, ok := promo.DefaultProps["tags"].([]any); !ok || len(tags) != 2 {
		t.Errorf("tags = %#v", promo.DefaultProps["tags"])
	}

	divider, _ := reg.Lookup("divider")
	if divider.DefaultLayout.MinW != 1 || divider.DefaultLayout.MinH != 1 {
		t.Errorf("divider minimums not defaulted: %+v", divider.DefaultLayout)
	}
}

func TestDecodeUnknownKey(t *testing.T) {
	_, err := Decode(strings.NewReader("[[component]]\ntype = \"x\"\ncolour = \"red\"\n"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.toml")
	if err := os.WriteFile(path, []byte("[[component]]\ntype = \"faq\"\n[component.layout]\nw = 8\nh = 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	reg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, ok := reg.Lookup("faq"); !ok {
		t.Error("faq not loaded")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadFile of missing file should fail")
	}
}

func TestFunc(t *testing.T) {
	var reg Registry = Func(func(typ string) (Definition, bool) {
		return Definition{Type: typ, DefaultProps: component.Props{}}, typ == "any"
	})
	if _, ok := reg.Lookup("any"); !ok {
		t.Error("Func lookup failed")
	}
}
