package page

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridkit/pkg/component"
	"github.com/matzehuels/gridkit/pkg/editor"
	"github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/registry"
)

// buildEditor returns an editor holding a few components with geometry
// that differs per breakpoint.
func buildEditor(t *testing.T) *editor.Editor {
	t.Helper()
	e := editor.New(registry.Builtin(), editor.WithLogger(log.New(io.Discard)))

	hero, err := e.Add("hero")
	if err != nil {
		t.Fatal(err)
	}
	text, _ := e.Add("text")
	card, _ := e.Add("product-card")
	e.UpdateProps(text, component.Props{"html": "<p>hi</p>", "tags": []any{"a", "b"}})

	e.PointerDown(card, editor.Point{})
	e.PointerMove(editor.Point{X: 500, Y: -400})
	e.PointerUp()

	e.SetViewport(800)
	e.Resize(hero, -2, 1)
	e.SetViewport(400)
	e.PointerDown(text, editor.Point{})
	e.PointerMove(editor.Point{X: 0, Y: 300})
	e.PointerUp()
	return e
}

func geometry(r grid.Rect) [4]int { return [4]int{r.X, r.Y, r.W, r.H} }

func TestSerialize_TreeOrderAndBreakpoints(t *testing.T) {
	e := buildEditor(t)
	p := Serialize(e.Tree(), e.Layout())

	if got, want := ids(p.Components), e.Tree().IDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want tree order %v", got, want)
	}
	for _, c := range p.Components {
		if c.Layout == nil {
			t.Fatalf("%s: no layout", c.ID)
		}
		lg, _ := e.RectOn(grid.LG, c.ID)
		if *c.Layout.X != lg.X || *c.Layout.Y != lg.Y || *c.Layout.W != lg.W || *c.Layout.H != lg.H {
			t.Errorf("%s: canonical layout differs from lg rect %s", c.ID, lg)
		}
		if c.Layout.Order != lg.Y {
			t.Errorf("%s: order = %d, want %d", c.ID, c.Layout.Order, lg.Y)
		}
		if len(c.Layout.Breakpoint) != 4 {
			t.Errorf("%s: %d breakpoint entries, want 4", c.ID, len(c.Layout.Breakpoint))
		}
	}
}

func TestRoundTrip(t *testing.T) {
	e := buildEditor(t)
	tree, layout := e.Tree(), e.Layout()

	data, err := Marshal(Serialize(tree, layout))
	if err != nil {
		t.Fatal(err)
	}
	p, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	gotTree, gotLayout, err := Deserialize(p)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(gotTree.IDs(), tree.IDs()) {
		t.Errorf("tree order = %v, want %v", gotTree.IDs(), tree.IDs())
	}
	for _, id := range tree.IDs() {
		want, _ := tree.Get(id)
		got, _ := gotTree.Get(id)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: instance = %+v, want %+v", id, got, want)
		}
		for _, bp := range grid.Breakpoints {
			w, _ := layout.Get(bp, id)
			g, ok := gotLayout.Get(bp, id)
			if !ok || geometry(g) != geometry(w) {
				t.Errorf("%s %s: rect = %s, want %s", id, bp, g, w)
			}
		}
	}
	if err := editor.CheckLayout(gotTree, gotLayout); err != nil {
		t.Errorf("loaded page violates invariants: %v", err)
	}

	again, err := Marshal(Serialize(gotTree, gotLayout))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(again, data) {
		t.Errorf("second save differs:\n%s\n---\n%s", data, again)
	}
}

func TestSerialize_EmptyPropsAndChildren(t *testing.T) {
	p, err := Unmarshal([]byte(`{"components":[{"id":"a","type":"hero"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	tree, layout, err := Deserialize(p)
	if err != nil {
		t.Fatal(err)
	}
	data, err := Marshal(Serialize(tree, layout))
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if strings.Contains(out, "null") {
		t.Errorf("serialized page contains null:\n%s", out)
	}
	if !strings.Contains(out, `"props": {}`) || !strings.Contains(out, `"children": []`) {
		t.Errorf("want empty props object and children list:\n%s", out)
	}
}

func TestDeserialize_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		json string
		want map[grid.Breakpoint][4]int
	}{
		{
			name: "no layout",
			json: `{"id":"a","type":"text"}`,
			want: map[grid.Breakpoint][4]int{
				grid.LG: {0, 0, 12, 2}, grid.MD: {0, 0, 8, 2}, grid.SM: {0, 0, 6, 2}, grid.XS: {0, 0, 4, 2},
			},
		},
		{
			name: "canonical only",
			json: `{"id":"a","type":"text","layout":{"x":2,"y":4,"w":6,"h":3}}`,
			want: map[grid.Breakpoint][4]int{
				grid.LG: {2, 4, 6, 3}, grid.MD: {2, 4, 6, 3}, grid.SM: {0, 4, 6, 3}, grid.XS: {0, 4, 4, 3},
			},
		},
		{
			name: "explicit breakpoint wins",
			json: `{"id":"a","type":"text","layout":{"x":2,"y":4,"w":6,"h":3,
				"breakpoint":{"sm":{"x":1,"y":9,"w":5,"h":1}}}}`,
			want: map[grid.Breakpoint][4]int{
				grid.LG: {2, 4, 6, 3}, grid.MD: {2, 4, 6, 3}, grid.SM: {1, 9, 5, 1}, grid.XS: {0, 4, 4, 3},
			},
		},
		{
			name: "partial breakpoint entry",
			json: `{"id":"a","type":"text","layout":{"x":2,"y":4,"w":6,"h":3,
				"breakpoint":{"md":{"y":7}}}}`,
			want: map[grid.Breakpoint][4]int{
				grid.LG: {2, 4, 6, 3}, grid.MD: {2, 7, 6, 3}, grid.SM: {0, 4, 6, 3}, grid.XS: {0, 4, 4, 3},
			},
		},
		{
			name: "out of bounds is clamped",
			json: `{"id":"a","type":"text","layout":{"breakpoint":{"lg":{"x":-3,"y":-1,"w":40,"h":0}}}}`,
			want: map[grid.Breakpoint][4]int{
				grid.LG: {0, 0, 12, 1}, grid.MD: {0, 0, 8, 2}, grid.SM: {0, 0, 6, 2}, grid.XS: {0, 0, 4, 2},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Unmarshal([]byte(`{"components":[` + tt.json + `]}`))
			if err != nil {
				t.Fatal(err)
			}
			tree, layout, err := Deserialize(p)
			if err != nil {
				t.Fatal(err)
			}
			for bp, want := range tt.want {
				r, ok := layout.Get(bp, "a")
				if !ok {
					t.Fatalf("%s: missing rect", bp)
				}
				if geometry(r) != want {
					t.Errorf("%s = %s, want %v", bp, r, want)
				}
			}
			if err := editor.CheckLayout(tree, layout); err != nil {
				t.Errorf("invariants: %v", err)
			}
		})
	}
}

func TestDeserialize_Minimums(t *testing.T) {
	p, _ := Unmarshal([]byte(`{"components":[
		{"id":"wide","layout":{"x":0,"y":0,"w":5,"h":2}},
		{"id":"narrow","layout":{"x":0,"y":2,"w":1,"h":1}}
	]}`))
	_, layout, err := Deserialize(p)
	if err != nil {
		t.Fatal(err)
	}

	wide, _ := layout.Get(grid.LG, "wide")
	if wide.MinW != 2 || wide.MinH != 1 {
		t.Errorf("wide minimums = %dx%d, want 2x1", wide.MinW, wide.MinH)
	}
	narrow, _ := layout.Get(grid.LG, "narrow")
	if narrow.W != 1 || narrow.MinW != 1 {
		t.Errorf("narrow = %+v, want w=1 minW=1", narrow)
	}
}

func TestDeserialize_InvalidIDs(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"empty id", `{"components":[{"id":"","type":"text"}]}`},
		{"duplicate id", `{"components":[{"id":"a","type":"text"},{"id":"a","type":"hero"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Unmarshal([]byte(tt.json))
			if err != nil {
				t.Fatal(err)
			}
			if _, _, err := Deserialize(p); !errors.Is(err, errors.ErrCodeInvalidPage) {
				t.Errorf("error = %v, want INVALID_PAGE", err)
			}
		})
	}
}

func TestDeserialize_Empty(t *testing.T) {
	for _, p := range []*Page{nil, {}} {
		tree, layout, err := Deserialize(p)
		if err != nil {
			t.Fatal(err)
		}
		if tree.Len() != 0 || layout.Len() != 0 {
			t.Errorf("non-empty result for %v", p)
		}
	}
}

func TestUnmarshal_Malformed(t *testing.T) {
	for _, in := range []string{`{`, `{"components":{}}`, `[]`} {
		if _, err := Unmarshal([]byte(in)); !errors.Is(err, errors.ErrCodeInvalidPage) {
			t.Errorf("Unmarshal(%q) error = %v, want INVALID_PAGE", in, err)
		}
	}
	if _, err := Read(strings.NewReader("not json")); !errors.Is(err, errors.ErrCodeInvalidPage) {
		t.Errorf("Read error = %v, want INVALID_PAGE", err)
	}
}

func TestVisualOrder(t *testing.T) {
	p, _ := Unmarshal([]byte(`{"components":[
		{"id":"low","layout":{"order":6}},
		{"id":"top","layout":{"order":0}},
		{"id":"none"},
		{"id":"mid","layout":{"order":3}}
	]}`))

	if got, want := ids(p.VisualOrder()), []string{"top", "none", "mid", "low"}; !reflect.DeepEqual(got, want) {
		t.Errorf("VisualOrder = %v, want %v", got, want)
	}
	if got, want := ids(p.Components), []string{"low", "top", "none", "mid"}; !reflect.DeepEqual(got, want) {
		t.Errorf("VisualOrder reordered the page: %v", got)
	}
}

func TestWriteFileReadFile(t *testing.T) {
	e := buildEditor(t)
	path := filepath.Join(t.TempDir(), "home.json")

	if err := WriteFile(path, Serialize(e.Tree(), e.Layout())); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	p, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if p.Len() != e.Len() {
		t.Errorf("Len = %d, want %d", p.Len(), e.Len())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); !os.IsNotExist(err) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestWriteRead(t *testing.T) {
	e := buildEditor(t)
	var buf bytes.Buffer
	if err := Write(&buf, Serialize(e.Tree(), e.Layout())); err != nil {
		t.Fatal(err)
	}
	p, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids(p.Components), e.Tree().IDs()) {
		t.Errorf("ids = %v", ids(p.Components))
	}
}

func TestLint(t *testing.T) {
	p, _ := Unmarshal([]byte(`{"components":[
		{"id":"a","type":"hero","layout":{"x":0,"y":0,"w":12,"h":2,
			"breakpoint":{"lg":{"x":0,"y":0,"w":12,"h":2},"md":{"x":0,"y":0,"w":8,"h":2},
			              "sm":{"x":0,"y":0,"w":6,"h":2},"xs":{"x":0,"y":0,"w":4,"h":2}}}},
		{"id":"a","type":"hero"},
		{"id":"","type":"carousel","layout":{"x":10,"y":0,"w":4,"h":1,
			"breakpoint":{"lg":{"x":10,"y":0,"w":4,"h":1},"md":{"x":0,"y":0,"w":8,"h":1},
			              "sm":{"x":0,"y":0,"w":6,"h":1},"xs":{"x":0,"y":0,"w":4,"h":1}}}}
	]}`))

	issues := Lint(p, registry.Builtin())
	if !HasErrors(issues) {
		t.Fatal("expected errors")
	}

	var got []string
	for _, is := range issues {
		got = append(got, is.String())
	}
	want := []string{
		"error #1 a: duplicate id",
		"info #1 a: no layout, using defaults",
		"error #2: missing id",
		`warning #2: unknown component type "carousel"`,
		"warning #2 [lg]: rect {x:10 y:0 w:4 h:1} clamped to {x:8 y:0 w:4 h:1}",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("issues:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}

	e := buildEditor(t)
	if clean := Lint(Serialize(e.Tree(), e.Layout()), registry.Builtin()); len(clean) != 0 {
		t.Errorf("a saved editor page should lint clean, got %v", clean)
	}
}

func ids(cs []Component) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}
