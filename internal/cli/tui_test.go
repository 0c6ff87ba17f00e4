package cli

import (
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridkit/pkg/component"
	"github.com/matzehuels/gridkit/pkg/editor"
	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/registry"
)

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func press(t *testing.T, m EditorModel, keys ...tea.KeyMsg) EditorModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(EditorModel)
	}
	return m
}

func newTestModel(t *testing.T, save func() error) (EditorModel, *editor.Editor, string) {
	t.Helper()
	palette := registry.Builtin()
	ed := editor.New(palette, editor.WithLogger(log.New(io.Discard)))
	id, err := ed.Add("text")
	if err != nil {
		t.Fatal(err)
	}
	ed.Select("")
	return NewEditorModel(ed, palette.Types(), "home", save), ed, id
}

func TestEditorModel_MoveAndResize(t *testing.T) {
	m, ed, id := newTestModel(t, nil)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if ed.Selected() != id {
		t.Fatalf("tab selected %q, want %q", ed.Selected(), id)
	}

	m = press(t, m, keyRune('l'), keyRune('l'), keyRune('j'))
	if r, _ := ed.Rect(id); r.X != 2 || r.Y != 1 {
		t.Errorf("after nudges rect = %s, want x=2 y=1", r)
	}
	if !m.Dirty() {
		t.Error("move did not mark the page dirty")
	}
	if _, dragging := ed.Dragging(); dragging {
		t.Error("gesture left open after nudge")
	}

	m = press(t, m, keyRune('L'), keyRune('J'))
	if r, _ := ed.Rect(id); r.W != 7 || r.H != 3 {
		t.Errorf("after resize rect = %s, want w=7 h=3", r)
	}

	// Nudging against the left edge does nothing.
	m = press(t, m, keyRune('h'), keyRune('h'), keyRune('h'))
	if r, _ := ed.Rect(id); r.X != 0 {
		t.Errorf("x = %d, want 0", r.X)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if ed.Selected() != "" {
		t.Error("esc did not clear the selection")
	}
	m = press(t, m, keyRune('l'))
	if !strings.Contains(m.View(), "nothing selected") {
		t.Error("nudge without selection not reported")
	}
}

func TestEditorModel_Breakpoints(t *testing.T) {
	m, ed, _ := newTestModel(t, nil)
	for key, want := range map[rune]grid.Breakpoint{'1': grid.LG, '2': grid.MD, '3': grid.SM, '4': grid.XS} {
		m = press(t, m, keyRune(key))
		if got := ed.ActiveBreakpoint(); got != want {
			t.Errorf("key %c: breakpoint %s, want %s", key, got, want)
		}
	}
}

func TestEditorModel_PaletteAndDelete(t *testing.T) {
	m, ed, first := newTestModel(t, nil)

	m = press(t, m, keyRune('a'))
	if !strings.Contains(m.View(), "Add component") {
		t.Fatal("palette not shown")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if ed.Len() != 2 {
		t.Fatalf("Len = %d, want 2", ed.Len())
	}
	added := ed.Selected()
	in, _ := ed.Tree().Get(added)
	if in.Type != registry.Builtin().Types()[1] {
		t.Errorf("added %q, want the second palette entry", in.Type)
	}
	if r, _ := ed.Rect(added); r.Y != 2 {
		t.Errorf("added at y=%d, want 2", r.Y)
	}

	m = press(t, m, keyRune('d'))
	if ed.Len() != 1 || !ed.Tree().Has(first) {
		t.Errorf("delete removed the wrong component")
	}
	if !m.Dirty() {
		t.Error("delete did not mark the page dirty")
	}
}

func TestEditorModel_Save(t *testing.T) {
	saves := 0
	var saveErr error
	m, _, _ := newTestModel(t, func() error {
		saves++
		return saveErr
	})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, keyRune('j'))
	m = press(t, m, keyRune('s'))
	if saves != 1 || m.Dirty() {
		t.Errorf("saves = %d, dirty = %v", saves, m.Dirty())
	}

	saveErr = errors.New("disk full")
	m = press(t, m, keyRune('j'), keyRune('s'))
	if !m.Dirty() || !strings.Contains(m.View(), "disk full") {
		t.Error("failed save not reported")
	}
}

func TestEditorModel_Quit(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	_, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestRenderGrid(t *testing.T) {
	v := editor.View{
		Breakpoint: grid.XS,
		Columns:    4,
		Selected:   "b",
		Components: []editor.Placed{
			{Instance: component.Instance{ID: "a", Type: "hero"}, Rect: grid.Rect{X: 0, Y: 0, W: 4, H: 2}},
			{Instance: component.Instance{ID: "b"}, Rect: grid.Rect{X: 1, Y: 2, W: 2, H: 1}, Selected: true},
		},
	}
	out := renderGrid(v, 40)
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "┌ hero ") {
		t.Errorf("hero label missing: %q", lines[0])
	}
	if !strings.Contains(lines[4], "┌ b ") {
		t.Errorf("untyped component not labelled by id: %q", lines[4])
	}
	if !strings.Contains(lines[4], "·") {
		t.Errorf("empty cells have no guides: %q", lines[4])
	}
}
