package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gridkit/pkg/editor"
	"github.com/matzehuels/gridkit/pkg/grid"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const editorHelp = "tab select · ←↓↑→/hjkl move · HJKL resize · a add · d delete · 1-4 breakpoint · s save · q quit"

// EditorModel is the bubbletea model of the terminal page editor. Moves
// are played through the editor's pointer gesture, one cell per key press,
// so the terminal edits a page exactly like the canvas does.
type EditorModel struct {
	ed    *editor.Editor
	types []string
	title string
	save  func() error

	width  int
	height int

	palette       bool
	paletteCursor int

	dirty  bool
	status string
	failed bool
}

// NewEditorModel creates the editor model. save persists the current
// state; types lists the palette offered by the add key.
func NewEditorModel(ed *editor.Editor, types []string, title string, save func() error) EditorModel {
	return EditorModel{ed: ed, types: types, title: title, save: save, width: 96}
}

// Dirty reports whether there are unsaved changes.
func (m EditorModel) Dirty() bool { return m.dirty }

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if m.palette {
			return m.updatePalette(msg)
		}
		return m.updateCanvas(msg)
	}
	return m, nil
}

func (m EditorModel) updateCanvas(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.failed = "", false
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.cycle(1)
	case "shift+tab":
		m.cycle(-1)
	case "esc":
		m.ed.Select("")
	case "left", "h":
		m.nudge(-1, 0)
	case "right", "l":
		m.nudge(1, 0)
	case "up", "k":
		m.nudge(0, -1)
	case "down", "j":
		m.nudge(0, 1)
	case "H":
		m.resize(-1, 0)
	case "L":
		m.resize(1, 0)
	case "K":
		m.resize(0, -1)
	case "J":
		m.resize(0, 1)
	case "a":
		if len(m.types) > 0 {
			m.palette = true
		}
	case "d", "delete", "backspace":
		if id := m.ed.Selected(); id != "" && m.ed.Delete(id) {
			m.dirty = true
			m.status = "deleted " + id
		}
	case "1", "2", "3", "4":
		bp := grid.Breakpoints[msg.String()[0]-'1']
		m.ed.SetViewport(max(bp.MinWidth(), 320))
	case "s", "ctrl+s":
		m.doSave()
	}
	return m, nil
}

func (m EditorModel) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.palette = false
	case "up", "k":
		if m.paletteCursor > 0 {
			m.paletteCursor--
		}
	case "down", "j":
		if m.paletteCursor < len(m.types)-1 {
			m.paletteCursor++
		}
	case "enter":
		m.palette = false
		typ := m.types[m.paletteCursor]
		id, err := m.ed.Add(typ)
		if err != nil {
			m.status, m.failed = err.Error(), true
			return m, nil
		}
		m.dirty = true
		m.status = fmt.Sprintf("added %s as %s", typ, id)
	}
	return m, nil
}

// cycle moves the selection through the components in tree order.
func (m *EditorModel) cycle(step int) {
	ids := m.ed.Tree().IDs()
	if len(ids) == 0 {
		return
	}
	i := slices.Index(ids, m.ed.Selected())
	switch {
	case i < 0 && step < 0:
		i = len(ids) - 1
	case i < 0:
		i = 0
	default:
		i = (i + step + len(ids)) % len(ids)
	}
	m.ed.Select(ids[i])
}

// nudge drags the selection by whole cells on the active breakpoint.
func (m *EditorModel) nudge(dx, dy int) {
	id := m.ed.Selected()
	if id == "" {
		m.status = "nothing selected"
		return
	}
	cfg := m.ed.Config()
	cellW := cfg.ContainerWidth / float64(m.ed.ActiveBreakpoint().Columns())

	m.ed.PointerDown(id, editor.Point{})
	moved := m.ed.PointerMove(editor.Point{X: float64(dx) * cellW, Y: float64(dy) * cfg.RowHeight})
	m.ed.PointerUp()
	if moved {
		m.dirty = true
	}
}

func (m *EditorModel) resize(dw, dh int) {
	id := m.ed.Selected()
	if id == "" {
		m.status = "nothing selected"
		return
	}
	before, _ := m.ed.Rect(id)
	m.ed.Resize(id, dw, dh)
	if after, _ := m.ed.Rect(id); after != before {
		m.dirty = true
	}
}

func (m *EditorModel) doSave() {
	if m.save == nil {
		return
	}
	if err := m.save(); err != nil {
		m.status, m.failed = err.Error(), true
		return
	}
	m.dirty = false
	m.status = "saved"
}

func (m EditorModel) View() string {
	var b strings.Builder

	title := "gridkit · " + m.title
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")

	v := m.ed.View()
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%s · %d columns · viewport %dpx · %d components",
		v.Breakpoint, v.Columns, v.Viewport, len(v.Components))))
	b.WriteString("\n\n")

	if m.palette {
		b.WriteString(m.paletteView())
	} else {
		b.WriteString(renderGrid(v, max(m.width-2, 24)))
	}
	b.WriteString("\n\n")

	if id := v.Selected; id != "" {
		r, _ := m.ed.Rect(id)
		in, _ := m.ed.Tree().Get(id)
		b.WriteString(StyleHighlight.Render(in.Type) + " " + listDimStyle.Render(id) + " " + StyleValue.Render(r.String()))
		b.WriteString("\n")
	}
	if m.status != "" {
		style := StyleSuccess
		if m.failed {
			style = StyleError
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(editorHelp))
	return b.String()
}

func (m EditorModel) paletteView() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Add component"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ add  esc back"))
	b.WriteString("\n\n")
	for i, typ := range m.types {
		if i == m.paletteCursor {
			b.WriteString(listSelectedStyle.Render("▸ " + typ))
		} else {
			b.WriteString(listNormalStyle.Render("  " + typ))
		}
		b.WriteString("\n")
	}
	return b.String()
}
