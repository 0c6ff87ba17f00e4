package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gridkit/pkg/editor"
)

// Lines per grid row in the text rendering.
const linesPerRow = 2

var (
	styleBox      = lipgloss.NewStyle().Foreground(colorWhite)
	styleSelected = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleDragging = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleGuide    = lipgloss.NewStyle().Foreground(colorDim)
)

// canvas is a character grid where every cell remembers which component
// drew it, so each run of cells can be styled as a whole.
type canvas struct {
	cells [][]rune
	owner [][]int
}

func newCanvas(w, h int) *canvas {
	c := &canvas{cells: make([][]rune, h), owner: make([][]int, h)}
	for y := range h {
		c.cells[y] = []rune(strings.Repeat(" ", w))
		c.owner[y] = make([]int, w)
		for x := range w {
			c.owner[y][x] = -1
		}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, owner int) {
	if y < 0 || y >= len(c.cells) || x < 0 || x >= len(c.cells[y]) {
		return
	}
	c.cells[y][x] = r
	c.owner[y][x] = owner
}

// box draws a rectangle with label embedded in its top border.
func (c *canvas) box(x0, y0, x1, y1 int, label string, owner int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r := ' '
			switch {
			case y == y0 && x == x0:
				r = '┌'
			case y == y0 && x == x1:
				r = '┐'
			case y == y1 && x == x0:
				r = '└'
			case y == y1 && x == x1:
				r = '┘'
			case y == y0 || y == y1:
				r = '─'
			case x == x0 || x == x1:
				r = '│'
			}
			c.set(x, y, r, owner)
		}
	}
	room := x1 - x0 - 1
	if room <= 0 {
		return
	}
	label = " " + label + " "
	runes := []rune(label)
	if len(runes) > room {
		runes = runes[:room]
	}
	for i, r := range runes {
		c.set(x0+1+i, y0, r, owner)
	}
}

// renderGrid draws v as boxes, fitting the active breakpoint's columns
// into width characters.
func renderGrid(v editor.View, width int) string {
	cols := max(v.Columns, 1)
	cellW := max(3, width/cols)
	w := cols * cellW
	h := max(1, v.Rows()*linesPerRow)

	c := newCanvas(w, h)
	for y := 0; y < h; y += linesPerRow {
		for x := 0; x < w; x += cellW {
			c.set(x, y, '·', -1)
		}
	}

	styles := make([]lipgloss.Style, len(v.Components))
	for i, p := range v.Components {
		r := p.Rect
		label := p.Instance.Type
		if label == "" {
			label = p.Instance.ID
		}
		c.box(r.X*cellW, r.Y*linesPerRow, r.Right()*cellW-1, r.Bottom()*linesPerRow-1, label, i)

		switch {
		case p.Dragging:
			styles[i] = styleDragging
		case p.Selected:
			styles[i] = styleSelected
		default:
			styles[i] = styleBox
		}
	}

	var b strings.Builder
	for y := range h {
		row, owners := c.cells[y], c.owner[y]
		for start := 0; start < len(row); {
			end := start
			for end < len(row) && owners[end] == owners[start] {
				end++
			}
			style := styleGuide
			if o := owners[start]; o >= 0 {
				style = styles[o]
			}
			b.WriteString(style.Render(string(row[start:end])))
			start = end
		}
		if y < h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
