package grid

import "fmt"

// Breakpoint names a viewport-width tier with its own column count.
type Breakpoint string

// Supported breakpoints, widest first.
const (
	LG Breakpoint = "lg"
	MD Breakpoint = "md"
	SM Breakpoint = "sm"
	XS Breakpoint = "xs"
)

// Breakpoints lists every breakpoint in canonical order (lg, md, sm, xs).
// Serialized output and RectSet indexing follow this order.
var Breakpoints = [...]Breakpoint{LG, MD, SM, XS}

// Viewport thresholds in pixels. A viewport at least this wide resolves to
// the corresponding breakpoint.
const (
	MinWidthLG = 1200
	MinWidthMD = 996
	MinWidthSM = 768
)

var columns = map[Breakpoint]int{
	LG: 12,
	MD: 8,
	SM: 6,
	XS: 4,
}

// Resolve maps a viewport width in pixels to the active breakpoint.
func Resolve(viewportWidthPx int) Breakpoint {
	switch {
	case viewportWidthPx >= MinWidthLG:
		return LG
	case viewportWidthPx >= MinWidthMD:
		return MD
	case viewportWidthPx >= MinWidthSM:
		return SM
	default:
		return XS
	}
}

// Columns returns the fixed column count of b, or 0 for an unknown breakpoint.
func (b Breakpoint) Columns() int {
	return columns[b]
}

// Valid reports whether b is one of the four supported breakpoints.
func (b Breakpoint) Valid() bool {
	_, ok := columns[b]
	return ok
}

// MinWidth returns the smallest viewport width that resolves to b.
func (b Breakpoint) MinWidth() int {
	switch b {
	case LG:
		return MinWidthLG
	case MD:
		return MinWidthMD
	case SM:
		return MinWidthSM
	default:
		return 0
	}
}

func (b Breakpoint) String() string { return string(b) }

// index returns the position of b in Breakpoints.
func (b Breakpoint) index() int {
	for i, bp := range Breakpoints {
		if bp == b {
			return i
		}
	}
	return -1
}

// ParseBreakpoint converts a name such as "md" to a Breakpoint.
func ParseBreakpoint(s string) (Breakpoint, error) {
	b := Breakpoint(s)
	if !b.Valid() {
		return "", fmt.Errorf("unknown breakpoint %q (want lg, md, sm or xs)", s)
	}
	return b, nil
}
