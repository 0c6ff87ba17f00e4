package grid_test

import (
	"fmt"

	"github.com/matzehuels/gridkit/pkg/grid"
)

func ExampleResolve() {
	for _, w := range []int{1440, 1024, 800, 375} {
		bp := grid.Resolve(w)
		fmt.Printf("%dpx -> %s (%d columns)\n", w, bp, bp.Columns())
	}
	// Output:
	// 1440px -> lg (12 columns)
	// 1024px -> md (8 columns)
	// 800px -> sm (6 columns)
	// 375px -> xs (4 columns)
}

func ExampleUniform() {
	set := grid.Uniform(grid.Rect{X: 0, Y: 2, W: 6, H: 3, MinW: 2, MinH: 1})
	for _, bp := range grid.Breakpoints {
		fmt.Println(bp, set.Get(bp))
	}
	// Output:
	// lg {x:0 y:2 w:6 h:3}
	// md {x:0 y:2 w:6 h:3}
	// sm {x:0 y:2 w:6 h:3}
	// xs {x:0 y:2 w:4 h:3}
}

func ExampleLayout_MaxBottom() {
	l := grid.NewLayout()
	l.Put("hero", grid.Uniform(grid.Rect{W: 12, H: 2, MinW: 2, MinH: 1}))
	l.Put("grid", grid.Uniform(grid.Rect{Y: 2, W: 6, H: 3, MinW: 2, MinH: 1}))

	fmt.Println(l.MaxBottom())
	// Output: 5
}
