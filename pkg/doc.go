// Package pkg provides the core libraries of gridkit, the layout engine of a
// storefront page builder.
//
// # Overview
//
// A page is an ordered list of components (hero banners, product grids, rich
// text) placed on a responsive grid. Every component carries one rect per
// breakpoint, so the same page can be arranged independently on desktop,
// tablet and phone. The pkg directory is organized into three areas:
//
//  1. Layout - grid geometry, the component tree and the editor
//  2. Persistence - the page format, caches and stores
//  3. Infrastructure - sessions, configuration, errors and observability
//
// # Architecture
//
// The typical data flow through gridkit:
//
//	Stored page (JSON document)
//	         ↓
//	    [page] package (deserialize, fill missing layout data)
//	         ↓
//	    [editor] package (add, delete, drag, resize)
//	         ↓
//	    [page] package (serialize in tree order)
//	         ↓
//	    [store] package (file, redis, mongo or sqlite)
//
// # Quick Start
//
// Load a page, drag a component one column to the right and save it:
//
//	p, _ := page.ReadFile("home.json")
//	tree, layout, _ := page.Deserialize(p)
//
//	ed := editor.New(registry.Builtin())
//	ed.Load(tree, layout)
//	ed.SetViewport(1440)
//
//	ed.PointerDown("hero-1", editor.Point{X: 10, Y: 10})
//	ed.PointerMove(editor.Point{X: 110, Y: 10})
//	ed.PointerUp()
//
//	_ = page.WriteFile("home.json", page.Serialize(ed.Tree(), ed.Layout()))
//
// # Main Packages
//
// ## Layout
//
// [grid] - Breakpoints, column counts and rects. [grid.Resolve] maps a
// viewport width to its breakpoint; [grid.Layout] holds one rect per
// breakpoint for every component.
//
// [component] - Component instances and the ordered component tree. Props
// and children are opaque to the layout engine.
//
// [registry] - The component palette: default props and default size per
// component type. [registry.Builtin] is the storefront palette.
//
// [editor] - The mutable state of one page in the builder: selection,
// viewport, pointer gestures and resizing.
//
// ## Persistence
//
// [page] - The persisted page format, with per-field fallbacks on load and
// a linter that reports what loading would repair.
//
// [cache] - Byte caches (file, memory, redis, null) with scoped keys.
//
// [store] - Page stores over a cache, MongoDB or SQLite.
//
// ## Infrastructure
//
// [session] - Editing sessions with inactivity expiry, used by the HTTP API.
//
// [config] - TOML configuration.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hooks for editor, store and cache events.
//
// # Testing
//
//	go test ./...                 # All tests
//	go test ./pkg/editor/...      # Specific package
//	go test -run Example ./pkg/...  # Examples only
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/grid
// [component]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/component
// [registry]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/registry
// [editor]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/editor
// [page]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/page
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/store
// [session]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/session
// [config]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/observability
// [grid.Resolve]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/grid#Resolve
// [grid.Layout]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/grid#Layout
// [registry.Builtin]: https://pkg.go.dev/github.com/matzehuels/gridkit/pkg/registry#Builtin
package pkg
