// Package cli implements the gridkit command-line interface.
//
// # Commands
//
//   - serve: run the HTTP editing API
//   - edit: edit a page in the terminal
//   - inspect: print a page's layout on one breakpoint
//   - validate: report what loading a page would reject or repair
//   - add: append components to a page
//   - pages: list, show, import, export and delete stored pages
//   - resolve: print the breakpoint for a viewport width
//
// Commands that take a PAGE accept either a path to a JSON file (anything
// ending in .json or containing a path separator) or the id of a page in
// the configured store.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging; otherwise
// the level comes from the [log] section of the config file.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkit/pkg/buildinfo"
	"github.com/matzehuels/gridkit/pkg/config"
	"github.com/matzehuels/gridkit/pkg/editor"
	"github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/observability"
	"github.com/matzehuels/gridkit/pkg/page"
	"github.com/matzehuels/gridkit/pkg/registry"
	"github.com/matzehuels/gridkit/pkg/store"
)

const appName = "gridkit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	logOut     io.Writer
	configPath string
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		logOut: w,
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "gridkit lays out storefront pages on a responsive grid",
		Long:          `gridkit is the layout engine of a storefront page builder. It places components on per-breakpoint grids, edits them with drag and resize gestures, and stores the resulting pages.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "config file (default $"+config.EnvVar+" or ./"+config.DefaultFile+")")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.pagesCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and registers logging hooks.
func (c *CLI) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level := cfg.LogLevel()
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)

	hooks := &logHooks{logger: c.Logger}
	observability.SetEditorHooks(hooks)
	observability.SetStoreHooks(hooks)
	return nil
}

// =============================================================================
// Shared helpers
// =============================================================================

func (c *CLI) palette() (*registry.Static, error) {
	return c.cfg.LoadRegistry()
}

func (c *CLI) newEditor(reg registry.Registry) *editor.Editor {
	return editor.New(reg, editor.WithConfig(c.cfg.Editor), editor.WithLogger(c.Logger))
}

// openStore connects the configured backend. Remote backends show a
// spinner while connecting.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	switch c.cfg.Store.Backend {
	case store.BackendRedis, store.BackendMongo:
		sp := newSpinnerWithContext(ctx, "Connecting to "+c.cfg.Store.Backend)
		sp.Start()
		defer sp.Stop()
	}
	st, err := store.Open(ctx, c.cfg.Store)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("store opened", "backend", c.cfg.Store.Backend)
	return st, nil
}

// pageRef names a page either by file path or by store id.
type pageRef struct {
	path string
	id   string
}

func parsePageRef(arg string) pageRef {
	if strings.HasSuffix(arg, ".json") || strings.ContainsRune(arg, filepath.Separator) || strings.ContainsRune(arg, '/') {
		return pageRef{path: arg}
	}
	return pageRef{id: arg}
}

func (r pageRef) String() string {
	if r.path != "" {
		return r.path
	}
	return "store:" + r.id
}

func (r pageRef) isFile() bool { return r.path != "" }

// loadPage reads the page named by ref. With allowMissing, a page that
// does not exist yet loads as an empty page.
func (c *CLI) loadPage(ctx context.Context, ref pageRef, allowMissing bool) (*page.Page, error) {
	if ref.isFile() {
		p, err := page.ReadFile(ref.path)
		if allowMissing && os.IsNotExist(err) {
			return &page.Page{Components: []page.Component{}}, nil
		}
		return p, err
	}

	st, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	p, err := st.Load(ctx, ref.id)
	if allowMissing && errors.Is(err, errors.ErrCodeNotFound) {
		return &page.Page{Components: []page.Component{}}, nil
	}
	return p, err
}

// savePage writes p to the page named by ref.
func (c *CLI) savePage(ctx context.Context, ref pageRef, p *page.Page) error {
	prog := newProgress(c.Logger)
	if ref.isFile() {
		if err := page.WriteFile(ref.path, p); err != nil {
			return err
		}
		prog.done("Saved " + ref.String())
		return nil
	}
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Save(ctx, ref.id, p); err != nil {
		return err
	}
	prog.done("Saved " + ref.String())
	return nil
}
