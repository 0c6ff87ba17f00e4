// Package config loads the gridkit TOML configuration.
//
// A configuration file looks like:
//
//	[server]
//	addr = ":8080"
//	session_ttl = "2h"
//
//	[store]
//	backend = "sqlite"
//	sqlite_path = "/var/lib/gridkit/pages.db"
//
//	[editor]
//	drag_threshold = 20.0
//	row_height = 60.0
//	container_width = 1200.0
//
//	[registry]
//	path = "palette.toml"
//
//	[log]
//	level = "debug"
//
// Every key is optional; missing keys keep their defaults.
package config

import (
	"os"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridkit/pkg/editor"
	"github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/registry"
	"github.com/matzehuels/gridkit/pkg/session"
	"github.com/matzehuels/gridkit/pkg/store"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "GRIDKIT_CONFIG"

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "gridkit.toml"

// Config is the complete gridkit configuration.
type Config struct {
	Server   Server        `toml:"server"`
	Store    store.Config  `toml:"store"`
	Editor   editor.Config `toml:"editor"`
	Registry Registry      `toml:"registry"`
	Log      Log           `toml:"log"`
}

// Server configures the HTTP API.
type Server struct {
	Addr            string        `toml:"addr"`
	SessionTTL      time.Duration `toml:"session_ttl"`
	CleanupInterval time.Duration `toml:"cleanup_interval"`
}

// Registry selects the component palette. An empty path uses the
// built-in storefront palette.
type Registry struct {
	Path string `toml:"path"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			SessionTTL:      session.DefaultTTL,
			CleanupInterval: session.DefaultCleanupInterval,
		},
		Store:  store.DefaultConfig(),
		Editor: editor.DefaultConfig(),
		Log:    Log{Level: "info"},
	}
}

// Load reads the configuration. The file is path if set, else the file
// named by GRIDKIT_CONFIG, else gridkit.toml in the working directory.
// An explicitly named file must exist; a missing gridkit.toml yields the
// defaults.
func Load(path string) (Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		path, explicit = DefaultFile, false
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be fixed up by defaults.
func (c Config) Validate() error {
	if !slices.Contains(store.Backends, c.Store.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "store.backend %q: want one of %v", c.Store.Backend, store.Backends)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	if c.Server.SessionTTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.session_ttl must not be negative")
	}
	if c.Editor.DragThreshold < 0 || c.Editor.RowHeight < 0 || c.Editor.ContainerWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "editor geometry must not be negative")
	}
	return nil
}

// LogLevel returns the configured log level, or info if it is invalid.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// LoadRegistry returns the configured palette.
func (c Config) LoadRegistry() (*registry.Static, error) {
	if c.Registry.Path == "" {
		return registry.Builtin(), nil
	}
	return registry.LoadFile(c.Registry.Path)
}
