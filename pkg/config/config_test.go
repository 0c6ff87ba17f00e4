package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/store"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "gridkit.toml", `
[server]
addr = "127.0.0.1:9000"
session_ttl = "30m"

[store]
backend = "sqlite"
sqlite_path = "/tmp/pages.db"

[editor]
drag_threshold = 8.0

[log]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.SessionTTL != 30*time.Minute {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Store.Backend != store.BackendSQLite || cfg.Store.SQLitePath != "/tmp/pages.db" {
		t.Errorf("store = %+v", cfg.Store)
	}
	// Unset keys keep their defaults.
	if cfg.Store.RedisAddr != "localhost:6379" {
		t.Errorf("redis_addr = %q", cfg.Store.RedisAddr)
	}
	if cfg.Editor.DragThreshold != 8 || cfg.Editor.RowHeight != 60 {
		t.Errorf("editor = %+v", cfg.Editor)
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel = %v", cfg.LogLevel())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[server\naddr = 1"},
		{"unknown key", "[server]\nport = 8080"},
		{"bad backend", "[store]\nbackend = \"etcd\""},
		{"bad level", "[log]\nlevel = \"loud\""},
		{"negative ttl", "[server]\nsession_ttl = \"-1h\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "c.toml", tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("explicit missing file: %v", err)
	}

	t.Chdir(t.TempDir())
	t.Setenv(EnvVar, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("implicit missing file: %v", err)
	}
	if cfg.Server.Addr != Default().Server.Addr {
		t.Errorf("defaults not applied: %+v", cfg.Server)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvVar, writeFile(t, "env.toml", "[store]\nbackend = \"memory\""))
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Backend != store.BackendMemory {
		t.Errorf("backend = %q", cfg.Store.Backend)
	}
}

func TestLoadRegistry(t *testing.T) {
	reg, err := Default().LoadRegistry()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := reg.Lookup("hero"); !ok {
		t.Error("built-in palette missing hero")
	}

	cfg := Default()
	cfg.Registry.Path = writeFile(t, "palette.toml", `
[[component]]
type = "banner"
[component.layout]
w = 12
h = 3
`)
	reg, err = cfg.LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if types := reg.Types(); len(types) != 1 || types[0] != "banner" {
		t.Errorf("Types = %v", types)
	}
}
