package store

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/gridkit/pkg/cache"
	"github.com/matzehuels/gridkit/pkg/errors"
)

// Config selects and configures a store backend.
type Config struct {
	Backend string `toml:"backend"`

	// file
	Dir string `toml:"dir"`

	// redis
	RedisAddr     string `toml:"redis_addr"`
	RedisUsername string `toml:"redis_username"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`

	// mongo
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`

	// sqlite
	SQLitePath string `toml:"sqlite_path"`
}

// DefaultConfig stores pages as files under the user data directory.
func DefaultConfig() Config {
	return Config{
		Backend:       BackendFile,
		Dir:           defaultDir(),
		RedisAddr:     "localhost:6379",
		RedisPrefix:   "gridkit:",
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "gridkit",
		SQLitePath:    "gridkit.db",
	}
}

func defaultDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "gridkit", "pages")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "gridkit", "pages")
	}
	return filepath.Join(os.TempDir(), "gridkit", "pages")
}

// Open connects the backend named by cfg.Backend. The returned store
// reports to the observability hooks.
func Open(ctx context.Context, cfg Config) (Store, error) {
	s, err := open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return Instrument(cfg.Backend, s), nil
}

func open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendFile:
		if cfg.Dir == "" {
			cfg.Dir = defaultDir()
		}
		c, err := cache.NewFileCache(cfg.Dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "open file store")
		}
		return NewKVStore(c, nil), nil

	case BackendRedis:
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:        cfg.RedisAddr,
			Username:    cfg.RedisUsername,
			Password:    cfg.RedisPassword,
			DB:          cfg.RedisDB,
			DialTimeout: 5 * time.Second,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "open redis store")
		}
		return NewKVStore(c, cache.NewScopedKeyer(nil, cfg.RedisPrefix)), nil

	case BackendMongo:
		return NewMongoStore(ctx, MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})

	case BackendSQLite:
		return NewSQLiteStore(cfg.SQLitePath)

	case BackendMemory:
		return NewKVStore(cache.NewMemoryCache(), nil), nil

	case BackendNull:
		return NewKVStore(cache.NewNullCache(), nil), nil

	default:
		return nil, errors.New(errors.ErrCodeUnsupportedStore, "unsupported store backend %q (want one of %v)", cfg.Backend, Backends)
	}
}
