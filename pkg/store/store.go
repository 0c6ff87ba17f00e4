// Package store persists pages for the page builder.
//
// The layout engine itself performs no I/O; a [Store] is the persistence
// collaborator that saves the serialized page after editing and loads it
// when an editing session opens. Backends:
//
//   - [KVStore] over any [cache.Cache]: file, redis, memory or null
//   - [MongoStore]: one document per page in a MongoDB collection
//   - [SQLiteStore]: one row per page in an embedded SQLite database
//
// [Open] selects a backend from [Config]. Every backend reports loads and
// saves to [observability.Store].
package store

import (
	"context"
	"time"

	"github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/page"
)

// Store loads and saves persisted pages by id.
type Store interface {
	// Load returns the page stored under pageID, or a NOT_FOUND error.
	Load(ctx context.Context, pageID string) (*page.Page, error)

	// Save stores p under pageID, replacing any previous version.
	Save(ctx context.Context, pageID string, p *page.Page) error

	// Delete removes pageID. Deleting a missing page is not an error.
	Delete(ctx context.Context, pageID string) error

	// List returns a summary of every stored page, sorted by id.
	List(ctx context.Context) ([]Summary, error)

	// Close releases the backend's resources.
	Close() error
}

// Summary describes one stored page.
type Summary struct {
	ID         string    `json:"id" bson:"_id"`
	Components int       `json:"components" bson:"component_count"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updated_at"`
}

// Backend names accepted by [Open].
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendNull   = "null"
)

// Backends lists every supported backend name.
var Backends = []string{BackendFile, BackendRedis, BackendMongo, BackendSQLite, BackendMemory, BackendNull}

func notFound(pageID string) error {
	return errors.New(errors.ErrCodeNotFound, "page %q not found", pageID)
}

func summarize(pageID string, p *page.Page, at time.Time) Summary {
	return Summary{ID: pageID, Components: p.Len(), UpdatedAt: at.UTC().Truncate(time.Millisecond)}
}
