package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/page"
)

// SQLiteStore keeps pages in an embedded SQLite database, one row per page
// with the page JSON in a text column.
type SQLiteStore struct {
	conn *sql.DB
	now  func() time.Time
}

// NewSQLiteStore opens (or creates) the database at path and applies
// migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "open sqlite %s", path)
	}
	// One writer at a time; a single connection avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	s := &SQLiteStore{conn: conn, now: time.Now}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, errors.Wrap(errors.ErrCodeStore, err, "migrate %s", path)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS pages (
			id TEXT PRIMARY KEY,
			document TEXT NOT NULL,
			component_count INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pages_updated ON pages(updated_at)`,
	}
	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a page row.
func (s *SQLiteStore) Load(ctx context.Context, pageID string) (*page.Page, error) {
	if err := errors.ValidateID(pageID); err != nil {
		return nil, err
	}
	var doc string
	err := s.conn.QueryRowContext(ctx, `SELECT document FROM pages WHERE id = ?`, pageID).Scan(&doc)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, notFound(pageID)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load page %s", pageID)
	}
	return page.Unmarshal([]byte(doc))
}

// Save inserts or replaces a page row.
func (s *SQLiteStore) Save(ctx context.Context, pageID string, p *page.Page) error {
	if err := errors.ValidateID(pageID); err != nil {
		return err
	}
	data, err := page.Marshal(p)
	if err != nil {
		return err
	}
	sum := summarize(pageID, p, s.now())
	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO pages (id, document, component_count, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET document = excluded.document,
		   component_count = excluded.component_count, updated_at = excluded.updated_at`,
		pageID, string(data), sum.Components, sum.UpdatedAt, sum.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save page %s", pageID)
	}
	return nil
}

// Delete removes a page row.
func (s *SQLiteStore) Delete(ctx context.Context, pageID string) error {
	if err := errors.ValidateID(pageID); err != nil {
		return err
	}
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, pageID); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete page %s", pageID)
	}
	return nil
}

// List returns every page summary ordered by id.
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, component_count, updated_at FROM pages ORDER BY id ASC`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list pages")
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Components, &sum.UpdatedAt); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "scan page summary")
		}
		sum.UpdatedAt = sum.UpdatedAt.UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

var _ Store = (*SQLiteStore)(nil)
