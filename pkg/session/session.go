// Package session manages editing sessions for the page builder.
//
// An editing session binds one open page to one [editor.Editor]. The
// editor is single-owner state, so every access goes through
// [Session.Do], which serializes callers behind a per-session mutex. This
// is how a concurrent HTTP server keeps the single-threaded editing model.
//
// Sessions expire after a period of inactivity. [Manager.Get] reports an
// expired session as SESSION_EXPIRED and forgets it; [Manager.Run]
// sweeps expired sessions in the background.
//
// # Usage
//
//	m := session.NewManager(func() *editor.Editor {
//	    return editor.New(registry.Builtin())
//	}, session.WithTTL(2*time.Hour))
//
//	sess, err := m.Open("home", persisted)
//	if err != nil {
//	    return err
//	}
//	err = sess.Do(func(e *editor.Editor) error {
//	    _, err := e.Add("hero")
//	    return err
//	})
package session

import (
	"context"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gridkit/pkg/editor"
	"github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/page"
)

// Default durations.
const (
	// DefaultTTL is how long an idle session is kept.
	DefaultTTL = 2 * time.Hour

	// DefaultCleanupInterval is how often Run sweeps expired sessions.
	DefaultCleanupInterval = time.Minute
)

// Session is one page open for editing.
type Session struct {
	ID        string
	PageID    string
	CreatedAt time.Time

	mu        sync.Mutex
	editor    *editor.Editor
	expiresAt atomic.Int64 // unix nanoseconds
	ttl       time.Duration
	now       func() time.Time
}

// Info describes a session without touching its editor.
type Info struct {
	ID        string    `json:"id"`
	PageID    string    `json:"pageId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Do runs fn with exclusive access to the session's editor and extends
// the session's lifetime.
func (s *Session) Do(fn func(*editor.Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return fn(s.editor)
}

// Snapshot serializes the current editor state.
func (s *Session) Snapshot() *page.Page {
	var p *page.Page
	_ = s.Do(func(e *editor.Editor) error {
		p = page.Serialize(e.Tree(), e.Layout())
		return nil
	})
	return p
}

// ExpiresAt returns when the session expires unless used again.
func (s *Session) ExpiresAt() time.Time {
	return time.Unix(0, s.expiresAt.Load())
}

// IsExpired reports whether the session has been idle longer than its TTL.
func (s *Session) IsExpired() bool {
	return s.now().After(s.ExpiresAt())
}

// Info returns the session's metadata.
func (s *Session) Info() Info {
	return Info{ID: s.ID, PageID: s.PageID, CreatedAt: s.CreatedAt, ExpiresAt: s.ExpiresAt()}
}

func (s *Session) touch() {
	s.expiresAt.Store(s.now().Add(s.ttl).UnixNano())
}

// close aborts any gesture so pointer capture is released.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.Cancel()
}

// Manager owns the open sessions.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	newEditor func() *editor.Editor
	ttl       time.Duration
	logger    *log.Logger
	now       func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL sets the idle lifetime of sessions. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithLogger sets the logger for session lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager returns a manager that creates each session's editor with
// newEditor.
func NewManager(newEditor func() *editor.Editor, opts ...Option) *Manager {
	m := &Manager{
		sessions:  make(map[string]*Session),
		newEditor: newEditor,
		ttl:       DefaultTTL,
		logger:    log.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the idle lifetime of sessions.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Open starts a session editing pageID, loaded from p. A nil p opens an
// empty page.
func (m *Manager) Open(pageID string, p *page.Page) (*Session, error) {
	if err := errors.ValidateID(pageID); err != nil {
		return nil, err
	}
	tree, layout, err := page.Deserialize(p)
	if err != nil {
		return nil, err
	}
	e := m.newEditor()
	e.Load(tree, layout)

	s := &Session{
		ID:        GenerateID(),
		PageID:    pageID,
		CreatedAt: m.now(),
		editor:    e,
		ttl:       m.ttl,
		now:       m.now,
	}
	s.touch()

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Debug("session opened", "session", s.ID, "page", pageID, "components", e.Len())
	return s, nil
}

// Get returns the session with the given id. A missing session is a
// SESSION_NOT_FOUND error; an expired one is removed and reported as
// SESSION_EXPIRED.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	if s.IsExpired() {
		m.remove(id)
		return nil, errors.New(errors.ErrCodeSessionExpired, "session %q expired", id)
	}
	return s, nil
}

// Close ends a session. It reports whether the session existed.
func (m *Manager) Close(id string) bool {
	return m.remove(id)
}

// Len returns the number of open sessions, expired ones included until
// they are swept.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// List returns the live sessions sorted by id.
func (m *Manager) List() []Info {
	m.mu.RLock()
	out := make([]Info, 0, len(m.sessions))
	for _, s := range m.sessions {
		if !s.IsExpired() {
			out = append(out, s.Info())
		}
	}
	m.mu.RUnlock()
	slices.SortFunc(out, func(a, b Info) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Cleanup removes expired sessions and returns how many were removed.
func (m *Manager) Cleanup() int {
	m.mu.RLock()
	var expired []string
	for id, s := range m.sessions {
		if s.IsExpired() {
			expired = append(expired, id)
		}
	}
	m.mu.RUnlock()

	n := 0
	for _, id := range expired {
		if m.remove(id) {
			n++
		}
	}
	if n > 0 {
		m.logger.Debug("expired sessions removed", "count", n)
	}
	return n
}

// Run calls Cleanup every interval until ctx is done. A non-positive
// interval uses DefaultCleanupInterval.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Cleanup()
		}
	}
}

func (m *Manager) remove(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.close()
		m.logger.Debug("session closed", "session", id, "page", s.PageID)
	}
	return ok
}

// GenerateID returns a random session id.
func GenerateID() string {
	return uuid.NewString()
}
