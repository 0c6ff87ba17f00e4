package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridkit/pkg/buildinfo"
	"github.com/matzehuels/gridkit/pkg/component"
	"github.com/matzehuels/gridkit/pkg/editor"
	"github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/session"
)

type openRequest struct {
	PageID string `json:"pageId"`
}

type openResponse struct {
	Session session.Info `json:"session"`
	View    editor.View  `json:"view"`
}

// viewResponse answers every editing call. Changed reports whether the
// call altered the editor state; ID carries the id of an added component.
type viewResponse struct {
	Changed bool        `json:"changed"`
	ID      string      `json:"id,omitempty"`
	View    editor.View `json:"view"`
}

type widthRequest struct {
	Width float64 `json:"width"`
}

type selectRequest struct {
	ID string `json:"id"`
}

type addRequest struct {
	Type string `json:"type"`
}

type resizeRequest struct {
	DW int `json:"dw"`
	DH int `json:"dh"`
}

type pointerRequest struct {
	ID string  `json:"id,omitempty"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type saveResponse struct {
	PageID     string `json:"pageId"`
	Components int    `json:"components"`
}

// =============================================================================
// Service
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.sessions.Len()})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleRegistry(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"components": s.palette.Definitions()})
}

// =============================================================================
// Persisted pages
// =============================================================================

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	s.respond(w, r, http.StatusOK, map[string]any{"pages": list}, err)
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Load(r.Context(), chi.URLParam(r, "pageID"))
	s.respond(w, r, http.StatusOK, p, err)
}

func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "pageID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Sessions
// =============================================================================

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"sessions": s.sessions.List()})
}

// handleOpenSession loads the stored page, or starts an empty one when
// nothing is stored under the id yet.
func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := errors.ValidateID(req.PageID); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.store.Load(r.Context(), req.PageID)
	if errors.Is(err, errors.ErrCodeNotFound) {
		p, err = nil, nil
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.sessions.Open(req.PageID, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var resp openResponse
	_ = sess.Do(func(e *editor.Editor) error {
		resp = openResponse{Session: sess.Info(), View: e.View()}
		return nil
	})
	s.writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if !s.sessions.Close(id) {
		s.writeError(w, r, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// session resolves the {sessionID} URL parameter, writing the error
// response when there is no live session.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

// edit runs fn on the session's editor and answers with the resulting view.
func (s *Server) edit(w http.ResponseWriter, r *http.Request, status int, fn func(e *editor.Editor, resp *viewResponse) error) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var resp viewResponse
	err := sess.Do(func(e *editor.Editor) error {
		if err := fn(e, &resp); err != nil {
			return err
		}
		resp.View = e.View()
		return nil
	})
	s.respond(w, r, status, resp, err)
}

func componentNotFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "component %q not found", id)
}

// =============================================================================
// Editing
// =============================================================================

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.edit(w, r, http.StatusOK, func(*editor.Editor, *viewResponse) error { return nil })
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	var req widthRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.edit(w, r, http.StatusOK, func(e *editor.Editor, resp *viewResponse) error {
		if req.Width < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "viewport width must not be negative")
		}
		before := e.ActiveBreakpoint()
		resp.Changed = e.SetViewport(int(req.Width)) != before
		return nil
	})
}

func (s *Server) handleContainer(w http.ResponseWriter, r *http.Request) {
	var req widthRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.edit(w, r, http.StatusOK, func(e *editor.Editor, resp *viewResponse) error {
		if req.Width <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "container width must be positive")
		}
		resp.Changed = e.Config().ContainerWidth != req.Width
		e.SetContainerWidth(req.Width)
		return nil
	})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.edit(w, r, http.StatusOK, func(e *editor.Editor, resp *viewResponse) error {
		before := e.Selected()
		if !e.Select(req.ID) {
			return componentNotFound(req.ID)
		}
		resp.Changed = e.Selected() != before
		return nil
	})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.edit(w, r, http.StatusCreated, func(e *editor.Editor, resp *viewResponse) error {
		id, err := e.Add(req.Type)
		if err != nil {
			return err
		}
		resp.Changed, resp.ID = true, id
		return nil
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "componentID")
	s.edit(w, r, http.StatusOK, func(e *editor.Editor, resp *viewResponse) error {
		if !e.Delete(id) {
			return componentNotFound(id)
		}
		resp.Changed = true
		return nil
	})
}

func (s *Server) handleProps(w http.ResponseWriter, r *http.Request) {
	var patch component.Props
	if !s.decode(w, r, &patch) {
		return
	}
	id := chi.URLParam(r, "componentID")
	s.edit(w, r, http.StatusOK, func(e *editor.Editor, resp *viewResponse) error {
		if !e.UpdateProps(id, patch) {
			return componentNotFound(id)
		}
		resp.Changed = len(patch) > 0
		return nil
	})
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if !s.decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "componentID")
	s.edit(w, r, http.StatusOK, func(e *editor.Editor, resp *viewResponse) error {
		before, ok := e.Rect(id)
		if !ok || !e.Resize(id, req.DW, req.DH) {
			return componentNotFound(id)
		}
		after, _ := e.Rect(id)
		resp.Changed = after != before
		return nil
	})
}

func (s *Server) handlePointerDown(w http.ResponseWriter, r *http.Request) {
	var req pointerRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.edit(w, r, http.StatusOK, func(e *editor.Editor, resp *viewResponse) error {
		if dragging, ok := e.Dragging(); ok {
			return errors.New(errors.ErrCodeGestureActive, "component %q is already being dragged", dragging)
		}
		if !e.PointerDown(req.ID, editor.Point{X: req.X, Y: req.Y}) {
			return componentNotFound(req.ID)
		}
		resp.Changed = true
		return nil
	})
}

func (s *Server) handlePointerMove(w http.ResponseWriter, r *http.Request) {
	var req pointerRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.edit(w, r, http.StatusOK, func(e *editor.Editor, resp *viewResponse) error {
		resp.Changed = e.PointerMove(editor.Point{X: req.X, Y: req.Y})
		return nil
	})
}

func (s *Server) handlePointerUp(w http.ResponseWriter, r *http.Request) {
	s.edit(w, r, http.StatusOK, func(e *editor.Editor, resp *viewResponse) error {
		resp.Changed = e.PointerUp()
		return nil
	})
}

func (s *Server) handlePointerCancel(w http.ResponseWriter, r *http.Request) {
	s.edit(w, r, http.StatusOK, func(e *editor.Editor, resp *viewResponse) error {
		resp.Changed = e.Cancel()
		return nil
	})
}

// =============================================================================
// Persistence
// =============================================================================

func (s *Server) handleSessionPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	p := sess.Snapshot()
	if err := s.store.Save(r.Context(), sess.PageID, p); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("page saved", "page", sess.PageID, "components", p.Len())
	s.writeJSON(w, http.StatusOK, saveResponse{PageID: sess.PageID, Components: p.Len()})
}
