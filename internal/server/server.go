// Package server exposes the layout editor over HTTP.
//
// Each open page is an editing session (see package session). The UI
// controls of the builder canvas map to endpoints under
// /sessions/{sessionID}; every mutating call answers with the editor's
// current [editor.View] so a client can re-render from the response.
//
//	POST   /sessions                               open a page {"pageId": "home"}
//	GET    /sessions/{id}                          current view
//	PUT    /sessions/{id}/viewport                 {"width": 900}
//	PUT    /sessions/{id}/container                {"width": 1100}
//	POST   /sessions/{id}/components               add {"type": "hero"}
//	DELETE /sessions/{id}/components/{cid}
//	PATCH  /sessions/{id}/components/{cid}/props   shallow props patch
//	POST   /sessions/{id}/components/{cid}/resize  {"dw": 1, "dh": 0}
//	POST   /sessions/{id}/select                   {"id": "..."}
//	POST   /sessions/{id}/pointer/{down,move,up,cancel}
//	POST   /sessions/{id}/save                     persist to the store
//	GET    /sessions/{id}/page                     serialized page
//
// Persisted pages are available under /pages and the component palette
// under /registry.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridkit/pkg/registry"
	"github.com/matzehuels/gridkit/pkg/session"
	"github.com/matzehuels/gridkit/pkg/store"
)

// maxBodyBytes bounds request bodies; pages are the largest payload.
const maxBodyBytes = 4 << 20

// Server serves the editing API.
type Server struct {
	sessions *session.Manager
	store    store.Store
	palette  *registry.Static
	logger   *log.Logger
	router   chi.Router
}

// New builds the API on top of a session manager, a page store and the
// palette the sessions' editors use.
func New(sessions *session.Manager, st store.Store, palette *registry.Static, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		sessions: sessions,
		store:    st,
		palette:  palette,
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/registry", s.handleRegistry)

	r.Route("/pages", func(r chi.Router) {
		r.Get("/", s.handleListPages)
		r.Get("/{pageID}", s.handleGetPage)
		r.Delete("/{pageID}", s.handleDeletePage)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.handleListSessions)
		r.Post("/", s.handleOpenSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleView)
			r.Delete("/", s.handleCloseSession)
			r.Put("/viewport", s.handleViewport)
			r.Put("/container", s.handleContainer)
			r.Post("/select", s.handleSelect)
			r.Post("/save", s.handleSave)
			r.Get("/page", s.handleSessionPage)

			r.Post("/components", s.handleAdd)
			r.Route("/components/{componentID}", func(r chi.Router) {
				r.Delete("/", s.handleDelete)
				r.Patch("/props", s.handleProps)
				r.Post("/resize", s.handleResize)
			})

			r.Post("/pointer/down", s.handlePointerDown)
			r.Post("/pointer/move", s.handlePointerMove)
			r.Post("/pointer/up", s.handlePointerUp)
			r.Post("/pointer/cancel", s.handlePointerCancel)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Expired sessions are swept every cleanup interval.
func (s *Server) ListenAndServe(ctx context.Context, addr string, cleanup time.Duration) error {
	ctx, stop := context.WithCancel(ctx)
	swept := make(chan struct{})
	defer func() {
		stop()
		<-swept
	}()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		defer close(swept)
		s.sessions.Run(ctx, cleanup)
	}()

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
