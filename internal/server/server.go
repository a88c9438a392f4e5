// Package server exposes the lumen pipeline and workspace store over HTTP.
//
// The API is JSON-first: POST /api/layout runs the pipeline and returns the
// computed layout, artifact endpoints return rendered bytes with the right
// content type, and /api/workspaces is a small CRUD surface over the
// workspace store.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	lumenerrors "github.com/noahgsolomon/lumen/pkg/errors"
	"github.com/noahgsolomon/lumen/pkg/pipeline"
	"github.com/noahgsolomon/lumen/pkg/workspace"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Server serves the lumen HTTP API.
type Server struct {
	addr       string
	runner     *pipeline.Runner
	workspaces workspace.Store
	logger     *log.Logger
}

// New creates a server. The runner and store are owned by the caller; Close
// on either is not called here.
func New(addr string, runner *pipeline.Runner, workspaces workspace.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		addr:       addr,
		runner:     runner,
		workspaces: workspaces,
		logger:     logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render/{format}", s.handleRender)

		r.Route("/workspaces", func(r chi.Router) {
			r.Get("/", s.handleWorkspaceList)
			r.Post("/", s.handleWorkspaceCreate)
			r.Get("/{id}", s.handleWorkspaceGet)
			r.Put("/{id}", s.handleWorkspacePut)
			r.Delete("/{id}", s.handleWorkspaceDelete)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// statusForCode maps error codes to HTTP status codes.
func statusForCode(code lumenerrors.Code) int {
	switch code {
	case lumenerrors.ErrCodeInvalidInput, lumenerrors.ErrCodeInvalidGraph,
		lumenerrors.ErrCodeInvalidLayout, lumenerrors.ErrCodeInvalidFormat,
		lumenerrors.ErrCodeInvalidTheme, lumenerrors.ErrCodeInvalidVizType,
		lumenerrors.ErrCodeInvalidConfig, lumenerrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case lumenerrors.ErrCodeNotFound, lumenerrors.ErrCodeNodeNotFound,
		lumenerrors.ErrCodeFileNotFound, lumenerrors.ErrCodeWorkspaceNotFound:
		return http.StatusNotFound
	case lumenerrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
