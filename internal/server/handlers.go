package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/noahgsolomon/lumen/pkg/buildinfo"
	"github.com/noahgsolomon/lumen/pkg/cache"
	lumenerrors "github.com/noahgsolomon/lumen/pkg/errors"
	"github.com/noahgsolomon/lumen/pkg/graph"
	"github.com/noahgsolomon/lumen/pkg/observability"
	"github.com/noahgsolomon/lumen/pkg/pipeline"
	"github.com/noahgsolomon/lumen/pkg/workspace"
)

// contentTypes maps artifact formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
}

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// =============================================================================
// Layout
// =============================================================================

// layoutResponse is the JSON body returned by POST /api/layout.
type layoutResponse struct {
	GraphHash string             `json:"graph_hash"`
	Layout    graph.Layout       `json:"layout"`
	Stats     layoutStats        `json:"stats"`
	CacheInfo pipeline.CacheInfo `json:"cache_info"`
}

type layoutStats struct {
	NodeCount  int    `json:"node_count"`
	LinkCount  int    `json:"link_count"`
	Ticks      int    `json:"ticks"`
	LayoutTime string `json:"layout_time"`
}

// handleLayout runs load+layout for the posted options and returns the
// computed layout as JSON.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	g, loadHit, err := s.runner.LoadWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	start := time.Now()
	layout, layoutHit, err := s.runner.GenerateLayoutWithCacheInfo(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	data, _ := graph.MarshalGraph(*g)
	writeJSON(w, http.StatusOK, layoutResponse{
		GraphHash: cache.Hash(data),
		Layout:    layout,
		Stats: layoutStats{
			NodeCount:  g.NodeCount(),
			LinkCount:  len(layout.Links),
			Ticks:      layout.Ticks,
			LayoutTime: time.Since(start).Round(time.Millisecond).String(),
		},
		CacheInfo: pipeline.CacheInfo{LoadHit: loadHit, LayoutHit: layoutHit},
	})
}

// =============================================================================
// Render
// =============================================================================

// handleRender runs the full pipeline and streams a single artifact.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	data, ok := result.Artifacts[format]
	if !ok {
		s.writeError(w, lumenerrors.New(lumenerrors.ErrCodeInternal, "no %s artifact produced", format))
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// =============================================================================
// Workspaces
// =============================================================================

func (s *Server) handleWorkspaceList(w http.ResponseWriter, r *http.Request) {
	workspaces, err := s.workspaces.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workspaces)
}

func (s *Server) handleWorkspaceGet(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspaces.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (s *Server) handleWorkspaceCreate(w http.ResponseWriter, r *http.Request) {
	var ws workspace.Workspace
	if err := json.NewDecoder(r.Body).Decode(&ws); err != nil {
		s.writeError(w, lumenerrors.Wrap(lumenerrors.ErrCodeInvalidInput, err, "decode workspace"))
		return
	}
	if ws.ID == "" {
		created := workspace.New(ws.Name)
		created.GraphHash = ws.GraphHash
		created.Positions = ws.Positions
		created.Selection = ws.Selection
		created.Viewport = ws.Viewport
		created.Theme = ws.Theme
		ws = *created
	}
	if err := s.workspaces.Save(r.Context(), &ws); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ws)
}

func (s *Server) handleWorkspacePut(w http.ResponseWriter, r *http.Request) {
	var ws workspace.Workspace
	if err := json.NewDecoder(r.Body).Decode(&ws); err != nil {
		s.writeError(w, lumenerrors.Wrap(lumenerrors.ErrCodeInvalidInput, err, "decode workspace"))
		return
	}
	ws.ID = chi.URLParam(r, "id")
	ws.UpdatedAt = time.Now().UTC()
	if err := s.workspaces.Save(r.Context(), &ws); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (s *Server) handleWorkspaceDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.workspaces.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

// decodeOptions parses a pipeline.Options request body.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, lumenerrors.Wrap(lumenerrors.ErrCodeInvalidInput, err, "decode request body"))
		return opts, false
	}
	opts.Logger = s.logger
	return opts, true
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, workspace.ErrNotFound) {
		err = lumenerrors.Wrap(lumenerrors.ErrCodeWorkspaceNotFound, err, "workspace not found")
	}
	code := lumenerrors.GetCode(err)
	status := statusForCode(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: lumenerrors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// observe is the request logging middleware; it feeds the observability
// hooks and the structured logger.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, rec.status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", elapsed.Round(time.Millisecond))
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
