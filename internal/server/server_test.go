package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/noahgsolomon/lumen/pkg/cache"
	"github.com/noahgsolomon/lumen/pkg/graph"
	"github.com/noahgsolomon/lumen/pkg/pipeline"
	"github.com/noahgsolomon/lumen/pkg/workspace"
)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()

	g := graph.Graph{
		Nodes: []graph.Node{{ID: "a", Title: "Alpha"}, {ID: "b"}, {ID: "c"}},
		Links: []graph.Link{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}},
	}
	graphPath := filepath.Join(t.TempDir(), "notes.json")
	if err := graph.WriteGraphFile(g, graphPath); err != nil {
		t.Fatalf("write graph: %v", err)
	}

	store, err := workspace.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("workspace store: %v", err)
	}

	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
	return New(":0", runner, store, nil), graphPath
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestLayoutEndpoint(t *testing.T) {
	srv, graphPath := testServer(t)
	router := srv.Router()

	rec := postJSON(t, router, "/api/layout", pipeline.Options{Source: graphPath})
	if rec.Code != http.StatusOK {
		t.Fatalf("layout status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		GraphHash string       `json:"graph_hash"`
		Layout    graph.Layout `json:"layout"`
		Stats     struct {
			NodeCount int `json:"node_count"`
			Ticks     int `json:"ticks"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.GraphHash == "" {
		t.Error("response should include a graph hash")
	}
	if !resp.Layout.IsForce() {
		t.Errorf("layout viz type = %q, want force", resp.Layout.VizType)
	}
	if len(resp.Layout.Placed) != 3 {
		t.Errorf("placed %d nodes, want 3", len(resp.Layout.Placed))
	}
	if resp.Stats.NodeCount != 3 || resp.Stats.Ticks == 0 {
		t.Errorf("stats = %+v", resp.Stats)
	}
}

func TestLayoutEndpointRejectsMalformed(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodPost, "/api/layout", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}
	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Code != "INVALID_INPUT" {
		t.Errorf("error code = %q, want INVALID_INPUT", resp.Code)
	}
}

func TestLayoutEndpointMissingSource(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.Router()

	missing := filepath.Join(t.TempDir(), "gone.json")
	rec := postJSON(t, router, "/api/layout", pipeline.Options{Source: missing})

	if rec.Code != http.StatusNotFound {
		t.Errorf("missing source status = %d, want 404, body %s", rec.Code, rec.Body.String())
	}
}

func TestRenderEndpointSVG(t *testing.T) {
	srv, graphPath := testServer(t)
	router := srv.Router()

	rec := postJSON(t, router, "/api/render/svg", pipeline.Options{Source: graphPath})
	if rec.Code != http.StatusOK {
		t.Fatalf("render status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", ct)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("<svg")) {
		t.Error("response should contain SVG markup")
	}
}

func TestRenderEndpointRejectsUnknownFormat(t *testing.T) {
	srv, graphPath := testServer(t)
	router := srv.Router()

	rec := postJSON(t, router, "/api/render/gif", pipeline.Options{Source: graphPath})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown format status = %d, want 400", rec.Code)
	}
}

func TestWorkspaceCRUD(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.Router()

	// Create
	ws := workspace.Workspace{Name: "reading list", GraphHash: "abc"}
	rec := postJSON(t, router, "/api/workspaces/", ws)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created workspace.Workspace
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create should assign an id")
	}

	// Get
	req := httptest.NewRequest(http.MethodGet, "/api/workspaces/"+created.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	// List
	req = httptest.NewRequest(http.MethodGet, "/api/workspaces/", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var list []workspace.Workspace
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "reading list" {
		t.Errorf("list = %+v, want one workspace named 'reading list'", list)
	}

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/api/workspaces/"+created.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}

	// Get after delete
	req = httptest.NewRequest(http.MethodGet, "/api/workspaces/"+created.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}
