// Package workspace persists interactive viewer state between runs.
//
// A workspace captures everything a user arranged by hand: node positions
// (including pins), the viewport pan and zoom, the selection, and the theme.
// Reopening a graph through its workspace restores the exact picture the
// user left, even after the underlying graph data refreshed, because saved
// positions feed the simulation's position merge rather than replacing it.
//
// Two storage backends are provided:
//   - file: JSON files under the user config directory, for the CLI
//   - mongo: a MongoDB collection, for server deployments
package workspace

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/noahgsolomon/lumen/pkg/force"
	"github.com/noahgsolomon/lumen/pkg/view"
)

// Sentinel errors for workspace operations.
var (
	// ErrNotFound is returned when a workspace does not exist.
	ErrNotFound = errors.New("workspace not found")
)

// SavedPosition is one node's persisted placement.
type SavedPosition struct {
	ID     string  `json:"id" bson:"id"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Pinned bool    `json:"pinned,omitempty" bson:"pinned,omitempty"`
}

// Workspace stores the state of one interactive viewing session.
type Workspace struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`

	// GraphHash identifies the graph data the positions were computed
	// against. A mismatch on load means the data refreshed; positions are
	// still merged by node id.
	GraphHash string `json:"graph_hash" bson:"graph_hash"`

	Positions []SavedPosition `json:"positions" bson:"positions"`
	Selection string          `json:"selection,omitempty" bson:"selection,omitempty"`
	Viewport  view.Transform  `json:"viewport" bson:"viewport"`
	Theme     string          `json:"theme,omitempty" bson:"theme,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// New creates a workspace with a fresh id.
func New(name string) *Workspace {
	now := time.Now().UTC()
	return &Workspace{
		ID:        uuid.NewString(),
		Name:      name,
		Viewport:  view.Identity(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Position looks up a saved position by node id.
func (w *Workspace) Position(id string) (SavedPosition, bool) {
	for _, p := range w.Positions {
		if p.ID == id {
			return p, true
		}
	}
	return SavedPosition{}, false
}

// Capture snapshots the current state of a view into the workspace.
func (w *Workspace) Capture(v *view.View, graphHash string) {
	w.GraphHash = graphHash
	w.Viewport = v.Transform()

	w.Selection = ""
	if sel := v.Selected(); sel != nil {
		w.Selection = sel.ID
	}

	nodes := v.Simulation().Nodes()
	w.Positions = w.Positions[:0]
	for _, n := range nodes {
		if !n.Placed {
			continue
		}
		w.Positions = append(w.Positions, SavedPosition{
			ID:     n.ID,
			X:      n.X,
			Y:      n.Y,
			Pinned: n.HasFixed,
		})
	}
	w.UpdatedAt = time.Now().UTC()
}

// Restore applies the workspace to a view whose graph is already loaded.
// Saved positions overwrite seeds for nodes that still exist; the viewport
// and selection come back as saved. Unknown node ids are ignored.
func (w *Workspace) Restore(v *view.View) {
	for _, n := range v.Simulation().Nodes() {
		p, ok := w.Position(n.ID)
		if !ok {
			continue
		}
		n.X, n.Y = p.X, p.Y
		n.Placed = true
		if p.Pinned {
			n.Fix(p.X, p.Y)
		}
	}
	v.SetTransform(w.Viewport)
	if w.Selection != "" {
		for _, n := range v.Simulation().Nodes() {
			if n.ID == w.Selection {
				// Reselect through the hit path so the navigator memo
				// follows the restored selection.
				p := v.Transform().Apply(force.Pt(n.X, n.Y))
				v.Click(p.X, p.Y)
				break
			}
		}
	}
}

// Store is the interface for workspace storage backends.
type Store interface {
	// Get retrieves a workspace by id. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Workspace, error)

	// List returns all stored workspaces, newest first.
	List(ctx context.Context) ([]*Workspace, error)

	// Save stores a workspace, overwriting any previous version.
	Save(ctx context.Context, w *Workspace) error

	// Delete removes a workspace. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
