package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/noahgsolomon/lumen/pkg/graph"
	"github.com/noahgsolomon/lumen/pkg/workspace"
)

func testViewerModel(t *testing.T) *viewerModel {
	t.Helper()
	g := &graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Title: "Alpha"},
			{ID: "b", Title: "Beta"},
			{ID: "c"},
		},
		Links: []graph.Link{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "c"},
		},
	}
	store, err := workspace.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("workspace store: %v", err)
	}
	m := newViewerModel(g, "notes.json", store)
	m.resize(60, 25)
	return m
}

// settle drives the simulation to convergence through frame messages.
func settle(t *testing.T, m *viewerModel) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		m.Update(frameMsg{})
		if !m.v.Simulation().Active() {
			return
		}
	}
	t.Fatal("simulation did not converge")
}

func TestViewerResizeMakesReady(t *testing.T) {
	m := testViewerModel(t)

	if !m.ready {
		t.Fatal("model should be ready after resize")
	}
	if m.width != 60 || m.height != 24 {
		t.Errorf("canvas = %dx%d, want 60x24 (one row reserved for status)", m.width, m.height)
	}
}

func TestViewerFrameStepsSimulation(t *testing.T) {
	m := testViewerModel(t)
	settle(t, m)

	if m.v.Simulation().Active() {
		t.Error("simulation should have converged")
	}
	if !strings.Contains(m.grid, "●") {
		t.Error("grid should contain node glyphs after settling")
	}
}

func TestViewerTabSelects(t *testing.T) {
	m := testViewerModel(t)
	settle(t, m)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	sel := m.v.Selected()
	if sel == nil {
		t.Fatal("tab should select a node")
	}
	if sel.ID != "a" {
		t.Errorf("first tab selected %q, want first node a", sel.ID)
	}
	if !strings.Contains(m.grid, "◉") {
		t.Error("grid should mark the selected node")
	}
	if !strings.Contains(m.grid, "Alpha") {
		t.Error("grid should label the selected node")
	}
}

func TestViewerEscClearsSelection(t *testing.T) {
	m := testViewerModel(t)
	settle(t, m)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyEscape})

	if m.v.Selected() != nil {
		t.Error("esc should clear selection")
	}

	// Tab recalls the cleared node.
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if sel := m.v.Selected(); sel == nil || sel.ID != "a" {
		t.Errorf("tab after esc should recall node a, got %v", sel)
	}
}

func TestViewerZoomKeys(t *testing.T) {
	m := testViewerModel(t)
	settle(t, m)

	before := m.v.Transform().Scale
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if m.v.Transform().Scale <= before {
		t.Error("+ should zoom in")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'0'}})
	tr := m.v.Transform()
	if tr.Scale != 1 || tr.TX != 0 || tr.TY != 0 {
		t.Errorf("0 should reset the transform, got %+v", tr)
	}
}

func TestViewerWheelZoomsAtCursor(t *testing.T) {
	m := testViewerModel(t)
	settle(t, m)

	m.handleMouse(tea.MouseMsg{
		X:      10,
		Y:      10,
		Button: tea.MouseButtonWheelUp,
		Action: tea.MouseActionPress,
	})
	if m.v.Transform().Scale <= 1 {
		t.Error("wheel up should zoom in")
	}
}

func TestViewerDragPans(t *testing.T) {
	m := testViewerModel(t)
	settle(t, m)

	m.handleMouse(tea.MouseMsg{X: 10, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m.handleMouse(tea.MouseMsg{X: 15, Y: 12, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	m.handleMouse(tea.MouseMsg{X: 15, Y: 12, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	tr := m.v.Transform()
	if tr.TX != 5 || tr.TY != 2 {
		t.Errorf("drag should pan by cell delta, got TX=%v TY=%v", tr.TX, tr.TY)
	}
	if m.v.Selected() != nil {
		t.Error("a drag should not select")
	}
}

func TestViewerSaveWorkspace(t *testing.T) {
	m := testViewerModel(t)
	settle(t, m)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	m.saveWorkspace()

	list, err := m.store.List(context.Background())
	if err != nil {
		t.Fatalf("list workspaces: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("saved %d workspaces, want 1", len(list))
	}
	ws := list[0]
	if ws.Name != "notes" {
		t.Errorf("workspace name = %q, want notes", ws.Name)
	}
	if ws.Selection != "a" {
		t.Errorf("workspace selection = %q, want a", ws.Selection)
	}
	if len(ws.Positions) != 3 {
		t.Errorf("workspace saved %d positions, want 3", len(ws.Positions))
	}
}
