package cli

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/noahgsolomon/lumen/pkg/cache"
	"github.com/noahgsolomon/lumen/pkg/force"
	"github.com/noahgsolomon/lumen/pkg/graph"
	"github.com/noahgsolomon/lumen/pkg/view"
	"github.com/noahgsolomon/lumen/pkg/workspace"
)

// frameInterval paces the redraw tick (~30 fps).
const frameInterval = time.Second / 30

// zoomStep is the zoom factor applied per wheel notch or +/- keypress.
const zoomStep = 1.2

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var workspaceID string

	cmd := &cobra.Command{
		Use:   "view [graph.json]",
		Short: "Open a note graph in the interactive viewer",
		Long: `Open a note graph in the interactive terminal viewer.

The viewer runs the force simulation live: nodes settle into place as the
simulation cools, and editing-free interactions (pan, zoom, selection) are
available throughout.

Keys:
  arrows / hjkl   move selection to the nearest node in that direction
  tab             select the last selected node (or the first node)
  esc             clear selection
  + / -           zoom in / out at the center
  0               reset pan and zoom
  p               save a PNG snapshot next to the input file
  s               save the current workspace (positions, viewport, selection)
  q               quit

Mouse: click selects the node under the cursor, drag pans, wheel zooms at
the cursor.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(args[0], workspaceID)
		},
	}

	cmd.Flags().StringVarP(&workspaceID, "workspace", "w", "", "restore a saved workspace by id")

	return cmd
}

// runView loads the graph and starts the bubbletea program.
func (c *CLI) runView(input, workspaceID string) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	store, err := c.newWorkspaceStore()
	if err != nil {
		return fmt.Errorf("open workspace store: %w", err)
	}

	m := newViewerModel(&g, input, store)

	if workspaceID != "" {
		ws, err := store.Get(context.Background(), workspaceID)
		if err != nil {
			return fmt.Errorf("restore workspace %s: %w", workspaceID, err)
		}
		m.restore = ws
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// =============================================================================
// viewerModel - Bubbletea Model
// =============================================================================

// frameMsg is the per-frame tick driving the simulation.
type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// viewerModel adapts a view.View to bubbletea. The terminal grid is the
// screen space: one cell per logical pixel, so mouse coordinates feed the
// hit tester directly.
type viewerModel struct {
	graph     *graph.Graph
	graphPath string
	graphHash string

	v     *view.View
	store workspace.Store

	// restore is applied once the first WindowSizeMsg establishes dimensions.
	restore *workspace.Workspace

	width  int
	height int
	ready  bool

	// grid is the cached frame; rebuilt only when the view reports changes.
	grid string

	dragging    bool
	dragX       int
	dragY       int
	dragMoved   bool
	status      string
	statusUntil time.Time
}

var (
	viewerStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	viewerTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	viewerFlashStyle  = lipgloss.NewStyle().Foreground(colorGreen)
)

func newViewerModel(g *graph.Graph, path string, store workspace.Store) *viewerModel {
	hash := ""
	if data, err := graph.MarshalGraph(*g); err == nil {
		hash = cache.Hash(data)
	}
	return &viewerModel{
		graph:     g,
		graphPath: path,
		graphHash: hash,
		store:     store,
	}
}

func (m *viewerModel) Init() tea.Cmd {
	return frameTick()
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case frameMsg:
		if m.ready {
			m.v.Step()
			if m.v.Dirty() {
				m.v.Frame()
				m.grid = m.renderGrid()
			}
		}
		return m, frameTick()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

// resize establishes (or updates) the view's logical canvas. The first
// resize creates the view and starts the simulation.
func (m *viewerModel) resize(cols, rows int) {
	w, h := cols, rows-1 // bottom row is the status bar
	if w < 10 {
		w = 10
	}
	if h < 5 {
		h = 5
	}

	if !m.ready {
		m.v = view.NewView(w, h)
		m.v.SetGraph(m.graph)
		if m.restore != nil {
			m.restore.Restore(m.v)
			m.v.Simulation().Stop()
			m.restore = nil
		}
		m.ready = true
	} else {
		m.v.Resize(w, h)
	}
	m.width, m.height = w, h
	m.grid = m.renderGrid()
}

func (m *viewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.ready {
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.v.Close()
		return m, tea.Quit
	case "up", "k":
		m.v.MoveSelection(view.DirUp)
	case "down", "j":
		m.v.MoveSelection(view.DirDown)
	case "left", "h":
		m.v.MoveSelection(view.DirLeft)
	case "right", "l":
		m.v.MoveSelection(view.DirRight)
	case "tab":
		m.v.CycleSelection()
	case "esc":
		m.v.ClearSelection()
	case "+", "=":
		m.v.ZoomAt(zoomStep, float64(m.width)/2, float64(m.height)/2)
	case "-":
		m.v.ZoomAt(1/zoomStep, float64(m.width)/2, float64(m.height)/2)
	case "0":
		m.v.SetTransform(view.Identity())
	case "p":
		m.snapshot()
	case "s":
		m.saveWorkspace()
	}

	m.refresh()
	return m, nil
}

func (m *viewerModel) handleMouse(msg tea.MouseMsg) {
	if !m.ready {
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.v.ZoomAt(zoomStep, float64(msg.X), float64(msg.Y))
	case tea.MouseButtonWheelDown:
		m.v.ZoomAt(1/zoomStep, float64(msg.X), float64(msg.Y))
	case tea.MouseButtonLeft:
		switch msg.Action {
		case tea.MouseActionPress:
			m.dragging = true
			m.dragMoved = false
			m.dragX, m.dragY = msg.X, msg.Y
		case tea.MouseActionMotion:
			if m.dragging {
				m.v.Pan(float64(msg.X-m.dragX), float64(msg.Y-m.dragY))
				m.dragX, m.dragY = msg.X, msg.Y
				m.dragMoved = true
			}
		case tea.MouseActionRelease:
			if m.dragging && !m.dragMoved {
				m.v.Click(float64(msg.X), float64(msg.Y))
			}
			m.dragging = false
		}
	}

	m.refresh()
}

// refresh rebuilds the cached grid if the view changed since the last frame.
func (m *viewerModel) refresh() {
	if m.ready && m.v.Dirty() {
		m.v.Frame()
		m.grid = m.renderGrid()
	}
}

func (m *viewerModel) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.grid + "\n" + m.statusBar()
}

// =============================================================================
// Terminal Projection
// =============================================================================

// renderGrid projects placed nodes and links through the view transform
// onto a rune grid the size of the terminal.
func (m *viewerModel) renderGrid() string {
	cells := make([][]rune, m.height)
	for y := range cells {
		cells[y] = make([]rune, m.width)
		for x := range cells[y] {
			cells[y][x] = ' '
		}
	}

	t := m.v.Transform()
	sim := m.v.Simulation()
	selected := m.v.Selected()

	for _, l := range sim.Links() {
		src, dst := l.Endpoints()
		if src == nil || dst == nil || !src.Placed || !dst.Placed {
			continue
		}
		a := t.Apply(force.Pt(src.X, src.Y))
		b := t.Apply(force.Pt(dst.X, dst.Y))
		m.plotLine(cells, a, b)
	}

	for _, n := range sim.Nodes() {
		if !n.Placed || n == selected {
			continue
		}
		p := t.Apply(force.Pt(n.X, n.Y))
		m.plot(cells, p, '●')
	}

	// Selected node last so it wins overlapping cells.
	if selected != nil && selected.Placed {
		p := t.Apply(force.Pt(selected.X, selected.Y))
		m.plot(cells, p, '◉')
		m.plotLabel(cells, p, m.nodeTitle(selected.ID))
	}

	rows := make([]string, m.height)
	for y, row := range cells {
		rows[y] = string(row)
	}
	return strings.Join(rows, "\n")
}

func (m *viewerModel) plot(cells [][]rune, p force.Point, r rune) {
	x, y := int(p.X), int(p.Y)
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	cells[y][x] = r
}

// plotLine draws a link as dim dots, stepping along the longer axis.
func (m *viewerModel) plotLine(cells [][]rune, a, b force.Point) {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := int(max(abs(dx), abs(dy)))
	if steps < 1 {
		return
	}
	for i := 1; i < steps; i++ {
		f := float64(i) / float64(steps)
		p := force.Pt(a.X+dx*f, a.Y+dy*f)
		x, y := int(p.X), int(p.Y)
		if x < 0 || y < 0 || x >= m.width || y >= m.height {
			continue
		}
		if cells[y][x] == ' ' {
			cells[y][x] = '·'
		}
	}
}

// plotLabel writes the selected node's title to the right of its glyph.
func (m *viewerModel) plotLabel(cells [][]rune, p force.Point, label string) {
	x, y := int(p.X)+2, int(p.Y)
	if y < 0 || y >= m.height {
		return
	}
	for _, r := range label {
		if x >= m.width {
			return
		}
		if x >= 0 {
			cells[y][x] = r
		}
		x++
	}
}

func (m *viewerModel) nodeTitle(id string) string {
	if n, ok := m.graph.Node(id); ok {
		return n.DisplayTitle()
	}
	return id
}

// =============================================================================
// Status Bar
// =============================================================================

func (m *viewerModel) statusBar() string {
	if m.status != "" && time.Now().Before(m.statusUntil) {
		return viewerFlashStyle.Render(m.status)
	}

	name := filepath.Base(m.graphPath)
	parts := []string{
		viewerTitleStyle.Render(name),
		fmt.Sprintf("%d nodes", m.graph.NodeCount()),
		fmt.Sprintf("zoom %.1fx", m.v.Transform().Scale),
	}
	if m.v.Simulation().Active() {
		parts = append(parts, "settling")
	}
	if sel := m.v.Selected(); sel != nil {
		parts = append(parts, "▸ "+m.nodeTitle(sel.ID))
	}
	parts = append(parts, "q quit · tab cycle · s save")
	return viewerStatusStyle.Render(strings.Join(parts, "  ·  "))
}

func (m *viewerModel) flash(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusUntil = time.Now().Add(3 * time.Second)
}

// =============================================================================
// Actions
// =============================================================================

// snapshot writes a PNG of the current frame next to the input file.
func (m *viewerModel) snapshot() {
	img := m.v.Frame()
	base := strings.TrimSuffix(m.graphPath, filepath.Ext(m.graphPath))
	path := fmt.Sprintf("%s-%s.png", base, time.Now().Format("20060102-150405"))

	f, err := os.Create(path)
	if err != nil {
		m.flash("snapshot failed: %v", err)
		return
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		m.flash("snapshot failed: %v", err)
		return
	}
	m.flash("saved %s", path)
}

// saveWorkspace captures positions, viewport, and selection.
func (m *viewerModel) saveWorkspace() {
	name := strings.TrimSuffix(filepath.Base(m.graphPath), filepath.Ext(m.graphPath))
	ws := workspace.New(name)
	ws.Capture(m.v, m.graphHash)

	if err := m.store.Save(context.Background(), ws); err != nil {
		m.flash("save failed: %v", err)
		return
	}
	m.flash("saved workspace %s", ws.ID)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
