package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/noahgsolomon/lumen/pkg/errors"
	"github.com/noahgsolomon/lumen/pkg/graph"
)

func testLayout() *graph.Layout {
	return &graph.Layout{
		VizType: graph.VizTypeForce,
		Width:   200,
		Height:  100,
		Theme:   graph.ThemeLight,
		Placed: []graph.PlacedNode{
			{ID: "a", Title: "Alpha", X: 50, Y: 50},
			{ID: "b", Title: "Beta", X: 150, Y: 50},
		},
		Links:    []graph.Link{{Source: "a", Target: "b"}},
		Viewport: graph.Viewport{Scale: 1},
	}
}

func TestSnapshotPNG(t *testing.T) {
	data, err := SnapshotPNG(testLayout())
	if err != nil {
		t.Fatalf("SnapshotPNG error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 100 {
		t.Errorf("image is %dx%d, want 200x100", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestSnapshotPNGScale(t *testing.T) {
	data, err := SnapshotPNG(testLayout(), WithScale(2))
	if err != nil {
		t.Fatalf("SnapshotPNG error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 200 {
		t.Errorf("2x image is %dx%d, want 400x200", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestSnapshotPNGRejectsNodelink(t *testing.T) {
	layout := &graph.Layout{VizType: graph.VizTypeNodelink, DOT: "graph G {}"}
	_, err := SnapshotPNG(layout)
	if !errors.Is(err, errors.ErrCodeInvalidVizType) {
		t.Errorf("error = %v, want INVALID_VIZ_TYPE", err)
	}
}

func TestSnapshotSVG(t *testing.T) {
	data, err := SnapshotSVG(testLayout())
	if err != nil {
		t.Fatalf("SnapshotSVG error: %v", err)
	}
	svg := string(data)

	for _, want := range []string{
		`viewBox="0 0 200 100"`,
		"<line",
		"<circle",
		">Alpha</text>",
		">Beta</text>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q:\n%s", want, svg)
		}
	}

	// Draw order: the single link line must precede both node circles.
	if strings.Index(svg, "<line") > strings.Index(svg, "<circle") {
		t.Error("links should be drawn before nodes")
	}
}

func TestSnapshotSVGWithoutLabels(t *testing.T) {
	data, err := SnapshotSVG(testLayout(), WithoutLabels())
	if err != nil {
		t.Fatalf("SnapshotSVG error: %v", err)
	}
	if strings.Contains(string(data), "<text") {
		t.Error("labels rendered despite WithoutLabels")
	}
}

func TestEscapeXML(t *testing.T) {
	if got := escapeXML(`a <b> & "c"`); got != "a &lt;b&gt; &amp; &quot;c&quot;" {
		t.Errorf("escapeXML = %q", got)
	}
}
