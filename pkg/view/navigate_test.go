package view

import (
	"testing"

	"github.com/noahgsolomon/lumen/pkg/force"
)

func TestMoveFiltersWrongSide(t *testing.T) {
	center := placedNode("center", 100, 100)
	left := placedNode("left", 50, 100)
	nodes := []*force.Node{center, left}

	var nv Navigator
	got := nv.Move(nodes, center, DirRight)
	if got != center {
		t.Errorf("moved to %s, want to stay on center (only candidate is behind)", got.ID)
	}
}

func TestMovePicksEachDirection(t *testing.T) {
	center := placedNode("center", 100, 100)
	nodes := []*force.Node{
		center,
		placedNode("north", 100, 40),
		placedNode("south", 100, 160),
		placedNode("west", 40, 100),
		placedNode("east", 160, 100),
	}

	tests := []struct {
		dir  Direction
		want string
	}{
		{DirUp, "north"},
		{DirDown, "south"},
		{DirLeft, "west"},
		{DirRight, "east"},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			var nv Navigator
			got := nv.Move(nodes, center, tt.dir)
			if got.ID != tt.want {
				t.Errorf("moved to %s, want %s", got.ID, tt.want)
			}
		})
	}
}

func TestMovePrefersCloserAndStraighter(t *testing.T) {
	center := placedNode("center", 0, 0)

	tests := []struct {
		name  string
		other []*force.Node
		want  string
	}{
		{
			"closer wins on equal angle",
			[]*force.Node{placedNode("near", 50, 0), placedNode("far", 200, 0)},
			"near",
		},
		{
			"straighter wins at equal distance",
			[]*force.Node{placedNode("diagonal", 71, 71), placedNode("straight", 100, 0)},
			"straight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nv Navigator
			got := nv.Move(append([]*force.Node{center}, tt.other...), center, DirRight)
			if got.ID != tt.want {
				t.Errorf("moved to %s, want %s", got.ID, tt.want)
			}
		})
	}
}

func TestMovePerpendicularCandidateQualifies(t *testing.T) {
	center := placedNode("center", 0, 0)
	side := placedNode("side", 10, 0)
	nodes := []*force.Node{center, side}

	// Moving up from center: "side" sits exactly on the perpendicular, so
	// it scores zero but still wins as the only candidate.
	var nv Navigator
	if got := nv.Move(nodes, center, DirUp); got != side {
		t.Errorf("moved to %s, want side", got.ID)
	}

	// An on-axis candidate outranks the perpendicular one.
	north := placedNode("north", 0, -10)
	var nv2 Navigator
	if got := nv2.Move(append(nodes, north), center, DirUp); got != north {
		t.Errorf("moved to %s, want north", got.ID)
	}
}

func TestMoveSkipsCoincidentNode(t *testing.T) {
	center := placedNode("center", 0, 0)
	twin := placedNode("twin", 0, 0)
	east := placedNode("east", 10, 0)

	var nv Navigator
	got := nv.Move([]*force.Node{center, twin, east}, center, DirRight)
	if got.ID != "east" {
		t.Errorf("moved to %s, want east (coincident node skipped)", got.ID)
	}
}

func TestMoveWithoutSelectionRecalls(t *testing.T) {
	a := placedNode("a", 0, 0)
	b := placedNode("b", 10, 0)
	nodes := []*force.Node{a, b}

	var nv Navigator
	nv.Remember(b)
	if got := nv.Move(nodes, nil, DirLeft); got != b {
		t.Errorf("recalled %v, want remembered node b", got)
	}
}

func TestRecall(t *testing.T) {
	a := placedNode("a", 0, 0)
	b := placedNode("b", 10, 0)

	t.Run("remembered node still present", func(t *testing.T) {
		var nv Navigator
		nv.Remember(b)
		if got := nv.Recall([]*force.Node{a, b}); got != b {
			t.Errorf("got %v, want b", got)
		}
	})

	t.Run("remembered node gone falls back to first", func(t *testing.T) {
		var nv Navigator
		nv.Remember(b)
		if got := nv.Recall([]*force.Node{a}); got != a {
			t.Errorf("got %v, want first node a", got)
		}
	})

	t.Run("no memo returns first", func(t *testing.T) {
		var nv Navigator
		if got := nv.Recall([]*force.Node{a, b}); got != a {
			t.Errorf("got %v, want a", got)
		}
	})

	t.Run("empty set returns nil", func(t *testing.T) {
		var nv Navigator
		if got := nv.Recall(nil); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})

	t.Run("unplaced nodes ignored", func(t *testing.T) {
		var nv Navigator
		ghost := &force.Node{ID: "ghost"}
		if got := nv.Recall([]*force.Node{ghost, a}); got != a {
			t.Errorf("got %v, want a", got)
		}
	})
}
