package view

import "github.com/noahgsolomon/lumen/pkg/graph"

// Theme variable names understood by the default draw callbacks. Values
// are hex colors keyed css-variable style, so a host embedding the
// renderer in a web page can reuse its stylesheet names verbatim.
const (
	VarBackground   = "--graph-bg"
	VarLink         = "--graph-link"
	VarNode         = "--graph-node"
	VarNodeSelected = "--graph-node-selected"
	VarLabel        = "--graph-label"
)

// Theme is a named set of color variables.
type Theme struct {
	Name string
	vars map[string]string
}

// Var resolves a theme variable, falling back when the theme does not
// define it. Unknown variables are expected: custom draw callbacks may ask
// for names only their own theme carries.
func (t Theme) Var(name, fallback string) string {
	if v, ok := t.vars[name]; ok {
		return v
	}
	return fallback
}

// Light is the default palette.
func Light() Theme {
	return Theme{
		Name: graph.ThemeLight,
		vars: map[string]string{
			VarBackground:   "#ffffff",
			VarLink:         "#d0d0d7",
			VarNode:         "#4a5568",
			VarNodeSelected: "#3182ce",
			VarLabel:        "#1a202c",
		},
	}
}

// Dark is the inverted palette.
func Dark() Theme {
	return Theme{
		Name: graph.ThemeDark,
		vars: map[string]string{
			VarBackground:   "#1a1b26",
			VarLink:         "#3b3d52",
			VarNode:         "#a9b1d6",
			VarNodeSelected: "#7aa2f7",
			VarLabel:        "#c0caf5",
		},
	}
}

// ThemeNamed maps a theme name from the wire format to a palette,
// defaulting to light for unrecognized names.
func ThemeNamed(name string) Theme {
	if name == graph.ThemeDark {
		return Dark()
	}
	return Light()
}
