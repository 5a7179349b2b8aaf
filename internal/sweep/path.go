package sweep

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/twolink/internal/kinematics"
)

// Path is a closed or open pointer trajectory in math space, parameterised
// by u in [0, 1].
type Path interface {
	Name() string
	At(u float64) r2.Vec
}

// PathFunc adapts a function to Path.
type PathFunc struct {
	PathName string
	F        func(u float64) r2.Vec
}

func (p PathFunc) Name() string         { return p.PathName }
func (p PathFunc) At(u float64) r2.Vec { return p.F(u) }

// Circle traces a circle of radius r about c.
func Circle(c r2.Vec, r float64) Path {
	return PathFunc{PathName: "circle", F: func(u float64) r2.Vec {
		s, co := math.Sincos(2 * math.Pi * u)
		return r2.Add(c, r2.Vec{X: r * co, Y: r * s})
	}}
}

// Line runs from a to b.
func Line(a, b r2.Vec) Path {
	return PathFunc{PathName: "line", F: func(u float64) r2.Vec {
		return r2.Add(a, r2.Scale(u, r2.Sub(b, a)))
	}}
}

// Figure8 is a Lissajous curve with half-widths a and b about c.
func Figure8(c r2.Vec, a, b float64) Path {
	return PathFunc{PathName: "figure8", F: func(u float64) r2.Vec {
		t := 2 * math.Pi * u
		return r2.Add(c, r2.Vec{X: a * math.Sin(t), Y: b * math.Sin(2*t) / 2})
	}}
}

// Spiral winds outward from the base to radius r over the given turns.
func Spiral(r, turns float64) Path {
	return PathFunc{PathName: "spiral", F: func(u float64) r2.Vec {
		s, c := math.Sincos(2 * math.Pi * turns * u)
		return r2.Vec{X: r * u * c, Y: r * u * s}
	}}
}

var builders = map[string]func(ws kinematics.Workspace) Path{
	"circle": func(ws kinematics.Workspace) Path {
		return Circle(r2.Vec{}, (ws.Inner+ws.Outer)/2)
	},
	// Overshoots both ends so the outer clamp is exercised.
	"line": func(ws kinematics.Workspace) Path {
		return Line(r2.Vec{X: -1.2 * ws.Outer, Y: 0.25 * ws.Outer}, r2.Vec{X: 1.2 * ws.Outer, Y: 0.25 * ws.Outer})
	},
	"figure8": func(ws kinematics.Workspace) Path {
		return Figure8(r2.Vec{}, 0.8*ws.Outer, 0.8*ws.Outer)
	},
	// Starts at the base and ends outside, crossing both boundaries.
	"spiral": func(ws kinematics.Workspace) Path {
		return Spiral(1.2*ws.Outer, 3)
	},
}

// NewPath builds a named path sized to the workspace.
func NewPath(name string, ws kinematics.Workspace) (Path, error) {
	b, ok := builders[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrInvalidPath, name, strings.Join(PathNames(), ", "))
	}
	return b(ws), nil
}

func PathNames() []string {
	names := make([]string, 0, len(builders))
	for n := range builders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
