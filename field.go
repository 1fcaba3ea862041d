package frontmesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Field is a scalar field in 3D space. The surface triangulated
// by this module is the zero level-set of a Field.
//
// Any SDF3 (an Evaluate method plus Bounds) satisfies Field.
// The field may be undefined or singular far from its surface.
type Field interface {
	// Evaluate returns the value of the field at p.
	Evaluate(p r3.Vec) float64
}

// FieldFunc adapts an ordinary function of the coordinates to a Field.
type FieldFunc func(x, y, z float64) float64

// Evaluate calls f(p.X, p.Y, p.Z).
func (f FieldFunc) Evaluate(p r3.Vec) float64 {
	return f(p.X, p.Y, p.Z)
}

// Lerp returns a field that linearly interpolates between a and b:
//  (1-t)*a + t*b
// t=0 evaluates to a and t=1 to b. It is used to morph one surface into another.
func Lerp(a, b Field, t float64) Field {
	if t == 0 {
		return a
	} else if t == 1 {
		return b
	}
	return lerp{a: a, b: b, t: t}
}

type lerp struct {
	a, b Field
	t    float64
}

func (l lerp) Evaluate(p r3.Vec) float64 {
	return (1-l.t)*l.a.Evaluate(p) + l.t*l.b.Evaluate(p)
}

// Normal3 returns the normal of a Field at a point (doesn't need to be on the surface).
// Computed by sampling it several times inside a box of side 2*eps centered on p.
func Normal3(f Field, p r3.Vec, eps float64) r3.Vec {
	return r3.Unit(r3.Vec{
		X: f.Evaluate(p.Add(r3.Vec{X: eps})) - f.Evaluate(p.Add(r3.Vec{X: -eps})),
		Y: f.Evaluate(p.Add(r3.Vec{Y: eps})) - f.Evaluate(p.Add(r3.Vec{Y: -eps})),
		Z: f.Evaluate(p.Add(r3.Vec{Z: eps})) - f.Evaluate(p.Add(r3.Vec{Z: -eps})),
	})
}
