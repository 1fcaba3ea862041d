// Package render converts triangulated implicit surfaces into meshes and
// writes them to STL files and PNG previews.
package render

import (
	"github.com/soypat/frontmesh/internal/d3"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer streams the triangles of a model. ReadTriangles
// returns io.EOF once all triangles have been read.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// Triangle3 is a 3D triangle.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit normal of the triangle following the right hand rule.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate returns true if two vertices of the triangle are within tol of each other.
func (t Triangle3) Degenerate(tol float64) bool {
	return d3.EqualWithin(t.V[0], t.V[1], tol) ||
		d3.EqualWithin(t.V[1], t.V[2], tol) ||
		d3.EqualWithin(t.V[2], t.V[0], tol)
}

func (t Triangle3) toMS3() ms3.Triangle {
	return ms3.Triangle{vec32(t.V[0]), vec32(t.V[1]), vec32(t.V[2])}
}

func triangle3(t ms3.Triangle) Triangle3 {
	return Triangle3{V: [3]r3.Vec{vec64(t[0]), vec64(t[1]), vec64(t[2])}}
}

func vec32(v r3.Vec) ms3.Vec {
	return ms3.Vec{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func vec64(v ms3.Vec) r3.Vec {
	return r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}
