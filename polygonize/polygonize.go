/*
Package polygonize triangulates implicit surfaces with Hartmann's marching
method (E. Hartmann, A marching method for the triangulation of surfaces,
The Visual Computer 14, 1998).

A front of boundary points is grown over the zero level-set of a field,
starting from a small hexagon around a seed. At every step the front point
with the smallest opening angle is either expanded, emitting a fan of new
triangles, or, when it comes close to another part of a front, the fronts
are split or merged. No grid is sampled so the triangles are of roughly
uniform size set by the step length.

Triangulation is single threaded and deterministic: identical fields and
configurations produce identical sequences of PushVertex and PushTriangle calls.
*/
package polygonize

import (
	"errors"

	"github.com/soypat/frontmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// MeshSink receives the mesh as it is generated. It owns the vertex and index buffers.
type MeshSink interface {
	// PushVertex stores a vertex with its surface normal and returns a handle to it.
	// The handle is used to reference the vertex in PushTriangle calls.
	PushVertex(position, normal r3.Vec) int
	// PushTriangle stores a triangle made of three previously pushed vertices.
	PushTriangle(v0, v1, v2 int)
}

// Stats summarizes a finished triangulation.
type Stats struct {
	// Iterations of the advancing loop.
	Iterations int
	// Vertices and Triangles committed to the MeshSink.
	Vertices  int
	Triangles int
	// Splits counts fronts that collided with themselves and were split in two.
	Splits int
	// Merges counts suspended fronts merged into the active front.
	Merges int
	// Resumed counts suspended fronts that became the active front.
	Resumed int
	// Degenerate counts triangles not committed because they referenced the same vertex twice.
	Degenerate int
	// Capped is true if triangulation stopped at Config.MaxIterations.
	Capped bool
}

// Polygonizer triangulates fields into a MeshSink.
// A Polygonizer must not be used concurrently; use one per goroutine.
type Polygonizer struct {
	sink MeshSink
	cfg  Config
}

// New returns a Polygonizer that commits to sink. Unset fields in cfg take
// the value of DefaultConfig.
func New(sink MeshSink, cfg Config) (*Polygonizer, error) {
	if sink == nil {
		return nil, errors.New("nil mesh sink")
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Polygonizer{sink: sink, cfg: cfg}, nil
}

// Config returns the configuration in use, defaults included.
func (pz *Polygonizer) Config() Config {
	cfg := pz.cfg
	cfg.Seeds = append([]r3.Vec(nil), cfg.Seeds...)
	return cfg
}

// Triangulate meshes the zero level-set of f within the bounding sphere and
// commits the result to the sink. It never fails: if the field is not regular
// around the surface or the seed is far from it the resulting mesh may
// be incomplete or contain NaNs.
func (pz *Polygonizer) Triangulate(f frontmesh.Field) Stats {
	adv := newAdvancer(solver{f: f, eps: pz.cfg.GradientEpsilon}, pz.sink, pz.cfg)
	adv.run()
	return adv.stats
}

// Triangulate is shorthand for creating a Polygonizer and triangulating f.
func Triangulate(f frontmesh.Field, sink MeshSink, cfg Config) (Stats, error) {
	pz, err := New(sink, cfg)
	if err != nil {
		return Stats{}, err
	}
	return pz.Triangulate(f), nil
}
