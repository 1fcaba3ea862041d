package render

import (
	"io"

	"github.com/soypat/frontmesh"
	"github.com/soypat/frontmesh/polygonize"
)

var _ Renderer = (*FrontRenderer)(nil)

// FrontRenderer is a Renderer that triangulates a field with the marching
// front method. The field is triangulated on the first call to ReadTriangles.
type FrontRenderer struct {
	f         frontmesh.Field
	pz        *polygonize.Polygonizer
	mesh      Mesh
	stats     polygonize.Stats
	done      bool
	unwritten triangle3Buffer
}

// NewFrontRenderer returns a Renderer of the zero level-set of f.
func NewFrontRenderer(f frontmesh.Field, cfg polygonize.Config) (*FrontRenderer, error) {
	fr := &FrontRenderer{f: f}
	pz, err := polygonize.New(&fr.mesh, cfg)
	if err != nil {
		return nil, err
	}
	fr.pz = pz
	return fr, nil
}

// ReadTriangles reads triangles of the surface into dst.
func (fr *FrontRenderer) ReadTriangles(dst []Triangle3) (int, error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	fr.triangulate()
	if fr.unwritten.Len() == 0 {
		return 0, io.EOF
	}
	return fr.unwritten.Read(dst), nil
}

// Mesh returns the indexed mesh, triangulating the field if needed.
func (fr *FrontRenderer) Mesh() *Mesh {
	fr.triangulate()
	return &fr.mesh
}

// Stats returns the triangulation statistics, triangulating the field if needed.
func (fr *FrontRenderer) Stats() polygonize.Stats {
	fr.triangulate()
	return fr.stats
}

func (fr *FrontRenderer) triangulate() {
	if fr.done {
		return
	}
	fr.done = true
	fr.stats = fr.pz.Triangulate(fr.f)
	fr.unwritten.Write(fr.mesh.Triangles())
}
