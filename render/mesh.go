package render

import (
	"github.com/soypat/frontmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh. It implements polygonize.MeshSink.
type Mesh struct {
	Vertices []r3.Vec
	Normals  []r3.Vec
	// Faces holds vertex indices of each triangle, wound
	// counter clockwise about the surface normal.
	Faces [][3]int
}

// PushVertex appends a vertex and its normal and returns its index.
func (m *Mesh) PushVertex(position, normal r3.Vec) int {
	m.Vertices = append(m.Vertices, position)
	m.Normals = append(m.Normals, normal)
	return len(m.Vertices) - 1
}

// PushTriangle appends a face.
func (m *Mesh) PushTriangle(v0, v1, v2 int) {
	m.Faces = append(m.Faces, [3]int{v0, v1, v2})
}

// Reset empties the mesh keeping allocated memory.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Normals = m.Normals[:0]
	m.Faces = m.Faces[:0]
}

// Triangles returns the faces of the mesh as unindexed triangles.
func (m *Mesh) Triangles() []Triangle3 {
	tris := make([]Triangle3, len(m.Faces))
	for i, f := range m.Faces {
		tris[i] = Triangle3{V: [3]r3.Vec{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}}
	}
	return tris
}

// Bounds returns the bounding box of the vertices. An empty mesh has zero bounds.
func (m *Mesh) Bounds() r3.Box {
	if len(m.Vertices) == 0 {
		return r3.Box{}
	}
	return r3.Box(d3.BoxOf(d3.Set(m.Vertices)))
}

// ComputeNormals replaces the vertex normals with the area weighted
// average of the normals of the faces sharing each vertex.
// Vertices not used by any face keep their normal.
func (m *Mesh) ComputeNormals() {
	acc := make([]r3.Vec, len(m.Vertices))
	for _, f := range m.Faces {
		v0, v1, v2 := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		// Cross product length is twice the area.
		n := r3.Cross(r3.Sub(v1, v0), r3.Sub(v2, v0))
		for _, v := range f {
			acc[v] = r3.Add(acc[v], n)
		}
	}
	for i, n := range acc {
		if n == (r3.Vec{}) {
			continue
		}
		m.Normals[i] = r3.Unit(n)
	}
}

// EdgeUse counts undirected edges of the mesh by the number of faces sharing them.
// A closed 2-manifold mesh has only manifold edges.
func (m *Mesh) EdgeUse() (boundary, manifold, nonManifold int) {
	uses := make(map[[2]int]int, 3*len(m.Faces)/2)
	for _, f := range m.Faces {
		for i := 0; i < 3; i++ {
			a, b := f[i], f[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			uses[[2]int{a, b}]++
		}
	}
	for _, n := range uses {
		switch n {
		case 1:
			boundary++
		case 2:
			manifold++
		default:
			nonManifold++
		}
	}
	return boundary, manifold, nonManifold
}
