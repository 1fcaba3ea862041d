package render

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ kdtree.Interface  = kdVertices{}
	_ kdtree.Comparable = kdVertex{}
	_ kdtree.SortSlicer = kdPlane{}
)

// CoincidentVertices returns the index pairs i<j of distinct vertices that are
// within tol of each other, sorted by i then j. Fronts that meet without merging
// leave cracks with coincident vertices along them.
func (m *Mesh) CoincidentVertices(tol float64) [][2]int {
	pts := make(kdVertices, len(m.Vertices))
	for i, v := range m.Vertices {
		pts[i] = kdVertex{pos: v, idx: i}
	}
	tree := kdtree.New(pts, false)
	var pairs [][2]int
	for i, v := range m.Vertices {
		keep := kdtree.NewDistKeeper(tol * tol)
		tree.NearestSet(keep, kdVertex{pos: v, idx: i})
		for _, c := range keep.Heap {
			if c.Comparable == nil {
				// Sentinel of an empty keeper.
				continue
			}
			if j := c.Comparable.(kdVertex).idx; j > i {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a][0] != pairs[b][0] {
			return pairs[a][0] < pairs[b][0]
		}
		return pairs[a][1] < pairs[b][1]
	})
	return pairs
}

type kdVertex struct {
	pos r3.Vec
	idx int
}

type kdVertices []kdVertex

func (k kdVertices) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k kdVertices) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdVertices) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: int(d), vertices: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdVertices) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
//
// Given c = a.Compare(b, d):
//  c = a_d - b_d
func (a kdVertex) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdVertex), int(d))
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdVertex) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a kdVertex) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.pos, b.(kdVertex).pos))
}

// c = a.dim - b.dim
func kdComp(a, b kdVertex, dim int) (c float64) {
	switch dim {
	case 0:
		c = a.pos.X - b.pos.X
	case 1:
		c = a.pos.Y - b.pos.Y
	case 2:
		c = a.pos.Z - b.pos.Z
	}
	return c
}

type kdPlane struct {
	dim      int
	vertices kdVertices
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.vertices[i], p.vertices[j], p.dim) < 0
}

func (p kdPlane) Swap(i, j int) {
	p.vertices[i], p.vertices[j] = p.vertices[j], p.vertices[i]
}

func (p kdPlane) Len() int { return len(p.vertices) }

func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.vertices = p.vertices[start:end]
	return p
}
