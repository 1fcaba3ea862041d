package polygonize

import (
	"github.com/soypat/frontmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// pointID is a stable handle to a frontPoint in a pointArena.
type pointID int32

const nilPoint pointID = -1

// frontPoint is a vertex on the boundary of the triangulated region.
type frontPoint struct {
	pos r3.Vec
	// basis is the zero value for border points.
	basis basis
	// angle is the opening angle: the amount of untriangulated surface
	// seen from this point, in [0, 2π).
	angle float64
	// baseAngle is the tangent plane angle toward the left neighbor.
	baseAngle float64
	// rotOrigin points toward the left neighbor in tangent plane coordinates.
	rotOrigin r2.Vec
	border    bool
	// dirty is set when the point or one of its neighbors changed
	// and angle, baseAngle and rotOrigin are stale.
	dirty bool
	// vertex is the handle returned by MeshSink.PushVertex.
	vertex int

	prev, next pointID
	// onFront is false once the point has been consumed or discarded.
	onFront bool
}

// pointArena stores all front points of a triangulation. Handles are never reused.
type pointArena []frontPoint

// add stores p and returns its handle. The point is not linked to any front.
func (a *pointArena) add(p frontPoint) pointID {
	p.prev, p.next = nilPoint, nilPoint
	p.onFront = false
	*a = append(*a, p)
	return pointID(len(*a) - 1)
}

// clone adds a value copy of the point at id. The copy shares the output vertex
// but no front state: it is unlinked and marked dirty.
func (a *pointArena) clone(id pointID) pointID {
	p := (*a)[id]
	p.dirty = true
	return a.add(p)
}

func (a pointArena) at(id pointID) *frontPoint { return &a[id] }

// front is a cyclic sequence of points stored in a pointArena.
// Scanning always starts at head which makes traversal order deterministic.
type front struct {
	head pointID
	n    int
}

func newFront() *front { return &front{head: nilPoint} }

// pushBack links point id at the end of the sequence (to the left of head).
func (fr *front) pushBack(a pointArena, id pointID) {
	p := a.at(id)
	p.onFront = true
	if fr.head == nilPoint {
		fr.head = id
		p.prev, p.next = id, id
		fr.n = 1
		return
	}
	fr.insertAfter(a, a.at(fr.head).prev, id)
}

// insertAfter links point id to the right of at.
func (fr *front) insertAfter(a pointArena, at, id pointID) {
	p, left := a.at(id), a.at(at)
	right := left.next
	p.prev, p.next = at, right
	p.onFront = true
	left.next = id
	a.at(right).prev = id
	fr.n++
}

// remove unlinks point id from the front.
func (fr *front) remove(a pointArena, id pointID) {
	p := a.at(id)
	if fr.n == 1 {
		fr.head = nilPoint
	} else {
		a.at(p.prev).next = p.next
		a.at(p.next).prev = p.prev
		if fr.head == id {
			fr.head = p.next
		}
	}
	p.prev, p.next = nilPoint, nilPoint
	p.onFront = false
	fr.n--
}

// clear discards all points of the front.
func (fr *front) clear(a pointArena) {
	id := fr.head
	for i := 0; i < fr.n; i++ {
		p := a.at(id)
		id = p.next
		p.prev, p.next = nilPoint, nilPoint
		p.onFront = false
	}
	fr.head = nilPoint
	fr.n = 0
}

// each calls fn for every point starting at head, following right neighbors.
// fn must not modify the front.
func (fr *front) each(a pointArena, fn func(id pointID)) {
	id := fr.head
	for i := 0; i < fr.n; i++ {
		next := a.at(id).next
		fn(id)
		id = next
	}
}

// position returns the number of right steps from head to id.
// id must belong to the front.
func (fr *front) position(a pointArena, id pointID) int {
	pos := 0
	for it := fr.head; it != id; it = a.at(it).next {
		pos++
	}
	return pos
}

// bounds returns the bounding box of the front's points.
func (fr *front) bounds(a pointArena) d3.Box {
	set := make(d3.Set, 0, fr.n)
	fr.each(a, func(id pointID) {
		set = append(set, a.at(id).pos)
	})
	return d3.BoxOf(set)
}

// neighbors returns the left and right neighbors of id.
func neighbors(a pointArena, id pointID) (left, right pointID) {
	p := a.at(id)
	return p.prev, p.next
}
