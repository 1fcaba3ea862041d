package polygonize

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// fanCount returns the number of triangles used to fill the opening angle
// theta of a point whose left and right neighbors are at l and r, and the
// rotation between consecutive fan edges.
func (adv *advancer) fanCount(theta float64, p, l, r r3.Vec) (n int, rotation float64) {
	th := adv.cfg.Thresholds
	n = int(3*theta/math.Pi) + 1
	rotation = theta / float64(n)
	switch {
	case rotation < th.MinRotation && n > 1:
		n--
		rotation = theta / float64(n)
	case n == 1 && rotation > th.MinRotation && dist2(l, r) > th.SplitFanRatio*adv.step2:
		n = 2
		rotation /= 2
	case theta < th.NarrowAngle && (dist2(l, p) <= th.CloseRatio*adv.step2 || dist2(r, p) <= th.CloseRatio*adv.step2):
		n = 1
	}
	return n, rotation
}

// expand fills the opening angle of point id of fr with a fan of triangles.
// A single triangle consumes the point. Otherwise the point is replaced on
// the front by the new fan points. The angle of id must be up to date.
func (adv *advancer) expand(fr *front, id pointID) {
	p := *adv.pts.at(id) // Copy: the arena grows below.
	left, right := p.prev, p.next
	l, r := adv.pts.at(left), adv.pts.at(right)
	n, rotation := adv.fanCount(p.angle, p.pos, l.pos, r.pos)
	l.dirty = true
	r.dirty = true
	lv, rv := l.vertex, r.vertex
	if n == 1 {
		adv.emit(lv, rv, p.vertex)
		fr.remove(adv.pts, id)
		if fr.n < 3 {
			// Last triangle of the front.
			fr.clear(adv.pts)
		}
		return
	}

	fr.remove(adv.pts, id)
	origin := r2.Unit(p.rotOrigin)
	step := adv.cfg.StepLength
	at, prevVertex := left, lv
	for i := 1; i < n; i++ {
		sin, cos := math.Sincos(rotation * float64(i))
		dir := r2.Vec{
			X: cos*origin.X - sin*origin.Y,
			Y: sin*origin.X + cos*origin.Y,
		}
		pos := r3.Add(p.pos, r3.Scale(step, p.basis.fromPlane(dir)))
		nid := adv.newPoint(adv.sv.project(pos, adv.cfg.ProjectSteps))
		fr.insertAfter(adv.pts, at, nid)
		v := adv.pts.at(nid).vertex
		adv.emit(prevVertex, v, p.vertex)
		at, prevVertex = nid, v
	}
	adv.emit(prevVertex, rv, p.vertex)
}
