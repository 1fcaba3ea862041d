package polygonize

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// advancer holds the state of a single triangulation.
//
// Pointers returned by pts.at are invalidated by any call that adds points
// (newPoint, clone, expand, split, merge) since the arena may grow.
type advancer struct {
	sv    solver
	sink  MeshSink
	cfg   Config
	step2 float64

	pts    pointArena
	active *front
	pool   frontPool
	stats  Stats
}

func newAdvancer(sv solver, sink MeshSink, cfg Config) *advancer {
	return &advancer{
		sv:    sv,
		sink:  sink,
		cfg:   cfg,
		step2: cfg.StepLength * cfg.StepLength,
		pts:   make(pointArena, 0, 1024),
	}
}

// run seeds the fronts and advances them until every front is closed,
// only border points remain or the iteration budget is spent.
func (adv *advancer) run() {
	adv.active = adv.seed(adv.cfg.Seeds[0])
	for _, guess := range adv.cfg.Seeds[1:] {
		fr := adv.seed(guess)
		adv.pool.push(adv.pts, fr, adv.cfg.StepLength)
	}
	for adv.active != nil {
		if adv.stats.Iterations >= adv.cfg.MaxIterations {
			adv.stats.Capped = true
			return
		}
		adv.stats.Iterations++
		id := adv.narrowest()
		if id == nilPoint {
			adv.active = adv.pool.pop()
			if adv.active != nil {
				adv.stats.Resumed++
			}
			continue
		}
		if !adv.intraCollide(id) && !adv.interCollide(id) {
			adv.expand(adv.active, id)
		}
	}
}

// narrowest returns the non-border point of the active front with the
// smallest opening angle, refreshing stale angles along the way.
// Ties go to the point found first from the front's head.
// It returns nilPoint if there are no expandable points.
func (adv *advancer) narrowest() pointID {
	sel := nilPoint
	minAngle := 0.0
	adv.active.each(adv.pts, func(id pointID) {
		p := adv.pts.at(id)
		if p.border {
			return
		}
		if p.dirty {
			adv.calcAngle(id)
		}
		if sel == nilPoint || p.angle < minAngle {
			sel = id
			minAngle = p.angle
		}
	})
	return sel
}

// calcAngle recomputes the opening angle of id from its current neighbors
// and clears the dirty flag.
func (adv *advancer) calcAngle(id pointID) float64 {
	p := adv.pts.at(id)
	left, right := neighbors(adv.pts, id)
	p.rotOrigin = p.basis.toPlane(r3.Sub(adv.pts.at(left).pos, p.pos))
	w1 := math.Atan2(p.rotOrigin.Y, p.rotOrigin.X)
	w2 := p.basis.planeAngle(r3.Sub(adv.pts.at(right).pos, p.pos))
	p.angle = wrapAngle(w2 - w1)
	p.baseAngle = w1
	p.dirty = false
	return p.angle
}

// seed projects guess onto the surface and returns a hexagonal front around it.
// The six triangles joining the hexagon to the projected guess are committed.
func (adv *advancer) seed(guess r3.Vec) *front {
	step := adv.cfg.StepLength
	hub := adv.sv.project(guess, adv.cfg.SeedProjectSteps)
	hb := adv.sv.basis(hub)
	hubVertex := adv.pushVertex(hub, hb.N)
	fr := newFront()
	for i := 0; i < 6; i++ {
		sin, cos := math.Sincos(float64(i) * math.Pi / 3)
		p := r3.Add(hub, r3.Scale(step, hb.fromPlane(r2.Vec{X: cos, Y: sin})))
		id := adv.newPoint(adv.sv.project(p, adv.cfg.ProjectSteps))
		fr.pushBack(adv.pts, id)
	}
	prev := adv.pts.at(adv.pts.at(fr.head).prev).vertex
	fr.each(adv.pts, func(id pointID) {
		v := adv.pts.at(id).vertex
		adv.emit(hubVertex, prev, v)
		prev = v
	})
	return fr
}

// newPoint creates an unlinked front point at pos and commits its vertex.
// Points outside the bounding sphere are moved onto it and marked as border.
func (adv *advancer) newPoint(pos r3.Vec) pointID {
	c, radius := adv.cfg.Center, adv.cfg.Radius
	if d2 := r3.Norm2(r3.Sub(pos, c)); d2 > radius*radius {
		pos = r3.Add(c, r3.Scale(radius/math.Sqrt(d2), r3.Sub(pos, c)))
		v := adv.pushVertex(pos, adv.sv.normal(pos))
		return adv.pts.add(frontPoint{pos: pos, border: true, vertex: v})
	}
	b := adv.sv.basis(pos)
	v := adv.pushVertex(pos, b.N)
	return adv.pts.add(frontPoint{pos: pos, basis: b, dirty: true, vertex: v})
}

func (adv *advancer) pushVertex(pos, normal r3.Vec) int {
	adv.stats.Vertices++
	return adv.sink.PushVertex(pos, normal)
}

// emit commits a triangle unless it references a vertex more than once,
// which happens when a front revisits a vertex after a merge.
func (adv *advancer) emit(v0, v1, v2 int) {
	if v0 == v1 || v1 == v2 || v0 == v2 {
		adv.stats.Degenerate++
		return
	}
	adv.sink.PushTriangle(v0, v1, v2)
	adv.stats.Triangles++
}

func dist2(a, b r3.Vec) float64 {
	return r3.Norm2(r3.Sub(a, b))
}
