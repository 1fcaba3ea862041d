package polygonize

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// sees reports whether target is within one step of p and inside the
// opening angle of p. p's angle must be up to date.
func (adv *advancer) sees(p, target *frontPoint) bool {
	if target.border || dist2(target.pos, p.pos) > adv.step2 {
		return false
	}
	w := wrapAngle(p.basis.planeAngle(r3.Sub(target.pos, p.pos)) - p.baseAngle)
	return w <= p.angle
}

// intraCollide looks for a point of the active front, away from the
// immediate neighbourhood of id, that id can see. On a match the front is
// split in two and intraCollide returns true.
func (adv *advancer) intraCollide(id pointID) bool {
	fr := adv.active
	target := id
	for i := 0; i < 3; i++ {
		target = adv.pts.at(target).next
	}
	for i := 0; i < fr.n-5; i++ {
		if adv.sees(adv.pts.at(id), adv.pts.at(target)) {
			adv.split(id, target)
			return true
		}
		target = adv.pts.at(target).next
	}
	return false
}

// interCollide looks for a point on a suspended front that id can see.
// On a match the suspended front is merged into the active front and
// interCollide returns true.
func (adv *advancer) interCollide(id pointID) bool {
	pos := adv.pts.at(id).pos
	for i, s := range adv.pool.fronts {
		if !s.box.Contains(pos) {
			continue
		}
		target := s.front.head
		for k := 0; k < s.front.n; k++ {
			p, t := adv.pts.at(id), adv.pts.at(target)
			// Fronts running over opposite sides of a thin sheet must not merge.
			if !t.border && r3.Dot(t.basis.N, p.basis.N) >= 0 && adv.sees(p, t) {
				adv.merge(id, i, target)
				return true
			}
			target = t.next
		}
	}
	return false
}

// split separates the run of points strictly between id and target into a
// new front, closed by copies of id and target, and suspends it. Of the two
// runs joining id and target the one not holding the active front's head is moved.
// Both the new front's seam points are expanded immediately.
func (adv *advancer) split(id, target pointID) {
	fr := adv.active
	adv.stats.Splits++
	adv.pts.at(id).dirty = true
	adv.pts.at(target).dirty = true
	first, last := id, target
	if fr.position(adv.pts, target) < fr.position(adv.pts, id) {
		first, last = target, id
	}

	sub := newFront()
	firstCopy := adv.pts.clone(first)
	sub.pushBack(adv.pts, firstCopy)
	for it := adv.pts.at(first).next; it != last; {
		next := adv.pts.at(it).next
		fr.remove(adv.pts, it)
		sub.pushBack(adv.pts, it)
		it = next
	}
	lastCopy := adv.pts.clone(last)
	sub.pushBack(adv.pts, lastCopy)

	adv.closeSeam(sub, firstCopy, lastCopy)
	if sub.n > 0 {
		adv.pool.push(adv.pts, sub, adv.cfg.StepLength)
	}
}

// merge splices the whole suspended front i into the active front at id,
// bridging id and target:
//  id, target, target+1, ..., target-1, target', id', ...
// where primed points are copies. id and target are then expanded.
func (adv *advancer) merge(id pointID, i int, target pointID) {
	fr := adv.active
	other := adv.pool.fronts[i].front
	adv.pool.remove(i)
	adv.stats.Merges++

	ring := make([]pointID, 0, other.n)
	for it, k := target, 0; k < other.n; k++ {
		ring = append(ring, it)
		it = adv.pts.at(it).next
	}
	other.clear(adv.pts)
	after := adv.pts.at(id).next
	targetCopy := adv.pts.clone(target)
	idCopy := adv.pts.clone(id)

	at := id
	for _, it := range append(ring, targetCopy, idCopy) {
		fr.insertAfter(adv.pts, at, it)
		at = it
	}
	// Neighbors of the copies changed identity, not position.
	adv.pts.at(ring[len(ring)-1]).dirty = true
	adv.pts.at(after).dirty = true
	adv.pts.at(id).dirty = true
	adv.pts.at(target).dirty = true

	adv.closeSeam(fr, id, target)
}

// closeSeam expands the two points joined by a new split or merge seam,
// starting with the one with the smaller opening angle.
func (adv *advancer) closeSeam(fr *front, a, b pointID) {
	angleA := adv.calcAngle(a)
	angleB := adv.calcAngle(b)
	if !(angleA < angleB) {
		a, b = b, a
	}
	adv.expand(fr, a)
	if fr.n < 3 || !adv.pts.at(b).onFront {
		return
	}
	adv.calcAngle(b)
	adv.expand(fr, b)
}
