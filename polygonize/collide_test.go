package polygonize

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// slotFront returns a front around a thin rectangular hole in the z=0
// plane, 0.2 wide along y and 1 long along x. The untriangulated
// surface is inside the hole.
func slotFront(t *testing.T, adv *advancer) (fr *front, ids []pointID) {
	t.Helper()
	var pos []r3.Vec
	for i := 0; i < 6; i++ {
		pos = append(pos, r3.Vec{X: 1 - 0.2*float64(i)})
	}
	for i := 0; i < 6; i++ {
		pos = append(pos, r3.Vec{X: 0.2 * float64(i), Y: 0.2})
	}
	fr = newFront()
	for _, p := range pos {
		id := adv.newPoint(p)
		fr.pushBack(adv.pts, id)
		ids = append(ids, id)
	}
	return fr, ids
}

func TestIntraCollideSplit(t *testing.T) {
	adv, rec := newTestAdvancer(xyPlane, Config{})
	fr, ids := slotFront(t, adv)
	adv.active = fr
	adv.narrowest()
	// Bottom row point at x=0.6 faces the top row point right above it.
	b2, t3 := ids[2], ids[9]
	if !adv.intraCollide(b2) {
		t.Fatal("expected collision across the slot")
	}
	if adv.stats.Splits != 1 || adv.pool.len() != 1 {
		t.Fatalf("want one split front suspended, got splits=%d pool=%d", adv.stats.Splits, adv.pool.len())
	}
	checkRing(t, adv.pts, fr)
	want := []pointID{ids[0], ids[1], b2, t3, ids[10], ids[11]}
	if got := ringOf(adv.pts, fr); !sameIDs(got, want) {
		t.Errorf("active front after split: got %v, want %v", got, want)
	}
	if !adv.pts.at(b2).dirty || !adv.pts.at(t3).dirty {
		t.Error("split endpoints must be dirty")
	}

	// The seam of the new front was closed by two triangles.
	sub := adv.pool.fronts[0].front
	checkRing(t, adv.pts, sub)
	wantSub := []pointID{ids[3], ids[4], ids[5], ids[6], ids[7], ids[8]}
	if got := ringOf(adv.pts, sub); !sameIDs(got, wantSub) {
		t.Errorf("split front: got %v, want %v", got, wantSub)
	}
	if len(rec.triangles) != 2 {
		t.Fatalf("want 2 seam triangles, got %d", len(rec.triangles))
	}
	for _, tri := range rec.triangles {
		for _, v := range tri {
			if v < 2 || v > 9 {
				t.Errorf("seam triangle %v uses vertex outside of split run", tri)
			}
		}
	}
	if !adv.pool.fronts[0].box.Contains(adv.pts.at(ids[5]).pos) {
		t.Error("suspended box does not contain its points")
	}
}

func TestIntraCollideNoMatch(t *testing.T) {
	adv, rec := newTestAdvancer(xyPlane, Config{})
	fr, ids := slotFront(t, adv)
	adv.active = fr
	adv.narrowest()
	// Corner sees nothing within one step except its neighbors.
	if adv.intraCollide(ids[0]) {
		t.Fatal("unexpected collision")
	}
	if fr.n != 12 || len(rec.triangles) != 0 || adv.pool.len() != 0 {
		t.Error("front modified without collision")
	}
}

// twoHexagons seeds an active hexagon at the origin and a suspended one
// whose hub is 0.6 away along -x, leaving a gap of 0.1 between them.
func twoHexagons(adv *advancer) (near, far *front) {
	near = adv.seed(r3.Vec{Z: 1})
	far = adv.seed(r3.Vec{X: -0.6, Z: 1})
	adv.pool.push(adv.pts, far, adv.cfg.StepLength)
	adv.active = near
	adv.narrowest()
	return near, far
}

func TestInterCollideMerge(t *testing.T) {
	adv, rec := newTestAdvancer(xyPlane, Config{})
	fr, other := twoHexagons(adv)
	id := fr.head // At (-0.25,0,0), facing the other hexagon.
	idVertex := adv.pts.at(id).vertex
	var others []pointID
	other.each(adv.pts, func(it pointID) { others = append(others, it) })
	nTris := len(rec.triangles)

	if !adv.interCollide(id) {
		t.Fatal("expected collision with suspended front")
	}
	if adv.stats.Merges != 1 || adv.pool.len() != 0 {
		t.Fatalf("want merged front, got merges=%d pool=%d", adv.stats.Merges, adv.pool.len())
	}
	if other.n != 0 || other.head != nilPoint {
		t.Error("merged front not emptied")
	}
	checkRing(t, adv.pts, fr)
	if len(rec.triangles) <= nTris {
		t.Error("merge seam not expanded")
	}
	if rec.badHandle {
		t.Error("triangle referenced unpushed vertex")
	}
	// Points of the far side of the other hexagon are now on the active front.
	members := map[pointID]bool{}
	copies := 0
	fr.each(adv.pts, func(it pointID) {
		members[it] = true
		if it != id && adv.pts.at(it).vertex == idVertex {
			copies++
		}
	})
	for _, it := range []pointID{others[0], others[1], others[5]} {
		if !members[it] {
			t.Errorf("point %d of merged front missing from active front", it)
		}
	}
	if copies != 1 {
		t.Errorf("want one copy of the bridge point, got %d", copies)
	}
}

func TestInterCollideOpposedNormals(t *testing.T) {
	adv, _ := newTestAdvancer(xyPlane, Config{})
	fr, other := twoHexagons(adv)
	// Pretend the suspended front lies on the other side of a thin sheet.
	other.each(adv.pts, func(it pointID) {
		p := adv.pts.at(it)
		p.basis.N = r3.Scale(-1, p.basis.N)
	})
	if adv.interCollide(fr.head) {
		t.Error("fronts with opposed normals must not merge")
	}
	if adv.pool.len() != 1 {
		t.Error("suspended front removed")
	}
}
