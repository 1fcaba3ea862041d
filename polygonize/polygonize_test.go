package polygonize_test

import (
	"math"
	"sort"
	"testing"

	"github.com/soypat/frontmesh"
	"github.com/soypat/frontmesh/polygonize"
	"gonum.org/v1/gonum/spatial/r3"
)

type meshLog struct {
	positions []r3.Vec
	normals   []r3.Vec
	triangles [][3]int
}

func (m *meshLog) PushVertex(position, normal r3.Vec) int {
	m.positions = append(m.positions, position)
	m.normals = append(m.normals, normal)
	return len(m.positions) - 1
}

func (m *meshLog) PushTriangle(v0, v1, v2 int) {
	m.triangles = append(m.triangles, [3]int{v0, v1, v2})
}

func triangulate(t testing.TB, f frontmesh.Field, cfg polygonize.Config) (*meshLog, polygonize.Stats) {
	t.Helper()
	m := &meshLog{}
	stats, err := polygonize.Triangulate(f, m, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return m, stats
}

func checkHandles(t *testing.T, m *meshLog) {
	t.Helper()
	for i, tri := range m.triangles {
		for _, v := range tri {
			if v < 0 || v >= len(m.positions) {
				t.Fatalf("triangle %d references invalid vertex %d", i, v)
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			t.Fatalf("triangle %d repeats a vertex: %v", i, tri)
		}
	}
}

// topology counts edges by how many triangles share them and triangles that
// appear more than once regardless of winding.
type topology struct {
	manifold, nonManifold int
	// boundary holds the edges used by a single triangle.
	boundary   [][2]int
	duplicates int
}

func topologyOf(m *meshLog) topology {
	var top topology
	uses := make(map[[2]int]int)
	seen := make(map[[3]int]bool)
	for _, tri := range m.triangles {
		sorted := tri
		sort.Ints(sorted[:])
		if seen[sorted] {
			top.duplicates++
		}
		seen[sorted] = true
		for i := 0; i < 3; i++ {
			a, b := tri[i], tri[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			uses[[2]int{a, b}]++
		}
	}
	for edge, n := range uses {
		switch {
		case n == 1:
			top.boundary = append(top.boundary, edge)
		case n == 2:
			top.manifold++
		default:
			top.nonManifold++
		}
	}
	return top
}

// checkClosed fails if the mesh is not a closed 2-manifold with Euler
// characteristic chi.
func checkClosed(t *testing.T, m *meshLog, chi int) {
	t.Helper()
	top := topologyOf(m)
	if len(top.boundary) != 0 || top.nonManifold != 0 || top.duplicates != 0 {
		t.Fatalf("mesh not closed: %d boundary, %d non manifold edges, %d duplicate triangles",
			len(top.boundary), top.nonManifold, top.duplicates)
	}
	if got := len(m.positions) - top.manifold + len(m.triangles); got != chi {
		t.Errorf("Euler characteristic: got %d, want %d", got, chi)
	}
}

func TestSphere(t *testing.T) {
	cfg := polygonize.Config{GradientEpsilon: 1e-6}
	m, stats := triangulate(t, frontmesh.Sphere(1), cfg)
	t.Logf("sphere: %+v", stats)
	checkHandles(t, m)
	if stats.Vertices != len(m.positions) || stats.Triangles != len(m.triangles) {
		t.Errorf("stats do not match sink: %+v", stats)
	}
	// Surface area 4π covered by triangles of edge 0.25.
	if len(m.triangles) < 300 {
		t.Errorf("too few triangles for unit sphere: %d", len(m.triangles))
	}
	for i, p := range m.positions {
		if f := r3.Norm2(p) - 1; math.Abs(f) > 1e-6 {
			t.Errorf("vertex %d off surface: f(%v)=%g", i, p, f)
		}
		n := m.normals[i]
		if math.Abs(r3.Norm(n)-1) > 1e-9 || r3.Dot(n, r3.Unit(p)) < 0.999 {
			t.Errorf("vertex %d bad normal %v", i, n)
		}
	}
	checkClosed(t, m, 2)
	// Triangles wind counter clockwise about the outward normal.
	var outward int
	for _, tri := range m.triangles {
		v0, v1, v2 := m.positions[tri[0]], m.positions[tri[1]], m.positions[tri[2]]
		n := r3.Cross(r3.Sub(v1, v0), r3.Sub(v2, v0))
		if r3.Dot(n, v0) > 0 {
			outward++
		}
	}
	if frac := float64(outward) / float64(len(m.triangles)); frac < 0.95 {
		t.Errorf("only %.2f of triangles face outward", frac)
	}
}

func TestDeterministic(t *testing.T) {
	f := frontmesh.Torus(1, 0.4)
	cfg := polygonize.Config{Radius: 3}
	a, sa := triangulate(t, f, cfg)
	b, sb := triangulate(t, f, cfg)
	if sa != sb {
		t.Fatalf("stats differ: %+v != %+v", sa, sb)
	}
	if len(a.positions) != len(b.positions) || len(a.triangles) != len(b.triangles) {
		t.Fatal("mesh sizes differ")
	}
	for i := range a.positions {
		if a.positions[i] != b.positions[i] || a.normals[i] != b.normals[i] {
			t.Fatalf("vertex %d differs", i)
		}
	}
	for i := range a.triangles {
		if a.triangles[i] != b.triangles[i] {
			t.Fatalf("triangle %d differs", i)
		}
	}
}

func TestTorusSplits(t *testing.T) {
	m, stats := triangulate(t, frontmesh.Torus(1, 0.4), polygonize.Config{})
	t.Logf("torus: %+v", stats)
	checkHandles(t, m)
	// A disk grown over a torus must collide with itself to close.
	if stats.Splits == 0 {
		t.Error("expected the front to split on a torus")
	}
	for i, p := range m.positions {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
			t.Fatalf("vertex %d is NaN", i)
		}
	}
	// Both regions of the split close up against each other.
	checkClosed(t, m, 0)
}

func TestPlaneBorder(t *testing.T) {
	const radius = 2
	f := frontmesh.Plane(r3.Vec{Z: 1}, r3.Vec{})
	m, stats := triangulate(t, f, polygonize.Config{Radius: radius})
	checkHandles(t, m)
	if stats.Capped {
		t.Fatalf("bounded plane must finish: %+v", stats)
	}
	var border int
	for i, p := range m.positions {
		d := r3.Norm(p)
		if d > radius*(1+1e-12) {
			t.Errorf("vertex %d outside bounding sphere: %v", i, p)
		}
		if math.Abs(d-radius) < 1e-9 {
			border++
		}
		if math.Abs(p.Z) > 1e-9 {
			t.Errorf("vertex %d off plane: %v", i, p)
		}
	}
	if border == 0 {
		t.Error("no border vertices on an unbounded surface")
	}
}

func TestMergeSeeds(t *testing.T) {
	f := frontmesh.Plane(r3.Vec{Z: 1}, r3.Vec{})
	cfg := polygonize.Config{
		Radius: 2,
		Seeds:  []r3.Vec{{Z: 1}, {X: -0.6, Z: 1}},
	}
	m, stats := triangulate(t, f, cfg)
	t.Logf("merge: %+v", stats)
	checkHandles(t, m)
	if stats.Merges == 0 {
		t.Error("adjacent seed fronts did not merge")
	}
	if stats.Resumed != 0 {
		t.Errorf("merged front was resumed instead of consumed: %+v", stats)
	}
	top := topologyOf(m)
	if top.nonManifold != 0 || top.duplicates != 0 {
		t.Errorf("overlap at the seam: %d non manifold edges, %d duplicate triangles", top.nonManifold, top.duplicates)
	}
	// The only holes left are along the bounding circle.
	for _, edge := range top.boundary {
		for _, v := range edge {
			if d := r3.Norm(m.positions[v]); math.Abs(d-cfg.Radius) > 1e-9 {
				t.Fatalf("boundary edge %v has interior vertex %v", edge, m.positions[v])
			}
		}
	}
}

func TestMergeSeedsSphere(t *testing.T) {
	cfg := polygonize.Config{
		GradientEpsilon: 1e-6,
		Seeds:           []r3.Vec{{X: 1, Y: 1, Z: 1}, {X: -1, Y: -1, Z: -1}},
	}
	m, stats := triangulate(t, frontmesh.Sphere(1), cfg)
	t.Logf("merge sphere: %+v", stats)
	checkHandles(t, m)
	if stats.Merges == 0 {
		t.Error("opposite seed fronts did not merge")
	}
	checkClosed(t, m, 2)
}

func TestMaxIterations(t *testing.T) {
	m, stats := triangulate(t, frontmesh.Sphere(1), polygonize.Config{MaxIterations: 5})
	if !stats.Capped || stats.Iterations != 5 {
		t.Errorf("want capped run of 5 iterations: %+v", stats)
	}
	// Seed triangles are committed before the first iteration.
	if len(m.triangles) < 6 {
		t.Errorf("got %d triangles", len(m.triangles))
	}
	_, stats = triangulate(t, frontmesh.Sphere(1), polygonize.Config{MaxIterations: -1})
	if stats.Iterations != 0 || !stats.Capped {
		t.Errorf("negative iterations must not advance: %+v", stats)
	}
}

func TestConfigErrors(t *testing.T) {
	f := frontmesh.Sphere(1)
	for _, cfg := range []polygonize.Config{
		{Radius: -1},
		{StepLength: -0.1},
		{StepLength: math.NaN()},
		{Radius: math.Inf(1)},
		{ProjectSteps: -1},
		{GradientEpsilon: -1e-4},
		{Thresholds: polygonize.Thresholds{MinRotation: -1}},
	} {
		if _, err := polygonize.Triangulate(f, &meshLog{}, cfg); err == nil {
			t.Errorf("expected error for %+v", cfg)
		}
	}
	if _, err := polygonize.New(nil, polygonize.Config{}); err == nil {
		t.Error("expected error for nil sink")
	}
}

func TestConfigDefaults(t *testing.T) {
	seeds := []r3.Vec{{X: 2}}
	pz, err := polygonize.New(&meshLog{}, polygonize.Config{Center: r3.Vec{Y: 1}, Seeds: seeds})
	if err != nil {
		t.Fatal(err)
	}
	cfg := pz.Config()
	def := polygonize.DefaultConfig()
	if cfg.StepLength != def.StepLength || cfg.Radius != def.Radius || cfg.Thresholds != def.Thresholds {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	cfg.Seeds[0].X = 5
	if pz.Config().Seeds[0].X != 2 || seeds[0].X != 2 {
		t.Error("configuration aliases seeds")
	}

	pz, _ = polygonize.New(&meshLog{}, polygonize.Config{Center: r3.Vec{Y: 1}})
	if got := pz.Config().Seeds; len(got) != 1 || got[0] != (r3.Vec{X: 1, Y: 2, Z: 1}) {
		t.Errorf("default seed: got %v", got)
	}
}
