package polygonize

import (
	"math"

	"github.com/soypat/frontmesh"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// solver projects points onto the zero level-set of a field and computes
// the local differential geometry at them. It is created for a single
// triangulation and holds no state besides the field.
//
// Gradients are estimated with forward differences. Where the gradient
// vanishes the results are NaN or infinite and propagate to the caller.
type solver struct {
	f   frontmesh.Field
	eps float64
}

// basis is a right handed orthonormal frame (T1, T2, N) at a surface point.
// T1 and T2 span the tangent plane.
type basis struct {
	N, T1, T2 r3.Vec
}

// gradient returns the forward difference gradient at p given fp=f(p).
func (s solver) gradient(p r3.Vec, fp float64) r3.Vec {
	eps := s.eps
	return r3.Vec{
		X: (s.f.Evaluate(r3.Vec{X: p.X + eps, Y: p.Y, Z: p.Z}) - fp) / eps,
		Y: (s.f.Evaluate(r3.Vec{X: p.X, Y: p.Y + eps, Z: p.Z}) - fp) / eps,
		Z: (s.f.Evaluate(r3.Vec{X: p.X, Y: p.Y, Z: p.Z + eps}) - fp) / eps,
	}
}

// project moves p toward the surface with iters gradient descent steps
// and returns the result.
func (s solver) project(p r3.Vec, iters int) r3.Vec {
	for i := 0; i < iters; i++ {
		fp := s.f.Evaluate(p)
		g := s.gradient(p, fp)
		p = r3.Sub(p, r3.Scale(fp/r3.Norm2(g), g))
	}
	return p
}

// normal returns the unit gradient at p.
func (s solver) normal(p r3.Vec) r3.Vec {
	return r3.Unit(s.gradient(p, s.f.Evaluate(p)))
}

// basis returns the tangent frame at p. T1 is obtained by crossing the normal
// with the Z axis, or the Y axis when the normal is nearly parallel to Z.
func (s solver) basis(p r3.Vec) basis {
	n := s.normal(p)
	var t1 r3.Vec
	if math.Abs(n.X) > 0.5 || math.Abs(n.Y) > 0.5 {
		t1 = r3.Unit(r3.Vec{X: n.Y, Y: -n.X}) // n × ẑ
	} else {
		t1 = r3.Unit(r3.Vec{X: -n.Z, Z: n.X}) // n × ŷ
	}
	return basis{N: n, T1: t1, T2: r3.Cross(n, t1)}
}

// toPlane returns the coordinates of v in the tangent plane.
func (b basis) toPlane(v r3.Vec) r2.Vec {
	return r2.Vec{X: r3.Dot(b.T1, v), Y: r3.Dot(b.T2, v)}
}

// fromPlane maps tangent plane coordinates back to 3D space.
func (b basis) fromPlane(v r2.Vec) r3.Vec {
	return r3.Add(r3.Scale(v.X, b.T1), r3.Scale(v.Y, b.T2))
}

// planeAngle returns the angle of v projected onto the tangent plane,
// measured from T1 toward T2.
func (b basis) planeAngle(v r3.Vec) float64 {
	return math.Atan2(r3.Dot(b.T2, v), r3.Dot(b.T1, v))
}

// wrapAngle returns x modulo 2π in [0, 2π).
func wrapAngle(x float64) float64 {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	return x
}
