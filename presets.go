package frontmesh

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sphere returns the field x²+y²+z²-r² whose zero set is a sphere
// of radius r centered at the origin.
func Sphere(r float64) Field {
	r2 := r * r
	return FieldFunc(func(x, y, z float64) float64 {
		return x*x + y*y + z*z - r2
	})
}

// Torus returns the field of a torus lying on the XY plane with major
// radius R (distance from origin to tube center) and minor radius r.
func Torus(R, r float64) Field {
	r2 := r * r
	return FieldFunc(func(x, y, z float64) float64 {
		q := math.Hypot(x, y) - R
		return q*q + z*z - r2
	})
}

// Plane returns the field of the plane with normal n passing through p.
// The field is the signed distance to the plane.
func Plane(n, p r3.Vec) Field {
	n = r3.Unit(n)
	d := r3.Dot(n, p)
	return FieldFunc(func(x, y, z float64) float64 {
		return n.X*x + n.Y*y + n.Z*z - d
	})
}

// Preset is a named implicit surface.
type Preset struct {
	Name  string
	Field FieldFunc
}

// FindPreset returns the preset whose name matches name, ignoring case
// and spaces. ok is false if there is no such preset.
func FindPreset(name string) (p Preset, ok bool) {
	key := presetKey(name)
	for _, p = range Presets {
		if presetKey(p.Name) == key {
			return p, true
		}
	}
	return Preset{}, false
}

func presetKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}

func pow(x, n float64) float64 { return math.Pow(x, n) }

// Presets is a catalogue of algebraic and transcendental surfaces
// that triangulate well around the origin with a radius of a few units.
var Presets = []Preset{
	{Name: "Sphere", Field: func(x, y, z float64) float64 {
		return x*x + y*y + z*z - 1
	}},
	{Name: "Torus", Field: func(x, y, z float64) float64 {
		q := math.Hypot(x, y) - 1
		return q*q + z*z - 0.16
	}},
	{Name: "Cayley Cubic", Field: func(x, y, z float64) float64 {
		return 4*(x*x+y*y+z*z) + 16*x*y*z - 1
	}},
	{Name: "Clebsch Cubic", Field: func(x, y, z float64) float64 {
		return 81*(pow(x, 3)+pow(y, 3)+pow(z, 3)) - 189*(x*x*(y+z)+y*y*(z+x)+z*z*(x+y)) +
			54*x*y*z + 126*(x*y+y*z+z*x) - 9*(x*x+x+y*y+y+z*z+z) + 1
	}},
	{Name: "Kummer Quartic", Field: func(x, y, z float64) float64 {
		return pow(x*x+y*y+z*z-1.69, 2) - 3.11*(pow(1-z, 2)-2*x*x)*(pow(1+z, 2)-2*y*y)
	}},
	{Name: "Barth Sextic", Field: func(x, y, z float64) float64 {
		return 4*(2.62*x*x-y*y)*(2.62*y*y-z*z)*(2.62*z*z-x*x) - 4.24*pow(x*x+y*y+z*z-1, 2)
	}},
	{Name: "Bretzel2", Field: func(x, y, z float64) float64 {
		return (pow((1-x*x)*x*x-y*y, 2)+z*z/2)/(1+x*x+y*y+z*z) - 0.02
	}},
	{Name: "Bretzel5", Field: func(x, y, z float64) float64 {
		return pow((x*x+y*y/4-1)*(x*x/4+y*y-1), 2) + z*z/2 - 0.08
	}},
	{Name: "Pilz", Field: func(x, y, z float64) float64 {
		return (pow(x*x+y*y-1, 2)+pow(z-1, 2))*(pow(x*x+pow(z-0.3, 2)-1, 2)+y*y) - 0.1
	}},
	{Name: "Orthocircles", Field: func(x, y, z float64) float64 {
		return (pow(x*x+y*y-1, 2)+z*z)*(pow(y*y+z*z-1, 2)+x*x)*(pow(z*z+x*x-1, 2)+y*y) - 0.02
	}},
	{Name: "DecoCube", Field: func(x, y, z float64) float64 {
		return (pow(x*x+y*y-0.64, 2)+pow(z*z-1, 2))*
			(pow(y*y+z*z-0.64, 2)+pow(x*x-1, 2))*
			(pow(z*z+x*x-0.64, 2)+pow(y*y-1, 2)) - 0.04
	}},
	{Name: "Borg Surface", Field: func(x, y, z float64) float64 {
		return math.Sin(x*y) + math.Sin(y*z) + math.Sin(z*x)
	}},
	{Name: "Tangle", Field: func(x, y, z float64) float64 {
		return x*x*(x*x-5) + y*y*(y*y-5) + z*z*(z*z-5) + 11.8
	}},
	{Name: "Chair", Field: func(x, y, z float64) float64 {
		return pow(x*x+y*y+z*z-14.8, 2) - 0.8*(pow(z-4, 2)-2*x*x)*(pow(z+4, 2)-2*y*y)
	}},
	{Name: "Devil Surface", Field: func(x, y, z float64) float64 {
		return pow(x, 4) + 2*x*x*z*z - 0.36*x*x - pow(y, 4) + 0.25*y*y + pow(z, 4)
	}},
	{Name: "P1 Atomic orbital", Field: func(x, y, z float64) float64 {
		return math.Abs(x*math.Exp(-0.5*math.Sqrt(x*x+y*y+z*z))) - 0.1
	}},
	{Name: "The Blob", Field: func(x, y, z float64) float64 {
		return x*x + y*y + z*z + math.Sin(4*x) + math.Sin(4*y) + math.Sin(4*z) - 1
	}},
	{Name: "McMullen K3", Field: func(x, y, z float64) float64 {
		return (1+x*x)*(1+y*y)*(1+z*z) + 8*x*y*z - 2
	}},
	{Name: "Gerhard Miehlich", Field: func(x, y, z float64) float64 {
		return pow(z*z-1, 2) - 2*(x*x+y*y)
	}},
	{Name: "Kampyle of Eudoxus", Field: func(x, y, z float64) float64 {
		return y*y + z*z - pow(x, 4) + x*x
	}},
	{Name: "Tooth Surface", Field: func(x, y, z float64) float64 {
		return pow(x, 4) + pow(y, 4) + pow(z, 4) - (x*x + y*y + z*z)
	}},
	{Name: "Horned Cube", Field: func(x, y, z float64) float64 {
		return -3*pow(x, 8) - 3*pow(y, 8) - 2*pow(z, 8) + 5*pow(x, 4)*y*y*z*z + 3*x*x*pow(y, 4)*z*z + 1
	}},
	{Name: "Lemniscate of Gerono", Field: func(x, y, z float64) float64 {
		return pow(x, 4) - x*x + y*y + z*z
	}},
}
