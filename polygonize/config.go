package polygonize

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Config holds the parameters of a triangulation. Zero valued optional fields
// are replaced with the values of DefaultConfig.
type Config struct {
	// Center of the bounding sphere that limits the mesh.
	Center r3.Vec
	// Radius of the bounding sphere. Points generated outside of it are
	// clamped onto the sphere and become border points.
	Radius float64
	// StepLength is the propagation step, approximately the edge length
	// of the generated triangles.
	StepLength float64
	// ProjectSteps is the number of solver iterations used to project a newly
	// generated point onto the surface.
	ProjectSteps int
	// SeedProjectSteps is the number of solver iterations used to project the seeds.
	SeedProjectSteps int
	// MaxIterations bounds the number of advancing steps. Reaching it stops
	// the triangulation silently. Negative values mean no iterations.
	MaxIterations int
	// GradientEpsilon is the forward difference step used to estimate gradients.
	GradientEpsilon float64
	// Seeds are initial guesses of points on the surface. The first seed starts the
	// active front; the rest start suspended fronts that are merged into
	// the active front when it reaches them. If empty a single seed is placed
	// at Center+(1,1,1).
	Seeds []r3.Vec
	// Thresholds tune the fan count heuristics during front expansion.
	Thresholds Thresholds
}

// Thresholds are empirical values that shape how a front point is expanded.
// They have no derivation; change them to trade mesh regularity for
// closing speed.
type Thresholds struct {
	// MinRotation is the smallest angle in radians between two consecutive
	// fan triangles. Smaller rotations collapse the fan by one triangle.
	MinRotation float64
	// SplitFanRatio forces a two triangle fan when a would-be closing
	// triangle has its outer edge longer than sqrt(SplitFanRatio)*StepLength.
	SplitFanRatio float64
	// CloseRatio closes a gap with a single triangle when a neighbor is closer
	// than sqrt(CloseRatio)*StepLength and the opening angle is below NarrowAngle.
	CloseRatio float64
	// NarrowAngle in radians. See CloseRatio.
	NarrowAngle float64
}

// DefaultThresholds returns the thresholds of Hartmann's marching method as
// tuned for StepLength=0.25.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinRotation:   0.8,
		SplitFanRatio: 1.44,
		CloseRatio:    0.25,
		NarrowAngle:   3,
	}
}

// DefaultConfig returns the default triangulation parameters.
func DefaultConfig() Config {
	return Config{
		Radius:           7,
		StepLength:       0.25,
		ProjectSteps:     4,
		SeedProjectSteps: 10,
		MaxIterations:    32000,
		GradientEpsilon:  1e-4,
		Thresholds:       DefaultThresholds(),
	}
}

// withDefaults returns a copy of cfg with all unset fields set to their defaults.
func (cfg Config) withDefaults() Config {
	def := DefaultConfig()
	if cfg.Radius == 0 {
		cfg.Radius = def.Radius
	}
	if cfg.StepLength == 0 {
		cfg.StepLength = def.StepLength
	}
	if cfg.ProjectSteps == 0 {
		cfg.ProjectSteps = def.ProjectSteps
	}
	if cfg.SeedProjectSteps == 0 {
		cfg.SeedProjectSteps = def.SeedProjectSteps
	}
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = def.MaxIterations
	}
	if cfg.GradientEpsilon == 0 {
		cfg.GradientEpsilon = def.GradientEpsilon
	}
	if cfg.Thresholds == (Thresholds{}) {
		cfg.Thresholds = def.Thresholds
	}
	if len(cfg.Seeds) == 0 {
		cfg.Seeds = []r3.Vec{r3.Add(cfg.Center, r3.Vec{X: 1, Y: 1, Z: 1})}
	} else {
		// Do not alias caller's slice.
		cfg.Seeds = append([]r3.Vec(nil), cfg.Seeds...)
	}
	return cfg
}

func (cfg Config) validate() error {
	th := cfg.Thresholds
	switch {
	case !(cfg.Radius > 0) || math.IsInf(cfg.Radius, 0):
		return errors.New("bounding radius must be positive and finite")
	case !(cfg.StepLength > 0) || math.IsInf(cfg.StepLength, 0):
		return errors.New("step length must be positive and finite")
	case cfg.ProjectSteps < 0 || cfg.SeedProjectSteps < 0:
		return errors.New("negative projection iterations")
	case !(cfg.GradientEpsilon > 0):
		return errors.New("gradient epsilon must be positive")
	case th.MinRotation < 0 || th.SplitFanRatio < 0 || th.CloseRatio < 0 || th.NarrowAngle < 0:
		return errors.New("negative expansion threshold")
	}
	return nil
}
