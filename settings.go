package phys2d

import "math"

// debug enables the internal precondition assertions. They are documented
// preconditions on callers, not runtime-checked faults; release builds leave
// this off.
const debug = false

func assert(ok bool) {
	if debug && !ok {
		panic("phys2d: assertion failed")
	}
}

const (
	maxFloat = math.MaxFloat64
	pi       = math.Pi

	// epsilon is the float64 machine epsilon. It bounds the squared search
	// direction in the distance engine, so it must survive being squared.
	epsilon = 2.220446049250313e-16
)

// Global tuning constants, in meters-kilograms-seconds units.

// MaxManifoldPoints is the maximum number of contact points between two
// convex shapes. Do not change this value.
const MaxManifoldPoints = 2

// MaxPolygonVertices is the maximum number of vertices on a convex polygon.
const MaxPolygonVertices = 8

// LinearSlop is a small length used as a collision and constraint tolerance.
// It is chosen to be numerically significant but visually insignificant.
const LinearSlop = 0.005

// AngularSlop is a small angle used as a collision and constraint tolerance.
const AngularSlop = 2.0 / 180.0 * pi

// PolygonRadius is the radius of the polygon/edge shape skin. This should
// not be modified: making it smaller leaves polygons with an insufficient
// buffer for continuous collision, making it larger creates artifacts for
// vertex collision.
const PolygonRadius = 2.0 * LinearSlop

// MaxLinearCorrection is the maximum linear position correction used when
// solving constraints. It helps to prevent overshoot.
const MaxLinearCorrection = 0.2

// MaxAngularCorrection is the maximum angular position correction used when
// solving constraints. It helps to prevent overshoot.
const MaxAngularCorrection = 8.0 / 180.0 * pi

// MaxTranslation and MaxRotation cap per-step body motion to prevent
// numerical problems.
const (
	MaxTranslation        = 2.0
	MaxTranslationSquared = MaxTranslation * MaxTranslation
	MaxRotation           = 0.5 * pi
	MaxRotationSquared    = MaxRotation * MaxRotation
)

// Baumgarte is the scale factor controlling how fast positional overlap is
// resolved. Values close to 1 often lead to overshoot.
const Baumgarte = 0.2

// VelocityThreshold is the relative-velocity floor for elastic collisions;
// collisions below it are treated as inelastic.
const VelocityThreshold = 1.0
