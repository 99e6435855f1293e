package phys2d

// TimeStep carries the per-step solver parameters.
type TimeStep struct {
	Dt                 float64 // time step
	InvDt              float64 // inverse time step (0 if dt == 0)
	DtRatio            float64 // dt * invDt0, for warm-start scaling
	VelocityIterations int
	PositionIterations int
	WarmStarting       bool
}

// Position is a solver buffer entry: center of mass and angle.
type Position struct {
	C Vec2
	A float64
}

// Velocity is a solver buffer entry: linear and angular velocity.
type Velocity struct {
	V Vec2
	W float64
}

// SolverData bundles the step parameters with the externally owned position
// and velocity buffers, indexed by each body's island index. Constraints
// never own body state; they only index into these buffers.
type SolverData struct {
	Step       TimeStep
	Positions  []Position
	Velocities []Velocity
}
