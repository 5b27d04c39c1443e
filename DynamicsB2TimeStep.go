package box2d

/// Profiling data. Times are in milliseconds.
type B2Profile struct {
	Step          float64
	Collide       float64
	Solve         float64
	SolveInit     float64
	SolveVelocity float64
	SolvePosition float64
	PairUpdate    float64
}

/// This is an internal structure.
type B2TimeStep struct {
	Dt                 float64 // time step
	Inv_dt             float64 // inverse time step (0 if dt == 0).
	DtRatio            float64 // dt * inv_dt0
	VelocityIterations int
	PositionIterations int
	WarmStarting       bool
}

/// Build a time step. dtRatio scales warm starting impulses when dt changes
/// between steps; pass the previous inverse time step or zero on the first step.
func MakeB2TimeStep(dt float64, prevInvDt float64, velocityIterations, positionIterations int, warmStarting bool) B2TimeStep {
	step := B2TimeStep{
		Dt:                 dt,
		VelocityIterations: velocityIterations,
		PositionIterations: positionIterations,
		WarmStarting:       warmStarting,
	}

	if dt > 0.0 {
		step.Inv_dt = 1.0 / dt
	}

	step.DtRatio = prevInvDt * dt

	return step
}

/// This is an internal structure.
type B2Position struct {
	C B2Vec2
	A float64
}

/// This is an internal structure.
type B2Velocity struct {
	V B2Vec2
	W float64
}

/// Solver Data
type B2SolverData struct {
	Step       B2TimeStep
	Positions  []B2Position
	Velocities []B2Velocity
}
