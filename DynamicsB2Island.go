package box2d

import (
	"math"
)

/*
Position Correction Notes
=========================
Contacts and joints use full nonlinear Gauss-Seidel (NGS) for position
correction: after the velocity solve and position integration, each
constraint recomputes its position error, Jacobian and effective mass and
corrects the positions directly. Iterations stop early once every constraint
reports an error below the slop.

Velocity iterations visit every contact first and then every joint, in
island insertion order.
*/

/*
2D Rotation

R = [cos(theta) -sin(theta)]
    [sin(theta) cos(theta) ]

thetaDot = omega
*/

/// An island is a set of bodies connected by touching contacts and joints.
/// It is solved as one unit and put to sleep as one unit.
type B2Island struct {
	M_listener B2ContactListenerInterface

	M_bodies   []*B2Body
	M_contacts []*B2Contact
	M_joints   []B2Joint

	M_positions  []B2Position
	M_velocities []B2Velocity
}

func MakeB2Island(listener B2ContactListenerInterface) B2Island {
	return B2Island{
		M_listener: listener,
	}
}

func NewB2Island(listener B2ContactListenerInterface) *B2Island {
	res := MakeB2Island(listener)
	return &res
}

/// Reset the island. The backing storage is kept for the next island.
func (island *B2Island) Clear() {
	island.M_bodies = island.M_bodies[:0]
	island.M_contacts = island.M_contacts[:0]
	island.M_joints = island.M_joints[:0]
}

/// Add a body. Its island index becomes its slot in the solver arrays.
func (island *B2Island) Add(body *B2Body) {
	body.M_islandIndex = len(island.M_bodies)
	island.M_bodies = append(island.M_bodies, body)
}

func (island *B2Island) AddContact(contact *B2Contact) {
	island.M_contacts = append(island.M_contacts, contact)
}

func (island *B2Island) AddJoint(joint B2Joint) {
	island.M_joints = append(island.M_joints, joint)
}

func (island B2Island) GetBodyCount() int {
	return len(island.M_bodies)
}

func (island B2Island) GetContactCount() int {
	return len(island.M_contacts)
}

func (island B2Island) GetJointCount() int {
	return len(island.M_joints)
}

func (island *B2Island) resizeState() {
	n := len(island.M_bodies)
	if cap(island.M_positions) < n {
		island.M_positions = make([]B2Position, n)
		island.M_velocities = make([]B2Velocity, n)
	}
	island.M_positions = island.M_positions[:n]
	island.M_velocities = island.M_velocities[:n]
}

// Integrate forces into velocities and apply damping.
// ODE: dv/dt + c * v = 0
// Solution: v(t) = v0 * exp(-c * t)
// Pade approximation: v2 = v1 * 1 / (1 + c * dt)
func (island *B2Island) integrateVelocities(h float64, gravity B2Vec2) {
	for i, b := range island.M_bodies {
		v := b.M_linearVelocity
		w := b.M_angularVelocity

		// Store positions for the fixture sweep.
		b.M_sweep.C0 = b.M_sweep.C
		b.M_sweep.A0 = b.M_sweep.A

		if b.M_type == B2BodyType.B2_dynamicBody {
			acceleration := B2Vec2Add(B2Vec2MulScalar(b.M_gravityScale, gravity), B2Vec2MulScalar(b.M_invMass, b.M_force))
			v.OperatorPlusInplace(B2Vec2MulScalar(h, acceleration))
			w += h * b.M_invI * b.M_torque

			v.OperatorScalarMulInplace(1.0 / (1.0 + h*b.M_linearDamping))
			w *= 1.0 / (1.0 + h*b.M_angularDamping)
		}

		island.M_positions[i] = B2Position{C: b.M_sweep.C, A: b.M_sweep.A}
		island.M_velocities[i] = B2Velocity{V: v, W: w}
	}
}

// Integrate velocities into positions, clamping large motions.
func (island *B2Island) integratePositions(h float64) {
	for i := range island.M_positions {
		c := island.M_positions[i].C
		a := island.M_positions[i].A
		v := island.M_velocities[i].V
		w := island.M_velocities[i].W

		// Check for large velocities
		translation := B2Vec2MulScalar(h, v)
		if B2Vec2Dot(translation, translation) > B2_maxTranslationSquared {
			v.OperatorScalarMulInplace(B2_maxTranslation / translation.Length())
		}

		rotation := h * w
		if rotation*rotation > B2_maxRotationSquared {
			w *= B2_maxRotation / math.Abs(rotation)
		}

		c.OperatorPlusInplace(B2Vec2MulScalar(h, v))
		a += h * w

		island.M_positions[i] = B2Position{C: c, A: a}
		island.M_velocities[i] = B2Velocity{V: v, W: w}
	}
}

/// Solve the island for one time step: integrate velocities, solve velocity
/// constraints, integrate positions, solve position constraints, write the
/// results back to the bodies, report impulses and update sleep timers.
func (island *B2Island) Solve(profile *B2Profile, step B2TimeStep, gravity B2Vec2, allowSleep bool) {
	timer := MakeB2Timer()

	h := step.Dt

	island.resizeState()
	island.integrateVelocities(h, gravity)

	timer.Reset()

	solverData := B2SolverData{
		Step:       step,
		Positions:  island.M_positions,
		Velocities: island.M_velocities,
	}

	// Initialize velocity constraints.
	contactSolver := MakeB2ContactSolver(&B2ContactSolverDef{
		Step:       step,
		Contacts:   island.M_contacts,
		Positions:  island.M_positions,
		Velocities: island.M_velocities,
	})
	contactSolver.InitializeVelocityConstraints()

	if step.WarmStarting {
		contactSolver.WarmStart()
	}

	for _, joint := range island.M_joints {
		joint.InitVelocityConstraints(solverData)
	}

	profile.SolveInit += timer.GetMilliseconds()

	// Solve velocity constraints
	timer.Reset()
	for i := 0; i < step.VelocityIterations; i++ {
		contactSolver.SolveVelocityConstraints()

		for _, joint := range island.M_joints {
			joint.SolveVelocityConstraints(solverData)
		}
	}

	// Store impulses for warm starting
	contactSolver.StoreImpulses()
	profile.SolveVelocity += timer.GetMilliseconds()

	island.integratePositions(h)

	// Solve position constraints
	timer.Reset()
	positionSolved := false
	for i := 0; i < step.PositionIterations; i++ {
		contactsOkay := contactSolver.SolvePositionConstraints()

		jointsOkay := true
		for _, joint := range island.M_joints {
			jointOkay := joint.SolvePositionConstraints(solverData)
			jointsOkay = jointsOkay && jointOkay
		}

		if contactsOkay && jointsOkay {
			// Exit early if the position errors are small.
			positionSolved = true
			break
		}
	}

	// Copy state buffers back to the bodies
	for i, body := range island.M_bodies {
		body.M_sweep.C = island.M_positions[i].C
		body.M_sweep.A = island.M_positions[i].A
		body.M_linearVelocity = island.M_velocities[i].V
		body.M_angularVelocity = island.M_velocities[i].W
		body.SynchronizeTransform()
	}

	profile.SolvePosition += timer.GetMilliseconds()

	island.Report(contactSolver.M_velocityConstraints)

	if allowSleep {
		island.updateSleep(h, positionSolved)
	}
}

// Accumulate sleep time and put the island to sleep once every body has
// rested long enough.
func (island *B2Island) updateSleep(h float64, positionSolved bool) {
	minSleepTime := B2_maxFloat

	linTolSqr := B2_linearSleepTolerance * B2_linearSleepTolerance
	angTolSqr := B2_angularSleepTolerance * B2_angularSleepTolerance

	for _, b := range island.M_bodies {
		if b.GetType() == B2BodyType.B2_staticBody {
			continue
		}

		if !b.IsSleepingAllowed() ||
			b.M_angularVelocity*b.M_angularVelocity > angTolSqr ||
			B2Vec2Dot(b.M_linearVelocity, b.M_linearVelocity) > linTolSqr {
			b.M_sleepTime = 0.0
			minSleepTime = 0.0
		} else {
			b.M_sleepTime += h
			minSleepTime = math.Min(minSleepTime, b.M_sleepTime)
		}
	}

	if minSleepTime >= B2_timeToSleep && positionSolved {
		for _, b := range island.M_bodies {
			b.SetAwake(false)
		}
	}
}

/// Send the solved contact impulses to the listener's PostSolve.
func (island *B2Island) Report(constraints []B2ContactVelocityConstraint) {
	if island.M_listener == nil {
		return
	}

	for i, c := range island.M_contacts {
		vc := constraints[i]

		impulse := B2ContactImpulse{Count: vc.PointCount}
		for j := 0; j < vc.PointCount; j++ {
			impulse.NormalImpulses[j] = vc.Points[j].NormalImpulse
			impulse.TangentImpulses[j] = vc.Points[j].TangentImpulse
		}

		island.M_listener.PostSolve(c, &impulse)
	}
}
