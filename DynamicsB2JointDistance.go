package box2d

import "math"

/// Distance joint definition. This requires defining an
/// anchor point on both bodies and the non-zero length of the
/// distance joint. The definition uses local anchor points
/// so that the initial configuration can violate the constraint
/// slightly.
/// @warning Do not use a zero or short length.
type B2DistanceJointDef struct {
	B2JointDefBase

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA B2Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB B2Vec2

	/// The natural length between the anchor points.
	Length float64

	/// The mass-spring-damper frequency in Hertz. A value of 0
	/// makes the joint a rigid rod.
	FrequencyHz float64

	/// The damping ratio. 0 = no damping, 1 = critical damping.
	DampingRatio float64
}

func MakeB2DistanceJointDef() B2DistanceJointDef {
	return B2DistanceJointDef{
		Length: 1.0,
	}
}

/// Initialize the bodies, anchors, and length using world space anchors.
func (def *B2DistanceJointDef) Initialize(b1 *B2Body, b2 *B2Body, anchor1 B2Vec2, anchor2 B2Vec2) {
	def.BodyA = b1.M_handle
	def.BodyB = b2.M_handle
	def.LocalAnchorA = b1.GetLocalPoint(anchor1)
	def.LocalAnchorB = b2.GetLocalPoint(anchor2)
	def.Length = B2Vec2Distance(anchor1, anchor2)
}

/// A distance joint constrains two points on two bodies
/// to remain at a fixed distance from each other. You can view
/// this as a massless, rigid rod, or as a spring when a frequency is set.
type B2DistanceJoint struct {
	B2JointBase

	M_frequencyHz  float64
	M_dampingRatio float64
	M_bias         float64

	// Solver shared
	M_localAnchorA B2Vec2
	M_localAnchorB B2Vec2
	M_gamma        float64
	M_impulse      float64
	M_length       float64

	// Solver temp
	M_u    B2Vec2
	M_rA   B2Vec2
	M_rB   B2Vec2
	M_mass float64
}

func newB2DistanceJoint(def *B2DistanceJointDef, bodyA *B2Body, bodyB *B2Body) *B2DistanceJoint {
	return &B2DistanceJoint{
		B2JointBase:    makeB2JointBase(B2JointType.E_distanceJoint, &def.B2JointDefBase, bodyA, bodyB),
		M_localAnchorA: def.LocalAnchorA,
		M_localAnchorB: def.LocalAnchorB,
		M_length:       def.Length,
		M_frequencyHz:  def.FrequencyHz,
		M_dampingRatio: def.DampingRatio,
	}
}

func (joint B2DistanceJoint) GetLocalAnchorA() B2Vec2 {
	return joint.M_localAnchorA
}

func (joint B2DistanceJoint) GetLocalAnchorB() B2Vec2 {
	return joint.M_localAnchorB
}

/// Set/get the natural length. Negative lengths are ignored.
func (joint *B2DistanceJoint) SetLength(length float64) {
	if length >= 0.0 {
		joint.M_length = length
	}
}

func (joint B2DistanceJoint) GetLength() float64 {
	return joint.M_length
}

/// Set/get frequency in Hz.
func (joint *B2DistanceJoint) SetFrequency(hz float64) {
	joint.M_frequencyHz = hz
}

func (joint B2DistanceJoint) GetFrequency() float64 {
	return joint.M_frequencyHz
}

/// Set/get damping ratio.
func (joint *B2DistanceJoint) SetDampingRatio(ratio float64) {
	joint.M_dampingRatio = ratio
}

func (joint B2DistanceJoint) GetDampingRatio() float64 {
	return joint.M_dampingRatio
}

// 1-D constrained system
// m (v2 - v1) = lambda
// v2 + (beta/h) * x1 + gamma * lambda = 0, gamma has units of inverse mass.
// x2 = x1 + h * v2
//
// C = norm(p2 - p1) - L
// u = (p2 - p1) / norm(p2 - p1)
// Cdot = dot(u, v2 + cross(w2, r2) - v1 - cross(w1, r1))
// J = [-u -cross(r1, u) u cross(r2, u)]
// K = J * invM * JT
//   = invMass1 + invI1 * cross(r1, u)^2 + invMass2 + invI2 * cross(r2, u)^2

func (joint *B2DistanceJoint) InitVelocityConstraints(data B2SolverData) {
	joint.prepareSolverBodies()

	cA, aA, cB, aB := joint.positions(data)
	vA, wA, vB, wB := joint.velocities(data)

	joint.M_rA = B2RotVec2Mul(MakeB2RotFromAngle(aA), B2Vec2Sub(joint.M_localAnchorA, joint.M_localCenterA))
	joint.M_rB = B2RotVec2Mul(MakeB2RotFromAngle(aB), B2Vec2Sub(joint.M_localAnchorB, joint.M_localCenterB))
	joint.M_u = B2Vec2Sub(B2Vec2Add(cB, joint.M_rB), B2Vec2Add(cA, joint.M_rA))

	// Handle singularity.
	length := joint.M_u.Length()
	if length > B2_linearSlop {
		joint.M_u.OperatorScalarMulInplace(1.0 / length)
	} else {
		joint.M_u.SetZero()
	}

	crAu := B2Vec2Cross(joint.M_rA, joint.M_u)
	crBu := B2Vec2Cross(joint.M_rB, joint.M_u)
	invMass := joint.M_invMassA + joint.M_invIA*crAu*crAu + joint.M_invMassB + joint.M_invIB*crBu*crBu

	// Compute the effective mass matrix.
	joint.M_mass = b2InvOrZero(invMass)
	joint.M_gamma = 0.0
	joint.M_bias = 0.0

	if joint.M_frequencyHz > 0.0 {
		C := length - joint.M_length

		var beta float64
		joint.M_gamma, beta = b2SoftConstraint(joint.M_mass, joint.M_frequencyHz, joint.M_dampingRatio, data.Step.Dt)
		joint.M_bias = C * beta

		joint.M_mass = b2InvOrZero(invMass + joint.M_gamma)
	}

	if data.Step.WarmStarting {
		// Scale the impulse to support a variable time step.
		joint.M_impulse *= data.Step.DtRatio

		P := B2Vec2MulScalar(joint.M_impulse, joint.M_u)
		joint.applyImpulse(&vA, &wA, &vB, &wB, joint.M_rA, joint.M_rB, P, 0.0)
	} else {
		joint.M_impulse = 0.0
	}

	joint.storeVelocities(data, vA, wA, vB, wB)
}

func (joint *B2DistanceJoint) SolveVelocityConstraints(data B2SolverData) {
	vA, wA, vB, wB := joint.velocities(data)

	// Cdot = dot(u, v + cross(w, r))
	Cdot := B2Vec2Dot(joint.M_u, b2AnchorVelocity(vA, wA, joint.M_rA, vB, wB, joint.M_rB))

	impulse := -joint.M_mass * (Cdot + joint.M_bias + joint.M_gamma*joint.M_impulse)
	joint.M_impulse += impulse

	P := B2Vec2MulScalar(impulse, joint.M_u)
	joint.applyImpulse(&vA, &wA, &vB, &wB, joint.M_rA, joint.M_rB, P, 0.0)

	joint.storeVelocities(data, vA, wA, vB, wB)
}

func (joint *B2DistanceJoint) SolvePositionConstraints(data B2SolverData) bool {
	if joint.M_frequencyHz > 0.0 {
		// There is no position correction for soft distance constraints.
		return true
	}

	cA, aA, cB, aB := joint.positions(data)

	rA := B2RotVec2Mul(MakeB2RotFromAngle(aA), B2Vec2Sub(joint.M_localAnchorA, joint.M_localCenterA))
	rB := B2RotVec2Mul(MakeB2RotFromAngle(aB), B2Vec2Sub(joint.M_localAnchorB, joint.M_localCenterB))
	u := B2Vec2Sub(B2Vec2Add(cB, rB), B2Vec2Add(cA, rA))

	length := u.Normalize()
	C := B2FloatClamp(length-joint.M_length, -B2_maxLinearCorrection, B2_maxLinearCorrection)

	impulse := -joint.M_mass * C
	joint.applyImpulse(&cA, &aA, &cB, &aB, rA, rB, B2Vec2MulScalar(impulse, u), 0.0)

	joint.storePositions(data, cA, aA, cB, aB)

	return math.Abs(C) < B2_linearSlop
}

func (joint B2DistanceJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_localAnchorA)
}

func (joint B2DistanceJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchorB)
}

func (joint B2DistanceJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	return B2Vec2MulScalar(inv_dt*joint.M_impulse, joint.M_u)
}

// A distance joint carries no torque.
func (joint B2DistanceJoint) GetReactionTorque(inv_dt float64) float64 {
	return 0.0
}

func (joint *B2DistanceJoint) Dump() {
	joint.dumpDef("MakeB2DistanceJointDef")
	B2Log("  jd.LocalAnchorA = %s\n", b2DumpVec(joint.M_localAnchorA))
	B2Log("  jd.LocalAnchorB = %s\n", b2DumpVec(joint.M_localAnchorB))
	B2Log("  jd.Length = %.15e\n", joint.M_length)
	B2Log("  jd.FrequencyHz = %.15e\n", joint.M_frequencyHz)
	B2Log("  jd.DampingRatio = %.15e\n", joint.M_dampingRatio)
	B2Log("  joints[%d], _ = world.CreateJoint(&jd)\n", joint.M_index)
}
