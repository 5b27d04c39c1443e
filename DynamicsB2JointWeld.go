package box2d

import "math"

/// Weld joint definition. You need to specify local anchor points
/// where they are attached and the relative body angle. The position
/// of the anchor points is important for computing the reaction torque.
type B2WeldJointDef struct {
	B2JointDefBase

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA B2Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB B2Vec2

	/// The bodyB angle minus bodyA angle in the reference state (radians).
	ReferenceAngle float64

	/// The mass-spring-damper frequency in Hertz. Rotation only.
	/// Disable softness with a value of 0.
	FrequencyHz float64

	/// The damping ratio. 0 = no damping, 1 = critical damping.
	DampingRatio float64
}

func MakeB2WeldJointDef() B2WeldJointDef {
	return B2WeldJointDef{}
}

/// Initialize the bodies, anchors, and reference angle using a world
/// anchor point.
func (def *B2WeldJointDef) Initialize(bA *B2Body, bB *B2Body, anchor B2Vec2) {
	def.BodyA = bA.M_handle
	def.BodyB = bB.M_handle
	def.LocalAnchorA = bA.GetLocalPoint(anchor)
	def.LocalAnchorB = bB.GetLocalPoint(anchor)
	def.ReferenceAngle = bB.GetAngle() - bA.GetAngle()
}

/// A weld joint essentially glues two bodies together. A weld joint may
/// distort somewhat because the island constraint solver is approximate.
type B2WeldJoint struct {
	B2JointBase

	M_frequencyHz  float64
	M_dampingRatio float64
	M_bias         float64

	// Solver shared
	M_localAnchorA   B2Vec2
	M_localAnchorB   B2Vec2
	M_referenceAngle float64
	M_gamma          float64
	M_impulse        B2Vec3

	// Solver temp
	M_rA   B2Vec2
	M_rB   B2Vec2
	M_mass B2Mat33
}

func newB2WeldJoint(def *B2WeldJointDef, bodyA *B2Body, bodyB *B2Body) *B2WeldJoint {
	return &B2WeldJoint{
		B2JointBase:      makeB2JointBase(B2JointType.E_weldJoint, &def.B2JointDefBase, bodyA, bodyB),
		M_localAnchorA:   def.LocalAnchorA,
		M_localAnchorB:   def.LocalAnchorB,
		M_referenceAngle: def.ReferenceAngle,
		M_frequencyHz:    def.FrequencyHz,
		M_dampingRatio:   def.DampingRatio,
	}
}

func (joint B2WeldJoint) GetLocalAnchorA() B2Vec2 {
	return joint.M_localAnchorA
}

func (joint B2WeldJoint) GetLocalAnchorB() B2Vec2 {
	return joint.M_localAnchorB
}

func (joint B2WeldJoint) GetReferenceAngle() float64 {
	return joint.M_referenceAngle
}

/// Set/get frequency in Hz.
func (joint *B2WeldJoint) SetFrequency(hz float64) {
	joint.M_frequencyHz = hz
}

func (joint B2WeldJoint) GetFrequency() float64 {
	return joint.M_frequencyHz
}

/// Set/get damping ratio.
func (joint *B2WeldJoint) SetDampingRatio(ratio float64) {
	joint.M_dampingRatio = ratio
}

func (joint B2WeldJoint) GetDampingRatio() float64 {
	return joint.M_dampingRatio
}

// Point-to-point constraint
// C = p2 - p1
// Cdot = v2 - v1
//      = v2 + cross(w2, r2) - v1 - cross(w1, r1)
// J = [-I -r1_skew I r2_skew ]
//
// Angle constraint
// C = angle2 - angle1 - referenceAngle
// Cdot = w2 - w1
// J = [0 0 -1 0 0 1]
// K = invI1 + invI2

func (joint *B2WeldJoint) InitVelocityConstraints(data B2SolverData) {
	joint.prepareSolverBodies()

	_, aA, _, aB := joint.positions(data)
	vA, wA, vB, wB := joint.velocities(data)

	joint.M_rA = B2RotVec2Mul(MakeB2RotFromAngle(aA), B2Vec2Sub(joint.M_localAnchorA, joint.M_localCenterA))
	joint.M_rB = B2RotVec2Mul(MakeB2RotFromAngle(aB), B2Vec2Sub(joint.M_localAnchorB, joint.M_localCenterB))

	K := joint.pointAngleMass(joint.M_rA, joint.M_rB)

	joint.M_gamma = 0.0
	joint.M_bias = 0.0

	switch {
	case joint.M_frequencyHz > 0.0:
		K.GetInverse22(&joint.M_mass)

		invM := joint.M_invIA + joint.M_invIB
		C := aB - aA - joint.M_referenceAngle

		var beta float64
		joint.M_gamma, beta = b2SoftConstraint(b2InvOrZero(invM), joint.M_frequencyHz, joint.M_dampingRatio, data.Step.Dt)
		joint.M_bias = C * beta

		joint.M_mass.Ez.Z = b2InvOrZero(invM + joint.M_gamma)

	case K.Ez.Z == 0.0:
		K.GetInverse22(&joint.M_mass)

	default:
		K.GetSymInverse33(&joint.M_mass)
	}

	if data.Step.WarmStarting {
		// Scale impulses to support a variable time step.
		joint.M_impulse = B2Vec3MultScalar(data.Step.DtRatio, joint.M_impulse)

		P := MakeB2Vec2(joint.M_impulse.X, joint.M_impulse.Y)
		joint.applyImpulse(&vA, &wA, &vB, &wB, joint.M_rA, joint.M_rB, P, joint.M_impulse.Z)
	} else {
		joint.M_impulse.SetZero()
	}

	joint.storeVelocities(data, vA, wA, vB, wB)
}

func (joint *B2WeldJoint) SolveVelocityConstraints(data B2SolverData) {
	vA, wA, vB, wB := joint.velocities(data)

	if joint.M_frequencyHz > 0.0 {
		Cdot2 := wB - wA

		impulse2 := -joint.M_mass.Ez.Z * (Cdot2 + joint.M_bias + joint.M_gamma*joint.M_impulse.Z)
		joint.M_impulse.Z += impulse2

		wA -= joint.M_invIA * impulse2
		wB += joint.M_invIB * impulse2

		Cdot1 := b2AnchorVelocity(vA, wA, joint.M_rA, vB, wB, joint.M_rB)

		impulse1 := B2Vec2Mul22(joint.M_mass, Cdot1).OperatorNegate()
		joint.M_impulse.X += impulse1.X
		joint.M_impulse.Y += impulse1.Y

		joint.applyImpulse(&vA, &wA, &vB, &wB, joint.M_rA, joint.M_rB, impulse1, 0.0)
	} else {
		Cdot1 := b2AnchorVelocity(vA, wA, joint.M_rA, vB, wB, joint.M_rB)
		Cdot := MakeB2Vec3(Cdot1.X, Cdot1.Y, wB-wA)

		impulse := B2Vec3Mat33Mul(joint.M_mass, Cdot).OperatorNegate()
		joint.M_impulse.OperatorPlusInplace(impulse)

		P := MakeB2Vec2(impulse.X, impulse.Y)
		joint.applyImpulse(&vA, &wA, &vB, &wB, joint.M_rA, joint.M_rB, P, impulse.Z)
	}

	joint.storeVelocities(data, vA, wA, vB, wB)
}

func (joint *B2WeldJoint) SolvePositionConstraints(data B2SolverData) bool {
	cA, aA, cB, aB := joint.positions(data)

	rA := B2RotVec2Mul(MakeB2RotFromAngle(aA), B2Vec2Sub(joint.M_localAnchorA, joint.M_localCenterA))
	rB := B2RotVec2Mul(MakeB2RotFromAngle(aB), B2Vec2Sub(joint.M_localAnchorB, joint.M_localCenterB))

	K := joint.pointAngleMass(rA, rB)
	C1 := B2Vec2Sub(B2Vec2Add(cB, rB), B2Vec2Add(cA, rA))

	positionError := C1.Length()
	angularError := 0.0

	var impulse B2Vec3
	if joint.M_frequencyHz > 0.0 {
		P := K.Solve22(C1).OperatorNegate()
		impulse.Set(P.X, P.Y, 0.0)
	} else {
		C2 := aB - aA - joint.M_referenceAngle
		angularError = math.Abs(C2)

		if K.Ez.Z > 0.0 {
			impulse = K.Solve33(MakeB2Vec3(C1.X, C1.Y, C2)).OperatorNegate()
		} else {
			P := K.Solve22(C1).OperatorNegate()
			impulse.Set(P.X, P.Y, 0.0)
		}
	}

	joint.applyImpulse(&cA, &aA, &cB, &aB, rA, rB, MakeB2Vec2(impulse.X, impulse.Y), impulse.Z)
	joint.storePositions(data, cA, aA, cB, aB)

	return positionError <= B2_linearSlop && angularError <= B2_angularSlop
}

func (joint B2WeldJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_localAnchorA)
}

func (joint B2WeldJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchorB)
}

func (joint B2WeldJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	return B2Vec2MulScalar(inv_dt, MakeB2Vec2(joint.M_impulse.X, joint.M_impulse.Y))
}

func (joint B2WeldJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.M_impulse.Z
}

func (joint *B2WeldJoint) Dump() {
	joint.dumpDef("MakeB2WeldJointDef")
	B2Log("  jd.LocalAnchorA = %s\n", b2DumpVec(joint.M_localAnchorA))
	B2Log("  jd.LocalAnchorB = %s\n", b2DumpVec(joint.M_localAnchorB))
	B2Log("  jd.ReferenceAngle = %.15e\n", joint.M_referenceAngle)
	B2Log("  jd.FrequencyHz = %.15e\n", joint.M_frequencyHz)
	B2Log("  jd.DampingRatio = %.15e\n", joint.M_dampingRatio)
	B2Log("  joints[%d], _ = world.CreateJoint(&jd)\n", joint.M_index)
}
