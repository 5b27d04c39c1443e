package box2d

/// Friction joint definition.
type B2FrictionJointDef struct {
	B2JointDefBase

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA B2Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB B2Vec2

	/// The maximum friction force in N.
	MaxForce float64

	/// The maximum friction torque in N-m.
	MaxTorque float64
}

func MakeB2FrictionJointDef() B2FrictionJointDef {
	return B2FrictionJointDef{}
}

/// Initialize the bodies and anchors using a world anchor point.
func (def *B2FrictionJointDef) Initialize(bA *B2Body, bB *B2Body, anchor B2Vec2) {
	def.BodyA = bA.M_handle
	def.BodyB = bB.M_handle
	def.LocalAnchorA = bA.GetLocalPoint(anchor)
	def.LocalAnchorB = bB.GetLocalPoint(anchor)
}

/// Friction joint. This is used for top-down friction.
/// It provides 2D translational friction and angular friction.
type B2FrictionJoint struct {
	B2JointBase

	M_localAnchorA B2Vec2
	M_localAnchorB B2Vec2

	// Solver shared
	M_linearImpulse  B2Vec2
	M_angularImpulse float64
	M_maxForce       float64
	M_maxTorque      float64

	// Solver temp
	M_rA          B2Vec2
	M_rB          B2Vec2
	M_linearMass  B2Mat22
	M_angularMass float64
}

func newB2FrictionJoint(def *B2FrictionJointDef, bodyA *B2Body, bodyB *B2Body) *B2FrictionJoint {
	return &B2FrictionJoint{
		B2JointBase:    makeB2JointBase(B2JointType.E_frictionJoint, &def.B2JointDefBase, bodyA, bodyB),
		M_localAnchorA: def.LocalAnchorA,
		M_localAnchorB: def.LocalAnchorB,
		M_maxForce:     def.MaxForce,
		M_maxTorque:    def.MaxTorque,
	}
}

func (joint B2FrictionJoint) GetLocalAnchorA() B2Vec2 {
	return joint.M_localAnchorA
}

func (joint B2FrictionJoint) GetLocalAnchorB() B2Vec2 {
	return joint.M_localAnchorB
}

// Point-to-point constraint
// Cdot = v2 - v1
//      = v2 + cross(w2, r2) - v1 - cross(w1, r1)
// J = [-I -r1_skew I r2_skew ]
//
// Angle constraint
// Cdot = w2 - w1
// J = [0 0 -1 0 0 1]
// K = invI1 + invI2

func (joint *B2FrictionJoint) InitVelocityConstraints(data B2SolverData) {
	joint.prepareSolverBodies()

	_, aA, _, aB := joint.positions(data)
	vA, wA, vB, wB := joint.velocities(data)

	// Compute the effective mass matrix.
	joint.M_rA = B2RotVec2Mul(MakeB2RotFromAngle(aA), B2Vec2Sub(joint.M_localAnchorA, joint.M_localCenterA))
	joint.M_rB = B2RotVec2Mul(MakeB2RotFromAngle(aB), B2Vec2Sub(joint.M_localAnchorB, joint.M_localCenterB))

	joint.M_linearMass = joint.pointMass(joint.M_rA, joint.M_rB).GetInverse()
	joint.M_angularMass = b2InvOrZero(joint.M_invIA + joint.M_invIB)

	if data.Step.WarmStarting {
		// Scale impulses to support a variable time step.
		joint.M_linearImpulse.OperatorScalarMulInplace(data.Step.DtRatio)
		joint.M_angularImpulse *= data.Step.DtRatio

		joint.applyImpulse(&vA, &wA, &vB, &wB, joint.M_rA, joint.M_rB, joint.M_linearImpulse, joint.M_angularImpulse)
	} else {
		joint.M_linearImpulse.SetZero()
		joint.M_angularImpulse = 0.0
	}

	joint.storeVelocities(data, vA, wA, vB, wB)
}

func (joint *B2FrictionJoint) SolveVelocityConstraints(data B2SolverData) {
	vA, wA, vB, wB := joint.velocities(data)

	h := data.Step.Dt

	// Solve angular friction
	{
		impulse := -joint.M_angularMass * (wB - wA)

		oldImpulse := joint.M_angularImpulse
		maxImpulse := h * joint.M_maxTorque
		joint.M_angularImpulse = B2FloatClamp(joint.M_angularImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = joint.M_angularImpulse - oldImpulse

		wA -= joint.M_invIA * impulse
		wB += joint.M_invIB * impulse
	}

	// Solve linear friction
	{
		Cdot := b2AnchorVelocity(vA, wA, joint.M_rA, vB, wB, joint.M_rB)

		impulse := B2Vec2Mat22Mul(joint.M_linearMass, Cdot).OperatorNegate()
		oldImpulse := joint.M_linearImpulse
		joint.M_linearImpulse.OperatorPlusInplace(impulse)

		maxImpulse := h * joint.M_maxForce
		if joint.M_linearImpulse.LengthSquared() > maxImpulse*maxImpulse {
			joint.M_linearImpulse.Normalize()
			joint.M_linearImpulse.OperatorScalarMulInplace(maxImpulse)
		}

		impulse = B2Vec2Sub(joint.M_linearImpulse, oldImpulse)
		joint.applyImpulse(&vA, &wA, &vB, &wB, joint.M_rA, joint.M_rB, impulse, 0.0)
	}

	joint.storeVelocities(data, vA, wA, vB, wB)
}

// Friction has no position error.
func (joint *B2FrictionJoint) SolvePositionConstraints(data B2SolverData) bool {
	return true
}

func (joint B2FrictionJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_localAnchorA)
}

func (joint B2FrictionJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchorB)
}

func (joint B2FrictionJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	return B2Vec2MulScalar(inv_dt, joint.M_linearImpulse)
}

func (joint B2FrictionJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.M_angularImpulse
}

/// Set the maximum friction force in N. Negative or non-finite values are ignored.
func (joint *B2FrictionJoint) SetMaxForce(force float64) {
	if B2IsValid(force) && force >= 0.0 {
		joint.M_maxForce = force
	}
}

func (joint B2FrictionJoint) GetMaxForce() float64 {
	return joint.M_maxForce
}

/// Set the maximum friction torque in N*m. Negative or non-finite values are ignored.
func (joint *B2FrictionJoint) SetMaxTorque(torque float64) {
	if B2IsValid(torque) && torque >= 0.0 {
		joint.M_maxTorque = torque
	}
}

func (joint B2FrictionJoint) GetMaxTorque() float64 {
	return joint.M_maxTorque
}

func (joint *B2FrictionJoint) Dump() {
	joint.dumpDef("MakeB2FrictionJointDef")
	B2Log("  jd.LocalAnchorA = %s\n", b2DumpVec(joint.M_localAnchorA))
	B2Log("  jd.LocalAnchorB = %s\n", b2DumpVec(joint.M_localAnchorB))
	B2Log("  jd.MaxForce = %.15e\n", joint.M_maxForce)
	B2Log("  jd.MaxTorque = %.15e\n", joint.M_maxTorque)
	B2Log("  joints[%d], _ = world.CreateJoint(&jd)\n", joint.M_index)
}
