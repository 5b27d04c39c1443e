package box2d

/// Mouse joint definition. This requires a world target point and
/// tuning parameters. BodyA is normally left nil so the joint is anchored
/// to the world.
type B2MouseJointDef struct {
	B2JointDefBase

	/// The initial world target point. This is assumed
	/// to coincide with the body anchor initially.
	Target B2Vec2

	/// The maximum constraint force that can be exerted
	/// to move the candidate body. Usually you will express
	/// as some multiple of the weight (multiplier * mass * gravity).
	MaxForce float64

	/// The response speed.
	FrequencyHz float64

	/// The damping ratio. 0 = no damping, 1 = critical damping.
	DampingRatio float64
}

func MakeB2MouseJointDef() B2MouseJointDef {
	return B2MouseJointDef{
		FrequencyHz:  5.0,
		DampingRatio: 0.7,
	}
}

/// A mouse joint is used to make a point on a body track a
/// specified world point. This a soft constraint with a maximum
/// force. This allows the constraint to stretch without
/// applying huge forces. Only bodyB is driven.
type B2MouseJoint struct {
	B2JointBase

	M_localAnchorB B2Vec2
	M_targetA      B2Vec2
	M_frequencyHz  float64
	M_dampingRatio float64
	M_beta         float64

	// Solver shared
	M_impulse  B2Vec2
	M_maxForce float64
	M_gamma    float64

	// Solver temp
	M_rB   B2Vec2
	M_mass B2Mat22
	M_C    B2Vec2
}

func newB2MouseJoint(def *B2MouseJointDef, bodyA *B2Body, bodyB *B2Body) *B2MouseJoint {
	return &B2MouseJoint{
		B2JointBase:    makeB2JointBase(B2JointType.E_mouseJoint, &def.B2JointDefBase, bodyA, bodyB),
		M_targetA:      def.Target,
		M_localAnchorB: B2TransformVec2MulT(bodyB.GetTransform(), def.Target),
		M_maxForce:     def.MaxForce,
		M_frequencyHz:  def.FrequencyHz,
		M_dampingRatio: def.DampingRatio,
	}
}

/// Use this to update the target point.
func (joint *B2MouseJoint) SetTarget(target B2Vec2) {
	if target != joint.M_targetA {
		joint.M_bodyB.SetAwake(true)
		joint.M_targetA = target
	}
}

func (joint B2MouseJoint) GetTarget() B2Vec2 {
	return joint.M_targetA
}

/// Set/get the maximum force in Newtons.
func (joint *B2MouseJoint) SetMaxForce(force float64) {
	joint.M_maxForce = force
}

func (joint B2MouseJoint) GetMaxForce() float64 {
	return joint.M_maxForce
}

/// Set/get the frequency in Hertz.
func (joint *B2MouseJoint) SetFrequency(hz float64) {
	joint.M_frequencyHz = hz
}

func (joint B2MouseJoint) GetFrequency() float64 {
	return joint.M_frequencyHz
}

/// Set/get the damping ratio (dimensionless).
func (joint *B2MouseJoint) SetDampingRatio(ratio float64) {
	joint.M_dampingRatio = ratio
}

func (joint B2MouseJoint) GetDampingRatio() float64 {
	return joint.M_dampingRatio
}

// p = attached point, m = mouse point
// C = p - m
// Cdot = v
//      = v + cross(w, r)
// J = [I r_skew]

func (joint *B2MouseJoint) InitVelocityConstraints(data B2SolverData) {
	joint.prepareSolverBodies()

	cB := data.Positions[joint.M_indexB].C
	aB := data.Positions[joint.M_indexB].A
	vB := data.Velocities[joint.M_indexB].V
	wB := data.Velocities[joint.M_indexB].W

	// gamma has units of inverse mass.
	// beta has units of inverse time.
	joint.M_gamma, joint.M_beta = b2SoftConstraint(joint.M_bodyB.GetMass(), joint.M_frequencyHz, joint.M_dampingRatio, data.Step.Dt)

	// Compute the effective mass matrix.
	joint.M_rB = B2RotVec2Mul(MakeB2RotFromAngle(aB), B2Vec2Sub(joint.M_localAnchorB, joint.M_localCenterB))

	// K = invMassB * eye(2) - skew(rB) * invIB * skew(rB) + gamma * eye(2)
	var K B2Mat22
	K.Ex.X = joint.M_invMassB + joint.M_invIB*joint.M_rB.Y*joint.M_rB.Y + joint.M_gamma
	K.Ex.Y = -joint.M_invIB * joint.M_rB.X * joint.M_rB.Y
	K.Ey.X = K.Ex.Y
	K.Ey.Y = joint.M_invMassB + joint.M_invIB*joint.M_rB.X*joint.M_rB.X + joint.M_gamma

	joint.M_mass = K.GetInverse()

	joint.M_C = B2Vec2Sub(B2Vec2Add(cB, joint.M_rB), joint.M_targetA)
	joint.M_C.OperatorScalarMulInplace(joint.M_beta)

	// Cheat with some damping
	wB *= 0.98

	if data.Step.WarmStarting {
		joint.M_impulse.OperatorScalarMulInplace(data.Step.DtRatio)
		vB.OperatorPlusInplace(B2Vec2MulScalar(joint.M_invMassB, joint.M_impulse))
		wB += joint.M_invIB * B2Vec2Cross(joint.M_rB, joint.M_impulse)
	} else {
		joint.M_impulse.SetZero()
	}

	data.Velocities[joint.M_indexB] = B2Velocity{V: vB, W: wB}
}

func (joint *B2MouseJoint) SolveVelocityConstraints(data B2SolverData) {
	vB := data.Velocities[joint.M_indexB].V
	wB := data.Velocities[joint.M_indexB].W

	// Cdot = v + cross(w, r)
	Cdot := B2Vec2Add(vB, B2Vec2CrossScalarVector(wB, joint.M_rB))
	rhs := B2Vec2Add(B2Vec2Add(Cdot, joint.M_C), B2Vec2MulScalar(joint.M_gamma, joint.M_impulse))
	impulse := B2Vec2Mat22Mul(joint.M_mass, rhs.OperatorNegate())

	oldImpulse := joint.M_impulse
	joint.M_impulse.OperatorPlusInplace(impulse)
	maxImpulse := data.Step.Dt * joint.M_maxForce
	if joint.M_impulse.LengthSquared() > maxImpulse*maxImpulse {
		joint.M_impulse.OperatorScalarMulInplace(maxImpulse / joint.M_impulse.Length())
	}
	impulse = B2Vec2Sub(joint.M_impulse, oldImpulse)

	vB.OperatorPlusInplace(B2Vec2MulScalar(joint.M_invMassB, impulse))
	wB += joint.M_invIB * B2Vec2Cross(joint.M_rB, impulse)

	data.Velocities[joint.M_indexB] = B2Velocity{V: vB, W: wB}
}

// The mouse spring is soft and has no position pass.
func (joint *B2MouseJoint) SolvePositionConstraints(data B2SolverData) bool {
	return true
}

func (joint B2MouseJoint) GetAnchorA() B2Vec2 {
	return joint.M_targetA
}

func (joint B2MouseJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchorB)
}

func (joint B2MouseJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	return B2Vec2MulScalar(inv_dt, joint.M_impulse)
}

func (joint B2MouseJoint) GetReactionTorque(inv_dt float64) float64 {
	return 0.0
}

func (joint *B2MouseJoint) ShiftOrigin(newOrigin B2Vec2) {
	joint.M_targetA.OperatorMinusInplace(newOrigin)
}

func (joint *B2MouseJoint) Dump() {
	joint.dumpDef("MakeB2MouseJointDef")
	B2Log("  jd.Target = %s\n", b2DumpVec(joint.M_targetA))
	B2Log("  jd.MaxForce = %.15e\n", joint.M_maxForce)
	B2Log("  jd.FrequencyHz = %.15e\n", joint.M_frequencyHz)
	B2Log("  jd.DampingRatio = %.15e\n", joint.M_dampingRatio)
	B2Log("  joints[%d], _ = world.CreateJoint(&jd)\n", joint.M_index)
}
