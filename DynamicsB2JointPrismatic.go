package box2d

import (
	"fmt"
	"math"
)

/// Prismatic joint definition. This requires defining a line of
/// motion using an axis and an anchor point. The definition uses local
/// anchor points and a local axis so that the initial configuration
/// can violate the constraint slightly. The joint translation is zero
/// when the local anchor points coincide in world space.
type B2PrismaticJointDef struct {
	B2JointDefBase

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA B2Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB B2Vec2

	/// The local translation unit axis in bodyA.
	LocalAxisA B2Vec2

	/// The constrained angle between the bodies: bodyB_angle - bodyA_angle.
	ReferenceAngle float64

	/// Enable/disable the joint limit.
	EnableLimit bool

	/// The lower translation limit, usually in meters.
	LowerTranslation float64

	/// The upper translation limit, usually in meters.
	UpperTranslation float64

	/// Enable/disable the joint motor.
	EnableMotor bool

	/// The maximum motor force, usually in N.
	MaxMotorForce float64

	/// The desired motor speed in meters per second.
	MotorSpeed float64
}

func MakeB2PrismaticJointDef() B2PrismaticJointDef {
	return B2PrismaticJointDef{
		LocalAxisA: MakeB2Vec2(1.0, 0.0),
	}
}

/// Initialize the bodies, anchors, axis, and reference angle using the world
/// anchor and unit world axis.
func (def *B2PrismaticJointDef) Initialize(bA *B2Body, bB *B2Body, anchor B2Vec2, axis B2Vec2) {
	def.BodyA = bA.M_handle
	def.BodyB = bB.M_handle
	def.LocalAnchorA = bA.GetLocalPoint(anchor)
	def.LocalAnchorB = bB.GetLocalPoint(anchor)
	def.LocalAxisA = bA.GetLocalVector(axis)
	def.ReferenceAngle = bB.GetAngle() - bA.GetAngle()
}

/// A prismatic joint. This joint provides one degree of freedom: translation
/// along an axis fixed in bodyA. Relative rotation is prevented. You can
/// use a joint limit to restrict the range of motion and a joint motor to
/// drive the motion or to model joint friction.
type B2PrismaticJoint struct {
	B2JointBase

	// Solver shared
	M_localAnchorA     B2Vec2
	M_localAnchorB     B2Vec2
	M_localXAxisA      B2Vec2
	M_localYAxisA      B2Vec2
	M_referenceAngle   float64
	M_impulse          B2Vec3
	M_motorImpulse     float64
	M_lowerTranslation float64
	M_upperTranslation float64
	M_maxMotorForce    float64
	M_motorSpeed       float64
	M_enableLimit      bool
	M_enableMotor      bool
	M_limitState       uint8

	// Solver temp
	M_axis, M_perp B2Vec2
	M_s1, M_s2     float64
	M_a1, M_a2     float64
	M_K            B2Mat33
	M_motorMass    float64
}

func newB2PrismaticJoint(def *B2PrismaticJointDef, bodyA *B2Body, bodyB *B2Body) *B2PrismaticJoint {
	joint := &B2PrismaticJoint{
		B2JointBase:        makeB2JointBase(B2JointType.E_prismaticJoint, &def.B2JointDefBase, bodyA, bodyB),
		M_localAnchorA:     def.LocalAnchorA,
		M_localAnchorB:     def.LocalAnchorB,
		M_localXAxisA:      def.LocalAxisA,
		M_referenceAngle:   def.ReferenceAngle,
		M_lowerTranslation: def.LowerTranslation,
		M_upperTranslation: def.UpperTranslation,
		M_maxMotorForce:    def.MaxMotorForce,
		M_motorSpeed:       def.MotorSpeed,
		M_enableLimit:      def.EnableLimit,
		M_enableMotor:      def.EnableMotor,
		M_limitState:       B2LimitState.E_inactiveLimit,
	}

	joint.M_localXAxisA.Normalize()
	joint.M_localYAxisA = B2Vec2CrossScalarVector(1.0, joint.M_localXAxisA)

	return joint
}

func (joint B2PrismaticJoint) GetLocalAnchorA() B2Vec2 {
	return joint.M_localAnchorA
}

func (joint B2PrismaticJoint) GetLocalAnchorB() B2Vec2 {
	return joint.M_localAnchorB
}

/// The local joint axis relative to bodyA.
func (joint B2PrismaticJoint) GetLocalAxisA() B2Vec2 {
	return joint.M_localXAxisA
}

func (joint B2PrismaticJoint) GetReferenceAngle() float64 {
	return joint.M_referenceAngle
}

func (joint B2PrismaticJoint) GetMaxMotorForce() float64 {
	return joint.M_maxMotorForce
}

func (joint B2PrismaticJoint) GetMotorSpeed() float64 {
	return joint.M_motorSpeed
}

// Linear constraint (point-to-line)
// d = p2 - p1 = x2 + r2 - x1 - r1
// C = dot(perp, d)
// Cdot = dot(d, cross(w1, perp)) + dot(perp, v2 + cross(w2, r2) - v1 - cross(w1, r1))
// J = [-perp, -cross(d + r1, perp), perp, cross(r2,perp)]
//
// Angular constraint
// C = a2 - a1 + a_initial
// Cdot = w2 - w1
// J = [0 0 -1 0 0 1]
//
// The limit row is solved in block form with the two rows above:
// J = [-uT -s1 uT s2] // linear
//     [0   -1   0  1] // angular
//     [-vT -a1 vT a2] // limit
//
// u = perp, v = axis
// s1 = cross(d + r1, u), s2 = cross(r2, u)
// a1 = cross(d + r1, v), a2 = cross(r2, v)
//
// After clamping the accumulated limit impulse f2(3), the first two rows are
// re-solved:
// f2(1:2) = invK(1:2,1:2) * (-Cdot(1:2) - K(1:2,3) * (f2(3) - f1(3))) + f1(1:2)

// Effective mass of the block system.
func (joint *B2PrismaticJoint) blockMass(s1, s2, a1, a2 float64) B2Mat33 {
	mA, mB := joint.M_invMassA, joint.M_invMassB
	iA, iB := joint.M_invIA, joint.M_invIB

	k11 := mA + mB + iA*s1*s1 + iB*s2*s2
	k12 := iA*s1 + iB*s2
	k13 := iA*s1*a1 + iB*s2*a2
	k22 := iA + iB
	if k22 == 0.0 {
		// For bodies with fixed rotation.
		k22 = 1.0
	}
	k23 := iA*a1 + iB*a2
	k33 := mA + mB + iA*a1*a1 + iB*a2*a2

	var K B2Mat33
	K.Ex.Set(k11, k12, k13)
	K.Ey.Set(k12, k22, k23)
	K.Ez.Set(k13, k23, k33)
	return K
}

// Apply an impulse expressed in the (perp, angle, axis) rows.
func (joint *B2PrismaticJoint) applyRows(vA *B2Vec2, wA *float64, vB *B2Vec2, wB *float64, perp B2Vec2, axis B2Vec2, s1, s2, a1, a2 float64, impulse B2Vec3) {
	P := B2Vec2Add(B2Vec2MulScalar(impulse.X, perp), B2Vec2MulScalar(impulse.Z, axis))
	LA := impulse.X*s1 + impulse.Y + impulse.Z*a1
	LB := impulse.X*s2 + impulse.Y + impulse.Z*a2
	joint.applyJacobianImpulse(vA, wA, vB, wB, P, LA, LB)
}

func (joint *B2PrismaticJoint) InitVelocityConstraints(data B2SolverData) {
	joint.prepareSolverBodies()

	cA, aA, cB, aB := joint.positions(data)
	vA, wA, vB, wB := joint.velocities(data)

	qA := MakeB2RotFromAngle(aA)
	qB := MakeB2RotFromAngle(aB)

	// Compute the effective masses.
	rA := B2RotVec2Mul(qA, B2Vec2Sub(joint.M_localAnchorA, joint.M_localCenterA))
	rB := B2RotVec2Mul(qB, B2Vec2Sub(joint.M_localAnchorB, joint.M_localCenterB))
	d := B2Vec2Sub(B2Vec2Add(cB, rB), B2Vec2Add(cA, rA))

	// Compute motor Jacobian and effective mass.
	joint.M_axis = B2RotVec2Mul(qA, joint.M_localXAxisA)
	joint.M_a1 = B2Vec2Cross(B2Vec2Add(d, rA), joint.M_axis)
	joint.M_a2 = B2Vec2Cross(rB, joint.M_axis)

	joint.M_motorMass = b2InvOrZero(joint.M_invMassA + joint.M_invMassB +
		joint.M_invIA*joint.M_a1*joint.M_a1 + joint.M_invIB*joint.M_a2*joint.M_a2)

	// Prismatic constraint.
	joint.M_perp = B2RotVec2Mul(qA, joint.M_localYAxisA)
	joint.M_s1 = B2Vec2Cross(B2Vec2Add(d, rA), joint.M_perp)
	joint.M_s2 = B2Vec2Cross(rB, joint.M_perp)

	joint.M_K = joint.blockMass(joint.M_s1, joint.M_s2, joint.M_a1, joint.M_a2)

	// Compute motor and limit terms.
	if joint.M_enableLimit {
		jointTranslation := B2Vec2Dot(joint.M_axis, d)
		state, reset := b2ClassifyLimit(jointTranslation, joint.M_lowerTranslation, joint.M_upperTranslation, 2.0*B2_linearSlop, joint.M_limitState)
		if reset {
			joint.M_impulse.Z = 0.0
		}
		joint.M_limitState = state
	} else {
		joint.M_limitState = B2LimitState.E_inactiveLimit
		joint.M_impulse.Z = 0.0
	}

	if !joint.M_enableMotor {
		joint.M_motorImpulse = 0.0
	}

	if data.Step.WarmStarting {
		// Account for variable time step.
		joint.M_impulse = B2Vec3MultScalar(data.Step.DtRatio, joint.M_impulse)
		joint.M_motorImpulse *= data.Step.DtRatio

		warm := joint.M_impulse
		warm.Z += joint.M_motorImpulse
		joint.applyRows(&vA, &wA, &vB, &wB, joint.M_perp, joint.M_axis, joint.M_s1, joint.M_s2, joint.M_a1, joint.M_a2, warm)
	} else {
		joint.M_impulse.SetZero()
		joint.M_motorImpulse = 0.0
	}

	joint.storeVelocities(data, vA, wA, vB, wB)
}

func (joint *B2PrismaticJoint) SolveVelocityConstraints(data B2SolverData) {
	vA, wA, vB, wB := joint.velocities(data)

	axialSpeed := func() float64 {
		return B2Vec2Dot(joint.M_axis, B2Vec2Sub(vB, vA)) + joint.M_a2*wB - joint.M_a1*wA
	}

	// Solve linear motor constraint.
	if joint.M_enableMotor && joint.M_limitState != B2LimitState.E_equalLimits {
		impulse := joint.M_motorMass * (joint.M_motorSpeed - axialSpeed())
		oldImpulse := joint.M_motorImpulse
		maxImpulse := data.Step.Dt * joint.M_maxMotorForce
		joint.M_motorImpulse = B2FloatClamp(joint.M_motorImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = joint.M_motorImpulse - oldImpulse

		joint.applyJacobianImpulse(&vA, &wA, &vB, &wB, B2Vec2MulScalar(impulse, joint.M_axis), impulse*joint.M_a1, impulse*joint.M_a2)
	}

	var Cdot1 B2Vec2
	Cdot1.X = B2Vec2Dot(joint.M_perp, B2Vec2Sub(vB, vA)) + joint.M_s2*wB - joint.M_s1*wA
	Cdot1.Y = wB - wA

	var df B2Vec3
	if joint.M_enableLimit && joint.M_limitState != B2LimitState.E_inactiveLimit {
		// Solve prismatic and limit constraint in block form.
		Cdot := MakeB2Vec3(Cdot1.X, Cdot1.Y, axialSpeed())

		f1 := joint.M_impulse
		joint.M_impulse.OperatorPlusInplace(joint.M_K.Solve33(Cdot.OperatorNegate()))

		switch joint.M_limitState {
		case B2LimitState.E_atLowerLimit:
			joint.M_impulse.Z = math.Max(joint.M_impulse.Z, 0.0)
		case B2LimitState.E_atUpperLimit:
			joint.M_impulse.Z = math.Min(joint.M_impulse.Z, 0.0)
		}

		b := B2Vec2Sub(Cdot1.OperatorNegate(), B2Vec2MulScalar(joint.M_impulse.Z-f1.Z, MakeB2Vec2(joint.M_K.Ez.X, joint.M_K.Ez.Y)))
		f2r := B2Vec2Add(joint.M_K.Solve22(b), MakeB2Vec2(f1.X, f1.Y))
		joint.M_impulse.X = f2r.X
		joint.M_impulse.Y = f2r.Y

		df = B2Vec3Sub(joint.M_impulse, f1)
	} else {
		// Limit is inactive, just solve the prismatic constraint in block form.
		df2 := joint.M_K.Solve22(Cdot1.OperatorNegate())
		joint.M_impulse.X += df2.X
		joint.M_impulse.Y += df2.Y

		df.Set(df2.X, df2.Y, 0.0)
	}

	joint.applyRows(&vA, &wA, &vB, &wB, joint.M_perp, joint.M_axis, joint.M_s1, joint.M_s2, joint.M_a1, joint.M_a2, df)

	joint.storeVelocities(data, vA, wA, vB, wB)
}

// The position solver only copes with integration error; its pseudo impulses
// have no physical meaning. The limit state is recomputed from positions
// because the joint may push past a limit the velocity solver considered
// inactive.
func (joint *B2PrismaticJoint) SolvePositionConstraints(data B2SolverData) bool {
	cA, aA, cB, aB := joint.positions(data)

	qA := MakeB2RotFromAngle(aA)
	qB := MakeB2RotFromAngle(aB)

	// Compute fresh Jacobians
	rA := B2RotVec2Mul(qA, B2Vec2Sub(joint.M_localAnchorA, joint.M_localCenterA))
	rB := B2RotVec2Mul(qB, B2Vec2Sub(joint.M_localAnchorB, joint.M_localCenterB))
	d := B2Vec2Sub(B2Vec2Add(cB, rB), B2Vec2Add(cA, rA))

	axis := B2RotVec2Mul(qA, joint.M_localXAxisA)
	a1 := B2Vec2Cross(B2Vec2Add(d, rA), axis)
	a2 := B2Vec2Cross(rB, axis)
	perp := B2RotVec2Mul(qA, joint.M_localYAxisA)

	s1 := B2Vec2Cross(B2Vec2Add(d, rA), perp)
	s2 := B2Vec2Cross(rB, perp)

	C1 := MakeB2Vec2(B2Vec2Dot(perp, d), aB-aA-joint.M_referenceAngle)

	linearError := math.Abs(C1.X)
	angularError := math.Abs(C1.Y)

	active := false
	C2 := 0.0
	if joint.M_enableLimit {
		translation := B2Vec2Dot(axis, d)
		switch {
		case math.Abs(joint.M_upperTranslation-joint.M_lowerTranslation) < 2.0*B2_linearSlop:
			// Prevent large angular corrections
			C2 = B2FloatClamp(translation, -B2_maxLinearCorrection, B2_maxLinearCorrection)
			linearError = math.Max(linearError, math.Abs(translation))
			active = true

		case translation <= joint.M_lowerTranslation:
			// Prevent large linear corrections and allow some slop.
			C2 = B2FloatClamp(translation-joint.M_lowerTranslation+B2_linearSlop, -B2_maxLinearCorrection, 0.0)
			linearError = math.Max(linearError, joint.M_lowerTranslation-translation)
			active = true

		case translation >= joint.M_upperTranslation:
			C2 = B2FloatClamp(translation-joint.M_upperTranslation-B2_linearSlop, 0.0, B2_maxLinearCorrection)
			linearError = math.Max(linearError, translation-joint.M_upperTranslation)
			active = true
		}
	}

	K := joint.blockMass(s1, s2, a1, a2)

	var impulse B2Vec3
	if active {
		impulse = K.Solve33(MakeB2Vec3(C1.X, C1.Y, C2).OperatorNegate())
	} else {
		impulse1 := K.Solve22(C1.OperatorNegate())
		impulse.Set(impulse1.X, impulse1.Y, 0.0)
	}

	joint.applyRows(&cA, &aA, &cB, &aB, perp, axis, s1, s2, a1, a2, impulse)
	joint.storePositions(data, cA, aA, cB, aB)

	return linearError <= B2_linearSlop && angularError <= B2_angularSlop
}

func (joint B2PrismaticJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_localAnchorA)
}

func (joint B2PrismaticJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchorB)
}

func (joint B2PrismaticJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	return B2Vec2MulScalar(inv_dt, B2Vec2Add(B2Vec2MulScalar(joint.M_impulse.X, joint.M_perp), B2Vec2MulScalar(joint.M_motorImpulse+joint.M_impulse.Z, joint.M_axis)))
}

func (joint B2PrismaticJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.M_impulse.Y
}

/// Get the current joint translation, usually in meters.
func (joint B2PrismaticJoint) GetJointTranslation() float64 {
	pA := joint.M_bodyA.GetWorldPoint(joint.M_localAnchorA)
	pB := joint.M_bodyB.GetWorldPoint(joint.M_localAnchorB)
	axis := joint.M_bodyA.GetWorldVector(joint.M_localXAxisA)

	return B2Vec2Dot(B2Vec2Sub(pB, pA), axis)
}

/// Get the current joint translation speed, usually in meters per second.
func (joint B2PrismaticJoint) GetJointSpeed() float64 {
	bA := joint.M_bodyA
	bB := joint.M_bodyB

	rA := B2RotVec2Mul(bA.M_xf.Q, B2Vec2Sub(joint.M_localAnchorA, bA.M_sweep.LocalCenter))
	rB := B2RotVec2Mul(bB.M_xf.Q, B2Vec2Sub(joint.M_localAnchorB, bB.M_sweep.LocalCenter))
	d := B2Vec2Sub(B2Vec2Add(bB.M_sweep.C, rB), B2Vec2Add(bA.M_sweep.C, rA))
	axis := B2RotVec2Mul(bA.M_xf.Q, joint.M_localXAxisA)

	vA, wA := bA.M_linearVelocity, bA.M_angularVelocity
	vB, wB := bB.M_linearVelocity, bB.M_angularVelocity

	return B2Vec2Dot(d, B2Vec2CrossScalarVector(wA, axis)) +
		B2Vec2Dot(axis, b2AnchorVelocity(vA, wA, rA, vB, wB, rB))
}

func (joint B2PrismaticJoint) IsLimitEnabled() bool {
	return joint.M_enableLimit
}

func (joint *B2PrismaticJoint) EnableLimit(flag bool) {
	if flag != joint.M_enableLimit {
		joint.wakeBodies()
		joint.M_enableLimit = flag
		joint.M_impulse.Z = 0.0
	}
}

func (joint B2PrismaticJoint) GetLowerLimit() float64 {
	return joint.M_lowerTranslation
}

func (joint B2PrismaticJoint) GetUpperLimit() float64 {
	return joint.M_upperTranslation
}

/// Set the joint limits, usually in meters.
func (joint *B2PrismaticJoint) SetLimits(lower float64, upper float64) error {
	if lower > upper {
		return fmt.Errorf("%w: prismatic lower translation %g above upper translation %g", ErrInvalidJointDef, lower, upper)
	}

	if lower != joint.M_lowerTranslation || upper != joint.M_upperTranslation {
		joint.wakeBodies()
		joint.M_lowerTranslation = lower
		joint.M_upperTranslation = upper
		joint.M_impulse.Z = 0.0
	}

	return nil
}

func (joint B2PrismaticJoint) IsMotorEnabled() bool {
	return joint.M_enableMotor
}

func (joint *B2PrismaticJoint) EnableMotor(flag bool) {
	if flag != joint.M_enableMotor {
		joint.wakeBodies()
		joint.M_enableMotor = flag
	}
}

func (joint *B2PrismaticJoint) SetMotorSpeed(speed float64) {
	if speed != joint.M_motorSpeed {
		joint.wakeBodies()
		joint.M_motorSpeed = speed
	}
}

func (joint *B2PrismaticJoint) SetMaxMotorForce(force float64) {
	if force != joint.M_maxMotorForce {
		joint.wakeBodies()
		joint.M_maxMotorForce = force
	}
}

/// Get the current motor force given the inverse time step, usually in N.
func (joint B2PrismaticJoint) GetMotorForce(inv_dt float64) float64 {
	return inv_dt * joint.M_motorImpulse
}

func (joint *B2PrismaticJoint) Dump() {
	joint.dumpDef("MakeB2PrismaticJointDef")
	B2Log("  jd.LocalAnchorA = %s\n", b2DumpVec(joint.M_localAnchorA))
	B2Log("  jd.LocalAnchorB = %s\n", b2DumpVec(joint.M_localAnchorB))
	B2Log("  jd.LocalAxisA = %s\n", b2DumpVec(joint.M_localXAxisA))
	B2Log("  jd.ReferenceAngle = %.15e\n", joint.M_referenceAngle)
	B2Log("  jd.EnableLimit = %t\n", joint.M_enableLimit)
	B2Log("  jd.LowerTranslation = %.15e\n", joint.M_lowerTranslation)
	B2Log("  jd.UpperTranslation = %.15e\n", joint.M_upperTranslation)
	B2Log("  jd.EnableMotor = %t\n", joint.M_enableMotor)
	B2Log("  jd.MotorSpeed = %.15e\n", joint.M_motorSpeed)
	B2Log("  jd.MaxMotorForce = %.15e\n", joint.M_maxMotorForce)
	B2Log("  joints[%d], _ = world.CreateJoint(&jd)\n", joint.M_index)
}
