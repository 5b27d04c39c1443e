package box2d

import (
	"fmt"
	"math"
)

/// Revolute joint definition. This requires defining an
/// anchor point where the bodies are joined. The definition
/// uses local anchor points so that the initial configuration
/// can violate the constraint slightly. You also need to
/// specify the initial relative angle for joint limits.
/// The local anchor points are measured from the body's origin
/// rather than the center of mass because:
/// 1. you might not know where the center of mass will be.
/// 2. if you add/remove shapes from a body and recompute the mass,
///    the joints will be broken.
type B2RevoluteJointDef struct {
	B2JointDefBase

	/// The local anchor point relative to bodyA's origin.
	LocalAnchorA B2Vec2

	/// The local anchor point relative to bodyB's origin.
	LocalAnchorB B2Vec2

	/// The bodyB angle minus bodyA angle in the reference state (radians).
	ReferenceAngle float64

	/// A flag to enable joint limits.
	EnableLimit bool

	/// The lower angle for the joint limit (radians).
	LowerAngle float64

	/// The upper angle for the joint limit (radians).
	UpperAngle float64

	/// A flag to enable the joint motor.
	EnableMotor bool

	/// The desired motor speed. Usually in radians per second.
	MotorSpeed float64

	/// The maximum motor torque used to achieve the desired motor speed.
	/// Usually in N-m.
	MaxMotorTorque float64
}

func MakeB2RevoluteJointDef() B2RevoluteJointDef {
	return B2RevoluteJointDef{}
}

/// Initialize the bodies, anchors, and reference angle using a world
/// anchor point.
func (def *B2RevoluteJointDef) Initialize(bA *B2Body, bB *B2Body, anchor B2Vec2) {
	def.BodyA = bA.M_handle
	def.BodyB = bB.M_handle
	def.LocalAnchorA = bA.GetLocalPoint(anchor)
	def.LocalAnchorB = bB.GetLocalPoint(anchor)
	def.ReferenceAngle = bB.GetAngle() - bA.GetAngle()
}

/// A revolute joint constrains two bodies to share a common point while they
/// are free to rotate about the point. The relative rotation about the shared
/// point is the joint angle. You can limit the relative rotation with
/// a joint limit that specifies a lower and upper angle. You can use a motor
/// to drive the relative rotation about the shared point. A maximum motor torque
/// is provided so that infinite forces are not generated.
type B2RevoluteJoint struct {
	B2JointBase

	// Solver shared
	M_localAnchorA B2Vec2
	M_localAnchorB B2Vec2
	M_impulse      B2Vec3
	M_motorImpulse float64

	M_enableMotor    bool
	M_maxMotorTorque float64
	M_motorSpeed     float64

	M_enableLimit    bool
	M_referenceAngle float64
	M_lowerAngle     float64
	M_upperAngle     float64

	// Solver temp
	M_rA         B2Vec2
	M_rB         B2Vec2
	M_mass       B2Mat33 // effective mass for point-to-point constraint.
	M_motorMass  float64 // effective mass for motor/limit angular constraint.
	M_limitState uint8
}

func newB2RevoluteJoint(def *B2RevoluteJointDef, bodyA *B2Body, bodyB *B2Body) *B2RevoluteJoint {
	return &B2RevoluteJoint{
		B2JointBase:      makeB2JointBase(B2JointType.E_revoluteJoint, &def.B2JointDefBase, bodyA, bodyB),
		M_localAnchorA:   def.LocalAnchorA,
		M_localAnchorB:   def.LocalAnchorB,
		M_referenceAngle: def.ReferenceAngle,
		M_lowerAngle:     def.LowerAngle,
		M_upperAngle:     def.UpperAngle,
		M_maxMotorTorque: def.MaxMotorTorque,
		M_motorSpeed:     def.MotorSpeed,
		M_enableLimit:    def.EnableLimit,
		M_enableMotor:    def.EnableMotor,
		M_limitState:     B2LimitState.E_inactiveLimit,
	}
}

func (joint B2RevoluteJoint) GetLocalAnchorA() B2Vec2 {
	return joint.M_localAnchorA
}

func (joint B2RevoluteJoint) GetLocalAnchorB() B2Vec2 {
	return joint.M_localAnchorB
}

func (joint B2RevoluteJoint) GetReferenceAngle() float64 {
	return joint.M_referenceAngle
}

func (joint B2RevoluteJoint) GetMaxMotorTorque() float64 {
	return joint.M_maxMotorTorque
}

func (joint B2RevoluteJoint) GetMotorSpeed() float64 {
	return joint.M_motorSpeed
}

// Point-to-point constraint
// C = p2 - p1
// Cdot = v2 - v1
//      = v2 + cross(w2, r2) - v1 - cross(w1, r1)
// J = [-I -r1_skew I r2_skew ]
//
// Motor constraint
// Cdot = w2 - w1
// J = [0 0 -1 0 0 1]
// K = invI1 + invI2

func (joint *B2RevoluteJoint) fixedRotation() bool {
	return joint.M_invIA+joint.M_invIB == 0.0
}

func (joint *B2RevoluteJoint) InitVelocityConstraints(data B2SolverData) {
	joint.prepareSolverBodies()

	_, aA, _, aB := joint.positions(data)
	vA, wA, vB, wB := joint.velocities(data)

	joint.M_rA = B2RotVec2Mul(MakeB2RotFromAngle(aA), B2Vec2Sub(joint.M_localAnchorA, joint.M_localCenterA))
	joint.M_rB = B2RotVec2Mul(MakeB2RotFromAngle(aB), B2Vec2Sub(joint.M_localAnchorB, joint.M_localCenterB))

	joint.M_mass = joint.pointAngleMass(joint.M_rA, joint.M_rB)
	joint.M_motorMass = b2InvOrZero(joint.M_invIA + joint.M_invIB)

	fixedRotation := joint.fixedRotation()

	if !joint.M_enableMotor || fixedRotation {
		joint.M_motorImpulse = 0.0
	}

	if joint.M_enableLimit && !fixedRotation {
		jointAngle := aB - aA - joint.M_referenceAngle
		state, reset := b2ClassifyLimit(jointAngle, joint.M_lowerAngle, joint.M_upperAngle, 2.0*B2_angularSlop, joint.M_limitState)
		if reset {
			joint.M_impulse.Z = 0.0
		}
		joint.M_limitState = state
	} else {
		joint.M_limitState = B2LimitState.E_inactiveLimit
	}

	if data.Step.WarmStarting {
		// Scale impulses to support a variable time step.
		joint.M_impulse = B2Vec3MultScalar(data.Step.DtRatio, joint.M_impulse)
		joint.M_motorImpulse *= data.Step.DtRatio

		P := MakeB2Vec2(joint.M_impulse.X, joint.M_impulse.Y)
		joint.applyImpulse(&vA, &wA, &vB, &wB, joint.M_rA, joint.M_rB, P, joint.M_motorImpulse+joint.M_impulse.Z)
	} else {
		joint.M_impulse.SetZero()
		joint.M_motorImpulse = 0.0
	}

	joint.storeVelocities(data, vA, wA, vB, wB)
}

func (joint *B2RevoluteJoint) SolveVelocityConstraints(data B2SolverData) {
	vA, wA, vB, wB := joint.velocities(data)

	fixedRotation := joint.fixedRotation()

	// Solve motor constraint.
	if joint.M_enableMotor && joint.M_limitState != B2LimitState.E_equalLimits && !fixedRotation {
		Cdot := wB - wA - joint.M_motorSpeed
		impulse := -joint.M_motorMass * Cdot
		oldImpulse := joint.M_motorImpulse
		maxImpulse := data.Step.Dt * joint.M_maxMotorTorque
		joint.M_motorImpulse = B2FloatClamp(joint.M_motorImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = joint.M_motorImpulse - oldImpulse

		wA -= joint.M_invIA * impulse
		wB += joint.M_invIB * impulse
	}

	if joint.M_enableLimit && joint.M_limitState != B2LimitState.E_inactiveLimit && !fixedRotation {
		// Solve limit constraint.
		Cdot1 := b2AnchorVelocity(vA, wA, joint.M_rA, vB, wB, joint.M_rB)
		Cdot := MakeB2Vec3(Cdot1.X, Cdot1.Y, wB-wA)

		impulse := joint.M_mass.Solve33(Cdot).OperatorNegate()
		newImpulse := joint.M_impulse.Z + impulse.Z

		// A one-sided limit may only push. Drop the angular row when the
		// accumulated impulse would pull.
		pulls := (joint.M_limitState == B2LimitState.E_atLowerLimit && newImpulse < 0.0) ||
			(joint.M_limitState == B2LimitState.E_atUpperLimit && newImpulse > 0.0)

		if pulls {
			rhs := B2Vec2Add(Cdot1.OperatorNegate(), B2Vec2MulScalar(joint.M_impulse.Z, MakeB2Vec2(joint.M_mass.Ez.X, joint.M_mass.Ez.Y)))
			reduced := joint.M_mass.Solve22(rhs)
			impulse.Set(reduced.X, reduced.Y, -joint.M_impulse.Z)
			joint.M_impulse.X += reduced.X
			joint.M_impulse.Y += reduced.Y
			joint.M_impulse.Z = 0.0
		} else {
			joint.M_impulse.OperatorPlusInplace(impulse)
		}

		joint.applyImpulse(&vA, &wA, &vB, &wB, joint.M_rA, joint.M_rB, MakeB2Vec2(impulse.X, impulse.Y), impulse.Z)
	} else {
		// Solve point-to-point constraint
		Cdot := b2AnchorVelocity(vA, wA, joint.M_rA, vB, wB, joint.M_rB)
		impulse := joint.M_mass.Solve22(Cdot.OperatorNegate())

		joint.M_impulse.X += impulse.X
		joint.M_impulse.Y += impulse.Y

		joint.applyImpulse(&vA, &wA, &vB, &wB, joint.M_rA, joint.M_rB, impulse, 0.0)
	}

	joint.storeVelocities(data, vA, wA, vB, wB)
}

func (joint *B2RevoluteJoint) SolvePositionConstraints(data B2SolverData) bool {
	cA, aA, cB, aB := joint.positions(data)

	angularError := 0.0

	// Solve angular limit constraint.
	if joint.M_enableLimit && joint.M_limitState != B2LimitState.E_inactiveLimit && !joint.fixedRotation() {
		angle := aB - aA - joint.M_referenceAngle
		limitImpulse := 0.0

		switch joint.M_limitState {
		case B2LimitState.E_equalLimits:
			// Prevent large angular corrections
			C := B2FloatClamp(angle-joint.M_lowerAngle, -B2_maxAngularCorrection, B2_maxAngularCorrection)
			limitImpulse = -joint.M_motorMass * C
			angularError = math.Abs(C)

		case B2LimitState.E_atLowerLimit:
			C := angle - joint.M_lowerAngle
			angularError = -C

			// Prevent large angular corrections and allow some slop.
			C = B2FloatClamp(C+B2_angularSlop, -B2_maxAngularCorrection, 0.0)
			limitImpulse = -joint.M_motorMass * C

		case B2LimitState.E_atUpperLimit:
			C := angle - joint.M_upperAngle
			angularError = C

			C = B2FloatClamp(C-B2_angularSlop, 0.0, B2_maxAngularCorrection)
			limitImpulse = -joint.M_motorMass * C
		}

		aA -= joint.M_invIA * limitImpulse
		aB += joint.M_invIB * limitImpulse
	}

	// Solve point-to-point constraint.
	rA := B2RotVec2Mul(MakeB2RotFromAngle(aA), B2Vec2Sub(joint.M_localAnchorA, joint.M_localCenterA))
	rB := B2RotVec2Mul(MakeB2RotFromAngle(aB), B2Vec2Sub(joint.M_localAnchorB, joint.M_localCenterB))

	C := B2Vec2Sub(B2Vec2Add(cB, rB), B2Vec2Add(cA, rA))
	positionError := C.Length()

	impulse := joint.pointMass(rA, rB).Solve(C).OperatorNegate()
	joint.applyImpulse(&cA, &aA, &cB, &aB, rA, rB, impulse, 0.0)

	joint.storePositions(data, cA, aA, cB, aB)

	return positionError <= B2_linearSlop && angularError <= B2_angularSlop
}

func (joint B2RevoluteJoint) GetAnchorA() B2Vec2 {
	return joint.M_bodyA.GetWorldPoint(joint.M_localAnchorA)
}

func (joint B2RevoluteJoint) GetAnchorB() B2Vec2 {
	return joint.M_bodyB.GetWorldPoint(joint.M_localAnchorB)
}

func (joint B2RevoluteJoint) GetReactionForce(inv_dt float64) B2Vec2 {
	return B2Vec2MulScalar(inv_dt, MakeB2Vec2(joint.M_impulse.X, joint.M_impulse.Y))
}

func (joint B2RevoluteJoint) GetReactionTorque(inv_dt float64) float64 {
	return inv_dt * joint.M_impulse.Z
}

/// Get the current joint angle in radians.
func (joint B2RevoluteJoint) GetJointAngle() float64 {
	return joint.M_bodyB.M_sweep.A - joint.M_bodyA.M_sweep.A - joint.M_referenceAngle
}

/// Get the current joint angle speed in radians per second.
func (joint B2RevoluteJoint) GetJointSpeed() float64 {
	return joint.M_bodyB.M_angularVelocity - joint.M_bodyA.M_angularVelocity
}

func (joint B2RevoluteJoint) IsMotorEnabled() bool {
	return joint.M_enableMotor
}

func (joint *B2RevoluteJoint) EnableMotor(flag bool) {
	if flag != joint.M_enableMotor {
		joint.wakeBodies()
		joint.M_enableMotor = flag
	}
}

/// Get the current motor torque given the inverse time step.
/// Unit is N*m.
func (joint B2RevoluteJoint) GetMotorTorque(inv_dt float64) float64 {
	return inv_dt * joint.M_motorImpulse
}

func (joint *B2RevoluteJoint) SetMotorSpeed(speed float64) {
	if speed != joint.M_motorSpeed {
		joint.wakeBodies()
		joint.M_motorSpeed = speed
	}
}

func (joint *B2RevoluteJoint) SetMaxMotorTorque(torque float64) {
	if torque != joint.M_maxMotorTorque {
		joint.wakeBodies()
		joint.M_maxMotorTorque = torque
	}
}

func (joint B2RevoluteJoint) IsLimitEnabled() bool {
	return joint.M_enableLimit
}

func (joint *B2RevoluteJoint) EnableLimit(flag bool) {
	if flag != joint.M_enableLimit {
		joint.wakeBodies()
		joint.M_enableLimit = flag
		joint.M_impulse.Z = 0.0
	}
}

func (joint B2RevoluteJoint) GetLowerLimit() float64 {
	return joint.M_lowerAngle
}

func (joint B2RevoluteJoint) GetUpperLimit() float64 {
	return joint.M_upperAngle
}

/// Set the joint limits in radians.
func (joint *B2RevoluteJoint) SetLimits(lower float64, upper float64) error {
	if lower > upper {
		return fmt.Errorf("%w: revolute lower angle %g above upper angle %g", ErrInvalidJointDef, lower, upper)
	}

	if lower != joint.M_lowerAngle || upper != joint.M_upperAngle {
		joint.wakeBodies()
		joint.M_impulse.Z = 0.0
		joint.M_lowerAngle = lower
		joint.M_upperAngle = upper
	}

	return nil
}

func (joint *B2RevoluteJoint) Dump() {
	joint.dumpDef("MakeB2RevoluteJointDef")
	B2Log("  jd.LocalAnchorA = %s\n", b2DumpVec(joint.M_localAnchorA))
	B2Log("  jd.LocalAnchorB = %s\n", b2DumpVec(joint.M_localAnchorB))
	B2Log("  jd.ReferenceAngle = %.15e\n", joint.M_referenceAngle)
	B2Log("  jd.EnableLimit = %t\n", joint.M_enableLimit)
	B2Log("  jd.LowerAngle = %.15e\n", joint.M_lowerAngle)
	B2Log("  jd.UpperAngle = %.15e\n", joint.M_upperAngle)
	B2Log("  jd.EnableMotor = %t\n", joint.M_enableMotor)
	B2Log("  jd.MotorSpeed = %.15e\n", joint.M_motorSpeed)
	B2Log("  jd.MaxMotorTorque = %.15e\n", joint.M_maxMotorTorque)
	B2Log("  joints[%d], _ = world.CreateJoint(&jd)\n", joint.M_index)
}
