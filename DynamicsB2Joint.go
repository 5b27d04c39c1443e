package box2d

import (
	"fmt"
	"math"
)

var B2JointType = struct {
	E_unknownJoint   uint8
	E_revoluteJoint  uint8
	E_prismaticJoint uint8
	E_distanceJoint  uint8
	E_mouseJoint     uint8
	E_weldJoint      uint8
	E_frictionJoint  uint8
}{
	E_unknownJoint:   1,
	E_revoluteJoint:  2,
	E_prismaticJoint: 3,
	E_distanceJoint:  4,
	E_mouseJoint:     6,
	E_weldJoint:      9,
	E_frictionJoint:  10,
}

var B2LimitState = struct {
	E_inactiveLimit uint8
	E_atLowerLimit  uint8
	E_atUpperLimit  uint8
	E_equalLimits   uint8
}{
	E_inactiveLimit: 1,
	E_atLowerLimit:  2,
	E_atUpperLimit:  3,
	E_equalLimits:   4,
}

/// B2BodyResolver turns body handles into bodies when a joint is built.
/// B2World implements it.
type B2BodyResolver interface {
	Body(h B2BodyHandle) (*B2Body, error)

	/// A static body at the origin. Joints whose BodyA handle is nil attach
	/// BodyB to it, which gives the fixed variant of every joint kind.
	GroundBody() *B2Body
}

/// Fields shared by every joint definition.
type B2JointDefBase struct {
	/// Use this to attach application specific data to your joints.
	UserData interface{}

	/// The first attached body. Leave it nil to attach BodyB to the world.
	BodyA B2BodyHandle

	/// The second attached body.
	BodyB B2BodyHandle

	/// Set this flag to true if the attached bodies should collide.
	CollideConnected bool
}

func (def *B2JointDefBase) jointDef() *B2JointDefBase {
	return def
}

/// Joint definitions are used to construct joints. The set is closed:
/// *B2WeldJointDef, *B2FrictionJointDef, *B2RevoluteJointDef,
/// *B2PrismaticJointDef, *B2DistanceJointDef and *B2MouseJointDef.
type B2JointDef interface {
	jointDef() *B2JointDefBase
}

/// The base joint state. Joints are used to constraint two bodies together in
/// various fashions. Some joints also feature limits and motors.
type B2JointBase struct {
	M_type             uint8
	M_handle           B2JointHandle
	M_bodyA            *B2Body
	M_bodyB            *B2Body
	M_index            int
	M_islandFlag       bool
	M_collideConnected bool
	M_userData         interface{}

	// Solver temp
	M_indexA       int
	M_indexB       int
	M_localCenterA B2Vec2
	M_localCenterB B2Vec2
	M_invMassA     float64
	M_invMassB     float64
	M_invIA        float64
	M_invIB        float64
}

func makeB2JointBase(jointType uint8, def *B2JointDefBase, bodyA *B2Body, bodyB *B2Body) B2JointBase {
	return B2JointBase{
		M_type:             jointType,
		M_bodyA:            bodyA,
		M_bodyB:            bodyB,
		M_collideConnected: def.CollideConnected,
		M_userData:         def.UserData,
	}
}

func (j *B2JointBase) base() *B2JointBase {
	return j
}

// Cache the island indices and mass properties of both bodies.
func (j *B2JointBase) prepareSolverBodies() {
	j.M_indexA = j.M_bodyA.M_islandIndex
	j.M_indexB = j.M_bodyB.M_islandIndex
	j.M_localCenterA = j.M_bodyA.M_sweep.LocalCenter
	j.M_localCenterB = j.M_bodyB.M_sweep.LocalCenter
	j.M_invMassA = j.M_bodyA.M_invMass
	j.M_invMassB = j.M_bodyB.M_invMass
	j.M_invIA = j.M_bodyA.M_invI
	j.M_invIB = j.M_bodyB.M_invI
}

func (j B2JointBase) GetType() uint8 {
	return j.M_type
}

func (j B2JointBase) GetHandle() B2JointHandle {
	return j.M_handle
}

/// Get the first body attached to this joint.
func (j B2JointBase) GetBodyA() B2BodyHandle {
	return j.M_bodyA.M_handle
}

/// Get the second body attached to this joint.
func (j B2JointBase) GetBodyB() B2BodyHandle {
	return j.M_bodyB.M_handle
}

func (j B2JointBase) GetUserData() interface{} {
	return j.M_userData
}

func (j *B2JointBase) SetUserData(data interface{}) {
	j.M_userData = data
}

/// Get collide connected.
/// Note: modifying the collide connect flag won't work correctly because
/// the flag is only checked when fixture AABBs begin to overlap.
func (j B2JointBase) IsCollideConnected() bool {
	return j.M_collideConnected
}

/// Short-cut function to determine if either body is inactive.
func (j B2JointBase) IsActive() bool {
	return j.M_bodyA.IsActive() && j.M_bodyB.IsActive()
}

/// Shift the origin for any points stored in world coordinates.
func (j *B2JointBase) ShiftOrigin(newOrigin B2Vec2) {}

func (j *B2JointBase) other(body *B2Body) *B2Body {
	if j.M_bodyA == body {
		return j.M_bodyB
	}
	return j.M_bodyA
}

// Open a joint definition in the dump. Bodies are referenced by their dump
// index, assigned by B2World.Dump.
func (j B2JointBase) dumpDef(makeDef string) {
	B2Log("  jd := box2d.%s()\n", makeDef)
	B2Log("  jd.BodyA = bodies[%d].GetHandle()\n", j.M_bodyA.M_islandIndex)
	B2Log("  jd.BodyB = bodies[%d].GetHandle()\n", j.M_bodyB.M_islandIndex)
	B2Log("  jd.CollideConnected = %t\n", j.M_collideConnected)
}

/// A joint between two bodies. The set of joints is closed; use a type
/// switch to reach kind specific accessors.
type B2Joint interface {
	GetType() uint8
	GetHandle() B2JointHandle

	GetBodyA() B2BodyHandle
	GetBodyB() B2BodyHandle

	/// Get the anchor point on bodyA in world coordinates.
	GetAnchorA() B2Vec2

	/// Get the anchor point on bodyB in world coordinates.
	GetAnchorB() B2Vec2

	/// Get the reaction force on bodyB at the joint anchor in Newtons.
	GetReactionForce(inv_dt float64) B2Vec2

	/// Get the reaction torque on bodyB in N*m.
	GetReactionTorque(inv_dt float64) float64

	GetUserData() interface{}
	SetUserData(data interface{})

	IsCollideConnected() bool
	IsActive() bool

	/// Dump this joint to the log file.
	Dump()

	/// Shift the origin for any points stored in world coordinates.
	ShiftOrigin(newOrigin B2Vec2)

	InitVelocityConstraints(data B2SolverData)
	SolveVelocityConstraints(data B2SolverData)
	SolvePositionConstraints(data B2SolverData) bool

	base() *B2JointBase
}

/// Build a joint from its definition. Body handles are resolved through
/// bodies. The returned joint is not registered with any world; use
/// B2World.CreateJoint for that.
func B2NewJoint(def B2JointDef, bodies B2BodyResolver) (B2Joint, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", ErrInvalidJointDef)
	}

	common := def.jointDef()

	var bodyA *B2Body
	if common.BodyA.IsNil() {
		bodyA = bodies.GroundBody()
	} else {
		b, err := bodies.Body(common.BodyA)
		if err != nil {
			return nil, fmt.Errorf("joint body A: %w", err)
		}
		bodyA = b
	}

	bodyB, err := bodies.Body(common.BodyB)
	if err != nil {
		return nil, fmt.Errorf("joint body B: %w", err)
	}

	if bodyA == bodyB {
		return nil, fmt.Errorf("%w: both ends attach to body %v", ErrInvalidJointDef, bodyB.M_handle)
	}

	switch d := def.(type) {
	case *B2WeldJointDef:
		if d.FrequencyHz < 0.0 || d.DampingRatio < 0.0 {
			return nil, fmt.Errorf("%w: weld spring must be non-negative", ErrInvalidJointDef)
		}
		return newB2WeldJoint(d, bodyA, bodyB), nil

	case *B2FrictionJointDef:
		if d.MaxForce < 0.0 || d.MaxTorque < 0.0 {
			return nil, fmt.Errorf("%w: friction limits must be non-negative", ErrInvalidJointDef)
		}
		return newB2FrictionJoint(d, bodyA, bodyB), nil

	case *B2RevoluteJointDef:
		if d.LowerAngle > d.UpperAngle {
			return nil, fmt.Errorf("%w: revolute lower angle above upper angle", ErrInvalidJointDef)
		}
		return newB2RevoluteJoint(d, bodyA, bodyB), nil

	case *B2PrismaticJointDef:
		if d.LowerTranslation > d.UpperTranslation {
			return nil, fmt.Errorf("%w: prismatic lower translation above upper translation", ErrInvalidJointDef)
		}
		if d.LocalAxisA.LengthSquared() <= B2_epsilon {
			return nil, fmt.Errorf("%w: prismatic axis has zero length", ErrInvalidJointDef)
		}
		return newB2PrismaticJoint(d, bodyA, bodyB), nil

	case *B2DistanceJointDef:
		if d.Length < 0.0 || d.FrequencyHz < 0.0 || d.DampingRatio < 0.0 {
			return nil, fmt.Errorf("%w: distance parameters must be non-negative", ErrInvalidJointDef)
		}
		return newB2DistanceJoint(d, bodyA, bodyB), nil

	case *B2MouseJointDef:
		if !d.Target.IsValid() || d.MaxForce < 0.0 || d.FrequencyHz < 0.0 || d.DampingRatio < 0.0 {
			return nil, fmt.Errorf("%w: mouse target and spring must be valid", ErrInvalidJointDef)
		}
		return newB2MouseJoint(d, bodyA, bodyB), nil
	}

	return nil, fmt.Errorf("%w: unknown definition %T", ErrInvalidJointDef, def)
}

// Soft constraint coefficients for a mass-spring-damper with the given
// effective mass. Returns gamma and the bias factor applied to C.
func b2SoftConstraint(mass float64, frequencyHz float64, dampingRatio float64, h float64) (gamma float64, beta float64) {
	// Frequency
	omega := 2.0 * B2_pi * frequencyHz

	// Damping coefficient
	d := 2.0 * mass * dampingRatio * omega

	// Spring stiffness
	k := mass * omega * omega

	// magic formulas
	gamma = h * (d + h*k)
	if gamma != 0.0 {
		gamma = 1.0 / gamma
	}

	return gamma, h * k * gamma
}

func (j *B2JointBase) velocities(data B2SolverData) (vA B2Vec2, wA float64, vB B2Vec2, wB float64) {
	a := data.Velocities[j.M_indexA]
	b := data.Velocities[j.M_indexB]
	return a.V, a.W, b.V, b.W
}

func (j *B2JointBase) storeVelocities(data B2SolverData, vA B2Vec2, wA float64, vB B2Vec2, wB float64) {
	data.Velocities[j.M_indexA] = B2Velocity{V: vA, W: wA}
	data.Velocities[j.M_indexB] = B2Velocity{V: vB, W: wB}
}

func (j *B2JointBase) positions(data B2SolverData) (cA B2Vec2, aA float64, cB B2Vec2, aB float64) {
	a := data.Positions[j.M_indexA]
	b := data.Positions[j.M_indexB]
	return a.C, a.A, b.C, b.A
}

func (j *B2JointBase) storePositions(data B2SolverData, cA B2Vec2, aA float64, cB B2Vec2, aB float64) {
	data.Positions[j.M_indexA] = B2Position{C: cA, A: aA}
	data.Positions[j.M_indexB] = B2Position{C: cB, A: aB}
}

// Apply a linear impulse P at rA/rB plus an angular impulse L to both ends.
// Works for velocities and for position corrections.
func (j *B2JointBase) applyImpulse(vA *B2Vec2, wA *float64, vB *B2Vec2, wB *float64, rA B2Vec2, rB B2Vec2, P B2Vec2, L float64) {
	vA.OperatorMinusInplace(B2Vec2MulScalar(j.M_invMassA, P))
	*wA -= j.M_invIA * (B2Vec2Cross(rA, P) + L)

	vB.OperatorPlusInplace(B2Vec2MulScalar(j.M_invMassB, P))
	*wB += j.M_invIB * (B2Vec2Cross(rB, P) + L)
}

// Relative velocity of the anchor on B with respect to the anchor on A.
func b2AnchorVelocity(vA B2Vec2, wA float64, rA B2Vec2, vB B2Vec2, wB float64, rB B2Vec2) B2Vec2 {
	return B2Vec2Sub(
		B2Vec2Add(vB, B2Vec2CrossScalarVector(wB, rB)),
		B2Vec2Add(vA, B2Vec2CrossScalarVector(wA, rA)),
	)
}

// Point-to-point effective mass matrix.
// K = [ mA+mB+iA*rA.y^2+iB*rB.y^2,  -iA*rA.x*rA.y-iB*rB.x*rB.y]
//     [ -iA*rA.x*rA.y-iB*rB.x*rB.y,  mA+mB+iA*rA.x^2+iB*rB.x^2]
func (j *B2JointBase) pointMass(rA B2Vec2, rB B2Vec2) B2Mat22 {
	mA, mB := j.M_invMassA, j.M_invMassB
	iA, iB := j.M_invIA, j.M_invIB

	var K B2Mat22
	K.Ex.X = mA + mB + iA*rA.Y*rA.Y + iB*rB.Y*rB.Y
	K.Ex.Y = -iA*rA.X*rA.Y - iB*rB.X*rB.Y
	K.Ey.X = K.Ex.Y
	K.Ey.Y = mA + mB + iA*rA.X*rA.X + iB*rB.X*rB.X
	return K
}

// Point-to-point plus angle effective mass matrix.
func (j *B2JointBase) pointAngleMass(rA B2Vec2, rB B2Vec2) B2Mat33 {
	iA, iB := j.M_invIA, j.M_invIB
	K2 := j.pointMass(rA, rB)

	var K B2Mat33
	K.Ex.X = K2.Ex.X
	K.Ey.X = K2.Ey.X
	K.Ez.X = -rA.Y*iA - rB.Y*iB
	K.Ex.Y = K2.Ex.Y
	K.Ey.Y = K2.Ey.Y
	K.Ez.Y = rA.X*iA + rB.X*iB
	K.Ex.Z = K.Ez.X
	K.Ey.Z = K.Ez.Y
	K.Ez.Z = iA + iB
	return K
}

func b2InvOrZero(x float64) float64 {
	if x != 0.0 {
		return 1.0 / x
	}
	return 0.0
}

func (j *B2JointBase) wakeBodies() {
	j.M_bodyA.SetAwake(true)
	j.M_bodyB.SetAwake(true)
}

// Classify a joint coordinate against its limits. The accumulated limit
// impulse must be reset when the returned flag is set.
func b2ClassifyLimit(value float64, lower float64, upper float64, equalTolerance float64, previous uint8) (state uint8, resetImpulse bool) {
	switch {
	case math.Abs(upper-lower) < equalTolerance:
		return B2LimitState.E_equalLimits, false
	case value <= lower:
		return B2LimitState.E_atLowerLimit, previous != B2LimitState.E_atLowerLimit
	case value >= upper:
		return B2LimitState.E_atUpperLimit, previous != B2LimitState.E_atUpperLimit
	}
	return B2LimitState.E_inactiveLimit, true
}

// Apply a linear impulse P with precomputed angular impulses LA and LB.
func (j *B2JointBase) applyJacobianImpulse(vA *B2Vec2, wA *float64, vB *B2Vec2, wB *float64, P B2Vec2, LA float64, LB float64) {
	vA.OperatorMinusInplace(B2Vec2MulScalar(j.M_invMassA, P))
	*wA -= j.M_invIA * LA

	vB.OperatorPlusInplace(B2Vec2MulScalar(j.M_invMassB, P))
	*wB += j.M_invIB * LB
}
