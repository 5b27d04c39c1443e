package box2d

import "fmt"

/// The body type.
/// static: zero mass, zero velocity, may be manually moved
/// kinematic: zero mass, non-zero velocity set by user, moved by solver
/// dynamic: positive mass, non-zero velocity determined by forces, moved by solver
var B2BodyType = struct {
	B2_staticBody    uint8
	B2_kinematicBody uint8
	B2_dynamicBody   uint8
}{
	B2_staticBody:    0,
	B2_kinematicBody: 1,
	B2_dynamicBody:   2,
}

/// A body definition holds all the data needed to construct a rigid body.
/// You can safely re-use body definitions. Shapes are added to a body after construction.
type B2BodyDef struct {

	/// The body type: static, kinematic, or dynamic.
	/// Note: if a dynamic body would have zero mass, the mass is set to one.
	Type uint8

	/// The world position of the body. Avoid creating bodies at the origin
	/// since this can lead to many overlapping shapes.
	Position B2Vec2

	/// The world angle of the body in radians.
	Angle float64

	/// The linear velocity of the body's origin in world co-ordinates.
	LinearVelocity B2Vec2

	/// The angular velocity of the body.
	AngularVelocity float64

	/// Linear damping is use to reduce the linear velocity. The damping parameter
	/// can be larger than 1.0 but the damping effect becomes sensitive to the
	/// time step when the damping parameter is large.
	/// Units are 1/time
	LinearDamping float64

	/// Angular damping is use to reduce the angular velocity.
	/// Units are 1/time
	AngularDamping float64

	/// Set this flag to false if this body should never fall asleep.
	AllowSleep bool

	/// Is this body initially awake or sleeping?
	Awake bool

	/// Should this body be prevented from rotating? Useful for characters.
	FixedRotation bool

	/// Kept for definition compatibility. There is no continuous collision,
	/// so the flag has no effect on stepping.
	Bullet bool

	/// Does this body start out active?
	Active bool

	/// Use this to store application specific body data.
	UserData interface{}

	/// Scale the gravity applied to this body.
	GravityScale float64
}

/// This constructor sets the body definition default values.
func MakeB2BodyDef() B2BodyDef {
	return B2BodyDef{
		Type:         B2BodyType.B2_staticBody,
		AllowSleep:   true,
		Awake:        true,
		Active:       true,
		GravityScale: 1.0,
	}
}

func NewB2BodyDef() *B2BodyDef {
	res := MakeB2BodyDef()
	return &res
}

func (bd B2BodyDef) validate() error {
	switch {
	case !bd.Position.IsValid() || !B2IsValid(bd.Angle):
		return fmt.Errorf("box2d: body position or angle is not finite")
	case !bd.LinearVelocity.IsValid() || !B2IsValid(bd.AngularVelocity):
		return fmt.Errorf("box2d: body velocity is not finite")
	case !B2IsValid(bd.LinearDamping) || bd.LinearDamping < 0.0:
		return fmt.Errorf("box2d: linear damping %g must be a non-negative number", bd.LinearDamping)
	case !B2IsValid(bd.AngularDamping) || bd.AngularDamping < 0.0:
		return fmt.Errorf("box2d: angular damping %g must be a non-negative number", bd.AngularDamping)
	case bd.Type > B2BodyType.B2_dynamicBody:
		return fmt.Errorf("box2d: unknown body type %d", bd.Type)
	}
	return nil
}

var B2Body_Flags = struct {
	E_islandFlag        uint32
	E_awakeFlag         uint32
	E_autoSleepFlag     uint32
	E_bulletFlag        uint32
	E_fixedRotationFlag uint32
	E_activeFlag        uint32
}{
	E_islandFlag:        0x0001,
	E_awakeFlag:         0x0002,
	E_autoSleepFlag:     0x0004,
	E_bulletFlag:        0x0008,
	E_fixedRotationFlag: 0x0010,
	E_activeFlag:        0x0020,
}

/// A rigid body. Bodies are owned by a B2World and addressed by handle.
/// Fixtures, contacts and joints attached to the body are kept as slices in
/// creation order.
type B2Body struct {
	M_type uint8

	M_flags uint32

	M_handle      B2BodyHandle
	M_islandIndex int

	M_xf    B2Transform // the body origin transform
	M_sweep B2Sweep     // the motion of the center of mass during a step

	M_linearVelocity  B2Vec2
	M_angularVelocity float64

	M_force  B2Vec2
	M_torque float64

	M_world *B2World

	M_fixtures []*B2Fixture
	M_contacts []B2ContactHandle
	M_joints   []B2JointHandle

	M_mass, M_invMass float64

	// Rotational inertia about the center of mass.
	M_I, M_invI float64

	M_linearDamping  float64
	M_angularDamping float64
	M_gravityScale   float64

	M_sleepTime float64

	M_userData interface{}
}

func newB2Body(bd *B2BodyDef, world *B2World) *B2Body {
	body := &B2Body{
		M_type:            bd.Type,
		M_world:           world,
		M_linearVelocity:  bd.LinearVelocity,
		M_angularVelocity: bd.AngularVelocity,
		M_linearDamping:   bd.LinearDamping,
		M_angularDamping:  bd.AngularDamping,
		M_gravityScale:    bd.GravityScale,
		M_userData:        bd.UserData,
	}

	if bd.Bullet {
		body.M_flags |= B2Body_Flags.E_bulletFlag
	}

	if bd.FixedRotation {
		body.M_flags |= B2Body_Flags.E_fixedRotationFlag
	}

	if bd.AllowSleep {
		body.M_flags |= B2Body_Flags.E_autoSleepFlag
	}

	if bd.Awake {
		body.M_flags |= B2Body_Flags.E_awakeFlag
	}

	if bd.Active {
		body.M_flags |= B2Body_Flags.E_activeFlag
	}

	body.M_xf.P = bd.Position
	body.M_xf.Q.Set(bd.Angle)

	body.M_sweep.C0 = body.M_xf.P
	body.M_sweep.C = body.M_xf.P
	body.M_sweep.A0 = bd.Angle
	body.M_sweep.A = bd.Angle

	if body.M_type == B2BodyType.B2_dynamicBody {
		body.M_mass = 1.0
		body.M_invMass = 1.0
	}

	return body
}

func (body B2Body) GetHandle() B2BodyHandle {
	return body.M_handle
}

func (body B2Body) GetType() uint8 {
	return body.M_type
}

func (body B2Body) GetTransform() B2Transform {
	return body.M_xf
}

func (body B2Body) GetPosition() B2Vec2 {
	return body.M_xf.P
}

func (body B2Body) GetAngle() float64 {
	return body.M_sweep.A
}

/// Get the world position of the center of mass.
func (body B2Body) GetWorldCenter() B2Vec2 {
	return body.M_sweep.C
}

/// Get the local position of the center of mass.
func (body B2Body) GetLocalCenter() B2Vec2 {
	return body.M_sweep.LocalCenter
}

/// Set the linear velocity of the center of mass. Ignored for static bodies.
func (body *B2Body) SetLinearVelocity(v B2Vec2) {
	if body.M_type == B2BodyType.B2_staticBody {
		return
	}

	if B2Vec2Dot(v, v) > 0.0 {
		body.SetAwake(true)
	}

	body.M_linearVelocity = v
}

func (body B2Body) GetLinearVelocity() B2Vec2 {
	return body.M_linearVelocity
}

/// Set the angular velocity in radians/second. Ignored for static bodies.
func (body *B2Body) SetAngularVelocity(w float64) {
	if body.M_type == B2BodyType.B2_staticBody {
		return
	}

	if w*w > 0.0 {
		body.SetAwake(true)
	}

	body.M_angularVelocity = w
}

func (body B2Body) GetAngularVelocity() float64 {
	return body.M_angularVelocity
}

/// Get the total mass of the body, usually in kilograms.
func (body B2Body) GetMass() float64 {
	return body.M_mass
}

/// Get the rotational inertia of the body about the local origin.
func (body B2Body) GetInertia() float64 {
	return body.M_I + body.M_mass*B2Vec2Dot(body.M_sweep.LocalCenter, body.M_sweep.LocalCenter)
}

/// Get the mass data of the body.
func (body B2Body) GetMassData() B2MassData {
	return B2MassData{
		Mass:   body.M_mass,
		Center: body.M_sweep.LocalCenter,
		I:      body.GetInertia(),
	}
}

func (body B2Body) GetWorldPoint(localPoint B2Vec2) B2Vec2 {
	return B2TransformVec2Mul(body.M_xf, localPoint)
}

func (body B2Body) GetWorldVector(localVector B2Vec2) B2Vec2 {
	return B2RotVec2Mul(body.M_xf.Q, localVector)
}

func (body B2Body) GetLocalPoint(worldPoint B2Vec2) B2Vec2 {
	return B2TransformVec2MulT(body.M_xf, worldPoint)
}

func (body B2Body) GetLocalVector(worldVector B2Vec2) B2Vec2 {
	return B2RotVec2MulT(body.M_xf.Q, worldVector)
}

/// Get the world linear velocity of a world point attached to this body.
func (body B2Body) GetLinearVelocityFromWorldPoint(worldPoint B2Vec2) B2Vec2 {
	return B2Vec2Add(body.M_linearVelocity, B2Vec2CrossScalarVector(body.M_angularVelocity, B2Vec2Sub(worldPoint, body.M_sweep.C)))
}

func (body B2Body) GetLinearVelocityFromLocalPoint(localPoint B2Vec2) B2Vec2 {
	return body.GetLinearVelocityFromWorldPoint(body.GetWorldPoint(localPoint))
}

func (body B2Body) GetLinearDamping() float64 {
	return body.M_linearDamping
}

func (body *B2Body) SetLinearDamping(linearDamping float64) {
	body.M_linearDamping = linearDamping
}

func (body B2Body) GetAngularDamping() float64 {
	return body.M_angularDamping
}

func (body *B2Body) SetAngularDamping(angularDamping float64) {
	body.M_angularDamping = angularDamping
}

func (body B2Body) GetGravityScale() float64 {
	return body.M_gravityScale
}

func (body *B2Body) SetGravityScale(scale float64) {
	body.M_gravityScale = scale
}

func (body *B2Body) SetBullet(flag bool) {
	body.setFlag(B2Body_Flags.E_bulletFlag, flag)
}

func (body B2Body) IsBullet() bool {
	return body.hasFlag(B2Body_Flags.E_bulletFlag)
}

func (body *B2Body) setFlag(flag uint32, on bool) {
	if on {
		body.M_flags |= flag
	} else {
		body.M_flags &= ^flag
	}
}

func (body B2Body) hasFlag(flag uint32) bool {
	return body.M_flags&flag == flag
}

/// Set the sleep state of the body. A sleeping body has very
/// low CPU cost. Putting a body to sleep clears its velocity and forces.
func (body *B2Body) SetAwake(flag bool) {
	body.M_sleepTime = 0.0

	if flag {
		body.M_flags |= B2Body_Flags.E_awakeFlag
		return
	}

	body.M_flags &= ^B2Body_Flags.E_awakeFlag
	body.M_linearVelocity.SetZero()
	body.M_angularVelocity = 0.0
	body.M_force.SetZero()
	body.M_torque = 0.0
}

func (body B2Body) IsAwake() bool {
	return body.hasFlag(B2Body_Flags.E_awakeFlag)
}

func (body B2Body) IsActive() bool {
	return body.hasFlag(B2Body_Flags.E_activeFlag)
}

func (body B2Body) IsFixedRotation() bool {
	return body.hasFlag(B2Body_Flags.E_fixedRotationFlag)
}

/// You can disable sleeping on this body. If you disable sleeping, the
/// body will be woken.
func (body *B2Body) SetSleepingAllowed(flag bool) {
	body.setFlag(B2Body_Flags.E_autoSleepFlag, flag)
	if !flag {
		body.SetAwake(true)
	}
}

func (body B2Body) IsSleepingAllowed() bool {
	return body.hasFlag(B2Body_Flags.E_autoSleepFlag)
}

/// Get the fixtures attached to this body, in creation order.
func (body B2Body) GetFixtures() []*B2Fixture {
	return body.M_fixtures
}

/// Get the handles of joints attached to this body.
func (body B2Body) GetJoints() []B2JointHandle {
	return body.M_joints
}

/// Get the handles of contacts involving this body.
func (body B2Body) GetContacts() []B2ContactHandle {
	return body.M_contacts
}

func (body *B2Body) SetUserData(data interface{}) {
	body.M_userData = data
}

func (body B2Body) GetUserData() interface{} {
	return body.M_userData
}

func (body B2Body) GetWorld() *B2World {
	return body.M_world
}

// Prepare a dynamic body for an applied force or impulse. Returns false when
// the input must be dropped.
func (body *B2Body) acceptsInput(wake bool) bool {
	if body.M_type != B2BodyType.B2_dynamicBody {
		return false
	}

	if wake && !body.IsAwake() {
		body.SetAwake(true)
	}

	// Don't accumulate input if the body is sleeping.
	return body.IsAwake()
}

/// Apply a force at a world point. If the force is not
/// applied at the center of mass, it will generate a torque and
/// affect the angular velocity.
func (body *B2Body) ApplyForce(force B2Vec2, point B2Vec2, wake bool) {
	if body.acceptsInput(wake) {
		body.M_force.OperatorPlusInplace(force)
		body.M_torque += B2Vec2Cross(B2Vec2Sub(point, body.M_sweep.C), force)
	}
}

/// Apply a force to the center of mass.
func (body *B2Body) ApplyForceToCenter(force B2Vec2, wake bool) {
	if body.acceptsInput(wake) {
		body.M_force.OperatorPlusInplace(force)
	}
}

/// Apply a torque. This affects the angular velocity
/// without affecting the linear velocity of the center of mass.
func (body *B2Body) ApplyTorque(torque float64, wake bool) {
	if body.acceptsInput(wake) {
		body.M_torque += torque
	}
}

/// Apply an impulse at a point. This immediately modifies the velocity.
/// It also modifies the angular velocity if the point of application
/// is not at the center of mass.
func (body *B2Body) ApplyLinearImpulse(impulse B2Vec2, point B2Vec2, wake bool) {
	if body.acceptsInput(wake) {
		body.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(body.M_invMass, impulse))
		body.M_angularVelocity += body.M_invI * B2Vec2Cross(B2Vec2Sub(point, body.M_sweep.C), impulse)
	}
}

/// Apply an impulse to the center of mass.
func (body *B2Body) ApplyLinearImpulseToCenter(impulse B2Vec2, wake bool) {
	if body.acceptsInput(wake) {
		body.M_linearVelocity.OperatorPlusInplace(B2Vec2MulScalar(body.M_invMass, impulse))
	}
}

/// Apply an angular impulse, usually in kg*m*m/s.
func (body *B2Body) ApplyAngularImpulse(impulse float64, wake bool) {
	if body.acceptsInput(wake) {
		body.M_angularVelocity += body.M_invI * impulse
	}
}

func (body *B2Body) SynchronizeTransform() {
	body.M_xf.Q.Set(body.M_sweep.A)
	body.M_xf.P = B2Vec2Sub(body.M_sweep.C, B2RotVec2Mul(body.M_xf.Q, body.M_sweep.LocalCenter))
}

// A destroyed body has no world; mutators report it like a stale handle.
func (body *B2Body) checkMutable() error {
	if body.M_world == nil {
		return fmt.Errorf("body %v: %w", body.M_handle, ErrInvalidHandle)
	}
	if body.M_world.IsLocked() {
		return ErrWorldLocked
	}
	return nil
}

func (body *B2Body) pairFinder() B2PairFinder {
	return body.M_world.M_contactManager.M_pairFinder
}

// Destroy every contact touching this body.
func (body *B2Body) destroyContacts() {
	contacts := append([]B2ContactHandle(nil), body.M_contacts...)
	for _, h := range contacts {
		body.M_world.M_contactManager.Destroy(h)
	}
	body.M_contacts = body.M_contacts[:0]
}

func (body *B2Body) removeContact(h B2ContactHandle) {
	for i, c := range body.M_contacts {
		if c == h {
			body.M_contacts = append(body.M_contacts[:i], body.M_contacts[i+1:]...)
			return
		}
	}
}

func (body *B2Body) removeJoint(h B2JointHandle) {
	for i, j := range body.M_joints {
		if j == h {
			body.M_joints = append(body.M_joints[:i], body.M_joints[i+1:]...)
			return
		}
	}
}

/// Set the type of this body. This may alter the mass and velocity.
func (body *B2Body) SetType(bodyType uint8) error {
	if err := body.checkMutable(); err != nil {
		return err
	}

	if body.M_type == bodyType {
		return nil
	}

	body.M_type = bodyType

	body.ResetMassData()

	if body.M_type == B2BodyType.B2_staticBody {
		body.M_linearVelocity.SetZero()
		body.M_angularVelocity = 0.0
		body.M_sweep.A0 = body.M_sweep.A
		body.M_sweep.C0 = body.M_sweep.C
		body.SynchronizeFixtures()
	}

	body.SetAwake(true)

	body.M_force.SetZero()
	body.M_torque = 0.0

	body.destroyContacts()

	// Touch the proxies so that new contacts will be created (when appropriate)
	finder := body.pairFinder()
	for _, f := range body.M_fixtures {
		for i := 0; i < f.M_proxyCount; i++ {
			finder.TouchProxy(f.M_proxies[i].ProxyId)
		}
	}

	return nil
}

/// Creates a fixture and attach it to this body. The shape is cloned.
/// If the density is non-zero, this function automatically updates the mass of the body.
/// Contacts are not created until the next time step.
func (body *B2Body) CreateFixture(def *B2FixtureDef) (*B2Fixture, error) {
	if err := body.checkMutable(); err != nil {
		return nil, err
	}

	if def == nil || def.Shape == nil {
		return nil, fmt.Errorf("box2d: fixture definition needs a shape")
	}

	fixture := newB2Fixture(body, def)
	body.M_world.M_fixtureSeq++
	fixture.M_id = body.M_world.M_fixtureSeq

	if body.IsActive() {
		fixture.CreateProxies(body.pairFinder(), body.M_xf)
	}

	body.M_fixtures = append(body.M_fixtures, fixture)

	// Adjust mass properties if needed.
	if fixture.GetDensity() > 0.0 {
		body.ResetMassData()
	}

	// Let the world know we have a new fixture. This will cause new contacts
	// to be created at the beginning of the next time step.
	body.M_world.M_flags |= B2World_Flags.E_newFixture

	return fixture, nil
}

/// Creates a fixture from a shape with default material values.
func (body *B2Body) CreateFixtureFromShape(shape B2Shape) (*B2Fixture, error) {
	def := MakeB2FixtureDef(shape)
	return body.CreateFixture(&def)
}

/// Destroy a fixture. This removes the fixture from the pair finder and
/// destroys all contacts associated with this fixture. This will
/// automatically adjust the mass of the body if the body is dynamic.
func (body *B2Body) DestroyFixture(fixture *B2Fixture) error {
	if err := body.checkMutable(); err != nil {
		return err
	}

	index := -1
	for i, f := range body.M_fixtures {
		if f == fixture {
			index = i
			break
		}
	}

	if fixture == nil || index < 0 {
		return fmt.Errorf("box2d: fixture is not attached to body %v", body.M_handle)
	}

	body.M_fixtures = append(body.M_fixtures[:index], body.M_fixtures[index+1:]...)

	// Destroy any contacts associated with the fixture.
	contacts := append([]B2ContactHandle(nil), body.M_contacts...)
	for _, h := range contacts {
		c, ok := body.M_world.M_contactManager.M_contacts.Get(B2Handle(h))
		if !ok {
			continue
		}

		if c.M_fixtureA == fixture || c.M_fixtureB == fixture {
			body.M_world.M_contactManager.Destroy(h)
		}
	}

	if body.IsActive() {
		fixture.DestroyProxies(body.pairFinder())
	}

	fixture.M_body = nil

	// Reset the mass data.
	body.ResetMassData()

	return nil
}

/// This resets the mass properties to the sum of the mass properties of the fixtures.
/// This normally does not need to be called unless you called SetMassData to override
/// the mass and you later want to reset the mass.
func (body *B2Body) ResetMassData() {
	// Compute mass data from shapes. Each shape has its own density.
	body.M_mass = 0.0
	body.M_invMass = 0.0
	body.M_I = 0.0
	body.M_invI = 0.0
	body.M_sweep.LocalCenter.SetZero()

	// Static and kinematic bodies have zero mass.
	if body.M_type != B2BodyType.B2_dynamicBody {
		body.M_sweep.C0 = body.M_xf.P
		body.M_sweep.C = body.M_xf.P
		body.M_sweep.A0 = body.M_sweep.A
		return
	}

	// Accumulate mass over all fixtures.
	localCenter := MakeB2Vec2(0, 0)
	for _, f := range body.M_fixtures {
		if f.GetDensity() == 0.0 {
			continue
		}

		massData := f.GetMassData()
		body.M_mass += massData.Mass
		localCenter.OperatorPlusInplace(B2Vec2MulScalar(massData.Mass, massData.Center))
		body.M_I += massData.I
	}

	// Compute center of mass.
	if body.M_mass > 0.0 {
		body.M_invMass = 1.0 / body.M_mass
		localCenter.OperatorScalarMulInplace(body.M_invMass)
	} else {
		// Force all dynamic bodies to have a positive mass.
		body.M_mass = 1.0
		body.M_invMass = 1.0
	}

	if body.M_I > 0.0 && !body.IsFixedRotation() {
		// Center the inertia about the center of mass.
		body.M_I -= body.M_mass * B2Vec2Dot(localCenter, localCenter)
		B2Assert(body.M_I > 0.0)
		body.M_invI = 1.0 / body.M_I
	} else {
		body.M_I = 0.0
		body.M_invI = 0.0
	}

	body.moveCenter(localCenter)
}

// Move the center of mass and keep the velocity of the body origin.
func (body *B2Body) moveCenter(localCenter B2Vec2) {
	oldCenter := body.M_sweep.C
	body.M_sweep.LocalCenter = localCenter
	body.M_sweep.C = B2TransformVec2Mul(body.M_xf, body.M_sweep.LocalCenter)
	body.M_sweep.C0 = body.M_sweep.C

	// Update center of mass velocity.
	body.M_linearVelocity.OperatorPlusInplace(B2Vec2CrossScalarVector(
		body.M_angularVelocity,
		B2Vec2Sub(body.M_sweep.C, oldCenter),
	))
}

/// Set the mass properties to override the mass properties of the fixtures.
/// Note that this changes the center of mass position.
/// Note that creating or destroying fixtures can also alter the mass.
/// This function has no effect if the body isn't dynamic.
func (body *B2Body) SetMassData(massData B2MassData) error {
	if err := body.checkMutable(); err != nil {
		return err
	}

	if body.M_type != B2BodyType.B2_dynamicBody {
		return nil
	}

	body.M_invMass = 0.0
	body.M_I = 0.0
	body.M_invI = 0.0

	body.M_mass = massData.Mass
	if body.M_mass <= 0.0 {
		body.M_mass = 1.0
	}

	body.M_invMass = 1.0 / body.M_mass

	if massData.I > 0.0 && !body.IsFixedRotation() {
		body.M_I = massData.I - body.M_mass*B2Vec2Dot(massData.Center, massData.Center)
		if body.M_I <= 0.0 {
			return fmt.Errorf("box2d: rotational inertia %g is too small for the center of mass", massData.I)
		}
		body.M_invI = 1.0 / body.M_I
	}

	body.moveCenter(massData.Center)

	return nil
}

/// This is used to prevent connected bodies from colliding.
/// It may lie, depending on the collideConnected flag.
func (body *B2Body) ShouldCollide(other *B2Body) bool {
	// At least one body should be dynamic.
	if body.M_type != B2BodyType.B2_dynamicBody && other.M_type != B2BodyType.B2_dynamicBody {
		return false
	}

	// Does a joint prevent collision?
	for _, h := range body.M_joints {
		joint, err := body.M_world.Joint(h)
		if err != nil {
			continue
		}

		if joint.base().other(body) == other && !joint.IsCollideConnected() {
			return false
		}
	}

	return true
}

/// Set the position of the body's origin and rotation.
/// Manipulating a body's transform may cause non-physical behavior.
/// Note: contacts are updated on the next call to B2World.Step.
func (body *B2Body) SetTransform(position B2Vec2, angle float64) error {
	if err := body.checkMutable(); err != nil {
		return err
	}

	body.M_xf.Q.Set(angle)
	body.M_xf.P = position

	body.M_sweep.C = B2TransformVec2Mul(body.M_xf, body.M_sweep.LocalCenter)
	body.M_sweep.A = angle

	body.M_sweep.C0 = body.M_sweep.C
	body.M_sweep.A0 = angle

	finder := body.pairFinder()
	for _, f := range body.M_fixtures {
		f.Synchronize(finder, body.M_xf, body.M_xf)
	}

	return nil
}

// Move the fixture proxies to cover the motion from the start of the step
// to the current transform.
func (body *B2Body) SynchronizeFixtures() {
	xf1 := body.M_sweep.TransformAt(0.0)

	finder := body.pairFinder()
	for _, f := range body.M_fixtures {
		f.Synchronize(finder, xf1, body.M_xf)
	}
}

/// Set the active state of the body. An inactive body is not
/// simulated and cannot be collided with or woken up.
/// Fixtures on an inactive body are removed from the pair finder and its
/// contacts are destroyed. Joints stay attached but are skipped by the solver.
func (body *B2Body) SetActive(flag bool) error {
	if err := body.checkMutable(); err != nil {
		return err
	}

	if flag == body.IsActive() {
		return nil
	}

	body.setFlag(B2Body_Flags.E_activeFlag, flag)

	finder := body.pairFinder()
	if flag {
		// Create all proxies. Contacts are created the next time step.
		for _, f := range body.M_fixtures {
			f.CreateProxies(finder, body.M_xf)
		}
		return nil
	}

	// Destroy all proxies.
	for _, f := range body.M_fixtures {
		f.DestroyProxies(finder)
	}

	body.destroyContacts()

	return nil
}

/// Set this body to have fixed rotation. This causes the mass
/// to be reset.
func (body *B2Body) SetFixedRotation(flag bool) {
	if body.IsFixedRotation() == flag {
		return
	}

	body.setFlag(B2Body_Flags.E_fixedRotationFlag, flag)

	body.M_angularVelocity = 0.0

	body.ResetMassData()
}

/// Dump this body and its fixtures as Go statements. The body is stored in
/// bodies at its dump index.
func (body *B2Body) Dump() {
	bodyIndex := body.M_islandIndex

	B2Log("{\n")
	B2Log("  bd := box2d.MakeB2BodyDef()\n")
	B2Log("  bd.Type = %d\n", body.M_type)
	B2Log("  bd.Position = %s\n", b2DumpVec(body.M_xf.P))
	B2Log("  bd.Angle = %.15e\n", body.M_sweep.A)
	B2Log("  bd.LinearVelocity = %s\n", b2DumpVec(body.M_linearVelocity))
	B2Log("  bd.AngularVelocity = %.15e\n", body.M_angularVelocity)
	B2Log("  bd.LinearDamping = %.15e\n", body.M_linearDamping)
	B2Log("  bd.AngularDamping = %.15e\n", body.M_angularDamping)
	B2Log("  bd.AllowSleep = %t\n", body.IsSleepingAllowed())
	B2Log("  bd.Awake = %t\n", body.IsAwake())
	B2Log("  bd.FixedRotation = %t\n", body.IsFixedRotation())
	B2Log("  bd.Bullet = %t\n", body.IsBullet())
	B2Log("  bd.Active = %t\n", body.IsActive())
	B2Log("  bd.GravityScale = %.15e\n", body.M_gravityScale)
	B2Log("  bodies[%d], _ = world.CreateBody(&bd)\n", bodyIndex)
	for _, f := range body.M_fixtures {
		B2Log("  {\n")
		f.Dump(bodyIndex)
		B2Log("  }\n")
	}
	B2Log("}\n")
}
