package box2d

import (
	"fmt"
)

var B2World_Flags = struct {
	E_newFixture  uint32
	E_locked      uint32
	E_clearForces uint32
}{
	E_newFixture:  0x0001,
	E_locked:      0x0002,
	E_clearForces: 0x0004,
}

// Joints are stored behind a slot so the arena can hold the interface.
type b2JointSlot struct {
	Joint B2Joint
}

/// The world class manages all physics entities and the simulation step.
/// Bodies, joints and contacts live in arenas and are addressed by
/// generation-checked handles. A world is not safe for concurrent use.
type B2World struct {
	M_flags uint32

	M_contactManager B2ContactManager
	M_islandBuilder  B2IslandBuilder
	M_island         B2Island

	M_bodies b2Arena[B2Body]
	M_joints b2Arena[b2JointSlot]

	M_groundBody *B2Body

	M_fixtureSeq uint64

	M_gravity    B2Vec2
	M_allowSleep bool

	M_destructionListener B2DestructionListenerInterface

	// This is used to compute the time step ratio to
	// support a variable time step.
	M_inv_dt0 float64

	// These are for debugging the solver.
	M_warmStarting bool

	M_profile B2Profile
}

func MakeB2World(gravity B2Vec2) B2World {
	return B2World{
		M_flags:          B2World_Flags.E_clearForces,
		M_contactManager: MakeB2ContactManager(),
		M_islandBuilder:  NewB2GraphIslandBuilder(),
		M_gravity:        gravity,
		M_allowSleep:     true,
		M_warmStarting:   true,
	}
}

func NewB2World(gravity B2Vec2) *B2World {
	res := MakeB2World(gravity)
	return &res
}

func (world B2World) GetBodyCount() int {
	return world.M_bodies.Len()
}

func (world B2World) GetJointCount() int {
	return world.M_joints.Len()
}

func (world B2World) GetContactCount() int {
	return world.M_contactManager.GetContactCount()
}

func (world B2World) GetProxyCount() int {
	return world.M_contactManager.M_pairFinder.GetProxyCount()
}

func (world *B2World) SetGravity(gravity B2Vec2) {
	world.M_gravity = gravity
}

func (world B2World) GetGravity() B2Vec2 {
	return world.M_gravity
}

/// Is the world locked (in the middle of a time step).
func (world B2World) IsLocked() bool {
	return world.M_flags&B2World_Flags.E_locked == B2World_Flags.E_locked
}

/// Set flag to control automatic clearing of forces after each time step.
func (world *B2World) SetAutoClearForces(flag bool) {
	if flag {
		world.M_flags |= B2World_Flags.E_clearForces
	} else {
		world.M_flags &= ^B2World_Flags.E_clearForces
	}
}

func (world B2World) GetAutoClearForces() bool {
	return world.M_flags&B2World_Flags.E_clearForces == B2World_Flags.E_clearForces
}

/// Enable/disable warm starting. For testing.
func (world *B2World) SetWarmStarting(flag bool) {
	world.M_warmStarting = flag
}

func (world B2World) GetWarmStarting() bool {
	return world.M_warmStarting
}

/// Enable/disable sleep. Disabling sleep wakes every body.
func (world *B2World) SetAllowSleeping(flag bool) {
	if flag == world.M_allowSleep {
		return
	}

	world.M_allowSleep = flag
	if !world.M_allowSleep {
		world.M_bodies.Each(func(_ B2Handle, b *B2Body) bool {
			b.SetAwake(true)
			return true
		})
	}
}

func (world B2World) GetAllowSleeping() bool {
	return world.M_allowSleep
}

/// Get the profile of the last time step.
func (world B2World) GetProfile() B2Profile {
	return world.M_profile
}

/// Set the tolerances used by the narrowphase reference face selection.
func (world *B2World) SetCollisionTolerance(tol B2CollisionTolerance) {
	world.M_contactManager.M_tolerance = tol
}

func (world B2World) GetCollisionTolerance() B2CollisionTolerance {
	return world.M_contactManager.M_tolerance
}

/// Replace the pair finder. Only allowed before any fixture exists.
func (world *B2World) SetPairFinder(finder B2PairFinder) error {
	if world.IsLocked() {
		return ErrWorldLocked
	}

	if world.M_contactManager.M_pairFinder.GetProxyCount() > 0 {
		return fmt.Errorf("box2d: pair finder must be set before fixtures are created")
	}

	world.M_contactManager.M_pairFinder = finder
	return nil
}

/// Replace the island builder used by Step.
func (world *B2World) SetIslandBuilder(builder B2IslandBuilder) {
	world.M_islandBuilder = builder
}

/// Register a destruction listener. The listener is owned by you and must
/// remain in scope.
func (world *B2World) SetDestructionListener(listener B2DestructionListenerInterface) {
	world.M_destructionListener = listener
}

/// Register a contact filter to provide specific control over collision.
/// Otherwise the default filter is used.
func (world *B2World) SetContactFilter(filter B2ContactFilterInterface) {
	world.M_contactManager.M_contactFilter = filter
}

/// Register a contact event listener.
func (world *B2World) SetContactListener(listener B2ContactListenerInterface) {
	world.M_contactManager.M_contactListener = listener
}

/// Create a rigid body given a definition. No reference to the definition
/// is retained.
func (world *B2World) CreateBody(def *B2BodyDef) (*B2Body, error) {
	if world.IsLocked() {
		return nil, ErrWorldLocked
	}

	if def == nil {
		d := MakeB2BodyDef()
		def = &d
	}

	if err := def.validate(); err != nil {
		return nil, err
	}

	b := newB2Body(def, world)
	b.M_handle = B2BodyHandle(world.M_bodies.Insert(b))

	return b, nil
}

/// Resolve a body handle.
func (world *B2World) Body(h B2BodyHandle) (*B2Body, error) {
	b, ok := world.M_bodies.Get(B2Handle(h))
	if !ok {
		return nil, fmt.Errorf("body %v: %w", h, ErrInvalidHandle)
	}

	return b, nil
}

/// A static body without fixtures used as the fixed end of joints whose
/// BodyA handle is nil. It is created on first use.
func (world *B2World) GroundBody() *B2Body {
	if world.M_groundBody == nil {
		def := MakeB2BodyDef()
		world.M_groundBody = newB2Body(&def, world)
		world.M_groundBody.M_handle = B2BodyHandle(world.M_bodies.Insert(world.M_groundBody))
	}

	return world.M_groundBody
}

/// Visit the bodies in slot order. Return false to stop.
func (world *B2World) Bodies(fn func(b *B2Body) bool) {
	world.M_bodies.Each(func(_ B2Handle, b *B2Body) bool {
		return fn(b)
	})
}

/// Destroy a rigid body given a handle. This destroys all associated
/// joints, contacts and fixtures.
func (world *B2World) DestroyBody(h B2BodyHandle) error {
	if world.IsLocked() {
		return ErrWorldLocked
	}

	b, err := world.Body(h)
	if err != nil {
		return err
	}

	// Delete the attached joints.
	joints := append([]B2JointHandle(nil), b.M_joints...)
	for _, jh := range joints {
		if world.M_destructionListener != nil {
			if j, err := world.Joint(jh); err == nil {
				world.M_destructionListener.SayGoodbyeToJoint(j)
			}
		}

		if err := world.DestroyJoint(jh); err != nil {
			return err
		}
	}

	// Delete the attached contacts.
	b.destroyContacts()

	// Delete the attached fixtures. This destroys the pair finder proxies.
	for _, f := range b.M_fixtures {
		if world.M_destructionListener != nil {
			world.M_destructionListener.SayGoodbyeToFixture(f)
		}

		f.DestroyProxies(world.M_contactManager.M_pairFinder)
		f.M_body = nil
	}
	b.M_fixtures = nil

	world.M_bodies.Remove(B2Handle(h))
	if b == world.M_groundBody {
		world.M_groundBody = nil
	}

	b.M_world = nil

	return nil
}

/// Create a fixture on a body. Equivalent to Body(h) followed by
/// CreateFixture.
func (world *B2World) CreateFixture(h B2BodyHandle, def *B2FixtureDef) (*B2Fixture, error) {
	b, err := world.Body(h)
	if err != nil {
		return nil, err
	}

	return b.CreateFixture(def)
}

/// Destroy a fixture attached to a body.
func (world *B2World) DestroyFixture(fixture *B2Fixture) error {
	if fixture == nil || fixture.M_body == nil {
		return fmt.Errorf("fixture: %w", ErrInvalidHandle)
	}

	return fixture.M_body.DestroyFixture(fixture)
}

/// Create a joint to constrain bodies together. Joints whose BodyA is nil
/// attach to the ground body. Creating a joint wakes both bodies.
func (world *B2World) CreateJoint(def B2JointDef) (B2Joint, error) {
	if world.IsLocked() {
		return nil, ErrWorldLocked
	}

	j, err := B2NewJoint(def, world)
	if err != nil {
		return nil, err
	}

	jb := j.base()
	jb.M_handle = B2JointHandle(world.M_joints.Insert(&b2JointSlot{Joint: j}))

	// Connect to the bodies.
	bodyA := jb.M_bodyA
	bodyB := jb.M_bodyB
	bodyA.M_joints = append(bodyA.M_joints, jb.M_handle)
	bodyB.M_joints = append(bodyB.M_joints, jb.M_handle)

	// If the joint prevents collisions, then flag any contacts for filtering.
	if !jb.M_collideConnected {
		world.flagContactsBetween(bodyA, bodyB)
	}

	jb.wakeBodies()

	return j, nil
}

/// Resolve a joint handle.
func (world *B2World) Joint(h B2JointHandle) (B2Joint, error) {
	slot, ok := world.M_joints.Get(B2Handle(h))
	if !ok {
		return nil, fmt.Errorf("joint %v: %w", h, ErrInvalidHandle)
	}

	return slot.Joint, nil
}

/// Visit the joints in slot order. Return false to stop.
func (world *B2World) Joints(fn func(j B2Joint) bool) {
	world.M_joints.Each(func(_ B2Handle, slot *b2JointSlot) bool {
		return fn(slot.Joint)
	})
}

/// Destroy a joint. This may cause the connected bodies to begin colliding.
func (world *B2World) DestroyJoint(h B2JointHandle) error {
	if world.IsLocked() {
		return ErrWorldLocked
	}

	slot, ok := world.M_joints.Remove(B2Handle(h))
	if !ok {
		return fmt.Errorf("joint %v: %w", h, ErrInvalidHandle)
	}

	jb := slot.Joint.base()
	bodyA := jb.M_bodyA
	bodyB := jb.M_bodyB

	// Wake up connected bodies.
	jb.wakeBodies()

	bodyA.removeJoint(h)
	bodyB.removeJoint(h)

	// If the joint prevented collisions, then flag any contacts for filtering.
	if !jb.M_collideConnected {
		world.flagContactsBetween(bodyA, bodyB)
	}

	return nil
}

// Flag the contacts between two bodies for filtering at the next time step
// (where either body is awake).
func (world *B2World) flagContactsBetween(bodyA *B2Body, bodyB *B2Body) {
	for _, h := range bodyB.M_contacts {
		c, ok := world.M_contactManager.Contact(h)
		if !ok {
			continue
		}

		other := c.GetFixtureA().GetBody()
		if other == bodyB {
			other = c.GetFixtureB().GetBody()
		}

		if other == bodyA {
			c.FlagForFiltering()
		}
	}
}

/// Get the contacts in slot order. Contacts may exist without touching.
func (world *B2World) Contacts() []*B2Contact {
	contacts := make([]*B2Contact, 0, world.M_contactManager.GetContactCount())
	world.M_contactManager.Each(func(c *B2Contact) bool {
		contacts = append(contacts, c)
		return true
	})
	return contacts
}

/// Resolve a contact handle.
func (world *B2World) Contact(h B2ContactHandle) (*B2Contact, error) {
	c, ok := world.M_contactManager.Contact(h)
	if !ok {
		return nil, fmt.Errorf("contact %v: %w", h, ErrInvalidHandle)
	}

	return c, nil
}

// Find islands, integrate and solve constraints, solve position constraints
func (world *B2World) solve(step B2TimeStep) {
	world.M_profile.SolveInit = 0.0
	world.M_profile.SolveVelocity = 0.0
	world.M_profile.SolvePosition = 0.0

	world.M_island.M_listener = world.M_contactManager.M_contactListener

	world.M_islandBuilder.BuildIslands(world, &world.M_island, func(island *B2Island) {
		island.Solve(&world.M_profile, step, world.M_gravity, world.M_allowSleep)
	})

	timer := MakeB2Timer()

	// Synchronize fixtures for bodies that moved.
	world.M_bodies.Each(func(_ B2Handle, b *B2Body) bool {
		// If a body was not in an island then it did not move.
		if !b.hasFlag(B2Body_Flags.E_islandFlag) {
			return true
		}

		if b.GetType() == B2BodyType.B2_staticBody {
			return true
		}

		b.SynchronizeFixtures()
		return true
	})

	// Look for new contacts.
	world.M_contactManager.FindNewContacts()
	world.M_profile.PairUpdate = timer.GetMilliseconds()
}

/// Take a time step. This performs collision detection, integration,
/// and constraint solution.
/// @param dt the amount of time to simulate, this should not vary.
/// @param velocityIterations for the velocity constraint solver.
/// @param positionIterations for the position constraint solver.
func (world *B2World) Step(dt float64, velocityIterations int, positionIterations int) {
	stepTimer := MakeB2Timer()

	// If new fixtures were added, we need to find the new contacts.
	if world.M_flags&B2World_Flags.E_newFixture != 0 {
		world.M_contactManager.FindNewContacts()
		world.M_flags &= ^B2World_Flags.E_newFixture
	}

	world.M_flags |= B2World_Flags.E_locked

	step := MakeB2TimeStep(dt, world.M_inv_dt0, velocityIterations, positionIterations, world.M_warmStarting)

	// Update contacts. This is where some contacts are destroyed.
	{
		timer := MakeB2Timer()
		world.M_contactManager.Collide()
		world.M_profile.Collide = timer.GetMilliseconds()
	}

	// Integrate velocities, solve velocity constraints, and integrate positions.
	if step.Dt > 0.0 {
		timer := MakeB2Timer()
		world.solve(step)
		world.M_profile.Solve = timer.GetMilliseconds()
	}

	if step.Dt > 0.0 {
		world.M_inv_dt0 = step.Inv_dt
	}

	if world.GetAutoClearForces() {
		world.ClearForces()
	}

	world.M_flags &= ^B2World_Flags.E_locked

	world.M_profile.Step = stepTimer.GetMilliseconds()
}

/// Manually clear the force buffer on all bodies.
func (world *B2World) ClearForces() {
	world.M_bodies.Each(func(_ B2Handle, body *B2Body) bool {
		body.M_force.SetZero()
		body.M_torque = 0.0
		return true
	})
}

/// Query the world for all fixtures that potentially overlap the
/// provided AABB.
func (world *B2World) QueryAABB(callback B2QueryCallback, aabb B2AABB) {
	world.M_contactManager.M_pairFinder.Query(func(proxy *B2FixtureProxy) bool {
		return callback(proxy.Fixture)
	}, aabb)
}

/// Ray-cast the world for all fixtures in the path of the ray. Your callback
/// controls whether you get the closest point, any point, or n-points.
/// The ray-cast ignores shapes that contain the starting point.
func (world *B2World) RayCast(callback B2RaycastCallback, point1 B2Vec2, point2 B2Vec2) {
	input := MakeB2RayCastInput(point1, point2, 1.0)

	world.M_contactManager.M_pairFinder.RayCast(func(input B2RayCastInput, proxy *B2FixtureProxy) float64 {
		fixture := proxy.Fixture
		output, hit := fixture.RayCast(input, proxy.ChildIndex)
		if !hit {
			return input.MaxFraction
		}

		fraction := output.Fraction
		point := B2Vec2Add(B2Vec2MulScalar(1.0-fraction, input.P1), B2Vec2MulScalar(fraction, input.P2))
		return callback(fixture, point, output.Normal, fraction)
	}, input)
}

/// Shift the world origin. Useful for large worlds.
/// The body shift formula is: position -= newOrigin
func (world *B2World) ShiftOrigin(newOrigin B2Vec2) error {
	if world.IsLocked() {
		return ErrWorldLocked
	}

	world.M_bodies.Each(func(_ B2Handle, b *B2Body) bool {
		b.M_xf.P.OperatorMinusInplace(newOrigin)
		b.M_sweep.C0.OperatorMinusInplace(newOrigin)
		b.M_sweep.C.OperatorMinusInplace(newOrigin)
		return true
	})

	world.M_joints.Each(func(_ B2Handle, slot *b2JointSlot) bool {
		slot.Joint.ShiftOrigin(newOrigin)
		return true
	})

	world.M_contactManager.M_pairFinder.ShiftOrigin(newOrigin)

	return nil
}

/// Dump the world to B2Log as Go statements that rebuild it with this
/// package. Joints refer to bodies through the bodies slice.
/// @warning this should be called outside of a time step.
func (world *B2World) Dump() {
	if world.IsLocked() {
		return
	}

	B2Log("world := box2d.NewB2World(%s)\n", b2DumpVec(world.M_gravity))
	B2Log("bodies := make([]*box2d.B2Body, %d)\n", world.M_bodies.Len())
	B2Log("joints := make([]box2d.B2Joint, %d)\n", world.M_joints.Len())

	i := 0
	world.M_bodies.Each(func(_ B2Handle, b *B2Body) bool {
		b.M_islandIndex = i
		b.Dump()
		i++
		return true
	})

	i = 0
	world.M_joints.Each(func(_ B2Handle, slot *b2JointSlot) bool {
		slot.Joint.base().M_index = i
		B2Log("{\n")
		slot.Joint.Dump()
		B2Log("}\n")
		i++
		return true
	})

	B2Log("_ = joints\n")
}
