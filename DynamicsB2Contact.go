package box2d

import "fmt"

var B2Contact_Flag = struct {
	// Used when crawling contact graph when forming islands.
	E_islandFlag uint32

	// Set when the shapes are touching.
	E_touchingFlag uint32

	// This contact can be disabled (by user)
	E_enabledFlag uint32

	// This contact needs filtering because a fixture filter was changed.
	E_filterFlag uint32
}{
	E_islandFlag:   0x0001,
	E_touchingFlag: 0x0002,
	E_enabledFlag:  0x0004,
	E_filterFlag:   0x0008,
}

/// The class manages contact between two shapes. A contact exists for each overlapping
/// AABB in the pair finder (except if filtered). Therefore a contact object may exist
/// that has no contact points.
type B2Contact struct {
	M_flags uint32

	M_handle B2ContactHandle

	M_fixtureA *B2Fixture
	M_fixtureB *B2Fixture

	M_indexA int
	M_indexB int

	M_manifold B2Manifold

	// Point states of the last update relative to the previous manifold.
	M_state1 [B2_maxManifoldPoints]uint8
	M_state2 [B2_maxManifoldPoints]uint8

	M_friction     float64
	M_restitution  float64
	M_tangentSpeed float64
}

/// Create a contact for two fixture children. The pair is reordered so the
/// narrowphase sees shapes in its canonical order: edges and chains first,
/// circles last. Unsupported pairs return an error.
func NewB2Contact(fixtureA *B2Fixture, indexA int, fixtureB *B2Fixture, indexB int) (*B2Contact, error) {
	swap, ok := B2CanonicalOrder(fixtureA.GetType(), fixtureB.GetType())
	if !ok {
		return nil, fmt.Errorf("%w: %s versus %s", ErrUnsupportedPair,
			b2ShapeTypeName(fixtureA.GetType()), b2ShapeTypeName(fixtureB.GetType()))
	}

	if swap {
		fixtureA, fixtureB = fixtureB, fixtureA
		indexA, indexB = indexB, indexA
	}

	contact := &B2Contact{
		M_flags:    B2Contact_Flag.E_enabledFlag,
		M_fixtureA: fixtureA,
		M_fixtureB: fixtureB,
		M_indexA:   indexA,
		M_indexB:   indexB,
	}

	contact.ResetFriction()
	contact.ResetRestitution()

	return contact, nil
}

func (contact B2Contact) GetHandle() B2ContactHandle {
	return contact.M_handle
}

/// Get the contact manifold. Do not modify the manifold unless you understand the
/// internals of the solver.
func (contact *B2Contact) GetManifold() *B2Manifold {
	return &contact.M_manifold
}

/// Get the world manifold.
func (contact B2Contact) GetWorldManifold() B2WorldManifold {
	bodyA := contact.M_fixtureA.GetBody()
	bodyB := contact.M_fixtureB.GetBody()
	shapeA := contact.M_fixtureA.GetShape()
	shapeB := contact.M_fixtureB.GetShape()

	return B2ComputeWorldManifold(&contact.M_manifold, bodyA.GetTransform(), shapeA.GetRadius(), bodyB.GetTransform(), shapeB.GetRadius())
}

/// Get the point states computed by the last update. state1 describes the
/// previous manifold, state2 the current one.
func (contact B2Contact) GetPointStates() ([B2_maxManifoldPoints]uint8, [B2_maxManifoldPoints]uint8) {
	return contact.M_state1, contact.M_state2
}

/// Is this contact touching?
func (contact B2Contact) IsTouching() bool {
	return (contact.M_flags & B2Contact_Flag.E_touchingFlag) == B2Contact_Flag.E_touchingFlag
}

/// Enable/disable this contact. This can be used inside the pre-solve
/// contact listener. The contact is only disabled for the current
/// time step (or sub-step in continuous collisions).
func (contact *B2Contact) SetEnabled(flag bool) {
	if flag {
		contact.M_flags |= B2Contact_Flag.E_enabledFlag
	} else {
		contact.M_flags &= ^B2Contact_Flag.E_enabledFlag
	}
}

func (contact B2Contact) IsEnabled() bool {
	return (contact.M_flags & B2Contact_Flag.E_enabledFlag) == B2Contact_Flag.E_enabledFlag
}

func (contact B2Contact) GetFixtureA() *B2Fixture {
	return contact.M_fixtureA
}

func (contact B2Contact) GetChildIndexA() int {
	return contact.M_indexA
}

func (contact B2Contact) GetFixtureB() *B2Fixture {
	return contact.M_fixtureB
}

func (contact B2Contact) GetChildIndexB() int {
	return contact.M_indexB
}

/// Override the default friction mixture. You can call this in PreSolve.
/// This value persists until set or reset.
func (contact *B2Contact) SetFriction(friction float64) {
	contact.M_friction = friction
}

func (contact B2Contact) GetFriction() float64 {
	return contact.M_friction
}

/// Reset the friction mixture to the default value.
func (contact *B2Contact) ResetFriction() {
	contact.M_friction = B2MixFriction(contact.M_fixtureA.M_friction, contact.M_fixtureB.M_friction)
}

/// Override the default restitution mixture. You can call this in PreSolve.
/// The value persists until you set or reset.
func (contact *B2Contact) SetRestitution(restitution float64) {
	contact.M_restitution = restitution
}

func (contact B2Contact) GetRestitution() float64 {
	return contact.M_restitution
}

/// Reset the restitution to the default value.
func (contact *B2Contact) ResetRestitution() {
	contact.M_restitution = B2MixRestitution(contact.M_fixtureA.M_restitution, contact.M_fixtureB.M_restitution)
}

/// Set the desired tangent speed for a conveyor belt behavior. In meters per second.
func (contact *B2Contact) SetTangentSpeed(speed float64) {
	contact.M_tangentSpeed = speed
}

func (contact B2Contact) GetTangentSpeed() float64 {
	return contact.M_tangentSpeed
}

/// Flag this contact for filtering. Filtering will occur the next time step.
func (contact *B2Contact) FlagForFiltering() {
	contact.M_flags |= B2Contact_Flag.E_filterFlag
}

/// Evaluate this contact with your own manifold and transforms. A pair the
/// narrowphase does not handle, or one not in canonical order, leaves the
/// manifold empty and returns ErrUnsupportedPair.
func (contact *B2Contact) Evaluate(manifold *B2Manifold, xfA B2Transform, xfB B2Transform, tol B2CollisionTolerance) error {
	ok := B2CollideShapes(
		manifold,
		contact.M_fixtureA.M_shape, xfA, contact.M_indexA,
		contact.M_fixtureB.M_shape, xfB, contact.M_indexB,
		tol,
	)
	if !ok {
		return fmt.Errorf("%w: %s versus %s", ErrUnsupportedPair,
			b2ShapeTypeName(contact.M_fixtureA.GetType()), b2ShapeTypeName(contact.M_fixtureB.GetType()))
	}
	return nil
}

// Update the contact manifold and touching status.
// Note: do not assume the fixture AABBs are overlapping or are valid.
func (contact *B2Contact) Update(listener B2ContactListenerInterface, tol B2CollisionTolerance) {
	oldManifold := contact.M_manifold

	// Re-enable this contact.
	contact.M_flags |= B2Contact_Flag.E_enabledFlag

	touching := false
	wasTouching := contact.IsTouching()

	sensor := contact.M_fixtureA.IsSensor() || contact.M_fixtureB.IsSensor()

	bodyA := contact.M_fixtureA.GetBody()
	bodyB := contact.M_fixtureB.GetBody()
	xfA := bodyA.GetTransform()
	xfB := bodyB.GetTransform()

	if sensor {
		// Sensors overlap when the narrowphase finds points, but they don't
		// keep a manifold.
		// NewB2Contact only admits canonical pairs, so Evaluate can't fail
		// here; a failure would leave the manifold empty anyway.
		var overlap B2Manifold
		_ = contact.Evaluate(&overlap, xfA, xfB, tol)
		touching = overlap.PointCount > 0

		contact.M_manifold.PointCount = 0
	} else {
		_ = contact.Evaluate(&contact.M_manifold, xfA, xfB, tol)
		touching = contact.M_manifold.PointCount > 0

		// Match old contact ids to new contact ids and copy the
		// stored impulses to warm start the solver.
		for i := 0; i < contact.M_manifold.PointCount; i++ {
			mp2 := &contact.M_manifold.Points[i]
			mp2.NormalImpulse = 0.0
			mp2.TangentImpulse = 0.0

			if j := oldManifold.FindPoint(mp2.Id); j >= 0 {
				mp2.NormalImpulse = oldManifold.Points[j].NormalImpulse
				mp2.TangentImpulse = oldManifold.Points[j].TangentImpulse
			}
		}

		if touching != wasTouching {
			bodyA.SetAwake(true)
			bodyB.SetAwake(true)
		}
	}

	contact.M_state1, contact.M_state2 = B2GetPointStates(oldManifold, contact.M_manifold)

	if touching {
		contact.M_flags |= B2Contact_Flag.E_touchingFlag
	} else {
		contact.M_flags &= ^B2Contact_Flag.E_touchingFlag
	}

	if listener == nil {
		return
	}

	if !wasTouching && touching {
		listener.BeginContact(contact)
	}

	if wasTouching && !touching {
		listener.EndContact(contact)
	}

	if !sensor && touching {
		listener.PreSolve(contact, oldManifold)
	}
}
