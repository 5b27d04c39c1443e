package box2d

// Identifies a fixture child pair independent of argument order.
type b2ContactKey struct {
	fixtureA *B2Fixture
	indexA   int
	fixtureB *B2Fixture
	indexB   int
}

func makeB2ContactKey(fixtureA *B2Fixture, indexA int, fixtureB *B2Fixture, indexB int) b2ContactKey {
	// Order by fixture creation sequence so (a, b) and (b, a) share a key.
	if fixtureA.M_id > fixtureB.M_id {
		fixtureA, fixtureB = fixtureB, fixtureA
		indexA, indexB = indexB, indexA
	}

	return b2ContactKey{fixtureA, indexA, fixtureB, indexB}
}

/// Delegate of B2World. Owns the contacts, turns pair finder output into
/// contacts and runs the narrowphase on them.
type B2ContactManager struct {
	M_pairFinder      B2PairFinder
	M_contacts        b2Arena[B2Contact]
	M_pairs           map[b2ContactKey]B2ContactHandle
	M_contactFilter   B2ContactFilterInterface
	M_contactListener B2ContactListenerInterface
	M_tolerance       B2CollisionTolerance
}

func MakeB2ContactManager() B2ContactManager {
	return B2ContactManager{
		M_pairFinder:    NewB2BruteForcePairFinder(),
		M_pairs:         make(map[b2ContactKey]B2ContactHandle),
		M_contactFilter: B2ContactFilter{},
		M_tolerance:     MakeB2CollisionTolerance(),
	}
}

func NewB2ContactManager() *B2ContactManager {
	res := MakeB2ContactManager()
	return &res
}

func (mgr B2ContactManager) GetContactCount() int {
	return mgr.M_contacts.Len()
}

func (mgr *B2ContactManager) Contact(h B2ContactHandle) (*B2Contact, bool) {
	return mgr.M_contacts.Get(B2Handle(h))
}

/// Visit the contacts in slot order. Return false to stop.
func (mgr *B2ContactManager) Each(fn func(c *B2Contact) bool) {
	mgr.M_contacts.Each(func(_ B2Handle, c *B2Contact) bool {
		return fn(c)
	})
}

func (mgr *B2ContactManager) Destroy(h B2ContactHandle) {
	c, ok := mgr.M_contacts.Remove(B2Handle(h))
	if !ok {
		return
	}

	fixtureA := c.GetFixtureA()
	fixtureB := c.GetFixtureB()
	bodyA := fixtureA.GetBody()
	bodyB := fixtureB.GetBody()

	if mgr.M_contactListener != nil && c.IsTouching() {
		mgr.M_contactListener.EndContact(c)
	}

	delete(mgr.M_pairs, makeB2ContactKey(fixtureA, c.M_indexA, fixtureB, c.M_indexB))

	// Remove from the bodies.
	bodyA.removeContact(h)
	bodyB.removeContact(h)
}

// This is the top level collision call for the time step. Here
// all the narrow phase collision is processed for the world
// contact list.
func (mgr *B2ContactManager) Collide() {
	mgr.M_contacts.Each(func(h B2Handle, c *B2Contact) bool {
		fixtureA := c.GetFixtureA()
		fixtureB := c.GetFixtureB()
		indexA := c.GetChildIndexA()
		indexB := c.GetChildIndexB()
		bodyA := fixtureA.GetBody()
		bodyB := fixtureB.GetBody()

		// Is this contact flagged for filtering?
		if (c.M_flags & B2Contact_Flag.E_filterFlag) != 0 {
			// Should these bodies collide?
			if !bodyB.ShouldCollide(bodyA) || !mgr.filterAllows(fixtureA, fixtureB) {
				mgr.Destroy(B2ContactHandle(h))
				return true
			}

			// Clear the filtering flag.
			c.M_flags &= ^B2Contact_Flag.E_filterFlag
		}

		activeA := bodyA.IsAwake() && bodyA.M_type != B2BodyType.B2_staticBody
		activeB := bodyB.IsAwake() && bodyB.M_type != B2BodyType.B2_staticBody

		// At least one body must be awake and it must be dynamic or kinematic.
		if !activeA && !activeB {
			return true
		}

		proxyIdA := fixtureA.M_proxies[indexA].ProxyId
		proxyIdB := fixtureB.M_proxies[indexB].ProxyId

		// Here we destroy contacts that cease to overlap in the pair finder.
		if !mgr.M_pairFinder.TestOverlap(proxyIdA, proxyIdB) {
			mgr.Destroy(B2ContactHandle(h))
			return true
		}

		// The contact persists.
		c.Update(mgr.M_contactListener, mgr.M_tolerance)
		return true
	})
}

func (mgr *B2ContactManager) FindNewContacts() {
	mgr.M_pairFinder.UpdatePairs(mgr.AddPair)
}

func (mgr *B2ContactManager) filterAllows(fixtureA *B2Fixture, fixtureB *B2Fixture) bool {
	return mgr.M_contactFilter == nil || mgr.M_contactFilter.ShouldCollide(fixtureA, fixtureB)
}

/// Create a contact for a new pair reported by the pair finder. Pairs on the
/// same body, pairs that already have a contact, filtered pairs and shape
/// kinds without a narrowphase routine are skipped.
func (mgr *B2ContactManager) AddPair(proxyA *B2FixtureProxy, proxyB *B2FixtureProxy) {
	fixtureA := proxyA.Fixture
	fixtureB := proxyB.Fixture

	indexA := proxyA.ChildIndex
	indexB := proxyB.ChildIndex

	bodyA := fixtureA.GetBody()
	bodyB := fixtureB.GetBody()

	// Are the fixtures on the same body?
	if bodyA == bodyB {
		return
	}

	// Does a contact already exist?
	key := makeB2ContactKey(fixtureA, indexA, fixtureB, indexB)
	if _, ok := mgr.M_pairs[key]; ok {
		return
	}

	// Does a joint override collision? Is at least one body dynamic?
	if !bodyB.ShouldCollide(bodyA) {
		return
	}

	// Check user filtering.
	if !mgr.filterAllows(fixtureA, fixtureB) {
		return
	}

	c, err := NewB2Contact(fixtureA, indexA, fixtureB, indexB)
	if err != nil {
		// Unsupported shape pairs never touch.
		return
	}

	// Contact creation may swap fixtures.
	bodyA = c.GetFixtureA().GetBody()
	bodyB = c.GetFixtureB().GetBody()

	h := B2ContactHandle(mgr.M_contacts.Insert(c))
	c.M_handle = h
	mgr.M_pairs[key] = h

	// Connect to island graph.
	bodyA.M_contacts = append(bodyA.M_contacts, h)
	bodyB.M_contacts = append(bodyB.M_contacts, h)

	// Wake up the bodies
	if !c.GetFixtureA().IsSensor() && !c.GetFixtureB().IsSensor() {
		bodyA.SetAwake(true)
		bodyB.SetAwake(true)
	}
}
