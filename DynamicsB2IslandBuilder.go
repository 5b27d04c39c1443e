package box2d

/// B2IslandBuilder partitions the awake part of a world into islands. For
/// each island it fills the given B2Island and calls solve before moving on
/// to the next one. Islands must be produced in a deterministic order.
type B2IslandBuilder interface {
	BuildIslands(world *B2World, island *B2Island, solve func(island *B2Island))
}

/// B2GraphIslandBuilder runs a depth first search over the constraint graph.
/// Touching, enabled, non-sensor contacts and joints to active bodies are
/// edges. Static bodies join islands but are not propagated through, so one
/// ground body does not merge everything resting on it into a single island.
type B2GraphIslandBuilder struct {
	stack *B2GrowableStack[*B2Body]
}

func NewB2GraphIslandBuilder() *B2GraphIslandBuilder {
	return &B2GraphIslandBuilder{
		stack: NewB2GrowableStack[*B2Body](64),
	}
}

// Clear all the island flags.
func (builder *B2GraphIslandBuilder) clearFlags(world *B2World) {
	world.M_bodies.Each(func(_ B2Handle, b *B2Body) bool {
		b.M_flags &= ^B2Body_Flags.E_islandFlag
		return true
	})

	world.M_contactManager.Each(func(c *B2Contact) bool {
		c.M_flags &= ^B2Contact_Flag.E_islandFlag
		return true
	})

	world.M_joints.Each(func(_ B2Handle, slot *b2JointSlot) bool {
		slot.Joint.base().M_islandFlag = false
		return true
	})
}

func (builder *B2GraphIslandBuilder) BuildIslands(world *B2World, island *B2Island, solve func(island *B2Island)) {
	if builder.stack == nil {
		builder.stack = NewB2GrowableStack[*B2Body](64)
	}

	builder.clearFlags(world)

	world.M_bodies.Each(func(_ B2Handle, seed *B2Body) bool {
		if seed.hasFlag(B2Body_Flags.E_islandFlag) {
			return true
		}

		if !seed.IsAwake() || !seed.IsActive() {
			return true
		}

		// The seed can be dynamic or kinematic.
		if seed.GetType() == B2BodyType.B2_staticBody {
			return true
		}

		island.Clear()
		builder.stack.Reset()
		builder.stack.Push(seed)
		seed.M_flags |= B2Body_Flags.E_islandFlag

		for {
			b, ok := builder.stack.Pop()
			if !ok {
				break
			}

			B2Assert(b.IsActive())
			island.Add(b)

			// Make sure the body is awake (without resetting sleep timer).
			b.M_flags |= B2Body_Flags.E_awakeFlag

			// To keep islands as small as possible, we don't
			// propagate islands across static bodies.
			if b.GetType() == B2BodyType.B2_staticBody {
				continue
			}

			builder.visitContacts(world, island, b)
			builder.visitJoints(world, island, b)
		}

		solve(island)

		// Allow static bodies to participate in other islands.
		for _, b := range island.M_bodies {
			if b.GetType() == B2BodyType.B2_staticBody {
				b.M_flags &= ^B2Body_Flags.E_islandFlag
			}
		}

		return true
	})
}

func (builder *B2GraphIslandBuilder) push(other *B2Body) {
	if other.hasFlag(B2Body_Flags.E_islandFlag) {
		return
	}

	builder.stack.Push(other)
	other.M_flags |= B2Body_Flags.E_islandFlag
}

// Search all contacts connected to this body.
func (builder *B2GraphIslandBuilder) visitContacts(world *B2World, island *B2Island, b *B2Body) {
	for _, h := range b.M_contacts {
		contact, ok := world.M_contactManager.Contact(h)
		if !ok {
			continue
		}

		// Has this contact already been added to an island?
		if contact.M_flags&B2Contact_Flag.E_islandFlag != 0 {
			continue
		}

		// Is this contact solid and touching?
		if !contact.IsEnabled() || !contact.IsTouching() {
			continue
		}

		// Skip sensors.
		if contact.GetFixtureA().IsSensor() || contact.GetFixtureB().IsSensor() {
			continue
		}

		island.AddContact(contact)
		contact.M_flags |= B2Contact_Flag.E_islandFlag

		other := contact.GetFixtureA().GetBody()
		if other == b {
			other = contact.GetFixtureB().GetBody()
		}

		builder.push(other)
	}
}

// Search all joints connected to this body.
func (builder *B2GraphIslandBuilder) visitJoints(world *B2World, island *B2Island, b *B2Body) {
	for _, h := range b.M_joints {
		joint, err := world.Joint(h)
		if err != nil {
			continue
		}

		jb := joint.base()
		if jb.M_islandFlag {
			continue
		}

		other := jb.other(b)

		// Don't simulate joints connected to inactive bodies.
		if !other.IsActive() {
			continue
		}

		island.AddJoint(joint)
		jb.M_islandFlag = true

		builder.push(other)
	}
}
