package box2d

/// This holds contact filtering data.
type B2Filter struct {
	/// The collision category bits. Normally you would just set one bit.
	CategoryBits uint16

	/// The collision mask bits. This states the categories that this
	/// shape would accept for collision.
	MaskBits uint16

	/// Collision groups allow a certain group of objects to never collide (negative)
	/// or always collide (positive). Zero means no collision group. Non-zero group
	/// filtering always wins against the mask bits.
	GroupIndex int16
}

func MakeB2Filter() B2Filter {
	return B2Filter{
		CategoryBits: 0x0001,
		MaskBits:     0xFFFF,
		GroupIndex:   0,
	}
}

/// A fixture definition is used to create a fixture. You can reuse fixture
/// definitions safely. The density comes from the shape.
type B2FixtureDef struct {

	/// The shape, this must be set. The shape will be cloned, so the caller
	/// keeps ownership of its copy.
	Shape B2Shape

	/// Use this to store application specific fixture data.
	UserData interface{}

	/// The friction coefficient, usually in the range [0,1].
	Friction float64

	/// The restitution (elasticity) usually in the range [0,1].
	Restitution float64

	/// A sensor shape collects contact information but never generates a collision
	/// response.
	IsSensor bool

	/// Contact filtering data.
	Filter B2Filter
}

/// The constructor sets the default fixture definition values.
func MakeB2FixtureDef(shape B2Shape) B2FixtureDef {
	return B2FixtureDef{
		Shape:       shape,
		Friction:    0.2,
		Restitution: 0.0,
		IsSensor:    false,
		Filter:      MakeB2Filter(),
	}
}

/// This proxy is used internally to connect fixtures to the pair finder.
type B2FixtureProxy struct {
	Aabb       B2AABB
	Fixture    *B2Fixture
	ChildIndex int
	ProxyId    int
}

/// A fixture is used to attach a shape to a body for collision detection. A fixture
/// inherits its transform from its parent. Fixtures hold additional non-geometric data
/// such as friction, collision filters, etc.
/// Fixtures are created via B2World.CreateFixture.
type B2Fixture struct {
	M_body *B2Body

	// Creation sequence number within the world.
	M_id uint64

	M_shape B2Shape

	M_friction    float64
	M_restitution float64

	M_proxies    []B2FixtureProxy
	M_proxyCount int

	M_filter B2Filter

	M_isSensor bool

	M_userData interface{}
}

func newB2Fixture(body *B2Body, def *B2FixtureDef) *B2Fixture {
	fix := &B2Fixture{
		M_body:        body,
		M_userData:    def.UserData,
		M_friction:    def.Friction,
		M_restitution: def.Restitution,
		M_filter:      def.Filter,
		M_isSensor:    def.IsSensor,
		M_shape:       B2ShapeClone(def.Shape),
	}

	// Reserve proxy space. The pair finder keeps pointers into this slice so
	// it is never reallocated.
	childCount := fix.M_shape.GetChildCount()
	fix.M_proxies = make([]B2FixtureProxy, childCount)
	for i := range fix.M_proxies {
		fix.M_proxies[i].ProxyId = E_nullProxy
	}

	return fix
}

func (fix B2Fixture) GetType() uint8 {
	return fix.M_shape.GetType()
}

/// Get the child shape. You can modify the child shape, however you should
/// call ResetMassData on the body when you change the mass properties.
func (fix B2Fixture) GetShape() B2Shape {
	return fix.M_shape
}

func (fix B2Fixture) IsSensor() bool {
	return fix.M_isSensor
}

func (fix B2Fixture) GetFilterData() B2Filter {
	return fix.M_filter
}

func (fix B2Fixture) GetUserData() interface{} {
	return fix.M_userData
}

func (fix *B2Fixture) SetUserData(data interface{}) {
	fix.M_userData = data
}

func (fix B2Fixture) GetBody() *B2Body {
	return fix.M_body
}

/// Set the density of this fixture. This will not automatically adjust the mass
/// of the body. You must call B2Body.ResetMassData to update the body's mass.
func (fix *B2Fixture) SetDensity(density float64) {
	B2Assert(B2IsValid(density) && density >= 0.0)
	B2ShapeSetDensity(fix.M_shape, density)
}

func (fix B2Fixture) GetDensity() float64 {
	return fix.M_shape.GetDensity()
}

func (fix B2Fixture) GetFriction() float64 {
	return fix.M_friction
}

/// This will not change the friction of existing contacts.
func (fix *B2Fixture) SetFriction(friction float64) {
	fix.M_friction = friction
}

func (fix B2Fixture) GetRestitution() float64 {
	return fix.M_restitution
}

/// This will not change the restitution of existing contacts.
func (fix *B2Fixture) SetRestitution(restitution float64) {
	fix.M_restitution = restitution
}

/// Test a point for containment in this fixture.
/// @param p a point in world coordinates.
func (fix B2Fixture) TestPoint(p B2Vec2) bool {
	return B2ShapeTestPoint(fix.M_shape, fix.M_body.GetTransform(), p)
}

/// Cast a ray against this shape.
func (fix B2Fixture) RayCast(input B2RayCastInput, childIndex int) (B2RayCastOutput, bool) {
	return B2ShapeRayCast(fix.M_shape, input, fix.M_body.GetTransform(), childIndex)
}

/// Get the mass data for this fixture. The rotational inertia is about the
/// shape's origin.
func (fix B2Fixture) GetMassData() B2MassData {
	return fix.M_shape.GetMassData()
}

/// Get the fixture's AABB. This AABB may be enlarged and/or stale.
func (fix B2Fixture) GetAABB(childIndex int) B2AABB {
	B2Assert(0 <= childIndex && childIndex < fix.M_proxyCount)
	return fix.M_proxies[childIndex].Aabb
}

func (fix *B2Fixture) CreateProxies(pairFinder B2PairFinder, xf B2Transform) {
	B2Assert(fix.M_proxyCount == 0)

	// Create proxies in the pair finder.
	fix.M_proxyCount = fix.M_shape.GetChildCount()

	for i := 0; i < fix.M_proxyCount; i++ {
		proxy := &fix.M_proxies[i]
		proxy.Aabb = B2ShapeComputeAABB(fix.M_shape, xf, i)
		proxy.Fixture = fix
		proxy.ChildIndex = i
		proxy.ProxyId = pairFinder.CreateProxy(proxy.Aabb, proxy)
	}
}

func (fix *B2Fixture) DestroyProxies(pairFinder B2PairFinder) {
	// Destroy proxies in the pair finder.
	for i := 0; i < fix.M_proxyCount; i++ {
		proxy := &fix.M_proxies[i]
		pairFinder.DestroyProxy(proxy.ProxyId)
		proxy.ProxyId = E_nullProxy
	}

	fix.M_proxyCount = 0
}

func (fix *B2Fixture) Synchronize(pairFinder B2PairFinder, transform1 B2Transform, transform2 B2Transform) {
	for i := 0; i < fix.M_proxyCount; i++ {
		proxy := &fix.M_proxies[i]

		// Compute an AABB that covers the swept shape (may miss some rotation effect).
		proxy.Aabb = B2AABBUnion(
			B2ShapeComputeAABB(fix.M_shape, transform1, proxy.ChildIndex),
			B2ShapeComputeAABB(fix.M_shape, transform2, proxy.ChildIndex),
		)

		displacement := B2Vec2Sub(transform2.P, transform1.P)

		pairFinder.MoveProxy(proxy.ProxyId, proxy.Aabb, displacement)
	}
}

/// Set the contact filtering data. This will not update contacts until the next time
/// step when either parent body is active and awake.
func (fix *B2Fixture) SetFilterData(filter B2Filter) {
	fix.M_filter = filter
	fix.Refilter()
}

/// Call this if you want to establish collision that was previously disabled by
/// the contact filter.
func (fix *B2Fixture) Refilter() {
	if fix.M_body == nil || fix.M_body.M_world == nil {
		return
	}

	world := fix.M_body.M_world

	// Flag associated contacts for filtering.
	for _, h := range fix.M_body.M_contacts {
		contact, ok := world.M_contactManager.M_contacts.Get(B2Handle(h))
		if !ok {
			continue
		}

		if contact.M_fixtureA == fix || contact.M_fixtureB == fix {
			contact.FlagForFiltering()
		}
	}

	// Touch each proxy so that new pairs may be created
	for i := 0; i < fix.M_proxyCount; i++ {
		world.M_contactManager.M_pairFinder.TouchProxy(fix.M_proxies[i].ProxyId)
	}
}

func (fix *B2Fixture) SetSensor(sensor bool) {
	if sensor != fix.M_isSensor {
		fix.M_body.SetAwake(true)
		fix.M_isSensor = sensor
	}
}

// Go statements recreating the fixture on bodies[bodyIndex].
func (fix *B2Fixture) Dump(bodyIndex int) {
	switch s := fix.M_shape.(type) {
	case *B2CircleShape:
		B2Log("    shape, _ := box2d.NewB2CircleShapeAt(%s, %.15e, %.15e)\n", b2DumpVec(s.M_p), s.M_radius, s.M_density)

	case *B2EdgeShape:
		if s.M_oneSided {
			B2Log("    shape, _ := box2d.NewB2OneSidedEdgeShape(%s, %s, %s, %s)\n",
				b2DumpVec(s.M_vertex0), b2DumpVec(s.M_vertex1), b2DumpVec(s.M_vertex2), b2DumpVec(s.M_vertex3))
		} else {
			B2Log("    shape, _ := box2d.NewB2EdgeShape(%s, %s)\n", b2DumpVec(s.M_vertex1), b2DumpVec(s.M_vertex2))
		}

	case *B2PolygonShape:
		b2DumpVertices(s.M_vertices[:s.M_count])
		B2Log("    shape, _ := box2d.NewB2PolygonShape(vs, %.15e)\n", s.M_density)

	case *B2ChainShape:
		vertices := s.M_vertices
		if s.M_loop {
			// The closing vertex is added back by the constructor.
			vertices = vertices[:s.M_count-1]
		}
		b2DumpVertices(vertices)
		B2Log("    shape, _ := box2d.NewB2ChainShape(vs, %t)\n", s.M_loop)
		if !s.M_loop && s.M_hasPrevVertex {
			B2Log("    shape.SetPrevVertex(%s)\n", b2DumpVec(s.M_prevVertex))
		}
		if !s.M_loop && s.M_hasNextVertex {
			B2Log("    shape.SetNextVertex(%s)\n", b2DumpVec(s.M_nextVertex))
		}

	default:
		return
	}

	B2Log("    fd := box2d.MakeB2FixtureDef(shape)\n")
	B2Log("    fd.Friction = %.15e\n", fix.M_friction)
	B2Log("    fd.Restitution = %.15e\n", fix.M_restitution)
	B2Log("    fd.IsSensor = %t\n", fix.M_isSensor)
	B2Log("    fd.Filter.CategoryBits = %d\n", fix.M_filter.CategoryBits)
	B2Log("    fd.Filter.MaskBits = %d\n", fix.M_filter.MaskBits)
	B2Log("    fd.Filter.GroupIndex = %d\n", fix.M_filter.GroupIndex)
	B2Log("    bodies[%d].CreateFixture(&fd)\n", bodyIndex)
}

func b2DumpVertices(vertices []B2Vec2) {
	B2Log("    vs := []box2d.B2Vec2{\n")
	for _, v := range vertices {
		B2Log("      %s,\n", b2DumpVec(v))
	}
	B2Log("    }\n")
}
