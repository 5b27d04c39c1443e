package box2d_test

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"

	box2d "github.com/Genbox/VelcroPhysics-sub012"
)

const (
	timeStep           = 1.0 / 60.0
	velocityIterations = 8
	positionIterations = 3
)

func newBody(t *testing.T, world *box2d.B2World, bodyType uint8, x, y float64) *box2d.B2Body {
	t.Helper()

	bd := box2d.MakeB2BodyDef()
	bd.Type = bodyType
	bd.Position.Set(x, y)

	body, err := world.CreateBody(&bd)
	if err != nil {
		t.Fatalf("create body: %v", err)
	}
	return body
}

func addBox(t *testing.T, body *box2d.B2Body, hx, hy, density float64) *box2d.B2Fixture {
	t.Helper()

	shape, err := box2d.NewB2BoxShape(hx, hy, density)
	if err != nil {
		t.Fatalf("box: %v", err)
	}

	fixture, err := body.CreateFixtureFromShape(shape)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return fixture
}

func addCircle(t *testing.T, body *box2d.B2Body, radius, density float64) *box2d.B2Fixture {
	t.Helper()

	shape, err := box2d.NewB2CircleShape(radius, density)
	if err != nil {
		t.Fatalf("circle: %v", err)
	}

	fixture, err := body.CreateFixtureFromShape(shape)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return fixture
}

// Ground box whose top face is the line y = 0.
func newGround(t *testing.T, world *box2d.B2World) *box2d.B2Body {
	t.Helper()

	ground := newBody(t, world, box2d.B2BodyType.B2_staticBody, 0, -0.5)
	addBox(t, ground, 5.0, 0.5, 0.0)
	return ground
}

func mechanicalEnergy(body *box2d.B2Body, gravity float64) float64 {
	v := body.GetLinearVelocity()
	w := body.GetAngularVelocity()
	return 0.5*body.GetMass()*box2d.B2Vec2Dot(v, v) +
		0.5*body.GetInertia()*w*w +
		body.GetMass()*gravity*body.GetWorldCenter().Y
}

type contactRecorder struct {
	world *box2d.B2World

	begins, ends, preSolves, postSolves int

	lockedDuringStep bool
	createErr        error
	destroyErr       error
	jointErr         error
	victim           box2d.B2BodyHandle
}

func (r *contactRecorder) BeginContact(c *box2d.B2Contact) {
	r.begins++

	if r.world == nil {
		return
	}

	r.lockedDuringStep = r.world.IsLocked()
	_, r.createErr = r.world.CreateBody(nil)
	r.destroyErr = r.world.DestroyBody(r.victim)

	jd := box2d.MakeB2DistanceJointDef()
	jd.BodyB = r.victim
	_, r.jointErr = r.world.CreateJoint(&jd)
}

func (r *contactRecorder) EndContact(c *box2d.B2Contact) {
	r.ends++
}

func (r *contactRecorder) PreSolve(c *box2d.B2Contact, oldManifold box2d.B2Manifold) {
	r.preSolves++
}

func (r *contactRecorder) PostSolve(c *box2d.B2Contact, impulse *box2d.B2ContactImpulse) {
	r.postSolves++
}

func TestWorldRestingBoxConverges(t *testing.T) {
	const gravity = 10.0

	world := box2d.MakeB2World(box2d.MakeB2Vec2(0, -gravity))
	newGround(t, &world)

	box := newBody(t, &world, box2d.B2BodyType.B2_dynamicBody, 0, 1.0)
	addBox(t, box, 0.5, 0.5, 1.0)

	if !near(box.GetMass(), 1.0, 1e-12) {
		t.Fatalf("mass = %g, want 1", box.GetMass())
	}

	initial := mechanicalEnergy(box, gravity)
	for i := 0; i < 180; i++ {
		world.Step(timeStep, velocityIterations, positionIterations)

		if e := mechanicalEnergy(box, gravity); e > initial+1e-9 {
			t.Fatalf("step %d: energy %g exceeds initial %g", i, e, initial)
		}
	}

	// Core bottom rests on the ground skin: 0.5 half height plus two polygon radii.
	rest := 0.5 + 2*box2d.B2_polygonRadius
	if y := box.GetPosition().Y; y < rest-1.2*box2d.B2_linearSlop || y > rest+1e-3 {
		t.Errorf("resting height = %g, want about %g", y, rest)
	}

	if box.IsAwake() {
		t.Errorf("box still awake, velocity %v", box.GetLinearVelocity())
	}

	touching := 0
	for _, c := range world.Contacts() {
		if !c.IsTouching() {
			continue
		}
		touching++

		wm := c.GetWorldManifold()
		for i := 0; i < c.GetManifold().PointCount; i++ {
			if wm.Separations[i] < -1.2*box2d.B2_linearSlop {
				t.Errorf("point %d penetrates %g\n%s", i, -wm.Separations[i], spew.Sdump(c.GetManifold()))
			}
		}
	}
	if touching != 1 {
		t.Errorf("touching contacts = %d, want 1", touching)
	}
}

func TestWorldInvalidHandles(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, -10))

	body := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 0)
	h := body.GetHandle()

	if err := world.DestroyBody(h); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	if _, err := world.Body(h); !errors.Is(err, box2d.ErrInvalidHandle) {
		t.Errorf("Body(stale) = %v, want ErrInvalidHandle", err)
	}
	if err := world.DestroyBody(h); !errors.Is(err, box2d.ErrInvalidHandle) {
		t.Errorf("DestroyBody(stale) = %v, want ErrInvalidHandle", err)
	}
	if _, err := world.CreateFixture(h, nil); !errors.Is(err, box2d.ErrInvalidHandle) {
		t.Errorf("CreateFixture(stale) = %v, want ErrInvalidHandle", err)
	}

	// A retained pointer to the destroyed body behaves like its stale handle.
	shape, err := box2d.NewB2BoxShape(0.5, 0.5, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := body.CreateFixtureFromShape(shape); !errors.Is(err, box2d.ErrInvalidHandle) {
		t.Errorf("destroyed body CreateFixture = %v, want ErrInvalidHandle", err)
	}
	for name, mutate := range map[string]func() error{
		"SetType":        func() error { return body.SetType(box2d.B2BodyType.B2_staticBody) },
		"DestroyFixture": func() error { return body.DestroyFixture(nil) },
		"SetMassData":    func() error { return body.SetMassData(box2d.B2MassData{Mass: 2}) },
		"SetTransform":   func() error { return body.SetTransform(box2d.MakeB2Vec2(1, 1), 0) },
		"SetActive":      func() error { return body.SetActive(false) },
	} {
		if err := mutate(); !errors.Is(err, box2d.ErrInvalidHandle) {
			t.Errorf("destroyed body %s = %v, want ErrInvalidHandle", name, err)
		}
	}

	// A new body may reuse the slot but not the handle.
	again := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 0)
	if again.GetHandle() == h {
		t.Fatal("stale handle was reissued")
	}
	if _, err := world.Body(h); !errors.Is(err, box2d.ErrInvalidHandle) {
		t.Errorf("stale handle resolves after reuse: %v", err)
	}

	if _, err := world.Joint(box2d.B2JointHandle{}); !errors.Is(err, box2d.ErrInvalidHandle) {
		t.Errorf("Joint(nil) = %v, want ErrInvalidHandle", err)
	}
	if err := world.DestroyJoint(box2d.B2JointHandle{}); !errors.Is(err, box2d.ErrInvalidHandle) {
		t.Errorf("DestroyJoint(nil) = %v, want ErrInvalidHandle", err)
	}
	if _, err := world.Contact(box2d.B2ContactHandle{}); !errors.Is(err, box2d.ErrInvalidHandle) {
		t.Errorf("Contact(nil) = %v, want ErrInvalidHandle", err)
	}
}

func TestContactEvaluateRejectsUnorderedPair(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, 0))

	boxFixture := addBox(t, newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 0), 1.0, 1.0, 1.0)
	circle, err := box2d.NewB2CircleShape(0.5, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	circleFixture, err := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 1.4).CreateFixtureFromShape(circle)
	if err != nil {
		t.Fatal(err)
	}

	// NewB2Contact puts the polygon first.
	contact, err := box2d.NewB2Contact(circleFixture, 0, boxFixture, 0)
	if err != nil {
		t.Fatal(err)
	}
	tol := box2d.MakeB2CollisionTolerance()
	var m box2d.B2Manifold
	if err := contact.Evaluate(&m, at(0, 0), at(0, 1.4), tol); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if m.PointCount != 1 {
		t.Errorf("point count = %d, want 1\n%s", m.PointCount, spew.Sdump(m))
	}

	// A hand-built contact skips the reordering.
	unordered := &box2d.B2Contact{M_fixtureA: circleFixture, M_fixtureB: boxFixture}
	m = box2d.B2Manifold{}
	if err := unordered.Evaluate(&m, at(0, 1.4), at(0, 0), tol); !errors.Is(err, box2d.ErrUnsupportedPair) {
		t.Errorf("evaluate unordered pair: err = %v, want ErrUnsupportedPair", err)
	}
	if m.PointCount != 0 {
		t.Errorf("rejected pair left %d points", m.PointCount)
	}
}

func TestWorldRejectsBadBodyDef(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, -10))

	bd := box2d.MakeB2BodyDef()
	bd.LinearDamping = -1
	if _, err := world.CreateBody(&bd); err == nil {
		t.Error("negative damping accepted")
	}

	bd = box2d.MakeB2BodyDef()
	bd.Type = 7
	if _, err := world.CreateBody(&bd); err == nil {
		t.Error("unknown body type accepted")
	}

	if world.GetBodyCount() != 0 {
		t.Errorf("rejected definitions left %d bodies", world.GetBodyCount())
	}
}

func TestWorldLockedDuringStep(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, -10))
	newGround(t, world)

	box := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 0.6)
	addBox(t, box, 0.5, 0.5, 1.0)

	recorder := &contactRecorder{world: world, victim: box.GetHandle()}
	world.SetContactListener(recorder)

	for i := 0; i < 60 && recorder.begins == 0; i++ {
		world.Step(timeStep, velocityIterations, positionIterations)
	}

	if recorder.begins == 0 {
		t.Fatal("box never touched the ground")
	}
	if !recorder.lockedDuringStep {
		t.Error("world not locked inside BeginContact")
	}
	for name, err := range map[string]error{
		"CreateBody":  recorder.createErr,
		"DestroyBody": recorder.destroyErr,
		"CreateJoint": recorder.jointErr,
	} {
		if !errors.Is(err, box2d.ErrWorldLocked) {
			t.Errorf("%s inside step = %v, want ErrWorldLocked", name, err)
		}
	}

	if world.IsLocked() {
		t.Error("world still locked after Step")
	}
	if _, err := world.Body(box.GetHandle()); err != nil {
		t.Errorf("body destroyed from inside the step: %v", err)
	}
	if recorder.preSolves == 0 || recorder.postSolves == 0 {
		t.Errorf("preSolve=%d postSolve=%d, want both called", recorder.preSolves, recorder.postSolves)
	}

	// Teleporting away ends the contact at the next step.
	recorder.world = nil
	if err := box.SetTransform(box2d.MakeB2Vec2(0, 20), 0); err != nil {
		t.Fatalf("set transform: %v", err)
	}
	world.Step(timeStep, velocityIterations, positionIterations)
	if recorder.ends != 1 {
		t.Errorf("end contacts = %d, want 1", recorder.ends)
	}
}

func TestWorldSensorTouchesWithoutResponse(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, 0))

	zone := newBody(t, world, box2d.B2BodyType.B2_staticBody, 0, 0)
	sensor := addBox(t, zone, 2.0, 2.0, 0.0)
	sensor.SetSensor(true)

	ball := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 0)
	addCircle(t, ball, 0.5, 1.0)
	ball.SetLinearVelocity(box2d.MakeB2Vec2(1, 0))

	recorder := &contactRecorder{}
	world.SetContactListener(recorder)

	world.Step(timeStep, velocityIterations, positionIterations)

	contacts := world.Contacts()
	if len(contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(contacts))
	}
	if !contacts[0].IsTouching() {
		t.Error("sensor overlap is not touching")
	}
	if contacts[0].GetManifold().PointCount != 0 {
		t.Errorf("sensor contact kept %d manifold points", contacts[0].GetManifold().PointCount)
	}
	if recorder.begins != 1 || recorder.preSolves != 0 || recorder.postSolves != 0 {
		t.Errorf("begin=%d preSolve=%d postSolve=%d, want 1/0/0", recorder.begins, recorder.preSolves, recorder.postSolves)
	}
	if v := ball.GetLinearVelocity(); !nearVec(v, box2d.MakeB2Vec2(1, 0), 1e-12) {
		t.Errorf("sensor changed the ball velocity to %v", v)
	}
}

func TestWorldFilterGroups(t *testing.T) {
	for _, tc := range []struct {
		group    int16
		contacts int
	}{
		{0, 1},
		{-1, 0},
		{1, 1},
	} {
		world := box2d.NewB2World(box2d.MakeB2Vec2(0, 0))

		a := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 0)
		b := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0.5, 0)

		for _, body := range []*box2d.B2Body{a, b} {
			f := addBox(t, body, 0.5, 0.5, 1.0)
			filter := f.GetFilterData()
			filter.GroupIndex = tc.group
			f.SetFilterData(filter)
		}

		world.Step(timeStep, velocityIterations, positionIterations)

		if n := world.GetContactCount(); n != tc.contacts {
			t.Errorf("group %d: contacts = %d, want %d", tc.group, n, tc.contacts)
		}
	}
}

type goodbyes struct {
	joints, fixtures int
}

func (g *goodbyes) SayGoodbyeToFixture(fixture *box2d.B2Fixture) { g.fixtures++ }
func (g *goodbyes) SayGoodbyeToJoint(joint box2d.B2Joint)        { g.joints++ }

func TestWorldDestroyBody(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, -10))
	ground := newGround(t, world)

	box := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 0.5)
	addBox(t, box, 0.5, 0.5, 1.0)
	addCircle(t, box, 0.25, 1.0)

	jd := box2d.MakeB2DistanceJointDef()
	jd.Initialize(ground, box, box2d.MakeB2Vec2(0, -0.5), box2d.MakeB2Vec2(0, 0.5))
	jd.CollideConnected = true
	if _, err := world.CreateJoint(&jd); err != nil {
		t.Fatalf("joint: %v", err)
	}

	listener := &goodbyes{}
	world.SetDestructionListener(listener)

	world.Step(timeStep, velocityIterations, positionIterations)
	if len(ground.GetContacts()) == 0 {
		t.Fatal("box is not in contact with the ground")
	}

	if err := world.DestroyBody(box.GetHandle()); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	if listener.joints != 1 || listener.fixtures != 2 {
		t.Errorf("goodbyes joints=%d fixtures=%d, want 1/2", listener.joints, listener.fixtures)
	}
	if world.GetJointCount() != 0 {
		t.Errorf("joints = %d, want 0", world.GetJointCount())
	}
	if world.GetContactCount() != 0 {
		t.Errorf("contacts = %d, want 0", world.GetContactCount())
	}
	if len(ground.GetContacts()) != 0 || len(ground.GetJoints()) != 0 {
		t.Errorf("ground keeps %d contacts and %d joints", len(ground.GetContacts()), len(ground.GetJoints()))
	}
	if world.GetProxyCount() != 1 {
		t.Errorf("proxies = %d, want 1", world.GetProxyCount())
	}

	// The world keeps stepping without the body.
	world.Step(timeStep, velocityIterations, positionIterations)
}

func TestWorldQueryAndRayCast(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, 0))

	nearBody := newBody(t, world, box2d.B2BodyType.B2_staticBody, 0, 0)
	nearFixture := addBox(t, nearBody, 0.5, 0.5, 0.0)

	farBody := newBody(t, world, box2d.B2BodyType.B2_staticBody, 10, 0)
	farFixture := addBox(t, farBody, 0.5, 0.5, 0.0)

	var found []*box2d.B2Fixture
	world.QueryAABB(func(f *box2d.B2Fixture) bool {
		found = append(found, f)
		return true
	}, box2d.MakeB2AABB(box2d.MakeB2Vec2(9, -1), box2d.MakeB2Vec2(11, 1)))

	if len(found) != 1 || found[0] != farFixture {
		t.Errorf("query found %d fixtures, want the far box", len(found))
	}

	var hit *box2d.B2Fixture
	var hitPoint box2d.B2Vec2
	world.RayCast(func(f *box2d.B2Fixture, point, normal box2d.B2Vec2, fraction float64) float64 {
		hit = f
		hitPoint = point
		return fraction
	}, box2d.MakeB2Vec2(-5, 0), box2d.MakeB2Vec2(15, 0))

	if hit != nearFixture {
		t.Fatalf("closest hit is not the near box")
	}
	if !nearVec(hitPoint, box2d.MakeB2Vec2(-0.5, 0), 1e-9) {
		t.Errorf("hit point = %v, want (-0.5, 0)", hitPoint)
	}
}

func TestWorldShiftOrigin(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, 0))

	body := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 10, 5)
	addBox(t, body, 0.5, 0.5, 1.0)

	if err := world.ShiftOrigin(box2d.MakeB2Vec2(10, 0)); err != nil {
		t.Fatalf("shift: %v", err)
	}

	if p := body.GetPosition(); !nearVec(p, box2d.MakeB2Vec2(0, 5), 1e-12) {
		t.Errorf("position = %v, want (0, 5)", p)
	}

	found := 0
	world.QueryAABB(func(*box2d.B2Fixture) bool {
		found++
		return true
	}, box2d.MakeB2AABB(box2d.MakeB2Vec2(-1, 4), box2d.MakeB2Vec2(1, 6)))
	if found != 1 {
		t.Errorf("query at the shifted position found %d fixtures", found)
	}
}

func TestBodyMassFromFixtures(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, 0))

	body := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 0)
	if body.GetMass() != 1.0 {
		t.Errorf("fixtureless dynamic body mass = %g, want 1", body.GetMass())
	}

	shape, err := box2d.NewB2OrientedBoxShape(1.0, 1.0, box2d.MakeB2Vec2(2, 0), 0.0, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	fixture, err := body.CreateFixtureFromShape(shape)
	if err != nil {
		t.Fatal(err)
	}

	if !near(body.GetMass(), 2.0, 1e-12) {
		t.Errorf("mass = %g, want 2", body.GetMass())
	}
	if c := body.GetLocalCenter(); !nearVec(c, box2d.MakeB2Vec2(2, 0), 1e-12) {
		t.Errorf("local center = %v, want (2, 0)", c)
	}

	if err := body.DestroyFixture(fixture); err != nil {
		t.Fatal(err)
	}
	if body.GetMass() != 1.0 || len(body.GetFixtures()) != 0 {
		t.Errorf("after destroy: mass %g, %d fixtures", body.GetMass(), len(body.GetFixtures()))
	}

	body.ApplyForceToCenter(box2d.MakeB2Vec2(60, 0), true)
	world.Step(timeStep, velocityIterations, positionIterations)
	if v := body.GetLinearVelocity(); !near(v.X, 1.0, 1e-12) {
		t.Errorf("velocity after one step = %v, want x = 1", v)
	}
}
