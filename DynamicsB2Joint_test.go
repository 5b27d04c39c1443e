package box2d_test

import (
	"errors"
	"math"
	"testing"

	box2d "github.com/Genbox/VelcroPhysics-sub012"
)

func stepN(world *box2d.B2World, n int) {
	for i := 0; i < n; i++ {
		world.Step(timeStep, velocityIterations, positionIterations)
	}
}

func TestJointBuilderErrors(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, -10))

	a := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 0)
	b := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 1, 0)
	gone := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 2, 0)
	goneHandle := gone.GetHandle()
	if err := world.DestroyBody(goneHandle); err != nil {
		t.Fatal(err)
	}

	revolute := func(mutate func(*box2d.B2RevoluteJointDef)) box2d.B2JointDef {
		jd := box2d.MakeB2RevoluteJointDef()
		jd.Initialize(a, b, box2d.MakeB2Vec2(0.5, 0))
		mutate(&jd)
		return &jd
	}

	cases := []struct {
		name string
		def  box2d.B2JointDef
		want error
	}{
		{"nil definition", nil, box2d.ErrInvalidJointDef},
		{"same body", revolute(func(jd *box2d.B2RevoluteJointDef) {
			jd.BodyB = jd.BodyA
		}), box2d.ErrInvalidJointDef},
		{"inverted limits", revolute(func(jd *box2d.B2RevoluteJointDef) {
			jd.EnableLimit = true
			jd.LowerAngle = 1.0
			jd.UpperAngle = -1.0
		}), box2d.ErrInvalidJointDef},
		{"stale body", revolute(func(jd *box2d.B2RevoluteJointDef) {
			jd.BodyB = goneHandle
		}), box2d.ErrInvalidHandle},
		{"missing body b", revolute(func(jd *box2d.B2RevoluteJointDef) {
			jd.BodyB = box2d.B2BodyHandle{}
		}), box2d.ErrInvalidHandle},
		{"negative length", func() box2d.B2JointDef {
			jd := box2d.MakeB2DistanceJointDef()
			jd.Initialize(a, b, a.GetPosition(), b.GetPosition())
			jd.Length = -1
			return &jd
		}(), box2d.ErrInvalidJointDef},
		{"zero prismatic axis", func() box2d.B2JointDef {
			jd := box2d.MakeB2PrismaticJointDef()
			jd.Initialize(a, b, a.GetPosition(), box2d.MakeB2Vec2(0, 0))
			return &jd
		}(), box2d.ErrInvalidJointDef},
		{"negative friction", func() box2d.B2JointDef {
			jd := box2d.MakeB2FrictionJointDef()
			jd.Initialize(a, b, a.GetPosition())
			jd.MaxForce = -1
			return &jd
		}(), box2d.ErrInvalidJointDef},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			j, err := world.CreateJoint(tc.def)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if j != nil {
				t.Errorf("got a joint alongside the error")
			}
		})
	}

	if world.GetJointCount() != 0 {
		t.Errorf("failed builds left %d joints", world.GetJointCount())
	}
	if len(a.GetJoints()) != 0 || len(b.GetJoints()) != 0 {
		t.Error("failed builds attached joints to bodies")
	}
}

func TestJointNilBodyAttachesToGround(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, -10))

	bob := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 2, 0)
	addCircle(t, bob, 0.25, 1.0)

	jd := box2d.MakeB2RevoluteJointDef()
	jd.BodyB = bob.GetHandle()
	jd.LocalAnchorB = bob.GetLocalPoint(box2d.MakeB2Vec2(0, 0))

	j, err := world.CreateJoint(&jd)
	if err != nil {
		t.Fatalf("joint: %v", err)
	}

	ground := world.GroundBody()
	if ground.GetType() != box2d.B2BodyType.B2_staticBody {
		t.Errorf("ground body type = %d, want static", ground.GetType())
	}
	if j.GetBodyA() != ground.GetHandle() {
		t.Errorf("body A = %v, want the ground body %v", j.GetBodyA(), ground.GetHandle())
	}
	if j.GetType() != box2d.B2JointType.E_revoluteJoint {
		t.Errorf("joint type = %d, want revolute", j.GetType())
	}

	got, err := world.Joint(j.GetHandle())
	if err != nil || got != j {
		t.Fatalf("Joint(handle) = %v, %v", got, err)
	}
	if len(bob.GetJoints()) != 1 || bob.GetJoints()[0] != j.GetHandle() {
		t.Errorf("bob joints = %v", bob.GetJoints())
	}

	if err := world.DestroyJoint(j.GetHandle()); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if len(bob.GetJoints()) != 0 || len(ground.GetJoints()) != 0 {
		t.Error("destroyed joint is still attached")
	}
	if _, err := world.Joint(j.GetHandle()); !errors.Is(err, box2d.ErrInvalidHandle) {
		t.Errorf("Joint(destroyed) = %v, want ErrInvalidHandle", err)
	}
}

func TestRevolutePendulumKeepsLength(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, -10))

	bob := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 2, 0)
	addCircle(t, bob, 0.25, 1.0)

	jd := box2d.MakeB2RevoluteJointDef()
	jd.BodyB = bob.GetHandle()
	jd.LocalAnchorB = bob.GetLocalPoint(box2d.MakeB2Vec2(0, 0))
	j, err := world.CreateJoint(&jd)
	if err != nil {
		t.Fatalf("joint: %v", err)
	}

	lowest := 0.0
	for i := 0; i < 120; i++ {
		world.Step(timeStep, velocityIterations, positionIterations)

		p := bob.GetPosition()
		if d := p.Length(); !near(d, 2.0, 0.02) {
			t.Fatalf("step %d: bob %g from the pivot, want 2", i, d)
		}
		lowest = math.Min(lowest, p.Y)
	}

	if lowest > -1.0 {
		t.Errorf("pendulum did not swing, lowest y = %g", lowest)
	}

	anchorGap := box2d.B2Vec2Distance(j.GetAnchorA(), j.GetAnchorB())
	if anchorGap > 2.0*box2d.B2_linearSlop {
		t.Errorf("anchors drifted %g apart", anchorGap)
	}
}

func TestDistanceJointHoldsLength(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, 0))

	a := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 0)
	addCircle(t, a, 0.25, 1.0)
	b := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 3, 0)
	addCircle(t, b, 0.25, 1.0)
	b.SetLinearVelocity(box2d.MakeB2Vec2(0, 5))

	jd := box2d.MakeB2DistanceJointDef()
	jd.Initialize(a, b, a.GetPosition(), b.GetPosition())
	if _, err := world.CreateJoint(&jd); err != nil {
		t.Fatalf("joint: %v", err)
	}

	for i := 0; i < 120; i++ {
		world.Step(timeStep, velocityIterations, positionIterations)

		if d := box2d.B2Vec2Distance(a.GetPosition(), b.GetPosition()); !near(d, 3.0, 0.02) {
			t.Fatalf("step %d: length %g, want 3", i, d)
		}
	}

	if a.GetLinearVelocity().LengthSquared() == 0 {
		t.Error("the rod did not drag the other body")
	}
}

func TestMouseJointReachesTarget(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, 0))

	body := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 0)
	addBox(t, body, 0.5, 0.5, 1.0)

	jd := box2d.MakeB2MouseJointDef()
	jd.BodyB = body.GetHandle()
	jd.Target = body.GetPosition()
	jd.MaxForce = 1000.0 * body.GetMass()

	j, err := world.CreateJoint(&jd)
	if err != nil {
		t.Fatalf("joint: %v", err)
	}

	mouse, ok := j.(*box2d.B2MouseJoint)
	if !ok {
		t.Fatalf("joint is %T, want *B2MouseJoint", j)
	}

	target := box2d.MakeB2Vec2(5, 0)
	mouse.SetTarget(target)
	stepN(world, 120)

	if p := body.GetPosition(); !nearVec(p, target, 0.05) {
		t.Errorf("body at %v, want near %v", p, target)
	}
}

func TestWeldJointHolds(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, -10))

	beam := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 1, 0)
	addBox(t, beam, 0.5, 0.1, 1.0)

	jd := box2d.MakeB2WeldJointDef()
	jd.Initialize(world.GroundBody(), beam, box2d.MakeB2Vec2(0.5, 0))
	if _, err := world.CreateJoint(&jd); err != nil {
		t.Fatalf("joint: %v", err)
	}

	stepN(world, 60)

	if p := beam.GetPosition(); !nearVec(p, box2d.MakeB2Vec2(1, 0), 0.01) {
		t.Errorf("beam moved to %v", p)
	}
	if a := beam.GetAngle(); math.Abs(a) > 0.01 {
		t.Errorf("beam rotated to %g", a)
	}
}

func TestWeldJointHoldsHeavyBody(t *testing.T) {
	for _, density := range []float64{1.0, 1000.0} {
		world := box2d.NewB2World(box2d.MakeB2Vec2(0, -10))

		slab := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 0)
		addBox(t, slab, 20, 20, density)

		jd := box2d.MakeB2WeldJointDef()
		jd.Initialize(world.GroundBody(), slab, box2d.MakeB2Vec2(0, 0))
		if _, err := world.CreateJoint(&jd); err != nil {
			t.Fatalf("density %g: joint: %v", density, err)
		}

		stepN(world, 60)

		if p := slab.GetPosition(); !nearVec(p, box2d.MakeB2Vec2(0, 0), 0.01) {
			t.Errorf("density %g: welded slab moved to %v", density, p)
		}
	}
}

func TestPrismaticJointLimit(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, -10))

	slider := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 0)
	addBox(t, slider, 0.25, 0.25, 1.0)
	slider.SetLinearVelocity(box2d.MakeB2Vec2(5, 0))

	jd := box2d.MakeB2PrismaticJointDef()
	jd.Initialize(world.GroundBody(), slider, box2d.MakeB2Vec2(0, 0), box2d.MakeB2Vec2(1, 0))
	jd.EnableLimit = true
	jd.LowerTranslation = -1.0
	jd.UpperTranslation = 1.0

	j, err := world.CreateJoint(&jd)
	if err != nil {
		t.Fatalf("joint: %v", err)
	}
	prismatic := j.(*box2d.B2PrismaticJoint)

	for i := 0; i < 90; i++ {
		world.Step(timeStep, velocityIterations, positionIterations)

		p := slider.GetPosition()
		if math.Abs(p.Y) > 0.01 {
			t.Fatalf("step %d: slider left the axis, y = %g", i, p.Y)
		}
		if p.X > 1.0+0.02 {
			t.Fatalf("step %d: slider passed the upper limit, x = %g", i, p.X)
		}
	}

	if tr := prismatic.GetJointTranslation(); !near(tr, 1.0, 0.02) {
		t.Errorf("translation = %g, want the upper limit", tr)
	}
	if a := slider.GetAngle(); math.Abs(a) > 0.01 {
		t.Errorf("slider rotated to %g", a)
	}
}

func TestFrictionJointStopsBody(t *testing.T) {
	world := box2d.NewB2World(box2d.MakeB2Vec2(0, 0))

	puck := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 0)
	addCircle(t, puck, 0.5, 1.0)
	puck.SetLinearVelocity(box2d.MakeB2Vec2(5, 0))

	jd := box2d.MakeB2FrictionJointDef()
	jd.BodyB = puck.GetHandle()
	jd.LocalAnchorB = puck.GetLocalCenter()
	jd.MaxForce = 10.0 * puck.GetMass()
	jd.MaxTorque = 1.0

	if _, err := world.CreateJoint(&jd); err != nil {
		t.Fatalf("joint: %v", err)
	}

	// Decelerating at 10 m/s^2 the puck stops after half a second.
	stepN(world, 15)
	if v := puck.GetLinearVelocity().X; v <= 0.0 || v >= 5.0 {
		t.Errorf("mid-slide velocity = %g", v)
	}

	stepN(world, 45)
	if v := puck.GetLinearVelocity(); v.Length() > 1e-9 {
		t.Errorf("puck still sliding at %v", v)
	}
}

func TestJointSuppressesConnectedCollision(t *testing.T) {
	for _, collide := range []bool{false, true} {
		world := box2d.NewB2World(box2d.MakeB2Vec2(0, 0))

		a := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 0)
		addBox(t, a, 0.5, 0.5, 1.0)
		b := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0.75, 0)
		addBox(t, b, 0.5, 0.5, 1.0)

		jd := box2d.MakeB2RevoluteJointDef()
		jd.Initialize(a, b, box2d.MakeB2Vec2(0.375, 0))
		jd.CollideConnected = collide
		if _, err := world.CreateJoint(&jd); err != nil {
			t.Fatalf("joint: %v", err)
		}

		world.Step(timeStep, velocityIterations, positionIterations)

		want := 0
		if collide {
			want = 1
		}
		if n := world.GetContactCount(); n != want {
			t.Errorf("collideConnected=%t: contacts = %d, want %d", collide, n, want)
		}
	}
}
