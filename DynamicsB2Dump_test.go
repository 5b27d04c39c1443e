package box2d_test

import (
	"fmt"
	"strings"
	"testing"

	box2d "github.com/Genbox/VelcroPhysics-sub012"
)

func captureLog(t *testing.T) *strings.Builder {
	t.Helper()

	var out strings.Builder
	saved := box2d.B2Log
	box2d.B2Log = func(format string, args ...interface{}) {
		fmt.Fprintf(&out, format, args...)
	}
	t.Cleanup(func() { box2d.B2Log = saved })

	return &out
}

func TestDumpEmitsGoSource(t *testing.T) {
	out := captureLog(t)

	world := box2d.NewB2World(box2d.MakeB2Vec2(0, -10))

	ground := newBody(t, world, box2d.B2BodyType.B2_staticBody, 0, 0)
	loop, err := box2d.NewB2ChainShape(vecs(-5, 0, 5, 0, 5, 5, -5, 5), true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ground.CreateFixtureFromShape(loop); err != nil {
		t.Fatal(err)
	}

	ball := newBody(t, world, box2d.B2BodyType.B2_dynamicBody, 0, 2)
	circle, err := box2d.NewB2CircleShape(0.5, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ball.CreateFixtureFromShape(circle); err != nil {
		t.Fatal(err)
	}

	jd := box2d.MakeB2RevoluteJointDef()
	jd.Initialize(ground, ball, box2d.MakeB2Vec2(0, 3))
	if _, err := world.CreateJoint(&jd); err != nil {
		t.Fatal(err)
	}

	world.Dump()
	dump := out.String()

	for _, want := range []string{
		"world := box2d.NewB2World(box2d.MakeB2Vec2(0.000000000000000e+00, -1.000000000000000e+01))\n",
		"bodies := make([]*box2d.B2Body, 2)\n",
		"joints := make([]box2d.B2Joint, 1)\n",
		"bodies[0], _ = world.CreateBody(&bd)\n",
		"bodies[1], _ = world.CreateBody(&bd)\n",
		"shape, _ := box2d.NewB2ChainShape(vs, true)\n",
		"shape, _ := box2d.NewB2CircleShapeAt(",
		"jd := box2d.MakeB2RevoluteJointDef()\n",
		"jd.BodyA = bodies[0].GetHandle()\n",
		"jd.BodyB = bodies[1].GetHandle()\n",
		"joints[0], _ = world.CreateJoint(&jd)\n",
	} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump is missing %q\n%s", want, dump)
		}
	}

	// The loop's closing vertex is not repeated.
	if got := strings.Count(dump, "),\n"); got != 4 {
		t.Errorf("dumped %d chain vertices, want 4", got)
	}

	if open, closed := strings.Count(dump, "{\n"), strings.Count(dump, "}\n"); open != closed {
		t.Errorf("unbalanced blocks: %d opened, %d closed", open, closed)
	}
}
