package box2d_test

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	box2d "github.com/Genbox/VelcroPhysics-sub012"
)

// The character test bed: static edges, chains and tiles with a few
// fixed-rotation characters dropped onto them.
func buildCharacterScene(t *testing.T) (*box2d.B2World, map[string]*box2d.B2Body) {
	t.Helper()

	world := box2d.NewB2World(box2d.MakeB2Vec2(0.0, -10.0))
	characters := make(map[string]*box2d.B2Body)

	static := func(name string, position box2d.B2Vec2, angle float64, shapes ...box2d.B2Shape) {
		bd := box2d.MakeB2BodyDef()
		bd.Position = position
		bd.Angle = angle
		body, err := world.CreateBody(&bd)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for _, shape := range shapes {
			if _, err := body.CreateFixtureFromShape(shape); err != nil {
				t.Fatalf("%s: %v", name, err)
			}
		}
		characters[name] = body
	}

	character := func(name string, position box2d.B2Vec2, fixedRotation bool, shape box2d.B2Shape, friction float64) {
		bd := box2d.MakeB2BodyDef()
		bd.Type = box2d.B2BodyType.B2_dynamicBody
		bd.Position = position
		bd.FixedRotation = fixedRotation
		bd.AllowSleep = false
		body, err := world.CreateBody(&bd)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}

		fd := box2d.MakeB2FixtureDef(shape)
		fd.Friction = friction
		if _, err := body.CreateFixture(&fd); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		characters[name] = body
	}

	edge := func(x1, y1, x2, y2 float64) box2d.B2Shape {
		e, err := box2d.NewB2EdgeShape(box2d.MakeB2Vec2(x1, y1), box2d.MakeB2Vec2(x2, y2))
		if err != nil {
			t.Fatal(err)
		}
		return e
	}
	chain := func(loop bool, xy ...float64) box2d.B2Shape {
		c, err := box2d.NewB2ChainShape(vecs(xy...), loop)
		if err != nil {
			t.Fatal(err)
		}
		return c
	}
	tile := func(x, y float64) box2d.B2Shape {
		p, err := box2d.NewB2OrientedBoxShape(1.0, 1.0, box2d.MakeB2Vec2(x, y), 0.0, 0.0)
		if err != nil {
			t.Fatal(err)
		}
		return p
	}

	origin := box2d.MakeB2Vec2(0, 0)

	static("00_ground", origin, 0, edge(-20, 0, 20, 0))

	// Collinear edges without adjacency let a box catch on inner vertices.
	static("01_colinearground", origin, 0,
		edge(-8, 1, -6, 1), edge(-6, 1, -4, 1), edge(-4, 1, -2, 1))

	static("02_chainshape", origin, 0.25*box2d.B2_pi,
		chain(false, 5, 7, 6, 8, 7, 8, 8, 7))

	static("03_squaretiles", origin, 0, tile(4, 3), tile(6, 3), tile(8, 3))

	static("04_edgeloopsquare", origin, 0,
		chain(true, -1, 3, 1, 3, 1, 5, -1, 5))

	static("05_edgelooppoly", box2d.MakeB2Vec2(-10, 4), 0,
		chain(true, 0, 0, 6, 0, 6, 2, 4, 1, 2, 2, 0, 2, -2, 2, -4, 3, -6, 2, -6, 0))

	square1, err := box2d.NewB2BoxShape(0.5, 0.5, 20.0)
	if err != nil {
		t.Fatal(err)
	}
	character("06_squarecharacter1", box2d.MakeB2Vec2(-3, 8), true, square1, 0.2)

	square2, err := box2d.NewB2BoxShape(0.25, 0.25, 20.0)
	if err != nil {
		t.Fatal(err)
	}
	character("07_squarecharacter2", box2d.MakeB2Vec2(-5, 5), true, square2, 0.2)

	hexVertices := make([]box2d.B2Vec2, 6)
	for i := range hexVertices {
		angle := float64(i) * box2d.B2_pi / 3.0
		hexVertices[i] = box2d.MakeB2Vec2(0.5*math.Cos(angle), 0.5*math.Sin(angle))
	}
	hexagon, err := box2d.NewB2PolygonShape(hexVertices, 20.0)
	if err != nil {
		t.Fatal(err)
	}
	character("08_hexagoncharacter", box2d.MakeB2Vec2(-5, 8), true, hexagon, 0.2)

	circle1, err := box2d.NewB2CircleShape(0.5, 20.0)
	if err != nil {
		t.Fatal(err)
	}
	character("09_circlecharacter1", box2d.MakeB2Vec2(3, 5), true, circle1, 0.2)

	circle2, err := box2d.NewB2CircleShape(0.25, 20.0)
	if err != nil {
		t.Fatal(err)
	}
	character("10_circlecharacter2", box2d.MakeB2Vec2(-7, 6), false, circle2, 1.0)

	return world, characters
}

func traceCharacterScene(t *testing.T) string {
	world, characters := buildCharacterScene(t)

	names := make([]string, 0, len(characters))
	for name := range characters {
		names = append(names, name)
	}
	sort.Strings(names)

	var out strings.Builder
	for i := 0; i < 60; i++ {
		world.Step(timeStep, velocityIterations, positionIterations)

		for _, name := range names {
			body := characters[name]
			p := body.GetPosition()
			fmt.Fprintf(&out, "%v(%s): %4.3f %4.3f %4.3f\n", i, name, p.X, p.Y, body.GetAngle())
		}
	}

	return out.String()
}

func TestStepIsDeterministic(t *testing.T) {
	first := traceCharacterScene(t)
	second := traceCharacterScene(t)

	if first == "" {
		t.Fatal("empty trace")
	}

	if first != second {
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(first),
			B:        difflib.SplitLines(second),
			FromFile: "First",
			ToFile:   "Second",
			Context:  0,
		}
		text, _ := difflib.GetUnifiedDiffString(diff)
		t.Fatalf("replaying the same scene diverged:\n%s", text)
	}
}

func TestCharacterSceneFalls(t *testing.T) {
	world, characters := buildCharacterScene(t)

	start := characters["06_squarecharacter1"].GetPosition()
	for i := 0; i < 60; i++ {
		world.Step(timeStep, velocityIterations, positionIterations)
	}

	if got := characters["00_ground"].GetPosition(); got != box2d.MakeB2Vec2(0, 0) {
		t.Errorf("static ground moved to %v", got)
	}

	end := characters["06_squarecharacter1"].GetPosition()
	if end.Y >= start.Y {
		t.Errorf("square character did not fall: %v -> %v", start, end)
	}
	if end.Y < 0.5-2*box2d.B2_linearSlop {
		t.Errorf("square character fell through the ground: %v", end)
	}
	if a := characters["06_squarecharacter1"].GetAngle(); a != 0 {
		t.Errorf("fixed rotation character turned to %g", a)
	}
}
