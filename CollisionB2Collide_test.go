package box2d_test

import (
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"

	box2d "github.com/Genbox/VelcroPhysics-sub012"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func nearVec(a, b box2d.B2Vec2, tol float64) bool {
	return near(a.X, b.X, tol) && near(a.Y, b.Y, tol)
}

func at(x, y float64) box2d.B2Transform {
	return box2d.MakeB2TransformByPositionAndAngle(box2d.MakeB2Vec2(x, y), 0.0)
}

func mustCircle(t *testing.T, radius float64) *box2d.B2CircleShape {
	t.Helper()
	c, err := box2d.NewB2CircleShape(radius, 1.0)
	if err != nil {
		t.Fatalf("circle: %v", err)
	}
	return c
}

func mustBox(t *testing.T, hx, hy float64) *box2d.B2PolygonShape {
	t.Helper()
	p, err := box2d.NewB2BoxShape(hx, hy, 1.0)
	if err != nil {
		t.Fatalf("box: %v", err)
	}
	return p
}

func worldManifold(m *box2d.B2Manifold, xfA box2d.B2Transform, rA float64, xfB box2d.B2Transform, rB float64) box2d.B2WorldManifold {
	return box2d.B2ComputeWorldManifold(m, xfA, rA, xfB, rB)
}

func TestCollideCirclesSeparation(t *testing.T) {
	a := mustCircle(t, 1.0)
	b := mustCircle(t, 1.0)

	cases := []struct {
		name   string
		x      float64
		points int
		sep    float64
	}{
		{"apart", 2.5, 0, 0},
		{"touching", 2.0, 1, 0.0},
		{"overlapping", 1.5, 1, -0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var m box2d.B2Manifold
			box2d.B2CollideCircles(&m, a, at(0, 0), b, at(tc.x, 0))

			if m.PointCount != tc.points {
				t.Fatalf("point count = %d, want %d\n%s", m.PointCount, tc.points, spew.Sdump(m))
			}
			if tc.points == 0 {
				return
			}

			if m.Type != box2d.B2Manifold_Type.E_circles {
				t.Errorf("manifold type = %d, want circles", m.Type)
			}
			if m.Points[0].Id.Key() != 0 {
				t.Errorf("contact id key = %d, want 0", m.Points[0].Id.Key())
			}

			wm := worldManifold(&m, at(0, 0), a.GetRadius(), at(tc.x, 0), b.GetRadius())
			if !nearVec(wm.Normal, box2d.MakeB2Vec2(1, 0), 1e-12) {
				t.Errorf("normal = %v, want (1, 0)", wm.Normal)
			}
			if !near(wm.Separations[0], tc.sep, 1e-12) {
				t.Errorf("separation = %g, want %g", wm.Separations[0], tc.sep)
			}
		})
	}
}

func TestCollideCirclesSwapSymmetry(t *testing.T) {
	a := mustCircle(t, 1.0)
	b := mustCircle(t, 0.5)
	xfA := at(0.3, -0.2)
	xfB := at(1.2, 0.4)

	var ab, ba box2d.B2Manifold
	box2d.B2CollideCircles(&ab, a, xfA, b, xfB)
	box2d.B2CollideCircles(&ba, b, xfB, a, xfA)

	if ab.PointCount != 1 || ba.PointCount != 1 {
		t.Fatalf("expected one point each way\n%s%s", spew.Sdump(ab), spew.Sdump(ba))
	}

	wmAB := worldManifold(&ab, xfA, a.GetRadius(), xfB, b.GetRadius())
	wmBA := worldManifold(&ba, xfB, b.GetRadius(), xfA, a.GetRadius())

	if !nearVec(wmAB.Normal, wmBA.Normal.OperatorNegate(), 1e-12) {
		t.Errorf("normals %v and %v are not opposite", wmAB.Normal, wmBA.Normal)
	}
	if !near(wmAB.Separations[0], wmBA.Separations[0], 1e-12) {
		t.Errorf("separations differ: %g vs %g", wmAB.Separations[0], wmBA.Separations[0])
	}
	if !nearVec(wmAB.Points[0], wmBA.Points[0], 1e-12) {
		t.Errorf("points differ: %v vs %v", wmAB.Points[0], wmBA.Points[0])
	}
}

func TestCollidePolygonsSwapSymmetry(t *testing.T) {
	// A tilted box resting into a wide one. A's top face is clearly the
	// reference face either way, so no tie is left to the face bias.
	a := mustBox(t, 2.0, 0.5)
	b := mustBox(t, 0.5, 0.5)
	xfA := at(0, 0)
	xfB := box2d.MakeB2TransformByPositionAndAngle(box2d.MakeB2Vec2(0.3, 0.85), 0.2)

	var ab, ba box2d.B2Manifold
	box2d.B2CollidePolygons(&ab, a, xfA, b, xfB)
	box2d.B2CollidePolygons(&ba, b, xfB, a, xfA)

	if ab.PointCount != 2 || ba.PointCount != 2 {
		t.Fatalf("expected two points each way\n%s%s", spew.Sdump(ab), spew.Sdump(ba))
	}
	if ab.Type != box2d.B2Manifold_Type.E_faceA || ba.Type != box2d.B2Manifold_Type.E_faceB {
		t.Errorf("manifold types = %d, %d, want faceA, faceB", ab.Type, ba.Type)
	}

	wmAB := worldManifold(&ab, xfA, a.GetRadius(), xfB, b.GetRadius())
	wmBA := worldManifold(&ba, xfB, b.GetRadius(), xfA, a.GetRadius())

	if !nearVec(wmAB.Normal, wmBA.Normal.OperatorNegate(), 1e-12) {
		t.Errorf("normals %v and %v are not opposite", wmAB.Normal, wmBA.Normal)
	}

	for i := 0; i < ab.PointCount; i++ {
		if !nearVec(wmAB.Points[i], wmBA.Points[i], 1e-12) {
			t.Errorf("point %d differs: %v vs %v", i, wmAB.Points[i], wmBA.Points[i])
		}
		if !near(wmAB.Separations[i], wmBA.Separations[i], 1e-12) {
			t.Errorf("separation %d differs: %g vs %g", i, wmAB.Separations[i], wmBA.Separations[i])
		}
		if got, want := ba.Points[i].Id, ab.Points[i].Id.Swapped(); got != want {
			t.Errorf("id %d = %+v, want swapped %+v", i, got, want)
		}
	}
}

func TestCollidePolygonAndCircleBoundary(t *testing.T) {
	box := mustBox(t, 5.0, 5.0)
	circle := mustCircle(t, 1.0)
	xfBox := at(10, 0)

	var m box2d.B2Manifold
	box2d.B2CollidePolygonAndCircle(&m, box, xfBox, circle, at(0, 0))
	if m.PointCount != 0 {
		t.Fatalf("separated circle produced points\n%s", spew.Sdump(m))
	}

	box2d.B2CollidePolygonAndCircle(&m, box, xfBox, circle, at(5.5, 0))
	if m.PointCount != 1 {
		t.Fatalf("point count = %d, want 1\n%s", m.PointCount, spew.Sdump(m))
	}
	if m.Type != box2d.B2Manifold_Type.E_faceA {
		t.Errorf("manifold type = %d, want faceA", m.Type)
	}

	wm := worldManifold(&m, xfBox, box.GetRadius(), at(5.5, 0), circle.GetRadius())
	if !nearVec(wm.Normal, box2d.MakeB2Vec2(-1, 0), 1e-12) {
		t.Errorf("normal = %v, want (-1, 0)", wm.Normal)
	}
	if wm.Separations[0] >= 0.0 {
		t.Errorf("separation = %g, want penetration", wm.Separations[0])
	}
}

func TestCollideShapesDispatch(t *testing.T) {
	box := mustBox(t, 1.0, 1.0)
	circle := mustCircle(t, 0.5)
	tol := box2d.MakeB2CollisionTolerance()

	var m box2d.B2Manifold
	if !box2d.B2CollideShapes(&m, box, at(0, 0), 0, circle, at(0, 1.4), 0, tol) {
		t.Fatal("polygon versus circle is supported")
	}
	if m.PointCount != 1 {
		t.Fatalf("point count = %d, want 1\n%s", m.PointCount, spew.Sdump(m))
	}

	if box2d.B2CollideShapes(&m, circle, at(0, 1.4), 0, box, at(0, 0), 0, tol) {
		t.Error("circle versus polygon is out of canonical order")
	}
	if m.PointCount != 0 {
		t.Errorf("rejected pair left %d points", m.PointCount)
	}

	swap, ok := box2d.B2CanonicalOrder(box2d.B2Shape_Type.E_circle, box2d.B2Shape_Type.E_polygon)
	if !ok || !swap {
		t.Errorf("circle/polygon: swap=%t ok=%t, want swap", swap, ok)
	}

	swap, ok = box2d.B2CanonicalOrder(box2d.B2Shape_Type.E_edge, box2d.B2Shape_Type.E_circle)
	if !ok || swap {
		t.Errorf("edge/circle: swap=%t ok=%t, want in order", swap, ok)
	}

	if _, ok := box2d.B2CanonicalOrder(box2d.B2Shape_Type.E_edge, box2d.B2Shape_Type.E_chain); ok {
		t.Error("edge/chain must be unsupported")
	}
}

func TestCollidePolygonsContactIDStability(t *testing.T) {
	ground := mustBox(t, 2.0, 0.5)
	block := mustBox(t, 0.5, 0.5)

	var m1, m2 box2d.B2Manifold
	box2d.B2CollidePolygons(&m1, ground, at(0, 0), block, at(0, 0.99))
	box2d.B2CollidePolygons(&m2, ground, at(0, 0), block, at(0.01, 0.99))

	if m1.PointCount != 2 || m2.PointCount != 2 {
		t.Fatalf("expected two points\n%s%s", spew.Sdump(m1), spew.Sdump(m2))
	}

	for i := 0; i < m1.PointCount; i++ {
		if m2.FindPoint(m1.Points[i].Id) < 0 {
			t.Errorf("id %v lost after a small slide\n%s%s", m1.Points[i].Id, spew.Sdump(m1), spew.Sdump(m2))
		}
	}

	_, state2 := box2d.B2GetPointStates(m1, m2)
	for i := 0; i < m2.PointCount; i++ {
		if state2[i] != box2d.B2PointState.B2_persistState {
			t.Errorf("point %d state = %d, want persist", i, state2[i])
		}
	}

	if m1.Points[0].Id.Key() == m1.Points[1].Id.Key() {
		t.Errorf("the two points share key %d", m1.Points[0].Id.Key())
	}
}

func oneSidedGround(t *testing.T) *box2d.B2EdgeShape {
	t.Helper()

	// Right to left so the front normal points up.
	edge, err := box2d.NewB2OneSidedEdgeShape(
		box2d.MakeB2Vec2(2, 0),
		box2d.MakeB2Vec2(1, 0),
		box2d.MakeB2Vec2(-1, 0),
		box2d.MakeB2Vec2(-2, 0),
	)
	if err != nil {
		t.Fatalf("edge: %v", err)
	}
	return edge
}

func TestCollideOneSidedEdge(t *testing.T) {
	edge := oneSidedGround(t)
	if !edge.IsOneSided() {
		t.Fatal("edge should be one-sided")
	}
	if !nearVec(edge.GetNormal(), box2d.MakeB2Vec2(0, 1), 1e-12) {
		t.Fatalf("front normal = %v, want (0, 1)", edge.GetNormal())
	}

	block := mustBox(t, 0.5, 0.5)
	circle := mustCircle(t, 0.5)

	t.Run("polygon front", func(t *testing.T) {
		var m box2d.B2Manifold
		box2d.B2CollideEdgeAndPolygon(&m, edge, at(0, 0), block, at(0, 0.49))
		if m.PointCount == 0 {
			t.Fatalf("no manifold from the front\n%s", spew.Sdump(m))
		}
	})

	t.Run("polygon back", func(t *testing.T) {
		var m box2d.B2Manifold
		box2d.B2CollideEdgeAndPolygon(&m, edge, at(0, 0), block, at(0, -0.49))
		if m.PointCount != 0 {
			t.Fatalf("manifold from the back\n%s", spew.Sdump(m))
		}
	})

	t.Run("circle front", func(t *testing.T) {
		var m box2d.B2Manifold
		box2d.B2CollideEdgeAndCircle(&m, edge, at(0, 0), circle, at(0, 0.4))
		if m.PointCount != 1 {
			t.Fatalf("point count = %d, want 1\n%s", m.PointCount, spew.Sdump(m))
		}
		wm := worldManifold(&m, at(0, 0), edge.GetRadius(), at(0, 0.4), circle.GetRadius())
		if !nearVec(wm.Normal, box2d.MakeB2Vec2(0, 1), 1e-12) {
			t.Errorf("normal = %v, want (0, 1)", wm.Normal)
		}
	})

	t.Run("circle back", func(t *testing.T) {
		var m box2d.B2Manifold
		box2d.B2CollideEdgeAndCircle(&m, edge, at(0, 0), circle, at(0, -0.4))
		if m.PointCount != 0 {
			t.Fatalf("manifold from the back\n%s", spew.Sdump(m))
		}
	})
}

func TestCollideTwoSidedEdgeBothSides(t *testing.T) {
	edge, err := box2d.NewB2EdgeShape(box2d.MakeB2Vec2(1, 0), box2d.MakeB2Vec2(-1, 0))
	if err != nil {
		t.Fatalf("edge: %v", err)
	}
	circle := mustCircle(t, 0.5)

	for _, y := range []float64{0.4, -0.4} {
		var m box2d.B2Manifold
		box2d.B2CollideEdgeAndCircle(&m, edge, at(0, 0), circle, at(0, y))
		if m.PointCount != 1 {
			t.Errorf("y=%g: point count = %d, want 1", y, m.PointCount)
			continue
		}

		wm := worldManifold(&m, at(0, 0), edge.GetRadius(), at(0, y), circle.GetRadius())
		if !nearVec(wm.Normal, box2d.MakeB2Vec2(0, math.Copysign(1, y)), 1e-12) {
			t.Errorf("y=%g: normal = %v", y, wm.Normal)
		}
	}
}

func TestCollideChainChildren(t *testing.T) {
	chain, err := box2d.NewB2ChainShape([]box2d.B2Vec2{
		box2d.MakeB2Vec2(-4, 0),
		box2d.MakeB2Vec2(0, 0),
		box2d.MakeB2Vec2(4, 0),
	}, false)
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if chain.GetChildCount() != 2 {
		t.Fatalf("child count = %d, want 2", chain.GetChildCount())
	}

	circle := mustCircle(t, 0.5)
	tol := box2d.MakeB2CollisionTolerance()

	// The circle rests over the second child only.
	var m box2d.B2Manifold
	box2d.B2CollideShapes(&m, chain, at(0, 0), 0, circle, at(2, 0.4), 0, tol)
	if m.PointCount != 0 {
		t.Errorf("child 0 touched a circle above child 1\n%s", spew.Sdump(m))
	}

	box2d.B2CollideShapes(&m, chain, at(0, 0), 1, circle, at(2, 0.4), 0, tol)
	if m.PointCount != 1 {
		t.Errorf("child 1: point count = %d, want 1\n%s", m.PointCount, spew.Sdump(m))
	}
}
