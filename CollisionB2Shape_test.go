package box2d_test

import (
	"errors"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"

	box2d "github.com/Genbox/VelcroPhysics-sub012"
)

func vecs(xy ...float64) []box2d.B2Vec2 {
	out := make([]box2d.B2Vec2, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, box2d.MakeB2Vec2(xy[i], xy[i+1]))
	}
	return out
}

func TestPolygonHullOrder(t *testing.T) {
	// A square given clockwise with an interior point.
	poly, err := box2d.NewB2PolygonShape(vecs(1, 1, -1, 1, -1, -1, 1, -1, 0, 0), 1.0)
	if err != nil {
		t.Fatalf("polygon: %v", err)
	}

	want := vecs(1, -1, 1, 1, -1, 1, -1, -1)
	got := poly.GetVertices()
	if len(got) != len(want) {
		t.Fatalf("hull has %d vertices, want %d\n%s", len(got), len(want), spew.Sdump(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("hull = %v, want %v", got, want)
		}
	}

	if !poly.Validate() {
		t.Error("hull is not convex")
	}
}

func TestPolygonHullFromPointCloud(t *testing.T) {
	// An octagon plus interior points: more input points than a polygon may
	// hold, but the hull fits.
	var vs []box2d.B2Vec2
	for i := 0; i < box2d.B2_maxPolygonVertices; i++ {
		a := 2 * math.Pi * float64(i) / float64(box2d.B2_maxPolygonVertices)
		vs = append(vs, box2d.MakeB2Vec2(2*math.Cos(a), 2*math.Sin(a)))
	}
	vs = append(vs, vecs(0, 0, 0.5, 0.5, -0.5, 0.25, 0.1, -0.7)...)

	poly, err := box2d.NewB2PolygonShape(vs, 1.0)
	if err != nil {
		t.Fatalf("polygon from %d points: %v", len(vs), err)
	}
	if got := len(poly.GetVertices()); got != box2d.B2_maxPolygonVertices {
		t.Errorf("hull has %d vertices, want %d\n%s", got, box2d.B2_maxPolygonVertices, spew.Sdump(poly.GetVertices()))
	}
	if !poly.Validate() {
		t.Error("hull is not convex")
	}
}

func TestPolygonHullIdempotent(t *testing.T) {
	inputs := [][]box2d.B2Vec2{
		vecs(0, 0, 3, 0, 3, 1, 1.5, 2.5, 0, 1),
		vecs(-1, -1, 1, -1, 1, 1, -1, 1),
		vecs(0.2, 0.1, -0.7, 0.4, 0.3, -0.9, 1.1, 0.6, -0.2, 1.3, 0.0, 0.0),
	}

	for i, vs := range inputs {
		first, err := box2d.NewB2PolygonShape(vs, 1.0)
		if err != nil {
			t.Fatalf("input %d: %v", i, err)
		}

		second, err := box2d.NewB2PolygonShape(first.GetVertices(), 1.0)
		if err != nil {
			t.Fatalf("input %d rebuilt: %v", i, err)
		}

		a, b := first.GetVertices(), second.GetVertices()
		if len(a) != len(b) {
			t.Fatalf("input %d: %d vertices then %d", i, len(a), len(b))
		}
		for j := range a {
			if a[j] != b[j] {
				t.Fatalf("input %d: hull changed on rebuild\n%s%s", i, spew.Sdump(a), spew.Sdump(b))
			}
		}
	}
}

func TestDegenerateShapes(t *testing.T) {
	cases := []struct {
		name  string
		shape string
		build func() error
	}{
		{"too many hull vertices", "polygon", func() error {
			vs := make([]box2d.B2Vec2, box2d.B2_maxPolygonVertices+1)
			for i := range vs {
				a := 2 * math.Pi * float64(i) / float64(len(vs))
				vs[i] = box2d.MakeB2Vec2(math.Cos(a), math.Sin(a))
			}
			_, err := box2d.NewB2PolygonShape(vs, 1.0)
			return err
		}},
		{"collinear", "polygon", func() error {
			_, err := box2d.NewB2PolygonShape(vecs(0, 0, 1, 0, 2, 0), 1.0)
			return err
		}},
		{"welded", "polygon", func() error {
			_, err := box2d.NewB2PolygonShape(vecs(0, 0, 0.001, 0, 1, 1), 1.0)
			return err
		}},
		{"thin box", "polygon", func() error {
			_, err := box2d.NewB2BoxShape(1.0, 0.001, 1.0)
			return err
		}},
		{"zero radius", "circle", func() error {
			_, err := box2d.NewB2CircleShape(0.0, 1.0)
			return err
		}},
		{"nan radius", "circle", func() error {
			_, err := box2d.NewB2CircleShape(math.NaN(), 1.0)
			return err
		}},
		{"zero length edge", "edge", func() error {
			_, err := box2d.NewB2EdgeShape(box2d.MakeB2Vec2(1, 1), box2d.MakeB2Vec2(1, 1))
			return err
		}},
		{"short chain", "chain", func() error {
			_, err := box2d.NewB2ChainShape(vecs(0, 0, 1, 0), true)
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.build()
			if !errors.Is(err, box2d.ErrDegenerateShape) {
				t.Fatalf("err = %v, want ErrDegenerateShape", err)
			}

			var dse *box2d.DegenerateShapeError
			if !errors.As(err, &dse) {
				t.Fatalf("err = %T, want *DegenerateShapeError", err)
			}
			if dse.Shape != tc.shape {
				t.Errorf("shape = %q, want %q", dse.Shape, tc.shape)
			}
		})
	}
}

func TestShapeMass(t *testing.T) {
	box, err := box2d.NewB2BoxShape(1.0, 0.5, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	md := box.GetMassData()
	if !near(md.Mass, 4.0, 1e-12) {
		t.Errorf("box mass = %g, want 4", md.Mass)
	}
	if !nearVec(md.Center, box2d.MakeB2Vec2(0, 0), 1e-12) {
		t.Errorf("box center = %v", md.Center)
	}

	circle, err := box2d.NewB2CircleShapeAt(box2d.MakeB2Vec2(1, 0), 0.5, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	md = circle.GetMassData()
	if !near(md.Mass, math.Pi*0.25, 1e-12) {
		t.Errorf("circle mass = %g, want %g", md.Mass, math.Pi*0.25)
	}
	if !nearVec(md.Center, box2d.MakeB2Vec2(1, 0), 1e-12) {
		t.Errorf("circle center = %v", md.Center)
	}
}

func TestShapeTestPointAndRayCast(t *testing.T) {
	box := mustBox(t, 1.0, 1.0)
	xf := at(2, 0)

	if !box.TestPoint(xf, box2d.MakeB2Vec2(2.5, 0.5)) {
		t.Error("point inside the box was missed")
	}
	if box.TestPoint(xf, box2d.MakeB2Vec2(0.5, 0)) {
		t.Error("point outside the box was reported inside")
	}

	input := box2d.MakeB2RayCastInput(box2d.MakeB2Vec2(-2, 0), box2d.MakeB2Vec2(4, 0), 1.0)
	out, hit := box.RayCast(input, xf, 0)
	if !hit {
		t.Fatal("ray missed the box")
	}
	if !near(out.Fraction, 0.5, 1e-12) {
		t.Errorf("fraction = %g, want 0.5", out.Fraction)
	}
	if !nearVec(out.Normal, box2d.MakeB2Vec2(-1, 0), 1e-12) {
		t.Errorf("normal = %v, want (-1, 0)", out.Normal)
	}
}
