package box2d_test

import (
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"

	box2d "github.com/Genbox/VelcroPhysics-sub012"
)

func TestMatrixSolveSmallEntries(t *testing.T) {
	// Effective mass of a 1.6e6 kg body: determinant around 1e-21.
	const m, i = 6.25e-7, 2.3e-9

	K := box2d.MakeB2Mat33FromColumns(
		box2d.MakeB2Vec3(m, 0, 0),
		box2d.MakeB2Vec3(0, m, 0.5*i),
		box2d.MakeB2Vec3(0, 0.5*i, i),
	)
	b := box2d.MakeB2Vec3(1e-7, -2e-7, 3e-9)

	x := K.Solve33(b)
	back := box2d.B2Vec3Mat33Mul(K, x)
	if d := box2d.B2Vec3Sub(back, b); math.Abs(d.X) > 1e-18 || math.Abs(d.Y) > 1e-18 || math.Abs(d.Z) > 1e-18 {
		t.Errorf("Solve33 residual %v\nx = %s", d, spew.Sdump(x))
	}

	var inv box2d.B2Mat33
	K.GetSymInverse33(&inv)
	if inv.Ez.Z == 0 {
		t.Errorf("GetSymInverse33 zeroed a regular matrix: %s", spew.Sdump(inv))
	}

	K2 := box2d.MakeB2Mat22FromColumns(box2d.MakeB2Vec2(m, 1e-8), box2d.MakeB2Vec2(1e-8, m))
	x2 := K2.Solve(box2d.MakeB2Vec2(1e-7, 0))
	if got := box2d.B2Vec2Mat22Mul(K2, x2); math.Abs(got.X-1e-7) > 1e-18 || math.Abs(got.Y) > 1e-18 {
		t.Errorf("Mat22 Solve residual: K*x = %v", got)
	}
}

func TestMatrixSolveSingular(t *testing.T) {
	K := box2d.MakeB2Mat22FromColumns(box2d.MakeB2Vec2(1, 2), box2d.MakeB2Vec2(2, 4))
	if got := K.GetInverse(); got != (box2d.B2Mat22{}) {
		t.Errorf("inverse of a singular matrix = %v, want zero", got)
	}

	var zero box2d.B2Mat33
	if got := zero.Solve33(box2d.MakeB2Vec3(1, 1, 1)); got != (box2d.B2Vec3{}) {
		t.Errorf("Solve33 on the zero matrix = %v, want zero", got)
	}
}
