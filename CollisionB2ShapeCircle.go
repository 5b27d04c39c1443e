package box2d

import (
	"math"
)

/// A solid circle shape.
type B2CircleShape struct {
	B2ShapeBase

	/// Position
	M_p B2Vec2
}

/// Build a circle centered on the local origin.
func NewB2CircleShape(radius, density float64) (*B2CircleShape, error) {
	return NewB2CircleShapeAt(MakeB2Vec2(0, 0), radius, density)
}

/// Build a circle centered on a local position.
func NewB2CircleShapeAt(position B2Vec2, radius, density float64) (*B2CircleShape, error) {
	shape := &B2CircleShape{
		B2ShapeBase: B2ShapeBase{
			M_type:    B2Shape_Type.E_circle,
			M_density: density,
		},
		M_p: position,
	}

	if err := shape.SetRadius(radius); err != nil {
		return nil, err
	}

	return shape, nil
}

/// Set the radius and recompute the mass data.
func (shape *B2CircleShape) SetRadius(radius float64) error {
	if !(radius > 0.0) || !B2IsValid(radius) {
		return newDegenerateShapeError("circle", "radius %g must be positive", radius)
	}

	shape.M_radius = radius
	shape.M_massData = shape.ComputeMass(shape.M_density)
	return nil
}

/// Move the circle center and recompute the mass data.
func (shape *B2CircleShape) SetPosition(position B2Vec2) {
	shape.M_p = position
	shape.M_massData = shape.ComputeMass(shape.M_density)
}

func (shape B2CircleShape) GetChildCount() int {
	return 1
}

func (shape B2CircleShape) TestPoint(transform B2Transform, p B2Vec2) bool {
	center := B2Vec2Add(transform.P, B2RotVec2Mul(transform.Q, shape.M_p))
	d := B2Vec2Sub(p, center)
	return B2Vec2Dot(d, d) <= shape.M_radius*shape.M_radius
}

// Collision Detection in Interactive 3D Environments by Gino van den Bergen
// From Section 3.1.2
// x = s + a * r
// norm(x) = radius
func (shape B2CircleShape) RayCast(input B2RayCastInput, transform B2Transform, childIndex int) (B2RayCastOutput, bool) {
	var output B2RayCastOutput

	position := B2Vec2Add(transform.P, B2RotVec2Mul(transform.Q, shape.M_p))
	s := B2Vec2Sub(input.P1, position)
	b := B2Vec2Dot(s, s) - shape.M_radius*shape.M_radius

	// Solve quadratic equation.
	r := B2Vec2Sub(input.P2, input.P1)
	c := B2Vec2Dot(s, r)
	rr := B2Vec2Dot(r, r)
	sigma := c*c - rr*b

	// Check for negative discriminant and short segment.
	if sigma < 0.0 || rr < B2_epsilon {
		return output, false
	}

	// Find the point of intersection of the line with the circle.
	a := -(c + math.Sqrt(sigma))

	// Is the intersection point on the segment?
	if 0.0 <= a && a <= input.MaxFraction*rr {
		a /= rr
		output.Fraction = a
		output.Normal = B2Vec2Add(s, B2Vec2MulScalar(a, r))
		output.Normal.Normalize()
		return output, true
	}

	return output, false
}

func (shape B2CircleShape) ComputeAABB(transform B2Transform, childIndex int) B2AABB {
	p := B2Vec2Add(transform.P, B2RotVec2Mul(transform.Q, shape.M_p))
	return B2AABB{
		LowerBound: MakeB2Vec2(p.X-shape.M_radius, p.Y-shape.M_radius),
		UpperBound: MakeB2Vec2(p.X+shape.M_radius, p.Y+shape.M_radius),
	}
}

func (shape B2CircleShape) ComputeMass(density float64) B2MassData {
	massData := MakeMassData()
	massData.Area = B2_pi * shape.M_radius * shape.M_radius
	massData.Mass = density * massData.Area
	massData.Center = shape.M_p

	// inertia about the local origin
	massData.I = massData.Mass * (0.5*shape.M_radius*shape.M_radius + B2Vec2Dot(shape.M_p, shape.M_p))
	return massData
}
