package box2d

/// A convex polygon. It is assumed that the interior of the polygon is to
/// the left of each edge.
/// Polygons have a maximum number of vertices equal to b2_maxPolygonVertices.
/// In most cases you should not need many vertices for a convex polygon.
type B2PolygonShape struct {
	B2ShapeBase

	M_centroid B2Vec2
	M_vertices []B2Vec2
	M_normals  []B2Vec2
	M_count    int
}

/// Build a polygon from a point cloud. The points are welded and wrapped into
/// a convex hull; the result fails with a DegenerateShapeError when fewer than
/// 3 unique hull vertices remain.
func NewB2PolygonShape(vertices []B2Vec2, density float64) (*B2PolygonShape, error) {
	poly := makeB2PolygonShape(density)
	if err := poly.Set(vertices); err != nil {
		return nil, err
	}
	return poly, nil
}

/// Build a box with half-width hx and half-height hy centered on the origin.
func NewB2BoxShape(hx, hy, density float64) (*B2PolygonShape, error) {
	return NewB2OrientedBoxShape(hx, hy, MakeB2Vec2(0, 0), 0.0, density)
}

/// Build an oriented box.
/// @param center the center of the box in local coordinates.
/// @param angle the rotation of the box in local coordinates.
func NewB2OrientedBoxShape(hx, hy float64, center B2Vec2, angle float64, density float64) (*B2PolygonShape, error) {
	poly := makeB2PolygonShape(density)
	if err := poly.SetAsBoxFromCenterAndAngle(hx, hy, center, angle); err != nil {
		return nil, err
	}
	return poly, nil
}

func makeB2PolygonShape(density float64) *B2PolygonShape {
	return &B2PolygonShape{
		B2ShapeBase: B2ShapeBase{
			M_type:    B2Shape_Type.E_polygon,
			M_radius:  B2_polygonRadius,
			M_density: density,
		},
		M_centroid: MakeB2Vec2(0, 0),
	}
}

func (poly *B2PolygonShape) GetVertex(index int) B2Vec2 {
	B2Assert(0 <= index && index < poly.M_count)
	return poly.M_vertices[index]
}

func (poly *B2PolygonShape) GetVertices() []B2Vec2 {
	return poly.M_vertices[:poly.M_count]
}

func (poly *B2PolygonShape) SetAsBox(hx float64, hy float64) error {
	return poly.SetAsBoxFromCenterAndAngle(hx, hy, MakeB2Vec2(0, 0), 0.0)
}

func (poly *B2PolygonShape) SetAsBoxFromCenterAndAngle(hx float64, hy float64, center B2Vec2, angle float64) error {
	if !(hx > B2_linearSlop) || !(hy > B2_linearSlop) {
		return newDegenerateShapeError("polygon", "box half extents (%g, %g) must exceed the linear slop", hx, hy)
	}

	poly.M_count = 4
	poly.M_vertices = []B2Vec2{
		MakeB2Vec2(-hx, -hy),
		MakeB2Vec2(hx, -hy),
		MakeB2Vec2(hx, hy),
		MakeB2Vec2(-hx, hy),
	}
	poly.M_normals = []B2Vec2{
		MakeB2Vec2(0.0, -1.0),
		MakeB2Vec2(1.0, 0.0),
		MakeB2Vec2(0.0, 1.0),
		MakeB2Vec2(-1.0, 0.0),
	}
	poly.M_centroid = center

	xf := MakeB2TransformByPositionAndAngle(center, angle)

	// Transform vertices and normals.
	for i := 0; i < poly.M_count; i++ {
		poly.M_vertices[i] = B2TransformVec2Mul(xf, poly.M_vertices[i])
		poly.M_normals[i] = B2RotVec2Mul(xf.Q, poly.M_normals[i])
	}

	poly.M_massData = poly.ComputeMass(poly.M_density)
	return nil
}

func (poly B2PolygonShape) GetChildCount() int {
	return 1
}

func b2PolygonArea(vs []B2Vec2) float64 {
	area := 0.0
	for i := range vs {
		j := i + 1
		if j == len(vs) {
			j = 0
		}
		area += 0.5 * B2Vec2Cross(vs[i], vs[j])
	}
	return area
}

func ComputeCentroid(vs []B2Vec2, count int) B2Vec2 {
	B2Assert(count >= 3)

	c := MakeB2Vec2(0, 0)
	area := 0.0

	// pRef is the reference point for forming triangles.
	// It's location doesn't change the result (except for rounding error).
	pRef := MakeB2Vec2(0.0, 0.0)
	for i := 0; i < count; i++ {
		pRef.OperatorPlusInplace(vs[i])
	}
	pRef.OperatorScalarMulInplace(1.0 / float64(count))

	inv3 := 1.0 / 3.0

	for i := 0; i < count; i++ {
		// Triangle vertices.
		p1 := pRef
		p2 := vs[i]
		p3 := vs[0]
		if i+1 < count {
			p3 = vs[i+1]
		}

		e1 := B2Vec2Sub(p2, p1)
		e2 := B2Vec2Sub(p3, p1)

		triangleArea := 0.5 * B2Vec2Cross(e1, e2)
		area += triangleArea

		// Area weighted centroid
		c.OperatorPlusInplace(B2Vec2MulScalar(triangleArea*inv3, B2Vec2Add(B2Vec2Add(p1, p2), p3)))
	}

	B2Assert(area > B2_epsilon)
	c.OperatorScalarMulInplace(1.0 / area)
	return c
}

/// Create a convex hull from the given array of local points.
/// The points may be in any order and collinear points are dropped.
func (poly *B2PolygonShape) Set(vertices []B2Vec2) error {
	count := len(vertices)
	if count < 3 {
		return newDegenerateShapeError("polygon", "%d vertices given, need at least 3", count)
	}

	// Perform welding and copy vertices into local buffer.
	weldSqr := (0.5 * B2_linearSlop) * (0.5 * B2_linearSlop)
	ps := make([]B2Vec2, 0, count)

	for _, v := range vertices {
		if !v.IsValid() {
			return newDegenerateShapeError("polygon", "vertex %v is not finite", v)
		}

		unique := true
		for _, p := range ps {
			if B2Vec2DistanceSquared(v, p) < weldSqr {
				unique = false
				break
			}
		}

		if unique {
			ps = append(ps, v)
		}
	}

	n := len(ps)
	if n < 3 {
		return newDegenerateShapeError("polygon", "%d unique vertices after welding", n)
	}

	// Create the convex hull using the Gift wrapping algorithm
	// http://en.wikipedia.org/wiki/Gift_wrapping_algorithm

	// Find the right most point on the hull
	i0 := 0
	x0 := ps[0].X
	for i := 1; i < n; i++ {
		x := ps[i].X
		if x > x0 || (x == x0 && ps[i].Y < ps[i0].Y) {
			i0 = i
			x0 = x
		}
	}

	hull := make([]int, 0, n)
	ih := i0

	for {
		if len(hull) == n {
			return newDegenerateShapeError("polygon", "hull construction did not close")
		}
		hull = append(hull, ih)

		ie := 0
		for j := 1; j < n; j++ {
			if ie == ih {
				ie = j
				continue
			}

			r := B2Vec2Sub(ps[ie], ps[ih])
			v := B2Vec2Sub(ps[j], ps[ih])
			c := B2Vec2Cross(r, v)
			if c < 0.0 {
				ie = j
			}

			// Collinearity check
			if c == 0.0 && v.LengthSquared() > r.LengthSquared() {
				ie = j
			}
		}

		ih = ie

		if ie == i0 {
			break
		}
	}

	m := len(hull)
	if m < 3 {
		return newDegenerateShapeError("polygon", "%d hull vertices, need at least 3", m)
	}
	// Interior and collinear input points don't count against the limit.
	if m > B2_maxPolygonVertices {
		return newDegenerateShapeError("polygon", "%d hull vertices, at most %d supported", m, B2_maxPolygonVertices)
	}

	hullVertices := make([]B2Vec2, m)
	for i := 0; i < m; i++ {
		hullVertices[i] = ps[hull[i]]
	}

	if b2PolygonArea(hullVertices) <= B2_epsilon {
		return newDegenerateShapeError("polygon", "hull has no area")
	}

	// Compute normals. Ensure the edges have non-zero length.
	normals := make([]B2Vec2, m)
	for i := 0; i < m; i++ {
		i2 := 0
		if i+1 < m {
			i2 = i + 1
		}

		edge := B2Vec2Sub(hullVertices[i2], hullVertices[i])
		if edge.LengthSquared() <= B2_epsilon*B2_epsilon {
			return newDegenerateShapeError("polygon", "edge %d has zero length", i)
		}
		normals[i] = B2Vec2CrossVectorScalar(edge, 1.0)
		normals[i].Normalize()
	}

	poly.M_count = m
	poly.M_vertices = hullVertices
	poly.M_normals = normals
	poly.M_centroid = ComputeCentroid(poly.M_vertices, m)
	poly.M_massData = poly.ComputeMass(poly.M_density)

	return nil
}

func (poly B2PolygonShape) TestPoint(xf B2Transform, p B2Vec2) bool {
	pLocal := B2RotVec2MulT(xf.Q, B2Vec2Sub(p, xf.P))

	for i := 0; i < poly.M_count; i++ {
		dot := B2Vec2Dot(poly.M_normals[i], B2Vec2Sub(pLocal, poly.M_vertices[i]))
		if dot > 0.0 {
			return false
		}
	}

	return true
}

func (poly B2PolygonShape) RayCast(input B2RayCastInput, xf B2Transform, childIndex int) (B2RayCastOutput, bool) {
	var output B2RayCastOutput

	// Put the ray into the polygon's frame of reference.
	p1 := B2RotVec2MulT(xf.Q, B2Vec2Sub(input.P1, xf.P))
	p2 := B2RotVec2MulT(xf.Q, B2Vec2Sub(input.P2, xf.P))
	d := B2Vec2Sub(p2, p1)

	lower := 0.0
	upper := input.MaxFraction

	index := -1

	for i := 0; i < poly.M_count; i++ {
		// p = p1 + a * d
		// dot(normal, p - v) = 0
		// dot(normal, p1 - v) + a * dot(normal, d) = 0
		numerator := B2Vec2Dot(poly.M_normals[i], B2Vec2Sub(poly.M_vertices[i], p1))
		denominator := B2Vec2Dot(poly.M_normals[i], d)

		if denominator == 0.0 {
			if numerator < 0.0 {
				return output, false
			}
		} else {
			// Note: we want this predicate without division:
			// lower < numerator / denominator, where denominator < 0
			// Since denominator < 0, we have to flip the inequality:
			// lower < numerator / denominator <==> denominator * lower > numerator.
			if denominator < 0.0 && numerator < lower*denominator {
				// Increase lower.
				// The segment enters this half-space.
				lower = numerator / denominator
				index = i
			} else if denominator > 0.0 && numerator < upper*denominator {
				// Decrease upper.
				// The segment exits this half-space.
				upper = numerator / denominator
			}
		}

		if upper < lower {
			return output, false
		}
	}

	if index >= 0 {
		output.Fraction = lower
		output.Normal = B2RotVec2Mul(xf.Q, poly.M_normals[index])
		return output, true
	}

	return output, false
}

func (poly B2PolygonShape) ComputeAABB(xf B2Transform, childIndex int) B2AABB {
	lower := B2TransformVec2Mul(xf, poly.M_vertices[0])
	upper := lower

	for i := 1; i < poly.M_count; i++ {
		v := B2TransformVec2Mul(xf, poly.M_vertices[i])
		lower = B2Vec2Min(lower, v)
		upper = B2Vec2Max(upper, v)
	}

	r := MakeB2Vec2(poly.M_radius, poly.M_radius)
	return B2AABB{
		LowerBound: B2Vec2Sub(lower, r),
		UpperBound: B2Vec2Add(upper, r),
	}
}

func (poly B2PolygonShape) ComputeMass(density float64) B2MassData {
	// Polygon mass, centroid, and inertia.
	// Let rho be the polygon density in mass per unit area.
	// Then:
	// mass = rho * int(dA)
	// centroid.x = (1/mass) * rho * int(x * dA)
	// centroid.y = (1/mass) * rho * int(y * dA)
	// I = rho * int((x*x + y*y) * dA)
	//
	// We can compute these integrals by summing all the integrals
	// for each triangle of the polygon. To evaluate the integral
	// for a single triangle, we make a change of variables to
	// the (u,v) coordinates of the triangle:
	// x = x0 + e1x * u + e2x * v
	// y = y0 + e1y * u + e2y * v
	// where 0 <= u && 0 <= v && u + v <= 1.
	//
	// We integrate u from [0,1-v] and then v from [0,1].
	// We also need to use the Jacobian of the transformation:
	// D = cross(e1, e2)
	//
	// Simplification: triangle centroid = (1/3) * (p1 + p2 + p3)

	B2Assert(poly.M_count >= 3)

	massData := MakeMassData()
	center := MakeB2Vec2(0, 0)

	area := 0.0
	I := 0.0

	// s is the reference point for forming triangles.
	// It's location doesn't change the result (except for rounding error).
	s := MakeB2Vec2(0.0, 0.0)
	for i := 0; i < poly.M_count; i++ {
		s.OperatorPlusInplace(poly.M_vertices[i])
	}
	s.OperatorScalarMulInplace(1.0 / float64(poly.M_count))

	k_inv3 := 1.0 / 3.0

	for i := 0; i < poly.M_count; i++ {
		// Triangle vertices.
		e1 := B2Vec2Sub(poly.M_vertices[i], s)
		e2 := B2Vec2Sub(poly.M_vertices[0], s)
		if i+1 < poly.M_count {
			e2 = B2Vec2Sub(poly.M_vertices[i+1], s)
		}

		D := B2Vec2Cross(e1, e2)

		triangleArea := 0.5 * D
		area += triangleArea

		// Area weighted centroid
		center.OperatorPlusInplace(B2Vec2MulScalar(triangleArea*k_inv3, B2Vec2Add(e1, e2)))

		ex1 := e1.X
		ey1 := e1.Y
		ex2 := e2.X
		ey2 := e2.Y

		intx2 := ex1*ex1 + ex2*ex1 + ex2*ex2
		inty2 := ey1*ey1 + ey2*ey1 + ey2*ey2

		I += (0.25 * k_inv3 * D) * (intx2 + inty2)
	}

	massData.Area = area
	massData.Mass = density * area

	// Center of mass
	B2Assert(area > B2_epsilon)
	center.OperatorScalarMulInplace(1.0 / area)
	massData.Center = B2Vec2Add(center, s)

	// Inertia tensor relative to the local origin (point s).
	massData.I = density * I

	// Shift to center of mass then to original body origin.
	massData.I += massData.Mass * (B2Vec2Dot(massData.Center, massData.Center) - B2Vec2Dot(center, center))

	return massData
}

/// Validate convexity. This is a very time consuming operation.
/// @returns true if valid
func (poly B2PolygonShape) Validate() bool {
	if len(poly.M_normals) != poly.M_count || len(poly.M_vertices) != poly.M_count {
		return false
	}

	for i := 0; i < poly.M_count; i++ {
		i1 := i
		i2 := 0
		if i < poly.M_count-1 {
			i2 = i1 + 1
		}

		p := poly.M_vertices[i1]
		e := B2Vec2Sub(poly.M_vertices[i2], p)

		for j := 0; j < poly.M_count; j++ {
			if j == i1 || j == i2 {
				continue
			}

			v := B2Vec2Sub(poly.M_vertices[j], p)
			if B2Vec2Cross(e, v) < 0.0 {
				return false
			}
		}
	}

	return true
}
