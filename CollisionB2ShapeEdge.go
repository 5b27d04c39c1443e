package box2d

/// A line segment (edge) shape. These can be connected in chains or loops
/// to other edge shapes. The connectivity information is used to ensure
/// correct contact normals.
///
/// A one-sided edge only collides with shapes in front of it. The front is
/// the right side of vertex1 -> vertex2, i.e. the side its normal points to.
type B2EdgeShape struct {
	B2ShapeBase

	/// These are the edge vertices
	M_vertex1, M_vertex2 B2Vec2

	/// Optional adjacent vertices. These are used for smooth collision.
	M_vertex0, M_vertex3       B2Vec2
	M_hasVertex0, M_hasVertex3 bool

	M_oneSided bool
}

/// Build a two-sided edge.
func NewB2EdgeShape(v1, v2 B2Vec2) (*B2EdgeShape, error) {
	edge := makeB2EdgeShape()
	if err := edge.SetTwoSided(v1, v2); err != nil {
		return nil, err
	}
	return edge, nil
}

/// Build a one-sided edge. v0 and v3 are the ghost vertices of the
/// neighboring edges; they smooth collision at the joints.
func NewB2OneSidedEdgeShape(v0, v1, v2, v3 B2Vec2) (*B2EdgeShape, error) {
	edge := makeB2EdgeShape()
	if err := edge.SetOneSided(v0, v1, v2, v3); err != nil {
		return nil, err
	}
	return edge, nil
}

func makeB2EdgeShape() *B2EdgeShape {
	return &B2EdgeShape{
		B2ShapeBase: B2ShapeBase{
			M_type:   B2Shape_Type.E_edge,
			M_radius: B2_polygonRadius,
		},
	}
}

func checkB2EdgeLength(v1, v2 B2Vec2) error {
	if !v1.IsValid() || !v2.IsValid() {
		return newDegenerateShapeError("edge", "vertices %v %v are not finite", v1, v2)
	}
	if B2Vec2DistanceSquared(v1, v2) <= B2_linearSlop*B2_linearSlop {
		return newDegenerateShapeError("edge", "vertices %v %v are closer than the linear slop", v1, v2)
	}
	return nil
}

/// Set this as an isolated two-sided edge.
func (edge *B2EdgeShape) SetTwoSided(v1 B2Vec2, v2 B2Vec2) error {
	if err := checkB2EdgeLength(v1, v2); err != nil {
		return err
	}

	edge.M_vertex1 = v1
	edge.M_vertex2 = v2
	edge.M_vertex0.SetZero()
	edge.M_vertex3.SetZero()
	edge.M_hasVertex0 = false
	edge.M_hasVertex3 = false
	edge.M_oneSided = false
	edge.M_massData = edge.ComputeMass(edge.M_density)
	return nil
}

/// Set this as a part of a sequence. Vertex v0 precedes the edge and vertex v3
/// follows. These extra vertices are used to provide smooth movement
/// across junctions. This also makes the collision one-sided.
func (edge *B2EdgeShape) SetOneSided(v0, v1, v2, v3 B2Vec2) error {
	if err := checkB2EdgeLength(v1, v2); err != nil {
		return err
	}

	edge.M_vertex0 = v0
	edge.M_vertex1 = v1
	edge.M_vertex2 = v2
	edge.M_vertex3 = v3
	edge.M_hasVertex0 = true
	edge.M_hasVertex3 = true
	edge.M_oneSided = true
	edge.M_massData = edge.ComputeMass(edge.M_density)
	return nil
}

func (edge B2EdgeShape) IsOneSided() bool {
	return edge.M_oneSided
}

/// The unit normal of the front side.
func (edge B2EdgeShape) GetNormal() B2Vec2 {
	e := B2Vec2Sub(edge.M_vertex2, edge.M_vertex1)
	normal := MakeB2Vec2(e.Y, -e.X)
	normal.Normalize()
	return normal
}

func (edge B2EdgeShape) GetChildCount() int {
	return 1
}

func (edge B2EdgeShape) TestPoint(xf B2Transform, p B2Vec2) bool {
	return false
}

// p = p1 + t * d
// v = v1 + s * e
// p1 + t * d = v1 + s * e
// s * e - t * d = p1 - v1
func (edge B2EdgeShape) RayCast(input B2RayCastInput, xf B2Transform, childIndex int) (B2RayCastOutput, bool) {
	var output B2RayCastOutput

	// Put the ray into the edge's frame of reference.
	p1 := B2RotVec2MulT(xf.Q, B2Vec2Sub(input.P1, xf.P))
	p2 := B2RotVec2MulT(xf.Q, B2Vec2Sub(input.P2, xf.P))
	d := B2Vec2Sub(p2, p1)

	v1 := edge.M_vertex1
	v2 := edge.M_vertex2
	normal := edge.GetNormal()

	// q = p1 + t * d
	// dot(normal, q - v1) = 0
	// dot(normal, p1 - v1) + t * dot(normal, d) = 0
	numerator := B2Vec2Dot(normal, B2Vec2Sub(v1, p1))
	if edge.M_oneSided && numerator > 0.0 {
		// The ray starts behind a one-sided edge.
		return output, false
	}

	denominator := B2Vec2Dot(normal, d)
	if denominator == 0.0 {
		return output, false
	}

	t := numerator / denominator
	if t < 0.0 || input.MaxFraction < t {
		return output, false
	}

	q := B2Vec2Add(p1, B2Vec2MulScalar(t, d))

	// q = v1 + s * r
	// s = dot(q - v1, r) / dot(r, r)
	r := B2Vec2Sub(v2, v1)
	rr := B2Vec2Dot(r, r)
	if rr == 0.0 {
		return output, false
	}

	s := B2Vec2Dot(B2Vec2Sub(q, v1), r) / rr
	if s < 0.0 || 1.0 < s {
		return output, false
	}

	output.Fraction = t
	if numerator > 0.0 {
		output.Normal = B2RotVec2Mul(xf.Q, normal).OperatorNegate()
	} else {
		output.Normal = B2RotVec2Mul(xf.Q, normal)
	}

	return output, true
}

func (edge B2EdgeShape) ComputeAABB(xf B2Transform, childIndex int) B2AABB {
	v1 := B2TransformVec2Mul(xf, edge.M_vertex1)
	v2 := B2TransformVec2Mul(xf, edge.M_vertex2)

	lower := B2Vec2Min(v1, v2)
	upper := B2Vec2Max(v1, v2)

	r := MakeB2Vec2(edge.M_radius, edge.M_radius)
	return B2AABB{
		LowerBound: B2Vec2Sub(lower, r),
		UpperBound: B2Vec2Add(upper, r),
	}
}

func (edge B2EdgeShape) ComputeMass(density float64) B2MassData {
	massData := MakeMassData()
	massData.Center = B2Vec2MulScalar(0.5, B2Vec2Add(edge.M_vertex1, edge.M_vertex2))
	return massData
}
