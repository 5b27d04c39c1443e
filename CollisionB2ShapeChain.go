package box2d

/// A chain shape is a free form sequence of line segments.
/// Open chains without both ghost vertices collide on both sides, so any
/// winding order works. Loops, and open chains given both a previous and a
/// next ghost vertex, produce one-sided links: wind loops counter-clockwise
/// to collide with the outside.
/// Connectivity information is used to create smooth collisions.
/// WARNING: The chain will not collide properly if there are self-intersections.
type B2ChainShape struct {
	B2ShapeBase

	/// The vertices. Loops repeat the first vertex at the end.
	M_vertices []B2Vec2

	/// The vertex count.
	M_count int

	M_prevVertex    B2Vec2
	M_nextVertex    B2Vec2
	M_hasPrevVertex bool
	M_hasNextVertex bool

	M_loop bool
}

/// Build a chain or, when loop is set, a closed loop. The last vertex of a loop
/// is connected back to the first one automatically.
func NewB2ChainShape(vertices []B2Vec2, loop bool) (*B2ChainShape, error) {
	chain := &B2ChainShape{
		B2ShapeBase: B2ShapeBase{
			M_type:   B2Shape_Type.E_chain,
			M_radius: B2_polygonRadius,
		},
	}

	var err error
	if loop {
		err = chain.CreateLoop(vertices)
	} else {
		err = chain.CreateChain(vertices)
	}
	if err != nil {
		return nil, err
	}

	return chain, nil
}

func checkB2ChainVertices(vertices []B2Vec2) error {
	for i := 1; i < len(vertices); i++ {
		if !vertices[i].IsValid() {
			return newDegenerateShapeError("chain", "vertex %d is not finite", i)
		}
		if B2Vec2DistanceSquared(vertices[i-1], vertices[i]) <= B2_linearSlop*B2_linearSlop {
			return newDegenerateShapeError("chain", "vertices %d and %d are closer than the linear slop", i-1, i)
		}
	}
	return nil
}

/// Create a loop. This automatically adjusts connectivity.
func (chain *B2ChainShape) CreateLoop(vertices []B2Vec2) error {
	count := len(vertices)
	if count < 3 {
		return newDegenerateShapeError("chain", "loop needs at least 3 vertices, got %d", count)
	}
	if err := checkB2ChainVertices(vertices); err != nil {
		return err
	}
	if B2Vec2DistanceSquared(vertices[count-1], vertices[0]) <= B2_linearSlop*B2_linearSlop {
		return newDegenerateShapeError("chain", "loop closes on a repeated vertex")
	}

	chain.M_count = count + 1
	chain.M_vertices = make([]B2Vec2, chain.M_count)
	copy(chain.M_vertices, vertices)

	chain.M_vertices[count] = chain.M_vertices[0]
	chain.M_prevVertex = chain.M_vertices[chain.M_count-2]
	chain.M_nextVertex = chain.M_vertices[1]
	chain.M_hasPrevVertex = true
	chain.M_hasNextVertex = true
	chain.M_loop = true
	chain.M_massData = chain.ComputeMass(chain.M_density)

	return nil
}

/// Create a chain with isolated end vertices.
func (chain *B2ChainShape) CreateChain(vertices []B2Vec2) error {
	count := len(vertices)
	if count < 2 {
		return newDegenerateShapeError("chain", "chain needs at least 2 vertices, got %d", count)
	}
	if err := checkB2ChainVertices(vertices); err != nil {
		return err
	}

	chain.M_count = count
	chain.M_vertices = make([]B2Vec2, count)
	copy(chain.M_vertices, vertices)

	chain.M_hasPrevVertex = false
	chain.M_hasNextVertex = false
	chain.M_prevVertex.SetZero()
	chain.M_nextVertex.SetZero()
	chain.M_loop = false
	chain.M_massData = chain.ComputeMass(chain.M_density)

	return nil
}

/// Establish connectivity to a vertex that precedes the first vertex.
/// Don't call this for loops.
func (chain *B2ChainShape) SetPrevVertex(prevVertex B2Vec2) {
	chain.M_prevVertex = prevVertex
	chain.M_hasPrevVertex = true
}

/// Establish connectivity to a vertex that follows the last vertex.
/// Don't call this for loops.
func (chain *B2ChainShape) SetNextVertex(nextVertex B2Vec2) {
	chain.M_nextVertex = nextVertex
	chain.M_hasNextVertex = true
}

func (chain B2ChainShape) IsLoop() bool {
	return chain.M_loop
}

func (chain B2ChainShape) isOneSided() bool {
	return chain.M_loop || (chain.M_hasPrevVertex && chain.M_hasNextVertex)
}

func (chain B2ChainShape) GetChildCount() int {
	// edge count = vertex count - 1
	return chain.M_count - 1
}

/// Get a child edge.
func (chain B2ChainShape) GetChildEdge(index int) *B2EdgeShape {
	B2Assert(0 <= index && index < chain.M_count-1)

	edge := makeB2EdgeShape()
	edge.M_radius = chain.M_radius

	edge.M_vertex1 = chain.M_vertices[index+0]
	edge.M_vertex2 = chain.M_vertices[index+1]

	if index > 0 {
		edge.M_vertex0 = chain.M_vertices[index-1]
		edge.M_hasVertex0 = true
	} else {
		edge.M_vertex0 = chain.M_prevVertex
		edge.M_hasVertex0 = chain.M_hasPrevVertex
	}

	if index < chain.M_count-2 {
		edge.M_vertex3 = chain.M_vertices[index+2]
		edge.M_hasVertex3 = true
	} else {
		edge.M_vertex3 = chain.M_nextVertex
		edge.M_hasVertex3 = chain.M_hasNextVertex
	}

	edge.M_oneSided = chain.isOneSided()

	return edge
}

func (chain B2ChainShape) TestPoint(xf B2Transform, p B2Vec2) bool {
	return false
}

func (chain B2ChainShape) RayCast(input B2RayCastInput, xf B2Transform, childIndex int) (B2RayCastOutput, bool) {
	B2Assert(childIndex < chain.M_count-1)
	return chain.GetChildEdge(childIndex).RayCast(input, xf, 0)
}

func (chain B2ChainShape) ComputeAABB(xf B2Transform, childIndex int) B2AABB {
	B2Assert(childIndex < chain.M_count-1)

	v1 := B2TransformVec2Mul(xf, chain.M_vertices[childIndex])
	v2 := B2TransformVec2Mul(xf, chain.M_vertices[childIndex+1])

	r := MakeB2Vec2(chain.M_radius, chain.M_radius)
	return B2AABB{
		LowerBound: B2Vec2Sub(B2Vec2Min(v1, v2), r),
		UpperBound: B2Vec2Add(B2Vec2Max(v1, v2), r),
	}
}

/// Chains have no mass.
func (chain B2ChainShape) ComputeMass(density float64) B2MassData {
	return MakeMassData()
}
