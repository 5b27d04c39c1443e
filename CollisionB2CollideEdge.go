package box2d

import (
	"math"
)

// Compute contact points for edge versus circle.
// This accounts for edge connectivity. One-sided edges ignore circles
// whose center lies behind them.
func B2CollideEdgeAndCircle(manifold *B2Manifold, edgeA *B2EdgeShape, xfA B2Transform, circleB *B2CircleShape, xfB B2Transform) {
	manifold.PointCount = 0

	// Circle center in the edge frame.
	Q := B2TransformVec2MulT(xfA, B2TransformVec2Mul(xfB, circleB.M_p))

	A := edgeA.M_vertex1
	B := edgeA.M_vertex2
	e := B2Vec2Sub(B, A)

	if edgeA.M_oneSided && B2Vec2Dot(MakeB2Vec2(e.Y, -e.X), B2Vec2Sub(Q, A)) < 0.0 {
		return
	}

	// Barycentric coordinates
	u := B2Vec2Dot(e, B2Vec2Sub(B, Q))
	v := B2Vec2Dot(e, B2Vec2Sub(Q, A))

	radius := edgeA.M_radius + circleB.M_radius
	reaches := func(P B2Vec2) bool {
		d := B2Vec2Sub(Q, P)
		return B2Vec2Dot(d, d) <= radius*radius
	}

	emit := func(manifoldType uint8, normal, point B2Vec2, indexA, typeA uint8) {
		manifold.PointCount = 1
		manifold.Type = manifoldType
		manifold.LocalNormal = normal
		manifold.LocalPoint = point
		manifold.Points[0].Id = MakeB2ContactID(indexA, typeA, 0, B2ContactFeature_Type.E_vertex)
		manifold.Points[0].LocalPoint = circleB.M_p
	}

	switch {
	case v <= 0.0:
		// A neighbor edge owns the circle when it sits in that edge's face region.
		if !reaches(A) || edgeA.M_hasVertex0 && B2Vec2Dot(B2Vec2Sub(A, edgeA.M_vertex0), B2Vec2Sub(A, Q)) > 0.0 {
			return
		}
		emit(B2Manifold_Type.E_circles, B2Vec2_zero, A, 0, B2ContactFeature_Type.E_vertex)

	case u <= 0.0:
		if !reaches(B) || edgeA.M_hasVertex3 && B2Vec2Dot(B2Vec2Sub(edgeA.M_vertex3, B), B2Vec2Sub(Q, B)) > 0.0 {
			return
		}
		emit(B2Manifold_Type.E_circles, B2Vec2_zero, B, 1, B2ContactFeature_Type.E_vertex)

	default:
		den := B2Vec2Dot(e, e)
		if den <= 0.0 {
			return
		}

		P := B2Vec2MulScalar(1.0/den, B2Vec2Add(B2Vec2MulScalar(u, A), B2Vec2MulScalar(v, B)))
		if !reaches(P) {
			return
		}

		n := MakeB2Vec2(-e.Y, e.X)
		if B2Vec2Dot(n, B2Vec2Sub(Q, A)) < 0.0 {
			n = n.OperatorNegate()
		}
		n.Normalize()

		emit(B2Manifold_Type.E_faceA, n, A, 0, B2ContactFeature_Type.E_face)
	}
}

// This structure is used to keep track of the best separating axis.
var B2EPAxis_Type = struct {
	E_unknown uint8
	E_edgeA   uint8
	E_edgeB   uint8
}{
	E_unknown: 0,
	E_edgeA:   1,
	E_edgeB:   2,
}

type B2EPAxis struct {
	Type       uint8
	Index      int
	Separation float64
}

// This holds polygon B expressed in frame A.
type B2TempPolygon struct {
	Vertices [B2_maxPolygonVertices]B2Vec2
	Normals  [B2_maxPolygonVertices]B2Vec2
	Count    int
}

func (poly *B2TempPolygon) next(i int) int {
	if i+1 < poly.Count {
		return i + 1
	}
	return 0
}

// Reference face used for clipping
type B2ReferenceFace struct {
	I1, I2 int

	V1, V2 B2Vec2

	Normal B2Vec2

	SideNormal1 B2Vec2
	SideOffset1 float64

	SideNormal2 B2Vec2
	SideOffset2 float64
}

// Collides an edge with a polygon, restricting the contact normal to the
// cone allowed by the edge's ghost neighbors.
type B2EPCollider struct {
	M_polygonB B2TempPolygon

	M_xf                            B2Transform
	M_centroidB                     B2Vec2
	M_v0, M_v1, M_v2, M_v3          B2Vec2
	M_normal0, M_normal1, M_normal2 B2Vec2
	M_normal                        B2Vec2
	M_lowerLimit, M_upperLimit      B2Vec2
	M_radius                        float64
	M_front                         bool

	/// Hysteresis between the edge axis and the polygon axes.
	Tolerance B2CollisionTolerance
}

func MakeB2EPCollider(tol B2CollisionTolerance) B2EPCollider {
	return B2EPCollider{Tolerance: tol}
}

// Pick the side of the edge the polygon centroid is on and the range of
// normals the neighbors allow. Reports false when a one-sided edge only
// sees the polygon from behind.
func (collider *B2EPCollider) classify(edgeA *B2EdgeShape) bool {
	hasVertex0 := edgeA.M_hasVertex0
	hasVertex3 := edgeA.M_hasVertex3

	direction := func(a, b B2Vec2) (B2Vec2, B2Vec2) {
		e := B2Vec2Sub(b, a)
		e.Normalize()
		return e, MakeB2Vec2(e.Y, -e.X)
	}
	inFront := func(n, v B2Vec2) bool {
		return B2Vec2Dot(n, B2Vec2Sub(collider.M_centroidB, v)) >= 0.0
	}

	var edge1 B2Vec2
	edge1, collider.M_normal1 = direction(collider.M_v1, collider.M_v2)
	front := inFront(collider.M_normal1, collider.M_v1)
	if edgeA.M_oneSided && !front {
		return false
	}

	convex1, convex2 := false, false
	front0, front2 := false, false

	if hasVertex0 {
		var edge0 B2Vec2
		edge0, collider.M_normal0 = direction(collider.M_v0, collider.M_v1)
		convex1 = B2Vec2Cross(edge0, edge1) >= 0.0
		front0 = inFront(collider.M_normal0, collider.M_v0)
	}

	if hasVertex3 {
		var edge2 B2Vec2
		edge2, collider.M_normal2 = direction(collider.M_v2, collider.M_v3)
		convex2 = B2Vec2Cross(edge1, edge2) > 0.0
		front2 = inFront(collider.M_normal2, collider.M_v2)
	}

	// Concave neighbors narrow the front side, then convex ones widen it.
	if hasVertex0 && !convex1 {
		front = front && front0
	}
	if hasVertex3 && !convex2 {
		front = front && front2
	}
	if hasVertex0 && convex1 {
		front = front || front0
	}
	if hasVertex3 && convex2 {
		front = front || front2
	}
	collider.M_front = front

	// One bound of the normal cone.
	bound := func(hasNeighbor, convex bool, convexBound, concaveBound, open B2Vec2) B2Vec2 {
		if !hasNeighbor {
			return open
		}
		if convex {
			return convexBound
		}
		return concaveBound
	}

	n1 := collider.M_normal1
	m1 := n1.OperatorNegate()
	if front {
		collider.M_normal = n1
		collider.M_lowerLimit = bound(hasVertex0, convex1, collider.M_normal0, n1, m1)
		collider.M_upperLimit = bound(hasVertex3, convex2, collider.M_normal2, n1, m1)
	} else {
		collider.M_normal = m1
		collider.M_lowerLimit = bound(hasVertex3, convex2, m1, collider.M_normal2.OperatorNegate(), n1)
		collider.M_upperLimit = bound(hasVertex0, convex1, m1, collider.M_normal0.OperatorNegate(), n1)
	}

	// A concave neighbor can flip the side even though the centroid is in front.
	return !edgeA.M_oneSided || front
}

func (collider *B2EPCollider) Collide(manifold *B2Manifold, edgeA *B2EdgeShape, xfA B2Transform, polygonB *B2PolygonShape, xfB B2Transform) {
	manifold.PointCount = 0

	collider.M_xf = B2TransformMulT(xfA, xfB)
	collider.M_centroidB = B2TransformVec2Mul(collider.M_xf, polygonB.M_centroid)

	collider.M_v0 = edgeA.M_vertex0
	collider.M_v1 = edgeA.M_vertex1
	collider.M_v2 = edgeA.M_vertex2
	collider.M_v3 = edgeA.M_vertex3

	if !collider.classify(edgeA) {
		return
	}

	// Get polygonB in frameA
	collider.M_polygonB.Count = polygonB.M_count
	for i := 0; i < polygonB.M_count; i++ {
		collider.M_polygonB.Vertices[i] = B2TransformVec2Mul(collider.M_xf, polygonB.M_vertices[i])
		collider.M_polygonB.Normals[i] = B2RotVec2Mul(collider.M_xf.Q, polygonB.M_normals[i])
	}

	collider.M_radius = polygonB.M_radius + edgeA.M_radius

	edgeAxis := collider.ComputeEdgeSeparation()
	if edgeAxis.Separation > collider.M_radius {
		return
	}

	polygonAxis := collider.ComputePolygonSeparation()
	if polygonAxis.Type != B2EPAxis_Type.E_unknown && polygonAxis.Separation > collider.M_radius {
		return
	}

	// Hysteresis against jitter between axes.
	primaryAxis := edgeAxis
	if polygonAxis.Type != B2EPAxis_Type.E_unknown &&
		polygonAxis.Separation > collider.Tolerance.EdgeRelative*edgeAxis.Separation+collider.Tolerance.EdgeAbsolute {
		primaryAxis = polygonAxis
	}

	ie, rf := collider.clipFeatures(primaryAxis)

	clipPoints1, np := B2ClipSegmentToLine(ie, rf.SideNormal1, rf.SideOffset1, rf.I1)
	if np < B2_maxManifoldPoints {
		return
	}

	clipPoints2, np := B2ClipSegmentToLine(clipPoints1, rf.SideNormal2, rf.SideOffset2, rf.I2)
	if np < B2_maxManifoldPoints {
		return
	}

	faceA := primaryAxis.Type == B2EPAxis_Type.E_edgeA
	if faceA {
		manifold.Type = B2Manifold_Type.E_faceA
		manifold.LocalNormal = rf.Normal
		manifold.LocalPoint = rf.V1
	} else {
		manifold.Type = B2Manifold_Type.E_faceB
		manifold.LocalNormal = polygonB.M_normals[rf.I1]
		manifold.LocalPoint = polygonB.M_vertices[rf.I1]
	}

	pointCount := 0
	for _, cv := range clipPoints2 {
		if B2Vec2Dot(rf.Normal, B2Vec2Sub(cv.V, rf.V1)) > collider.M_radius {
			continue
		}

		cp := &manifold.Points[pointCount]
		if faceA {
			cp.LocalPoint = B2TransformVec2MulT(collider.M_xf, cv.V)
			cp.Id = cv.Id
		} else {
			cp.LocalPoint = cv.V
			cp.Id = cv.Id.Swapped()
		}
		pointCount++
	}

	manifold.PointCount = pointCount
}

// Incident edge and reference face for the chosen axis, both in frame A.
func (collider *B2EPCollider) clipFeatures(axis B2EPAxis) (ie [2]B2ClipVertex, rf B2ReferenceFace) {
	poly := &collider.M_polygonB

	if axis.Type == B2EPAxis_Type.E_edgeA {
		// Polygon face most anti-parallel to the edge normal.
		best := 0
		for i := 1; i < poly.Count; i++ {
			if B2Vec2Dot(collider.M_normal, poly.Normals[i]) < B2Vec2Dot(collider.M_normal, poly.Normals[best]) {
				best = i
			}
		}

		for k, i := range [2]int{best, poly.next(best)} {
			ie[k] = B2ClipVertex{
				V:  poly.Vertices[i],
				Id: MakeB2ContactID(0, B2ContactFeature_Type.E_face, uint8(i), B2ContactFeature_Type.E_vertex),
			}
		}

		if collider.M_front {
			rf = B2ReferenceFace{I1: 0, I2: 1, V1: collider.M_v1, V2: collider.M_v2, Normal: collider.M_normal1}
		} else {
			rf = B2ReferenceFace{I1: 1, I2: 0, V1: collider.M_v2, V2: collider.M_v1, Normal: collider.M_normal1.OperatorNegate()}
		}
	} else {
		for k, v := range [2]B2Vec2{collider.M_v1, collider.M_v2} {
			ie[k] = B2ClipVertex{
				V:  v,
				Id: MakeB2ContactID(0, B2ContactFeature_Type.E_vertex, uint8(axis.Index), B2ContactFeature_Type.E_face),
			}
		}

		i2 := poly.next(axis.Index)
		rf = B2ReferenceFace{
			I1:     axis.Index,
			I2:     i2,
			V1:     poly.Vertices[axis.Index],
			V2:     poly.Vertices[i2],
			Normal: poly.Normals[axis.Index],
		}
	}

	rf.SideNormal1 = MakeB2Vec2(rf.Normal.Y, -rf.Normal.X)
	rf.SideNormal2 = rf.SideNormal1.OperatorNegate()
	rf.SideOffset1 = B2Vec2Dot(rf.SideNormal1, rf.V1)
	rf.SideOffset2 = B2Vec2Dot(rf.SideNormal2, rf.V2)

	return ie, rf
}

func (collider *B2EPCollider) ComputeEdgeSeparation() B2EPAxis {
	axis := B2EPAxis{Type: B2EPAxis_Type.E_edgeA, Separation: B2_maxFloat}
	if !collider.M_front {
		axis.Index = 1
	}

	for _, v := range collider.M_polygonB.Vertices[:collider.M_polygonB.Count] {
		axis.Separation = math.Min(axis.Separation, B2Vec2Dot(collider.M_normal, B2Vec2Sub(v, collider.M_v1)))
	}

	return axis
}

func (collider *B2EPCollider) ComputePolygonSeparation() B2EPAxis {
	axis := B2EPAxis{Type: B2EPAxis_Type.E_unknown, Index: -1, Separation: -B2_maxFloat}

	perp := MakeB2Vec2(-collider.M_normal.Y, collider.M_normal.X)

	for i := 0; i < collider.M_polygonB.Count; i++ {
		n := collider.M_polygonB.Normals[i].OperatorNegate()
		vertex := collider.M_polygonB.Vertices[i]

		s := math.Min(
			B2Vec2Dot(n, B2Vec2Sub(vertex, collider.M_v1)),
			B2Vec2Dot(n, B2Vec2Sub(vertex, collider.M_v2)),
		)

		if s > collider.M_radius {
			// Separating axis
			return B2EPAxis{Type: B2EPAxis_Type.E_edgeB, Index: i, Separation: s}
		}

		// Normals outside the adjacency cone are not admissible.
		limit := collider.M_lowerLimit
		if B2Vec2Dot(n, perp) >= 0.0 {
			limit = collider.M_upperLimit
		}
		if B2Vec2Dot(B2Vec2Sub(n, limit), collider.M_normal) < -B2_angularSlop {
			continue
		}

		if s > axis.Separation {
			axis = B2EPAxis{Type: B2EPAxis_Type.E_edgeB, Index: i, Separation: s}
		}
	}

	return axis
}

// Compute the collision manifold between an edge and a polygon using the
// default hysteresis.
func B2CollideEdgeAndPolygon(manifold *B2Manifold, edgeA *B2EdgeShape, xfA B2Transform, polygonB *B2PolygonShape, xfB B2Transform) {
	B2CollideEdgeAndPolygonWithTolerance(manifold, edgeA, xfA, polygonB, xfB, B2DefaultCollisionTolerance)
}

func B2CollideEdgeAndPolygonWithTolerance(manifold *B2Manifold, edgeA *B2EdgeShape, xfA B2Transform, polygonB *B2PolygonShape, xfB B2Transform, tol B2CollisionTolerance) {
	collider := MakeB2EPCollider(tol)
	collider.Collide(manifold, edgeA, xfA, polygonB, xfB)
}
