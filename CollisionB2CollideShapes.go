package box2d

/// Collide a child edge of a chain with a circle.
func B2CollideChainAndCircle(manifold *B2Manifold, chainA *B2ChainShape, xfA B2Transform, childIndex int, circleB *B2CircleShape, xfB B2Transform) {
	B2CollideEdgeAndCircle(manifold, chainA.GetChildEdge(childIndex), xfA, circleB, xfB)
}

/// Collide a child edge of a chain with a polygon.
func B2CollideChainAndPolygon(manifold *B2Manifold, chainA *B2ChainShape, xfA B2Transform, childIndex int, polygonB *B2PolygonShape, xfB B2Transform, tol B2CollisionTolerance) {
	B2CollideEdgeAndPolygonWithTolerance(manifold, chainA.GetChildEdge(childIndex), xfA, polygonB, xfB, tol)
}

// B2CanonicalOrder reports whether a pair of shape kinds must be swapped so
// that the narrowphase routine receives them in its expected order, and
// whether the pair is supported at all. Circles always end up as B, and
// edges and chains always end up as A.
func B2CanonicalOrder(typeA, typeB uint8) (swap bool, ok bool) {
	rank := func(t uint8) int {
		switch t {
		case B2Shape_Type.E_edge, B2Shape_Type.E_chain:
			return 0
		case B2Shape_Type.E_polygon:
			return 1
		case B2Shape_Type.E_circle:
			return 2
		}
		return -1
	}

	ra, rb := rank(typeA), rank(typeB)
	if ra < 0 || rb < 0 {
		return false, false
	}

	// Edges and chains only collide with solid shapes.
	if ra == 0 && rb == 0 {
		return false, false
	}

	return ra > rb, true
}

// B2CollideShapes fills manifold for a canonically ordered pair of child
// shapes. It returns false when the pair is unsupported or out of order, in
// which case the manifold is left with no points.
func B2CollideShapes(manifold *B2Manifold, shapeA B2Shape, xfA B2Transform, childA int, shapeB B2Shape, xfB B2Transform, childB int, tol B2CollisionTolerance) bool {
	manifold.PointCount = 0

	switch a := shapeA.(type) {
	case *B2CircleShape:
		if b, ok := shapeB.(*B2CircleShape); ok {
			B2CollideCircles(manifold, a, xfA, b, xfB)
			return true
		}

	case *B2PolygonShape:
		switch b := shapeB.(type) {
		case *B2CircleShape:
			B2CollidePolygonAndCircle(manifold, a, xfA, b, xfB)
			return true
		case *B2PolygonShape:
			B2CollidePolygonsWithTolerance(manifold, a, xfA, b, xfB, tol)
			return true
		}

	case *B2EdgeShape:
		switch b := shapeB.(type) {
		case *B2CircleShape:
			B2CollideEdgeAndCircle(manifold, a, xfA, b, xfB)
			return true
		case *B2PolygonShape:
			B2CollideEdgeAndPolygonWithTolerance(manifold, a, xfA, b, xfB, tol)
			return true
		}

	case *B2ChainShape:
		switch b := shapeB.(type) {
		case *B2CircleShape:
			B2CollideChainAndCircle(manifold, a, xfA, childA, b, xfB)
			return true
		case *B2PolygonShape:
			B2CollideChainAndPolygon(manifold, a, xfA, childA, b, xfB, tol)
			return true
		}
	}

	return false
}
