package box2d

import (
	"math"
)

const B2_nullFeature uint8 = math.MaxUint8

var B2ContactFeature_Type = struct {
	E_vertex uint8
	E_face   uint8
}{
	E_vertex: 0,
	E_face:   1,
}

/// The features that intersect to form the contact point
/// This must be 4 bytes or less.
type B2ContactFeature struct {
	IndexA uint8 ///< Feature index on shapeA
	IndexB uint8 ///< Feature index on shapeB
	TypeA  uint8 ///< The feature type on shapeA
	TypeB  uint8 ///< The feature type on shapeB
}

/// Contact ids to facilitate warm starting. Two points with the same key
/// were produced by the same pair of features.
type B2ContactID B2ContactFeature

func MakeB2ContactID(indexA, typeA, indexB, typeB uint8) B2ContactID {
	return B2ContactID{IndexA: indexA, IndexB: indexB, TypeA: typeA, TypeB: typeB}
}

///< Used to quickly compare contact ids.
func (v B2ContactID) Key() uint32 {
	var key uint32 = 0
	key |= uint32(v.IndexA)
	key |= uint32(v.IndexB) << 8
	key |= uint32(v.TypeA) << 16
	key |= uint32(v.TypeB) << 24
	return key
}

/// Swap the A and B features. Used when the roles of the two shapes are exchanged.
func (v B2ContactID) Swapped() B2ContactID {
	return B2ContactID{IndexA: v.IndexB, IndexB: v.IndexA, TypeA: v.TypeB, TypeB: v.TypeA}
}

/// A manifold point is a contact point belonging to a contact
/// manifold. It holds details related to the geometry and dynamics
/// of the contact points.
/// The local point usage depends on the manifold type:
/// -e_circles: the local center of circleB
/// -e_faceA: the local center of cirlceB or the clip point of polygonB
/// -e_faceB: the clip point of polygonA
/// This structure is stored across time steps, so we keep it small.
/// Note: the impulses are used for internal caching and may not
/// provide reliable contact forces, especially for high speed collisions.
type B2ManifoldPoint struct {
	LocalPoint     B2Vec2      ///< usage depends on manifold type
	NormalImpulse  float64     ///< the non-penetration impulse
	TangentImpulse float64     ///< the friction impulse
	Id             B2ContactID ///< uniquely identifies a contact point between two shapes
}

/// A manifold for two touching convex shapes.
/// Box2D supports multiple types of contact:
/// - clip point versus plane with radius
/// - point versus point with radius (circles)
/// The local point usage depends on the manifold type:
/// -e_circles: the local center of circleA
/// -e_faceA: the center of faceA
/// -e_faceB: the center of faceB
/// Similarly the local normal usage:
/// -e_circles: not used
/// -e_faceA: the normal on polygonA
/// -e_faceB: the normal on polygonB
/// We store contacts in this way so that position correction can
/// account for movement.
/// All contact scenarios must be expressed in one of these types.
/// This structure is stored across time steps, so we keep it small.

var B2Manifold_Type = struct {
	E_circles uint8
	E_faceA   uint8
	E_faceB   uint8
}{
	E_circles: 0,
	E_faceA:   1,
	E_faceB:   2,
}

type B2Manifold struct {
	Points      [B2_maxManifoldPoints]B2ManifoldPoint ///< the points of contact
	LocalNormal B2Vec2                                ///< not use for Type::e_points
	LocalPoint  B2Vec2                                ///< usage depends on manifold type
	Type        uint8                                 // B2Manifold_Type
	PointCount  int                                   ///< the number of manifold points
}

/// Find the point carrying the given id. Returns -1 when absent.
func (m B2Manifold) FindPoint(id B2ContactID) int {
	key := id.Key()
	for i := 0; i < m.PointCount; i++ {
		if m.Points[i].Id.Key() == key {
			return i
		}
	}
	return -1
}

/// This is used to compute the current state of a contact manifold.
type B2WorldManifold struct {
	Normal      B2Vec2                        ///< world vector pointing from A to B
	Points      [B2_maxManifoldPoints]B2Vec2  ///< world contact point (point of intersection)
	Separations [B2_maxManifoldPoints]float64 ///< a negative value indicates overlap, in meters
}

var B2PointState = struct {
	B2_nullState    uint8 ///< point does not exist
	B2_addState     uint8 ///< point was added in the update
	B2_persistState uint8 ///< point persisted across the update
	B2_removeState  uint8 ///< point was removed in the update
}{
	B2_nullState:    0,
	B2_addState:     1,
	B2_persistState: 2,
	B2_removeState:  3,
}

/// Used for computing contact manifolds.
type B2ClipVertex struct {
	V  B2Vec2
	Id B2ContactID
}

/// Ray-cast input data. The ray extends from p1 to p1 + maxFraction * (p2 - p1).
type B2RayCastInput struct {
	P1, P2      B2Vec2
	MaxFraction float64
}

func MakeB2RayCastInput(p1, p2 B2Vec2, maxFraction float64) B2RayCastInput {
	return B2RayCastInput{
		P1:          p1,
		P2:          p2,
		MaxFraction: maxFraction,
	}
}

/// Ray-cast output data. The ray hits at p1 + fraction * (p2 - p1), where p1 and p2
/// come from b2RayCastInput.
type B2RayCastOutput struct {
	Normal   B2Vec2
	Fraction float64
}

/// An axis aligned bounding box.
type B2AABB struct {
	LowerBound B2Vec2 ///< the lower vertex
	UpperBound B2Vec2 ///< the upper vertex
}

func MakeB2AABB(lower, upper B2Vec2) B2AABB {
	return B2AABB{
		LowerBound: lower,
		UpperBound: upper,
	}
}

/// Get the center of the AABB.
func (bb B2AABB) GetCenter() B2Vec2 {
	return B2Vec2MulScalar(
		0.5,
		B2Vec2Add(bb.LowerBound, bb.UpperBound),
	)
}

/// Get the extents of the AABB (half-widths).
func (bb B2AABB) GetExtents() B2Vec2 {
	return B2Vec2MulScalar(
		0.5,
		B2Vec2Sub(bb.UpperBound, bb.LowerBound),
	)
}

/// The smallest box holding both a and b.
func B2AABBUnion(a, b B2AABB) B2AABB {
	return B2AABB{
		LowerBound: B2Vec2Min(a.LowerBound, b.LowerBound),
		UpperBound: B2Vec2Max(a.UpperBound, b.UpperBound),
	}
}

/// Does this aabb contain the provided AABB.
func (bb B2AABB) Contains(aabb B2AABB) bool {

	return (bb.LowerBound.X <= aabb.LowerBound.X &&
		bb.LowerBound.Y <= aabb.LowerBound.Y &&
		aabb.UpperBound.X <= bb.UpperBound.X &&
		aabb.UpperBound.Y <= bb.UpperBound.Y)
}

func (bb B2AABB) IsValid() bool {
	d := B2Vec2Sub(bb.UpperBound, bb.LowerBound)
	valid := d.X >= 0.0 && d.Y >= 0.0
	valid = valid && bb.LowerBound.IsValid() && bb.UpperBound.IsValid()
	return valid
}

/// Grow the box by a margin on every side.
func (bb B2AABB) Extend(margin float64) B2AABB {
	r := MakeB2Vec2(margin, margin)
	return MakeB2AABB(B2Vec2Sub(bb.LowerBound, r), B2Vec2Add(bb.UpperBound, r))
}

func B2TestOverlapBoundingBoxes(a, b B2AABB) bool {

	d1 := B2Vec2Sub(b.LowerBound, a.UpperBound)
	d2 := B2Vec2Sub(a.LowerBound, b.UpperBound)

	if d1.X > 0.0 || d1.Y > 0.0 {
		return false
	}

	if d2.X > 0.0 || d2.Y > 0.0 {
		return false
	}

	return true
}

/// Evaluate a manifold at the given transforms. Each point lies midway
/// between the two surfaces and separations include both radii.
func B2ComputeWorldManifold(manifold *B2Manifold, xfA B2Transform, radiusA float64, xfB B2Transform, radiusB float64) B2WorldManifold {
	var wm B2WorldManifold
	if manifold.PointCount == 0 {
		return wm
	}

	switch manifold.Type {
	case B2Manifold_Type.E_circles:
		centerA := B2TransformVec2Mul(xfA, manifold.LocalPoint)
		centerB := B2TransformVec2Mul(xfB, manifold.Points[0].LocalPoint)

		wm.Normal = MakeB2Vec2(1.0, 0.0)
		if B2Vec2DistanceSquared(centerA, centerB) > B2_epsilon*B2_epsilon {
			wm.Normal = B2Vec2Sub(centerB, centerA)
			wm.Normal.Normalize()
		}

		surfaceA := B2Vec2Add(centerA, B2Vec2MulScalar(radiusA, wm.Normal))
		surfaceB := B2Vec2Sub(centerB, B2Vec2MulScalar(radiusB, wm.Normal))
		wm.Points[0] = b2Midpoint(surfaceA, surfaceB)
		wm.Separations[0] = B2Vec2Dot(B2Vec2Sub(surfaceB, surfaceA), wm.Normal)

	case B2Manifold_Type.E_faceA:
		wm.evaluateFace(manifold, xfA, radiusA, xfB, radiusB)

	case B2Manifold_Type.E_faceB:
		wm.evaluateFace(manifold, xfB, radiusB, xfA, radiusA)
		// Ensure normal points from A to B.
		wm.Normal = wm.Normal.OperatorNegate()
	}

	return wm
}

// The reference face belongs to xfRef, the clip points to xfInc.
func (wm *B2WorldManifold) evaluateFace(manifold *B2Manifold, xfRef B2Transform, radiusRef float64, xfInc B2Transform, radiusInc float64) {
	normal := B2RotVec2Mul(xfRef.Q, manifold.LocalNormal)
	plane := B2TransformVec2Mul(xfRef, manifold.LocalPoint)

	for i := 0; i < manifold.PointCount; i++ {
		clip := B2TransformVec2Mul(xfInc, manifold.Points[i].LocalPoint)
		depth := B2Vec2Dot(B2Vec2Sub(clip, plane), normal)

		onRef := B2Vec2Add(clip, B2Vec2MulScalar(radiusRef-depth, normal))
		onInc := B2Vec2Sub(clip, B2Vec2MulScalar(radiusInc, normal))

		wm.Points[i] = b2Midpoint(onRef, onInc)
		wm.Separations[i] = B2Vec2Dot(B2Vec2Sub(onInc, onRef), normal)
	}

	wm.Normal = normal
}

func b2Midpoint(a, b B2Vec2) B2Vec2 {
	return B2Vec2MulScalar(0.5, B2Vec2Add(a, b))
}

/// Compute the point states given two manifolds. The states pertain to the transition from manifold1
/// to manifold2. So state1 is either persist or remove while state2 is either add or persist.
func B2GetPointStates(manifold1, manifold2 B2Manifold) (state1, state2 [B2_maxManifoldPoints]uint8) {
	for i := 0; i < manifold1.PointCount; i++ {
		state1[i] = B2PointState.B2_removeState
		if manifold2.FindPoint(manifold1.Points[i].Id) >= 0 {
			state1[i] = B2PointState.B2_persistState
		}
	}

	for i := 0; i < manifold2.PointCount; i++ {
		state2[i] = B2PointState.B2_addState
		if manifold1.FindPoint(manifold2.Points[i].Id) >= 0 {
			state2[i] = B2PointState.B2_persistState
		}
	}

	return state1, state2
}

/// Slab test from Real-time Collision Detection, p179. Rays starting inside
/// the box report no hit.
func (bb B2AABB) RayCast(input B2RayCastInput) (B2RayCastOutput, bool) {
	d := B2Vec2Sub(input.P2, input.P1)
	origin := [2]float64{input.P1.X, input.P1.Y}
	dir := [2]float64{d.X, d.Y}
	lower := [2]float64{bb.LowerBound.X, bb.LowerBound.Y}
	upper := [2]float64{bb.UpperBound.X, bb.UpperBound.Y}

	tmin, tmax := -B2_maxFloat, B2_maxFloat
	var normal [2]float64

	for axis := 0; axis < 2; axis++ {
		if math.Abs(dir[axis]) < B2_epsilon {
			// Parallel to this slab.
			if origin[axis] < lower[axis] || upper[axis] < origin[axis] {
				return B2RayCastOutput{}, false
			}
			continue
		}

		invD := 1.0 / dir[axis]
		enter := (lower[axis] - origin[axis]) * invD
		exit := (upper[axis] - origin[axis]) * invD
		side := -1.0
		if enter > exit {
			enter, exit = exit, enter
			side = 1.0
		}

		if enter > tmin {
			normal = [2]float64{}
			normal[axis] = side
			tmin = enter
		}
		tmax = math.Min(tmax, exit)

		if tmin > tmax {
			return B2RayCastOutput{}, false
		}
	}

	if tmin < 0.0 || input.MaxFraction < tmin {
		return B2RayCastOutput{}, false
	}

	return B2RayCastOutput{Normal: MakeB2Vec2(normal[0], normal[1]), Fraction: tmin}, true
}

/// Sutherland-Hodgman clipping of a segment against the half plane
/// dot(normal, v) <= offset. A point created on the plane is tagged as
/// vertex vertexIndexA of shape A touching the face carried by vIn[0].
func B2ClipSegmentToLine(vIn [2]B2ClipVertex, normal B2Vec2, offset float64, vertexIndexA int) (vOut [2]B2ClipVertex, count int) {
	distance0 := B2Vec2Dot(normal, vIn[0].V) - offset
	distance1 := B2Vec2Dot(normal, vIn[1].V) - offset

	if distance0 <= 0.0 {
		vOut[count] = vIn[0]
		count++
	}
	if distance1 <= 0.0 {
		vOut[count] = vIn[1]
		count++
	}

	if distance0*distance1 < 0.0 {
		interp := distance0 / (distance0 - distance1)
		vOut[count] = B2ClipVertex{
			V:  B2Vec2Add(vIn[0].V, B2Vec2MulScalar(interp, B2Vec2Sub(vIn[1].V, vIn[0].V))),
			Id: MakeB2ContactID(uint8(vertexIndexA), B2ContactFeature_Type.E_vertex, vIn[0].Id.IndexB, B2ContactFeature_Type.E_face),
		}
		count++
	}

	return vOut, count
}
