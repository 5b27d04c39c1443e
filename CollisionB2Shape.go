package box2d

/// This holds the mass data computed for a shape.
type B2MassData struct {
	/// The mass of the shape, usually in kilograms.
	Mass float64

	/// The area of the shape in square meters.
	Area float64

	/// The position of the shape's centroid relative to the shape's origin.
	Center B2Vec2

	/// The rotational inertia of the shape about the local origin.
	I float64
}

func MakeMassData() B2MassData {
	return B2MassData{
		Mass:   0.0,
		Area:   0.0,
		Center: MakeB2Vec2(0, 0),
		I:      0.0,
	}
}

var B2Shape_Type = struct {
	E_circle    uint8
	E_edge      uint8
	E_polygon   uint8
	E_chain     uint8
	E_typeCount uint8
}{
	E_circle:    0,
	E_edge:      1,
	E_polygon:   2,
	E_chain:     3,
	E_typeCount: 4,
}

/// A shape is used for collision detection. The set of shapes is closed:
/// *B2CircleShape, *B2PolygonShape, *B2EdgeShape and *B2ChainShape. Operations
/// that depend on the concrete geometry are the B2Shape* free functions below.
type B2Shape interface {
	/// Get the type of this shape. You can use this to down cast to the concrete shape.
	GetType() uint8

	/// Get the skin radius of this shape.
	GetRadius() float64

	/// Get the density the cached mass data was computed with.
	GetDensity() float64

	/// Get the mass data computed at construction or by the last setter.
	GetMassData() B2MassData

	/// Get the number of child primitives.
	GetChildCount() int

	base() *B2ShapeBase
}

/// Common state shared by all shapes.
type B2ShapeBase struct {
	M_type uint8

	/// Radius of a shape. For polygonal shapes this must be b2_polygonRadius. There is no support for
	/// making rounded polygons.
	M_radius float64

	M_density  float64
	M_massData B2MassData
}

func (shape *B2ShapeBase) base() *B2ShapeBase {
	return shape
}

func (shape B2ShapeBase) GetType() uint8 {
	return shape.M_type
}

func (shape B2ShapeBase) GetRadius() float64 {
	return shape.M_radius
}

func (shape B2ShapeBase) GetDensity() float64 {
	return shape.M_density
}

func (shape B2ShapeBase) GetMassData() B2MassData {
	return shape.M_massData
}

/// Test a point for containment in this shape. This only works for convex shapes.
/// @param xf the shape world transform.
/// @param p a point in world coordinates.
func B2ShapeTestPoint(shape B2Shape, xf B2Transform, p B2Vec2) bool {
	switch s := shape.(type) {
	case *B2CircleShape:
		return s.TestPoint(xf, p)
	case *B2PolygonShape:
		return s.TestPoint(xf, p)
	case *B2EdgeShape:
		return s.TestPoint(xf, p)
	case *B2ChainShape:
		return s.TestPoint(xf, p)
	}

	B2Assert(false)
	return false
}

/// Cast a ray against a child shape.
/// @param input the ray-cast input parameters.
/// @param xf the transform to be applied to the shape.
/// @param childIndex the child shape index
func B2ShapeRayCast(shape B2Shape, input B2RayCastInput, xf B2Transform, childIndex int) (B2RayCastOutput, bool) {
	switch s := shape.(type) {
	case *B2CircleShape:
		return s.RayCast(input, xf, childIndex)
	case *B2PolygonShape:
		return s.RayCast(input, xf, childIndex)
	case *B2EdgeShape:
		return s.RayCast(input, xf, childIndex)
	case *B2ChainShape:
		return s.RayCast(input, xf, childIndex)
	}

	B2Assert(false)
	return B2RayCastOutput{}, false
}

/// Given a transform, compute the associated axis aligned bounding box for a child shape.
func B2ShapeComputeAABB(shape B2Shape, xf B2Transform, childIndex int) B2AABB {
	switch s := shape.(type) {
	case *B2CircleShape:
		return s.ComputeAABB(xf, childIndex)
	case *B2PolygonShape:
		return s.ComputeAABB(xf, childIndex)
	case *B2EdgeShape:
		return s.ComputeAABB(xf, childIndex)
	case *B2ChainShape:
		return s.ComputeAABB(xf, childIndex)
	}

	B2Assert(false)
	return B2AABB{}
}

/// Compute the mass properties of this shape using its dimensions and density.
/// The inertia tensor is computed about the local origin.
func B2ShapeComputeMass(shape B2Shape, density float64) B2MassData {
	switch s := shape.(type) {
	case *B2CircleShape:
		return s.ComputeMass(density)
	case *B2PolygonShape:
		return s.ComputeMass(density)
	case *B2EdgeShape:
		return s.ComputeMass(density)
	case *B2ChainShape:
		return s.ComputeMass(density)
	}

	B2Assert(false)
	return MakeMassData()
}

/// Get the number of child primitives of a shape.
func B2ShapeChildCount(shape B2Shape) int {
	return shape.GetChildCount()
}

/// Get the shape kind, one of the B2Shape_Type values.
func B2ShapeKind(shape B2Shape) uint8 {
	return shape.base().M_type
}

/// Get the skin radius of a shape.
func B2ShapeRadius(shape B2Shape) float64 {
	return shape.base().M_radius
}

/// Clone the concrete shape.
func B2ShapeClone(shape B2Shape) B2Shape {
	switch s := shape.(type) {
	case *B2CircleShape:
		clone := *s
		return &clone
	case *B2PolygonShape:
		clone := *s
		clone.M_vertices = append([]B2Vec2(nil), s.M_vertices...)
		clone.M_normals = append([]B2Vec2(nil), s.M_normals...)
		return &clone
	case *B2EdgeShape:
		clone := *s
		return &clone
	case *B2ChainShape:
		clone := *s
		clone.M_vertices = append([]B2Vec2(nil), s.M_vertices...)
		return &clone
	}

	B2Assert(false)
	return nil
}

/// Set the density of a shape and recompute its mass data.
func B2ShapeSetDensity(shape B2Shape, density float64) {
	b := shape.base()
	b.M_density = density
	b.M_massData = B2ShapeComputeMass(shape, density)
}

func b2ShapeTypeName(t uint8) string {
	switch t {
	case B2Shape_Type.E_circle:
		return "circle"
	case B2Shape_Type.E_edge:
		return "edge"
	case B2Shape_Type.E_polygon:
		return "polygon"
	case B2Shape_Type.E_chain:
		return "chain"
	}
	return "unknown"
}
