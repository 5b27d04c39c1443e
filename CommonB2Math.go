package box2d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

/// This function is used to ensure that a floating point number is not a NaN or infinity.
func B2IsValid(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

///////////////////////////////////////////////////////////////////////////////
/// A 2D column vector.
///////////////////////////////////////////////////////////////////////////////
type B2Vec2 struct {
	X, Y float64
}

func MakeB2Vec2(xIn, yIn float64) B2Vec2 {
	return B2Vec2{
		X: xIn,
		Y: yIn,
	}
}

/// Set this vector to all zeros.
func (v *B2Vec2) SetZero() {
	v.X = 0.0
	v.Y = 0.0
}

/// Set this vector to some specified coordinates.
func (v *B2Vec2) Set(x, y float64) {
	v.X = x
	v.Y = y
}

/// Negate this vector.
func (v B2Vec2) OperatorNegate() B2Vec2 {
	return MakeB2Vec2(-v.X, -v.Y)
}

/// Add a vector to this vector.
func (v *B2Vec2) OperatorPlusInplace(other B2Vec2) {
	v.X += other.X
	v.Y += other.Y
}

/// Subtract a vector from this vector.
func (v *B2Vec2) OperatorMinusInplace(other B2Vec2) {
	v.X -= other.X
	v.Y -= other.Y
}

/// Multiply this vector by a scalar.
func (v *B2Vec2) OperatorScalarMulInplace(a float64) {
	v.X *= a
	v.Y *= a
}

/// Get the length of this vector (the norm).
func (v B2Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

/// Get the length squared. For performance, use this instead of
/// Length (if possible).
func (v B2Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

/// Convert this vector into a unit vector. Returns the length.
func (v *B2Vec2) Normalize() float64 {
	length := v.Length()

	if length < B2_epsilon {
		return 0.0
	}

	invLength := 1.0 / length
	v.X *= invLength
	v.Y *= invLength

	return length
}

/// Does this vector contain finite coordinates?
func (v B2Vec2) IsValid() bool {
	return B2IsValid(v.X) && B2IsValid(v.Y)
}

func (v B2Vec2) toMgl() mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

///////////////////////////////////////////////////////////////////////////////
/// A 2D column vector with 3 elements.
///////////////////////////////////////////////////////////////////////////////
type B2Vec3 struct {
	X, Y, Z float64
}

/// Construct using coordinates.
func MakeB2Vec3(xIn, yIn, zIn float64) B2Vec3 {
	return B2Vec3{
		X: xIn,
		Y: yIn,
		Z: zIn,
	}
}

/// Set this vector to all zeros.
func (v *B2Vec3) SetZero() {
	v.X = 0.0
	v.Y = 0.0
	v.Z = 0.0
}

/// Set this vector to some specified coordinates.
func (v *B2Vec3) Set(x, y, z float64) {
	v.X = x
	v.Y = y
	v.Z = z
}

/// Negate this vector.
func (v B2Vec3) OperatorNegate() B2Vec3 {
	return MakeB2Vec3(-v.X, -v.Y, -v.Z)
}

/// Add a vector to this vector.
func (v *B2Vec3) OperatorPlusInplace(other B2Vec3) {
	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
}

/// Subtract a vector from this vector.
func (v *B2Vec3) OperatorMinusInplace(other B2Vec3) {
	v.X -= other.X
	v.Y -= other.Y
	v.Z -= other.Z
}

func (v B2Vec3) toMgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func makeB2Vec3FromMgl(v mgl64.Vec3) B2Vec3 {
	return MakeB2Vec3(v[0], v[1], v[2])
}

///////////////////////////////////////////////////////////////////////////////
/// A 2-by-2 matrix. Stored in column-major order.
///////////////////////////////////////////////////////////////////////////////
type B2Mat22 struct {
	Ex, Ey B2Vec2
}

/// Construct this matrix using columns.
func MakeB2Mat22FromColumns(c1, c2 B2Vec2) B2Mat22 {
	return B2Mat22{
		Ex: c1,
		Ey: c2,
	}
}

/// Set this matrix to all zeros.
func (m *B2Mat22) SetZero() {
	m.Ex.SetZero()
	m.Ey.SetZero()
}

func (m B2Mat22) toMgl() mgl64.Mat2 {
	return mgl64.Mat2{m.Ex.X, m.Ex.Y, m.Ey.X, m.Ey.Y}
}

func makeB2Mat22FromMgl(m mgl64.Mat2) B2Mat22 {
	return MakeB2Mat22FromColumns(MakeB2Vec2(m[0], m[1]), MakeB2Vec2(m[2], m[3]))
}

// mgl64 treats |det| < 1e-20 as singular. Effective mass matrices of heavy
// bodies have entries near 1e-7 and a determinant far below that, so the
// inverse is taken of a copy scaled to unit magnitude and scaled back.
// Only an exactly zero determinant is singular.
func b2InvMat2(m mgl64.Mat2) mgl64.Mat2 {
	scale := b2MaxAbs(m[:])
	if scale == 0.0 || m.Det() == 0.0 {
		return mgl64.Mat2{}
	}
	return m.Mul(1.0 / scale).Inv().Mul(1.0 / scale)
}

func b2InvMat3(m mgl64.Mat3) mgl64.Mat3 {
	scale := b2MaxAbs(m[:])
	if scale == 0.0 || m.Det() == 0.0 {
		return mgl64.Mat3{}
	}
	return m.Mul(1.0 / scale).Inv().Mul(1.0 / scale)
}

func b2MaxAbs(values []float64) float64 {
	largest := 0.0
	for _, v := range values {
		largest = math.Max(largest, math.Abs(v))
	}
	return largest
}

/// Returns the zero matrix if singular.
func (m B2Mat22) GetInverse() B2Mat22 {
	return makeB2Mat22FromMgl(b2InvMat2(m.toMgl()))
}

/// Solve A * x = b, where b is a column vector. Returns zero if singular.
func (m B2Mat22) Solve(b B2Vec2) B2Vec2 {
	x := b2InvMat2(m.toMgl()).Mul2x1(b.toMgl())
	return MakeB2Vec2(x[0], x[1])
}

///////////////////////////////////////////////////////////////////////////////
/// A 3-by-3 matrix. Stored in column-major order.
///////////////////////////////////////////////////////////////////////////////
type B2Mat33 struct {
	Ex, Ey, Ez B2Vec3
}

/// Construct this matrix using columns.
func MakeB2Mat33FromColumns(c1, c2, c3 B2Vec3) B2Mat33 {
	return B2Mat33{
		Ex: c1,
		Ey: c2,
		Ez: c3,
	}
}

/// Set this matrix to all zeros.
func (m *B2Mat33) SetZero() {
	m.Ex.SetZero()
	m.Ey.SetZero()
	m.Ez.SetZero()
}

func (m B2Mat33) toMgl() mgl64.Mat3 {
	return mgl64.Mat3{
		m.Ex.X, m.Ex.Y, m.Ex.Z,
		m.Ey.X, m.Ey.Y, m.Ey.Z,
		m.Ez.X, m.Ez.Y, m.Ez.Z,
	}
}

func makeB2Mat33FromMgl(m mgl64.Mat3) B2Mat33 {
	return MakeB2Mat33FromColumns(
		MakeB2Vec3(m[0], m[1], m[2]),
		MakeB2Vec3(m[3], m[4], m[5]),
		MakeB2Vec3(m[6], m[7], m[8]),
	)
}

/// Solve A * x = b, where b is a column vector. Returns zero if singular.
func (m B2Mat33) Solve33(b B2Vec3) B2Vec3 {
	return makeB2Vec3FromMgl(b2InvMat3(m.toMgl()).Mul3x1(b.toMgl()))
}

/// Solve A * x = b using only the upper 2-by-2 block. Returns zero if singular.
func (m B2Mat33) Solve22(b B2Vec2) B2Vec2 {
	x := b2InvMat2(m.upper22()).Mul2x1(b.toMgl())
	return MakeB2Vec2(x[0], x[1])
}

func (m B2Mat33) upper22() mgl64.Mat2 {
	return mgl64.Mat2{m.Ex.X, m.Ex.Y, m.Ey.X, m.Ey.Y}
}

/// Get the inverse of the upper 2-by-2 block as a 3-by-3 matrix with zeros
/// in the third row and column.
func (m B2Mat33) GetInverse22(M *B2Mat33) {
	inv := b2InvMat2(m.upper22())

	M.SetZero()
	M.Ex.X = inv[0]
	M.Ex.Y = inv[1]
	M.Ey.X = inv[2]
	M.Ey.Y = inv[3]
}

/// Get the inverse of a symmetric 3-by-3 matrix. Returns the zero matrix if singular.
func (m B2Mat33) GetSymInverse33(M *B2Mat33) {
	*M = makeB2Mat33FromMgl(b2InvMat3(m.toMgl()))

	// Keep the result exactly symmetric.
	M.Ey.X = M.Ex.Y
	M.Ez.X = M.Ex.Z
	M.Ez.Y = M.Ey.Z
}

///////////////////////////////////////////////////////////////////////////////
/// Rotation
///////////////////////////////////////////////////////////////////////////////
type B2Rot struct {
	/// Sine and cosine
	S, C float64
}

func MakeB2Rot() B2Rot {
	return B2Rot{S: 0.0, C: 1.0}
}

/// Initialize from an angle in radians
func MakeB2RotFromAngle(anglerad float64) B2Rot {
	return B2Rot{
		S: math.Sin(anglerad),
		C: math.Cos(anglerad),
	}
}

/// Set using an angle in radians.
func (r *B2Rot) Set(anglerad float64) {
	r.S = math.Sin(anglerad)
	r.C = math.Cos(anglerad)
}

/// Get the angle in radians
func (r B2Rot) GetAngle() float64 {
	return math.Atan2(r.S, r.C)
}

///////////////////////////////////////////////////////////////////////////////
/// A transform contains translation and rotation. It is used to represent
/// the position and orientation of rigid frames.
///////////////////////////////////////////////////////////////////////////////
type B2Transform struct {
	P B2Vec2
	Q B2Rot
}

/// The identity transform.
func MakeB2Transform() B2Transform {
	return B2Transform{
		P: MakeB2Vec2(0, 0),
		Q: MakeB2Rot(),
	}
}

/// Initialize using a position vector and an angle in radians.
func MakeB2TransformByPositionAndAngle(position B2Vec2, anglerad float64) B2Transform {
	return B2Transform{
		P: position,
		Q: MakeB2RotFromAngle(anglerad),
	}
}

/// Set this based on the position and angle.
func (t *B2Transform) Set(position B2Vec2, anglerad float64) {
	t.P = position
	t.Q.Set(anglerad)
}

///////////////////////////////////////////////////////////////////////////////
/// This describes the motion of a body during a step. Shapes are defined
/// with respect to the body origin, which may not coincide with the center
/// of mass. However, to support dynamics we must interpolate the center of
/// mass position.
///////////////////////////////////////////////////////////////////////////////
type B2Sweep struct {
	LocalCenter B2Vec2  ///< local center of mass position
	C0, C       B2Vec2  ///< center world positions
	A0, A       float64 ///< world angles
}

/// The transform at a point of the step, beta in [0,1] with 0 giving c0/a0.
func (sweep B2Sweep) TransformAt(beta float64) B2Transform {
	xf := MakeB2TransformByPositionAndAngle(
		B2Vec2Add(B2Vec2MulScalar(1.0-beta, sweep.C0), B2Vec2MulScalar(beta, sweep.C)),
		(1.0-beta)*sweep.A0+beta*sweep.A,
	)

	// Shift to origin
	xf.P.OperatorMinusInplace(B2RotVec2Mul(xf.Q, sweep.LocalCenter))
	return xf
}

/// Useful constant
var B2Vec2_zero = MakeB2Vec2(0, 0)

/// Perform the dot product on two vectors.
func B2Vec2Dot(a, b B2Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

/// Perform the cross product on two vectors. In 2D this produces a scalar.
func B2Vec2Cross(a, b B2Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

/// Perform the cross product on a vector and a scalar. In 2D this produces
/// a vector.
func B2Vec2CrossVectorScalar(a B2Vec2, s float64) B2Vec2 {
	return MakeB2Vec2(s*a.Y, -s*a.X)
}

/// Perform the cross product on a scalar and a vector. In 2D this produces
/// a vector.
func B2Vec2CrossScalarVector(s float64, a B2Vec2) B2Vec2 {
	return MakeB2Vec2(-s*a.Y, s*a.X)
}

/// Multiply a matrix times a vector. If a rotation matrix is provided,
/// then this transforms the vector from one frame to another.
func B2Vec2Mat22Mul(A B2Mat22, v B2Vec2) B2Vec2 {
	return MakeB2Vec2(A.Ex.X*v.X+A.Ey.X*v.Y, A.Ex.Y*v.X+A.Ey.Y*v.Y)
}

/// Add two vectors component-wise.
func B2Vec2Add(a, b B2Vec2) B2Vec2 {
	return MakeB2Vec2(a.X+b.X, a.Y+b.Y)
}

/// Subtract two vectors component-wise.
func B2Vec2Sub(a, b B2Vec2) B2Vec2 {
	return MakeB2Vec2(a.X-b.X, a.Y-b.Y)
}

func B2Vec2MulScalar(s float64, a B2Vec2) B2Vec2 {
	return MakeB2Vec2(s*a.X, s*a.Y)
}

func B2Vec2Distance(a, b B2Vec2) float64 {
	return B2Vec2Sub(a, b).Length()
}

func B2Vec2DistanceSquared(a, b B2Vec2) float64 {
	c := B2Vec2Sub(a, b)
	return B2Vec2Dot(c, c)
}

func B2Vec3MultScalar(s float64, a B2Vec3) B2Vec3 {
	return MakeB2Vec3(s*a.X, s*a.Y, s*a.Z)
}

/// Multiply a matrix times a vector.
func B2Vec3Mat33Mul(A B2Mat33, v B2Vec3) B2Vec3 {
	return makeB2Vec3FromMgl(A.toMgl().Mul3x1(v.toMgl()))
}

/// Multiply the upper 2-by-2 block of a matrix times a vector.
func B2Vec2Mul22(A B2Mat33, v B2Vec2) B2Vec2 {
	return MakeB2Vec2(A.Ex.X*v.X+A.Ey.X*v.Y, A.Ex.Y*v.X+A.Ey.Y*v.Y)
}

/// Rotate a vector
func B2RotVec2Mul(q B2Rot, v B2Vec2) B2Vec2 {
	return MakeB2Vec2(
		q.C*v.X-q.S*v.Y,
		q.S*v.X+q.C*v.Y,
	)
}

/// Inverse rotate a vector
func B2RotVec2MulT(q B2Rot, v B2Vec2) B2Vec2 {
	return MakeB2Vec2(
		q.C*v.X+q.S*v.Y,
		-q.S*v.X+q.C*v.Y,
	)
}

func B2TransformVec2Mul(T B2Transform, v B2Vec2) B2Vec2 {
	return MakeB2Vec2(
		(T.Q.C*v.X-T.Q.S*v.Y)+T.P.X,
		(T.Q.S*v.X+T.Q.C*v.Y)+T.P.Y,
	)
}

func B2TransformVec2MulT(T B2Transform, v B2Vec2) B2Vec2 {
	px := v.X - T.P.X
	py := v.Y - T.P.Y
	x := (T.Q.C*px + T.Q.S*py)
	y := (-T.Q.S*px + T.Q.C*py)

	return MakeB2Vec2(x, y)
}

// v2 = A.q' * (B.q * v1 + B.p - A.p)
func B2TransformMulT(A, B B2Transform) B2Transform {
	return B2Transform{
		P: B2RotVec2MulT(A.Q, B2Vec2Sub(B.P, A.P)),
		Q: B2Rot{
			S: A.Q.C*B.Q.S - A.Q.S*B.Q.C,
			C: A.Q.C*B.Q.C + A.Q.S*B.Q.S,
		},
	}
}

func B2Vec2Abs(a B2Vec2) B2Vec2 {
	return MakeB2Vec2(math.Abs(a.X), math.Abs(a.Y))
}

func B2Vec2Min(a, b B2Vec2) B2Vec2 {
	return MakeB2Vec2(
		math.Min(a.X, b.X),
		math.Min(a.Y, b.Y),
	)
}

func B2Vec2Max(a, b B2Vec2) B2Vec2 {
	return MakeB2Vec2(
		math.Max(a.X, b.X),
		math.Max(a.Y, b.Y),
	)
}

func B2FloatClamp(a, low, high float64) float64 {
	return math.Max(low, math.Min(a, high))
}

func B2Vec3Sub(a, b B2Vec3) B2Vec3 {
	return MakeB2Vec3(a.X-b.X, a.Y-b.Y, a.Z-b.Z)
}
