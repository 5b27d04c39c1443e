package box2d

import (
	"math"
)

// The two bodies a contact constraint couples: island indices, inverse
// masses and inverse rotational inertias.
type b2ContactBodies struct {
	IndexA, IndexB     int
	InvMassA, InvMassB float64
	InvIA, InvIB       float64
}

func makeB2ContactBodies(bodyA *B2Body, bodyB *B2Body) b2ContactBodies {
	return b2ContactBodies{
		IndexA:   bodyA.M_islandIndex,
		IndexB:   bodyB.M_islandIndex,
		InvMassA: bodyA.M_invMass,
		InvMassB: bodyB.M_invMass,
		InvIA:    bodyA.M_invI,
		InvIB:    bodyB.M_invI,
	}
}

// Constraint mass K along direction d for the anchors rA and rB.
func (cb b2ContactBodies) k(rA B2Vec2, rB B2Vec2, d B2Vec2) float64 {
	rdA := B2Vec2Cross(rA, d)
	rdB := B2Vec2Cross(rB, d)
	return cb.InvMassA + cb.InvMassB + cb.InvIA*rdA*rdA + cb.InvIB*rdB*rdB
}

// Velocities of both bodies while one constraint is being solved.
type b2VelocityPair struct {
	vA, vB B2Vec2
	wA, wB float64
}

// Apply P at the anchors: -P on A, +P on B.
func (v *b2VelocityPair) apply(cb b2ContactBodies, rA B2Vec2, rB B2Vec2, P B2Vec2) {
	v.vA.OperatorMinusInplace(B2Vec2MulScalar(cb.InvMassA, P))
	v.wA -= cb.InvIA * B2Vec2Cross(rA, P)

	v.vB.OperatorPlusInplace(B2Vec2MulScalar(cb.InvMassB, P))
	v.wB += cb.InvIB * B2Vec2Cross(rB, P)
}

// Velocity of B's anchor relative to A's.
func (v b2VelocityPair) relativeAt(rA B2Vec2, rB B2Vec2) B2Vec2 {
	return B2Vec2Sub(
		B2Vec2Add(v.vB, B2Vec2CrossScalarVector(v.wB, rB)),
		B2Vec2Add(v.vA, B2Vec2CrossScalarVector(v.wA, rA)),
	)
}

type B2VelocityConstraintPoint struct {
	RA             B2Vec2
	RB             B2Vec2
	NormalImpulse  float64
	TangentImpulse float64
	NormalMass     float64
	TangentMass    float64
	VelocityBias   float64
}

type B2ContactVelocityConstraint struct {
	b2ContactBodies

	Points       [B2_maxManifoldPoints]B2VelocityConstraintPoint
	Normal       B2Vec2
	NormalMass   B2Mat22
	K            B2Mat22
	Friction     float64
	Restitution  float64
	TangentSpeed float64
	PointCount   int
	ContactIndex int
}

type B2ContactPositionConstraint struct {
	b2ContactBodies

	LocalPoints                [B2_maxManifoldPoints]B2Vec2
	LocalNormal                B2Vec2
	LocalPoint                 B2Vec2
	LocalCenterA, LocalCenterB B2Vec2
	Type                       uint8
	RadiusA, RadiusB           float64
	PointCount                 int
}

type B2ContactSolverDef struct {
	Step       B2TimeStep
	Contacts   []*B2Contact
	Positions  []B2Position
	Velocities []B2Velocity

	/// Disable the 2-point block solver and solve normals one point at a time.
	DisableBlockSolve bool
}

type B2ContactSolver struct {
	M_step                B2TimeStep
	M_positions           []B2Position
	M_velocities          []B2Velocity
	M_positionConstraints []B2ContactPositionConstraint
	M_velocityConstraints []B2ContactVelocityConstraint
	M_contacts            []*B2Contact
	M_blockSolve          bool
}

func MakeB2ContactSolver(def *B2ContactSolverDef) B2ContactSolver {
	count := len(def.Contacts)

	solver := B2ContactSolver{
		M_step:                def.Step,
		M_positionConstraints: make([]B2ContactPositionConstraint, count),
		M_velocityConstraints: make([]B2ContactVelocityConstraint, count),
		M_positions:           def.Positions,
		M_velocities:          def.Velocities,
		M_contacts:            def.Contacts,
		M_blockSolve:          !def.DisableBlockSolve,
	}

	// Position independent portions of the constraints.
	for i, contact := range solver.M_contacts {
		bodyA := contact.M_fixtureA.M_body
		bodyB := contact.M_fixtureB.M_body
		manifold := &contact.M_manifold
		B2Assert(manifold.PointCount > 0)

		bodies := makeB2ContactBodies(bodyA, bodyB)

		vc := &solver.M_velocityConstraints[i]
		*vc = B2ContactVelocityConstraint{
			b2ContactBodies: bodies,
			Friction:        contact.M_friction,
			Restitution:     contact.M_restitution,
			TangentSpeed:    contact.M_tangentSpeed,
			PointCount:      manifold.PointCount,
			ContactIndex:    i,
		}

		pc := &solver.M_positionConstraints[i]
		*pc = B2ContactPositionConstraint{
			b2ContactBodies: bodies,
			LocalNormal:     manifold.LocalNormal,
			LocalPoint:      manifold.LocalPoint,
			LocalCenterA:    bodyA.M_sweep.LocalCenter,
			LocalCenterB:    bodyB.M_sweep.LocalCenter,
			Type:            manifold.Type,
			RadiusA:         contact.M_fixtureA.M_shape.GetRadius(),
			RadiusB:         contact.M_fixtureB.M_shape.GetRadius(),
			PointCount:      manifold.PointCount,
		}

		for j := 0; j < manifold.PointCount; j++ {
			cp := &manifold.Points[j]
			pc.LocalPoints[j] = cp.LocalPoint

			if solver.M_step.WarmStarting {
				vc.Points[j].NormalImpulse = solver.M_step.DtRatio * cp.NormalImpulse
				vc.Points[j].TangentImpulse = solver.M_step.DtRatio * cp.TangentImpulse
			}
		}
	}

	return solver
}

// Body frame from a center of mass position and angle.
func b2TransformFromCenter(c B2Vec2, angle float64, localCenter B2Vec2) B2Transform {
	q := MakeB2RotFromAngle(angle)
	return B2Transform{P: B2Vec2Sub(c, B2RotVec2Mul(q, localCenter)), Q: q}
}

func (solver *B2ContactSolver) velocities(cb b2ContactBodies) b2VelocityPair {
	return b2VelocityPair{
		vA: solver.M_velocities[cb.IndexA].V,
		wA: solver.M_velocities[cb.IndexA].W,
		vB: solver.M_velocities[cb.IndexB].V,
		wB: solver.M_velocities[cb.IndexB].W,
	}
}

func (solver *B2ContactSolver) storeVelocities(cb b2ContactBodies, v b2VelocityPair) {
	solver.M_velocities[cb.IndexA] = B2Velocity{V: v.vA, W: v.wA}
	solver.M_velocities[cb.IndexB] = B2Velocity{V: v.vB, W: v.wB}
}

// Initialize position dependent portions of the velocity constraints.
func (solver *B2ContactSolver) InitializeVelocityConstraints() {
	for i := range solver.M_velocityConstraints {
		vc := &solver.M_velocityConstraints[i]
		pc := &solver.M_positionConstraints[i]
		manifold := &solver.M_contacts[vc.ContactIndex].M_manifold
		B2Assert(manifold.PointCount > 0)

		posA := solver.M_positions[vc.IndexA]
		posB := solver.M_positions[vc.IndexB]
		xfA := b2TransformFromCenter(posA.C, posA.A, pc.LocalCenterA)
		xfB := b2TransformFromCenter(posB.C, posB.A, pc.LocalCenterB)

		worldManifold := B2ComputeWorldManifold(manifold, xfA, pc.RadiusA, xfB, pc.RadiusB)
		vel := solver.velocities(vc.b2ContactBodies)

		vc.Normal = worldManifold.Normal
		tangent := B2Vec2CrossVectorScalar(vc.Normal, 1.0)

		for j := 0; j < vc.PointCount; j++ {
			vcp := &vc.Points[j]
			vcp.RA = B2Vec2Sub(worldManifold.Points[j], posA.C)
			vcp.RB = B2Vec2Sub(worldManifold.Points[j], posB.C)
			vcp.NormalMass = b2InvOrZero(vc.k(vcp.RA, vcp.RB, vc.Normal))
			vcp.TangentMass = b2InvOrZero(vc.k(vcp.RA, vcp.RB, tangent))

			// Restitution only kicks in above the velocity threshold.
			vcp.VelocityBias = 0.0
			if vRel := B2Vec2Dot(vc.Normal, vel.relativeAt(vcp.RA, vcp.RB)); vRel < -B2_velocityThreshold {
				vcp.VelocityBias = -vc.Restitution * vRel
			}
		}

		if vc.PointCount == 2 && solver.M_blockSolve {
			solver.prepareBlock(vc)
		}
	}
}

// Build the 2x2 normal mass matrix of a two point patch, or drop to one
// point when the rows are nearly dependent.
func (solver *B2ContactSolver) prepareBlock(vc *B2ContactVelocityConstraint) {
	p1 := &vc.Points[0]
	p2 := &vc.Points[1]

	rn1A := B2Vec2Cross(p1.RA, vc.Normal)
	rn1B := B2Vec2Cross(p1.RB, vc.Normal)
	rn2A := B2Vec2Cross(p2.RA, vc.Normal)
	rn2B := B2Vec2Cross(p2.RB, vc.Normal)

	k11 := vc.k(p1.RA, p1.RB, vc.Normal)
	k22 := vc.k(p2.RA, p2.RB, vc.Normal)
	k12 := vc.InvMassA + vc.InvMassB + vc.InvIA*rn1A*rn2A + vc.InvIB*rn1B*rn2B

	if k11*k11 >= B2_maxConditionNumber*(k11*k22-k12*k12) {
		vc.PointCount = 1
		return
	}

	vc.K = MakeB2Mat22FromColumns(MakeB2Vec2(k11, k12), MakeB2Vec2(k12, k22))
	vc.NormalMass = vc.K.GetInverse()
}

func (solver *B2ContactSolver) WarmStart() {
	for i := range solver.M_velocityConstraints {
		vc := &solver.M_velocityConstraints[i]
		vel := solver.velocities(vc.b2ContactBodies)
		tangent := B2Vec2CrossVectorScalar(vc.Normal, 1.0)

		for j := 0; j < vc.PointCount; j++ {
			vcp := &vc.Points[j]
			P := B2Vec2Add(B2Vec2MulScalar(vcp.NormalImpulse, vc.Normal), B2Vec2MulScalar(vcp.TangentImpulse, tangent))
			vel.apply(vc.b2ContactBodies, vcp.RA, vcp.RB, P)
		}

		solver.storeVelocities(vc.b2ContactBodies, vel)
	}
}

func (solver *B2ContactSolver) SolveVelocityConstraints() {
	for i := range solver.M_velocityConstraints {
		vc := &solver.M_velocityConstraints[i]
		B2Assert(vc.PointCount == 1 || vc.PointCount == 2)

		vel := solver.velocities(vc.b2ContactBodies)
		tangent := B2Vec2CrossVectorScalar(vc.Normal, 1.0)

		// Friction first, non-penetration gets the last word.
		for j := 0; j < vc.PointCount; j++ {
			vcp := &vc.Points[j]

			vt := B2Vec2Dot(vel.relativeAt(vcp.RA, vcp.RB), tangent) - vc.TangentSpeed
			maxFriction := vc.Friction * vcp.NormalImpulse
			newImpulse := B2FloatClamp(vcp.TangentImpulse-vcp.TangentMass*vt, -maxFriction, maxFriction)
			lambda := newImpulse - vcp.TangentImpulse
			vcp.TangentImpulse = newImpulse

			vel.apply(vc.b2ContactBodies, vcp.RA, vcp.RB, B2Vec2MulScalar(lambda, tangent))
		}

		if vc.PointCount == 1 || !solver.M_blockSolve {
			for j := 0; j < vc.PointCount; j++ {
				vcp := &vc.Points[j]

				vn := B2Vec2Dot(vel.relativeAt(vcp.RA, vcp.RB), vc.Normal)
				newImpulse := math.Max(vcp.NormalImpulse-vcp.NormalMass*(vn-vcp.VelocityBias), 0.0)
				lambda := newImpulse - vcp.NormalImpulse
				vcp.NormalImpulse = newImpulse

				vel.apply(vc.b2ContactBodies, vcp.RA, vcp.RB, B2Vec2MulScalar(lambda, vc.Normal))
			}
		} else {
			solver.solveBlock(vc, &vel)
		}

		solver.storeVelocities(vc.b2ContactBodies, vel)
	}
}

// Two point normal solve. The patch is the LCP
//
//	vn = K*x + b,  vn >= 0,  x >= 0,  vn_i*x_i = 0
//
// solved by total enumeration (Murty), following the Box2D_Lite block
// solver by Dirk Gregorius. x is the accumulated impulse a plus an
// increment, so b is shifted by K*a. The first admissible case is applied.
// When none is admissible the impulses are left as they are.
func (solver *B2ContactSolver) solveBlock(vc *B2ContactVelocityConstraint, vel *b2VelocityPair) {
	cp1 := &vc.Points[0]
	cp2 := &vc.Points[1]

	a := MakeB2Vec2(cp1.NormalImpulse, cp2.NormalImpulse)
	B2Assert(a.X >= 0.0 && a.Y >= 0.0)

	vn1 := B2Vec2Dot(vel.relativeAt(cp1.RA, cp1.RB), vc.Normal)
	vn2 := B2Vec2Dot(vel.relativeAt(cp2.RA, cp2.RB), vc.Normal)

	b := MakeB2Vec2(vn1-cp1.VelocityBias, vn2-cp2.VelocityBias)
	b.OperatorMinusInplace(B2Vec2Mat22Mul(vc.K, a))

	accept := func(x B2Vec2) {
		d := B2Vec2Sub(x, a)
		vel.apply(vc.b2ContactBodies, cp1.RA, cp1.RB, B2Vec2MulScalar(d.X, vc.Normal))
		vel.apply(vc.b2ContactBodies, cp2.RA, cp2.RB, B2Vec2MulScalar(d.Y, vc.Normal))

		cp1.NormalImpulse = x.X
		cp2.NormalImpulse = x.Y
	}

	// Both points active: vn = 0.
	if x := B2Vec2Mat22Mul(vc.NormalMass, b).OperatorNegate(); x.X >= 0.0 && x.Y >= 0.0 {
		accept(x)
		return
	}

	// Only the first point active: vn1 = 0, x2 = 0.
	if x1 := -cp1.NormalMass * b.X; x1 >= 0.0 && vc.K.Ex.Y*x1+b.Y >= 0.0 {
		accept(MakeB2Vec2(x1, 0.0))
		return
	}

	// Only the second point active: vn2 = 0, x1 = 0.
	if x2 := -cp2.NormalMass * b.Y; x2 >= 0.0 && vc.K.Ey.X*x2+b.X >= 0.0 {
		accept(MakeB2Vec2(0.0, x2))
		return
	}

	// Both points separating: x = 0.
	if b.X >= 0.0 && b.Y >= 0.0 {
		accept(MakeB2Vec2(0.0, 0.0))
	}
}

/// Copy the accumulated impulses back to the manifolds for warm starting
/// the next step.
func (solver *B2ContactSolver) StoreImpulses() {
	for i := range solver.M_velocityConstraints {
		vc := &solver.M_velocityConstraints[i]
		manifold := &solver.M_contacts[vc.ContactIndex].M_manifold

		for j := 0; j < vc.PointCount; j++ {
			manifold.Points[j].NormalImpulse = vc.Points[j].NormalImpulse
			manifold.Points[j].TangentImpulse = vc.Points[j].TangentImpulse
		}
	}
}

/// One manifold point re-evaluated at the current positions.
type B2PositionSolverManifold struct {
	Normal     B2Vec2
	Point      B2Vec2
	Separation float64
}

func b2EvaluatePositionPoint(pc *B2ContactPositionConstraint, xfA B2Transform, xfB B2Transform, index int) B2PositionSolverManifold {
	B2Assert(pc.PointCount > 0)

	switch pc.Type {
	case B2Manifold_Type.E_circles:
		pointA := B2TransformVec2Mul(xfA, pc.LocalPoint)
		pointB := B2TransformVec2Mul(xfB, pc.LocalPoints[0])
		normal := B2Vec2Sub(pointB, pointA)
		normal.Normalize()

		return B2PositionSolverManifold{
			Normal:     normal,
			Point:      b2Midpoint(pointA, pointB),
			Separation: B2Vec2Dot(B2Vec2Sub(pointB, pointA), normal) - pc.RadiusA - pc.RadiusB,
		}

	case B2Manifold_Type.E_faceA:
		return b2EvaluateFacePoint(pc, xfA, xfB, index)

	case B2Manifold_Type.E_faceB:
		psm := b2EvaluateFacePoint(pc, xfB, xfA, index)
		// Ensure normal points from A to B
		psm.Normal = psm.Normal.OperatorNegate()
		return psm
	}

	return B2PositionSolverManifold{}
}

// The reference face lives on xfRef, the clip point on xfInc.
func b2EvaluateFacePoint(pc *B2ContactPositionConstraint, xfRef B2Transform, xfInc B2Transform, index int) B2PositionSolverManifold {
	normal := B2RotVec2Mul(xfRef.Q, pc.LocalNormal)
	plane := B2TransformVec2Mul(xfRef, pc.LocalPoint)
	clip := B2TransformVec2Mul(xfInc, pc.LocalPoints[index])

	return B2PositionSolverManifold{
		Normal:     normal,
		Point:      clip,
		Separation: B2Vec2Dot(B2Vec2Sub(clip, plane), normal) - pc.RadiusA - pc.RadiusB,
	}
}

// Sequential position correction with Baumgarte stabilization. Reports
// whether the deepest penetration is within tolerance.
func (solver *B2ContactSolver) SolvePositionConstraints() bool {
	minSeparation := 0.0

	for i := range solver.M_positionConstraints {
		pc := &solver.M_positionConstraints[i]

		cA := solver.M_positions[pc.IndexA].C
		aA := solver.M_positions[pc.IndexA].A
		cB := solver.M_positions[pc.IndexB].C
		aB := solver.M_positions[pc.IndexB].A

		for j := 0; j < pc.PointCount; j++ {
			xfA := b2TransformFromCenter(cA, aA, pc.LocalCenterA)
			xfB := b2TransformFromCenter(cB, aB, pc.LocalCenterB)
			psm := b2EvaluatePositionPoint(pc, xfA, xfB, j)

			rA := B2Vec2Sub(psm.Point, cA)
			rB := B2Vec2Sub(psm.Point, cB)

			minSeparation = math.Min(minSeparation, psm.Separation)

			// Allow slop and cap the correction.
			C := B2FloatClamp(B2_baumgarte*(psm.Separation+B2_linearSlop), -B2_maxLinearCorrection, 0.0)

			impulse := 0.0
			if K := pc.k(rA, rB, psm.Normal); K > 0.0 {
				impulse = -C / K
			}
			P := B2Vec2MulScalar(impulse, psm.Normal)

			cA.OperatorMinusInplace(B2Vec2MulScalar(pc.InvMassA, P))
			aA -= pc.InvIA * B2Vec2Cross(rA, P)

			cB.OperatorPlusInplace(B2Vec2MulScalar(pc.InvMassB, P))
			aB += pc.InvIB * B2Vec2Cross(rB, P)
		}

		solver.M_positions[pc.IndexA] = B2Position{C: cA, A: aA}
		solver.M_positions[pc.IndexB] = B2Position{C: cB, A: aB}
	}

	// Separation is only pushed to -linearSlop, so allow some room below it.
	return minSeparation >= -3.0*B2_linearSlop
}
