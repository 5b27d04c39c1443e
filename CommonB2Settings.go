package box2d

import (
	"fmt"
	"math"
)

const B2DEBUG = false

// B2Assert panics when an internal invariant is broken. User input errors are
// reported through error returns instead.
func B2Assert(a bool) {
	if !a {
		panic("B2Assert")
	}
}

// B2Log receives the output of the Dump methods. Hosts may redirect it.
var B2Log = func(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// Go expression rebuilding v, for dumps.
func b2DumpVec(v B2Vec2) string {
	return fmt.Sprintf("box2d.MakeB2Vec2(%.15e, %.15e)", v.X, v.Y)
}

const B2_maxFloat = math.MaxFloat64
const B2_epsilon = 2.220446049250313e-16
const B2_pi = math.Pi

/// @file
/// Global tuning constants based on meters-kilograms-seconds (MKS) units.
///

// Collision

/// The maximum number of contact points between two convex shapes. Do
/// not change this value.
const B2_maxManifoldPoints = 2

/// The maximum number of vertices on a convex polygon.
const B2_maxPolygonVertices = 8

/// This is used to fatten AABBs handed to the pair finder. This allows proxies
/// to move by a small amount without creating and destroying contacts.
/// This is in meters.
const B2_aabbExtension = 0.1

/// This is used to fatten AABBs in the pair finder. This is used to predict
/// the future position based on the current displacement.
/// This is a dimensionless multiplier.
const B2_aabbMultiplier = 2.0

/// A small length used as a collision and constraint tolerance. Usually it is
/// chosen to be numerically significant, but visually insignificant.
const B2_linearSlop = 0.005

/// A small angle used as a collision and constraint tolerance. Usually it is
/// chosen to be numerically significant, but visually insignificant.
const B2_angularSlop = (2.0 / 180.0 * B2_pi)

/// The radius of the polygon/edge shape skin. This should not be modified. Making
/// this smaller means polygons will have an insufficient buffer for resting contact.
/// Making it larger may create artifacts for vertex collision.
const B2_polygonRadius = (2.0 * B2_linearSlop)

// Dynamics

/// A velocity threshold for elastic collisions. Any collision with a relative linear
/// velocity below this threshold will be treated as inelastic.
const B2_velocityThreshold = 1.0

/// The maximum linear position correction used when solving constraints. This helps to
/// prevent overshoot.
const B2_maxLinearCorrection = 0.2

/// The maximum angular position correction used when solving constraints. This helps to
/// prevent overshoot.
const B2_maxAngularCorrection = (8.0 / 180.0 * B2_pi)

/// The maximum linear velocity of a body. This limit is very large and is used
/// to prevent numerical problems. You shouldn't need to adjust this.
const B2_maxTranslation = 2.0
const B2_maxTranslationSquared = (B2_maxTranslation * B2_maxTranslation)

/// The maximum angular velocity of a body. This limit is very large and is used
/// to prevent numerical problems. You shouldn't need to adjust this.
const B2_maxRotation = (0.5 * B2_pi)
const B2_maxRotationSquared = (B2_maxRotation * B2_maxRotation)

/// This scale factor controls how fast overlap is resolved. Ideally this would be 1 so
/// that overlap is removed in one time step. However using values close to 1 often lead
/// to overshoot.
const B2_baumgarte = 0.2

/// Ensure a reasonable condition number for the 2-point block solver.
const B2_maxConditionNumber = 1000.0

// Sleep

/// The time that a body must be still before it will go to sleep.
const B2_timeToSleep = 0.5

/// A body cannot sleep if its linear velocity is above this tolerance.
const B2_linearSleepTolerance = 0.01

/// A body cannot sleep if its angular velocity is above this tolerance.
const B2_angularSleepTolerance = (2.0 / 180.0 * B2_pi)

/// Default iteration counts used by the reference demos.
const B2_defaultVelocityIterations = 8
const B2_defaultPositionIterations = 3

/// Mixing law for friction. The idea is to allow either fixture to drive the
/// friction to zero. For example, anything slides on ice.
func B2MixFriction(friction1, friction2 float64) float64 {
	return math.Sqrt(friction1 * friction2)
}

/// Mixing law for restitution. The idea is allow for anything to bounce off an
/// inelastic surface. For example, a superball bounces on anything.
func B2MixRestitution(restitution1, restitution2 float64) float64 {
	if restitution1 > restitution2 {
		return restitution1
	}
	return restitution2
}

// B2Version follows semantic versioning.
type B2Version struct {
	Major    int
	Minor    int
	Revision int
}

var B2_version = B2Version{Major: 2, Minor: 3, Revision: 2}

func (v B2Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Revision)
}
