package box2d

/// Hysteresis used when two candidate reference faces have nearly the same
/// separation. Picking the same face from frame to frame keeps contact ids
/// stable, which warm starting depends on.
type B2CollisionTolerance struct {
	/// Polygon versus polygon: face B is only chosen when its separation
	/// exceeds face A's by more than this bias.
	ReferenceFaceBias float64

	/// Edge versus polygon: the polygon axis is only chosen when its separation
	/// exceeds EdgeRelative * edgeSeparation + EdgeAbsolute.
	EdgeRelative float64
	EdgeAbsolute float64
}

func MakeB2CollisionTolerance() B2CollisionTolerance {
	return B2CollisionTolerance{
		ReferenceFaceBias: 0.1 * B2_linearSlop,
		EdgeRelative:      0.98,
		EdgeAbsolute:      0.001,
	}
}

/// The tolerances used by the collide functions that take none.
var B2DefaultCollisionTolerance = MakeB2CollisionTolerance()
