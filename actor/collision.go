package actor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motorkit/motor/phys"
)

// State enumerates the three grounding states. Exactly one holds at any time;
// it is a pure function of ground presence and slope angle.
type State uint8

const (
	NotGrounded State = iota
	StableGrounded
	UnstableGrounded
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StableGrounded:
		return "StableGrounded"
	case UnstableGrounded:
		return "UnstableGrounded"
	default:
		return "NotGrounded"
	}
}

// CollisionInfo describes everything the actor touched during the current
// tick. It is recomputed from scratch every tick and is read-only to
// consumers.
type CollisionInfo struct {
	// Ground contact.
	HasGround       bool
	GroundPoint     mgl32.Vec3
	GroundNormal    mgl32.Vec3
	// StableNormal is the normal used for projecting velocity. On edges it
	// may differ from GroundNormal; while not stably grounded it reports the
	// actor's own up axis as a neutral fallback.
	StableNormal    mgl32.Vec3
	GroundAngle     float32
	GroundCollider  phys.Collider
	GroundRigidbody phys.Rigidbody

	// Edge geometry, valid while IsOnEdge.
	IsOnEdge    bool
	UpperNormal mgl32.Vec3
	LowerNormal mgl32.Vec3
	UpperAngle  float32
	LowerAngle  float32

	// First qualifying wall contact of the tick.
	WallCollision bool
	WallPoint     mgl32.Vec3
	WallNormal    mgl32.Vec3
	WallAngle     float32
	WallCollider  phys.Collider

	// First qualifying head (ceiling) contact of the tick.
	HeadCollision bool
	HeadPoint     mgl32.Vec3
	HeadNormal    mgl32.Vec3
	HeadAngle     float32
	HeadCollider  phys.Collider

	// Ground prediction, populated while airborne/unstable.
	PredictedGround         phys.Collider
	PredictedGroundDistance float32
	PredictedGroundAngle    float32
	HasPredictedGround      bool
}

// Timers accumulate how long each grounding condition has held, in seconds.
// Each timer resets to zero the moment its condition becomes false.
type Timers struct {
	GroundedTime         float32
	NotGroundedTime      float32
	StableGroundedTime   float32
	UnstableGroundedTime float32
}
