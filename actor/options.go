package actor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motorkit/motor/mmath"
	"github.com/motorkit/motor/phys"
)

// VelocityMode selects which velocity snapshot the pipeline re-adopts at the
// end of a tick.
type VelocityMode uint8

const (
	// UseInputVelocity restores the velocity captured before the tick ran.
	UseInputVelocity VelocityMode = iota
	// UsePreSimulationVelocity adopts the velocity after internal resolution
	// but before external force integration.
	UsePreSimulationVelocity
	// UsePostSimulationVelocity keeps the velocity produced by the host's
	// force integration step.
	UsePostSimulationVelocity
)

// Options define the tuning of an actor. DefaultOptions returns the values a
// typical humanoid capsule uses; hosts override what they need.
type Options struct {
	// BodySize holds the capsule radius (X) and height (Y).
	BodySize mgl32.Vec2

	// SlopeLimit is the maximum walkable slope angle in degrees. A contact
	// exactly at the limit is still stable.
	SlopeLimit float32
	// StepOffset is the vertical band near the base within which obstacles
	// are ignored by the stable solver, enabling step climbing.
	StepOffset float32
	// StepDownDistance is how far below the base the ground probe searches.
	StepDownDistance float32
	// SkinWidth is the geometric margin kept between the body and contacts.
	SkinWidth float32

	// SlideIterations bounds the collide-and-slide loops.
	SlideIterations int

	// EdgeCompensation corrects the probe position on stable edges for the
	// rounded sampling shape approximating a flat-bottomed cylinder.
	EdgeCompensation bool
	// PreventUnstableClimb re-runs the stable solver against close unstable
	// ground so the actor cannot step onto a bad slope.
	PreventUnstableClimb bool

	// PredictionDistance is the extra downward window used by ground
	// prediction while airborne.
	PredictionDistance float32

	// ForceNotGroundedTicks is the default suppression length used by
	// ForceNotGrounded.
	ForceNotGroundedTicks int

	// SizeLerpSpeed is how fast the body size approaches its target, in
	// units per second.
	SizeLerpSpeed float32

	// StableVelocityMode and UnstableVelocityMode pick the velocity policy
	// applied after integration for each stability case.
	StableVelocityMode   VelocityMode
	UnstableVelocityMode VelocityMode

	// RotateForwardWithGround applies the yaw component of a platform's
	// rotation to the actor's forward direction.
	RotateForwardWithGround bool

	// PushDynamicRigidbodies lets the solvers push (stable: pass through;
	// unstable: apply impulses to) non-kinematic dynamic bodies on layers
	// selected by PushLayerMask.
	PushDynamicRigidbodies bool
	PushLayerMask          uint32

	// LayerMask selects which collider layers the actor collides with.
	LayerMask uint32

	// OwnCollider is the actor's collider in the host backend, excluded from
	// every query. May be nil when the backend does not register the actor.
	OwnCollider phys.Collider
}

// DefaultOptions returns the default actor tuning.
func DefaultOptions() Options {
	return Options{
		BodySize:                mgl32.Vec2{0.4, 1.8},
		SlopeLimit:              mmath.DefaultSlopeLimit,
		StepOffset:              mmath.DefaultStepOffset,
		StepDownDistance:        mmath.DefaultStepDownDistance,
		SkinWidth:               mmath.DefaultSkinWidth,
		SlideIterations:         mmath.DefaultSlideIterations,
		EdgeCompensation:        true,
		PreventUnstableClimb:    true,
		PredictionDistance:      mmath.DefaultPredictionDistance,
		ForceNotGroundedTicks:   mmath.DefaultForceNotGroundedTicks,
		SizeLerpSpeed:           mmath.DefaultSizeLerpSpeed,
		StableVelocityMode:      UsePostSimulationVelocity,
		UnstableVelocityMode:    UsePostSimulationVelocity,
		RotateForwardWithGround: true,
		PushDynamicRigidbodies:  true,
		PushLayerMask:           ^uint32(0),
		LayerMask:               ^uint32(0),
	}
}
