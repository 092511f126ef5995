// Package actor implements the motion-resolution core of a capsule character
// controller: ground probing and stability classification, the collide-and-
// slide solvers, dynamic ground coupling and the velocity pipeline. One Actor
// owns the full state of one character and resolves exactly one simulation
// tick per PreIntegration/PostIntegration pair.
package actor

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/motorkit/motor/internal"
	"github.com/motorkit/motor/merror"
	"github.com/motorkit/motor/mmath"
	"github.com/motorkit/motor/phys"
)

// Actor is the motion state of a single character. All methods must be called
// from the simulation goroutine that owns the actor; the engine does no
// internal locking.
type Actor struct {
	opts    Options
	queries phys.QueryProvider
	log     logrus.FieldLogger

	pos mgl32.Vec3
	rot mgl32.Quat

	bodySize       mgl32.Vec2
	targetBodySize mgl32.Vec2

	vel         mgl32.Vec3
	inputVel    mgl32.Vec3
	preSimVel   mgl32.Vec3
	postSimVel  mgl32.Vec3
	externalVel mgl32.Vec3

	groundVel    mgl32.Vec3
	refRigidbody phys.Rigidbody

	collisions CollisionInfo
	timers     Timers

	wasGrounded bool
	wasStable   bool

	forceUngroundedTicks int

	// consumedPlanar is set when the ground prober already slid the planar
	// displacement against a close unstable surface this tick.
	consumedPlanar bool

	platforms *orderedmap.OrderedMap[uint64, phys.Platform]

	contacts  *[]phys.HitInfo
	observers []Observer
}

// New validates the configuration and returns a ready actor at the origin.
// A nil query provider or an unusable body shape is the one fatal condition:
// the actor must not enter the simulation loop at all.
func New(log logrus.FieldLogger, queries phys.QueryProvider, opts Options) (*Actor, error) {
	if queries == nil {
		return nil, merror.New("actor: no query provider bound")
	}
	shape := phys.Shape{Radius: opts.BodySize.X(), Height: opts.BodySize.Y()}
	if !shape.Valid() {
		return nil, merror.New("actor: unusable body size %v", opts.BodySize)
	}
	if opts.SlideIterations < 1 {
		return nil, merror.New("actor: slide iterations must be at least 1")
	}

	return &Actor{
		opts:           opts,
		queries:        queries,
		log:            log,
		rot:            mgl32.QuatIdent(),
		bodySize:       opts.BodySize,
		targetBodySize: opts.BodySize,
		platforms:      orderedmap.NewOrderedMap[uint64, phys.Platform](),
		contacts:       internal.ContactPool.Get().(*[]phys.HitInfo),
	}, nil
}

// Close releases the actor's pooled buffers. The actor must not be ticked
// afterwards.
func (a *Actor) Close() {
	if a.contacts != nil {
		*a.contacts = (*a.contacts)[:0]
		internal.ContactPool.Put(a.contacts)
		a.contacts = nil
	}
}

func (a *Actor) debugf(format string, args ...interface{}) {
	if a.log != nil {
		a.log.Debugf(format, args...)
	}
}

// Position returns the current position of the actor.
func (a *Actor) Position() mgl32.Vec3 { return a.pos }

// Rotation returns the current rotation of the actor.
func (a *Actor) Rotation() mgl32.Quat { return a.rot }

// Up returns the actor's up axis. It need not match world up.
func (a *Actor) Up() mgl32.Vec3 { return a.rot.Rotate(mgl32.Vec3{0, 1, 0}) }

// Forward returns the actor's forward axis.
func (a *Actor) Forward() mgl32.Vec3 { return a.rot.Rotate(mgl32.Vec3{0, 0, 1}) }

// Right returns the actor's right axis.
func (a *Actor) Right() mgl32.Vec3 { return a.rot.Rotate(mgl32.Vec3{1, 0, 0}) }

// Velocity returns the actor's own linear velocity, excluding the ground
// coupling term.
func (a *Actor) Velocity() mgl32.Vec3 { return a.vel }

// SetVelocity sets the actor's linear velocity.
func (a *Actor) SetVelocity(vel mgl32.Vec3) { a.vel = vel }

// InputVelocity returns the velocity captured at the start of the tick.
func (a *Actor) InputVelocity() mgl32.Vec3 { return a.inputVel }

// PreSimulationVelocity returns the velocity after internal resolution,
// before external force integration.
func (a *Actor) PreSimulationVelocity() mgl32.Vec3 { return a.preSimVel }

// PostSimulationVelocity returns the velocity after external force
// integration.
func (a *Actor) PostSimulationVelocity() mgl32.Vec3 { return a.postSimVel }

// ExternalVelocity returns the velocity contribution not caused by this
// engine (post-simulation minus pre-simulation).
func (a *Actor) ExternalVelocity() mgl32.Vec3 { return a.externalVel }

// GroundVelocity returns the velocity imparted by the ground's own motion.
func (a *Actor) GroundVelocity() mgl32.Vec3 { return a.groundVel }

// BodySize returns the current capsule radius and height.
func (a *Actor) BodySize() mgl32.Vec2 { return a.bodySize }

// TargetBodySize returns the size the body is interpolating toward.
func (a *Actor) TargetBodySize() mgl32.Vec2 { return a.targetBodySize }

// Collisions returns the contact description of the current tick.
func (a *Actor) Collisions() CollisionInfo { return a.collisions }

// Contacts returns every contact recorded during the current tick, capped at
// a fixed buffer size. The slice is reused between ticks; callers must not
// retain it.
func (a *Actor) Contacts() []phys.HitInfo { return *a.contacts }

// Timers returns the grounding timers.
func (a *Actor) Timers() Timers { return a.timers }

// CurrentState derives the grounding state from ground presence and slope
// angle. Exactly one state holds at any time.
func (a *Actor) CurrentState() State {
	if !a.collisions.HasGround {
		return NotGrounded
	}
	if a.collisions.GroundAngle <= a.opts.SlopeLimit {
		return StableGrounded
	}
	return UnstableGrounded
}

// IsGrounded reports whether the actor has any ground contact.
func (a *Actor) IsGrounded() bool { return a.collisions.HasGround }

// IsStable reports whether the actor stands on walkable ground.
func (a *Actor) IsStable() bool { return a.CurrentState() == StableGrounded }

// shape returns the current body shape.
func (a *Actor) shape() phys.Shape {
	return phys.Shape{Radius: a.bodySize.X(), Height: a.bodySize.Y()}
}

// filter returns the query filter excluding the actor's own collider and
// trigger volumes.
func (a *Actor) filter() phys.Filter {
	return phys.Filter{
		LayerMask:      a.opts.LayerMask,
		IgnoreTriggers: true,
		Ignore:         a.opts.OwnCollider,
	}
}

// Teleport moves the actor to the given pose immediately, resetting the
// ground coupling terms, and notifies observers.
func (a *Actor) Teleport(pos mgl32.Vec3, rot mgl32.Quat) {
	a.pos = pos
	if rot.Len() > 1e-9 {
		a.rot = rot.Normalize()
	}
	a.groundVel = mgl32.Vec3{}
	a.notifyTeleport(a.pos, a.rot)
}

// Move assigns the actor's position kinematically, without resetting any
// coupling state.
func (a *Actor) Move(pos mgl32.Vec3) { a.pos = pos }

// Rotate assigns the actor's rotation. A degenerate quaternion is ignored.
func (a *Actor) Rotate(rot mgl32.Quat) {
	if rot.Len() <= 1e-9 {
		return
	}
	a.rot = rot.Normalize()
}

// SetForward yaws the actor so its forward axis points along dir, keeping the
// up axis fixed. A zero or up-aligned direction is a no-op.
func (a *Actor) SetForward(dir mgl32.Vec3) {
	planar := mmath.ProjectOnPlane(dir, a.Up())
	if mmath.IsZeroVec(planar) {
		return
	}
	yaw := mmath.SignedAngleAround(a.Forward(), planar, a.Up())
	a.rot = mgl32.QuatRotate(mgl32.DegToRad(yaw), a.Up()).Mul(a.rot).Normalize()
}

// ForceGrounded clears the not-grounded suppression and immediately probes
// for ground below the actor.
func (a *Actor) ForceGrounded() {
	wasGrounded := a.collisions.HasGround
	a.forceUngroundedTicks = 0
	a.resetGroundInfo()
	a.probeGround(0)
	if !wasGrounded && a.collisions.HasGround {
		a.notifyGroundedEnter(a.vel.Sub(a.groundVel))
	}
}

// ForceNotGrounded suppresses ground re-acquisition for the given number of
// ticks (the configured default when omitted). The latest call wins; counts
// do not accumulate.
func (a *Actor) ForceNotGrounded(ticks ...int) {
	n := a.opts.ForceNotGroundedTicks
	if len(ticks) > 0 {
		n = ticks[0]
	}
	if n < 0 {
		n = 0
	}
	a.forceUngroundedTicks = n
	wasGrounded := a.collisions.HasGround
	a.resetGroundInfo()
	a.groundVel = mgl32.Vec3{}
	if wasGrounded {
		a.notifyGroundedExit()
	}
}
