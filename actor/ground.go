package actor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motorkit/motor/mmath"
	"github.com/motorkit/motor/phys"
)

// platformCacheCap bounds the platform lookup cache per actor. An actor only
// meets so many distinct platforms before the oldest entry is stale anyway.
const platformCacheCap = 64

// SetReferenceRigidbody overrides the rigidbody the actor couples to,
// regardless of what it is standing on. Pass nil to restore coupling to the
// probed ground.
func (a *Actor) SetReferenceRigidbody(rb phys.Rigidbody) { a.refRigidbody = rb }

// ReferenceRigidbody returns the coupling override, or nil.
func (a *Actor) ReferenceRigidbody() phys.Rigidbody { return a.refRigidbody }

// groundRigidbody resolves which rigidbody, if any, the actor's motion should
// follow this tick. The explicit override wins over the probed ground.
func (a *Actor) groundRigidbody() phys.Rigidbody {
	if a.refRigidbody != nil {
		return a.refRigidbody
	}
	if !a.collisions.HasGround {
		return nil
	}
	return a.collisions.GroundRigidbody
}

// groundDisplacement computes how far the ground under the actor will carry
// it this tick, and updates the ground velocity accordingly. Platforms report
// their next pose directly, so the actor lands exactly where the platform
// will be instead of trailing one tick behind; plain rigidbodies contribute
// their surface velocity at the contact point while the actor is stable.
func (a *Actor) groundDisplacement(dt float32) mgl32.Vec3 {
	rb := a.groundRigidbody()
	if rb == nil || dt <= 0 {
		a.groundVel = mgl32.Vec3{}
		return mgl32.Vec3{}
	}

	if p, ok := a.platformOf(rb); ok {
		disp := a.platformDisplacement(p, dt)
		a.groundVel = disp.Mul(1 / dt)
		return disp
	}

	if a.CurrentState() != StableGrounded {
		a.groundVel = mgl32.Vec3{}
		return mgl32.Vec3{}
	}
	vel := rb.VelocityAt(a.collisions.GroundPoint)
	a.groundVel = vel
	return vel.Mul(dt)
}

// platformOf resolves the platform interface behind the coupled rigidbody.
// When the actor stands on a known collider the binding comes from the cache,
// falling back to a type assertion that also seeds the cache for next time.
func (a *Actor) platformOf(rb phys.Rigidbody) (phys.Platform, bool) {
	c := a.collisions.GroundCollider
	if a.refRigidbody == nil && c != nil {
		if p, ok := a.platforms.Get(c.ID()); ok && phys.Rigidbody(p) == rb {
			return p, true
		}
		if p, ok := rb.(phys.Platform); ok {
			a.cachePlatform(c.ID(), p)
			return p, true
		}
		return nil, false
	}
	p, ok := rb.(phys.Platform)
	return p, ok
}

// platformDisplacement derives the actor's carry displacement from the
// platform's target pose: the platform's own translation plus the swing of
// the actor's offset from the platform centre under the pending rotation.
func (a *Actor) platformDisplacement(p phys.Platform, dt float32) mgl32.Vec3 {
	curPos := p.Position()
	curRot := p.Rotation()
	dq := p.TargetRotation(dt).Mul(curRot.Inverse()).Normalize()

	offset := a.pos.Sub(curPos)
	disp := p.TargetPosition(dt).Sub(curPos).Add(dq.Rotate(offset).Sub(offset))

	if a.opts.RotateForwardWithGround {
		yaw := mmath.YawDelta(dq, a.Up())
		if yaw != 0 {
			a.rot = mgl32.QuatRotate(mgl32.DegToRad(yaw), a.Up()).Mul(a.rot).Normalize()
		}
	}
	return disp
}

// cachePlatform remembers a collider-to-platform binding, evicting the oldest
// entry once the cache is full.
func (a *Actor) cachePlatform(id uint64, p phys.Platform) {
	if _, ok := a.platforms.Get(id); ok {
		return
	}
	if a.platforms.Len() >= platformCacheCap {
		if front := a.platforms.Front(); front != nil {
			a.platforms.Delete(front.Key)
		}
	}
	a.platforms.Set(id, p)
}

// PlatformFor returns the cached platform bound to a collider identity, if
// the actor has stood on it before.
func (a *Actor) PlatformFor(id uint64) (phys.Platform, bool) {
	return a.platforms.Get(id)
}
