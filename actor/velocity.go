package actor

import (
	"github.com/motorkit/motor/mmath"
)

// PreIntegration resolves one simulation tick: it probes the ground, runs the
// matching collide-and-slide solver on the tick's displacement and applies
// the ground coupling. It must run before the host integrates external
// forces; PostIntegration completes the tick afterwards.
func (a *Actor) PreIntegration(dt float32) {
	a.wasGrounded = a.collisions.HasGround
	a.wasStable = a.IsStable()

	a.inputVel = a.vel
	a.beginTick()
	a.lerpBodySize(dt)
	a.probeGround(dt)

	up := a.Up()
	if a.IsStable() {
		// On walkable ground the velocity lives in the ground plane; any
		// component into the surface is resolved by the snap, not the slide.
		a.vel = mmath.ProjectOnPlane(a.vel, a.collisions.StableNormal)
		a.slideStable(a.vel.Mul(dt), false)
	} else {
		disp := a.vel.Mul(dt)
		if a.consumedPlanar {
			disp = mmath.VerticalOn(disp, up)
		}
		a.slideUnstable(disp, dt)
	}

	a.pos = a.pos.Add(a.groundDisplacement(dt))

	if a.forceUngroundedTicks > 0 {
		a.forceUngroundedTicks--
	}

	a.preSimVel = a.vel
	a.updateTimers(dt)
	a.fireGroundTransitions()
}

// PostIntegration closes the tick after the host's force integration. It
// measures the external velocity contribution and re-adopts the working
// velocity according to the configured source for the current state.
func (a *Actor) PostIntegration(dt float32) {
	a.postSimVel = a.vel
	a.externalVel = a.postSimVel.Sub(a.preSimVel)

	stable := a.IsStable()
	mode := a.opts.UnstableVelocityMode
	if stable {
		mode = a.opts.StableVelocityMode
	}

	adopted := a.postSimVel
	switch mode {
	case UseInputVelocity:
		adopted = a.inputVel
	case UsePreSimulationVelocity:
		adopted = a.preSimVel
	}

	// While continuously stable, keep the adopted speed but re-derive its
	// direction along the current ground tangent, so a slope change bends
	// the motion instead of launching the actor.
	if mode != UseInputVelocity && stable && a.wasStable {
		planar := mmath.ProjectOnPlane(adopted, a.collisions.StableNormal)
		if !mmath.IsZeroVec(planar) {
			adopted = planar.Normalize().Mul(adopted.Len())
		}
	}
	a.vel = adopted
}

func (a *Actor) updateTimers(dt float32) {
	switch a.CurrentState() {
	case StableGrounded:
		a.timers.GroundedTime += dt
		a.timers.StableGroundedTime += dt
		a.timers.UnstableGroundedTime = 0
		a.timers.NotGroundedTime = 0
	case UnstableGrounded:
		a.timers.GroundedTime += dt
		a.timers.UnstableGroundedTime += dt
		a.timers.StableGroundedTime = 0
		a.timers.NotGroundedTime = 0
	default:
		a.timers.NotGroundedTime += dt
		a.timers.GroundedTime = 0
		a.timers.StableGroundedTime = 0
		a.timers.UnstableGroundedTime = 0
	}
}

func (a *Actor) fireGroundTransitions() {
	grounded := a.collisions.HasGround
	if grounded == a.wasGrounded {
		return
	}
	if grounded {
		a.notifyGroundedEnter(a.vel.Sub(a.groundVel))
		return
	}
	a.notifyGroundedExit()
}
