package actor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motorkit/motor/phys"
)

// Observer receives actor notifications. Each notification fires at most once
// per qualifying transition per tick, after the relevant state mutation and
// before control returns to the caller.
type Observer interface {
	// OnWallHit fires on the first qualifying wall contact of a tick.
	OnWallHit(hit phys.HitInfo)
	// OnHeadHit fires on the first qualifying head contact of a tick.
	OnHeadHit(hit phys.HitInfo)
	// OnTeleport fires after a teleport has been applied.
	OnTeleport(pos mgl32.Vec3, rot mgl32.Quat)
	// OnGroundedEnter fires when the actor acquires ground. localVelocity is
	// the actor's velocity relative to the ground it landed on.
	OnGroundedEnter(localVelocity mgl32.Vec3)
	// OnGroundedExit fires when the actor loses ground.
	OnGroundedExit()
}

// NopObserver implements Observer with no-ops so observers can embed it and
// override only what they care about.
type NopObserver struct{}

func (NopObserver) OnWallHit(phys.HitInfo)            {}
func (NopObserver) OnHeadHit(phys.HitInfo)            {}
func (NopObserver) OnTeleport(mgl32.Vec3, mgl32.Quat) {}
func (NopObserver) OnGroundedEnter(mgl32.Vec3)        {}
func (NopObserver) OnGroundedExit()                   {}

// AddObserver subscribes an observer to the actor's notifications.
func (a *Actor) AddObserver(o Observer) {
	if o == nil {
		return
	}
	a.observers = append(a.observers, o)
}

func (a *Actor) notifyWallHit(hit phys.HitInfo) {
	for _, o := range a.observers {
		o.OnWallHit(hit)
	}
}

func (a *Actor) notifyHeadHit(hit phys.HitInfo) {
	for _, o := range a.observers {
		o.OnHeadHit(hit)
	}
}

func (a *Actor) notifyTeleport(pos mgl32.Vec3, rot mgl32.Quat) {
	for _, o := range a.observers {
		o.OnTeleport(pos, rot)
	}
}

func (a *Actor) notifyGroundedEnter(localVel mgl32.Vec3) {
	for _, o := range a.observers {
		o.OnGroundedEnter(localVel)
	}
}

func (a *Actor) notifyGroundedExit() {
	for _, o := range a.observers {
		o.OnGroundedExit()
	}
}
