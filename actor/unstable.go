package actor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motorkit/motor/mmath"
)

// slideUnstable resolves a displacement while airborne or on unwalkable
// ground. Contacted planes clip both the remaining displacement and the
// actor's velocity, so a wall touched mid-air cancels the approach speed
// instead of letting it accumulate against the surface.
func (a *Actor) slideUnstable(displacement mgl32.Vec3, dt float32) {
	up := a.Up()
	skin := a.opts.SkinWidth
	f := a.filter()

	remaining := displacement
	for i := 0; i < a.opts.SlideIterations; i++ {
		if mmath.IsZeroVec(remaining) {
			break
		}
		dir := remaining.Normalize()

		hit, ok := a.queries.ShapeCast(a.shape(), a.pos, up, dir, remaining.Len()+skin, f)
		if !ok {
			a.pos = a.pos.Add(remaining)
			break
		}

		travel := hit.Distance - skin
		if travel > 0 {
			step := dir.Mul(travel)
			a.pos = a.pos.Add(step)
			remaining = remaining.Sub(step)
		}
		a.recordContact(hit)

		if a.pushable(hit.Collider) && dt > 0 {
			rb := hit.Collider.Rigidbody()
			blocked := remaining.Mul(1 / dt)
			rb.AddForceAt(blocked.Mul(rb.Mass()), hit.Point)
		}

		remaining = mmath.ProjectOnPlane(remaining, hit.Normal)
		a.vel = mmath.ProjectOnPlane(a.vel, hit.Normal)
	}

	a.predictGround()
}

// predictGround looks below an airborne actor for the surface it is about to
// land on, so consumers can anticipate the landing without waiting for the
// grounded transition. Suppressed while ground re-acquisition is forced off.
func (a *Actor) predictGround() {
	c := &a.collisions
	c.HasPredictedGround = false
	c.PredictedGround = nil
	c.PredictedGroundDistance = 0
	c.PredictedGroundAngle = 0

	if a.forceUngroundedTicks > 0 || a.opts.PredictionDistance <= 0 {
		return
	}

	up := a.Up()
	skin := a.opts.SkinWidth
	castBase := a.pos.Add(up.Mul(a.opts.StepOffset + skin))
	castDist := a.opts.StepOffset + skin + a.opts.PredictionDistance

	hit, ok := a.queries.ShapeCast(a.shape(), castBase, up, up.Mul(-1), castDist, a.filter())
	if !ok || hit.Distance <= 0 {
		return
	}

	angle, _ := a.classify(hit.Normal)
	c.HasPredictedGround = true
	c.PredictedGround = hit.Collider
	c.PredictedGroundDistance = hit.Distance - (a.opts.StepOffset + skin)
	if c.PredictedGroundDistance < 0 {
		c.PredictedGroundDistance = 0
	}
	c.PredictedGroundAngle = angle
}
