package actor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motorkit/motor/mmath"
	"github.com/motorkit/motor/phys"
)

// slideStable resolves a displacement while stably grounded by iteratively
// casting the body shape along the remaining displacement and deflecting it
// along the contacted planes. useFullBody selects the unreduced shape; the
// normal case lifts the cast base by the step offset so small ledges pass
// underneath the cast.
func (a *Actor) slideStable(displacement mgl32.Vec3, useFullBody bool) {
	if mmath.IsZeroVec(displacement) {
		return
	}

	up := a.Up()
	skin := a.opts.SkinWidth
	f := a.filter()

	shape := a.shape()
	base := a.pos
	if !useFullBody {
		reduced := phys.Shape{Radius: shape.Radius, Height: shape.Height - a.opts.StepOffset}
		if reduced.Valid() {
			shape = reduced
			base = a.pos.Add(up.Mul(a.opts.StepOffset))
		}
	}

	entry := a.pos
	original := displacement
	remaining := displacement
	groundPlane := a.collisions.StableNormal
	var slidingPlane mgl32.Vec3
	hasSlidingPlane := false

	for i := 0; i < a.opts.SlideIterations; i++ {
		if mmath.IsZeroVec(remaining) {
			return
		}
		dir := remaining.Normalize()

		hit, ok := a.queries.ShapeCast(shape, base, up, dir, remaining.Len()+skin, f)
		if !ok {
			a.pos = a.pos.Add(remaining)
			return
		}

		if a.pushable(hit.Collider) {
			// Dynamic bodies in the push mask do not block stable motion:
			// commit the whole displacement requested at entry, replacing any
			// partial travel already applied, and let the body be shoved
			// aside on its own next step.
			a.pos = entry.Add(original)
			return
		}

		travel := hit.Distance - skin
		if travel > 0 {
			step := dir.Mul(travel)
			a.pos = a.pos.Add(step)
			base = base.Add(step)
			remaining = remaining.Sub(step)
		}
		a.recordContact(hit)

		_, contactStable := a.classify(hit.Normal)
		if contactStable {
			// Walking onto another walkable plane: follow it and forget any
			// sliding crease built against the previous one.
			remaining = mmath.ProjectOnPlane(remaining, hit.Normal)
			groundPlane = hit.Normal
			hasSlidingPlane = false
			continue
		}

		if hasSlidingPlane {
			if slidingPlane.Dot(hit.Normal) > 0 {
				remaining = mmath.DeflectAlongCrease(remaining, slidingPlane, hit.Normal)
			} else {
				// Opposed planes form a wedge the body cannot leave.
				a.debugf("wedged between opposed planes after %d iterations", i+1)
				return
			}
		} else {
			remaining = mmath.DeflectAlongCrease(remaining, groundPlane, hit.Normal)
		}
		slidingPlane = hit.Normal
		hasSlidingPlane = true
	}
}

// pushable reports whether a collider is a dynamic rigidbody the actor is
// configured to push through rather than slide against.
func (a *Actor) pushable(c phys.Collider) bool {
	if c == nil || !a.opts.PushDynamicRigidbodies {
		return false
	}
	rb := c.Rigidbody()
	if rb == nil || rb.IsKinematic() {
		return false
	}
	return c.Layer()&a.opts.PushLayerMask != 0
}
