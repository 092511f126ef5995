package actor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motorkit/motor/internal"
	"github.com/motorkit/motor/mmath"
	"github.com/motorkit/motor/phys"
)

// beginTick clears the per-tick contact state. The was-grounded/was-stable
// snapshot is taken by the caller before this runs.
func (a *Actor) beginTick() {
	a.collisions = CollisionInfo{StableNormal: a.Up()}
	*a.contacts = (*a.contacts)[:0]
	a.consumedPlanar = false
}

// resetGroundInfo drops the ground and prediction blocks of the collision
// info, keeping wall/head contacts already recorded this tick.
func (a *Actor) resetGroundInfo() {
	c := &a.collisions
	c.HasGround = false
	c.GroundPoint = mgl32.Vec3{}
	c.GroundNormal = mgl32.Vec3{}
	c.StableNormal = a.Up()
	c.GroundAngle = 0
	c.GroundCollider = nil
	c.GroundRigidbody = nil
	c.IsOnEdge = false
	c.UpperNormal, c.LowerNormal = mgl32.Vec3{}, mgl32.Vec3{}
	c.UpperAngle, c.LowerAngle = 0, 0
	c.HasPredictedGround = false
	c.PredictedGround = nil
	c.PredictedGroundDistance = 0
	c.PredictedGroundAngle = 0
}

func (a *Actor) setGround(hit phys.HitInfo, angle float32, stableNormal mgl32.Vec3, stable bool, e edgeInfo) {
	c := &a.collisions
	c.HasGround = true
	c.GroundPoint = hit.Point
	c.GroundNormal = hit.Normal
	c.GroundAngle = angle
	c.GroundCollider = hit.Collider
	c.GroundRigidbody = nil
	if hit.Collider != nil {
		c.GroundRigidbody = hit.Collider.Rigidbody()
	}
	c.IsOnEdge = e.found
	c.UpperNormal, c.LowerNormal = e.upperNormal, e.lowerNormal
	c.UpperAngle, c.LowerAngle = e.upperAngle, e.lowerAngle
	if stable {
		c.StableNormal = stableNormal
	} else {
		// The stable normal is only meaningful while stable; fall back to
		// the actor's own up axis.
		c.StableNormal = a.Up()
	}
}

// probeGround casts downward from just above the step offset to the step-down
// distance below the base, classifies the result and commits the grounding
// displacement. While the not-grounded suppression counter runs, the probe is
// skipped entirely.
func (a *Actor) probeGround(dt float32) {
	if a.forceUngroundedTicks > 0 {
		a.debugf("ground probe suppressed for %d more ticks", a.forceUngroundedTicks)
		return
	}

	up := a.Up()
	skin := a.opts.SkinWidth
	f := a.filter()

	castBase := a.pos.Add(up.Mul(a.opts.StepOffset + skin))
	castDist := a.opts.StepOffset + skin + a.opts.StepDownDistance + skin

	hit, ok := a.queries.ShapeCast(a.shape(), castBase, up, up.Mul(-1), castDist, f)
	if !ok || hit.Distance <= 0 {
		// Distance-zero results mean the cast started inside geometry (or
		// only saw the actor's own collider); discard before classifying.
		a.resetGroundInfo()
		a.groundVel = mgl32.Vec3{}
		return
	}

	angle, stable := a.classify(hit.Normal)
	usableNormal := hit.Normal
	edge := a.detectEdge(hit)
	if edge.found {
		usableNormal, stable = a.edgeNormal(hit.Normal, angle, edge)
	}

	// separation is the leftover cast travel past the step-offset band.
	// Negative values mean the surface is inside the band.
	separation := hit.Distance - (a.opts.StepOffset + skin)

	// gap re-measures the same contact along up: the distance from the base
	// to the contact plane. Unlike the cast travel it does not shrink with
	// slope steepness, so it is the measure used to decide whether an
	// unstable surface is close enough to count as ground at all.
	gap := separation
	if denom := up.Dot(hit.Normal); denom > 1e-3 {
		gap = a.pos.Sub(hit.Point).Dot(hit.Normal) / denom
	}

	if stable {
		snap := separation - skin
		if snap < -a.opts.StepOffset {
			snap = -a.opts.StepOffset
		}
		a.pos = a.pos.Sub(up.Mul(snap))

		if a.opts.EdgeCompensation && edge.found {
			// The rounded probe shape rests lower on an edge lip than the
			// flat-bottomed cylinder it approximates; pull the base level
			// back to the actual contact.
			delta := mmath.VerticalOn(hit.Point.Sub(a.pos), up)
			if delta.Len() <= a.opts.StepOffset {
				a.pos = a.pos.Add(delta)
			}
		}
		// The stored angle must describe the resolved surface, so that the
		// state derived from it agrees with the stability decision.
		storedAngle := angle
		if edge.found {
			storedAngle = mmath.AngleBetween(up, usableNormal)
		}
		a.setGround(hit, storedAngle, usableNormal, true, edge)
		a.debugf("grounded stable: angle=%.2f edge=%v pos=%v", storedAngle, edge.found, a.pos)
		return
	}

	if gap <= a.opts.StepOffset+2*skin {
		// Unstable surface close to the base. Optionally resolve the planar
		// displacement against it right now so the actor cannot step onto
		// the bad slope, then pin the exact contact with a thin ray.
		if a.opts.PreventUnstableClimb && dt > 0 {
			planar := mmath.HorizontalOn(a.vel.Mul(dt), up)
			if !mmath.IsZeroVec(planar) {
				a.slideStable(planar, true)
				a.consumedPlanar = true
			}
		}

		rayOrigin := a.pos.Add(up.Mul(2 * skin))
		if rayHit, rok := a.queries.RayCast(rayOrigin, up.Mul(-1), a.opts.StepOffset+4*skin, f); rok && rayHit.Distance > 0 {
			pinAngle, _ := a.classify(rayHit.Normal)
			hit = rayHit
			if pinAngle > angle {
				angle = pinAngle
			}
		}
		if edge.found && angle <= a.opts.SlopeLimit {
			// An unstable edge whose contact looks walkable: report the
			// gentler flank so the derived state stays unstable.
			angle = math32.Min(edge.upperAngle, edge.lowerAngle)
		}
		a.setGround(hit, angle, hit.Normal, false, edge)
		a.debugf("grounded unstable: angle=%.2f gap=%.3f", angle, gap)
		return
	}

	// Unstable surface far below: treat as no ground. This does not start
	// the suppression counter; only explicit force calls do.
	a.resetGroundInfo()
	a.groundVel = mgl32.Vec3{}
	a.debugf("steep surface at gap=%.3f rejected, not grounded", gap)
}

// detectEdge samples the two surfaces flanking the ground contact with thin
// rays dropped just inside and just outside the contact point. An edge needs
// both samples to hit, with meaningfully different normals.
func (a *Actor) detectEdge(hit phys.HitInfo) edgeInfo {
	up := a.Up()
	horiz := mmath.HorizontalOn(hit.Point.Sub(a.pos), up)
	if mmath.IsZeroVec(horiz) {
		return edgeInfo{}
	}
	dir := horiz.Normalize()

	span := a.bodySize.X() * 0.5
	lift := span + a.opts.SkinWidth
	rayLen := lift + a.opts.StepDownDistance + a.bodySize.X()
	f := a.filter()

	innerHit, iok := a.queries.RayCast(hit.Point.Sub(dir.Mul(span)).Add(up.Mul(lift)), up.Mul(-1), rayLen, f)
	outerHit, ook := a.queries.RayCast(hit.Point.Add(dir.Mul(span)).Add(up.Mul(lift)), up.Mul(-1), rayLen, f)
	if !iok || !ook {
		return edgeInfo{}
	}

	innerAngle := mmath.AngleBetween(up, innerHit.Normal)
	outerAngle := mmath.AngleBetween(up, outerHit.Normal)
	if mmath.AngleBetween(innerHit.Normal, outerHit.Normal) < mmath.EdgeMinAngleDelta {
		return edgeInfo{}
	}

	// The sample resting higher along up is the upper surface.
	e := edgeInfo{found: true}
	if innerHit.Point.Dot(up) >= outerHit.Point.Dot(up) {
		e.upperNormal, e.upperAngle = innerHit.Normal, innerAngle
		e.lowerNormal, e.lowerAngle = outerHit.Normal, outerAngle
	} else {
		e.upperNormal, e.upperAngle = outerHit.Normal, outerAngle
		e.lowerNormal, e.lowerAngle = innerHit.Normal, innerAngle
	}
	return e
}

// recordContact appends a solver contact to the per-tick buffer and updates
// the wall/head blocks, notifying observers on the first qualifying contact
// of each kind.
func (a *Actor) recordContact(hit phys.HitInfo) {
	if len(*a.contacts) < internal.MaxContacts {
		*a.contacts = append(*a.contacts, hit)
	}

	angle := mmath.AngleBetween(a.Up(), hit.Normal)
	c := &a.collisions

	if !c.WallCollision && angle >= 90-mmath.WallAngleTolerance && angle <= 90+mmath.WallAngleTolerance {
		c.WallCollision = true
		c.WallPoint = hit.Point
		c.WallNormal = hit.Normal
		c.WallAngle = angle
		c.WallCollider = hit.Collider
		a.notifyWallHit(hit)
	}

	if !c.HeadCollision && angle >= mmath.HeadMinAngle {
		c.HeadCollision = true
		c.HeadPoint = hit.Point
		c.HeadNormal = hit.Normal
		c.HeadAngle = angle
		c.HeadCollider = hit.Collider
		a.notifyHeadHit(hit)
	}
}
