package actor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motorkit/motor/mmath"
)

// classify returns the slope angle of a contact normal against the actor's up
// axis and whether that angle is within the slope limit. The boundary angle
// itself is stable.
func (a *Actor) classify(normal mgl32.Vec3) (angle float32, stable bool) {
	angle = mmath.AngleBetween(a.Up(), normal)
	return angle, angle <= a.opts.SlopeLimit
}

// edgeInfo holds the two flanking-surface samples of an edge contact. An edge
// requires exactly two candidate normals; if either sample is missing the
// contact is not an edge.
type edgeInfo struct {
	found       bool
	upperNormal mgl32.Vec3
	lowerNormal mgl32.Vec3
	upperAngle  float32
	lowerAngle  float32
}

// edgeNormal picks the usable normal for an edge contact. The precedence
// deliberately favors treating ambiguous edges as walkable whenever any
// adjoining surface is walkable:
//
//	flat (up) when primary and both flanks are within the limit,
//	else the upper flank normal when the upper flank is within the limit,
//	else the lower flank normal when the lower flank is within the limit,
//	else the primary contact normal, reported unstable.
func (a *Actor) edgeNormal(primaryNormal mgl32.Vec3, primaryAngle float32, e edgeInfo) (mgl32.Vec3, bool) {
	limit := a.opts.SlopeLimit
	primaryOK := primaryAngle <= limit
	upperOK := e.upperAngle <= limit
	lowerOK := e.lowerAngle <= limit

	switch {
	case primaryOK && upperOK && lowerOK:
		return a.Up(), true
	case upperOK:
		return e.upperNormal, true
	case lowerOK:
		return e.lowerNormal, true
	default:
		return primaryNormal, false
	}
}
