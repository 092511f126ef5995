// Package phys declares the contracts between the motion engine and the host
// geometry backend. The engine never talks to world geometry directly; it only
// issues the queries below and reads back closest-hit results.
package phys

import (
	"github.com/go-gl/mathgl/mgl32"
)

// HitInfo is the single closest qualifying result of a geometry query.
type HitInfo struct {
	// Point is the contact point on the hit surface, in world space.
	Point mgl32.Vec3
	// Normal is the surface normal at the contact point, facing the query.
	Normal mgl32.Vec3
	// Distance is the travel distance along the cast direction before contact.
	Distance float32
	// Collider is the collider that produced the hit.
	Collider Collider
}

// Filter controls which colliders a query may report.
type Filter struct {
	// LayerMask selects collider layers included in the query. A zero mask
	// matches nothing, so callers normally start from all bits set.
	LayerMask uint32
	// IgnoreTriggers discards trigger volumes.
	IgnoreTriggers bool
	// IgnoreRigidbodies discards colliders driven by a rigidbody.
	IgnoreRigidbodies bool
	// Ignore is the collider excluded from all results, normally the
	// querying actor's own body.
	Ignore Collider
}

// Accepts reports whether the filter allows the given collider.
func (f Filter) Accepts(c Collider) bool {
	if c == nil {
		return false
	}
	if f.Ignore != nil && c.ID() == f.Ignore.ID() {
		return false
	}
	if c.Layer()&f.LayerMask == 0 {
		return false
	}
	if f.IgnoreTriggers && c.IsTrigger() {
		return false
	}
	if f.IgnoreRigidbodies && c.Rigidbody() != nil {
		return false
	}
	return true
}

// Shape is the capsule/cylinder body shape used for shape casts and overlaps.
// The shape stands on its base: the reference position of a cast is the
// bottom-center of the shape, with the axis pointing along the provided up
// vector.
type Shape struct {
	Radius float32
	Height float32
}

// Valid reports whether the shape has usable dimensions.
func (s Shape) Valid() bool {
	return s.Radius > 0 && s.Height >= 2*s.Radius
}

// BottomCenter returns the center of the lower cap sphere for a shape whose
// base sits at the given position.
func (s Shape) BottomCenter(base, up mgl32.Vec3) mgl32.Vec3 {
	return base.Add(up.Mul(s.Radius))
}

// TopCenter returns the center of the upper cap sphere for a shape whose base
// sits at the given position.
func (s Shape) TopCenter(base, up mgl32.Vec3) mgl32.Vec3 {
	return base.Add(up.Mul(s.Height - s.Radius))
}

// QueryProvider is the geometry backend consumed by the engine. Every query
// returns the single closest qualifying hit, or ok=false when nothing
// qualifies within maxDist. Implementations must be non-blocking and must
// bound the work done per query regardless of scene complexity.
type QueryProvider interface {
	// RayCast casts a thin ray from origin along dir (unit length).
	RayCast(origin, dir mgl32.Vec3, maxDist float32, f Filter) (HitInfo, bool)
	// SphereCast sweeps a sphere of the given radius from origin along dir.
	SphereCast(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDist float32, f Filter) (HitInfo, bool)
	// ShapeCast sweeps a body shape standing at base (axis up) along dir.
	ShapeCast(shape Shape, base, up, dir mgl32.Vec3, maxDist float32, f Filter) (HitInfo, bool)
	// Overlap reports whether a body shape standing at base intersects any
	// qualifying collider.
	Overlap(shape Shape, base, up mgl32.Vec3, f Filter) bool
}

// Collider is a handle to a piece of world geometry. Identity is stable for
// the lifetime of the collider and is what caches key on.
type Collider interface {
	ID() uint64
	Layer() uint32
	IsTrigger() bool
	// Rigidbody returns the body driving this collider, or nil for static
	// geometry.
	Rigidbody() Rigidbody
}

// Rigidbody abstracts a dynamic or kinematic body owned by the host physics
// backend.
type Rigidbody interface {
	Position() mgl32.Vec3
	Rotation() mgl32.Quat
	IsKinematic() bool
	Mass() float32
	// VelocityAt samples the velocity of the body at a world-space point.
	VelocityAt(point mgl32.Vec3) mgl32.Vec3
	// AddForceAt applies a force to the body at a world-space point. The
	// host backend is responsible for serializing these writes.
	AddForceAt(force, point mgl32.Vec3)
}

// Platform is a kinematic body that knows where it wants to be at the end of
// the next tick. When the ground collider's rigidbody implements Platform, the
// engine prefers it over generic velocity sampling.
type Platform interface {
	Rigidbody
	// TargetPosition returns the position the platform will occupy after dt.
	TargetPosition(dt float32) mgl32.Vec3
	// TargetRotation returns the rotation the platform will have after dt.
	TargetRotation(dt float32) mgl32.Quat
}
