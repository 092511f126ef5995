// Package platform implements phys.Platform for kinematic moving platforms:
// bodies that are driven by explicit velocities and always reach their target
// pose, never pushed by contacts.
package platform

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motorkit/motor/mmath"
)

// Platform is a kinematic body integrating a linear velocity and an angular
// velocity around a fixed axis. It satisfies phys.Platform.
type Platform struct {
	pos mgl32.Vec3
	rot mgl32.Quat

	linearVel mgl32.Vec3
	angAxis   mgl32.Vec3
	angSpeed  float32 // degrees per second
}

// New returns a platform at the given pose with zero velocities.
func New(pos mgl32.Vec3, rot mgl32.Quat) *Platform {
	return &Platform{pos: pos, rot: rot.Normalize(), angAxis: mgl32.Vec3{0, 1, 0}}
}

// SetLinearVelocity sets the translation speed in units per second.
func (p *Platform) SetLinearVelocity(vel mgl32.Vec3) { p.linearVel = vel }

// SetAngularVelocity sets the rotation axis and speed in degrees per second.
// A zero axis request is ignored.
func (p *Platform) SetAngularVelocity(axis mgl32.Vec3, degPerSec float32) {
	if mmath.IsZeroVec(axis) {
		return
	}
	p.angAxis = axis.Normalize()
	p.angSpeed = degPerSec
}

// Position returns the current position of the platform.
func (p *Platform) Position() mgl32.Vec3 { return p.pos }

// Rotation returns the current rotation of the platform.
func (p *Platform) Rotation() mgl32.Quat { return p.rot }

// IsKinematic always reports true: platforms are never force-driven.
func (p *Platform) IsKinematic() bool { return true }

// Mass returns zero; kinematic platforms have effectively infinite inertia
// and never participate in impulse exchanges.
func (p *Platform) Mass() float32 { return 0 }

// VelocityAt samples the platform velocity at a world-space point, combining
// the linear velocity with the tangential velocity of the rotation.
func (p *Platform) VelocityAt(point mgl32.Vec3) mgl32.Vec3 {
	omega := p.angAxis.Mul(mgl32.DegToRad(p.angSpeed))
	return p.linearVel.Add(omega.Cross(point.Sub(p.pos)))
}

// AddForceAt is a no-op: kinematic platforms ignore forces.
func (p *Platform) AddForceAt(force, point mgl32.Vec3) {}

// TargetPosition returns where the platform will be after dt.
func (p *Platform) TargetPosition(dt float32) mgl32.Vec3 {
	return p.pos.Add(p.linearVel.Mul(dt))
}

// TargetRotation returns the rotation the platform will have after dt.
func (p *Platform) TargetRotation(dt float32) mgl32.Quat {
	if p.angSpeed == 0 {
		return p.rot
	}
	dq := mgl32.QuatRotate(mgl32.DegToRad(p.angSpeed*dt), p.angAxis)
	return dq.Mul(p.rot).Normalize()
}

// Step advances the platform to its target pose for the tick. Hosts call this
// once per tick, after the actors riding the platform have resolved.
func (p *Platform) Step(dt float32) {
	p.pos = p.TargetPosition(dt)
	p.rot = p.TargetRotation(dt)
}
