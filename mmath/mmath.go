// Package mmath holds the float32 vector helpers shared by the engine
// packages.
package mmath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Clamp clamps the given value to the given range.
func Clamp(num, min, max float32) float32 {
	if num < min {
		return min
	}
	return math32.Min(num, max)
}

// Float32ApproxEq determines whether two floating point numbers are close
// enough to each other by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// IsZeroVec reports whether the vector is short enough to be treated as zero.
func IsZeroVec(v mgl32.Vec3) bool {
	return v.LenSqr() <= 1e-12
}

// AngleBetween returns the unsigned angle between two vectors in degrees.
func AngleBetween(a, b mgl32.Vec3) float32 {
	la, lb := a.Len(), b.Len()
	if la <= 1e-9 || lb <= 1e-9 {
		return 0
	}
	cos := Clamp(a.Dot(b)/(la*lb), -1, 1)
	return mgl32.RadToDeg(math32.Acos(cos))
}

// SignedAngleAround returns the signed angle in degrees from a to b measured
// around the given axis. Both vectors are flattened onto the plane
// perpendicular to the axis first.
func SignedAngleAround(a, b, axis mgl32.Vec3) float32 {
	pa := ProjectOnPlane(a, axis)
	pb := ProjectOnPlane(b, axis)
	if IsZeroVec(pa) || IsZeroVec(pb) {
		return 0
	}
	angle := AngleBetween(pa, pb)
	if pa.Cross(pb).Dot(axis) < 0 {
		angle = -angle
	}
	return angle
}

// ProjectOnPlane removes from v the component along the plane normal.
func ProjectOnPlane(v, normal mgl32.Vec3) mgl32.Vec3 {
	n := normal
	lenSqr := n.LenSqr()
	if lenSqr <= 1e-12 {
		return v
	}
	return v.Sub(n.Mul(v.Dot(n) / lenSqr))
}

// DeflectAlongCrease redirects v along the line of intersection of the two
// planes given by their normals. When the planes are parallel there is no
// crease and the zero vector is returned.
func DeflectAlongCrease(v, normalA, normalB mgl32.Vec3) mgl32.Vec3 {
	crease := normalA.Cross(normalB)
	if IsZeroVec(crease) {
		return mgl32.Vec3{}
	}
	crease = crease.Normalize()
	return crease.Mul(v.Dot(crease))
}

// HorizontalOn returns the component of v perpendicular to up.
func HorizontalOn(v, up mgl32.Vec3) mgl32.Vec3 {
	return ProjectOnPlane(v, up)
}

// VerticalOn returns the component of v along up.
func VerticalOn(v, up mgl32.Vec3) mgl32.Vec3 {
	lenSqr := up.LenSqr()
	if lenSqr <= 1e-12 {
		return mgl32.Vec3{}
	}
	return up.Mul(v.Dot(up) / lenSqr)
}

// MoveTowards advances current toward target by at most maxDelta, without
// overshooting.
func MoveTowards(current, target, maxDelta float32) float32 {
	if math32.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// YawDelta extracts the rotation angle in degrees that the quaternion applies
// around the given up axis, by comparing a reference direction before and
// after the rotation.
func YawDelta(q mgl32.Quat, up mgl32.Vec3) float32 {
	ref := mgl32.Vec3{1, 0, 0}
	if math32.Abs(ref.Dot(up)) > 0.9 {
		ref = mgl32.Vec3{0, 0, 1}
	}
	ref = ProjectOnPlane(ref, up)
	return SignedAngleAround(ref, q.Rotate(ref), up)
}
