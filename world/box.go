package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motorkit/motor/phys"
)

// colliderBase carries the identity, filtering and rigidbody fields shared by
// all collider types.
type colliderBase struct {
	name    string
	id      uint64
	layer   uint32
	trigger bool
	rb      phys.Rigidbody
}

func (c *colliderBase) Name() string { return c.name }

func (c *colliderBase) ID() uint64 { return c.id }

func (c *colliderBase) Layer() uint32 { return c.layer }

// SetLayer sets the layer bits of the collider.
func (c *colliderBase) SetLayer(layer uint32) { c.layer = layer }

func (c *colliderBase) IsTrigger() bool { return c.trigger }

// SetTrigger marks the collider as a trigger volume.
func (c *colliderBase) SetTrigger(trigger bool) { c.trigger = trigger }

func (c *colliderBase) Rigidbody() phys.Rigidbody { return c.rb }

// AttachRigidbody binds the collider to the body that drives it.
func (c *colliderBase) AttachRigidbody(rb phys.Rigidbody) { c.rb = rb }

// Box is an axis-aligned box collider. Moving boxes keep their local bounds
// and are repositioned through SetOffset.
type Box struct {
	colliderBase
	box    cube.BBox
	offset mgl32.Vec3
}

// AddBox registers an axis-aligned box collider spanning min..max.
func (w *World) AddBox(name string, min, max mgl32.Vec3) *Box {
	b := &Box{
		colliderBase: colliderBase{name: name, id: colliderID(name), layer: ^uint32(0)},
		box:          cube.Box(min.X(), min.Y(), min.Z(), max.X(), max.Y(), max.Z()),
	}
	w.add(b)
	return b
}

// SetOffset translates the box away from its registered bounds. Used to move
// platform colliders along with their rigidbody.
func (b *Box) SetOffset(offset mgl32.Vec3) { b.offset = offset }

// Offset returns the current translation of the box.
func (b *Box) Offset() mgl32.Vec3 { return b.offset }

// Bounds returns the box in world space.
func (b *Box) Bounds() cube.BBox { return b.box.Translate(b.offset) }

func (b *Box) castRay(origin, dir mgl32.Vec3, maxDist float32) (phys.HitInfo, bool) {
	t, normal, ok := rayBoxIntersect(origin, dir, maxDist, b.Bounds())
	if !ok {
		return phys.HitInfo{}, false
	}
	return phys.HitInfo{
		Point:    origin.Add(dir.Mul(t)),
		Normal:   normal,
		Distance: t,
		Collider: b,
	}, true
}

func (b *Box) castSphere(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDist float32) (phys.HitInfo, bool) {
	t, normal, ok := rayBoxIntersect(origin, dir, maxDist, b.Bounds().Grow(radius))
	if !ok {
		return phys.HitInfo{}, false
	}
	center := origin.Add(dir.Mul(t))
	return phys.HitInfo{
		Point:    center.Sub(normal.Mul(radius)),
		Normal:   normal,
		Distance: t,
		Collider: b,
	}, true
}

func (b *Box) overlapSphere(center mgl32.Vec3, radius float32) bool {
	return boxVectorDistance(b.Bounds(), center) <= radius
}

// boxVectorDistance calculates the distance between a box and a vector.
func boxVectorDistance(bb cube.BBox, v mgl32.Vec3) float32 {
	x := math32.Max(bb.Min().X()-v.X(), math32.Max(0, v.X()-bb.Max().X()))
	y := math32.Max(bb.Min().Y()-v.Y(), math32.Max(0, v.Y()-bb.Max().Y()))
	z := math32.Max(bb.Min().Z()-v.Z(), math32.Max(0, v.Z()-bb.Max().Z()))
	return math32.Sqrt(x*x + y*y + z*z)
}

// rayBoxIntersect runs the slab test of a ray against a box. A ray starting
// inside the box reports a distance-zero hit with the normal facing back along
// the ray, which callers are expected to filter.
func rayBoxIntersect(origin, dir mgl32.Vec3, maxDist float32, bb cube.BBox) (float32, mgl32.Vec3, bool) {
	min, max := bb.Min(), bb.Max()
	tMin, tMax := float32(0), maxDist
	normal := mgl32.Vec3{}

	for axis := 0; axis < 3; axis++ {
		d := dir[axis]
		if math32.Abs(d) < 1e-9 {
			if origin[axis] < min[axis] || origin[axis] > max[axis] {
				return 0, mgl32.Vec3{}, false
			}
			continue
		}

		var tNear, tFar, sign float32
		if d > 0 {
			tNear, tFar, sign = (min[axis]-origin[axis])/d, (max[axis]-origin[axis])/d, -1
		} else {
			tNear, tFar, sign = (max[axis]-origin[axis])/d, (min[axis]-origin[axis])/d, 1
		}
		if tNear > tMin {
			tMin = tNear
			normal = mgl32.Vec3{}
			normal[axis] = sign
		}
		if tFar < tMax {
			tMax = tFar
		}
		if tMin > tMax {
			return 0, mgl32.Vec3{}, false
		}
	}

	if normal == (mgl32.Vec3{}) {
		// Origin inside the box.
		return 0, dir.Mul(-1), true
	}
	return tMin, normal, true
}
