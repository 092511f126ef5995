// Package world provides the reference geometry backend for the motion
// engine: a flat registry of box and quad colliders answering closest-hit
// queries. It exists so the engine can run and be tested without a host
// physics engine; hosts with their own scene representation implement
// phys.QueryProvider directly instead.
package world

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/zeebo/xxh3"

	"github.com/motorkit/motor/assert"
	"github.com/motorkit/motor/internal"
	"github.com/motorkit/motor/mmath"
	"github.com/motorkit/motor/phys"
)

// Collider is a piece of geometry registered in a World. On top of the
// engine-facing handle it answers the narrow cast/overlap queries the World
// dispatches to it.
type Collider interface {
	phys.Collider
	Name() string

	castRay(origin, dir mgl32.Vec3, maxDist float32) (phys.HitInfo, bool)
	castSphere(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDist float32) (phys.HitInfo, bool)
	overlapSphere(center mgl32.Vec3, radius float32) bool
}

// World is an insertion-ordered collider registry implementing
// phys.QueryProvider. Iteration follows registration order, so equal-distance
// ties always resolve the same way.
type World struct {
	colliders *orderedmap.OrderedMap[uint64, Collider]
}

// New returns an empty world.
func New() *World {
	return &World{colliders: orderedmap.NewOrderedMap[uint64, Collider]()}
}

// colliderID derives the stable identity of a collider from its name.
func colliderID(name string) uint64 {
	return xxh3.HashString(name)
}

func (w *World) add(c Collider) {
	_, exists := w.colliders.Get(c.ID())
	assert.IsTrue(!exists, "collider %q registered twice", c.Name())
	w.colliders.Set(c.ID(), c)
}

// Remove unregisters the collider with the given name. The identity of a
// removed collider is never reported again, which is what lets callers bound
// caches keyed by collider identity.
func (w *World) Remove(name string) bool {
	return w.colliders.Delete(colliderID(name))
}

// Lookup returns the collider registered under the given name.
func (w *World) Lookup(name string) (Collider, bool) {
	return w.colliders.Get(colliderID(name))
}

// Len returns the number of registered colliders.
func (w *World) Len() int {
	return w.colliders.Len()
}

// closest scans the registry in registration order and keeps the single
// nearest accepted hit. The candidate buffer is pooled and capped; colliders
// past the cap are ignored for this query.
func (w *World) closest(f phys.Filter, cast func(Collider) (phys.HitInfo, bool)) (phys.HitInfo, bool) {
	bufPtr := internal.ContactPool.Get().(*[]phys.HitInfo)
	buf := (*bufPtr)[:0]
	defer func() {
		*bufPtr = buf[:0]
		internal.ContactPool.Put(bufPtr)
	}()

	for el := w.colliders.Front(); el != nil; el = el.Next() {
		c := el.Value
		if !f.Accepts(c) {
			continue
		}
		hit, ok := cast(c)
		if !ok {
			continue
		}
		buf = append(buf, hit)
		if len(buf) >= internal.MaxContacts {
			break
		}
	}

	best, found := phys.HitInfo{}, false
	for _, hit := range buf {
		if !found || hit.Distance < best.Distance {
			best, found = hit, true
		}
	}
	return best, found
}

// RayCast casts a thin ray against the registry.
func (w *World) RayCast(origin, dir mgl32.Vec3, maxDist float32, f phys.Filter) (phys.HitInfo, bool) {
	if mmath.IsZeroVec(dir) || maxDist <= 0 {
		return phys.HitInfo{}, false
	}
	dir = dir.Normalize()
	return w.closest(f, func(c Collider) (phys.HitInfo, bool) {
		return c.castRay(origin, dir, maxDist)
	})
}

// SphereCast sweeps a sphere against the registry.
func (w *World) SphereCast(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDist float32, f phys.Filter) (phys.HitInfo, bool) {
	if mmath.IsZeroVec(dir) || maxDist <= 0 || radius <= 0 {
		return phys.HitInfo{}, false
	}
	dir = dir.Normalize()
	return w.closest(f, func(c Collider) (phys.HitInfo, bool) {
		return c.castSphere(origin, radius, dir, maxDist)
	})
}

// ShapeCast sweeps a body shape against the registry. The shape is sampled as
// its two cap spheres; the closer of the two sweeps wins.
func (w *World) ShapeCast(shape phys.Shape, base, up, dir mgl32.Vec3, maxDist float32, f phys.Filter) (phys.HitInfo, bool) {
	if !shape.Valid() || mmath.IsZeroVec(dir) || maxDist <= 0 {
		return phys.HitInfo{}, false
	}
	dir = dir.Normalize()
	bottom := shape.BottomCenter(base, up)
	top := shape.TopCenter(base, up)

	hitA, okA := w.SphereCast(bottom, shape.Radius, dir, maxDist, f)
	hitB, okB := w.SphereCast(top, shape.Radius, dir, maxDist, f)
	switch {
	case okA && okB:
		if hitB.Distance < hitA.Distance {
			return hitB, true
		}
		return hitA, true
	case okA:
		return hitA, true
	case okB:
		return hitB, true
	}
	return phys.HitInfo{}, false
}

// Overlap reports whether a body shape standing at base intersects any
// qualifying collider. The shape is sampled as bottom, middle and top spheres.
func (w *World) Overlap(shape phys.Shape, base, up mgl32.Vec3, f phys.Filter) bool {
	if !shape.Valid() {
		return false
	}
	bottom := shape.BottomCenter(base, up)
	top := shape.TopCenter(base, up)
	mid := bottom.Add(top).Mul(0.5)

	for el := w.colliders.Front(); el != nil; el = el.Next() {
		c := el.Value
		if !f.Accepts(c) {
			continue
		}
		if c.overlapSphere(bottom, shape.Radius) || c.overlapSphere(mid, shape.Radius) || c.overlapSphere(top, shape.Radius) {
			return true
		}
	}
	return false
}
