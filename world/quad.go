package world

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motorkit/motor/assert"
	"github.com/motorkit/motor/mmath"
	"github.com/motorkit/motor/phys"
)

// Quad is a finite one-sided rectangle with an arbitrary orientation. It is
// the collider used for ramps, ledges and angled walls, which boxes cannot
// express. Only the front face (the side the normal points toward) collides.
type Quad struct {
	colliderBase
	center mgl32.Vec3
	normal mgl32.Vec3
	uAxis  mgl32.Vec3
	vAxis  mgl32.Vec3
	halfU  float32
	halfV  float32
	offset mgl32.Vec3
}

// AddQuad registers a rectangle centered at center with the given unit normal
// and half-extents along the two in-plane axes. The in-plane basis is derived
// from the normal deterministically.
func (w *World) AddQuad(name string, center, normal mgl32.Vec3, halfU, halfV float32) *Quad {
	assert.IsTrue(!mmath.IsZeroVec(normal), "quad %q has a zero normal", name)
	n := normal.Normalize()

	ref := mgl32.Vec3{0, 1, 0}
	if math32.Abs(n.Dot(ref)) > 0.9 {
		ref = mgl32.Vec3{1, 0, 0}
	}
	u := n.Cross(ref).Normalize()
	v := n.Cross(u)

	q := &Quad{
		colliderBase: colliderBase{name: name, id: colliderID(name), layer: ^uint32(0)},
		center:       center,
		normal:       n,
		uAxis:        u,
		vAxis:        v,
		halfU:        halfU,
		halfV:        halfV,
	}
	w.add(q)
	return q
}

// SetOffset translates the quad away from its registered center.
func (q *Quad) SetOffset(offset mgl32.Vec3) { q.offset = offset }

// Normal returns the quad's unit normal.
func (q *Quad) Normal() mgl32.Vec3 { return q.normal }

func (q *Quad) worldCenter() mgl32.Vec3 { return q.center.Add(q.offset) }

// closestOnQuad returns the point of the rectangle nearest to p.
func (q *Quad) closestOnQuad(p mgl32.Vec3) mgl32.Vec3 {
	rel := p.Sub(q.worldCenter())
	du := mmath.Clamp(rel.Dot(q.uAxis), -q.halfU, q.halfU)
	dv := mmath.Clamp(rel.Dot(q.vAxis), -q.halfV, q.halfV)
	return q.worldCenter().Add(q.uAxis.Mul(du)).Add(q.vAxis.Mul(dv))
}

func (q *Quad) castRay(origin, dir mgl32.Vec3, maxDist float32) (phys.HitInfo, bool) {
	denom := dir.Dot(q.normal)
	if denom >= -1e-9 {
		return phys.HitInfo{}, false
	}
	d0 := origin.Sub(q.worldCenter()).Dot(q.normal)
	if d0 < 0 {
		return phys.HitInfo{}, false
	}
	t := -d0 / denom
	if t > maxDist {
		return phys.HitInfo{}, false
	}

	p := origin.Add(dir.Mul(t))
	rel := p.Sub(q.worldCenter())
	if math32.Abs(rel.Dot(q.uAxis)) > q.halfU+1e-4 || math32.Abs(rel.Dot(q.vAxis)) > q.halfV+1e-4 {
		return phys.HitInfo{}, false
	}
	return phys.HitInfo{Point: p, Normal: q.normal, Distance: t, Collider: q}, true
}

func (q *Quad) castSphere(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDist float32) (phys.HitInfo, bool) {
	denom := dir.Dot(q.normal)
	if denom >= -1e-9 {
		return phys.HitInfo{}, false
	}
	d0 := origin.Sub(q.worldCenter()).Dot(q.normal)
	if d0 < 0 {
		return phys.HitInfo{}, false
	}

	t := (radius - d0) / denom
	if t < 0 {
		// Already touching the plane.
		t = 0
	}
	if t > maxDist {
		return phys.HitInfo{}, false
	}

	centerAt := origin.Add(dir.Mul(t))
	closest := q.closestOnQuad(centerAt)
	if centerAt.Sub(closest).Len() > radius+1e-4 {
		return phys.HitInfo{}, false
	}
	return phys.HitInfo{Point: closest, Normal: q.normal, Distance: t, Collider: q}, true
}

func (q *Quad) overlapSphere(center mgl32.Vec3, radius float32) bool {
	return center.Sub(q.closestOnQuad(center)).Len() <= radius
}
