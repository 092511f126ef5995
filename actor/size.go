package actor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motorkit/motor/mmath"
	"github.com/motorkit/motor/phys"
)

// SetBodySize requests a new capsule size. Shrinking is always accepted;
// growth is rejected when the grown body would overlap geometry right now.
// The actual size interpolates toward the target over the following ticks.
func (a *Actor) SetBodySize(size mgl32.Vec2) bool {
	shape := phys.Shape{Radius: size.X(), Height: size.Y()}
	if !shape.Valid() {
		return false
	}
	if a.sizeGrows(size) && a.queries.Overlap(shape, a.pos, a.Up(), a.filter()) {
		return false
	}
	a.targetBodySize = size
	return true
}

func (a *Actor) sizeGrows(size mgl32.Vec2) bool {
	return size.X() > a.bodySize.X() || size.Y() > a.bodySize.Y()
}

// lerpBodySize advances the body size toward the target at the configured
// rate. A growth step that would intersect geometry holds at the current
// size for this tick and retries next tick.
func (a *Actor) lerpBodySize(dt float32) {
	if a.bodySize == a.targetBodySize || dt <= 0 {
		return
	}
	step := a.opts.SizeLerpSpeed * dt
	next := mgl32.Vec2{
		mmath.MoveTowards(a.bodySize.X(), a.targetBodySize.X(), step),
		mmath.MoveTowards(a.bodySize.Y(), a.targetBodySize.Y(), step),
	}
	if a.sizeGrows(next) {
		shape := phys.Shape{Radius: next.X(), Height: next.Y()}
		if !shape.Valid() || a.queries.Overlap(shape, a.pos, a.Up(), a.filter()) {
			return
		}
	}
	a.bodySize = next
}
