package actor

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motorkit/motor/mmath"
	"github.com/motorkit/motor/phys"
	"github.com/motorkit/motor/platform"
	"github.com/motorkit/motor/world"
)

const dt = float32(1.0 / 60.0)

// mockProvider scripts query results per test. Unset queries miss.
type mockProvider struct {
	rayCast   func(origin, dir mgl32.Vec3, maxDist float32) (phys.HitInfo, bool)
	shapeCast func(base, dir mgl32.Vec3, maxDist float32) (phys.HitInfo, bool)
	overlap   func(base mgl32.Vec3) bool
}

func (m mockProvider) RayCast(origin, dir mgl32.Vec3, maxDist float32, f phys.Filter) (phys.HitInfo, bool) {
	if m.rayCast == nil {
		return phys.HitInfo{}, false
	}
	return m.rayCast(origin, dir, maxDist)
}

func (m mockProvider) SphereCast(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDist float32, f phys.Filter) (phys.HitInfo, bool) {
	return phys.HitInfo{}, false
}

func (m mockProvider) ShapeCast(shape phys.Shape, base, up, dir mgl32.Vec3, maxDist float32, f phys.Filter) (phys.HitInfo, bool) {
	if m.shapeCast == nil {
		return phys.HitInfo{}, false
	}
	return m.shapeCast(base, dir, maxDist)
}

func (m mockProvider) Overlap(shape phys.Shape, base, up mgl32.Vec3, f phys.Filter) bool {
	if m.overlap == nil {
		return false
	}
	return m.overlap(base)
}

type recordingObserver struct {
	NopObserver
	enters    int
	exits     int
	teleports int
	wallHits  int
	headHits  int
	enterVel  mgl32.Vec3
}

func (r *recordingObserver) OnGroundedEnter(v mgl32.Vec3) { r.enters++; r.enterVel = v }
func (r *recordingObserver) OnGroundedExit()              { r.exits++ }
func (r *recordingObserver) OnTeleport(mgl32.Vec3, mgl32.Quat) {
	r.teleports++
}
func (r *recordingObserver) OnWallHit(phys.HitInfo) { r.wallHits++ }
func (r *recordingObserver) OnHeadHit(phys.HitInfo) { r.headHits++ }

func newTestActor(t *testing.T, queries phys.QueryProvider, mutate func(*Options)) *Actor {
	t.Helper()
	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	a, err := New(nil, queries, opts)
	if err != nil {
		t.Fatalf("failed creating actor: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func flatWorld() *world.World {
	w := world.New()
	w.AddBox("floor", mgl32.Vec3{-50, -1, -50}, mgl32.Vec3{50, 0, 50})
	return w
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, nil, DefaultOptions()); err == nil {
		t.Fatal("expected error for nil provider")
	}
	opts := DefaultOptions()
	opts.BodySize = mgl32.Vec2{0.5, 0.5}
	if _, err := New(nil, world.New(), opts); err == nil {
		t.Fatal("expected error for degenerate body size")
	}
	opts = DefaultOptions()
	opts.SlideIterations = 0
	if _, err := New(nil, world.New(), opts); err == nil {
		t.Fatal("expected error for zero slide iterations")
	}
}

func TestFlatGroundLanding(t *testing.T) {
	a := newTestActor(t, flatWorld(), nil)
	obs := &recordingObserver{}
	a.AddObserver(obs)

	a.Move(mgl32.Vec3{0, 0.1, 0})
	a.SetVelocity(mgl32.Vec3{0, -5, 0})

	a.PreIntegration(dt)
	a.PostIntegration(dt)

	if got := a.CurrentState(); got != StableGrounded {
		t.Fatalf("expected StableGrounded, got %v", got)
	}
	if vy := a.Velocity().Y(); !mmath.Float32ApproxEq(vy, 0) {
		t.Fatalf("expected the landing to absorb vertical velocity, got %v", vy)
	}
	if y := a.Position().Y(); math32.Abs(y-0.005) > 1e-3 {
		t.Fatalf("expected the base to rest a skin above the floor, got %v", y)
	}
	if obs.enters != 1 {
		t.Fatalf("expected one grounded-enter notification, got %d", obs.enters)
	}
}

func TestSteepSlopeIsUnstable(t *testing.T) {
	w := world.New()
	// 60 degree slope against the default 55 degree limit.
	n := mgl32.Vec3{math32.Sin(mgl32.DegToRad(60)), math32.Cos(mgl32.DegToRad(60)), 0}
	w.AddQuad("slope", mgl32.Vec3{0, 0, 0}, n, 20, 20)

	a := newTestActor(t, w, nil)
	a.Move(mgl32.Vec3{0, 0.3, 0})

	a.PreIntegration(dt)
	a.PostIntegration(dt)

	if got := a.CurrentState(); got != UnstableGrounded {
		t.Fatalf("expected UnstableGrounded, got %v", got)
	}
	if a.IsStable() {
		t.Fatal("steep ground must not be stable")
	}
}

func TestSteepSlopeRejectedAtDistance(t *testing.T) {
	w := world.New()
	n := mgl32.Vec3{math32.Sin(mgl32.DegToRad(60)), math32.Cos(mgl32.DegToRad(60)), 0}
	w.AddQuad("slope", mgl32.Vec3{0, 0, 0}, n, 20, 20)

	// The slope still intersects the probe cast but sits well below the
	// base along up: unwalkable ground must not be grabbed from a distance.
	a := newTestActor(t, w, nil)
	a.Move(mgl32.Vec3{0, 0.7, 0})

	a.PreIntegration(dt)
	if a.IsGrounded() {
		t.Fatalf("steep ground grabbed from %v above it", 0.7)
	}
}

func TestSlopeLimitBoundsStability(t *testing.T) {
	w := world.New()
	n := mgl32.Vec3{math32.Sin(mgl32.DegToRad(45)), math32.Cos(mgl32.DegToRad(45)), 0}
	w.AddQuad("ramp", mgl32.Vec3{0, 0, 0}, n, 20, 20)

	stableA := newTestActor(t, w, func(o *Options) { o.SlopeLimit = 46 })
	stableA.Move(mgl32.Vec3{0, 0.3, 0})
	stableA.PreIntegration(dt)
	if got := stableA.CurrentState(); got != StableGrounded {
		t.Fatalf("expected a 45 degree ramp to be walkable under a 46 degree limit, got %v", got)
	}

	unstableA := newTestActor(t, w, func(o *Options) { o.SlopeLimit = 44 })
	unstableA.Move(mgl32.Vec3{0, 0.3, 0})
	unstableA.PreIntegration(dt)
	if got := unstableA.CurrentState(); got != UnstableGrounded {
		t.Fatalf("expected a 45 degree ramp to be unwalkable under a 44 degree limit, got %v", got)
	}
}

func TestForceNotGroundedLatestWins(t *testing.T) {
	a := newTestActor(t, flatWorld(), nil)
	a.Move(mgl32.Vec3{0, 0.005, 0})
	a.PreIntegration(dt)
	if !a.IsGrounded() {
		t.Fatal("expected the actor to start grounded")
	}

	a.ForceNotGrounded(5)
	a.ForceNotGrounded(2)
	if a.IsGrounded() {
		t.Fatal("force call must clear grounding immediately")
	}

	for tick := 1; tick <= 2; tick++ {
		a.PreIntegration(dt)
		a.PostIntegration(dt)
		if a.IsGrounded() {
			t.Fatalf("ground reacquired during suppression, tick %d", tick)
		}
	}
	a.PreIntegration(dt)
	if !a.IsGrounded() {
		t.Fatal("expected the ground back after the suppression window")
	}
}

func TestForceGrounded(t *testing.T) {
	a := newTestActor(t, flatWorld(), nil)
	a.Move(mgl32.Vec3{0, 0.3, 0})
	a.ForceNotGrounded()

	a.ForceGrounded()
	if !a.IsGrounded() {
		t.Fatal("expected an immediate ground acquisition")
	}
	if y := a.Position().Y(); math32.Abs(y-0.005) > 1e-3 {
		t.Fatalf("expected the actor snapped to the floor, got y=%v", y)
	}
}

func TestTeleport(t *testing.T) {
	a := newTestActor(t, flatWorld(), nil)
	obs := &recordingObserver{}
	a.AddObserver(obs)

	a.Teleport(mgl32.Vec3{5, 3, -2}, mgl32.QuatIdent())
	if a.Position() != (mgl32.Vec3{5, 3, -2}) {
		t.Fatalf("teleport did not apply, pos=%v", a.Position())
	}
	if !mmath.IsZeroVec(a.GroundVelocity()) {
		t.Fatal("teleport must reset the ground velocity")
	}
	if obs.teleports != 1 {
		t.Fatalf("expected one teleport notification, got %d", obs.teleports)
	}
}

func TestWallContactStopsAndDeflects(t *testing.T) {
	w := flatWorld()
	w.AddBox("wall", mgl32.Vec3{2, 0, -5}, mgl32.Vec3{3, 3, 5})

	a := newTestActor(t, w, nil)
	obs := &recordingObserver{}
	a.AddObserver(obs)

	a.Move(mgl32.Vec3{0, 0.005, 0})
	for tick := 0; tick < 10; tick++ {
		a.SetVelocity(mgl32.Vec3{30, 0, 0})
		a.PreIntegration(dt)
		a.PostIntegration(dt)
	}

	// The wall face sits at x=2; the body radius keeps the center short of it.
	if x := a.Position().X(); x > 2-0.39 {
		t.Fatalf("actor tunneled into the wall, x=%v", x)
	}
	if !a.Collisions().WallCollision {
		t.Fatal("expected a wall contact to be recorded")
	}
	if obs.wallHits == 0 {
		t.Fatal("expected wall-hit notifications")
	}

	// Diagonal motion keeps its along-wall component.
	startZ := a.Position().Z()
	a.SetVelocity(mgl32.Vec3{3, 0, 3})
	a.PreIntegration(dt)
	a.PostIntegration(dt)
	if a.Position().Z()-startZ < 0.02 {
		t.Fatalf("expected sliding along the wall, z moved %v", a.Position().Z()-startZ)
	}
	if x := a.Position().X(); x > 2-0.39 {
		t.Fatalf("diagonal slide pushed into the wall, x=%v", x)
	}
}

func TestHeadContactWhileAirborne(t *testing.T) {
	w := flatWorld()
	w.AddBox("ceiling", mgl32.Vec3{-5, 2, -5}, mgl32.Vec3{5, 2.5, 5})

	a := newTestActor(t, w, nil)
	obs := &recordingObserver{}
	a.AddObserver(obs)

	a.Move(mgl32.Vec3{0, 0.005, 0})
	a.PreIntegration(dt)
	a.PostIntegration(dt)

	a.ForceNotGrounded()
	a.SetVelocity(mgl32.Vec3{0, 10, 0})
	for tick := 0; tick < 3; tick++ {
		a.PreIntegration(dt)
		a.PostIntegration(dt)
	}

	if obs.headHits == 0 {
		t.Fatal("expected a head-hit notification")
	}
	if vy := a.Velocity().Y(); vy > 1e-4 {
		t.Fatalf("expected the ceiling to cancel upward velocity, got %v", vy)
	}
}

func TestMovingPlatformCarry(t *testing.T) {
	w := world.New()
	ferry := platform.New(mgl32.Vec3{0, 0.25, 0}, mgl32.QuatIdent())
	ferry.SetLinearVelocity(mgl32.Vec3{2, 0, 0})
	deck := w.AddBox("deck", mgl32.Vec3{-2, 0, -2}, mgl32.Vec3{2, 0.5, 2})
	deck.AttachRigidbody(ferry)

	a := newTestActor(t, w, nil)
	a.Move(mgl32.Vec3{0, 0.51, 0})

	a.PreIntegration(dt)
	a.PostIntegration(dt)

	if got := a.CurrentState(); got != StableGrounded {
		t.Fatalf("expected to stand on the deck, got %v", got)
	}
	if x := a.Position().X(); math32.Abs(x-2*dt) > 1e-3 {
		t.Fatalf("expected the platform to carry the actor %v along x, got %v", 2*dt, x)
	}
	if !mmath.IsZeroVec(a.Velocity()) {
		t.Fatalf("carry must not leak into the actor's own velocity, got %v", a.Velocity())
	}
	gv := a.GroundVelocity()
	if math32.Abs(gv.X()-2) > 1e-3 {
		t.Fatalf("expected ground velocity (2,0,0), got %v", gv)
	}
	if _, ok := a.PlatformFor(deck.ID()); !ok {
		t.Fatal("expected the platform to be cached under the deck collider")
	}

	// The next tick resolves the platform through the cached binding and
	// must keep carrying the actor.
	a.PreIntegration(dt)
	a.PostIntegration(dt)
	if x := a.Position().X(); math32.Abs(x-4*dt) > 1e-3 {
		t.Fatalf("expected the cached binding to keep carrying the actor, x=%v", x)
	}
}

func TestReferenceRigidbodyOverride(t *testing.T) {
	a := newTestActor(t, flatWorld(), nil)
	a.Move(mgl32.Vec3{0, 0.005, 0})

	carrier := platform.New(mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent())
	carrier.SetLinearVelocity(mgl32.Vec3{0, 0, 4})
	a.SetReferenceRigidbody(carrier)

	a.PreIntegration(dt)
	a.PostIntegration(dt)

	if z := a.Position().Z(); math32.Abs(z-4*dt) > 1e-3 {
		t.Fatalf("expected the override rigidbody to carry the actor, z=%v", z)
	}

	a.SetReferenceRigidbody(nil)
	start := a.Position()
	a.PreIntegration(dt)
	if got := a.Position().Sub(start); math32.Abs(got.Z()) > 1e-4 {
		t.Fatalf("expected no carry after clearing the override, moved %v", got)
	}
}

func TestEdgeStraddleUsesUpperFlank(t *testing.T) {
	up := mgl32.Vec3{0, 1, 0}
	deg := func(d float32) mgl32.Vec3 {
		return mgl32.Vec3{math32.Sin(mgl32.DegToRad(d)), math32.Cos(mgl32.DegToRad(d)), 0}
	}
	primary := deg(50)
	upper := deg(10)
	lower := deg(70)

	m := mockProvider{
		shapeCast: func(base, dir mgl32.Vec3, maxDist float32) (phys.HitInfo, bool) {
			if dir.Dot(up) >= 0 {
				return phys.HitInfo{}, false
			}
			// Contact offset horizontally from the center, as an edge lip
			// produces.
			return phys.HitInfo{Point: mgl32.Vec3{0.2, 0, 0}, Normal: primary, Distance: 0.505}, true
		},
		rayCast: func(origin, dir mgl32.Vec3, maxDist float32) (phys.HitInfo, bool) {
			if origin.X() < 0.2 {
				return phys.HitInfo{Point: mgl32.Vec3{origin.X(), 0, 0}, Normal: upper, Distance: origin.Y()}, true
			}
			return phys.HitInfo{Point: mgl32.Vec3{origin.X(), -0.3, 0}, Normal: lower, Distance: origin.Y() + 0.3}, true
		},
	}

	a := newTestActor(t, m, func(o *Options) { o.SlopeLimit = 45 })
	a.PreIntegration(dt)

	if got := a.CurrentState(); got != StableGrounded {
		t.Fatalf("expected the walkable upper flank to keep the actor stable, got %v", got)
	}
	c := a.Collisions()
	if !c.IsOnEdge {
		t.Fatal("expected the contact to be classified as an edge")
	}
	if ang := mmath.AngleBetween(c.StableNormal, upper); ang > 1e-3 {
		t.Fatalf("expected the upper flank normal to be adopted, off by %v degrees", ang)
	}
	if math32.Abs(c.UpperAngle-10) > 1e-2 || math32.Abs(c.LowerAngle-70) > 1e-2 {
		t.Fatalf("flank angles wrong: upper=%v lower=%v", c.UpperAngle, c.LowerAngle)
	}
}

func TestGroundPrediction(t *testing.T) {
	a := newTestActor(t, flatWorld(), nil)
	a.Move(mgl32.Vec3{0, 0.8, 0})

	a.PreIntegration(dt)

	if a.IsGrounded() {
		t.Fatal("actor should be airborne at 0.8 above the floor")
	}
	c := a.Collisions()
	if !c.HasPredictedGround {
		t.Fatal("expected a predicted ground within the prediction window")
	}
	if math32.Abs(c.PredictedGroundDistance-0.8) > 5e-3 {
		t.Fatalf("expected predicted distance 0.8, got %v", c.PredictedGroundDistance)
	}
	if c.PredictedGroundAngle > 1e-3 {
		t.Fatalf("expected a flat predicted surface, got %v", c.PredictedGroundAngle)
	}
}

func TestVelocityPipelineSnapshots(t *testing.T) {
	a := newTestActor(t, mockProvider{}, nil)
	a.SetVelocity(mgl32.Vec3{1, 2, 3})

	a.PreIntegration(dt)
	if a.InputVelocity() != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("input snapshot wrong: %v", a.InputVelocity())
	}
	if a.PreSimulationVelocity() != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("pre-simulation snapshot wrong: %v", a.PreSimulationVelocity())
	}

	gravity := mgl32.Vec3{0, -9.81 * dt, 0}
	a.SetVelocity(a.Velocity().Add(gravity))
	a.PostIntegration(dt)

	if got := a.ExternalVelocity(); math32.Abs(got.Y()-gravity.Y()) > 1e-5 {
		t.Fatalf("external velocity should equal the integrated delta, got %v", got)
	}
	if a.PostSimulationVelocity() != a.Velocity() {
		t.Fatalf("post-simulation mode must keep the integrated velocity")
	}
}

func TestInputVelocityModeDiscardsExternal(t *testing.T) {
	a := newTestActor(t, mockProvider{}, func(o *Options) {
		o.UnstableVelocityMode = UseInputVelocity
	})
	a.SetVelocity(mgl32.Vec3{1, 0, 0})

	a.PreIntegration(dt)
	a.SetVelocity(mgl32.Vec3{1, -5, 0})
	a.PostIntegration(dt)

	if a.Velocity() != (mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("input mode must restore the pre-tick velocity, got %v", a.Velocity())
	}
	if got := a.ExternalVelocity(); math32.Abs(got.Y()+5) > 1e-5 {
		t.Fatalf("external velocity must still be measured, got %v", got)
	}
}

func TestBodyResize(t *testing.T) {
	w := flatWorld()
	w.AddBox("ceiling", mgl32.Vec3{-5, 1.2, -5}, mgl32.Vec3{5, 2, 5})

	a := newTestActor(t, w, func(o *Options) { o.BodySize = mgl32.Vec2{0.3, 1.0} })
	a.Move(mgl32.Vec3{0, 0.005, 0})

	if a.SetBodySize(mgl32.Vec2{0.3, 1.8}) {
		t.Fatal("growth under a low ceiling must be rejected")
	}
	if !a.SetBodySize(mgl32.Vec2{0.3, 0.8}) {
		t.Fatal("shrinking must always be accepted")
	}
	if a.SetBodySize(mgl32.Vec2{0.3, 0.3}) {
		t.Fatal("degenerate sizes must be rejected")
	}

	for tick := 0; tick < 5; tick++ {
		a.PreIntegration(dt)
		a.PostIntegration(dt)
	}
	if got := a.BodySize(); !mmath.Float32ApproxEq(got.Y(), 0.8) {
		t.Fatalf("expected the size to settle at the target, got %v", got)
	}
}

func TestTimersAccumulateAndReset(t *testing.T) {
	a := newTestActor(t, flatWorld(), nil)
	a.Move(mgl32.Vec3{0, 0.005, 0})

	for tick := 0; tick < 6; tick++ {
		a.PreIntegration(dt)
		a.PostIntegration(dt)
	}
	tm := a.Timers()
	if math32.Abs(tm.GroundedTime-6*dt) > 1e-5 || math32.Abs(tm.StableGroundedTime-6*dt) > 1e-5 {
		t.Fatalf("grounded timers wrong: %+v", tm)
	}
	if tm.NotGroundedTime != 0 {
		t.Fatalf("not-grounded timer should be reset, got %v", tm.NotGroundedTime)
	}

	a.ForceNotGrounded(10)
	a.PreIntegration(dt)
	tm = a.Timers()
	if tm.GroundedTime != 0 || tm.StableGroundedTime != 0 {
		t.Fatalf("grounded timers should reset on losing ground: %+v", tm)
	}
	if !mmath.Float32ApproxEq(tm.NotGroundedTime, dt) {
		t.Fatalf("expected one tick of airtime, got %v", tm.NotGroundedTime)
	}
}

func TestGroundedExitNotification(t *testing.T) {
	a := newTestActor(t, flatWorld(), nil)
	obs := &recordingObserver{}
	a.AddObserver(obs)

	a.Move(mgl32.Vec3{0, 0.005, 0})
	a.PreIntegration(dt)
	a.PostIntegration(dt)
	if obs.enters != 1 {
		t.Fatalf("expected one enter, got %d", obs.enters)
	}

	a.ForceNotGrounded(10)
	a.PreIntegration(dt)
	a.PostIntegration(dt)
	if obs.exits != 1 {
		t.Fatalf("expected one exit, got %d", obs.exits)
	}
}

// pushBody is a minimal dynamic rigidbody for push scenarios.
type pushBody struct{ forces int }

func (*pushBody) Position() mgl32.Vec3             { return mgl32.Vec3{} }
func (*pushBody) Rotation() mgl32.Quat             { return mgl32.QuatIdent() }
func (*pushBody) IsKinematic() bool                { return false }
func (*pushBody) Mass() float32                    { return 1 }
func (*pushBody) VelocityAt(mgl32.Vec3) mgl32.Vec3 { return mgl32.Vec3{} }
func (b *pushBody) AddForceAt(force, point mgl32.Vec3) {
	b.forces++
}

// bodyCollider binds a scripted rigidbody to a collider identity.
type bodyCollider struct {
	id uint64
	rb phys.Rigidbody
}

func (c *bodyCollider) ID() uint64                { return c.id }
func (*bodyCollider) Layer() uint32               { return 1 }
func (*bodyCollider) IsTrigger() bool             { return false }
func (c *bodyCollider) Rigidbody() phys.Rigidbody { return c.rb }

func TestStablePushCommitsRequestedDisplacement(t *testing.T) {
	pushed := &bodyCollider{id: 7, rb: &pushBody{}}
	wallN := mgl32.Vec3{-1, 0, 1}.Normalize()

	casts := 0
	m := mockProvider{
		shapeCast: func(base, dir mgl32.Vec3, maxDist float32) (phys.HitInfo, bool) {
			casts++
			if casts == 1 {
				// Static wall halfway through the displacement.
				return phys.HitInfo{Point: base.Add(dir.Mul(0.5)), Normal: wallN, Distance: 0.5}, true
			}
			return phys.HitInfo{Point: base, Normal: wallN, Distance: 0.01, Collider: pushed}, true
		},
	}

	a := newTestActor(t, m, nil)
	a.collisions.StableNormal = mgl32.Vec3{0, 1, 0}
	start := a.Position()
	want := mgl32.Vec3{1, 0, 0}

	a.slideStable(want, true)

	moved := a.Position().Sub(start)
	if moved.Sub(want).Len() > 1e-4 {
		t.Fatalf("expected the push to commit exactly the requested displacement, moved %v", moved)
	}
	if casts < 2 {
		t.Fatalf("expected the static wall to deflect the motion before the push, casts=%d", casts)
	}
}

func TestCornerSlideFollowsCrease(t *testing.T) {
	// Two unwalkable planes meeting at a convex corner, tilted so their
	// normals correlate positively. Motion into the corner must deflect
	// along the line the planes share instead of stopping.
	n1 := mgl32.Vec3{-math32.Sin(mgl32.DegToRad(60)), math32.Cos(mgl32.DegToRad(60)), 0}
	n2 := mgl32.Vec3{
		-math32.Sin(mgl32.DegToRad(60)) * math32.Cos(mgl32.DegToRad(30)),
		math32.Cos(mgl32.DegToRad(60)),
		math32.Sin(mgl32.DegToRad(60)) * math32.Sin(mgl32.DegToRad(30)),
	}

	var dirs []mgl32.Vec3
	m := mockProvider{
		shapeCast: func(base, dir mgl32.Vec3, maxDist float32) (phys.HitInfo, bool) {
			dirs = append(dirs, dir)
			switch len(dirs) {
			case 1:
				return phys.HitInfo{Point: base.Add(dir.Mul(0.2)), Normal: n1, Distance: 0.2}, true
			case 2:
				return phys.HitInfo{Point: base.Add(dir.Mul(0.1)), Normal: n2, Distance: 0.1}, true
			}
			return phys.HitInfo{}, false
		},
	}

	a := newTestActor(t, m, nil)
	a.collisions.StableNormal = mgl32.Vec3{0, 1, 0}

	a.slideStable(mgl32.Vec3{0.8, 0, 0.6}, true)

	if len(dirs) != 3 {
		t.Fatalf("expected the corner to redirect the motion instead of stopping it, casts=%d", len(dirs))
	}
	// The final leg must run along the line both planes share.
	last := dirs[2]
	if math32.Abs(last.Dot(n1)) > 1e-3 || math32.Abs(last.Dot(n2)) > 1e-3 {
		t.Fatalf("expected sliding along the corner line, dir=%v", last)
	}
}
