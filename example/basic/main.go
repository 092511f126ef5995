package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/motorkit/motor/actor"
	"github.com/motorkit/motor/config"
	"github.com/motorkit/motor/platform"
	"github.com/motorkit/motor/world"
)

// The following program builds a small test scene and steps one character
// across it: flat ground, a walkable ramp, a wall and a moving platform.
func main() {
	settings, err := config.Load("motor.toml")
	if err != nil {
		panic(err)
	}

	lg := logrus.New()
	lg.Formatter = &logrus.TextFormatter{ForceColors: true}
	if lvl, err := logrus.ParseLevel(settings.Log.Level); err == nil {
		lg.Level = lvl
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
	}

	w := world.New()
	w.AddBox("floor", mgl32.Vec3{-50, -1, -50}, mgl32.Vec3{50, 0, 50})
	w.AddBox("wall", mgl32.Vec3{6, 0, -2}, mgl32.Vec3{7, 3, 2})
	w.AddQuad("ramp", mgl32.Vec3{0, 1, 6}, mgl32.Vec3{0, 1, -0.5}.Normalize(), 4, 4)

	ferryStart := mgl32.Vec3{0, 0.5, -8}
	ferry := platform.New(ferryStart, mgl32.QuatIdent())
	ferry.SetLinearVelocity(mgl32.Vec3{2, 0, 0})
	deck := w.AddBox("ferry", mgl32.Vec3{-2, 0, -10}, mgl32.Vec3{2, 0.5, -6})
	deck.AttachRigidbody(ferry)

	a, err := actor.New(lg.WithField("actor", "demo"), w, settings.Options())
	if err != nil {
		panic(err)
	}
	defer a.Close()

	a.Teleport(mgl32.Vec3{-4, 0.1, 0}, mgl32.QuatIdent())
	a.SetVelocity(mgl32.Vec3{3, 0, 0})

	const dt = float32(1.0 / 60.0)
	for tick := 0; tick < 600; tick++ {
		// A real host integrates forces between the two phases; here gravity
		// stands in for the whole physics step.
		a.PreIntegration(dt)
		if !a.IsStable() {
			a.SetVelocity(a.Velocity().Add(mgl32.Vec3{0, -9.81 * dt, 0}))
		}
		a.PostIntegration(dt)

		ferry.Step(dt)
		deck.SetOffset(ferry.Position().Sub(ferryStart))

		if tick%60 == 0 {
			fmt.Printf("t=%.1fs pos=%v state=%v\n", float32(tick)*dt, a.Position(), a.CurrentState())
		}
	}
}
