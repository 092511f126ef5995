// Package config loads and saves engine tuning as a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml"

	"github.com/motorkit/motor/actor"
)

// Settings contains every tunable of the engine in a flat, file-friendly
// layout.
type Settings struct {
	Body struct {
		// Radius and Height describe the capsule body.
		Radius float32
		Height float32
		// SizeLerpSpeed is how fast a resize request is applied, units/sec.
		SizeLerpSpeed float32
	}
	Ground struct {
		// SlopeLimit is the maximum walkable slope angle in degrees.
		SlopeLimit float32
		// StepOffset is the climbable step height.
		StepOffset float32
		// StepDownDistance is how far below the base the probe searches.
		StepDownDistance float32
		// SkinWidth is the contact margin.
		SkinWidth float32
		// PredictionDistance is the airborne ground-prediction window.
		PredictionDistance float32
		// ForceNotGroundedTicks is the default grounding suppression length.
		ForceNotGroundedTicks int
		EdgeCompensation      bool
		PreventUnstableClimb  bool
	}
	Solver struct {
		// SlideIterations bounds the collide-and-slide loops.
		SlideIterations        int
		PushDynamicRigidbodies bool
		PushLayerMask          uint32
		LayerMask              uint32
	}
	Velocity struct {
		// StableMode and UnstableMode are "input", "pre" or "post".
		StableMode   string
		UnstableMode string
	}
	Platform struct {
		RotateForwardWithGround bool
	}
	Log struct {
		// Level is a logrus level name, e.g. "info" or "debug".
		Level string
	}
}

// DefaultSettings returns the settings matching actor.DefaultOptions.
func DefaultSettings() Settings {
	opts := actor.DefaultOptions()

	s := Settings{}
	s.Body.Radius = opts.BodySize.X()
	s.Body.Height = opts.BodySize.Y()
	s.Body.SizeLerpSpeed = opts.SizeLerpSpeed

	s.Ground.SlopeLimit = opts.SlopeLimit
	s.Ground.StepOffset = opts.StepOffset
	s.Ground.StepDownDistance = opts.StepDownDistance
	s.Ground.SkinWidth = opts.SkinWidth
	s.Ground.PredictionDistance = opts.PredictionDistance
	s.Ground.ForceNotGroundedTicks = opts.ForceNotGroundedTicks
	s.Ground.EdgeCompensation = opts.EdgeCompensation
	s.Ground.PreventUnstableClimb = opts.PreventUnstableClimb

	s.Solver.SlideIterations = opts.SlideIterations
	s.Solver.PushDynamicRigidbodies = opts.PushDynamicRigidbodies
	s.Solver.PushLayerMask = opts.PushLayerMask
	s.Solver.LayerMask = opts.LayerMask

	s.Velocity.StableMode = modeName(opts.StableVelocityMode)
	s.Velocity.UnstableMode = modeName(opts.UnstableVelocityMode)

	s.Platform.RotateForwardWithGround = opts.RotateForwardWithGround

	s.Log.Level = "info"
	return s
}

// Options converts the settings into actor options. Unknown velocity mode
// names fall back to "post".
func (s Settings) Options() actor.Options {
	opts := actor.DefaultOptions()
	opts.BodySize = mgl32.Vec2{s.Body.Radius, s.Body.Height}
	opts.SizeLerpSpeed = s.Body.SizeLerpSpeed

	opts.SlopeLimit = s.Ground.SlopeLimit
	opts.StepOffset = s.Ground.StepOffset
	opts.StepDownDistance = s.Ground.StepDownDistance
	opts.SkinWidth = s.Ground.SkinWidth
	opts.PredictionDistance = s.Ground.PredictionDistance
	opts.ForceNotGroundedTicks = s.Ground.ForceNotGroundedTicks
	opts.EdgeCompensation = s.Ground.EdgeCompensation
	opts.PreventUnstableClimb = s.Ground.PreventUnstableClimb

	opts.SlideIterations = s.Solver.SlideIterations
	opts.PushDynamicRigidbodies = s.Solver.PushDynamicRigidbodies
	opts.PushLayerMask = s.Solver.PushLayerMask
	opts.LayerMask = s.Solver.LayerMask

	opts.StableVelocityMode = modeFromName(s.Velocity.StableMode)
	opts.UnstableVelocityMode = modeFromName(s.Velocity.UnstableMode)

	opts.RotateForwardWithGround = s.Platform.RotateForwardWithGround
	return opts
}

func modeName(m actor.VelocityMode) string {
	switch m {
	case actor.UseInputVelocity:
		return "input"
	case actor.UsePreSimulationVelocity:
		return "pre"
	default:
		return "post"
	}
}

func modeFromName(name string) actor.VelocityMode {
	switch name {
	case "input":
		return actor.UseInputVelocity
	case "pre":
		return actor.UsePreSimulationVelocity
	default:
		return actor.UsePostSimulationVelocity
	}
}

// SaveDefault will create and save the default settings file. If the file
// already exists, it will return an error.
func SaveDefault(path string) error {
	s := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if data, err := toml.Marshal(s); err != nil {
			return fmt.Errorf("failed encoding default settings: %v", err)
		} else if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed creating settings file: %v", err)
		}
		return nil
	}
	return errors.New("settings file already exists")
}

// Load will load the settings from the given file, creating it with default
// values first when it does not exist.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveDefault(path); err != nil {
			return Settings{}, err
		}
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %v", err)
	}

	var s Settings
	if err = toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %v", err)
	}
	return s, nil
}
