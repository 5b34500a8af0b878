// Package shade evaluates the deferred lighting composite for one pixel.
//
// Everything here is a pure function of a Fragment (the per-pixel inputs)
// and a Frame (constants shared by every pixel). Callers dispatch it over
// the output image in any order.
package shade

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/composite/deferred/rt/texture"
)

// Options are the frame-wide controls. The lighting constants are tuned
// against the geometry pass output and rarely need changing.
type Options struct {
	Mode         Mode `yaml:"mode"`
	LightsActive bool `yaml:"lights_active"`

	SpecularScale         float32    `yaml:"specular_scale"`
	DirectionalMultiplier float32    `yaml:"directional_multiplier"`
	FillLightColor        mgl32.Vec3 `yaml:"fill_light_color"`
	LocalLightCutoff      float32    `yaml:"local_light_cutoff"`
	ExtraLocalLights      bool       `yaml:"extra_local_lights"`
	DielectricF0          float32    `yaml:"dielectric_f0"`
	AmbientStrength       float32    `yaml:"ambient_strength"`
	EnvironmentLevels     int        `yaml:"environment_levels"`

	RenderShadows      bool    `yaml:"render_shadows"`
	ShadowBias         float32 `yaml:"shadow_bias"`
	ShadowFalloffStart float32 `yaml:"shadow_falloff_start"` // fraction of the far bound

	LightRT1Weight float32 `yaml:"light_rt1_weight"`
}

func DefaultOptions() Options {
	return Options{
		Mode:                  ModeCombined,
		LightsActive:          true,
		SpecularScale:         1,
		DirectionalMultiplier: 5,
		FillLightColor:        mgl32.Vec3{1, 1, 1},
		LocalLightCutoff:      32,
		DielectricF0:          0.04,
		AmbientStrength:       0.03,
		EnvironmentLevels:     texture.DefaultEnvironmentLevels,
		RenderShadows:         true,
		ShadowBias:            0.0001,
		ShadowFalloffStart:    0.875,
		LightRT1Weight:        0.20,
	}
}
