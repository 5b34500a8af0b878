package shade

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/composite/deferred/rt/core"
	"github.com/gekko3d/composite/deferred/rt/texture"
)

// Shadow returns how lit a world position is by the global light, 1 being
// fully lit. distance is the camera distance of the position.
func Shadow(cascades *core.CascadeSet, maps *texture.DepthArray, world mgl32.Vec3, distance float32, opts *Options) float32 {
	if !opts.RenderShadows || maps == nil {
		return 1
	}
	far := cascades.Far()
	if distance >= far {
		return 1
	}

	level := cascades.Level(distance)
	clip := cascades.Project(level, world)
	if clip.Z() > 1 {
		return 1
	}
	uv := mgl32.Vec2{clip.X()*0.5 + 0.5, -clip.Y()*0.5 + 0.5}

	lit := float32(1)
	if maps.Sample(uv, level) < clip.Z()-opts.ShadowBias {
		lit = 0
	}
	return ShadowFalloff(lit, distance, far, opts.ShadowFalloffStart)
}

// ShadowFalloff fades a shadow result toward fully lit over the last part of
// the shadowed range so the map boundary has no hard edge.
func ShadowFalloff(shadow, distance, far, startFraction float32) float32 {
	start := far * startFraction
	if distance <= start || far <= start {
		return shadow
	}
	t := core.Saturate((distance - start) / (far - start))
	return shadow + (1-shadow)*t
}
