package shade

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/composite/deferred/rt/core"
	"github.com/gekko3d/composite/deferred/rt/texture"
)

// Frame is the read-only state shared by every pixel of one pass.
type Frame struct {
	View        core.View
	Lights      *core.LightList
	Global      core.GlobalLight
	Cascades    core.CascadeSet
	Shadows     *texture.DepthArray  // nil disables shadowing
	Environment *texture.Environment // nil reads as black
	Matcap      *texture.Image       // nil reads as white
	Time        float32
}

// Fragment is everything fetched for one output pixel.
type Fragment struct {
	UV         mgl32.Vec2
	Depth      float32
	Attributes core.Attributes
	LightRT0   mgl32.Vec4
	LightRT1   mgl32.Vec4
}

type pixel struct {
	frag     *Fragment
	frame    *Frame
	opts     *Options
	surface  core.Surface
	world    mgl32.Vec3
	distance float32
}

// Shade evaluates one pixel. It reads only its arguments.
func Shade(frag *Fragment, frame *Frame, opts *Options) mgl32.Vec4 {
	p := pixel{
		frag:    frag,
		frame:   frame,
		opts:    opts,
		surface: core.DecodeSurface(frag.Attributes),
	}
	p.world = ReconstructWorld(frame.View.InvViewProjection, frag.UV, frag.Depth)
	p.distance = frame.View.Distance(p.world)
	return opts.Mode.handler()(&p)
}

func combined(p *pixel) mgl32.Vec4 {
	s := &p.surface
	if !p.opts.LightsActive {
		c := mul3(s.Albedo, Matcap(p.frame.Matcap, s.Normal).Vec3())
		if s.Emission > 0 {
			c = c.Add(s.Albedo.Mul(s.Emission))
		}
		return c.Vec4(1)
	}

	lit := EvaluateReflectance(s, p.world, p.distance, p.frame, p.opts).Color().Vec3()
	c := AccumulateLightBuffers(lit, p.frag.LightRT0, p.frag.LightRT1, p.opts.LightRT1Weight)
	return ApplyEmission(c, s.Albedo, s.Emission).Vec4(1)
}

// AccumulateLightBuffers adds the two auxiliary light targets onto the lit color.
func AccumulateLightBuffers(lit mgl32.Vec3, rt0, rt1 mgl32.Vec4, rt1Weight float32) mgl32.Vec3 {
	return lit.Add(rt0.Vec3()).Add(rt1.Vec3().Mul(rt1Weight))
}

// ApplyEmission adds albedo-tinted emission when positive and otherwise
// scales the color down by the occlusion it encodes.
func ApplyEmission(c, albedo mgl32.Vec3, emission float32) mgl32.Vec3 {
	if emission > 0 {
		return c.Add(albedo.Mul(emission))
	}
	return c.Mul(1 + emission)
}
