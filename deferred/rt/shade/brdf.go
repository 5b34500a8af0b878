package shade

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/composite/deferred/rt/core"
)

const (
	minSpecularDenominator = 0.001
	minAttenuationDistSq   = 1e-4
	minNDFDenominator      = 1e-7
	// a mirror lobe is a delta; clamp it to the narrowest one float32 keeps finite
	minLobeRoughness = 0.045
)

// LightSample is one light as seen from a surface point.
type LightSample struct {
	L        mgl32.Vec3 // unit vector toward the light
	Radiance mgl32.Vec3
	Shadow   float32
}

func DistributionGGX(n, h mgl32.Vec3, roughness float32) float32 {
	a := max32(roughness, minLobeRoughness)
	a *= a
	a2 := a * a
	nDotH := max32(n.Dot(h), 0)
	denom := nDotH*nDotH*(a2-1) + 1
	return a2 / max32(math.Pi*denom*denom, minNDFDenominator)
}

func GeometrySchlickGGX(nDotV, roughness float32) float32 {
	r := roughness + 1
	k := r * r / 8
	return nDotV / (nDotV*(1-k) + k)
}

func GeometrySmith(n, v, l mgl32.Vec3, roughness float32) float32 {
	nDotV := max32(n.Dot(v), 0)
	nDotL := max32(n.Dot(l), 0)
	return GeometrySchlickGGX(nDotV, roughness) * GeometrySchlickGGX(nDotL, roughness)
}

func FresnelSchlick(cosTheta float32, f0 mgl32.Vec3) mgl32.Vec3 {
	t := pow5(core.Saturate(1 - cosTheta))
	return f0.Add(mgl32.Vec3{1, 1, 1}.Sub(f0).Mul(t))
}

func FresnelSchlickRoughness(cosTheta float32, f0 mgl32.Vec3, roughness float32) mgl32.Vec3 {
	t := pow5(core.Saturate(1 - cosTheta))
	smooth := 1 - roughness
	top := mgl32.Vec3{max32(smooth, f0[0]), max32(smooth, f0[1]), max32(smooth, f0[2])}
	return f0.Add(top.Sub(f0).Mul(t))
}

// BaseReflectance interpolates between the dielectric F0 and albedo.
func BaseReflectance(s *core.Surface, dielectric float32) mgl32.Vec3 {
	d := mgl32.Vec3{dielectric, dielectric, dielectric}
	return d.Add(s.Albedo.Sub(d).Mul(s.Metallic))
}

// DirectLight is the Cook-Torrance contribution of one light.
func DirectLight(s *core.Surface, v, f0 mgl32.Vec3, light LightSample) mgl32.Vec3 {
	n := s.Normal
	l := light.L
	h := v.Add(l)
	if h.Len() > 0 {
		h = h.Normalize()
	}

	nDotV := max32(n.Dot(v), 0)
	nDotL := max32(n.Dot(l), 0)

	ndf := DistributionGGX(n, h, s.Roughness)
	g := GeometrySmith(n, v, l, s.Roughness)
	f := FresnelSchlick(max32(h.Dot(v), 0), f0)

	denom := max32(4*nDotV*nDotL, minSpecularDenominator)
	specular := f.Mul(ndf * g / denom)

	kD := mgl32.Vec3{1, 1, 1}.Sub(f).Mul(1 - s.Metallic)
	diffuse := mul3(kD, s.Albedo).Mul(1 / math.Pi)

	return mul3(diffuse.Add(specular), light.Radiance).Mul(nDotL * light.Shadow)
}

// Reflectance holds the unclamped terms of the lighting model.
type Reflectance struct {
	Direct          mgl32.Vec3
	AmbientDiffuse  mgl32.Vec3
	AmbientSpecular mgl32.Vec3
}

// Color is the Reinhard-compressed sum, alpha 1.
func (r Reflectance) Color() mgl32.Vec4 {
	return Reinhard(r.Direct.Add(r.AmbientDiffuse).Add(r.AmbientSpecular)).Vec4(1)
}

// EvaluateReflectance runs the fixed light set and the image-based ambient
// term for a surface at world, distance units from the camera.
func EvaluateReflectance(s *core.Surface, world mgl32.Vec3, distance float32, frame *Frame, opts *Options) Reflectance {
	v := frame.View.Position.Sub(world)
	if v.Len() > 0 {
		v = v.Normalize()
	}
	f0 := BaseReflectance(s, opts.DielectricF0)

	var out Reflectance
	for _, light := range lightSamples(world, distance, frame, opts) {
		out.Direct = out.Direct.Add(DirectLight(s, v, f0, light))
	}

	nDotV := max32(s.Normal.Dot(v), 0)
	f := FresnelSchlickRoughness(nDotV, f0, s.Roughness)
	kD := mgl32.Vec3{1, 1, 1}.Sub(f).Mul(1 - s.Metallic)
	out.AmbientDiffuse = mul3(kD, s.Albedo).Mul(opts.AmbientStrength)

	r := s.Normal.Mul(2 * s.Normal.Dot(v)).Sub(v)
	levels := opts.EnvironmentLevels
	if levels <= 0 {
		levels = frame.Environment.Levels()
	}
	env := frame.Environment.Sample(r, s.Roughness*float32(levels)).Vec3()
	out.AmbientSpecular = mul3(env, f).Mul(s.Smoothness * opts.SpecularScale)
	return out
}

// lightSamples builds the light set for a surface point. Slot 0 is always a
// white fill light at the camera; slot 1 is always the global light and the
// only one that is shadowed.
func lightSamples(world mgl32.Vec3, distance float32, frame *Frame, opts *Options) []LightSample {
	samples := make([]LightSample, 0, 2)
	if s, ok := pointLight(world, frame.View.Position, opts.FillLightColor, opts.LocalLightCutoff); ok {
		samples = append(samples, s)
	}

	global := frame.Global
	samples = append(samples, LightSample{
		L:        global.ToLight(),
		Radiance: global.Color.Vec3().Mul(opts.DirectionalMultiplier),
		Shadow:   Shadow(&frame.Cascades, frame.Shadows, world, distance, opts),
	})

	if opts.ExtraLocalLights {
		for i := core.LightSlotGlobal + 1; i < frame.Lights.Len(); i++ {
			pos, color := frame.Lights.Light(i)
			if s, ok := pointLight(world, pos, color.Vec3().Mul(color.W()), opts.LocalLightCutoff); ok {
				samples = append(samples, s)
			}
		}
	}
	return samples
}

func pointLight(world, position, color mgl32.Vec3, cutoff float32) (LightSample, bool) {
	toLight := position.Sub(world)
	d := toLight.Len()
	if d > cutoff {
		return LightSample{}, false
	}
	l := mgl32.Vec3{0, 0, 1}
	if d > 0 {
		l = toLight.Mul(1 / d)
	}
	return LightSample{
		L:        l,
		Radiance: color.Mul(1 / max32(d*d, minAttenuationDistSq)),
		Shadow:   1,
	}, true
}

// Reinhard compresses each channel with c / (c + 1).
func Reinhard(c mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{c[0] / (c[0] + 1), c[1] / (c[1] + 1), c[2] / (c[2] + 1)}
}

func mul3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func pow5(x float32) float32 {
	x2 := x * x
	return x2 * x2 * x
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
