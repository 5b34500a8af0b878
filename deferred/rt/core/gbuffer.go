package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Attributes is one pixel of the four attribute targets.
//
//	RT0: albedo.rgb, iridescence
//	RT1: packed normal.rgb (length carries smoothness), unused
//	RT2: metallic, ao/emission, transmission, vertex ao
//	RT3: reserved
type Attributes struct {
	RT0, RT1, RT2, RT3 mgl32.Vec4
}

// Surface is the decoded material at a pixel.
type Surface struct {
	Albedo      mgl32.Vec3
	Iridescence float32
	Normal      mgl32.Vec3 // unit length, or zero for an empty normal
	Smoothness  float32
	Roughness   float32
	Metallic    float32
	// RT2.g carries both: below 0.5 it is occlusion, above it emission.
	AmbientOcclusion float32
	Emission         float32 // [-1, 1]; <= 0 darkens, > 0 adds
	Transmission     float32
	VertexAO         float32
}

func DecodeNormal(raw mgl32.Vec3) mgl32.Vec3 {
	return raw.Mul(2).Sub(mgl32.Vec3{1, 1, 1})
}

func EncodeNormal(n mgl32.Vec3) mgl32.Vec3 {
	return n.Add(mgl32.Vec3{1, 1, 1}).Mul(0.5)
}

// Smoothness recovers smoothness from the length of a decoded normal.
func Smoothness(decoded mgl32.Vec3) float32 {
	return Saturate(decoded.Len()*4 - 3)
}

// EncodeNormalSmoothness packs a unit normal so that its decoded length
// encodes smoothness; the inverse of DecodeNormal and Smoothness.
func EncodeNormalSmoothness(n mgl32.Vec3, smoothness float32) mgl32.Vec3 {
	length := (Saturate(smoothness) + 3) / 4
	return EncodeNormal(n.Normalize().Mul(length))
}

func DecodeSurface(a Attributes) Surface {
	decoded := DecodeNormal(a.RT1.Vec3())
	smooth := Smoothness(decoded)
	normal := decoded
	if l := decoded.Len(); l > 0 {
		normal = decoded.Mul(1 / l)
	}
	g := a.RT2.Y()
	return Surface{
		Albedo:           a.RT0.Vec3(),
		Iridescence:      a.RT0.W(),
		Normal:           normal,
		Smoothness:       smooth,
		Roughness:        1 - smooth,
		Metallic:         a.RT2.X(),
		AmbientOcclusion: Saturate(g * 2),
		Emission:         Clamp(g*2-1, -1, 1),
		Transmission:     a.RT2.Z(),
		VertexAO:         a.RT2.W(),
	}
}

func Saturate(v float32) float32 {
	return Clamp(v, 0, 1)
}

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
