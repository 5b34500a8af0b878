package shade

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/composite/deferred/rt/texture"
)

// Mode selects what the composite writes for a pixel. Anything outside the
// enumerated range behaves as ModeCombined.
type Mode uint32

const (
	ModeCombined Mode = iota
	ModeAlbedo
	ModeNormal
	ModePBRStack
	ModeRT3
	ModeSmoothness
	ModeMetalness
	ModeTextureAO
	ModeEmission
	ModeTransmission
	ModeVertexAO
	ModeIridescence
	ModeCubemap
	ModeMatcap
	ModeDepth
	ModeSpecular
	ModeLightRT0
	ModeLightRT1

	modeCount
)

var modeNames = [modeCount]string{
	ModeCombined:     "combined",
	ModeAlbedo:       "albedo",
	ModeNormal:       "normal",
	ModePBRStack:     "pbr-stack",
	ModeRT3:          "rt3",
	ModeSmoothness:   "smoothness",
	ModeMetalness:    "metalness",
	ModeTextureAO:    "texture-ao",
	ModeEmission:     "emission",
	ModeTransmission: "transmission",
	ModeVertexAO:     "vertex-ao",
	ModeIridescence:  "iridescence",
	ModeCubemap:      "cubemap",
	ModeMatcap:       "matcap",
	ModeDepth:        "depth",
	ModeSpecular:     "specular",
	ModeLightRT0:     "light-rt0",
	ModeLightRT1:     "light-rt1",
}

// handlers is indexed by Mode; each entry is a complete output for one pixel.
var handlers = [modeCount]func(p *pixel) mgl32.Vec4{
	ModeCombined:     combined,
	ModeAlbedo:       func(p *pixel) mgl32.Vec4 { return opaque(p.frag.Attributes.RT0) },
	ModeNormal:       func(p *pixel) mgl32.Vec4 { return opaque(p.frag.Attributes.RT1) },
	ModePBRStack:     func(p *pixel) mgl32.Vec4 { return opaque(p.frag.Attributes.RT2) },
	ModeRT3:          func(p *pixel) mgl32.Vec4 { return opaque(p.frag.Attributes.RT3) },
	ModeSmoothness:   func(p *pixel) mgl32.Vec4 { return gray(p.surface.Smoothness) },
	ModeMetalness:    func(p *pixel) mgl32.Vec4 { return gray(p.surface.Metallic) },
	ModeTextureAO:    func(p *pixel) mgl32.Vec4 { return gray(p.surface.AmbientOcclusion) },
	ModeEmission:     func(p *pixel) mgl32.Vec4 { return gray(max32(p.surface.Emission, 0)) },
	ModeTransmission: func(p *pixel) mgl32.Vec4 { return gray(p.surface.Transmission) },
	ModeVertexAO:     func(p *pixel) mgl32.Vec4 { return gray(p.surface.VertexAO) },
	ModeIridescence:  func(p *pixel) mgl32.Vec4 { return gray(p.surface.Iridescence) },
	ModeCubemap: func(p *pixel) mgl32.Vec4 {
		return opaque(p.frame.Environment.Sample(p.surface.Normal, 0))
	},
	ModeMatcap: func(p *pixel) mgl32.Vec4 { return opaque(Matcap(p.frame.Matcap, p.surface.Normal)) },
	ModeDepth:  func(p *pixel) mgl32.Vec4 { return gray(p.frag.Depth) },
	ModeSpecular: func(p *pixel) mgl32.Vec4 {
		r := EvaluateReflectance(&p.surface, p.world, p.distance, p.frame, p.opts)
		return Reinhard(r.AmbientSpecular).Vec4(1)
	},
	ModeLightRT0: func(p *pixel) mgl32.Vec4 { return opaque(p.frag.LightRT0) },
	ModeLightRT1: func(p *pixel) mgl32.Vec4 { return opaque(p.frag.LightRT1) },
}

func (m Mode) handler() func(p *pixel) mgl32.Vec4 {
	if m < modeCount {
		return handlers[m]
	}
	return combined
}

func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", uint32(m))
}

// Modes lists every enumerated mode in selector order.
func Modes() []Mode {
	out := make([]Mode, modeCount)
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// ParseMode accepts a mode name or its numeric selector. Numbers outside the
// enumerated range are accepted and fall back to the combined output.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	if v, err := strconv.ParseUint(name, 10, 32); err == nil {
		return Mode(v), nil
	}
	return ModeCombined, fmt.Errorf("unknown debug mode %q", s)
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Matcap samples the lookup texture with spherical coordinates of n.
// A missing texture reads as white.
func Matcap(matcap *texture.Image, n mgl32.Vec3) mgl32.Vec4 {
	if matcap == nil {
		return mgl32.Vec4{1, 1, 1, 1}
	}
	return matcap.Sample(MatcapUV(n))
}

func MatcapUV(n mgl32.Vec3) mgl32.Vec2 {
	u := float32(math.Atan2(float64(n.Y()), float64(n.X())))/(2*math.Pi) + 0.5
	v := float32(math.Acos(float64(mgl32.Clamp(n.Z(), -1, 1)))) / math.Pi
	return mgl32.Vec2{u, v}
}

func opaque(c mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{c[0], c[1], c[2], 1}
}

func gray(v float32) mgl32.Vec4 {
	return mgl32.Vec4{v, v, v, 1}
}
