package texture

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mrjoshuak/go-openexr/exr"
)

// DefaultEnvironmentLevels is the mip range the ambient specular term spans.
const DefaultEnvironmentLevels = 8

// Environment is a mipmapped environment map. Level 0 is the source image;
// each further level halves the resolution with a box filter.
type Environment struct {
	levels []*exr.EnvMapImage
}

// NewEnvironment builds up to maxLevels mips from base. Cube maps are
// vertical strips of six square faces, so halving keeps face boundaries on
// whole texels as long as the face size stays even.
func NewEnvironment(base *exr.EnvMapImage, maxLevels int) *Environment {
	if maxLevels <= 0 {
		maxLevels = DefaultEnvironmentLevels
	}
	env := &Environment{levels: []*exr.EnvMapImage{base}}
	for len(env.levels) < maxLevels {
		prev := env.levels[len(env.levels)-1]
		if !canHalve(prev) {
			break
		}
		env.levels = append(env.levels, halve(prev))
	}
	return env
}

// EnvironmentFromImage wraps a float image as an environment map of the given type.
func EnvironmentFromImage(img *Image, envType exr.EnvMap, maxLevels int) *Environment {
	base := exr.NewEnvMapImage(envType, img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			base.Set(x, y, exr.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]})
		}
	}
	return NewEnvironment(base, maxLevels)
}

func (e *Environment) Levels() int {
	if e == nil {
		return 0
	}
	return len(e.levels)
}

func (e *Environment) Level(i int) *exr.EnvMapImage {
	return e.levels[clampInt(i, 0, len(e.levels)-1)]
}

// Sample looks up dir at a fractional mip level, blending the two nearest levels.
func (e *Environment) Sample(dir mgl32.Vec3, lod float32) mgl32.Vec4 {
	if e.Levels() == 0 {
		return mgl32.Vec4{}
	}
	lod = mgl32.Clamp(lod, 0, float32(len(e.levels)-1))
	lo := int(math.Floor(float64(lod)))
	hi := clampInt(lo+1, 0, len(e.levels)-1)
	t := lod - float32(lo)

	d := exr.V3f{X: dir.X(), Y: dir.Y(), Z: dir.Z()}
	a := toVec4(e.levels[lo].Lookup(d))
	if t == 0 || hi == lo {
		return a
	}
	b := toVec4(e.levels[hi].Lookup(d))
	return lerp4(a, b, t)
}

func canHalve(img *exr.EnvMapImage) bool {
	if img.Type == exr.EnvMapCube {
		face := exr.CubeSizeOfFace(img.DataWindow())
		return face >= 2 && face%2 == 0 && img.Height == face*6
	}
	return img.Width >= 2 && img.Height >= 2
}

func halve(src *exr.EnvMapImage) *exr.EnvMapImage {
	w, h := src.Width/2, src.Height/2
	dst := exr.NewEnvMapImage(src.Type, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.At(2*x, 2*y).
				Add(src.At(2*x+1, 2*y)).
				Add(src.At(2*x, 2*y+1)).
				Add(src.At(2*x+1, 2*y+1))
			dst.Set(x, y, c.Scale(0.25))
		}
	}
	return dst
}

func toVec4(c exr.RGBA) mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}
