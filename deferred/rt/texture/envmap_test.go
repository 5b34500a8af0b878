package texture

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mrjoshuak/go-openexr/exr"
	"github.com/stretchr/testify/assert"
)

func cubeStrip(face int, c mgl32.Vec4) *Image {
	return Fill(face, face*6, c)
}

func TestEnvironmentMipChain(t *testing.T) {
	env := EnvironmentFromImage(cubeStrip(32, mgl32.Vec4{1, 1, 1, 1}), exr.EnvMapCube, 8)

	// 32 -> 16 -> 8 -> 4 -> 2 -> 1
	assert.Equal(t, 6, env.Levels())
	assert.Equal(t, 1, env.Level(5).Width)
	assert.Equal(t, 6, env.Level(5).Height)
	assert.Equal(t, 32, env.Level(-1).Width, "level index clamps")
}

func TestEnvironmentMipChainCapped(t *testing.T) {
	env := EnvironmentFromImage(cubeStrip(256, mgl32.Vec4{1, 1, 1, 1}), exr.EnvMapCube, DefaultEnvironmentLevels)
	assert.Equal(t, DefaultEnvironmentLevels, env.Levels())
}

func TestEnvironmentUniformSample(t *testing.T) {
	c := mgl32.Vec4{0.2, 0.4, 0.6, 1}
	env := EnvironmentFromImage(cubeStrip(16, c), exr.EnvMapCube, 8)

	dirs := []mgl32.Vec3{{1, 0, 0}, {0, -1, 0}, {0.3, 0.3, 0.9}, {-1, -1, -1}}
	for _, d := range dirs {
		for _, lod := range []float32{0, 0.5, 2.25, 100} {
			got := env.Sample(d.Normalize(), lod)
			for i := 0; i < 4; i++ {
				assert.InDelta(t, c[i], got[i], 1e-5, "dir %v lod %v", d, lod)
			}
		}
	}
}

func TestEnvironmentFacesResolveDirection(t *testing.T) {
	face := 8
	img := cubeStrip(face, mgl32.Vec4{})
	// paint +Z face (index 4) red
	for y := 4 * face; y < 5*face; y++ {
		for x := 0; x < face; x++ {
			img.Set(x, y, mgl32.Vec4{1, 0, 0, 1})
		}
	}
	env := EnvironmentFromImage(img, exr.EnvMapCube, 1)

	assert.InDelta(t, 1, env.Sample(mgl32.Vec3{0, 0, 1}, 0).X(), 1e-5)
	assert.InDelta(t, 0, env.Sample(mgl32.Vec3{0, 0, -1}, 0).X(), 1e-5)
}

func TestNilEnvironment(t *testing.T) {
	var env *Environment
	assert.Equal(t, 0, env.Levels())
	assert.Equal(t, mgl32.Vec4{}, env.Sample(mgl32.Vec3{0, 0, 1}, 0))
}
