package shade

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/gekko3d/composite/deferred/rt/core"
)

func TestTexCoordPixelCenters(t *testing.T) {
	assert.Equal(t, mgl32.Vec2{0.125, 0.25}, TexCoord(0, 0, 4, 2))
	assert.Equal(t, mgl32.Vec2{0.875, 0.75}, TexCoord(3, 1, 4, 2))
}

func TestNDCFlipsY(t *testing.T) {
	assert.Equal(t, mgl32.Vec2{-1, 1}, NDC(mgl32.Vec2{0, 0}))
	assert.Equal(t, mgl32.Vec2{1, -1}, NDC(mgl32.Vec2{1, 1}))
	assert.Equal(t, mgl32.Vec2{0, 0}, NDC(mgl32.Vec2{0.5, 0.5}))
}

func TestReconstructWorldRoundTrip(t *testing.T) {
	cam := core.NewCameraState()
	cam.Position = mgl32.Vec3{3, -4, 2}
	cam.Yaw = 0.6
	cam.Pitch = -0.1
	view := cam.View(16.0 / 9.0)

	points := []mgl32.Vec3{
		view.Position.Add(view.Forward.Mul(5)),
		view.Position.Add(view.Forward.Mul(20)).Add(mgl32.Vec3{1, 0.5, -0.5}),
		view.Position.Add(view.Forward.Mul(60)).Add(mgl32.Vec3{-4, 2, 3}),
	}
	for _, world := range points {
		clip := view.ViewProjection.Mul4x1(world.Vec4(1))
		ndc := clip.Vec3().Mul(1 / clip.W())
		uv := mgl32.Vec2{(ndc.X() + 1) / 2, (1 - ndc.Y()) / 2}

		got := ReconstructWorld(view.InvViewProjection, uv, ndc.Z())
		tolerance := float64(view.Distance(world)) * 2e-3
		for i := 0; i < 3; i++ {
			assert.InDelta(t, world[i], got[i], tolerance, "point %v got %v", world, got)
		}
	}
}
