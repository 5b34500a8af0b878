package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestPerspectiveZODepthRange(t *testing.T) {
	proj := PerspectiveZO(mgl32.DegToRad(60), 1.5, DefaultNear, DefaultFar)

	near := proj.Mul4x1(mgl32.Vec4{0, 0, -DefaultNear, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -DefaultFar, 1})

	assert.InDelta(t, 0, near.Z()/near.W(), 1e-5)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-4)
}

func TestOrthoZODepthRange(t *testing.T) {
	proj := OrthoZO(-4, 4, -2, 2, 1, 11)

	p := proj.Mul4x1(mgl32.Vec4{4, -2, -1, 1})
	assert.InDelta(t, 1, p.X(), 1e-6)
	assert.InDelta(t, -1, p.Y(), 1e-6)
	assert.InDelta(t, 0, p.Z(), 1e-6)

	q := proj.Mul4x1(mgl32.Vec4{0, 0, -11, 1})
	assert.InDelta(t, 1, q.Z(), 1e-6)
}

func TestViewInverses(t *testing.T) {
	cam := NewCameraState()
	cam.Yaw = 0.4
	cam.Pitch = -0.2
	v := cam.View(16.0 / 9.0)

	identity := v.ViewProjection.Mul4(v.InvViewProjection)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			if !closeEnough(identity.At(i, j), want, 1e-3) {
				t.Errorf("VP * VP^-1 [%d,%d] = %f, want %f", i, j, identity.At(i, j), want)
			}
		}
	}
	assert.InDelta(t, 1, v.Forward.Len(), 1e-5)
}

func TestViewDistance(t *testing.T) {
	v := NewView(mgl32.Ident4(), mgl32.Ident4(), mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 1, 0})
	assert.InDelta(t, 5, v.Distance(mgl32.Vec3{1, 2, 8}), 1e-6)
}
