package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Clip planes shared with the geometry and shadow passes. Reconstruction is
// only exact when the cascade matrices were generated against the same pair.
const (
	DefaultNear float32 = 0.1
	DefaultFar  float32 = 4000.0
)

type CameraState struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	FovY     float32 // radians
	Near     float32
	Far      float32
}

func NewCameraState() *CameraState {
	return &CameraState{
		Position: mgl32.Vec3{0, 2, 20},
		Yaw:      0,
		Pitch:    0,
		FovY:     mgl32.DegToRad(90),
		Near:     DefaultNear,
		Far:      DefaultFar,
	}
}

func (c *CameraState) GetForward() mgl32.Vec3 {
	// Z-up: Forward in XY plane, Z for pitch
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Pitch)) * math.Sin(float64(c.Yaw))),
		float32(-math.Cos(float64(c.Pitch)) * math.Cos(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
	}
}

func (c *CameraState) GetViewMatrix() mgl32.Mat4 {
	eye := c.Position
	target := eye.Add(c.GetForward())
	up := mgl32.Vec3{0, 0, 1} // Z-up
	return mgl32.LookAtV(eye, target, up)
}

// View builds the full matrix set for the given viewport aspect ratio.
func (c *CameraState) View(aspect float32) View {
	proj := PerspectiveZO(c.FovY, aspect, c.Near, c.Far)
	return NewView(c.GetViewMatrix(), proj, c.Position, c.GetForward())
}

// View is the per-frame camera constant block consumed by the composite.
type View struct {
	View              mgl32.Mat4
	Projection        mgl32.Mat4
	InvView           mgl32.Mat4
	InvProjection     mgl32.Mat4
	ViewProjection    mgl32.Mat4
	InvViewProjection mgl32.Mat4
	Position          mgl32.Vec3
	Forward           mgl32.Vec3
}

func NewView(view, proj mgl32.Mat4, position, forward mgl32.Vec3) View {
	vp := proj.Mul4(view)
	return View{
		View:              view,
		Projection:        proj,
		InvView:           view.Inv(),
		InvProjection:     proj.Inv(),
		ViewProjection:    vp,
		InvViewProjection: vp.Inv(),
		Position:          position,
		Forward:           forward.Normalize(),
	}
}

// Distance is the camera-space distance used for cascade selection.
func (v *View) Distance(world mgl32.Vec3) float32 {
	return world.Sub(v.Position).Len()
}

// PerspectiveZO is a right-handed perspective projection mapping view depth
// to [0, 1] (near to far), the WebGPU/D3D clip convention.
func PerspectiveZO(fovy, aspect, near, far float32) mgl32.Mat4 {
	f := float32(1.0 / math.Tan(float64(fovy)/2.0))
	nf := near - far
	return mgl32.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far / nf, -1,
		0, 0, near * far / nf, 0,
	}
}

// OrthoZO is the orthographic counterpart of PerspectiveZO.
func OrthoZO(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	rl := right - left
	tb := top - bottom
	fn := far - near
	return mgl32.Mat4{
		2 / rl, 0, 0, 0,
		0, 2 / tb, 0, 0,
		0, 0, -1 / fn, 0,
		-(right + left) / rl, -(top + bottom) / tb, -near / fn, 1,
	}
}
