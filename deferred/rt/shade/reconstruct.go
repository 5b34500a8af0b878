package shade

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TexCoord returns the texture coordinate of the center of pixel (x, y).
func TexCoord(x, y, width, height int) mgl32.Vec2 {
	return mgl32.Vec2{
		(float32(x) + 0.5) / float32(width),
		(float32(y) + 0.5) / float32(height),
	}
}

// NDC maps a texture coordinate (origin top-left) to clip-space xy (y up).
func NDC(uv mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{uv.X()*2 - 1, 1 - uv.Y()*2}
}

// ReconstructWorld inverts the view-projection for a pixel and its depth.
func ReconstructWorld(invViewProj mgl32.Mat4, uv mgl32.Vec2, depth float32) mgl32.Vec3 {
	ndc := NDC(uv)
	p := invViewProj.Mul4x1(mgl32.Vec4{ndc.X(), ndc.Y(), depth, 1})
	if p.W() == 0 {
		return p.Vec3()
	}
	return p.Vec3().Mul(1 / p.W())
}
