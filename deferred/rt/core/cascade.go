package core

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CascadeCount is the fixed number of shadow levels.
const CascadeCount = 4

var (
	ErrCascadeOrder   = errors.New("cascade distances must be strictly increasing")
	ErrLightDirection = errors.New("light direction must be non-zero")
)

type Cascade struct {
	Matrix   mgl32.Mat4 // world -> cascade clip
	Distance float32    // max camera distance covered by this level
}

// CascadeSet holds the shadow levels ordered near to far. The last level's
// distance doubles as the far bound of shadowing.
type CascadeSet [CascadeCount]Cascade

func NewCascadeSet(matrices [CascadeCount]mgl32.Mat4, distances [CascadeCount]float32) (CascadeSet, error) {
	var cs CascadeSet
	for i := 0; i < CascadeCount; i++ {
		if distances[i] <= 0 || (i > 0 && distances[i] <= distances[i-1]) {
			return cs, fmt.Errorf("level %d (%.3f): %w", i, distances[i], ErrCascadeOrder)
		}
		cs[i] = Cascade{Matrix: matrices[i], Distance: distances[i]}
	}
	return cs, nil
}

// Level returns the first level whose distance exceeds d, or the last level.
func (cs *CascadeSet) Level(d float32) int {
	for i := 0; i < CascadeCount; i++ {
		if d < cs[i].Distance {
			return i
		}
	}
	return CascadeCount - 1
}

// Far is the distance beyond which no shadowing is applied.
func (cs *CascadeSet) Far() float32 {
	return cs[CascadeCount-1].Distance
}

// Project transforms a world position into the level's clip space after the
// perspective divide.
func (cs *CascadeSet) Project(level int, world mgl32.Vec3) mgl32.Vec3 {
	p := cs[level].Matrix.Mul4x1(world.Vec4(1))
	if p.W() != 0 {
		p = p.Mul(1 / p.W())
	}
	return p.Vec3()
}

// BuildCascades fits one orthographic light matrix per level. Level i covers
// every point closer than distances[i] to the camera, so its bounds are the
// sphere of that radius around the camera, snapped to whole shadow texels to
// keep edges stable while the camera moves.
func BuildCascades(view View, lightDir mgl32.Vec3, distances [CascadeCount]float32, resolution int) (CascadeSet, error) {
	var matrices [CascadeCount]mgl32.Mat4
	if resolution <= 0 {
		resolution = 2048
	}

	l := lightDir.Len()
	if !(l > 0) || math.IsInf(float64(l), 0) {
		return CascadeSet{}, fmt.Errorf("light direction %v: %w", lightDir, ErrLightDirection)
	}
	dir := lightDir.Mul(1 / l)
	up := mgl32.Vec3{0, 0, 1}
	if float32(math.Abs(float64(dir.Z()))) > 0.99 {
		up = mgl32.Vec3{0, 1, 0}
	}
	rot := mgl32.LookAtV(mgl32.Vec3{}, dir, up)
	center := rot.Mul4x1(view.Position.Vec4(1))

	for i, radius := range distances {
		texel := 2 * radius / float32(resolution)
		cx := float32(math.Floor(float64(center.X()/texel))) * texel
		cy := float32(math.Floor(float64(center.Y()/texel))) * texel
		// view-space z grows toward the light; depth is -z
		pad := radius * 0.5
		near := -center.Z() - radius - pad
		far := -center.Z() + radius + pad
		proj := OrthoZO(cx-radius, cx+radius, cy-radius, cy+radius, near, far)
		matrices[i] = proj.Mul4(rot)
	}
	return NewCascadeSet(matrices, distances)
}
