package texture

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageSetAtClamps(t *testing.T) {
	img := NewImage(3, 2)
	img.Set(2, 1, mgl32.Vec4{1, 2, 3, 4})
	img.Set(5, 5, mgl32.Vec4{9, 9, 9, 9}) // ignored

	assert.Equal(t, mgl32.Vec4{1, 2, 3, 4}, img.At(2, 1))
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 4}, img.At(10, 10), "out of range reads clamp to the edge")
	assert.Equal(t, mgl32.Vec4{}, img.At(0, 0))
}

func TestImageSampleBilinear(t *testing.T) {
	img := NewImage(2, 1)
	img.Set(0, 0, mgl32.Vec4{0, 0, 0, 1})
	img.Set(1, 0, mgl32.Vec4{1, 1, 1, 1})

	// texel centers
	assert.InDelta(t, 0, img.Sample(mgl32.Vec2{0.25, 0.5}).X(), 1e-6)
	assert.InDelta(t, 1, img.Sample(mgl32.Vec2{0.75, 0.5}).X(), 1e-6)
	// midway between them
	assert.InDelta(t, 0.5, img.Sample(mgl32.Vec2{0.5, 0.5}).X(), 1e-6)
	// clamp to edge
	assert.InDelta(t, 1, img.Sample(mgl32.Vec2{1.5, 0.5}).X(), 1e-6)
}

func TestImagePoint(t *testing.T) {
	img := NewImage(4, 4)
	img.Set(3, 0, mgl32.Vec4{0.7, 0, 0, 1})
	assert.Equal(t, float32(0.7), img.Point(mgl32.Vec2{0.9, 0.1}).X())
}

func TestImageRowsAreDisjoint(t *testing.T) {
	img := NewImage(2, 3)
	row := img.Row(1)
	require.Len(t, row, 8)
	row[0] = 5
	assert.Equal(t, float32(5), img.At(0, 1).X())
	assert.Equal(t, float32(0), img.At(0, 0).X())
	assert.Equal(t, float32(0), img.At(0, 2).X())
}

func TestCheckSize(t *testing.T) {
	a := NewImage(4, 4)
	assert.NoError(t, a.CheckSize("b", NewImage(4, 4)))
	assert.ErrorIs(t, a.CheckSize("b", NewImage(4, 2)), ErrSizeMismatch)
	assert.ErrorIs(t, a.CheckSize("b", nil), ErrEmptyImage)
}

func TestFill(t *testing.T) {
	img := Fill(3, 3, mgl32.Vec4{0.1, 0.2, 0.3, 1})
	assert.Equal(t, mgl32.Vec4{0.1, 0.2, 0.3, 1}, img.At(2, 2))
}

func TestQuantizeHalfPrecision(t *testing.T) {
	img := Fill(1, 1, mgl32.Vec4{0.5, 1.0 / 3.0, 1000.25, 1})
	q := Quantize(img)

	c := q.At(0, 0)
	assert.Equal(t, float32(0.5), c.X(), "0.5 is exact in half precision")
	assert.InDelta(t, 1.0/3.0, c.Y(), 1e-3)
	assert.NotEqual(t, float32(1.0/3.0), c.Y())
	assert.InDelta(t, 1000.25, c.Z(), 0.5)
	assert.Equal(t, mgl32.Vec4{0.5, 1.0 / 3.0, 1000.25, 1}, img.At(0, 0), "source is untouched")
}
