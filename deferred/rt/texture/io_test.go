package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDisplayPNGAppliesGamma(t *testing.T) {
	img := NewImage(3, 1)
	img.Set(0, 0, mgl32.Vec4{0, 0, 0, 1})
	img.Set(1, 0, mgl32.Vec4{0.5, 0.5, 0.5, 1})
	img.Set(2, 0, mgl32.Vec4{2, 1, -1, 0.5})

	var buf bytes.Buffer
	require.NoError(t, EncodeDisplayPNG(&buf, img))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	out := image.NewNRGBA(decoded.Bounds())
	for y := 0; y < 1; y++ {
		for x := 0; x < 3; x++ {
			out.Set(x, y, decoded.At(x, y))
		}
	}

	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, out.NRGBAAt(0, 0))
	// 0.5^(1/2.2) = 0.7297
	assert.Equal(t, color.NRGBA{186, 186, 186, 255}, out.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{255, 255, 0, 128}, out.NRGBAAt(2, 0))
}

func TestFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 1, color.NRGBA{255, 0, 51, 255})

	img := FromImage(src, 0, 0)
	assert.Equal(t, 2, img.Width)
	c := img.At(1, 1)
	assert.InDelta(t, 1, c.X(), 1e-6)
	assert.InDelta(t, 0, c.Y(), 1e-6)
	assert.InDelta(t, 0.2, c.Z(), 1e-3)
	assert.InDelta(t, 1, c.W(), 1e-6)
}

func TestFromImageResamples(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{128, 128, 128, 255})
		}
	}
	img := FromImage(src, 16, 8)
	assert.Equal(t, 16, img.Width)
	assert.Equal(t, 8, img.Height)
	assert.InDelta(t, 128.0/255.0, img.At(7, 3).X(), 2e-3)
}

func TestEXRRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buffer.exr")
	img := NewImage(4, 3)
	img.Set(1, 2, mgl32.Vec4{0.25, 2.5, 0.125, 1})
	img.Set(3, 0, mgl32.Vec4{1, 0.5, 0, 0.75})

	require.NoError(t, SaveEXR(path, img))
	got, err := LoadEXR(path)
	require.NoError(t, err)

	assert.Equal(t, 4, got.Width)
	assert.Equal(t, 3, got.Height)
	// values above are exact in half precision
	assert.Equal(t, mgl32.Vec4{0.25, 2.5, 0.125, 1}, got.At(1, 2))
	assert.Equal(t, mgl32.Vec4{1, 0.5, 0, 0.75}, got.At(3, 0))
}

func TestLoadEXRMissing(t *testing.T) {
	_, err := LoadEXR(filepath.Join(t.TempDir(), "nope.exr"))
	assert.Error(t, err)
}
