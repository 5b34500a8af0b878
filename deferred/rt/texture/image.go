// Package texture holds the CPU-side images the composite samples: float RGBA
// targets, the layered cascade depth array and the mipmapped environment.
package texture

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mrjoshuak/go-openexr/half"
)

var (
	ErrEmptyImage   = errors.New("image has no pixels")
	ErrSizeMismatch = errors.New("image sizes do not match")
)

// Image is a float32 RGBA image, row-major with the origin at the top-left.
type Image struct {
	Width  int
	Height int
	Pix    []float32
}

func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*4),
	}
}

// Fill returns a width x height image set to c everywhere.
func Fill(width, height int, c mgl32.Vec4) *Image {
	img := NewImage(width, height)
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:i+4], c[:])
	}
	return img
}

func (img *Image) offset(x, y int) int {
	return (y*img.Width + x) * 4
}

// At returns the texel at (x, y), clamping coordinates to the edge.
func (img *Image) At(x, y int) mgl32.Vec4 {
	if img == nil || img.Width == 0 || img.Height == 0 {
		return mgl32.Vec4{}
	}
	x = clampInt(x, 0, img.Width-1)
	y = clampInt(y, 0, img.Height-1)
	i := img.offset(x, y)
	return mgl32.Vec4{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
}

func (img *Image) Set(x, y int, c mgl32.Vec4) {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return
	}
	copy(img.Pix[img.offset(x, y):], c[:])
}

// Row returns the backing slice of row y. Rows never alias each other.
func (img *Image) Row(y int) []float32 {
	start := y * img.Width * 4
	return img.Pix[start : start+img.Width*4]
}

// Sample is a clamp-to-edge bilinear lookup at texture coordinate uv.
func (img *Image) Sample(uv mgl32.Vec2) mgl32.Vec4 {
	if img == nil || img.Width == 0 || img.Height == 0 {
		return mgl32.Vec4{}
	}
	fx := uv.X()*float32(img.Width) - 0.5
	fy := uv.Y()*float32(img.Height) - 0.5
	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	top := lerp4(img.At(x0, y0), img.At(x0+1, y0), tx)
	bottom := lerp4(img.At(x0, y0+1), img.At(x0+1, y0+1), tx)
	return lerp4(top, bottom, ty)
}

// Point is a nearest-texel lookup at texture coordinate uv.
func (img *Image) Point(uv mgl32.Vec2) mgl32.Vec4 {
	if img == nil {
		return mgl32.Vec4{}
	}
	x := int(math.Floor(float64(uv.X() * float32(img.Width))))
	y := int(math.Floor(float64(uv.Y() * float32(img.Height))))
	return img.At(x, y)
}

func (img *Image) SameSize(other *Image) bool {
	return other != nil && img.Width == other.Width && img.Height == other.Height
}

// CheckSize reports a wrapped ErrSizeMismatch when other differs in size.
func (img *Image) CheckSize(name string, other *Image) error {
	if other == nil {
		return fmt.Errorf("%s: %w", name, ErrEmptyImage)
	}
	if !img.SameSize(other) {
		return fmt.Errorf("%s is %dx%d, want %dx%d: %w", name, other.Width, other.Height, img.Width, img.Height, ErrSizeMismatch)
	}
	return nil
}

// Quantize rounds every channel through a 16-bit float, matching the
// precision of half-float attribute targets.
func Quantize(img *Image) *Image {
	out := NewImage(img.Width, img.Height)
	for i, v := range img.Pix {
		out.Pix[i] = half.FromFloat32(v).Float32()
	}
	return out
}

func lerp4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
