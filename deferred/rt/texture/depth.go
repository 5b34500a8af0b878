package texture

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DepthArray is a layered single-channel depth texture, one layer per cascade.
type DepthArray struct {
	Width  int
	Height int
	Layers int
	Data   []float32
}

func NewDepthArray(width, height, layers int) *DepthArray {
	return &DepthArray{
		Width:  width,
		Height: height,
		Layers: layers,
		Data:   make([]float32, width*height*layers),
	}
}

// DepthArrayFromImages stacks the red channel of each image into a layer.
func DepthArrayFromImages(layers []*Image) (*DepthArray, error) {
	if len(layers) == 0 || layers[0] == nil || layers[0].Width == 0 || layers[0].Height == 0 {
		return nil, ErrEmptyImage
	}
	first := layers[0]
	arr := NewDepthArray(first.Width, first.Height, len(layers))
	for l, img := range layers {
		if err := first.CheckSize(fmt.Sprintf("cascade layer %d", l), img); err != nil {
			return nil, err
		}
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				arr.Set(x, y, l, img.At(x, y).X())
			}
		}
	}
	return arr, nil
}

func (d *DepthArray) index(x, y, layer int) int {
	return (layer*d.Height+y)*d.Width + x
}

func (d *DepthArray) Set(x, y, layer int, v float32) {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height || layer < 0 || layer >= d.Layers {
		return
	}
	d.Data[d.index(x, y, layer)] = v
}

// FillLayer sets every texel of a layer to v.
func (d *DepthArray) FillLayer(layer int, v float32) {
	start := d.index(0, 0, layer)
	for i := start; i < start+d.Width*d.Height; i++ {
		d.Data[i] = v
	}
}

// Sample is a single clamp-to-edge point sample; no comparison filtering.
func (d *DepthArray) Sample(uv mgl32.Vec2, layer int) float32 {
	if d == nil || len(d.Data) == 0 {
		return 1
	}
	x := clampInt(int(math.Floor(float64(uv.X()*float32(d.Width)))), 0, d.Width-1)
	y := clampInt(int(math.Floor(float64(uv.Y()*float32(d.Height)))), 0, d.Height-1)
	layer = clampInt(layer, 0, d.Layers-1)
	return d.Data[d.index(x, y, layer)]
}
