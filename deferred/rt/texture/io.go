package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/mrjoshuak/go-openexr/exr"
	"golang.org/x/image/draw"
)

// DisplayGamma is the exponent of the presentation encode applied after the
// composite. The composite itself always stays linear.
const DisplayGamma = 2.2

// FromRGBAImage copies a decoded EXR image.
func FromRGBAImage(src *exr.RGBAImage) *Image {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	img := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := src.RGBA(x+src.Rect.Min.X, y+src.Rect.Min.Y)
			i := img.offset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
		}
	}
	return img
}

func (img *Image) ToRGBAImage() *exr.RGBAImage {
	out := exr.NewRGBAImage(image.Rect(0, 0, img.Width, img.Height))
	copy(out.Pix, img.Pix)
	return out
}

func LoadEXR(path string) (*Image, error) {
	src, err := exr.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	img := FromRGBAImage(src)
	if img.Width == 0 || img.Height == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyImage)
	}
	return img, nil
}

func SaveEXR(path string, img *Image) error {
	if err := exr.EncodeFile(path, img.ToRGBAImage()); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// LoadEnvironment reads an EXR environment map. Files without an envmap
// attribute are treated as cube strips.
func LoadEnvironment(path string, maxLevels int) (*Environment, error) {
	in, err := exr.OpenRGBAInputFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer in.Close()

	envType := exr.EnvMapCube
	if in.Header().HasEnvmap() {
		envType = in.Header().Envmap()
	}
	src, err := in.ReadRGBA()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	img := FromRGBAImage(src)
	if img.Width == 0 || img.Height == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyImage)
	}
	return EnvironmentFromImage(img, envType, maxLevels), nil
}

// FromImage converts an 8/16-bit image to float RGBA. When width and height
// are positive and differ from the source, it is resampled with Catmull-Rom.
func FromImage(src image.Image, width, height int) *Image {
	b := src.Bounds()
	if width <= 0 || height <= 0 {
		width, height = b.Dx(), b.Dy()
	}
	dst := image.NewNRGBA64(image.Rect(0, 0, width, height))
	if width == b.Dx() && height == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}

	img := NewImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := dst.NRGBA64At(x, y)
			i := img.offset(x, y)
			img.Pix[i] = float32(c.R) / 0xffff
			img.Pix[i+1] = float32(c.G) / 0xffff
			img.Pix[i+2] = float32(c.B) / 0xffff
			img.Pix[i+3] = float32(c.A) / 0xffff
		}
	}
	return img
}

func LoadPNG(path string, width, height int) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return FromImage(src, width, height), nil
}

// EncodeDisplayPNG applies the presentation gamma and writes an 8-bit PNG.
func EncodeDisplayPNG(w io.Writer, img *Image) error {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			out.SetNRGBA(x, y, color.NRGBA{
				R: encodeGamma(c[0]),
				G: encodeGamma(c[1]),
				B: encodeGamma(c[2]),
				A: to8(c[3]),
			})
		}
	}
	return png.Encode(w, out)
}

func SaveDisplayPNG(path string, img *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeDisplayPNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func encodeGamma(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	return to8(float32(math.Pow(float64(v), 1/DisplayGamma)))
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
