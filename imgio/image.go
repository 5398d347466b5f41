package imgio

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ahojnnes/imagepipe/array"
)

// FromImage converts a decoded image.Image into an array Image.
//
// Grayscale inputs (*image.Gray) become a 2-D Uint8 array of shape (H, W).
// Everything else becomes a 3-channel Uint8 array of shape (H, W, 3) with
// ChannelAxis set to 2. Alpha is dropped; 16-bit sources are truncated to
// their high byte, matching the 8-bit convention of the image package's RGBA
// accessor.
func FromImage(m image.Image) *array.Image {
	bounds := m.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if gray, ok := m.(*image.Gray); ok {
		data := make([]uint8, width*height)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				data[y*width+x] = gray.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y
			}
		}
		img, _ := array.FromUint8(data, height, width)
		return img
	}

	data := make([]uint8, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := m.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			off := (y*width + x) * 3
			data[off] = uint8(r >> 8)
			data[off+1] = uint8(g >> 8)
			data[off+2] = uint8(b >> 8)
		}
	}
	img, _ := array.FromUint8(data, height, width, 3)
	img.ChannelAxis = 2
	return img
}

// GrayFromImage converts any decoded image into a 2-D Uint8 array using the
// CIE relative luminance of each pixel (computed in linear RGB via
// go-colorful, not a direct average of gamma-encoded channels).
func GrayFromImage(m image.Image) *array.Image {
	bounds := m.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	data := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := m.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			c := colorful.Color{
				R: float64(r) / 65535.0,
				G: float64(g) / 65535.0,
				B: float64(b) / 65535.0,
			}
			_, lum, _ := c.Xyz()
			if lum > 1 {
				lum = 1
			}
			data[y*width+x] = uint8(lum*255 + 0.5)
		}
	}
	img, _ := array.FromUint8(data, height, width)
	return img
}

// ToGray renders a 2-D array as an *image.Gray. The array is converted to
// Uint8 through the dtype policy first, so any recognized dtype works.
func ToGray(img *array.Image) (*image.Gray, error) {
	if img.NDim() != 2 {
		return nil, fmt.Errorf("want a 2-d image, got %d axes", img.NDim())
	}

	u8, err := array.Convert(img, array.Uint8)
	if err != nil {
		return nil, err
	}

	shape := img.Shape()
	height, width := shape[0], shape[1]
	out := image.NewGray(image.Rect(0, 0, width, height))
	src := u8.Uint8s()
	for y := 0; y < height; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+width], src[y*width:(y+1)*width])
	}
	return out, nil
}

// ToRGBA renders a 3-channel (H, W, 3) array as an *image.RGBA with full
// alpha. The array is converted to Uint8 through the dtype policy first.
func ToRGBA(img *array.Image) (*image.RGBA, error) {
	shape := img.Shape()
	if img.NDim() != 3 || shape[2] != 3 {
		return nil, fmt.Errorf("want a (H, W, 3) image, got shape %v", shape)
	}

	u8, err := array.Convert(img, array.Uint8)
	if err != nil {
		return nil, err
	}

	height, width := shape[0], shape[1]
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	src := u8.Uint8s()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := (y*width + x) * 3
			out.SetRGBA(x, y, color.RGBA{R: src[off], G: src[off+1], B: src[off+2], A: 255})
		}
	}
	return out, nil
}
