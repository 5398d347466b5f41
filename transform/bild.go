package transform

import (
	"image"

	"github.com/anthonynsimon/bild/effect"

	"github.com/ahojnnes/imagepipe/array"
	"github.com/ahojnnes/imagepipe/imgio"
)

// The stages in this file delegate their pixel work to the bild effect
// library. They run on the 8-bit rendering of the input and declare Uint8
// output; the adapter round trip is hidden behind the usual contract.

// Median replaces each pixel with the median of its neighborhood, removing
// salt-and-pepper noise while keeping edges sharp.
type Median struct {
	// Size is the neighborhood diameter in pixels; must be positive.
	Size float64
}

func (Median) Name() string             { return "median" }
func (Median) OutputDtype() array.Dtype { return array.Uint8 }

func (t Median) Apply(img *array.Image) (*array.Image, error) {
	if t.Size <= 0 {
		return nil, &InvalidParameterError{
			Stage: "median", Param: "size", Value: t.Size,
			Reason: "must be positive",
		}
	}
	return applyEffect("median", img, func(m image.Image) *image.RGBA {
		return effect.Median(m, t.Size)
	})
}

// Dilate grows foreground regions by the morphological dilation of the
// grayscale input.
type Dilate struct {
	// Radius is the structuring-element radius in pixels; must be positive.
	Radius float64
}

func (Dilate) Name() string             { return "dilate" }
func (Dilate) OutputDtype() array.Dtype { return array.Uint8 }

func (t Dilate) Apply(img *array.Image) (*array.Image, error) {
	if t.Radius <= 0 {
		return nil, &InvalidParameterError{
			Stage: "dilate", Param: "radius", Value: t.Radius,
			Reason: "must be positive",
		}
	}
	return applyEffect("dilate", img, func(m image.Image) *image.RGBA {
		return effect.Dilate(m, t.Radius)
	})
}

// Erode shrinks foreground regions by the morphological erosion of the
// grayscale input.
type Erode struct {
	// Radius is the structuring-element radius in pixels; must be positive.
	Radius float64
}

func (Erode) Name() string             { return "erode" }
func (Erode) OutputDtype() array.Dtype { return array.Uint8 }

func (t Erode) Apply(img *array.Image) (*array.Image, error) {
	if t.Radius <= 0 {
		return nil, &InvalidParameterError{
			Stage: "erode", Param: "radius", Value: t.Radius,
			Reason: "must be positive",
		}
	}
	return applyEffect("erode", img, func(m image.Image) *image.RGBA {
		return effect.Erode(m, t.Radius)
	})
}

// applyEffect runs a bild effect over the 8-bit grayscale rendering of a 2-D
// array and converts the result back. bild returns RGBA; since the input is
// gray the channels are equal and the red channel is taken.
func applyEffect(stage string, img *array.Image, fn func(image.Image) *image.RGBA) (*array.Image, error) {
	if img.NDim() != 2 {
		return nil, &ShapeMismatchError{Stage: stage, Want: "2-d grayscale image", Got: img.Shape()}
	}

	gray, err := imgio.ToGray(img)
	if err != nil {
		return nil, err
	}

	result := fn(gray)
	bounds := result.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	data := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			data[y*width+x] = result.RGBAAt(x+bounds.Min.X, y+bounds.Min.Y).R
		}
	}
	return array.FromUint8(data, height, width)
}
