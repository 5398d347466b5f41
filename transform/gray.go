package transform

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ahojnnes/imagepipe/array"
)

// Gray reduces a multi-channel image to single-channel relative luminance.
//
// Input is either a (H, W, 3) RGB array or an already 2-D array of any
// dtype. Output is a 2-D Float image in [0, 1]. Luminance is the Y component
// of CIE XYZ computed from linear RGB via go-colorful, which accounts for
// the sRGB transfer curve instead of averaging gamma-encoded channels.
type Gray struct{}

func (Gray) Name() string             { return "gray" }
func (Gray) OutputDtype() array.Dtype { return array.Float }

func (Gray) Apply(img *array.Image) (*array.Image, error) {
	if img.NDim() == 2 {
		return array.AsFloat(img)
	}

	shape := img.Shape()
	if img.NDim() != 3 || shape[2] != 3 {
		return nil, &ShapeMismatchError{Stage: "gray", Want: "(H, W, 3) or 2-d image", Got: shape}
	}

	src, err := array.AsFloat(img)
	if err != nil {
		return nil, err
	}

	height, width := shape[0], shape[1]
	data := make([]float64, height*width)
	samples := src.Float64s()
	for i := 0; i < height*width; i++ {
		c := colorful.Color{R: samples[i*3], G: samples[i*3+1], B: samples[i*3+2]}
		_, lum, _ := c.Xyz()
		if lum < 0 {
			lum = 0
		} else if lum > 1 {
			lum = 1
		}
		data[i] = lum
	}
	return array.FromFloat64(data, height, width)
}
