package transform

import "github.com/ahojnnes/imagepipe/array"

// Convert is the dtype policy exposed as a pipeline stage: it rescales an
// image of any recognized dtype into Dtype through the array package's
// affine-rescale rules.
type Convert struct {
	// Dtype is the target kind.
	Dtype array.Dtype
}

func (Convert) Name() string               { return "convert" }
func (t Convert) OutputDtype() array.Dtype { return t.Dtype }

func (t Convert) Apply(img *array.Image) (*array.Image, error) {
	return array.Convert(img, t.Dtype)
}

// Invert maps every sample of a 2-D image to its complement within the Float
// range: output = 1 - input. Output is Float.
type Invert struct{}

func (Invert) Name() string             { return "invert" }
func (Invert) OutputDtype() array.Dtype { return array.Float }

func (Invert) Apply(img *array.Image) (*array.Image, error) {
	src, err := float2D("invert", img)
	if err != nil {
		return nil, err
	}

	shape := src.Shape()
	samples := src.Float64s()
	data := make([]float64, len(samples))
	for i, v := range samples {
		data[i] = 1 - v
	}
	return array.FromFloat64(data, shape[0], shape[1])
}
