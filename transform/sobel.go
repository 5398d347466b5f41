package transform

import (
	"math"

	"github.com/ahojnnes/imagepipe/array"
)

// Sobel computes the gradient magnitude of a 2-D image.
//
// Output is a 2-D Float image. Magnitudes are scaled by 1/(4*sqrt(2)), the
// largest response the 3x3 Sobel operator can produce on [0, 1] input, so
// the declared [0, 1] range holds without clipping.
type Sobel struct{}

func (Sobel) Name() string             { return "sobel" }
func (Sobel) OutputDtype() array.Dtype { return array.Float }

func (Sobel) Apply(img *array.Image) (*array.Image, error) {
	src, err := float2D("sobel", img)
	if err != nil {
		return nil, err
	}

	shape := src.Shape()
	height, width := shape[0], shape[1]
	gx, gy := sobelGradients(src.Float64s(), height, width)

	norm := 1 / (4 * math.Sqrt2)
	data := make([]float64, height*width)
	for i := range data {
		data[i] = math.Hypot(gx[i], gy[i]) * norm
	}
	return array.FromFloat64(data, height, width)
}

// sobelGradients convolves with the 3x3 Sobel operators. Borders use clamped
// edge samples.
func sobelGradients(src []float64, height, width int) (gx, gy []float64) {
	kx := [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	ky := [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

	gx = make([]float64, height*width)
	gy = make([]float64, height*width)
	parallelRows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				var sx, sy float64
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						v := src[clamp(y+dy, 0, height-1)*width+clamp(x+dx, 0, width-1)]
						sx += v * kx[dy+1][dx+1]
						sy += v * ky[dy+1][dx+1]
					}
				}
				gx[y*width+x] = sx
				gy[y*width+x] = sy
			}
		}
	})
	return gx, gy
}
