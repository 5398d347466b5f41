package transform

import (
	"math"

	"github.com/ahojnnes/imagepipe/array"
)

// Canny detects edges in a 2-D image, producing a Bool edge mask.
//
// The stage follows the classic Canny structure: Gaussian smoothing, Sobel
// gradients, non-maximum suppression to thin edges to one pixel, then
// hysteresis thresholding. Thresholds apply to the normalized gradient
// magnitude in [0, 1]: magnitudes at or above HighThreshold are edges;
// magnitudes between the thresholds are kept only when connected to a strong
// edge; everything below LowThreshold is discarded.
//
// Zero-value fields use the defaults. LowThreshold must not exceed
// HighThreshold and both must stay in [0, 1].
type Canny struct {
	// Sigma is the smoothing strength. 0 means DefaultSigma.
	Sigma float64

	// LowThreshold is the weak-edge cutoff. 0 means DefaultLowThreshold.
	LowThreshold float64

	// HighThreshold is the strong-edge cutoff. 0 means DefaultHighThreshold.
	HighThreshold float64
}

// Default hysteresis thresholds on the normalized gradient magnitude.
const (
	DefaultLowThreshold  = 0.1
	DefaultHighThreshold = 0.2
)

func (Canny) Name() string             { return "canny" }
func (Canny) OutputDtype() array.Dtype { return array.Bool }

func (t Canny) Apply(img *array.Image) (*array.Image, error) {
	sigma := t.Sigma
	if sigma == 0 {
		sigma = DefaultSigma
	}
	low := t.LowThreshold
	if low == 0 {
		low = DefaultLowThreshold
	}
	high := t.HighThreshold
	if high == 0 {
		high = DefaultHighThreshold
	}

	switch {
	case sigma < 0:
		return nil, &InvalidParameterError{
			Stage: "canny", Param: "sigma", Value: t.Sigma,
			Reason: "must be positive",
		}
	case low < 0 || low > 1:
		return nil, &InvalidParameterError{
			Stage: "canny", Param: "low_threshold", Value: t.LowThreshold,
			Reason: "must be in [0, 1]",
		}
	case high < low || high > 1:
		return nil, &InvalidParameterError{
			Stage: "canny", Param: "high_threshold", Value: t.HighThreshold,
			Reason: "must be in [low_threshold, 1]",
		}
	}

	src, err := float2D("canny", img)
	if err != nil {
		return nil, err
	}
	shape := src.Shape()
	height, width := shape[0], shape[1]

	blurred := separableConvolve2D(src.Float64s(), height, width, gaussianKernel(sigma))
	gx, gy := sobelGradients(blurred, height, width)

	norm := 1 / (4 * math.Sqrt2)
	magnitude := make([]float64, height*width)
	for i := range magnitude {
		magnitude[i] = math.Hypot(gx[i], gy[i]) * norm
	}

	suppressed := nonMaxSuppress(magnitude, gx, gy, height, width)

	mask := hysteresis(suppressed, height, width, low, high)
	out, err := array.FromBool(mask, height, width)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// nonMaxSuppress thins the gradient ridge to one pixel by zeroing samples
// that are not local maxima along their gradient direction. The two neighbor
// magnitudes are linearly interpolated between the pixels straddling the
// exact direction; quantizing to the nearest axis instead opens gaps in
// curved contours wherever the quantized direction switches. Image border
// pixels are always suppressed.
func nonMaxSuppress(magnitude, gx, gy []float64, height, width int) []float64 {
	out := make([]float64, len(magnitude))
	parallelRows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			if y == 0 || y == height-1 {
				continue
			}
			for x := 1; x < width-1; x++ {
				i := y*width + x
				mag := magnitude[i]
				if mag == 0 {
					continue
				}

				ax, ay := math.Abs(gx[i]), math.Abs(gy[i])
				sameSign := gx[i]*gy[i] >= 0

				var n1, n2 float64
				if ax >= ay {
					w := ay / ax
					d := width
					if !sameSign {
						d = -width
					}
					n1 = (1-w)*magnitude[i+1] + w*magnitude[i+1+d]
					n2 = (1-w)*magnitude[i-1] + w*magnitude[i-1-d]
				} else {
					w := ax / ay
					d := 1
					if !sameSign {
						d = -1
					}
					n1 = (1-w)*magnitude[i+width] + w*magnitude[i+width+d]
					n2 = (1-w)*magnitude[i-width] + w*magnitude[i-width-d]
				}

				if mag >= n1 && mag >= n2 {
					out[i] = mag
				}
			}
		}
	})
	return out
}

// hysteresis keeps strong edges and grows them through connected weak edges.
// Weak pixels reachable from a strong pixel through 8-connected weak chains
// survive; isolated weak pixels do not.
func hysteresis(magnitude []float64, height, width int, low, high float64) []bool {
	mask := make([]bool, len(magnitude))
	queue := make([]int, 0, width)

	for i, mag := range magnitude {
		if mag >= high && !mask[i] {
			mask[i] = true
			queue = append(queue, i)
			for len(queue) > 0 {
				j := queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				y, x := j/width, j%width
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						ny, nx := y+dy, x+dx
						if ny < 0 || ny >= height || nx < 0 || nx >= width {
							continue
						}
						n := ny*width + nx
						if !mask[n] && magnitude[n] >= low {
							mask[n] = true
							queue = append(queue, n)
						}
					}
				}
			}
		}
	}
	return mask
}
