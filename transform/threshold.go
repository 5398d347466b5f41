package transform

import "github.com/ahojnnes/imagepipe/array"

// Threshold binarizes a 2-D image against a fixed cutoff.
//
// The cutoff applies to the Float view of the input, so Value lives in
// [0, 1] regardless of the input dtype: a Value of 0.5 splits a Uint8 image
// at 128. Samples at or above the cutoff become true. Output is Bool.
type Threshold struct {
	// Value is the cutoff in [0, 1].
	Value float64
}

func (Threshold) Name() string             { return "threshold" }
func (Threshold) OutputDtype() array.Dtype { return array.Bool }

func (t Threshold) Apply(img *array.Image) (*array.Image, error) {
	if t.Value < 0 || t.Value > 1 {
		return nil, &InvalidParameterError{
			Stage: "threshold", Param: "value", Value: t.Value,
			Reason: "must be in [0, 1]",
		}
	}

	src, err := float2D("threshold", img)
	if err != nil {
		return nil, err
	}

	shape := src.Shape()
	samples := src.Float64s()
	mask := make([]bool, len(samples))
	for i, v := range samples {
		mask[i] = v >= t.Value
	}
	return array.FromBool(mask, shape[0], shape[1])
}

// Otsu binarizes a 2-D image with a cutoff chosen by Otsu's method:
// the 256-bin histogram split that maximizes between-class variance.
// Samples strictly above the chosen bin become true. Output is Bool.
type Otsu struct{}

func (Otsu) Name() string             { return "otsu" }
func (Otsu) OutputDtype() array.Dtype { return array.Bool }

func (Otsu) Apply(img *array.Image) (*array.Image, error) {
	src, err := float2D("otsu", img)
	if err != nil {
		return nil, err
	}

	shape := src.Shape()
	samples := src.Float64s()

	var hist [256]int
	for _, v := range samples {
		hist[histBin(v)]++
	}

	threshold := otsuThreshold(hist[:], len(samples))

	// Classification uses the same binning as the histogram, so samples
	// landing inside the threshold bin itself stay background.
	mask := make([]bool, len(samples))
	for i, v := range samples {
		mask[i] = histBin(v) > threshold
	}
	return array.FromBool(mask, shape[0], shape[1])
}

// histBin maps a Float-view sample to its 256-bin histogram bin, clipping
// out-of-range values into the first and last bins.
func histBin(v float64) int {
	bin := int(v * 255)
	if bin < 0 {
		return 0
	}
	if bin > 255 {
		return 255
	}
	return bin
}

// otsuThreshold returns the histogram bin maximizing between-class variance.
func otsuThreshold(hist []int, total int) int {
	var sum float64
	for i, count := range hist {
		sum += float64(i) * float64(count)
	}

	var sumB, weightB float64
	best := 0
	bestVariance := 0.0
	for i, count := range hist {
		weightB += float64(count)
		if weightB == 0 {
			continue
		}
		weightF := float64(total) - weightB
		if weightF == 0 {
			break
		}
		sumB += float64(i) * float64(count)

		meanB := sumB / weightB
		meanF := (sum - sumB) / weightF
		variance := weightB * weightF * (meanB - meanF) * (meanB - meanF)
		if variance > bestVariance {
			bestVariance = variance
			best = i
		}
	}
	return best
}
