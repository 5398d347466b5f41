package regions

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/ahojnnes/imagepipe/array"
	"github.com/ahojnnes/imagepipe/transform"
)

// BBox is a per-axis bounding box in array coordinates. Min is inclusive,
// Max exclusive, so Max[i]-Min[i] is the extent along axis i.
type BBox struct {
	Min []int `json:"min"`
	Max []int `json:"max"`
}

// Region is the immutable summary of one labeled region.
//
// Area, BBox, Centroid, and EquivalentDiameter are filled for any
// dimensionality. Perimeter, Orientation, Eccentricity, and the axis lengths
// are computed for 2-D label arrays only and stay zero otherwise. The
// intensity fields are filled only when Measure ran with WithIntensity.
type Region struct {
	// Label is the region's value in the label array.
	Label int `json:"label"`

	// Area is the number of samples carrying the label.
	Area int `json:"area"`

	// BBox is the axis-aligned bounding box of the region.
	BBox BBox `json:"bbox"`

	// Centroid is the unweighted center of mass, one coordinate per axis in
	// array order (row before column in 2-D).
	Centroid []float64 `json:"centroid"`

	// EquivalentDiameter is the diameter of the disk (2-D) or ball (3-D)
	// with the region's area.
	EquivalentDiameter float64 `json:"equivalent_diameter,omitempty"`

	// Perimeter counts exposed 4-neighbor faces of the region's samples.
	Perimeter float64 `json:"perimeter,omitempty"`

	// Orientation is the angle in radians between the region's major axis
	// and the column axis.
	Orientation float64 `json:"orientation,omitempty"`

	// Eccentricity is 0 for a circle and approaches 1 for a line segment.
	Eccentricity float64 `json:"eccentricity,omitempty"`

	// MajorAxisLength and MinorAxisLength are the axis lengths of the
	// ellipse with the region's second central moments.
	MajorAxisLength float64 `json:"major_axis_length,omitempty"`
	MinorAxisLength float64 `json:"minor_axis_length,omitempty"`

	// MeanIntensity, MinIntensity, and MaxIntensity summarize the source
	// image's samples under the region.
	MeanIntensity float64 `json:"mean_intensity,omitempty"`
	MinIntensity  float64 `json:"min_intensity,omitempty"`
	MaxIntensity  float64 `json:"max_intensity,omitempty"`

	// WeightedCentroid is the intensity-weighted center of mass.
	WeightedCentroid []float64 `json:"weighted_centroid,omitempty"`
}

// EmptyLabelError reports that a caller requiring at least one region
// measured a label array with none.
type EmptyLabelError struct{}

func (e *EmptyLabelError) Error() string {
	return "no labeled regions"
}

// Option configures a Measure call.
type Option func(*measureConfig)

type measureConfig struct {
	intensity *array.Image
	require   bool
}

// WithIntensity supplies the source image whose samples weight the intensity
// moments. Its shape must match the label array.
func WithIntensity(img *array.Image) Option {
	return func(c *measureConfig) { c.intensity = img }
}

// Require makes Measure fail with EmptyLabelError when no regions exist
// instead of returning an empty slice.
func Require() Option {
	return func(c *measureConfig) { c.require = true }
}

// regionAccum collects running sums for one label during the measurement scan.
type regionAccum struct {
	count    int
	min, max []int
	sum      []float64

	// 2-D second moments (row r, column c).
	sumRR, sumCC, sumRC float64

	intensitySum float64
	intensityMin float64
	intensityMax float64
	weightedSum  []float64
}

// Measure computes a Region record for every distinct positive label,
// returned in ascending label order.
//
// The label array must have an integer dtype (Label produces Int32). An
// empty region set is a valid result unless Require was passed, in which
// case it fails with EmptyLabelError. An intensity image with a different
// shape fails with ShapeMismatchError.
func Measure(labels *array.Image, opts ...Option) ([]Region, error) {
	var cfg measureConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if !labels.Dtype().Integer() {
		return nil, fmt.Errorf("measure: labels must have an integer dtype, got %s", labels.Dtype())
	}
	if cfg.intensity != nil && !cfg.intensity.SameShape(labels) {
		return nil, &transform.ShapeMismatchError{
			Stage: "measure",
			Want:  fmt.Sprintf("intensity image of shape %v", labels.Shape()),
			Got:   cfg.intensity.Shape(),
		}
	}

	shape := labels.Shape()
	ndim := labels.NDim()
	accums := make(map[int]*regionAccum)
	n := labels.Len()

	for off := 0; off < n; off++ {
		label := int(labels.At(off))
		if label <= 0 {
			continue
		}

		acc := accums[label]
		if acc == nil {
			acc = &regionAccum{
				min:          make([]int, ndim),
				max:          make([]int, ndim),
				sum:          make([]float64, ndim),
				intensityMin: math.Inf(1),
				intensityMax: math.Inf(-1),
				weightedSum:  make([]float64, ndim),
			}
			for i := range acc.min {
				acc.min[i] = shape[i]
			}
			accums[label] = acc
		}

		coords := labels.Coords(off)
		acc.count++
		for i, c := range coords {
			if c < acc.min[i] {
				acc.min[i] = c
			}
			if c >= acc.max[i] {
				acc.max[i] = c + 1
			}
			acc.sum[i] += float64(c)
		}
		if ndim == 2 {
			r, c := float64(coords[0]), float64(coords[1])
			acc.sumRR += r * r
			acc.sumCC += c * c
			acc.sumRC += r * c
		}
		if cfg.intensity != nil {
			v := cfg.intensity.At(off)
			acc.intensitySum += v
			if v < acc.intensityMin {
				acc.intensityMin = v
			}
			if v > acc.intensityMax {
				acc.intensityMax = v
			}
			for i, c := range coords {
				acc.weightedSum[i] += v * float64(c)
			}
		}
	}

	if len(accums) == 0 {
		if cfg.require {
			return nil, &EmptyLabelError{}
		}
		return []Region{}, nil
	}

	order := make([]int, 0, len(accums))
	for label := range accums {
		order = append(order, label)
	}
	sort.Ints(order)

	result := make([]Region, 0, len(order))
	for _, label := range order {
		acc := accums[label]
		region := Region{
			Label:    label,
			Area:     acc.count,
			BBox:     BBox{Min: acc.min, Max: acc.max},
			Centroid: make([]float64, ndim),
		}
		for i := range acc.sum {
			region.Centroid[i] = acc.sum[i] / float64(acc.count)
		}

		switch ndim {
		case 2:
			region.EquivalentDiameter = math.Sqrt(4 * float64(acc.count) / math.Pi)
			region.Perimeter = perimeter2D(labels, label)
			fillEllipse(&region, acc)
		case 3:
			region.EquivalentDiameter = math.Cbrt(6 * float64(acc.count) / math.Pi)
		}

		if cfg.intensity != nil {
			region.MeanIntensity = acc.intensitySum / float64(acc.count)
			region.MinIntensity = acc.intensityMin
			region.MaxIntensity = acc.intensityMax
			if acc.intensitySum != 0 {
				region.WeightedCentroid = make([]float64, ndim)
				for i := range acc.weightedSum {
					region.WeightedCentroid[i] = acc.weightedSum[i] / acc.intensitySum
				}
			}
		}

		result = append(result, region)
	}
	return result, nil
}

// fillEllipse derives the equivalent-ellipse properties from the central
// second moments via a symmetric eigendecomposition.
func fillEllipse(region *Region, acc *regionAccum) {
	n := float64(acc.count)
	cr := region.Centroid[0]
	cc := region.Centroid[1]

	muRR := acc.sumRR/n - cr*cr
	muCC := acc.sumCC/n - cc*cc
	muRC := acc.sumRC/n - cr*cc

	var eig mat.EigenSym
	ok := eig.Factorize(mat.NewSymDense(2, []float64{muRR, muRC, muRC, muCC}), false)
	if !ok {
		return
	}
	vals := eig.Values(nil) // ascending
	minor := math.Max(vals[0], 0)
	major := math.Max(vals[1], 0)

	region.MajorAxisLength = 4 * math.Sqrt(major)
	region.MinorAxisLength = 4 * math.Sqrt(minor)
	if major > 0 {
		region.Eccentricity = math.Sqrt(1 - minor/major)
	}
	region.Orientation = 0.5 * math.Atan2(2*muRC, muCC-muRR)
}

// perimeter2D counts the exposed 4-neighbor faces of a region's samples.
// A single pixel has perimeter 4; a 3x3 block has perimeter 12.
func perimeter2D(labels *array.Image, label int) float64 {
	shape := labels.Shape()
	height, width := shape[0], shape[1]
	count := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if int(labels.At(y*width+x)) != label {
				continue
			}
			for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				ny, nx := y+d[0], x+d[1]
				if ny < 0 || ny >= height || nx < 0 || nx >= width ||
					int(labels.At(ny*width+nx)) != label {
					count++
				}
			}
		}
	}
	return float64(count)
}

// RequireRegions returns EmptyLabelError when the region slice is empty.
// Convenience for callers that measured without the Require option.
func RequireRegions(regions []Region) error {
	if len(regions) == 0 {
		return &EmptyLabelError{}
	}
	return nil
}
