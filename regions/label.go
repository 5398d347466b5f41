package regions

import (
	"github.com/ahojnnes/imagepipe/array"
	"github.com/ahojnnes/imagepipe/transform"
)

// Label performs connected-component analysis on a mask of any dimensionality.
//
// Foreground is every nonzero sample, so a Bool mask and a thresholded
// equivalent behave the same. Each connected foreground region receives a
// distinct label starting at 1, assigned in first-encountered raster order,
// which makes the labeling deterministic for a given mask. Background samples
// are labeled 0. An all-background mask yields an all-zero label array and a
// count of 0.
//
// Connectivity is the maximum number of orthogonal steps to a neighbor: 1
// connects only face neighbors (4-connectivity in 2-D), mask.NDim() connects
// across corners too (8-connectivity in 2-D). 0 means full connectivity.
// Values outside [1, NDim] fail with InvalidParameterError.
//
// The returned label array has dtype Int32.
func Label(mask *array.Image, connectivity int) (*array.Image, int, error) {
	ndim := mask.NDim()
	if connectivity == 0 {
		connectivity = ndim
	}
	if connectivity < 1 || connectivity > ndim {
		return nil, 0, &transform.InvalidParameterError{
			Stage: "label", Param: "connectivity", Value: connectivity,
			Reason: "must be between 1 and the mask dimensionality",
		}
	}

	labels, err := array.New(array.Int32, mask.Shape()...)
	if err != nil {
		return nil, 0, err
	}

	shape := mask.Shape()
	offsets := neighborOffsets(shape, connectivity)
	out := labels.Int32s()
	n := mask.Len()

	next := int32(0)
	var stack []int
	for start := 0; start < n; start++ {
		if out[start] != 0 || mask.At(start) == 0 {
			continue
		}
		next++
		out[start] = next
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			coords := labels.Coords(cur)
			for _, delta := range offsets {
				neighbor, ok := shift(coords, delta, shape)
				if !ok {
					continue
				}
				off := labels.Offset(neighbor...)
				if out[off] == 0 && mask.At(off) != 0 {
					out[off] = next
					stack = append(stack, off)
				}
			}
		}
	}

	return labels, int(next), nil
}

// neighborOffsets enumerates the nonzero vectors in {-1,0,1}^ndim with at
// most connectivity nonzero components.
func neighborOffsets(shape []int, connectivity int) [][]int {
	ndim := len(shape)
	var offsets [][]int
	delta := make([]int, ndim)

	var build func(axis, nonzero int)
	build = func(axis, nonzero int) {
		if axis == ndim {
			if nonzero > 0 {
				offsets = append(offsets, append([]int(nil), delta...))
			}
			return
		}
		for _, step := range [3]int{-1, 0, 1} {
			if step != 0 && nonzero == connectivity {
				continue
			}
			delta[axis] = step
			inc := 0
			if step != 0 {
				inc = 1
			}
			build(axis+1, nonzero+inc)
		}
		delta[axis] = 0
	}
	build(0, 0)
	return offsets
}

// shift adds a delta to coordinates, reporting false when the result leaves
// the array bounds.
func shift(coords, delta, shape []int) ([]int, bool) {
	out := make([]int, len(coords))
	for i := range coords {
		v := coords[i] + delta[i]
		if v < 0 || v >= shape[i] {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// Labeler exposes Label as a pipeline stage producing an Int32 label array.
// The region count is recoverable from the maximum label value or from a
// subsequent Measure call.
type Labeler struct {
	// Connectivity follows the Label convention; 0 means full connectivity.
	Connectivity int
}

func (Labeler) Name() string             { return "label" }
func (Labeler) OutputDtype() array.Dtype { return array.Int32 }

func (l Labeler) Apply(img *array.Image) (*array.Image, error) {
	labels, _, err := Label(img, l.Connectivity)
	return labels, err
}
