package array

import (
	"fmt"
	"math"
)

// Image is a dense n-dimensional array of numeric samples.
//
// Samples are stored flat in row-major order in a typed buffer selected by
// the dtype. The zero value is not usable; construct images with New or one
// of the From* helpers.
type Image struct {
	shape []int
	dtype Dtype

	// ChannelAxis is the axis carrying color channels, or -1 when the image
	// has no channel dimension. For an RGB image of shape (H, W, 3) it is 2.
	ChannelAxis int

	bools    []bool
	uint8s   []uint8
	uint16s  []uint16
	int16s   []int16
	int32s   []int32
	float64s []float64
}

// New allocates a zero-filled Image with the given dtype and shape.
//
// Returns an UnsupportedDtypeError for an unrecognized dtype, or a plain
// error when the shape is empty or has a non-positive extent.
func New(dtype Dtype, shape ...int) (*Image, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("empty shape")
	}
	n := 1
	for i, ext := range shape {
		if ext <= 0 {
			return nil, fmt.Errorf("axis %d has non-positive extent %d", i, ext)
		}
		n *= ext
	}

	img := &Image{
		shape:       append([]int(nil), shape...),
		dtype:       dtype,
		ChannelAxis: -1,
	}
	switch dtype {
	case Bool:
		img.bools = make([]bool, n)
	case Uint8:
		img.uint8s = make([]uint8, n)
	case Uint16:
		img.uint16s = make([]uint16, n)
	case Int16:
		img.int16s = make([]int16, n)
	case Int32:
		img.int32s = make([]int32, n)
	case Float, SignedFloat:
		img.float64s = make([]float64, n)
	default:
		return nil, &UnsupportedDtypeError{Dtype: dtype}
	}
	return img, nil
}

// FromFloat64 wraps a float64 sample buffer as a Float image. The buffer is
// used directly, not copied; len(data) must equal the product of the shape.
func FromFloat64(data []float64, shape ...int) (*Image, error) {
	img, err := New(Float, shape...)
	if err != nil {
		return nil, err
	}
	if len(data) != img.Len() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d samples)",
			len(data), shape, img.Len())
	}
	img.float64s = data
	return img, nil
}

// FromUint8 wraps a uint8 sample buffer as a Uint8 image. The buffer is used
// directly, not copied.
func FromUint8(data []uint8, shape ...int) (*Image, error) {
	img, err := New(Uint8, shape...)
	if err != nil {
		return nil, err
	}
	if len(data) != img.Len() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d samples)",
			len(data), shape, img.Len())
	}
	img.uint8s = data
	return img, nil
}

// FromBool wraps a bool sample buffer as a Bool image. The buffer is used
// directly, not copied.
func FromBool(data []bool, shape ...int) (*Image, error) {
	img, err := New(Bool, shape...)
	if err != nil {
		return nil, err
	}
	if len(data) != img.Len() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d samples)",
			len(data), shape, img.Len())
	}
	img.bools = data
	return img, nil
}

// Dtype returns the numeric kind of the image's samples.
func (img *Image) Dtype() Dtype { return img.dtype }

// NDim returns the number of axes.
func (img *Image) NDim() int { return len(img.shape) }

// Shape returns a copy of the per-axis extents.
func (img *Image) Shape() []int { return append([]int(nil), img.shape...) }

// Len returns the total number of samples.
func (img *Image) Len() int {
	n := 1
	for _, ext := range img.shape {
		n *= ext
	}
	return n
}

// SameShape reports whether the two images have identical shapes.
func (img *Image) SameShape(other *Image) bool {
	if len(img.shape) != len(other.shape) {
		return false
	}
	for i, ext := range img.shape {
		if ext != other.shape[i] {
			return false
		}
	}
	return true
}

// Offset converts an n-dimensional index to a flat row-major offset.
// The index must have one entry per axis; no bounds checking is performed
// beyond the axis count.
func (img *Image) Offset(idx ...int) int {
	if len(idx) != len(img.shape) {
		panic(fmt.Sprintf("array: index has %d axes, image has %d", len(idx), len(img.shape)))
	}
	off := 0
	for i, v := range idx {
		off = off*img.shape[i] + v
	}
	return off
}

// Coords converts a flat row-major offset back to per-axis coordinates.
func (img *Image) Coords(off int) []int {
	idx := make([]int, len(img.shape))
	for i := len(img.shape) - 1; i >= 0; i-- {
		idx[i] = off % img.shape[i]
		off /= img.shape[i]
	}
	return idx
}

// At returns the sample at a flat offset as a float64. Bool samples read as
// 0 or 1; integer samples read as their exact value.
func (img *Image) At(off int) float64 {
	switch img.dtype {
	case Bool:
		if img.bools[off] {
			return 1
		}
		return 0
	case Uint8:
		return float64(img.uint8s[off])
	case Uint16:
		return float64(img.uint16s[off])
	case Int16:
		return float64(img.int16s[off])
	case Int32:
		return float64(img.int32s[off])
	default:
		return img.float64s[off]
	}
}

// SetAt stores a float64 value at a flat offset, clipping to the dtype's
// range and rounding (ties away from zero) for integer kinds. Bool stores
// true for values rounding to a nonzero integer.
func (img *Image) SetAt(off int, v float64) {
	min, max, _ := Range(img.dtype)
	if v < min {
		v = min
	} else if v > max {
		v = max
	}
	switch img.dtype {
	case Bool:
		img.bools[off] = math.Round(v) != 0
	case Uint8:
		img.uint8s[off] = uint8(math.Round(v))
	case Uint16:
		img.uint16s[off] = uint16(math.Round(v))
	case Int16:
		img.int16s[off] = int16(math.Round(v))
	case Int32:
		img.int32s[off] = int32(math.Round(v))
	default:
		img.float64s[off] = v
	}
}

// Bools returns the underlying buffer of a Bool image, or nil for any other
// dtype. The slice aliases the image's storage.
func (img *Image) Bools() []bool { return img.bools }

// Uint8s returns the underlying buffer of a Uint8 image, or nil otherwise.
func (img *Image) Uint8s() []uint8 { return img.uint8s }

// Uint16s returns the underlying buffer of a Uint16 image, or nil otherwise.
func (img *Image) Uint16s() []uint16 { return img.uint16s }

// Int16s returns the underlying buffer of an Int16 image, or nil otherwise.
func (img *Image) Int16s() []int16 { return img.int16s }

// Int32s returns the underlying buffer of an Int32 image, or nil otherwise.
func (img *Image) Int32s() []int32 { return img.int32s }

// Float64s returns the underlying buffer of a Float or SignedFloat image, or
// nil otherwise.
func (img *Image) Float64s() []float64 { return img.float64s }

// Clone returns a deep copy sharing no storage with the receiver.
func (img *Image) Clone() *Image {
	out := &Image{
		shape:       append([]int(nil), img.shape...),
		dtype:       img.dtype,
		ChannelAxis: img.ChannelAxis,
	}
	switch img.dtype {
	case Bool:
		out.bools = append([]bool(nil), img.bools...)
	case Uint8:
		out.uint8s = append([]uint8(nil), img.uint8s...)
	case Uint16:
		out.uint16s = append([]uint16(nil), img.uint16s...)
	case Int16:
		out.int16s = append([]int16(nil), img.int16s...)
	case Int32:
		out.int32s = append([]int32(nil), img.int32s...)
	default:
		out.float64s = append([]float64(nil), img.float64s...)
	}
	return out
}

// Equal reports whether two images have the same dtype, shape, and
// bit-identical samples.
func (img *Image) Equal(other *Image) bool {
	if img.dtype != other.dtype || !img.SameShape(other) {
		return false
	}
	n := img.Len()
	for i := 0; i < n; i++ {
		if img.At(i) != other.At(i) {
			return false
		}
	}
	return true
}
