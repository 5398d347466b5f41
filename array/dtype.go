package array

import (
	"fmt"
	"math"
)

// Dtype identifies the numeric kind of an Image's samples. The set is closed:
// policy functions fail with UnsupportedDtypeError for anything else.
type Dtype int

const (
	// Bool stores samples as {0, 1} truth values.
	Bool Dtype = iota

	// Uint8 stores 8-bit unsigned samples in [0, 255].
	Uint8

	// Uint16 stores 16-bit unsigned samples in [0, 65535].
	Uint16

	// Int16 stores 16-bit signed samples in [-32768, 32767].
	Int16

	// Int32 stores 32-bit signed samples. Label arrays use this kind.
	Int32

	// Float stores float64 samples in [0, 1].
	Float

	// SignedFloat stores float64 samples in [-1, 1].
	SignedFloat
)

// String returns the lowercase name of the dtype, or "dtype(n)" for
// unrecognized values.
func (d Dtype) String() string {
	switch d {
	case Bool:
		return "bool"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Float:
		return "float"
	case SignedFloat:
		return "signed-float"
	default:
		return fmt.Sprintf("dtype(%d)", int(d))
	}
}

// ParseDtype maps a dtype name as produced by String back to its Dtype.
func ParseDtype(name string) (Dtype, error) {
	switch name {
	case "bool":
		return Bool, nil
	case "uint8":
		return Uint8, nil
	case "uint16":
		return Uint16, nil
	case "int16":
		return Int16, nil
	case "int32":
		return Int32, nil
	case "float":
		return Float, nil
	case "signed-float":
		return SignedFloat, nil
	default:
		return 0, fmt.Errorf("unknown dtype name %q", name)
	}
}

// Integer reports whether the dtype stores discrete samples (Bool counts as
// integer: its samples are exactly 0 or 1).
func (d Dtype) Integer() bool {
	switch d {
	case Bool, Uint8, Uint16, Int16, Int32:
		return true
	default:
		return false
	}
}

// UnsupportedDtypeError reports a dtype outside the recognized set.
type UnsupportedDtypeError struct {
	Dtype Dtype
}

func (e *UnsupportedDtypeError) Error() string {
	return fmt.Sprintf("unsupported dtype: %s", e.Dtype)
}

// Range returns the canonical (min, max) value range bound to a dtype.
//
// Every sample of an Image with the given dtype is expected to lie in
// [min, max]. Returns an UnsupportedDtypeError for dtypes outside the
// recognized set.
func Range(d Dtype) (min, max float64, err error) {
	switch d {
	case Bool:
		return 0, 1, nil
	case Uint8:
		return 0, math.MaxUint8, nil
	case Uint16:
		return 0, math.MaxUint16, nil
	case Int16:
		return math.MinInt16, math.MaxInt16, nil
	case Int32:
		return math.MinInt32, math.MaxInt32, nil
	case Float:
		return 0, 1, nil
	case SignedFloat:
		return -1, 1, nil
	default:
		return 0, 0, &UnsupportedDtypeError{Dtype: d}
	}
}
