package array

import "math"

// Convert returns a new Image with the same shape and the target dtype, with
// sample values rescaled from the source dtype's canonical range to the
// target's.
//
// The rescale is affine: source min maps to target min, source max to target
// max. Inputs outside the source range are clipped into the target range,
// never wrapped. When the target is an integer kind, values round to the
// nearest integer with ties away from zero (math.Round), so 0.5 in a Float
// image becomes 128 in a Uint8 one.
//
// Converting to the source dtype returns a fresh copy, and converting an
// already converted image again is the identity. Returns an
// UnsupportedDtypeError when either dtype is unrecognized.
func Convert(img *Image, dtype Dtype) (*Image, error) {
	smin, smax, err := Range(img.Dtype())
	if err != nil {
		return nil, err
	}
	dmin, dmax, err := Range(dtype)
	if err != nil {
		return nil, err
	}

	if dtype == img.Dtype() {
		return img.Clone(), nil
	}

	out, err := New(dtype, img.shape...)
	if err != nil {
		return nil, err
	}
	out.ChannelAxis = img.ChannelAxis

	scale := (dmax - dmin) / (smax - smin)
	n := img.Len()
	for i := 0; i < n; i++ {
		v := (img.At(i)-smin)*scale + dmin
		if v < dmin {
			v = dmin
		} else if v > dmax {
			v = dmax
		}
		if dtype.Integer() {
			v = math.Round(v)
		}
		out.setRaw(i, v)
	}
	return out, nil
}

// AsFloat converts an image to the Float dtype. Stages that compute in a
// single continuous representation use this as their entry point.
func AsFloat(img *Image) (*Image, error) {
	return Convert(img, Float)
}

// AsBool converts an image to the Bool dtype. Values at or above the midpoint
// of the source range become true.
func AsBool(img *Image) (*Image, error) {
	return Convert(img, Bool)
}

// setRaw stores an already clipped and rounded value without re-applying
// range handling.
func (img *Image) setRaw(off int, v float64) {
	switch img.dtype {
	case Bool:
		img.bools[off] = v != 0
	case Uint8:
		img.uint8s[off] = uint8(v)
	case Uint16:
		img.uint16s[off] = uint16(v)
	case Int16:
		img.int16s[off] = int16(v)
	case Int32:
		img.int32s[off] = int32(v)
	default:
		img.float64s[off] = v
	}
}
