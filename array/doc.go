// Package array provides the dense n-dimensional image container and the
// dtype-range policy that every processing stage in this module builds on.
//
// An Image is a flat, row-major buffer of numeric samples tagged with a shape
// and a Dtype. The Dtype determines both the storage representation and the
// canonical value range the samples are expected to occupy:
//
//	Bool        {0, 1}
//	Uint8       [0, 255]
//	Uint16      [0, 65535]
//	Int16       [-32768, 32767]
//	Int32       [-2147483648, 2147483647]
//	Float       [0.0, 1.0]
//	SignedFloat [-1.0, 1.0]
//
// The range is a contract, not a runtime check: stages may assume their input
// respects it, and Convert preserves it when moving between dtypes.
//
// # Anything In, Anything Out
//
// Processing stages accept an Image of any recognized dtype and produce an
// Image of whatever dtype suits their output. Convert is the single place
// where ranges are reconciled: it rescales affinely from the source range to
// the target range, clips out-of-range samples (never wraps), and rounds to
// nearest with ties away from zero when the target is an integer kind. This
// lets a stage normalize any input to one internal representation (usually
// Float) without caring what the caller handed it.
//
// # Coordinate System
//
// Indices are 0-based and row-major: for a 2-D image the first axis is the
// row (Y) and the second the column (X). Multi-channel 2-D images use a
// trailing channel axis, shape (H, W, C), recorded in ChannelAxis.
//
// # Thread Safety
//
// An Image is not synchronized. Stages never mutate their input, so sharing
// an Image between concurrent pipelines is safe as long as no caller writes
// to it.
package array
