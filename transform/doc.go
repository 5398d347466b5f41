// Package transform defines the contract every processing stage satisfies and
// ships the built-in stages the canonical analysis pipeline is composed from.
//
// # The Contract
//
// A Transform is a pure function from one array Image to a fresh one. It must
// accept any recognized dtype, normalizing its input through the array
// package's dtype policy, and it declares its own output dtype through
// OutputDtype, independent of what the caller passed in ("anything in,
// anything out"). A transform never mutates its input and keeps no state
// between calls, so applying the same transform to the same image twice
// yields bit-identical results.
//
// # Configuration
//
// Stages are configured through exported struct fields with documented
// defaults; there is no process-wide configuration state. A zero-value stage
// is always usable. Out-of-domain settings fail with InvalidParameterError at
// Apply time; inputs a stage cannot operate on fail with ShapeMismatchError.
//
// # Built-in Stages
//
// Gray, Gaussian, Sobel, Canny, Threshold, Otsu, Invert, and Convert are
// implemented directly on the array container. Median, Dilate, and Erode
// delegate the pixel work to the bild effect library through the imgio
// adapters; they are black-box algorithms behind the same contract.
//
// Stages that convolve (Gaussian, Sobel, Canny) parallelize across rows
// internally. That parallelism is invisible to callers: Apply returns only
// after the full output is computed.
package transform
