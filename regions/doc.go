// Package regions implements the label-then-measure stage of the analysis
// pipeline: connected-component labeling of a boolean mask followed by
// per-region scalar summaries.
//
// Label assigns each connected foreground region of a mask a distinct
// positive integer, background staying 0, in deterministic raster order.
// Measure walks a label array and emits one immutable Region record per
// label, in ascending label order, optionally weighting by a source
// intensity image.
//
// Labeler exposes the labeling half as a pipeline stage; measurement
// produces records rather than an image and is called on the pipeline's
// final output.
package regions
