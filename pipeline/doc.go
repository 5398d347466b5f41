// Package pipeline chains independent transforms into a single reproducible
// workflow.
//
// A Pipeline is an ordered sequence of transform.Transform stages. Run feeds
// the initial image to the first stage and each stage's output to the next,
// returning the final stage's output; RunTrace additionally collects every
// intermediate image for diagnostic inspection. The composer never mutates
// an intermediate image, so running the same pipeline twice over the same
// input yields bit-identical results.
//
// The composer trusts the transform contract rather than re-validating it:
// each stage declares what it accepts and produces, and a stage that cannot
// handle its input fails itself. When a stage fails, execution halts with no
// partial results, and the returned StageError identifies the failing stage
// by position and name.
//
// Pipelines can also be declared in YAML and built through FromConfig, which
// resolves stage names against the built-in registry.
package pipeline
