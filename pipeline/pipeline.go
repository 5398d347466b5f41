package pipeline

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ahojnnes/imagepipe/array"
	"github.com/ahojnnes/imagepipe/transform"
)

// StageError wraps a failure inside a pipeline stage with enough context to
// fix the calling configuration: the stage's position and declared name.
type StageError struct {
	Index int    // 0-based position in the pipeline
	Name  string // the stage's declared name
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Pipeline is an ordered sequence of transforms threading one image through
// successive stages.
//
// A Pipeline carries no mutable state across runs; the same Pipeline value
// may execute concurrently over different input images.
type Pipeline struct {
	stages []transform.Transform
	log    zerolog.Logger
}

// New builds a pipeline from stages in execution order.
func New(stages ...transform.Transform) *Pipeline {
	return &Pipeline{stages: stages, log: zerolog.Nop()}
}

// WithLogger returns a copy of the pipeline that emits per-stage debug events
// through log.
func (p *Pipeline) WithLogger(log zerolog.Logger) *Pipeline {
	return &Pipeline{stages: p.stages, log: log}
}

// Len returns the number of stages.
func (p *Pipeline) Len() int { return len(p.stages) }

// Stages returns the stage sequence. The slice is a copy; the stages are not.
func (p *Pipeline) Stages() []transform.Transform {
	return append([]transform.Transform(nil), p.stages...)
}

// Run executes every stage in order on img and returns the final stage's
// output. An empty pipeline returns a fresh copy of the input.
//
// On failure the returned error is a StageError naming the failing stage;
// no further stages run and no partial result is returned.
func (p *Pipeline) Run(img *array.Image) (*array.Image, error) {
	out, _, err := p.run(img, false)
	return out, err
}

// RunTrace is Run, additionally returning every stage's output in order.
// The final image is the last trace entry.
func (p *Pipeline) RunTrace(img *array.Image) (*array.Image, []*array.Image, error) {
	return p.run(img, true)
}

func (p *Pipeline) run(img *array.Image, trace bool) (*array.Image, []*array.Image, error) {
	if len(p.stages) == 0 {
		return img.Clone(), nil, nil
	}

	var intermediates []*array.Image
	if trace {
		intermediates = make([]*array.Image, 0, len(p.stages))
	}

	current := img
	for i, stage := range p.stages {
		start := time.Now()
		next, err := stage.Apply(current)
		if err != nil {
			p.log.Debug().
				Str("stage", stage.Name()).
				Int("index", i).
				Err(err).
				Msg("pipeline stage failed")
			return nil, nil, &StageError{Index: i, Name: stage.Name(), Err: err}
		}

		p.log.Debug().
			Str("stage", stage.Name()).
			Int("index", i).
			Str("in_dtype", current.Dtype().String()).
			Str("out_dtype", next.Dtype().String()).
			Ints("out_shape", next.Shape()).
			Dur("elapsed", time.Since(start)).
			Msg("pipeline stage done")

		if trace {
			intermediates = append(intermediates, next)
		}
		current = next
	}
	return current, intermediates, nil
}
