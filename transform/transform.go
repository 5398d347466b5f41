package transform

import "github.com/ahojnnes/imagepipe/array"

// Transform is a pure processing stage over array images.
//
// Apply accepts an Image of any recognized dtype and returns a fresh Image
// whose dtype is the stage's own choice, declared by OutputDtype. Apply must
// not mutate its input or retain state across calls.
type Transform interface {
	// Name identifies the stage in pipeline errors and logs.
	Name() string

	// OutputDtype declares the dtype of the images Apply produces.
	OutputDtype() array.Dtype

	// Apply runs the stage on one image.
	Apply(img *array.Image) (*array.Image, error)
}

// Func adapts a plain function to the Transform interface.
type Func struct {
	name  string
	dtype array.Dtype
	fn    func(*array.Image) (*array.Image, error)
}

// NewFunc wraps fn as a named Transform producing images of the given dtype.
func NewFunc(name string, dtype array.Dtype, fn func(*array.Image) (*array.Image, error)) *Func {
	return &Func{name: name, dtype: dtype, fn: fn}
}

func (f *Func) Name() string             { return f.name }
func (f *Func) OutputDtype() array.Dtype { return f.dtype }

func (f *Func) Apply(img *array.Image) (*array.Image, error) {
	return f.fn(img)
}

// float2D converts an input of any dtype to the Float working representation
// and rejects non-2-D shapes. Most single-channel stages start here.
func float2D(stage string, img *array.Image) (*array.Image, error) {
	if img.NDim() != 2 {
		return nil, &ShapeMismatchError{Stage: stage, Want: "2-d grayscale image", Got: img.Shape()}
	}
	return array.AsFloat(img)
}
