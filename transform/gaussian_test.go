package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/ahojnnes/imagepipe/array"
)

func TestGaussian_UniformStaysUniform(t *testing.T) {
	img := uniformFloat(t, 10, 10, 0.5)

	out, err := Gaussian{Sigma: 1.4}.Apply(img)
	if err != nil {
		t.Fatalf("Gaussian.Apply failed: %v", err)
	}

	for i, v := range out.Float64s() {
		if math.Abs(v-0.5) > 0.01 {
			t.Fatalf("sample %d: got %.3f, want ~0.5", i, v)
		}
	}
}

func TestGaussian_SpotSpreads(t *testing.T) {
	img := uniformFloat(t, 11, 11, 0)
	img.Float64s()[5*11+5] = 1.0

	out, err := Gaussian{Sigma: 1.0}.Apply(img)
	if err != nil {
		t.Fatalf("Gaussian.Apply failed: %v", err)
	}

	samples := out.Float64s()
	if samples[5*11+5] >= 1.0 {
		t.Error("bright spot should be reduced after blur")
	}
	if samples[5*11+4] == 0 || samples[5*11+6] == 0 || samples[4*11+5] == 0 || samples[6*11+5] == 0 {
		t.Error("neighbors should receive some brightness from blur")
	}
}

func TestGaussian_DoesNotMutateInput(t *testing.T) {
	img := uniformFloat(t, 8, 8, 0)
	img.Float64s()[0] = 1.0

	if _, err := (Gaussian{Sigma: 2}).Apply(img); err != nil {
		t.Fatalf("Gaussian.Apply failed: %v", err)
	}

	if img.Float64s()[0] != 1.0 || img.Float64s()[1] != 0 {
		t.Error("Apply mutated its input")
	}
}

func TestGaussian_NegativeSigma(t *testing.T) {
	img := uniformFloat(t, 4, 4, 0.5)

	_, err := Gaussian{Sigma: -1}.Apply(img)
	if err == nil {
		t.Fatal("negative sigma should fail")
	}

	var paramErr *InvalidParameterError
	if !errors.As(err, &paramErr) {
		t.Fatalf("error type: got %T, want *InvalidParameterError", err)
	}
	if paramErr.Param != "sigma" {
		t.Errorf("Param: got %q, want \"sigma\"", paramErr.Param)
	}
}

func TestGaussian_Requires2D(t *testing.T) {
	img, err := array.New(array.Float, 4, 4, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = Gaussian{}.Apply(img)
	var shapeErr *ShapeMismatchError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("error: got %v, want *ShapeMismatchError", err)
	}
}

func TestGaussian_AnyDtypeIn(t *testing.T) {
	// The contract accepts any recognized dtype; a uint8 input must work and
	// still come out Float.
	data := make([]uint8, 36)
	for i := range data {
		data[i] = 100
	}
	img, err := array.FromUint8(data, 6, 6)
	if err != nil {
		t.Fatalf("FromUint8 failed: %v", err)
	}

	out, err := Gaussian{}.Apply(img)
	if err != nil {
		t.Fatalf("Gaussian.Apply failed: %v", err)
	}
	if out.Dtype() != array.Float {
		t.Errorf("output dtype: got %s, want float", out.Dtype())
	}
}

func TestSobel_UniformHasNoGradient(t *testing.T) {
	img := uniformFloat(t, 10, 10, 0.7)

	out, err := Sobel{}.Apply(img)
	if err != nil {
		t.Fatalf("Sobel.Apply failed: %v", err)
	}

	// Interior samples only: borders see clamped duplicates.
	samples := out.Float64s()
	for y := 1; y < 9; y++ {
		for x := 1; x < 9; x++ {
			if samples[y*10+x] > 1e-9 {
				t.Fatalf("gradient at (%d,%d): got %g, want 0", y, x, samples[y*10+x])
			}
		}
	}
}

func TestSobel_StepEdge(t *testing.T) {
	img := uniformFloat(t, 10, 10, 0)
	samples := img.Float64s()
	for y := 0; y < 10; y++ {
		for x := 5; x < 10; x++ {
			samples[y*10+x] = 1
		}
	}

	out, err := Sobel{}.Apply(img)
	if err != nil {
		t.Fatalf("Sobel.Apply failed: %v", err)
	}

	got := out.Float64s()
	if got[5*10+4] == 0 && got[5*10+5] == 0 {
		t.Error("step edge should produce a nonzero gradient")
	}
	for i, v := range got {
		if v < 0 || v > 1 {
			t.Fatalf("sample %d outside declared [0,1] range: %g", i, v)
		}
	}
}

// uniformFloat builds a (height, width) Float image filled with v.
func uniformFloat(t *testing.T, height, width int, v float64) *array.Image {
	t.Helper()
	data := make([]float64, height*width)
	for i := range data {
		data[i] = v
	}
	img, err := array.FromFloat64(data, height, width)
	if err != nil {
		t.Fatalf("FromFloat64 failed: %v", err)
	}
	return img
}
