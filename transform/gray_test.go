package transform

import (
	"errors"
	"testing"

	"github.com/ahojnnes/imagepipe/array"
)

func TestGray_RGBExtremes(t *testing.T) {
	// 1x2x3 image: one white pixel, one black pixel.
	data := []uint8{255, 255, 255, 0, 0, 0}
	img, err := array.FromUint8(data, 1, 2, 3)
	if err != nil {
		t.Fatalf("FromUint8 failed: %v", err)
	}
	img.ChannelAxis = 2

	out, err := Gray{}.Apply(img)
	if err != nil {
		t.Fatalf("Gray.Apply failed: %v", err)
	}

	if out.NDim() != 2 {
		t.Fatalf("output axes: got %d, want 2", out.NDim())
	}
	samples := out.Float64s()
	if samples[0] < 0.99 {
		t.Errorf("white pixel luminance: got %.3f, want ~1", samples[0])
	}
	if samples[1] > 0.01 {
		t.Errorf("black pixel luminance: got %.3f, want ~0", samples[1])
	}
}

func TestGray_GreenBrighterThanBlue(t *testing.T) {
	data := []uint8{0, 255, 0, 0, 0, 255}
	img, err := array.FromUint8(data, 1, 2, 3)
	if err != nil {
		t.Fatalf("FromUint8 failed: %v", err)
	}
	img.ChannelAxis = 2

	out, err := Gray{}.Apply(img)
	if err != nil {
		t.Fatalf("Gray.Apply failed: %v", err)
	}

	samples := out.Float64s()
	if samples[0] <= samples[1] {
		t.Errorf("pure green (%.3f) should be brighter than pure blue (%.3f)",
			samples[0], samples[1])
	}
}

func TestGray_PassThrough2D(t *testing.T) {
	img, err := array.FromUint8([]uint8{0, 128, 255, 64}, 2, 2)
	if err != nil {
		t.Fatalf("FromUint8 failed: %v", err)
	}

	out, err := Gray{}.Apply(img)
	if err != nil {
		t.Fatalf("Gray.Apply failed: %v", err)
	}

	if out.Dtype() != array.Float {
		t.Errorf("output dtype: got %s, want float", out.Dtype())
	}
	if out.Float64s()[2] != 1 {
		t.Errorf("255 should map to 1.0, got %g", out.Float64s()[2])
	}
}

func TestGray_RejectsOddChannelCount(t *testing.T) {
	img, err := array.New(array.Uint8, 2, 2, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = Gray{}.Apply(img)
	var shapeErr *ShapeMismatchError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("error: got %v, want *ShapeMismatchError", err)
	}
}

func TestFunc(t *testing.T) {
	stage := NewFunc("noop", array.Float, func(img *array.Image) (*array.Image, error) {
		return array.AsFloat(img)
	})

	if stage.Name() != "noop" {
		t.Errorf("Name: got %q, want \"noop\"", stage.Name())
	}
	if stage.OutputDtype() != array.Float {
		t.Errorf("OutputDtype: got %s, want float", stage.OutputDtype())
	}

	img, _ := array.New(array.Uint8, 2, 2)
	out, err := stage.Apply(img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if out.Dtype() != array.Float {
		t.Errorf("output dtype: got %s, want float", out.Dtype())
	}
}
