package transform

import (
	"errors"
	"testing"

	"github.com/ahojnnes/imagepipe/array"
)

func TestThreshold(t *testing.T) {
	img, err := array.FromFloat64([]float64{0.1, 0.5, 0.9, 0.49}, 2, 2)
	if err != nil {
		t.Fatalf("FromFloat64 failed: %v", err)
	}

	out, err := Threshold{Value: 0.5}.Apply(img)
	if err != nil {
		t.Fatalf("Threshold.Apply failed: %v", err)
	}

	want := []bool{false, true, true, false}
	for i, w := range want {
		if out.Bools()[i] != w {
			t.Errorf("sample %d: got %v, want %v", i, out.Bools()[i], w)
		}
	}
}

func TestThreshold_Uint8Input(t *testing.T) {
	// The cutoff lives in the Float view, so 0.5 splits uint8 data at 128.
	img, err := array.FromUint8([]uint8{0, 127, 128, 255}, 4)
	if err != nil {
		t.Fatalf("FromUint8 failed: %v", err)
	}

	_, err = Threshold{Value: 0.5}.Apply(img)
	var shapeErr *ShapeMismatchError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("1-d input: got %v, want *ShapeMismatchError", err)
	}

	img2d, err := array.FromUint8([]uint8{0, 127, 128, 255}, 2, 2)
	if err != nil {
		t.Fatalf("FromUint8 failed: %v", err)
	}
	out, err := Threshold{Value: 0.5}.Apply(img2d)
	if err != nil {
		t.Fatalf("Threshold.Apply failed: %v", err)
	}
	want := []bool{false, false, true, true}
	for i, w := range want {
		if out.Bools()[i] != w {
			t.Errorf("sample %d: got %v, want %v", i, out.Bools()[i], w)
		}
	}
}

func TestThreshold_InvalidValue(t *testing.T) {
	img := uniformFloat(t, 3, 3, 0.5)

	for _, bad := range []float64{-0.1, 1.1} {
		_, err := Threshold{Value: bad}.Apply(img)
		var paramErr *InvalidParameterError
		if !errors.As(err, &paramErr) {
			t.Errorf("value %g: got %v, want *InvalidParameterError", bad, err)
		}
	}
}

func TestOtsu_Bimodal(t *testing.T) {
	// Two well-separated populations: dark background, bright square.
	img := uniformFloat(t, 20, 20, 0.1)
	samples := img.Float64s()
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			samples[y*20+x] = 0.9
		}
	}

	out, err := Otsu{}.Apply(img)
	if err != nil {
		t.Fatalf("Otsu.Apply failed: %v", err)
	}

	mask := out.Bools()
	if !mask[10*20+10] {
		t.Error("bright square center should be foreground")
	}
	if mask[0] {
		t.Error("dark background corner should stay background")
	}

	count := 0
	for _, v := range mask {
		if v {
			count++
		}
	}
	if count != 100 {
		t.Errorf("foreground count: got %d, want 100", count)
	}
}

func TestOtsu_ThresholdBinStaysBackground(t *testing.T) {
	// 0.1 lies inside its own histogram bin, just above the bin's lower edge
	// (bin 25 starts at ~0.098). Classification compares bins, not raw
	// values, so the dark population must stay background.
	img := uniformFloat(t, 10, 10, 0.1)
	samples := img.Float64s()
	for i := 0; i < 25; i++ {
		samples[i] = 0.9
	}

	out, err := Otsu{}.Apply(img)
	if err != nil {
		t.Fatalf("Otsu.Apply failed: %v", err)
	}

	count := 0
	for _, v := range out.Bools() {
		if v {
			count++
		}
	}
	if count != 25 {
		t.Errorf("foreground count: got %d, want 25", count)
	}
}

func TestInvert(t *testing.T) {
	img, err := array.FromFloat64([]float64{0, 0.25, 1, 0.5}, 2, 2)
	if err != nil {
		t.Fatalf("FromFloat64 failed: %v", err)
	}

	out, err := Invert{}.Apply(img)
	if err != nil {
		t.Fatalf("Invert.Apply failed: %v", err)
	}

	want := []float64{1, 0.75, 0, 0.5}
	for i, w := range want {
		if out.Float64s()[i] != w {
			t.Errorf("sample %d: got %g, want %g", i, out.Float64s()[i], w)
		}
	}
}

func TestConvertStage(t *testing.T) {
	img, err := array.FromFloat64([]float64{0, 0.5, 1, 0.25}, 2, 2)
	if err != nil {
		t.Fatalf("FromFloat64 failed: %v", err)
	}

	stage := Convert{Dtype: array.Uint8}
	if stage.OutputDtype() != array.Uint8 {
		t.Errorf("OutputDtype: got %s, want uint8", stage.OutputDtype())
	}

	out, err := stage.Apply(img)
	if err != nil {
		t.Fatalf("Convert.Apply failed: %v", err)
	}
	if out.Dtype() != array.Uint8 {
		t.Errorf("output dtype: got %s, want uint8", out.Dtype())
	}
	if got := out.Uint8s()[1]; got != 128 {
		t.Errorf("0.5 should convert to 128, got %d", got)
	}
}
