package pipeline

import (
	"errors"
	"testing"

	"github.com/ahojnnes/imagepipe/array"
	"github.com/ahojnnes/imagepipe/transform"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
stages:
  - name: gray
  - name: canny
    params:
      sigma: 2.0
      low_threshold: 0.05
      high_threshold: 0.15
  - name: label
    params:
      connectivity: 2
`)

	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if len(cfg.Stages) != 3 {
		t.Fatalf("stages: got %d, want 3", len(cfg.Stages))
	}
	if cfg.Stages[1].Name != "canny" {
		t.Errorf("stage 1 name: got %q, want \"canny\"", cfg.Stages[1].Name)
	}
}

func TestFromConfig_BuildsPipeline(t *testing.T) {
	cfg := &Config{Stages: []StageConfig{
		{Name: "gaussian", Params: map[string]interface{}{"sigma": 1.5}},
		{Name: "otsu"},
		{Name: "label"},
	}}

	p, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("pipeline length: got %d, want 3", p.Len())
	}

	stages := p.Stages()
	if stages[0].Name() != "gaussian" {
		t.Errorf("stage 0: got %q, want \"gaussian\"", stages[0].Name())
	}
	gaussian, ok := stages[0].(transform.Gaussian)
	if !ok {
		t.Fatalf("stage 0 type: got %T, want transform.Gaussian", stages[0])
	}
	if gaussian.Sigma != 1.5 {
		t.Errorf("sigma: got %g, want 1.5", gaussian.Sigma)
	}
}

func TestFromConfig_IntegerParamsAcceptedAsFloats(t *testing.T) {
	// YAML decodes "sigma: 2" as an int; the registry must cope.
	cfg, err := ParseConfig([]byte("stages:\n  - name: gaussian\n    params: {sigma: 2}\n"))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	p, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if got := p.Stages()[0].(transform.Gaussian).Sigma; got != 2 {
		t.Errorf("sigma: got %g, want 2", got)
	}
}

func TestFromConfig_UnknownStage(t *testing.T) {
	cfg := &Config{Stages: []StageConfig{{Name: "hough"}}}

	_, err := FromConfig(cfg)
	var paramErr *transform.InvalidParameterError
	if !errors.As(err, &paramErr) {
		t.Fatalf("error: got %v, want *InvalidParameterError", err)
	}
}

func TestFromConfig_BadParamType(t *testing.T) {
	cfg := &Config{Stages: []StageConfig{
		{Name: "gaussian", Params: map[string]interface{}{"sigma": "wide"}},
	}}

	_, err := FromConfig(cfg)
	var paramErr *transform.InvalidParameterError
	if !errors.As(err, &paramErr) {
		t.Fatalf("error: got %v, want *InvalidParameterError", err)
	}
	if paramErr.Param != "sigma" {
		t.Errorf("Param: got %q, want \"sigma\"", paramErr.Param)
	}
}

func TestFromConfig_ConvertStage(t *testing.T) {
	cfg := &Config{Stages: []StageConfig{
		{Name: "convert", Params: map[string]interface{}{"dtype": "uint8"}},
	}}

	p, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if got := p.Stages()[0].OutputDtype(); got != array.Uint8 {
		t.Errorf("output dtype: got %s, want uint8", got)
	}

	bad := &Config{Stages: []StageConfig{
		{Name: "convert", Params: map[string]interface{}{"dtype": "float128"}},
	}}
	if _, err := FromConfig(bad); err == nil {
		t.Error("unknown dtype name should fail")
	}
}
