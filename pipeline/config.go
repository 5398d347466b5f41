package pipeline

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahojnnes/imagepipe/array"
	"github.com/ahojnnes/imagepipe/regions"
	"github.com/ahojnnes/imagepipe/transform"
)

// StageConfig declares one pipeline stage by registry name plus its
// stage-specific parameters.
type StageConfig struct {
	Name   string                 `yaml:"name"`
	Params map[string]interface{} `yaml:"params"`
}

// Config is a declarative pipeline description, typically loaded from YAML:
//
//	stages:
//	  - name: gray
//	  - name: canny
//	    params: {sigma: 2.0, low_threshold: 0.05, high_threshold: 0.15}
//	  - name: label
//	    params: {connectivity: 2}
type Config struct {
	Stages []StageConfig `yaml:"stages"`
}

// ParseConfig decodes a YAML pipeline description.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline config: %w", err)
	}
	return &cfg, nil
}

// FromConfig resolves every declared stage against the registry and returns
// the assembled pipeline. Unknown stage names and out-of-domain parameters
// fail with InvalidParameterError.
func FromConfig(cfg *Config) (*Pipeline, error) {
	stages := make([]transform.Transform, 0, len(cfg.Stages))
	for i, sc := range cfg.Stages {
		stage, err := buildStage(sc)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		stages = append(stages, stage)
	}
	return New(stages...), nil
}

// buildStage constructs a single registered stage from its configuration.
func buildStage(sc StageConfig) (transform.Transform, error) {
	switch sc.Name {
	case "gray":
		return transform.Gray{}, nil
	case "gaussian":
		sigma, err := floatParam(sc, "sigma", 0)
		if err != nil {
			return nil, err
		}
		return transform.Gaussian{Sigma: sigma}, nil
	case "sobel":
		return transform.Sobel{}, nil
	case "canny":
		sigma, err := floatParam(sc, "sigma", 0)
		if err != nil {
			return nil, err
		}
		low, err := floatParam(sc, "low_threshold", 0)
		if err != nil {
			return nil, err
		}
		high, err := floatParam(sc, "high_threshold", 0)
		if err != nil {
			return nil, err
		}
		return transform.Canny{Sigma: sigma, LowThreshold: low, HighThreshold: high}, nil
	case "threshold":
		value, err := floatParam(sc, "value", 0.5)
		if err != nil {
			return nil, err
		}
		return transform.Threshold{Value: value}, nil
	case "otsu":
		return transform.Otsu{}, nil
	case "invert":
		return transform.Invert{}, nil
	case "convert":
		name, err := stringParam(sc, "dtype", "float")
		if err != nil {
			return nil, err
		}
		dtype, err := array.ParseDtype(name)
		if err != nil {
			return nil, &transform.InvalidParameterError{
				Stage: sc.Name, Param: "dtype", Value: name,
				Reason: "not a recognized dtype name",
			}
		}
		return transform.Convert{Dtype: dtype}, nil
	case "median":
		size, err := floatParam(sc, "size", 3)
		if err != nil {
			return nil, err
		}
		return transform.Median{Size: size}, nil
	case "dilate":
		radius, err := floatParam(sc, "radius", 1)
		if err != nil {
			return nil, err
		}
		return transform.Dilate{Radius: radius}, nil
	case "erode":
		radius, err := floatParam(sc, "radius", 1)
		if err != nil {
			return nil, err
		}
		return transform.Erode{Radius: radius}, nil
	case "label":
		conn, err := intParam(sc, "connectivity", 0)
		if err != nil {
			return nil, err
		}
		return regions.Labeler{Connectivity: conn}, nil
	default:
		return nil, &transform.InvalidParameterError{
			Stage: sc.Name, Param: "name", Value: sc.Name,
			Reason: "not a registered stage",
		}
	}
}

// floatParam reads a numeric parameter, accepting the int or float forms the
// YAML decoder produces.
func floatParam(sc StageConfig, key string, def float64) (float64, error) {
	raw, ok := sc.Params[key]
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, &transform.InvalidParameterError{
			Stage: sc.Name, Param: key, Value: raw,
			Reason: "must be a number",
		}
	}
}

func intParam(sc StageConfig, key string, def int) (int, error) {
	raw, ok := sc.Params[key]
	if !ok {
		return def, nil
	}
	v, ok := raw.(int)
	if !ok {
		return 0, &transform.InvalidParameterError{
			Stage: sc.Name, Param: key, Value: raw,
			Reason: "must be an integer",
		}
	}
	return v, nil
}

func stringParam(sc StageConfig, key, def string) (string, error) {
	raw, ok := sc.Params[key]
	if !ok {
		return def, nil
	}
	v, ok := raw.(string)
	if !ok {
		return "", &transform.InvalidParameterError{
			Stage: sc.Name, Param: key, Value: raw,
			Reason: "must be a string",
		}
	}
	return v, nil
}
