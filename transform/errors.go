package transform

import "fmt"

// InvalidParameterError reports a stage configuration value outside its valid
// domain, such as a negative blur sigma.
type InvalidParameterError struct {
	Stage  string      // stage name, e.g. "gaussian"
	Param  string      // parameter name, e.g. "sigma"
	Value  interface{} // the rejected value
	Reason string      // what the valid domain is
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: invalid parameter %s=%v: %s", e.Stage, e.Param, e.Value, e.Reason)
}

// ShapeMismatchError reports an input whose shape a stage cannot operate on,
// or a pair of inputs that fail to align.
type ShapeMismatchError struct {
	Stage string // stage or operation name
	Want  string // description of the acceptable shape
	Got   []int  // the offending shape
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: want %s, got shape %v", e.Stage, e.Want, e.Got)
}
