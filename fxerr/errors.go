// Package fxerr defines the typed error kinds the core surfaces. Every
// failure path in compiler, engine, and signal returns one of these
// concrete types rather than a bare formatted string, so host code can
// discriminate with errors.As.
package fxerr

import "fmt"

// UnitMismatch is returned when a write's unit disagrees with a signal's
// declared unit contract.
type UnitMismatch struct {
	SignalID uint32
	Declared string
	Got      string
}

func (e *UnitMismatch) Error() string {
	return fmt.Sprintf("unit mismatch for signal %d: declared %q, got %q", e.SignalID, e.Declared, e.Got)
}

// NotLoaded is returned by Engine.Tick when no program has been loaded.
type NotLoaded struct{}

func (e *NotLoaded) Error() string { return "engine: no program loaded" }

// InvalidDt is returned by Engine.Tick when dt <= 0.
type InvalidDt struct {
	Dt float64
}

func (e *InvalidDt) Error() string {
	return fmt.Sprintf("invalid dt: %g (must be > 0)", e.Dt)
}

// StabilityViolation is returned at compile time (when expected_dt > 0) or
// at tick time when a model's stability limit is exceeded.
type StabilityViolation struct {
	Model string
	Dt    float64
	Limit float64
}

func (e *StabilityViolation) Error() string {
	return fmt.Sprintf("stability violation: %s requires dt <= %g, got dt = %g", e.Model, e.Limit, e.Dt)
}

// UnknownTransformType is returned when a TransformSpec names an
// unrecognized type tag.
type UnknownTransformType struct {
	Type string
}

func (e *UnknownTransformType) Error() string {
	return fmt.Sprintf("unknown transform type: %q", e.Type)
}

// UnknownModelType is returned when a ModelSpec names an unrecognized type
// tag.
type UnknownModelType struct {
	Type string
}

func (e *UnknownModelType) Error() string {
	return fmt.Sprintf("unknown model type: %q", e.Type)
}

// MissingParameter is returned when a required transform/model parameter is
// absent.
type MissingParameter struct {
	Context string
	Name    string
}

func (e *MissingParameter) Error() string {
	return fmt.Sprintf("missing required parameter at %s/%s", e.Context, e.Name)
}

// TypeError is returned when a parameter's Variant kind doesn't match what
// the parameter expects.
type TypeError struct {
	Context  string
	Name     string
	Expected string
	Got      string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error at %s/%s: expected %s, got %s", e.Context, e.Name, e.Expected, e.Got)
}

// InvalidParameter is returned when a parameter has the right type but an
// out-of-range or otherwise invalid value (e.g. moving_average.window_size
// <= 0).
type InvalidParameter struct {
	Context string
	Name    string
	Reason  string
}

func (e *InvalidParameter) Error() string {
	return fmt.Sprintf("invalid parameter at %s/%s: %s", e.Context, e.Name, e.Reason)
}

// MultipleWriters is returned at compile time when two writers (edge targets
// or model outputs) claim the same signal.
type MultipleWriters struct {
	SignalID        uint32
	ExistingOwner   string
	ConflictOwner   string
}

func (e *MultipleWriters) Error() string {
	return fmt.Sprintf("multiple writers for signal %d: %q conflicts with %q", e.SignalID, e.ExistingOwner, e.ConflictOwner)
}

// CycleDetected is returned at compile time when the non-delay edge subgraph
// contains a cycle. Path is the offending signal-id path, closed by
// returning to its first element.
type CycleDetected struct {
	Path []uint32
}

func (e *CycleDetected) Error() string {
	return fmt.Sprintf("cycle detected in non-delay subgraph: %v", e.Path)
}

// BadRuleCondition is returned when a rule's condition string fails to
// parse as "<signal_path> <op> <number>".
type BadRuleCondition struct {
	RuleID string
}

func (e *BadRuleCondition) Error() string {
	return fmt.Sprintf("bad rule condition syntax for rule %q: supported form is '<signal_path> <op> <number>'", e.RuleID)
}
