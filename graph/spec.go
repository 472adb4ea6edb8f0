// Package graph defines the protocol-agnostic, plain-data specification of a
// FluxGraph program: models, edges, and rules. These types carry no
// behavior — the compiler package turns them into a runnable program.
package graph

import "github.com/fluxgraph/fluxgraph/variant"

// TransformSpec names a transform type and its construction parameters.
type TransformSpec struct {
	Type   string
	Params variant.Map
}

// EdgeSpec routes one signal path to another through a transform. The
// compiler rejects an edge whose Transform.Type is empty as an unknown
// transform type.
type EdgeSpec struct {
	SourcePath string
	TargetPath string
	Transform  TransformSpec
}

// ModelSpec names a physics model instance and its construction
// parameters.
type ModelSpec struct {
	ID     string
	Type   string
	Params variant.Map
}

// ActionSpec is one command a rule emits when its condition is true.
type ActionSpec struct {
	Device   string
	Function string
	Args     variant.Map
}

// RuleSpec is a condition and the actions to emit when it evaluates true.
// OnError names the rule's error-handling policy (e.g. "log_and_continue");
// it is carried through but not interpreted by the compiler.
type RuleSpec struct {
	ID        string
	Condition string
	Actions   []ActionSpec
	OnError   string
}

// Spec is the complete, ordered specification of a graph: every model,
// edge, and rule, in the order they should be instantiated and evaluated.
type Spec struct {
	Models []ModelSpec
	Edges  []EdgeSpec
	Rules  []RuleSpec
}
