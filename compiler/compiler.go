// Package compiler turns a graph.Spec into a runnable compiler.Program:
// resolving signal paths to ids, instantiating transforms and models,
// enforcing the single-writer invariant, detecting cycles in the non-delay
// subgraph, topologically ordering edge propagation, and compiling rule
// conditions to closures the engine can evaluate without re-parsing.
package compiler

import (
	"github.com/fluxgraph/fluxgraph/fxerr"
	"github.com/fluxgraph/fluxgraph/graph"
	"github.com/fluxgraph/fluxgraph/model"
	"github.com/fluxgraph/fluxgraph/signal"
	"github.com/fluxgraph/fluxgraph/transform"
	"github.com/fluxgraph/fluxgraph/variant"
)

// CompiledEdge is an edge with its signal ids resolved and its transform
// instantiated.
type CompiledEdge struct {
	Source    signal.SignalID
	Target    signal.SignalID
	Transform transform.Transform
	IsDelay   bool
}

// CompiledAction is one device/function call a rule emits, with its
// identifiers resolved and its arguments carried verbatim.
type CompiledAction struct {
	Device   signal.DeviceID
	Function signal.FunctionID
	Args     variant.Map
}

// CompiledRule is a rule with its condition compiled to a closure and its
// actions resolved.
type CompiledRule struct {
	ID        string
	Condition conditionFunc
	Actions   []CompiledAction
	OnError   string
}

// Program is a graph.Spec compiled and ready for Engine.Load: every edge,
// model, and rule is resolved, ordered, and validated.
type Program struct {
	edges  []CompiledEdge
	models []model.Model
	rules  []CompiledRule
}

// Edges exposes the compiled, topologically-ordered edges for the engine's
// propagation stage.
func (p *Program) Edges() []CompiledEdge { return p.edges }

// Models exposes the compiled models in spec order for the engine's model
// update stage.
func (p *Program) Models() []model.Model { return p.models }

// Rules exposes the compiled rules in spec order for the engine's rule
// evaluation stage.
func (p *Program) Rules() []CompiledRule { return p.rules }

// Compile compiles spec into a Program using signalNS and funcNS to intern
// paths and device/function names. When expectedDt > 0, every model's
// Forward Euler stability limit is validated against it at compile time,
// failing fast before any signal store is ever touched.
func Compile(spec graph.Spec, signalNS *signal.Namespace, funcNS *signal.FunctionNamespace, expectedDt float64) (*Program, error) {
	program := &Program{}

	for _, modelSpec := range spec.Models {
		m, err := ParseModel(modelSpec, signalNS)
		if err != nil {
			return nil, err
		}
		program.models = append(program.models, m)
	}

	if expectedDt > 0 {
		if err := validateStability(program.models, spec.Models, expectedDt); err != nil {
			return nil, err
		}
	}

	for _, edgeSpec := range spec.Edges {
		src := signalNS.Intern(edgeSpec.SourcePath)
		tgt := signalNS.Intern(edgeSpec.TargetPath)
		tf, err := ParseTransform(edgeSpec.Transform)
		if err != nil {
			return nil, err
		}
		program.edges = append(program.edges, CompiledEdge{
			Source:    src,
			Target:    tgt,
			Transform: tf,
			IsDelay:   edgeSpec.Transform.Type == "delay",
		})
	}

	if err := enforceSingleWriter(program.edges, spec.Models, signalNS); err != nil {
		return nil, err
	}

	if err := detectCycles(program.edges); err != nil {
		return nil, err
	}

	sortedEdges, err := topologicalSort(program.edges)
	if err != nil {
		return nil, err
	}
	program.edges = sortedEdges

	for _, ruleSpec := range spec.Rules {
		compiledRule, err := compileRule(ruleSpec, signalNS, funcNS)
		if err != nil {
			return nil, err
		}
		program.rules = append(program.rules, compiledRule)
	}

	return program, nil
}

func compileRule(ruleSpec graph.RuleSpec, signalNS *signal.Namespace, funcNS *signal.FunctionNamespace) (CompiledRule, error) {
	cond, err := compileCondition(ruleSpec.Condition, signalNS, ruleSpec.ID)
	if err != nil {
		return CompiledRule{}, err
	}

	rule := CompiledRule{ID: ruleSpec.ID, Condition: cond, OnError: ruleSpec.OnError}
	for _, action := range ruleSpec.Actions {
		rule.Actions = append(rule.Actions, CompiledAction{
			Device:   funcNS.InternDevice(action.Device),
			Function: funcNS.InternFunction(action.Function),
			Args:     action.Args,
		})
	}
	return rule, nil
}

// enforceSingleWriter checks that no two edges, and no edge and model
// output, claim the same target signal.
func enforceSingleWriter(edges []CompiledEdge, modelSpecs []graph.ModelSpec, ns *signal.Namespace) error {
	owner := map[signal.SignalID]string{}

	register := func(id signal.SignalID, desc string) error {
		if existing, ok := owner[id]; ok {
			return &fxerr.MultipleWriters{SignalID: id, ExistingOwner: existing, ConflictOwner: desc}
		}
		owner[id] = desc
		return nil
	}

	for _, e := range edges {
		if err := register(e.Target, "edge_target"); err != nil {
			return err
		}
	}

	for _, modelSpec := range modelSpecs {
		path, err := modelOutputSignal(modelSpec)
		if err != nil {
			return err
		}
		if err := register(ns.Intern(path), "model_output"); err != nil {
			return err
		}
	}

	return nil
}

func validateStability(models []model.Model, _ []graph.ModelSpec, expectedDt float64) error {
	for _, m := range models {
		limit := m.StabilityLimit()
		if expectedDt > limit {
			return &fxerr.StabilityViolation{Model: m.Describe(), Dt: expectedDt, Limit: limit}
		}
	}
	return nil
}
