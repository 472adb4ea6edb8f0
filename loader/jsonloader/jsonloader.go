// Package jsonloader decodes a JSON graph document into a graph.Spec. It is
// a boundary package: the core never imports it, and it depends only on
// graph and variant, not on the compiler or engine.
package jsonloader

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fluxgraph/fluxgraph/graph"
	"github.com/fluxgraph/fluxgraph/variant"
)

// ParseError is returned for any malformed document. Path is a
// JSON-Pointer-style location (e.g. "/edges/2/transform/params/scale")
// identifying where the problem was found.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type document struct {
	Models []modelDoc `json:"models"`
	Edges  []edgeDoc  `json:"edges"`
	Rules  []ruleDoc  `json:"rules"`
}

type modelDoc struct {
	ID     string                     `json:"id"`
	Type   string                     `json:"type"`
	Params map[string]json.RawMessage `json:"params"`
}

type transformDoc struct {
	Type   string                     `json:"type"`
	Params map[string]json.RawMessage `json:"params"`
}

type edgeDoc struct {
	Source    string       `json:"source"`
	Target    string       `json:"target"`
	Transform transformDoc `json:"transform"`
}

type actionDoc struct {
	Device   string                     `json:"device"`
	Function string                     `json:"function"`
	Args     map[string]json.RawMessage `json:"args"`
}

type ruleDoc struct {
	ID        string      `json:"id"`
	Condition string      `json:"condition"`
	OnError   string      `json:"on_error"`
	Actions   []actionDoc `json:"actions"`
}

// LoadFile reads path and decodes it as a JSON graph document.
func LoadFile(path string) (graph.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return graph.Spec{}, err
	}
	return Load(data)
}

// Load decodes data as a JSON graph document.
func Load(data []byte) (graph.Spec, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return graph.Spec{}, &ParseError{Path: "/", Err: err}
	}

	spec := graph.Spec{
		Models: make([]graph.ModelSpec, len(doc.Models)),
		Edges:  make([]graph.EdgeSpec, len(doc.Edges)),
		Rules:  make([]graph.RuleSpec, len(doc.Rules)),
	}

	for i, m := range doc.Models {
		path := fmt.Sprintf("/models/%d", i)
		params, err := decodeParams(m.Params, path+"/params")
		if err != nil {
			return graph.Spec{}, err
		}
		spec.Models[i] = graph.ModelSpec{ID: m.ID, Type: m.Type, Params: params}
	}

	for i, e := range doc.Edges {
		path := fmt.Sprintf("/edges/%d", i)
		params, err := decodeParams(e.Transform.Params, path+"/transform/params")
		if err != nil {
			return graph.Spec{}, err
		}
		spec.Edges[i] = graph.EdgeSpec{
			SourcePath: e.Source,
			TargetPath: e.Target,
			Transform:  graph.TransformSpec{Type: e.Transform.Type, Params: params},
		}
	}

	for i, r := range doc.Rules {
		path := fmt.Sprintf("/rules/%d", i)
		actions := make([]graph.ActionSpec, len(r.Actions))
		for j, a := range r.Actions {
			argsPath := fmt.Sprintf("%s/actions/%d/args", path, j)
			args, err := decodeParams(a.Args, argsPath)
			if err != nil {
				return graph.Spec{}, err
			}
			actions[j] = graph.ActionSpec{Device: a.Device, Function: a.Function, Args: args}
		}
		spec.Rules[i] = graph.RuleSpec{ID: r.ID, Condition: r.Condition, Actions: actions, OnError: r.OnError}
	}

	return spec, nil
}

func decodeParams(raw map[string]json.RawMessage, path string) (variant.Map, error) {
	if raw == nil {
		return nil, nil
	}
	out := make(variant.Map, len(raw))
	for name, v := range raw {
		val, err := decodeValue(v, path+"/"+name)
		if err != nil {
			return nil, err
		}
		out[name] = val
	}
	return out, nil
}

// decodeValue lowers one JSON scalar into a variant.Value. A JSON number
// with no fractional part or exponent decodes as int64; any other number
// decodes as float64. This is a loader-level policy, not a core rule — the
// core itself only ever sees the already-tagged variant.Value.
func decodeValue(raw json.RawMessage, path string) (variant.Value, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return variant.Bool(b), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return variant.String(s), nil
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		literal := num.String()
		if !strings.ContainsAny(literal, ".eE") {
			if i, err := num.Int64(); err == nil {
				return variant.Int64(i), nil
			}
		}
		f, err := num.Float64()
		if err != nil {
			return variant.Value{}, &ParseError{Path: path, Err: err}
		}
		return variant.Float64(f), nil
	}

	return variant.Value{}, &ParseError{Path: path, Err: fmt.Errorf("unsupported JSON value %s", string(raw))}
}
