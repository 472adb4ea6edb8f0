// Package yamlloader decodes a YAML graph document into a graph.Spec,
// mirroring jsonloader's shape and pointer-style error paths. It is a
// boundary package: the core never imports it.
package yamlloader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fluxgraph/fluxgraph/graph"
	"github.com/fluxgraph/fluxgraph/variant"
)

// ParseError is returned for any malformed document. Path is a
// JSON-Pointer-style location, matching jsonloader's convention so hosts
// can treat both loaders' errors uniformly.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type document struct {
	Models []modelDoc `yaml:"models"`
	Edges  []edgeDoc  `yaml:"edges"`
	Rules  []ruleDoc  `yaml:"rules"`
}

type modelDoc struct {
	ID     string               `yaml:"id"`
	Type   string               `yaml:"type"`
	Params map[string]yaml.Node `yaml:"params"`
}

type transformDoc struct {
	Type   string               `yaml:"type"`
	Params map[string]yaml.Node `yaml:"params"`
}

type edgeDoc struct {
	Source    string       `yaml:"source"`
	Target    string       `yaml:"target"`
	Transform transformDoc `yaml:"transform"`
}

type actionDoc struct {
	Device   string               `yaml:"device"`
	Function string               `yaml:"function"`
	Args     map[string]yaml.Node `yaml:"args"`
}

type ruleDoc struct {
	ID        string      `yaml:"id"`
	Condition string      `yaml:"condition"`
	OnError   string      `yaml:"on_error"`
	Actions   []actionDoc `yaml:"actions"`
}

// LoadFile reads path and decodes it as a YAML graph document.
func LoadFile(path string) (graph.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return graph.Spec{}, err
	}
	return Load(data)
}

// Load decodes data as a YAML graph document.
func Load(data []byte) (graph.Spec, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
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

func decodeParams(raw map[string]yaml.Node, path string) (variant.Map, error) {
	if raw == nil {
		return nil, nil
	}
	out := make(variant.Map, len(raw))
	for name, node := range raw {
		val, err := decodeValue(node, path+"/"+name)
		if err != nil {
			return nil, err
		}
		out[name] = val
	}
	return out, nil
}

// decodeValue lowers one YAML scalar into a variant.Value using the node's
// resolved tag, so "2" stays an int64 and "2.0" becomes a float64 — YAML's
// own type resolution already keeps the distinction the core's Variant
// needs, unlike JSON's single number grammar.
func decodeValue(node yaml.Node, path string) (variant.Value, error) {
	switch node.Tag {
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return variant.Value{}, &ParseError{Path: path, Err: err}
		}
		return variant.Int64(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return variant.Value{}, &ParseError{Path: path, Err: err}
		}
		return variant.Float64(f), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return variant.Value{}, &ParseError{Path: path, Err: err}
		}
		return variant.Bool(b), nil
	case "!!str":
		var s string
		if err := node.Decode(&s); err != nil {
			return variant.Value{}, &ParseError{Path: path, Err: err}
		}
		return variant.String(s), nil
	default:
		return variant.Value{}, &ParseError{Path: path, Err: fmt.Errorf("unsupported YAML value of tag %q", node.Tag)}
	}
}
