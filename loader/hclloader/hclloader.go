// Package hclloader decodes an HCL grid description into a graph.Spec,
// using a labeled-block schema in the shape of an HCL module manifest. It
// is a boundary package: the core never imports it, and a decode error
// always carries the offending block/attribute's source range.
package hclloader

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/fluxgraph/fluxgraph/graph"
	"github.com/fluxgraph/fluxgraph/variant"
)

// ParseError wraps the hcl.Diagnostics produced while parsing or decoding a
// grid file.
type ParseError struct {
	Diags hcl.Diagnostics
}

func (e *ParseError) Error() string { return e.Diags.Error() }

type fileSchema struct {
	Models []modelBlock `hcl:"model,block"`
	Edges  []edgeBlock  `hcl:"edge,block"`
	Rules  []ruleBlock  `hcl:"rule,block"`
}

type modelBlock struct {
	ID     string   `hcl:"id,label"`
	Type   string   `hcl:"type,label"`
	Remain hcl.Body `hcl:",remain"`
}

type transformBlock struct {
	Type   string   `hcl:"type,label"`
	Remain hcl.Body `hcl:",remain"`
}

type edgeBlock struct {
	Source    string          `hcl:"source,label"`
	Target    string          `hcl:"target,label"`
	Transform *transformBlock `hcl:"transform,block"`
}

type actionBlock struct {
	Device   string   `hcl:"device,label"`
	Function string   `hcl:"function,label"`
	Remain   hcl.Body `hcl:",remain"`
}

type ruleBlock struct {
	ID        string        `hcl:"id,label"`
	Condition string        `hcl:"condition"`
	OnError   string        `hcl:"on_error,optional"`
	Actions   []actionBlock `hcl:"action,block"`
}

// LoadFile reads path and decodes it as an HCL grid description.
func LoadFile(path string) (graph.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return graph.Spec{}, err
	}
	return Load(data, path)
}

// Load decodes data, an HCL source buffer, as a grid description. filename
// is used only to label diagnostics.
func Load(data []byte, filename string) (graph.Spec, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return graph.Spec{}, &ParseError{Diags: diags}
	}

	var schema fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &schema); diags.HasErrors() {
		return graph.Spec{}, &ParseError{Diags: diags}
	}

	spec := graph.Spec{
		Models: make([]graph.ModelSpec, len(schema.Models)),
		Edges:  make([]graph.EdgeSpec, len(schema.Edges)),
		Rules:  make([]graph.RuleSpec, len(schema.Rules)),
	}

	for i, m := range schema.Models {
		params, err := decodeRemain(m.Remain, data)
		if err != nil {
			return graph.Spec{}, err
		}
		spec.Models[i] = graph.ModelSpec{ID: m.ID, Type: m.Type, Params: params}
	}

	for i, e := range schema.Edges {
		edgeSpec := graph.EdgeSpec{SourcePath: e.Source, TargetPath: e.Target}
		if e.Transform != nil {
			params, err := decodeRemain(e.Transform.Remain, data)
			if err != nil {
				return graph.Spec{}, err
			}
			edgeSpec.Transform = graph.TransformSpec{Type: e.Transform.Type, Params: params}
		}
		spec.Edges[i] = edgeSpec
	}

	for i, r := range schema.Rules {
		actions := make([]graph.ActionSpec, len(r.Actions))
		for j, a := range r.Actions {
			args, err := decodeRemain(a.Remain, data)
			if err != nil {
				return graph.Spec{}, err
			}
			actions[j] = graph.ActionSpec{Device: a.Device, Function: a.Function, Args: args}
		}
		spec.Rules[i] = graph.RuleSpec{ID: r.ID, Condition: r.Condition, Actions: actions, OnError: r.OnError}
	}

	return spec, nil
}

// decodeRemain pulls every free-form attribute out of body (the arbitrary
// parameter/argument bag below a model, transform, or action block) and
// lowers each one to a variant.Value. src is the source buffer body was
// parsed from; a number's literal text in it decides int64 versus float64.
func decodeRemain(body hcl.Body, src []byte) (variant.Map, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, &ParseError{Diags: diags}
	}
	if len(attrs) == 0 {
		return nil, nil
	}

	out := make(variant.Map, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, &ParseError{Diags: diags}
		}
		v, err := ctyToVariant(val)
		if err != nil {
			return nil, &ParseError{Diags: hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  err.Error(),
				Subject:  attr.Range.Ptr(),
			}}}
		}
		if v.Kind() == variant.KindInt64 && bytes.ContainsAny(attr.Expr.Range().SliceBytes(src), ".eE") {
			f, _ := val.AsBigFloat().Float64()
			v = variant.Float64(f)
		}
		out[name] = v
	}
	return out, nil
}

// ctyToVariant lowers a cty.Value to the core's four-way Variant. cty's
// Number kind backs both int64 and float64 HCL literals with a single
// big.Float, so here a whole value lowers to an int64 Variant and anything
// with a fractional part lowers to float64. decodeRemain then turns a whole
// value written with a decimal point or exponent ("2.0") into float64,
// giving the same integer-vs-float split the JSON and YAML loaders apply.
func ctyToVariant(val cty.Value) (variant.Value, error) {
	if val.IsNull() {
		return variant.Value{}, fmt.Errorf("null values are not supported")
	}
	switch val.Type() {
	case cty.String:
		return variant.String(val.AsString()), nil
	case cty.Bool:
		return variant.Bool(val.True()), nil
	case cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int64()
			return variant.Int64(i), nil
		}
		f, _ := bf.Float64()
		return variant.Float64(f), nil
	default:
		return variant.Value{}, fmt.Errorf("unsupported HCL value type %s", val.Type().FriendlyName())
	}
}
