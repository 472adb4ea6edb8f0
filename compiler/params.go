package compiler

import (
	"github.com/fluxgraph/fluxgraph/fxerr"
	"github.com/fluxgraph/fluxgraph/variant"
)

func requireParam(params variant.Map, name, context string) (variant.Value, error) {
	v, ok := params[name]
	if !ok {
		return variant.Value{}, &fxerr.MissingParameter{Context: context, Name: name}
	}
	return v, nil
}

func asFloat64(v variant.Value, context, name string) (float64, error) {
	f, ok := v.AsFloat64Coerced()
	if !ok {
		return 0, &fxerr.TypeError{Context: context, Name: name, Expected: "double", Got: v.Kind().String()}
	}
	return f, nil
}

func asInt64(v variant.Value, context, name string) (int64, error) {
	i, ok := v.AsInt64()
	if !ok {
		return 0, &fxerr.TypeError{Context: context, Name: name, Expected: "int64", Got: v.Kind().String()}
	}
	return i, nil
}

func asString(v variant.Value, context, name string) (string, error) {
	s, ok := v.AsString()
	if !ok {
		return "", &fxerr.TypeError{Context: context, Name: name, Expected: "string", Got: v.Kind().String()}
	}
	return s, nil
}

// requireFloat64 looks up name, requires it be present, and coerces it to a
// float64 (accepting int64).
func requireFloat64(params variant.Map, name, context string) (float64, error) {
	v, err := requireParam(params, name, context)
	if err != nil {
		return 0, err
	}
	return asFloat64(v, context, name)
}

// requireString looks up name, requires it be present, and requires it hold
// a string.
func requireString(params variant.Map, name, context string) (string, error) {
	v, err := requireParam(params, name, context)
	if err != nil {
		return "", err
	}
	return asString(v, context, name)
}

// optionalFloat64 returns fallback if name is absent, else the coerced
// float64 value.
func optionalFloat64(params variant.Map, name, context string, fallback float64) (float64, error) {
	v, ok := params[name]
	if !ok {
		return fallback, nil
	}
	return asFloat64(v, context, name)
}
