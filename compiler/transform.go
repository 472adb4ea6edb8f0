package compiler

import (
	"fmt"
	"math"

	"github.com/fluxgraph/fluxgraph/fxerr"
	"github.com/fluxgraph/fluxgraph/graph"
	"github.com/fluxgraph/fluxgraph/transform"
	"github.com/fluxgraph/fluxgraph/variant"
)

// ParseTransform instantiates the Transform named by spec.Type, validating
// its parameters against that type's contract. Unknown types fail with
// UnknownTransformType.
func ParseTransform(spec graph.TransformSpec) (transform.Transform, error) {
	context := fmt.Sprintf("transform[%s]", spec.Type)
	params := spec.Params

	switch spec.Type {
	case "linear":
		scale, err := requireFloat64(params, "scale", context)
		if err != nil {
			return nil, err
		}
		offset, err := requireFloat64(params, "offset", context)
		if err != nil {
			return nil, err
		}
		clampMin, err := optionalFloat64(params, "clamp_min", context, math.Inf(-1))
		if err != nil {
			return nil, err
		}
		clampMax, err := optionalFloat64(params, "clamp_max", context, math.Inf(1))
		if err != nil {
			return nil, err
		}
		return &transform.Linear{Scale: scale, Offset: offset, ClampMin: clampMin, ClampMax: clampMax}, nil

	case "first_order_lag":
		tauS, err := requireFloat64(params, "tau_s", context)
		if err != nil {
			return nil, err
		}
		return transform.NewFirstOrderLag(tauS), nil

	case "delay":
		delaySec, err := requireFloat64(params, "delay_sec", context)
		if err != nil {
			return nil, err
		}
		return transform.NewDelay(delaySec), nil

	case "noise":
		amplitude, err := requireFloat64(params, "amplitude", context)
		if err != nil {
			return nil, err
		}
		seed := int64(0)
		if v, ok := params["seed"]; ok {
			seed, err = asInt64(v, context, "seed")
			if err != nil {
				return nil, err
			}
		}
		return transform.NewNoise(amplitude, uint32(seed)), nil

	case "saturation":
		minVal, err := aliasedFloat64(params, "min", "min_value", context)
		if err != nil {
			return nil, err
		}
		maxVal, err := aliasedFloat64(params, "max", "max_value", context)
		if err != nil {
			return nil, err
		}
		return transform.NewSaturation(minVal, maxVal), nil

	case "deadband":
		threshold, err := requireFloat64(params, "threshold", context)
		if err != nil {
			return nil, err
		}
		return transform.NewDeadband(threshold), nil

	case "rate_limiter":
		maxRate, err := aliasedFloat64(params, "max_rate_per_sec", "max_rate", context)
		if err != nil {
			return nil, err
		}
		return transform.NewRateLimiter(maxRate), nil

	case "moving_average":
		v, err := requireParam(params, "window_size", context)
		if err != nil {
			return nil, err
		}
		windowSizeRaw, err := asInt64(v, context, "window_size")
		if err != nil {
			return nil, err
		}
		if windowSizeRaw <= 0 {
			return nil, &fxerr.InvalidParameter{Context: context, Name: "window_size", Reason: "expected >= 1"}
		}
		return transform.NewMovingAverage(int(windowSizeRaw)), nil

	default:
		return nil, &fxerr.UnknownTransformType{Type: spec.Type}
	}
}

// aliasedFloat64 prefers the primary parameter name if present, falling
// back to an older alias name when it is absent. Mirrors the compiler's
// backward-compatible parameter aliases (e.g. saturation's min/min_value).
func aliasedFloat64(params variant.Map, primary, fallback, context string) (float64, error) {
	if v, ok := params[primary]; ok {
		return asFloat64(v, context, primary)
	}
	return requireFloat64(params, fallback, context)
}
