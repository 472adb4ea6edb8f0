package compiler

import (
	"fmt"

	"github.com/fluxgraph/fluxgraph/fxerr"
	"github.com/fluxgraph/fluxgraph/graph"
	"github.com/fluxgraph/fluxgraph/model"
	"github.com/fluxgraph/fluxgraph/signal"
)

// ParseModel instantiates the Model named by spec.Type, interning its
// signal paths through ns. Unknown types fail with UnknownModelType.
func ParseModel(spec graph.ModelSpec, ns *signal.Namespace) (model.Model, error) {
	context := fmt.Sprintf("model[%s:%s]", spec.ID, spec.Type)
	params := spec.Params

	switch spec.Type {
	case "thermal_mass":
		thermalMass, err := requireFloat64(params, "thermal_mass", context)
		if err != nil {
			return nil, err
		}
		heatTransferCoeff, err := requireFloat64(params, "heat_transfer_coeff", context)
		if err != nil {
			return nil, err
		}
		initialTemp, err := requireFloat64(params, "initial_temp", context)
		if err != nil {
			return nil, err
		}
		tempPath, err := requireString(params, "temp_signal", context)
		if err != nil {
			return nil, err
		}
		powerPath, err := requireString(params, "power_signal", context)
		if err != nil {
			return nil, err
		}
		ambientPath, err := requireString(params, "ambient_signal", context)
		if err != nil {
			return nil, err
		}
		return model.NewThermalMass(spec.ID, thermalMass, heatTransferCoeff, initialTemp,
			tempPath, powerPath, ambientPath, ns), nil

	default:
		return nil, &fxerr.UnknownModelType{Type: spec.Type}
	}
}

// modelOutputSignal returns the signal path a model spec will write to, for
// single-writer registration, without instantiating the model. Only
// thermal_mass is recognized; unknown types are caught by ParseModel.
func modelOutputSignal(spec graph.ModelSpec) (string, error) {
	context := fmt.Sprintf("model[%s:%s]", spec.ID, spec.Type)
	switch spec.Type {
	case "thermal_mass":
		return requireString(spec.Params, "temp_signal", context)
	default:
		return "", &fxerr.UnknownModelType{Type: spec.Type}
	}
}
