package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxgraph/fluxgraph/compiler"
	"github.com/fluxgraph/fluxgraph/fxerr"
	"github.com/fluxgraph/fluxgraph/graph"
	"github.com/fluxgraph/fluxgraph/signal"
	"github.com/fluxgraph/fluxgraph/variant"
)

func linearEdge(src, tgt string, scale, offset float64) graph.EdgeSpec {
	return graph.EdgeSpec{
		SourcePath: src,
		TargetPath: tgt,
		Transform: graph.TransformSpec{
			Type:   "linear",
			Params: variant.Map{"scale": variant.Float64(scale), "offset": variant.Float64(offset)},
		},
	}
}

func delayEdge(src, tgt string, delaySec float64) graph.EdgeSpec {
	return graph.EdgeSpec{
		SourcePath: src,
		TargetPath: tgt,
		Transform: graph.TransformSpec{
			Type:   "delay",
			Params: variant.Map{"delay_sec": variant.Float64(delaySec)},
		},
	}
}

func TestEngine_TickFailsWhenNotLoaded(t *testing.T) {
	e := New()
	err := e.Tick(0.1, signal.NewStore())
	var target *fxerr.NotLoaded
	require.True(t, errors.As(err, &target))
}

func TestEngine_TickFailsOnInvalidDt(t *testing.T) {
	ns := signal.NewNamespace()
	spec := graph.Spec{Edges: []graph.EdgeSpec{linearEdge("a", "b", 1, 0)}}
	program, err := compiler.Compile(spec, ns, signal.NewFunctionNamespace(), -1)
	require.NoError(t, err)

	e := New()
	e.Load(program)

	err = e.Tick(0, signal.NewStore())
	var target *fxerr.InvalidDt
	require.True(t, errors.As(err, &target))

	err = e.Tick(-1, signal.NewStore())
	require.True(t, errors.As(err, &target))
}

func TestEngine_TickFailsOnStabilityViolationAtRuntime(t *testing.T) {
	ns := signal.NewNamespace()
	spec := graph.Spec{Models: []graph.ModelSpec{{
		ID: "chamber", Type: "thermal_mass",
		Params: variant.Map{
			"thermal_mass":        variant.Float64(1),
			"heat_transfer_coeff": variant.Float64(100),
			"initial_temp":        variant.Float64(20),
			"temp_signal":         variant.String("chamber/temp"),
			"power_signal":        variant.String("chamber/power"),
			"ambient_signal":      variant.String("chamber/ambient"),
		},
	}}}
	program, err := compiler.Compile(spec, ns, signal.NewFunctionNamespace(), -1)
	require.NoError(t, err)

	e := New()
	e.Load(program)

	err = e.Tick(0.1, signal.NewStore())
	var target *fxerr.StabilityViolation
	require.True(t, errors.As(err, &target))
}

// S1 - Linear passthrough, through the full engine.
func TestEngine_S1_LinearPassthrough(t *testing.T) {
	ns := signal.NewNamespace()
	spec := graph.Spec{Edges: []graph.EdgeSpec{linearEdge("input", "output", 2.0, 1.0)}}
	program, err := compiler.Compile(spec, ns, signal.NewFunctionNamespace(), -1)
	require.NoError(t, err)

	e := New()
	e.Load(program)

	store := signal.NewStore()
	input := ns.Intern("input")
	output := ns.Intern("output")
	store.Write(input, 10.0, "volts")

	require.NoError(t, e.Tick(0.1, store))
	assert.Equal(t, 21.0, store.ReadValue(output))
	assert.Equal(t, "volts", store.Read(output).Unit)
}

// S2 - Chain propagation in one tick.
func TestEngine_S2_ChainPropagation(t *testing.T) {
	ns := signal.NewNamespace()
	spec := graph.Spec{Edges: []graph.EdgeSpec{
		linearEdge("A", "B", 2, 0),
		linearEdge("B", "C", 1, 5),
	}}
	program, err := compiler.Compile(spec, ns, signal.NewFunctionNamespace(), -1)
	require.NoError(t, err)

	e := New()
	e.Load(program)

	store := signal.NewStore()
	store.Write(ns.Intern("A"), 3.0, "")

	require.NoError(t, e.Tick(0.1, store))
	assert.Equal(t, 6.0, store.ReadValue(ns.Intern("B")))
	assert.Equal(t, 11.0, store.ReadValue(ns.Intern("C")))
}

// S3 - Delay-broken feedback.
func TestEngine_S3_DelayBrokenFeedback(t *testing.T) {
	ns := signal.NewNamespace()
	spec := graph.Spec{Edges: []graph.EdgeSpec{
		linearEdge("A", "B", 1, 0),
		delayEdge("B", "A", 0.1),
	}}
	program, err := compiler.Compile(spec, ns, signal.NewFunctionNamespace(), 0.1)
	require.NoError(t, err)

	e := New()
	e.Load(program)

	store := signal.NewStore()
	a := ns.Intern("A")
	b := ns.Intern("B")
	store.Write(a, 0.0, "")
	store.Write(b, 0.0, "")
	store.Write(a, 7.0, "")

	require.NoError(t, e.Tick(0.1, store))
	assert.Equal(t, 7.0, store.ReadValue(b))

	require.NoError(t, e.Tick(0.1, store))
	assert.Equal(t, 7.0, store.ReadValue(a))
}

// S7 - Rule firing end to end.
func TestEngine_S7_RuleFiring(t *testing.T) {
	ns := signal.NewNamespace()
	funcNS := signal.NewFunctionNamespace()
	spec := graph.Spec{Rules: []graph.RuleSpec{{
		ID:        "overheat",
		Condition: "sensor.temp >= 50.0",
		Actions: []graph.ActionSpec{{
			Device: "heater", Function: "shutdown",
			Args: variant.Map{"code": variant.Int64(1)},
		}},
	}}}
	program, err := compiler.Compile(spec, ns, funcNS, -1)
	require.NoError(t, err)

	e := New()
	e.Load(program)

	store := signal.NewStore()
	sensor := ns.Intern("sensor.temp")

	store.Write(sensor, 49.9, "")
	require.NoError(t, e.Tick(0.1, store))
	assert.Empty(t, e.DrainCommands())

	store.Write(sensor, 50.0, "")
	require.NoError(t, e.Tick(0.1, store))
	commands := e.DrainCommands()
	require.Len(t, commands, 1)
	assert.Equal(t, funcNS.ResolveDevice("heater"), commands[0].Device)
	assert.Equal(t, funcNS.ResolveFunction("shutdown"), commands[0].Function)

	assert.Empty(t, e.DrainCommands())
}

func TestEngine_ResetClearsModelsTransformsAndQueue(t *testing.T) {
	ns := signal.NewNamespace()
	funcNS := signal.NewFunctionNamespace()
	spec := graph.Spec{
		Edges: []graph.EdgeSpec{{
			SourcePath: "in", TargetPath: "out",
			Transform: graph.TransformSpec{Type: "first_order_lag", Params: variant.Map{"tau_s": variant.Float64(1.0)}},
		}},
		Rules: []graph.RuleSpec{{
			ID: "r", Condition: "in >= 0.0",
			Actions: []graph.ActionSpec{{Device: "d", Function: "f"}},
		}},
	}
	program, err := compiler.Compile(spec, ns, funcNS, -1)
	require.NoError(t, err)

	e := New()
	e.Load(program)

	store := signal.NewStore()
	store.Write(ns.Intern("in"), 1.0, "")
	require.NoError(t, e.Tick(0.1, store))
	require.NoError(t, e.Tick(0.1, store))
	require.NotEmpty(t, e.DrainCommands())

	e.Reset()
	assert.Empty(t, e.DrainCommands())

	// After reset, the first_order_lag transform is uninitialized again, so
	// its first post-reset sample should passthrough rather than continue
	// the filtered trajectory. The input changes so the two differ.
	store.Write(ns.Intern("in"), 3.0, "")
	require.NoError(t, e.Tick(0.1, store))
	assert.Equal(t, store.ReadValue(ns.Intern("in")), store.ReadValue(ns.Intern("out")))
}

func TestEngine_DeterministicAcrossIndependentRuns(t *testing.T) {
	build := func() (*Engine, *signal.Namespace) {
		ns := signal.NewNamespace()
		spec := graph.Spec{
			Edges: []graph.EdgeSpec{
				linearEdge("A", "B", 2, 0),
				{
					SourcePath: "B", TargetPath: "C",
					Transform: graph.TransformSpec{Type: "noise", Params: variant.Map{
						"amplitude": variant.Float64(0.5), "seed": variant.Int64(7),
					}},
				},
			},
		}
		program, err := compiler.Compile(spec, ns, signal.NewFunctionNamespace(), -1)
		require.NoError(t, err)
		e := New()
		e.Load(program)
		return e, ns
	}

	run := func() []float64 {
		e, ns := build()
		store := signal.NewStore()
		a := ns.Intern("A")
		c := ns.Intern("C")
		var trace []float64
		for i := 0; i < 10; i++ {
			store.Write(a, float64(i), "")
			require.NoError(t, e.Tick(0.1, store))
			trace = append(trace, store.ReadValue(c))
		}
		return trace
	}

	first := run()
	second := run()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("deterministic runs diverged:\n%s", diff)
	}
}
