// Package engine drives a compiled program one fixed-time-step tick at a
// time: model update, edge propagation, commit, and rule evaluation,
// buffering the commands rules emit for the host to drain.
package engine

import (
	"github.com/fluxgraph/fluxgraph/compiler"
	"github.com/fluxgraph/fluxgraph/fxerr"
	"github.com/fluxgraph/fluxgraph/signal"
)

// Engine owns at most one compiled program plus its pending command queue.
// It is not safe for concurrent use; the core's scheduling model is
// single-threaded cooperative.
type Engine struct {
	loaded  bool
	program *compiler.Program
	queue   CommandQueue
}

// New constructs an unloaded engine.
func New() *Engine {
	return &Engine{}
}

// IsLoaded reports whether a program is currently loaded.
func (e *Engine) IsLoaded() bool {
	return e.loaded
}

// Load installs program, taking ownership of its edges, models, and rules.
// A program already loaded into this engine is replaced; the displaced
// program's resources are simply dropped (no teardown hook is defined for
// transforms or models).
func (e *Engine) Load(program *compiler.Program) {
	e.program = program
	e.loaded = true
	e.queue.Drain()
}

// Reset restores every model and every edge transform to its initial
// state and empties the pending command queue. It does not touch the
// signal store. Reset on an unloaded engine is a no-op.
func (e *Engine) Reset() {
	if !e.loaded {
		return
	}
	for _, m := range e.program.Models() {
		m.Reset()
	}
	for _, edge := range e.program.Edges() {
		edge.Transform.Reset()
	}
	e.queue.Drain()
}

// Tick advances the loaded program by dt seconds against store, running
// the five stages in order: model update, edge propagation (immediate
// propagation within the stage), commit (a no-op reserved hook), and rule
// evaluation. It performs no snapshotting — stage reads always see
// whatever the store holds at that instant, including writes from earlier
// in the same stage. Fails fast, before any mutation, if unloaded, dt is
// not positive, or any model's stability limit is violated by dt.
func (e *Engine) Tick(dt float64, store *signal.Store) error {
	if !e.loaded {
		return &fxerr.NotLoaded{}
	}
	if dt <= 0 {
		return &fxerr.InvalidDt{Dt: dt}
	}
	for _, m := range e.program.Models() {
		if limit := m.StabilityLimit(); dt > limit {
			return &fxerr.StabilityViolation{Model: m.Describe(), Dt: dt, Limit: limit}
		}
	}

	// Stage 1 (input boundary freeze) is implicit: whatever the host wrote
	// before calling Tick is simply the store's current state. No copy is
	// taken.

	// Stage 2: model update.
	for _, m := range e.program.Models() {
		m.Tick(dt, store)
	}

	// Stage 3: edge propagation, in the compiled order (non-delay edges in
	// topological order, then delay edges), writing with the source's
	// unit.
	for _, edge := range e.program.Edges() {
		src := store.Read(edge.Source)
		output := edge.Transform.Apply(src.Value, dt)
		if err := store.Write(edge.Target, output, src.Unit); err != nil {
			return err
		}
	}

	// Stage 4: commit. Reserved hook, no defined effect.

	// Stage 5: rule evaluation.
	for _, rule := range e.program.Rules() {
		if !rule.Condition(store) {
			continue
		}
		for _, action := range rule.Actions {
			e.queue.Push(Command{
				Device:   action.Device,
				Function: action.Function,
				Args:     action.Args,
			})
		}
	}

	return nil
}

// DrainCommands returns every command queued since the last drain and
// empties the queue. Idempotent on an already-empty queue.
func (e *Engine) DrainCommands() []Command {
	return e.queue.Drain()
}
