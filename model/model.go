// Package model implements physics models: stateful nodes that integrate a
// differential equation over a tick and write their result to the signal
// store. The set is closed for now (ThermalMass only) but the interface is
// the extension point the compiler dispatches against by type tag.
package model

import "github.com/fluxgraph/fluxgraph/signal"

// Model is the contract every physics model satisfies: advance by dt,
// reset to initial conditions, report the Forward Euler stability limit for
// its own parameters, and describe itself for diagnostics.
type Model interface {
	Tick(dt float64, store *signal.Store)
	Reset()
	StabilityLimit() float64
	Describe() string
}
