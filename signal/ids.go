// Package signal holds the signal store and the two interning namespaces
// (signal paths, and device/function names) that the graph compiler and
// engine operate over.
package signal

// ID is the opaque identifier type shared by SignalID, DeviceID, and
// FunctionID — dense, monotonically assigned integers with one reserved
// sentinel value meaning "invalid".
type ID = uint32

// SignalID identifies a signal in a SignalStore.
type SignalID = ID

// DeviceID identifies a device in a FunctionNamespace.
type DeviceID = ID

// FunctionID identifies a function/command in a FunctionNamespace.
type FunctionID = ID

// Invalid is the sentinel ID value meaning "unknown" or "not interned".
const Invalid ID = 0xFFFFFFFF
