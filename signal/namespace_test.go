package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamespace_InternIsIdempotent(t *testing.T) {
	ns := NewNamespace()
	id1 := ns.Intern("a/b")
	id2 := ns.Intern("a/b")
	assert.Equal(t, id1, id2)
	assert.Equal(t, SignalID(0), id1)
}

func TestNamespace_InternAllocatesFromZero(t *testing.T) {
	ns := NewNamespace()
	assert.Equal(t, SignalID(0), ns.Intern("a"))
	assert.Equal(t, SignalID(1), ns.Intern("b"))
	assert.Equal(t, SignalID(0), ns.Intern("a"))
}

func TestNamespace_ResolveUnknownReturnsInvalid(t *testing.T) {
	ns := NewNamespace()
	assert.Equal(t, Invalid, ns.Resolve("nope"))
}

func TestNamespace_LookupUnknownReturnsEmpty(t *testing.T) {
	ns := NewNamespace()
	assert.Equal(t, "", ns.Lookup(123))
}

func TestNamespace_RoundTrip(t *testing.T) {
	ns := NewNamespace()
	for _, p := range []string{"a", "b/c", "d/e/f"} {
		id := ns.Intern(p)
		assert.Equal(t, p, ns.Lookup(id))
		assert.Equal(t, id, ns.Resolve(p))
	}
}

func TestNamespace_Clear(t *testing.T) {
	ns := NewNamespace()
	ns.Intern("a")
	ns.Intern("b")
	ns.Clear()
	assert.Equal(t, 0, ns.Size())
	assert.Equal(t, SignalID(0), ns.Intern("c"))
}

func TestFunctionNamespace_SeparateIDSpaces(t *testing.T) {
	fn := NewFunctionNamespace()
	devID := fn.InternDevice("heater")
	funcID := fn.InternFunction("heater") // same name, different space
	assert.Equal(t, DeviceID(0), devID)
	assert.Equal(t, FunctionID(0), funcID)

	assert.Equal(t, "heater", fn.LookupDevice(devID))
	assert.Equal(t, "heater", fn.LookupFunction(funcID))
	assert.Equal(t, devID, fn.ResolveDevice("heater"))
	assert.Equal(t, Invalid, fn.ResolveDevice("unknown"))
}
