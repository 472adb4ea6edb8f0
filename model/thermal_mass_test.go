package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxgraph/fluxgraph/signal"
)

func newTestThermalMass(t *testing.T) (*ThermalMass, *signal.Store, *signal.Namespace) {
	t.Helper()
	ns := signal.NewNamespace()
	m := NewThermalMass("chamber", 100.0, 5.0, 20.0,
		"chamber/temperature", "chamber/heating_power", "chamber/ambient_temp", ns)
	store := signal.NewStore()
	return m, store, ns
}

func TestThermalMass_InitialTemperature(t *testing.T) {
	m, store, ns := newTestThermalMass(t)
	require.NotEqual(t, signal.Invalid, ns.Intern("chamber/temperature"))

	// No power, ambient equal to initial temp: no change.
	ambient := ns.Intern("chamber/ambient_temp")
	store.Write(ambient, 20.0, "degC")

	m.Tick(0.1, store)
	got := store.ReadValue(ns.Intern("chamber/temperature"))
	assert.InDelta(t, 20.0, got, 1e-9)
}

func TestThermalMass_HeatsUpWithPower(t *testing.T) {
	m, store, ns := newTestThermalMass(t)
	power := ns.Intern("chamber/heating_power")
	ambient := ns.Intern("chamber/ambient_temp")
	store.Write(power, 1000.0, "W")
	store.Write(ambient, 20.0, "degC")

	m.Tick(1.0, store)

	temp := ns.Intern("chamber/temperature")
	got := store.ReadValue(temp)
	// dT = (1000 - 5*(20-20))/100 * 1 = 10
	assert.InDelta(t, 30.0, got, 1e-9)
}

func TestThermalMass_CoolsTowardAmbient(t *testing.T) {
	m, store, ns := newTestThermalMass(t)
	power := ns.Intern("chamber/heating_power")
	ambient := ns.Intern("chamber/ambient_temp")
	store.Write(power, 0.0, "W")
	store.Write(ambient, 0.0, "degC")

	for i := 0; i < 1000; i++ {
		m.Tick(0.01, store)
	}

	temp := ns.Intern("chamber/temperature")
	got := store.ReadValue(temp)
	// With P = 0 and T_amb = 0, each Euler step scales T by (1 - h/C*dt) =
	// 0.9995, so 10 s of ticks leave 20 * 0.9995^1000 ≈ 12.13 degC.
	expected := 20.0 * math.Pow(1-5.0/100.0*0.01, 1000)
	assert.InDelta(t, expected, got, 1e-3)
}

func TestThermalMass_WritesDegCUnitAndMarksPhysicsDriven(t *testing.T) {
	m, store, ns := newTestThermalMass(t)
	m.Tick(0.1, store)

	temp := ns.Intern("chamber/temperature")
	sig := store.Read(temp)
	assert.Equal(t, "degC", sig.Unit)
	assert.True(t, store.IsPhysicsDriven(temp))
}

func TestThermalMass_Reset(t *testing.T) {
	m, store, ns := newTestThermalMass(t)
	power := ns.Intern("chamber/heating_power")
	store.Write(power, 1000.0, "W")
	m.Tick(1.0, store)
	m.Tick(1.0, store)

	m.Reset()
	store.Write(ns.Intern("chamber/ambient_temp"), 20.0, "degC")
	store.Write(power, 0.0, "W")
	m.Tick(0.0, store)

	temp := ns.Intern("chamber/temperature")
	assert.InDelta(t, 20.0, store.ReadValue(temp), 1e-9)
}

func TestThermalMass_StabilityLimit(t *testing.T) {
	m, _, _ := newTestThermalMass(t)
	// C=100, h=5 -> 2*100/5 = 40
	assert.InDelta(t, 40.0, m.StabilityLimit(), 1e-9)
}

func TestThermalMass_StabilityLimitInfiniteWhenNoCooling(t *testing.T) {
	ns := signal.NewNamespace()
	m := NewThermalMass("x", 10.0, 0.0, 20.0, "x/t", "x/p", "x/a", ns)
	assert.True(t, math.IsInf(m.StabilityLimit(), 1))
}

func TestThermalMass_Describe(t *testing.T) {
	m, _, _ := newTestThermalMass(t)
	assert.Contains(t, m.Describe(), "chamber")
	assert.Contains(t, m.Describe(), "ThermalMass")
}
