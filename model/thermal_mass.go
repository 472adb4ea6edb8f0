package model

import (
	"fmt"
	"math"

	"github.com/fluxgraph/fluxgraph/signal"
)

// ThermalMass is a single-node heat capacity model:
//
//	dT/dt = (P_in - h*(T - T_amb)) / C
//
// T is temperature (degC), P_in is net heating power (W) read from the
// power signal, h is the heat transfer coefficient (W/K), T_amb is ambient
// temperature (degC) read from the ambient signal, and C is the thermal
// mass (J/K).
type ThermalMass struct {
	ID string

	ThermalMassJPerK   float64
	HeatTransferCoeffW float64
	InitialTempC       float64

	tempSignal    signal.SignalID
	powerSignal   signal.SignalID
	ambientSignal signal.SignalID

	temperature float64
}

// NewThermalMass constructs a thermal mass model. temp/power/ambient signal
// paths are interned through ns so the model can read and write the
// shared signal store by ID.
func NewThermalMass(
	id string,
	thermalMassJPerK float64,
	heatTransferCoeffW float64,
	initialTempC float64,
	tempSignalPath, powerSignalPath, ambientSignalPath string,
	ns *signal.Namespace,
) *ThermalMass {
	return &ThermalMass{
		ID:                 id,
		ThermalMassJPerK:   thermalMassJPerK,
		HeatTransferCoeffW: heatTransferCoeffW,
		InitialTempC:       initialTempC,
		tempSignal:         ns.Intern(tempSignalPath),
		powerSignal:        ns.Intern(powerSignalPath),
		ambientSignal:      ns.Intern(ambientSignalPath),
		temperature:        initialTempC,
	}
}

func (m *ThermalMass) Tick(dt float64, store *signal.Store) {
	netPower := store.ReadValue(m.powerSignal)
	ambient := store.ReadValue(m.ambientSignal)

	heatLoss := m.HeatTransferCoeffW * (m.temperature - ambient)
	dT := (netPower - heatLoss) / m.ThermalMassJPerK * dt
	m.temperature += dT

	store.Write(m.tempSignal, m.temperature, "degC")
	store.MarkPhysicsDriven(m.tempSignal, true)
}

func (m *ThermalMass) Reset() {
	m.temperature = m.InitialTempC
}

// StabilityLimit returns the Forward Euler stability bound for dT/dt =
// -k*T with k = h/C, i.e. dt < 2*C/h. A non-positive heat transfer
// coefficient means no cooling term, hence unconditional stability.
func (m *ThermalMass) StabilityLimit() float64 {
	if m.HeatTransferCoeffW <= 0 {
		return math.Inf(1)
	}
	return 2.0 * m.ThermalMassJPerK / m.HeatTransferCoeffW
}

func (m *ThermalMass) Describe() string {
	return fmt.Sprintf("ThermalMass(id=%s, C=%g J/K, h=%g W/K, T0=%g degC)",
		m.ID, m.ThermalMassJPerK, m.HeatTransferCoeffW, m.InitialTempC)
}
