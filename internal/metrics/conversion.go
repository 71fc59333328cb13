package metrics

import (
	"math"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/ignition"
)

// FuelConversion is 1 - final/initial fuel concentration.
type FuelConversion struct {
	name    string
	initial float64
	current float64
	samples int
}

func NewFuelConversion() *FuelConversion {
	return &FuelConversion{name: "fuel_conversion"}
}

func (f *FuelConversion) Name() string { return f.name }

func (f *FuelConversion) Observe(st ignition.State) {
	c := st.Conc[ignition.Fuel]
	if f.samples == 0 {
		f.initial = c
	}
	f.current = c
	f.samples++
}

func (f *FuelConversion) Value() float64 {
	if f.samples == 0 || f.initial == 0 {
		return 0
	}
	return 1 - f.current/f.initial
}

func (f *FuelConversion) Reset() {
	f.initial = 0
	f.current = 0
	f.samples = 0
}

// MinConcentration tracks the smallest concentration of any species. A
// value near or below zero means the step size is too coarse.
type MinConcentration struct {
	name    string
	min     float64
	species string
}

func NewMinConcentration() *MinConcentration {
	return &MinConcentration{name: "min_concentration", min: math.Inf(1)}
}

func (m *MinConcentration) Name() string { return m.name }

func (m *MinConcentration) Observe(st ignition.State) {
	for key, c := range st.Conc {
		if c < m.min {
			m.min = c
			m.species = key
		}
	}
}

func (m *MinConcentration) Value() float64 {
	if math.IsInf(m.min, 1) {
		return 0
	}
	return m.min
}

// Species is the key that reached the minimum.
func (m *MinConcentration) Species() string { return m.species }

func (m *MinConcentration) Reset() {
	m.min = math.Inf(1)
	m.species = ""
}
