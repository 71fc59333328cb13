package metrics

import (
	"math"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/ignition"
)

type PeakTemperature struct {
	name string
	peak float64
}

func NewPeakTemperature() *PeakTemperature {
	return &PeakTemperature{name: "peak_temperature", peak: math.Inf(-1)}
}

func (p *PeakTemperature) Name() string { return p.name }

func (p *PeakTemperature) Observe(st ignition.State) {
	p.peak = math.Max(p.peak, st.Temp)
}

func (p *PeakTemperature) Value() float64 {
	if math.IsInf(p.peak, -1) {
		return 0
	}
	return p.peak
}

func (p *PeakTemperature) Reset() { p.peak = math.Inf(-1) }

// TemperatureRise is the final minus the initial observed temperature.
type TemperatureRise struct {
	name    string
	initial float64
	current float64
	samples int
}

func NewTemperatureRise() *TemperatureRise {
	return &TemperatureRise{name: "temperature_rise"}
}

func (r *TemperatureRise) Name() string { return r.name }

func (r *TemperatureRise) Observe(st ignition.State) {
	if r.samples == 0 {
		r.initial = st.Temp
	}
	r.current = st.Temp
	r.samples++
}

func (r *TemperatureRise) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.current - r.initial
}

func (r *TemperatureRise) Reset() {
	r.initial = 0
	r.current = 0
	r.samples = 0
}
