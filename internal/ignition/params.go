package ignition

import (
	"fmt"
	"math"
)

const (
	DefaultPressure    = 2.0e6
	DefaultPressureBar = 20.0
	DefaultTemp        = 1000.0

	DefaultDt  = 1e-7
	DefaultTau = 5.8e-4

	// MaxSteps caps ceil(Tau/Dt); the driver preallocates one history row
	// per step.
	MaxSteps = 100_000_000
)

// Conditions is the ambient state the mixture starts from. Pressure stays
// constant for the whole run.
type Conditions struct {
	Pressure    float64 `yaml:"pressure" json:"pressure"`
	PressureBar float64 `yaml:"pressure_bar" json:"pressure_bar"`
	Temp        float64 `yaml:"temp" json:"temp"`
}

func DefaultConditions() Conditions {
	return Conditions{
		Pressure:    DefaultPressure,
		PressureBar: DefaultPressureBar,
		Temp:        DefaultTemp,
	}
}

func (c Conditions) Validate() error {
	if c.Pressure <= 0 || isBad(c.Pressure) {
		return fmt.Errorf("%w: pressure must be positive, got %v", ErrInvalidConditions, c.Pressure)
	}
	if c.PressureBar <= 0 || isBad(c.PressureBar) {
		return fmt.Errorf("%w: pressure_bar must be positive, got %v", ErrInvalidConditions, c.PressureBar)
	}
	if c.Temp <= 0 || isBad(c.Temp) {
		return fmt.Errorf("%w: temperature must be positive, got %v", ErrInvalidConditions, c.Temp)
	}
	return nil
}

// Params holds the global rate law and the fixed integration step.
// ActivationTemp is the activation energy already divided by the gas
// constant. ConcScale converts the ideal-gas concentration to working units.
type Params struct {
	A              float64 `yaml:"a" json:"a"`
	ActivationTemp float64 `yaml:"activation_temp" json:"activation_temp"`
	M              float64 `yaml:"m" json:"m"`
	N              float64 `yaml:"n" json:"n"`
	ReferenceTemp  float64 `yaml:"reference_temp" json:"reference_temp"`
	GasConstant    float64 `yaml:"gas_constant" json:"gas_constant"`
	ConcScale      float64 `yaml:"conc_scale" json:"conc_scale"`
	RateSumFactor  float64 `yaml:"rate_sum_factor" json:"rate_sum_factor"`
	Dt             float64 `yaml:"dt" json:"dt"`
	Tau            float64 `yaml:"tau" json:"tau"`
}

func DefaultParams() Params {
	return Params{
		A:              4.6e11,
		ActivationTemp: 15098,
		M:              0.25,
		N:              1.5,
		ReferenceTemp:  298,
		GasConstant:    8.314,
		ConcScale:      1e6,
		RateSumFactor:  3.5,
		Dt:             DefaultDt,
		Tau:            DefaultTau,
	}
}

func (p Params) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"a", p.A},
		{"gas_constant", p.GasConstant},
		{"conc_scale", p.ConcScale},
		{"dt", p.Dt},
		{"tau", p.Tau},
	}
	for _, c := range checks {
		if c.v <= 0 || isBad(c.v) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidParams, c.name, c.v)
		}
	}
	nonNeg := []struct {
		name string
		v    float64
	}{
		{"activation_temp", p.ActivationTemp},
		{"m", p.M},
		{"n", p.N},
		{"reference_temp", p.ReferenceTemp},
		{"rate_sum_factor", p.RateSumFactor},
	}
	for _, c := range nonNeg {
		if c.v < 0 || isBad(c.v) {
			return fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalidParams, c.name, c.v)
		}
	}
	if p.Dt > p.Tau {
		return fmt.Errorf("%w: dt %v exceeds tau %v", ErrInvalidParams, p.Dt, p.Tau)
	}
	if r := p.Tau / p.Dt; isBad(r) || r > MaxSteps {
		return fmt.Errorf("%w: tau/dt %v exceeds %d steps", ErrInvalidParams, r, MaxSteps)
	}
	return nil
}

// Steps is the number of Euler steps needed to reach Tau, ceil(Tau/Dt).
// The small relative guard keeps 5.8e-4/1e-7 at 5800 instead of 5801.
func (p Params) Steps() int {
	return StepsFor(p.Tau, p.Dt)
}

// StepsFor returns 0 for a non-finite or negative ratio and saturates at
// MaxSteps.
func StepsFor(tau, dt float64) int {
	r := tau / dt
	if math.IsNaN(r) || r <= 0 {
		return 0
	}
	if r > MaxSteps {
		return MaxSteps
	}
	return int(math.Ceil(r - r*1e-9))
}

func isBad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
