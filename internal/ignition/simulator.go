package ignition

import (
	"fmt"
	"math"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/species"
)

// Species keys, in the order the simulator advances them.
const (
	Fuel      = "fuel"
	Oxygen    = "o2"
	NitrogenR = "n2r"
	CO2       = "co2"
	Water     = "h2o"
	NitrogenP = "n2p"
)

// nitrogen moles per mole of oxygen in air
const airN2PerO2 = 3.76

type speciesDef struct {
	key   string
	group species.Group
	name  string
	mol   float64
	enthF float64
	cp    float64
}

var mixture = []speciesDef{
	{Fuel, species.Reactant, "octane", 1, -208700.0, 431.37},
	{Oxygen, species.Reactant, "oxygen", 12.5, 0, 34.936},
	{NitrogenR, species.Reactant, "nitrogen", airN2PerO2 * 12.5, 0, 32.762},
	{CO2, species.Product, "carbon dioxide", 8, -393546, 54.36},
	{Water, species.Product, "water", 9, -241845, 41.315},
	{NitrogenP, species.Product, "nitrogen", airN2PerO2 * 12.5, 0, 32.762},
}

// Simulator owns the mixture and the scalar state of one ignition run.
type Simulator struct {
	cond   Conditions
	params Params
	set    *species.Set

	temp         float64
	tempGradient float64
	molConcSum   float64
	wSum         float64
	steps        int
}

// New builds the stoichiometric mixture at cond and runs the initialisation
// sequence: mole fractions, molar concentrations, reaction rates.
func New(cond Conditions, params Params) (*Simulator, error) {
	if err := cond.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	s := &Simulator{
		cond:   cond,
		params: params,
		set:    species.NewSet(),
		temp:   cond.Temp,
	}

	for _, d := range mixture {
		sp, err := species.New(d.name, d.mol, d.enthF, d.cp)
		if err != nil {
			return nil, err
		}
		if err := s.set.Add(d.key, d.group, sp); err != nil {
			return nil, err
		}
	}

	s.computeMolFractions()
	if err := s.computeMolConcentrations(); err != nil {
		return nil, err
	}
	s.ComputeReactionRates()

	return s, nil
}

func (s *Simulator) computeMolFractions() {
	for _, g := range []species.Group{species.Reactant, species.Product} {
		total := s.set.MolSum(g)
		for _, sp := range s.set.Group(g) {
			sp.MolFrac = sp.Mol / total
		}
	}
}

// computeMolConcentrations applies the ideal-gas relation to every species
// at the current temperature and refreshes the total.
func (s *Simulator) computeMolConcentrations() error {
	if s.temp <= 0 {
		return fmt.Errorf("%w: T=%v", ErrNonPositiveTemperature, s.temp)
	}
	p := s.params
	base := (s.cond.PressureBar * s.cond.Pressure) / (p.GasConstant * s.temp) / p.ConcScale
	for _, sp := range s.set.All() {
		sp.MolConc = sp.MolFrac * base
	}
	s.computeMolConcSum()
	return nil
}

func (s *Simulator) computeMolConcSum() {
	s.molConcSum = 0
	for _, sp := range s.set.All() {
		s.molConcSum += sp.MolConc
	}
}

// ComputeReactionRates evaluates the global rate law at the current state.
// Nitrogen never reacts, so its rates are left untouched.
func (s *Simulator) ComputeReactionRates() {
	p := s.params
	fuel := s.set.Get(Fuel)
	o2 := s.set.Get(Oxygen)

	wFuel := -p.A * math.Exp(-p.ActivationTemp/s.temp) *
		math.Pow(fuel.MolConc, p.M) * math.Pow(o2.MolConc, p.N)

	fuel.W = wFuel
	o2.W = wFuel * o2.Mol
	co2 := s.set.Get(CO2)
	co2.W = -wFuel * co2.Mol
	h2o := s.set.Get(Water)
	h2o.W = -wFuel * h2o.Mol

	s.wSum = -p.RateSumFactor * wFuel
}

// EnthalpyTerm is the heat release contribution of sp at the current temperature.
func (s *Simulator) EnthalpyTerm(sp *species.Species) float64 {
	return (sp.EnthalpyF + sp.Cp*(s.temp-s.params.ReferenceTemp)) * sp.W
}

// ComputeTemperatureGradient sets dT/dt from the reaction heat release over
// the mixture heat capacity. Inert nitrogen stays in the denominator.
func (s *Simulator) ComputeTemperatureGradient() error {
	num, den := 0.0, 0.0
	for _, sp := range s.set.All() {
		num += s.EnthalpyTerm(sp)
		den += sp.MolConc * sp.Cp
	}
	if den == 0 || isBad(den) {
		return fmt.Errorf("%w: sum(conc*cp)=%v", ErrHeatCapacityCollapse, den)
	}
	g := -(num / den)
	if isBad(g) {
		return fmt.Errorf("%w: temperature gradient %v", ErrUnstable, g)
	}
	s.tempGradient = g
	return nil
}

// ConcGradient is d(conc)/dt for sp, including the bulk dilution from the
// change in total moles and temperature across the whole mixture.
func (s *Simulator) ConcGradient(sp *species.Species) float64 {
	return sp.W - sp.MolConc*((s.wSum/s.molConcSum)+(s.tempGradient/s.temp))
}

// Species returns the live record stored under key, or nil.
func (s *Simulator) Species(key string) *species.Species { return s.set.Get(key) }

// Set exposes the owned mixture; records are live.
func (s *Simulator) Set() *species.Set { return s.set }

func (s *Simulator) Conditions() Conditions       { return s.cond }
func (s *Simulator) Params() Params               { return s.params }
func (s *Simulator) Temperature() float64         { return s.temp }
func (s *Simulator) TemperatureGradient() float64 { return s.tempGradient }
func (s *Simulator) MolConcSum() float64          { return s.molConcSum }
func (s *Simulator) RateSum() float64             { return s.wSum }
func (s *Simulator) Steps() int                   { return s.steps }

// Time is the elapsed simulated time, steps*Dt.
func (s *Simulator) Time() float64 { return float64(s.steps) * s.params.Dt }

// Done reports whether the run reached the ignition-delay horizon.
func (s *Simulator) Done() bool { return s.steps >= s.params.Steps() }
