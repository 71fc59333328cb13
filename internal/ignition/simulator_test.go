package ignition_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/ignition"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/species"
)

var allKeys = []string{
	ignition.Fuel, ignition.Oxygen, ignition.NitrogenR,
	ignition.CO2, ignition.Water, ignition.NitrogenP,
}

func newDefault() *ignition.Simulator {
	s, err := ignition.New(ignition.DefaultConditions(), ignition.DefaultParams())
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Simulator construction", func() {
	var s *ignition.Simulator

	BeforeEach(func() {
		s = newDefault()
	})

	It("populates the balanced octane-air mixture", func() {
		Expect(s.Set().Keys()).To(Equal(allKeys))

		Expect(s.Species(ignition.Fuel).Name).To(Equal("octane"))
		Expect(s.Species(ignition.Fuel).Mol).To(Equal(1.0))
		Expect(s.Species(ignition.Oxygen).Mol).To(Equal(12.5))
		Expect(s.Species(ignition.NitrogenR).Mol).To(BeNumerically("~", 47.0, 1e-12))
		Expect(s.Species(ignition.CO2).Mol).To(Equal(8.0))
		Expect(s.Species(ignition.Water).Mol).To(Equal(9.0))
		Expect(s.Species(ignition.NitrogenP).Mol).To(BeNumerically("~", 47.0, 1e-12))

		Expect(s.Species(ignition.Fuel).EnthalpyF).To(Equal(-208700.0))
		Expect(s.Species(ignition.CO2).EnthalpyF).To(Equal(-393546.0))
		Expect(s.Species(ignition.Water).Cp).To(Equal(41.315))
	})

	It("starts at the condition temperature", func() {
		Expect(s.Temperature()).To(Equal(ignition.DefaultConditions().Temp))
		Expect(s.Time()).To(Equal(0.0))
		Expect(s.Steps()).To(Equal(0))
	})

	It("partitions mole fractions per group", func() {
		for _, g := range []species.Group{species.Reactant, species.Product} {
			sum := 0.0
			for _, sp := range s.Set().Group(g) {
				sum += sp.MolFrac
			}
			Expect(sum).To(BeNumerically("~", 1.0, 1e-12), g.String())
		}
	})

	It("satisfies the ideal-gas relation at t=0", func() {
		cond := ignition.DefaultConditions()
		p := ignition.DefaultParams()
		for _, key := range allKeys {
			sp := s.Species(key)
			lhs := sp.MolConc * p.GasConstant * s.Temperature()
			rhs := sp.MolFrac * cond.PressureBar * cond.Pressure / p.ConcScale
			Expect(lhs).To(BeNumerically("~", rhs, rhs*1e-12), key)
		}
	})

	It("sums the concentration over both groups", func() {
		sum := 0.0
		for _, sp := range s.Set().All() {
			sum += sp.MolConc
		}
		Expect(s.MolConcSum()).To(BeNumerically("~", sum, sum*1e-14))
	})

	DescribeTable("rejects invalid input",
		func(cond ignition.Conditions, params ignition.Params, want error) {
			_, err := ignition.New(cond, params)
			Expect(errors.Is(err, want)).To(BeTrue(), "got %v", err)
		},
		Entry("zero temperature",
			ignition.Conditions{Pressure: 1e5, PressureBar: 1, Temp: 0},
			ignition.DefaultParams(), ignition.ErrInvalidConditions),
		Entry("negative temperature",
			ignition.Conditions{Pressure: 1e5, PressureBar: 1, Temp: -10},
			ignition.DefaultParams(), ignition.ErrInvalidConditions),
		Entry("zero pressure",
			ignition.Conditions{Pressure: 0, PressureBar: 1, Temp: 1000},
			ignition.DefaultParams(), ignition.ErrInvalidConditions),
		Entry("NaN pressure bar",
			ignition.Conditions{Pressure: 1e5, PressureBar: math.NaN(), Temp: 1000},
			ignition.DefaultParams(), ignition.ErrInvalidConditions),
		Entry("zero dt",
			ignition.DefaultConditions(),
			func() ignition.Params { p := ignition.DefaultParams(); p.Dt = 0; return p }(),
			ignition.ErrInvalidParams),
		Entry("dt beyond tau",
			ignition.DefaultConditions(),
			func() ignition.Params { p := ignition.DefaultParams(); p.Dt = 1e-3; return p }(),
			ignition.ErrInvalidParams),
		Entry("step count overflows int",
			ignition.DefaultConditions(),
			func() ignition.Params { p := ignition.DefaultParams(); p.Dt = 1e-300; p.Tau = 1; return p }(),
			ignition.ErrInvalidParams),
		Entry("step count above cap",
			ignition.DefaultConditions(),
			func() ignition.Params { p := ignition.DefaultParams(); p.Dt = 1e-12; p.Tau = 1; return p }(),
			ignition.ErrInvalidParams),
		Entry("NaN activation temperature",
			ignition.DefaultConditions(),
			func() ignition.Params { p := ignition.DefaultParams(); p.ActivationTemp = math.NaN(); return p }(),
			ignition.ErrInvalidParams),
		Entry("infinite reaction order",
			ignition.DefaultConditions(),
			func() ignition.Params { p := ignition.DefaultParams(); p.N = math.Inf(1); return p }(),
			ignition.ErrInvalidParams),
		Entry("NaN reference temperature",
			ignition.DefaultConditions(),
			func() ignition.Params { p := ignition.DefaultParams(); p.ReferenceTemp = math.NaN(); return p }(),
			ignition.ErrInvalidParams),
		Entry("negative rate sum factor",
			ignition.DefaultConditions(),
			func() ignition.Params { p := ignition.DefaultParams(); p.RateSumFactor = -1; return p }(),
			ignition.ErrInvalidParams),
	)

	It("accepts a step count at the cap", func() {
		p := ignition.DefaultParams()
		p.Dt = 1e-9
		p.Tau = 0.1
		Expect(p.Validate()).To(Succeed())
		Expect(p.Steps()).To(Equal(ignition.MaxSteps))
	})

	It("saturates StepsFor", func() {
		Expect(ignition.StepsFor(1, 1e-300)).To(Equal(ignition.MaxSteps))
		Expect(ignition.StepsFor(math.NaN(), 1)).To(Equal(0))
		Expect(ignition.StepsFor(-1, 1)).To(Equal(0))
	})
})

var _ = Describe("Reaction rates", func() {
	var s *ignition.Simulator

	BeforeEach(func() {
		s = newDefault()
	})

	It("consumes fuel", func() {
		Expect(s.Species(ignition.Fuel).W).To(BeNumerically("<", 0))
		Expect(s.Species(ignition.Oxygen).W).To(BeNumerically("<", 0))
		Expect(s.Species(ignition.CO2).W).To(BeNumerically(">", 0))
		Expect(s.Species(ignition.Water).W).To(BeNumerically(">", 0))
	})

	It("matches the Arrhenius rate law", func() {
		p := ignition.DefaultParams()
		fuel := s.Species(ignition.Fuel)
		o2 := s.Species(ignition.Oxygen)
		want := -p.A * math.Exp(-p.ActivationTemp/s.Temperature()) *
			math.Pow(fuel.MolConc, p.M) * math.Pow(o2.MolConc, p.N)
		Expect(fuel.W).To(Equal(want))
		Expect(s.RateSum()).To(Equal(-3.5 * want))
	})

	It("keeps rates stoichiometrically consistent", func() {
		fuel := s.Species(ignition.Fuel)
		o2 := s.Species(ignition.Oxygen)
		co2 := s.Species(ignition.CO2)
		h2o := s.Species(ignition.Water)

		Expect(o2.W).To(Equal(fuel.W * o2.Mol))
		Expect(co2.W).To(Equal(-fuel.W * co2.Mol))
		Expect(h2o.W).To(Equal(-fuel.W * h2o.Mol))
		Expect(co2.W / co2.Mol).To(Equal(-fuel.W))
		Expect(o2.W / o2.Mol).To(BeNumerically("~", fuel.W, math.Abs(fuel.W)*1e-15))
	})

	It("leaves nitrogen inert", func() {
		Expect(s.Species(ignition.NitrogenR).W).To(Equal(0.0))
		Expect(s.Species(ignition.NitrogenP).W).To(Equal(0.0))
	})

	It("is a pure function of the current state", func() {
		first := s.Snapshot().Rates
		sum := s.RateSum()
		s.ComputeReactionRates()
		Expect(s.Snapshot().Rates).To(Equal(first))
		Expect(s.RateSum()).To(Equal(sum))
	})
})

var _ = Describe("Temperature gradient", func() {
	It("is positive for an exothermic start", func() {
		s := newDefault()
		Expect(s.ComputeTemperatureGradient()).To(Succeed())
		Expect(s.TemperatureGradient()).To(BeNumerically(">", 0))
	})

	It("includes nitrogen heat capacity in the denominator", func() {
		s := newDefault()
		Expect(s.ComputeTemperatureGradient()).To(Succeed())

		num, den := 0.0, 0.0
		for _, sp := range s.Set().All() {
			num += s.EnthalpyTerm(sp)
			den += sp.MolConc * sp.Cp
		}
		Expect(s.TemperatureGradient()).To(BeNumerically("~", -num/den, math.Abs(num/den)*1e-12))

		n2 := s.Species(ignition.NitrogenR)
		Expect(n2.MolConc * n2.Cp).To(BeNumerically(">", 0))
	})

	It("drops the cp term at the reference temperature", func() {
		cond := ignition.DefaultConditions()
		cond.Temp = ignition.DefaultParams().ReferenceTemp
		s, err := ignition.New(cond, ignition.DefaultParams())
		Expect(err).NotTo(HaveOccurred())

		for _, sp := range s.Set().All() {
			Expect(s.EnthalpyTerm(sp)).To(Equal(sp.EnthalpyF*sp.W), sp.Name)
		}
	})

	It("reports a collapsed heat capacity", func() {
		s := newDefault()
		for _, sp := range s.Set().All() {
			sp.MolConc = 0
		}
		err := s.ComputeTemperatureGradient()
		Expect(errors.Is(err, ignition.ErrHeatCapacityCollapse)).To(BeTrue())

		err = s.Step()
		var stepErr *ignition.StepError
		Expect(errors.As(err, &stepErr)).To(BeTrue())
		Expect(errors.Is(err, ignition.ErrHeatCapacityCollapse)).To(BeTrue())
	})
})

var _ = Describe("Concentration gradient", func() {
	It("applies the bulk dilution correction with mixture totals", func() {
		s := newDefault()
		Expect(s.ComputeTemperatureGradient()).To(Succeed())

		for _, sp := range s.Set().All() {
			want := sp.W - sp.MolConc*((s.RateSum()/s.MolConcSum())+(s.TemperatureGradient()/s.Temperature()))
			Expect(s.ConcGradient(sp)).To(Equal(want), sp.Name)
		}
	})

	It("dilutes inert nitrogen as the mixture heats", func() {
		s := newDefault()
		Expect(s.ComputeTemperatureGradient()).To(Succeed())
		Expect(s.ConcGradient(s.Species(ignition.NitrogenR))).To(BeNumerically("<", 0))
	})
})

var _ = Describe("Step", func() {
	It("follows the canonical update order", func() {
		s := newDefault()
		p := ignition.DefaultParams()

		Expect(s.ComputeTemperatureGradient()).To(Succeed())
		grad := s.TemperatureGradient()
		t0 := s.Temperature()
		want := make(map[string]float64)
		for _, key := range allKeys {
			sp := s.Species(key)
			want[key] = sp.MolConc + s.ConcGradient(sp)*p.Dt
		}

		Expect(s.Step()).To(Succeed())

		Expect(s.Temperature()).To(Equal(t0 + grad*p.Dt))
		for _, key := range allKeys {
			Expect(s.Species(key).MolConc).To(Equal(want[key]), key)
		}

		sum := 0.0
		for _, sp := range s.Set().All() {
			sum += sp.MolConc
		}
		Expect(s.MolConcSum()).To(Equal(sum))
		Expect(s.Steps()).To(Equal(1))
		Expect(s.Time()).To(Equal(p.Dt))
	})

	It("keeps rates consistent at every step", func() {
		s := newDefault()
		for i := 0; i < 500; i++ {
			Expect(s.Step()).To(Succeed())
			fuel := s.Species(ignition.Fuel)
			Expect(fuel.W).To(BeNumerically("<=", 0))
			Expect(s.Species(ignition.Oxygen).W).To(Equal(fuel.W * 12.5))
			Expect(s.Species(ignition.CO2).W).To(Equal(-fuel.W * 8))
			Expect(s.Species(ignition.Water).W).To(Equal(-fuel.W * 9))
		}
	})

	It("does not increase fuel in the early transient", func() {
		s := newDefault()
		prev := s.Species(ignition.Fuel).MolConc
		for i := 0; i < 150; i++ {
			Expect(s.Step()).To(Succeed())
			cur := s.Species(ignition.Fuel).MolConc
			Expect(cur).To(BeNumerically("<=", prev))
			prev = cur
		}
	})

	It("snapshots are independent of later steps", func() {
		s := newDefault()
		snap := s.Snapshot()
		Expect(s.Step()).To(Succeed())
		Expect(snap.Step).To(Equal(0))
		Expect(snap.Conc[ignition.Fuel]).NotTo(Equal(s.Species(ignition.Fuel).MolConc))
	})

	It("reports negative concentrations from an oversized step", func() {
		p := ignition.DefaultParams()
		p.Dt = 1e-5
		s, err := ignition.New(ignition.DefaultConditions(), p)
		Expect(err).NotTo(HaveOccurred())

		for !s.Done() {
			if err = s.Step(); err != nil {
				break
			}
		}

		Expect(errors.Is(err, ignition.ErrNegativeConcentration)).To(BeTrue(), "got %v", err)
		var stepErr *ignition.StepError
		Expect(errors.As(err, &stepErr)).To(BeTrue())
		Expect(stepErr.Step).To(Equal(4))
		Expect(stepErr.Species).To(Equal(ignition.Fuel))
		Expect(stepErr.Value).To(BeNumerically("<", 0))
		Expect(stepErr.Error()).To(ContainSubstring("step 4"))
	})
})

var _ = Describe("Full ignition run", Label("slow"), func() {
	It("ignites before the horizon with default parameters", func() {
		s := newDefault()
		p := ignition.DefaultParams()
		Expect(p.Steps()).To(Equal(5800))

		t0 := s.Temperature()
		fuel := []float64{s.Species(ignition.Fuel).MolConc}
		times := []float64{s.Time()}
		for !s.Done() {
			Expect(s.Step()).To(Succeed())
			fuel = append(fuel, s.Species(ignition.Fuel).MolConc)
			times = append(times, s.Time())
		}

		Expect(times).To(HaveLen(int(math.Ceil(p.Tau/p.Dt)) + 1))
		Expect(times[0]).To(Equal(0.0))
		for i := 1; i < len(times); i++ {
			Expect(times[i]).To(BeNumerically(">", times[i-1]))
			Expect(fuel[i]).To(BeNumerically("<", fuel[i-1]))
		}
		Expect(times[len(times)-1]).To(BeNumerically("~", p.Tau, 1e-12))

		Expect(s.Temperature() - t0).To(BeNumerically(">=", t0/10))
		Expect(s.Temperature()).To(BeNumerically("~", 2118.6, 1.0))
		Expect(fuel[len(fuel)-1] / fuel[0]).To(BeNumerically("<", 1e-4))
	})
})
