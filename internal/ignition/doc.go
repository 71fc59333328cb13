// Package ignition models the autoignition of a stoichiometric octane-air
// mixture with a single global reaction,
//
//	C8H18 + 12.5 O2 + 47 N2 -> 8 CO2 + 9 H2O + 47 N2
//
// advanced in time with fixed-step explicit Euler.
//
// The package defines:
//
//   - [Conditions]: initial pressure and temperature of the mixture
//   - [Params]: rate-law constants and the fixed step size
//   - [Simulator]: owns the six species and the scalar state, computes the
//     reaction rates, temperature gradient and concentration gradients
//   - [Simulator.Step]: one Euler step in the canonical update order
//
// # Example
//
//	s, err := ignition.New(ignition.DefaultConditions(), ignition.DefaultParams())
//	if err != nil {
//	    return err
//	}
//	for !s.Done() {
//	    if err := s.Step(); err != nil {
//	        return err
//	    }
//	}
//
// The history of a run is kept by the driver in package sim, not here.
//
// # Thread Safety
//
// A Simulator is NOT thread-safe. Parallel studies give every goroutine its
// own Simulator.
package ignition
