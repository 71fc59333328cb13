package ignition

import (
	"fmt"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/species"
)

// Step advances the run by one explicit Euler step of Params.Dt.
//
// The order is fixed: the temperature gradient is taken from the state at
// the start of the step, every concentration and then the temperature are
// advanced, and only afterwards are the rates and the concentration total
// refreshed for the next step. Reordering changes the trajectory.
//
// A returned error is terminal for the run and is always a *StepError.
func (s *Simulator) Step() error {
	if err := s.ComputeTemperatureGradient(); err != nil {
		return s.stepError("", 0, err)
	}

	dt := s.params.Dt
	for _, sp := range s.set.All() {
		sp.MolConc += s.ConcGradient(sp) * dt
	}
	s.temp += s.tempGradient * dt
	s.steps++

	if err := s.checkState(); err != nil {
		return err
	}

	s.ComputeReactionRates()
	s.computeMolConcSum()
	return nil
}

func (s *Simulator) checkState() error {
	if isBad(s.temp) {
		return s.stepError("", s.temp, fmt.Errorf("%w: temperature", ErrUnstable))
	}
	if s.temp <= 0 {
		return s.stepError("", s.temp, ErrNonPositiveTemperature)
	}

	var err error
	s.set.Each(func(key string, _ species.Group, sp *species.Species) {
		if err != nil {
			return
		}
		switch {
		case isBad(sp.MolConc):
			err = s.stepError(key, sp.MolConc, ErrUnstable)
		case sp.MolConc < 0:
			err = s.stepError(key, sp.MolConc, ErrNegativeConcentration)
		}
	})
	return err
}

func (s *Simulator) stepError(key string, value float64, err error) *StepError {
	return &StepError{
		Step:    s.steps,
		Time:    s.Time(),
		Species: key,
		Value:   value,
		Wrapped: err,
	}
}
