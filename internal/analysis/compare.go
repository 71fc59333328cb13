package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/config"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/experiment"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/ignition"
)

type StepComparison struct {
	Dt            float64
	Steps         int
	FinalTemp     float64
	FinalFuel     float64
	PeakTemp      float64
	IgnitionDelay float64
	Unstable      bool
	Err           error
}

// CompareSteps runs base once per step size, in order. Runs that blow up are
// marked Unstable and keep the state of their last good sample.
func CompareSteps(ctx context.Context, base config.Config, dts []float64) ([]StepComparison, error) {
	if len(dts) == 0 {
		return nil, fmt.Errorf("no step sizes given")
	}

	out := make([]StepComparison, 0, len(dts))
	for _, dt := range dts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cfg := base
		cfg.Params.Dt = dt
		cmp := StepComparison{Dt: dt}

		e := experiment.New(cfg)
		if err := e.Setup("peak_temperature", "ignition_delay"); err != nil {
			cmp.Err = err
			out = append(out, cmp)
			continue
		}

		res, err := e.Run(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		cmp.Err = err
		cmp.Unstable = isInstability(err)
		if res != nil {
			cmp.Steps = res.StepsTaken
			cmp.PeakTemp = res.Metrics["peak_temperature"]
			cmp.IgnitionDelay = res.Metrics["ignition_delay"]
			if _, temp, ok := res.History.Final(); ok {
				cmp.FinalTemp = temp
			}
			if fuel := res.History.Series(ignition.Fuel); len(fuel) > 0 {
				cmp.FinalFuel = fuel[len(fuel)-1]
			}
		}
		out = append(out, cmp)
	}
	return out, nil
}

func isInstability(err error) bool {
	return errors.Is(err, ignition.ErrNegativeConcentration) ||
		errors.Is(err, ignition.ErrUnstable) ||
		errors.Is(err, ignition.ErrHeatCapacityCollapse) ||
		errors.Is(err, ignition.ErrNonPositiveTemperature)
}
