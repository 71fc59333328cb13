package analysis

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/config"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/experiment"
)

// IgnitionThreshold is the temperature rise, as a fraction of the initial
// temperature, above which a run counts as ignited.
const IgnitionThreshold = 0.1

var sweepMetrics = []string{"ignition_delay", "peak_temperature", "temperature_rise"}

type SweepPoint struct {
	Temp          float64
	IgnitionDelay float64
	PeakTemp      float64
	TempRise      float64
	Ignited       bool
	Err           error
}

// TemperatureSweep runs base at points initial temperatures evenly spaced
// over [tMin, tMax]. A failed run is reported in its point's Err and does not
// stop the sweep; cancellation does. Results are ordered by temperature.
func TemperatureSweep(ctx context.Context, base config.Config, tMin, tMax float64, points, workers int) ([]SweepPoint, error) {
	if points < 1 {
		return nil, fmt.Errorf("sweep needs at least one point, got %d", points)
	}
	if tMin <= 0 || tMax < tMin {
		return nil, fmt.Errorf("invalid temperature range [%v, %v]", tMin, tMax)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > points {
		workers = points
	}

	step := 0.0
	if points > 1 {
		step = (tMax - tMin) / float64(points-1)
	}

	results := make([]SweepPoint, points)
	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				temp := tMin + float64(idx)*step
				results[idx] = runPoint(ctx, base, temp)
			}
		}()
	}

	for i := 0; i < points; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func runPoint(ctx context.Context, base config.Config, temp float64) SweepPoint {
	cfg := base
	cfg.Conditions.Temp = temp
	pt := SweepPoint{Temp: temp}

	e := experiment.New(cfg)
	if err := e.Setup(sweepMetrics...); err != nil {
		pt.Err = err
		return pt
	}

	res, err := e.Run(ctx)
	if res != nil {
		pt.IgnitionDelay = res.Metrics["ignition_delay"]
		pt.PeakTemp = res.Metrics["peak_temperature"]
		pt.TempRise = res.Metrics["temperature_rise"]
	}
	if err != nil {
		pt.Err = err
		return pt
	}
	pt.Ignited = pt.TempRise >= IgnitionThreshold*temp
	return pt
}

// Failed reports whether any point of a sweep ended in an error.
func Failed(pts []SweepPoint) error {
	var errs []error
	for _, p := range pts {
		if p.Err != nil {
			errs = append(errs, fmt.Errorf("T0=%g: %w", p.Temp, p.Err))
		}
	}
	return errors.Join(errs...)
}
