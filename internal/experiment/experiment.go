package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/config"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/ignition"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/sim"
)

var ErrNotSetup = errors.New("experiment not setup")

// Experiment is one configured run: a simulator at the configured
// conditions, the driver around it, and its metrics.
type Experiment struct {
	cfg      config.Config
	registry *Registry
	logger   *slog.Logger
	driver   *sim.Driver
}

func New(cfg config.Config) *Experiment {
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
	}
}

func (e *Experiment) SetLogger(l *slog.Logger) { e.logger = l }

func (e *Experiment) Registry() *Registry { return e.registry }

func (e *Experiment) Config() config.Config { return e.cfg }

// Setup builds the simulator and driver. With no metric names the registry's
// defaults are attached.
func (e *Experiment) Setup(metricNames ...string) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	s, err := ignition.New(e.cfg.Conditions, e.cfg.Params)
	if err != nil {
		return fmt.Errorf("setup simulator: %w", err)
	}

	d := sim.New(s)
	d.SetLogger(e.logger)
	d.SetLogEvery(e.cfg.LogEvery)

	if len(metricNames) == 0 {
		for _, m := range e.registry.DefaultMetrics() {
			d.AddMetric(m)
		}
	} else {
		for _, name := range metricNames {
			m, err := e.registry.GetMetric(name)
			if err != nil {
				return err
			}
			d.AddMetric(m)
		}
	}

	e.driver = d
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.driver == nil {
		return nil, ErrNotSetup
	}
	return e.driver.Run(ctx)
}

// Driver returns the underlying driver for adding observers.
func (e *Experiment) Driver() *sim.Driver {
	return e.driver
}
