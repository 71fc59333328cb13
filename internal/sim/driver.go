package sim

import (
	"context"
	"log/slog"
	"time"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/ignition"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/logging"
)

type Metric interface {
	Name() string
	Observe(st ignition.State)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(st ignition.State)
}

type Result struct {
	History    *History
	Metrics    map[string]float64
	StepsTaken int
	Elapsed    time.Duration
}

const defaultLogEvery = 1000

// Driver marches one simulator from t=0 to the ignition-delay horizon and
// keeps the history of the run.
type Driver struct {
	sim       *ignition.Simulator
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
	logEvery  int
}

func New(s *ignition.Simulator) *Driver {
	return &Driver{
		sim:       s,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    logging.Discard(),
		logEvery:  defaultLogEvery,
	}
}

func (d *Driver) AddMetric(m Metric)     { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

func (d *Driver) SetLogger(l *slog.Logger) {
	if l != nil {
		d.logger = l
	}
}

// SetLogEvery sets how often progress is logged at debug level.
func (d *Driver) SetLogEvery(n int) {
	if n > 0 {
		d.logEvery = n
	}
}

func (d *Driver) Simulator() *ignition.Simulator { return d.sim }

// Run records the initial sample, then steps until ceil(Tau/Dt) steps have
// been taken. On a step error or cancellation the partial result is
// returned with the error; the history then ends at the last good sample.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	p := d.sim.Params()
	steps := max(p.Steps()-d.sim.Steps(), 0)

	result := &Result{
		History: NewHistory(d.sim.Set().Keys(), steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range d.metrics {
		m.Reset()
	}

	start := time.Now()
	d.logger.Info("run starting",
		"temp", d.sim.Temperature(),
		"dt", p.Dt,
		"tau", p.Tau,
		"steps", steps,
	)

	result.History.Record(d.sim)
	d.observe()

	var runErr error
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		if err := d.sim.Step(); err != nil {
			d.logger.Error("run aborted", "error", err)
			runErr = err
			break
		}
		result.StepsTaken++
		result.History.Record(d.sim)
		d.observe()

		if d.sim.Steps()%d.logEvery == 0 {
			d.logger.Debug("progress",
				"step", d.sim.Steps(),
				"t", d.sim.Time(),
				"temp", d.sim.Temperature(),
				"fuel", d.sim.Species(ignition.Fuel).MolConc,
			)
		}
		if d.logger.Enabled(ctx, logging.LevelTrace) {
			d.logger.Log(ctx, logging.LevelTrace, "step",
				"step", d.sim.Steps(),
				"dTdt", d.sim.TemperatureGradient(),
			)
		}
	}

	result.Elapsed = time.Since(start)
	for _, m := range d.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if runErr == nil {
		d.logger.Info("run finished",
			"steps", result.StepsTaken,
			"final_temp", d.sim.Temperature(),
			"elapsed", result.Elapsed,
		)
	}
	return result, runErr
}

func (d *Driver) observe() {
	if len(d.metrics) == 0 && len(d.observers) == 0 {
		return
	}
	st := d.sim.Snapshot()
	for _, m := range d.metrics {
		m.Observe(st)
	}
	for _, o := range d.observers {
		o.OnStep(st)
	}
}
