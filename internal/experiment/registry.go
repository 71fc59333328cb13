package experiment

import (
	"fmt"
	"sort"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/metrics"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/sim"
)

// DefaultMetricNames is the metric set attached to every run unless the
// caller asks for a different one.
var DefaultMetricNames = []string{
	"peak_temperature",
	"temperature_rise",
	"ignition_delay",
	"fuel_conversion",
	"min_concentration",
}

type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() sim.Metric),
	}

	r.metrics["peak_temperature"] = func() sim.Metric { return metrics.NewPeakTemperature() }
	r.metrics["temperature_rise"] = func() sim.Metric { return metrics.NewTemperatureRise() }
	r.metrics["ignition_delay"] = func() sim.Metric { return metrics.NewIgnitionDelay() }
	r.metrics["fuel_conversion"] = func() sim.Metric { return metrics.NewFuelConversion() }
	r.metrics["min_concentration"] = func() sim.Metric { return metrics.NewMinConcentration() }

	return r
}

func (r *Registry) Register(name string, fn func() sim.Metric) {
	r.metrics[name] = fn
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns fresh instances, so runs never share metric state.
func (r *Registry) DefaultMetrics() []sim.Metric {
	out := make([]sim.Metric, 0, len(DefaultMetricNames))
	for _, name := range DefaultMetricNames {
		if fn, ok := r.metrics[name]; ok {
			out = append(out, fn())
		}
	}
	return out
}
