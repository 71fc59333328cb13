package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/ignition"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/sim"
)

const (
	DefaultChartWidth  = 70
	DefaultChartHeight = 12
)

// Downsample picks at most n evenly strided values, always keeping the
// first and last.
func Downsample(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	if n == 1 {
		return []float64{values[len(values)-1]}
	}
	out := make([]float64, n)
	last := len(values) - 1
	for i := 0; i < n; i++ {
		out[i] = values[i*last/(n-1)]
	}
	return out
}

// scaleFor returns the power of ten that brings the largest magnitude in
// values into [1, 10).
func scaleFor(values []float64) int {
	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak == 0 || math.IsInf(peak, 0) || math.IsNaN(peak) {
		return 0
	}
	return int(math.Floor(math.Log10(peak)))
}

// Charts draws fuel concentration and temperature against time. It returns
// an empty string for an empty history.
func Charts(h *sim.History) string {
	return ChartsSized(h, DefaultChartWidth, DefaultChartHeight)
}

func ChartsSized(h *sim.History, width, height int) string {
	if h == nil || h.Len() < 2 {
		return ""
	}
	tMax, _, _ := h.Final()

	var sb strings.Builder
	if fuel := h.Series(ignition.Fuel); len(fuel) > 0 {
		sb.WriteString(FuelChart(fuel, tMax, width, height))
		sb.WriteString("\n\n")
	}
	sb.WriteString(TemperatureChart(h.Temperatures, tMax, width, height))
	return sb.String()
}

func FuelChart(fuel []float64, tMax float64, width, height int) string {
	exp := scaleFor(fuel)
	factor := math.Pow(10, float64(-exp))

	data := Downsample(fuel, width)
	scaled := make([]float64, len(data))
	for i, v := range data {
		scaled[i] = v * factor
	}

	caption := fmt.Sprintf("fuel concentration (x1e%d) vs time, 0 to %.3g s", exp, tMax)
	return asciigraph.Plot(scaled,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
		asciigraph.Precision(3),
	)
}

func TemperatureChart(temps []float64, tMax float64, width, height int) string {
	caption := fmt.Sprintf("temperature (K) vs time, 0 to %.3g s", tMax)
	return asciigraph.Plot(Downsample(temps, width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
		asciigraph.Precision(1),
	)
}
