package sim

import (
	"fmt"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/ignition"
)

// History is the append-only trace of a run: one sample per step plus the
// initial state. Species concentrations are stored per key in Keys order.
type History struct {
	Keys         []string
	Times        []float64
	Temperatures []float64
	Conc         map[string][]float64
}

// NewHistory preallocates capacity samples per series; a negative capacity
// is treated as zero.
func NewHistory(keys []string, capacity int) *History {
	capacity = max(capacity, 0)
	h := &History{
		Keys:         append([]string(nil), keys...),
		Times:        make([]float64, 0, capacity),
		Temperatures: make([]float64, 0, capacity),
		Conc:         make(map[string][]float64, len(keys)),
	}
	for _, k := range keys {
		h.Conc[k] = make([]float64, 0, capacity)
	}
	return h
}

// Append adds one sample; conc must be in Keys order.
func (h *History) Append(t, temp float64, conc []float64) error {
	if len(conc) != len(h.Keys) {
		return fmt.Errorf("history: got %d concentrations, want %d", len(conc), len(h.Keys))
	}
	h.Times = append(h.Times, t)
	h.Temperatures = append(h.Temperatures, temp)
	for i, k := range h.Keys {
		h.Conc[k] = append(h.Conc[k], conc[i])
	}
	return nil
}

// Record samples the simulator's current time, temperature and concentrations.
func (h *History) Record(s *ignition.Simulator) {
	h.Times = append(h.Times, s.Time())
	h.Temperatures = append(h.Temperatures, s.Temperature())
	for _, k := range h.Keys {
		h.Conc[k] = append(h.Conc[k], s.Species(k).MolConc)
	}
}

func (h *History) Len() int { return len(h.Times) }

// Series returns the concentration trace of key, or nil.
func (h *History) Series(key string) []float64 { return h.Conc[key] }

// Row returns the concentrations of sample i in Keys order.
func (h *History) Row(i int) []float64 {
	row := make([]float64, len(h.Keys))
	for j, k := range h.Keys {
		row[j] = h.Conc[k][i]
	}
	return row
}

// Final returns the last sample's time and temperature.
func (h *History) Final() (t, temp float64, ok bool) {
	n := h.Len()
	if n == 0 {
		return 0, 0, false
	}
	return h.Times[n-1], h.Temperatures[n-1], true
}
