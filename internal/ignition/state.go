package ignition

// State is a value copy of the simulator at one instant.
type State struct {
	Step         int
	Time         float64
	Temp         float64
	TempGradient float64
	MolConcSum   float64
	RateSum      float64
	Conc         map[string]float64
	Rates        map[string]float64
}

// Snapshot copies the current state; later steps do not affect it.
func (s *Simulator) Snapshot() State {
	st := State{
		Step:         s.steps,
		Time:         s.Time(),
		Temp:         s.temp,
		TempGradient: s.tempGradient,
		MolConcSum:   s.molConcSum,
		RateSum:      s.wSum,
		Conc:         make(map[string]float64, s.set.Len()),
		Rates:        make(map[string]float64, s.set.Len()),
	}
	for _, key := range s.set.Keys() {
		sp := s.set.Get(key)
		st.Conc[key] = sp.MolConc
		st.Rates[key] = sp.W
	}
	return st
}
