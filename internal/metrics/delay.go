package metrics

import "github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/ignition"

// IgnitionDelay estimates the ignition time as the start of the sample
// interval with the steepest temperature rise. It stays 0 when the
// temperature never rises.
type IgnitionDelay struct {
	name     string
	prevTime float64
	prevTemp float64
	maxRate  float64
	delay    float64
	samples  int
}

func NewIgnitionDelay() *IgnitionDelay {
	return &IgnitionDelay{name: "ignition_delay"}
}

func (d *IgnitionDelay) Name() string { return d.name }

func (d *IgnitionDelay) Observe(st ignition.State) {
	if d.samples > 0 {
		if dt := st.Time - d.prevTime; dt > 0 {
			rate := (st.Temp - d.prevTemp) / dt
			if rate > d.maxRate {
				d.maxRate = rate
				d.delay = d.prevTime
			}
		}
	}
	d.prevTime = st.Time
	d.prevTemp = st.Temp
	d.samples++
}

func (d *IgnitionDelay) Value() float64 { return d.delay }

// MaxRate is the steepest observed dT/dt in K/s.
func (d *IgnitionDelay) MaxRate() float64 { return d.maxRate }

func (d *IgnitionDelay) Reset() {
	d.prevTime = 0
	d.prevTemp = 0
	d.maxRate = 0
	d.delay = 0
	d.samples = 0
}
