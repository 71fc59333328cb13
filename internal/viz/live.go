package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/ignition"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/sim"
)

const (
	DefaultBatch = 50
	maxBatch     = 5000
	frameRate    = time.Second / 30
)

type TickMsg time.Time

// LiveModel advances a simulator a batch of steps per frame and redraws
// the charts until the horizon is reached or a step fails.
type LiveModel struct {
	sim     *ignition.Simulator
	history *sim.History
	batch   int
	running bool
	err     error
	width   int
	height  int
}

func NewLiveModel(s *ignition.Simulator, batch int) LiveModel {
	if batch <= 0 {
		batch = DefaultBatch
	}
	h := sim.NewHistory(s.Set().Keys(), s.Params().Steps()+1)
	h.Record(s)
	return LiveModel{
		sim:     s,
		history: h,
		batch:   batch,
		running: true,
		width:   DefaultChartWidth,
		height:  8,
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd {
	return tick()
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.batch = min(m.batch*2, maxBatch)
		case "-":
			m.batch = max(m.batch/2, 1)
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-12, 20)
	case TickMsg:
		if m.running && !m.Finished() {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *LiveModel) advance() {
	for i := 0; i < m.batch && !m.sim.Done(); i++ {
		if err := m.sim.Step(); err != nil {
			m.err = err
			m.running = false
			return
		}
		m.history.Record(m.sim)
	}
}

// Finished reports whether the run reached tau or failed.
func (m LiveModel) Finished() bool {
	return m.err != nil || m.sim.Done()
}

func (m LiveModel) Err() error { return m.err }

func (m LiveModel) History() *sim.History { return m.history }

func (m LiveModel) Batch() int { return m.batch }

func (m LiveModel) Running() bool { return m.running }

func (m LiveModel) View() string {
	var s strings.Builder

	p := m.sim.Params()
	progress := float64(m.sim.Steps()) / float64(p.Steps())

	var status string
	switch {
	case m.err != nil:
		status = StatusFailed.Render("FAILED")
	case m.sim.Done():
		status = StatusRunning.Render("DONE")
	case m.running:
		status = StatusRunning.Render("RUNNING")
	default:
		status = StatusPaused.Render("PAUSED")
	}

	s.WriteString(TitleStyle.Render("ignite live") + "  " + status + "\n\n")
	s.WriteString(ProgressBar(progress, 40) + fmt.Sprintf(" %5.1f%%\n\n", progress*100))
	s.WriteString(row("time", fmt.Sprintf("%.4e s", m.sim.Time())) + "\n")
	s.WriteString(row("temperature", fmt.Sprintf("%.2f K", m.sim.Temperature())) + "\n")
	s.WriteString(row("fuel", fmt.Sprintf("%.4e", m.sim.Species(ignition.Fuel).MolConc)) + "\n")
	s.WriteString(row("dT/dt", fmt.Sprintf("%.4e K/s", m.sim.TemperatureGradient())) + "\n")
	s.WriteString(row("dT/dt trend", Sparkline(heatingRates(m.history), 40)) + "\n")
	s.WriteString(row("steps/frame", fmt.Sprintf("%d", m.batch)) + "\n")

	if charts := ChartsSized(m.history, m.width, m.height); charts != "" {
		s.WriteString(graphStyle.Render(charts) + "\n")
	}
	if m.err != nil {
		s.WriteString(StatusFailed.Render(m.err.Error()) + "\n")
	}

	s.WriteString("\n" + KeyHint.Render("space pause  +/- steps per frame  q quit"))
	return s.String()
}

// heatingRates is the finite-difference dT/dt between consecutive samples.
func heatingRates(h *sim.History) []float64 {
	if h.Len() < 2 {
		return nil
	}
	rates := make([]float64, 0, h.Len()-1)
	for i := 1; i < h.Len(); i++ {
		dt := h.Times[i] - h.Times[i-1]
		if dt <= 0 {
			continue
		}
		rates = append(rates, (h.Temperatures[i]-h.Temperatures[i-1])/dt)
	}
	return rates
}
