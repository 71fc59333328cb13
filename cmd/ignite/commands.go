package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/analysis"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/config"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/experiment"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/ignition"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/storage"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(*cfg)
	exp.SetLogger(slog.Default())
	if err := exp.Setup(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	printer.Printf("running %s: T0=%.1f K, %d steps of %g s\n",
		cfg.Name, cfg.Conditions.Temp, cfg.Params.Steps(), cfg.Params.Dt)

	result, runErr := exp.Run(ctx)

	if !noSave && result != nil {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		runID, err := st.Save(cmd.Context(), cfg.Name, cfg.Conditions, cfg.Params, result, runErr)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	if result != nil {
		printer.Printf("completed %d steps in %v\n", result.StepsTaken, result.Elapsed)
	}
	fmt.Println(viz.Summary(cfg.Conditions, cfg.Params, result, runErr))

	if plot && result != nil {
		fmt.Println()
		fmt.Println(viz.Charts(result.History))
	}

	if runErr != nil {
		return fmt.Errorf("simulation failed: %w", runErr)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tT0\tP(BAR)\tDT\tSTEPS\tDELAY\tSTATUS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%g\t%g\t%s\t%.3e\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.Conditions.Temp,
			run.Conditions.PressureBar,
			run.Dt,
			printer.Sprintf("%d", run.Steps),
			run.Metrics["ignition_delay"],
			run.Status,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(cmd.Context(), runID)
	if err != nil {
		return err
	}
	h, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	printer.Printf("run %s (%s): T0=%.1f K, %d samples\n\n", meta.ID, meta.Name, meta.Conditions.Temp, h.Len())
	fmt.Println(viz.Charts(h))

	if svgDir == "" {
		return nil
	}
	if err := os.MkdirAll(svgDir, 0755); err != nil {
		return err
	}
	files := map[string]string{
		"fuel.svg":        viz.SeriesSVG(h.Times, h.Series(ignition.Fuel), 800, 400, "#00ccff", "fuel concentration vs time"),
		"temperature.svg": viz.SeriesSVG(h.Times, h.Temperatures, 800, 400, "#ff6b6b", "temperature (K) vs time"),
	}
	for name, svg := range files {
		path := filepath.Join(svgDir, name)
		if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

// output returns the writer for --out, or stdout.
func output() (io.WriteCloser, error) {
	if outPath == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outPath)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	w, err := output()
	if err != nil {
		return err
	}
	if err := st.ExportCSV(w, args[0]); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(cmd.Context(), runID)
	if err != nil {
		return err
	}
	h, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	w, err := output()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, meta, h); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func deleteRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func showSpecies(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s, err := ignition.New(cfg.Conditions, cfg.Params)
	if err != nil {
		return err
	}

	fmt.Printf("T=%.1f K, P=%g Pa (%g bar)\n", s.Temperature(), cfg.Conditions.Pressure, cfg.Conditions.PressureBar)
	fmt.Println(viz.SpeciesTable(s.Set()))
	fmt.Printf("total concentration %.6e, dT/dt %.4e K/s\n", s.MolConcSum(), startGradient(s))
	return nil
}

func startGradient(s *ignition.Simulator) float64 {
	if err := s.ComputeTemperatureGradient(); err != nil {
		return 0
	}
	return s.TemperatureGradient()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tT0\tP(PA)\tP(BAR)\tDT\tTAU")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.1f\t%g\t%g\t%g\t%g\n",
			name,
			p.Conditions.Temp,
			p.Conditions.Pressure,
			p.Conditions.PressureBar,
			p.Params.Dt,
			p.Params.Tau,
		)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	pts, err := analysis.TemperatureSweep(ctx, *cfg, sweepFrom, sweepTo, sweepPoints, sweepWorkers)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T0\tIGNITED\tDELAY\tPEAK\tRISE\tERROR")
	delays := make([]float64, 0, len(pts))
	for _, p := range pts {
		errText := ""
		if p.Err != nil {
			errText = p.Err.Error()
		}
		fmt.Fprintf(w, "%.1f\t%v\t%.4e\t%.1f\t%.1f\t%s\n",
			p.Temp, p.Ignited, p.IgnitionDelay, p.PeakTemp, p.TempRise, errText)
		if p.Ignited {
			delays = append(delays, p.IgnitionDelay*1e6)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(delays) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(delays,
			asciigraph.Height(10),
			asciigraph.Caption("ignition delay (us) vs initial temperature, ignited points"),
		))
	}

	return analysis.Failed(pts)
}

func compareSteps(cmd *cobra.Command, args []string) error {
	dts := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid step size %q: %w", a, err)
		}
		dts = append(dts, v)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	cmps, err := analysis.CompareSteps(ctx, *cfg, dts)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tFINAL T\tFINAL FUEL\tPEAK\tDELAY\tSTATUS")
	for _, c := range cmps {
		status := "ok"
		switch {
		case c.Unstable:
			status = "unstable"
		case c.Err != nil:
			status = c.Err.Error()
		}
		fmt.Fprintf(w, "%g\t%s\t%.2f\t%.4e\t%.2f\t%.4e\t%s\n",
			c.Dt, printer.Sprintf("%d", c.Steps), c.FinalTemp, c.FinalFuel, c.PeakTemp, c.IgnitionDelay, status)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s, err := ignition.New(cfg.Conditions, cfg.Params)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(viz.NewLiveModel(s, liveBatch)).Run()
	if err != nil {
		return err
	}

	if m, ok := final.(viz.LiveModel); ok && m.Err() != nil {
		return fmt.Errorf("simulation failed: %w", m.Err())
	}
	return nil
}
