package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/config"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/logging"
	"github.com/neiljuan1/Stoichiometric-fuel-air-Autoignition-Calculator/internal/storage"
)

var (
	dataDir  string
	logLevel string

	dt          float64
	tau         float64
	temp        float64
	pressure    float64
	pressureBar float64
	configFile  string
	preset      string

	noSave  bool
	plot    bool
	outPath string
	svgDir  string

	sweepFrom    float64
	sweepTo      float64
	sweepPoints  int
	sweepWorkers int

	liveBatch int
)

var printer = message.NewPrinter(language.AmericanEnglish)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "ignite",
		Short:        "stoichiometric octane-air autoignition calculator",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logLevel
			if !cmd.Flags().Changed("log-level") {
				if v := os.Getenv(config.EnvPrefix + "LOG_LEVEL"); v != "" {
					level = v
				}
			}
			slog.SetDefault(logging.NewLogger(level, os.Stderr))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ignite", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (warn, info, debug, trace)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run one ignition simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addCaseFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVar(&plot, "plot", false, "draw fuel and temperature charts")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgDir, "svg-dir", "", "also write fuel.svg and temperature.svg to this directory")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	speciesCmd := &cobra.Command{
		Use:   "species",
		Short: "show the mixture at the initial conditions",
		Args:  cobra.NoArgs,
		RunE:  showSpecies,
	}
	addCaseFlags(speciesCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "ignition delay over a range of initial temperatures",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addCaseFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 900, "lowest initial temperature (K)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1300, "highest initial temperature (K)")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 9, "number of temperatures")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "parallel runs (default number of CPUs)")

	compareCmd := &cobra.Command{
		Use:   "compare [dt]...",
		Short: "run the same case at several step sizes",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareSteps,
	}
	addCaseFlags(compareCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live charts",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addCaseFlags(liveCmd)
	liveCmd.Flags().IntVar(&liveBatch, "batch", 50, "steps per frame")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, deleteCmd,
		speciesCmd, presetsCmd, sweepCmd, compareCmd, liveCmd)
	return rootCmd
}

// addCaseFlags registers the flags that describe one simulation case.
func addCaseFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&dt, "dt", config.DefaultConfig().Params.Dt, "time step (s)")
	f.Float64Var(&tau, "tau", config.DefaultConfig().Params.Tau, "ignition delay horizon (s)")
	f.Float64Var(&temp, "temp", config.DefaultConfig().Conditions.Temp, "initial temperature (K)")
	f.Float64Var(&pressure, "pressure", config.DefaultConfig().Conditions.Pressure, "pressure (Pa)")
	f.Float64Var(&pressureBar, "pressure-bar", config.DefaultConfig().Conditions.PressureBar, "pressure (bar)")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers preset, config file, environment and flags, in that
// order, over the defaults.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("dt") {
		cfg.Params.Dt = dt
	}
	if f.Changed("tau") {
		cfg.Params.Tau = tau
	}
	if f.Changed("temp") {
		cfg.Conditions.Temp = temp
	}
	if f.Changed("pressure") {
		cfg.Conditions.Pressure = pressure
	}
	if f.Changed("pressure-bar") {
		cfg.Conditions.PressureBar = pressureBar
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("log-level") {
		slog.SetDefault(logging.NewLogger(cfg.LogLevel, os.Stderr))
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func openStore() (*storage.Store, error) {
	return storage.Open(dataDir)
}
