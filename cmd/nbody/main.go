package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/experiment"
	"github.com/san-kum/nbody/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir      string
	logLevel     string
	configFile   string
	preset       string
	dt           float64
	duration     float64
	seed         int64
	integrator   string
	numBodies    int
	gravity      float64
	timeScale    float64
	restitution  float64
	softening    float64
	sampleEvery  int
	numRuns      int
	outPath      string
	perturbation float64
	force        bool
	axes         []string
	metricName   string
	trials       int
	spread       float64
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "nbody",
})

func main() {
	rootCmd := &cobra.Command{
		Use:           "nbody",
		Short:         "gravitational n-body simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(lvl)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(experiment.NewRegistry())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".nbody", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store the record",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators on the same bodies",
		RunE:  compareIntegrators,
	}
	addConfigFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run an ensemble over consecutive seeds",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure stepping cost against body count",
		Args:  cobra.NoArgs,
		RunE:  benchStepper,
	}
	addConfigFlags(benchCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run observables",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the energy trace of a run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search over physics and timestep values",
		Args:  cobra.NoArgs,
		RunE:  tune,
	}
	addConfigFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&axes, "axis", []string{"dt=0.02,0.01,0.005"}, "search axis as name=v1,v2 (dt, g, time_scale, restitution, softening)")
	tuneCmd.Flags().StringVar(&metricName, "metric", "energy_drift", "metric to minimize")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run and store a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "count stable systems under random velocity perturbations",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addConfigFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&spread, "spread", 0.1, "relative velocity perturbation")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "run a simulation and draw the final bodies to SVG",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	addConfigFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of orbital distances",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "estimate the largest lyapunov exponent",
		Args:  cobra.NoArgs,
		RunE:  runLyapunov,
	}
	addConfigFlags(lyapunovCmd)
	lyapunovCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-6, "initial separation")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initConfigCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")
	initConfigCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(runCmd, liveCmd, compareCmd, sweepCmd, benchCmd, listCmd, plotCmd, analyzeCmd, lyapunovCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, snapshotCmd, tuneCmd, batchCmd, monteCarloCmd, presetsCmd, initConfigCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(err)
		stop()
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	cmd.Flags().IntVar(&numBodies, "bodies", 1, "number of satellites")
	cmd.Flags().Float64Var(&gravity, "g", 1000, "gravitational constant")
	cmd.Flags().Float64Var(&timeScale, "time-scale", 1, "time scale")
	cmd.Flags().Float64Var(&restitution, "restitution", 1, "collision restitution in [0, 1]")
	cmd.Flags().Float64Var(&softening, "softening", 0, "force softening length")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "ticks between samples")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "default"

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, "", err
		}
		cfg, name = p, preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", err
		}
		cfg, name = loaded, "custom"
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Run.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Run.Seed = seed
	}
	if flags.Changed("integrator") {
		cfg.Run.Integrator = integrator
	}
	if flags.Changed("sample-every") {
		cfg.Run.SampleEvery = sampleEvery
	}
	if flags.Changed("bodies") {
		cfg.Generation.NumBodies = numBodies
	}
	if flags.Changed("g") {
		cfg.Physics.G = gravity
	}
	if flags.Changed("time-scale") {
		cfg.Physics.TimeScale = timeScale
	}
	if flags.Changed("restitution") {
		cfg.Physics.Restitution = restitution
	}
	if flags.Changed("softening") {
		cfg.Physics.Softening = softening
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}
