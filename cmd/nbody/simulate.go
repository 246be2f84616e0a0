package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/nbody/internal/automation"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/experiment"
	"github.com/san-kum/nbody/internal/metrics"
	"github.com/san-kum/nbody/internal/optim"
	"github.com/san-kum/nbody/internal/scenario"
	"github.com/san-kum/nbody/internal/sim"
	"github.com/san-kum/nbody/internal/storage"
	"github.com/san-kum/nbody/internal/viz"
	"github.com/spf13/cobra"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}
	exp.SetLogger(logger)

	logger.Info("running simulation", "preset", name, "satellites", cfg.Generation.NumBodies, "seed", cfg.Run.Seed)
	start := time.Now()

	result, runErr := exp.Run(cmd.Context())
	if result == nil {
		return runErr
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Preset:     name,
		Dt:         cfg.Run.Dt,
		Duration:   cfg.Run.Duration,
		Integrator: cfg.Run.Integrator,
		NumBodies:  len(exp.Bodies()),
		Params:     cfg.Params(),
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if runErr != nil {
		logger.Warn("run ended early, partial record stored", "run", runID)
	}
	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	integ, err := experiment.NewRegistry().GetIntegrator(cfg.Run.Integrator)
	if err != nil {
		return err
	}
	return viz.RunLive(cfg, integ, name)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	names := args
	if len(names) == 0 {
		names = registry.ListIntegrators()
	}

	params := cfg.Params()
	initial := scenario.Generate(cfg.GenerationParams(), params, cfg.Run.Seed)

	fmt.Printf("comparing integrators (satellites=%d, dt=%.4f, duration=%.1fs)\n\n", cfg.Generation.NumBodies, cfg.Run.Dt, cfg.Run.Duration)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s\n", "integrator", "energy_drift", "orbit_dev", "time_ms")
	fmt.Println(strings.Repeat("-", 54))

	for _, intName := range names {
		integ, err := registry.GetIntegrator(intName)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", intName, err)
			continue
		}

		r := sim.New(sim.NewStepper(params, integ))
		r.SetLogger(logger)
		r.AddMetric(metrics.NewOrbitDeviation())

		start := time.Now()
		result, err := r.Run(cmd.Context(), initial.Clone(), cfg.SimConfig())
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("%-12s  error: %v\n", intName, err)
			continue
		}

		fmt.Printf("%-12s  %12.2e  %12.2e  %12.2f\n", intName, result.EnergyDrift, result.Metrics["orbit_deviation"], float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns <= 0 {
		return fmt.Errorf("%w: runs must be positive, got %d", dynamo.ErrParameterBounds, numRuns)
	}

	registry := experiment.NewRegistry()
	newIntegrator, err := registry.IntegratorFactory(cfg.Run.Integrator)
	if err != nil {
		return err
	}

	params, gen := cfg.Params(), cfg.GenerationParams()
	e := &sim.Ensemble{
		Params:        params,
		Generation:    gen,
		NewIntegrator: newIntegrator,
		NewMetrics: func() []dynamo.Metric {
			return registry.DefaultMetrics(params, gen)
		},
		NumRuns:   numRuns,
		SeedStart: cfg.Run.Seed,
	}

	logger.Info("running sweep", "runs", numRuns, "first_seed", cfg.Run.Seed)
	start := time.Now()
	results, err := e.Run(cmd.Context(), cfg.SimConfig())
	if err != nil {
		if errors.Is(err, dynamo.ErrInvalidState) {
			logger.Warn("a run diverged, sweep aborted")
		}
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSTEPS\tENERGY_DRIFT\tMOMENTUM_DRIFT\tORBIT_DEV\tBOUND")
	var sumDrift float64
	for _, res := range results {
		sumDrift += res.EnergyDrift
		fmt.Fprintf(w, "%d\t%d\t%.3e\t%.3e\t%.3e\t%.2f\n",
			res.Seed,
			res.StepsTaken,
			res.EnergyDrift,
			res.Metrics["momentum_drift"],
			res.Metrics["orbit_deviation"],
			res.Metrics["bound"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nmean energy drift: %.3e (%d runs in %v)\n", sumDrift/float64(len(results)), len(results), time.Since(start))
	return nil
}

func benchStepper(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	params := cfg.Params()
	counts := []int{2, 8, 32, 128}
	const ticks = 600

	fmt.Printf("benchmarking %s stepper (%d ticks)\n\n", cfg.Run.Integrator, ticks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tPAIRS\tTIME\tTICKS/SEC")

	for _, n := range counts {
		integ, err := registry.GetIntegrator(cfg.Run.Integrator)
		if err != nil {
			return err
		}

		gen := cfg.GenerationParams()
		gen.NumBodies = n - 1
		bodies := scenario.Generate(gen, params, cfg.Run.Seed)
		stepper := sim.NewStepper(params, integ)

		start := time.Now()
		for i := 0; i < ticks; i++ {
			stepper.Step(bodies, cfg.Run.Dt)
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, n*(n-1)/2, elapsed, float64(ticks)/elapsed.Seconds())
	}

	return w.Flush()
}

func tune(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(axes))
	ranges := make([][]float64, 0, len(axes))
	for _, a := range axes {
		n, vals, err := optim.ParseAxis(a)
		if err != nil {
			return err
		}
		names = append(names, n)
		ranges = append(ranges, vals)
	}

	search, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	logger.Info("grid search", "preset", name, "axes", strings.Join(names, ","), "metric", metricName)
	points, err := search.Search(cmd.Context(), cfg, experiment.NewRegistry(), metricName)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(metricName))
	for _, p := range points {
		for _, n := range names {
			fmt.Fprintf(w, "%g\t", p.Params[n])
		}
		fmt.Fprintf(w, "%.6e\n", p.Value)
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	results, runErr := automation.RunScenario(cmd.Context(), sc, experiment.NewRegistry(), logger)
	for _, r := range results {
		id, err := st.Save(storage.RunMetadata{
			Preset:     r.Name,
			Dt:         r.Config.Run.Dt,
			Duration:   r.Config.Run.Duration,
			Integrator: r.Config.Run.Integrator,
			NumBodies:  r.Config.Generation.NumBodies + 1,
			Params:     r.Config.Params(),
		}, r.Result)
		if err != nil {
			return err
		}
		fmt.Printf("%-20s %s  drift %.3e\n", r.Name, id, r.Result.EnergyDrift)
	}
	return runErr
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger.Info("monte carlo", "preset", name, "trials", trials, "spread", spread)
	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Base:         cfg,
		Perturbation: spread,
		NumTrials:    trials,
		Seed:         cfg.Run.Seed,
	}, experiment.NewRegistry())
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("trials:   %d\n", len(results))
	fmt.Printf("stable:   %d (%.1f%%)\n", stable, 100*float64(stable)/float64(len(results)))
	fmt.Printf("unstable: %d\n", unstable)
	return nil
}
