package main

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/nbody/internal/analysis"
	"github.com/san-kum/nbody/internal/experiment"
	"github.com/san-kum/nbody/internal/scenario"
	"github.com/spf13/cobra"
)

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if len(samples) < 4 || len(samples[0].Distances) == 0 {
		return fmt.Errorf("not enough samples with satellites to analyze")
	}
	sampleDt := samples[1].Time - samples[0].Time

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s\n\n", meta.Preset)

	numDist := min(len(samples[0].Distances), maxDistancePlots)
	for k := 0; k < numDist; k++ {
		data := make([]float64, len(samples))
		for i, s := range samples {
			if k < len(s.Distances) {
				data[i] = s.Distances[k]
			}
		}

		if k == 0 {
			ps := analysis.PowerSpectrum(data)
			plotData := ps[1 : len(ps)/4+1]
			graph := asciigraph.Plot(plotData,
				asciigraph.Height(15),
				asciigraph.Width(80),
				asciigraph.Caption("power spectrum (distance of body 1)"),
			)
			fmt.Println(graph)
			fmt.Println()
		}

		if period, ok := analysis.DominantPeriod(data, sampleDt); ok {
			fmt.Printf("body %d: radial period %.3f s\n", k+1, period)
		} else {
			fmt.Printf("body %d: no radial oscillation\n", k+1)
		}
	}

	return nil
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	newIntegrator, err := experiment.NewRegistry().IntegratorFactory(cfg.Run.Integrator)
	if err != nil {
		return err
	}

	params := cfg.Params()
	bodies := scenario.Generate(cfg.GenerationParams(), params, cfg.Run.Seed)

	logger.Info("estimating lyapunov exponent", "preset", name, "satellites", cfg.Generation.NumBodies, "duration", cfg.Run.Duration)
	lambda := analysis.LyapunovExponent(params, newIntegrator, bodies, cfg.Run.Dt, cfg.Run.Duration, perturbation)

	fmt.Printf("largest lyapunov exponent: %.4f 1/s\n", lambda)
	if lambda > 0 {
		fmt.Printf("e-folding time: %.3f s\n", 1/lambda)
	}
	return nil
}
