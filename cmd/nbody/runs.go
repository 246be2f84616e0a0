package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/experiment"
	"github.com/san-kum/nbody/internal/export"
	"github.com/san-kum/nbody/internal/sim"
	"github.com/san-kum/nbody/internal/storage"
	"github.com/san-kum/nbody/internal/viz"
	"github.com/spf13/cobra"
)

const maxDistancePlots = 4

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tBODIES\tDURATION\tDT\tINTEG\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.4fs\t%s\t%.2e\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.NumBodies,
			run.Duration,
			run.Dt,
			run.Integrator,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []sim.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(samples))

	energy := make([]float64, len(samples))
	momentum := make([]float64, len(samples))
	for i, s := range samples {
		energy[i] = s.Energy
		momentum[i] = s.Momentum
	}
	plot(energy, "total energy")
	plot(momentum, "|total momentum|")

	numDist := min(len(samples[0].Distances), maxDistancePlots)
	for k := 0; k < numDist; k++ {
		data := make([]float64, len(samples))
		for i, s := range samples {
			if k < len(s.Distances) {
				data[i] = s.Distances[k]
			}
		}
		plot(data, fmt.Sprintf("distance of body %d to body 0", k+1))
	}

	return nil
}

func plot(data []float64, caption string) {
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()
}

func output() (io.WriteCloser, error) {
	if outPath == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outPath)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()

	return storage.ExportJSON(w, *meta, samples)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := storage.WriteSamplesCSV(w, samples); err != nil {
		return err
	}
	if outPath != "" {
		logger.Info("exported", "samples", len(samples), "path", outPath)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSATELLITES\tINCLINATION\tRESTITUTION\tDT\tDURATION")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%.4f\t%.1fs\n",
			name,
			cfg.Generation.NumBodies,
			cfg.Generation.MaxInclination,
			cfg.Physics.Restitution,
			cfg.Run.Dt,
			cfg.Run.Duration,
		)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "nbody.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return err
		}
		cfg = p
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	logger.Info("wrote config", "path", path)
	return nil
}

const svgSize = 800

func exportSVG(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	energy := make([]float64, len(samples))
	for i, s := range samples {
		energy[i] = s.Energy
	}

	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()

	return export.SeriesToSVG(w, energy, svgSize, svgSize/2, string(viz.CurrentTheme.Primary))
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}
	exp.SetLogger(logger)

	logger.Info("running simulation", "preset", name, "satellites", cfg.Generation.NumBodies, "seed", cfg.Run.Seed)
	if _, err := exp.Run(cmd.Context()); err != nil {
		return err
	}

	cam := viz.NewCamera()
	cam.Target = cfg.Generation.CentralPosition
	cam.Fit(cfg.Generation.MaxOrbitRadius, svgSize, svgSize)

	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()

	return export.BodiesToSVG(w, exp.Bodies(), cam, svgSize, svgSize)
}
