package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/linkage/internal/analysis"
	"github.com/san-kum/linkage/internal/automation"
	"github.com/san-kum/linkage/internal/config"
	"github.com/san-kum/linkage/internal/dynamo"
	"github.com/san-kum/linkage/internal/experiment"
	"github.com/san-kum/linkage/internal/export"
	"github.com/san-kum/linkage/internal/gui"
	"github.com/san-kum/linkage/internal/optim"
	"github.com/san-kum/linkage/internal/physics"
	"github.com/san-kum/linkage/internal/render"
	"github.com/san-kum/linkage/internal/sim"
	"github.com/san-kum/linkage/internal/viz"
	"github.com/spf13/cobra"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// record runs cfg headless and returns the result and the recorded frames.
func record(ctx context.Context, cfg *config.Config, every int) (*experiment.Experiment, *sim.Result, *dynamo.Trajectory, error) {
	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	rec := sim.NewRecorder(every)
	exp.Simulator().AddObserver(rec)

	res, err := exp.Run(ctx)
	return exp, res, rec.Trajectory(), err
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	exp, res, traj, err := record(ctx, cfg, every)
	if err != nil && res == nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ticks\t%s\n", humanize.Comma(int64(res.Ticks)))
	fmt.Fprintf(w, "seed\t%d\n", cfg.Run.Seed)
	fmt.Fprintf(w, "elapsed\t%s\n", res.Elapsed.Round(time.Microsecond))
	fmt.Fprintf(w, "checksum\t%016x\n", res.Checksum)
	for _, m := range exp.Simulator().Metrics() {
		fmt.Fprintf(w, "%s\t%.4f\n", m.Name(), res.Metrics[m.Name()])
	}
	fmt.Fprintf(w, "final strain\t%.4f\n", exp.Simulator().State().MaxStrain())
	w.Flush()
	if err != nil {
		return err
	}

	if outDir != "" {
		if err := writeOutputs(outDir, cfg.Run.Seed, traj); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s frames to %s\n", humanize.Comma(int64(traj.Len())), outDir)
	}
	if svgFile != "" {
		if err := writeSVG(svgFile, cfg, exp.Simulator().State()); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	return nil
}

func writeSVG(path string, cfg *config.Config, st *dynamo.State) error {
	svg := export.NewSVG(cfg.Surface.Width, cfg.Surface.Height)
	render.New(svg).Render(st)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := svg.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeOutputs(dir string, seed int64, traj *dynamo.Trajectory) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(dir, "trajectory.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()
	if err := export.WriteCSV(csvFile, traj); err != nil {
		return err
	}

	jsonFile, err := os.Create(filepath.Join(dir, "run.json"))
	if err != nil {
		return err
	}
	defer jsonFile.Close()
	return export.WriteJSON(jsonFile, export.NewRun(seed, traj))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// log lines would tear the alt screen
	exp, err := experiment.New(cfg, nil)
	if err != nil {
		return err
	}
	rebuild := func() (*dynamo.State, error) { return experiment.BuildState(cfg) }
	m := viz.NewModel(exp.Simulator(), rebuild, cfg.Surface.Width, cfg.Surface.Height, viz.Options{
		FPS:   cfg.Run.FPS,
		Title: "linkage " + presetName(),
	})
	return viz.Run(m)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return err
	}
	rebuild := func() (*dynamo.State, error) { return experiment.BuildState(cfg) }
	return gui.Run(exp.Simulator(), rebuild, int(cfg.Surface.Width), int(cfg.Surface.Height), cfg.Run.FPS)
}

func presetName() string {
	if preset == "" {
		return "reference"
	}
	return preset
}

func parseAxis(s string) (dynamo.Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return dynamo.AxisX, nil
	case "y":
		return dynamo.AxisY, nil
	}
	return 0, fmt.Errorf("unknown axis %q (want x or y)", s)
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ax, err := parseAxis(axis)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return err
	}
	rec := sim.NewRecorder(1)
	strain := &strainTrace{}
	exp.Simulator().AddObserver(rec)
	exp.Simulator().AddObserver(strain)

	ctx, cancel := signalContext()
	defer cancel()
	if _, err := exp.Run(ctx); err != nil {
		return err
	}

	data := strain.values
	caption := "max stick strain"
	if !showStrain {
		data = rec.Trajectory().Series(pointIdx, ax)
		caption = fmt.Sprintf("point %d %s", pointIdx, strings.ToLower(axis))
	}
	if len(data) == 0 {
		return fmt.Errorf("no data for point %d", pointIdx)
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()
	fmt.Println(analysis.PathToASCII(rec.Trajectory(), pointIdx, cfg.Surface.Width, cfg.Surface.Height, 60, 18))
	return nil
}

type strainTrace struct {
	values []float64
}

func (s *strainTrace) OnTick(st *dynamo.State) { s.values = append(s.values, st.MaxStrain()) }

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ax, err := parseAxis(axis)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	exp, _, traj, err := record(ctx, cfg, 1)
	if err != nil {
		return err
	}
	series := traj.Series(pointIdx, ax)

	bins, err := analysis.Spectrum(series, float64(cfg.Run.FPS))
	if err != nil {
		return err
	}
	// the low quarter of the spectrum holds everything a linkage this size does
	var power []float64
	for _, b := range bins[1 : len(bins)/4+1] {
		power = append(power, b.Power)
	}
	if len(power) == 0 {
		return fmt.Errorf("%d ticks is too short to analyze", len(series))
	}

	fmt.Printf("frequency analysis: point %d %s, %s ticks at %d fps\n\n", pointIdx, axis, humanize.Comma(int64(len(series))), cfg.Run.FPS)
	graph := asciigraph.Plot(power,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, err := analysis.DominantFrequency(series, float64(cfg.Run.FPS))
	if err != nil {
		return err
	}
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	if period := physics.Period(exp.Simulator().State().Engine); period > 0 {
		fmt.Printf("engine period: %.1f ticks (%.3f hz)\n", period, float64(cfg.Run.FPS)/period)
	}

	// a neighbouring seed shows how sensitive the linkage is to the kick
	twin := *cfg
	twin.Run.Seed = cfg.Run.Seed + 1
	_, _, other, err := record(ctx, &twin, 1)
	if err != nil {
		return err
	}
	sep := analysis.Separation(traj, other)
	fmt.Printf("seed divergence rate: %.4f /tick\n", analysis.LyapunovEstimate(sep, 1))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	_, _, traj, err := record(ctx, cfg, every)
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		return export.WriteCSV(os.Stdout, traj)
	case "json":
		return export.WriteJSON(os.Stdout, export.NewRun(cfg.Run.Seed, traj))
	default:
		return fmt.Errorf("unknown format %q (want csv or json)", format)
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if seedCount < 1 {
		return fmt.Errorf("--seeds must be at least 1")
	}
	seeds := make([]int64, seedCount)
	for i := range seeds {
		seeds[i] = cfg.Run.Seed + int64(i)
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	results, err := sim.Sweep(ctx, seeds, parallel, cfg.Run.Ticks, experiment.Factory(cfg, logger))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tTICKS\tMAX STRAIN\tKINETIC\tCONTAINED\tCHECKSUM\tSTATUS")
	failed := 0
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
			failed++
		}
		fmt.Fprintf(w, "%d\t%s\t%.4f\t%.3f\t%.2f\t%016x\t%s\n",
			r.Seed,
			humanize.Comma(int64(r.Ticks)),
			r.Metrics["max_strain"],
			r.Metrics["kinetic_energy"],
			r.Metrics["containment"],
			r.Checksum,
			status,
		)
	}
	w.Flush()

	total := uint64(len(results)) * uint64(cfg.Run.Ticks)
	fmt.Printf("\n%s ticks across %d seeds in %s, %d failed\n", humanize.Comma(int64(total)), len(results), time.Since(start).Round(time.Millisecond), failed)
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(tuneParams))
	ranges := make([][]float64, 0, len(tuneParams))
	for _, p := range tuneParams {
		name, values, err := parseParam(p)
		if err != nil {
			return err
		}
		// unknown names fail here, before anything runs
		if err := cfg.SetParam(name, values[0]); err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	ctx, cancel := signalContext()
	defer cancel()

	build := func(params map[string]float64) (optim.Runner, error) {
		c := *cfg
		for k, v := range params {
			if err := c.SetParam(k, v); err != nil {
				return nil, err
			}
		}
		exp, err := experiment.New(&c, nil, "max_strain")
		if err != nil {
			return nil, err
		}
		return exp, nil
	}

	best, value, trials, err := optim.NewGridSearch(names, ranges).Search(ctx, build, "max_strain")
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMAX STRAIN\n", strings.ToUpper(strings.Join(names, "\t")))
	for _, t := range trials {
		cols := make([]string, len(names))
		for i, n := range names {
			cols[i] = strconv.FormatFloat(t.Params[n], 'g', -1, 64)
		}
		val := fmt.Sprintf("%.4f", t.Value)
		if t.Err != nil {
			val = t.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\n", strings.Join(cols, "\t"), val)
	}
	w.Flush()

	if best == nil {
		return fmt.Errorf("no parameter combination completed")
	}
	fmt.Printf("\nbest: %v (max strain %.4f)\n", best, value)
	return nil
}

// parseParam reads "name=v1,v2,..." or "name=lo:hi:n".
func parseParam(s string) (string, []float64, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("bad --param %q (want name=v1,v2,... or name=lo:hi:n)", s)
	}
	if parts := strings.Split(list, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return "", nil, fmt.Errorf("bad --param range %q", s)
		}
		values, err := automation.Linspace(lo, hi, n)
		return name, values, err
	}
	var values []float64
	for _, f := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("bad --param %q: %w", s, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	results, runErr := automation.RunScenario(ctx, sc, logger)

	if sc.Name != "" {
		fmt.Printf("%s\n", sc.Name)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPRESET\tTICKS\tFRAMES\tMAX STRAIN\tKINETIC\tCHECKSUM")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.4f\t%.3f\t%016x\n",
			r.Step,
			r.Preset,
			humanize.Comma(int64(r.Ticks)),
			r.Frames,
			r.Metrics["max_strain"],
			r.Metrics["kinetic_energy"],
			r.Checksum,
		)
	}
	w.Flush()
	return runErr
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGRAVITY\tFRICTION\tBOUNCE\tITERATIONS\tPERTURB")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%d\t%g\n",
			name,
			cfg.Physics.Gravity,
			cfg.Physics.Friction,
			cfg.Physics.Bounce,
			cfg.Physics.Iterations,
			cfg.Scene.Perturb,
		)
	}
	return w.Flush()
}
