package main

import (
	"fmt"
	"os"

	"github.com/san-kum/linkage/internal/config"
	"github.com/san-kum/linkage/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logLevel   string
	logFormat  string
	configFile string
	preset     string
	ticks      int
	seed       int64
	frameRate  int
	outDir     string
	svgFile    string
	pointIdx   int
	axis       string
	format     string
	seedCount  int
	parallel   int
	every      int
	showStrain bool
	tuneParams []string

	logger *zap.Logger
)

// main registers the commands and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "linkage",
		Short:         "verlet stick-and-point linkage simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logLevel, logFormat)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.FormatConsole, "log format (console, json)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and print a summary",
		RunE:  runSimulation,
	}
	sceneFlags(runCmd)
	runCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	runCmd.Flags().StringVar(&outDir, "out", "", "directory for trajectory.csv and run.json")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "write the final frame as SVG")
	runCmd.Flags().IntVar(&every, "every", 1, "record every nth tick")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate in the terminal",
		RunE:  runLive,
	}
	sceneFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frames per second")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "animate in a window",
		RunE:  runGUI,
	}
	sceneFlags(guiCmd)
	guiCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frames per second")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot a point coordinate (or max strain) over time",
		RunE:  plotRun,
	}
	sceneFlags(plotCmd)
	seriesFlags(plotCmd)
	plotCmd.Flags().BoolVar(&showStrain, "strain", false, "plot max stick strain instead of a coordinate")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "frequency and divergence analysis",
		RunE:  analyzeRun,
	}
	sceneFlags(analyzeCmd)
	seriesFlags(analyzeCmd)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "write the trajectory to stdout",
		RunE:  exportRun,
	}
	sceneFlags(exportCmd)
	exportCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	exportCmd.Flags().StringVar(&format, "format", "csv", "output format (csv, json)")
	exportCmd.Flags().IntVar(&every, "every", 1, "record every nth tick")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run many seeds in parallel",
		RunE:  runSweep,
	}
	sceneFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	sweepCmd.Flags().IntVar(&seedCount, "seeds", 16, "number of seeds, starting at --seed")
	sweepCmd.Flags().IntVar(&parallel, "parallel", 4, "simultaneous simulations")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search physics parameters for the lowest peak strain",
		RunE:  runTune,
	}
	sceneFlags(tuneCmd)
	tuneCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	tuneCmd.Flags().StringArrayVar(&tuneParams, "param", []string{"iterations=1,3,5,8"}, "name=v1,v2,... or name=lo:hi:n (repeatable)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, plotCmd, analyzeCmd, exportCmd, sweepCmd, tuneCmd, scenarioCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func sceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "yaml configuration file")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset (see 'linkage presets')")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed for the initial perturbation")
}

func seriesFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	cmd.Flags().IntVar(&pointIdx, "point", 0, "point index")
	cmd.Flags().StringVar(&axis, "axis", "x", "coordinate axis (x, y)")
}

// loadConfig layers the preset, then the config file, then explicitly set
// flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Run.Seed = seed
	}
	if flags.Changed("ticks") {
		cfg.Run.Ticks = ticks
	}
	if flags.Changed("fps") {
		cfg.Run.FPS = frameRate
	}
	return cfg, cfg.Validate()
}
