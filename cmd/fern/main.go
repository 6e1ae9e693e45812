package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
	// Config file
	configFile string
	// Preset name
	preset string

	theme      string
	throughput int
	seed       int64
	width      int
	height     int
	frames     int
	frameRate  int
	autoStart  bool

	outFile string
	noSave  bool
	runs    int
	limit   int

	logger *log.Logger
)

// main registers commands and flags, runs the terminal UI when no
// subcommand is given, and exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "fern",
		Short:        "barnsley fern renderer",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fern", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "classic", "color theme")
	rootCmd.PersistentFlags().IntVar(&throughput, "throughput", 100, "points per frame")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	rootCmd.PersistentFlags().IntVar(&width, "width", 900, "canvas width")
	rootCmd.PersistentFlags().IntVar(&height, "height", 600, "canvas height")
	rootCmd.PersistentFlags().IntVar(&frames, "frames", 600, "frames to render headless")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", 60, "frame rate")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "draw the fern in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().BoolVar(&autoStart, "start", false, "start drawing when the welcome screen closes")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "draw the fern in a desktop window",
		RunE:  runWindow,
	}
	windowCmd.Flags().BoolVar(&autoStart, "start", false, "start drawing when the welcome screen closes")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render headless and save the run",
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVar(&outFile, "out", "", "also write the image to this png file")
	renderCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run in the data directory")
	renderCmd.Flags().IntVar(&runs, "runs", 1, "number of runs, seeded consecutively and rendered in parallel")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata and a preview",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "replay a run and export it as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output file (default <run_id>.svg)")

	statsCmd := &cobra.Command{
		Use:   "stats [run_id]",
		Short: "render and report metrics, dimension and density",
		Args:  cobra.MaximumNArgs(1),
		RunE:  statsRun,
	}
	statsCmd.Flags().IntVar(&limit, "points", 50000, "points kept for dimension estimate")

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes",
		RunE:  listThemes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(tuiCmd, windowCmd, renderCmd, listCmd, showCmd, exportSVGCmd, statsCmd, themesCmd, presetsCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger() error {
	level, err := log.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "fern",
		Level:           level,
		ReportTimestamp: true,
	})
	return nil
}
