package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/algviz/internal/alg"
	"github.com/san-kum/algviz/internal/config"
	"github.com/san-kum/algviz/internal/export"
	"github.com/san-kum/algviz/internal/gui"
	"github.com/san-kum/algviz/internal/logger"
	"github.com/san-kum/algviz/internal/repl"
	"github.com/san-kum/algviz/internal/stepper"
	"github.com/san-kum/algviz/internal/storage"
	"github.com/san-kum/algviz/internal/store"
	"github.com/san-kum/algviz/internal/viz"
)

var (
	configFile string
	logLevel   string
	logFile    string

	input     string
	query     string
	algorithm string
	delay     float64
	preset    string
	theme     string

	outDir   string
	jsonOut  bool
	jsonPath string
)

// main registers the commands; with no subcommand the terminal view is
// started. It exits with status 1 if the command fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := &cobra.Command{
		Use:           "algviz",
		Short:         "step-through string algorithm visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "algviz.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	addRunFlags(rootCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "step through an algorithm in the terminal",
		RunE:  runTUI,
	}
	addRunFlags(tuiCmd)

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "pick a preset and tune it before stepping",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(cmd, true)
			if err != nil {
				return err
			}
			return viz.RunInteractive(cmd.Context(), cfg)
		},
	}
	addRunFlags(menuCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "step through an algorithm in a desktop window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(cmd, false)
			if err != nil {
				return err
			}
			return gui.Run(cmd.Context(), gui.Options{Params: params(cfg), Delay: cfg.Delay})
		},
	}
	addRunFlags(guiCmd)

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "step through an algorithm from a command prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(cmd, false)
			if err != nil {
				return err
			}
			return repl.Run(cmd.Context(), repl.Options{Params: params(cfg), Delay: cfg.Delay})
		},
	}
	addRunFlags(replCmd)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "render every state to SVG files",
		RunE:  exportFrames,
	}
	addRunFlags(exportCmd)
	exportCmd.Flags().StringVar(&outDir, "out", "", "run directory root (default from config)")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "print the state table and plot the algorithm series",
		RunE:  traceStates,
	}
	addRunFlags(traceCmd)
	traceCmd.Flags().BoolVar(&jsonOut, "json", false, "print the trace as JSON")
	traceCmd.Flags().StringVar(&jsonPath, "json-file", "", "write the trace as JSON to this file")

	presetsCmd := &cobra.Command{
		Use:   "presets [algorithm]",
		Short: "list named inputs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.Algorithms()
			if len(args) > 0 {
				names = args
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ALGORITHM\tPRESET\tINPUT\tQUERY")
			for _, name := range names {
				for _, p := range config.ListPresets(name) {
					c := config.GetPreset(name, p)
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, p, c.Input, c.Query)
				}
			}
			return w.Flush()
		},
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list exported runs",
		RunE:  listRuns,
	}
	runsCmd.Flags().StringVar(&outDir, "out", "", "run directory root (default from config)")

	rootCmd.AddCommand(tuiCmd, menuCmd, guiCmd, replCmd, exportCmd, traceCmd, presetsCmd, runsCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&input, "string", "s", "", "input text")
	cmd.Flags().StringVarP(&query, "query", "q", "", "pattern for backward search")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "algorithm ("+strings.Join(alg.NewRegistry().Names(), ", ")+")")
	cmd.Flags().Float64Var(&delay, "delay", 0, "autoplay delay in seconds")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "named input")
	cmd.Flags().StringVar(&theme, "theme", "", "terminal theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
}

// resolve layers config file, environment, preset and flags, in that order,
// and sets up logging. Terminal front-ends log to a file, or nowhere, since
// stdout is the screen.
func resolve(cmd *cobra.Command, terminal bool) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	if preset != "" {
		var p *config.Config
		if cmd.Flags().Changed("algorithm") {
			p = config.GetPreset(algorithm, preset)
		} else {
			p = config.FindPreset(preset)
		}
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Algorithm))
		}
		cfg.Apply(p)
	}

	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		cfg.Algorithm = algorithm
	}
	if flags.Changed("string") {
		cfg.Input = input
	}
	if flags.Changed("query") {
		cfg.Query = query
	}
	if flags.Changed("delay") {
		cfg.Delay = delay
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := setupLogging(cfg, terminal); err != nil {
		return nil, err
	}
	logger.DebugKV(cmd.Context(), "config resolved",
		"algorithm", cfg.Algorithm, "input", cfg.Input, "query", cfg.Query, "delay", cfg.Delay)
	return cfg, nil
}

func setupLogging(cfg *config.Config, terminal bool) error {
	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("%w: unknown log level %q", config.ErrInvalidConfig, cfg.LogLevel)
	}
	logger.SetLevel(level)

	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logger.SetOutput(f)
	case terminal:
		logger.SetOutput(nopWriter{})
	}
	return nil
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func params(cfg *config.Config) stepper.Params {
	return stepper.Params{Algorithm: cfg.Algorithm, Input: cfg.Input, Query: cfg.Query}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd, true)
	if err != nil {
		return err
	}
	return viz.Run(cmd.Context(), viz.Options{Params: params(cfg), Delay: cfg.Delay, Theme: cfg.Theme})
}

func exportFrames(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd, false)
	if err != nil {
		return err
	}
	dir := cfg.ExportDir
	if outDir != "" {
		dir = outDir
	}

	st := storage.New(dir)
	if err := st.Init(); err != nil {
		return err
	}
	meta, err := export.Frames(cmd.Context(), st, params(cfg), export.NewReporter())
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", meta.ID)
	fmt.Printf("states: %d\n", meta.States)
	fmt.Printf("frames: %d\n", len(meta.Frames))
	fmt.Printf("dir: %s\n", st.RunDir(meta.ID))
	return nil
}

func traceStates(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd, false)
	if err != nil {
		return err
	}
	v, err := alg.NewRegistry().New(cfg.Algorithm, cfg.Input, cfg.Query)
	if err != nil {
		return err
	}
	data := store.Trace(v, cfg.Input, cfg.Query)

	if jsonPath != "" {
		if err := store.ExportJSON(jsonPath, data); err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", jsonPath)
		return nil
	}
	if jsonOut {
		return store.WriteJSON(os.Stdout, data)
	}

	fmt.Printf("algorithm: %s\n", data.Algorithm)
	fmt.Printf("input: %s\n", data.Input)
	if data.Query != "" {
		fmt.Printf("query: %s\n", data.Query)
	}
	fmt.Printf("states: %d (%d drawn)\n\n", len(data.States), data.Presentable())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATE\tOPS\tDESCRIPTION")
	for _, s := range data.States {
		mark := ""
		if !s.Presentable {
			mark = " (skipped)"
		}
		fmt.Fprintf(w, "%d\t%d\t%s%s\n", s.Index+1, s.Ops, s.Description, mark)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(data.Series) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(data.Series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(data.SeriesName),
		))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd, false)
	if err != nil {
		return err
	}
	dir := cfg.ExportDir
	if outDir != "" {
		dir = outDir
	}

	runs, err := storage.New(dir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tSTATES\tFRAMES\tINPUT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.States,
			len(run.Frames),
			run.Input,
		)
	}
	return w.Flush()
}
