package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/joltage/cache"
	"github.com/katalvlaran/joltage/internal/config"
	"github.com/katalvlaran/joltage/internal/metrics"
	"github.com/katalvlaran/joltage/internal/printer"
	"github.com/katalvlaran/joltage/solver"
)

// ErrMachinesFailed is returned when at least one machine has no answer.
var ErrMachinesFailed = errors.New("one or more machines failed")

// solveFlags holds the raw flag values of the solve command.
type solveFlags struct {
	configPath    string
	part          string
	workers       int
	format        string
	cacheDSN      string
	metricsFile   string
	maxCandidates int
	logLevel      string
	verbose       bool
}

func newSolveCmd() *cobra.Command {
	f := &solveFlags{}
	cmd := &cobra.Command{
		Use:   "solve [FILE|-]",
		Short: "Solve every machine in FILE (or stdin)",
		Long: `Solve every machine of the input and print the summed minimum presses.

Lines that fail to parse or machines without a solution are reported and
skipped; the exit status is 1 if any machine failed.

Examples:
  # Part 2 on a file
  joltage solve input.txt

  # Part 1 from stdin, as a table
  cat input.txt | joltage solve --part 1 --format table

  # Cache results in Redis and dump metrics
  joltage solve input.txt --cache redis://localhost:6379/0 --metrics-file joltage.prom`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args, f)
		},
	}

	bindSolveFlags(cmd.Flags(), f)

	return cmd
}

// bindSolveFlags registers the solve flags on fl.
func bindSolveFlags(fl *pflag.FlagSet, f *solveFlags) {
	fl.StringVarP(&f.configPath, "config", "c", "", "Path to joltage.yaml")
	fl.StringVarP(&f.part, "part", "p", "2", "Sub-problem: 1 (indicator) or 2 (joltage)")
	fl.IntVarP(&f.workers, "workers", "w", 0, "Machines solved in parallel (0 = GOMAXPROCS)")
	fl.StringVarP(&f.format, "format", "o", config.FormatPlain, "Output format: plain, table or json")
	fl.StringVar(&f.cacheDSN, "cache", "", "Result cache: memory or redis://host:port/db")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
	fl.IntVar(&f.maxCandidates, "max-candidates", 0, "Abort a machine whose candidate set exceeds N (0 = unlimited)")
	fl.StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "Shorthand for --log-level=debug")
}

// resolveConfig loads the config file, if any, and applies changed flags.
func resolveConfig(cmd *cobra.Command, f *solveFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fl := cmd.Flags()
	if fl.Changed("part") {
		p, err := solver.ParsePart(f.part)
		if err != nil {
			return nil, err
		}
		cfg.Part = int(p)
	}
	if fl.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fl.Changed("format") {
		cfg.Format = f.format
	}
	if fl.Changed("cache") {
		cfg.Cache.DSN = f.cacheDSN
	}
	if fl.Changed("metrics-file") {
		cfg.Metrics.File = f.metricsFile
	}
	if fl.Changed("max-candidates") {
		cfg.MaxCandidates = f.maxCandidates
	}
	if fl.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if f.verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(w)
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	l.SetLevel(level)
	if cfg.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	return l, nil
}

func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}

	return os.Open(args[0])
}

func runSolve(cmd *cobra.Command, args []string, f *solveFlags) error {
	errOut := cmd.ErrOrStderr()

	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		return printer.Error(errOut, "Invalid configuration", err.Error())
	}
	base, err := newLogger(errOut, cfg)
	if err != nil {
		return printer.Error(errOut, "Invalid log level", err.Error())
	}
	log := base.WithField("run_id", uuid.NewString())

	in, err := openInput(cmd, args)
	if err != nil {
		return printer.Error(errOut, "Cannot read input", err.Error())
	}
	defer in.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []solver.Option{
		solver.WithPart(solver.Part(cfg.Part)),
		solver.WithWorkers(cfg.Workers),
		solver.WithMaxCandidates(cfg.MaxCandidates),
		solver.WithLogger(log),
	}

	if cfg.Cache.DSN != "" {
		store, err := cache.Open(cfg.Cache.DSN, cfg.Cache.Namespace)
		if err != nil {
			return printer.Error(errOut, "Cannot open cache", err.Error())
		}
		defer store.Close()
		if r, ok := store.(*cache.Redis); ok {
			r.WithTTL(cfg.Cache.TTL)
		}
		opts = append(opts, solver.WithCache(store))
	}

	var collector *metrics.Collector
	if cfg.Metrics.File != "" {
		collector = metrics.New()
		opts = append(opts, solver.WithRecorder(collector))
	}

	log.WithFields(logrus.Fields{"part": solver.Part(cfg.Part).String(), "workers": cfg.Workers}).Debug("solving")
	rep, err := solver.SolveText(ctx, in, opts...)
	if rep == nil {
		return printer.Error(errOut, "Solve failed", err.Error())
	}

	if perr := printer.Report(cmd.OutOrStdout(), errOut, rep, cfg.Format); perr != nil {
		return printer.Error(errOut, "Cannot print report", perr.Error())
	}
	if collector != nil {
		if werr := collector.WriteTextfile(cfg.Metrics.File); werr != nil {
			log.WithError(werr).Warn("failed to write metrics")
		}
	}
	if err != nil {
		return printer.Error(errOut, "Solve incomplete", err.Error())
	}
	if failed := len(rep.Failed()); failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrMachinesFailed, failed, len(rep.Outcomes))
	}

	return nil
}
