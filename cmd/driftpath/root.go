package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/driftpath/config"
	"github.com/katalvlaran/driftpath/grid"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	in          io.Reader
	out, errOut io.Writer

	configPath string
	logLevel   string
	trace      bool

	cfg      config.Config
	logger   *slog.Logger
	shutdown func(context.Context) error
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "driftpath",
		Short:         "Minimum-time routes through grids of drifting obstacles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	pf.BoolVar(&a.trace, "trace", false, "print OpenTelemetry spans to stderr")

	root.AddCommand(
		newSolveCmd(a),
		newFrameCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)

	return root
}

// setup loads the config, applies flag overrides and builds the logger and
// the optional tracer.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.logger = newLogger(a.errOut, cfg.Logging)

	if a.trace {
		shutdown, err := setupTracing(a.errOut)
		if err != nil {
			return err
		}
		a.shutdown = shutdown
	}
	a.logger.Debug("cli_start",
		slog.String("command", cmd.Name()),
		slog.String("config", a.configPath),
		slog.Bool("trace", a.trace),
	)

	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}
	if err := a.shutdown(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("flush traces: %w", err)
	}

	return nil
}

// newLogger picks a text handler for terminals and JSON otherwise, unless
// the format is forced by config.
func newLogger(w io.Writer, lc config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lc.SlogLevel()}
	format := lc.Format
	if format == "auto" {
		format = "json"
		if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			format = "text"
		}
	}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}

	return slog.New(slog.NewJSONHandler(w, opts))
}

// readGrid parses the grid at path, or standard input when path is empty
// or "-".
func (a *app) readGrid(path string) (*grid.Grid, error) {
	if path == "" || path == "-" {
		return grid.Parse(a.in)
	}

	return grid.ParseFile(path)
}

// overlay marks cell p of a rendered frame with r.
func overlay(frame string, width int, p grid.Position, r rune) string {
	lines := strings.Split(strings.TrimSuffix(frame, "\n"), "\n")
	if p.Y < 0 || p.Y >= len(lines) {
		return frame
	}
	row := []rune(lines[p.Y])
	if p.X < 0 || p.X >= len(row) || len(row) != width {
		return frame
	}
	row[p.X] = r
	lines[p.Y] = string(row)

	return strings.Join(lines, "\n") + "\n"
}
