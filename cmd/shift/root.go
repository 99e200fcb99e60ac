package main

import (
	"context"
	"errors"
	"io"
	"strings"

	"shift/internal/batch"
	"shift/internal/config"
	"shift/internal/ctxlog"
	"shift/internal/rec"
	"shift/internal/shift"
	"shift/internal/state"

	"github.com/spf13/cobra"
)

const version = "v1.0.0"

var errNoInput = errors.New("no input: pass an alphanumeric string or pipe one in")

type rootFlags struct {
	config        string
	positions     int
	rng           []int
	backwards     bool
	ignoreNumbers bool
	ignoreLetters bool
	lines         bool
	workers       int
	profile       string
	stateFile     string
}

// env is shared by every command of one invocation.
type env struct {
	term   *terminal
	flags  rootFlags
	cfg    config.Config
	ctx    context.Context
	logEnd io.Closer
}

func newEnv(term *terminal) *env {
	return &env{term: term}
}

// execute runs cmd and releases the log file whether or not the command failed.
func (e *env) execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil && e.ctx != nil {
		ctxlog.Get(e.ctx).Error("command failed", "error", err)
	}
	if terr := e.teardown(); terr != nil {
		return errors.Join(err, terr)
	}
	return err
}

func newRootCmd(e *env) *cobra.Command {
	term := e.term

	cmd := &cobra.Command{
		Use:   "shift [alpha...]",
		Short: "Shift the letters and digits of a string",
		Long: "shift moves every letter of the input a number of positions along the alphabet and every digit\n" +
			"along the integers, or along a cyclic range given with --range. Input words are joined without\n" +
			"separator. With no arguments the input is read from stdin. Use -- before input that collides\n" +
			"with a subcommand name.",
		Example: "  shift abc123 -p 2\n" +
			"  shift zab012 --backwards\n" +
			"  shift 1a2b -r 1,2,3,4,5 -p 7\n" +
			"  echo abcde | shift",
		Version:           version,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: e.setup,
		RunE:              e.runShift,
	}
	cmd.SetVersionTemplate("shift {{.Version}}\n")
	cmd.SetIn(term.in)
	cmd.SetOut(term.out)

	f := cmd.PersistentFlags()
	f.StringVar(&e.flags.config, "config", "shift.yaml", "config file (optional unless set explicitly)")
	f.IntSliceVarP(&e.flags.rng, "range", "r", nil, "a cyclic range of numbers, comma separated")
	f.StringVar(&e.flags.profile, "profile", "", "persist the shifter state under this profile")
	f.StringVar(&e.flags.stateFile, "state-file", "", "state database file (overrides config)")

	lf := cmd.Flags()
	lf.IntVarP(&e.flags.positions, "positions", "p", 1, "the number of positions to shift")
	lf.BoolVar(&e.flags.backwards, "backwards", false, "performs a backward shift")
	lf.BoolVar(&e.flags.ignoreNumbers, "ignore-numbers", false, "ignores every char that is a digit")
	lf.BoolVar(&e.flags.ignoreLetters, "ignore-letters", false, "ignores every char that is a letter")
	lf.BoolVar(&e.flags.lines, "lines", false, "shift every input line independently and concurrently")
	lf.IntVar(&e.flags.workers, "workers", 0, "worker count for --lines (0 = GOMAXPROCS)")

	cmd.AddCommand(
		newStepCmd(e, "next", true),
		newStepCmd(e, "previous", false),
		newStateCmd(e),
		newServeCmd(e),
	)

	return cmd
}

// setup loads the config file, applies flag overrides and installs the logger.
func (e *env) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	flags := cmd.Flags()

	cfg, err := config.Load(ctx, e.flags.config, !flags.Changed("config"))
	if err != nil {
		return err
	}

	if flags.Changed("positions") {
		cfg.Positions = e.flags.positions
	}
	if flags.Changed("range") {
		cfg.Range = e.flags.rng
	}
	if flags.Changed("state-file") {
		cfg.StateFile = e.flags.stateFile
	}
	cfg.IgnoreNumbers = cfg.IgnoreNumbers || e.flags.ignoreNumbers
	cfg.IgnoreLetters = cfg.IgnoreLetters || e.flags.ignoreLetters

	if _, err := cfg.NumericRange(); err != nil {
		return err
	}
	e.cfg = cfg

	ctx, closer, err := ctxlog.Setup(ctx, "shift", cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}
	e.logEnd = closer
	e.ctx = ctxlog.With(ctx, "command", cmd.Name())
	cmd.SetContext(e.ctx)

	return nil
}

func (e *env) teardown() error {
	if e.logEnd == nil {
		return nil
	}
	closer := e.logEnd
	e.logEnd = nil
	return ctxlog.Close(e.ctx, "log file", closer)
}

func (e *env) direction() shift.Direction {
	if e.flags.backwards {
		return shift.Backward
	}
	return shift.Forward
}

func (e *env) input(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, ""), nil
	}
	if !e.term.piped() {
		return "", errNoInput
	}
	return e.term.readAll()
}

func (e *env) runShift(cmd *cobra.Command, args []string) (err error) {
	defer rec.Error(&err)

	ctx := cmd.Context()
	logger := ctxlog.Get(ctx)

	text, err := e.input(args)
	if err != nil {
		return err
	}

	rng, err := e.cfg.NumericRange()
	if err != nil {
		return err
	}
	opts := e.cfg.Options(e.direction())

	logger.Info("shifting", "positions", opts.Positions, "direction", opts.Direction.String(), "range", rng.Values(), "lines", e.flags.lines)

	var result string
	if e.flags.lines {
		out, err := batch.Lines(ctx, strings.Split(text, "\n"), opts, rng, e.flags.workers)
		if err != nil {
			return err
		}
		result = strings.Join(out, "\n")
	} else {
		result, err = e.shiftText(ctx, text, opts, rng)
		if err != nil {
			return err
		}
	}

	return e.term.write(result)
}

// shiftText shifts text with a single Shifter, continuing from and saving to
// the profile state when a profile is selected.
func (e *env) shiftText(ctx context.Context, text string, opts shift.Options, rng *shift.Range) (string, error) {
	s := shift.New(rng)
	if e.flags.profile == "" {
		return s.Transform(text, opts)
	}

	var result string
	err := e.withStore(ctx, func(store *state.Store) error {
		st, _, err := store.Load(e.flags.profile)
		if err != nil {
			return err
		}
		if err := s.Restore(st); err != nil {
			return err
		}

		result, err = s.Transform(text, opts)
		if err != nil {
			return err
		}
		return store.Save(e.flags.profile, s.State())
	})
	return result, err
}

func (e *env) withStore(ctx context.Context, f func(*state.Store) error) error {
	store, err := state.Open(e.cfg.StateFile)
	if err != nil {
		return err
	}
	defer ctxlog.Close(ctx, "state", store)

	return f(store)
}
