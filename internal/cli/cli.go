package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/handiism/conception-songs/internal/billboard"
	"github.com/handiism/conception-songs/internal/clock"
	"github.com/handiism/conception-songs/internal/config"
	"github.com/handiism/conception-songs/internal/http"
	ioutils "github.com/handiism/conception-songs/internal/io"
	"github.com/handiism/conception-songs/internal/report"
	"github.com/handiism/conception-songs/internal/search"
)

// ProgramName is used in usage and error messages.
const ProgramName = "conception-songs"

// Exit codes.
const (
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) *ExitError {
	return &ExitError{
		Code:    ExitUsage,
		Message: fmt.Sprintf("Error: %v\nRun '%s --help' for usage.", err, ProgramName),
		Err:     err,
	}
}

// Env holds the process-level dependencies of Run. Zero fields fall back to
// production values, except Stdout and Stderr which are required.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer

	// Clock supplies today's date and rate-limit waits. Defaults to clock.Real().
	Clock clock.Clock

	// Getter performs API requests. Defaults to an internal/http Client
	// built from the parsed settings.
	Getter billboard.Getter
}

// Parse processes command-line arguments. It returns the populated settings
// and the birth date argument, or reports that help was printed.
//
// Errors are always *ExitError with Code ExitUsage.
func Parse(args []string, output io.Writer) (settings *config.Settings, birthDate string, helped bool, err error) {
	flagSet := pflag.NewFlagSet(ProgramName, pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.SortFlags = false

	flagSet.Usage = func() {
		fmt.Fprintf(output, `%[1]s - the Billboard Hot 100 singles around your estimated conception date.

Given a birth date, %[1]s estimates a date of conception (280 days earlier)
and lists the singles charting in the week around it.

Usage:
  %[1]s [options] DATE APIKEY

Arguments:
  DATE    birth date in ISO 8601 format, YYYY-MM-DD (1959-02-13 to today)
  APIKEY  your Billboard developer API key

Options:
`, ProgramName)
		flagSet.PrintDefaults()
	}

	settings = config.DefaultSettings()
	settings.BindFlags(flagSet)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, "", true, nil
		}
		return nil, "", false, usageError(err)
	}

	switch flagSet.NArg() {
	case 0:
		return nil, "", false, usageError(errors.New("missing required arguments: DATE APIKEY"))
	case 1:
		return nil, "", false, usageError(errors.New("missing required argument: APIKEY"))
	case 2:
	default:
		return nil, "", false, usageError(fmt.Errorf("unexpected arguments: %v", flagSet.Args()[2:]))
	}

	if err := settings.Validate(); err != nil {
		return nil, "", false, usageError(err)
	}

	settings.APIKey = flagSet.Arg(1)
	return settings, flagSet.Arg(0), false, nil
}

// Run executes one conception-songs invocation: parse arguments, validate
// the birth date, fetch the chart window, render and emit the result.
//
// Nothing touches the network until the arguments and the date are valid.
func Run(ctx context.Context, args []string, env Env) error {
	settings, birthDate, helped, err := Parse(args, env.Stderr)
	if err != nil || helped {
		return err
	}

	logger := NewLogger(env.Stderr, settings)
	logger.Debug("Arguments parsed", "date", birthDate, "format", settings.Format, "number", settings.Limit())

	clk := env.Clock
	if clk == nil {
		clk = clock.Real()
	}
	getter := env.Getter
	if getter == nil {
		getter = http.NewClient(settings.Timeout, settings.UserAgent)
	}

	manager := search.NewManager(settings, getter, clk, LogProgress(logger))

	birth, err := manager.ParseBirthDate(birthDate)
	if err != nil {
		return usageError(err)
	}

	rep, err := manager.Lookup(ctx, birth)
	if err != nil {
		if ctx.Err() != nil {
			return &ExitError{Code: ExitInterrupted, Message: "Interrupted, cancelling...", Err: err}
		}
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("Error fetching charts: %v", err), Err: err}
	}

	out, err := report.NewRenderer(settings.ReportFormat()).Render(rep)
	if err != nil {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("Error rendering output: %v", err), Err: err}
	}

	if settings.Output != "" {
		if err := ioutils.WriteFile(ctx, settings.Output, []byte(out)); err != nil {
			return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("Error writing output: %v", err), Err: err}
		}
		logger.Info("Output written", "path", settings.Output, "songs", len(rep.Songs))
		return nil
	}

	_, err = io.WriteString(env.Stdout, out)
	return err
}

// NewLogger builds the stderr logger for the given settings. Verbose
// output enables debug level; otherwise only warnings and errors show.
func NewLogger(w io.Writer, settings *config.Settings) *slog.Logger {
	level := slog.LevelWarn
	if settings.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if settings.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// LogProgress adapts search progress events onto logger.
//
// Error events are not logged: the error itself is returned to main,
// which prints it once.
func LogProgress(logger *slog.Logger) func(search.ProgressEvent) {
	return func(event search.ProgressEvent) {
		switch event.Level {
		case search.LevelError:
			return
		case search.LevelWarning:
			logger.Warn(event.Message)
		case search.LevelVerbose:
			if event.Page > 0 {
				logger.Debug(event.Message, "page", event.Page, "pages", event.TotalPages)
				return
			}
			logger.Debug(event.Message)
		default:
			logger.Info(event.Message)
		}
	}
}
