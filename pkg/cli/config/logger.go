package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/secmon-lab/optsync/pkg/domain/types"
	"github.com/secmon-lab/optsync/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Logger holds CLI flags for the process-wide logger
type Logger struct {
	level      string
	format     string
	output     string
	stacktrace bool
	debug      bool
	silent     bool
}

// Flags returns CLI flags for logger configuration
func (x *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Aliases:     []string{"l"},
			Usage:       "Log level [debug|info|warn|error]",
			Category:    "Logging",
			Value:       "info",
			Sources:     cli.EnvVars("OPTSYNC_LOG_LEVEL"),
			Destination: &x.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format [console|json]",
			Category:    "Logging",
			Value:       "console",
			Sources:     cli.EnvVars("OPTSYNC_LOG_FORMAT"),
			Destination: &x.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output [stdout|stderr|<file path>]",
			Category:    "Logging",
			Value:       "stderr",
			Sources:     cli.EnvVars("OPTSYNC_LOG_OUTPUT"),
			Destination: &x.output,
		},
		&cli.BoolFlag{
			Name:        "log-stacktrace",
			Usage:       "Include source location in log records",
			Category:    "Logging",
			Sources:     cli.EnvVars("OPTSYNC_LOG_STACKTRACE"),
			Destination: &x.stacktrace,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "Verbose logging (same as --log-level debug)",
			Category:    "Logging",
			Destination: &x.debug,
		},
		&cli.BoolFlag{
			Name:        "silent",
			Usage:       "Only log errors, overrides --debug",
			Category:    "Logging",
			Destination: &x.silent,
		},
	}
}

func (x Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", x.level),
		slog.String("format", x.format),
		slog.String("output", x.output),
		slog.Bool("stacktrace", x.stacktrace),
		slog.Bool("debug", x.debug),
		slog.Bool("silent", x.silent),
	)
}

// Level resolves the effective log level
func (x *Logger) Level() (slog.Level, error) {
	switch {
	case x.silent:
		return slog.LevelError, nil
	case x.debug:
		return slog.LevelDebug, nil
	}

	levelMap := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	level, ok := levelMap[strings.ToLower(x.level)]
	if !ok {
		return 0, goerr.New("invalid log level", goerr.V("level", x.level))
	}
	return level, nil
}

// Configure builds the logger, installs it as the default and returns a
// function releasing the output
func (x *Logger) Configure() (func(), error) {
	closer := func() {}

	level, err := x.Level()
	if err != nil {
		return closer, err
	}

	var w io.Writer
	switch x.output {
	case "stdout", "-":
		w = os.Stdout
	case "stderr", "":
		w = os.Stderr
	default:
		// #nosec G304 - path is expected to be provided by CLI argument
		f, err := os.OpenFile(x.output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return closer, goerr.Wrap(err, "failed to open log file", goerr.V("path", x.output))
		}
		w = f
		closer = func() {
			_ = f.Close()
		}
	}

	handler, err := x.newHandler(w, level)
	if err != nil {
		closer()
		return func() {}, err
	}

	logging.SetDefault(slog.New(handler))
	return closer, nil
}

func (x *Logger) newHandler(w io.Writer, level slog.Level) (slog.Handler, error) {
	filter := masq.New(
		masq.WithTag("secret"),
		masq.WithFieldPrefix("secret_"),
	)

	format, err := types.ParseLogFormat(x.format)
	if err != nil {
		return nil, err
	}

	switch format {
	case types.LogFormatConsole:
		return clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
			clog.WithSource(x.stacktrace),
			clog.WithColorMap(&clog.ColorMap{
				Level: map[slog.Level]*color.Color{
					slog.LevelDebug: color.New(color.FgGreen, color.Bold),
					slog.LevelInfo:  color.New(color.FgCyan, color.Bold),
					slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
					slog.LevelError: color.New(color.FgRed, color.Bold),
				},
				LevelDefault: color.New(color.FgBlue, color.Bold),
				Time:         color.New(color.FgWhite),
				Message:      color.New(color.FgHiWhite),
				AttrKey:      color.New(color.FgHiCyan),
				AttrValue:    color.New(color.FgHiWhite),
			}),
		), nil

	default:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   x.stacktrace,
			Level:       level,
			ReplaceAttr: filter,
		}), nil
	}
}
