package cli

import (
	"context"

	"github.com/secmon-lab/optsync/pkg/cli/config"
	"github.com/secmon-lab/optsync/pkg/utils/errutil"
	"github.com/secmon-lab/optsync/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Run builds the optsync application and runs it with args. A failure is
// logged (and reported to Sentry when configured) before it is returned.
func Run(ctx context.Context, args []string, version string) error {
	app, cleanup := newApp(version)
	defer cleanup()

	if err := app.Run(ctx, args); err != nil {
		return errutil.Handle(ctx, err, "failed to run app")
	}

	return nil
}

// newApp returns the root command and a function releasing what its Before
// hook set up. The cleanup runs after the error is handled so that the log
// output and Sentry events are flushed last.
func newApp(version string) (*cli.Command, func()) {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closers []func()

	var flags []cli.Flag
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "optsync",
		Usage:   "Synchronize a Jira single-select custom field with a list of options",
		Version: version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			closeLogger, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, closeLogger)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, flush)

			logging.Default().Debug("Starting optsync", "version", version, "logger", loggerCfg, "sentry", sentryCfg)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdSync(),
			cmdList(),
		},
	}

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	return app, cleanup
}
