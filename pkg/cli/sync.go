package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/optsync/pkg/cli/config"
	"github.com/secmon-lab/optsync/pkg/service/source"
	"github.com/secmon-lab/optsync/pkg/usecase"
	"github.com/secmon-lab/optsync/pkg/utils/logging"
	"github.com/secmon-lab/optsync/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdSync() *cli.Command {
	var profileCfg config.ProfileFlag
	var jiraCfg config.Jira
	var optionsCfg config.Options
	var slackCfg config.Slack

	var flags []cli.Flag
	flags = append(flags, profileCfg.Flags()...)
	flags = append(flags, jiraCfg.Flags()...)
	flags = append(flags, optionsCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:      "sync",
		Aliases:   []string{"s"},
		Usage:     "Reconcile field options with the desired list read from SOURCE files, \"-\" (stdin) or gs://bucket/object",
		ArgsUsage: "[SOURCE...]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			profile, err := profileCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load profile")
			}
			jiraCfg.ApplyProfile(profile)
			optionsCfg.SetSources(c.Args().Slice())
			optionsCfg.ApplyProfile(profile)

			logger.Debug("Configuration",
				"jira", jiraCfg,
				"options", optionsCfg,
				"slack", slackCfg,
			)

			// Input is validated before any remote call is made
			reader := source.New()
			defer safe.Close(ctx, reader)

			desired, err := reader.ReadAll(ctx, optionsCfg.Sources())
			if err != nil {
				return goerr.Wrap(err, "failed to read desired options")
			}
			if _, external := usecase.MergeDesired(optionsCfg.StaticTail(), desired); external == 0 {
				return goerr.Wrap(usecase.ErrNoDesiredOptions, "no options read from input",
					goerr.V("sources", optionsCfg.Sources()))
			}

			client, err := jiraCfg.Configure()
			if err != nil {
				return err
			}

			notifier, err := slackCfg.Configure()
			if err != nil {
				return err
			}

			opts := []usecase.Option{usecase.WithFieldID(jiraCfg.FieldID())}
			if notifier != nil {
				opts = append(opts, usecase.WithNotifier(notifier))
			}
			uc := usecase.New(client, opts...)

			report, err := uc.Sync.Sync(ctx, usecase.SyncInput{
				Desired:    desired,
				StaticTail: optionsCfg.StaticTail(),
				DryRun:     optionsCfg.DryRun(),
			})
			if err != nil {
				return goerr.Wrap(err, "failed to sync options", goerr.V("field_id", jiraCfg.FieldID()))
			}

			logger.Info("Sync completed",
				"run_id", report.RunID,
				"added", len(report.Plan.Add),
				"disabled", len(report.Plan.Disable),
				"ordered", len(report.Order),
				"dry_run", report.DryRun,
			)
			return nil
		},
	}
}
