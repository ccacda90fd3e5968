package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/optsync/pkg/cli/config"
	"github.com/secmon-lab/optsync/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdList() *cli.Command {
	var profileCfg config.ProfileFlag
	var jiraCfg config.Jira

	var flags []cli.Flag
	flags = append(flags, profileCfg.Flags()...)
	flags = append(flags, jiraCfg.Flags()...)

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Show the current options of the field",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			profile, err := profileCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load profile")
			}
			jiraCfg.ApplyProfile(profile)

			client, err := jiraCfg.Configure()
			if err != nil {
				return err
			}

			options, err := usecase.New(client).ListOptions(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "POSITION\tID\tVALUE\tSTATE")
			for i, opt := range options {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, opt.ID, opt.Value, opt.State())
			}
			if err := w.Flush(); err != nil {
				return goerr.Wrap(err, "failed to write option list")
			}
			return nil
		},
	}
}
