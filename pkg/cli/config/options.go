package config

import (
	"log/slog"

	"github.com/secmon-lab/optsync/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Options holds CLI flags controlling the desired option list
type Options struct {
	static  []string
	sources []string
	dryRun  bool
}

// Flags returns CLI flags for option list configuration
func (x *Options) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "static-options",
			Usage:       "Options always enabled and pinned to the end, in the given order (default: Other)",
			Sources:     cli.EnvVars("OPTSYNC_STATIC_OPTIONS"),
			Destination: &x.static,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Aliases:     []string{"n"},
			Usage:       "Compute and log the plan without changing the field",
			Sources:     cli.EnvVars("OPTSYNC_DRY_RUN"),
			Destination: &x.dryRun,
		},
	}
}

func (x Options) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("static", x.static),
		slog.Any("sources", x.sources),
		slog.Bool("dry_run", x.dryRun),
	)
}

// SetSources records the positional source arguments
func (x *Options) SetSources(sources []string) {
	x.sources = sources
}

// ApplyProfile fills settings left empty on the command line
func (x *Options) ApplyProfile(p *Profile) {
	if p == nil {
		return
	}
	if len(x.static) == 0 {
		x.static = p.Options.Static
	}
	if len(x.sources) == 0 {
		x.sources = p.Options.Sources
	}
}

// StaticTail returns the configured static options, falling back to the default
func (x *Options) StaticTail() []string {
	if len(x.static) == 0 {
		return usecase.DefaultStaticTail
	}
	return x.static
}

// Sources returns desired-list locations. Empty means standard input.
func (x *Options) Sources() []string {
	return x.sources
}

// DryRun reports whether mutating calls are skipped
func (x *Options) DryRun() bool {
	return x.dryRun
}
