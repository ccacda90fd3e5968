package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Profile is an optional TOML file carrying non-secret defaults for one
// field. Command line flags take precedence over it.
type Profile struct {
	Jira    ProfileJira    `toml:"jira"`
	Options ProfileOptions `toml:"options"`
}

// ProfileJira identifies the field to reconcile
type ProfileJira struct {
	BaseURL string `toml:"base_url"`
	FieldID string `toml:"field_id"`
	Project string `toml:"project"`
}

// ProfileOptions holds option list defaults
type ProfileOptions struct {
	Static  []string `toml:"static"`
	Sources []string `toml:"sources"`
}

// Validate checks if the Profile is valid
func (p *Profile) Validate() error {
	for i, v := range p.Options.Static {
		if strings.TrimSpace(v) == "" {
			return goerr.Wrap(ErrInvalidProfile, "static option must not be blank", goerr.V("index", i))
		}
	}
	for i, v := range p.Options.Sources {
		if strings.TrimSpace(v) == "" {
			return goerr.Wrap(ErrInvalidProfile, "source must not be blank", goerr.V("index", i))
		}
	}
	return nil
}

// LoadProfile loads a profile from a TOML file
func LoadProfile(path string) (*Profile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrProfileNotFound, "failed to read profile", goerr.V(ProfilePathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read profile", goerr.V(ProfilePathKey, path))
	}

	var profile Profile
	if err := toml.Unmarshal(data, &profile); err != nil {
		return nil, goerr.Wrap(ErrInvalidProfile, "failed to parse TOML profile",
			goerr.V(ProfilePathKey, path), goerr.V("error", err.Error()))
	}

	if err := profile.Validate(); err != nil {
		return nil, goerr.Wrap(err, "profile validation failed", goerr.V(ProfilePathKey, path))
	}

	return &profile, nil
}

// ProfileFlag holds the --config flag
type ProfileFlag struct {
	path string
}

// Flags returns CLI flags for profile configuration
func (x *ProfileFlag) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a TOML profile with field defaults",
			Sources:     cli.EnvVars("OPTSYNC_CONFIG"),
			Destination: &x.path,
		},
	}
}

func (x ProfileFlag) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", x.path))
}

// Configure loads the profile, or returns an empty one when no path is set
func (x *ProfileFlag) Configure() (*Profile, error) {
	if x.path == "" {
		return &Profile{}, nil
	}
	return LoadProfile(x.path)
}
