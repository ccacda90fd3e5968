package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/optsync/pkg/domain/interfaces"
	"github.com/secmon-lab/optsync/pkg/service/jira"
	"github.com/urfave/cli/v3"
)

// Jira holds CLI flags identifying the instance and field to reconcile
type Jira struct {
	baseURL string
	apiKey  string
	fieldID string
	project string
}

// Flags returns CLI flags for Jira configuration
func (x *Jira) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jira-base-url",
			Usage:       "Base URL of the Jira instance",
			Category:    "Jira",
			Sources:     cli.EnvVars("OPTSYNC_JIRA_BASE_URL"),
			Destination: &x.baseURL,
		},
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "Jira API token",
			Category:    "Jira",
			Sources:     cli.EnvVars("OPTSYNC_API_KEY"),
			Destination: &x.apiKey,
		},
		&cli.StringFlag{
			Name:        "field-id",
			Usage:       "Custom field ID (Context Manager)",
			Category:    "Jira",
			Sources:     cli.EnvVars("OPTSYNC_FIELD_ID"),
			Destination: &x.fieldID,
		},
		&cli.StringFlag{
			Name:        "project-slug",
			Usage:       "Jira project key",
			Category:    "Jira",
			Sources:     cli.EnvVars("OPTSYNC_PROJECT_SLUG"),
			Destination: &x.project,
		},
	}
}

func (x Jira) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", x.baseURL),
		slog.Int("api_key.len", len(x.apiKey)),
		slog.String("field_id", x.fieldID),
		slog.String("project", x.project),
	)
}

// ApplyProfile fills settings left empty on the command line
func (x *Jira) ApplyProfile(p *Profile) {
	if p == nil {
		return
	}
	if x.baseURL == "" {
		x.baseURL = p.Jira.BaseURL
	}
	if x.fieldID == "" {
		x.fieldID = p.Jira.FieldID
	}
	if x.project == "" {
		x.project = p.Jira.Project
	}
}

// FieldID returns the configured custom field ID
func (x *Jira) FieldID() string {
	return x.fieldID
}

// Validate checks that every required setting is present
func (x *Jira) Validate() error {
	required := []struct {
		flag  string
		value string
	}{
		{"jira-base-url", x.baseURL},
		{"api-key", x.apiKey},
		{"field-id", x.fieldID},
		{"project-slug", x.project},
	}
	for _, r := range required {
		if r.value == "" {
			return goerr.Wrap(ErrMissingFlag, "missing Jira setting", goerr.V(FlagKey, r.flag))
		}
	}
	return nil
}

// Configure creates the field option client
func (x *Jira) Configure() (interfaces.FieldOptionClient, error) {
	if err := x.Validate(); err != nil {
		return nil, err
	}

	client, err := jira.New(x.baseURL, x.apiKey, x.fieldID, x.project)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Jira client")
	}
	return client, nil
}
