package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/optsync/pkg/domain/interfaces"
	"github.com/secmon-lab/optsync/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for posting sync reports to Slack
type Slack struct {
	botToken  string
	channelID string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (for posting sync reports)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("OPTSYNC_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID to post sync reports to",
			Category:    "Slack",
			Destination: &x.channelID,
			Sources:     cli.EnvVars("OPTSYNC_SLACK_CHANNEL"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel", x.channelID),
	)
}

// IsConfigured returns true if both token and channel are set
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" && x.channelID != ""
}

// Configure creates a notifier from the configured flags.
// Returns nil if not configured (reports will not be posted).
func (x *Slack) Configure() (interfaces.SyncNotifier, error) {
	if x.botToken == "" && x.channelID == "" {
		return nil, nil
	}
	if !x.IsConfigured() {
		return nil, goerr.Wrap(ErrMissingFlag, "both slack-bot-token and slack-channel are required")
	}

	notifier, err := slack.New(x.botToken, x.channelID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Slack notifier")
	}
	return notifier, nil
}
