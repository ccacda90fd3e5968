package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/optsync/pkg/domain/interfaces"
	"github.com/secmon-lab/optsync/pkg/domain/model"
	"github.com/slack-go/slack"
)

// client implements interfaces.SyncNotifier by posting to one channel
type client struct {
	api       *slack.Client
	channelID string
	apiURL    string
}

var _ interfaces.SyncNotifier = &client{}

// Option is a functional option for client configuration
type Option func(*client)

// WithAPIURL points the client at a different Slack API base URL
func WithAPIURL(url string) Option {
	return func(c *client) {
		c.apiURL = url
	}
}

// New creates a Slack notifier with the provided bot token and channel
func New(token, channelID string, opts ...Option) (interfaces.SyncNotifier, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel is required")
	}

	c := &client{channelID: channelID}
	for _, opt := range opts {
		opt(c)
	}

	var apiOpts []slack.Option
	if c.apiURL != "" {
		apiOpts = append(apiOpts, slack.OptionAPIURL(c.apiURL))
	}
	c.api = slack.New(token, apiOpts...)

	return c, nil
}

// NotifySync posts a summary of the run
func (c *client) NotifySync(ctx context.Context, report *model.SyncReport) error {
	summary := buildSummary(report)

	blocks := []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, summary, false, false), nil, nil),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, buildDetail(report), false, false), nil, nil),
		slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, "run_id: "+string(report.RunID), false, false),
		),
	}

	_, _, err := c.api.PostMessageContext(ctx, c.channelID,
		slack.MsgOptionText(summary, false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post sync report",
			goerr.V("channel_id", c.channelID), goerr.V("run_id", report.RunID))
	}

	return nil
}
