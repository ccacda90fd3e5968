package usecase

import (
	"context"

	"github.com/secmon-lab/optsync/pkg/domain/interfaces"
	"github.com/secmon-lab/optsync/pkg/domain/model"
	"github.com/secmon-lab/optsync/pkg/utils/logging"
)

// dryRunClient passes reads through and turns every mutating call into a
// logged no-op returning an empty option list
type dryRunClient struct {
	interfaces.FieldOptionClient
}

func newDryRunClient(client interfaces.FieldOptionClient) *dryRunClient {
	return &dryRunClient{FieldOptionClient: client}
}

func (c *dryRunClient) AddOption(ctx context.Context, value string, position string) (model.Options, error) {
	logging.From(ctx).Debug("Dry run, skipping addOption", "value", value, "position", position)
	return model.Options{}, nil
}

func (c *dryRunClient) SetEnabled(ctx context.Context, id model.OptionID, enabled bool) (model.Options, error) {
	logging.From(ctx).Debug("Dry run, skipping updateEnabled", "option_id", id, "enabled", enabled)
	return model.Options{}, nil
}

func (c *dryRunClient) Reposition(ctx context.Context, positions model.PositionMap) (model.Options, error) {
	logging.From(ctx).Debug("Dry run, skipping movePositions", "positions", positions)
	return model.Options{}, nil
}
