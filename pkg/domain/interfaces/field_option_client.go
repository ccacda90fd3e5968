package interfaces

import (
	"context"

	"github.com/secmon-lab/optsync/pkg/domain/model"
)

// FieldOptionClient is the I/O boundary to the remote single-select field.
// Mutating methods return the option list as the remote system reports it
// after the change.
type FieldOptionClient interface {
	// ListOptions retrieves every option of the field, including disabled ones
	ListOptions(ctx context.Context) (model.Options, error)

	// AddOption creates a new option with value at the given provisional position
	AddOption(ctx context.Context, value string, position string) (model.Options, error)

	// SetEnabled enables or disables an existing option
	SetEnabled(ctx context.Context, id model.OptionID, enabled bool) (model.Options, error)

	// Reposition applies the complete position mapping in one call
	Reposition(ctx context.Context, positions model.PositionMap) (model.Options, error)
}
