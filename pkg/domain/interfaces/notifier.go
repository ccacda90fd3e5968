package interfaces

import (
	"context"

	"github.com/secmon-lab/optsync/pkg/domain/model"
)

// SyncNotifier publishes the outcome of a reconciliation run
type SyncNotifier interface {
	NotifySync(ctx context.Context, report *model.SyncReport) error
}
