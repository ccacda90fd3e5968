package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/optsync/pkg/domain/interfaces"
	"github.com/secmon-lab/optsync/pkg/domain/model"
)

type UseCases struct {
	client   interfaces.FieldOptionClient
	notifier interfaces.SyncNotifier
	fieldID  string
	Sync     *SyncUseCase
}

type Option func(*UseCases)

func WithNotifier(notifier interfaces.SyncNotifier) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

func WithFieldID(fieldID string) Option {
	return func(uc *UseCases) {
		uc.fieldID = fieldID
	}
}

func New(client interfaces.FieldOptionClient, opts ...Option) *UseCases {
	uc := &UseCases{
		client: client,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Sync = NewSyncUseCase(client, uc.notifier, uc.fieldID)

	return uc
}

// ListOptions returns the current options of the field without changing anything
func (uc *UseCases) ListOptions(ctx context.Context) (model.Options, error) {
	options, err := uc.client.ListOptions(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list options")
	}
	return options, nil
}
