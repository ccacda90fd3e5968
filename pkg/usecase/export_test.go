package usecase

import "github.com/secmon-lab/optsync/pkg/domain/interfaces"

// NewDryRunClient is exported for testing
func NewDryRunClient(client interfaces.FieldOptionClient) interfaces.FieldOptionClient {
	return newDryRunClient(client)
}
