package jira

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/optsync/pkg/domain/model"
)

// ContextManagerPath is the project-admin servlet of the Context Manager
// plugin, relative to the Jira base URL
const ContextManagerPath = "/plugins/servlet/com.easesolutions.jira.plugins.contextmanager/projectadmin"

// Operation names understood by the endpoint
const (
	opMovePositions = "movePositions"
	opUpdateEnabled = "updateEnabled"
	opAddOption     = "addOption"
)

var (
	// ErrUnexpectedStatus is returned when the endpoint answers with a non-2xx status
	ErrUnexpectedStatus = goerr.New("unexpected HTTP status")

	// ErrEmptyResponse is returned when the response carries no field context
	ErrEmptyResponse = goerr.New("response has no field context")
)

type moveRequest struct {
	CustomFieldID string            `json:"customFieldId"`
	Positions     model.PositionMap `json:"positions"`
}

// updateEnabledRequest carries the remote flag as-is. The endpoint treats it
// inverted: isDisabled=false disables the option.
type updateEnabledRequest struct {
	CustomFieldID string         `json:"customFieldId"`
	IsDisabled    bool           `json:"isDisabled"`
	OptionID      model.OptionID `json:"optionId"`
}

type addOptionRequest struct {
	CustomFieldID string `json:"customFieldId"`
	Value         string `json:"value"`
	Position      string `json:"position"`
}

type response struct {
	Data []struct {
		Context struct {
			Values model.Options `json:"values"`
		} `json:"context"`
	} `json:"data"`
}
