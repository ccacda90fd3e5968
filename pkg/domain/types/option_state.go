package types

import "github.com/m-mizutani/goerr/v2"

// OptionState is the selectability of a field option
type OptionState string

const (
	OptionStateEnabled  OptionState = "ENABLED"
	OptionStateDisabled OptionState = "DISABLED"
)

// AllOptionStates returns all valid option states
func AllOptionStates() []OptionState {
	return []OptionState{
		OptionStateEnabled,
		OptionStateDisabled,
	}
}

// IsValid checks if the option state is valid
func (s OptionState) IsValid() bool {
	switch s {
	case OptionStateEnabled,
		OptionStateDisabled:
		return true
	default:
		return false
	}
}

// String returns the string representation of the option state
func (s OptionState) String() string {
	return string(s)
}

// ParseOptionState parses a string into an OptionState
func ParseOptionState(s string) (OptionState, error) {
	state := OptionState(s)
	if !state.IsValid() {
		return "", goerr.New("invalid option state", goerr.V("state", s))
	}
	return state, nil
}
