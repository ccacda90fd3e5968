package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Input errors
	ErrNoDesiredOptions = errors.New("no options read from input")

	// Lookup errors
	ErrOptionNotFound = errors.New("option not found in remote field")
)

// Context keys for error values
const (
	ValueKey    = "value"
	OptionIDKey = "option_id"
)
