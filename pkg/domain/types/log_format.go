package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// LogFormat selects the log handler
type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// IsValid checks if the log format is valid
func (f LogFormat) IsValid() bool {
	switch f {
	case LogFormatConsole,
		LogFormatJSON:
		return true
	default:
		return false
	}
}

func (f LogFormat) String() string {
	return string(f)
}

// ParseLogFormat parses a case-insensitive string into a LogFormat. Empty
// means console.
func ParseLogFormat(s string) (LogFormat, error) {
	if s == "" {
		return LogFormatConsole, nil
	}
	format := LogFormat(strings.ToLower(s))
	if !format.IsValid() {
		return "", goerr.New("invalid log format", goerr.V("format", s))
	}
	return format, nil
}
