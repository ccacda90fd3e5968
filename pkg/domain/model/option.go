package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/optsync/pkg/domain/types"
)

// OptionID is the opaque identifier the remote field assigns to an option.
// The remote API serializes it either as a JSON number or a JSON string.
type OptionID string

// String returns the string representation of OptionID
func (id OptionID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both numeric and string identifiers
func (id *OptionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return goerr.Wrap(err, "invalid option ID", goerr.V("raw", string(data)))
		}
		*id = OptionID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return goerr.Wrap(err, "invalid option ID", goerr.V("raw", string(data)))
	}
	*id = OptionID(n.String())
	return nil
}

// Option is one selectable value of the remote single-select field
type Option struct {
	ID       OptionID `json:"optionId"`
	Value    string   `json:"value"`
	Disabled bool     `json:"isDisabled"`
}

// Enabled reports whether the option is currently selectable
func (o *Option) Enabled() bool {
	return !o.Disabled
}

// State returns the option state as shown to operators
func (o *Option) State() types.OptionState {
	if o.Disabled {
		return types.OptionStateDisabled
	}
	return types.OptionStateEnabled
}

// Options is the option list of a field as returned by the remote system
type Options []*Option

// Values returns option values in list order
func (x Options) Values() []string {
	values := make([]string, 0, len(x))
	for _, opt := range x {
		if opt != nil {
			values = append(values, opt.Value)
		}
	}
	return values
}

// EnabledValues returns values of enabled options in list order
func (x Options) EnabledValues() []string {
	var values []string
	for _, opt := range x {
		if opt != nil && opt.Enabled() {
			values = append(values, opt.Value)
		}
	}
	return values
}

// Find returns the option matching value. When several options share a
// value, the enabled one is preferred, otherwise the first one.
func (x Options) Find(value string) *Option {
	var found *Option
	for _, opt := range x {
		if opt == nil || opt.Value != value {
			continue
		}
		if opt.Enabled() {
			return opt
		}
		if found == nil {
			found = opt
		}
	}
	return found
}

// String renders values for log output
func (x Options) String() string {
	return "[" + strings.Join(x.Values(), ", ") + "]"
}
