package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrProfileNotFound = goerr.New("profile file not found")
	ErrInvalidProfile  = goerr.New("invalid profile")
	ErrMissingFlag     = goerr.New("required setting is missing")
)

// Context keys for error values
const (
	ProfilePathKey = "profile_path"
	FlagKey        = "flag"
)
