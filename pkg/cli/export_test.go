package cli

import "github.com/urfave/cli/v3"

// NewAppForTest exposes the root command so tests can redirect its writers
func NewAppForTest(version string) (*cli.Command, func()) {
	return newApp(version)
}
