// Package cli implements the site command line: serve the website, submit
// an inquiry against a running instance and print the build version.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand returns the root command with every subcommand attached.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "site",
		Short: "Packwood Plates website",
		Long: `Serves the Packwood Plates website and its contact endpoint.

Configuration is read from the environment and an optional .env file.

Examples:
  site serve                          # Start the web server
  site serve --env-file prod.env      # Load a specific env file
  site submit --name Jamie --email jamie@example.com --details "Turtle plate"
  site version --format json`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringSlice("env-file", nil, "env files to load before parsing the environment (default .env)")

	root.AddCommand(
		newServeCommand(),
		newSubmitCommand(),
		newVersionCommand(version),
	)
	return root
}
