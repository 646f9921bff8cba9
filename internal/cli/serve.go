package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	site "github.com/packwoodplates/site"
	"github.com/packwoodplates/site/internal/config"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Start the web server",
		Long: `Start the web server and block until SIGINT or SIGTERM.

The server starts even when RESEND_API_KEY is missing; contact submissions
then fail with a configuration error and /health/ready reports unhealthy.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address, overrides ADDRESS")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	files, err := cmd.Flags().GetStringSlice("env-file")
	if err != nil {
		return err
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}

	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Address = addr
	}

	s, err := site.New(cfg)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}
	return s.Run(cmd.Context())
}
