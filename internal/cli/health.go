package cli

import (
	"github.com/spf13/cobra"
)

// newHealthCmd creates the "health" command, a quick backend reachability
// and version check.
func newHealthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend availability and version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := app.backend.CheckHealth(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("Backend %s: %s (version %s)\n", app.cfg.Backend.BaseURL, status.Status, status.Version)
			return nil
		},
	}
}
