package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marketlens/marketlens/internal/config"
	"github.com/marketlens/marketlens/internal/tui"
)

// newDashboardCmd creates the "dashboard" command: the interactive watchlist
// view. This is the one long-lived command, so it is also where the cache
// sweepers run; they stop when the dashboard's context is cancelled on exit.
func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive watchlist dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			symbols := app.cfg.Watchlist
			if len(symbols) == 0 {
				return fmt.Errorf("watchlist is empty; add symbols under `watchlist:` in %s", config.DefaultPath())
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			app.svc.Start(ctx)

			program := tea.NewProgram(
				tui.NewDashboardModel(ctx, app.svc, symbols),
				tea.WithAltScreen(),
			)
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("dashboard failed: %w", err)
			}
			return nil
		},
	}
}
