package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// newScreenerCmd creates the "screener" command. Unlike analyze/ask there is
// no fetch-through wrapper: the cached page is served when present, and the
// backend is hit only on a miss or an explicit --refresh. Screener refresh is
// a deliberate user action, not a side effect of reading.
func newScreenerCmd(app *App) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "screener TEMPLATE_ID",
		Short: "Fetch a screener template result page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templateID := args[0]
			styled := isTerminal(os.Stdout)

			if !refresh {
				if page, ok := app.svc.CachedScreenerData(templateID); ok {
					logger.Debug().Str("template", templateID).Msg("serving screener page from cache")
					renderScreener(cmd.OutOrStdout(), page, styled)
					return nil
				}
			}

			page, err := app.svc.RefreshScreenerData(cmd.Context(), templateID)
			if err != nil {
				return err
			}
			renderScreener(cmd.OutOrStdout(), page, styled)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and fetch a fresh page")
	return cmd
}
