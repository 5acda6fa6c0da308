package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// newEvaluateCmd creates the "evaluate" command: the backend's scored
// buy/hold/sell verdict. Evaluations are not cached; the score depends on
// live market data and the call is always explicit.
func newEvaluateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate SYMBOL",
		Short: "Get a scored recommendation for a stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			evaluation, err := app.backend.EvaluateStock(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderEvaluation(cmd.OutOrStdout(), args[0], evaluation, isTerminal(os.Stdout))
			return nil
		},
	}
}
